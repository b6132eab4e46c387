package core

// execStack dispatches the fixed-register push/pull pair for each of
// A/X/Y, the generic psh/pll, and php/plp for the status byte.
// Registers round-trip through the dword stack (they're full 32-bit
// values); status round-trips through the word stack since it's a
// single byte.
func (c *CPU) execStack(ins Instruction) error {
	switch ins.Operation {
	case OpPha:
		return c.userStackPushDword(c.Registers.A)
	case OpPla:
		val, err := c.userStackPullDword()
		if err != nil {
			return err
		}
		c.Registers.A = val
		return nil
	case OpPhx:
		return c.userStackPushDword(c.Registers.X)
	case OpPlx:
		val, err := c.userStackPullDword()
		if err != nil {
			return err
		}
		c.Registers.X = val
		return nil
	case OpPhy:
		return c.userStackPushDword(c.Registers.Y)
	case OpPly:
		val, err := c.userStackPullDword()
		if err != nil {
			return err
		}
		c.Registers.Y = val
		return nil

	case OpPsh:
		op, err := c.resolveChecked(ins.Modes[0], ins.Words[0], numericSourceModes)
		if err != nil {
			return err
		}
		return c.userStackPushDword(op.Value)

	case OpPll:
		dest, err := c.resolveChecked(ins.Modes[0], ins.Words[0], writableDestModes)
		if err != nil {
			return err
		}
		val, err := c.userStackPullDword()
		if err != nil {
			return err
		}
		return dest.WriteBack(c, val)

	case OpPhp:
		return c.userStackPushWord(c.Status.ToByte())

	case OpPlp:
		b, err := c.userStackPullWord()
		if err != nil {
			return err
		}
		negative := c.Status.Negative
		c.Status = StatusFromByte(b)
		c.Status.Negative = negative
		return nil
	}
	return IllegalInstruction
}
