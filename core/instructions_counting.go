package core

// execCounting dispatches inc/dec (memory) and the six fixed-register
// increment/decrement ops. inc and dec set zero uniformly.
func (c *CPU) execCounting(ins Instruction) error {
	switch ins.Operation {
	case OpInc, OpDec:
		dest, err := c.resolveChecked(ins.Modes[0], ins.Words[0], memoryOnlyModes)
		if err != nil {
			return err
		}
		result := c.countStep(ins.Operation, dest.Value)
		return dest.WriteBack(c, result)

	case OpIna:
		c.Registers.A = c.countStep(OpInc, c.Registers.A)
	case OpDea:
		c.Registers.A = c.countStep(OpDec, c.Registers.A)
	case OpInx:
		c.Registers.X = c.countStep(OpInc, c.Registers.X)
	case OpDex:
		c.Registers.X = c.countStep(OpDec, c.Registers.X)
	case OpIny:
		c.Registers.Y = c.countStep(OpInc, c.Registers.Y)
	case OpDey:
		c.Registers.Y = c.countStep(OpDec, c.Registers.Y)
	default:
		return IllegalInstruction
	}
	return nil
}

// countStep applies the shared increment/decrement flag rule and
// returns the new value. The overflow boundary is the signed-byte
// 127/128 crossing, not the 32-bit one.
func (c *CPU) countStep(op Operation, value uint32) uint32 {
	var result uint32
	if op == OpInc {
		result = value + 1
		c.Status.Carry = value == 0xFFFFFFFF
		c.Status.Overflow = value == 127
	} else {
		result = value - 1
		c.Status.Carry = value == 0
		c.Status.Overflow = value == 128
	}
	c.Status.Zero = result == 0
	c.Status.Negative = signBit32(result)
	return result
}
