package core

// execComparison dispatches cmp/cpx/cpy/lte/gte (compare a register
// against an operand, encoding the relation into flags) and
// srz/src/sro (materialize a flag into an operand).
func (c *CPU) execComparison(ins Instruction) error {
	switch ins.Operation {
	case OpCmp, OpCpx, OpCpy, OpLte, OpGte:
		op, err := c.resolveChecked(ins.Modes[0], ins.Words[0], numericSourceModes)
		if err != nil {
			return err
		}
		var reg uint32
		switch ins.Operation {
		case OpCmp, OpLte, OpGte:
			reg = c.Registers.A
		case OpCpx:
			reg = c.Registers.X
		case OpCpy:
			reg = c.Registers.Y
		}
		// cmp/cpx/cpy put equality in zero; lte/gte put their whole
		// relation in zero, with carry holding the complement.
		switch ins.Operation {
		case OpLte:
			c.Status.Zero = reg <= op.Value
			c.Status.Carry = reg > op.Value
		case OpGte:
			c.Status.Zero = reg >= op.Value
			c.Status.Carry = reg < op.Value
		default:
			c.Status.Zero = reg == op.Value
			c.Status.Carry = reg >= op.Value
		}
		c.Status.Negative = reg < op.Value
		return nil

	case OpSrz, OpSrc, OpSro:
		// The destination is an implied register operand; any
		// addressed mode is illegal here.
		dest, err := c.resolveChecked(ins.Modes[0], ins.Words[0], impliedOnlyModes)
		if err != nil {
			return err
		}
		var flag bool
		switch ins.Operation {
		case OpSrz:
			flag = c.Status.Zero
		case OpSrc:
			flag = c.Status.Carry
		case OpSro:
			flag = c.Status.Overflow
		}
		return dest.WriteBack(c, boolToUint32(flag))
	}
	return IllegalInstruction
}
