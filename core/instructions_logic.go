package core

// execLogic dispatches the bitwise group. and/or/xor/nor/nad/imp
// combine two numeric operands into A; not inverts A in place;
// shl/shr/rol/ror/asr shift a single writable destination by one.
// Every member of this group sets only zero.
func (c *CPU) execLogic(ins Instruction) error {
	switch ins.Operation {
	case OpAnd, OpOr, OpXor, OpNor, OpNad, OpImp:
		a, err := c.resolveChecked(ins.Modes[0], ins.Words[0], numericSourceModes)
		if err != nil {
			return err
		}
		b, err := c.resolveChecked(ins.Modes[1], ins.Words[1], numericSourceModes)
		if err != nil {
			return err
		}
		var result uint32
		switch ins.Operation {
		case OpAnd:
			result = a.Value & b.Value
		case OpOr:
			result = a.Value | b.Value
		case OpXor:
			result = a.Value ^ b.Value
		case OpNor:
			result = ^(a.Value | b.Value)
		case OpNad:
			result = ^(a.Value & b.Value)
		case OpImp:
			result = ^a.Value | b.Value
		}
		c.Status.Zero = result == 0
		c.Registers.A = result
		return nil

	case OpNot:
		c.Registers.A = ^c.Registers.A
		c.Status.Zero = c.Registers.A == 0
		return nil

	case OpShl, OpShr, OpRol, OpRor, OpAsr:
		dest, err := c.resolveChecked(ins.Modes[0], ins.Words[0], writableDestModes)
		if err != nil {
			return err
		}
		var result uint32
		switch ins.Operation {
		case OpShl:
			result = dest.Value << 1
		case OpShr:
			result = dest.Value >> 1
		case OpRol:
			result = dest.Value<<1 | dest.Value>>31
		case OpRor:
			result = dest.Value>>1 | dest.Value<<31
		case OpAsr:
			result = uint32(int32(dest.Value) >> 1)
		}
		c.Status.Zero = result == 0
		return dest.WriteBack(c, result)
	}
	return IllegalInstruction
}
