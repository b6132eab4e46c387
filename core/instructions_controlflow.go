package core

// execControlFlow dispatches jumps, calls, branches and the
// interrupt-adjacent ops (int/irt/nop/jam). Every instruction that
// changes control flow writes target-InstructionSize, because the
// tick loop unconditionally advances PC by InstructionSize once
// execute returns; writing the raw target would overshoot by one
// instruction.
func (c *CPU) execControlFlow(ins Instruction) error {
	switch ins.Operation {
	case OpJmp:
		target, err := c.branchTarget(ins.Modes[0], ins.Words[0])
		if err != nil {
			return err
		}
		c.ProgramCounter = target - InstructionSize
		return nil

	case OpJsr:
		target, err := c.branchTarget(ins.Modes[0], ins.Words[0])
		if err != nil {
			return err
		}
		returnAddr := c.ProgramCounter + InstructionSize
		if err := c.userStackPushDword(returnAddr); err != nil {
			return err
		}
		c.ProgramCounter = target - InstructionSize
		return nil

	case OpRet:
		returnAddr, err := c.userStackPullDword()
		if err != nil {
			return err
		}
		c.ProgramCounter = returnAddr - InstructionSize
		return nil

	case OpIrt:
		if err := c.Irt(); err != nil {
			return err
		}
		// The restored PC points at the preempted instruction; back
		// off by one width so the post-tick advance lands exactly on
		// it, same as every other control transfer here.
		c.ProgramCounter -= InstructionSize
		return nil

	case OpBeq, OpBne, OpBec, OpBnc, OpBeo, OpBno, OpBpl, OpBmi:
		var take bool
		switch ins.Operation {
		case OpBeq:
			take = c.Status.Zero
		case OpBne:
			take = !c.Status.Zero
		case OpBec:
			take = c.Status.Carry
		case OpBnc:
			take = !c.Status.Carry
		case OpBeo:
			take = c.Status.Overflow
		case OpBno:
			take = !c.Status.Overflow
		case OpBpl:
			take = !c.Status.Negative
		case OpBmi:
			take = c.Status.Negative
		}
		if !take {
			return nil
		}
		target, err := c.branchTarget(ins.Modes[0], ins.Words[0])
		if err != nil {
			return err
		}
		c.ProgramCounter = target - InstructionSize
		return nil

	case OpInt:
		return UserInterrupt(c.Registers.A & 0x0F)

	case OpNop:
		return nil

	case OpJam:
		return Failure
	}
	return IllegalInstruction
}

func (c *CPU) branchTarget(mode Addressing, raw uint32) (uint32, error) {
	op, err := c.resolveChecked(mode, raw, branchTargetModes)
	if err != nil {
		return 0, err
	}
	return op.AddressOf()
}
