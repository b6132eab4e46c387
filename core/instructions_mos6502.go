package core

// execMos6502 dispatches the 6502-compatibility group: the
// flag-toggle instructions plus bit.
func (c *CPU) execMos6502(ins Instruction) error {
	switch ins.Operation {
	case OpSec:
		c.Status.Carry = true
	case OpClc:
		c.Status.Carry = false
	case OpSei:
		c.Status.InterruptDisable = true
	case OpCli:
		c.Status.InterruptDisable = false
	case OpSed:
		c.Status.Decimal = true
	case OpCld:
		c.Status.Decimal = false
	case OpClv:
		c.Status.Overflow = false

	case OpBit:
		op, err := c.resolveChecked(ins.Modes[0], ins.Words[0], addressOnlyModes)
		if err != nil {
			return err
		}
		result := c.Registers.A & op.Value
		c.Status.Negative = result&0x80 != 0
		c.Status.Overflow = result&0x40 != 0

	default:
		return IllegalInstruction
	}
	return nil
}
