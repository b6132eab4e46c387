package core

var addressOnlyModes = []Addressing{Indirect, Absolute, RegisterIndirect}
var directOnly = []Addressing{Direct}

// execDataMovement dispatches mov/ldr/str/swp/clr.
func (c *CPU) execDataMovement(ins Instruction) error {
	switch ins.Operation {
	case OpMov:
		src, err := c.resolveChecked(ins.Modes[0], ins.Words[0], writableDestModes)
		if err != nil {
			return err
		}
		dst, err := c.resolveChecked(ins.Modes[1], ins.Words[1], writableDestModes)
		if err != nil {
			return err
		}
		if err := dst.WriteBack(c, src.Value); err != nil {
			return err
		}
		return src.WriteBack(c, 0)

	case OpLdr:
		dest, err := c.resolveChecked(ins.Modes[0], ins.Words[0], directOnly)
		if err != nil {
			return err
		}
		src, err := c.resolveChecked(ins.Modes[1], ins.Words[1], numericSourceModes)
		if err != nil {
			return err
		}
		return dest.WriteBack(c, src.Value)

	case OpStr:
		src, err := c.resolveChecked(ins.Modes[0], ins.Words[0], directOnly)
		if err != nil {
			return err
		}
		dest, err := c.resolveChecked(ins.Modes[1], ins.Words[1], addressOnlyModes)
		if err != nil {
			return err
		}
		return dest.WriteBack(c, src.Value)

	case OpSwp:
		a, err := c.resolveChecked(ins.Modes[0], ins.Words[0], writableDestModes)
		if err != nil {
			return err
		}
		b, err := c.resolveChecked(ins.Modes[1], ins.Words[1], writableDestModes)
		if err != nil {
			return err
		}
		if err := a.WriteBack(c, b.Value); err != nil {
			return err
		}
		return b.WriteBack(c, a.Value)

	case OpClr:
		dest, err := c.resolveChecked(ins.Modes[0], ins.Words[0], writableDestModes)
		if err != nil {
			return err
		}
		return dest.WriteBack(c, 0)
	}
	return IllegalInstruction
}
