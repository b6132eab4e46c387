package core

// Operand is a decoded, resolved instruction operand: the addressing
// mode plus whatever value and/or address it produced. ZeroPage is
// not a distinct wire-level addressing mode (there is no separate
// numeric code for it) — it's a classification of the resolved
// address under Absolute/Indirect/RegisterIndirect: an address
// landing at or below 0xFF is zero-page, otherwise it's a regular
// memory operand. Relative is the one mode that rejects a zero-page
// target outright rather than letting it resolve there.
type Operand struct {
	Mode       Addressing
	Raw        uint32
	Register   RegisterID
	HasAddress bool
	Address    uint32
	ZeroPage   bool
	Value      uint32
}

// AddressOf returns the resolved address for address-bearing modes.
func (o Operand) AddressOf() (uint32, error) {
	if !o.HasAddress {
		return 0, IllegalInstruction
	}
	return o.Address, nil
}

// resolveOperand turns a raw 32-bit operand word plus its addressing
// mode into an Operand, reading memory/registers as needed.
func (c *CPU) resolveOperand(mode Addressing, raw uint32) (Operand, error) {
	if !mode.Valid() {
		return Operand{}, IllegalInstruction
	}
	switch mode {
	case Immediate:
		return Operand{Mode: mode, Raw: raw, Value: raw}, nil

	case Implied, Direct:
		reg, ok := RegisterFromCode(raw)
		if !ok {
			return Operand{}, IllegalInstruction
		}
		return Operand{Mode: mode, Raw: raw, Register: reg, Value: c.Registers.Get(reg)}, nil

	case RegisterIndirect:
		reg, ok := RegisterFromCode(raw)
		if !ok {
			return Operand{}, IllegalInstruction
		}
		addr := c.Registers.Get(reg)
		val, err := c.readMemory(addr)
		if err != nil {
			return Operand{}, err
		}
		return Operand{Mode: mode, Raw: raw, Register: reg, HasAddress: true, Address: addr, ZeroPage: addr <= ZeroPageLimit, Value: val}, nil

	case Indirect:
		ptr, err := c.readMemory(raw)
		if err != nil {
			return Operand{}, err
		}
		val, err := c.readMemory(ptr)
		if err != nil {
			return Operand{}, err
		}
		return Operand{Mode: mode, Raw: raw, HasAddress: true, Address: ptr, ZeroPage: ptr <= ZeroPageLimit, Value: val}, nil

	case Absolute:
		val, err := c.readMemory(raw)
		if err != nil {
			return Operand{}, err
		}
		return Operand{Mode: mode, Raw: raw, HasAddress: true, Address: raw, ZeroPage: raw <= ZeroPageLimit, Value: val}, nil

	case Relative:
		offset := int32(raw)
		var target uint32
		if offset >= 0 {
			target = c.ProgramCounter + uint32(offset)
		} else {
			target = c.ProgramCounter - uint32(-offset)
		}
		if target <= ZeroPageLimit {
			return Operand{}, IllegalMemory
		}
		val, err := c.readMemory(target)
		if err != nil {
			return Operand{}, err
		}
		return Operand{Mode: mode, Raw: raw, HasAddress: true, Address: target, Value: val}, nil
	}
	return Operand{}, IllegalInstruction
}

// WriteBack stores val to whichever register or memory location the
// operand resolved to. Immediate and Relative operands cannot be
// written back; Relative because it names a branch target, not a
// destination.
func (o Operand) WriteBack(c *CPU, val uint32) error {
	switch o.Mode {
	case Direct, Implied:
		c.Registers.Set(o.Register, val)
		return nil
	case RegisterIndirect, Indirect, Absolute:
		return c.writeMemory(o.Address, val)
	default:
		return IllegalInstruction
	}
}
