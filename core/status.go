package core

// StatusRegister holds the seven architectural flag bits, packed into
// a single byte with bit 7 reserved (always zero):
//
//	bit 6  zero
//	bit 5  carry
//	bit 4  overflow
//	bit 3  interrupt
//	bit 2  double_fault
//	bit 1  decimal
//	bit 0  interrupt_disable
//
// Negative is tracked alongside the seven persisted flags for the
// comparison/branch instructions (cmp, lte, gte, bpl, bmi) but is not
// part of the packed byte, which only has room for the seven named
// flags. Treating it as transient keeps ToByte/FromByte round-trips
// exact while still giving the comparison group somewhere to put the
// result of a relation test.
type StatusRegister struct {
	Zero             bool
	Carry            bool
	Overflow         bool
	Interrupt        bool
	DoubleFault      bool
	Decimal          bool
	InterruptDisable bool
	Negative         bool
}

const (
	statusBitZero             = 1 << 6
	statusBitCarry            = 1 << 5
	statusBitOverflow         = 1 << 4
	statusBitInterrupt        = 1 << 3
	statusBitDoubleFault      = 1 << 2
	statusBitDecimal          = 1 << 1
	statusBitInterruptDisable = 1 << 0
)

// ToByte packs the seven persisted flags into a single byte.
func (s StatusRegister) ToByte() byte {
	var b byte
	if s.Zero {
		b |= statusBitZero
	}
	if s.Carry {
		b |= statusBitCarry
	}
	if s.Overflow {
		b |= statusBitOverflow
	}
	if s.Interrupt {
		b |= statusBitInterrupt
	}
	if s.DoubleFault {
		b |= statusBitDoubleFault
	}
	if s.Decimal {
		b |= statusBitDecimal
	}
	if s.InterruptDisable {
		b |= statusBitInterruptDisable
	}
	return b
}

// StatusFromByte unpacks a status byte. Negative is always false: it
// is never stored in the packed representation.
func StatusFromByte(b byte) StatusRegister {
	return StatusRegister{
		Zero:             b&statusBitZero != 0,
		Carry:            b&statusBitCarry != 0,
		Overflow:         b&statusBitOverflow != 0,
		Interrupt:        b&statusBitInterrupt != 0,
		DoubleFault:      b&statusBitDoubleFault != 0,
		Decimal:          b&statusBitDecimal != 0,
		InterruptDisable: b&statusBitInterruptDisable != 0,
	}
}

func flagChar(set bool, ch byte) byte {
	if set {
		return ch
	}
	return '-'
}

// String renders the status word the way the debugger prints it:
// one character per flag, '-' where clear.
func (s StatusRegister) String() string {
	buf := []byte{
		flagChar(s.Zero, 'z'),
		flagChar(s.Carry, 'c'),
		flagChar(s.Overflow, 'o'),
		flagChar(s.Interrupt, 'b'),
		flagChar(s.DoubleFault, 'f'),
		flagChar(s.Decimal, 'd'),
		flagChar(s.InterruptDisable, 'i'),
	}
	return string(buf)
}
