package core

import "fmt"

// Instruction is the decoded, not-yet-resolved form of one 15-byte
// instruction word: an operation plus three addressing-mode nibbles
// and their raw operand words. Resolution (reading registers/memory)
// happens lazily per operand as each instruction handler consumes it,
// since not every operation uses all three operand slots and an
// unused slot need not hold a legally-addressable operand.
type Instruction struct {
	Operation Operation
	Modes     [3]Addressing
	Words     [3]uint32
}

// splitInstruction unpacks the header and operand words without
// judging them, shared by the fatal decode path and the non-fatal
// disassembler.
func splitInstruction(data []byte) (Operation, [3]Addressing, [3]uint32) {
	header := uint32(data[0]) | uint32(data[1])<<8 | uint32(data[2])<<16
	op := Operation(header >> 12)
	modes := [3]Addressing{
		Addressing(header & 0xF),
		Addressing((header >> 4) & 0xF),
		Addressing((header >> 8) & 0xF),
	}
	words := [3]uint32{readWord(data, 3), readWord(data, 7), readWord(data, 11)}
	return op, modes, words
}

// DecodeInstruction unpacks the 15-byte window starting at data[0].
// The caller must supply exactly InstructionSize bytes. An operation
// code or addressing-mode nibble outside the defined sets fails with
// IllegalInstruction.
func DecodeInstruction(data []byte) (Instruction, error) {
	if len(data) < InstructionSize {
		return Instruction{}, IllegalMemory
	}
	op, modes, words := splitInstruction(data)
	if _, ok := operationNames[op]; !ok {
		return Instruction{}, IllegalInstruction
	}
	for _, m := range modes {
		if !m.Valid() {
			return Instruction{}, IllegalInstruction
		}
	}
	return Instruction{Operation: op, Modes: modes, Words: words}, nil
}

// Encode packs the instruction back into 15 bytes, the inverse of
// DecodeInstruction.
func (ins Instruction) Encode() [InstructionSize]byte {
	var out [InstructionSize]byte
	header := uint32(ins.Operation)<<12 | uint32(ins.Modes[0]) | uint32(ins.Modes[1])<<4 | uint32(ins.Modes[2])<<8
	out[0] = byte(header)
	out[1] = byte(header >> 8)
	out[2] = byte(header >> 16)
	writeWord(out[:], 3, ins.Words[0])
	writeWord(out[:], 7, ins.Words[1])
	writeWord(out[:], 11, ins.Words[2])
	return out
}

// FetchInstruction reads and decodes the instruction at addr,
// enforcing the 15-byte window bounds check against total memory.
func (c *CPU) FetchInstruction(addr uint32) (Instruction, error) {
	if uint64(addr)+InstructionSize > uint64(len(c.Memory)) {
		return Instruction{}, IllegalMemory
	}
	return DecodeInstruction(c.Memory[addr : addr+InstructionSize])
}

// Disassemble renders the instruction at addr as one line of text.
// It is the same pass as FetchInstruction but non-fatal: an undefined
// operation renders as "<unk>", an operand with a reserved addressing
// mode as "??(0x...)" and a register operand whose code names no
// register as "?0x..." instead of failing, so the monitor can walk
// straight through data.
func (c *CPU) Disassemble(addr uint32) string {
	if uint64(addr)+InstructionSize > uint64(len(c.Memory)) {
		return "<invalid>"
	}
	op, modes, words := splitInstruction(c.Memory[addr : addr+InstructionSize])
	if _, ok := operationNames[op]; !ok {
		return "<unk>"
	}
	return Instruction{Operation: op, Modes: modes, Words: words}.String()
}

func operandString(mode Addressing, raw uint32) string {
	switch mode {
	case Immediate:
		return fmt.Sprintf("#0x%X", raw)
	case Direct, Implied:
		if reg, ok := RegisterFromCode(raw); ok {
			return reg.String()
		}
		return fmt.Sprintf("?0x%X", raw)
	case RegisterIndirect:
		if reg, ok := RegisterFromCode(raw); ok {
			return "[" + reg.String() + "]"
		}
		return fmt.Sprintf("?0x%X", raw)
	case Indirect:
		return fmt.Sprintf("(0x%X)", raw)
	case Absolute:
		return fmt.Sprintf("0x%X", raw)
	case Relative:
		offset := int32(raw)
		if offset >= 0 {
			return fmt.Sprintf("+%d", offset)
		}
		return fmt.Sprintf("%d", offset)
	default:
		return fmt.Sprintf("??(0x%X)", raw)
	}
}

// String renders a decoded instruction in assembler-ish syntax, e.g.
// "add #0x5, #0x3". Only as many operands as operationArity lists
// for the operation are printed.
func (ins Instruction) String() string {
	arity, ok := operationArity[ins.Operation]
	if !ok {
		return "<invalid>"
	}
	name := ins.Operation.String()
	if arity == 0 {
		return name
	}
	out := name
	for i := 0; i < arity; i++ {
		if i == 0 {
			out += " "
		} else {
			out += ", "
		}
		out += operandString(ins.Modes[i], ins.Words[i])
	}
	return out
}
