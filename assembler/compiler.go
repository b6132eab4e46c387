package assembler

import "github.com/floofi-org/vixen/core"

// Compile walks a Program (with every label already resolved by
// Preprocess) and encodes each instruction through
// core.Instruction.Encode. Unfilled operand slots (an instruction
// using fewer than 3 operands) are emitted as Implied with a zero
// word, matching how the decoder treats an operand slot no
// instruction handler consults.
func Compile(prog *Program) ([]byte, error) {
	out := make([]byte, 0, len(prog.Instructions)*core.InstructionSize)
	for _, ins := range prog.Instructions {
		var modes [3]core.Addressing
		var words [3]uint32
		for i := 0; i < 3; i++ {
			if i >= len(ins.Operands) {
				modes[i] = core.Implied
				continue
			}
			mode, word, err := compileOperand(ins.Operands[i])
			if err != nil {
				return nil, err
			}
			modes[i] = mode
			words[i] = word
		}
		encoded := core.Instruction{Operation: ins.Operation, Modes: modes, Words: words}.Encode()
		out = append(out, encoded[:]...)
	}
	return out, nil
}

func compileOperand(op Operand) (core.Addressing, uint32, error) {
	switch op.Kind {
	case OperandLiteral:
		return core.Immediate, op.Literal, nil
	case OperandRegister:
		return core.Direct, uint32(op.Register), nil
	case OperandAbsolute:
		return core.Absolute, op.Address, nil
	case OperandRelative:
		return core.Relative, uint32(op.Relative), nil
	case OperandLabel:
		return 0, 0, &AssembleError{Msg: "internal error: unresolved label operand " + op.Label + " reached the compiler"}
	}
	return 0, 0, &AssembleError{Msg: "unknown operand kind"}
}
