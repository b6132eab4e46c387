package assembler

// Preprocess resolves every OperandLabel into an OperandAbsolute
// using the label table the parser built. Labels always compile to
// absolute addresses, never relative offsets.
func Preprocess(prog *Program) error {
	for i := range prog.Instructions {
		operands := prog.Instructions[i].Operands
		for j := range operands {
			if operands[j].Kind != OperandLabel {
				continue
			}
			addr, ok := prog.Labels[operands[j].Label]
			if !ok {
				return &AssembleError{Msg: "undefined label " + operands[j].Label}
			}
			operands[j] = Operand{Kind: OperandAbsolute, Address: addr}
		}
	}
	return nil
}
