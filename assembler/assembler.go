package assembler

// Assemble runs the full scan → parse → preprocess → compile
// pipeline over source text, returning the ROM byte image that
// core.CPU.LoadROM expects at core.ROMBase.
func Assemble(source string) ([]byte, error) {
	prog, err := Parse(source)
	if err != nil {
		return nil, err
	}
	if err := Preprocess(prog); err != nil {
		return nil, err
	}
	return Compile(prog)
}

// Parse runs the scan → parse stages only, returning the Program
// with its label table built but operands still possibly holding
// OperandLabel, for callers that want to inspect the label table
// before compiling.
func Parse(source string) (*Program, error) {
	tokens, err := NewScanner(source).Scan()
	if err != nil {
		return nil, err
	}
	return NewParser(tokens).Parse()
}
