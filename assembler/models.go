package assembler

import "github.com/floofi-org/vixen/core"

// OperandKind tags how an operand's value should be read once parsing
// is done. There is no surface syntax for Indirect/RegisterIndirect:
// those addressing modes are reachable only from hand-encoded ROM
// images, not from assembly text.
type OperandKind int

const (
	OperandLiteral OperandKind = iota
	OperandRegister
	OperandAbsolute
	OperandRelative
	OperandLabel
)

// Operand is one parsed instruction argument, before (OperandLabel)
// or after (everything else) label resolution.
type Operand struct {
	Kind     OperandKind
	Literal  uint32
	Register core.RegisterID
	Address  uint32
	Relative int32
	Label    string
}

// Instruction is one parsed assembly line: a mnemonic plus 0-3
// operands, still carrying the source line for error messages.
type Instruction struct {
	Operation core.Operation
	Operands  []Operand
	Line      int
}

// Program is the parser's output: every label's resolved byte
// address (label definitions consume no space, so addresses are
// assigned by walking the instruction stream) plus the instruction
// list in source order.
type Program struct {
	Labels       map[string]uint32
	Instructions []Instruction
}
