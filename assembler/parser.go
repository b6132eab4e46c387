package assembler

import (
	"strings"

	"github.com/floofi-org/vixen/core"
)

// Parser walks a token stream and builds a Program in one pass,
// computing label addresses inline (a label definition is assigned
// the address of the next instruction). Operand label references are
// left as OperandLabel for the preprocessor to resolve once every
// label in the source has been seen, which is what makes forward
// references ("jmp loop_end" before "loop_end:" is defined) legal.
type Parser struct {
	tokens []Token
	pos    int
}

// NewParser prepares a Parser over a token stream.
func NewParser(tokens []Token) *Parser {
	return &Parser{tokens: tokens}
}

func (p *Parser) peek() Token { return p.tokens[p.pos] }

func (p *Parser) next() Token {
	t := p.tokens[p.pos]
	if t.Kind != TokEOF {
		p.pos++
	}
	return t
}

// Parse consumes the whole token stream and returns the resulting
// Program.
func (p *Parser) Parse() (*Program, error) {
	prog := &Program{Labels: map[string]uint32{}}
	addr := uint32(core.ROMBase)

	for {
		// Blank lines and lines with nothing but a comment produce a
		// bare TokNewline; skip them freely.
		for p.peek().Kind == TokNewline {
			p.next()
		}
		if p.peek().Kind == TokEOF {
			return prog, nil
		}

		if p.peek().Kind == TokIdentifier && p.lookaheadColon() {
			name := p.next().Text
			p.next() // colon
			label := strings.ToLower(name)
			if _, exists := prog.Labels[label]; exists {
				return nil, &ParseError{Line: p.peek().Line, Msg: "duplicate label " + label}
			}
			prog.Labels[label] = addr
			if err := p.expectEndOfLine(); err != nil {
				return nil, err
			}
			continue
		}

		ins, err := p.parseInstruction()
		if err != nil {
			return nil, err
		}
		prog.Instructions = append(prog.Instructions, ins)
		addr += core.InstructionSize
		if err := p.expectEndOfLine(); err != nil {
			return nil, err
		}
	}
}

// lookaheadColon reports whether the token after the current
// identifier is a colon, distinguishing a label definition ("loop:")
// from a mnemonic or label-operand reference on the same line.
func (p *Parser) lookaheadColon() bool {
	return p.pos+1 < len(p.tokens) && p.tokens[p.pos+1].Kind == TokColon
}

func (p *Parser) expectEndOfLine() error {
	t := p.peek()
	if t.Kind == TokNewline || t.Kind == TokEOF {
		if t.Kind == TokNewline {
			p.next()
		}
		return nil
	}
	return &ParseError{Line: t.Line, Msg: "expected end of line, found unexpected trailing token"}
}

func (p *Parser) parseInstruction() (Instruction, error) {
	mnemonicTok := p.next()
	if mnemonicTok.Kind != TokIdentifier {
		return Instruction{}, &ParseError{Line: mnemonicTok.Line, Msg: "expected mnemonic"}
	}
	name := strings.ToLower(mnemonicTok.Text)
	op, ok := core.OperationFromName(name)
	if !ok {
		return Instruction{}, &ParseError{Line: mnemonicTok.Line, Msg: "unknown mnemonic " + name}
	}

	var operands []Operand
	for len(operands) < 3 {
		t := p.peek()
		if t.Kind == TokNewline || t.Kind == TokEOF {
			break
		}
		if len(operands) > 0 {
			if t.Kind != TokComma {
				break
			}
			p.next()
		}
		operand, err := p.parseOperand()
		if err != nil {
			return Instruction{}, err
		}
		operands = append(operands, operand)
	}

	return Instruction{Operation: op, Operands: operands, Line: mnemonicTok.Line}, nil
}

func (p *Parser) parseOperand() (Operand, error) {
	t := p.next()
	switch t.Kind {
	case TokHash:
		num := p.next()
		if num.Kind != TokNumber {
			return Operand{}, &ParseError{Line: num.Line, Msg: "expected numeric literal after #"}
		}
		return Operand{Kind: OperandLiteral, Literal: num.Value}, nil

	case TokPlus:
		num := p.next()
		if num.Kind != TokNumber {
			return Operand{}, &ParseError{Line: num.Line, Msg: "expected numeric offset after +"}
		}
		return Operand{Kind: OperandRelative, Relative: int32(num.Value)}, nil

	case TokMinus:
		num := p.next()
		if num.Kind != TokNumber {
			return Operand{}, &ParseError{Line: num.Line, Msg: "expected numeric offset after -"}
		}
		return Operand{Kind: OperandRelative, Relative: -int32(num.Value)}, nil

	case TokNumber:
		return Operand{Kind: OperandAbsolute, Address: t.Value}, nil

	case TokIdentifier:
		name := strings.ToLower(t.Text)
		if reg, ok := core.RegisterFromName(name); ok {
			return Operand{Kind: OperandRegister, Register: reg}, nil
		}
		return Operand{Kind: OperandLabel, Label: name}, nil
	}
	return Operand{}, &ParseError{Line: t.Line, Msg: "unexpected token in operand position"}
}
