package core

// operationArity records how many operand slots each operation reads
// for disassembly purposes. Instruction handlers validate addressing
// modes themselves; this table only controls how many "args" get
// printed.
var operationArity = map[Operation]int{
	OpAdd: 2, OpSub: 2, OpMul: 2, OpDiv: 2, OpMod: 2,
	OpSqt: 1, OpCbt: 1, OpSqr: 1, OpCbe: 1, OpMin: 2, OpMax: 2,
	OpAdc: 2, OpSbc: 2,

	OpAnd: 2, OpOr: 2, OpXor: 2, OpNor: 2, OpNad: 2, OpImp: 2,
	OpNot: 0, OpShl: 1, OpShr: 1, OpRol: 1, OpRor: 1, OpAsr: 1,

	OpInc: 1, OpDec: 1, OpIna: 0, OpDea: 0, OpInx: 0, OpDex: 0,
	OpIny: 0, OpDey: 0,

	OpCmp: 1, OpCpx: 1, OpCpy: 1, OpLte: 1, OpGte: 1,
	OpSrz: 1, OpSrc: 1, OpSro: 1,

	OpMov: 2, OpLdr: 2, OpStr: 2, OpSwp: 2, OpClr: 1,

	OpJmp: 1, OpJsr: 1, OpRet: 0, OpIrt: 0,
	OpBeq: 1, OpBne: 1, OpBec: 1, OpBnc: 1, OpBeo: 1, OpBno: 1,
	OpBpl: 1, OpBmi: 1, OpInt: 0, OpNop: 0, OpJam: 0,

	OpPha: 0, OpPla: 0, OpPhx: 0, OpPlx: 0, OpPhy: 0, OpPly: 0,
	OpPsh: 1, OpPll: 1, OpPhp: 0, OpPlp: 0,

	OpSec: 0, OpClc: 0, OpSei: 0, OpCli: 0, OpSed: 0, OpCld: 0,
	OpClv: 0, OpBit: 1,
}

// modeAllowed reports whether mode appears in the set, used by
// instruction handlers to reject illegal addressing with
// IllegalInstruction before acting on an operand.
func modeAllowed(mode Addressing, set []Addressing) bool {
	for _, m := range set {
		if m == mode {
			return true
		}
	}
	return false
}

// Shared mode sets, named after the role they play for the consuming
// instruction.
var (
	numericSourceModes = []Addressing{Immediate, Direct, Indirect, Absolute, Relative, RegisterIndirect}
	writableDestModes  = []Addressing{Direct, Indirect, Absolute, RegisterIndirect}
	branchTargetModes  = []Addressing{Absolute, Relative, Indirect, RegisterIndirect}
	memoryOnlyModes    = []Addressing{Absolute}
	impliedOnlyModes   = []Addressing{Implied}
)
