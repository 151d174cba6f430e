package parser

// AddressingMode is one of the four operand addressing modes spec.md §4.3
// step 5 names. Values are bit flags so an instruction's permitted modes
// per slot can be expressed as a bitmask (spec.md §4.4).
type AddressingMode int

const (
	AddrImmediate AddressingMode = 1 << iota
	AddrDirect
	AddrRelative
	AddrRegister
)

// encodedValue returns the 2-bit field value spec.md §4.4 assigns to each
// addressing mode (IMMEDIATE=0, DIRECT=1, RELATIVE=2, REGISTER=3).
func (m AddressingMode) encodedValue() uint32 {
	switch m {
	case AddrImmediate:
		return 0
	case AddrDirect:
		return 1
	case AddrRelative:
		return 2
	case AddrRegister:
		return 3
	default:
		return 0
	}
}

// EncodedValue exports encodedValue for use by the encoder package.
func (m AddressingMode) EncodedValue() uint32 { return m.encodedValue() }

// InstructionInfo is one row of the ISA table: a mnemonic's opcode/funct pair,
// its expected operand count, and the addressing modes permitted per slot.
// Mnemonics sharing an opcode are disambiguated by funct (spec.md §4.4) —
// modeled as table data, never as per-opcode branching (spec.md §9).
type InstructionInfo struct {
	Opcode      uint32
	Funct       uint32
	NumOperands int
	SrcModes    AddressingMode // bitmask; 0 if the instruction takes no source operand
	DstModes    AddressingMode // bitmask; 0 if the instruction takes no destination operand
}

const (
	modeAll    = AddrImmediate | AddrDirect | AddrRelative | AddrRegister
	modeNoImm  = AddrDirect | AddrRelative | AddrRegister
	modeJump   = AddrDirect | AddrRelative
	modeLea    = AddrDirect | AddrRelative
)

// ISA is the fixed 16-mnemonic table (spec.md §4.4).
var ISA = map[string]InstructionInfo{
	"mov":  {Opcode: 0, Funct: 0, NumOperands: 2, SrcModes: modeAll, DstModes: modeNoImm},
	"cmp":  {Opcode: 1, Funct: 0, NumOperands: 2, SrcModes: modeAll, DstModes: modeAll},
	"add":  {Opcode: 2, Funct: 1, NumOperands: 2, SrcModes: modeAll, DstModes: modeNoImm},
	"sub":  {Opcode: 2, Funct: 2, NumOperands: 2, SrcModes: modeAll, DstModes: modeNoImm},
	"lea":  {Opcode: 4, Funct: 0, NumOperands: 2, SrcModes: modeLea, DstModes: modeNoImm},
	"clr":  {Opcode: 5, Funct: 1, NumOperands: 1, DstModes: modeNoImm},
	"not":  {Opcode: 5, Funct: 2, NumOperands: 1, DstModes: modeNoImm},
	"inc":  {Opcode: 5, Funct: 3, NumOperands: 1, DstModes: modeNoImm},
	"dec":  {Opcode: 5, Funct: 4, NumOperands: 1, DstModes: modeNoImm},
	"jmp":  {Opcode: 9, Funct: 1, NumOperands: 1, DstModes: modeJump},
	"bne":  {Opcode: 9, Funct: 2, NumOperands: 1, DstModes: modeJump},
	"jsr":  {Opcode: 9, Funct: 3, NumOperands: 1, DstModes: modeJump},
	"red":  {Opcode: 12, Funct: 0, NumOperands: 1, DstModes: modeNoImm},
	"prn":  {Opcode: 13, Funct: 0, NumOperands: 1, DstModes: modeAll},
	"rts":  {Opcode: 14, Funct: 0, NumOperands: 0},
	"stop": {Opcode: 15, Funct: 0, NumOperands: 0},
}

// IsInstruction reports whether name is a reserved mnemonic.
func IsInstruction(name string) bool {
	_, ok := ISA[name]
	return ok
}

// IsRegister reports whether name is one of r0-r7.
func IsRegister(name string) bool {
	if len(name) != 2 || name[0] != 'r' {
		return false
	}
	return name[1] >= '0' && name[1] <= '7'
}

// RegisterNumber returns the register number encoded in name (0-7). Callers
// must check IsRegister first.
func RegisterNumber(name string) int {
	return int(name[1] - '0')
}

// Directives is the fixed set of directive keywords (spec.md §4.3).
var Directives = map[string]bool{
	"data":   true,
	"string": true,
	"entry":  true,
	"extern": true,
}

// IsDirective reports whether name is a directive keyword.
func IsDirective(name string) bool {
	return Directives[name]
}

// ARE is the 3-bit relocation tag spec.md §4.4/GLOSSARY defines.
type ARE uint32

const (
	AREExternal   ARE = 1
	ARERelocatable ARE = 2
	AREAbsolute   ARE = 4
)
