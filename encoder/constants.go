package encoder

// Field positions within a 24-bit machine word, low bit first (spec.md §4.4):
// OPCODE(18,6) SRC-mode(16,2) SRC-reg(13,3) DST-mode(11,2) DST-reg(8,3) FUNCT(3,5) ARE(0,3).
const (
	AREShift     = 0
	FunctShift   = 3
	DstRegShift  = 8
	DstModeShift = 11
	SrcRegShift  = 13
	SrcModeShift = 16
	OpcodeShift  = 18
)

const (
	AREMask    = 0x7  // 3 bits
	FunctMask  = 0x1F // 5 bits
	RegMask    = 0x7  // 3 bits
	ModeMask   = 0x3  // 2 bits
	OpcodeMask = 0x3F // 6 bits

	WordMask = 1<<24 - 1 // a machine word never exceeds 24 bits
)
