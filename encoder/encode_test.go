package encoder

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/PilPara/Assembler/parser"
)

func field(word uint32, shift, mask uint32) uint32 {
	return (word >> shift) & mask
}

func TestEncodeInstructionRegisterRegisterSharesOneWord(t *testing.T) {
	inst := &parser.Instruction{
		Mnemonic: "mov",
		Info:     parser.ISA["mov"],
		Src:      &parser.Operand{Mode: parser.AddrRegister, Text: "r1"},
		Dst:      &parser.Operand{Mode: parser.AddrRegister, Text: "r2"},
	}
	words, err := EncodeInstruction(inst, 100, parser.NewSymbolTable())
	require.NoError(t, err)
	require.Len(t, words, 1)

	w := words[0]
	require.Equal(t, uint32(0), field(w, OpcodeShift, OpcodeMask))
	require.Equal(t, uint32(3), field(w, SrcModeShift, ModeMask))
	require.Equal(t, uint32(1), field(w, SrcRegShift, RegMask))
	require.Equal(t, uint32(3), field(w, DstModeShift, ModeMask))
	require.Equal(t, uint32(2), field(w, DstRegShift, RegMask))
	require.Equal(t, uint32(parser.AREAbsolute), field(w, AREShift, AREMask))
}

func TestEncodeInstructionImmediateAndDirect(t *testing.T) {
	symtab := parser.NewSymbolTable()
	require.NoError(t, symtab.Define("COUNT", 120))

	inst := &parser.Instruction{
		Mnemonic: "mov",
		Info:     parser.ISA["mov"],
		Src:      &parser.Operand{Mode: parser.AddrImmediate, Value: 5},
		Dst:      &parser.Operand{Mode: parser.AddrDirect, Text: "COUNT"},
	}
	words, err := EncodeInstruction(inst, 100, symtab)
	require.NoError(t, err)
	require.Len(t, words, 3)

	require.Equal(t, uint32(5), field(words[1], ExtraValueShift, 0x1FFFFF))
	require.Equal(t, uint32(parser.AREAbsolute), field(words[1], AREShift, AREMask))

	require.Equal(t, uint32(120), field(words[2], ExtraValueShift, 0x1FFFFF))
	require.Equal(t, uint32(parser.ARERelocatable), field(words[2], AREShift, AREMask))
}

func TestEncodeInstructionExternalOperandHasNoValueField(t *testing.T) {
	symtab := parser.NewSymbolTable()
	require.NoError(t, symtab.DefineExternal("X"))

	inst := &parser.Instruction{
		Mnemonic: "jmp",
		Info:     parser.ISA["jmp"],
		Dst:      &parser.Operand{Mode: parser.AddrDirect, Text: "X"},
	}
	words, err := EncodeInstruction(inst, 100, symtab)
	require.NoError(t, err)
	require.Len(t, words, 2)
	require.Equal(t, uint32(parser.AREExternal), words[1]&AREMask)
	require.Equal(t, uint32(0), words[1]>>ExtraValueShift)
}

func TestEncodeInstructionRelativeDistanceIncludesOffsetOne(t *testing.T) {
	symtab := parser.NewSymbolTable()
	require.NoError(t, symtab.Define("LOOP", 100))

	inst := &parser.Instruction{
		Mnemonic: "jmp",
		Info:     parser.ISA["jmp"],
		Dst:      &parser.Operand{Mode: parser.AddrRelative, Text: "LOOP"},
	}
	// Header word at address 105: distance = 100 - 105 + 1 = -4.
	words, err := EncodeInstruction(inst, 105, symtab)
	require.NoError(t, err)
	require.Len(t, words, 2)

	raw := int32(words[1]>>ExtraValueShift) << 11 >> 11 // sign-extend 21 bits
	require.Equal(t, int32(-4), raw)
}

func TestEncodeInstructionUndefinedSymbolErrors(t *testing.T) {
	inst := &parser.Instruction{
		Mnemonic: "jmp",
		Info:     parser.ISA["jmp"],
		Dst:      &parser.Operand{Mode: parser.AddrDirect, Text: "NOPE"},
	}
	_, err := EncodeInstruction(inst, 100, parser.NewSymbolTable())
	require.Error(t, err)
}

func TestEncodeDataDirective(t *testing.T) {
	dir := &parser.Directive{Kind: parser.DirData, Ints: []int{1, -1, 0}}
	words := EncodeData(dir)
	require.Equal(t, []uint32{1, WordMask, 0}, words)
}

func TestEncodeStringDirectiveAddsNulTerminator(t *testing.T) {
	dir := &parser.Directive{Kind: parser.DirString, Str: "hi"}
	words := EncodeData(dir)
	require.Equal(t, []uint32{uint32('h'), uint32('i'), 0}, words)
}
