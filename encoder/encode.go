package encoder

import (
	"errors"

	"github.com/PilPara/Assembler/parser"
)

// ExtraValueShift is where an operand word's 21-bit value field begins; bits
// 0-2 below it always carry the ARE tag (spec.md §4.4).
const ExtraValueShift = 3

// EncodeInstruction emits the machine words for one parsed instruction:
// a header word, plus one extra word per operand that needs one. address is
// the address of the instruction's header word, used to compute RELATIVE
// operand distances.
func EncodeInstruction(inst *parser.Instruction, address uint32, symtab *parser.SymbolTable) ([]uint32, error) {
	header := uint32(inst.Info.Opcode&OpcodeMask) << OpcodeShift
	header |= encodeModeReg(inst.Src, SrcModeShift, SrcRegShift)
	header |= encodeModeReg(inst.Dst, DstModeShift, DstRegShift)
	header |= uint32(inst.Info.Funct&FunctMask) << FunctShift
	header |= uint32(parser.AREAbsolute) & AREMask

	words := []uint32{header}

	if inst.Src.ExtraWord() {
		w, err := encodeOperandWord(inst.Src, address, symtab, inst.Pos)
		if err != nil {
			return nil, err
		}
		words = append(words, w)
	}
	if inst.Dst.ExtraWord() {
		w, err := encodeOperandWord(inst.Dst, address, symtab, inst.Pos)
		if err != nil {
			return nil, err
		}
		words = append(words, w)
	}

	return words, nil
}

// encodeModeReg packs one operand's addressing mode and, for REGISTER mode,
// its register number, into the header word at the given field positions.
func encodeModeReg(op *parser.Operand, modeShift, regShift uint32) uint32 {
	if op == nil {
		return 0
	}
	word := (op.Mode.EncodedValue() & ModeMask) << modeShift
	if op.Mode == parser.AddrRegister {
		word |= (uint32(parser.RegisterNumber(op.Text)) & RegMask) << regShift
	}
	return word
}

// encodeOperandWord builds the extra word an IMMEDIATE, DIRECT, or RELATIVE
// operand contributes.
func encodeOperandWord(op *parser.Operand, instAddr uint32, symtab *parser.SymbolTable, pos parser.Position) (uint32, error) {
	switch op.Mode {
	case parser.AddrImmediate:
		return encodeValueField(int32(op.Value)) | (uint32(parser.AREAbsolute) & AREMask), nil

	case parser.AddrDirect:
		sym, ok := symtab.Lookup(op.Text)
		if !ok {
			return 0, Wrap(pos, errors.New("undefined symbol \""+op.Text+"\""), "resolving DIRECT operand")
		}
		if sym.External {
			return uint32(parser.AREExternal) & AREMask, nil
		}
		return encodeValueField(int32(sym.Address)) | (uint32(parser.ARERelocatable) & AREMask), nil

	case parser.AddrRelative:
		sym, ok := symtab.Lookup(op.Text)
		if !ok {
			return 0, Wrap(pos, errors.New("undefined symbol \""+op.Text+"\""), "resolving RELATIVE operand")
		}
		if sym.External {
			return uint32(parser.AREExternal) & AREMask, nil
		}
		distance := int32(sym.Address) - int32(instAddr) + 1
		return encodeValueField(distance) | (uint32(parser.AREAbsolute) & AREMask), nil

	default:
		return 0, nil
	}
}

// encodeValueField places value's low 21 bits (its two's-complement
// representation truncated to spec.md §6's immediate range) into an extra
// word's value field, above the 3-bit ARE tag.
func encodeValueField(value int32) uint32 {
	return (uint32(value) & 0x1FFFFF) << ExtraValueShift
}

// encodeRawWord masks value to a full 24-bit two's-complement word, with no
// ARE tag — the representation .data and .string words use (spec.md §4.3),
// since they are plain memory contents, not symbol references.
func encodeRawWord(value int) uint32 {
	return uint32(int32(value)) & WordMask
}
