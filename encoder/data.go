package encoder

import "github.com/PilPara/Assembler/parser"

// EncodeData emits the machine words a .data or .string directive
// contributes: one raw 24-bit word per value, no ARE tag (spec.md §4.3).
// .entry and .extern contribute no words and are ignored here.
func EncodeData(dir *parser.Directive) []uint32 {
	switch dir.Kind {
	case parser.DirData:
		words := make([]uint32, len(dir.Ints))
		for i, v := range dir.Ints {
			words[i] = encodeRawWord(v)
		}
		return words

	case parser.DirString:
		words := make([]uint32, len(dir.Str)+1)
		for i := 0; i < len(dir.Str); i++ {
			words[i] = encodeRawWord(int(dir.Str[i]))
		}
		words[len(dir.Str)] = 0
		return words

	default:
		return nil
	}
}
