package assembler

import (
	"sort"

	"github.com/PilPara/Assembler/encoder"
	"github.com/PilPara/Assembler/output"
	"github.com/PilPara/Assembler/parser"
)

// SecondPass replays the lines cached by FirstPass, this time encoding words
// and resolving .entry/.extern references, per spec.md §4.6. initialIC must
// match the IC FirstPass started from.
func (ctx *Context) SecondPass(initialIC uint32) {
	addr := initialIC
	resolved := make(map[string]bool)

	for _, ln := range ctx.lines {
		stmt := parser.ParseLine(ln.tokens, ln.pos, false, ctx.Errors, ctx.Limits)
		if stmt == nil {
			continue
		}

		switch {
		case stmt.Inst != nil:
			inst := stmt.Inst
			if inst.Label != "" && ctx.entryNames[inst.Label] {
				ctx.Entries = append(ctx.Entries, output.Entry{Name: inst.Label, Address: addr})
				resolved[inst.Label] = true
			}
			ctx.recordExternRefs(inst, addr)

			words, err := encoder.EncodeInstruction(inst, addr, ctx.Symbols)
			if err != nil {
				ctx.Errors.Add(parser.NewError(parser.ErrSymbolNotFound, ln.pos, "", "%s", err.Error()))
				addr += uint32(inst.WordCount())
				continue
			}
			ctx.Code = append(ctx.Code, words...)
			addr += uint32(len(words))

		case stmt.Dir != nil:
			dir := stmt.Dir
			switch dir.Kind {
			case parser.DirData, parser.DirString:
				if dir.Label != "" && ctx.entryNames[dir.Label] {
					ctx.Entries = append(ctx.Entries, output.Entry{Name: dir.Label, Address: addr})
					resolved[dir.Label] = true
				}
				words := encoder.EncodeData(dir)
				ctx.Data = append(ctx.Data, words...)
				addr += uint32(len(words))
			default: // DirEntry, DirExtern: no words, no IC advance
			}
		}
	}

	var unresolved []string
	for name := range ctx.entryNames {
		if !resolved[name] {
			unresolved = append(unresolved, name)
		}
	}
	// Map iteration order is randomized; sort so that a file with multiple
	// dangling .entry names reports them in the same order on every run
	// (spec.md §5's deterministic-error-ordering invariant).
	sort.Strings(unresolved)
	for _, name := range unresolved {
		ctx.Errors.Add(parser.NewError(parser.ErrSymbolNotFound, parser.Position{Filename: ctx.Filename}, name,
			".entry %q was never defined in this file", name))
	}
}

// recordExternRefs appends one output.Entry per operand that names an
// extern symbol, addressed at the extra word that carries the reference —
// not the instruction's header word (spec.md §4.6).
func (ctx *Context) recordExternRefs(inst *parser.Instruction, headerAddr uint32) {
	extraAddr := headerAddr + 1

	check := func(op *parser.Operand) {
		if op == nil {
			return
		}
		if op.Mode != parser.AddrDirect && op.Mode != parser.AddrRelative {
			return
		}
		if ctx.externNames[op.Text] {
			ctx.Externs = append(ctx.Externs, output.Entry{Name: op.Text, Address: extraAddr})
		}
	}

	if inst.Src.ExtraWord() {
		check(inst.Src)
		extraAddr++
	}
	if inst.Dst.ExtraWord() {
		check(inst.Dst)
		extraAddr++
	}
}
