package assembler

import "github.com/PilPara/Assembler/parser"

// maxAddress is the largest address a 24-bit word can hold (spec.md §4.5).
const maxAddress = 1<<24 - 1

// FirstPass tokenizes every preprocessed line, builds the symbol table, and
// advances IC/DC per spec.md §4.5. ppLines has already had comments,
// blank lines, and macro bodies resolved by the preprocessor; line numbers
// here are positions within that stream, not the original file.
func (ctx *Context) FirstPass(ppLines []string) {
	lx := parser.NewLexer(ctx.Errors, ctx.Filename)

	for i, line := range ppLines {
		lineNo := i + 1
		pos := parser.Position{Filename: ctx.Filename, Line: lineNo}

		toks := lx.Tokenize(line, lineNo)
		ctx.lines = append(ctx.lines, statementLine{tokens: toks, pos: pos})

		stmt := parser.ParseLine(toks, pos, true, ctx.Errors, ctx.Limits)
		if stmt == nil {
			continue
		}
		ctx.applyFirstPass(stmt, pos)
	}
}

func (ctx *Context) applyFirstPass(stmt *parser.Statement, pos parser.Position) {
	switch {
	case stmt.Inst != nil:
		inst := stmt.Inst
		if inst.Label != "" {
			ctx.defineLabel(inst.Label, pos)
		}
		ctx.IC += uint32(inst.WordCount())

	case stmt.Dir != nil:
		dir := stmt.Dir
		switch dir.Kind {
		case parser.DirEntry:
			ctx.entryNames[dir.Name] = true

		case parser.DirExtern:
			ctx.externNames[dir.Name] = true
			if err := ctx.Symbols.DefineExternal(dir.Name); err != nil {
				ctx.Errors.Add(parser.NewError(parser.ErrLabelDuplicate, pos, dir.Name, "%s", err.Error()))
			}

		default: // DirData, DirString
			if dir.Label != "" {
				ctx.defineLabel(dir.Label, pos)
			}
			n := uint32(dir.WordCount())
			// The data directive's bug-prone detail (spec.md §4.5): DC and IC
			// both advance by the same count. DC is reported in the header;
			// IC keeps serving as the single running address counter that
			// every label's Address is stamped from.
			ctx.DC += n
			ctx.IC += n
		}
	}
}

func (ctx *Context) defineLabel(name string, pos parser.Position) {
	if !parser.ValidateLabelName(name, pos, ctx.Errors, ctx.Limits) {
		return
	}
	if ctx.IC > maxAddress {
		ctx.Errors.Add(parser.NewError(parser.ErrAddrOutOfBounds, pos, name, "label address exceeds %d", maxAddress))
		return
	}
	if err := ctx.Symbols.Define(name, ctx.IC); err != nil {
		ctx.Errors.Add(parser.NewError(parser.ErrLabelDuplicate, pos, name, "%s", err.Error()))
	}
}
