package assembler

import "github.com/PilPara/Assembler/parser"

// Assemble runs the full per-file pipeline over rawLines (spec.md §5): the
// preprocessor always runs; the lexer/parser and first pass run next; the
// second pass runs only if the first pass collected no errors. Any stage's
// errors halt everything after it — ctx.Errors.HasErrors() after Assemble
// returns tells the caller whether the file produced usable Code/Data.
func (ctx *Context) Assemble(rawLines []string, initialIC uint32) {
	pp := parser.NewPreprocessor(ctx.Limits)
	ppLines := pp.Process(rawLines, ctx.Filename)
	ctx.Preprocessed = ppLines

	ctx.Macros = pp.Macros()
	for _, e := range pp.Errors().Errors {
		ctx.Errors.Add(e)
	}
	ctx.PreprocessOK = !ctx.Errors.HasErrors()
	if !ctx.PreprocessOK {
		return
	}

	ctx.FirstPass(ppLines)
	if ctx.Errors.HasErrors() {
		return
	}

	ctx.SecondPass(initialIC)
}
