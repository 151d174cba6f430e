// Package assembler drives the per-file pipeline: preprocess, lex, parse,
// first pass, second pass (spec.md §4.5-4.6, §5).
package assembler

import (
	"github.com/PilPara/Assembler/output"
	"github.com/PilPara/Assembler/parser"
)

// statementLine is one preprocessed source line, tokenized once and reused
// by both passes (spec.md §4.6 — "using the shared token list").
type statementLine struct {
	tokens []parser.Token
	pos    parser.Position
}

// Context is the full state of assembling one file. Each file gets a fresh
// Context; nothing crosses file boundaries (spec.md §5).
type Context struct {
	Filename string

	Symbols *parser.SymbolTable
	Macros  *parser.MacroTable
	Errors  *parser.ErrorList
	Limits  parser.Limits

	IC uint32 // running address counter — advances for both code and data words (spec.md §4.5)
	DC uint32 // data word count only, reported in the .ob header

	Preprocessed []string // normalized source lines; valid once PreprocessOK is true
	PreprocessOK bool     // true once the preprocessor stage itself raised no errors

	lines []statementLine

	Code []uint32 // code-image words, in source order
	Data []uint32 // data-image words, in source order

	entryNames  map[string]bool
	externNames map[string]bool

	Entries []output.Entry // resolved at second pass: NAME -> symbol's own address
	Externs []output.Entry // resolved at second pass: NAME -> address of the referencing word
}

// NewContext creates an empty Context for filename, with IC at initialIC and
// validation bound to limits (config.Config.ParserLimits(), ordinarily).
func NewContext(filename string, initialIC uint32, limits parser.Limits) *Context {
	return &Context{
		Filename:    filename,
		Symbols:     parser.NewSymbolTable(),
		Macros:      parser.NewMacroTable(),
		Errors:      &parser.ErrorList{},
		Limits:      limits,
		IC:          initialIC,
		entryNames:  make(map[string]bool),
		externNames: make(map[string]bool),
	}
}
