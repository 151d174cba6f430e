package parser

import "fmt"

// Macro is a stored `mcro`/`mcroend` body: the raw lines between the header
// and terminator, exclusive of both (spec.md §3, §4.1).
type Macro struct {
	Name string
	Body []string
	Pos  Position
}

// MacroTable maps macro name to body. Names are unique within a file; a
// macro must be fully defined (committed at `mcroend`) before any call site
// that references it is seen — spec.md §9's "no forward macro references".
type MacroTable struct {
	macros map[string]*Macro
}

// NewMacroTable creates an empty macro table.
func NewMacroTable() *MacroTable {
	return &MacroTable{macros: make(map[string]*Macro)}
}

// Define stores a validated macro. Returns an error if the name is already
// taken; callers should already have checked this via Lookup so that a
// MCRO_NAME diagnostic with the right position can be raised instead.
func (mt *MacroTable) Define(m *Macro) error {
	if _, exists := mt.macros[m.Name]; exists {
		return fmt.Errorf("macro %q already defined", m.Name)
	}
	mt.macros[m.Name] = m
	return nil
}

// Lookup returns the macro registered under name, if any.
func (mt *MacroTable) Lookup(name string) (*Macro, bool) {
	m, ok := mt.macros[name]
	return m, ok
}

// Len returns the number of stored macros.
func (mt *MacroTable) Len() int {
	return len(mt.macros)
}
