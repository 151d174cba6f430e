package parser

import "fmt"

// Symbol is an entry in the symbol table (spec.md §3): a name (the label's
// lexeme), its address, and its external/entry flags.
// A symbol cannot be both External and locally defined with an address.
type Symbol struct {
	Name     string
	Address  uint32
	External bool
	Entry    bool
}

// SymbolTable owns every symbol defined in one file. Names are globally
// unique within the file (spec.md §3).
type SymbolTable struct {
	symbols map[string]*Symbol
	order   []string // insertion order, for deterministic iteration
}

// NewSymbolTable creates an empty symbol table.
func NewSymbolTable() *SymbolTable {
	return &SymbolTable{symbols: make(map[string]*Symbol)}
}

// Define inserts a new locally-defined symbol at address. Returns an error
// if the name is already defined (LABEL_DUPLICATE, per spec.md's scenario 5).
func (st *SymbolTable) Define(name string, address uint32) error {
	if _, exists := st.symbols[name]; exists {
		return fmt.Errorf("label %q already defined", name)
	}
	st.symbols[name] = &Symbol{Name: name, Address: address}
	st.order = append(st.order, name)
	return nil
}

// DefineExternal registers name as an extern declaration (address 0 until
// never locally resolved — externs are always resolved by the linker, out
// of this assembler's scope).
func (st *SymbolTable) DefineExternal(name string) error {
	if existing, exists := st.symbols[name]; exists {
		if !existing.External {
			return fmt.Errorf("symbol %q already defined locally", name)
		}
		return nil
	}
	st.symbols[name] = &Symbol{Name: name, External: true}
	st.order = append(st.order, name)
	return nil
}

// MarkEntry flags name as a declared entry. The caller is responsible for
// verifying at second-pass time that the symbol resolves to a local address.
func (st *SymbolTable) MarkEntry(name string) {
	if s, exists := st.symbols[name]; exists {
		s.Entry = true
		return
	}
	st.symbols[name] = &Symbol{Name: name, Entry: true}
	st.order = append(st.order, name)
}

// Lookup returns the symbol registered under name, if any.
func (st *SymbolTable) Lookup(name string) (*Symbol, bool) {
	s, ok := st.symbols[name]
	return s, ok
}

// All returns every symbol in definition order.
func (st *SymbolTable) All() []*Symbol {
	out := make([]*Symbol, 0, len(st.order))
	for _, name := range st.order {
		out = append(out, st.symbols[name])
	}
	return out
}
