package semantics

import (
	"anuraglang/internal/frontend/ast"
)

// SymbolKind represents how a name came to be bound
type SymbolKind int

const (
	SymbolVar   SymbolKind = iota // bound by assume
	SymbolInput                   // bound by take
	SymbolParam                   // a function parameter
	SymbolFunc                    // a declared function
)

// String returns a string representation of the SymbolKind
func (k SymbolKind) String() string {
	switch k {
	case SymbolVar:
		return "variable"
	case SymbolInput:
		return "input"
	case SymbolParam:
		return "parameter"
	case SymbolFunc:
		return "function"
	default:
		return "unknown"
	}
}

// Symbol is a name together with the first node that binds it.
//
// The language has one flat environment, so a symbol records that the name
// is bound somewhere in the program, not where it is visible.
type Symbol struct {
	Name string
	Kind SymbolKind
	Decl ast.Node // Back-reference to the first binding node
	// Count is how many binding sites share the name
	Count int
}

// NewSymbolWithDecl creates a new symbol with its declaration node
func NewSymbolWithDecl(name string, kind SymbolKind, decl ast.Node) *Symbol {
	return &Symbol{
		Name:  name,
		Kind:  kind,
		Decl:  decl,
		Count: 1,
	}
}

// SymbolTable records bindings in the order they were first seen
type SymbolTable struct {
	symbols map[string]*Symbol
	order   []string
}

// NewSymbolTable creates an empty symbol table
func NewSymbolTable() *SymbolTable {
	return &SymbolTable{symbols: make(map[string]*Symbol)}
}

// Declare records a binding. If the name is already present the first
// symbol is kept, its Count is bumped and false is returned.
func (st *SymbolTable) Declare(name string, sym *Symbol) bool {
	if prev, ok := st.symbols[name]; ok {
		prev.Count++
		return false
	}
	st.symbols[name] = sym
	st.order = append(st.order, name)
	return true
}

// Lookup finds a symbol by name
func (st *SymbolTable) Lookup(name string) (*Symbol, bool) {
	sym, ok := st.symbols[name]
	return sym, ok
}

// Len returns the number of distinct names
func (st *SymbolTable) Len() int {
	return len(st.order)
}

// Symbols returns every symbol in first-seen order
func (st *SymbolTable) Symbols() []*Symbol {
	out := make([]*Symbol, 0, len(st.order))
	for _, name := range st.order {
		out = append(out, st.symbols[name])
	}
	return out
}

// Scope holds the two namespaces of a program. A name may be both a
// variable and a function.
type Scope struct {
	Variables *SymbolTable
	Functions *SymbolTable
}

// NewScope creates an empty scope
func NewScope() *Scope {
	return &Scope{
		Variables: NewSymbolTable(),
		Functions: NewSymbolTable(),
	}
}
