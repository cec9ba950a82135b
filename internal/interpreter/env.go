package interpreter

import (
	"maps"
	"slices"

	"anuraglang/internal/frontend/ast"
)

// Environment is the single flat variable table of a run. There is no
// nesting: conditionals, loops and function bodies all read and write it.
type Environment struct {
	vars map[string]Value
}

// NewEnvironment creates an empty environment
func NewEnvironment() *Environment {
	return &Environment{vars: make(map[string]Value)}
}

// Get looks up a variable
func (e *Environment) Get(name string) (Value, bool) {
	v, ok := e.vars[name]
	return v, ok
}

// Set binds a variable, creating or overwriting it
func (e *Environment) Set(name string, v Value) {
	e.vars[name] = v
}

// Len returns the number of bound variables
func (e *Environment) Len() int {
	return len(e.vars)
}

// Names returns the bound variable names in sorted order
func (e *Environment) Names() []string {
	return slices.Sorted(maps.Keys(e.vars))
}

// Snapshot is a frozen copy of every binding
type Snapshot map[string]Value

// Snapshot copies the whole table. Values are shared, which is safe since
// no value is mutated in place.
func (e *Environment) Snapshot() Snapshot {
	return maps.Clone(e.vars)
}

// Restore replaces the table with a snapshot, discarding every change made
// since it was taken. The snapshot must not be restored twice.
func (e *Environment) Restore(s Snapshot) {
	if s == nil {
		s = make(Snapshot)
	}
	e.vars = s
}

// Function is a declared function: its parameter names and body
type Function struct {
	Name   string
	Params []string
	Body   *ast.Block
	Decl   *ast.FuncDecl
}

// FunctionTable maps names to their latest declaration. Entries are never
// removed and are not affected by call rollback.
type FunctionTable struct {
	funcs map[string]*Function
}

// NewFunctionTable creates an empty function table
func NewFunctionTable() *FunctionTable {
	return &FunctionTable{funcs: make(map[string]*Function)}
}

// Declare registers a function, shadowing any earlier one with the same name
func (t *FunctionTable) Declare(decl *ast.FuncDecl) *Function {
	fn := &Function{
		Name:   decl.Name.Name,
		Params: decl.ParamNames(),
		Body:   decl.Body,
		Decl:   decl,
	}
	t.funcs[fn.Name] = fn
	return fn
}

// Lookup finds a function by name
func (t *FunctionTable) Lookup(name string) (*Function, bool) {
	fn, ok := t.funcs[name]
	return fn, ok
}

// Names returns the declared function names in sorted order
func (t *FunctionTable) Names() []string {
	return slices.Sorted(maps.Keys(t.funcs))
}
