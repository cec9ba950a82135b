package ast

import "anuraglang/internal/source"

// AssignStmt: assume name = value;
type AssignStmt struct {
	Name  *IdentifierExpr
	Value Expression
	source.Location
}

func (a *AssignStmt) INode()                {}
func (a *AssignStmt) Stmt()                 {}
func (a *AssignStmt) Loc() *source.Location { return &a.Location }

// ProduceStmt: produce(value);
type ProduceStmt struct {
	Value Expression
	source.Location
}

func (p *ProduceStmt) INode()                {}
func (p *ProduceStmt) Stmt()                 {}
func (p *ProduceStmt) Loc() *source.Location { return &p.Location }

// TakeStmt: take(name);
type TakeStmt struct {
	Name *IdentifierExpr
	source.Location
}

func (t *TakeStmt) INode()                {}
func (t *TakeStmt) Stmt()                 {}
func (t *TakeStmt) Loc() *source.Location { return &t.Location }

// IncaseStmt: incase (cond) { ... } otherwise { ... }
// The otherwise branch is mandatory.
type IncaseStmt struct {
	Cond Expression
	Then *Block
	Else *Block
	source.Location
}

func (i *IncaseStmt) INode()                {}
func (i *IncaseStmt) Stmt()                 {}
func (i *IncaseStmt) Loc() *source.Location { return &i.Location }

// WhileStmt: while (cond) { ... }
type WhileStmt struct {
	Cond Expression
	Body *Block
	source.Location
}

func (w *WhileStmt) INode()                {}
func (w *WhileStmt) Stmt()                 {}
func (w *WhileStmt) Loc() *source.Location { return &w.Location }

// FuncDecl: function name(a, b) { ... }
type FuncDecl struct {
	Name   *IdentifierExpr
	Params []*IdentifierExpr
	Body   *Block
	source.Location
}

func (f *FuncDecl) INode()                {}
func (f *FuncDecl) Stmt()                 {}
func (f *FuncDecl) Loc() *source.Location { return &f.Location }

// ParamNames returns the parameter names in declaration order
func (f *FuncDecl) ParamNames() []string {
	names := make([]string, len(f.Params))
	for i, p := range f.Params {
		names[i] = p.Name
	}
	return names
}

// ReturnStmt: return result;
type ReturnStmt struct {
	Result Expression
	source.Location
}

func (r *ReturnStmt) INode()                {}
func (r *ReturnStmt) Stmt()                 {}
func (r *ReturnStmt) Loc() *source.Location { return &r.Location }
