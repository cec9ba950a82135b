package ast

import (
	"anuraglang/internal/frontend/lexer"
	"anuraglang/internal/source"
)

// IdentifierExpr is a variable reference, or a name in a declaration
type IdentifierExpr struct {
	Name string
	source.Location
}

func (i *IdentifierExpr) INode()                {}
func (i *IdentifierExpr) Expr()                 {}
func (i *IdentifierExpr) Loc() *source.Location { return &i.Location }

// IndexExpr: X[Index]
type IndexExpr struct {
	X     Expression
	Index Expression
	source.Location
}

func (i *IndexExpr) INode()                {}
func (i *IndexExpr) Expr()                 {}
func (i *IndexExpr) Loc() *source.Location { return &i.Location }

// BinaryExpr: X Op Y
type BinaryExpr struct {
	X  Expression
	Op lexer.Token
	Y  Expression
	source.Location
}

func (b *BinaryExpr) INode()                {}
func (b *BinaryExpr) Expr()                 {}
func (b *BinaryExpr) Loc() *source.Location { return &b.Location }

// UnaryExpr: Op X
type UnaryExpr struct {
	Op lexer.Token
	X  Expression
	source.Location
}

func (u *UnaryExpr) INode()                {}
func (u *UnaryExpr) Expr()                 {}
func (u *UnaryExpr) Loc() *source.Location { return &u.Location }

// CallExpr: Fun(Args...)
// Fun is whatever preceded the parentheses; only an IdentifierExpr can be
// called at runtime.
type CallExpr struct {
	Fun  Expression
	Args []Expression
	source.Location
}

func (c *CallExpr) INode()                {}
func (c *CallExpr) Expr()                 {}
func (c *CallExpr) Loc() *source.Location { return &c.Location }
