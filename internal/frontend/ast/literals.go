package ast

import "anuraglang/internal/source"

// NumberLit is an integer literal
type NumberLit struct {
	Value int64
	Raw   string // the literal as written
	source.Location
}

func (n *NumberLit) INode()                {} // Implements Node interface
func (n *NumberLit) Expr()                 {} // Expr is a marker interface for all expressions
func (n *NumberLit) Loc() *source.Location { return &n.Location }

// StringLit is a string literal; Value is already unescaped
type StringLit struct {
	Value string
	source.Location
}

func (s *StringLit) INode()                {} // Implements Node interface
func (s *StringLit) Expr()                 {} // Expr is a marker interface for all expressions
func (s *StringLit) Loc() *source.Location { return &s.Location }

// ArrayLit represents an array literal
// Examples: [], [1, 2, 3], ["a", [1], x]
type ArrayLit struct {
	Elts []Expression // list of elements, evaluated left to right
	source.Location
}

func (a *ArrayLit) INode()                {} // Implements Node interface
func (a *ArrayLit) Expr()                 {} // Expr is a marker interface for all expressions
func (a *ArrayLit) Loc() *source.Location { return &a.Location }
