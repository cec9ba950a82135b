// Package ast defines the syntax tree produced by the parser.
//
// The tree is a closed sum type: every statement implements Statement and
// every expression implements Expression. Nodes are built once by the
// parser and never mutated afterwards.
package ast

import "anuraglang/internal/source"

// Node is implemented by every syntax tree node
type Node interface {
	INode()
	Loc() *source.Location
}

// Statement is a node that can appear in a block
type Statement interface {
	Node
	Stmt()
}

// Expression is a node that evaluates to a value
type Expression interface {
	Node
	Expr()
}

// Module is a parsed program: its top-level statements in source order
type Module struct {
	FullPath string
	Nodes    []Statement
}

// Block is an ordered sequence of statements between braces
type Block struct {
	Nodes []Statement
	source.Location
}

func (b *Block) INode()                {}
func (b *Block) Loc() *source.Location { return &b.Location }
