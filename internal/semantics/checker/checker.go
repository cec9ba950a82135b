package checker

import (
	"anuraglang/internal/context"
	"anuraglang/internal/diagnostics"
	"anuraglang/internal/frontend/ast"
)

// Checker validates program structure (Pass 3). It only reports warnings;
// a program with warnings still runs.
type Checker struct {
	ctx         *context.RunContext
	currentFile string
}

// New creates a new checker
func New(ctx *context.RunContext) *Checker {
	return &Checker{
		ctx: ctx,
	}
}

// Run executes Pass 3 for all parsed files
func Run(ctx *context.RunContext) {
	checker := New(ctx)

	for _, file := range ctx.GetAllFiles() {
		checker.CheckFile(file)
	}
}

// CheckFile checks a single source file
func (c *Checker) CheckFile(file *context.SourceFile) {
	c.currentFile = file.Path

	if file.AST == nil {
		return
	}

	c.analyzeStmts(file.AST.Nodes)
}

// checkExpr looks for calls that can never succeed
func (c *Checker) checkExpr(expr ast.Expression) {
	switch e := expr.(type) {
	case *ast.ArrayLit:
		for _, elt := range e.Elts {
			c.checkExpr(elt)
		}
	case *ast.IndexExpr:
		c.checkExpr(e.X)
		c.checkExpr(e.Index)
	case *ast.BinaryExpr:
		c.checkExpr(e.X)
		c.checkExpr(e.Y)
	case *ast.UnaryExpr:
		c.checkExpr(e.X)
	case *ast.CallExpr:
		if _, ok := e.Fun.(*ast.IdentifierExpr); !ok {
			c.ctx.Diagnostics.Add(diagnostics.Uncallable(c.currentFile, e.Fun.Loc()))
			c.checkExpr(e.Fun)
		}
		for _, arg := range e.Args {
			c.checkExpr(arg)
		}
	}
}
