package collector

import (
	"anuraglang/internal/context"
	"anuraglang/internal/diagnostics"
	"anuraglang/internal/frontend/ast"
	"anuraglang/internal/semantics"
	"anuraglang/internal/source"
)

// Collector walks the AST and records every binding site (Pass 1).
// Because the environment is flat, bindings inside function bodies and
// nested blocks are recorded in the same tables as top-level ones.
type Collector struct {
	ctx          *context.RunContext
	currentScope *semantics.Scope
	currentFile  string
}

// New creates a new binding collector
func New(ctx *context.RunContext) *Collector {
	return &Collector{
		ctx: ctx,
	}
}

// Run executes Pass 1 for all parsed files
func Run(ctx *context.RunContext) {
	collector := New(ctx)

	for _, file := range ctx.GetAllFiles() {
		collector.CollectFile(file)
	}
}

// CollectFile collects bindings from a single source file
func (c *Collector) CollectFile(file *context.SourceFile) {
	c.currentFile = file.Path

	if file.Scope == nil {
		c.ctx.InitializeSemantics(file)
	}

	c.currentScope = file.Scope

	if file.AST != nil {
		c.collectStmts(file.AST.Nodes)
	}
}

func (c *Collector) collectStmts(nodes []ast.Statement) {
	for _, node := range nodes {
		c.collectStmt(node)
	}
}

func (c *Collector) collectBlock(block *ast.Block) {
	if block != nil {
		c.collectStmts(block.Nodes)
	}
}

// collectStmt collects the bindings a single statement introduces
func (c *Collector) collectStmt(node ast.Statement) {
	switch n := node.(type) {
	case *ast.AssignStmt:
		c.declareVar(n.Name.Name, semantics.SymbolVar, n)
	case *ast.TakeStmt:
		c.declareVar(n.Name.Name, semantics.SymbolInput, n)
	case *ast.FuncDecl:
		c.collectFuncDecl(n)
	case *ast.IncaseStmt:
		c.collectBlock(n.Then)
		c.collectBlock(n.Else)
	case *ast.WhileStmt:
		c.collectBlock(n.Body)
	default:
		// produce and return bind nothing
	}
}

func (c *Collector) declareVar(name string, kind semantics.SymbolKind, decl ast.Node) {
	c.currentScope.Variables.Declare(name, semantics.NewSymbolWithDecl(name, kind, decl))
}

// collectFuncDecl collects function declarations: function f(a, b) { ... }
func (c *Collector) collectFuncDecl(decl *ast.FuncDecl) {
	name := decl.Name.Name
	sym := semantics.NewSymbolWithDecl(name, semantics.SymbolFunc, decl)

	if !c.currentScope.Functions.Declare(name, sym) {
		if prevSym, ok := c.currentScope.Functions.Lookup(name); ok {
			var prevLoc *source.Location
			if prevSym.Decl != nil {
				prevDecl := prevSym.Decl.(*ast.FuncDecl)
				prevLoc = prevDecl.Name.Loc()
			}

			c.ctx.Diagnostics.Add(
				diagnostics.RedeclaredFunction(
					c.currentFile,
					decl.Name.Loc(),
					prevLoc,
					name,
				),
			)
		}
	}

	for _, param := range decl.Params {
		c.declareVar(param.Name, semantics.SymbolParam, param)
	}

	c.collectBlock(decl.Body)
}
