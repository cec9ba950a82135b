package resolver

import (
	"anuraglang/internal/context"
	"anuraglang/internal/diagnostics"
	"anuraglang/internal/frontend/ast"
	"anuraglang/internal/semantics"
)

// Resolver checks every name reference against the collected bindings (Pass 2)
//
// A reference is only reported when nothing in the whole program could bind
// it. Order is not considered: a read before the only assignment still
// resolves, because whether it fails depends on which paths run.
type Resolver struct {
	ctx          *context.RunContext
	currentScope *semantics.Scope
	currentFile  string
	// reported names, so each one is flagged once per file
	reported map[string]bool
}

// New creates a new name resolver
func New(ctx *context.RunContext) *Resolver {
	return &Resolver{
		ctx: ctx,
	}
}

// Run executes Pass 2 for all collected files
func Run(ctx *context.RunContext) {
	resolver := New(ctx)

	for _, file := range ctx.GetAllFiles() {
		resolver.ResolveFile(file)
	}
}

// ResolveFile resolves references in a single source file
func (r *Resolver) ResolveFile(file *context.SourceFile) {
	r.currentFile = file.Path
	r.currentScope = file.Scope
	r.reported = make(map[string]bool)

	if file.AST == nil || file.Scope == nil {
		return
	}

	r.resolveStmts(file.AST.Nodes)
}

func (r *Resolver) resolveStmts(nodes []ast.Statement) {
	for _, node := range nodes {
		r.resolveStmt(node)
	}
}

func (r *Resolver) resolveBlock(block *ast.Block) {
	if block != nil {
		r.resolveStmts(block.Nodes)
	}
}

func (r *Resolver) resolveStmt(node ast.Statement) {
	switch n := node.(type) {
	case *ast.AssignStmt:
		r.resolveExpr(n.Value)
	case *ast.ProduceStmt:
		r.resolveExpr(n.Value)
	case *ast.ReturnStmt:
		r.resolveExpr(n.Result)
	case *ast.IncaseStmt:
		r.resolveExpr(n.Cond)
		r.resolveBlock(n.Then)
		r.resolveBlock(n.Else)
	case *ast.WhileStmt:
		r.resolveExpr(n.Cond)
		r.resolveBlock(n.Body)
	case *ast.FuncDecl:
		r.resolveBlock(n.Body)
	}
}

func (r *Resolver) resolveExpr(expr ast.Expression) {
	switch e := expr.(type) {
	case *ast.IdentifierExpr:
		r.resolveVariable(e)
	case *ast.ArrayLit:
		for _, elt := range e.Elts {
			r.resolveExpr(elt)
		}
	case *ast.IndexExpr:
		r.resolveExpr(e.X)
		r.resolveExpr(e.Index)
	case *ast.BinaryExpr:
		r.resolveExpr(e.X)
		r.resolveExpr(e.Y)
	case *ast.UnaryExpr:
		r.resolveExpr(e.X)
	case *ast.CallExpr:
		r.resolveCall(e)
	}
}

func (r *Resolver) resolveVariable(ident *ast.IdentifierExpr) {
	if _, ok := r.currentScope.Variables.Lookup(ident.Name); ok {
		return
	}
	if r.once("var:" + ident.Name) {
		r.ctx.Diagnostics.Add(diagnostics.UnassignedVariable(r.currentFile, ident.Loc(), ident.Name))
	}
}

func (r *Resolver) resolveCall(call *ast.CallExpr) {
	if ident, ok := call.Fun.(*ast.IdentifierExpr); ok {
		if _, declared := r.currentScope.Functions.Lookup(ident.Name); !declared && r.once("func:"+ident.Name) {
			r.ctx.Diagnostics.Add(diagnostics.UndeclaredFunction(r.currentFile, ident.Loc(), ident.Name))
		}
	} else {
		r.resolveExpr(call.Fun)
	}

	for _, arg := range call.Args {
		r.resolveExpr(arg)
	}
}

func (r *Resolver) once(key string) bool {
	if r.reported[key] {
		return false
	}
	r.reported[key] = true
	return true
}
