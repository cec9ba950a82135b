package checker

import (
	"anuraglang/internal/diagnostics"
	"anuraglang/internal/frontend/ast"
	"anuraglang/internal/source"
)

// FlowResult represents the control flow analysis of a statement or block
type FlowResult struct {
	AlwaysReturns bool             // true if ALL paths through this node return
	ReturnLoc     *source.Location // the statement that makes it so
}

// analyzeStmts analyzes a statement list for return paths. Statements after
// one that always returns are reported once, at the first of them.
func (c *Checker) analyzeStmts(nodes []ast.Statement) FlowResult {
	var res FlowResult

	for _, node := range nodes {
		if res.AlwaysReturns {
			c.ctx.Diagnostics.Add(
				diagnostics.UnreachableCode(c.currentFile, node.Loc(), res.ReturnLoc),
			)
			break
		}

		if stmtRes := c.analyzeStmt(node); stmtRes.AlwaysReturns {
			res = stmtRes
		}
	}

	return res
}

func (c *Checker) analyzeBlock(block *ast.Block) FlowResult {
	if block == nil {
		return FlowResult{}
	}
	return c.analyzeStmts(block.Nodes)
}

// analyzeStmt analyzes a single statement for return paths
func (c *Checker) analyzeStmt(node ast.Statement) FlowResult {
	switch n := node.(type) {
	case *ast.ReturnStmt:
		c.checkExpr(n.Result)
		return FlowResult{AlwaysReturns: true, ReturnLoc: n.Loc()}

	case *ast.IncaseStmt:
		c.checkExpr(n.Cond)
		thenRes := c.analyzeBlock(n.Then)
		if n.Else == nil {
			return FlowResult{}
		}
		elseRes := c.analyzeBlock(n.Else)
		if thenRes.AlwaysReturns && elseRes.AlwaysReturns {
			return FlowResult{AlwaysReturns: true, ReturnLoc: n.Loc()}
		}
		return FlowResult{}

	case *ast.WhileStmt:
		// the body may run zero times
		c.checkExpr(n.Cond)
		c.analyzeBlock(n.Body)
		return FlowResult{}

	case *ast.FuncDecl:
		// the body's returns end the call, not the enclosing block
		c.analyzeBlock(n.Body)
		return FlowResult{}

	case *ast.AssignStmt:
		c.checkExpr(n.Value)
	case *ast.ProduceStmt:
		c.checkExpr(n.Value)
	}

	return FlowResult{}
}
