package interpreter

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"anuraglang/internal/frontend/ast"
)

// flow is the outcome of executing statements: either normal completion or
// a pending return carrying its value
type flow struct {
	returning bool
	value     Value
}

var normal = flow{}

func returning(v Value) flow {
	return flow{returning: true, value: v}
}

// execStmts runs statements in order until one of them returns
func (i *Interpreter) execStmts(ctx context.Context, stmts []ast.Statement) (flow, error) {
	for _, stmt := range stmts {
		res, err := i.exec(ctx, stmt)
		if err != nil {
			return normal, err
		}
		if res.returning {
			return res, nil
		}
	}
	return normal, nil
}

func (i *Interpreter) execBlock(ctx context.Context, block *ast.Block) (flow, error) {
	if block == nil {
		return normal, nil
	}
	return i.execStmts(ctx, block.Nodes)
}

func (i *Interpreter) exec(ctx context.Context, stmt ast.Statement) (flow, error) {
	switch s := stmt.(type) {
	case *ast.AssignStmt:
		v, err := i.eval(ctx, s.Value)
		if err != nil {
			return normal, err
		}
		i.env.Set(s.Name.Name, v)
		return normal, nil

	case *ast.ProduceStmt:
		v, err := i.eval(ctx, s.Value)
		if err != nil {
			return normal, err
		}
		if _, err := fmt.Fprintln(i.stdout, v.String()); err != nil {
			return normal, &RuntimeError{Kind: InputError, Message: "writing output: " + err.Error(), Loc: s.Loc(), Err: err}
		}
		return normal, nil

	case *ast.TakeStmt:
		v, err := i.take(s)
		if err != nil {
			return normal, err
		}
		i.env.Set(s.Name.Name, v)
		return normal, nil

	case *ast.IncaseStmt:
		cond, err := i.eval(ctx, s.Cond)
		if err != nil {
			return normal, err
		}
		if Truthy(cond) {
			return i.execBlock(ctx, s.Then)
		}
		return i.execBlock(ctx, s.Else)

	case *ast.WhileStmt:
		return i.execWhile(ctx, s)

	case *ast.FuncDecl:
		fn := i.functions.Declare(s)
		i.logger.Debug("stored function", "name", fn.Name, "params", fn.Params)
		return normal, nil

	case *ast.ReturnStmt:
		v, err := i.eval(ctx, s.Result)
		if err != nil {
			return normal, err
		}
		return returning(v), nil

	default:
		return normal, &RuntimeError{
			Kind:    UnknownNode,
			Message: fmt.Sprintf("unknown statement type %T", stmt),
			Loc:     stmt.Loc(),
		}
	}
}

func (i *Interpreter) execWhile(ctx context.Context, s *ast.WhileStmt) (flow, error) {
	for {
		if err := ctx.Err(); err != nil {
			return normal, cancelled(err, s)
		}

		cond, err := i.eval(ctx, s.Cond)
		if err != nil {
			return normal, err
		}
		if !Truthy(cond) {
			return normal, nil
		}

		res, err := i.execBlock(ctx, s.Body)
		if err != nil || res.returning {
			return res, err
		}
	}
}

// take reads one line. Lines that parse as base-10 integers bind as
// integers; anything else binds as the raw text.
func (i *Interpreter) take(s *ast.TakeStmt) (Value, error) {
	line, err := i.stdin.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		msg := err.Error()
		if errors.Is(err, io.EOF) {
			msg = "end of input"
		}
		return nil, &RuntimeError{Kind: InputError, Message: msg, Name: s.Name.Name, Loc: s.Loc(), Err: err}
	}

	line = strings.TrimSuffix(line, "\n")
	line = strings.TrimSuffix(line, "\r")

	if n, err := strconv.ParseInt(strings.TrimSpace(line), 10, 64); err == nil {
		return Int(n), nil
	}
	return String(line), nil
}

func cancelled(err error, node ast.Node) *RuntimeError {
	return &RuntimeError{Kind: Cancelled, Message: "execution cancelled: " + err.Error(), Loc: node.Loc(), Err: err}
}
