package interpreter

import (
	"context"
	"fmt"

	"anuraglang/internal/frontend/ast"
)

func (i *Interpreter) eval(ctx context.Context, expr ast.Expression) (Value, error) {
	switch e := expr.(type) {
	case *ast.NumberLit:
		return Int(e.Value), nil

	case *ast.StringLit:
		return String(e.Value), nil

	case *ast.IdentifierExpr:
		v, ok := i.env.Get(e.Name)
		if !ok {
			return nil, undefinedVariable(e)
		}
		return v, nil

	case *ast.ArrayLit:
		elems := make(Array, 0, len(e.Elts))
		for _, elt := range e.Elts {
			v, err := i.eval(ctx, elt)
			if err != nil {
				return nil, err
			}
			elems = append(elems, v)
		}
		return elems, nil

	case *ast.IndexExpr:
		return i.evalIndex(ctx, e)

	case *ast.BinaryExpr:
		left, err := i.eval(ctx, e.X)
		if err != nil {
			return nil, err
		}
		right, err := i.eval(ctx, e.Y)
		if err != nil {
			return nil, err
		}
		v, err := applyBinary(e.Op.Kind, left, right)
		if err != nil {
			return nil, at(err, e)
		}
		return v, nil

	case *ast.UnaryExpr:
		operand, err := i.eval(ctx, e.X)
		if err != nil {
			return nil, err
		}
		v, err := applyUnary(e.Op.Kind, operand)
		if err != nil {
			return nil, at(err, e)
		}
		return v, nil

	case *ast.CallExpr:
		return i.evalCall(ctx, e)

	default:
		return nil, &RuntimeError{
			Kind:    UnknownNode,
			Message: fmt.Sprintf("unknown expression type %T", expr),
			Loc:     expr.Loc(),
		}
	}
}

func (i *Interpreter) evalIndex(ctx context.Context, e *ast.IndexExpr) (Value, error) {
	target, err := i.eval(ctx, e.X)
	if err != nil {
		return nil, err
	}
	index, err := i.eval(ctx, e.Index)
	if err != nil {
		return nil, err
	}

	arr, ok := target.(Array)
	if !ok {
		return nil, at(typeMismatchf("cannot index a value of type %s", target.Type()), e)
	}
	n, ok := index.(Int)
	if !ok {
		return nil, at(typeMismatchf("array index must be an integer, got %s", index.Type()), e.Index)
	}

	pos := int64(n)
	if pos < 0 {
		pos += int64(len(arr))
	}
	if pos < 0 || pos >= int64(len(arr)) {
		return nil, &RuntimeError{
			Kind:    IndexOutOfRange,
			Message: fmt.Sprintf("index %d out of range for array of length %d", int64(n), len(arr)),
			Index:   int64(n),
			Length:  len(arr),
			Loc:     e.Loc(),
		}
	}
	return arr[pos], nil
}

// evalCall runs a function body against the shared environment and then
// rolls every variable change back, whether the body returned, fell off the
// end or failed.
func (i *Interpreter) evalCall(ctx context.Context, call *ast.CallExpr) (Value, error) {
	ident, ok := call.Fun.(*ast.IdentifierExpr)
	if !ok {
		return nil, at(typeMismatchf("only named functions can be called"), call)
	}
	fn, ok := i.functions.Lookup(ident.Name)
	if !ok {
		return nil, undefinedFunction(ident)
	}

	args := make([]Value, 0, len(call.Args))
	for _, arg := range call.Args {
		v, err := i.eval(ctx, arg)
		if err != nil {
			return nil, err
		}
		args = append(args, v)
	}

	if err := ctx.Err(); err != nil {
		return nil, cancelled(err, call)
	}
	if i.depth >= i.maxDepth {
		return nil, &RuntimeError{
			Kind:    CallDepthExceeded,
			Message: fmt.Sprintf("maximum call depth %d exceeded calling %s", i.maxDepth, fn.Name),
			Name:    fn.Name,
			Loc:     call.Loc(),
		}
	}

	i.logger.Debug("calling function", "name", fn.Name, "args", len(args), "depth", i.depth+1)

	snapshot := i.env.Snapshot()
	i.depth++
	defer func() {
		i.depth--
		i.env.Restore(snapshot)
	}()

	// extra parameters stay unbound, extra arguments are dropped
	for idx, param := range fn.Params {
		if idx >= len(args) {
			break
		}
		i.env.Set(param, args[idx])
	}

	res, err := i.execBlock(ctx, fn.Body)
	if err != nil {
		return nil, err
	}
	if res.returning {
		return res.value, nil
	}
	return None, nil
}
