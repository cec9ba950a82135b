package interpreter

import (
	"errors"
	"fmt"

	"anuraglang/internal/frontend/ast"
	"anuraglang/internal/source"
)

// ErrorKind classifies runtime errors
type ErrorKind int

const (
	UndefinedVariable ErrorKind = iota
	UndefinedFunction
	TypeMismatch
	IndexOutOfRange
	DivisionByZero
	InputError
	UnknownOperator
	UnknownNode
	Cancelled
	CallDepthExceeded
	ResultTooLarge
)

func (k ErrorKind) String() string {
	switch k {
	case UndefinedVariable:
		return "UndefinedVariableError"
	case UndefinedFunction:
		return "UndefinedFunctionError"
	case TypeMismatch:
		return "TypeMismatchError"
	case IndexOutOfRange:
		return "IndexOutOfRangeError"
	case DivisionByZero:
		return "DivisionByZeroError"
	case InputError:
		return "InputError"
	case UnknownOperator:
		return "UnknownOperatorError"
	case UnknownNode:
		return "UnknownNodeError"
	case Cancelled:
		return "CancelledError"
	case CallDepthExceeded:
		return "CallDepthExceededError"
	case ResultTooLarge:
		return "ResultTooLargeError"
	default:
		return "RuntimeError"
	}
}

// RuntimeError aborts a run. Nothing in the interpreter recovers from one.
type RuntimeError struct {
	Kind    ErrorKind
	Message string
	// Name is the variable or function involved, when there is one
	Name string
	// Index and Length are set for IndexOutOfRange
	Index  int64
	Length int
	Loc    *source.Location
	// Err is the underlying cause (I/O or context errors)
	Err error
}

func (e *RuntimeError) Error() string {
	if e.Loc != nil && e.Loc.Start != nil {
		return fmt.Sprintf("%s: %s: %s", e.Loc.Start, e.Kind, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *RuntimeError) Unwrap() error { return e.Err }

// KindOf returns the runtime error kind of err, if it is one
func KindOf(err error) (ErrorKind, bool) {
	var rerr *RuntimeError
	if errors.As(err, &rerr) {
		return rerr.Kind, true
	}
	return 0, false
}

var (
	errDivisionByZero  = &RuntimeError{Kind: DivisionByZero, Message: "division by zero"}
	errUnknownOperator = &RuntimeError{Kind: UnknownOperator, Message: "unknown operator"}
)

func typeMismatchf(format string, args ...any) *RuntimeError {
	return &RuntimeError{Kind: TypeMismatch, Message: fmt.Sprintf(format, args...)}
}

// at attaches the node's location to errors raised without one. Shared
// sentinel errors are copied rather than mutated.
func at(err error, node ast.Node) error {
	var rerr *RuntimeError
	if !errors.As(err, &rerr) || rerr.Loc != nil {
		return err
	}
	located := *rerr
	located.Loc = node.Loc()
	return &located
}

func undefinedVariable(ident *ast.IdentifierExpr) *RuntimeError {
	return &RuntimeError{
		Kind:    UndefinedVariable,
		Message: "undefined variable: " + ident.Name,
		Name:    ident.Name,
		Loc:     ident.Loc(),
	}
}

func undefinedFunction(ident *ast.IdentifierExpr) *RuntimeError {
	return &RuntimeError{
		Kind:    UndefinedFunction,
		Message: "undefined function: " + ident.Name,
		Name:    ident.Name,
		Loc:     ident.Loc(),
	}
}
