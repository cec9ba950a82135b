package context

import (
	"errors"

	"anuraglang/internal/diagnostics"
	"anuraglang/internal/frontend/lexer"
	"anuraglang/internal/frontend/parser"
	"anuraglang/internal/interpreter"
	"anuraglang/internal/source"
)

// lexDiagnostic converts a lexer failure into a diagnostic
func lexDiagnostic(path string, err error) *diagnostics.Diagnostic {
	var lerr *lexer.Error
	if !errors.As(err, &lerr) {
		return diagnostics.NewError(err.Error()).WithCode(diagnostics.ErrUnexpectedCharacter)
	}

	loc := source.At(lerr.Pos)
	switch lerr.Kind {
	case lexer.UnterminatedString:
		return diagnostics.UnterminatedString(path, loc)
	case lexer.InvalidEscape:
		return diagnostics.InvalidEscapeSequence(path, loc, lerr.Sequence)
	default:
		return diagnostics.UnexpectedCharacter(path, loc, lerr.Char)
	}
}

// parseDiagnostic converts a parser failure into a diagnostic
func parseDiagnostic(path string, err error) *diagnostics.Diagnostic {
	var perr *parser.Error
	if !errors.As(err, &perr) {
		return diagnostics.NewError(err.Error()).WithCode(diagnostics.ErrUnexpectedToken)
	}

	loc := perr.Found.Loc()
	found := perr.Found.Describe()
	switch perr.Kind {
	case parser.Expected:
		return diagnostics.ExpectedToken(path, loc, string(perr.Expected), found)
	case parser.ExpectedExpression:
		return diagnostics.ExpectedExpression(path, loc, found)
	case parser.InvalidNumber:
		return diagnostics.InvalidNumberLiteral(path, loc, perr.Found.Value)
	default:
		return diagnostics.UnexpectedToken(path, loc, found, perr.Context)
	}
}

// runtimeDiagnostic converts an interpreter failure into a diagnostic
func runtimeDiagnostic(path string, err error) *diagnostics.Diagnostic {
	var rerr *interpreter.RuntimeError
	if !errors.As(err, &rerr) {
		return diagnostics.NewError(err.Error()).WithCode(diagnostics.ErrUnknownNode)
	}

	loc := rerr.Loc
	switch rerr.Kind {
	case interpreter.UndefinedVariable:
		return diagnostics.UndefinedVariable(path, loc, rerr.Name)
	case interpreter.UndefinedFunction:
		return diagnostics.UndefinedFunction(path, loc, rerr.Name)
	case interpreter.TypeMismatch:
		return diagnostics.TypeMismatch(path, loc, rerr.Message)
	case interpreter.IndexOutOfRange:
		return diagnostics.IndexOutOfRange(path, loc, rerr.Index, rerr.Length)
	case interpreter.DivisionByZero:
		return diagnostics.DivisionByZero(path, loc)
	case interpreter.InputError:
		return diagnostics.InputExhausted(path, loc, rerr.Message)
	case interpreter.Cancelled:
		return diagnostics.Cancelled(path, loc)
	case interpreter.CallDepthExceeded:
		return diagnostics.CallDepthExceeded(path, loc, rerr.Message)
	case interpreter.ResultTooLarge:
		return diagnostics.ResultTooLarge(path, loc, rerr.Message)
	case interpreter.UnknownOperator:
		return diagnostics.InternalError(path, loc, diagnostics.ErrUnknownOperator, rerr.Message)
	default:
		return diagnostics.InternalError(path, loc, diagnostics.ErrUnknownNode, rerr.Message)
	}
}
