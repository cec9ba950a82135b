package diagnostics

import (
	"fmt"

	"anuraglang/internal/source"
)

// Common diagnostic builders for the lexer

// UnexpectedCharacter creates a diagnostic for an unexpected character
func UnexpectedCharacter(filepath string, loc *source.Location, char rune) *Diagnostic {
	return NewError(fmt.Sprintf("unexpected character %q", char)).
		WithCode(ErrUnexpectedCharacter).
		WithPrimaryLabel(filepath, loc, "unexpected character").
		WithHelp("remove this character or check if it's a typo")
}

// UnterminatedString creates a diagnostic for an unterminated string literal
func UnterminatedString(filepath string, loc *source.Location) *Diagnostic {
	return NewError("unterminated string literal").
		WithCode(ErrUnterminatedString).
		WithPrimaryLabel(filepath, loc, "string starts here").
		WithHelp("add a closing quote (\") to terminate the string")
}

// InvalidEscapeSequence creates a diagnostic for an invalid escape sequence
func InvalidEscapeSequence(filepath string, loc *source.Location, sequence string) *Diagnostic {
	return NewError("invalid escape sequence " + sequence).
		WithCode(ErrInvalidEscape).
		WithPrimaryLabel(filepath, loc, "unknown escape sequence").
		WithNote("valid escape sequences are: \\n, \\t, \\r, \\0, \\\\, \\\", \\'").
		WithHelp("use a valid escape sequence or remove the backslash")
}

// Common diagnostic builders for the parser

// UnexpectedToken creates a diagnostic for an unexpected token
func UnexpectedToken(filepath string, loc *source.Location, found, expected string) *Diagnostic {
	msg := "unexpected " + found
	if expected != "" {
		msg = "expected " + expected + ", found " + found
	}

	return NewError(msg).
		WithCode(ErrUnexpectedToken).
		WithPrimaryLabel(filepath, loc, "unexpected token here")
}

// ExpectedToken creates a diagnostic for a missing expected token
func ExpectedToken(filepath string, loc *source.Location, expected, found string) *Diagnostic {
	return NewError("expected "+expected+", found "+found).
		WithCode(ErrExpectedToken).
		WithPrimaryLabel(filepath, loc, "expected "+expected+" here")
}

// ExpectedExpression creates a diagnostic for a missing expression
func ExpectedExpression(filepath string, loc *source.Location, found string) *Diagnostic {
	return NewError("expected expression, found "+found).
		WithCode(ErrExpectedExpression).
		WithPrimaryLabel(filepath, loc, "expected an expression here").
		WithNote("expressions are numbers, strings, names, calls, indexing, arrays or parenthesised expressions")
}

// InvalidNumberLiteral creates a diagnostic for an integer literal that does not fit
func InvalidNumberLiteral(filepath string, loc *source.Location, literal string) *Diagnostic {
	return NewError("invalid number literal "+literal).
		WithCode(ErrInvalidNumber).
		WithPrimaryLabel(filepath, loc, "does not fit in a 64-bit integer")
}

// Common diagnostic builders for runtime errors

// UndefinedVariable creates a diagnostic for reading an unbound name
func UndefinedVariable(filepath string, loc *source.Location, name string) *Diagnostic {
	return NewError("undefined variable: "+name).
		WithCode(ErrUndefinedVariable).
		WithPrimaryLabel(filepath, loc, "not bound when this ran").
		WithHelp("bind it first with `assume " + name + " = ...;` or `take(" + name + ");`")
}

// UndefinedFunction creates a diagnostic for calling an unknown function
func UndefinedFunction(filepath string, loc *source.Location, name string) *Diagnostic {
	return NewError("undefined function: "+name).
		WithCode(ErrUndefinedFunction).
		WithPrimaryLabel(filepath, loc, "no function with this name has been declared").
		WithHelp("functions must be declared with `function` before the call runs")
}

// TypeMismatch creates a diagnostic for operands of the wrong type
func TypeMismatch(filepath string, loc *source.Location, message string) *Diagnostic {
	return NewError("type mismatch: "+message).
		WithCode(ErrTypeMismatch).
		WithPrimaryLabel(filepath, loc, "in this expression")
}

// IndexOutOfRange creates a diagnostic for an array index out of bounds
func IndexOutOfRange(filepath string, loc *source.Location, index int64, length int) *Diagnostic {
	return NewError(fmt.Sprintf("index %d out of range", index)).
		WithCode(ErrIndexOutOfRange).
		WithPrimaryLabel(filepath, loc, fmt.Sprintf("array has %d element(s)", length))
}

// DivisionByZero creates a diagnostic for dividing by zero
func DivisionByZero(filepath string, loc *source.Location) *Diagnostic {
	return NewError("division by zero").
		WithCode(ErrDivisionByZero).
		WithPrimaryLabel(filepath, loc, "divisor is zero")
}

// InputExhausted creates a diagnostic for a take with nothing left to read
func InputExhausted(filepath string, loc *source.Location, message string) *Diagnostic {
	return NewError("cannot read input: "+message).
		WithCode(ErrInput).
		WithPrimaryLabel(filepath, loc, "while reading for this take")
}

// InternalError creates a diagnostic for faults that a correct pipeline never produces
func InternalError(filepath string, loc *source.Location, code, message string) *Diagnostic {
	return NewError("internal error: "+message).
		WithCode(code).
		WithPrimaryLabel(filepath, loc, "here").
		WithNote("this is a bug in the interpreter")
}

// Cancelled creates a diagnostic for a run stopped from outside
func Cancelled(filepath string, loc *source.Location) *Diagnostic {
	return NewError("execution cancelled").
		WithCode(ErrCancelled).
		WithPrimaryLabel(filepath, loc, "stopped here")
}

// CallDepthExceeded creates a diagnostic for recursion past the configured limit
func CallDepthExceeded(filepath string, loc *source.Location, message string) *Diagnostic {
	return NewError(message).
		WithCode(ErrCallDepth).
		WithPrimaryLabel(filepath, loc, "this call went too deep").
		WithHelp("check that the recursion has a reachable base case")
}

// ResultTooLarge creates an error for a string or array that grew past the size limit
func ResultTooLarge(filepath string, loc *source.Location, message string) *Diagnostic {
	return NewError(message).
		WithCode(ErrResultTooLarge).
		WithPrimaryLabel(filepath, loc, "this operation builds too large a value").
		WithHelp("reduce the repeat count or the size of the operands")
}

// Common diagnostic builders for the warnings pass

// UnreachableCode creates a warning for statements after a return
func UnreachableCode(filepath string, loc, returnLoc *source.Location) *Diagnostic {
	return NewWarning("unreachable code").
		WithCode(WarnUnreachableCode).
		WithPrimaryLabel(filepath, loc, "this code will never execute").
		WithSecondaryLabel(filepath, returnLoc, "any code following this return is unreachable")
}

// UndeclaredFunction creates a warning for calls to a name never declared
func UndeclaredFunction(filepath string, loc *source.Location, name string) *Diagnostic {
	return NewWarning("call to undeclared function "+name).
		WithCode(WarnUndeclaredFunction).
		WithPrimaryLabel(filepath, loc, "no `function "+name+"` anywhere in this program").
		WithNote("this call fails if it runs")
}

// UnassignedVariable creates a warning for names that are read but never bound
func UnassignedVariable(filepath string, loc *source.Location, name string) *Diagnostic {
	return NewWarning("variable "+name+" is never assigned").
		WithCode(WarnUnassignedVariable).
		WithPrimaryLabel(filepath, loc, "read here").
		WithHelp("check the spelling, or bind it with `assume` or `take`")
}

// RedeclaredFunction creates a warning for a function declared more than once
func RedeclaredFunction(filepath string, loc, prevLoc *source.Location, name string) *Diagnostic {
	diag := NewWarning("function "+name+" is declared more than once").
		WithCode(WarnRedeclaredFunction).
		WithPrimaryLabel(filepath, loc, "redeclared here")
	if prevLoc != nil {
		diag = diag.WithSecondaryLabel(filepath, prevLoc, "first declared here")
	}
	return diag.WithNote("calls use whichever declaration ran most recently")
}

// Uncallable creates a warning for a call whose target is not a plain name
func Uncallable(filepath string, loc *source.Location) *Diagnostic {
	return NewWarning("only named functions can be called").
		WithCode(WarnUncallable).
		WithPrimaryLabel(filepath, loc, "this is not a function name").
		WithNote("this call fails with a type mismatch if it runs")
}
