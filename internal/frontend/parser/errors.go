package parser

import (
	"errors"
	"fmt"

	"anuraglang/internal/frontend/lexer"
)

// ErrorKind classifies parse errors
type ErrorKind int

const (
	// Unexpected: a token that cannot start or continue the current construct
	Unexpected ErrorKind = iota
	// Expected: a specific token was required
	Expected
	// ExpectedExpression: an expression was required
	ExpectedExpression
	// InvalidNumber: an integer literal that does not fit in 64 bits
	InvalidNumber
)

// Error is a ParseError. Parsing stops at the first one.
type Error struct {
	Kind     ErrorKind
	Expected lexer.TOKEN // set for Expected
	Found    lexer.Token
	Context  string // construct being parsed, e.g. "statement"
}

func (e *Error) Error() string {
	switch e.Kind {
	case Expected:
		return fmt.Sprintf("%s: expected %s, found %s", e.Found.Start, e.Expected, e.Found.Describe())
	case ExpectedExpression:
		return fmt.Sprintf("%s: expected expression, found %s", e.Found.Start, e.Found.Describe())
	case InvalidNumber:
		return fmt.Sprintf("%s: integer literal %s out of range", e.Found.Start, e.Found.Value)
	default:
		if e.Context != "" {
			return fmt.Sprintf("%s: unexpected %s at start of %s", e.Found.Start, e.Found.Describe(), e.Context)
		}
		return fmt.Sprintf("%s: unexpected %s", e.Found.Start, e.Found.Describe())
	}
}

// Incomplete reports whether the error was caused by running out of tokens,
// meaning more input could make the program valid
func (e *Error) Incomplete() bool {
	return e.Found.Kind == lexer.EOF_TOKEN
}

// IsIncomplete reports whether err is a parse error at end of input
func IsIncomplete(err error) bool {
	var perr *Error
	return errors.As(err, &perr) && perr.Incomplete()
}
