package lexer

import (
	"fmt"

	"anuraglang/internal/source"
)

// ErrorKind classifies lexical errors
type ErrorKind int

const (
	UnexpectedCharacter ErrorKind = iota
	UnterminatedString
	InvalidEscape
)

func (k ErrorKind) String() string {
	switch k {
	case UnexpectedCharacter:
		return "unexpected character"
	case UnterminatedString:
		return "unterminated string"
	case InvalidEscape:
		return "invalid escape sequence"
	default:
		return "lexical error"
	}
}

// Error is a LexError: the first character that matches no token pattern
type Error struct {
	Kind ErrorKind
	Char rune
	// Sequence is the offending escape for InvalidEscape
	Sequence string
	Pos      source.Position
}

func (e *Error) Error() string {
	switch e.Kind {
	case UnexpectedCharacter:
		return fmt.Sprintf("%s: unexpected character %q", e.Pos, e.Char)
	case InvalidEscape:
		return fmt.Sprintf("%s: invalid escape sequence %s", e.Pos, e.Sequence)
	default:
		return fmt.Sprintf("%s: %s", e.Pos, e.Kind)
	}
}
