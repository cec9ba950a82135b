package lexer

import (
	"fmt"

	"anuraglang/internal/source"
)

// TOKEN is the kind of a lexical token
type TOKEN string

const (
	// Keywords
	ASSUME_TOKEN    TOKEN = "ASSUME"
	PRODUCE_TOKEN   TOKEN = "PRODUCE"
	TAKE_TOKEN      TOKEN = "TAKE"
	INCASE_TOKEN    TOKEN = "INCASE"
	OTHERWISE_TOKEN TOKEN = "OTHERWISE"
	WHILE_TOKEN     TOKEN = "WHILE"
	FUNCTION_TOKEN  TOKEN = "FUNCTION"
	RETURN_TOKEN    TOKEN = "RETURN"

	// Literals
	NUMBER_TOKEN     TOKEN = "NUMBER"
	STRING_TOKEN     TOKEN = "STRING"
	IDENTIFIER_TOKEN TOKEN = "IDENTIFIER"

	// Punctuation
	ASSIGN_TOKEN    TOKEN = "ASSIGN"
	OPEN_CURLY      TOKEN = "LBRACE"
	CLOSE_CURLY     TOKEN = "RBRACE"
	OPEN_PAREN      TOKEN = "LPAREN"
	CLOSE_PAREN     TOKEN = "RPAREN"
	OPEN_BRACKET    TOKEN = "LBRACKET"
	CLOSE_BRACKET   TOKEN = "RBRACKET"
	COMMA_TOKEN     TOKEN = "COMMA"
	SEMICOLON_TOKEN TOKEN = "SEMICOLON"

	// Operators
	PLUS_TOKEN         TOKEN = "PLUS"
	MINUS_TOKEN        TOKEN = "MINUS"
	MUL_TOKEN          TOKEN = "MULTIPLY"
	DIV_TOKEN          TOKEN = "DIVIDE"
	GREATER_TOKEN      TOKEN = "GT"
	LESS_TOKEN         TOKEN = "LT"
	DOUBLE_EQUAL_TOKEN TOKEN = "EQ"

	// EOF_TOKEN terminates every token stream; it never appears in source
	EOF_TOKEN TOKEN = "EOF"
)

// IsKeyword reports whether the kind is a reserved word
func (t TOKEN) IsKeyword() bool {
	switch t {
	case ASSUME_TOKEN, PRODUCE_TOKEN, TAKE_TOKEN, INCASE_TOKEN,
		OTHERWISE_TOKEN, WHILE_TOKEN, FUNCTION_TOKEN, RETURN_TOKEN:
		return true
	}
	return false
}

// IsBinaryOperator reports whether the kind can join two expressions
func (t TOKEN) IsBinaryOperator() bool {
	switch t {
	case PLUS_TOKEN, MINUS_TOKEN, MUL_TOKEN, DIV_TOKEN,
		GREATER_TOKEN, LESS_TOKEN, DOUBLE_EQUAL_TOKEN:
		return true
	}
	return false
}

// Token is a classified lexical unit. Value holds the matched text, except
// for strings where it holds the decoded literal without quotes.
type Token struct {
	Kind  TOKEN
	Value string
	Start source.Position
	End   source.Position
}

// Line returns the line the token starts on
func (t Token) Line() int { return t.Start.Line }

// Column returns the column the token starts at
func (t Token) Column() int { return t.Start.Column }

// Loc returns the span of the token
func (t Token) Loc() *source.Location {
	start, end := t.Start, t.End
	return source.NewLocation(&start, &end)
}

func (t Token) String() string {
	if t.Kind == EOF_TOKEN {
		return fmt.Sprintf("%s %s", t.Start, t.Kind)
	}
	return fmt.Sprintf("%s %s %q", t.Start, t.Kind, t.Value)
}

// Describe renders the token for error messages
func (t Token) Describe() string {
	switch t.Kind {
	case EOF_TOKEN:
		return "end of input"
	case STRING_TOKEN:
		return fmt.Sprintf("%s %q", t.Kind, t.Value)
	default:
		return fmt.Sprintf("%s '%s'", t.Kind, t.Value)
	}
}
