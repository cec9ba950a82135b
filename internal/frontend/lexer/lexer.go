// Package lexer turns source text into tokens.
//
// At each position the patterns are tried in a fixed priority order and the
// first match wins; there is no longest match across alternatives. Keywords
// are plain prefix matches tried before identifiers, so "assumed" lexes as
// ASSUME followed by IDENTIFIER "d".
package lexer

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"anuraglang/internal/source"
)

type matcher func(l *Lexer) (int, error)

type pattern struct {
	kind  TOKEN
	match matcher
	skip  bool
}

var patterns = []pattern{
	{kind: ASSUME_TOKEN, match: literal("assume")},
	{kind: PRODUCE_TOKEN, match: literal("produce")},
	{kind: TAKE_TOKEN, match: literal("take")},
	{kind: INCASE_TOKEN, match: literal("incase")},
	{kind: OTHERWISE_TOKEN, match: literal("otherwise")},
	{kind: WHILE_TOKEN, match: literal("while")},
	{kind: FUNCTION_TOKEN, match: literal("function")},
	{kind: RETURN_TOKEN, match: literal("return")},
	{kind: NUMBER_TOKEN, match: matchNumber},
	{kind: IDENTIFIER_TOKEN, match: matchIdentifier},
	{kind: STRING_TOKEN, match: matchString},
	// == must be tried before =
	{kind: DOUBLE_EQUAL_TOKEN, match: literal("==")},
	{kind: ASSIGN_TOKEN, match: literal("=")},
	{kind: OPEN_CURLY, match: literal("{")},
	{kind: CLOSE_CURLY, match: literal("}")},
	{kind: OPEN_PAREN, match: literal("(")},
	{kind: CLOSE_PAREN, match: literal(")")},
	{kind: OPEN_BRACKET, match: literal("[")},
	{kind: CLOSE_BRACKET, match: literal("]")},
	{kind: COMMA_TOKEN, match: literal(",")},
	{kind: PLUS_TOKEN, match: literal("+")},
	{kind: MINUS_TOKEN, match: literal("-")},
	{kind: MUL_TOKEN, match: literal("*")},
	{kind: DIV_TOKEN, match: literal("/")},
	{kind: GREATER_TOKEN, match: literal(">")},
	{kind: LESS_TOKEN, match: literal("<")},
	{kind: SEMICOLON_TOKEN, match: literal(";")},
	{match: matchSpace, skip: true},
}

// Lexer holds the scanning state for one source text
type Lexer struct {
	filepath string
	src      string
	offset   int // byte offset into src
	pos      source.Position
	tokens   []Token

	// value is set by matchers whose token value differs from the raw text
	value *string
}

// New creates a lexer over the given source
func New(filepath, src string) *Lexer {
	return &Lexer{
		filepath: filepath,
		src:      src,
		pos:      source.Position{Line: 1, Column: 1},
	}
}

// Tokenize lexes a source text in one call
func Tokenize(src string) ([]Token, error) {
	return New("", src).Tokenize()
}

// Tokenize scans the whole input. The returned slice always ends with an
// EOF token. Scanning stops at the first error.
func (l *Lexer) Tokenize() ([]Token, error) {
	for l.offset < len(l.src) {
		if err := l.next(); err != nil {
			return nil, err
		}
	}

	l.tokens = append(l.tokens, Token{Kind: EOF_TOKEN, Start: l.pos, End: l.pos})
	return l.tokens, nil
}

func (l *Lexer) next() error {
	for _, p := range patterns {
		l.value = nil
		n, err := p.match(l)
		if err != nil {
			return err
		}
		if n == 0 {
			continue
		}

		text := l.src[l.offset : l.offset+n]
		start := l.pos
		end := l.advance(text)
		if !p.skip {
			value := text
			if l.value != nil {
				value = *l.value
			}
			l.tokens = append(l.tokens, Token{Kind: p.kind, Value: value, Start: start, End: end})
		}
		return nil
	}

	r, _ := utf8.DecodeRuneInString(l.rest())
	if r == '#' {
		l.skipComment()
		return nil
	}
	return &Error{Kind: UnexpectedCharacter, Char: r, Pos: l.pos}
}

// advance consumes text and returns the position of its last character
func (l *Lexer) advance(text string) source.Position {
	last := l.pos
	for _, r := range text {
		last = l.pos
		if r == '\n' {
			l.pos.Line++
			l.pos.Column = 1
		} else {
			l.pos.Column++
		}
	}
	l.offset += len(text)
	return last
}

// skipComment consumes a # comment up to, not including, the newline
func (l *Lexer) skipComment() {
	n := strings.IndexByte(l.rest(), '\n')
	if n < 0 {
		n = len(l.rest())
	}
	l.advance(l.rest()[:n])
}

func (l *Lexer) rest() string {
	return l.src[l.offset:]
}

func literal(text string) matcher {
	return func(l *Lexer) (int, error) {
		if strings.HasPrefix(l.rest(), text) {
			return len(text), nil
		}
		return 0, nil
	}
}

func matchNumber(l *Lexer) (int, error) {
	rest := l.rest()
	n := 0
	for n < len(rest) && rest[n] >= '0' && rest[n] <= '9' {
		n++
	}
	return n, nil
}

func matchIdentifier(l *Lexer) (int, error) {
	rest := l.rest()
	if rest == "" {
		return 0, nil
	}
	if c := rest[0]; !(c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')) {
		return 0, nil
	}
	n := 1
	for n < len(rest) {
		r, size := utf8.DecodeRuneInString(rest[n:])
		if r != '_' && !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			break
		}
		n += size
	}
	return n, nil
}

func matchSpace(l *Lexer) (int, error) {
	rest := l.rest()
	n := 0
	for n < len(rest) {
		r, size := utf8.DecodeRuneInString(rest[n:])
		if !unicode.IsSpace(r) {
			break
		}
		n += size
	}
	return n, nil
}

var escapes = map[rune]rune{
	'n':  '\n',
	't':  '\t',
	'r':  '\r',
	'0':  0,
	'\\': '\\',
	'"':  '"',
	'\'': '\'',
}

// matchString scans a double-quoted literal and decodes its escapes.
// Strings may span lines.
func matchString(l *Lexer) (int, error) {
	rest := l.rest()
	if !strings.HasPrefix(rest, `"`) {
		return 0, nil
	}

	var b strings.Builder
	pos := l.pos
	pos.Column++
	for i := 1; i < len(rest); {
		r, size := utf8.DecodeRuneInString(rest[i:])
		switch r {
		case '"':
			value := b.String()
			l.value = &value
			return i + size, nil
		case '\\':
			esc, escSize := utf8.DecodeRuneInString(rest[i+size:])
			if escSize == 0 {
				return 0, &Error{Kind: UnterminatedString, Char: '"', Pos: l.pos}
			}
			decoded, ok := escapes[esc]
			if !ok {
				return 0, &Error{Kind: InvalidEscape, Char: esc, Sequence: `\` + string(esc), Pos: pos}
			}
			b.WriteRune(decoded)
			i += size + escSize
			pos.Column += 2
			continue
		case '\n':
			pos.Line++
			pos.Column = 0
		}
		b.WriteRune(r)
		i += size
		pos.Column++
	}
	return 0, &Error{Kind: UnterminatedString, Char: '"', Pos: l.pos}
}
