package parser

import (
	"strconv"

	"anuraglang/internal/frontend/ast"
	"anuraglang/internal/frontend/lexer"
	"anuraglang/internal/source"
)

// ============================================================================
// PARSER - Token to AST Conversion
// ============================================================================
//
// Recursive descent over the token stream, one statement form per leading
// keyword. Parsing halts at the first error; there is no recovery.

// Parser holds temporary state during parsing of a single file.
// This is created on-the-fly, not stored persistently.
type Parser struct {
	tokens   []lexer.Token
	current  int
	filepath string
}

// Parse parses a token stream into a module. The stream should end with an
// EOF token; one is synthesized if it does not.
func Parse(tokens []lexer.Token, filepath string) (*ast.Module, error) {
	if len(tokens) == 0 || tokens[len(tokens)-1].Kind != lexer.EOF_TOKEN {
		eof := lexer.Token{Kind: lexer.EOF_TOKEN, Start: source.Position{Line: 1, Column: 1}}
		if len(tokens) > 0 {
			eof.Start = tokens[len(tokens)-1].End
			eof.Start.Column++
		}
		eof.End = eof.Start
		tokens = append(tokens[:len(tokens):len(tokens)], eof)
	}

	state := &Parser{
		tokens:   tokens,
		current:  0,
		filepath: filepath,
	}

	return state.parseModule()
}

// ParseSource lexes and parses a source text
func ParseSource(src, filepath string) (*ast.Module, error) {
	tokens, err := lexer.New(filepath, src).Tokenize()
	if err != nil {
		return nil, err
	}
	return Parse(tokens, filepath)
}

// parseModule parses the entire module (all top-level statements)
func (p *Parser) parseModule() (*ast.Module, error) {
	module := &ast.Module{
		FullPath: p.filepath,
		Nodes:    []ast.Statement{},
	}

	for !p.isAtEnd() {
		node, err := p.parseStmt()
		if err != nil {
			return nil, err
		}
		module.Nodes = append(module.Nodes, node)
	}

	return module, nil
}

// Helper methods

func (p *Parser) isAtEnd() bool {
	if p.current >= len(p.tokens) {
		return true
	}
	return p.tokens[p.current].Kind == lexer.EOF_TOKEN
}

func (p *Parser) peek() lexer.Token {
	if p.current >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[p.current]
}

func (p *Parser) previous() lexer.Token {
	return p.tokens[p.current-1]
}

func (p *Parser) advance() lexer.Token {
	if !p.isAtEnd() {
		p.current++
	}
	return p.previous()
}

func (p *Parser) check(kind lexer.TOKEN) bool {
	if p.isAtEnd() {
		return false
	}
	return p.peek().Kind == kind
}

func (p *Parser) match(kinds ...lexer.TOKEN) bool {
	for _, kind := range kinds {
		if p.check(kind) {
			p.advance()
			return true
		}
	}
	return false
}

func (p *Parser) expect(kind lexer.TOKEN) (lexer.Token, error) {
	if p.check(kind) {
		return p.advance(), nil
	}
	return p.peek(), &Error{Kind: Expected, Expected: kind, Found: p.peek()}
}

func (p *Parser) unexpected(context string) error {
	return &Error{Kind: Unexpected, Found: p.peek(), Context: context}
}

func (p *Parser) parseNumber(tok lexer.Token) (*ast.NumberLit, error) {
	value, err := strconv.ParseInt(tok.Value, 10, 64)
	if err != nil {
		return nil, &Error{Kind: InvalidNumber, Found: tok}
	}
	return &ast.NumberLit{
		Value:    value,
		Raw:      tok.Value,
		Location: *source.NewLocation(&tok.Start, &tok.End),
	}, nil
}

func (p *Parser) parseIdentifier() (*ast.IdentifierExpr, error) {
	tok, err := p.expect(lexer.IDENTIFIER_TOKEN)
	if err != nil {
		return nil, err
	}
	return &ast.IdentifierExpr{
		Name:     tok.Value,
		Location: *source.NewLocation(&tok.Start, &tok.End),
	}, nil
}

// makeLocation creates a source location from start to current position
func (p *Parser) makeLocation(start source.Position) source.Location {
	end := p.previous().End
	return *source.NewLocation(&start, &end)
}
