package parser

import (
	"anuraglang/internal/frontend/ast"
	"anuraglang/internal/frontend/lexer"
	"anuraglang/internal/source"
)

// parseExpr parses an expression.
//
// All binary operators share a single precedence level and associate to the
// left in the order written: 2 + 3 * 4 parses as (2 + 3) * 4.
func (p *Parser) parseExpr() (ast.Expression, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}

	for p.peek().Kind.IsBinaryOperator() {
		op := p.advance()
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		start, end := *left.Loc().Start, p.previous().End
		left = &ast.BinaryExpr{
			X:        left,
			Op:       op,
			Y:        right,
			Location: *source.NewLocation(&start, &end),
		}
	}

	return left, nil
}

// parseUnary: -operand | primary
func (p *Parser) parseUnary() (ast.Expression, error) {
	if p.match(lexer.MINUS_TOKEN) {
		op := p.previous()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &ast.UnaryExpr{
			Op:       op,
			X:        operand,
			Location: p.makeLocation(op.Start),
		}, nil
	}

	return p.parsePrimary()
}

func (p *Parser) parsePrimary() (ast.Expression, error) {
	tok := p.peek()

	switch tok.Kind {
	case lexer.NUMBER_TOKEN:
		p.advance()
		return p.parseNumber(tok)

	case lexer.STRING_TOKEN:
		p.advance()
		return &ast.StringLit{
			Value:    tok.Value,
			Location: *source.NewLocation(&tok.Start, &tok.End),
		}, nil

	case lexer.IDENTIFIER_TOKEN:
		return p.parseNameExpr()

	case lexer.OPEN_PAREN:
		p.advance()
		expr, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.CLOSE_PAREN); err != nil {
			return nil, err
		}
		return expr, nil

	case lexer.OPEN_BRACKET:
		return p.parseArrayLiteral()

	default:
		return nil, &Error{Kind: ExpectedExpression, Found: tok}
	}
}

// parseNameExpr: name, name[i][j]..., name(args), name[i](args)
// A call suffix is recognized at most once and ends the expression.
func (p *Parser) parseNameExpr() (ast.Expression, error) {
	ident, err := p.parseIdentifier()
	if err != nil {
		return nil, err
	}
	start := ident.Start
	var expr ast.Expression = ident

	for p.match(lexer.OPEN_BRACKET) {
		index, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.CLOSE_BRACKET); err != nil {
			return nil, err
		}
		expr = &ast.IndexExpr{
			X:        expr,
			Index:    index,
			Location: p.makeLocation(*start),
		}
	}

	if p.match(lexer.OPEN_PAREN) {
		args, err := p.parseList(lexer.CLOSE_PAREN)
		if err != nil {
			return nil, err
		}
		return &ast.CallExpr{
			Fun:      expr,
			Args:     args,
			Location: p.makeLocation(*start),
		}, nil
	}

	return expr, nil
}

func (p *Parser) parseArrayLiteral() (*ast.ArrayLit, error) {
	start := p.advance().Start

	elems, err := p.parseList(lexer.CLOSE_BRACKET)
	if err != nil {
		return nil, err
	}

	return &ast.ArrayLit{
		Elts:     elems,
		Location: p.makeLocation(start),
	}, nil
}

// parseList parses comma-separated expressions up to and including the
// closing token. Trailing commas are not allowed.
func (p *Parser) parseList(closing lexer.TOKEN) ([]ast.Expression, error) {
	items := []ast.Expression{}
	if !p.check(closing) {
		for {
			item, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			items = append(items, item)
			if !p.match(lexer.COMMA_TOKEN) {
				break
			}
		}
	}
	if _, err := p.expect(closing); err != nil {
		return nil, err
	}
	return items, nil
}
