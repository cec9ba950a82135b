package parser

import (
	"anuraglang/internal/frontend/ast"
	"anuraglang/internal/frontend/lexer"
)

// parseStmt parses a statement. Every statement starts with a keyword.
func (p *Parser) parseStmt() (ast.Statement, error) {
	tok := p.peek()
	switch tok.Kind {
	case lexer.ASSUME_TOKEN:
		return p.parseAssignStmt()
	case lexer.PRODUCE_TOKEN:
		return p.parseProduceStmt()
	case lexer.TAKE_TOKEN:
		return p.parseTakeStmt()
	case lexer.INCASE_TOKEN:
		return p.parseIncaseStmt()
	case lexer.WHILE_TOKEN:
		return p.parseWhileStmt()
	case lexer.FUNCTION_TOKEN:
		return p.parseFuncDecl()
	case lexer.RETURN_TOKEN:
		return p.parseReturnStmt()
	default:
		return nil, p.unexpected("statement")
	}
}

// parseAssignStmt: assume x = expr;
func (p *Parser) parseAssignStmt() (*ast.AssignStmt, error) {
	start := p.advance().Start

	name, err := p.parseIdentifier()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.ASSIGN_TOKEN); err != nil {
		return nil, err
	}
	value, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.SEMICOLON_TOKEN); err != nil {
		return nil, err
	}

	return &ast.AssignStmt{
		Name:     name,
		Value:    value,
		Location: p.makeLocation(start),
	}, nil
}

// parseProduceStmt: produce(expr);
func (p *Parser) parseProduceStmt() (*ast.ProduceStmt, error) {
	start := p.advance().Start

	if _, err := p.expect(lexer.OPEN_PAREN); err != nil {
		return nil, err
	}
	value, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if err := p.expectAll(lexer.CLOSE_PAREN, lexer.SEMICOLON_TOKEN); err != nil {
		return nil, err
	}

	return &ast.ProduceStmt{
		Value:    value,
		Location: p.makeLocation(start),
	}, nil
}

// parseTakeStmt: take(x);
func (p *Parser) parseTakeStmt() (*ast.TakeStmt, error) {
	start := p.advance().Start

	if _, err := p.expect(lexer.OPEN_PAREN); err != nil {
		return nil, err
	}
	name, err := p.parseIdentifier()
	if err != nil {
		return nil, err
	}
	if err := p.expectAll(lexer.CLOSE_PAREN, lexer.SEMICOLON_TOKEN); err != nil {
		return nil, err
	}

	return &ast.TakeStmt{
		Name:     name,
		Location: p.makeLocation(start),
	}, nil
}

// parseIncaseStmt: incase (cond) { } otherwise { }
func (p *Parser) parseIncaseStmt() (*ast.IncaseStmt, error) {
	start := p.advance().Start

	cond, err := p.parseCondition()
	if err != nil {
		return nil, err
	}
	then, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.OTHERWISE_TOKEN); err != nil {
		return nil, err
	}
	otherwise, err := p.parseBlock()
	if err != nil {
		return nil, err
	}

	return &ast.IncaseStmt{
		Cond:     cond,
		Then:     then,
		Else:     otherwise,
		Location: p.makeLocation(start),
	}, nil
}

// parseWhileStmt: while (cond) { }
func (p *Parser) parseWhileStmt() (*ast.WhileStmt, error) {
	start := p.advance().Start

	cond, err := p.parseCondition()
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}

	return &ast.WhileStmt{
		Cond:     cond,
		Body:     body,
		Location: p.makeLocation(start),
	}, nil
}

// parseFuncDecl: function add(a, b) { return a + b; }
func (p *Parser) parseFuncDecl() (*ast.FuncDecl, error) {
	start := p.advance().Start

	name, err := p.parseIdentifier()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.OPEN_PAREN); err != nil {
		return nil, err
	}

	params := []*ast.IdentifierExpr{}
	if !p.check(lexer.CLOSE_PAREN) {
		for {
			param, err := p.parseIdentifier()
			if err != nil {
				return nil, err
			}
			params = append(params, param)
			if !p.match(lexer.COMMA_TOKEN) {
				break
			}
		}
	}
	if _, err := p.expect(lexer.CLOSE_PAREN); err != nil {
		return nil, err
	}

	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}

	return &ast.FuncDecl{
		Name:     name,
		Params:   params,
		Body:     body,
		Location: p.makeLocation(start),
	}, nil
}

// parseReturnStmt: return expr;
func (p *Parser) parseReturnStmt() (*ast.ReturnStmt, error) {
	start := p.advance().Start

	result, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.SEMICOLON_TOKEN); err != nil {
		return nil, err
	}

	return &ast.ReturnStmt{
		Result:   result,
		Location: p.makeLocation(start),
	}, nil
}

// parseCondition: ( expr )
func (p *Parser) parseCondition() (ast.Expression, error) {
	if _, err := p.expect(lexer.OPEN_PAREN); err != nil {
		return nil, err
	}
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.CLOSE_PAREN); err != nil {
		return nil, err
	}
	return cond, nil
}

// parseBlock: { stmt* }
func (p *Parser) parseBlock() (*ast.Block, error) {
	open, err := p.expect(lexer.OPEN_CURLY)
	if err != nil {
		return nil, err
	}

	nodes := []ast.Statement{}
	for !p.check(lexer.CLOSE_CURLY) {
		if p.isAtEnd() {
			return nil, &Error{Kind: Expected, Expected: lexer.CLOSE_CURLY, Found: p.peek()}
		}
		node, err := p.parseStmt()
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, node)
	}
	p.advance()

	return &ast.Block{
		Nodes:    nodes,
		Location: p.makeLocation(open.Start),
	}, nil
}

// expectAll consumes a fixed sequence of tokens
func (p *Parser) expectAll(kinds ...lexer.TOKEN) error {
	for _, kind := range kinds {
		if _, err := p.expect(kind); err != nil {
			return err
		}
	}
	return nil
}
