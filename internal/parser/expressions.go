package parser

import (
	"strconv"

	"github.com/pycatalyst/catalyst/internal/ast"
	"github.com/pycatalyst/catalyst/internal/diagnostics"
	"github.com/pycatalyst/catalyst/internal/token"
)

func (p *Parser) parseExpression(precedence int) ast.Expression {
	prefix := p.prefixParseFns[p.curToken.Type]
	if prefix == nil {
		p.errorAt(p.curToken, "unexpected %s in expression", describe(p.curToken))
		return nil
	}
	left := prefix()

	for left != nil && precedence < p.peekPrecedence() {
		infix := p.infixParseFns[p.peekToken.Type]
		if infix == nil {
			return left
		}
		p.nextToken()
		left = infix(left)
	}
	return left
}

func (p *Parser) parseIdentifier() ast.Expression {
	return &ast.Identifier{Token: p.curToken, Value: p.curToken.Lexeme}
}

func (p *Parser) parseIntegerLiteral() ast.Expression {
	value, err := strconv.ParseInt(p.curToken.Lexeme, 10, 64)
	if err != nil {
		p.errors = append(p.errors, diagnostics.NewError(diagnostics.ErrP002, p.curToken,
			"could not parse %q as integer", p.curToken.Lexeme))
		return nil
	}
	return &ast.IntegerLiteral{Token: p.curToken, Value: value}
}

func (p *Parser) parseFloatLiteral() ast.Expression {
	value, err := strconv.ParseFloat(p.curToken.Lexeme, 64)
	if err != nil {
		p.errors = append(p.errors, diagnostics.NewError(diagnostics.ErrP002, p.curToken,
			"could not parse %q as float", p.curToken.Lexeme))
		return nil
	}
	return &ast.FloatLiteral{Token: p.curToken, Value: value}
}

func (p *Parser) parseStringLiteral() ast.Expression {
	return &ast.StringLiteral{Token: p.curToken, Value: p.curToken.Literal}
}

func (p *Parser) parseBooleanLiteral() ast.Expression {
	return &ast.BooleanLiteral{Token: p.curToken, Value: p.curTokenIs(token.TRUE)}
}

func (p *Parser) parseNoneLiteral() ast.Expression {
	return &ast.NoneLiteral{Token: p.curToken}
}

func (p *Parser) parsePrefixExpression() ast.Expression {
	expr := &ast.PrefixExpression{Token: p.curToken, Operator: p.curToken.Lexeme}
	p.nextToken()
	expr.Right = p.parseExpression(PREFIX)
	return expr
}

func (p *Parser) parseNotExpression() ast.Expression {
	expr := &ast.PrefixExpression{Token: p.curToken, Operator: "not"}
	p.nextToken()
	expr.Right = p.parseExpression(NOTPREC)
	return expr
}

func (p *Parser) parseInfixExpression(left ast.Expression) ast.Expression {
	expr := &ast.InfixExpression{
		Token:    p.curToken,
		Left:     left,
		Operator: p.curToken.Lexeme,
	}
	precedence := p.curPrecedence()
	if p.curTokenIs(token.POWER) {
		// ** is right associative.
		precedence--
	}
	p.nextToken()
	expr.Right = p.parseExpression(precedence)
	return expr
}

// parseParenExpression handles grouping and tuple literals: `(a)` is just
// a, `()` and `(a, b)` are tuples.
func (p *Parser) parseParenExpression() ast.Expression {
	tok := p.curToken
	if p.peekTokenIs(token.RPAREN) {
		p.nextToken()
		return &ast.TupleLiteral{Token: tok}
	}

	p.nextToken()
	first := p.parseExpression(LOWEST)
	if first == nil {
		return nil
	}

	if !p.peekTokenIs(token.COMMA) {
		if !p.expectPeek(token.RPAREN) {
			return nil
		}
		return first
	}

	tuple := &ast.TupleLiteral{Token: tok, Elements: []ast.Expression{first}}
	for p.peekTokenIs(token.COMMA) {
		p.nextToken()
		if p.peekTokenIs(token.RPAREN) {
			// Trailing comma: (a, b,)
			break
		}
		p.nextToken()
		elem := p.parseExpression(LOWEST)
		if elem == nil {
			return nil
		}
		tuple.Elements = append(tuple.Elements, elem)
	}
	if !p.expectPeek(token.RPAREN) {
		return nil
	}
	return tuple
}

func (p *Parser) parseListLiteral() ast.Expression {
	list := &ast.ListLiteral{Token: p.curToken}
	list.Elements = p.parseExpressionList(token.RBRACKET)
	return list
}

// parseBraceLiteral distinguishes set literals from dict literals. An
// empty `{}` is a dict, per the source language.
func (p *Parser) parseBraceLiteral() ast.Expression {
	tok := p.curToken
	if p.peekTokenIs(token.RBRACE) {
		p.nextToken()
		return &ast.DictLiteral{Token: tok}
	}

	p.nextToken()
	first := p.parseExpression(LOWEST)
	if first == nil {
		return nil
	}

	if p.peekTokenIs(token.COLON) {
		dict := &ast.DictLiteral{Token: tok}
		dict.Keys = append(dict.Keys, first)
		p.nextToken()
		p.nextToken()
		value := p.parseExpression(LOWEST)
		if value == nil {
			return nil
		}
		dict.Values = append(dict.Values, value)
		for p.peekTokenIs(token.COMMA) {
			p.nextToken()
			p.nextToken()
			key := p.parseExpression(LOWEST)
			if key == nil {
				return nil
			}
			if !p.expectPeek(token.COLON) {
				return nil
			}
			p.nextToken()
			val := p.parseExpression(LOWEST)
			if val == nil {
				return nil
			}
			dict.Keys = append(dict.Keys, key)
			dict.Values = append(dict.Values, val)
		}
		if !p.expectPeek(token.RBRACE) {
			return nil
		}
		return dict
	}

	set := &ast.SetLiteral{Token: tok, Elements: []ast.Expression{first}}
	for p.peekTokenIs(token.COMMA) {
		p.nextToken()
		p.nextToken()
		elem := p.parseExpression(LOWEST)
		if elem == nil {
			return nil
		}
		set.Elements = append(set.Elements, elem)
	}
	if !p.expectPeek(token.RBRACE) {
		return nil
	}
	return set
}

// parseExpressionList parses a comma-separated list up to end; curToken is
// on the opening bracket, and on return it is on end.
func (p *Parser) parseExpressionList(end token.Type) []ast.Expression {
	var list []ast.Expression
	if p.peekTokenIs(end) {
		p.nextToken()
		return list
	}
	p.nextToken()
	expr := p.parseExpression(LOWEST)
	if expr == nil {
		return nil
	}
	list = append(list, expr)
	for p.peekTokenIs(token.COMMA) {
		p.nextToken()
		p.nextToken()
		expr = p.parseExpression(LOWEST)
		if expr == nil {
			return nil
		}
		list = append(list, expr)
	}
	if !p.expectPeek(end) {
		return nil
	}
	return list
}

func (p *Parser) parseCallExpression(function ast.Expression) ast.Expression {
	call := &ast.CallExpression{Token: p.curToken, Function: function}
	call.Arguments = p.parseExpressionList(token.RPAREN)
	return call
}

func (p *Parser) parseIndexExpression(object ast.Expression) ast.Expression {
	expr := &ast.IndexExpression{Token: p.curToken, Object: object}
	p.nextToken()
	expr.Index = p.parseExpression(LOWEST)
	if !p.expectPeek(token.RBRACKET) {
		return nil
	}
	return expr
}

func (p *Parser) parseAttributeExpression(object ast.Expression) ast.Expression {
	expr := &ast.AttributeExpression{Token: p.curToken, Object: object}
	if !p.expectPeek(token.IDENT) {
		return nil
	}
	expr.Attribute = &ast.Identifier{Token: p.curToken, Value: p.curToken.Lexeme}
	return expr
}

func (p *Parser) parseLambdaExpression() ast.Expression {
	expr := &ast.LambdaExpression{Token: p.curToken}
	for !p.curTokenIs(token.COLON) && !p.curTokenIs(token.EOF) && !p.curTokenIs(token.NEWLINE) {
		if p.curTokenIs(token.IDENT) {
			expr.Params = append(expr.Params, &ast.Param{Token: p.curToken, Name: p.curToken.Lexeme})
		}
		p.nextToken()
	}
	if p.curTokenIs(token.COLON) {
		p.nextToken()
		expr.Body = p.parseExpression(LOWEST)
	}
	return expr
}

func (p *Parser) parseYieldExpression() ast.Expression {
	expr := &ast.YieldExpression{Token: p.curToken}
	if !p.peekTokenIs(token.NEWLINE) && !p.peekTokenIs(token.EOF) && !p.peekTokenIs(token.RPAREN) {
		p.nextToken()
		expr.Value = p.parseExpression(LOWEST)
	}
	return expr
}
