package parser

import (
	"github.com/pycatalyst/catalyst/internal/ast"
	"github.com/pycatalyst/catalyst/internal/token"
)

// parseStatement is entered with curToken on the statement's first token.
// Simple statements return with curToken on their terminating NEWLINE;
// compound statements return with curToken on the DEDENT that closed their
// last block.
func (p *Parser) parseStatement() ast.Statement {
	switch p.curToken.Type {
	case token.DEF:
		return p.parseFunctionStatement(false)
	case token.AT:
		return p.parseDecoratedFunction()
	case token.CLASS:
		return p.parseClassStatement()
	case token.RETURN:
		return p.parseReturnStatement()
	case token.IF:
		return p.parseIfStatement()
	case token.WHILE:
		return p.parseWhileStatement()
	case token.FOR:
		return p.parseForStatement()
	case token.BREAK:
		stmt := &ast.BreakStatement{Token: p.curToken}
		p.endSimpleStatement()
		return stmt
	case token.CONTINUE:
		stmt := &ast.ContinueStatement{Token: p.curToken}
		p.endSimpleStatement()
		return stmt
	case token.PASS:
		stmt := &ast.PassStatement{Token: p.curToken}
		p.endSimpleStatement()
		return stmt
	case token.IMPORT, token.FROM:
		return p.parseImportStatement()
	default:
		return p.parseSimpleStatement()
	}
}

// endSimpleStatement consumes the NEWLINE that terminates a simple
// statement.
func (p *Parser) endSimpleStatement() {
	if !p.expectPeek(token.NEWLINE) {
		return
	}
}

// parseSimpleStatement parses an expression line: a plain expression
// statement, an assignment, or an augmented assignment.
func (p *Parser) parseSimpleStatement() ast.Statement {
	startTok := p.curToken
	expr := p.parseExpression(LOWEST)
	if expr == nil {
		return nil
	}

	switch p.peekToken.Type {
	case token.ASSIGN:
		p.nextToken()
		tok := p.curToken
		p.nextToken()
		value := p.parseExpression(LOWEST)
		p.endSimpleStatement()
		return &ast.AssignStatement{Token: tok, Target: expr, Value: value}
	case token.PLUS_ASSIGN, token.MINUS_ASSIGN, token.ASTERISK_ASSIGN, token.SLASH_ASSIGN:
		p.nextToken()
		tok := p.curToken
		op := string(tok.Lexeme[0]) // "+=" -> "+"
		p.nextToken()
		value := p.parseExpression(LOWEST)
		p.endSimpleStatement()
		return &ast.AugAssignStatement{Token: tok, Operator: op, Target: expr, Value: value}
	}

	p.endSimpleStatement()
	return &ast.ExpressionStatement{Token: startTok, Expression: expr}
}

func (p *Parser) parseReturnStatement() ast.Statement {
	stmt := &ast.ReturnStatement{Token: p.curToken}
	if p.peekTokenIs(token.NEWLINE) {
		p.nextToken()
		return stmt
	}
	p.nextToken()
	stmt.Value = p.parseExpression(LOWEST)
	p.endSimpleStatement()
	return stmt
}

func (p *Parser) parseImportStatement() ast.Statement {
	stmt := &ast.ImportStatement{Token: p.curToken}
	if p.curTokenIs(token.FROM) {
		stmt.From = true
		if !p.expectPeek(token.IDENT) {
			return nil
		}
		stmt.Module = p.curToken.Lexeme
		if !p.expectPeek(token.IMPORT) {
			return nil
		}
		for {
			if !p.expectPeek(token.IDENT) {
				return nil
			}
			stmt.Names = append(stmt.Names, p.curToken.Lexeme)
			if !p.peekTokenIs(token.COMMA) {
				break
			}
			p.nextToken()
		}
		p.endSimpleStatement()
		return stmt
	}

	if !p.expectPeek(token.IDENT) {
		return nil
	}
	stmt.Module = p.curToken.Lexeme
	p.endSimpleStatement()
	return stmt
}

// parseSuite parses `: NEWLINE INDENT statements DEDENT`, returning with
// curToken on the DEDENT.
func (p *Parser) parseSuite() *ast.BlockStatement {
	if !p.expectPeek(token.COLON) {
		return nil
	}
	if !p.expectPeek(token.NEWLINE) {
		return nil
	}
	if !p.expectPeek(token.INDENT) {
		return nil
	}

	block := &ast.BlockStatement{Token: p.curToken}
	p.nextToken()
	for !p.curTokenIs(token.DEDENT) && !p.curTokenIs(token.EOF) {
		if p.curTokenIs(token.NEWLINE) {
			p.nextToken()
			continue
		}
		stmt := p.parseStatement()
		if stmt != nil {
			block.Statements = append(block.Statements, stmt)
		}
		if len(p.errors) > 0 {
			return block
		}
		p.nextToken()
	}
	return block
}

func (p *Parser) parseFunctionStatement(decorated bool) ast.Statement {
	stmt := &ast.FunctionStatement{Token: p.curToken, Decorated: decorated}
	if !p.expectPeek(token.IDENT) {
		return nil
	}
	stmt.Name = &ast.Identifier{Token: p.curToken, Value: p.curToken.Lexeme}
	if !p.expectPeek(token.LPAREN) {
		return nil
	}
	stmt.Params = p.parseParams()
	stmt.Body = p.parseSuite()
	return stmt
}

// parseDecoratedFunction skips decorator lines and parses the decorated
// def, marking it so translation can reject it with a precise message.
func (p *Parser) parseDecoratedFunction() ast.Statement {
	for p.curTokenIs(token.AT) {
		for !p.curTokenIs(token.NEWLINE) && !p.curTokenIs(token.EOF) {
			p.nextToken()
		}
		p.nextToken()
	}
	if !p.curTokenIs(token.DEF) {
		p.errorAt(p.curToken, "expected 'def' after decorator, got %s", describe(p.curToken))
		return nil
	}
	return p.parseFunctionStatement(true)
}

// parseParams parses a parenthesized parameter list; curToken is on the
// opening paren, and on return it is on the closing paren.
func (p *Parser) parseParams() []*ast.Param {
	var params []*ast.Param
	if p.peekTokenIs(token.RPAREN) {
		p.nextToken()
		return params
	}
	for {
		if !p.expectPeek(token.IDENT) {
			return params
		}
		param := &ast.Param{Token: p.curToken, Name: p.curToken.Lexeme}
		if p.peekTokenIs(token.ASSIGN) {
			p.nextToken()
			p.nextToken()
			param.Default = p.parseExpression(LOWEST)
		}
		params = append(params, param)
		if !p.peekTokenIs(token.COMMA) {
			break
		}
		p.nextToken()
	}
	if !p.expectPeek(token.RPAREN) {
		return params
	}
	return params
}

func (p *Parser) parseClassStatement() ast.Statement {
	stmt := &ast.ClassStatement{Token: p.curToken}
	if !p.expectPeek(token.IDENT) {
		return nil
	}
	stmt.Name = &ast.Identifier{Token: p.curToken, Value: p.curToken.Lexeme}

	if p.peekTokenIs(token.LPAREN) {
		p.nextToken()
		if !p.peekTokenIs(token.RPAREN) {
			for {
				if !p.expectPeek(token.IDENT) {
					return nil
				}
				stmt.Bases = append(stmt.Bases, &ast.Identifier{Token: p.curToken, Value: p.curToken.Lexeme})
				if !p.peekTokenIs(token.COMMA) {
					break
				}
				p.nextToken()
			}
		}
		if !p.expectPeek(token.RPAREN) {
			return nil
		}
	}

	stmt.Body = p.parseSuite()
	return stmt
}

func (p *Parser) parseIfStatement() ast.Statement {
	stmt := &ast.IfStatement{Token: p.curToken}
	p.nextToken()
	stmt.Condition = p.parseExpression(LOWEST)
	stmt.Consequence = p.parseSuite()
	if stmt.Consequence == nil {
		return nil
	}

	switch p.peekToken.Type {
	case token.ELIF:
		p.nextToken()
		alt := p.parseIfStatement()
		if alt == nil {
			return nil
		}
		stmt.Alternative = alt
	case token.ELSE:
		p.nextToken()
		alt := p.parseSuite()
		if alt == nil {
			return nil
		}
		stmt.Alternative = alt
	}
	return stmt
}

func (p *Parser) parseWhileStatement() ast.Statement {
	stmt := &ast.WhileStatement{Token: p.curToken}
	p.nextToken()
	stmt.Condition = p.parseExpression(LOWEST)
	stmt.Body = p.parseSuite()
	return stmt
}

func (p *Parser) parseForStatement() ast.Statement {
	stmt := &ast.ForStatement{Token: p.curToken}
	if !p.expectPeek(token.IDENT) {
		return nil
	}
	stmt.Var = &ast.Identifier{Token: p.curToken, Value: p.curToken.Lexeme}
	if !p.expectPeek(token.IN) {
		return nil
	}
	p.nextToken()
	stmt.Iterable = p.parseExpression(LOWEST)
	stmt.Body = p.parseSuite()
	return stmt
}
