// Package parser builds the AST for the supported Python subset from the
// lexer's token stream. Statements are parsed by recursive descent;
// expressions use Pratt-style precedence climbing.
package parser

import (
	"github.com/pycatalyst/catalyst/internal/ast"
	"github.com/pycatalyst/catalyst/internal/diagnostics"
	"github.com/pycatalyst/catalyst/internal/token"
)

// Operator precedence levels, lowest first.
const (
	LOWEST     = iota
	OR         // or
	AND        // and
	NOTPREC    // not x
	COMPARISON // == != < > <= >= is in
	SUM        // + -
	PRODUCT    // * / // %
	PREFIX     // -x
	POWER      // ** (right associative)
	CALL       // f(x), x.attr, x[i]
)

var precedences = map[token.Type]int{
	token.OR:           OR,
	token.AND:          AND,
	token.EQ:           COMPARISON,
	token.NOT_EQ:       COMPARISON,
	token.LT:           COMPARISON,
	token.GT:           COMPARISON,
	token.LTE:          COMPARISON,
	token.GTE:          COMPARISON,
	token.IS:           COMPARISON,
	token.IN:           COMPARISON,
	token.PLUS:         SUM,
	token.MINUS:        SUM,
	token.ASTERISK:     PRODUCT,
	token.SLASH:        PRODUCT,
	token.DOUBLE_SLASH: PRODUCT,
	token.PERCENT:      PRODUCT,
	token.POWER:        POWER,
	token.LPAREN:       CALL,
	token.LBRACKET:     CALL,
	token.DOT:          CALL,
}

type (
	prefixParseFn func() ast.Expression
	infixParseFn  func(ast.Expression) ast.Expression
)

// Parser consumes a token stream and produces an *ast.Program.
type Parser struct {
	tokens []token.Token
	pos    int

	curToken  token.Token
	peekToken token.Token

	errors []*diagnostics.Diagnostic

	prefixParseFns map[token.Type]prefixParseFn
	infixParseFns  map[token.Type]infixParseFn
}

func New(tokens []token.Token) *Parser {
	p := &Parser{tokens: tokens}

	p.prefixParseFns = map[token.Type]prefixParseFn{
		token.IDENT:    p.parseIdentifier,
		token.INT:      p.parseIntegerLiteral,
		token.FLOAT:    p.parseFloatLiteral,
		token.STRING:   p.parseStringLiteral,
		token.TRUE:     p.parseBooleanLiteral,
		token.FALSE:    p.parseBooleanLiteral,
		token.NONE:     p.parseNoneLiteral,
		token.MINUS:    p.parsePrefixExpression,
		token.NOT:      p.parseNotExpression,
		token.LPAREN:   p.parseParenExpression,
		token.LBRACKET: p.parseListLiteral,
		token.LBRACE:   p.parseBraceLiteral,
		token.LAMBDA:   p.parseLambdaExpression,
		token.YIELD:    p.parseYieldExpression,
	}
	p.infixParseFns = map[token.Type]infixParseFn{
		token.PLUS:         p.parseInfixExpression,
		token.MINUS:        p.parseInfixExpression,
		token.ASTERISK:     p.parseInfixExpression,
		token.SLASH:        p.parseInfixExpression,
		token.DOUBLE_SLASH: p.parseInfixExpression,
		token.PERCENT:      p.parseInfixExpression,
		token.POWER:        p.parseInfixExpression,
		token.EQ:           p.parseInfixExpression,
		token.NOT_EQ:       p.parseInfixExpression,
		token.LT:           p.parseInfixExpression,
		token.GT:           p.parseInfixExpression,
		token.LTE:          p.parseInfixExpression,
		token.GTE:          p.parseInfixExpression,
		token.AND:          p.parseInfixExpression,
		token.OR:           p.parseInfixExpression,
		token.IS:           p.parseInfixExpression,
		token.IN:           p.parseInfixExpression,
		token.LPAREN:       p.parseCallExpression,
		token.LBRACKET:     p.parseIndexExpression,
		token.DOT:          p.parseAttributeExpression,
	}

	// Prime curToken and peekToken.
	p.nextToken()
	p.nextToken()
	return p
}

func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	if p.pos < len(p.tokens) {
		p.peekToken = p.tokens[p.pos]
		p.pos++
	} else {
		p.peekToken = token.Token{Type: token.EOF}
	}
}

func (p *Parser) curTokenIs(t token.Type) bool  { return p.curToken.Type == t }
func (p *Parser) peekTokenIs(t token.Type) bool { return p.peekToken.Type == t }

// expectPeek advances when the next token matches, else records an error.
func (p *Parser) expectPeek(t token.Type) bool {
	if p.peekTokenIs(t) {
		p.nextToken()
		return true
	}
	p.peekError(t)
	return false
}

func (p *Parser) peekError(t token.Type) {
	p.errors = append(p.errors, diagnostics.NewError(diagnostics.ErrP001, p.peekToken,
		"expected %s, got %s", string(t), describe(p.peekToken)))
}

func (p *Parser) errorAt(tok token.Token, format string, args ...interface{}) {
	p.errors = append(p.errors, diagnostics.NewError(diagnostics.ErrP001, tok, format, args...))
}

func describe(tok token.Token) string {
	switch tok.Type {
	case token.NEWLINE:
		return "end of line"
	case token.INDENT:
		return "indent"
	case token.DEDENT:
		return "dedent"
	case token.EOF:
		return "end of file"
	}
	return "'" + tok.Lexeme + "'"
}

// Errors returns the diagnostics collected while parsing.
func (p *Parser) Errors() []*diagnostics.Diagnostic {
	return p.errors
}

func (p *Parser) peekPrecedence() int {
	if prec, ok := precedences[p.peekToken.Type]; ok {
		return prec
	}
	return LOWEST
}

func (p *Parser) curPrecedence() int {
	if prec, ok := precedences[p.curToken.Type]; ok {
		return prec
	}
	return LOWEST
}

// ParseProgram parses the whole token stream.
func (p *Parser) ParseProgram() *ast.Program {
	program := &ast.Program{}
	for !p.curTokenIs(token.EOF) {
		if p.curTokenIs(token.NEWLINE) {
			p.nextToken()
			continue
		}
		stmt := p.parseStatement()
		if stmt != nil {
			program.Statements = append(program.Statements, stmt)
		}
		if len(p.errors) > 0 {
			// The subset's grammar has no recovery points worth the
			// complexity; the first parse error aborts the run anyway.
			break
		}
		p.nextToken()
	}
	return program
}
