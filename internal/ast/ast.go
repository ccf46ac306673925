// Package ast defines the syntax tree for the supported Python subset.
// The node set is deliberately closed: the translator dispatches over it
// exhaustively, so an unhandled kind is a visible gap, not a silent miss.
package ast

import (
	"github.com/pycatalyst/catalyst/internal/token"
)

// Node is the base interface for all AST nodes.
type Node interface {
	TokenLiteral() string
	GetToken() token.Token
}

// Statement is a Node that represents a statement.
type Statement interface {
	Node
	statementNode()
}

// Expression is a Node that represents an expression.
type Expression interface {
	Node
	expressionNode()
}

// Program is the root node of every tree the parser produces.
type Program struct {
	File       string // source file path
	Statements []Statement
}

func (p *Program) TokenLiteral() string {
	if len(p.Statements) > 0 {
		return p.Statements[0].TokenLiteral()
	}
	return ""
}

func (p *Program) GetToken() token.Token {
	if len(p.Statements) > 0 {
		return p.Statements[0].GetToken()
	}
	return token.Token{}
}

// BlockStatement is an indented suite of statements.
type BlockStatement struct {
	Token      token.Token // the INDENT token
	Statements []Statement
}

func (bs *BlockStatement) statementNode()        {}
func (bs *BlockStatement) TokenLiteral() string  { return bs.Token.Lexeme }
func (bs *BlockStatement) GetToken() token.Token { return bs.Token }

// ExpressionStatement wraps an expression used in statement position.
type ExpressionStatement struct {
	Token      token.Token
	Expression Expression
}

func (es *ExpressionStatement) statementNode()        {}
func (es *ExpressionStatement) TokenLiteral() string  { return es.Token.Lexeme }
func (es *ExpressionStatement) GetToken() token.Token { return es.Token }

// AssignStatement represents `target = value`. Target is a name or a
// self-attribute reference.
type AssignStatement struct {
	Token  token.Token // the '=' token
	Target Expression
	Value  Expression
}

func (as *AssignStatement) statementNode()        {}
func (as *AssignStatement) TokenLiteral() string  { return as.Token.Lexeme }
func (as *AssignStatement) GetToken() token.Token { return as.Token }

// AugAssignStatement represents `target op= value`.
type AugAssignStatement struct {
	Token    token.Token // the 'op=' token
	Operator string      // "+", "-", "*", "/"
	Target   Expression
	Value    Expression
}

func (as *AugAssignStatement) statementNode()        {}
func (as *AugAssignStatement) TokenLiteral() string  { return as.Token.Lexeme }
func (as *AugAssignStatement) GetToken() token.Token { return as.Token }

// Param is one formal parameter of a function definition.
type Param struct {
	Token   token.Token
	Name    string
	Default Expression // nil when no default value is given
}

// FunctionStatement represents a `def` statement.
type FunctionStatement struct {
	Token     token.Token // the 'def' token
	Name      *Identifier
	Params    []*Param
	Body      *BlockStatement
	Decorated bool // a decorator was attached; translation rejects it
}

func (fs *FunctionStatement) statementNode()        {}
func (fs *FunctionStatement) TokenLiteral() string  { return fs.Token.Lexeme }
func (fs *FunctionStatement) GetToken() token.Token { return fs.Token }

// ClassStatement represents a `class` statement.
type ClassStatement struct {
	Token token.Token // the 'class' token
	Name  *Identifier
	Bases []*Identifier
	Body  *BlockStatement
}

func (cs *ClassStatement) statementNode()        {}
func (cs *ClassStatement) TokenLiteral() string  { return cs.Token.Lexeme }
func (cs *ClassStatement) GetToken() token.Token { return cs.Token }

// ReturnStatement represents `return [value]`.
type ReturnStatement struct {
	Token token.Token
	Value Expression // nil for a bare return
}

func (rs *ReturnStatement) statementNode()        {}
func (rs *ReturnStatement) TokenLiteral() string  { return rs.Token.Lexeme }
func (rs *ReturnStatement) GetToken() token.Token { return rs.Token }

// IfStatement represents an if/elif/else chain. Alternative is either a
// *BlockStatement (else) or another *IfStatement (elif), or nil.
type IfStatement struct {
	Token       token.Token
	Condition   Expression
	Consequence *BlockStatement
	Alternative Statement
}

func (is *IfStatement) statementNode()        {}
func (is *IfStatement) TokenLiteral() string  { return is.Token.Lexeme }
func (is *IfStatement) GetToken() token.Token { return is.Token }

// WhileStatement represents a `while` loop.
type WhileStatement struct {
	Token     token.Token
	Condition Expression
	Body      *BlockStatement
}

func (ws *WhileStatement) statementNode()        {}
func (ws *WhileStatement) TokenLiteral() string  { return ws.Token.Lexeme }
func (ws *WhileStatement) GetToken() token.Token { return ws.Token }

// ForStatement represents `for var in iterable:`.
type ForStatement struct {
	Token    token.Token
	Var      *Identifier
	Iterable Expression
	Body     *BlockStatement
}

func (fs *ForStatement) statementNode()        {}
func (fs *ForStatement) TokenLiteral() string  { return fs.Token.Lexeme }
func (fs *ForStatement) GetToken() token.Token { return fs.Token }

// BreakStatement represents `break`.
type BreakStatement struct {
	Token token.Token
}

func (bs *BreakStatement) statementNode()        {}
func (bs *BreakStatement) TokenLiteral() string  { return bs.Token.Lexeme }
func (bs *BreakStatement) GetToken() token.Token { return bs.Token }

// ContinueStatement represents `continue`.
type ContinueStatement struct {
	Token token.Token
}

func (cs *ContinueStatement) statementNode()        {}
func (cs *ContinueStatement) TokenLiteral() string  { return cs.Token.Lexeme }
func (cs *ContinueStatement) GetToken() token.Token { return cs.Token }

// PassStatement represents `pass`.
type PassStatement struct {
	Token token.Token
}

func (ps *PassStatement) statementNode()        {}
func (ps *PassStatement) TokenLiteral() string  { return ps.Token.Lexeme }
func (ps *PassStatement) GetToken() token.Token { return ps.Token }

// ImportStatement represents `import module` or `from module import a, b`.
type ImportStatement struct {
	Token  token.Token
	Module string
	Names  []string // imported names for the `from` form
	From   bool
}

func (is *ImportStatement) statementNode()        {}
func (is *ImportStatement) TokenLiteral() string  { return is.Token.Lexeme }
func (is *ImportStatement) GetToken() token.Token { return is.Token }
