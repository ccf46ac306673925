package ast

import (
	"github.com/pycatalyst/catalyst/internal/token"
)

// Identifier is a name reference.
type Identifier struct {
	Token token.Token
	Value string
}

func (i *Identifier) expressionNode()       {}
func (i *Identifier) TokenLiteral() string  { return i.Token.Lexeme }
func (i *Identifier) GetToken() token.Token { return i.Token }

// IntegerLiteral is an integer literal.
type IntegerLiteral struct {
	Token token.Token
	Value int64
}

func (il *IntegerLiteral) expressionNode()       {}
func (il *IntegerLiteral) TokenLiteral() string  { return il.Token.Lexeme }
func (il *IntegerLiteral) GetToken() token.Token { return il.Token }

// FloatLiteral is a floating-point literal.
type FloatLiteral struct {
	Token token.Token
	Value float64
}

func (fl *FloatLiteral) expressionNode()       {}
func (fl *FloatLiteral) TokenLiteral() string  { return fl.Token.Lexeme }
func (fl *FloatLiteral) GetToken() token.Token { return fl.Token }

// StringLiteral is a string literal. Value holds the decoded contents.
type StringLiteral struct {
	Token token.Token
	Value string
}

func (sl *StringLiteral) expressionNode()       {}
func (sl *StringLiteral) TokenLiteral() string  { return sl.Token.Lexeme }
func (sl *StringLiteral) GetToken() token.Token { return sl.Token }

// BooleanLiteral is True or False.
type BooleanLiteral struct {
	Token token.Token
	Value bool
}

func (bl *BooleanLiteral) expressionNode()       {}
func (bl *BooleanLiteral) TokenLiteral() string  { return bl.Token.Lexeme }
func (bl *BooleanLiteral) GetToken() token.Token { return bl.Token }

// NoneLiteral is None.
type NoneLiteral struct {
	Token token.Token
}

func (nl *NoneLiteral) expressionNode()       {}
func (nl *NoneLiteral) TokenLiteral() string  { return nl.Token.Lexeme }
func (nl *NoneLiteral) GetToken() token.Token { return nl.Token }

// PrefixExpression is a unary expression: -x, not x.
type PrefixExpression struct {
	Token    token.Token
	Operator string
	Right    Expression
}

func (pe *PrefixExpression) expressionNode()       {}
func (pe *PrefixExpression) TokenLiteral() string  { return pe.Token.Lexeme }
func (pe *PrefixExpression) GetToken() token.Token { return pe.Token }

// InfixExpression is a binary expression: arithmetic, comparison, and the
// boolean connectives, plus the unsupported-but-parsed `is` and `in`.
type InfixExpression struct {
	Token    token.Token
	Left     Expression
	Operator string
	Right    Expression
}

func (ie *InfixExpression) expressionNode()       {}
func (ie *InfixExpression) TokenLiteral() string  { return ie.Token.Lexeme }
func (ie *InfixExpression) GetToken() token.Token { return ie.Token }

// CallExpression is a call: free function, method, or constructor.
type CallExpression struct {
	Token     token.Token // the '(' token
	Function  Expression  // Identifier or AttributeExpression
	Arguments []Expression
}

func (ce *CallExpression) expressionNode()       {}
func (ce *CallExpression) TokenLiteral() string  { return ce.Token.Lexeme }
func (ce *CallExpression) GetToken() token.Token { return ce.Token }

// AttributeExpression is `object.attribute`.
type AttributeExpression struct {
	Token     token.Token // the '.' token
	Object    Expression
	Attribute *Identifier
}

func (ae *AttributeExpression) expressionNode()       {}
func (ae *AttributeExpression) TokenLiteral() string  { return ae.Token.Lexeme }
func (ae *AttributeExpression) GetToken() token.Token { return ae.Token }

// IndexExpression is `object[index]`.
type IndexExpression struct {
	Token  token.Token // the '[' token
	Object Expression
	Index  Expression
}

func (ie *IndexExpression) expressionNode()       {}
func (ie *IndexExpression) TokenLiteral() string  { return ie.Token.Lexeme }
func (ie *IndexExpression) GetToken() token.Token { return ie.Token }

// ListLiteral is `[a, b, c]`.
type ListLiteral struct {
	Token    token.Token
	Elements []Expression
}

func (ll *ListLiteral) expressionNode()       {}
func (ll *ListLiteral) TokenLiteral() string  { return ll.Token.Lexeme }
func (ll *ListLiteral) GetToken() token.Token { return ll.Token }

// TupleLiteral is `(a, b, c)`.
type TupleLiteral struct {
	Token    token.Token
	Elements []Expression
}

func (tl *TupleLiteral) expressionNode()       {}
func (tl *TupleLiteral) TokenLiteral() string  { return tl.Token.Lexeme }
func (tl *TupleLiteral) GetToken() token.Token { return tl.Token }

// SetLiteral is `{a, b, c}`.
type SetLiteral struct {
	Token    token.Token
	Elements []Expression
}

func (sl *SetLiteral) expressionNode()       {}
func (sl *SetLiteral) TokenLiteral() string  { return sl.Token.Lexeme }
func (sl *SetLiteral) GetToken() token.Token { return sl.Token }

// DictLiteral is `{k: v}`. Parsed so the translator can reject it with a
// precise message; dictionaries have no translation.
type DictLiteral struct {
	Token  token.Token
	Keys   []Expression
	Values []Expression
}

func (dl *DictLiteral) expressionNode()       {}
func (dl *DictLiteral) TokenLiteral() string  { return dl.Token.Lexeme }
func (dl *DictLiteral) GetToken() token.Token { return dl.Token }

// LambdaExpression is parsed but has no translation.
type LambdaExpression struct {
	Token  token.Token
	Params []*Param
	Body   Expression
}

func (le *LambdaExpression) expressionNode()       {}
func (le *LambdaExpression) TokenLiteral() string  { return le.Token.Lexeme }
func (le *LambdaExpression) GetToken() token.Token { return le.Token }

// YieldExpression is parsed but has no translation.
type YieldExpression struct {
	Token token.Token
	Value Expression // nil for a bare yield
}

func (ye *YieldExpression) expressionNode()       {}
func (ye *YieldExpression) TokenLiteral() string  { return ye.Token.Lexeme }
func (ye *YieldExpression) GetToken() token.Token { return ye.Token }
