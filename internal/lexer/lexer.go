package lexer

import (
	"unicode"
	"unicode/utf8"

	"github.com/pycatalyst/catalyst/internal/token"
)

// Lexer scans Python-subset source text into tokens. Indentation at the
// start of each logical line is converted into INDENT/DEDENT tokens; inside
// brackets, newlines and indentation are insignificant.
type Lexer struct {
	input        string
	position     int  // current position in input (points to current char)
	readPosition int  // current reading position in input (after current char)
	ch           rune // current char under examination
	line         int  // current line number
	column       int  // current column number

	indents     []int         // indentation stack, always starts with 0
	pending     []token.Token // queued INDENT/DEDENT tokens
	depth       int           // bracket nesting depth ((), [], {})
	atLineStart bool
	sawEOF      bool
}

func New(input string) *Lexer {
	l := &Lexer{input: input, line: 1, column: 0, indents: []int{0}, atLineStart: true}
	l.readChar()
	return l
}

func (l *Lexer) readChar() {
	if l.ch == '\n' {
		l.line++
		l.column = 0
	}

	if l.readPosition >= len(l.input) {
		l.ch = 0
	} else {
		r, w := utf8.DecodeRuneInString(l.input[l.readPosition:])
		l.ch = r
		l.position = l.readPosition
		l.readPosition += w
		l.column++
		return
	}

	l.position = l.readPosition
	l.readPosition++
	l.column++
}

func (l *Lexer) peekChar() rune {
	if l.readPosition >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.readPosition:])
	return r
}

func (l *Lexer) NextToken() token.Token {
	if len(l.pending) > 0 {
		tok := l.pending[0]
		l.pending = l.pending[1:]
		return tok
	}

	if l.atLineStart && l.depth == 0 {
		if tok, ok := l.scanIndentation(); ok {
			return tok
		}
	}

	l.skipSpaces()
	if l.ch == '#' {
		l.skipComment()
	}

	var tok token.Token

	switch l.ch {
	case '\n':
		if l.depth > 0 {
			l.readChar()
			return l.NextToken()
		}
		tok = newToken(token.NEWLINE, l.ch, l.line, l.column)
		l.atLineStart = true
	case '=':
		if l.peekChar() == '=' {
			l.readChar()
			tok = token.Token{Type: token.EQ, Lexeme: "==", Literal: "==", Line: l.line, Column: l.column}
		} else {
			tok = newToken(token.ASSIGN, l.ch, l.line, l.column)
		}
	case '+':
		if l.peekChar() == '=' {
			l.readChar()
			tok = token.Token{Type: token.PLUS_ASSIGN, Lexeme: "+=", Literal: "+=", Line: l.line, Column: l.column}
		} else {
			tok = newToken(token.PLUS, l.ch, l.line, l.column)
		}
	case '-':
		if l.peekChar() == '=' {
			l.readChar()
			tok = token.Token{Type: token.MINUS_ASSIGN, Lexeme: "-=", Literal: "-=", Line: l.line, Column: l.column}
		} else {
			tok = newToken(token.MINUS, l.ch, l.line, l.column)
		}
	case '*':
		if l.peekChar() == '*' {
			l.readChar()
			tok = token.Token{Type: token.POWER, Lexeme: "**", Literal: "**", Line: l.line, Column: l.column}
		} else if l.peekChar() == '=' {
			l.readChar()
			tok = token.Token{Type: token.ASTERISK_ASSIGN, Lexeme: "*=", Literal: "*=", Line: l.line, Column: l.column}
		} else {
			tok = newToken(token.ASTERISK, l.ch, l.line, l.column)
		}
	case '/':
		if l.peekChar() == '/' {
			l.readChar()
			tok = token.Token{Type: token.DOUBLE_SLASH, Lexeme: "//", Literal: "//", Line: l.line, Column: l.column}
		} else if l.peekChar() == '=' {
			l.readChar()
			tok = token.Token{Type: token.SLASH_ASSIGN, Lexeme: "/=", Literal: "/=", Line: l.line, Column: l.column}
		} else {
			tok = newToken(token.SLASH, l.ch, l.line, l.column)
		}
	case '%':
		tok = newToken(token.PERCENT, l.ch, l.line, l.column)
	case '!':
		if l.peekChar() == '=' {
			l.readChar()
			tok = token.Token{Type: token.NOT_EQ, Lexeme: "!=", Literal: "!=", Line: l.line, Column: l.column}
		} else {
			tok = newToken(token.ILLEGAL, l.ch, l.line, l.column)
		}
	case '<':
		if l.peekChar() == '=' {
			l.readChar()
			tok = token.Token{Type: token.LTE, Lexeme: "<=", Literal: "<=", Line: l.line, Column: l.column}
		} else {
			tok = newToken(token.LT, l.ch, l.line, l.column)
		}
	case '>':
		if l.peekChar() == '=' {
			l.readChar()
			tok = token.Token{Type: token.GTE, Lexeme: ">=", Literal: ">=", Line: l.line, Column: l.column}
		} else {
			tok = newToken(token.GT, l.ch, l.line, l.column)
		}
	case ',':
		tok = newToken(token.COMMA, l.ch, l.line, l.column)
	case ':':
		tok = newToken(token.COLON, l.ch, l.line, l.column)
	case '.':
		tok = newToken(token.DOT, l.ch, l.line, l.column)
	case '@':
		tok = newToken(token.AT, l.ch, l.line, l.column)
	case '(':
		l.depth++
		tok = newToken(token.LPAREN, l.ch, l.line, l.column)
	case ')':
		l.depth--
		tok = newToken(token.RPAREN, l.ch, l.line, l.column)
	case '[':
		l.depth++
		tok = newToken(token.LBRACKET, l.ch, l.line, l.column)
	case ']':
		l.depth--
		tok = newToken(token.RBRACKET, l.ch, l.line, l.column)
	case '{':
		l.depth++
		tok = newToken(token.LBRACE, l.ch, l.line, l.column)
	case '}':
		l.depth--
		tok = newToken(token.RBRACE, l.ch, l.line, l.column)
	case '"', '\'':
		return l.readString(l.ch)
	case 0:
		return l.eofToken()
	default:
		if isLetter(l.ch) {
			return l.readIdentifier()
		}
		if unicode.IsDigit(l.ch) {
			return l.readNumber()
		}
		tok = newToken(token.ILLEGAL, l.ch, l.line, l.column)
	}

	l.readChar()
	return tok
}

// eofToken closes any open blocks before reporting EOF: a final NEWLINE if
// the last line was not terminated, then one DEDENT per open indent level.
func (l *Lexer) eofToken() token.Token {
	if !l.sawEOF {
		l.sawEOF = true
		for len(l.indents) > 1 {
			l.indents = l.indents[:len(l.indents)-1]
			l.pending = append(l.pending, token.Token{Type: token.DEDENT, Line: l.line, Column: l.column})
		}
		l.pending = append(l.pending, token.Token{Type: token.EOF, Line: l.line, Column: l.column})
		if !l.atLineStart {
			l.atLineStart = true
			return token.Token{Type: token.NEWLINE, Lexeme: "\n", Line: l.line, Column: l.column}
		}
	}
	if len(l.pending) > 0 {
		tok := l.pending[0]
		l.pending = l.pending[1:]
		return tok
	}
	return token.Token{Type: token.EOF, Line: l.line, Column: l.column}
}

// scanIndentation measures the leading whitespace of the current line and
// queues INDENT/DEDENT tokens for any change. Blank and comment-only lines
// are skipped entirely. Tabs advance to the next multiple of eight columns.
func (l *Lexer) scanIndentation() (token.Token, bool) {
	for {
		col := 0
		for l.ch == ' ' || l.ch == '\t' {
			if l.ch == '\t' {
				col = (col/8 + 1) * 8
			} else {
				col++
			}
			l.readChar()
		}
		if l.ch == '#' {
			l.skipComment()
		}
		if l.ch == '\r' && l.peekChar() == '\n' {
			l.readChar()
		}
		if l.ch == '\n' {
			l.readChar()
			continue
		}
		if l.ch == 0 {
			// Leave atLineStart set: the line was fully consumed, so
			// eofToken must not synthesize a terminating NEWLINE.
			return token.Token{}, false
		}

		l.atLineStart = false
		top := l.indents[len(l.indents)-1]
		switch {
		case col > top:
			l.indents = append(l.indents, col)
			return token.Token{Type: token.INDENT, Line: l.line, Column: l.column}, true
		case col < top:
			var first token.Token
			haveFirst := false
			for len(l.indents) > 1 && col < l.indents[len(l.indents)-1] {
				l.indents = l.indents[:len(l.indents)-1]
				tok := token.Token{Type: token.DEDENT, Line: l.line, Column: l.column}
				if !haveFirst {
					first = tok
					haveFirst = true
				} else {
					l.pending = append(l.pending, tok)
				}
			}
			if col != l.indents[len(l.indents)-1] {
				l.pending = append(l.pending, token.Token{
					Type:    token.ILLEGAL,
					Literal: "unindent does not match any outer indentation level",
					Line:    l.line,
					Column:  l.column,
				})
			}
			return first, true
		}
		return token.Token{}, false
	}
}

func (l *Lexer) skipSpaces() {
	for l.ch == ' ' || l.ch == '\t' || l.ch == '\r' {
		l.readChar()
	}
}

func (l *Lexer) skipComment() {
	for l.ch != '\n' && l.ch != 0 {
		l.readChar()
	}
}

func (l *Lexer) readIdentifier() token.Token {
	line, col := l.line, l.column
	start := l.position
	for isLetter(l.ch) || unicode.IsDigit(l.ch) {
		l.readChar()
	}
	lexeme := l.input[start:l.position]
	return token.Token{Type: token.LookupIdent(lexeme), Lexeme: lexeme, Literal: lexeme, Line: line, Column: col}
}

func (l *Lexer) readNumber() token.Token {
	line, col := l.line, l.column
	start := l.position
	typ := token.Type(token.INT)
	for unicode.IsDigit(l.ch) {
		l.readChar()
	}
	if l.ch == '.' && unicode.IsDigit(l.peekChar()) {
		typ = token.FLOAT
		l.readChar()
		for unicode.IsDigit(l.ch) {
			l.readChar()
		}
	}
	lexeme := l.input[start:l.position]
	return token.Token{Type: typ, Lexeme: lexeme, Literal: lexeme, Line: line, Column: col}
}

// readString scans a quoted string literal. Both single and double quotes
// are accepted, and a tripled quote opens a multi-line string (used for
// docstrings).
func (l *Lexer) readString(quote rune) token.Token {
	line, col := l.line, l.column
	start := l.position

	triple := false
	l.readChar()
	if l.ch == quote && l.peekChar() == quote {
		triple = true
		l.readChar()
		l.readChar()
	}

	var out []rune
	for {
		if l.ch == 0 {
			return token.Token{Type: token.ILLEGAL, Lexeme: l.input[start:l.position], Literal: "unterminated string literal", Line: line, Column: col}
		}
		if l.ch == quote {
			if !triple {
				l.readChar()
				break
			}
			if l.peekChar() == quote {
				l.readChar()
				if l.peekChar() == quote {
					l.readChar()
					l.readChar()
					break
				}
				out = append(out, quote, quote)
				l.readChar()
				continue
			}
			out = append(out, quote)
			l.readChar()
			continue
		}
		if !triple && l.ch == '\n' {
			return token.Token{Type: token.ILLEGAL, Lexeme: l.input[start:l.position], Literal: "newline in string literal", Line: line, Column: col}
		}
		if l.ch == '\\' {
			l.readChar()
			switch l.ch {
			case 'n':
				out = append(out, '\n')
			case 't':
				out = append(out, '\t')
			case '\\':
				out = append(out, '\\')
			case '\'':
				out = append(out, '\'')
			case '"':
				out = append(out, '"')
			default:
				out = append(out, '\\', l.ch)
			}
			l.readChar()
			continue
		}
		out = append(out, l.ch)
		l.readChar()
	}

	return token.Token{Type: token.STRING, Lexeme: l.input[start:l.position], Literal: string(out), Line: line, Column: col}
}

func newToken(tokenType token.Type, ch rune, line, column int) token.Token {
	return token.Token{Type: tokenType, Lexeme: string(ch), Literal: string(ch), Line: line, Column: column}
}

func isLetter(ch rune) bool {
	return 'a' <= ch && ch <= 'z' || 'A' <= ch && ch <= 'Z' || ch == '_' || unicode.IsLetter(ch)
}
