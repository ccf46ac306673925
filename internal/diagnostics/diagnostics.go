// Package diagnostics defines the coded error values reported by every
// stage of the translation pipeline.
package diagnostics

import (
	"fmt"
	"io"
	"strings"

	"github.com/pycatalyst/catalyst/internal/token"
)

// Error codes by stage: L = lexer, P = parser, T = translator.
const (
	ErrL001 = "L001" // malformed token
	ErrP001 = "P001" // unexpected token
	ErrP002 = "P002" // malformed literal
	ErrT001 = "T001" // unsupported construct
	ErrT002 = "T002" // name resolution failure
	ErrT003 = "T003" // redeclaration
	ErrT004 = "T004" // type conflict
)

// Diagnostic is one fatal finding, carrying enough context for an
// actionable message. It implements error.
type Diagnostic struct {
	Code    string
	Message string
	File    string
	Line    int
	Column  int
}

func (d *Diagnostic) Error() string {
	pos := fmt.Sprintf("%d:%d", d.Line, d.Column)
	if d.File != "" {
		pos = d.File + ":" + pos
	}
	return fmt.Sprintf("%s: [%s] %s", pos, d.Code, d.Message)
}

// NewError builds a diagnostic positioned at tok.
func NewError(code string, tok token.Token, format string, args ...interface{}) *Diagnostic {
	return &Diagnostic{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Line:    tok.Line,
		Column:  tok.Column,
	}
}

// Unsupported reports a construct the translator has no mapping for.
func Unsupported(tok token.Token, format string, args ...interface{}) *Diagnostic {
	return NewError(ErrT001, tok, "unsupported construct: "+format, args...)
}

// NameNotFound reports a reference that no enclosing scope binds.
// scopeDesc names the innermost scope that was searched.
func NameNotFound(tok token.Token, name, scopeDesc string) *Diagnostic {
	return NewError(ErrT002, tok, "name %q is not defined (searched from %s scope outward)", name, scopeDesc)
}

// Redeclared reports a second declaration of name in the same scope frame.
func Redeclared(tok token.Token, name string) *Diagnostic {
	return NewError(ErrT003, tok, "name %q is already declared in this scope", name)
}

// ANSI escapes used by Format when color is enabled.
const (
	colorRed   = "\x1b[31m"
	colorBold  = "\x1b[1m"
	colorReset = "\x1b[0m"
)

// Format writes diagnostics one per line, optionally colored for
// terminal output.
func Format(w io.Writer, diags []*Diagnostic, color bool) {
	for _, d := range diags {
		line := d.Error()
		if color {
			// Highlight the code portion only; the message stays plain so
			// it can be copied into issues without escapes.
			line = strings.Replace(line, "["+d.Code+"]", colorBold+colorRed+"["+d.Code+"]"+colorReset, 1)
		}
		fmt.Fprintln(w, line)
	}
}
