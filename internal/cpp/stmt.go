package cpp

import (
	"strings"
)

// StmtKind discriminates the statement forms the translator can emit.
type StmtKind int

const (
	StmtExpr StmtKind = iota
	StmtAssign
	StmtReturn
	StmtIf
	StmtWhile
	StmtFor
	StmtBreak
	StmtContinue
	StmtComment
	StmtDecl
)

// Stmt is one emitted statement. Text carries the rendered expression
// portion for the simple kinds; for StmtFor it is the full loop header.
type Stmt struct {
	Kind StmtKind
	Text string
	Cond string // condition for StmtIf / StmtWhile
	Body []Stmt
	Else []Stmt  // StmtIf only; a single nested StmtIf renders as `else if`
	Decl *Decl   // StmtDecl only
	Incs []string // headers required by the operations in this statement
}

// Includes reports the headers this statement and its nested blocks need,
// in first-required order.
func (s *Stmt) Includes() []string {
	incs := append([]string(nil), s.Incs...)
	if s.Decl != nil {
		for _, inc := range s.Decl.Includes() {
			incs = appendInclude(incs, inc)
		}
	}
	for i := range s.Body {
		for _, inc := range s.Body[i].Includes() {
			incs = appendInclude(incs, inc)
		}
	}
	for i := range s.Else {
		for _, inc := range s.Else[i].Includes() {
			incs = appendInclude(incs, inc)
		}
	}
	return incs
}

// write renders the statement into b at the given indent depth.
func (s *Stmt) write(b *strings.Builder, indent string, depth int) {
	pad := strings.Repeat(indent, depth)
	switch s.Kind {
	case StmtExpr, StmtAssign:
		b.WriteString(pad + s.Text + ";\n")
	case StmtReturn:
		if s.Text == "" {
			b.WriteString(pad + "return;\n")
		} else {
			b.WriteString(pad + "return " + s.Text + ";\n")
		}
	case StmtBreak:
		b.WriteString(pad + "break;\n")
	case StmtContinue:
		b.WriteString(pad + "continue;\n")
	case StmtComment:
		b.WriteString(pad + "/* " + s.Text + " */\n")
	case StmtDecl:
		b.WriteString(pad + s.Decl.Render() + "\n")
	case StmtWhile:
		b.WriteString(pad + "while (" + s.Cond + ")\n" + pad + "{\n")
		writeBlock(b, s.Body, indent, depth+1)
		b.WriteString(pad + "}\n")
	case StmtFor:
		b.WriteString(pad + "for (" + s.Text + ")\n" + pad + "{\n")
		writeBlock(b, s.Body, indent, depth+1)
		b.WriteString(pad + "}\n")
	case StmtIf:
		s.writeIf(b, indent, depth, pad)
	}
}

func (s *Stmt) writeIf(b *strings.Builder, indent string, depth int, pad string) {
	b.WriteString(pad + "if (" + s.Cond + ")\n" + pad + "{\n")
	writeBlock(b, s.Body, indent, depth+1)
	b.WriteString(pad + "}\n")
	if len(s.Else) == 0 {
		return
	}
	// An else branch holding exactly one if chains as `else if`.
	if len(s.Else) == 1 && s.Else[0].Kind == StmtIf {
		elif := s.Else[0]
		b.WriteString(pad + "else ")
		rest := elif.renderAt(indent, depth)
		b.WriteString(strings.TrimPrefix(rest, pad))
		return
	}
	b.WriteString(pad + "else\n" + pad + "{\n")
	writeBlock(b, s.Else, indent, depth+1)
	b.WriteString(pad + "}\n")
}

func (s *Stmt) renderAt(indent string, depth int) string {
	var b strings.Builder
	s.write(&b, indent, depth)
	return b.String()
}

func writeBlock(b *strings.Builder, stmts []Stmt, indent string, depth int) {
	for i := range stmts {
		stmts[i].write(b, indent, depth)
	}
}
