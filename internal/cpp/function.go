package cpp

import (
	"strings"

	"github.com/pycatalyst/catalyst/internal/types"
)

// Param is one formal parameter of an emitted function.
type Param struct {
	Name    string
	Type    types.Type
	Default string // rendered default value, empty when none
}

// Function is an emitted function or method. Param and return types are
// monomorphic: once fixed by inference they are never changed, and any type
// still unresolved at render time is spelled `auto`.
type Function struct {
	Name   string
	Params []Param
	Return types.Type
	Body   []Stmt
	IsCtor bool // constructors render without a return type
}

// Includes reports the headers the signature and body require.
func (f *Function) Includes() []string {
	var incs []string
	if !f.IsCtor && f.Return != nil {
		_, ri := CType(f.Return)
		for _, inc := range ri {
			incs = appendInclude(incs, inc)
		}
	}
	for _, p := range f.Params {
		_, pi := CType(p.Type)
		for _, inc := range pi {
			incs = appendInclude(incs, inc)
		}
	}
	for i := range f.Body {
		for _, inc := range f.Body[i].Includes() {
			incs = appendInclude(incs, inc)
		}
	}
	return incs
}

// signature renders the function header. Default values appear only when
// withDefaults is set: C++ wants them on the declaration, not the
// definition.
func (f *Function) signature(withDefaults bool) string {
	var b strings.Builder
	if !f.IsCtor {
		ret := f.Return
		if ret == nil {
			ret = types.Void
		}
		ctype, _ := CType(ret)
		b.WriteString(ctype + " ")
	}
	b.WriteString(f.Name + "(")
	for i, p := range f.Params {
		if i > 0 {
			b.WriteString(", ")
		}
		ctype, _ := CType(p.Type)
		b.WriteString(ctype + " " + p.Name)
		if withDefaults && p.Default != "" {
			b.WriteString(" = " + p.Default)
		}
	}
	b.WriteString(")")
	return b.String()
}

// ForwardDecl renders the declaration emitted ahead of all definitions.
func (f *Function) ForwardDecl() string {
	return f.signature(true) + ";"
}

// Render writes the full definition at the given indent depth.
func (f *Function) Render(indent string, depth int) string {
	pad := strings.Repeat(indent, depth)
	var b strings.Builder
	b.WriteString(pad + f.signature(false) + "\n" + pad + "{\n")
	writeBlock(&b, f.Body, indent, depth+1)
	b.WriteString(pad + "}\n")
	return b.String()
}
