package cpp

import (
	"strings"
)

// Class is an emitted class: attribute declarations in initializer order, a
// constructor synthesized from the class's initializer method, and the
// remaining methods in definition order. Base carries at most one base
// class name, recorded verbatim; no dispatch is modeled.
type Class struct {
	Name    string
	Base    string
	Attrs   []Decl
	Ctor    *Function
	Methods []*Function
}

// Includes reports the headers the attributes, constructor, and methods
// require.
func (c *Class) Includes() []string {
	var incs []string
	for i := range c.Attrs {
		for _, inc := range c.Attrs[i].Includes() {
			incs = appendInclude(incs, inc)
		}
	}
	if c.Ctor != nil {
		for _, inc := range c.Ctor.Includes() {
			incs = appendInclude(incs, inc)
		}
	}
	for _, m := range c.Methods {
		for _, inc := range m.Includes() {
			incs = appendInclude(incs, inc)
		}
	}
	return incs
}

// ForwardDecl renders the class's forward declaration.
func (c *Class) ForwardDecl() string {
	return "class " + c.Name + ";"
}

// Render writes the full class definition.
func (c *Class) Render(indent string) string {
	var b strings.Builder
	b.WriteString("class " + c.Name)
	if c.Base != "" {
		b.WriteString(" : public " + c.Base)
	}
	b.WriteString("\n{\npublic:\n")
	for i := range c.Attrs {
		b.WriteString(indent + c.Attrs[i].Render() + "\n")
	}
	if c.Ctor != nil {
		b.WriteString(c.Ctor.Render(indent, 1))
	}
	for _, m := range c.Methods {
		b.WriteString(m.Render(indent, 1))
	}
	b.WriteString("};\n")
	return b.String()
}
