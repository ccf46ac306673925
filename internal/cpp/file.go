package cpp

import (
	"strings"
)

// Unit is anything the assembler can accumulate. Every unit reports the
// headers its types and operations require.
type Unit interface {
	Includes() []string
}

// File accumulates emission units in the exact order the translator visits
// top-level declarations and assembles them into one translation unit.
// Render is a pure function of the accumulated units: identical sequences
// render byte-identical text.
type File struct {
	Name string // output stem, e.g. "main"

	units   []Unit // accumulation order, drives include ordering
	classes []*Class
	funcs   []*Function
	main    []*Stmt // top-level statements owned by the entry function
}

// NewFile returns an empty accumulator for one translation run.
func NewFile(name string) *File {
	return &File{Name: name}
}

// AddClass appends a class definition.
func (f *File) AddClass(c *Class) {
	f.units = append(f.units, c)
	f.classes = append(f.classes, c)
}

// AddFunction appends a function definition.
func (f *File) AddFunction(fn *Function) {
	f.units = append(f.units, fn)
	f.funcs = append(f.funcs, fn)
}

// AddMain appends a top-level statement to the synthesized entry function.
func (f *File) AddMain(s Stmt) {
	stmt := s
	f.main = append(f.main, &stmt)
	f.units = append(f.units, &stmt)
}

// Render assembles the final text: deduplicated includes in first-required
// order, class forward declarations, function forward declarations, class
// definitions, function definitions, and the synthesized program entry
// holding every top-level statement and terminating with `return 0`.
func (f *File) Render(indent string) string {
	var b strings.Builder

	var incs []string
	for _, u := range f.units {
		for _, inc := range u.Includes() {
			incs = appendInclude(incs, inc)
		}
	}
	for _, inc := range incs {
		b.WriteString("#include <" + inc + ">\n")
	}

	for _, c := range f.classes {
		b.WriteString(c.ForwardDecl() + "\n")
	}
	for _, fn := range f.funcs {
		b.WriteString(fn.ForwardDecl() + "\n")
	}
	b.WriteString("\n")

	for _, c := range f.classes {
		b.WriteString(c.Render(indent) + "\n")
	}
	for _, fn := range f.funcs {
		b.WriteString(fn.Render(indent, 0) + "\n")
	}

	b.WriteString("int main(int argc, char **argv)\n{\n")
	for _, s := range f.main {
		s.write(&b, indent, 1)
	}
	b.WriteString(indent + "return 0;\n}\n")

	return b.String()
}
