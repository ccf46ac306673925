package cpp

import (
	"github.com/pycatalyst/catalyst/internal/types"
)

// Decl is a variable or attribute declaration with an optional initializer.
// Init holds already-rendered C++ expression text; collection initializers
// arrive in their braced or make_tuple form.
type Decl struct {
	Name string
	Type types.Type
	Init string   // empty for a bare declaration
	Incs []string // headers the initializer expression needs
}

// Includes reports the headers the declared type and initializer require.
func (d *Decl) Includes() []string {
	_, incs := CType(d.Type)
	out := append([]string(nil), incs...)
	for _, inc := range d.Incs {
		out = appendInclude(out, inc)
	}
	return out
}

// Render returns the declaration statement text, without indentation.
func (d *Decl) Render() string {
	ctype, _ := CType(d.Type)
	if d.Init == "" {
		return ctype + " " + d.Name + ";"
	}
	return ctype + " " + d.Name + " = " + d.Init + ";"
}

// SequenceInit renders a vector initializer for the given rendered
// elements: `{ 1, 2, 3 }`.
func SequenceInit(elems []string) string {
	return braced(elems)
}

// SetInit renders an unordered_set initializer: `{ "a", "b" }`.
func SetInit(elems []string) string {
	return braced(elems)
}

// TupleInit renders a tuple initializer: `std::make_tuple(1, 2.5)`.
func TupleInit(elems []string) string {
	out := "std::make_tuple("
	for i, e := range elems {
		if i > 0 {
			out += ", "
		}
		out += e
	}
	return out + ")"
}

func braced(elems []string) string {
	if len(elems) == 0 {
		return "{ }"
	}
	out := "{ "
	for i, e := range elems {
		if i > 0 {
			out += ", "
		}
		out += e
	}
	return out + " }"
}
