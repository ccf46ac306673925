// Package cpp models the emitted C++ translation unit: typed declaration,
// statement, function, and class objects that know the headers they require
// and how to render themselves, plus the File accumulator that assembles
// them into deterministic output text.
package cpp

import (
	"strings"

	"github.com/pycatalyst/catalyst/internal/types"
)

// CType maps a static type onto its C++ spelling and the headers the
// spelling requires.
func CType(t types.Type) (string, []string) {
	switch tt := t.(type) {
	case types.Sequence:
		elem, incs := CType(tt.Elem)
		return "std::vector<" + elem + ">", appendInclude(incs, "vector")
	case types.Set:
		elem, incs := CType(tt.Elem)
		return "std::unordered_set<" + elem + ">", appendInclude(incs, "unordered_set")
	case types.Tuple:
		var incs []string
		elems := make([]string, len(tt.Elems))
		for i, e := range tt.Elems {
			var ei []string
			elems[i], ei = CType(e)
			for _, inc := range ei {
				incs = appendInclude(incs, inc)
			}
		}
		return "std::tuple<" + strings.Join(elems, ", ") + ">", appendInclude(incs, "tuple")
	case types.Named:
		return tt.Class, nil
	}

	switch {
	case types.Equal(t, types.Int):
		return "int", nil
	case types.Equal(t, types.Float):
		return "double", nil
	case types.Equal(t, types.Str):
		return "std::string", []string{"string"}
	case types.Equal(t, types.Bool):
		return "bool", nil
	case types.Equal(t, types.Void):
		return "void", nil
	}
	return "auto", nil
}

func appendInclude(incs []string, inc string) []string {
	for _, have := range incs {
		if have == inc {
			return incs
		}
	}
	return append(incs, inc)
}
