// Package builtins holds the fixed table mapping built-in calls to C++
// emission templates. The table is populated once at package init and never
// mutated afterwards, so it is safe to consult from any number of
// translation runs.
package builtins

import (
	"strconv"
	"strings"

	"github.com/pycatalyst/catalyst/internal/config"
	"github.com/pycatalyst/catalyst/internal/types"
)

// Category groups receiver types for table lookup. Free functions with no
// receiver use CatFree; unary built-ins like len and sqrt treat their first
// argument as the receiver.
type Category int

const (
	CatFree Category = iota
	CatNumber
	CatText
	CatSequence
	CatSet
	CatTuple
	CatNone // no category; lookup always misses
)

func (c Category) String() string {
	switch c {
	case CatFree:
		return "free"
	case CatNumber:
		return "number"
	case CatText:
		return "text"
	case CatSequence:
		return "sequence"
	case CatSet:
		return "set"
	case CatTuple:
		return "tuple"
	}
	return "none"
}

// CategoryOf maps a receiver type to its lookup category.
func CategoryOf(t types.Type) Category {
	switch t.(type) {
	case types.Sequence:
		return CatSequence
	case types.Set:
		return CatSet
	case types.Tuple:
		return CatTuple
	}
	switch {
	case types.Equal(t, types.Int), types.Equal(t, types.Float):
		return CatNumber
	case types.Equal(t, types.Str):
		return CatText
	}
	return CatNone
}

// Variadic marks a binding that accepts any number of arguments.
const Variadic = -1

// Binding is one immutable entry: the emission template, the headers the
// emitted code needs, and the call's result type.
//
// Template placeholders: {recv} is the receiver, {0}, {1}, ... are the
// arguments, and {args} expands to all arguments joined with Join.
type Binding struct {
	Template string
	Join     string
	Includes []string
	Result   types.Type
}

// Expand renders the template against a receiver and argument texts.
func (b Binding) Expand(recv string, args []string) string {
	out := strings.ReplaceAll(b.Template, "{recv}", recv)
	if strings.Contains(out, "{args}") {
		out = strings.ReplaceAll(out, "{args}", strings.Join(args, b.Join))
	}
	for i, arg := range args {
		out = strings.ReplaceAll(out, "{"+strconv.Itoa(i)+"}", arg)
	}
	return out
}

type key struct {
	cat   Category
	name  string
	arity int
}

var table = map[key]Binding{
	// Output call: text-stream write. Without arguments it still emits the
	// line terminator.
	{CatFree, config.PrintFuncName, Variadic}: {
		Template: "std::cout << {args} << std::endl",
		Join:     " << ",
		Includes: []string{"iostream"},
		Result:   types.Void,
	},
	{CatFree, config.PrintFuncName, 0}: {
		Template: "std::cout << std::endl",
		Includes: []string{"iostream"},
		Result:   types.Void,
	},

	// Size queries, per receiver shape.
	{CatText, config.LenFuncName, 0}: {
		Template: "{recv}.length()",
		Includes: []string{"string"},
		Result:   types.Int,
	},
	{CatSequence, config.LenFuncName, 0}: {
		Template: "{recv}.size()",
		Result:   types.Int,
	},
	{CatSet, config.LenFuncName, 0}: {
		Template: "{recv}.size()",
		Result:   types.Int,
	},
	{CatTuple, config.LenFuncName, 0}: {
		Template: "std::tuple_size<decltype({recv})>::value",
		Includes: []string{"tuple"},
		Result:   types.Int,
	},

	// Sequence insertion at end.
	{CatSequence, config.AppendMethodName, 1}: {
		Template: "{recv}.push_back({0})",
		Result:   types.Void,
	},

	// Set mutators. remove and discard both map onto erase: erasing an
	// absent key is already a no-op in C++, which covers discard, and the
	// subset does not model remove's KeyError.
	{CatSet, config.AddMethodName, 1}: {
		Template: "{recv}.insert({0})",
		Result:   types.Void,
	},
	{CatSet, config.RemoveMethodName, 1}: {
		Template: "{recv}.erase({0})",
		Result:   types.Void,
	},
	{CatSet, config.DiscardMethodName, 1}: {
		Template: "{recv}.erase({0})",
		Result:   types.Void,
	},
	{CatSet, config.ClearMethodName, 0}: {
		Template: "{recv}.clear()",
		Result:   types.Void,
	},

	// Numeric library calls.
	{CatNumber, config.SqrtFuncName, 0}: {
		Template: "std::sqrt({recv})",
		Includes: []string{"cmath"},
		Result:   types.Float,
	},
	{CatNumber, config.PowFuncName, 1}: {
		Template: "std::pow({recv}, {0})",
		Includes: []string{"cmath"},
		Result:   types.Float,
	},
	{CatNumber, config.LogFuncName, 0}: {
		Template: "std::log({recv})",
		Includes: []string{"cmath"},
		Result:   types.Float,
	},
	{CatNumber, config.LogFuncName, 1}: {
		Template: "(std::log({recv}) / std::log({0}))",
		Includes: []string{"cmath"},
		Result:   types.Float,
	},

	// Text conversion of numeric values.
	{CatNumber, config.StrFuncName, 0}: {
		Template: "std::to_string({recv})",
		Includes: []string{"string"},
		Result:   types.Str,
	},
	{CatText, config.StrFuncName, 0}: {
		Template: "{recv}",
		Result:   types.Str,
	},
}

// FreeFunctions are the call names resolved through the table when they
// appear as plain calls. All but print treat their first argument as the
// receiver.
var FreeFunctions = map[string]bool{
	config.PrintFuncName: true,
	config.LenFuncName:   true,
	config.SqrtFuncName:  true,
	config.PowFuncName:   true,
	config.LogFuncName:   true,
	config.StrFuncName:   true,
}

// Lookup returns the binding for (category, name, arity), trying an exact
// arity first and then a variadic entry.
func Lookup(cat Category, name string, arity int) (Binding, bool) {
	if b, ok := table[key{cat, name, arity}]; ok {
		return b, true
	}
	if b, ok := table[key{cat, name, Variadic}]; ok {
		return b, true
	}
	return Binding{}, false
}
