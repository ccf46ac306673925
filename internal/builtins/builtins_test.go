package builtins_test

import (
	"testing"

	"github.com/pycatalyst/catalyst/internal/builtins"
	"github.com/pycatalyst/catalyst/internal/types"
)

func TestCategoryOf(t *testing.T) {
	tests := []struct {
		typ  types.Type
		want builtins.Category
	}{
		{types.Int, builtins.CatNumber},
		{types.Float, builtins.CatNumber},
		{types.Str, builtins.CatText},
		{types.Sequence{Elem: types.Int}, builtins.CatSequence},
		{types.Set{Elem: types.Str}, builtins.CatSet},
		{types.Tuple{Elems: []types.Type{types.Int}}, builtins.CatTuple},
		{types.Bool, builtins.CatNone},
		{types.Named{Class: "Dog"}, builtins.CatNone},
	}
	for _, tc := range tests {
		if got := builtins.CategoryOf(tc.typ); got != tc.want {
			t.Errorf("CategoryOf(%s) = %s, want %s", tc.typ, got, tc.want)
		}
	}
}

func TestLookupAndExpand(t *testing.T) {
	tests := []struct {
		name  string
		cat   builtins.Category
		fn    string
		arity int
		recv  string
		args  []string
		want  string
	}{
		{"print_variadic", builtins.CatFree, "print", 3, "", []string{"1", `"a"`, "x"},
			`std::cout << 1 << "a" << x << std::endl`},
		{"print_empty", builtins.CatFree, "print", 0, "", nil, "std::cout << std::endl"},
		{"len_text", builtins.CatText, "len", 0, "s", nil, "s.length()"},
		{"len_sequence", builtins.CatSequence, "len", 0, "xs", nil, "xs.size()"},
		{"len_tuple", builtins.CatTuple, "len", 0, "t", nil, "std::tuple_size<decltype(t)>::value"},
		{"append", builtins.CatSequence, "append", 1, "xs", []string{"4"}, "xs.push_back(4)"},
		{"set_add", builtins.CatSet, "add", 1, "s", []string{"1"}, "s.insert(1)"},
		{"set_discard", builtins.CatSet, "discard", 1, "s", []string{"1"}, "s.erase(1)"},
		{"set_clear", builtins.CatSet, "clear", 0, "s", nil, "s.clear()"},
		{"sqrt", builtins.CatNumber, "sqrt", 0, "x", nil, "std::sqrt(x)"},
		{"pow", builtins.CatNumber, "pow", 1, "x", []string{"2"}, "std::pow(x, 2)"},
		{"log_natural", builtins.CatNumber, "log", 0, "x", nil, "std::log(x)"},
		{"log_with_base", builtins.CatNumber, "log", 1, "x", []string{"2"}, "(std::log(x) / std::log(2))"},
		{"str_of_number", builtins.CatNumber, "str", 0, "n", nil, "std::to_string(n)"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b, ok := builtins.Lookup(tc.cat, tc.fn, tc.arity)
			if !ok {
				t.Fatalf("Lookup(%s, %s, %d) missed", tc.cat, tc.fn, tc.arity)
			}
			if got := b.Expand(tc.recv, tc.args); got != tc.want {
				t.Errorf("got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestLookupMisses(t *testing.T) {
	tests := []struct {
		cat   builtins.Category
		fn    string
		arity int
	}{
		{builtins.CatSequence, "add", 1},    // add is a set method
		{builtins.CatSet, "append", 1},     // append is a sequence method
		{builtins.CatTuple, "append", 1},   // tuples are immutable
		{builtins.CatText, "sqrt", 0},      // sqrt wants a number
		{builtins.CatNumber, "length", 0},  // no such name
		{builtins.CatSequence, "clear", 0}, // clear is set-only here
	}
	for _, tc := range tests {
		if _, ok := builtins.Lookup(tc.cat, tc.fn, tc.arity); ok {
			t.Errorf("Lookup(%s, %s, %d) unexpectedly hit", tc.cat, tc.fn, tc.arity)
		}
	}
}

func TestResultTypes(t *testing.T) {
	b, _ := builtins.Lookup(builtins.CatSequence, "len", 0)
	if !types.Equal(b.Result, types.Int) {
		t.Errorf("len result = %s, want int", b.Result)
	}
	b, _ = builtins.Lookup(builtins.CatNumber, "sqrt", 0)
	if !types.Equal(b.Result, types.Float) {
		t.Errorf("sqrt result = %s, want float", b.Result)
	}
	b, _ = builtins.Lookup(builtins.CatNumber, "str", 0)
	if !types.Equal(b.Result, types.Str) {
		t.Errorf("str result = %s, want str", b.Result)
	}
}
