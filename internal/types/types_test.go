package types_test

import (
	"testing"

	"github.com/pycatalyst/catalyst/internal/types"
)

func TestEqual(t *testing.T) {
	tests := []struct {
		name string
		a, b types.Type
		want bool
	}{
		{"int_int", types.Int, types.Int, true},
		{"int_float", types.Int, types.Float, false},
		{"seq_same_elem", types.Sequence{Elem: types.Int}, types.Sequence{Elem: types.Int}, true},
		{"seq_diff_elem", types.Sequence{Elem: types.Int}, types.Sequence{Elem: types.Str}, false},
		{"seq_vs_set", types.Sequence{Elem: types.Int}, types.Set{Elem: types.Int}, false},
		{"tuple_same", types.Tuple{Elems: []types.Type{types.Int, types.Str}}, types.Tuple{Elems: []types.Type{types.Int, types.Str}}, true},
		{"tuple_diff_len", types.Tuple{Elems: []types.Type{types.Int}}, types.Tuple{Elems: []types.Type{types.Int, types.Int}}, false},
		{"named_same", types.Named{Class: "Dog"}, types.Named{Class: "Dog"}, true},
		{"named_diff", types.Named{Class: "Dog"}, types.Named{Class: "Cat"}, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := types.Equal(tc.a, tc.b); got != tc.want {
				t.Errorf("Equal(%s, %s) = %v, want %v", tc.a, tc.b, got, tc.want)
			}
		})
	}
}

func TestWiden(t *testing.T) {
	tests := []struct {
		name  string
		left  types.Type
		right types.Type
		want  types.Type
		ok    bool
	}{
		{"int_int", types.Int, types.Int, types.Int, true},
		{"int_float", types.Int, types.Float, types.Float, true},
		{"float_int", types.Float, types.Int, types.Float, true},
		{"float_float", types.Float, types.Float, types.Float, true},
		{"str_str", types.Str, types.Str, types.Str, true},
		{"str_int", types.Str, types.Int, nil, false},
		{"int_str", types.Int, types.Str, nil, false},
		{"bool_never_widens", types.Bool, types.Int, nil, false},
		{"bool_bool", types.Bool, types.Bool, nil, false},
		{"unresolved_defers_left", types.Unresolved, types.Float, types.Float, true},
		{"unresolved_defers_right", types.Int, types.Unresolved, types.Int, true},
		{"seq_rejected", types.Sequence{Elem: types.Int}, types.Int, nil, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := types.Widen(tc.left, tc.right)
			if ok != tc.ok {
				t.Fatalf("Widen(%s, %s) ok = %v, want %v", tc.left, tc.right, ok, tc.ok)
			}
			if ok && !types.Equal(got, tc.want) {
				t.Errorf("Widen(%s, %s) = %s, want %s", tc.left, tc.right, got, tc.want)
			}
		})
	}
}

func TestMerge(t *testing.T) {
	tests := []struct {
		name string
		a, b types.Type
		want types.Type
		ok   bool
	}{
		{"equal", types.Int, types.Int, types.Int, true},
		{"unresolved_adopts_left", types.Unresolved, types.Str, types.Str, true},
		{"unresolved_adopts_right", types.Float, types.Unresolved, types.Float, true},
		{"mismatch", types.Int, types.Float, nil, false},
		{"seq_elem_refined", types.Sequence{Elem: types.Unresolved}, types.Sequence{Elem: types.Int}, types.Sequence{Elem: types.Int}, true},
		{"seq_elem_kept", types.Sequence{Elem: types.Int}, types.Sequence{Elem: types.Unresolved}, types.Sequence{Elem: types.Int}, true},
		{"seq_elem_mismatch", types.Sequence{Elem: types.Int}, types.Sequence{Elem: types.Str}, nil, false},
		{"seq_vs_set", types.Sequence{Elem: types.Int}, types.Set{Elem: types.Int}, nil, false},
		{"set_elem_refined", types.Set{Elem: types.Unresolved}, types.Set{Elem: types.Str}, types.Set{Elem: types.Str}, true},
		{"tuple_elementwise", types.Tuple{Elems: []types.Type{types.Unresolved, types.Str}}, types.Tuple{Elems: []types.Type{types.Int, types.Unresolved}}, types.Tuple{Elems: []types.Type{types.Int, types.Str}}, true},
		{"tuple_len_mismatch", types.Tuple{Elems: []types.Type{types.Int}}, types.Tuple{Elems: []types.Type{types.Int, types.Int}}, nil, false},
		{"named_equal", types.Named{Class: "Dog"}, types.Named{Class: "Dog"}, types.Named{Class: "Dog"}, true},
		{"named_mismatch", types.Named{Class: "Dog"}, types.Named{Class: "Cat"}, nil, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := types.Merge(tc.a, tc.b)
			if ok != tc.ok {
				t.Fatalf("Merge(%s, %s) ok = %v, want %v", tc.a, tc.b, ok, tc.ok)
			}
			if ok && !types.Equal(got, tc.want) {
				t.Errorf("Merge(%s, %s) = %s, want %s", tc.a, tc.b, got, tc.want)
			}
		})
	}
}

func TestUnifyElems(t *testing.T) {
	tests := []struct {
		name  string
		elems []types.Type
		want  types.Type
		ok    bool
	}{
		{"empty", nil, types.Unresolved, true},
		{"homogeneous", []types.Type{types.Int, types.Int}, types.Int, true},
		{"heterogeneous", []types.Type{types.Int, types.Str}, nil, false},
		{"int_float_not_promoted", []types.Type{types.Int, types.Float}, nil, false},
		{"unresolved_adopts", []types.Type{types.Unresolved, types.Str}, types.Str, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := types.UnifyElems(tc.elems)
			if ok != tc.ok {
				t.Fatalf("ok = %v, want %v", ok, tc.ok)
			}
			if ok && !types.Equal(got, tc.want) {
				t.Errorf("got %s, want %s", got, tc.want)
			}
		})
	}
}

func TestStringForms(t *testing.T) {
	tests := []struct {
		typ  types.Type
		want string
	}{
		{types.Int, "int"},
		{types.Unresolved, "auto"},
		{types.Sequence{Elem: types.Float}, "list[float]"},
		{types.Set{Elem: types.Str}, "set[str]"},
		{types.Tuple{Elems: []types.Type{types.Int, types.Str}}, "tuple[int, str]"},
		{types.Named{Class: "Point"}, "Point"},
	}
	for _, tc := range tests {
		if got := tc.typ.String(); got != tc.want {
			t.Errorf("String() = %q, want %q", got, tc.want)
		}
	}
}
