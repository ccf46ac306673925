// Package types defines the closed set of static types the translator can
// assign to expressions and declarations, together with the numeric
// promotion and element unification rules.
package types

import (
	"strings"
)

// Type is the interface for all types in the system. The set of
// implementations is closed; the translator switches over it exhaustively.
type Type interface {
	// String returns the source-language-facing name, used in messages.
	String() string
	typeKind()
}

// basic is a nullary type constructor.
type basic struct {
	name string
}

func (b basic) String() string { return b.name }
func (b basic) typeKind()      {}

// The nullary types. Unresolved marks a type not yet fixed by inference;
// it renders as C++ `auto` if it survives to emission.
var (
	Int        Type = basic{"int"}
	Float      Type = basic{"float"}
	Str        Type = basic{"str"}
	Bool       Type = basic{"bool"}
	Void       Type = basic{"None"}
	Unresolved Type = basic{"auto"}
)

// Sequence is a homogeneous ordered collection (a Python list).
type Sequence struct {
	Elem Type
}

func (s Sequence) String() string { return "list[" + s.Elem.String() + "]" }
func (s Sequence) typeKind()      {}

// Tuple is a fixed-shape collection with per-position element types.
type Tuple struct {
	Elems []Type
}

func (t Tuple) String() string {
	names := make([]string, len(t.Elems))
	for i, e := range t.Elems {
		names[i] = e.String()
	}
	return "tuple[" + strings.Join(names, ", ") + "]"
}
func (t Tuple) typeKind() {}

// Set is a homogeneous unordered collection of unique elements.
type Set struct {
	Elem Type
}

func (s Set) String() string { return "set[" + s.Elem.String() + "]" }
func (s Set) typeKind()      {}

// Named is an instance of a user-defined class.
type Named struct {
	Class string
}

func (n Named) String() string { return n.Class }
func (n Named) typeKind()      {}

// Equal reports whether a and b are the same type.
func Equal(a, b Type) bool {
	switch at := a.(type) {
	case basic:
		bt, ok := b.(basic)
		return ok && at.name == bt.name
	case Sequence:
		bt, ok := b.(Sequence)
		return ok && Equal(at.Elem, bt.Elem)
	case Set:
		bt, ok := b.(Set)
		return ok && Equal(at.Elem, bt.Elem)
	case Tuple:
		bt, ok := b.(Tuple)
		if !ok || len(at.Elems) != len(bt.Elems) {
			return false
		}
		for i := range at.Elems {
			if !Equal(at.Elems[i], bt.Elems[i]) {
				return false
			}
		}
		return true
	case Named:
		bt, ok := b.(Named)
		return ok && at.Class == bt.Class
	}
	return false
}

// IsNumeric reports whether t participates in arithmetic promotion.
// Bool deliberately does not: it is never implicitly widened.
func IsNumeric(t Type) bool {
	return Equal(t, Int) || Equal(t, Float)
}

// Widen computes the result type of a binary arithmetic operation under the
// fixed promotion rule: Int op Int is Int, any Float operand makes the
// result Float, Str concatenation needs Str on both sides. An Unresolved
// operand defers to the other side. The second result is false when the
// operand pairing has no rule.
func Widen(left, right Type) (Type, bool) {
	if Equal(left, Unresolved) {
		return right, true
	}
	if Equal(right, Unresolved) {
		return left, true
	}
	if Equal(left, Str) && Equal(right, Str) {
		return Str, true
	}
	if !IsNumeric(left) || !IsNumeric(right) {
		return nil, false
	}
	if Equal(left, Float) || Equal(right, Float) {
		return Float, true
	}
	return Int, true
}

// Merge fills the unresolved parts of a from b, reporting whether the two
// types are compatible. An Unresolved side adopts the other, collections
// merge element-wise, and anything else must be equal. Rebinding uses this
// so an empty collection literal can be refined by a later binding.
func Merge(a, b Type) (Type, bool) {
	if Equal(a, Unresolved) {
		return b, true
	}
	if Equal(b, Unresolved) {
		return a, true
	}
	switch at := a.(type) {
	case Sequence:
		bt, ok := b.(Sequence)
		if !ok {
			return nil, false
		}
		elem, ok := Merge(at.Elem, bt.Elem)
		if !ok {
			return nil, false
		}
		return Sequence{Elem: elem}, true
	case Set:
		bt, ok := b.(Set)
		if !ok {
			return nil, false
		}
		elem, ok := Merge(at.Elem, bt.Elem)
		if !ok {
			return nil, false
		}
		return Set{Elem: elem}, true
	case Tuple:
		bt, ok := b.(Tuple)
		if !ok || len(at.Elems) != len(bt.Elems) {
			return nil, false
		}
		elems := make([]Type, len(at.Elems))
		for i := range at.Elems {
			merged, ok := Merge(at.Elems[i], bt.Elems[i])
			if !ok {
				return nil, false
			}
			elems[i] = merged
		}
		return Tuple{Elems: elems}, true
	}
	if Equal(a, b) {
		return a, true
	}
	return nil, false
}

// UnifyElems folds the element types of a collection literal into a single
// type. All elements must be equal (an Unresolved element adopts the
// unified type); the second result is false for heterogeneous elements.
// The empty literal unifies to Unresolved.
func UnifyElems(elems []Type) (Type, bool) {
	unified := Unresolved
	for _, e := range elems {
		if Equal(unified, Unresolved) {
			unified = e
			continue
		}
		if Equal(e, Unresolved) || Equal(e, unified) {
			continue
		}
		return nil, false
	}
	return unified, true
}
