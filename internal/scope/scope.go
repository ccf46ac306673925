// Package scope implements the chain of name-resolution frames used during
// translation: one module frame, plus one frame per function, class, or
// method body.
package scope

import (
	"fmt"

	"github.com/pycatalyst/catalyst/internal/types"
)

// Kind classifies what a name was declared as.
type Kind int

const (
	KindVariable Kind = iota
	KindParameter
	KindFunction
	KindClass
	KindAttribute
)

func (k Kind) String() string {
	switch k {
	case KindVariable:
		return "variable"
	case KindParameter:
		return "parameter"
	case KindFunction:
		return "function"
	case KindClass:
		return "class"
	case KindAttribute:
		return "attribute"
	}
	return "unknown"
}

// Symbol is one binding in a scope frame.
type Symbol struct {
	Name string
	Type types.Type
	Kind Kind
}

// Scope is a single frame. Frames form a chain through parent links;
// lookup walks innermost to outermost and the first match wins.
type Scope struct {
	name    string // frame description, used in error messages
	parent  *Scope
	symbols map[string]*Symbol
}

// NewModule returns the long-lived module (global) frame.
func NewModule() *Scope {
	return &Scope{name: "module", symbols: make(map[string]*Symbol)}
}

// NewFrame returns a parentless frame named desc. Class attribute frames
// use this: attribute lookup must not fall through to the module frame.
func NewFrame(desc string) *Scope {
	return &Scope{name: desc, symbols: make(map[string]*Symbol)}
}

// Enter pushes a fresh frame named desc (e.g. "function add") and returns
// it. The receiver becomes its parent.
func (s *Scope) Enter(desc string) *Scope {
	return &Scope{name: desc, parent: s, symbols: make(map[string]*Symbol)}
}

// Exit pops the current frame, returning its parent. The popped frame is
// destroyed; callers must not retain references into it.
func (s *Scope) Exit() *Scope {
	return s.parent
}

// Name returns the frame description.
func (s *Scope) Name() string { return s.name }

// Declare binds a fresh name in this exact frame. Declaring a name twice
// in the same frame is an error; shadowing an outer frame is not.
func (s *Scope) Declare(name string, t types.Type, kind Kind) (*Symbol, error) {
	if _, ok := s.symbols[name]; ok {
		return nil, fmt.Errorf("redeclaration of %q in %s scope", name, s.name)
	}
	sym := &Symbol{Name: name, Type: t, Kind: kind}
	s.symbols[name] = sym
	return sym, nil
}

// Resolve walks this frame and its ancestors for name. The boolean is
// false when no frame binds it.
func (s *Scope) Resolve(name string) (*Symbol, bool) {
	for frame := s; frame != nil; frame = frame.parent {
		if sym, ok := frame.symbols[name]; ok {
			return sym, true
		}
	}
	return nil, false
}

// ResolveLocal looks name up in this exact frame only.
func (s *Scope) ResolveLocal(name string) (*Symbol, bool) {
	sym, ok := s.symbols[name]
	return sym, ok
}
