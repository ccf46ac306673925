package scope_test

import (
	"testing"

	"github.com/pycatalyst/catalyst/internal/scope"
	"github.com/pycatalyst/catalyst/internal/types"
)

func TestDeclareAndResolve(t *testing.T) {
	mod := scope.NewModule()
	if _, err := mod.Declare("x", types.Int, scope.KindVariable); err != nil {
		t.Fatalf("declare: %v", err)
	}
	sym, ok := mod.Resolve("x")
	if !ok {
		t.Fatal("x not resolved")
	}
	if !types.Equal(sym.Type, types.Int) || sym.Kind != scope.KindVariable {
		t.Errorf("got %+v", sym)
	}
}

func TestRedeclarationFails(t *testing.T) {
	mod := scope.NewModule()
	mod.Declare("x", types.Int, scope.KindVariable)
	if _, err := mod.Declare("x", types.Float, scope.KindVariable); err == nil {
		t.Fatal("expected redeclaration error")
	}
}

func TestChainLookupAndShadowing(t *testing.T) {
	mod := scope.NewModule()
	mod.Declare("x", types.Int, scope.KindVariable)
	mod.Declare("g", types.Str, scope.KindVariable)

	fn := mod.Enter("function f")
	if _, err := fn.Declare("x", types.Float, scope.KindVariable); err != nil {
		t.Fatalf("shadowing should be allowed: %v", err)
	}

	sym, ok := fn.Resolve("x")
	if !ok || !types.Equal(sym.Type, types.Float) {
		t.Errorf("inner x should shadow outer, got %+v", sym)
	}
	sym, ok = fn.Resolve("g")
	if !ok || !types.Equal(sym.Type, types.Str) {
		t.Errorf("outer g should be visible, got %+v", sym)
	}
	if _, ok := fn.ResolveLocal("g"); ok {
		t.Error("ResolveLocal should not walk outward")
	}

	back := fn.Exit()
	if back != mod {
		t.Error("Exit should return the parent frame")
	}
	sym, _ = mod.Resolve("x")
	if !types.Equal(sym.Type, types.Int) {
		t.Error("module binding must survive the inner frame")
	}
}

func TestUnboundName(t *testing.T) {
	mod := scope.NewModule()
	if _, ok := mod.Resolve("nope"); ok {
		t.Fatal("unbound name resolved")
	}
}

func TestStandaloneFrameDoesNotChain(t *testing.T) {
	mod := scope.NewModule()
	mod.Declare("x", types.Int, scope.KindVariable)

	attrs := scope.NewFrame("class Dog")
	if _, ok := attrs.Resolve("x"); ok {
		t.Fatal("parentless frame must not see module bindings")
	}
	if attrs.Name() != "class Dog" {
		t.Errorf("name = %q", attrs.Name())
	}
}

func TestKindString(t *testing.T) {
	kinds := map[scope.Kind]string{
		scope.KindVariable:  "variable",
		scope.KindParameter: "parameter",
		scope.KindFunction:  "function",
		scope.KindClass:     "class",
		scope.KindAttribute: "attribute",
	}
	for kind, want := range kinds {
		if got := kind.String(); got != want {
			t.Errorf("got %q, want %q", got, want)
		}
	}
}
