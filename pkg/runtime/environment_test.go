package runtime

import (
	"testing"

	"iulia/interpreter-go/pkg/ast"
)

func TestDeclareAndLookup(t *testing.T) {
	env := NewEnvironment(nil, nil)
	env.OpenScope()
	if err := env.DeclareValue("x", NewValue(7)); err != nil {
		t.Fatalf("declare failed: %v", err)
	}
	value, err := env.Value("x")
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	if value.Uint64() != 7 {
		t.Fatalf("unexpected value %s", value.Dec())
	}
}

func TestLookupUndefinedName(t *testing.T) {
	env := NewEnvironment(nil, nil)
	_, err := env.Value("missing")
	if kind, ok := FaultKindOf(err); !ok || kind != FaultUndefinedName {
		t.Fatalf("expected UndefinedName fault, got %v", err)
	}
}

func TestSetValueRequiresExistingBinding(t *testing.T) {
	env := NewEnvironment(nil, nil)
	err := env.SetValue("missing", NewValue(1))
	if kind, ok := FaultKindOf(err); !ok || kind != FaultUndefinedName {
		t.Fatalf("expected UndefinedName fault, got %v", err)
	}
}

func TestDuplicateDeclaration(t *testing.T) {
	env := NewEnvironment(nil, nil)
	env.OpenScope()
	if err := env.DeclareValue("x", NewValue(1)); err != nil {
		t.Fatalf("declare failed: %v", err)
	}
	env.OpenScope()
	err := env.DeclareValue("x", NewValue(2))
	if kind, ok := FaultKindOf(err); !ok || kind != FaultDuplicateDeclaration {
		t.Fatalf("expected DuplicateDeclaration fault, got %v", err)
	}
}

func TestDuplicateDeclarationAcrossKinds(t *testing.T) {
	env := NewEnvironment(nil, nil)
	env.OpenScope()
	def := ast.FnDef("x", nil, nil)
	if err := env.DeclareFunction(def); err != nil {
		t.Fatalf("declare function failed: %v", err)
	}
	err := env.DeclareValue("x", NewValue(1))
	if kind, ok := FaultKindOf(err); !ok || kind != FaultDuplicateDeclaration {
		t.Fatalf("expected DuplicateDeclaration fault, got %v", err)
	}
}

func TestCloseScopeRetractsNames(t *testing.T) {
	env := NewEnvironment(nil, nil)
	env.OpenScope()
	if err := env.DeclareValue("x", NewValue(1)); err != nil {
		t.Fatalf("declare failed: %v", err)
	}
	if err := env.DeclareFunction(ast.FnDef("f", nil, nil)); err != nil {
		t.Fatalf("declare function failed: %v", err)
	}
	if err := env.CloseScope(); err != nil {
		t.Fatalf("close failed: %v", err)
	}
	if env.Has("x") || env.Has("f") {
		t.Fatalf("expected names to be retracted, visible: %v", env.Names())
	}
}

func TestCloseScopeLeavesOuterNames(t *testing.T) {
	env := NewEnvironment(nil, nil)
	env.OpenScope()
	if err := env.DeclareValue("outer", NewValue(1)); err != nil {
		t.Fatalf("declare failed: %v", err)
	}
	env.OpenScope()
	if err := env.DeclareValue("inner", NewValue(2)); err != nil {
		t.Fatalf("declare failed: %v", err)
	}
	if err := env.CloseScope(); err != nil {
		t.Fatalf("close failed: %v", err)
	}
	if env.Has("inner") {
		t.Fatalf("inner binding should be retracted")
	}
	if !env.Has("outer") {
		t.Fatalf("outer binding should survive")
	}
}

func TestCloseScopeWithoutOpen(t *testing.T) {
	env := NewEnvironment(nil, nil)
	err := env.CloseScope()
	if kind, ok := FaultKindOf(err); !ok || kind != FaultScopeCorrupted {
		t.Fatalf("expected ScopeCorrupted fault, got %v", err)
	}
}

func TestSeedBindingsBelongToNoScope(t *testing.T) {
	env := NewEnvironment(map[string]Value{"p": NewValue(9)}, nil)
	env.OpenScope()
	if err := env.CloseScope(); err != nil {
		t.Fatalf("close failed: %v", err)
	}
	if !env.Has("p") {
		t.Fatalf("seed binding must survive scope close")
	}
}

func TestFunctionsSnapshotIsIsolated(t *testing.T) {
	env := NewEnvironment(nil, nil)
	env.OpenScope()
	if err := env.DeclareFunction(ast.FnDef("f", nil, nil)); err != nil {
		t.Fatalf("declare function failed: %v", err)
	}
	snapshot := env.FunctionsSnapshot()
	child := NewEnvironment(nil, snapshot)
	if _, err := child.Function("f"); err != nil {
		t.Fatalf("snapshot lookup failed: %v", err)
	}
	env.OpenScope()
	if err := env.DeclareFunction(ast.FnDef("g", nil, nil)); err != nil {
		t.Fatalf("declare function failed: %v", err)
	}
	if _, err := child.Function("g"); err == nil {
		t.Fatalf("later registration must not leak into snapshot")
	}
}
