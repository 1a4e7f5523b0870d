package symtab

import (
	"testing"

	"github.com/fly-lang/flyc/internal/source"
	"github.com/fly-lang/flyc/internal/types"
)

func TestSymbol_String(t *testing.T) {
	sym := &Symbol{
		Name: "x",
		Kind: SymbolVariable,
		Type: types.Int,
		Pos:  source.Position{Filename: "test.fly", Line: 1, Column: 5},
	}
	want := "variable x: int at test.fly:1:5"
	if got := sym.String(); got != want {
		t.Errorf("Symbol.String() = %q, want %q", got, want)
	}
}

func TestSymbol_CanAssign(t *testing.T) {
	tests := []struct {
		name string
		sym  *Symbol
		want bool
	}{
		{"variable", &Symbol{Kind: SymbolVariable}, true},
		{"constant variable", &Symbol{Kind: SymbolVariable, Constant: true}, false},
		{"parameter", &Symbol{Kind: SymbolParameter}, true},
		{"field", &Symbol{Kind: SymbolField}, true},
		{"function", &Symbol{Kind: SymbolFunction}, false},
		{"identity", &Symbol{Kind: SymbolIdentity}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.sym.CanAssign(); got != tt.want {
				t.Errorf("CanAssign() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestScope_DefineAndLookup(t *testing.T) {
	fn := NewScope(ScopeFunction, nil)
	block := NewScope(ScopeBlock, fn)

	outer := &Symbol{Name: "x", Type: types.Int}
	inner := &Symbol{Name: "y", Type: types.Float64}

	if err := fn.Define(outer); err != nil {
		t.Fatalf("Define(outer): %v", err)
	}
	if err := block.Define(inner); err != nil {
		t.Fatalf("Define(inner): %v", err)
	}

	if found := block.Lookup("y"); found != inner {
		t.Error("expected to find inner symbol from block scope")
	}
	if found := block.Lookup("x"); found != outer {
		t.Error("expected to find outer symbol through parent chain")
	}
	if found := block.Lookup("z"); found != nil {
		t.Error("expected nil for undeclared name")
	}
	if !outer.Used || !inner.Used {
		t.Error("expected both symbols marked used after Lookup")
	}
}

func TestScope_DuplicateDefineFails(t *testing.T) {
	scope := NewScope(ScopeBlock, nil)
	if err := scope.Define(&Symbol{Name: "x"}); err != nil {
		t.Fatalf("first Define: %v", err)
	}
	if err := scope.Define(&Symbol{Name: "x"}); err == nil {
		t.Error("expected duplicate Define to fail")
	}
}

func TestScope_FindEnclosingLoopStopsAtFunction(t *testing.T) {
	fn := NewScope(ScopeFunction, nil)
	loop := NewScope(ScopeLoop, fn)
	inner := NewScope(ScopeBlock, loop)
	innerFn := NewScope(ScopeFunction, inner) // a nested function (closure-like)

	if found := inner.FindEnclosingLoop(); found != loop {
		t.Error("expected to find the enclosing loop from a nested block")
	}
	if found := innerFn.FindEnclosingLoop(); found != nil {
		t.Error("expected nil: a nested function body must not see an outer loop")
	}
}

func TestOverloadSet_Candidates(t *testing.T) {
	set := NewOverloadSet("area")
	one := &Symbol{Name: "area"}
	two := &Symbol{Name: "area"}
	set.Add(1, one)
	set.Add(2, two)

	if got := set.Candidates(1); len(got) != 1 || got[0] != one {
		t.Errorf("Candidates(1) = %v, want [one]", got)
	}
	if got := set.Candidates(3); len(got) != 0 {
		t.Errorf("Candidates(3) = %v, want empty", got)
	}
}

func TestNamespaceTable_DefineRejectsCrossKindCollision(t *testing.T) {
	ns := NewNamespaceTable("geometry")
	if !ns.DefineGlobal(&Symbol{Name: "Pi", Kind: SymbolVariable}) {
		t.Fatal("expected first global define to succeed")
	}
	if ns.DefineIdentity(&Symbol{Name: "Pi", Kind: SymbolIdentity}) {
		t.Error("expected identity named the same as an existing global to be rejected")
	}
	if !ns.DefineFunction(1, &Symbol{Name: "area", Kind: SymbolFunction}) {
		t.Fatal("expected first function overload to succeed")
	}
	if !ns.DefineFunction(2, &Symbol{Name: "area", Kind: SymbolFunction}) {
		t.Error("expected a second overload with a different arity to succeed")
	}
}

func TestClassTable_FieldMethodCollision(t *testing.T) {
	ct := NewClassTable("Point")
	if !ct.DefineField(&Symbol{Name: "x"}) {
		t.Fatal("expected field define to succeed")
	}
	if ct.DefineMethod(0, &Symbol{Name: "x"}) {
		t.Error("expected method colliding with an existing field name to be rejected")
	}
}
