package resolver

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fly-lang/flyc/internal/ast"
	"github.com/fly-lang/flyc/internal/diagnostics"
	"github.com/fly-lang/flyc/internal/lexer"
	"github.com/fly-lang/flyc/internal/modules"
	"github.com/fly-lang/flyc/internal/parser"
	"github.com/fly-lang/flyc/internal/source"
	"github.com/fly-lang/flyc/internal/types"
)

// parseInto parses text as module id into set, failing the test on any
// parse error — the resolver tests below only care about resolution
// diagnostics, never parse diagnostics.
func parseInto(t *testing.T, set *modules.Set, id ast.ModuleID, text string) *ast.Module {
	t.Helper()
	p := parser.New(lexer.New(source.New("test.fly", text)), "test.fly")
	mod := p.ParseModule(id)
	require.Empty(t, p.Errors(), "unexpected parse errors")
	set.Add(mod)
	return mod
}

func TestResolver_NamespaceAssemblyAndGlobal(t *testing.T) {
	set := modules.NewSet()
	parseInto(t, set, 0, `
namespace geometry;
int width = 10;
`)
	sink := diagnostics.NewCollectingSink()
	res := New(sink).Run(set)

	require.False(t, sink.ErrorsOccurred())
	ns, ok := res.Namespaces["geometry"]
	require.True(t, ok)
	sym, ok := ns.LookupGlobal("width")
	require.True(t, ok)
	require.Equal(t, types.Int, sym.Type)
}

func TestResolver_ModuleWithNoNamespaceJoinsDefault(t *testing.T) {
	set := modules.NewSet()
	parseInto(t, set, 0, `int x = 1;`)
	sink := diagnostics.NewCollectingSink()
	res := New(sink).Run(set)

	require.False(t, sink.ErrorsOccurred())
	_, ok := res.Namespaces["default"]
	require.True(t, ok)
}

func TestResolver_DuplicateGlobalIsReported(t *testing.T) {
	set := modules.NewSet()
	parseInto(t, set, 0, `
namespace ns;
int x = 1;
int x = 2;
`)
	sink := diagnostics.NewCollectingSink()
	New(sink).Run(set)

	require.True(t, sink.ErrorsOccurred())
	requireHasKind(t, sink.Errors(), diagnostics.KindDuplicateDecl)
}

func TestResolver_UnresolvedImportIsReported(t *testing.T) {
	set := modules.NewSet()
	parseInto(t, set, 0, `
namespace app;
import nowhere::place;
`)
	sink := diagnostics.NewCollectingSink()
	New(sink).Run(set)

	require.True(t, sink.ErrorsOccurred())
	requireHasKind(t, sink.Errors(), diagnostics.KindUnresolvedRef)
}

func TestResolver_ImportResolvesAcrossModules(t *testing.T) {
	set := modules.NewSet()
	parseInto(t, set, 0, `
namespace geometry;
int width = 1;
`)
	parseInto(t, set, 1, `
namespace app;
import geometry;
`)
	sink := diagnostics.NewCollectingSink()
	res := New(sink).Run(set)

	require.False(t, sink.ErrorsOccurred())
	mt := res.ModuleTables[1]
	require.True(t, mt.ImportsNamespace("geometry"))
}

func TestResolver_FunctionSignatureResolvesParamAndReturnTypes(t *testing.T) {
	set := modules.NewSet()
	parseInto(t, set, 0, `
namespace math;
int add(int a, int b) {
    return a + b;
}
`)
	sink := diagnostics.NewCollectingSink()
	res := New(sink).Run(set)

	require.False(t, sink.ErrorsOccurred())
	ns := res.Namespaces["math"]
	set2, ok := ns.LookupFunction("add")
	require.True(t, ok)
	candidates := set2.Candidates(2)
	require.Len(t, candidates, 1)
	fn, ok := candidates[0].Type.(types.Function)
	require.True(t, ok)
	require.True(t, fn.HasErrorParam)
	require.Equal(t, []types.Descriptor{types.Int, types.Int}, fn.Params)
	require.Equal(t, types.Int, fn.Return)
}

func TestResolver_BodyResolvesLocalAndParameterReferences(t *testing.T) {
	set := modules.NewSet()
	parseInto(t, set, 0, `
namespace math;
int square(int n) {
    int result = n * n;
    return result;
}
`)
	sink := diagnostics.NewCollectingSink()
	res := New(sink).Run(set)
	require.False(t, sink.ErrorsOccurred(), "%v", sink.Errors())

	found := false
	for _, sym := range res.References {
		if sym.Name == "n" {
			found = true
		}
	}
	require.True(t, found, "expected the parameter n to be referenced at least once")
}

func TestResolver_UndeclaredIdentifierIsReported(t *testing.T) {
	set := modules.NewSet()
	parseInto(t, set, 0, `
namespace math;
int broken() {
    return missing;
}
`)
	sink := diagnostics.NewCollectingSink()
	New(sink).Run(set)

	require.True(t, sink.ErrorsOccurred())
	requireHasKind(t, sink.Errors(), diagnostics.KindUnresolvedRef)
}

func TestResolver_CallResolvesToDeclaredFunction(t *testing.T) {
	set := modules.NewSet()
	parseInto(t, set, 0, `
namespace math;

int square(int n) {
    return n * n;
}

int quad(int n) {
    return square(n) * square(n);
}
`)
	sink := diagnostics.NewCollectingSink()
	res := New(sink).Run(set)
	require.False(t, sink.ErrorsOccurred(), "%v", sink.Errors())

	found := 0
	for _, sym := range res.References {
		if sym.Name == "square" {
			found++
		}
	}
	require.Equal(t, 2, found, "expected both calls to square to resolve")
}

func TestResolver_OverloadSelectionByArity(t *testing.T) {
	set := modules.NewSet()
	parseInto(t, set, 0, `
namespace math;

int combine(int a) {
    return a;
}

int combine(int a, int b) {
    return a + b;
}

int caller() {
    return combine(1, 2);
}
`)
	sink := diagnostics.NewCollectingSink()
	res := New(sink).Run(set)
	require.False(t, sink.ErrorsOccurred(), "%v", sink.Errors())

	ns := res.Namespaces["math"]
	set2, ok := ns.LookupFunction("combine")
	require.True(t, ok)
	require.Len(t, set2.Candidates(1), 1)
	require.Len(t, set2.Candidates(2), 1)
}

func TestResolver_ClassFieldAndMethodResolution(t *testing.T) {
	set := modules.NewSet()
	parseInto(t, set, 0, `
namespace shapes;

class Point {
    int x;
    int y;

    int sum() {
        return x + y;
    }
}
`)
	sink := diagnostics.NewCollectingSink()
	res := New(sink).Run(set)
	require.False(t, sink.ErrorsOccurred(), "%v", sink.Errors())

	ct, ok := res.ClassTables["shapes::Point"]
	require.True(t, ok)
	_, ok = ct.LookupField("x")
	require.True(t, ok)
	_, ok = ct.LookupMethod("sum")
	require.True(t, ok)
}

func TestResolver_InheritanceCopiesFieldsDown(t *testing.T) {
	set := modules.NewSet()
	parseInto(t, set, 0, `
namespace shapes;

struct Base {
    int tag;
}

struct Derived : Base {
    int extra;
}
`)
	sink := diagnostics.NewCollectingSink()
	res := New(sink).Run(set)
	require.False(t, sink.ErrorsOccurred(), "%v", sink.Errors())

	derived, ok := res.ClassTables["shapes::Derived"]
	require.True(t, ok)
	_, ok = derived.LookupField("tag")
	require.True(t, ok, "expected Derived to inherit Base's field")
	_, ok = derived.LookupField("extra")
	require.True(t, ok)
}

func TestResolver_InheritanceCycleIsReported(t *testing.T) {
	set := modules.NewSet()
	parseInto(t, set, 0, `
namespace shapes;

struct A : B {
    int a;
}

struct B : A {
    int b;
}
`)
	sink := diagnostics.NewCollectingSink()
	New(sink).Run(set)

	require.True(t, sink.ErrorsOccurred())
	requireHasKind(t, sink.Errors(), diagnostics.KindInheritanceCycle)
}

func TestResolver_HandleStmtBindsFreshErrorVariable(t *testing.T) {
	set := modules.NewSet()
	parseInto(t, set, 0, `
namespace app;

int risky() {
    return 1;
}

int caller() {
    handle {
        risky();
    } err {
        fail err;
    }
    return 1;
}
`)
	sink := diagnostics.NewCollectingSink()
	New(sink).Run(set)
	// The handle-block grammar itself is exercised in the parser's own test
	// suite; here the handler block refers to `err`, the fresh error
	// variable, and the test asserts that this reference does not trip
	// KindUnresolvedRef, i.e. that the handler scope binds it.
	for _, d := range sink.Errors() {
		require.NotEqual(t, diagnostics.KindUnresolvedRef, d.Kind, "unexpected: %s", d.Message)
	}
}

func requireHasKind(t *testing.T, errs []diagnostics.Diagnostic, kind diagnostics.Kind) {
	t.Helper()
	for _, d := range errs {
		if d.Kind == kind {
			return
		}
	}
	t.Fatalf("expected a diagnostic of kind %s, got: %v", kind, errs)
}
