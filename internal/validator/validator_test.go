package validator

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fly-lang/flyc/internal/ast"
	"github.com/fly-lang/flyc/internal/diagnostics"
	"github.com/fly-lang/flyc/internal/lexer"
	"github.com/fly-lang/flyc/internal/modules"
	"github.com/fly-lang/flyc/internal/parser"
	"github.com/fly-lang/flyc/internal/resolver"
	"github.com/fly-lang/flyc/internal/source"
)

// buildAndResolve parses text, resolves it, and fails the test on any
// parse or resolver error — the validator tests below only care about
// validator diagnostics.
func buildAndResolve(t *testing.T, text string) (*modules.Set, *resolver.Result) {
	t.Helper()
	set := modules.NewSet()
	p := parser.New(lexer.New(source.New("test.fly", text)), "test.fly")
	mod := p.ParseModule(0)
	require.Empty(t, p.Errors(), "unexpected parse errors")
	set.Add(mod)

	sink := diagnostics.NewCollectingSink()
	res := resolver.New(sink).Run(set)
	require.False(t, sink.ErrorsOccurred(), "unexpected resolver errors: %v", sink.Errors())
	return set, res
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

func TestValidator_WellTypedProgramHasNoDiagnostics(t *testing.T) {
	set, res := buildAndResolve(t, `
namespace math;

int add(int a, int b) {
    return a + b;
}
`)
	sink := diagnostics.NewCollectingSink()
	New(sink, res).Run(set)
	require.False(t, sink.ErrorsOccurred(), "%v", sink.Errors())
}

func TestValidator_MismatchedReturnTypeIsReported(t *testing.T) {
	set, res := buildAndResolve(t, `
namespace math;

int broken() {
    return "text";
}
`)
	sink := diagnostics.NewCollectingSink()
	New(sink, res).Run(set)
	require.True(t, sink.ErrorsOccurred())
	requireHasKind(t, sink.Errors(), diagnostics.KindTypeMismatch)
}

func TestValidator_MissingReturnOnSomePathIsReported(t *testing.T) {
	set, res := buildAndResolve(t, `
namespace math;

int pick(bool flag) {
    if (flag) {
        return 1;
    }
}
`)
	sink := diagnostics.NewCollectingSink()
	New(sink, res).Run(set)
	require.True(t, sink.ErrorsOccurred())
	requireHasKind(t, sink.Errors(), diagnostics.KindMissingReturn)
}

func TestValidator_ReturnOnEveryPathThroughElseIsAccepted(t *testing.T) {
	set, res := buildAndResolve(t, `
namespace math;

int pick(bool flag) {
    if (flag) {
        return 1;
    } else {
        return 0;
    }
}
`)
	sink := diagnostics.NewCollectingSink()
	New(sink, res).Run(set)
	require.False(t, sink.ErrorsOccurred(), "%v", sink.Errors())
}

func TestValidator_BinaryOperatorOnIncompatibleTypesIsReported(t *testing.T) {
	set, res := buildAndResolve(t, `
namespace math;

bool broken(string s, int n) {
    return s + n;
}
`)
	sink := diagnostics.NewCollectingSink()
	New(sink, res).Run(set)
	require.True(t, sink.ErrorsOccurred())
	requireHasKind(t, sink.Errors(), diagnostics.KindTypeMismatch)
}

func TestValidator_ConstAssignmentIsRejected(t *testing.T) {
	set, res := buildAndResolve(t, `
namespace math;

int broken() {
    const int x = 1;
    x = 2;
    return x;
}
`)
	sink := diagnostics.NewCollectingSink()
	New(sink, res).Run(set)
	require.True(t, sink.ErrorsOccurred())
	requireHasKind(t, sink.Errors(), diagnostics.KindConstness)
}

func TestValidator_BreakOutsideLoopIsRejected(t *testing.T) {
	set, res := buildAndResolve(t, `
namespace math;

void broken() {
    break;
}
`)
	sink := diagnostics.NewCollectingSink()
	New(sink, res).Run(set)
	require.True(t, sink.ErrorsOccurred())
}

func TestValidator_BreakInsideLoopIsAccepted(t *testing.T) {
	set, res := buildAndResolve(t, `
namespace math;

void ok() {
    for (int i = 0; i < 10; i = i + 1) {
        break;
    }
}
`)
	sink := diagnostics.NewCollectingSink()
	New(sink, res).Run(set)
	require.False(t, sink.ErrorsOccurred(), "%v", sink.Errors())
}

func TestValidator_DuplicateSwitchCaseLabelIsRejected(t *testing.T) {
	set, res := buildAndResolve(t, `
namespace math;

int classify(int n) {
    switch (n) {
        case 1:
            return 1;
        case 1:
            return 2;
        default:
            return 0;
    }
}
`)
	sink := diagnostics.NewCollectingSink()
	New(sink, res).Run(set)
	require.True(t, sink.ErrorsOccurred())
	requireHasKind(t, sink.Errors(), diagnostics.KindDuplicateDecl)
}

func TestValidator_DuplicateOverloadSignatureIsRejected(t *testing.T) {
	set, res := buildAndResolve(t, `
namespace math;

int combine(int a, int b) {
    return a + b;
}

int combine(int x, int y) {
    return x - y;
}
`)
	sink := diagnostics.NewCollectingSink()
	New(sink, res).Run(set)
	require.True(t, sink.ErrorsOccurred())
	requireHasKind(t, sink.Errors(), diagnostics.KindDuplicateDecl)
}

func TestValidator_PrivateFieldAccessFromOutsideClassIsRejected(t *testing.T) {
	set, res := buildAndResolve(t, `
namespace shapes;

class Point {
    private int x;

    Point() {
        x = 0;
    }
}

int readX(Point p) {
    return p.x;
}
`)
	sink := diagnostics.NewCollectingSink()
	New(sink, res).Run(set)
	require.True(t, sink.ErrorsOccurred())
	requireHasKind(t, sink.Errors(), diagnostics.KindVisibility)
}

func TestValidator_IntegerWidensToFloatWithWarningOnReturn(t *testing.T) {
	set, res := buildAndResolve(t, `
namespace math;

double widen(int n) {
    return n;
}
`)
	sink := diagnostics.NewCollectingSink()
	New(sink, res).Run(set)
	require.False(t, sink.ErrorsOccurred(), "%v", sink.Errors())
	found := false
	for _, d := range sink.Diagnostics {
		if d.Severity == diagnostics.SeverityWarning {
			found = true
		}
	}
	require.True(t, found, "expected a warning on the implicit int->double conversion")
}

func TestValidator_TypesAreRecordedForArithmeticExpressions(t *testing.T) {
	set, res := buildAndResolve(t, `
namespace math;

int sum(int a, int b) {
    return a + b;
}
`)
	sink := diagnostics.NewCollectingSink()
	result := New(sink, res).Run(set)
	require.False(t, sink.ErrorsOccurred(), "%v", sink.Errors())

	f := set.Modules()[0].Factory()
	found := false
	for id := range result.Types {
		if f.KindOf(id) == ast.KindBinaryExpr {
			found = true
		}
	}
	require.True(t, found, "expected the a + b expression to have a recorded type")
}
