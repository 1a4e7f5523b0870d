package diagnostics

import (
	"testing"

	"github.com/fly-lang/flyc/internal/source"
)

func TestCollectingSink_ErrorsOccurred(t *testing.T) {
	sink := NewCollectingSink()
	if sink.ErrorsOccurred() {
		t.Fatal("expected no errors on an empty sink")
	}

	Warning(sink, source.Position{Line: 1, Column: 1}, KindTypeMismatch, "widening %s to %s", "int", "long")
	if sink.ErrorsOccurred() {
		t.Fatal("expected a warning alone not to set ErrorsOccurred")
	}

	Error(sink, source.Position{Line: 2, Column: 3}, KindUnresolvedRef, "unresolved reference %q", "foo")
	if !sink.ErrorsOccurred() {
		t.Fatal("expected ErrorsOccurred after reporting an error")
	}

	if len(sink.Errors()) != 1 {
		t.Fatalf("got %d errors, want 1", len(sink.Errors()))
	}
}

func TestTee_ReportsToAllSinks(t *testing.T) {
	a, b := NewCollectingSink(), NewCollectingSink()
	tee := Tee{Sinks: []Sink{a, b}}
	Error(tee, source.Position{Line: 1, Column: 1}, KindSyntax, "boom")

	if len(a.Diagnostics) != 1 || len(b.Diagnostics) != 1 {
		t.Fatalf("expected both sinks to receive the diagnostic, got %d and %d", len(a.Diagnostics), len(b.Diagnostics))
	}
}

func TestDiagnostic_String(t *testing.T) {
	d := Diagnostic{
		Position: source.Position{Filename: "a.fly", Line: 3, Column: 5},
		Kind:     KindDuplicateDecl,
		Severity: SeverityError,
		Message:  "duplicate declaration of 'x'",
	}
	want := "a.fly:3:5: error: duplicate declaration of 'x' [duplicate-decl]"
	if got := d.String(); got != want {
		t.Errorf("Diagnostic.String() = %q, want %q", got, want)
	}
}
