// Package diagnostics is the injected-capability sink every stage reports
// through, instead of returning []error slices the way the teacher's
// parser/analyzer used to. Resolver and validator take a Sink at
// construction and never format or print anything themselves.
package diagnostics

import (
	"fmt"

	"github.com/fly-lang/flyc/internal/source"
)

// Kind is a stable diagnostic category. Stable means: a test can assert on
// it without depending on the exact message text, and a future machine
// consumer (an IDE, a second frontend) can switch on it.
type Kind int

const (
	KindLexical Kind = iota
	KindSyntax
	KindDuplicateDecl
	KindUnresolvedRef
	KindTypeMismatch
	KindVisibility
	KindConstness
	KindOverloadAmbiguous
	KindMissingReturn
	KindInheritanceCycle
	KindBadFailPayload
	// KindInternal marks an invariant violation recovered from a panic at
	// the compiler.Pipeline boundary — a bug in this compiler, never a
	// report about the user's source.
	KindInternal
)

func (k Kind) String() string {
	switch k {
	case KindLexical:
		return "lexical"
	case KindSyntax:
		return "syntax"
	case KindDuplicateDecl:
		return "duplicate-decl"
	case KindUnresolvedRef:
		return "unresolved-ref"
	case KindTypeMismatch:
		return "type-mismatch"
	case KindVisibility:
		return "visibility"
	case KindConstness:
		return "constness"
	case KindOverloadAmbiguous:
		return "overload-ambiguous"
	case KindMissingReturn:
		return "missing-return"
	case KindInheritanceCycle:
		return "inheritance-cycle"
	case KindBadFailPayload:
		return "bad-fail-payload"
	case KindInternal:
		return "internal"
	default:
		return "unknown"
	}
}

// Severity distinguishes a hard error (refuses the module) from a warning
// (e.g. an implicit widening conversion) that the job still succeeds with.
type Severity int

const (
	SeverityWarning Severity = iota
	SeverityError
)

func (s Severity) String() string {
	if s == SeverityError {
		return "error"
	}
	return "warning"
}

// Diagnostic is one reported finding.
type Diagnostic struct {
	Position source.Position
	Kind     Kind
	Severity Severity
	Message  string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: %s: %s [%s]", d.Position, d.Severity, d.Message, d.Kind)
}

// Sink is where every stage reports findings; it is injected, never a
// package-level global, so two Pipeline runs never share diagnostic state.
type Sink interface {
	Report(Diagnostic)
}

// Error reports a SeverityError diagnostic with a formatted message.
func Error(s Sink, pos source.Position, kind Kind, format string, args ...any) {
	s.Report(Diagnostic{Position: pos, Kind: kind, Severity: SeverityError, Message: fmt.Sprintf(format, args...)})
}

// Warning reports a SeverityWarning diagnostic with a formatted message.
func Warning(s Sink, pos source.Position, kind Kind, format string, args ...any) {
	s.Report(Diagnostic{Position: pos, Kind: kind, Severity: SeverityWarning, Message: fmt.Sprintf(format, args...)})
}

// CollectingSink accumulates every Diagnostic reported to it; this is what
// the resolver, validator, and tests use directly.
type CollectingSink struct {
	Diagnostics []Diagnostic
}

// NewCollectingSink returns an empty CollectingSink.
func NewCollectingSink() *CollectingSink {
	return &CollectingSink{}
}

func (c *CollectingSink) Report(d Diagnostic) {
	c.Diagnostics = append(c.Diagnostics, d)
}

// ErrorsOccurred reports whether any SeverityError diagnostic was
// collected — the job-level pass/fail flag.
func (c *CollectingSink) ErrorsOccurred() bool {
	for _, d := range c.Diagnostics {
		if d.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Errors returns only the error-severity diagnostics, in report order.
func (c *CollectingSink) Errors() []Diagnostic {
	var out []Diagnostic
	for _, d := range c.Diagnostics {
		if d.Severity == SeverityError {
			out = append(out, d)
		}
	}
	return out
}

// Tee reports every Diagnostic to both sinks; used by the CLI driver to
// collect AND log in the same pass.
type Tee struct {
	Sinks []Sink
}

func (t Tee) Report(d Diagnostic) {
	for _, s := range t.Sinks {
		s.Report(d)
	}
}
