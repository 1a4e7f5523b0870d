// Package compiler wires the lexer, parser, resolver, and validator into
// one ordered pipeline, the single entry point a CLI driver (or a test)
// needs to run a whole compile job end to end.
package compiler

import (
	"fmt"

	"github.com/fly-lang/flyc/internal/ast"
	"github.com/fly-lang/flyc/internal/diagnostics"
	"github.com/fly-lang/flyc/internal/lexer"
	"github.com/fly-lang/flyc/internal/modules"
	"github.com/fly-lang/flyc/internal/parser"
	"github.com/fly-lang/flyc/internal/resolver"
	"github.com/fly-lang/flyc/internal/source"
	"github.com/fly-lang/flyc/internal/validator"
)

// Source is one input file: a name (stamped onto every Position the lexer
// produces from it) and its raw UTF-8 bytes. Reading files from disk, an
// archive, or any other store is an external collaborator's job — the
// pipeline only ever sees bytes already in memory, never touching a
// filesystem itself.
type Source struct {
	Name  string
	Bytes []byte
}

// Result is everything a caller needs after one compile job: the fully
// parsed, resolved, and validated module set, the bindings the resolver
// and validator each produced, and whether any compile-time error was
// reported along the way.
type Result struct {
	Modules        *modules.Set
	Resolver       *resolver.Result
	Validator      *validator.Result
	ErrorsOccurred bool
}

// Pipeline drives a single compile job: parse every source, then resolve,
// then validate, in that fixed order (the resolver and validator both
// mutate shared symbol-table state and never run concurrently with each
// other or with themselves; only per-module parsing is independent enough
// to ever be parallelized, and isn't here since nothing about a single
// compile job needs that complexity yet).
type Pipeline struct {
	sink diagnostics.Sink
}

// New creates a Pipeline that also reports every diagnostic to sink, in
// addition to the internal accounting Run uses to set Result.ErrorsOccurred
// — sink is free to be a LogSink, a CollectingSink, or any other
// implementation; the pipeline never depends on what it does with a report.
func New(sink diagnostics.Sink) *Pipeline {
	return &Pipeline{sink: sink}
}

// Run parses, resolves, and validates every source. A panic anywhere in
// the pipeline — an invariant violation, not a user source error — is
// recovered here, reported as a KindInternal diagnostic, and turned into a
// returned error rather than taking the whole job down (§7: "the core
// treats these as fatal... must either abort the job or return a
// dedicated internal-error kind").
func (p *Pipeline) Run(sources []Source) (result *Result, err error) {
	collector := diagnostics.NewCollectingSink()
	sink := diagnostics.Tee{Sinks: []diagnostics.Sink{p.sink, collector}}

	defer func() {
		if r := recover(); r != nil {
			diagnostics.Error(sink, source.Position{}, diagnostics.KindInternal, "internal error: %v", r)
			result = &Result{ErrorsOccurred: true}
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	set := modules.NewSet()
	for i, src := range sources {
		buf := source.New(src.Name, string(src.Bytes))
		lx := lexer.New(buf)
		ps := parser.New(lx, src.Name)
		mod := ps.ParseModule(ast.ModuleID(i))
		for _, lerr := range lx.Errors() {
			diagnostics.Error(sink, source.Position{Filename: src.Name}, diagnostics.KindLexical, "%v", lerr)
		}
		for _, perr := range ps.Errors() {
			diagnostics.Error(sink, source.Position{Filename: src.Name}, diagnostics.KindSyntax, "%v", perr)
		}
		set.Add(mod)
	}

	res := resolver.New(sink).Run(set)
	valRes := validator.New(sink, res).Run(set)

	return &Result{
		Modules:        set,
		Resolver:       res,
		Validator:      valRes,
		ErrorsOccurred: collector.ErrorsOccurred(),
	}, nil
}
