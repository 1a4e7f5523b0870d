// Package resolver binds every name in a parsed module.Set to a symbol:
// namespaces, imports, identities, inherited members, and finally every
// identifier/call inside a function body. It runs after every module in a
// compile job has been parsed, and before the validator, mirroring the
// teacher's two-phase "declare every name, then check every body" analyzer
// structure — generalized here across a whole namespace-grouped module set
// instead of one file, and reporting through an injected diagnostics.Sink
// instead of an accumulated []error.
package resolver

import (
	"github.com/fly-lang/flyc/internal/ast"
	"github.com/fly-lang/flyc/internal/symtab"
)

// Result is everything the validator (and a future codegen backend) needs
// to walk a resolved AST without re-deriving bindings: the symbol tables
// built along the way, plus two side-tables keyed by NodeID — the AST
// itself is never mutated with resolution results, the same
// identity-preserving design the factory/arena model uses elsewhere.
type Result struct {
	Namespaces   map[string]*symtab.NamespaceTable
	ModuleTables map[ast.ModuleID]*symtab.ModuleTable
	ClassTables  map[string]*symtab.ClassTable // keyed by qualified name "ns::Name"

	// References maps every resolved IdentExpr/MemberExpr/CallExpr-callee
	// NodeID to the Symbol it was bound to.
	References map[ast.NodeID]*symtab.Symbol

	// ErrorScopes maps every CallExpr NodeID to the Symbol of the error
	// variable that call's implicit error-handler argument is threaded
	// through — the function's own hidden error parameter, or the nearest
	// enclosing handle block's fresh error variable (§4.6's "error-handler
	// propagation").
	ErrorScopes map[ast.NodeID]*symtab.Symbol
}

func newResult() *Result {
	return &Result{
		Namespaces:   make(map[string]*symtab.NamespaceTable),
		ModuleTables: make(map[ast.ModuleID]*symtab.ModuleTable),
		ClassTables:  make(map[string]*symtab.ClassTable),
		References:   make(map[ast.NodeID]*symtab.Symbol),
		ErrorScopes:  make(map[ast.NodeID]*symtab.Symbol),
	}
}
