// Package symtab is the resolved symbol table: per-namespace globals,
// arity-bucketed function overload sets and identities; per-module
// import/alias tables; per-function local scopes; per-class attribute and
// method maps. The resolver populates it; the validator and, eventually, a
// codegen backend, read it.
package symtab

import (
	"fmt"

	"github.com/fly-lang/flyc/internal/ast"
	"github.com/fly-lang/flyc/internal/source"
	"github.com/fly-lang/flyc/internal/types"
)

// SymbolKind discriminates what a Symbol names.
type SymbolKind int

const (
	SymbolVariable SymbolKind = iota
	SymbolParameter
	SymbolFunction
	SymbolField
	SymbolIdentity // class, struct, interface, enum
	SymbolEnumEntry
	SymbolNamespace
	SymbolImportAlias
)

func (k SymbolKind) String() string {
	switch k {
	case SymbolVariable:
		return "variable"
	case SymbolParameter:
		return "parameter"
	case SymbolFunction:
		return "function"
	case SymbolField:
		return "field"
	case SymbolIdentity:
		return "identity"
	case SymbolEnumEntry:
		return "enum-entry"
	case SymbolNamespace:
		return "namespace"
	case SymbolImportAlias:
		return "import-alias"
	default:
		return "unknown"
	}
}

// Symbol is one resolved name: a variable, parameter, function overload,
// field, identity (class/struct/interface/enum), enum entry, namespace, or
// import alias.
type Symbol struct {
	Name       string
	Kind       SymbolKind
	Type       types.Descriptor
	Pos        source.Position
	Constant   bool
	Visibility ast.Visibility
	Used       bool

	// Decl is the declaring NodeID of a global, function, method, identity
	// or local variable (for a synthesized default constructor, the
	// FunctionDecl the parser synthesized). Parameters, fields, enum
	// entries and the hidden error variables are built without one and
	// leave it at the zero value, which does not point at their declaration.
	Decl ast.NodeID

	// Index is this symbol's positional index among its siblings — a
	// parameter's ordinal, or an enum entry's ordinal — used wherever
	// position matters more than name (error-parameter injection, enum
	// auto-increment).
	Index int
}

func (s *Symbol) String() string {
	return fmt.Sprintf("%s %s: %s at %s", s.Kind, s.Name, typeString(s.Type), s.Pos)
}

func typeString(t types.Descriptor) string {
	if t == nil {
		return "<unresolved>"
	}
	return t.String()
}

// MarkUsed records that this symbol was referenced; the validator emits no
// diagnostic for unused symbols today (unlike the teacher's optimizer-era
// dead-code concerns) but keeps the bookkeeping since it is nearly free and
// a future lint pass can reuse it directly.
func (s *Symbol) MarkUsed() { s.Used = true }

// CanAssign reports whether this symbol may appear as an assignment
// target: never a function, identity, enum entry, namespace or import
// alias, and never a variable/field/parameter marked Constant.
func (s *Symbol) CanAssign() bool {
	switch s.Kind {
	case SymbolVariable, SymbolParameter, SymbolField:
		return !s.Constant
	default:
		return false
	}
}
