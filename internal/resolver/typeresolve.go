package resolver

import (
	"github.com/fly-lang/flyc/internal/ast"
	"github.com/fly-lang/flyc/internal/diagnostics"
	"github.com/fly-lang/flyc/internal/source"
	"github.com/fly-lang/flyc/internal/symtab"
	"github.com/fly-lang/flyc/internal/token"
	"github.com/fly-lang/flyc/internal/types"
)

// resolveCtx carries the lookup context a TypeExpr or identifier is
// resolved within: its home namespace and its module's import table.
type resolveCtx struct {
	namespace string
	mt        *symtab.ModuleTable
}

// resolveType binds a TypeExpr, as written by the parser, to a concrete
// types.Descriptor: a primitive keyword maps directly, an identity name is
// looked up in the home namespace first and then every imported namespace
// in import order (§4.5 point 3), and an array suffix wraps recursively.
// Returns (types.Invalid, false) and reports KindUnresolvedRef on failure.
func (r *Resolver) resolveType(te *ast.TypeExpr, ctx resolveCtx, pos source.Position) (types.Descriptor, bool) {
	if te == nil {
		return types.Void, true
	}
	if te.Elem != nil {
		elem, ok := r.resolveType(te.Elem, ctx, pos)
		size := -1 // dynamic unless a fixed literal size was given; the
		// validator's constant evaluator narrows te.Size to a concrete
		// length once constants are folded — the resolver only records
		// "has a size expression" as "not dynamic" via Size's NodeID.
		if te.Size != ast.NoNode {
			size = 0
		}
		return types.Array{Elem: elem, Size: size}, ok
	}
	if te.Primitive != token.Invalid {
		return primitiveDescriptor(te.Primitive), true
	}

	name := joinIdentPath(te.Name)
	if sym, ok := r.lookupIdentity(te.Name, ctx); ok {
		return sym.Type, true
	}
	diagnostics.Error(r.sink, pos, diagnostics.KindUnresolvedRef, "unresolved type %q", name)
	return types.Invalid, false
}

func primitiveDescriptor(t token.Type) types.Descriptor {
	switch t {
	case token.KwBool:
		return types.Bool
	case token.KwChar:
		return types.Char
	case token.KwString:
		return types.String
	case token.KwVoid:
		return types.Void
	case token.KwError:
		return types.Error
	case token.KwByte:
		return types.Byte
	case token.KwShort:
		return types.Short
	case token.KwUShort:
		return types.UShort
	case token.KwInt:
		return types.Int
	case token.KwUInt:
		return types.UInt
	case token.KwLong:
		return types.Long
	case token.KwULong:
		return types.ULong
	case token.KwFloat:
		return types.Float32
	case token.KwDouble:
		return types.Float64
	default:
		return types.Invalid
	}
}

// lookupIdentity resolves a possibly-qualified identity path. A single-part
// path is searched in ctx's home namespace, then each namespace ctx's
// module imports, in import order; aliases are dereferenced first. A
// multi-part path treats its leading parts as an import alias or namespace
// name and its last part as the identity itself.
func (r *Resolver) lookupIdentity(parts []string, ctx resolveCtx) (*symtab.Symbol, bool) {
	if len(parts) == 0 {
		return nil, false
	}
	if len(parts) == 1 {
		if home, ok := r.result.Namespaces[ctx.namespace]; ok {
			if sym, ok := home.LookupIdentity(parts[0]); ok {
				return sym, true
			}
		}
		for _, imp := range ctx.mt.Imports {
			if other, ok := r.result.Namespaces[imp.NamespaceName]; ok {
				if sym, ok := other.LookupIdentity(parts[0]); ok {
					return sym, true
				}
			}
		}
		return nil, false
	}

	nsName := joinIdentPath(parts[:len(parts)-1])
	if aliased, ok := ctx.mt.ResolveAlias(nsName); ok {
		nsName = aliased
	}
	leaf := parts[len(parts)-1]
	if ns, ok := r.result.Namespaces[nsName]; ok {
		return ns.LookupIdentity(leaf)
	}
	return nil, false
}
