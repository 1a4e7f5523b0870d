package resolver

import (
	"github.com/fly-lang/flyc/internal/ast"
	"github.com/fly-lang/flyc/internal/diagnostics"
	"github.com/fly-lang/flyc/internal/symtab"
	"github.com/fly-lang/flyc/internal/types"
)

// resolveSignatures binds every type reference that appears in a
// declaration header — global variable types, function parameter/return
// types, field types, and a class's declared superclass/interfaces — to a
// types.Descriptor, now that every identity in the working set has been
// declared by declareSymbols. Function bodies are resolved separately, by
// resolveBodies, once every signature is known.
func (r *Resolver) resolveSignatures() {
	for _, mod := range r.set.Modules() {
		ns := r.moduleNS[mod.ID]
		ctx := resolveCtx{namespace: ns, mt: r.result.ModuleTables[mod.ID]}
		f := mod.Factory()
		for _, id := range mod.Decls() {
			switch f.KindOf(id) {
			case ast.KindVariableDecl:
				r.resolveGlobalType(f, id, ns, ctx)
			case ast.KindFunctionDecl:
				r.resolveFunctionSignature(f, id, ns, "", ctx)
			case ast.KindClassDecl:
				r.resolveClassSignature(f, id, ns, ctx)
			}
		}
	}
}

func (r *Resolver) resolveGlobalType(f *ast.Factory, id ast.NodeID, ns string, ctx resolveCtx) {
	v := f.VariableDecl(id)
	sym, ok := r.result.Namespaces[ns].LookupGlobal(v.Name)
	if !ok {
		return // declaration failed earlier (duplicate) — nothing to attach to
	}
	desc, _ := r.resolveType(v.Type, ctx, v.Span().Start)
	sym.Type = desc
}

func (r *Resolver) resolveFunctionSignature(f *ast.Factory, id ast.NodeID, ns, className string, ctx resolveCtx) {
	fn := f.FunctionDecl(id)
	// Several overloads may share this arity; bind the one fn declared.
	var set *symtab.OverloadSet
	if className == "" {
		set, _ = r.result.Namespaces[ns].LookupFunction(fn.Name)
	} else if ct, exists := r.result.ClassTables[qualify(ns, className)]; exists {
		set, _ = ct.LookupMethod(fn.Name)
	}
	var sym *symtab.Symbol
	if set != nil {
		for _, c := range set.Candidates(len(fn.Params)) {
			if c.Pos == fn.Span().Start {
				sym = c
			}
		}
	}
	if sym == nil {
		return
	}
	params := make([]types.Descriptor, len(fn.Params))
	for i, p := range fn.Params {
		desc, _ := r.resolveType(p.Type, ctx, fn.Span().Start)
		params[i] = desc
	}
	ret, _ := r.resolveType(fn.ReturnType, ctx, fn.Span().Start)
	sym.Type = types.Function{Params: params, Return: ret, HasErrorParam: true}
}

// lookupDeclaredFunction finds the overload Symbol declareSymbols already
// registered, by namespace (className == "") or by class (className != "").
func (r *Resolver) lookupDeclaredFunction(ns, className, name string, arity int) *symtab.Symbol {
	var set *symtab.OverloadSet
	var ok bool
	if className == "" {
		set, ok = r.result.Namespaces[ns].LookupFunction(name)
	} else {
		ct, exists := r.result.ClassTables[qualify(ns, className)]
		if !exists {
			return nil
		}
		set, ok = ct.LookupMethod(name)
	}
	if !ok {
		return nil
	}
	candidates := set.Candidates(arity)
	if len(candidates) == 0 {
		return nil
	}
	return candidates[len(candidates)-1] // most recently declared overload of this arity
}

func (r *Resolver) resolveClassSignature(f *ast.Factory, id ast.NodeID, ns string, ctx resolveCtx) {
	cd := f.ClassDecl(id)
	qualified := qualify(ns, cd.Name)
	ct, ok := r.result.ClassTables[qualified]
	if !ok {
		return
	}

	for _, field := range cd.Fields {
		fieldSym, exists := ct.LookupField(field.Name)
		if !exists {
			continue
		}
		desc, _ := r.resolveType(field.Type, ctx, field.Span.Start)
		fieldSym.Type = desc
	}
	for _, methodID := range cd.Methods {
		r.resolveFunctionSignature(f, methodID, ns, cd.Name, ctx)
	}
	if cd.Constructor != ast.NoNode {
		r.resolveFunctionSignature(f, cd.Constructor, ns, cd.Name, ctx)
	}

	if len(cd.SuperClass) > 0 {
		if sym, ok := r.lookupIdentity(cd.SuperClass, ctx); ok {
			ct.SuperClass = sym
		} else {
			diagnostics.Error(r.sink, cd.Span().Start, diagnostics.KindUnresolvedRef,
				"unresolved superclass %q", joinIdentPath(cd.SuperClass))
		}
	}
	for _, iface := range cd.Interfaces {
		if sym, ok := r.lookupIdentity(iface, ctx); ok {
			ct.Interfaces = append(ct.Interfaces, sym)
		} else {
			diagnostics.Error(r.sink, cd.Span().Start, diagnostics.KindUnresolvedRef,
				"unresolved interface %q", joinIdentPath(iface))
		}
	}
}
