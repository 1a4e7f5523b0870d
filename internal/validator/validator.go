package validator

import (
	"github.com/fly-lang/flyc/internal/ast"
	"github.com/fly-lang/flyc/internal/diagnostics"
	"github.com/fly-lang/flyc/internal/modules"
	"github.com/fly-lang/flyc/internal/resolver"
	"github.com/fly-lang/flyc/internal/source"
	"github.com/fly-lang/flyc/internal/symtab"
	"github.com/fly-lang/flyc/internal/types"
)

// Validator runs the full type-checking and semantic-rule pass over a
// modules.Set that has already been through the resolver: every name is
// already bound to a symbol, so this stage only has to compute and check
// types, control flow, visibility, constness, and class contracts.
// Construct one per compile job; it is not reusable across jobs.
type Validator struct {
	sink diagnostics.Sink
	res  *resolver.Result

	result *Result
}

// New creates a Validator checking a module set against res, the
// resolver's output, and reporting through sink.
func New(sink diagnostics.Sink, res *resolver.Result) *Validator {
	return &Validator{sink: sink, res: res, result: newResult()}
}

// Run type-checks every declaration in set and returns the accumulated
// expression types. It never mutates set or res.
func (v *Validator) Run(set *modules.Set) *Result {
	v.checkOverloadUniqueness()

	for _, mod := range set.Modules() {
		ns := namespaceOf(mod)
		f := mod.Factory()
		for _, id := range mod.Decls() {
			switch f.KindOf(id) {
			case ast.KindVariableDecl:
				v.checkGlobal(f, id, ns)
			case ast.KindFunctionDecl:
				v.checkFunction(f, id, ns, "", false)
			case ast.KindClassDecl:
				v.checkClass(f, id, ns)
			}
		}
	}
	return v.result
}

func namespaceOf(mod *ast.Module) string {
	if len(mod.Namespace.Parts) == 0 {
		return "default"
	}
	out := mod.Namespace.Parts[0]
	for _, p := range mod.Namespace.Parts[1:] {
		out += "::" + p
	}
	return out
}

// checkGlobal type-checks a namespace-level variable's initializer against
// its declared type. Local variable declarations skip this same check (see
// checker.VisitVarStmt) since re-deriving a TypeExpr's descriptor outside
// the resolver would duplicate resolveType's logic for no corresponding
// spec requirement beyond what globals already exercise.
func (v *Validator) checkGlobal(f *ast.Factory, id ast.NodeID, ns string) {
	vd := f.VariableDecl(id)
	if vd.Init == ast.NoNode {
		return
	}
	nsTable, ok := v.res.Namespaces[ns]
	if !ok {
		return
	}
	sym, ok := nsTable.LookupGlobal(vd.Name)
	if !ok || sym.Type == nil {
		return
	}
	c := &checker{v: v, f: f}
	if err := ast.Walk(f, c, vd.Init); err != nil {
		return
	}
	initType := c.typeOf(vd.Init)
	if initType == nil {
		return
	}
	if ok, warn := convert(initType, sym.Type); !ok {
		diagnostics.Error(v.sink, vd.Span().Start, diagnostics.KindTypeMismatch,
			"cannot initialize %q of type %s with a value of type %s", vd.Name, sym.Type, initType)
	} else if warn {
		diagnostics.Warning(v.sink, vd.Span().Start, diagnostics.KindTypeMismatch,
			"implicit conversion from %s to %s initializing %q", initType, sym.Type, vd.Name)
	}
}

// checkFunction type-checks one function or method body: it walks the
// body computing and checking every expression's type, then (for a
// non-void signature) confirms every path returns or fails.
func (v *Validator) checkFunction(f *ast.Factory, id ast.NodeID, ns, className string, static bool) {
	fn := f.FunctionDecl(id)
	if fn.Body == ast.NoNode {
		return // interface/abstract signature-only method
	}

	classQualified := ""
	if className != "" {
		classQualified = ns + "::" + className
		if ns == "" {
			classQualified = className
		}
	}

	retType, _ := v.declaredReturnType(ns, className, fn.Name, len(fn.Params), fn.Span().Start)

	c := &checker{
		v:              v,
		f:              f,
		classQualified: classQualified,
		static:         static || fn.Static,
		retType:        retType,
		loopDepth:      0,
		loopOrSwitch:   0,
	}
	_ = ast.Walk(f, c, fn.Body)

	if retType != nil && !retType.Equals(types.Void) && !terminates(f, fn.Body) {
		diagnostics.Error(v.sink, fn.Span().Start, diagnostics.KindMissingReturn,
			"function %q does not return a value on every path", fn.Name)
	}
}

// declaredReturnType looks up the types.Function descriptor the resolver
// already attached to this function's own declared Symbol, the overload of
// that arity declared at pos.
func (v *Validator) declaredReturnType(ns, className, name string, arity int, pos source.Position) (types.Descriptor, bool) {
	var set *symtab.OverloadSet
	var ok bool
	if className == "" {
		nsTable, exists := v.res.Namespaces[ns]
		if !exists {
			return nil, false
		}
		set, ok = nsTable.LookupFunction(name)
	} else {
		qualified := className
		if ns != "" {
			qualified = ns + "::" + className
		}
		ct, exists := v.res.ClassTables[qualified]
		if !exists {
			return nil, false
		}
		set, ok = ct.LookupMethod(name)
	}
	if !ok {
		return nil, false
	}
	for _, sym := range set.Candidates(arity) {
		if fn, ok := sym.Type.(types.Function); ok && sym.Pos == pos {
			return fn.Return, true
		}
	}
	return nil, false
}

// checkClass enforces class-contract shape rules (§4.7: interfaces carry
// no attributes and only virtual methods, structs carry no methods) and
// then checks every method and constructor body the same way a free
// function's body is checked.
func (v *Validator) checkClass(f *ast.Factory, id ast.NodeID, ns string) {
	cd := f.ClassDecl(id)

	switch cd.Kind {
	case ast.ClassInterface:
		if len(cd.Fields) > 0 {
			diagnostics.Error(v.sink, cd.Span().Start, diagnostics.KindTypeMismatch,
				"interface %q may not declare attributes", cd.Name)
		}
		for _, methodID := range cd.Methods {
			if m := f.FunctionDecl(methodID); m.Body != ast.NoNode {
				diagnostics.Error(v.sink, m.Span().Start, diagnostics.KindTypeMismatch,
					"interface %q method %q may not have a body", cd.Name, m.Name)
			}
		}
	case ast.ClassStruct:
		if len(cd.Methods) > 0 {
			diagnostics.Error(v.sink, cd.Span().Start, diagnostics.KindTypeMismatch,
				"struct %q may not declare methods", cd.Name)
		}
	}

	for _, methodID := range cd.Methods {
		v.checkFunction(f, methodID, ns, cd.Name, false)
	}
	if cd.Constructor != ast.NoNode {
		v.checkFunction(f, cd.Constructor, ns, cd.Name, false)
	}
}

// checkOverloadUniqueness rejects two callables sharing a name, arity, and
// exact parameter-type vector — distinct from the resolver's arity-bucketed
// OverloadSet storage, which only groups by arity and leaves genuine
// signature collisions for this pass to catch.
func (v *Validator) checkOverloadUniqueness() {
	for _, ns := range v.res.Namespaces {
		for _, set := range ns.Functions {
			v.checkOverloadSetUniqueness(set)
		}
	}
	for _, ct := range v.res.ClassTables {
		for _, set := range ct.Methods {
			v.checkOverloadSetUniqueness(set)
		}
	}
}

func (v *Validator) checkOverloadSetUniqueness(set *symtab.OverloadSet) {
	for _, candidates := range set.ByArity {
		for i := 1; i < len(candidates); i++ {
			for j := 0; j < i; j++ {
				if sameSignature(candidates[i], candidates[j]) {
					diagnostics.Error(v.sink, candidates[i].Pos, diagnostics.KindDuplicateDecl,
						"%q duplicates an existing overload with identical parameter types", set.Name)
				}
			}
		}
	}
}

func sameSignature(a, b *symtab.Symbol) bool {
	fa, ok := a.Type.(types.Function)
	if !ok {
		return false
	}
	fb, ok := b.Type.(types.Function)
	if !ok || len(fa.Params) != len(fb.Params) {
		return false
	}
	for i := range fa.Params {
		if fa.Params[i] == nil || fb.Params[i] == nil || !fa.Params[i].Equals(fb.Params[i]) {
			return false
		}
	}
	return true
}

// isSubclassOf walks sub's superclass chain looking for ancestor, used by
// the protected-visibility check: a protected member is readable from
// ancestor's own methods and every descendant's.
func isSubclassOf(res *resolver.Result, sub, ancestor string) bool {
	for cur := sub; cur != ""; {
		if cur == ancestor {
			return true
		}
		ct, ok := res.ClassTables[cur]
		if !ok || ct.SuperClass == nil {
			return false
		}
		ident, ok := ct.SuperClass.Type.(types.Identity)
		if !ok {
			return false
		}
		cur = ident.QualifiedName
	}
	return false
}
