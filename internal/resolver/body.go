package resolver

import (
	"github.com/fly-lang/flyc/internal/ast"
	"github.com/fly-lang/flyc/internal/diagnostics"
	"github.com/fly-lang/flyc/internal/source"
	"github.com/fly-lang/flyc/internal/symtab"
	"github.com/fly-lang/flyc/internal/types"
)

// resolveBodies is pass 6: walk every function and method body, binding
// each identifier/member/call-callee reference to the symbol it names, and
// recording each call's implicit error-handler argument (§4.5 points 5-8).
// Signature resolution (pass 4) must already have given every function its
// types.Function descriptor, since overload selection here depends on it.
func (r *Resolver) resolveBodies() {
	for _, mod := range r.set.Modules() {
		ns := r.moduleNS[mod.ID]
		ctx := resolveCtx{namespace: ns, mt: r.result.ModuleTables[mod.ID]}
		f := mod.Factory()
		for _, id := range mod.Decls() {
			switch f.KindOf(id) {
			case ast.KindFunctionDecl:
				r.resolveFunctionBody(f, id, ns, "", ctx)
			case ast.KindClassDecl:
				cd := f.ClassDecl(id)
				for _, methodID := range cd.Methods {
					r.resolveFunctionBody(f, methodID, ns, cd.Name, ctx)
				}
				if cd.Constructor != ast.NoNode {
					r.resolveFunctionBody(f, cd.Constructor, ns, cd.Name, ctx)
				}
			}
		}
	}
}

func (r *Resolver) resolveFunctionBody(f *ast.Factory, id ast.NodeID, ns, className string, ctx resolveCtx) {
	fn := f.FunctionDecl(id)
	if fn.Body == ast.NoNode {
		return // interface/abstract signature-only method, nothing to walk
	}

	fnScope := symtab.NewScope(symtab.ScopeFunction, nil)
	fnScope.Function = r.lookupDeclaredFunction(ns, className, fn.Name, len(fn.Params))
	for i, p := range fn.Params {
		ptype, _ := r.resolveType(p.Type, ctx, fn.Span().Start)
		fnScope.Define(&symtab.Symbol{Name: p.Name, Kind: symtab.SymbolParameter, Type: ptype, Index: i})
	}

	classQualified := ""
	if className != "" {
		classQualified = qualify(ns, className)
	}

	bw := &bodyWalker{
		r:              r,
		f:              f,
		ctx:            ctx,
		classQualified: classQualified,
		static:         fn.Static,
		scope:          fnScope,
		// The hidden error parameter every fly function takes (§4.6); no
		// Scope entry since it is never named in source, only referenced
		// through ErrorScopes.
		errVar: &symtab.Symbol{Name: "<error>", Kind: symtab.SymbolVariable, Type: types.Error},
	}
	ast.Walk(f, bw, fn.Body)
}

// bodyWalker implements ast.Visitor over one function/method body. It
// threads a Scope chain (function -> block/loop/switch, per §4.5 point 5)
// and the currently active error variable (the function's own hidden
// parameter, or a handle block's fresh one) through every recursive Walk
// call it makes — Walk itself only dispatches one node, so every VisitX
// method here is responsible for recursing into its own children.
type bodyWalker struct {
	r   *Resolver
	f   *ast.Factory
	ctx resolveCtx

	classQualified string // "" for a free function; the enclosing class's qualified name for a method
	static         bool   // true inside a static method: no implicit-field lookup

	scope  *symtab.Scope
	errVar *symtab.Symbol
}

// --- identifier and member resolution ------------------------------------

func (w *bodyWalker) VisitIdentExpr(id ast.NodeID, n *ast.IdentExpr) error {
	sym, ok := w.resolveIdent(n.Parts)
	if !ok {
		diagnostics.Error(w.r.sink, n.Span().Start, diagnostics.KindUnresolvedRef,
			"unresolved reference %q", joinIdentPath(n.Parts))
		return nil
	}
	sym.MarkUsed()
	w.r.result.References[id] = sym
	return nil
}

// resolveIdent binds a (possibly qualified) value reference: innermost
// local scope first, then (for an instance method) the enclosing class's
// own fields, then the home namespace's globals, then each import in
// order. A multi-part path is tried as namespace::leaf and, failing that,
// as Identity::member (an enum entry or a static field).
func (w *bodyWalker) resolveIdent(parts []string) (*symtab.Symbol, bool) {
	if len(parts) == 1 {
		name := parts[0]
		if sym := w.scope.Lookup(name); sym != nil {
			return sym, true
		}
		if !w.static && w.classQualified != "" {
			if ct, ok := w.r.result.ClassTables[w.classQualified]; ok {
				if sym, ok := ct.LookupField(name); ok {
					return sym, true
				}
			}
		}
		if home, ok := w.r.result.Namespaces[w.ctx.namespace]; ok {
			if sym, ok := home.LookupGlobal(name); ok {
				return sym, true
			}
		}
		for _, imp := range w.ctx.mt.Imports {
			if other, ok := w.r.result.Namespaces[imp.NamespaceName]; ok {
				if sym, ok := other.LookupGlobal(name); ok {
					return sym, true
				}
			}
		}
		return nil, false
	}

	headParts, leaf := parts[:len(parts)-1], parts[len(parts)-1]
	head := joinIdentPath(headParts)
	if aliased, ok := w.ctx.mt.ResolveAlias(head); ok {
		head = aliased
	}
	if ns, ok := w.r.result.Namespaces[head]; ok {
		if sym, ok := ns.LookupGlobal(leaf); ok {
			return sym, true
		}
	}
	candidateNamespaces := append([]string{w.ctx.namespace}, importNames(w.ctx.mt)...)
	for _, candidateNS := range candidateNamespaces {
		if ct, ok := w.r.result.ClassTables[qualify(candidateNS, head)]; ok {
			if sym, ok := ct.LookupField(leaf); ok {
				return sym, true
			}
		}
	}
	return nil, false
}

func importNames(mt *symtab.ModuleTable) []string {
	out := make([]string, len(mt.Imports))
	for i, imp := range mt.Imports {
		out[i] = imp.NamespaceName
	}
	return out
}

func (w *bodyWalker) VisitMemberExpr(id ast.NodeID, n *ast.MemberExpr) error {
	if err := ast.Walk(w.f, w, n.Object); err != nil {
		return err
	}
	ident, ok := w.exprType(n.Object).(types.Identity)
	if !ok {
		return nil // object's type is not yet known; the validator re-checks
	}
	ct, ok := w.r.result.ClassTables[ident.QualifiedName]
	if !ok {
		return nil
	}
	if sym, ok := ct.LookupField(n.Member); ok {
		w.r.result.References[id] = sym
		return nil
	}
	if set, ok := ct.LookupMethod(n.Member); ok {
		if candidates := set.Candidates(0); len(candidates) == 1 {
			w.r.result.References[id] = candidates[0]
			return nil
		}
	}
	diagnostics.Error(w.r.sink, n.Span().Start, diagnostics.KindUnresolvedRef,
		"%s has no member %q", ident.QualifiedName, n.Member)
	return nil
}

// exprType infers, on a best-effort basis, the type an already-walked
// expression evaluates to, using only what the resolver (not the not-yet-run
// validator) already knows: a resolved symbol's declared type, a literal's
// obvious type, or a resolved call's return type. Returns nil when nothing
// can be said yet — callers treat that as "unknown", not "untyped".
func (w *bodyWalker) exprType(id ast.NodeID) types.Descriptor {
	switch w.f.KindOf(id) {
	case ast.KindIdentExpr, ast.KindMemberExpr:
		if sym, ok := w.r.result.References[id]; ok {
			return sym.Type
		}
	case ast.KindCallExpr:
		ce := w.f.CallExpr(id)
		if sym, ok := w.r.result.References[ce.Callee]; ok {
			if fn, ok := sym.Type.(types.Function); ok {
				return fn.Return
			}
		}
	case ast.KindNewExpr:
		ne := w.f.NewExpr(id)
		if sym, ok := w.r.result.References[ne.TypeRef]; ok {
			return sym.Type
		}
	case ast.KindLiteralExpr:
		return literalType(w.f.LiteralExpr(id))
	}
	return nil
}

func literalType(lit *ast.LiteralExpr) types.Descriptor {
	switch lit.Kind {
	case ast.LiteralInt:
		return types.Int
	case ast.LiteralFloat:
		return types.Float64
	case ast.LiteralString:
		return types.String
	case ast.LiteralChar:
		return types.Char
	case ast.LiteralBool:
		return types.Bool
	case ast.LiteralNull:
		return types.Null
	default:
		return nil
	}
}

// --- calls: function lookup, overload selection, error-scope threading --

func (w *bodyWalker) VisitCallExpr(id ast.NodeID, n *ast.CallExpr) error {
	for _, argID := range n.Args {
		if err := ast.Walk(w.f, w, argID); err != nil {
			return err
		}
	}
	argTypes := make([]types.Descriptor, len(n.Args))
	for i, argID := range n.Args {
		argTypes[i] = w.exprType(argID)
	}

	switch w.f.KindOf(n.Callee) {
	case ast.KindIdentExpr:
		callee := w.f.IdentExpr(n.Callee)
		w.resolveFunctionCall(n.Callee, callee.Parts, argTypes, callee.Span().Start)
	case ast.KindMemberExpr:
		me := w.f.MemberExpr(n.Callee)
		if err := ast.Walk(w.f, w, me.Object); err != nil {
			return err
		}
		w.resolveMethodCall(n.Callee, me, argTypes)
	default:
		if err := ast.Walk(w.f, w, n.Callee); err != nil {
			return err
		}
	}

	// Every call reads its enclosing scope's error variable and threads it
	// through as the implicit first argument (§4.5 point 8); the instance
	// pointer a method call also prepends (§4.5 point 7) is a codegen-time
	// concern once an instance actually has a runtime representation.
	w.r.result.ErrorScopes[id] = w.errVar
	return nil
}

func (w *bodyWalker) resolveFunctionCall(calleeID ast.NodeID, parts []string, argTypes []types.Descriptor, pos source.Position) {
	set, ok := w.lookupFunction(parts)
	if !ok {
		diagnostics.Error(w.r.sink, pos, diagnostics.KindUnresolvedRef,
			"unresolved function %q", joinIdentPath(parts))
		return
	}
	w.selectAndBind(calleeID, set.Candidates(len(argTypes)), argTypes, pos, joinIdentPath(parts))
}

func (w *bodyWalker) resolveMethodCall(calleeID ast.NodeID, me *ast.MemberExpr, argTypes []types.Descriptor) {
	ident, ok := w.exprType(me.Object).(types.Identity)
	if !ok {
		return // receiver type not yet known; the validator re-checks
	}
	ct, ok := w.r.result.ClassTables[ident.QualifiedName]
	if !ok {
		return
	}
	set, ok := ct.LookupMethod(me.Member)
	if !ok {
		diagnostics.Error(w.r.sink, me.Span().Start, diagnostics.KindUnresolvedRef,
			"%s has no method %q", ident.QualifiedName, me.Member)
		return
	}
	w.selectAndBind(calleeID, set.Candidates(len(argTypes)), argTypes, me.Span().Start,
		ident.QualifiedName+"."+me.Member)
}

func (w *bodyWalker) selectAndBind(calleeID ast.NodeID, candidates []*symtab.Symbol, argTypes []types.Descriptor, pos source.Position, displayName string) {
	sym, ambiguous, found := selectOverload(candidates, argTypes)
	switch {
	case ambiguous:
		diagnostics.Error(w.r.sink, pos, diagnostics.KindOverloadAmbiguous,
			"ambiguous call to %q with %d argument(s)", displayName, len(argTypes))
	case !found:
		diagnostics.Error(w.r.sink, pos, diagnostics.KindUnresolvedRef,
			"no overload of %q accepts these %d argument(s)", displayName, len(argTypes))
	default:
		sym.MarkUsed()
		w.r.result.References[calleeID] = sym
	}
}

// lookupFunction finds the OverloadSet parts names: home namespace first,
// then each import in order, mirroring lookupIdentity's resolution order.
func (w *bodyWalker) lookupFunction(parts []string) (*symtab.OverloadSet, bool) {
	if len(parts) == 1 {
		name := parts[0]
		if home, ok := w.r.result.Namespaces[w.ctx.namespace]; ok {
			if set, ok := home.LookupFunction(name); ok {
				return set, true
			}
		}
		for _, imp := range w.ctx.mt.Imports {
			if other, ok := w.r.result.Namespaces[imp.NamespaceName]; ok {
				if set, ok := other.LookupFunction(name); ok {
					return set, true
				}
			}
		}
		return nil, false
	}
	headParts, leaf := parts[:len(parts)-1], parts[len(parts)-1]
	head := joinIdentPath(headParts)
	if aliased, ok := w.ctx.mt.ResolveAlias(head); ok {
		head = aliased
	}
	if ns, ok := w.r.result.Namespaces[head]; ok {
		if set, ok := ns.LookupFunction(leaf); ok {
			return set, true
		}
	}
	return nil, false
}

// --- type-only references -------------------------------------------------

func (w *bodyWalker) VisitNewExpr(id ast.NodeID, n *ast.NewExpr) error {
	if n.TypeRef != ast.NoNode {
		te := w.f.IdentExpr(n.TypeRef)
		if sym, ok := w.r.lookupIdentity(te.Parts, w.ctx); ok {
			w.r.result.References[n.TypeRef] = sym
		} else {
			diagnostics.Error(w.r.sink, te.Span().Start, diagnostics.KindUnresolvedRef,
				"unresolved type %q", joinIdentPath(te.Parts))
		}
	}
	for _, argID := range n.Args {
		if err := ast.Walk(w.f, w, argID); err != nil {
			return err
		}
	}
	return nil
}

// --- scopes: block / loop / switch / handle --------------------------------

func (w *bodyWalker) VisitBlockStmt(id ast.NodeID, n *ast.BlockStmt) error {
	parent := w.scope
	w.scope = symtab.NewScope(symtab.ScopeBlock, parent)
	for _, stmtID := range n.Stmts {
		if err := ast.Walk(w.f, w, stmtID); err != nil {
			w.scope = parent
			return err
		}
	}
	w.scope = parent
	return nil
}

func (w *bodyWalker) VisitIfStmt(id ast.NodeID, n *ast.IfStmt) error {
	if err := ast.Walk(w.f, w, n.Cond); err != nil {
		return err
	}
	if err := ast.Walk(w.f, w, n.Then); err != nil {
		return err
	}
	return ast.Walk(w.f, w, n.Else)
}

func (w *bodyWalker) VisitLoopStmt(id ast.NodeID, n *ast.LoopStmt) error {
	parent := w.scope
	w.scope = symtab.NewScope(symtab.ScopeLoop, parent)
	defer func() { w.scope = parent }()

	if err := ast.Walk(w.f, w, n.Init); err != nil {
		return err
	}
	if err := ast.Walk(w.f, w, n.Cond); err != nil {
		return err
	}
	if err := ast.Walk(w.f, w, n.Post); err != nil {
		return err
	}
	return ast.Walk(w.f, w, n.Body)
}

func (w *bodyWalker) VisitSwitchStmt(id ast.NodeID, n *ast.SwitchStmt) error {
	if err := ast.Walk(w.f, w, n.Value); err != nil {
		return err
	}
	parent := w.scope
	w.scope = symtab.NewScope(symtab.ScopeSwitch, parent)
	defer func() { w.scope = parent }()

	for _, clause := range n.Cases {
		for _, valueID := range clause.Values {
			if err := ast.Walk(w.f, w, valueID); err != nil {
				return err
			}
		}
		for _, stmtID := range clause.Body {
			if err := ast.Walk(w.f, w, stmtID); err != nil {
				return err
			}
		}
	}
	return nil
}

func (w *bodyWalker) VisitHandleStmt(id ast.NodeID, n *ast.HandleStmt) error {
	freshErr := &symtab.Symbol{Name: n.ErrorVar, Kind: symtab.SymbolVariable, Type: types.Error}

	outerErr := w.errVar
	w.errVar = freshErr
	if err := ast.Walk(w.f, w, n.Body); err != nil {
		w.errVar = outerErr
		return err
	}
	w.errVar = outerErr

	if n.Block == ast.NoNode {
		return nil
	}
	parent := w.scope
	w.scope = symtab.NewScope(symtab.ScopeBlock, parent)
	if n.ErrorVar != "" {
		w.scope.Define(freshErr)
	}
	block := w.f.BlockStmt(n.Block)
	for _, stmtID := range block.Stmts {
		if err := ast.Walk(w.f, w, stmtID); err != nil {
			w.scope = parent
			return err
		}
	}
	w.scope = parent
	return nil
}

// --- statements with no scoping or binding of their own --------------------

func (w *bodyWalker) VisitExprStmt(id ast.NodeID, n *ast.ExprStmt) error {
	return ast.Walk(w.f, w, n.Expr)
}

func (w *bodyWalker) VisitAssignStmt(id ast.NodeID, n *ast.AssignStmt) error {
	if err := ast.Walk(w.f, w, n.Target); err != nil {
		return err
	}
	return ast.Walk(w.f, w, n.Value)
}

func (w *bodyWalker) VisitVarStmt(id ast.NodeID, n *ast.VarStmt) error {
	if err := ast.Walk(w.f, w, n.Init); err != nil {
		return err
	}
	var declType types.Descriptor
	if n.Type != nil {
		declType, _ = w.r.resolveType(n.Type, w.ctx, n.Span().Start)
	} else {
		declType = w.exprType(n.Init)
	}
	sym := &symtab.Symbol{Name: n.Name, Kind: symtab.SymbolVariable, Type: declType, Constant: n.Constant, Decl: id}
	if err := w.scope.Define(sym); err != nil {
		diagnostics.Error(w.r.sink, n.Span().Start, diagnostics.KindDuplicateDecl, "%s", err.Error())
	}
	return nil
}

func (w *bodyWalker) VisitReturnStmt(id ast.NodeID, n *ast.ReturnStmt) error {
	return ast.Walk(w.f, w, n.Value)
}

func (w *bodyWalker) VisitFailStmt(id ast.NodeID, n *ast.FailStmt) error {
	return ast.Walk(w.f, w, n.Payload)
}

func (w *bodyWalker) VisitBreakStmt(ast.NodeID, *ast.BreakStmt) error       { return nil }
func (w *bodyWalker) VisitContinueStmt(ast.NodeID, *ast.ContinueStmt) error { return nil }

func (w *bodyWalker) VisitDeleteStmt(id ast.NodeID, n *ast.DeleteStmt) error {
	return ast.Walk(w.f, w, n.Target)
}

// --- expressions with no binding of their own, just recursion -------------

func (w *bodyWalker) VisitLiteralExpr(ast.NodeID, *ast.LiteralExpr) error { return nil }

func (w *bodyWalker) VisitUnaryExpr(id ast.NodeID, n *ast.UnaryExpr) error {
	return ast.Walk(w.f, w, n.Operand)
}

func (w *bodyWalker) VisitBinaryExpr(id ast.NodeID, n *ast.BinaryExpr) error {
	if err := ast.Walk(w.f, w, n.Left); err != nil {
		return err
	}
	return ast.Walk(w.f, w, n.Right)
}

func (w *bodyWalker) VisitLogicalExpr(id ast.NodeID, n *ast.LogicalExpr) error {
	if err := ast.Walk(w.f, w, n.Left); err != nil {
		return err
	}
	return ast.Walk(w.f, w, n.Right)
}

func (w *bodyWalker) VisitTernaryExpr(id ast.NodeID, n *ast.TernaryExpr) error {
	if err := ast.Walk(w.f, w, n.Cond); err != nil {
		return err
	}
	if err := ast.Walk(w.f, w, n.Then); err != nil {
		return err
	}
	return ast.Walk(w.f, w, n.Else)
}

func (w *bodyWalker) VisitIndexExpr(id ast.NodeID, n *ast.IndexExpr) error {
	if err := ast.Walk(w.f, w, n.Array); err != nil {
		return err
	}
	return ast.Walk(w.f, w, n.Index)
}

func (w *bodyWalker) VisitArrayLiteralExpr(id ast.NodeID, n *ast.ArrayLiteralExpr) error {
	for _, elemID := range n.Elements {
		if err := ast.Walk(w.f, w, elemID); err != nil {
			return err
		}
	}
	return nil
}

// --- top-level declarations: unreachable from inside a body ---------------

func (w *bodyWalker) VisitImportDecl(ast.NodeID, *ast.ImportDecl) error     { return nil }
func (w *bodyWalker) VisitVariableDecl(ast.NodeID, *ast.VariableDecl) error { return nil }
func (w *bodyWalker) VisitFunctionDecl(ast.NodeID, *ast.FunctionDecl) error { return nil }
func (w *bodyWalker) VisitClassDecl(ast.NodeID, *ast.ClassDecl) error       { return nil }
func (w *bodyWalker) VisitEnumDecl(ast.NodeID, *ast.EnumDecl) error         { return nil }
