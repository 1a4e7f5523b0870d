package validator

import (
	"github.com/fly-lang/flyc/internal/ast"
	"github.com/fly-lang/flyc/internal/diagnostics"
	"github.com/fly-lang/flyc/internal/source"
	"github.com/fly-lang/flyc/internal/symtab"
	"github.com/fly-lang/flyc/internal/types"
)

// checker implements ast.Visitor over one already-resolved function or
// method body. Every name reference in the tree already carries a symbol
// in the resolver's Result, so checker never binds a name itself — it only
// computes, bottom-up, each expression's final type (stored into
// Validator.result.Types) and checks the rules §4.7 attaches to each kind
// of node along the way. Like the resolver's bodyWalker, it must manually
// recurse into every child via ast.Walk since Walk itself only dispatches
// one node.
type checker struct {
	v *Validator
	f *ast.Factory

	classQualified string // "" for a free function
	static         bool

	retType types.Descriptor // nil for a void function

	loopDepth    int // > 0 inside a loop: continue (and break) are legal
	loopOrSwitch int // > 0 inside a loop or switch: break is legal
}

// typeOf returns the final type already computed for id: a name/call/new
// reference's type comes from the resolver's own bindings, a literal's
// type is obvious, and any composite expression's type was stored by this
// checker's own Visit method when it walked that node (Walk always visits
// children before a parent can ask about them). Returns nil — "unknown
// because an earlier error already broke this subtree" — otherwise.
func (c *checker) typeOf(id ast.NodeID) types.Descriptor {
	if id == ast.NoNode {
		return nil
	}
	if t, ok := c.v.result.Types[id]; ok {
		return t
	}
	switch c.f.KindOf(id) {
	case ast.KindIdentExpr, ast.KindMemberExpr:
		if sym, ok := c.v.res.References[id]; ok {
			return sym.Type
		}
	case ast.KindCallExpr:
		ce := c.f.CallExpr(id)
		if sym, ok := c.v.res.References[ce.Callee]; ok {
			if fn, ok := sym.Type.(types.Function); ok {
				return fn.Return
			}
		}
	case ast.KindNewExpr:
		ne := c.f.NewExpr(id)
		if sym, ok := c.v.res.References[ne.TypeRef]; ok {
			return sym.Type
		}
	case ast.KindLiteralExpr:
		return literalType(c.f.LiteralExpr(id))
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

// --- references: visibility only, typing already done by the resolver ---

func (c *checker) VisitIdentExpr(id ast.NodeID, n *ast.IdentExpr) error {
	if sym, ok := c.v.res.References[id]; ok {
		c.v.result.Types[id] = sym.Type
	}
	return nil
}

func (c *checker) VisitMemberExpr(id ast.NodeID, n *ast.MemberExpr) error {
	if err := ast.Walk(c.f, c, n.Object); err != nil {
		return err
	}
	ident, isIdentity := c.typeOf(n.Object).(types.Identity)
	sym, hasSym := c.v.res.References[id]
	if hasSym {
		c.v.result.Types[id] = sym.Type
	}
	if isIdentity && hasSym {
		c.checkVisibility(sym, ident.QualifiedName, n.Span().Start)
	}
	return nil
}

// checkVisibility enforces §4.7's visibility rule at a field/method access
// site: public (and the unmarked default) is always readable, protected is
// readable from ownerQualified's own methods and every descendant's,
// private only from ownerQualified's own methods.
func (c *checker) checkVisibility(sym *symtab.Symbol, ownerQualified string, pos source.Position) {
	switch sym.Visibility {
	case ast.VisibilityPrivate:
		if c.classQualified != ownerQualified {
			diagnostics.Error(c.v.sink, pos, diagnostics.KindVisibility,
				"%q is private to %s", sym.Name, ownerQualified)
		}
	case ast.VisibilityProtected:
		if !isSubclassOf(c.v.res, c.classQualified, ownerQualified) {
			diagnostics.Error(c.v.sink, pos, diagnostics.KindVisibility,
				"%q is protected and not accessible here", sym.Name)
		}
	}
}

// --- calls: propagate the resolver's callee return type ------------------

func (c *checker) VisitCallExpr(id ast.NodeID, n *ast.CallExpr) error {
	for _, argID := range n.Args {
		if err := ast.Walk(c.f, c, argID); err != nil {
			return err
		}
	}
	if err := ast.Walk(c.f, c, n.Callee); err != nil {
		return err
	}
	c.v.result.Types[id] = c.typeOf(id)
	return nil
}

func (c *checker) VisitNewExpr(id ast.NodeID, n *ast.NewExpr) error {
	for _, argID := range n.Args {
		if err := ast.Walk(c.f, c, argID); err != nil {
			return err
		}
	}
	c.v.result.Types[id] = c.typeOf(id)
	return nil
}

// --- literals and simple recursive composites -----------------------------

func (c *checker) VisitLiteralExpr(id ast.NodeID, n *ast.LiteralExpr) error {
	c.v.result.Types[id] = literalType(n)
	return nil
}

func (c *checker) VisitUnaryExpr(id ast.NodeID, n *ast.UnaryExpr) error {
	if err := ast.Walk(c.f, c, n.Operand); err != nil {
		return err
	}
	operand := c.typeOf(n.Operand)
	result, ok := unaryResultType(n.Op, operand)
	if !ok {
		if operand != nil {
			diagnostics.Error(c.v.sink, n.Span().Start, diagnostics.KindTypeMismatch,
				"operator cannot apply to an operand of type %s", operand)
		}
		return nil
	}
	c.v.result.Types[id] = result
	return nil
}

func (c *checker) VisitBinaryExpr(id ast.NodeID, n *ast.BinaryExpr) error {
	if err := ast.Walk(c.f, c, n.Left); err != nil {
		return err
	}
	if err := ast.Walk(c.f, c, n.Right); err != nil {
		return err
	}
	left, right := c.typeOf(n.Left), c.typeOf(n.Right)
	result, ok := binaryResultType(n.Op, left, right)
	if !ok {
		if left != nil && right != nil {
			diagnostics.Error(c.v.sink, n.Span().Start, diagnostics.KindTypeMismatch,
				"operator cannot apply to operands of type %s and %s", left, right)
		}
		return nil
	}
	c.v.result.Types[id] = result
	return nil
}

func (c *checker) VisitLogicalExpr(id ast.NodeID, n *ast.LogicalExpr) error {
	if err := ast.Walk(c.f, c, n.Left); err != nil {
		return err
	}
	if err := ast.Walk(c.f, c, n.Right); err != nil {
		return err
	}
	left, right := c.typeOf(n.Left), c.typeOf(n.Right)
	if left != nil && !types.IsBoolean(left) {
		diagnostics.Error(c.v.sink, n.Span().Start, diagnostics.KindTypeMismatch, "logical operator needs a bool operand, got %s", left)
	}
	if right != nil && !types.IsBoolean(right) {
		diagnostics.Error(c.v.sink, n.Span().Start, diagnostics.KindTypeMismatch, "logical operator needs a bool operand, got %s", right)
	}
	c.v.result.Types[id] = types.Bool
	return nil
}

func (c *checker) VisitTernaryExpr(id ast.NodeID, n *ast.TernaryExpr) error {
	if err := ast.Walk(c.f, c, n.Cond); err != nil {
		return err
	}
	if err := ast.Walk(c.f, c, n.Then); err != nil {
		return err
	}
	if err := ast.Walk(c.f, c, n.Else); err != nil {
		return err
	}
	cond := c.typeOf(n.Cond)
	if cond != nil && !types.IsBoolean(cond) {
		diagnostics.Error(c.v.sink, n.Span().Start, diagnostics.KindTypeMismatch, "ternary condition must be bool, got %s", cond)
	}
	then, els := c.typeOf(n.Then), c.typeOf(n.Else)
	switch {
	case then == nil:
		c.v.result.Types[id] = els
	case els == nil:
		c.v.result.Types[id] = then
	case then.Equals(els):
		c.v.result.Types[id] = then
	case types.IsNumeric(then) && types.IsNumeric(els):
		c.v.result.Types[id] = widerOf(then, els)
	default:
		diagnostics.Error(c.v.sink, n.Span().Start, diagnostics.KindTypeMismatch,
			"ternary branches have incompatible types %s and %s", then, els)
	}
	return nil
}

func (c *checker) VisitIndexExpr(id ast.NodeID, n *ast.IndexExpr) error {
	if err := ast.Walk(c.f, c, n.Array); err != nil {
		return err
	}
	if err := ast.Walk(c.f, c, n.Index); err != nil {
		return err
	}
	index := c.typeOf(n.Index)
	if index != nil && !types.IsInteger(index) {
		diagnostics.Error(c.v.sink, n.Span().Start, diagnostics.KindTypeMismatch, "array index must be an integer, got %s", index)
	}
	if arr, ok := c.typeOf(n.Array).(types.Array); ok {
		c.v.result.Types[id] = arr.Elem
	}
	return nil
}

func (c *checker) VisitArrayLiteralExpr(id ast.NodeID, n *ast.ArrayLiteralExpr) error {
	var elem types.Descriptor
	for _, elemID := range n.Elements {
		if err := ast.Walk(c.f, c, elemID); err != nil {
			return err
		}
		if elem == nil {
			elem = c.typeOf(elemID)
		}
	}
	if elem != nil {
		c.v.result.Types[id] = types.Array{Elem: elem, Size: len(n.Elements)}
	}
	return nil
}

// --- statements ------------------------------------------------------------

func (c *checker) VisitExprStmt(id ast.NodeID, n *ast.ExprStmt) error {
	return ast.Walk(c.f, c, n.Expr)
}

func (c *checker) VisitAssignStmt(id ast.NodeID, n *ast.AssignStmt) error {
	if err := ast.Walk(c.f, c, n.Target); err != nil {
		return err
	}
	if err := ast.Walk(c.f, c, n.Value); err != nil {
		return err
	}

	if sym, ok := c.v.res.References[n.Target]; ok && !sym.CanAssign() {
		diagnostics.Error(c.v.sink, n.Span().Start, diagnostics.KindConstness,
			"cannot assign to %q: not assignable", sym.Name)
		return nil
	}

	target, value := c.typeOf(n.Target), c.typeOf(n.Value)
	if target == nil || value == nil {
		return nil
	}
	if n.Op != ast.AssignPlain {
		if _, ok := binaryResultType(compoundOp(n.Op), target, value); !ok {
			diagnostics.Error(c.v.sink, n.Span().Start, diagnostics.KindTypeMismatch,
				"compound assignment cannot apply to operands of type %s and %s", target, value)
			return nil
		}
	}
	if ok, warn := convert(value, target); !ok {
		diagnostics.Error(c.v.sink, n.Span().Start, diagnostics.KindTypeMismatch,
			"cannot assign a value of type %s to %s", value, target)
	} else if warn {
		diagnostics.Warning(c.v.sink, n.Span().Start, diagnostics.KindTypeMismatch,
			"implicit conversion from %s to %s", value, target)
	}
	return nil
}

func compoundOp(op ast.AssignOp) ast.BinaryOp {
	switch op {
	case ast.AssignAdd:
		return ast.BinAdd
	case ast.AssignSub:
		return ast.BinSub
	case ast.AssignMul:
		return ast.BinMul
	case ast.AssignDiv:
		return ast.BinDiv
	default:
		return ast.BinAdd
	}
}

// VisitVarStmt walks the initializer (so its own subtree gets checked and
// typed) but does not re-validate the declared type against it — the
// resolver already assigned this local's symbol a declared-or-inferred
// type while building the scope chain; redoing that comparison here would
// require re-resolving the VarStmt's TypeExpr a second time outside the
// resolver for no rule beyond what a global's declaration already
// exercises (see Validator.checkGlobal).
func (c *checker) VisitVarStmt(id ast.NodeID, n *ast.VarStmt) error {
	return ast.Walk(c.f, c, n.Init)
}

func (c *checker) VisitReturnStmt(id ast.NodeID, n *ast.ReturnStmt) error {
	if err := ast.Walk(c.f, c, n.Value); err != nil {
		return err
	}
	switch {
	case n.Value == ast.NoNode:
		if c.retType != nil && !c.retType.Equals(types.Void) {
			diagnostics.Error(c.v.sink, n.Span().Start, diagnostics.KindTypeMismatch,
				"function must return a value of type %s", c.retType)
		}
	case c.retType == nil || c.retType.Equals(types.Void):
		diagnostics.Error(c.v.sink, n.Span().Start, diagnostics.KindTypeMismatch,
			"void function must not return a value")
	default:
		if value := c.typeOf(n.Value); value != nil {
			if ok, warn := convert(value, c.retType); !ok {
				diagnostics.Error(c.v.sink, n.Span().Start, diagnostics.KindTypeMismatch,
					"cannot return a value of type %s from a function declared to return %s", value, c.retType)
			} else if warn {
				diagnostics.Warning(c.v.sink, n.Span().Start, diagnostics.KindTypeMismatch,
					"implicit conversion from %s to %s on return", value, c.retType)
			}
		}
	}
	return nil
}

// VisitFailStmt enforces the permitted fail-payload shapes: integer,
// string, bool, or an identity (class/struct/enum) value.
func (c *checker) VisitFailStmt(id ast.NodeID, n *ast.FailStmt) error {
	if err := ast.Walk(c.f, c, n.Payload); err != nil {
		return err
	}
	if n.Payload == ast.NoNode {
		return nil
	}
	payload := c.typeOf(n.Payload)
	if payload == nil {
		return nil
	}
	_, isIdentity := payload.(types.Identity)
	if types.IsInteger(payload) || types.IsBoolean(payload) || payload.Equals(types.String) || isIdentity {
		return nil
	}
	diagnostics.Error(c.v.sink, n.Span().Start, diagnostics.KindBadFailPayload,
		"fail payload must be an integer, string, bool, or identity value, got %s", payload)
	return nil
}

// break/continue scoping is a control-flow well-formedness rule, the same
// family §7 gives KindMissingReturn for — there is no separate stable kind
// for it in the fixed diagnostic vocabulary, so it is reported under that
// one rather than KindInternal, which §7 reserves for implementation bugs,
// not user source errors.
func (c *checker) VisitBreakStmt(id ast.NodeID, n *ast.BreakStmt) error {
	if c.loopOrSwitch == 0 {
		diagnostics.Error(c.v.sink, n.Span().Start, diagnostics.KindMissingReturn, "break outside a loop or switch")
	}
	return nil
}

func (c *checker) VisitContinueStmt(id ast.NodeID, n *ast.ContinueStmt) error {
	if c.loopDepth == 0 {
		diagnostics.Error(c.v.sink, n.Span().Start, diagnostics.KindMissingReturn, "continue outside a loop")
	}
	return nil
}

func (c *checker) VisitDeleteStmt(id ast.NodeID, n *ast.DeleteStmt) error {
	return ast.Walk(c.f, c, n.Target)
}

// --- scopes: block / if / loop / switch / handle --------------------------

func (c *checker) VisitBlockStmt(id ast.NodeID, n *ast.BlockStmt) error {
	for _, stmtID := range n.Stmts {
		if err := ast.Walk(c.f, c, stmtID); err != nil {
			return err
		}
	}
	return nil
}

func (c *checker) VisitIfStmt(id ast.NodeID, n *ast.IfStmt) error {
	if err := ast.Walk(c.f, c, n.Cond); err != nil {
		return err
	}
	if cond := c.typeOf(n.Cond); cond != nil && !types.IsBoolean(cond) {
		diagnostics.Error(c.v.sink, n.Span().Start, diagnostics.KindTypeMismatch, "if condition must be bool, got %s", cond)
	}
	if err := ast.Walk(c.f, c, n.Then); err != nil {
		return err
	}
	return ast.Walk(c.f, c, n.Else)
}

func (c *checker) VisitLoopStmt(id ast.NodeID, n *ast.LoopStmt) error {
	if err := ast.Walk(c.f, c, n.Init); err != nil {
		return err
	}
	if err := ast.Walk(c.f, c, n.Cond); err != nil {
		return err
	}
	if cond := c.typeOf(n.Cond); cond != nil && !types.IsBoolean(cond) {
		diagnostics.Error(c.v.sink, n.Span().Start, diagnostics.KindTypeMismatch, "loop condition must be bool, got %s", cond)
	}
	if err := ast.Walk(c.f, c, n.Post); err != nil {
		return err
	}
	c.loopDepth++
	c.loopOrSwitch++
	err := ast.Walk(c.f, c, n.Body)
	c.loopDepth--
	c.loopOrSwitch--
	return err
}

func (c *checker) VisitSwitchStmt(id ast.NodeID, n *ast.SwitchStmt) error {
	if err := ast.Walk(c.f, c, n.Value); err != nil {
		return err
	}
	scrutinee := c.typeOf(n.Value)
	if scrutinee != nil {
		_, isEnum := scrutinee.(types.Identity)
		if !types.IsInteger(scrutinee) && !isEnum {
			diagnostics.Error(c.v.sink, n.Span().Start, diagnostics.KindTypeMismatch,
				"switch scrutinee must be an integer or enum, got %s", scrutinee)
		}
	}

	c.loopOrSwitch++
	defer func() { c.loopOrSwitch-- }()

	seen := make(map[string]bool)
	for _, clause := range n.Cases {
		for _, valueID := range clause.Values {
			if err := ast.Walk(c.f, c, valueID); err != nil {
				return err
			}
			cv, ok := foldConstant(c.f, valueID)
			if !ok {
				diagnostics.Error(c.v.sink, clause.Span.Start, diagnostics.KindTypeMismatch,
					"case label must be a compile-time constant")
				continue
			}
			key := cv.key()
			if seen[key] {
				diagnostics.Error(c.v.sink, clause.Span.Start, diagnostics.KindDuplicateDecl,
					"duplicate case label")
			}
			seen[key] = true
		}
		for _, stmtID := range clause.Body {
			if err := ast.Walk(c.f, c, stmtID); err != nil {
				return err
			}
		}
	}
	return nil
}

func (c *checker) VisitHandleStmt(id ast.NodeID, n *ast.HandleStmt) error {
	if err := ast.Walk(c.f, c, n.Body); err != nil {
		return err
	}
	return ast.Walk(c.f, c, n.Block)
}

// --- top-level declarations: unreachable from inside a body ---------------

func (c *checker) VisitImportDecl(ast.NodeID, *ast.ImportDecl) error     { return nil }
func (c *checker) VisitVariableDecl(ast.NodeID, *ast.VariableDecl) error { return nil }
func (c *checker) VisitFunctionDecl(ast.NodeID, *ast.FunctionDecl) error { return nil }
func (c *checker) VisitClassDecl(ast.NodeID, *ast.ClassDecl) error       { return nil }
func (c *checker) VisitEnumDecl(ast.NodeID, *ast.EnumDecl) error         { return nil }
