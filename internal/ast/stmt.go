package ast

import "github.com/fly-lang/flyc/internal/source"

// ExprStmt is an expression evaluated for its side effect: a bare call, a
// pre/post increment, etc.
type ExprStmt struct {
	Expr NodeID
	span source.Span
}

func (n *ExprStmt) Span() source.Span { return n.span }
func (*ExprStmt) stmtNode()           {}

// AssignOp enumerates fly's assignment forms.
type AssignOp int

const (
	AssignPlain AssignOp = iota
	AssignAdd
	AssignSub
	AssignMul
	AssignDiv
)

// AssignStmt is `target op= value` (`=` is AssignPlain). Target is an
// lvalue expression: IdentExpr, IndexExpr, or MemberExpr.
type AssignStmt struct {
	Op     AssignOp
	Target NodeID
	Value  NodeID
	span   source.Span
}

func (n *AssignStmt) Span() source.Span { return n.span }
func (*AssignStmt) stmtNode()           {}

// VarStmt is a local variable declaration: `Type name = init;` or
// `const Type name = init;`. Type is always present; Init is NoNode when
// no initializer is written.
type VarStmt struct {
	Name     string
	Type     *TypeExpr
	Init     NodeID
	Constant bool
	span     source.Span
}

func (n *VarStmt) Span() source.Span { return n.span }
func (*VarStmt) stmtNode()           {}

// ReturnStmt returns from the enclosing function; Value is NoNode for a
// bare `return;` in a void function.
type ReturnStmt struct {
	Value NodeID
	span  source.Span
}

func (n *ReturnStmt) Span() source.Span { return n.span }
func (*ReturnStmt) stmtNode()           {}

// FailStmt sets the enclosing function's hidden error parameter and
// returns. Payload is NoNode for a bare `fail;` (clears to the empty error
// tag — used inside a handle block to re-raise nothing), otherwise an
// expression the validator requires to be an integer, a string, a bool, or
// an identity value.
type FailStmt struct {
	Payload NodeID
	span    source.Span
}

func (n *FailStmt) Span() source.Span { return n.span }
func (*FailStmt) stmtNode()           {}

// BreakStmt exits the nearest enclosing loop or switch.
type BreakStmt struct{ span source.Span }

func (n *BreakStmt) Span() source.Span { return n.span }
func (*BreakStmt) stmtNode()           {}

// ContinueStmt restarts the nearest enclosing loop.
type ContinueStmt struct{ span source.Span }

func (n *ContinueStmt) Span() source.Span { return n.span }
func (*ContinueStmt) stmtNode()           {}

// DeleteStmt releases a heap-allocated identity instance: `delete obj;`.
type DeleteStmt struct {
	Target NodeID
	span   source.Span
}

func (n *DeleteStmt) Span() source.Span { return n.span }
func (*DeleteStmt) stmtNode()           {}

// BlockStmt is a `{ ... }` sequence; it introduces its own lexical scope.
type BlockStmt struct {
	Stmts []NodeID
	span  source.Span
}

func (n *BlockStmt) Span() source.Span { return n.span }
func (*BlockStmt) stmtNode()           {}

// IfStmt is `if (cond) then [else else_]`; Else is NoNode when absent, or
// another IfStmt's NodeID for an `elsif` chain, or a BlockStmt for a
// trailing `else`.
type IfStmt struct {
	Cond NodeID
	Then NodeID
	Else NodeID
	span source.Span
}

func (n *IfStmt) Span() source.Span { return n.span }
func (*IfStmt) stmtNode()           {}

// CaseClause is one `case v1, v2: ...` or `default: ...` arm of a
// SwitchStmt. Values must all be compile-time constants (validated against
// the apd-based constant evaluator); an empty Body falls through to the
// next clause (explicit fallthrough-on-empty-body, unlike C's implicit
// fallthrough).
type CaseClause struct {
	Values    []NodeID
	Body      []NodeID
	IsDefault bool
	Span      source.Span
}

// SwitchStmt is fly's multi-value-case switch; Cases holds CaseClause
// values directly (not NodeIDs — clauses are never referenced from
// anywhere else, so they do not need arena identity).
type SwitchStmt struct {
	Value NodeID
	Cases []CaseClause
	span  source.Span
}

func (n *SwitchStmt) Span() source.Span { return n.span }
func (*SwitchStmt) stmtNode()           {}

// LoopKind distinguishes fly's two loop forms, which share one AST node
// because a `while` is exactly a `for` with only a condition.
type LoopKind int

const (
	LoopWhile LoopKind = iota
	LoopFor
)

// LoopStmt unifies `while (cond) body` and
// `for (init; cond; post) body`. Init/Cond/Post are each NoNode when
// absent (a `for (;;)` is a valid infinite loop).
type LoopStmt struct {
	Kind LoopKind
	Init NodeID
	Cond NodeID
	Post NodeID
	Body NodeID
	span source.Span
}

func (n *LoopStmt) Span() source.Span { return n.span }
func (*LoopStmt) stmtNode()           {}

// HandleStmt introduces a fresh error-variable scope around Body: if Body
// (or anything it calls) fails, control transfers here with ErrorVar bound
// to the raised error, and Block runs. This is the source-level view of
// fly's error-handling contract (spec error-parameter model); the resolver
// is responsible for threading the hidden error parameter of every call
// inside Body into this handler.
type HandleStmt struct {
	Body     NodeID // BlockStmt guarded by this handler
	ErrorVar string // name bound to the raised error inside Block
	Block    NodeID // BlockStmt run when Body fails
	span     source.Span
}

func (n *HandleStmt) Span() source.Span { return n.span }
func (*HandleStmt) stmtNode()           {}
