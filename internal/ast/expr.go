package ast

import "github.com/fly-lang/flyc/internal/source"

// LiteralKind distinguishes the literal forms the lexer can hand the
// parser; the parser stores the raw lexeme (Text) and lets the validator's
// constant evaluator decide the exact apd.Decimal/bool/string value, so no
// precision is lost before narrowing.
type LiteralKind int

const (
	LiteralInt LiteralKind = iota
	LiteralFloat
	LiteralString
	LiteralChar
	LiteralBool
	LiteralNull
)

// LiteralExpr is a literal as written: the lexer's raw text plus its kind.
type LiteralExpr struct {
	Kind LiteralKind
	Text string
	span source.Span
}

func (n *LiteralExpr) Span() source.Span { return n.span }
func (*LiteralExpr) exprNode()           {}

// IdentExpr is a (possibly scope-qualified) name reference: `x`, `Foo::bar`,
// `ns::Foo::bar`. Parts holds every `::`-separated segment; the resolver
// decides, greedily from the front, how much of it is a namespace/class
// qualifier versus the leaf reference (per the grammar's "greedy
// scope-prefix parsing, postponed identity-type resolution" design).
type IdentExpr struct {
	Parts []string
	span  source.Span
}

func (n *IdentExpr) Span() source.Span { return n.span }
func (*IdentExpr) exprNode()           {}

// CallExpr is a function or method call: Callee is usually an IdentExpr or
// a MemberExpr (for method calls), Args is the explicit argument list as
// written — the hidden error-handler argument every fly function actually
// takes is injected by the resolver, never written by the parser.
type CallExpr struct {
	Callee NodeID
	Args   []NodeID
	span   source.Span
}

func (n *CallExpr) Span() source.Span { return n.span }
func (*CallExpr) exprNode()           {}

// UnaryOp enumerates fly's prefix/postfix unary operators.
type UnaryOp int

const (
	UnaryNeg UnaryOp = iota
	UnaryNot
	UnaryBitNot
	UnaryPreInc
	UnaryPreDec
	UnaryPostInc
	UnaryPostDec
)

// UnaryExpr is a unary operation; Op distinguishes `x++` (UnaryPostInc)
// from `++x` (UnaryPreInc).
type UnaryExpr struct {
	Op      UnaryOp
	Operand NodeID
	span    source.Span
}

func (n *UnaryExpr) Span() source.Span { return n.span }
func (*UnaryExpr) exprNode()           {}

// BinaryOp enumerates fly's arithmetic, relational and bitwise operators.
// Logical && and || are deliberately not here — they are LogicalExpr,
// because they short-circuit and the validator must not typecheck them the
// way it typechecks an eager binary operator.
type BinaryOp int

const (
	BinAdd BinaryOp = iota
	BinSub
	BinMul
	BinDiv
	BinMod
	BinEq
	BinNotEq
	BinLess
	BinLessEq
	BinGreater
	BinGreaterEq
	BinBitAnd
	BinBitOr
	BinBitXor
	BinShl
	BinShr
)

// BinaryExpr is a binary operation over eagerly evaluated operands.
type BinaryExpr struct {
	Op    BinaryOp
	Left  NodeID
	Right NodeID
	span  source.Span
}

func (n *BinaryExpr) Span() source.Span { return n.span }
func (*BinaryExpr) exprNode()           {}

// LogicalOp distinguishes && from ||.
type LogicalOp int

const (
	LogicalAnd LogicalOp = iota
	LogicalOr
)

// LogicalExpr is a short-circuiting boolean operation.
type LogicalExpr struct {
	Op    LogicalOp
	Left  NodeID
	Right NodeID
	span  source.Span
}

func (n *LogicalExpr) Span() source.Span { return n.span }
func (*LogicalExpr) exprNode()           {}

// TernaryExpr is `cond ? then : else`.
type TernaryExpr struct {
	Cond NodeID
	Then NodeID
	Else NodeID
	span source.Span
}

func (n *TernaryExpr) Span() source.Span { return n.span }
func (*TernaryExpr) exprNode()           {}

// IndexExpr is `array[index]`.
type IndexExpr struct {
	Array NodeID
	Index NodeID
	span  source.Span
}

func (n *IndexExpr) Span() source.Span { return n.span }
func (*IndexExpr) exprNode()           {}

// MemberExpr is `object.member` — field access or, as the Callee of a
// CallExpr, a method call receiver.
type MemberExpr struct {
	Object NodeID
	Member string
	span   source.Span
}

func (n *MemberExpr) Span() source.Span { return n.span }
func (*MemberExpr) exprNode()           {}

// NewExpr allocates a new instance of a class/struct: `new Foo(args...)`.
// TypeRef is resolved later (postponed identity-type resolution) to a
// types.Descriptor naming a class or struct; if Args is empty and the class
// declares no constructor, the zero-argument constructor that applies is
// the default one the parser synthesized (Factory.NewDefaultConstructor).
// The resolver itself binds only TypeRef.
type NewExpr struct {
	TypeRef NodeID // an IdentExpr naming the type
	Args    []NodeID
	span    source.Span
}

func (n *NewExpr) Span() source.Span { return n.span }
func (*NewExpr) exprNode()           {}

// ArrayLiteralExpr is `[e1, e2, ...]`; element type is inferred by the
// validator from the elements (or from the declared VariableDecl type when
// used as an initializer).
type ArrayLiteralExpr struct {
	Elements []NodeID
	span     source.Span
}

func (n *ArrayLiteralExpr) Span() source.Span { return n.span }
func (*ArrayLiteralExpr) exprNode()           {}
