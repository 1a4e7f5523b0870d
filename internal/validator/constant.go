package validator

import (
	"fmt"

	"github.com/cockroachdb/apd/v3"

	"github.com/fly-lang/flyc/internal/ast"
)

// constValue is a folded compile-time constant. Exactly one of Num, Str,
// or Bool is meaningful, selected by Kind.
type constValue struct {
	Kind ast.LiteralKind
	Num  *apd.Decimal
	Str  string
	Bool bool
}

// key returns a string uniquely identifying this constant's value, used by
// switch-case uniqueness checking — two constValues with the same Kind
// family and the same key are the same case label.
func (v constValue) key() string {
	switch v.Kind {
	case ast.LiteralString, ast.LiteralChar:
		return "s:" + v.Str
	case ast.LiteralBool:
		return fmt.Sprintf("b:%v", v.Bool)
	default:
		return "n:" + v.Num.String()
	}
}

// constCtx gives every fold enough decimal precision for fly's widest
// integer type (64-bit) with headroom to spare; switch case labels are
// small literals and simple arithmetic over them, never a precision-heavy
// computation.
var constCtx = apd.BaseContext.WithPrecision(40)

// foldConstant evaluates id as a compile-time constant expression: a
// literal, or one of the arithmetic/negation/logical-not operators applied
// to already-constant operands (bitwise complement is not folded) — the same
// fold-by-structural-recursion shape a constant-folding optimizer pass
// uses, grounded on the same per-opcode switch structure, but walking the
// untyped AST directly with apd.Decimal standing in for the raw machine
// ints a lowered IR would fold instead, so integer and floating literals
// share one exact decimal representation.
func foldConstant(f *ast.Factory, id ast.NodeID) (constValue, bool) {
	if id == ast.NoNode {
		return constValue{}, false
	}
	switch f.KindOf(id) {
	case ast.KindLiteralExpr:
		return foldLiteral(f.LiteralExpr(id))
	case ast.KindUnaryExpr:
		return foldUnary(f, f.UnaryExpr(id))
	case ast.KindBinaryExpr:
		return foldBinary(f, f.BinaryExpr(id))
	default:
		return constValue{}, false
	}
}

func foldLiteral(lit *ast.LiteralExpr) (constValue, bool) {
	switch lit.Kind {
	case ast.LiteralInt, ast.LiteralFloat:
		d, _, err := apd.NewFromString(lit.Text)
		if err != nil {
			return constValue{}, false
		}
		return constValue{Kind: lit.Kind, Num: d}, true
	case ast.LiteralString, ast.LiteralChar:
		return constValue{Kind: lit.Kind, Str: lit.Text}, true
	case ast.LiteralBool:
		return constValue{Kind: lit.Kind, Bool: lit.Text == "true"}, true
	default:
		return constValue{}, false
	}
}

func foldUnary(f *ast.Factory, n *ast.UnaryExpr) (constValue, bool) {
	operand, ok := foldConstant(f, n.Operand)
	if !ok {
		return constValue{}, false
	}
	switch n.Op {
	case ast.UnaryNeg:
		if operand.Num == nil {
			return constValue{}, false
		}
		result := new(apd.Decimal)
		_, _ = constCtx.Neg(result, operand.Num)
		return constValue{Kind: operand.Kind, Num: result}, true
	case ast.UnaryNot:
		if operand.Kind != ast.LiteralBool {
			return constValue{}, false
		}
		return constValue{Kind: ast.LiteralBool, Bool: !operand.Bool}, true
	case ast.UnaryBitNot:
		// Bitwise complement over an arbitrary-precision decimal has no
		// well-defined meaning without a fixed width; case labels needing
		// it are rare enough that this is left unfolded (case-label
		// constant-ness then fails, same as any other non-constant label).
		return constValue{}, false
	default:
		return constValue{}, false
	}
}

func foldBinary(f *ast.Factory, n *ast.BinaryExpr) (constValue, bool) {
	left, ok := foldConstant(f, n.Left)
	if !ok || left.Num == nil {
		return constValue{}, false
	}
	right, ok := foldConstant(f, n.Right)
	if !ok || right.Num == nil {
		return constValue{}, false
	}
	result := new(apd.Decimal)
	switch n.Op {
	case ast.BinAdd:
		_, _ = constCtx.Add(result, left.Num, right.Num)
	case ast.BinSub:
		_, _ = constCtx.Sub(result, left.Num, right.Num)
	case ast.BinMul:
		_, _ = constCtx.Mul(result, left.Num, right.Num)
	case ast.BinDiv:
		if right.Num.Sign() == 0 {
			return constValue{}, false
		}
		_, _ = constCtx.Quo(result, left.Num, right.Num)
	case ast.BinMod:
		if right.Num.Sign() == 0 {
			return constValue{}, false
		}
		_, _ = constCtx.Rem(result, left.Num, right.Num)
	default:
		return constValue{}, false
	}
	return constValue{Kind: left.Kind, Num: result}, true
}
