package parser

import "github.com/fly-lang/flyc/internal/token"

// Precedence is a binding power; higher binds tighter. Assignment is
// deliberately absent from this table — fly treats assignment as a
// statement, not an expression (the "assignment-as-statement desugaring"
// design note), so the expression parser never needs an assignment level.
type Precedence int

const (
	PrecNone Precedence = iota
	PrecTernary
	PrecLogicalOr
	PrecLogicalAnd
	PrecBitOr
	PrecBitXor
	PrecBitAnd
	PrecEquality
	PrecRelational
	PrecShift
	PrecAdditive
	PrecMultiplicative
	PrecUnary
	PrecPostfix
	PrecPrimary
)

// getPrecedence returns the left-binding precedence of t when it appears
// as an infix/postfix operator, or PrecNone if t never does.
func getPrecedence(t token.Type) Precedence {
	switch t {
	case token.Question:
		return PrecTernary
	case token.Or:
		return PrecLogicalOr
	case token.And:
		return PrecLogicalAnd
	case token.Pipe:
		return PrecBitOr
	case token.Caret:
		return PrecBitXor
	case token.Amp:
		return PrecBitAnd
	case token.Eq, token.NotEq:
		return PrecEquality
	case token.Less, token.LessEq, token.Greater, token.GreaterEq:
		return PrecRelational
	case token.Shl, token.Shr:
		return PrecShift
	case token.Plus, token.Minus:
		return PrecAdditive
	case token.Star, token.Slash, token.Percent:
		return PrecMultiplicative
	case token.LParen, token.LBracket, token.Dot, token.Inc, token.Dec:
		return PrecPostfix
	default:
		return PrecNone
	}
}

// isRightAssociative reports whether t associates right-to-left; only the
// ternary operator does among the operators fly supports (binary
// arithmetic/relational/bitwise operators are all left-associative).
func isRightAssociative(t token.Type) bool {
	return t == token.Question
}
