package validator

import (
	"github.com/fly-lang/flyc/internal/ast"
	"github.com/fly-lang/flyc/internal/types"
)

// convert reports whether a value of type from may be used where a value
// of type to is expected, either as an exact match or via one of §4.7's
// named implicit conversions, and whether doing so deserves a warning.
// from.AssignableTo(to) is the single source of truth for whether a
// conversion is permitted at all (the resolver's overload selection asks
// it the same question); this function only adds the warn/silent split
// §4.7 layers on top of that same yes/no answer.
func convert(from, to types.Descriptor) (ok bool, warn bool) {
	if from == nil || to == nil {
		return false, false
	}
	if to.Equals(from) {
		return true, false
	}
	if !from.AssignableTo(to) {
		return false, false
	}

	fi, fIsInt := from.(types.Integer)
	ti, tIsInt := to.(types.Integer)
	if fIsInt && tIsInt && fi.Signed == ti.Signed && fi.BitWidth <= ti.BitWidth {
		return true, false // narrower -> wider integer of the same signedness, silently
	}
	if types.IsBoolean(from) && tIsInt {
		return true, false
	}
	if fIsInt && types.IsBoolean(to) {
		return true, false
	}
	if from.Equals(types.Null) {
		return true, false // null -> identity, silently
	}

	// Whatever is left that AssignableTo still permitted is a widening
	// that does deserve a warning: integer -> floating, or floating ->
	// floating (floating -> integer is excluded entirely — neither
	// Integer.AssignableTo nor Float.AssignableTo ever permits it, since
	// this surface grammar has no cast expression to make that narrowing
	// intent explicit).
	return true, true
}

// widerOf returns whichever of a, b has the greater bit width — the result
// type §4.7 assigns to a binary arithmetic expression over mixed-width
// numeric operands. Ties keep a.
func widerOf(a, b types.Descriptor) types.Descriptor {
	if types.WidthOf(b) > types.WidthOf(a) {
		return b
	}
	return a
}

// binaryResultType computes the result type of a non-logical binary
// operator given its already-typed operands, or (nil, false) when the
// operator cannot apply to these operand types.
func binaryResultType(op ast.BinaryOp, left, right types.Descriptor) (types.Descriptor, bool) {
	if left == nil || right == nil {
		return nil, false
	}
	switch op {
	case ast.BinAdd, ast.BinSub, ast.BinMul, ast.BinDiv, ast.BinMod:
		if !types.IsNumeric(left) || !types.IsNumeric(right) {
			return nil, false
		}
		return widerOf(left, right), true
	case ast.BinEq, ast.BinNotEq:
		if types.IsNumeric(left) && types.IsNumeric(right) {
			return types.Bool, true
		}
		if types.IsComparable(left) && left.Equals(right) {
			return types.Bool, true
		}
		return nil, false
	case ast.BinLess, ast.BinLessEq, ast.BinGreater, ast.BinGreaterEq:
		if !types.IsOrdered(left) || !types.IsOrdered(right) {
			return nil, false
		}
		return types.Bool, true
	case ast.BinBitAnd, ast.BinBitOr, ast.BinBitXor, ast.BinShl, ast.BinShr:
		if !types.IsInteger(left) || !types.IsInteger(right) {
			return nil, false
		}
		return widerOf(left, right), true
	default:
		return nil, false
	}
}

// unaryResultType computes the result type of a unary operator given its
// already-typed operand, or (nil, false) when the operator cannot apply.
func unaryResultType(op ast.UnaryOp, operand types.Descriptor) (types.Descriptor, bool) {
	if operand == nil {
		return nil, false
	}
	switch op {
	case ast.UnaryNot:
		if !types.IsBoolean(operand) {
			return nil, false
		}
		return types.Bool, true
	case ast.UnaryNeg:
		if !types.IsNumeric(operand) {
			return nil, false
		}
		return operand, true
	case ast.UnaryBitNot:
		if !types.IsInteger(operand) {
			return nil, false
		}
		return operand, true
	case ast.UnaryPreInc, ast.UnaryPreDec, ast.UnaryPostInc, ast.UnaryPostDec:
		if !types.IsNumeric(operand) {
			return nil, false
		}
		return operand, true
	default:
		return nil, false
	}
}
