package resolver

import (
	"github.com/fly-lang/flyc/internal/symtab"
	"github.com/fly-lang/flyc/internal/types"
)

// overloadCost scores how well candidate's declared parameter types match
// argTypes: 0 when every parameter is an exact type match, a positive value
// when some parameters need an implicit conversion, and a negative value
// when the candidate cannot accept these arguments at all. Lower is better.
// Every converted (or untyped) argument adds one fixed weight, larger than
// all width gaps together, so fewer implicit conversions always win; among
// candidates with the same number, each integer widening also adds the bit
// widths it crosses, so a `short` argument prefers `f(int)` to `f(long)`.
func overloadCost(candidate *symtab.Symbol, argTypes []types.Descriptor) int {
	fn, ok := candidate.Type.(types.Function)
	if !ok || len(fn.Params) != len(argTypes) {
		return -1
	}
	cost := 0
	weight := 64 * len(fn.Params) // each integer width gap is at most 56
	for i, param := range fn.Params {
		arg := argTypes[i]
		switch {
		case param == nil:
			return -1
		case arg == nil:
			// Argument type could not be inferred (e.g. a nested call whose
			// own overload did not resolve) — accept it provisionally
			// rather than rejecting the candidate outright; the validator
			// re-checks every call once full expression typing exists.
			cost += weight
		case param.Equals(arg):
			// exact match, no cost
		case arg.AssignableTo(param):
			cost += weight
			if types.IsInteger(arg) && types.IsInteger(param) {
				cost += types.WidthOf(param) - types.WidthOf(arg)
			}
		default:
			return -1
		}
	}
	return cost
}

// selectOverload picks the best-matching candidate among those already
// filtered by arity. Returns (nil, false, false) when none accept
// argTypes, (sym, false, true) on a unique winner, and (nil, true, true)
// when two or more candidates tie at the lowest cost — an ambiguous call.
func selectOverload(candidates []*symtab.Symbol, argTypes []types.Descriptor) (sym *symtab.Symbol, ambiguous bool, found bool) {
	best := -1
	var winners []*symtab.Symbol
	for _, c := range candidates {
		cost := overloadCost(c, argTypes)
		if cost < 0 {
			continue
		}
		switch {
		case best == -1 || cost < best:
			best = cost
			winners = []*symtab.Symbol{c}
		case cost == best:
			winners = append(winners, c)
		}
	}
	switch len(winners) {
	case 0:
		return nil, false, false
	case 1:
		return winners[0], false, true
	default:
		return nil, true, true
	}
}
