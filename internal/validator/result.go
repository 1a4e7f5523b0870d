// Package validator is the second and final semantic pass: given a
// modules.Set and the resolver's bindings, it computes and checks every
// expression's type, enforces control-flow well-formedness, visibility,
// constness, and class contracts, and folds compile-time constants where
// the grammar requires one (switch case labels). It never mutates the AST
// or the resolver's Result, mirroring the resolver's own side-table design.
package validator

import (
	"github.com/fly-lang/flyc/internal/ast"
	"github.com/fly-lang/flyc/internal/types"
)

// Result holds the validator's only output: the final computed type of
// every expression node it was able to type. A missing entry means the
// node's type could not be determined because of an earlier error, not
// that it is untyped.
type Result struct {
	Types map[ast.NodeID]types.Descriptor
}

func newResult() *Result {
	return &Result{Types: make(map[ast.NodeID]types.Descriptor)}
}
