package resolver

import (
	"github.com/fly-lang/flyc/internal/diagnostics"
	"github.com/fly-lang/flyc/internal/symtab"
	"github.com/fly-lang/flyc/internal/types"
)

// linkInheritance walks every class's superclass/interface chain, copying
// inherited fields (struct inheritance) and method signatures (interface
// implementation) down into the subclass's ClassTable. Classes are taken in
// map order; within one class the superclass comes first and then each
// interface left to right, each parent linked depth-first before its
// members are copied. A cycle is a hard error, reported once, naming the
// class the walk re-enters while that class is still being linked; the
// walk does not recurse into it again, so it terminates, and members
// already copied between the classes of the cycle stay in place.
func (r *Resolver) linkInheritance() {
	state := make(map[string]int) // 0 unvisited, 1 visiting, 2 done
	for qualified := range r.result.ClassTables {
		r.linkOne(qualified, state)
	}
}

func (r *Resolver) linkOne(qualified string, state map[string]int) {
	if state[qualified] == 2 {
		return
	}
	if state[qualified] == 1 {
		diagnostics.Error(r.sink, r.classPos[qualified], diagnostics.KindInheritanceCycle,
			"inheritance cycle involving %q", qualified)
		return
	}
	state[qualified] = 1
	ct := r.result.ClassTables[qualified]

	if ct.SuperClass != nil {
		r.linkParent(ct, ct.SuperClass, state)
	}
	for _, iface := range ct.Interfaces {
		r.linkParent(ct, iface, state)
	}
	state[qualified] = 2
}

func (r *Resolver) linkParent(sub *symtab.ClassTable, parentSym *symtab.Symbol, state map[string]int) {
	ident, ok := parentSym.Type.(types.Identity)
	if !ok {
		return
	}
	parent, ok := r.result.ClassTables[ident.QualifiedName]
	if !ok {
		return
	}
	r.linkOne(ident.QualifiedName, state)
	copyInherited(sub, parent)
}

// copyInherited adds every field/method of parent that sub does not already
// declare or inherit from an earlier ancestor (left-to-right, depth-first —
// diamond inheritance keeps whichever ancestor was linked first).
func copyInherited(sub, parent *symtab.ClassTable) {
	for name, field := range parent.Fields {
		if _, exists := sub.Fields[name]; !exists {
			sub.Fields[name] = field
		}
	}
	for name, parentSet := range parent.Methods {
		subSet, exists := sub.Methods[name]
		if !exists {
			sub.Methods[name] = parentSet
			continue
		}
		for arity, overloads := range parentSet.ByArity {
			if len(subSet.Candidates(arity)) == 0 {
				subSet.ByArity[arity] = overloads
			}
		}
	}
}
