package symtab

// OverloadSet buckets a single function (or method) name's declarations by
// arity — the flattened overload model spec.md's design notes ask for,
// replacing a single linked list of candidates with an arity-indexed map so
// resolution only ever compares candidates that could possibly match.
type OverloadSet struct {
	Name    string
	ByArity map[int][]*Symbol
}

// NewOverloadSet returns an empty OverloadSet named name.
func NewOverloadSet(name string) *OverloadSet {
	return &OverloadSet{Name: name, ByArity: make(map[int][]*Symbol)}
}

// Add registers sym (a SymbolFunction Symbol whose Type is a
// types... function descriptor carrying its parameter count) under arity.
func (o *OverloadSet) Add(arity int, sym *Symbol) {
	o.ByArity[arity] = append(o.ByArity[arity], sym)
}

// Candidates returns every overload declared with exactly arity parameters
// (the hidden error parameter is not counted here — arity is always the
// source-visible parameter count).
func (o *OverloadSet) Candidates(arity int) []*Symbol {
	return o.ByArity[arity]
}

// NamespaceTable is the symbol table for one namespace: its global
// variables/constants, its function overload sets, and its identities
// (classes, structs, interfaces, enums) — the three buckets spec.md's
// namespace-scoped symbol table calls for.
type NamespaceTable struct {
	Name       string
	Globals    map[string]*Symbol
	Functions  map[string]*OverloadSet
	Identities map[string]*Symbol
}

// NewNamespaceTable returns an empty table for the namespace named name.
func NewNamespaceTable(name string) *NamespaceTable {
	return &NamespaceTable{
		Name:       name,
		Globals:    make(map[string]*Symbol),
		Functions:  make(map[string]*OverloadSet),
		Identities: make(map[string]*Symbol),
	}
}

// DefineGlobal registers a global variable/constant, reporting a collision
// against an existing global OR an identity/function of the same name —
// fly does not allow a global to shadow a sibling declaration of any kind
// within one namespace.
func (t *NamespaceTable) DefineGlobal(sym *Symbol) bool {
	if t.hasAnyTopLevel(sym.Name) {
		return false
	}
	t.Globals[sym.Name] = sym
	return true
}

// DefineIdentity registers a class/struct/interface/enum.
func (t *NamespaceTable) DefineIdentity(sym *Symbol) bool {
	if t.hasAnyTopLevel(sym.Name) {
		return false
	}
	t.Identities[sym.Name] = sym
	return true
}

// DefineFunction registers one overload of a function; duplicate-name
// collisions against a global/identity are rejected the same way, but
// multiple functions sharing a name are expected (that is the overload
// set) and signature uniqueness (no two overloads with the same arity and
// parameter types) is checked later by the validator, once every
// overload's signature is known.
func (t *NamespaceTable) DefineFunction(arity int, sym *Symbol) bool {
	if _, clash := t.Globals[sym.Name]; clash {
		return false
	}
	if _, clash := t.Identities[sym.Name]; clash {
		return false
	}
	set, ok := t.Functions[sym.Name]
	if !ok {
		set = NewOverloadSet(sym.Name)
		t.Functions[sym.Name] = set
	}
	set.Add(arity, sym)
	return true
}

func (t *NamespaceTable) hasAnyTopLevel(name string) bool {
	if _, ok := t.Globals[name]; ok {
		return true
	}
	if _, ok := t.Identities[name]; ok {
		return true
	}
	if _, ok := t.Functions[name]; ok {
		return true
	}
	return false
}

// LookupGlobal looks up a global variable/constant by its unqualified name.
func (t *NamespaceTable) LookupGlobal(name string) (*Symbol, bool) {
	sym, ok := t.Globals[name]
	return sym, ok
}

// LookupIdentity looks up a class/struct/interface/enum by its unqualified
// name.
func (t *NamespaceTable) LookupIdentity(name string) (*Symbol, bool) {
	sym, ok := t.Identities[name]
	return sym, ok
}

// LookupFunction returns the overload set for name, if any is declared.
func (t *NamespaceTable) LookupFunction(name string) (*OverloadSet, bool) {
	set, ok := t.Functions[name]
	return set, ok
}
