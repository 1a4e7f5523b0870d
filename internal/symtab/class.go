package symtab

// ClassTable is the per-class symbol table: its field map and its
// method overload sets, plus the resolved link to its superclass (if any).
// Interfaces populate Methods with signature-only symbols (their Type is
// known, their Decl's FunctionDecl.Body is ast.NoNode).
type ClassTable struct {
	Name       string
	Fields     map[string]*Symbol
	Methods    map[string]*OverloadSet
	SuperClass *Symbol   // Identity symbol, or nil
	Interfaces []*Symbol // Identity symbols this class implements
}

// NewClassTable returns an empty table for the class/struct/interface
// named name.
func NewClassTable(name string) *ClassTable {
	return &ClassTable{
		Name:    name,
		Fields:  make(map[string]*Symbol),
		Methods: make(map[string]*OverloadSet),
	}
}

// DefineField registers a field, rejecting a name collision against an
// existing field or method.
func (t *ClassTable) DefineField(sym *Symbol) bool {
	if _, clash := t.Fields[sym.Name]; clash {
		return false
	}
	if _, clash := t.Methods[sym.Name]; clash {
		return false
	}
	t.Fields[sym.Name] = sym
	return true
}

// DefineMethod registers one overload of a method.
func (t *ClassTable) DefineMethod(arity int, sym *Symbol) bool {
	if _, clash := t.Fields[sym.Name]; clash {
		return false
	}
	set, ok := t.Methods[sym.Name]
	if !ok {
		set = NewOverloadSet(sym.Name)
		t.Methods[sym.Name] = set
	}
	set.Add(arity, sym)
	return true
}

// LookupField looks in t only, not any superclass — inherited fields are
// found here only because the resolver's inheritance pass copies them into
// t (it has the full class-table-by-qualified-name map); ClassTable itself
// stays a flat container.
func (t *ClassTable) LookupField(name string) (*Symbol, bool) {
	sym, ok := t.Fields[name]
	return sym, ok
}

// LookupMethod looks in t only; see LookupField for the inheritance note.
func (t *ClassTable) LookupMethod(name string) (*OverloadSet, bool) {
	set, ok := t.Methods[name]
	return set, ok
}
