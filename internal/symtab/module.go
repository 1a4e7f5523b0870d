package symtab

// ImportBinding is one resolved `import foo::bar [as alias];` — the
// namespace it names plus the alias it was given, if any.
type ImportBinding struct {
	NamespaceName string
	Alias         string
}

// ModuleTable is the per-module import table spec.md calls for: the list
// of namespaces this module imports, and the subset given an explicit
// alias. Aliases are per-module only — two modules in the same namespace
// may alias the same import differently, so this table is never shared.
type ModuleTable struct {
	Imports      []ImportBinding
	AliasImports map[string]string // alias -> namespace name
}

// NewModuleTable returns an empty ModuleTable.
func NewModuleTable() *ModuleTable {
	return &ModuleTable{AliasImports: make(map[string]string)}
}

// AddImport registers one import binding, recording its alias if present.
func (t *ModuleTable) AddImport(namespaceName, alias string) {
	t.Imports = append(t.Imports, ImportBinding{NamespaceName: namespaceName, Alias: alias})
	if alias != "" {
		t.AliasImports[alias] = namespaceName
	}
}

// ResolveAlias returns the namespace name an alias refers to, if any.
func (t *ModuleTable) ResolveAlias(alias string) (string, bool) {
	ns, ok := t.AliasImports[alias]
	return ns, ok
}

// ImportsNamespace reports whether this module imports namespaceName,
// with or without an alias.
func (t *ModuleTable) ImportsNamespace(namespaceName string) bool {
	for _, imp := range t.Imports {
		if imp.NamespaceName == namespaceName {
			return true
		}
	}
	return false
}
