package resolver

import (
	"strings"

	"github.com/fly-lang/flyc/internal/ast"
	"github.com/fly-lang/flyc/internal/diagnostics"
	"github.com/fly-lang/flyc/internal/modules"
	"github.com/fly-lang/flyc/internal/source"
	"github.com/fly-lang/flyc/internal/symtab"
	"github.com/fly-lang/flyc/internal/types"
)

// Resolver runs the full name/type-reference binding pass over a
// modules.Set. Construct one per compile job; it is not reusable across
// jobs since its tables accumulate state as Run progresses.
type Resolver struct {
	sink diagnostics.Sink

	set      *modules.Set
	result   *Result
	moduleNS map[ast.ModuleID]string    // which namespace each module belongs to
	classPos map[string]source.Position // qualified class/enum name -> declaration site
}

// New creates a Resolver reporting through sink.
func New(sink diagnostics.Sink) *Resolver {
	return &Resolver{
		sink:     sink,
		moduleNS: make(map[ast.ModuleID]string),
		classPos: make(map[string]source.Position),
	}
}

// Run executes every resolution pass over set, in the order §4.5
// specifies, and returns the accumulated bindings. Passes run even after
// earlier ones report errors — partial resolution still lets later passes
// (and the validator) find more problems in one run, the same
// collect-everything philosophy the parser's panic-mode recovery serves.
func (r *Resolver) Run(set *modules.Set) *Result {
	r.set = set
	r.result = newResult()

	r.assembleNamespaces()
	r.declareSymbols()
	r.resolveImports()
	r.resolveSignatures()
	r.linkInheritance()
	r.resolveBodies()

	return r.result
}

func qualify(namespace, name string) string {
	if namespace == "" {
		return name
	}
	return namespace + "::" + name
}

func joinIdentPath(parts []string) string { return strings.Join(parts, "::") }

// --- pass 1: namespace assembly -----------------------------------------

func (r *Resolver) assembleNamespaces() {
	for _, mod := range r.set.Modules() {
		name := joinIdentPath(mod.Namespace.Parts)
		if name == "" {
			name = "default"
		}
		r.moduleNS[mod.ID] = name
		if _, ok := r.result.Namespaces[name]; !ok {
			r.result.Namespaces[name] = symtab.NewNamespaceTable(name)
		}
		r.result.ModuleTables[mod.ID] = symtab.NewModuleTable()
	}
}

// --- pass 2: declare every top-level name --------------------------------

func (r *Resolver) declareSymbols() {
	for _, mod := range r.set.Modules() {
		ns := r.result.Namespaces[r.moduleNS[mod.ID]]
		f := mod.Factory()
		for _, id := range mod.Decls() {
			switch f.KindOf(id) {
			case ast.KindVariableDecl:
				r.declareGlobal(f, id, ns)
			case ast.KindFunctionDecl:
				r.declareFunction(f, id, ns, nil)
			case ast.KindClassDecl:
				r.declareClass(mod, f, id, ns)
			case ast.KindEnumDecl:
				r.declareEnum(f, id, ns)
			}
		}
	}
}

func (r *Resolver) declareGlobal(f *ast.Factory, id ast.NodeID, ns *symtab.NamespaceTable) {
	v := f.VariableDecl(id)
	sym := &symtab.Symbol{
		Name: v.Name, Kind: symtab.SymbolVariable, Pos: v.Span().Start,
		Constant: v.Constant, Visibility: v.Visibility, Decl: id,
	}
	if !ns.DefineGlobal(sym) {
		r.duplicateDecl(v.Span().Start, v.Name)
	}
}

func (r *Resolver) declareFunction(f *ast.Factory, id ast.NodeID, ns *symtab.NamespaceTable, ct *symtab.ClassTable) {
	fn := f.FunctionDecl(id)
	sym := &symtab.Symbol{
		Name: fn.Name, Kind: symtab.SymbolFunction, Pos: fn.Span().Start,
		Visibility: fn.Visibility, Decl: id,
	}
	arity := len(fn.Params)
	if ct != nil {
		if !ct.DefineMethod(arity, sym) {
			r.duplicateDecl(fn.Span().Start, fn.Name)
		}
		return
	}
	if !ns.DefineFunction(arity, sym) {
		r.duplicateDecl(fn.Span().Start, fn.Name)
	}
}

func (r *Resolver) declareClass(mod *ast.Module, f *ast.Factory, id ast.NodeID, ns *symtab.NamespaceTable) {
	cd := f.ClassDecl(id)
	qualified := qualify(ns.Name, cd.Name)
	idKind := identityKindOf(cd.Kind)
	sym := &symtab.Symbol{
		Name: cd.Name, Kind: symtab.SymbolIdentity, Pos: cd.Span().Start,
		Visibility: cd.Visibility, Decl: id,
		Type: types.Identity{QualifiedName: qualified, IdentityKind: idKind},
	}
	if !ns.DefineIdentity(sym) {
		r.duplicateDecl(cd.Span().Start, cd.Name)
		return
	}

	ct := symtab.NewClassTable(cd.Name)
	r.result.ClassTables[qualified] = ct
	r.classPos[qualified] = cd.Span().Start
	for _, field := range cd.Fields {
		fieldSym := &symtab.Symbol{
			Name: field.Name, Kind: symtab.SymbolField, Pos: field.Span.Start,
			Visibility: field.Visibility,
		}
		if !ct.DefineField(fieldSym) {
			r.duplicateDecl(field.Span.Start, field.Name)
		}
	}
	for _, methodID := range cd.Methods {
		r.declareFunction(f, methodID, nil, ct)
	}
	if cd.Constructor != ast.NoNode {
		ctor := f.FunctionDecl(cd.Constructor)
		ct.DefineMethod(len(ctor.Params), &symtab.Symbol{
			Name: ctor.Name, Kind: symtab.SymbolFunction, Pos: ctor.Span().Start,
			Visibility: ctor.Visibility, Decl: cd.Constructor,
		})
	}
}

func (r *Resolver) declareEnum(f *ast.Factory, id ast.NodeID, ns *symtab.NamespaceTable) {
	ed := f.EnumDecl(id)
	qualified := qualify(ns.Name, ed.Name)
	sym := &symtab.Symbol{
		Name: ed.Name, Kind: symtab.SymbolIdentity, Pos: ed.Span().Start,
		Visibility: ed.Visibility, Decl: id,
		Type: types.Identity{QualifiedName: qualified, IdentityKind: types.IdentityEnum},
	}
	if !ns.DefineIdentity(sym) {
		r.duplicateDecl(ed.Span().Start, ed.Name)
		return
	}
	ct := symtab.NewClassTable(ed.Name)
	r.result.ClassTables[qualified] = ct
	r.classPos[qualified] = ed.Span().Start
	for i, entry := range ed.Entries {
		entrySym := &symtab.Symbol{
			Name: entry.Name, Kind: symtab.SymbolEnumEntry, Pos: entry.Span.Start,
			Index: i, Type: types.Identity{QualifiedName: qualified, IdentityKind: types.IdentityEnum},
		}
		ct.DefineField(entrySym)
	}
}

func identityKindOf(k ast.ClassKind) types.IdentityKind {
	switch k {
	case ast.ClassStruct:
		return types.IdentityStruct
	case ast.ClassInterface:
		return types.IdentityInterface
	case ast.ClassAbstract:
		return types.IdentityAbstract
	default:
		return types.IdentityClass
	}
}

func (r *Resolver) duplicateDecl(pos source.Position, name string) {
	diagnostics.Error(r.sink, pos, diagnostics.KindDuplicateDecl, "%q is already declared in this scope", name)
}

// --- pass 3: import resolution -------------------------------------------

func (r *Resolver) resolveImports() {
	for _, mod := range r.set.Modules() {
		mt := r.result.ModuleTables[mod.ID]
		f := mod.Factory()
		for _, id := range mod.Decls() {
			if f.KindOf(id) != ast.KindImportDecl {
				continue
			}
			imp := f.ImportDecl(id)
			name := joinIdentPath(imp.Parts)
			if _, ok := r.result.Namespaces[name]; !ok {
				diagnostics.Error(r.sink, imp.Span().Start, diagnostics.KindUnresolvedRef,
					"unresolved import %q", name)
				continue
			}
			mt.AddImport(name, imp.Alias)
		}
	}
}
