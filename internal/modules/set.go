// Package modules groups compiled modules by the namespace each declares
// itself in, and hands the resolver a stable, dense ordering to walk.
package modules

import (
	"sort"

	"github.com/fly-lang/flyc/internal/ast"
)

// Namespace is every module that declared itself a member of the same
// `namespace foo::bar;` path, keyed by its joined name ("foo::bar").
type Namespace struct {
	Name    string
	Modules []*ast.Module
}

// Set is the whole compile job's module collection: every *ast.Module
// built by the parser, grouped into Namespaces, plus a flat Modules() view
// in module-id order (the order compiler.Pipeline built them in).
type Set struct {
	byID        map[ast.ModuleID]*ast.Module
	namespaces  map[string]*Namespace
	nsOrder     []string
	moduleOrder []ast.ModuleID
}

// NewSet returns an empty Set.
func NewSet() *Set {
	return &Set{
		byID:       make(map[ast.ModuleID]*ast.Module),
		namespaces: make(map[string]*Namespace),
	}
}

// Add registers m, grouping it under its declared namespace. Add must be
// called in module-id order; the resolver/validator run single-threaded
// after every module has been parsed, so this is never called concurrently.
func (s *Set) Add(m *ast.Module) {
	s.byID[m.ID] = m
	s.moduleOrder = append(s.moduleOrder, m.ID)

	name := joinParts(m.Namespace.Parts)
	ns, ok := s.namespaces[name]
	if !ok {
		ns = &Namespace{Name: name}
		s.namespaces[name] = ns
		s.nsOrder = append(s.nsOrder, name)
	}
	ns.Modules = append(ns.Modules, m)
}

// Modules returns every module in module-id order.
func (s *Set) Modules() []*ast.Module {
	out := make([]*ast.Module, 0, len(s.moduleOrder))
	for _, id := range s.moduleOrder {
		out = append(out, s.byID[id])
	}
	return out
}

// ModuleByID looks up a module by its ModuleID, or returns (nil, false).
func (s *Set) ModuleByID(id ast.ModuleID) (*ast.Module, bool) {
	m, ok := s.byID[id]
	return m, ok
}

// Namespaces returns every namespace this Set has seen, in first-declared
// order — deterministic across runs for the same input order.
func (s *Set) Namespaces() []*Namespace {
	out := make([]*Namespace, 0, len(s.nsOrder))
	for _, name := range s.nsOrder {
		out = append(out, s.namespaces[name])
	}
	return out
}

// Namespace looks up a namespace by its joined name ("foo::bar").
func (s *Set) Namespace(name string) (*Namespace, bool) {
	ns, ok := s.namespaces[name]
	return ns, ok
}

// SortedNamespaceNames is a convenience for deterministic printing/testing
// when declaration order does not matter to the caller.
func (s *Set) SortedNamespaceNames() []string {
	names := make([]string, 0, len(s.nsOrder))
	for name := range s.namespaces {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func joinParts(parts []string) string {
	out := ""
	for i, p := range parts {
		if i > 0 {
			out += "::"
		}
		out += p
	}
	return out
}
