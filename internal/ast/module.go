package ast

import "github.com/fly-lang/flyc/internal/source"

// Comment is a lexed `//` or `/* */` comment retained for re-emission/
// documentation purposes; it is not part of the Visitor graph since no
// semantic stage needs to traverse into one.
type Comment struct {
	Span    source.Span
	Text    string
	IsBlock bool
}

// ModuleID is a dense, monotonically assigned identifier for one compiled
// module (one source file, after §3's "a module belongs to exactly one
// namespace" invariant). The caller of Parser.ParseModule supplies it (the
// compiler pipeline numbers modules in source order) and Factory.NewModule
// only stamps it; it is what modules.Set groups and orders by.
type ModuleID int

// Module is the parser's top-level output for one source file: the single
// namespace it declares itself in, its import/declaration list in source
// order, and the comments the lexer collected (for later attachment or
// pretty-printing — no semantic stage depends on this attachment).
type Module struct {
	ID        ModuleID
	Filename  string
	Namespace NamespaceDecl
	factory   *Factory
	decls     []NodeID
	Comments  []Comment
}

// Factory returns the arena this module's nodes were allocated from; the
// resolver and validator both need it to dereference NodeIDs found while
// walking this module.
func (m *Module) Factory() *Factory { return m.factory }

// Decls returns this module's top-level declarations as NodeIDs, in
// source order.
func (m *Module) Decls() []NodeID { return m.decls }

// DeclIDs is an alias kept for call sites that read better naming the
// result "ids" explicitly; Decls is the primary accessor.
func (m *Module) DeclIDs() []NodeID { return m.decls }
