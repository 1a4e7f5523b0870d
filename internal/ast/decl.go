package ast

import "github.com/fly-lang/flyc/internal/source"

// Visibility enumerates fly's three explicit access levels plus the
// unmarked default, which the validator treats like public everywhere.
type Visibility int

const (
	VisibilityDefault Visibility = iota
	VisibilityPublic
	VisibilityPrivate
	VisibilityProtected
)

// NamespaceDecl names the single namespace a module belongs to —
// `namespace foo::bar;` — appearing at most once, first, in a module.
type NamespaceDecl struct {
	Parts []string
	span  source.Span
}

func (n *NamespaceDecl) Span() source.Span { return n.span }

// ImportDecl is `import foo::bar [as alias];`. Alias is "" when absent.
type ImportDecl struct {
	Parts []string
	Alias string
	span  source.Span
}

func (n *ImportDecl) Span() source.Span { return n.span }
func (*ImportDecl) stmtNode()           {}
func (*ImportDecl) topDefNode()         {}

// VariableDecl is a top-level (namespace-scope) global variable or
// constant declaration.
type VariableDecl struct {
	Name       string
	Type       *TypeExpr
	Init       NodeID
	Constant   bool
	Visibility Visibility
	span       source.Span
}

func (n *VariableDecl) Span() source.Span { return n.span }
func (*VariableDecl) stmtNode()           {}
func (*VariableDecl) topDefNode()         {}

// Param is one function/method parameter.
type Param struct {
	Name string
	Type *TypeExpr
}

// FunctionDecl is a top-level or class-member function. The node carries no
// owner: a method is known as one only by appearing in ClassDecl.Methods
// (or ClassDecl.Constructor), and shares this same node type so the
// resolver's overload-set construction logic is identical for both.
//
// The hidden error-handler parameter described for every fly function is
// never present here: the parser never writes it, and the resolver injects
// it into the function's FunctionType/overload-set entry, never into this
// AST node, keeping the untyped AST a faithful rendering of the source.
type FunctionDecl struct {
	Name       string
	Params     []Param
	ReturnType *TypeExpr // nil means void
	Body       NodeID    // BlockStmt, or NoNode for an interface method signature
	Visibility Visibility
	Static     bool
	span       source.Span
}

func (n *FunctionDecl) Span() source.Span { return n.span }
func (*FunctionDecl) stmtNode()           {}
func (*FunctionDecl) topDefNode()         {}

// ClassKind enumerates fly's four identity shapes: a plain data struct, a
// standard class, an interface (method signatures only, no bodies, no
// fields), and an abstract class (may mix bodies and signature-only
// methods) — the fourth kind the original compiler's AST carries beyond
// what a struct/class/interface split alone would need.
type ClassKind int

const (
	ClassStruct ClassKind = iota
	ClassStandard
	ClassInterface
	ClassAbstract
)

// Field is one data member of a class/struct.
type Field struct {
	Name       string
	Type       *TypeExpr
	Visibility Visibility
	Span       source.Span
}

// ClassDecl is a struct/class/interface/abstract-class declaration.
// Methods are grouped by name below the resolver's arity-bucketed overload
// sets; here they are simply the declaration order the parser saw.
type ClassDecl struct {
	Name        string
	Kind        ClassKind
	SuperClass  []string // identity name of the base class/interface, or nil
	Interfaces  [][]string
	Fields      []Field
	Methods     []NodeID // FunctionDecl NodeIDs
	Constructor NodeID   // FunctionDecl NodeID (explicit or synthesized default); NoNode for interfaces
	Visibility  Visibility
	span        source.Span
}

func (n *ClassDecl) Span() source.Span { return n.span }
func (*ClassDecl) stmtNode()           {}
func (*ClassDecl) topDefNode()         {}

// EnumEntry is one `Name [= value]` member of an enum.
type EnumEntry struct {
	Name  string
	Value NodeID // explicit constant expression, or NoNode for auto-increment
	Span  source.Span
}

// EnumDecl is an enum declaration; SuperClasses lets an enum also
// contribute methods/fields the way the original language's AST allows
// (enum ident (':' ident+)?).
type EnumDecl struct {
	Name       string
	SuperClass [][]string
	Entries    []EnumEntry
	Visibility Visibility
	span       source.Span
}

func (n *EnumDecl) Span() source.Span { return n.span }
func (*EnumDecl) stmtNode()           {}
func (*EnumDecl) topDefNode()         {}
