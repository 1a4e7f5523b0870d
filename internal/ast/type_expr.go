package ast

import "github.com/fly-lang/flyc/internal/token"

// TypeExpr is the syntactic shape of a type reference as written: either a
// primitive keyword, or a (possibly scope-qualified) identity name, or an
// array of another TypeExpr. It is deliberately not an arena Node — the
// grammar only ever needs it nested inside a declaration (variable, field,
// parameter, return type), never as a free-standing statement or
// expression, so it carries no NodeID and is not part of Visitor.
//
// Resolution from TypeExpr to a concrete types.Descriptor happens in the
// resolver, once identities are known; the parser only records what was
// written.
type TypeExpr struct {
	// Primitive is the primitive keyword token (token.KwInt, token.KwVoid,
	// ...) when this TypeExpr names a built-in scalar, or token.Invalid
	// otherwise.
	Primitive token.Type

	// Name is the dotted/`::`-qualified identity name when Primitive is
	// token.Invalid — e.g. ["geometry", "Point"] for `geometry::Point`.
	Name []string

	// Elem is non-nil when this TypeExpr is an array of another type.
	Elem *TypeExpr

	// Size is the fixed array length expression, or NoNode for a dynamic
	// (slice-like) array — `int[]` vs `int[4]`.
	Size NodeID
}

// IsArray reports whether t names an array type.
func (t *TypeExpr) IsArray() bool { return t != nil && t.Elem != nil }

// IsPrimitive reports whether t names a built-in scalar type.
func (t *TypeExpr) IsPrimitive() bool { return t != nil && t.Primitive != token.Invalid }
