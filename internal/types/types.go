// Package types is the resolved (post-validation) type descriptor model:
// primitives, integer/float families parameterised by width and
// signedness, arrays, and identities (class/struct/interface/enum),
// resolved by name from the symbol table rather than embedded in the AST.
package types

import "fmt"

// Kind discriminates the concrete Descriptor implementation without an
// exported method, the same unexported-kind() trick the teacher's type
// model uses to force callers through a type switch rather than a fragile
// string comparison.
type Kind int

const (
	KindInvalid Kind = iota
	KindVoid
	KindBool
	KindChar
	KindString
	KindInteger
	KindFloat
	KindError
	KindArray
	KindIdentity
	KindNull
	KindFunction
)

// Descriptor is any resolved fly type.
type Descriptor interface {
	String() string
	Equals(other Descriptor) bool
	// AssignableTo reports whether a value of this type may be assigned
	// (possibly with an implicit conversion, including §4.7's named
	// widenings: narrower-to-wider integer of the same signedness,
	// integer<->bool, integer to floating, null to identity) to a
	// location of type other. It answers ok/not-ok only — whether a given
	// widening additionally deserves a warning (as opposed to being
	// perfectly silent) is a question only the validator's convert()
	// answers, since "warn" is a diagnostics-reporting policy, not a
	// property of the types themselves. This is also the single gate the
	// resolver's overload selection filters candidates through, so it must
	// accept every conversion the language actually permits, not just
	// exact matches.
	AssignableTo(other Descriptor) bool
	kind() Kind
}

// simple is shared by the handful of descriptors with no fields of their
// own, to avoid repeating Equals/String boilerplate five times.
type simple struct {
	k    Kind
	name string
}

func (s simple) String() string              { return s.name }
func (s simple) kind() Kind                   { return s.k }
func (s simple) Equals(other Descriptor) bool { return other != nil && other.kind() == s.k }
func (s simple) AssignableTo(o Descriptor) bool {
	if s.k == KindVoid || s.k == KindInvalid {
		return false
	}
	if s.Equals(o) {
		return true
	}
	switch s.k {
	case KindBool:
		// bool widens to any integer, per §4.7's named implicit conversions.
		_, isInt := o.(Integer)
		return isInt
	case KindNull:
		// null is assignable to any identity (class/struct/interface/enum).
		_, isIdentity := o.(Identity)
		return isIdentity
	default:
		return false
	}
}

var (
	Invalid = simple{KindInvalid, "<invalid>"}
	Void    = simple{KindVoid, "void"}
	Bool    = simple{KindBool, "bool"}
	Char    = simple{KindChar, "char"}
	String  = simple{KindString, "string"}
	Error   = simple{KindError, "error"}
	Null    = simple{KindNull, "null"}
)

// Integer is the byte/short/ushort/int/uint/long/ulong family, a single
// parameterised descriptor rather than seven distinct Go types.
type Integer struct {
	BitWidth int // 8, 16, 32, 64
	Signed   bool
}

var (
	Byte   = Integer{8, true}
	UByte  = Integer{8, false}
	Short  = Integer{16, true}
	UShort = Integer{16, false}
	Int    = Integer{32, true}
	UInt   = Integer{32, false}
	Long   = Integer{64, true}
	ULong  = Integer{64, false}
)

func (i Integer) kind() Kind { return KindInteger }
func (i Integer) String() string {
	names := map[Integer]string{
		Byte: "byte", UByte: "ubyte", Short: "short", UShort: "ushort",
		Int: "int", UInt: "uint", Long: "long", ULong: "ulong",
	}
	if n, ok := names[i]; ok {
		return n
	}
	return fmt.Sprintf("int%d%s", i.BitWidth, signSuffix(i.Signed))
}
func (i Integer) Equals(other Descriptor) bool {
	o, ok := other.(Integer)
	return ok && o == i
}
// AssignableTo implements §4.7's integer conversion rules: a narrower
// integer widens silently to a wider one of the same signedness, an
// integer widens to any floating type, and an integer widens to bool in
// either direction (matched by Bool.AssignableTo above). Whether a given
// widening additionally deserves a warning is the validator's call, not
// this method's — see the Descriptor.AssignableTo doc comment.
func (i Integer) AssignableTo(other Descriptor) bool {
	switch o := other.(type) {
	case Integer:
		return i.Signed == o.Signed && i.BitWidth <= o.BitWidth
	case Float:
		return true
	default:
		return IsBoolean(other)
	}
}

func signSuffix(signed bool) string {
	if signed {
		return ""
	}
	return "u"
}

// Float is the float/double family.
type Float struct {
	BitWidth int // 32, 64
}

var (
	Float32 = Float{32}
	Float64 = Float{64}
)

func (f Float) kind() Kind { return KindFloat }
func (f Float) String() string {
	if f.BitWidth == 32 {
		return "float"
	}
	return "double"
}
func (f Float) Equals(other Descriptor) bool {
	o, ok := other.(Float)
	return ok && o == f
}
// AssignableTo reports whether any other floating type may receive this
// one; §4.7 warns rather than rejects regardless of direction (float/
// double has no narrowing-error case the way integer/integer does), so
// width is deliberately not compared here.
func (f Float) AssignableTo(other Descriptor) bool {
	_, ok := other.(Float)
	return ok
}

// Array is a fixed- or dynamic-size array of Elem. Size < 0 means dynamic.
type Array struct {
	Elem Descriptor
	Size int
}

func (a Array) kind() Kind { return KindArray }
func (a Array) String() string {
	if a.Size < 0 {
		return fmt.Sprintf("%s[]", a.Elem)
	}
	return fmt.Sprintf("%s[%d]", a.Elem, a.Size)
}
func (a Array) Equals(other Descriptor) bool {
	o, ok := other.(Array)
	return ok && o.Size == a.Size && a.Elem.Equals(o.Elem)
}
func (a Array) AssignableTo(other Descriptor) bool {
	o, ok := other.(Array)
	if !ok {
		return false
	}
	// A fixed-size array is assignable to a dynamic one of the same
	// element type; a dynamic array is only assignable to another dynamic
	// array (its length is not known at this type).
	if o.Size < 0 {
		return a.Elem.Equals(o.Elem)
	}
	return a.Size == o.Size && a.Elem.Equals(o.Elem)
}

// IdentityKind mirrors ast.ClassKind plus Enum, so a resolved Identity can
// say which shape it names without importing the ast package (types must
// stay acyclic with respect to ast: ast -> types -> nothing).
type IdentityKind int

const (
	IdentityStruct IdentityKind = iota
	IdentityClass
	IdentityInterface
	IdentityAbstract
	IdentityEnum
)

// Identity is a resolved reference to a user-declared class, struct,
// interface, or enum — by qualified name, not by AST pointer, so two
// Identity values from different modules compare equal when they name the
// same fully-qualified declaration (nominal typing, per spec.md §3 for
// named structs).
type Identity struct {
	QualifiedName string // "namespace::Name"
	IdentityKind  IdentityKind
}

func (i Identity) kind() Kind     { return KindIdentity }
func (i Identity) String() string { return i.QualifiedName }
func (i Identity) Equals(other Descriptor) bool {
	o, ok := other.(Identity)
	return ok && o.QualifiedName == i.QualifiedName
}
func (i Identity) AssignableTo(other Descriptor) bool {
	if o, ok := other.(Identity); ok {
		return o.QualifiedName == i.QualifiedName
	}
	return false
}

// Function is the resolved signature of a function or method overload: its
// source-visible parameter types, its return type (Void for a void
// function), and whether it carries the hidden error-handler parameter the
// resolver synthesizes for every fly function (§4.6) — true for every
// function the resolver produces; false is reserved for descriptors built
// before that synthesis runs, so an unresolved overload is never mistaken
// for a resolved one by a caller that forgets to check.
type Function struct {
	Params        []Descriptor
	Return        Descriptor
	HasErrorParam bool
}

func (f Function) kind() Kind { return KindFunction }
func (f Function) String() string {
	s := "("
	for i, p := range f.Params {
		if i > 0 {
			s += ", "
		}
		s += p.String()
	}
	s += ") -> " + f.Return.String()
	return s
}
func (f Function) Equals(other Descriptor) bool {
	o, ok := other.(Function)
	if !ok || len(o.Params) != len(f.Params) || !f.Return.Equals(o.Return) {
		return false
	}
	for i, p := range f.Params {
		if !p.Equals(o.Params[i]) {
			return false
		}
	}
	return true
}

// AssignableTo is never meaningful for a Function descriptor — fly has no
// function-value types, only call sites — so it always reports false.
func (f Function) AssignableTo(Descriptor) bool { return false }

// IsNumeric reports whether d is an Integer or Float descriptor.
func IsNumeric(d Descriptor) bool {
	switch d.(type) {
	case Integer, Float:
		return true
	default:
		return false
	}
}

// IsInteger reports whether d is an Integer descriptor.
func IsInteger(d Descriptor) bool {
	_, ok := d.(Integer)
	return ok
}

// IsComparable reports whether d supports == and !=.
func IsComparable(d Descriptor) bool {
	switch d.(type) {
	case Integer, Float:
		return true
	}
	switch d {
	case Descriptor(Bool), Descriptor(Char), Descriptor(String):
		return true
	}
	if _, ok := d.(Identity); ok {
		return true
	}
	return false
}

// IsOrdered reports whether d supports <, <=, >, >=.
func IsOrdered(d Descriptor) bool {
	switch d.(type) {
	case Integer, Float:
		return true
	}
	return d == Descriptor(Char)
}

// IsBoolean reports whether d is the bool descriptor.
func IsBoolean(d Descriptor) bool { return d == Descriptor(Bool) }

// WidthOf returns the bit width of an Integer or Float descriptor, or 0 for
// anything else — used by the validator's widen/narrow policy.
func WidthOf(d Descriptor) int {
	switch v := d.(type) {
	case Integer:
		return v.BitWidth
	case Float:
		return v.BitWidth
	default:
		return 0
	}
}
