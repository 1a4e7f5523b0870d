// Package token defines fly's closed lexical token set: every kind of
// lexeme the lexer can ever produce, plus the keyword/primitive-type tables
// used to classify identifiers.
package token

import "github.com/fly-lang/flyc/internal/source"

// Type identifies the lexical category of a Token. It is a plain int enum
// rather than a string so Token stays small and switches over it compile to
// jump tables.
type Type int

const (
	EOF Type = iota
	Invalid
	Comment

	// Literals.
	Number
	String
	Char
	Identifier

	// Keywords — control flow and declarations.
	Namespace
	Import
	As
	Public
	Private
	Protected
	Const
	Class
	Struct
	Interface
	Enum
	If
	Elsif
	Else
	Switch
	Case
	Default
	For
	While
	Break
	Continue
	Return
	New
	Delete
	Handle
	Fail
	True
	False
	Null

	// Primitive type names. These lex as keywords (not plain identifiers)
	// because the grammar needs to tell "int" from a user identifier before
	// any symbol table exists yet.
	KwBool
	KwChar
	KwString
	KwVoid
	KwError
	KwByte
	KwShort
	KwUShort
	KwInt
	KwUInt
	KwLong
	KwULong
	KwFloat
	KwDouble

	// Operators.
	Plus
	Minus
	Star
	Slash
	Percent
	Assign
	PlusAssign
	MinusAssign
	StarAssign
	SlashAssign
	Eq
	NotEq
	Less
	LessEq
	Greater
	GreaterEq
	And
	Or
	Not
	Amp
	Pipe
	Caret
	Tilde
	Shl
	Shr
	Inc
	Dec

	// Delimiters.
	LParen
	RParen
	LBrace
	RBrace
	LBracket
	RBracket
	Comma
	Dot
	Colon
	ColonColon
	Semicolon
	Question
	Arrow
	Ellipsis
)

// keywords maps every reserved word (control-flow keyword or primitive type
// name) to its Type. LookupKeyword consults this before an identifier scan
// is accepted as a plain Identifier.
var keywords = map[string]Type{
	"namespace": Namespace,
	"import":    Import,
	"as":        As,
	"public":    Public,
	"private":   Private,
	"protected": Protected,
	"const":     Const,
	"class":     Class,
	"struct":    Struct,
	"interface": Interface,
	"enum":      Enum,
	"if":        If,
	"elsif":     Elsif,
	"else":      Else,
	"switch":    Switch,
	"case":      Case,
	"default":   Default,
	"for":       For,
	"while":     While,
	"break":     Break,
	"continue":  Continue,
	"return":    Return,
	"new":       New,
	"delete":    Delete,
	"handle":    Handle,
	"fail":      Fail,
	"true":      True,
	"false":     False,
	"null":      Null,

	"bool":   KwBool,
	"char":   KwChar,
	"string": KwString,
	"void":   KwVoid,
	"error":  KwError,
	"byte":   KwByte,
	"short":  KwShort,
	"ushort": KwUShort,
	"int":    KwInt,
	"uint":   KwUInt,
	"long":   KwLong,
	"ulong":  KwULong,
	"float":  KwFloat,
	"double": KwDouble,
}

// LookupKeyword returns the keyword Type for lexeme, or (Identifier, false)
// if lexeme is a plain identifier.
func LookupKeyword(lexeme string) (Type, bool) {
	t, ok := keywords[lexeme]
	return t, ok
}

// IsPrimitiveType reports whether t names one of fly's built-in scalar
// types — used by the parser to recognise a type reference without a
// symbol-table lookup.
func IsPrimitiveType(t Type) bool {
	return t >= KwBool && t <= KwDouble
}

// Token is one lexeme: its category, its exact source text, and the span it
// occupies. Lexeme is kept verbatim (not decoded) for Number/String/Char;
// decoding (escape processing, numeric parsing) is the parser's job, not
// the lexer's, so the lexer never needs a type-dependent error path.
type Token struct {
	Type   Type
	Lexeme string
	Span   source.Span
}

// Pos is the token's starting position, the one most callers want.
func (t Token) Pos() source.Position { return t.Span.Start }

func (t Type) String() string {
	switch t {
	case EOF:
		return "EOF"
	case Invalid:
		return "invalid"
	case Comment:
		return "comment"
	case Number:
		return "number"
	case String:
		return "string"
	case Char:
		return "char"
	case Identifier:
		return "identifier"
	case Namespace:
		return "namespace"
	case Import:
		return "import"
	case As:
		return "as"
	case Public:
		return "public"
	case Private:
		return "private"
	case Protected:
		return "protected"
	case Const:
		return "const"
	case Class:
		return "class"
	case Struct:
		return "struct"
	case Interface:
		return "interface"
	case Enum:
		return "enum"
	case If:
		return "if"
	case Elsif:
		return "elsif"
	case Else:
		return "else"
	case Switch:
		return "switch"
	case Case:
		return "case"
	case Default:
		return "default"
	case For:
		return "for"
	case While:
		return "while"
	case Break:
		return "break"
	case Continue:
		return "continue"
	case Return:
		return "return"
	case New:
		return "new"
	case Delete:
		return "delete"
	case Handle:
		return "handle"
	case Fail:
		return "fail"
	case True:
		return "true"
	case False:
		return "false"
	case Null:
		return "null"
	case KwBool:
		return "bool"
	case KwChar:
		return "char"
	case KwString:
		return "string"
	case KwVoid:
		return "void"
	case KwError:
		return "error"
	case KwByte:
		return "byte"
	case KwShort:
		return "short"
	case KwUShort:
		return "ushort"
	case KwInt:
		return "int"
	case KwUInt:
		return "uint"
	case KwLong:
		return "long"
	case KwULong:
		return "ulong"
	case KwFloat:
		return "float"
	case KwDouble:
		return "double"
	case Plus:
		return "+"
	case Minus:
		return "-"
	case Star:
		return "*"
	case Slash:
		return "/"
	case Percent:
		return "%"
	case Assign:
		return "="
	case PlusAssign:
		return "+="
	case MinusAssign:
		return "-="
	case StarAssign:
		return "*="
	case SlashAssign:
		return "/="
	case Eq:
		return "=="
	case NotEq:
		return "!="
	case Less:
		return "<"
	case LessEq:
		return "<="
	case Greater:
		return ">"
	case GreaterEq:
		return ">="
	case And:
		return "&&"
	case Or:
		return "||"
	case Not:
		return "!"
	case Amp:
		return "&"
	case Pipe:
		return "|"
	case Caret:
		return "^"
	case Tilde:
		return "~"
	case Shl:
		return "<<"
	case Shr:
		return ">>"
	case Inc:
		return "++"
	case Dec:
		return "--"
	case LParen:
		return "("
	case RParen:
		return ")"
	case LBrace:
		return "{"
	case RBrace:
		return "}"
	case LBracket:
		return "["
	case RBracket:
		return "]"
	case Comma:
		return ","
	case Dot:
		return "."
	case Colon:
		return ":"
	case ColonColon:
		return "::"
	case Semicolon:
		return ";"
	case Question:
		return "?"
	case Arrow:
		return "->"
	case Ellipsis:
		return "..."
	default:
		return "unknown"
	}
}

// IsKeyword reports whether t is one of the reserved control-flow/declaration words.
func IsKeyword(t Type) bool {
	return t >= Namespace && t <= Null
}

// IsLiteral reports whether t is a literal token kind.
func IsLiteral(t Type) bool {
	switch t {
	case Number, String, Char, True, False, Null:
		return true
	default:
		return false
	}
}

// IsOperator reports whether t is an operator (not a delimiter or keyword).
func IsOperator(t Type) bool {
	return t >= Plus && t <= Dec
}
