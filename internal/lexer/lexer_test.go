package lexer

import (
	"testing"

	"github.com/fly-lang/flyc/internal/source"
	"github.com/fly-lang/flyc/internal/token"
)

func scanAll(t *testing.T, text string) []token.Token {
	t.Helper()
	l := New(source.New("test.fly", text))
	var toks []token.Token
	for {
		tok := l.NextToken()
		toks = append(toks, tok)
		if tok.Type == token.EOF {
			return toks
		}
	}
}

func TestLexer_Keywords(t *testing.T) {
	toks := scanAll(t, "namespace import class struct interface enum handle fail")
	want := []token.Type{
		token.Namespace, token.Import, token.Class, token.Struct,
		token.Interface, token.Enum, token.Handle, token.Fail, token.EOF,
	}
	if len(toks) != len(want) {
		t.Fatalf("got %d tokens, want %d", len(toks), len(want))
	}
	for i, tt := range want {
		if toks[i].Type != tt {
			t.Errorf("token %d: got %s, want %s", i, toks[i].Type, tt)
		}
	}
}

func TestLexer_PrimitiveTypes(t *testing.T) {
	toks := scanAll(t, "bool byte ushort uint ulong double error")
	for _, tok := range toks {
		if tok.Type == token.EOF {
			continue
		}
		if !token.IsPrimitiveType(tok.Type) {
			t.Errorf("%q: expected primitive type token, got %s", tok.Lexeme, tok.Type)
		}
	}
}

func TestLexer_Numbers(t *testing.T) {
	tests := []struct {
		name   string
		source string
	}{
		{"decimal", "123"},
		{"float", "3.14"},
		{"exponent", "1.5e10"},
		{"negative exponent", "1e-3"},
		{"hex", "0xFF"},
		{"octal", "0o17"},
		{"binary", "0b1010"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			toks := scanAll(t, tt.source)
			if len(toks) != 2 || toks[0].Type != token.Number {
				t.Fatalf("scanning %q: got %v", tt.source, toks)
			}
			if toks[0].Lexeme != tt.source {
				t.Errorf("lexeme = %q, want %q", toks[0].Lexeme, tt.source)
			}
		})
	}
}

func TestLexer_InvalidExponentBacksOut(t *testing.T) {
	toks := scanAll(t, "1e")
	if toks[0].Type != token.Number || toks[0].Lexeme != "1" {
		t.Fatalf("got %v, want Number(1)", toks[0])
	}
	if toks[1].Type != token.Identifier || toks[1].Lexeme != "e" {
		t.Fatalf("got %v, want Identifier(e)", toks[1])
	}
}

func TestLexer_StringAndChar(t *testing.T) {
	toks := scanAll(t, `"hello\n" 'x'`)
	if toks[0].Type != token.String || toks[0].Lexeme != `"hello\n"` {
		t.Fatalf("string: got %v", toks[0])
	}
	if toks[1].Type != token.Char || toks[1].Lexeme != "'x'" {
		t.Fatalf("char: got %v", toks[1])
	}
}

func TestLexer_UnterminatedStringIsError(t *testing.T) {
	l := New(source.New("test.fly", `"abc`))
	tok := l.NextToken()
	if tok.Type != token.Invalid {
		t.Fatalf("got %s, want Invalid", tok.Type)
	}
	if len(l.Errors()) != 1 {
		t.Fatalf("got %d errors, want 1", len(l.Errors()))
	}
}

func TestLexer_NestedBlockComment(t *testing.T) {
	toks := scanAll(t, "/* outer /* inner */ still outer */ int")
	if toks[0].Type != token.Comment {
		t.Fatalf("got %s, want Comment", toks[0].Type)
	}
	if toks[1].Type != token.KwInt {
		t.Fatalf("got %s, want int keyword", toks[1].Type)
	}
}

func TestLexer_Operators(t *testing.T) {
	toks := scanAll(t, ":: -> ... ++ -- <= >= == != && ||")
	want := []token.Type{
		token.ColonColon, token.Arrow, token.Ellipsis, token.Inc, token.Dec,
		token.LessEq, token.GreaterEq, token.Eq, token.NotEq, token.And, token.Or,
		token.EOF,
	}
	if len(toks) != len(want) {
		t.Fatalf("got %d tokens, want %d: %v", len(toks), len(want), toks)
	}
	for i, tt := range want {
		if toks[i].Type != tt {
			t.Errorf("token %d: got %s, want %s", i, toks[i].Type, tt)
		}
	}
}

func TestLexer_LineColumnTracking(t *testing.T) {
	toks := scanAll(t, "a\nbb")
	if toks[0].Span.Start.Line != 1 || toks[0].Span.Start.Column != 1 {
		t.Errorf("first token pos = %v", toks[0].Span.Start)
	}
	if toks[1].Span.Start.Line != 2 || toks[1].Span.Start.Column != 1 {
		t.Errorf("second token pos = %v", toks[1].Span.Start)
	}
}
