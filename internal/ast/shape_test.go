package ast_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/fly-lang/flyc/internal/ast"
	"github.com/fly-lang/flyc/internal/lexer"
	"github.com/fly-lang/flyc/internal/parser"
	"github.com/fly-lang/flyc/internal/source"
)

// shape is a NodeID- and source.Span-free rendering of a subtree: two
// parses of differently-formatted but semantically identical source
// produce equal shapes even though their underlying NodeIDs differ, which
// is the identity-independent equality the package doc comment on node.go
// promises go-cmp callers.
type shape struct {
	Kind     string
	Text     string
	Name     string
	Op       int
	Children []shape
}

func shapeOf(f *ast.Factory, id ast.NodeID) shape {
	if id == ast.NoNode {
		return shape{Kind: "none"}
	}
	switch f.KindOf(id) {
	case ast.KindLiteralExpr:
		lit := f.LiteralExpr(id)
		return shape{Kind: "literal", Text: lit.Text}
	case ast.KindIdentExpr:
		ident := f.IdentExpr(id)
		return shape{Kind: "ident", Name: joinParts(ident.Parts)}
	case ast.KindBinaryExpr:
		bin := f.BinaryExpr(id)
		return shape{Kind: "binary", Op: int(bin.Op), Children: []shape{shapeOf(f, bin.Left), shapeOf(f, bin.Right)}}
	case ast.KindUnaryExpr:
		un := f.UnaryExpr(id)
		return shape{Kind: "unary", Op: int(un.Op), Children: []shape{shapeOf(f, un.Operand)}}
	case ast.KindReturnStmt:
		ret := f.ReturnStmt(id)
		return shape{Kind: "return", Children: []shape{shapeOf(f, ret.Value)}}
	case ast.KindBlockStmt:
		block := f.BlockStmt(id)
		out := shape{Kind: "block"}
		for _, s := range block.Stmts {
			out.Children = append(out.Children, shapeOf(f, s))
		}
		return out
	case ast.KindFunctionDecl:
		fn := f.FunctionDecl(id)
		return shape{Kind: "func", Name: fn.Name, Children: []shape{shapeOf(f, fn.Body)}}
	default:
		return shape{Kind: "other"}
	}
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

func parseFunc(t *testing.T, text string) (*ast.Factory, ast.NodeID) {
	t.Helper()
	p := parser.New(lexer.New(source.New("test.fly", text)), "test.fly")
	mod := p.ParseModule(0)
	if errs := p.Errors(); len(errs) > 0 {
		t.Fatalf("unexpected parse errors: %v", errs)
	}
	f := mod.Factory()
	for _, id := range mod.Decls() {
		if f.KindOf(id) == ast.KindFunctionDecl {
			return f, id
		}
	}
	t.Fatal("no function declaration found")
	return nil, ast.NoNode
}

// Two parses of the same function, laid out with completely different
// whitespace and a renamed parameter, must still produce the same shape —
// NodeIDs and source positions differ between the two parses, but neither
// is part of shape, so go-cmp sees true structural equality.
func TestShapeOf_IgnoresNodeIdentityAndFormatting(t *testing.T) {
	fA, idA := parseFunc(t, `
namespace math;

int add(int a, int b) {
    return a + b;
}
`)
	fB, idB := parseFunc(t, `namespace math; int add(int x,int y){return x+y;}`)

	if diff := cmp.Diff(shapeOf(fA, idA), shapeOf(fB, idB)); diff != "" {
		t.Errorf("shapes differ despite structurally identical source (-A +B):\n%s", diff)
	}
}

func TestShapeOf_DetectsARealStructuralDifference(t *testing.T) {
	fA, idA := parseFunc(t, `
namespace math;

int add(int a, int b) {
    return a + b;
}
`)
	fB, idB := parseFunc(t, `
namespace math;

int add(int a, int b) {
    return a - b;
}
`)

	if diff := cmp.Diff(shapeOf(fA, idA), shapeOf(fB, idB)); diff == "" {
		t.Error("expected a shape difference between a+b and a-b, got none")
	}
}
