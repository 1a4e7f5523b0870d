package parser

import (
	"testing"

	"github.com/fly-lang/flyc/internal/ast"
	"github.com/fly-lang/flyc/internal/lexer"
	"github.com/fly-lang/flyc/internal/source"
	"github.com/fly-lang/flyc/internal/token"
)

func parseModule(t *testing.T, text string) *ast.Module {
	t.Helper()
	p := New(lexer.New(source.New("test.fly", text)), "test.fly")
	mod := p.ParseModule(0)
	if len(p.Errors()) != 0 {
		t.Fatalf("unexpected parse errors: %v", p.Errors())
	}
	return mod
}

func TestParser_Namespace(t *testing.T) {
	mod := parseModule(t, "namespace geometry::shapes;")
	want := []string{"geometry", "shapes"}
	if len(mod.Namespace.Parts) != len(want) {
		t.Fatalf("namespace parts = %v, want %v", mod.Namespace.Parts, want)
	}
	for i, p := range want {
		if mod.Namespace.Parts[i] != p {
			t.Errorf("part %d = %q, want %q", i, mod.Namespace.Parts[i], p)
		}
	}
}

func TestParser_Import(t *testing.T) {
	mod := parseModule(t, `
namespace app;
import geometry::shapes as shapes;
`)
	if len(mod.Decls()) != 1 {
		t.Fatalf("got %d decls, want 1", len(mod.Decls()))
	}
	imp := mod.Factory().ImportDecl(mod.Decls()[0])
	if len(imp.Parts) != 2 || imp.Parts[0] != "geometry" || imp.Parts[1] != "shapes" {
		t.Errorf("import parts = %v", imp.Parts)
	}
	if imp.Alias != "shapes" {
		t.Errorf("alias = %q, want %q", imp.Alias, "shapes")
	}
}

func TestParser_GlobalVariable(t *testing.T) {
	mod := parseModule(t, `
namespace app;
const double Pi = 3.14;
`)
	v := mod.Factory().VariableDecl(mod.Decls()[0])
	if v.Name != "Pi" || !v.Constant {
		t.Fatalf("got %+v, want constant global named Pi", v)
	}
	if v.Type.Primitive != token.KwDouble {
		t.Errorf("type = %v, want double", v.Type.Primitive)
	}
}

func TestParser_FunctionDecl(t *testing.T) {
	mod := parseModule(t, `
namespace app;
int add(int a, int b) {
	return a + b;
}
`)
	fn := mod.Factory().FunctionDecl(mod.Decls()[0])
	if fn.Name != "add" || len(fn.Params) != 2 {
		t.Fatalf("got %+v", fn)
	}
	if fn.Params[0].Name != "a" || fn.Params[1].Name != "b" {
		t.Errorf("params = %+v", fn.Params)
	}
	if fn.ReturnType == nil || fn.ReturnType.Primitive != token.KwInt {
		t.Errorf("return type = %+v", fn.ReturnType)
	}
	body := mod.Factory().BlockStmt(fn.Body)
	if len(body.Stmts) != 1 {
		t.Fatalf("got %d body statements, want 1", len(body.Stmts))
	}
}

func TestParser_ClassWithConstructorAndFields(t *testing.T) {
	mod := parseModule(t, `
namespace app;
class Point {
	private int x;
	private int y;
	Point(int x, int y) {
		return;
	}
	int X() {
		return x;
	}
}
`)
	cd := mod.Factory().ClassDecl(mod.Decls()[0])
	if cd.Name != "Point" || cd.Kind != ast.ClassStandard {
		t.Fatalf("got %+v", cd)
	}
	if len(cd.Fields) != 2 {
		t.Fatalf("got %d fields, want 2", len(cd.Fields))
	}
	if cd.Constructor == ast.NoNode {
		t.Fatal("expected constructor to be detected")
	}
	ctor := mod.Factory().FunctionDecl(cd.Constructor)
	if ctor.Name != "Point" || len(ctor.Params) != 2 {
		t.Errorf("constructor = %+v", ctor)
	}
	if len(cd.Methods) != 1 {
		t.Fatalf("got %d methods, want 1 (constructor must not double as a method)", len(cd.Methods))
	}
}

func TestParser_InterfaceSignatureOnlyMethod(t *testing.T) {
	mod := parseModule(t, `
namespace app;
interface Shape {
	double Area();
}
`)
	cd := mod.Factory().ClassDecl(mod.Decls()[0])
	if cd.Kind != ast.ClassInterface {
		t.Fatalf("kind = %v, want ClassInterface", cd.Kind)
	}
	method := mod.Factory().FunctionDecl(cd.Methods[0])
	if method.Body != ast.NoNode {
		t.Error("expected interface method to have no body")
	}
}

func TestParser_ClassSuperclassAndInterfaces(t *testing.T) {
	mod := parseModule(t, `
namespace app;
class Circle : Shape, Comparable {
	double r;
}
`)
	cd := mod.Factory().ClassDecl(mod.Decls()[0])
	if len(cd.SuperClass) != 1 || cd.SuperClass[0] != "Shape" {
		t.Errorf("superclass = %v", cd.SuperClass)
	}
	if len(cd.Interfaces) != 1 || cd.Interfaces[0][0] != "Comparable" {
		t.Errorf("interfaces = %v", cd.Interfaces)
	}
}

func TestParser_EnumWithExplicitValues(t *testing.T) {
	mod := parseModule(t, `
namespace app;
enum Color {
	Red = 0,
	Green = 1,
	Blue
}
`)
	ed := mod.Factory().EnumDecl(mod.Decls()[0])
	if len(ed.Entries) != 3 {
		t.Fatalf("got %d entries, want 3", len(ed.Entries))
	}
	if ed.Entries[2].Name != "Blue" || ed.Entries[2].Value != ast.NoNode {
		t.Errorf("auto-increment entry = %+v, want no explicit value", ed.Entries[2])
	}
}

func TestParser_IfElsifElse(t *testing.T) {
	mod := parseModule(t, `
namespace app;
void classify(int n) {
	if (n < 0) {
		fail "negative";
	} elsif (n == 0) {
		return;
	} else {
		return;
	}
}
`)
	fn := mod.Factory().FunctionDecl(mod.Decls()[0])
	body := mod.Factory().BlockStmt(fn.Body)
	top := mod.Factory().IfStmt(body.Stmts[0])
	if top.Else == ast.NoNode {
		t.Fatal("expected elsif chain to produce a non-empty Else")
	}
	elsif := mod.Factory().IfStmt(top.Else)
	if elsif.Else == ast.NoNode {
		t.Fatal("expected trailing else block")
	}
}

func TestParser_WhileLoop(t *testing.T) {
	mod := parseModule(t, `
namespace app;
void loop() {
	while (true) {
		break;
	}
}
`)
	fn := mod.Factory().FunctionDecl(mod.Decls()[0])
	body := mod.Factory().BlockStmt(fn.Body)
	ls := mod.Factory().LoopStmt(body.Stmts[0])
	if ls.Kind != ast.LoopWhile || ls.Init != ast.NoNode || ls.Post != ast.NoNode {
		t.Errorf("got %+v, want bare while loop", ls)
	}
}

func TestParser_ForLoopWithCommaClauses(t *testing.T) {
	mod := parseModule(t, `
namespace app;
void loop() {
	for (int i = 0, int j = 10; i < j; i++, j--) {
		continue;
	}
}
`)
	fn := mod.Factory().FunctionDecl(mod.Decls()[0])
	body := mod.Factory().BlockStmt(fn.Body)
	ls := mod.Factory().LoopStmt(body.Stmts[0])
	if ls.Kind != ast.LoopFor {
		t.Fatalf("kind = %v, want LoopFor", ls.Kind)
	}
	initBlock := mod.Factory().BlockStmt(ls.Init)
	if len(initBlock.Stmts) != 2 {
		t.Fatalf("got %d init clauses, want 2 wrapped in a BlockStmt", len(initBlock.Stmts))
	}
	postBlock := mod.Factory().BlockStmt(ls.Post)
	if len(postBlock.Stmts) != 2 {
		t.Fatalf("got %d post clauses, want 2 wrapped in a BlockStmt", len(postBlock.Stmts))
	}
}

func TestParser_ForLoopSingleClauseNotWrapped(t *testing.T) {
	mod := parseModule(t, `
namespace app;
void loop() {
	for (int i = 0; i < 10; i++) {
		continue;
	}
}
`)
	fn := mod.Factory().FunctionDecl(mod.Decls()[0])
	body := mod.Factory().BlockStmt(fn.Body)
	ls := mod.Factory().LoopStmt(body.Stmts[0])
	// A single init clause is a bare VarStmt, not a BlockStmt wrapper.
	if mod.Factory().KindOf(ls.Init) != ast.KindVarStmt {
		t.Errorf("init kind = %v, want KindVarStmt (unwrapped)", mod.Factory().KindOf(ls.Init))
	}
}

func TestParser_SwitchCaseFallthroughOnEmptyBody(t *testing.T) {
	mod := parseModule(t, `
namespace app;
void describe(int n) {
	switch (n) {
	case 1, 2:
	case 3:
		return;
	default:
		return;
	}
}
`)
	fn := mod.Factory().FunctionDecl(mod.Decls()[0])
	body := mod.Factory().BlockStmt(fn.Body)
	sw := mod.Factory().SwitchStmt(body.Stmts[0])
	if len(sw.Cases) != 3 {
		t.Fatalf("got %d cases, want 3", len(sw.Cases))
	}
	if len(sw.Cases[0].Values) != 2 {
		t.Errorf("first case values = %v, want 2", sw.Cases[0].Values)
	}
	if len(sw.Cases[0].Body) != 0 {
		t.Error("expected empty body on first case (falls through)")
	}
	if !sw.Cases[2].IsDefault {
		t.Error("expected last clause to be the default")
	}
	for i, c := range sw.Cases {
		if !c.Span.IsValid() {
			t.Errorf("case %d has an invalid (zero) span", i)
		}
	}
}

func TestParser_ReturnFailBreakContinueDelete(t *testing.T) {
	mod := parseModule(t, `
namespace app;
void run() {
	return;
	fail 42;
	break;
	continue;
	delete obj;
}
`)
	fn := mod.Factory().FunctionDecl(mod.Decls()[0])
	body := mod.Factory().BlockStmt(fn.Body)
	wantKinds := []ast.Kind{
		ast.KindReturnStmt, ast.KindFailStmt, ast.KindBreakStmt,
		ast.KindContinueStmt, ast.KindDeleteStmt,
	}
	if len(body.Stmts) != len(wantKinds) {
		t.Fatalf("got %d statements, want %d", len(body.Stmts), len(wantKinds))
	}
	for i, want := range wantKinds {
		if got := mod.Factory().KindOf(body.Stmts[i]); got != want {
			t.Errorf("stmt %d kind = %v, want %v", i, got, want)
		}
	}
}

func TestParser_HandleStmt(t *testing.T) {
	mod := parseModule(t, `
namespace app;
void run() {
	handle {
		risky();
	} err {
		return;
	}
}
`)
	fn := mod.Factory().FunctionDecl(mod.Decls()[0])
	body := mod.Factory().BlockStmt(fn.Body)
	hs := mod.Factory().HandleStmt(body.Stmts[0])
	if hs.ErrorVar != "err" {
		t.Errorf("error var = %q, want %q", hs.ErrorVar, "err")
	}
	if mod.Factory().KindOf(hs.Body) != ast.KindBlockStmt || mod.Factory().KindOf(hs.Block) != ast.KindBlockStmt {
		t.Error("expected both handle body and handler block to be BlockStmt")
	}
}

func TestParser_ExpressionPrecedence(t *testing.T) {
	mod := parseModule(t, `
namespace app;
bool check() {
	return 1 + 2 * 3 == 7 && (4 - 1 < 5 || false);
}
`)
	fn := mod.Factory().FunctionDecl(mod.Decls()[0])
	body := mod.Factory().BlockStmt(fn.Body)
	ret := mod.Factory().ReturnStmt(body.Stmts[0])

	logical := mod.Factory().LogicalExpr(ret.Value)
	if logical.Op != ast.LogicalAnd {
		t.Fatalf("top operator = %v, want LogicalAnd", logical.Op)
	}

	eq := mod.Factory().BinaryExpr(logical.Left)
	if eq.Op != ast.BinEq {
		t.Fatalf("left of && = %v, want BinEq", eq.Op)
	}
	// left side of == must be `1 + (2 * 3)`, i.e. '+' binds looser than '*'.
	add := mod.Factory().BinaryExpr(eq.Left)
	if add.Op != ast.BinAdd {
		t.Fatalf("got %v, want BinAdd", add.Op)
	}
	mul := mod.Factory().BinaryExpr(add.Right)
	if mul.Op != ast.BinMul {
		t.Fatalf("right operand of + = %v, want BinMul", mul.Op)
	}
}

func TestParser_TernaryIsRightAssociative(t *testing.T) {
	mod := parseModule(t, `
namespace app;
int pick() {
	return true ? 1 : false ? 2 : 3;
}
`)
	fn := mod.Factory().FunctionDecl(mod.Decls()[0])
	body := mod.Factory().BlockStmt(fn.Body)
	ret := mod.Factory().ReturnStmt(body.Stmts[0])
	outer := mod.Factory().TernaryExpr(ret.Value)
	if mod.Factory().KindOf(outer.Else) != ast.KindTernaryExpr {
		t.Error("expected the nested ternary to parse as the outer's Else branch")
	}
}

func TestParser_CallIndexMemberChain(t *testing.T) {
	mod := parseModule(t, `
namespace app;
int get() {
	return points[0].x();
}
`)
	fn := mod.Factory().FunctionDecl(mod.Decls()[0])
	body := mod.Factory().BlockStmt(fn.Body)
	ret := mod.Factory().ReturnStmt(body.Stmts[0])
	call := mod.Factory().CallExpr(ret.Value)
	member := mod.Factory().MemberExpr(call.Callee)
	if member.Member != "x" {
		t.Errorf("member = %q, want %q", member.Member, "x")
	}
	idx := mod.Factory().IndexExpr(member.Object)
	ident := mod.Factory().IdentExpr(idx.Array)
	if len(ident.Parts) != 1 || ident.Parts[0] != "points" {
		t.Errorf("array ident = %v", ident.Parts)
	}
}

func TestParser_NewExprAndArrayLiteral(t *testing.T) {
	mod := parseModule(t, `
namespace app;
void build() {
	Point p = new Point(1, 2);
	int[] xs = [1, 2, 3];
}
`)
	fn := mod.Factory().FunctionDecl(mod.Decls()[0])
	body := mod.Factory().BlockStmt(fn.Body)

	v1 := mod.Factory().VarStmt(body.Stmts[0])
	newExpr := mod.Factory().NewExpr(v1.Init)
	if len(newExpr.Args) != 2 {
		t.Errorf("new args = %v, want 2", newExpr.Args)
	}

	v2 := mod.Factory().VarStmt(body.Stmts[1])
	if !v2.Type.IsArray() {
		t.Fatalf("type = %+v, want array", v2.Type)
	}
	arr := mod.Factory().ArrayLiteralExpr(v2.Init)
	if len(arr.Elements) != 3 {
		t.Errorf("array elements = %v, want 3", arr.Elements)
	}
}

// startsVarDecl disambiguation: `Foo x;` declares, `foo();` and `foo = 1;`
// are expression/assignment statements even though all three begin with a
// plain identifier token.
func TestParser_VarDeclVsExprStmtDisambiguation(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want ast.Kind
	}{
		{"type-led declaration", "Foo x;", ast.KindVarStmt},
		{"call expression", "foo();", ast.KindExprStmt},
		{"plain assignment", "foo = 1;", ast.KindAssignStmt},
		{"qualified type declaration", "ns::Foo x;", ast.KindVarStmt},
		{"array type declaration", "Foo[] xs;", ast.KindVarStmt},
		{"indexed assignment is not a declaration", "foo[0] = 1;", ast.KindAssignStmt},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mod := parseModule(t, "namespace app;\nvoid run() {\n"+tt.src+"\n}\n")
			fn := mod.Factory().FunctionDecl(mod.Decls()[0])
			body := mod.Factory().BlockStmt(fn.Body)
			if len(body.Stmts) != 1 {
				t.Fatalf("got %d statements, want 1", len(body.Stmts))
			}
			if got := mod.Factory().KindOf(body.Stmts[0]); got != tt.want {
				t.Errorf("kind = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParser_AssignmentOperators(t *testing.T) {
	tests := []struct {
		src  string
		want ast.AssignOp
	}{
		{"x = 1;", ast.AssignPlain},
		{"x += 1;", ast.AssignAdd},
		{"x -= 1;", ast.AssignSub},
		{"x *= 1;", ast.AssignMul},
		{"x /= 1;", ast.AssignDiv},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			mod := parseModule(t, "namespace app;\nvoid run() {\n"+tt.src+"\n}\n")
			fn := mod.Factory().FunctionDecl(mod.Decls()[0])
			body := mod.Factory().BlockStmt(fn.Body)
			as := mod.Factory().AssignStmt(body.Stmts[0])
			if as.Op != tt.want {
				t.Errorf("op = %v, want %v", as.Op, tt.want)
			}
		})
	}
}

func TestParser_CommentsAreCollectedNotEmittedAsStatements(t *testing.T) {
	mod := parseModule(t, `
namespace app; // trailing comment
/* leading */ void run() {
	// a body comment
	return;
}
`)
	if len(mod.Comments) != 3 {
		t.Fatalf("got %d comments, want 3", len(mod.Comments))
	}
	fn := mod.Factory().FunctionDecl(mod.Decls()[0])
	body := mod.Factory().BlockStmt(fn.Body)
	if len(body.Stmts) != 1 {
		t.Fatalf("got %d statements, want 1 (comment must not parse as a statement)", len(body.Stmts))
	}
}

func TestParser_SyntaxErrorRecoversAtNextTopLevelDecl(t *testing.T) {
	p := New(lexer.New(source.New("test.fly", `
namespace app;
int broken( ;
int ok() {
	return 1;
}
`)), "test.fly")
	mod := p.ParseModule(0)
	if len(p.Errors()) == 0 {
		t.Fatal("expected at least one syntax error")
	}
	if len(mod.Decls()) != 1 {
		t.Fatalf("got %d decls, want 1 (recovered to the next top-level declaration)", len(mod.Decls()))
	}
	fn := mod.Factory().FunctionDecl(mod.Decls()[0])
	if fn.Name != "ok" {
		t.Errorf("recovered decl = %q, want %q", fn.Name, "ok")
	}
}
