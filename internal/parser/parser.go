// Package parser turns a token stream into an untyped ast.Module: one
// recursive-descent grammar for declarations, and Pratt-style precedence
// climbing for expressions — the same split the teacher's parser uses,
// generalized here to fly's namespace/class/enum/error-handling grammar.
package parser

import (
	"fmt"
	"strings"

	"github.com/fly-lang/flyc/internal/ast"
	"github.com/fly-lang/flyc/internal/lexer"
	"github.com/fly-lang/flyc/internal/source"
	"github.com/fly-lang/flyc/internal/token"
)

// parseError is panicked by consume/fail and caught by the nearest
// recover, the same panic-mode recovery idiom the teacher's parser uses —
// generalized here with one recover point per top-level declaration AND
// one per statement, so a malformed member doesn't take down an entire
// class body.
type parseError struct{ err error }

// Parser holds one token stream and the Factory every node it builds is
// allocated from.
type Parser struct {
	lex       *lexer.Lexer
	factory   *ast.Factory
	filename  string
	current   token.Token
	previous  token.Token
	lookahead []token.Token // tokens fetched ahead of current, not yet consumed
	errors    []error
	comments  []ast.Comment
	panicking bool
}

// New creates a Parser over lex, priming the first token.
func New(lex *lexer.Lexer, filename string) *Parser {
	p := &Parser{lex: lex, factory: ast.NewFactory(256), filename: filename}
	p.advance()
	return p
}

// Errors returns every syntax error collected during ParseModule.
func (p *Parser) Errors() []error { return p.errors }

// ParseModule parses one file into an *ast.Module stamped with id.
func (p *Parser) ParseModule(id ast.ModuleID) *ast.Module {
	ns := p.parseNamespaceDecl()

	var decls []ast.NodeID
	for !p.check(token.EOF) {
		decl, ok := p.parseTopDefSafely()
		if ok {
			decls = append(decls, decl)
		}
	}

	return p.factory.NewModule(id, p.filename, ns, decls, p.comments)
}

// --- token stream plumbing ---------------------------------------------

// fetch pulls the next non-comment token straight from the lexer,
// recording any comments it skips over along the way. Only advance and
// peekAt ever call this — everything else reads p.current/p.lookahead.
func (p *Parser) fetch() token.Token {
	for {
		tok := p.lex.NextToken()
		if tok.Type == token.Comment {
			p.comments = append(p.comments, ast.Comment{
				Span:    tok.Span,
				Text:    tok.Lexeme,
				IsBlock: strings.HasPrefix(tok.Lexeme, "/*"),
			})
			continue
		}
		return tok
	}
}

func (p *Parser) advance() token.Token {
	p.previous = p.current
	if len(p.lookahead) > 0 {
		p.current = p.lookahead[0]
		p.lookahead = p.lookahead[1:]
	} else {
		p.current = p.fetch()
	}
	return p.previous
}

// peekAt returns the token n positions past p.current (n=0 is the token
// immediately after current), buffering as many tokens as needed. This is
// the only lookahead the grammar needs — distinguishing a type-led
// variable declaration from a plain expression statement when the leading
// token is a user identity name rather than a primitive keyword.
func (p *Parser) peekAt(n int) token.Token {
	for len(p.lookahead) <= n {
		p.lookahead = append(p.lookahead, p.fetch())
	}
	return p.lookahead[n]
}

// tokenAt returns the token i positions from p.current (i=0 is current
// itself), via peekAt for i>0.
func (p *Parser) tokenAt(i int) token.Token {
	if i == 0 {
		return p.current
	}
	return p.peekAt(i - 1)
}

func (p *Parser) check(t token.Type) bool { return p.current.Type == t }

func (p *Parser) match(t token.Type) bool {
	if !p.check(t) {
		return false
	}
	p.advance()
	return true
}

func (p *Parser) consume(t token.Type, msg string) token.Token {
	if p.check(t) {
		return p.advance()
	}
	p.fail("%s (got %s %q)", msg, p.current.Type, p.current.Lexeme)
	panic(parseError{})
}

func (p *Parser) fail(format string, args ...any) {
	err := fmt.Errorf("%s: %s", p.current.Span.Start, fmt.Sprintf(format, args...))
	p.errors = append(p.errors, err)
	panic(parseError{err: err})
}

// synchronize skips tokens until a likely statement/declaration boundary,
// so one malformed construct does not cascade into unrelated errors.
func (p *Parser) synchronize() {
	for !p.check(token.EOF) {
		if p.previous.Type == token.Semicolon {
			return
		}
		switch p.current.Type {
		case token.Class, token.Struct, token.Interface, token.Enum,
			token.If, token.For, token.While, token.Return, token.Switch,
			token.Handle, token.Fail:
			return
		}
		p.advance()
	}
}

func (p *Parser) span(start source.Position) source.Span {
	return source.Span{Start: start, End: p.previous.Span.End}
}

// --- top level -----------------------------------------------------------

func (p *Parser) parseNamespaceDecl() ast.NamespaceDecl {
	if !p.check(token.Namespace) {
		return ast.NamespaceDecl{} // no header: the module joins `default`
	}
	p.consume(token.Namespace, "expected 'namespace' declaration")
	parts := p.parseIdentPath()
	p.consume(token.Semicolon, "expected ';' after namespace declaration")
	return ast.NamespaceDecl{Parts: parts}
}

func (p *Parser) parseIdentPath() []string {
	parts := []string{p.consume(token.Identifier, "expected identifier").Lexeme}
	for p.match(token.ColonColon) {
		parts = append(parts, p.consume(token.Identifier, "expected identifier after '::'").Lexeme)
	}
	return parts
}

func (p *Parser) parseTopDefSafely() (id ast.NodeID, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			if _, isParseErr := r.(parseError); !isParseErr {
				panic(r)
			}
			p.synchronize()
			ok = false
		}
	}()
	return p.parseTopDef(), true
}

func (p *Parser) parseTopDef() ast.NodeID {
	start := p.current.Span.Start

	if p.check(token.Import) {
		return p.parseImportDecl()
	}

	vis := p.parseVisibility()

	switch p.current.Type {
	case token.Struct:
		return p.parseClassDecl(vis, ast.ClassStruct, start)
	case token.Interface:
		return p.parseClassDecl(vis, ast.ClassInterface, start)
	case token.Class:
		return p.parseClassDecl(vis, ast.ClassStandard, start)
	case token.Enum:
		return p.parseEnumDecl(vis, start)
	}

	// Abstract class: this grammar's token set has no keyword for it, and
	// neither the parser nor the validator ever produces ClassAbstract — a
	// `class` is always parsed as ClassStandard.
	return p.parseGlobalOrFunctionDecl(vis, start)
}

func (p *Parser) parseVisibility() ast.Visibility {
	switch p.current.Type {
	case token.Public:
		p.advance()
		return ast.VisibilityPublic
	case token.Private:
		p.advance()
		return ast.VisibilityPrivate
	case token.Protected:
		p.advance()
		return ast.VisibilityProtected
	default:
		return ast.VisibilityDefault
	}
}

func (p *Parser) parseImportDecl() ast.NodeID {
	start := p.current.Span.Start
	p.consume(token.Import, "expected 'import'")
	parts := p.parseIdentPath()
	alias := ""
	if p.match(token.As) {
		alias = p.consume(token.Identifier, "expected alias identifier after 'as'").Lexeme
	}
	p.consume(token.Semicolon, "expected ';' after import")
	return p.factory.NewImportDecl(parts, alias, p.span(start))
}

// parseGlobalOrFunctionDecl parses a global variable or a function, which
// share a leading `type name` prefix and only diverge at '(' vs ';'/'='.
func (p *Parser) parseGlobalOrFunctionDecl(vis ast.Visibility, start source.Position) ast.NodeID {
	static := p.match(token.Const) // `const` before the type marks a constant global
	typ := p.parseType()
	name := p.consume(token.Identifier, "expected declaration name").Lexeme

	if p.check(token.LParen) {
		params := p.parseParams()
		body := p.parseBlock()
		return p.factory.NewFunctionDecl(name, params, typ, body, vis, false, p.span(start))
	}

	var init ast.NodeID = ast.NoNode
	if p.match(token.Assign) {
		init = p.parseExpression()
	}
	p.consume(token.Semicolon, "expected ';' after global variable declaration")
	return p.factory.NewVariableDecl(name, typ, init, static, vis, p.span(start))
}

// parseType parses a TypeExpr: a primitive keyword, a possibly `::`-qualified
// identity name, or either of those followed by one or more `[]`/`[N]`
// array suffixes.
func (p *Parser) parseType() *ast.TypeExpr {
	var t *ast.TypeExpr
	if token.IsPrimitiveType(p.current.Type) {
		t = &ast.TypeExpr{Primitive: p.current.Type}
		p.advance()
	} else {
		t = &ast.TypeExpr{Primitive: token.Invalid, Name: p.parseIdentPath()}
	}

	for p.check(token.LBracket) {
		p.advance()
		size := ast.NoNode
		if !p.check(token.RBracket) {
			size = p.parseExpression()
		}
		p.consume(token.RBracket, "expected ']' to close array type")
		t = &ast.TypeExpr{Elem: t, Size: size}
	}
	return t
}

func (p *Parser) parseParams() []ast.Param {
	p.consume(token.LParen, "expected '('")
	var params []ast.Param
	if !p.check(token.RParen) {
		for {
			typ := p.parseType()
			name := p.consume(token.Identifier, "expected parameter name").Lexeme
			params = append(params, ast.Param{Name: name, Type: typ})
			if !p.match(token.Comma) {
				break
			}
		}
	}
	p.consume(token.RParen, "expected ')' to close parameter list")
	return params
}

// --- classes -------------------------------------------------------------

func (p *Parser) parseClassDecl(vis ast.Visibility, kind ast.ClassKind, start source.Position) ast.NodeID {
	p.advance() // 'struct' | 'class' | 'interface'
	name := p.consume(token.Identifier, "expected class name").Lexeme

	decl := &ast.ClassDecl{Name: name, Kind: kind, Visibility: vis, Constructor: ast.NoNode}

	if p.match(token.Colon) {
		decl.SuperClass = p.parseIdentPath()
		for p.match(token.Comma) {
			decl.Interfaces = append(decl.Interfaces, p.parseIdentPath())
		}
	}

	p.consume(token.LBrace, "expected '{' to open class body")
	for !p.check(token.RBrace) && !p.check(token.EOF) {
		p.parseClassMember(decl)
	}
	p.consume(token.RBrace, "expected '}' to close class body")

	// Every struct/class gets a synthesised default constructor unless the
	// source declared one explicitly; interfaces and abstract classes are
	// never directly instantiated, so neither gets one.
	if decl.Constructor == ast.NoNode && (kind == ast.ClassStruct || kind == ast.ClassStandard) {
		decl.Constructor = p.factory.NewDefaultConstructor(decl.Name, p.span(start))
	}

	return p.factory.NewClassDecl(decl, p.span(start))
}

func (p *Parser) parseClassMember(decl *ast.ClassDecl) {
	defer func() {
		if r := recover(); r != nil {
			if _, isParseErr := r.(parseError); !isParseErr {
				panic(r)
			}
			p.synchronize()
		}
	}()

	start := p.current.Span.Start
	vis := p.parseVisibility()
	static := p.match(token.Const)

	// A constructor is spelled as a method whose name matches the class
	// name; the parser has no other dedicated syntax for it.
	typ := p.parseType()

	if p.check(token.LParen) && typ.IsPrimitive() == false && len(typ.Name) == 1 && typ.Name[0] == decl.Name {
		// `ClassName(...)` with no declared return type is the constructor.
		params := p.parseParams()
		body := p.parseBlock()
		decl.Constructor = p.factory.NewFunctionDecl(decl.Name, params, nil, body, vis, false, p.span(start))
		return
	}

	name := p.consume(token.Identifier, "expected member name").Lexeme

	if p.check(token.LParen) {
		params := p.parseParams()
		var body ast.NodeID = ast.NoNode
		if p.check(token.LBrace) {
			body = p.parseBlock()
		} else {
			p.consume(token.Semicolon, "expected ';' after interface method signature")
		}
		decl.Methods = append(decl.Methods, p.factory.NewFunctionDecl(name, params, typ, body, vis, static, p.span(start)))
		return
	}

	p.consume(token.Semicolon, "expected ';' after field declaration")
	decl.Fields = append(decl.Fields, ast.Field{Name: name, Type: typ, Visibility: vis, Span: p.span(start)})
}

// --- enums -----------------------------------------------------------------

func (p *Parser) parseEnumDecl(vis ast.Visibility, start source.Position) ast.NodeID {
	p.consume(token.Enum, "expected 'enum'")
	name := p.consume(token.Identifier, "expected enum name").Lexeme

	decl := &ast.EnumDecl{Name: name, Visibility: vis}
	if p.match(token.Colon) {
		decl.SuperClass = append(decl.SuperClass, p.parseIdentPath())
		for p.match(token.Comma) {
			decl.SuperClass = append(decl.SuperClass, p.parseIdentPath())
		}
	}

	p.consume(token.LBrace, "expected '{' to open enum body")
	for !p.check(token.RBrace) && !p.check(token.EOF) {
		entryStart := p.current.Span.Start
		entryName := p.consume(token.Identifier, "expected enum entry name").Lexeme
		value := ast.NoNode
		if p.match(token.Assign) {
			value = p.parseExpression()
		}
		decl.Entries = append(decl.Entries, ast.EnumEntry{Name: entryName, Value: value, Span: p.span(entryStart)})
		if !p.match(token.Comma) {
			break
		}
	}
	p.consume(token.RBrace, "expected '}' to close enum body")

	return p.factory.NewEnumDecl(decl, p.span(start))
}

// --- statements ------------------------------------------------------------

func (p *Parser) parseBlock() ast.NodeID {
	start := p.current.Span.Start
	p.consume(token.LBrace, "expected '{'")
	var stmts []ast.NodeID
	for !p.check(token.RBrace) && !p.check(token.EOF) {
		if id, ok := p.parseStmtSafely(); ok {
			stmts = append(stmts, id)
		}
	}
	p.consume(token.RBrace, "expected '}'")
	return p.factory.NewBlockStmt(stmts, p.span(start))
}

func (p *Parser) parseStmtSafely() (id ast.NodeID, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			if _, isParseErr := r.(parseError); !isParseErr {
				panic(r)
			}
			p.synchronize()
			ok = false
		}
	}()
	return p.parseStmt(), true
}

func (p *Parser) parseStmt() ast.NodeID {
	switch p.current.Type {
	case token.LBrace:
		return p.parseBlock()
	case token.If:
		return p.parseIfStmt()
	case token.While, token.For:
		return p.parseLoopStmt()
	case token.Switch:
		return p.parseSwitchStmt()
	case token.Return:
		return p.parseReturnStmt()
	case token.Fail:
		return p.parseFailStmt()
	case token.Break:
		return p.parseBreakStmt()
	case token.Continue:
		return p.parseContinueStmt()
	case token.Delete:
		return p.parseDeleteStmt()
	case token.Handle:
		return p.parseHandleStmt()
	case token.Const:
		return p.parseVarStmt(true)
	}

	if p.startsVarDecl() {
		return p.parseVarStmt(false)
	}

	return p.parseExprOrAssignStmt()
}

// startsVarDecl distinguishes `Type name ...;` from an expression
// statement: a primitive type keyword always starts a declaration, and an
// identifier starts one only when a `::`-qualified path and any array
// suffixes are themselves followed by another identifier (`Foo x`
// declares, `foo()` and `foo = 1` do not) — resolved by scanning the
// buffered token lookahead rather than a speculative parse-and-rewind, so
// no partial AST nodes or premature comment collection ever happen.
func (p *Parser) startsVarDecl() bool {
	if token.IsPrimitiveType(p.current.Type) {
		return true
	}
	if p.current.Type != token.Identifier {
		return false
	}

	i := 1 // tokenAt(0) is the leading Identifier itself
	for p.tokenAt(i).Type == token.ColonColon {
		if p.tokenAt(i+1).Type != token.Identifier {
			return false
		}
		i += 2
	}
	for p.tokenAt(i).Type == token.LBracket {
		i++
		depth := 1
		for depth > 0 {
			switch p.tokenAt(i).Type {
			case token.LBracket:
				depth++
			case token.RBracket:
				depth--
			case token.EOF:
				return false
			}
			i++
		}
	}
	return p.tokenAt(i).Type == token.Identifier
}

func (p *Parser) parseVarStmt(constant bool) ast.NodeID {
	start := p.current.Span.Start
	if constant {
		p.consume(token.Const, "expected 'const'")
	}
	typ := p.parseType()
	name := p.consume(token.Identifier, "expected variable name").Lexeme
	var init ast.NodeID = ast.NoNode
	if p.match(token.Assign) {
		init = p.parseExpression()
	}
	p.consume(token.Semicolon, "expected ';' after variable declaration")
	return p.factory.NewVarStmt(name, typ, init, constant, p.span(start))
}

// parseControlCond parses a condition with optional parentheses — fly
// allows `if cond { }` alongside `if (cond) { }`.
func (p *Parser) parseControlCond() ast.NodeID {
	if p.match(token.LParen) {
		cond := p.parseExpression()
		p.consume(token.RParen, "expected ')' after condition")
		return cond
	}
	return p.parseExpression()
}

func (p *Parser) parseIfStmt() ast.NodeID {
	start := p.current.Span.Start
	p.consume(token.If, "expected 'if'")
	cond := p.parseControlCond()
	then := p.parseBlock()

	elseBranch := ast.NoNode
	if p.match(token.Elsif) {
		elseBranch = p.parseIfStmtTail()
	} else if p.match(token.Else) {
		if p.check(token.If) {
			elseBranch = p.parseIfStmt()
		} else {
			elseBranch = p.parseBlock()
		}
	}
	return p.factory.NewIfStmt(cond, then, elseBranch, p.span(start))
}

// parseIfStmtTail parses the `elsif cond { } ...` continuation as another
// IfStmt node, recursively, the same way the teacher's parser recurses
// into parseIfStmt for an `else if` chain.
func (p *Parser) parseIfStmtTail() ast.NodeID {
	start := p.previous.Span.Start
	cond := p.parseControlCond()
	then := p.parseBlock()
	elseBranch := ast.NoNode
	if p.match(token.Elsif) {
		elseBranch = p.parseIfStmtTail()
	} else if p.match(token.Else) {
		if p.check(token.If) {
			elseBranch = p.parseIfStmt()
		} else {
			elseBranch = p.parseBlock()
		}
	}
	return p.factory.NewIfStmt(cond, then, elseBranch, p.span(start))
}

// parseLoopStmt parses both `while` and `for`, sharing one LoopStmt node.
// A `for` with a comma-separated init or post list wraps the list in an
// implicit BlockStmt so a single NodeID still carries it.
func (p *Parser) parseLoopStmt() ast.NodeID {
	start := p.current.Span.Start
	if p.match(token.While) {
		cond := p.parseControlCond()
		body := p.parseBlock()
		return p.factory.NewLoopStmt(ast.LoopWhile, ast.NoNode, cond, ast.NoNode, body, p.span(start))
	}

	p.consume(token.For, "expected 'for'")
	p.consume(token.LParen, "expected '(' after 'for'")

	init := ast.NoNode
	if !p.check(token.Semicolon) {
		init = p.parseForClauseList()
	}
	p.consume(token.Semicolon, "expected ';' after for-loop initializer")

	cond := ast.NoNode
	if !p.check(token.Semicolon) {
		cond = p.parseExpression()
	}
	p.consume(token.Semicolon, "expected ';' after for-loop condition")

	post := ast.NoNode
	if !p.check(token.RParen) {
		post = p.parseForClauseList()
	}
	p.consume(token.RParen, "expected ')' after for-loop clauses")

	body := p.parseBlock()
	return p.factory.NewLoopStmt(ast.LoopFor, init, cond, post, body, p.span(start))
}

// parseForClauseList parses one or more comma-separated statements (each
// either a var declaration or an assignment/expression), wrapping more
// than one in an implicit BlockStmt.
func (p *Parser) parseForClauseList() ast.NodeID {
	start := p.current.Span.Start
	first := p.parseForClause()
	if !p.check(token.Comma) {
		return first
	}
	stmts := []ast.NodeID{first}
	for p.match(token.Comma) {
		stmts = append(stmts, p.parseForClause())
	}
	return p.factory.NewBlockStmt(stmts, p.span(start))
}

func (p *Parser) parseForClause() ast.NodeID {
	if p.startsVarDecl() {
		start := p.current.Span.Start
		typ := p.parseType()
		name := p.consume(token.Identifier, "expected variable name").Lexeme
		init := ast.NoNode
		if p.match(token.Assign) {
			init = p.parseExpression()
		}
		return p.factory.NewVarStmt(name, typ, init, false, p.span(start))
	}
	return p.parseExprOrAssignStmtNoSemicolon()
}

func (p *Parser) parseSwitchStmt() ast.NodeID {
	start := p.current.Span.Start
	p.consume(token.Switch, "expected 'switch'")
	value := p.parseControlCond()
	p.consume(token.LBrace, "expected '{' to open switch body")

	var cases []ast.CaseClause
	for !p.check(token.RBrace) && !p.check(token.EOF) {
		cases = append(cases, p.parseCaseClause())
	}
	p.consume(token.RBrace, "expected '}' to close switch body")
	return p.factory.NewSwitchStmt(value, cases, p.span(start))
}

func (p *Parser) parseCaseClause() ast.CaseClause {
	start := p.current.Span.Start
	clause := ast.CaseClause{}
	if p.match(token.Default) {
		clause.IsDefault = true
	} else {
		p.consume(token.Case, "expected 'case' or 'default'")
		clause.Values = append(clause.Values, p.parseExpression())
		for p.match(token.Comma) {
			clause.Values = append(clause.Values, p.parseExpression())
		}
	}
	p.consume(token.Colon, "expected ':' after case label")

	for !p.check(token.Case) && !p.check(token.Default) && !p.check(token.RBrace) && !p.check(token.EOF) {
		if id, ok := p.parseStmtSafely(); ok {
			clause.Body = append(clause.Body, id)
		}
	}
	clause.Span = p.span(start)
	return clause
}

func (p *Parser) parseReturnStmt() ast.NodeID {
	start := p.current.Span.Start
	p.consume(token.Return, "expected 'return'")
	value := ast.NoNode
	if !p.check(token.Semicolon) {
		value = p.parseExpression()
	}
	p.consume(token.Semicolon, "expected ';' after return statement")
	return p.factory.NewReturnStmt(value, p.span(start))
}

func (p *Parser) parseFailStmt() ast.NodeID {
	start := p.current.Span.Start
	p.consume(token.Fail, "expected 'fail'")
	payload := ast.NoNode
	if !p.check(token.Semicolon) {
		payload = p.parseExpression()
	}
	p.consume(token.Semicolon, "expected ';' after fail statement")
	return p.factory.NewFailStmt(payload, p.span(start))
}

func (p *Parser) parseBreakStmt() ast.NodeID {
	start := p.current.Span.Start
	p.consume(token.Break, "expected 'break'")
	p.consume(token.Semicolon, "expected ';' after break")
	return p.factory.NewBreakStmt(p.span(start))
}

func (p *Parser) parseContinueStmt() ast.NodeID {
	start := p.current.Span.Start
	p.consume(token.Continue, "expected 'continue'")
	p.consume(token.Semicolon, "expected ';' after continue")
	return p.factory.NewContinueStmt(p.span(start))
}

func (p *Parser) parseDeleteStmt() ast.NodeID {
	start := p.current.Span.Start
	p.consume(token.Delete, "expected 'delete'")
	target := p.parseExpression()
	p.consume(token.Semicolon, "expected ';' after delete")
	return p.factory.NewDeleteStmt(target, p.span(start))
}

// parseHandleStmt parses `handle <block> <ident> <block>`: the first block
// is the guarded body, ident names the error variable the second block
// (the handler) sees bound.
func (p *Parser) parseHandleStmt() ast.NodeID {
	start := p.current.Span.Start
	p.consume(token.Handle, "expected 'handle'")
	body := p.parseBlock()
	errVar := p.consume(token.Identifier, "expected error variable name after handle block").Lexeme
	handlerBlock := p.parseBlock()
	return p.factory.NewHandleStmt(body, errVar, handlerBlock, p.span(start))
}

func (p *Parser) parseExprOrAssignStmt() ast.NodeID {
	id := p.parseExprOrAssignStmtNoSemicolon()
	p.consume(token.Semicolon, "expected ';' after statement")
	return id
}

func (p *Parser) parseExprOrAssignStmtNoSemicolon() ast.NodeID {
	start := p.current.Span.Start
	expr := p.parseExpression()

	op, isAssign := assignOpFor(p.current.Type)
	if !isAssign {
		return p.factory.NewExprStmt(expr, p.span(start))
	}
	p.advance()
	value := p.parseExpression()
	return p.factory.NewAssignStmt(op, expr, value, p.span(start))
}

func assignOpFor(t token.Type) (ast.AssignOp, bool) {
	switch t {
	case token.Assign:
		return ast.AssignPlain, true
	case token.PlusAssign:
		return ast.AssignAdd, true
	case token.MinusAssign:
		return ast.AssignSub, true
	case token.StarAssign:
		return ast.AssignMul, true
	case token.SlashAssign:
		return ast.AssignDiv, true
	default:
		return 0, false
	}
}

// --- expressions (Pratt precedence climbing) -------------------------------

func (p *Parser) parseExpression() ast.NodeID {
	return p.parsePrecedence(PrecTernary)
}

func (p *Parser) parsePrecedence(min Precedence) ast.NodeID {
	left := p.parsePrefix()

	for {
		prec := getPrecedence(p.current.Type)
		if prec < min || prec == PrecNone {
			break
		}
		if prec == PrecPostfix {
			left = p.parsePostfix(left)
			continue
		}
		left = p.parseInfix(left, prec)
	}
	return left
}

func (p *Parser) parsePrefix() ast.NodeID {
	start := p.current.Span.Start
	switch p.current.Type {
	case token.Minus:
		p.advance()
		operand := p.parsePrecedence(PrecUnary)
		return p.factory.NewUnaryExpr(ast.UnaryNeg, operand, p.span(start))
	case token.Not:
		p.advance()
		operand := p.parsePrecedence(PrecUnary)
		return p.factory.NewUnaryExpr(ast.UnaryNot, operand, p.span(start))
	case token.Tilde:
		p.advance()
		operand := p.parsePrecedence(PrecUnary)
		return p.factory.NewUnaryExpr(ast.UnaryBitNot, operand, p.span(start))
	case token.Inc:
		p.advance()
		operand := p.parsePrecedence(PrecUnary)
		return p.factory.NewUnaryExpr(ast.UnaryPreInc, operand, p.span(start))
	case token.Dec:
		p.advance()
		operand := p.parsePrecedence(PrecUnary)
		return p.factory.NewUnaryExpr(ast.UnaryPreDec, operand, p.span(start))
	case token.LParen:
		p.advance()
		inner := p.parseExpression()
		p.consume(token.RParen, "expected ')' to close parenthesized expression")
		return inner
	case token.New:
		return p.parseNewExpr()
	case token.LBracket:
		return p.parseArrayLiteral()
	case token.Number:
		p.advance()
		kind := ast.LiteralInt
		if strings.ContainsAny(p.previous.Lexeme, ".eE") && !strings.HasPrefix(p.previous.Lexeme, "0x") && !strings.HasPrefix(p.previous.Lexeme, "0X") {
			kind = ast.LiteralFloat
		}
		return p.factory.NewLiteralExpr(kind, p.previous.Lexeme, p.previous.Span)
	case token.String:
		p.advance()
		return p.factory.NewLiteralExpr(ast.LiteralString, p.previous.Lexeme, p.previous.Span)
	case token.Char:
		p.advance()
		return p.factory.NewLiteralExpr(ast.LiteralChar, p.previous.Lexeme, p.previous.Span)
	case token.True, token.False:
		p.advance()
		return p.factory.NewLiteralExpr(ast.LiteralBool, p.previous.Lexeme, p.previous.Span)
	case token.Null:
		p.advance()
		return p.factory.NewLiteralExpr(ast.LiteralNull, p.previous.Lexeme, p.previous.Span)
	case token.Identifier:
		parts := p.parseIdentPath()
		return p.factory.NewIdentExpr(parts, p.span(start))
	}

	p.fail("expected expression, got %s %q", p.current.Type, p.current.Lexeme)
	panic(parseError{})
}

func (p *Parser) parseNewExpr() ast.NodeID {
	start := p.current.Span.Start
	p.consume(token.New, "expected 'new'")
	parts := p.parseIdentPath()
	typeRef := p.factory.NewIdentExpr(parts, p.span(start))
	p.consume(token.LParen, "expected '(' after type name in 'new' expression")
	var args []ast.NodeID
	if !p.check(token.RParen) {
		args = append(args, p.parseExpression())
		for p.match(token.Comma) {
			args = append(args, p.parseExpression())
		}
	}
	p.consume(token.RParen, "expected ')' to close 'new' arguments")
	return p.factory.NewNewExpr(typeRef, args, p.span(start))
}

func (p *Parser) parseArrayLiteral() ast.NodeID {
	start := p.current.Span.Start
	p.consume(token.LBracket, "expected '['")
	var elems []ast.NodeID
	if !p.check(token.RBracket) {
		elems = append(elems, p.parseExpression())
		for p.match(token.Comma) {
			elems = append(elems, p.parseExpression())
		}
	}
	p.consume(token.RBracket, "expected ']' to close array literal")
	return p.factory.NewArrayLiteralExpr(elems, p.span(start))
}

func (p *Parser) parsePostfix(left ast.NodeID) ast.NodeID {
	start := p.current.Span.Start
	switch p.current.Type {
	case token.LParen:
		p.advance()
		var args []ast.NodeID
		if !p.check(token.RParen) {
			args = append(args, p.parseExpression())
			for p.match(token.Comma) {
				args = append(args, p.parseExpression())
			}
		}
		p.consume(token.RParen, "expected ')' to close call arguments")
		return p.factory.NewCallExpr(left, args, p.span(start))
	case token.LBracket:
		p.advance()
		index := p.parseExpression()
		p.consume(token.RBracket, "expected ']' to close index expression")
		return p.factory.NewIndexExpr(left, index, p.span(start))
	case token.Dot:
		p.advance()
		member := p.consume(token.Identifier, "expected member name after '.'").Lexeme
		return p.factory.NewMemberExpr(left, member, p.span(start))
	case token.Inc:
		p.advance()
		return p.factory.NewUnaryExpr(ast.UnaryPostInc, left, p.span(start))
	case token.Dec:
		p.advance()
		return p.factory.NewUnaryExpr(ast.UnaryPostDec, left, p.span(start))
	}
	panic("parser: parsePostfix called on non-postfix token")
}

func (p *Parser) parseInfix(left ast.NodeID, prec Precedence) ast.NodeID {
	start := p.current.Span.Start
	opTok := p.current.Type
	p.advance()

	nextMin := prec + 1
	if isRightAssociative(opTok) {
		nextMin = prec
	}

	if opTok == token.Question {
		then := p.parsePrecedence(PrecTernary)
		p.consume(token.Colon, "expected ':' in ternary expression")
		els := p.parsePrecedence(PrecTernary)
		return p.factory.NewTernaryExpr(left, then, els, p.span(start))
	}

	if logOp, ok := logicalOpFor(opTok); ok {
		right := p.parsePrecedence(nextMin)
		return p.factory.NewLogicalExpr(logOp, left, right, p.span(start))
	}

	binOp, ok := binaryOpFor(opTok)
	if !ok {
		p.fail("unexpected infix operator %s", opTok)
		panic(parseError{})
	}
	right := p.parsePrecedence(nextMin)
	return p.factory.NewBinaryExpr(binOp, left, right, p.span(start))
}

func logicalOpFor(t token.Type) (ast.LogicalOp, bool) {
	switch t {
	case token.And:
		return ast.LogicalAnd, true
	case token.Or:
		return ast.LogicalOr, true
	default:
		return 0, false
	}
}

func binaryOpFor(t token.Type) (ast.BinaryOp, bool) {
	switch t {
	case token.Plus:
		return ast.BinAdd, true
	case token.Minus:
		return ast.BinSub, true
	case token.Star:
		return ast.BinMul, true
	case token.Slash:
		return ast.BinDiv, true
	case token.Percent:
		return ast.BinMod, true
	case token.Eq:
		return ast.BinEq, true
	case token.NotEq:
		return ast.BinNotEq, true
	case token.Less:
		return ast.BinLess, true
	case token.LessEq:
		return ast.BinLessEq, true
	case token.Greater:
		return ast.BinGreater, true
	case token.GreaterEq:
		return ast.BinGreaterEq, true
	case token.Amp:
		return ast.BinBitAnd, true
	case token.Pipe:
		return ast.BinBitOr, true
	case token.Caret:
		return ast.BinBitXor, true
	case token.Shl:
		return ast.BinShl, true
	case token.Shr:
		return ast.BinShr, true
	default:
		return 0, false
	}
}
