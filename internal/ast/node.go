// Package ast defines fly's untyped abstract syntax tree: the parser's
// output and the resolver/validator's input. Nodes are never allocated with
// &T{} and linked by pointer; every node lives in a Factory-owned arena and
// is referred to everywhere else — including parent links — by NodeID. This
// keeps node identity (for diagnostics, for go-cmp equality checks that must
// ignore identity) separate from node content.
package ast

import "github.com/fly-lang/flyc/internal/source"

// NodeID is an arena index. NoNode (-1) never refers to a real node; the
// zero value 0 is the first node a Factory allocates, and every
// Factory.New* method returns a NodeID greater than NoNode.
type NodeID int

// NoNode is the invalid/absent NodeID, used for optional child links (e.g.
// an IfStmt with no else branch).
const NoNode NodeID = -1

// Kind discriminates what a NodeID actually points at without a type
// assertion; Factory stores one Kind per arena slot alongside the node
// value itself, so Resolver/Validator can dispatch on Kind before ever
// touching the Expr/Stmt/TopDef interfaces.
type Kind int

const (
	KindInvalid Kind = iota

	// Expressions.
	KindLiteralExpr
	KindIdentExpr
	KindCallExpr
	KindUnaryExpr
	KindBinaryExpr
	KindLogicalExpr
	KindTernaryExpr
	KindIndexExpr
	KindMemberExpr
	KindNewExpr
	KindArrayLiteralExpr

	// Statements.
	KindExprStmt
	KindAssignStmt
	KindVarStmt
	KindReturnStmt
	KindFailStmt
	KindBreakStmt
	KindContinueStmt
	KindDeleteStmt
	KindBlockStmt
	KindIfStmt
	KindSwitchStmt
	KindLoopStmt
	KindHandleStmt

	// Top-level definitions.
	KindNamespaceDecl
	KindImportDecl
	KindVariableDecl
	KindFunctionDecl
	KindClassDecl
	KindEnumDecl
)

// Node is implemented by every arena entry; Span lets diagnostics locate it
// without a separate position table.
type Node interface {
	Span() source.Span
}

// Expr is implemented by every expression node.
type Expr interface {
	Node
	exprNode()
}

// Stmt is implemented by every statement node (TopDef is a Stmt that is
// also directly a child of a Module).
type Stmt interface {
	Node
	stmtNode()
}

// TopDef is implemented by every declaration that can appear directly in a
// Module body: imports, global variables, functions, classes, enums.
type TopDef interface {
	Stmt
	topDefNode()
}

// Visitor is implemented by every AST consumer (resolver, validator,
// printers). It is kept total by construction: adding a node kind without
// adding its VisitX method here is a compile error everywhere that embeds
// this interface directly, which is why Resolver/Validator always declare
// the full method set rather than embedding a "Base" no-op visitor.
type Visitor interface {
	VisitLiteralExpr(id NodeID, n *LiteralExpr) error
	VisitIdentExpr(id NodeID, n *IdentExpr) error
	VisitCallExpr(id NodeID, n *CallExpr) error
	VisitUnaryExpr(id NodeID, n *UnaryExpr) error
	VisitBinaryExpr(id NodeID, n *BinaryExpr) error
	VisitLogicalExpr(id NodeID, n *LogicalExpr) error
	VisitTernaryExpr(id NodeID, n *TernaryExpr) error
	VisitIndexExpr(id NodeID, n *IndexExpr) error
	VisitMemberExpr(id NodeID, n *MemberExpr) error
	VisitNewExpr(id NodeID, n *NewExpr) error
	VisitArrayLiteralExpr(id NodeID, n *ArrayLiteralExpr) error

	VisitExprStmt(id NodeID, n *ExprStmt) error
	VisitAssignStmt(id NodeID, n *AssignStmt) error
	VisitVarStmt(id NodeID, n *VarStmt) error
	VisitReturnStmt(id NodeID, n *ReturnStmt) error
	VisitFailStmt(id NodeID, n *FailStmt) error
	VisitBreakStmt(id NodeID, n *BreakStmt) error
	VisitContinueStmt(id NodeID, n *ContinueStmt) error
	VisitDeleteStmt(id NodeID, n *DeleteStmt) error
	VisitBlockStmt(id NodeID, n *BlockStmt) error
	VisitIfStmt(id NodeID, n *IfStmt) error
	VisitSwitchStmt(id NodeID, n *SwitchStmt) error
	VisitLoopStmt(id NodeID, n *LoopStmt) error
	VisitHandleStmt(id NodeID, n *HandleStmt) error

	VisitImportDecl(id NodeID, n *ImportDecl) error
	VisitVariableDecl(id NodeID, n *VariableDecl) error
	VisitFunctionDecl(id NodeID, n *FunctionDecl) error
	VisitClassDecl(id NodeID, n *ClassDecl) error
	VisitEnumDecl(id NodeID, n *EnumDecl) error
}

// Walk dispatches id to the matching VisitX method on v, using the Factory
// to fetch the concrete node. It is the one place a Kind switch and a type
// assertion are paired, so every other consumer can just implement Visitor.
func Walk(f *Factory, v Visitor, id NodeID) error {
	if id == NoNode {
		return nil
	}
	switch f.KindOf(id) {
	case KindLiteralExpr:
		return v.VisitLiteralExpr(id, f.LiteralExpr(id))
	case KindIdentExpr:
		return v.VisitIdentExpr(id, f.IdentExpr(id))
	case KindCallExpr:
		return v.VisitCallExpr(id, f.CallExpr(id))
	case KindUnaryExpr:
		return v.VisitUnaryExpr(id, f.UnaryExpr(id))
	case KindBinaryExpr:
		return v.VisitBinaryExpr(id, f.BinaryExpr(id))
	case KindLogicalExpr:
		return v.VisitLogicalExpr(id, f.LogicalExpr(id))
	case KindTernaryExpr:
		return v.VisitTernaryExpr(id, f.TernaryExpr(id))
	case KindIndexExpr:
		return v.VisitIndexExpr(id, f.IndexExpr(id))
	case KindMemberExpr:
		return v.VisitMemberExpr(id, f.MemberExpr(id))
	case KindNewExpr:
		return v.VisitNewExpr(id, f.NewExpr(id))
	case KindArrayLiteralExpr:
		return v.VisitArrayLiteralExpr(id, f.ArrayLiteralExpr(id))
	case KindExprStmt:
		return v.VisitExprStmt(id, f.ExprStmt(id))
	case KindAssignStmt:
		return v.VisitAssignStmt(id, f.AssignStmt(id))
	case KindVarStmt:
		return v.VisitVarStmt(id, f.VarStmt(id))
	case KindReturnStmt:
		return v.VisitReturnStmt(id, f.ReturnStmt(id))
	case KindFailStmt:
		return v.VisitFailStmt(id, f.FailStmt(id))
	case KindBreakStmt:
		return v.VisitBreakStmt(id, f.BreakStmt(id))
	case KindContinueStmt:
		return v.VisitContinueStmt(id, f.ContinueStmt(id))
	case KindDeleteStmt:
		return v.VisitDeleteStmt(id, f.DeleteStmt(id))
	case KindBlockStmt:
		return v.VisitBlockStmt(id, f.BlockStmt(id))
	case KindIfStmt:
		return v.VisitIfStmt(id, f.IfStmt(id))
	case KindSwitchStmt:
		return v.VisitSwitchStmt(id, f.SwitchStmt(id))
	case KindLoopStmt:
		return v.VisitLoopStmt(id, f.LoopStmt(id))
	case KindHandleStmt:
		return v.VisitHandleStmt(id, f.HandleStmt(id))
	case KindImportDecl:
		return v.VisitImportDecl(id, f.ImportDecl(id))
	case KindVariableDecl:
		return v.VisitVariableDecl(id, f.VariableDecl(id))
	case KindFunctionDecl:
		return v.VisitFunctionDecl(id, f.FunctionDecl(id))
	case KindClassDecl:
		return v.VisitClassDecl(id, f.ClassDecl(id))
	case KindEnumDecl:
		return v.VisitEnumDecl(id, f.EnumDecl(id))
	default:
		panic("ast: Walk on unregistered NodeID")
	}
}
