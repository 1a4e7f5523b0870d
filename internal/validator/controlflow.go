package validator

import "github.com/fly-lang/flyc/internal/ast"

// terminates reports whether executing statement id is guaranteed to leave
// the enclosing function via return or fail rather than falling through —
// the check §4.7 asks for on every non-void function body ("must return on
// every path or end in fail"). It is a structural approximation, the same
// kind a simple "does this block definitely return" checker performs: an
// if needs both branches to terminate, a switch needs every case (and a
// default) to terminate, and a handle statement needs both its guarded
// body and its handler block to terminate. It does not attempt
// reachability analysis through break/continue: a `for` loop with no
// condition counts as terminating and its body is not searched for a
// `break`, so such a loop that a `break` leaves still counts as
// terminating; any loop with a condition counts as non-terminating.
func terminates(f *ast.Factory, id ast.NodeID) bool {
	if id == ast.NoNode {
		return false
	}
	switch f.KindOf(id) {
	case ast.KindReturnStmt, ast.KindFailStmt:
		return true
	case ast.KindBlockStmt:
		stmts := f.BlockStmt(id).Stmts
		if len(stmts) == 0 {
			return false
		}
		return terminates(f, stmts[len(stmts)-1])
	case ast.KindIfStmt:
		s := f.IfStmt(id)
		if s.Else == ast.NoNode {
			return false
		}
		return terminates(f, s.Then) && terminates(f, s.Else)
	case ast.KindSwitchStmt:
		s := f.SwitchStmt(id)
		hasDefault := false
		for _, c := range s.Cases {
			if c.IsDefault {
				hasDefault = true
			}
			if len(c.Body) == 0 {
				return false // falls through to the next label; not self-terminating
			}
			if !terminates(f, c.Body[len(c.Body)-1]) {
				return false
			}
		}
		return hasDefault
	case ast.KindLoopStmt:
		s := f.LoopStmt(id)
		return s.Kind == ast.LoopFor && s.Cond == ast.NoNode
	case ast.KindHandleStmt:
		s := f.HandleStmt(id)
		return terminates(f, s.Body) && terminates(f, s.Block)
	default:
		return false
	}
}
