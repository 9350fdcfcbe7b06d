package types2

import "github.com/you-not-fish/vela/internal/syntax"

// blockMustReturn reports whether every control-flow path through list
// ends in a return.
func blockMustReturn[S syntax.Stmt](list []S) bool {
	for _, s := range list {
		if stmtMustReturn(s) {
			return true
		}
	}
	return false
}

func stmtMustReturn(s syntax.Stmt) bool {
	switch s := s.(type) {
	case *syntax.ReturnStmt:
		return true

	case *syntax.IfStmt:
		// Without an else, the condition may be false.
		if s.Else == nil {
			return false
		}
		return blockMustReturn(s.Else) && branchesMustReturn(s.Body, s.ElseIf, ifMustReturn)

	case *syntax.IfLoopStmt:
		if s.Else == nil {
			return false
		}
		return blockMustReturn(s.Else) && branchesMustReturn(s.Body, s.ElseIf, ifLoopMustReturn)

	case *syntax.LoopStmt:
		// A loop is only left through break or return.
		return !hasBreak(s)
	}
	return false
}

// branchesMustReturn reports whether body and every else-if terminate.
func branchesMustReturn[S syntax.Stmt, E any](body []S, elseIfs []E, elseIf func(E) bool) bool {
	if !blockMustReturn(body) {
		return false
	}
	for _, e := range elseIfs {
		if !elseIf(e) {
			return false
		}
	}
	return true
}

// ifMustReturn reports whether an else-if terminates. Its own else,
// if any, must terminate too; a missing one is covered by the outer else.
func ifMustReturn(s *syntax.IfStmt) bool {
	if s.Else != nil && !blockMustReturn(s.Else) {
		return false
	}
	return branchesMustReturn(s.Body, s.ElseIf, ifMustReturn)
}

func ifLoopMustReturn(s *syntax.IfLoopStmt) bool {
	if s.Else != nil && !blockMustReturn(s.Else) {
		return false
	}
	return branchesMustReturn(s.Body, s.ElseIf, ifLoopMustReturn)
}

// hasBreak reports whether loop contains a break that leaves it.
// Breaks of nested loops are not counted.
func hasBreak(loop *syntax.LoopStmt) bool {
	found := false
	for _, s := range loop.Body {
		syntax.Inspect(s, func(n syntax.Node) bool {
			switch n.(type) {
			case *syntax.LoopStmt:
				return false
			case *syntax.BreakStmt:
				found = true
			}
			return !found
		})
	}
	return found
}
