package types2

import "github.com/you-not-fish/vela/internal/syntax"

// stmtList checks a list of statements in source order.
func stmtList[S syntax.Stmt](c *Checker, list []S) error {
	for _, s := range list {
		if err := c.stmt(s); err != nil {
			return err
		}
	}
	return nil
}

// stmt checks a single statement.
func (c *Checker) stmt(s syntax.Stmt) error {
	switch s := s.(type) {
	case *syntax.LetBinding:
		return c.letBinding(s)

	case *syntax.FunctionCall:
		_, err := c.call(s)
		return err

	case *syntax.IfStmt:
		return c.ifStmt(s)

	case *syntax.IfLoopStmt:
		return c.ifLoopStmt(s)

	case *syntax.LoopStmt:
		return c.loopStmt(s)

	case *syntax.ExprStmt:
		_, err := c.expr(s.X)
		return err

	case *syntax.ReturnStmt:
		if s.Result == nil {
			return nil
		}
		_, err := c.expr(s.Result)
		return err

	case *syntax.BreakStmt, *syntax.ContinueStmt:
		// Only constructible inside loops
		return nil
	}
	return invalidAST("unexpected statement %T", s)
}

// letBinding checks the value of a let-binding in the current block and
// then binds the name. The value cannot see the name it initializes.
func (c *Checker) letBinding(s *syntax.LetBinding) error {
	typ, err := c.expr(s.Value)
	if err != nil {
		return err
	}
	if s.Type != nil {
		typ = s.Type
	}
	c.bindings[s] = c.bind(s.Name.Ident, typ)
	return nil
}

// ifStmt checks an if statement outside of a loop.
func (c *Checker) ifStmt(s *syntax.IfStmt) error {
	return checkIf(c, s.Condition, s.Body, s.Else, len(s.ElseIf) > 0, func() error {
		for _, elif := range s.ElseIf {
			if err := c.ifStmt(elif); err != nil {
				return err
			}
		}
		return nil
	})
}

// ifLoopStmt checks an if statement inside a loop.
func (c *Checker) ifLoopStmt(s *syntax.IfLoopStmt) error {
	return checkIf(c, s.Condition, s.Body, s.Else, len(s.ElseIf) > 0, func() error {
		for _, elif := range s.ElseIf {
			if err := c.ifLoopStmt(elif); err != nil {
				return err
			}
		}
		return nil
	})
}

// checkIf checks the condition, allocates the branch labels, and checks
// the body, the else-if chain and the else body. The body and the else
// body each get their own block.
func checkIf[S syntax.Stmt](c *Checker, cond syntax.IfCondition, body, els []S, hasElseIf bool, elseIfs func() error) error {
	if err := c.condition(cond); err != nil {
		return err
	}

	c.scope.SetAndGetLabel("if_begin")
	if els != nil || hasElseIf {
		c.scope.SetAndGetLabel("if_else")
	}
	c.scope.SetAndGetLabel("if_end")

	if err := block(c, "if body", body); err != nil {
		return err
	}
	if err := elseIfs(); err != nil {
		return err
	}
	if els != nil {
		return block(c, "else body", els)
	}
	return nil
}

// loopStmt checks a loop.
func (c *Checker) loopStmt(s *syntax.LoopStmt) error {
	c.scope.SetAndGetLabel("loop_begin")
	c.scope.SetAndGetLabel("loop_end")
	return block(c, "loop", s.Body)
}
