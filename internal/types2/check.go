package types2

import (
	"github.com/sirupsen/logrus"
	"github.com/you-not-fish/vela/internal/codegen"
	"github.com/you-not-fish/vela/internal/syntax"
	"github.com/you-not-fish/vela/internal/types"
)

// Checker is the semantic checker.
type Checker struct {
	conf    *Config
	info    *Info
	gen     codegen.Codegen
	log     logrus.FieldLogger
	globals *types.Globals

	// Function context
	fn    *syntax.FunctionStatement // function being checked
	sig   *types.Signature          // its signature, registered once the body passed
	scope *types.BlockState         // current block

	// Values recorded for the function being checked; copied to info
	// once the function is registered.
	params   map[*syntax.FunctionParameter]*types.Value
	bindings map[*syntax.LetBinding]*types.Value
}

// checkMain checks the top-level statements of prog in source order.
func (c *Checker) checkMain(prog syntax.Main) error {
	for _, d := range prog {
		if err := c.decl(d); err != nil {
			return err
		}
	}
	return nil
}

// openScope creates a new block as a child of the current block.
func (c *Checker) openScope(comment string) *types.BlockState {
	c.scope = types.NewBlockState(c.scope, comment)
	return c.scope
}

// closeScope returns to the parent block.
func (c *Checker) closeScope() {
	c.scope = c.scope.Parent()
}

// bind declares a value in the current block. The value is stored under
// its own name unless that name is already used somewhere in the
// function, in which case it gets the next free suffixed name.
func (c *Checker) bind(id syntax.Ident, typ syntax.Type) *types.Value {
	inner := id.Name()
	if c.scope.HasInnerValueName(inner) {
		inner = c.scope.GetNextInnerName(inner)
	}
	c.scope.SetInnerValueName(inner)
	v := types.NewValue(inner, typ, id.Pos())
	c.scope.SetValue(id.Name(), v)
	return v
}

// block checks list in a new child block.
func block[S syntax.Stmt](c *Checker, comment string, list []S) error {
	c.openScope(comment)
	defer c.closeScope()
	return stmtList(c, list)
}
