package types2

import (
	"github.com/you-not-fish/vela/internal/syntax"
	"github.com/you-not-fish/vela/internal/types"
)

// expr checks an expression chain and returns its type: the type of the
// first operand, or bool if the chain contains a comparison.
//
// Every non-literal operand and every applied operator allocates one
// register.
func (c *Checker) expr(e *syntax.Expression) (syntax.Type, error) {
	typ, err := c.operand(e.Value)
	if err != nil {
		return nil, err
	}
	for _, op := range e.Ops {
		if _, err := c.operand(op.Value); err != nil {
			return nil, err
		}
		c.scope.IncRegister()
	}
	if e.HasComparison() {
		return syntax.Bool, nil
	}
	return typ, nil
}

// operand checks a single operand of an expression chain.
func (c *Checker) operand(v syntax.ExpressionValue) (syntax.Type, error) {
	switch v := v.(type) {
	case syntax.ValueName:
		typ, err := c.value(v)
		if err != nil {
			return nil, err
		}
		c.scope.IncRegister()
		return typ, nil

	case *syntax.PrimitiveValue:
		return v.Kind, nil

	case *syntax.FunctionCall:
		return c.call(v)
	}
	return nil, invalidAST("unexpected operand %T", v)
}

// value resolves a name used as a value: a binding visible from the
// current block, else a global constant.
func (c *Checker) value(name syntax.ValueName) (syntax.Type, error) {
	if v := c.scope.GetValue(name.Name()); v != nil {
		return v.Type, nil
	}
	if typ, ok := c.globals.Constant(name.Name()); ok {
		return typ, nil
	}
	return nil, types.NewError(types.ValueNotFound, name.Ident)
}

// call checks a function call and returns the callee's result type.
// A function may call itself before its signature is registered.
func (c *Checker) call(call *syntax.FunctionCall) (syntax.Type, error) {
	var sig *types.Signature
	if c.fn != nil && call.Name.Name() == c.fn.Name.Name() {
		sig = c.sig
	} else {
		s, err := c.globals.ResolveFunction(call.Name)
		if err != nil {
			return nil, err
		}
		sig = s
	}

	for _, a := range call.Args {
		if _, err := c.expr(a); err != nil {
			return nil, err
		}
	}
	c.scope.IncRegister()
	return sig.Result, nil
}

// condition checks the condition of an if statement. In a logic chain
// each comparison and each and/or allocates one register.
func (c *Checker) condition(cond syntax.IfCondition) error {
	switch cond := cond.(type) {
	case *syntax.Expression:
		_, err := c.expr(cond)
		return err

	case *syntax.ExpressionLogicCondition:
		for i, ec := range cond.Conditions() {
			if _, err := c.expr(ec.Left); err != nil {
				return err
			}
			if _, err := c.expr(ec.Right); err != nil {
				return err
			}
			c.scope.IncRegister()
			if i > 0 {
				c.scope.IncRegister()
			}
		}
		return nil
	}
	return invalidAST("unexpected condition %T", cond)
}
