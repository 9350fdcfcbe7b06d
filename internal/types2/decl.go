package types2

import (
	"github.com/sirupsen/logrus"
	"github.com/you-not-fish/vela/internal/syntax"
	"github.com/you-not-fish/vela/internal/types"
)

// decl checks one top-level statement and forwards it to code generation.
func (c *Checker) decl(d syntax.Decl) error {
	switch d := d.(type) {
	case *syntax.ImportDecl:
		c.log.WithFields(logrus.Fields{"kind": "import", "name": d.Path.Name()}).Debug("import accepted")
		return nil
	case *syntax.Constant:
		return c.constDecl(d)
	case *syntax.StructTypes:
		return c.structDecl(d)
	case *syntax.FunctionStatement:
		return c.funcDecl(d)
	}
	return invalidAST("unexpected declaration %T", d)
}

// constDecl checks a constant declaration. Every constant it refers to
// must have been declared before it.
func (c *Checker) constDecl(d *syntax.Constant) error {
	if d.Value == nil {
		return invalidAST("constant %s has no value", d.Name.Name())
	}
	for _, v := range d.Value.Operands() {
		name, ok := v.(syntax.ConstantName)
		if !ok {
			continue
		}
		if _, ok := c.globals.Constant(name.Name()); !ok {
			return types.NewError(types.ValueNotFound, name.Ident)
		}
	}
	if err := c.globals.DeclareConstant(d.Name, d.Type); err != nil {
		return err
	}
	c.gen.SetConstant(d)
	c.log.WithFields(logrus.Fields{"kind": "constant", "name": d.Name.Name()}).Debug("declaration checked")
	return nil
}

// structDecl checks a struct type declaration.
func (c *Checker) structDecl(d *syntax.StructTypes) error {
	if err := c.globals.DeclareType(d.Name); err != nil {
		return err
	}
	c.gen.SetStructType(d)
	c.log.WithFields(logrus.Fields{"kind": "struct", "name": d.Name.Name()}).Debug("declaration checked")
	return nil
}

// funcDecl checks a function declaration. The signature is registered
// only after the whole body passed, so a failing function leaves no trace
// in the symbol table.
func (c *Checker) funcDecl(d *syntax.FunctionStatement) error {
	name := d.Name.Name()
	if c.globals.HasFunction(name) {
		return types.NewError(types.FunctionAlreadyExist, d.Name.Ident)
	}

	// Save function context
	c.fn = d
	c.sig = types.NewSignature(d)
	c.scope = nil
	c.params = make(map[*syntax.FunctionParameter]*types.Value)
	c.bindings = make(map[*syntax.LetBinding]*types.Value)
	defer func() {
		c.fn, c.sig, c.scope = nil, nil, nil
		c.params, c.bindings = nil, nil
	}()

	root := c.openScope("function " + name)
	for _, p := range d.Parameters {
		c.params[p] = c.bind(p.Name.Ident, p.Type)
	}

	if err := stmtList(c, d.Body); err != nil {
		return err
	}
	if hasResult(d) && !blockMustReturn(d.Body) {
		return types.NewError(types.ReturnNotFound, d.Name.Ident)
	}

	if err := c.globals.DeclareFunction(d.Name, c.sig); err != nil {
		return err
	}
	if c.info != nil {
		c.info.Scopes[d] = root
		for p, v := range c.params {
			c.info.Params[p] = v
		}
		for s, v := range c.bindings {
			c.info.Bindings[s] = v
		}
	}
	c.gen.FunctionDeclaration(d)
	c.log.WithFields(logrus.Fields{
		"kind":      "function",
		"name":      name,
		"registers": root.Register(),
		"labels":    len(root.Labels()),
	}).Debug("declaration checked")
	return nil
}

// hasResult reports whether fn must return a value.
func hasResult(fn *syntax.FunctionStatement) bool {
	return fn.ResultType != nil && fn.ResultType != syntax.None
}
