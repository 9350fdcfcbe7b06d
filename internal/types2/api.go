package types2

import (
	"io/ioutil"

	"github.com/sirupsen/logrus"
	"github.com/you-not-fish/vela/internal/codegen"
	"github.com/you-not-fish/vela/internal/syntax"
	"github.com/you-not-fish/vela/internal/types"
)

// Config specifies the configuration for checking.
type Config struct {
	// Codegen receives every top-level declaration that passed checking.
	// If nil, declarations are discarded.
	Codegen codegen.Codegen

	// Logger receives a debug record for each checked declaration.
	// If nil, nothing is logged.
	Logger logrus.FieldLogger

	// Error is called with the semantic error that stopped checking.
	Error ErrorHandler
}

// Info holds the results of checking.
type Info struct {
	// Bindings maps each let-binding to the value it declared.
	Bindings map[*syntax.LetBinding]*types.Value

	// Params maps each function parameter to its value.
	Params map[*syntax.FunctionParameter]*types.Value

	// Scopes maps each checked function to the root block of its body.
	Scopes map[*syntax.FunctionStatement]*types.BlockState
}

// Check checks a program one top-level statement at a time, in order.
// Each declaration that passes is recorded in the returned symbol table
// and forwarded to conf.Codegen. Checking stops at the first error.
func Check(prog syntax.Main, conf *Config, info *Info) (*types.Globals, error) {
	if conf == nil {
		conf = &Config{}
	}

	// Initialize info maps if not provided
	if info != nil {
		if info.Bindings == nil {
			info.Bindings = make(map[*syntax.LetBinding]*types.Value)
		}
		if info.Params == nil {
			info.Params = make(map[*syntax.FunctionParameter]*types.Value)
		}
		if info.Scopes == nil {
			info.Scopes = make(map[*syntax.FunctionStatement]*types.BlockState)
		}
	}

	c := &Checker{
		conf:    conf,
		info:    info,
		gen:     conf.Codegen,
		log:     conf.Logger,
		globals: types.NewGlobals(),
	}
	if c.gen == nil {
		c.gen = codegen.Discard
	}
	if c.log == nil {
		l := logrus.New()
		l.Out = ioutil.Discard
		c.log = l
	}

	if err := c.checkMain(prog); err != nil {
		c.report(err)
		return c.globals, err
	}
	return c.globals, nil
}
