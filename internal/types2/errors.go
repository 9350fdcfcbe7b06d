// Package types2 implements semantic checking for vela programs.
package types2

import (
	"github.com/pkg/errors"
	"github.com/you-not-fish/vela/internal/types"
)

// ErrorHandler is called with the error that stopped checking.
type ErrorHandler func(err *types.Error)

// report passes a semantic error to the configured handler.
func (c *Checker) report(err error) {
	var terr *types.Error
	if c.conf.Error != nil && errors.As(err, &terr) {
		c.conf.Error(terr)
	}
}

// invalidAST returns an error for a tree node the checker cannot handle.
func invalidAST(format string, args ...interface{}) error {
	return errors.Errorf("invalid tree: "+format, args...)
}
