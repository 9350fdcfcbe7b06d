// Package codegen is the boundary between semantic checking and code
// generation, together with a textual LLVM-flavoured reference backend.
package codegen

import "github.com/you-not-fish/vela/internal/syntax"

// Codegen receives top-level declarations once they have passed semantic
// checking. It is given the original tree nodes and never sees the
// checker's scope state.
type Codegen interface {
	SetStructType(d *syntax.StructTypes)
	SetConstant(d *syntax.Constant)
	FunctionDeclaration(d *syntax.FunctionStatement)
}

// Discard is a Codegen that ignores every declaration.
var Discard Codegen = discard{}

type discard struct{}

func (discard) SetStructType(*syntax.StructTypes)             {}
func (discard) SetConstant(*syntax.Constant)                  {}
func (discard) FunctionDeclaration(*syntax.FunctionStatement) {}
