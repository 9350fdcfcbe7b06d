package codegen

import (
	"fmt"
	"go/constant"
	"io"
	"strings"

	"github.com/you-not-fish/vela/internal/syntax"
	"github.com/you-not-fish/vela/internal/types"
)

// Module is a Codegen that writes every declaration it receives to w as
// LLVM-flavoured text: named struct types with their layout, folded
// constants and function declarations.
//
// Write errors are not reported per call; the first one is kept and
// returned by Err.
type Module struct {
	e      emitter
	sizes  *types.Sizes
	consts map[string]constant.Value // folded constants, by name
}

// NewModule returns a Module writing to w and emits the module header.
func NewModule(w io.Writer, name string) *Module {
	m := &Module{
		e:      emitter{w: w},
		sizes:  types.DefaultSizes,
		consts: make(map[string]constant.Value),
	}
	m.e.emitComment("ModuleID = '%s'", name)
	m.e.emit("source_filename = \"%s\"", llvmEscapeString(name))
	return m
}

// Err returns the first write error, if any.
func (m *Module) Err() error {
	return m.e.err
}

// Value returns the folded value of a constant emitted so far.
func (m *Module) Value(name string) (constant.Value, bool) {
	v, ok := m.consts[name]
	return v, ok
}

// SetStructType emits a named struct type.
func (m *Module) SetStructType(d *syntax.StructTypes) {
	st := d.Type()
	l := m.sizes.Layout(st)
	m.e.emitLine()
	m.e.emitComment("%s: size %d, align %d", st.Name(), l.Size, l.Align)
	m.e.emit("%%%s = type %s", st.Name(), llvmStructBody(st.Attrs))
}

// SetConstant folds the constant's value and emits it as a global.
func (m *Module) SetConstant(d *syntax.Constant) {
	name := d.Name.Name()
	intDiv := false
	if p, ok := d.Type.(syntax.PrimitiveType); ok {
		intDiv = p.IsInteger() || p == syntax.Char
	}
	v := fold(d.Value, m.consts, intDiv)
	m.consts[name] = v

	m.e.emitLine()
	switch {
	case d.Type == syntax.None:
		m.e.emitComment("constant %s has no value", name)
	case d.Type == syntax.String && v.Kind() == constant.String:
		s := constant.StringVal(v)
		m.e.emit("@%s.str = private unnamed_addr constant [%d x i8] c\"%s\\00\"", name, len(s)+1, llvmEscapeString(s))
		m.e.emit("@%s = constant ptr @%s.str", name, name)
	default:
		m.e.emit("@%s = constant %s %s", name, llvmType(d.Type), llvmConst(d.Type, v))
	}
}

// FunctionDeclaration emits the declaration of a function.
func (m *Module) FunctionDeclaration(d *syntax.FunctionStatement) {
	params := make([]string, len(d.Parameters))
	for i, p := range d.Parameters {
		params[i] = fmt.Sprintf("%s %%%s", llvmType(p.Type), p.Name.Name())
	}
	m.e.emitLine()
	m.e.emit("declare %s @%s(%s)", llvmReturnType(d), d.Name.Name(), strings.Join(params, ", "))
}
