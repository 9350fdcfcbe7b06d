// Package types holds the symbol state of the vela front end: the global
// symbol table, the per-function block scope tree, the semantic error
// model and type layout.
package types

import (
	"strings"

	"github.com/you-not-fish/vela/internal/syntax"
)

// Value is a local value binding: a let-bound value or a parameter.
type Value struct {
	InnerName string      // function-unique storage name
	Type      syntax.Type // declared or inferred type
	Allocated bool        // storage has been reserved for the value
	Pos       syntax.Pos  // declaration position
}

// NewValue returns a binding stored under innerName.
func NewValue(innerName string, typ syntax.Type, pos syntax.Pos) *Value {
	return &Value{InnerName: innerName, Type: typ, Pos: pos}
}

// String returns "inner: type".
func (v *Value) String() string {
	if v.Type == nil {
		return v.InnerName
	}
	return v.InnerName + ": " + v.Type.Name()
}

// Signature is the callable shape of a function.
type Signature struct {
	Result syntax.Type
	Params []syntax.Type
}

// NewSignature returns the signature declared by fn.
func NewSignature(fn *syntax.FunctionStatement) *Signature {
	sig := &Signature{Result: fn.ResultType, Params: make([]syntax.Type, len(fn.Parameters))}
	for i, p := range fn.Parameters {
		sig.Params[i] = p.Type
	}
	return sig
}

// String returns "(p1, p2) -> result".
func (s *Signature) String() string {
	var buf strings.Builder
	buf.WriteByte('(')
	for i, p := range s.Params {
		if i > 0 {
			buf.WriteString(", ")
		}
		buf.WriteString(typeName(p))
	}
	buf.WriteString(") -> ")
	buf.WriteString(typeName(s.Result))
	return buf.String()
}

func typeName(t syntax.Type) string {
	if t == nil {
		return "none"
	}
	return t.Name()
}
