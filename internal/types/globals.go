package types

import (
	"fmt"
	"sort"
	"strings"

	mapset "github.com/deckarep/golang-set"
	"github.com/you-not-fish/vela/internal/syntax"
)

// Globals is the global symbol table of one compilation unit: every
// top-level constant, type and function name.
//
// Entries are permanent. A declaration that fails leaves the table as it
// was before the call.
type Globals struct {
	constants map[string]syntax.Type
	types     mapset.Set
	functions map[string]*Signature
}

// NewGlobals returns an empty symbol table.
func NewGlobals() *Globals {
	return &Globals{
		constants: make(map[string]syntax.Type),
		types:     mapset.NewThreadUnsafeSet(),
		functions: make(map[string]*Signature),
	}
}

// DeclareConstant records a constant of type typ.
// It fails with ConstantAlreadyExist if the name is taken.
func (g *Globals) DeclareConstant(name syntax.ConstantName, typ syntax.Type) error {
	if _, ok := g.constants[name.Name()]; ok {
		return NewError(ConstantAlreadyExist, name.Ident)
	}
	g.constants[name.Name()] = typ
	return nil
}

// DeclareType records a type name.
// It fails with TypeAlreadyExist if the name is taken.
func (g *Globals) DeclareType(name syntax.Ident) error {
	if !g.types.Add(name.Name()) {
		return NewError(TypeAlreadyExist, name)
	}
	return nil
}

// DeclareFunction records a function signature.
// It fails with FunctionAlreadyExist if the name is taken.
func (g *Globals) DeclareFunction(name syntax.FunctionName, sig *Signature) error {
	if _, ok := g.functions[name.Name()]; ok {
		return NewError(FunctionAlreadyExist, name.Ident)
	}
	g.functions[name.Name()] = sig
	return nil
}

// ResolveFunction returns the signature of the named function.
// It fails with FunctionNotFound if no such function was declared.
func (g *Globals) ResolveFunction(name syntax.FunctionName) (*Signature, error) {
	sig, ok := g.functions[name.Name()]
	if !ok {
		return nil, NewError(FunctionNotFound, name.Ident)
	}
	return sig, nil
}

// Constant returns the declared type of the named constant.
func (g *Globals) Constant(name string) (syntax.Type, bool) {
	typ, ok := g.constants[name]
	return typ, ok
}

// Function returns the signature of the named function.
func (g *Globals) Function(name string) (*Signature, bool) {
	sig, ok := g.functions[name]
	return sig, ok
}

// HasType reports whether a type of that name was declared.
func (g *Globals) HasType(name string) bool { return g.types.Contains(name) }

// HasFunction reports whether a function of that name was declared.
func (g *Globals) HasFunction(name string) bool {
	_, ok := g.functions[name]
	return ok
}

// ConstantNames returns all constant names, sorted.
func (g *Globals) ConstantNames() []string {
	names := make([]string, 0, len(g.constants))
	for name := range g.constants {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// TypeNames returns all type names, sorted.
func (g *Globals) TypeNames() []string {
	return sortedSet(g.types)
}

// FunctionNames returns all function names, sorted.
func (g *Globals) FunctionNames() []string {
	names := make([]string, 0, len(g.functions))
	for name := range g.functions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the total number of entries.
func (g *Globals) Len() int {
	return len(g.constants) + g.types.Cardinality() + len(g.functions)
}

// String returns a listing of the table for debugging.
func (g *Globals) String() string {
	var buf strings.Builder
	buf.WriteString("globals {\n")
	for _, name := range g.ConstantNames() {
		fmt.Fprintf(&buf, "  const %s: %s\n", name, typeName(g.constants[name]))
	}
	for _, name := range g.TypeNames() {
		fmt.Fprintf(&buf, "  type %s\n", name)
	}
	for _, name := range g.FunctionNames() {
		fmt.Fprintf(&buf, "  func %s%s\n", name, g.functions[name])
	}
	buf.WriteString("}\n")
	return buf.String()
}

func sortedSet(s mapset.Set) []string {
	names := make([]string, 0, s.Cardinality())
	for _, v := range s.ToSlice() {
		names = append(names, v.(string))
	}
	sort.Strings(names)
	return names
}
