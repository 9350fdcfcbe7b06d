// Package syntax defines the program tree analysed by the vela front end.
//
// The tree is produced once (by a parser or by Decode) and is treated as
// immutable input by every later phase.
package syntax

import "strings"

// ----------------------------------------------------------------------------
// Interfaces
//
// All tree nodes implement Node. Top-level declarations further implement
// Decl; statements implement Stmt and one or more of the per-context
// statement sets declared in stmt.go.

// Node is the interface implemented by all tree nodes.
type Node interface {
	Pos() Pos // position of the first character belonging to the node
	aNode()   // marker method to restrict implementations to this package
}

// Decl is the interface for top-level statements of a program.
type Decl interface {
	Node
	aDecl()
}

// ----------------------------------------------------------------------------
// Base node types

// node is the base struct embedded in all tree nodes.
type node struct {
	pos Pos
}

func (n *node) Pos() Pos { return n.pos }
func (n *node) aNode()   {}

// decl is embedded in all declaration nodes.
type decl struct{ node }

func (*decl) aDecl() {}

// ----------------------------------------------------------------------------
// Identifiers

// Ident is a raw identifier together with the position it was written at.
type Ident struct {
	Value string
	pos   Pos
}

// NewIdent returns an identifier for name located at pos.
func NewIdent(name string, pos Pos) Ident {
	return Ident{Value: name, pos: pos}
}

// Name returns the identifier text.
func (id Ident) Name() string { return id.Value }

// Pos returns the identifier position.
func (id Ident) Pos() Pos { return id.pos }

func (Ident) aNode() {}

// The typed identifier wrappers below keep identifier categories apart:
// a ValueName can never be passed where a FunctionName is expected.

// ImportName is one segment of an import path.
type ImportName struct{ Ident }

// ConstantName names a top-level constant.
type ConstantName struct{ Ident }

// FunctionName names a function.
type FunctionName struct{ Ident }

// ParameterName names a function parameter.
type ParameterName struct{ Ident }

// ValueName names a local value.
type ValueName struct{ Ident }

// NewConstantName returns a ConstantName for name at pos.
func NewConstantName(name string, pos Pos) ConstantName {
	return ConstantName{NewIdent(name, pos)}
}

// NewFunctionName returns a FunctionName for name at pos.
func NewFunctionName(name string, pos Pos) FunctionName {
	return FunctionName{NewIdent(name, pos)}
}

// NewParameterName returns a ParameterName for name at pos.
func NewParameterName(name string, pos Pos) ParameterName {
	return ParameterName{NewIdent(name, pos)}
}

// NewValueName returns a ValueName for name at pos.
func NewValueName(name string, pos Pos) ValueName {
	return ValueName{NewIdent(name, pos)}
}

// ImportPath is a dotted import path: std.io.file
type ImportPath []ImportName

// Name returns the path segments joined with ".".
func (p ImportPath) Name() string {
	parts := make([]string, len(p))
	for i, seg := range p {
		parts[i] = seg.Name()
	}
	return strings.Join(parts, ".")
}

// ----------------------------------------------------------------------------
// Declarations

// Main is a whole program: top-level statements in source order.
type Main []Decl

// ImportDecl represents an import statement: import std.io
type ImportDecl struct {
	decl
	Path ImportPath
}

// Constant represents a constant declaration: const Name: Type = Value
type Constant struct {
	decl
	Name  ConstantName
	Type  Type
	Value *ConstantExpression
}

// StructTypes represents a struct type declaration.
type StructTypes struct {
	decl
	Name  Ident
	Attrs []*StructAttr // ordered attributes
}

// Type returns the struct type described by the declaration.
func (d *StructTypes) Type() *StructType {
	return &StructType{TypeName: d.Name, Attrs: d.Attrs}
}

// FunctionParameter is one named, typed function parameter.
type FunctionParameter struct {
	node
	Name ParameterName
	Type Type
}

// FunctionStatement represents a function declaration.
// fn Name(Parameters) -> ResultType { Body }
type FunctionStatement struct {
	decl
	Name       FunctionName
	Parameters []*FunctionParameter
	ResultType Type
	Body       []BodyStmt
}

// NameOf returns the declared name of a top-level statement.
// For imports it is the dotted path.
func NameOf(d Decl) string {
	switch d := d.(type) {
	case *ImportDecl:
		return d.Path.Name()
	case *Constant:
		return d.Name.Name()
	case *StructTypes:
		return d.Name.Name()
	case *FunctionStatement:
		return d.Name.Name()
	}
	return ""
}

// TypeOf returns the declared type of a top-level statement, if it has one.
// A function reports its result type; an import has none.
func TypeOf(d Decl) Type {
	switch d := d.(type) {
	case *Constant:
		return d.Type
	case *StructTypes:
		return d.Type()
	case *FunctionStatement:
		return d.ResultType
	}
	return nil
}
