package syntax

import (
	"fmt"
	"go/constant"
	"go/token"
)

// Type is the interface implemented by all declared types:
// PrimitiveType, *StructType and *ArrayType.
type Type interface {
	// Name returns the textual name of the type.
	Name() string

	aType()
}

// PrimitiveType is one of the built-in scalar types.
type PrimitiveType uint8

const (
	U8 PrimitiveType = iota
	U16
	U32
	U64
	I8
	I16
	I32
	I64
	F32
	F64
	Bool
	String
	Char
	None

	primitiveCount
)

var primitiveNames = [...]string{
	U8:     "u8",
	U16:    "u16",
	U32:    "u32",
	U64:    "u64",
	I8:     "i8",
	I16:    "i16",
	I32:    "i32",
	I64:    "i64",
	F32:    "f32",
	F64:    "f64",
	Bool:   "bool",
	String: "string",
	Char:   "char",
	None:   "none",
}

// Name returns the primitive type name (u8, i64, bool, none, ...).
func (p PrimitiveType) Name() string {
	if p < primitiveCount {
		return primitiveNames[p]
	}
	return fmt.Sprintf("primitive(%d)", uint8(p))
}

// String implements fmt.Stringer.
func (p PrimitiveType) String() string { return p.Name() }

func (PrimitiveType) aType() {}

// IsInteger reports whether p is a signed or unsigned integer type.
func (p PrimitiveType) IsInteger() bool { return p <= I64 }

// IsUnsigned reports whether p is an unsigned integer type.
func (p PrimitiveType) IsUnsigned() bool { return p <= U64 }

// IsFloat reports whether p is f32 or f64.
func (p PrimitiveType) IsFloat() bool { return p == F32 || p == F64 }

// Representable reports whether the integer constant v fits the integer
// type p. A char is treated as an unsigned byte.
func Representable(v constant.Value, p PrimitiveType) bool {
	if v.Kind() != constant.Int {
		return false
	}
	var bits uint
	unsigned := p.IsUnsigned()
	switch p {
	case U8, I8:
		bits = 8
	case Char:
		bits, unsigned = 8, true
	case U16, I16:
		bits = 16
	case U32, I32:
		bits = 32
	case U64, I64:
		bits = 64
	default:
		return false
	}
	one := constant.MakeInt64(1)
	if unsigned {
		limit := constant.Shift(one, token.SHL, bits)
		return constant.Sign(v) >= 0 && constant.Compare(v, token.LSS, limit)
	}
	limit := constant.Shift(one, token.SHL, bits-1)
	return constant.Compare(v, token.GEQ, constant.UnaryOp(token.SUB, limit, 0)) &&
		constant.Compare(v, token.LSS, limit)
}

// LookupPrimitive returns the primitive type with the given name.
func LookupPrimitive(name string) (PrimitiveType, bool) {
	for i, n := range primitiveNames {
		if n == name {
			return PrimitiveType(i), true
		}
	}
	return 0, false
}

// StructAttr is one named attribute of a struct type.
type StructAttr struct {
	Name Ident
	Type Type
}

// StructType is a named struct type with ordered attributes.
type StructType struct {
	TypeName Ident
	Attrs    []*StructAttr
}

// Name returns the struct name.
func (t *StructType) Name() string { return t.TypeName.Name() }

func (*StructType) aType() {}

// ArrayType is a fixed-size array: [Elem;Size]
// The size is part of the type, never a runtime value.
type ArrayType struct {
	Elem Type
	Size uint32
}

// Name returns "[elem;size]".
func (t *ArrayType) Name() string {
	return fmt.Sprintf("[%s;%d]", t.Elem.Name(), t.Size)
}

func (*ArrayType) aType() {}
