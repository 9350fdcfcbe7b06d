package types

import "github.com/you-not-fish/vela/internal/syntax"

// Target sizes in bytes.
const (
	SizePtr  = 8
	AlignPtr = 8
)

// Sizes provides size and alignment calculations for types.
type Sizes struct{}

// DefaultSizes is the default Sizes implementation.
var DefaultSizes = &Sizes{}

// Layout is the memory layout of a struct type.
type Layout struct {
	Size    int64
	Align   int64
	Offsets []int64 // one per attribute, in declaration order
}

// Sizeof returns the size of type T in bytes.
func (s *Sizes) Sizeof(T syntax.Type) int64 {
	switch t := T.(type) {
	case syntax.PrimitiveType:
		return s.primitiveSize(t)
	case *syntax.ArrayType:
		return int64(t.Size) * s.Sizeof(t.Elem)
	case *syntax.StructType:
		return s.Layout(t).Size
	}
	return 0
}

// Alignof returns the alignment of type T in bytes.
func (s *Sizes) Alignof(T syntax.Type) int64 {
	switch t := T.(type) {
	case syntax.PrimitiveType:
		return s.primitiveAlign(t)
	case *syntax.ArrayType:
		if t.Size == 0 {
			return 1
		}
		return s.Alignof(t.Elem)
	case *syntax.StructType:
		return s.Layout(t).Align
	}
	return 1
}

// Layout computes the size, alignment and attribute offsets of a struct.
func (s *Sizes) Layout(st *syntax.StructType) Layout {
	var offset int64
	var maxAlign int64 = 1
	offsets := make([]int64, len(st.Attrs))

	for i, a := range st.Attrs {
		size := s.Sizeof(a.Type)
		al := s.Alignof(a.Type)

		offset = align(offset, al)
		offsets[i] = offset
		offset += size

		if al > maxAlign {
			maxAlign = al
		}
	}

	// Add padding at end for struct alignment
	return Layout{Size: align(offset, maxAlign), Align: maxAlign, Offsets: offsets}
}

func (s *Sizes) primitiveSize(p syntax.PrimitiveType) int64 {
	switch p {
	case syntax.U8, syntax.I8, syntax.Bool, syntax.Char:
		return 1
	case syntax.U16, syntax.I16:
		return 2
	case syntax.U32, syntax.I32, syntax.F32:
		return 4
	case syntax.U64, syntax.I64, syntax.F64:
		return 8
	case syntax.String:
		return SizePtr
	}
	// none has no storage
	return 0
}

func (s *Sizes) primitiveAlign(p syntax.PrimitiveType) int64 {
	if p == syntax.String {
		return AlignPtr
	}
	if size := s.primitiveSize(p); size > 0 {
		return size
	}
	return 1
}

// align returns x rounded up to a multiple of a.
func align(x, a int64) int64 {
	return (x + a - 1) &^ (a - 1)
}
