package codegen

import (
	"fmt"
	"strings"

	"github.com/you-not-fish/vela/internal/syntax"
)

// llvmType maps a declared type to its LLVM IR type string.
func llvmType(t syntax.Type) string {
	switch t := t.(type) {
	case syntax.PrimitiveType:
		return llvmPrimitiveType(t)
	case *syntax.ArrayType:
		return fmt.Sprintf("[%d x %s]", t.Size, llvmType(t.Elem))
	case *syntax.StructType:
		return "%" + t.Name()
	}
	return "void"
}

// llvmPrimitiveType maps a primitive type to LLVM IR.
func llvmPrimitiveType(p syntax.PrimitiveType) string {
	switch p {
	case syntax.U8, syntax.I8, syntax.Char:
		return "i8"
	case syntax.U16, syntax.I16:
		return "i16"
	case syntax.U32, syntax.I32:
		return "i32"
	case syntax.U64, syntax.I64:
		return "i64"
	case syntax.F32:
		return "float"
	case syntax.F64:
		return "double"
	case syntax.Bool:
		return "i1"
	case syntax.String:
		return "ptr"
	}
	return "void"
}

// llvmStructBody returns the LLVM struct type literal for the attributes
// of a struct.
func llvmStructBody(attrs []*syntax.StructAttr) string {
	if len(attrs) == 0 {
		return "{}"
	}
	fields := make([]string, len(attrs))
	for i, a := range attrs {
		fields[i] = llvmType(a.Type)
	}
	return "{ " + strings.Join(fields, ", ") + " }"
}

// llvmReturnType returns the LLVM return type of a function.
// Returns "void" if the function has no result.
func llvmReturnType(fn *syntax.FunctionStatement) string {
	if fn.ResultType == nil {
		return "void"
	}
	return llvmType(fn.ResultType)
}
