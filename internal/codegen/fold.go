package codegen

import (
	"fmt"
	"go/constant"
	"go/token"
	"math"
	"strings"

	"github.com/you-not-fish/vela/internal/syntax"
)

// fold evaluates a constant chain strictly left to right. consts holds the
// values of the constants folded so far. With intDiv set, division of two
// integers truncates. Any operand or operation that cannot be evaluated
// makes the result unknown.
func fold(e *syntax.ConstantExpression, consts map[string]constant.Value, intDiv bool) constant.Value {
	if e == nil {
		return constant.MakeUnknown()
	}
	x := operandValue(e.Value, consts)
	for _, op := range e.Ops {
		x = binary(x, op.Op, operandValue(op.Value, consts), intDiv)
	}
	return x
}

func operandValue(v syntax.ConstantValue, consts map[string]constant.Value) constant.Value {
	switch v := v.(type) {
	case syntax.ConstantName:
		if c, ok := consts[v.Name()]; ok {
			return c
		}
	case *syntax.PrimitiveValue:
		if v.Value != nil {
			return v.Value
		}
	}
	return constant.MakeUnknown()
}

func isNumeric(k constant.Kind) bool {
	return k == constant.Int || k == constant.Float
}

var compareTokens = map[syntax.Operator]token.Token{
	syntax.Eq:      token.EQL,
	syntax.NotEq:   token.NEQ,
	syntax.Great:   token.GTR,
	syntax.Less:    token.LSS,
	syntax.GreatEq: token.GEQ,
	syntax.LessEq:  token.LEQ,
}

// binary applies op to x and y.
func binary(x constant.Value, op syntax.Operator, y constant.Value, intDiv bool) constant.Value {
	unknown := constant.MakeUnknown()
	if isNumeric(x.Kind()) && isNumeric(y.Kind()) && x.Kind() != y.Kind() {
		x, y = constant.ToFloat(x), constant.ToFloat(y)
	}
	kind := x.Kind()
	if kind == constant.Unknown || kind != y.Kind() {
		return unknown
	}

	switch op {
	case syntax.Plus:
		if kind == constant.Bool {
			return unknown
		}
		return constant.BinaryOp(x, token.ADD, y)

	case syntax.Minus, syntax.Multiply:
		if !isNumeric(kind) {
			return unknown
		}
		tok := token.SUB
		if op == syntax.Multiply {
			tok = token.MUL
		}
		return constant.BinaryOp(x, tok, y)

	case syntax.Divide:
		if !isNumeric(kind) || constant.Sign(y) == 0 {
			return unknown
		}
		if kind == constant.Int && intDiv {
			return constant.BinaryOp(x, token.QUO_ASSIGN, y)
		}
		return constant.BinaryOp(x, token.QUO, y)

	case syntax.ShiftLeft, syntax.ShiftRight:
		s, ok := constant.Uint64Val(y)
		if kind != constant.Int || !ok || s >= 64 {
			return unknown
		}
		tok := token.SHL
		if op == syntax.ShiftRight {
			tok = token.SHR
		}
		return constant.Shift(x, tok, uint(s))

	case syntax.And, syntax.Or, syntax.Xor:
		switch kind {
		case constant.Bool:
			a, b := constant.BoolVal(x), constant.BoolVal(y)
			switch op {
			case syntax.And:
				return constant.MakeBool(a && b)
			case syntax.Or:
				return constant.MakeBool(a || b)
			}
			return constant.MakeBool(a != b)
		case constant.Int:
			tok := token.AND
			switch op {
			case syntax.Or:
				tok = token.OR
			case syntax.Xor:
				tok = token.XOR
			}
			return constant.BinaryOp(x, tok, y)
		}
		return unknown
	}

	if tok, ok := compareTokens[op]; ok {
		if kind == constant.Bool && tok != token.EQL && tok != token.NEQ {
			return unknown
		}
		return constant.MakeBool(constant.Compare(x, tok, y))
	}
	return unknown
}

// llvmConst formats v as an LLVM constant of type t, or "undef" if v is
// not representable in t.
func llvmConst(t syntax.Type, v constant.Value) string {
	p, ok := t.(syntax.PrimitiveType)
	if !ok || v.Kind() == constant.Unknown {
		return "undef"
	}
	switch {
	case p.IsInteger() || p == syntax.Char:
		iv := constant.ToInt(v)
		if !syntax.Representable(iv, p) {
			return "undef"
		}
		return iv.ExactString()
	case p.IsFloat():
		fv := constant.ToFloat(v)
		if fv.Kind() != constant.Float {
			return "undef"
		}
		f, _ := constant.Float64Val(fv)
		if p == syntax.F32 {
			f = float64(float32(f))
		}
		return formatFloat(f)
	case p == syntax.Bool:
		if v.Kind() != constant.Bool {
			return "undef"
		}
		if constant.BoolVal(v) {
			return "true"
		}
		return "false"
	}
	return "undef"
}

// formatFloat returns the exact hexadecimal LLVM spelling of f.
func formatFloat(f float64) string {
	if math.IsInf(f, 1) {
		return "0x7FF0000000000000"
	}
	if math.IsInf(f, -1) {
		return "0xFFF0000000000000"
	}
	if math.IsNaN(f) {
		return "0x7FF8000000000000"
	}
	return fmt.Sprintf("0x%016X", math.Float64bits(f))
}

// llvmEscapeString returns an LLVM IR escaped string literal.
// Non-printable characters and backslash are escaped as \HH.
func llvmEscapeString(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '\\' || c == '"' || c < 0x20 || c >= 0x7f {
			fmt.Fprintf(&b, "\\%02X", c)
		} else {
			b.WriteByte(c)
		}
	}
	return b.String()
}
