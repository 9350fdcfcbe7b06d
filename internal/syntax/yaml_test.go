package syntax

import (
	"go/constant"
	"go/token"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ----------------------------------------------------------------------------
// Test helpers

func decode(t *testing.T, src string) Main {
	t.Helper()
	prog, err := DecodeString("test.yaml", src)
	require.NoError(t, err)
	return prog
}

func decodeErr(t *testing.T, src string) *DecodeError {
	t.Helper()
	_, err := DecodeString("test.yaml", src)
	require.Error(t, err)
	derr, ok := err.(*DecodeError)
	require.Truef(t, ok, "error %v is %T, want *DecodeError", err, err)
	return derr
}

func decodeFunc(t *testing.T, src string) *FunctionStatement {
	t.Helper()
	prog := decode(t, src)
	require.Len(t, prog, 1)
	fn, ok := prog[0].(*FunctionStatement)
	require.Truef(t, ok, "decl is %T, want *FunctionStatement", prog[0])
	return fn
}

// ----------------------------------------------------------------------------
// Top-level statements

func TestDecodeEmpty(t *testing.T) {
	prog := decode(t, "")
	assert.Empty(t, prog)

	prog = decode(t, "[]")
	assert.Empty(t, prog)
}

func TestDecodeImport(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"dotted", "- import: std.io", "std.io"},
		{"sequence", "- import: [std, io, file]", "std.io.file"},
		{"single", "- import: math", "math"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prog := decode(t, tt.src)
			require.Len(t, prog, 1)
			imp, ok := prog[0].(*ImportDecl)
			require.True(t, ok)
			assert.Equal(t, tt.want, imp.Path.Name())
			assert.Equal(t, tt.want, NameOf(imp))
		})
	}
}

func TestDecodeConstant(t *testing.T) {
	prog := decode(t, `
- constant:
    name: MAX
    type: i32
    value: {i32: 10}
- constant:
    name: DOUBLE
    type: i32
    value: [MAX, "*", {i32: 2}]
`)
	require.Len(t, prog, 2)

	max := prog[0].(*Constant)
	assert.Equal(t, "MAX", max.Name.Name())
	assert.Equal(t, I32, max.Type)
	lit, ok := max.Value.Value.(*PrimitiveValue)
	require.True(t, ok)
	assert.Equal(t, I32, lit.Kind)
	assert.Equal(t, "10", lit.Value.ExactString())
	assert.Empty(t, max.Value.Ops)

	double := prog[1].(*Constant)
	assert.Equal(t, "MAX * 2:i32", ConstantExprString(double.Value))
	names := double.Value.Operands()
	require.Len(t, names, 2)
	assert.Equal(t, ConstantName{NewIdent("MAX", names[0].Pos())}, names[0])
}

func TestDecodeStruct(t *testing.T) {
	prog := decode(t, `
- struct:
    name: Point
    attrs:
      - {name: x, type: i32}
      - {name: y, type: i32}
- struct:
    name: Line
    attrs:
      - {name: from, type: Point}
      - {name: to, type: Point}
      - {name: tags, type: {array: {type: u8, size: 4}}}
`)
	require.Len(t, prog, 2)

	point := prog[0].(*StructTypes)
	assert.Equal(t, "Point", NameOf(point))
	require.Len(t, point.Attrs, 2)
	assert.Equal(t, "x", point.Attrs[0].Name.Name())
	assert.Equal(t, I32, point.Attrs[1].Type)

	line := prog[1].(*StructTypes)
	require.Len(t, line.Attrs, 3)
	from, ok := line.Attrs[0].Type.(*StructType)
	require.True(t, ok)
	assert.Equal(t, "Point", from.Name())
	assert.Len(t, from.Attrs, 2, "struct references resolve to earlier declarations")
	assert.Equal(t, "[u8;4]", line.Attrs[2].Type.Name())
}

func TestDecodeFunction(t *testing.T) {
	fn := decodeFunc(t, `
- function:
    name: add
    params:
      - {name: a, type: i32}
      - {name: b, type: i32}
    result: i32
    body:
      - return: [a, "+", b]
`)
	assert.Equal(t, "add", fn.Name.Name())
	require.Len(t, fn.Parameters, 2)
	assert.Equal(t, "b", fn.Parameters[1].Name.Name())
	assert.Equal(t, I32, fn.ResultType)
	require.Len(t, fn.Body, 1)
	ret, ok := fn.Body[0].(*ReturnStmt)
	require.True(t, ok)
	assert.Equal(t, "a + b", ExprString(ret.Result))
}

func TestDecodeFunctionDefaults(t *testing.T) {
	fn := decodeFunc(t, `
- function:
    name: main
`)
	assert.Equal(t, None, fn.ResultType)
	assert.Empty(t, fn.Parameters)
	assert.Empty(t, fn.Body)
}

// ----------------------------------------------------------------------------
// Statements

func TestDecodeStatements(t *testing.T) {
	fn := decodeFunc(t, `
- function:
    name: main
    body:
      - let: {name: x, type: u64, value: {u64: 1}}
      - let: {name: y, value: [x, "<", {u64: 5}]}
      - call: {name: print, args: [x, [x, "-", {u64: 1}]]}
      - expr: {call: {name: tick}}
      - loop:
          - if:
              cond: [x, ">", {u64: 3}]
              then:
                - break: ~
              else:
                - continue: ~
      - if:
          cond: y
          then:
            - return: x
          elif:
            - cond: [x, "==", {u64: 0}]
              then:
                - return: {u64: 0}
          else:
            - return: {u64: 1}
`)
	want := []string{
		"*syntax.LetBinding",
		"*syntax.LetBinding",
		"*syntax.FunctionCall",
		"*syntax.ExprStmt",
		"*syntax.LoopStmt",
		"*syntax.IfStmt",
	}
	require.Len(t, fn.Body, len(want))
	for i, s := range fn.Body {
		assert.Equal(t, want[i], typeName(s), "statement %d", i)
	}

	let := fn.Body[0].(*LetBinding)
	assert.Equal(t, U64, let.Type)
	assert.Nil(t, fn.Body[1].(*LetBinding).Type)
	assert.True(t, fn.Body[1].(*LetBinding).Value.HasComparison())

	call := fn.Body[2].(*FunctionCall)
	assert.Equal(t, "print(x, x - 1:u64)", callString(call))

	loop := fn.Body[4].(*LoopStmt)
	require.Len(t, loop.Body, 1)
	inner, ok := loop.Body[0].(*IfLoopStmt)
	require.True(t, ok, "an if inside a loop decodes as *IfLoopStmt")
	assert.IsType(t, &BreakStmt{}, inner.Body[0])
	assert.IsType(t, &ContinueStmt{}, inner.Else[0])

	ifs := fn.Body[5].(*IfStmt)
	require.Len(t, ifs.ElseIf, 1)
	assert.Len(t, ifs.ElseIf[0].Body, 1)
	assert.Nil(t, ifs.ElseIf[0].Else)
	assert.Len(t, ifs.Else, 1)
}

func typeName(s Stmt) string {
	switch s.(type) {
	case *LetBinding:
		return "*syntax.LetBinding"
	case *FunctionCall:
		return "*syntax.FunctionCall"
	case *ExprStmt:
		return "*syntax.ExprStmt"
	case *LoopStmt:
		return "*syntax.LoopStmt"
	case *IfStmt:
		return "*syntax.IfStmt"
	case *IfLoopStmt:
		return "*syntax.IfLoopStmt"
	case *ReturnStmt:
		return "*syntax.ReturnStmt"
	case *BreakStmt:
		return "*syntax.BreakStmt"
	case *ContinueStmt:
		return "*syntax.ContinueStmt"
	}
	return "?"
}

func TestDecodeLogicCondition(t *testing.T) {
	fn := decodeFunc(t, `
- function:
    name: f
    params: [{name: a, type: i32}]
    body:
      - if:
          cond:
            logic:
              - {left: a, op: ">", right: {i32: 0}}
              - and
              - {left: a, op: "<", right: {i32: 10}}
              - or
              - {left: a, op: "==", right: {i32: 99}}
          then: []
`)
	ifs := fn.Body[0].(*IfStmt)
	lc, ok := ifs.Condition.(*ExpressionLogicCondition)
	require.True(t, ok)
	conds := lc.Conditions()
	require.Len(t, conds, 3)
	assert.Equal(t, CondGreat, conds[0].Cond)
	assert.Equal(t, LogicAnd, lc.Ops[0].Logic)
	assert.Equal(t, LogicOr, lc.Ops[1].Logic)
	assert.Equal(t, "(a > 0:i32) and (a < 10:i32) or (a == 99:i32)", CondString(lc))
	assert.NotNil(t, ifs.Body)
	assert.Empty(t, ifs.Body)
}

func TestDecodeLiterals(t *testing.T) {
	tests := []struct {
		src  string
		kind PrimitiveType
		want constant.Value
	}{
		{"{u8: 255}", U8, constant.MakeInt64(255)},
		{"{i8: -128}", I8, constant.MakeInt64(-128)},
		{"{u64: 0x10}", U64, constant.MakeInt64(16)},
		{"{f64: 1.5}", F64, constant.MakeFloat64(1.5)},
		{"{bool: true}", Bool, constant.MakeBool(true)},
		{"{string: hello}", String, constant.MakeString("hello")},
		{"{char: z}", Char, constant.MakeInt64('z')},
		{"{none: ~}", None, nil},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			fn := decodeFunc(t, "- function:\n    name: f\n    body:\n      - expr: "+tt.src+"\n")
			lit, ok := fn.Body[0].(*ExprStmt).X.Value.(*PrimitiveValue)
			require.True(t, ok)
			assert.Equal(t, tt.kind, lit.Kind)
			if tt.want == nil {
				assert.Nil(t, lit.Value)
				return
			}
			assert.True(t, constant.Compare(lit.Value, token.EQL, tt.want),
				"value %s, want %s", lit.Value, tt.want)
		})
	}
}

func TestDecodePositions(t *testing.T) {
	fn := decodeFunc(t, `- function:
    name: main
    body:
      - let: {name: x, value: {i32: 1}}
`)
	assert.Equal(t, "test.yaml:1:3", fn.Pos().String())
	assert.Equal(t, "test.yaml:2:11", fn.Name.Pos().String())
	let := fn.Body[0].(*LetBinding)
	assert.Equal(t, 4, let.Pos().Line())
	assert.Equal(t, 9, let.Pos().Col())
	assert.Equal(t, "test.yaml:4:21", let.Name.Pos().String())
}

// ----------------------------------------------------------------------------
// Errors

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		wantMsg string
	}{
		{
			name:    "break in function body",
			src:     "- function:\n    name: f\n    body:\n      - break: ~\n",
			wantMsg: "break is not allowed in function body",
		},
		{
			name:    "continue in if body",
			src:     "- function:\n    name: f\n    body:\n      - if: {cond: a, then: [{continue: ~}]}\n",
			wantMsg: "continue is not allowed in if body",
		},
		{
			name:    "expr in loop body",
			src:     "- function:\n    name: f\n    body:\n      - loop: [{expr: a}]\n",
			wantMsg: "expr is not allowed in loop body",
		},
		{
			name:    "unknown top level",
			src:     "- global: x\n",
			wantMsg: `unknown top-level statement "global"`,
		},
		{
			name:    "unknown statement",
			src:     "- function:\n    name: f\n    body:\n      - goto: x\n",
			wantMsg: `unknown statement "goto"`,
		},
		{
			name:    "unknown operator",
			src:     "- function:\n    name: f\n    body:\n      - expr: [a, \"%\", b]\n",
			wantMsg: `unknown operator "%"`,
		},
		{
			name:    "dangling operator",
			src:     "- function:\n    name: f\n    body:\n      - expr: [a, \"+\"]\n",
			wantMsg: "expression must alternate operands and operators",
		},
		{
			name:    "integer overflow",
			src:     "- constant: {name: C, type: u8, value: {u8: 256}}\n",
			wantMsg: "literal 256 overflows u8",
		},
		{
			name:    "negative unsigned",
			src:     "- constant: {name: C, type: u16, value: {u16: -1}}\n",
			wantMsg: "literal -1 overflows u16",
		},
		{
			name:    "bad char",
			src:     "- constant: {name: C, type: char, value: {char: ab}}\n",
			wantMsg: `char literal must be exactly one character, got "ab"`,
		},
		{
			name:    "missing field",
			src:     "- constant: {name: C, type: i32}\n",
			wantMsg: `constant is missing "value"`,
		},
		{
			name:    "unknown field",
			src:     "- struct: {name: S, fields: []}\n",
			wantMsg: `unknown struct field "fields"`,
		},
		{
			name:    "bad array size",
			src:     "- constant: {name: C, type: {array: {type: i32, size: -2}}, value: {i32: 0}}\n",
			wantMsg: `array size must be a non-negative integer, got "-2"`,
		},
		{
			name:    "bad logic operator",
			src:     "- function:\n    name: f\n    body:\n      - if: {cond: {logic: [{left: a, op: \">\", right: b}, xor, {left: a, op: \"<\", right: b}]}}\n",
			wantMsg: `unknown logic operator "xor"`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := decodeErr(t, tt.src)
			assert.Equal(t, tt.wantMsg, err.Msg)
			assert.True(t, err.Pos.IsValid(), "error position %v is not valid", err.Pos)
			assert.True(t, strings.HasPrefix(err.Error(), "test.yaml:"))
		})
	}
}

func TestDecodeMalformedYAML(t *testing.T) {
	_, err := DecodeString("bad.yaml", "- [unclosed\n")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode bad.yaml")
	_, isDecode := err.(*DecodeError)
	assert.False(t, isDecode)
}

func TestDecodeFirstErrorWins(t *testing.T) {
	err := decodeErr(t, "- goto: a\n- global: b\n")
	assert.Equal(t, `unknown top-level statement "goto"`, err.Msg)
	assert.Equal(t, 1, err.Pos.Line())
}

func TestDecodeBareReturn(t *testing.T) {
	fn := decodeFunc(t, `
- function:
    name: main
    body:
      - return: ~
`)
	require.Len(t, fn.Body, 1)
	ret, ok := fn.Body[0].(*ReturnStmt)
	require.True(t, ok)
	assert.Nil(t, ret.Result)
}
