package types

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/you-not-fish/vela/internal/syntax"
)

var testPos = syntax.NewPos("test.yaml", 3, 7)

func TestDeclareFunctionTwice(t *testing.T) {
	g := NewGlobals()
	sig := &Signature{Result: syntax.I32, Params: []syntax.Type{syntax.I32}}

	require.NoError(t, g.DeclareFunction(syntax.NewFunctionName("f", testPos), sig))

	err := g.DeclareFunction(syntax.NewFunctionName("f", testPos), &Signature{Result: syntax.Bool})
	require.Error(t, err)
	var terr *Error
	require.True(t, errors.As(err, &terr))
	assert.Equal(t, FunctionAlreadyExist, terr.Kind)
	assert.Equal(t, "f", terr.Value)

	got, ok := g.Function("f")
	require.True(t, ok)
	assert.Same(t, sig, got, "the failing call leaves the table unchanged")
}

func TestDeclareDuplicates(t *testing.T) {
	tests := []struct {
		name    string
		declare func(g *Globals) error
		kind    ErrorKind
	}{
		{
			name: "constant",
			declare: func(g *Globals) error {
				return g.DeclareConstant(syntax.NewConstantName("C", testPos), syntax.U8)
			},
			kind: ConstantAlreadyExist,
		},
		{
			name: "type",
			declare: func(g *Globals) error {
				return g.DeclareType(syntax.NewIdent("Point", testPos))
			},
			kind: TypeAlreadyExist,
		},
		{
			name: "function",
			declare: func(g *Globals) error {
				return g.DeclareFunction(syntax.NewFunctionName("main", testPos), &Signature{Result: syntax.None})
			},
			kind: FunctionAlreadyExist,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewGlobals()
			require.NoError(t, tt.declare(g))
			before := g.String()

			err := tt.declare(g)
			assert.True(t, errors.Is(err, &Error{Kind: tt.kind}), "got %v", err)
			assert.Equal(t, before, g.String())
			assert.Equal(t, 1, g.Len())
		})
	}
}

func TestNamespacesAreSeparate(t *testing.T) {
	g := NewGlobals()
	require.NoError(t, g.DeclareConstant(syntax.NewConstantName("x", testPos), syntax.I32))
	require.NoError(t, g.DeclareType(syntax.NewIdent("x", testPos)))
	require.NoError(t, g.DeclareFunction(syntax.NewFunctionName("x", testPos), &Signature{}))
	assert.Equal(t, 3, g.Len())
}

func TestResolveFunction(t *testing.T) {
	g := NewGlobals()
	sig := &Signature{Result: syntax.None}
	require.NoError(t, g.DeclareFunction(syntax.NewFunctionName("print", testPos), sig))

	got, err := g.ResolveFunction(syntax.NewFunctionName("print", testPos))
	require.NoError(t, err)
	assert.Same(t, sig, got)

	_, err = g.ResolveFunction(syntax.NewFunctionName("nope", syntax.NewPos("m.yaml", 9, 2)))
	require.Error(t, err)
	assert.Equal(t, "(functionNotFound for value nope at m.yaml:9:2)", err.Error())
}

func TestGlobalsListings(t *testing.T) {
	g := NewGlobals()
	for _, name := range []string{"B", "A", "C"} {
		require.NoError(t, g.DeclareConstant(syntax.NewConstantName(name, testPos), syntax.I64))
	}
	require.NoError(t, g.DeclareType(syntax.NewIdent("Vec", testPos)))
	require.NoError(t, g.DeclareType(syntax.NewIdent("Point", testPos)))
	require.NoError(t, g.DeclareFunction(syntax.NewFunctionName("add", testPos),
		&Signature{Result: syntax.I32, Params: []syntax.Type{syntax.I32, syntax.I32}}))

	if diff := cmp.Diff([]string{"A", "B", "C"}, g.ConstantNames()); diff != "" {
		t.Errorf("ConstantNames mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"Point", "Vec"}, g.TypeNames()); diff != "" {
		t.Errorf("TypeNames mismatch (-want +got):\n%s", diff)
	}
	assert.True(t, g.HasType("Vec"))
	assert.False(t, g.HasType("A"))
	assert.True(t, g.HasFunction("add"))

	typ, ok := g.Constant("B")
	assert.True(t, ok)
	assert.Equal(t, syntax.I64, typ)

	want := `globals {
  const A: i64
  const B: i64
  const C: i64
  type Point
  type Vec
  func add(i32, i32) -> i32
}
`
	if diff := cmp.Diff(want, g.String()); diff != "" {
		t.Errorf("String mismatch (-want +got):\n%s", diff)
	}
}

func TestErrorString(t *testing.T) {
	tests := []struct {
		err  *Error
		want string
	}{
		{
			err:  NewError(ValueNotFound, syntax.NewIdent("y", syntax.NewPos("a.yaml", 4, 12))),
			want: "(valueNotFound for value y at a.yaml:4:12)",
		},
		{
			err:  &Error{Kind: ReturnNotFound, Value: "main", Pos: syntax.NewPos("", 1, 3)},
			want: "(returnNotFound for value main at 1:3)",
		},
		{
			err:  &Error{Kind: TypeAlreadyExist, Value: "P"},
			want: "(typeAlreadyExist for value P at 0:0)",
		},
	}
	for _, tt := range tests {
		if got := tt.err.Error(); got != tt.want {
			t.Errorf("Error() = %q, want %q", got, tt.want)
		}
	}
	assert.Equal(t, "ErrorKind(42)", ErrorKind(42).String())
}

func TestNewSignature(t *testing.T) {
	fn := &syntax.FunctionStatement{
		Name: syntax.NewFunctionName("area", testPos),
		Parameters: []*syntax.FunctionParameter{
			{Name: syntax.NewParameterName("w", testPos), Type: syntax.F64},
			{Name: syntax.NewParameterName("h", testPos), Type: syntax.F64},
		},
		ResultType: syntax.F64,
	}
	assert.Equal(t, "(f64, f64) -> f64", NewSignature(fn).String())
}
