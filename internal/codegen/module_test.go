package codegen

import (
	"bytes"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/you-not-fish/vela/internal/syntax"
)

func TestModule(t *testing.T) {
	prog, err := syntax.DecodeString("prog.yaml", `
- struct:
    name: Point
    attrs:
      - {name: x, type: i32}
      - {name: y, type: i64}
- struct:
    name: Empty
- constant: {name: WIDTH, type: u16, value: {u16: 640}}
- constant: {name: AREA, type: u32, value: [WIDTH, "*", {u32: 480}, "/", {u32: 7}]}
- constant: {name: RATIO, type: f64, value: [{f64: 1}, "/", {f64: 4}]}
- constant: {name: ON, type: bool, value: [WIDTH, ">", {u16: 100}]}
- constant: {name: NAME, type: string, value: {string: "vela\n"}}
- constant: {name: BAD, type: i8, value: [{i8: 1}, "/", {i8: 0}]}
- function:
    name: add
    params:
      - {name: a, type: i32}
      - {name: p, type: Point}
    result: i32
    body:
      - return: a
- function:
    name: main
`)
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	m := NewModule(&buf, "prog.yaml")
	for _, d := range prog {
		switch d := d.(type) {
		case *syntax.StructTypes:
			m.SetStructType(d)
		case *syntax.Constant:
			m.SetConstant(d)
		case *syntax.FunctionStatement:
			m.FunctionDeclaration(d)
		}
	}
	if err := m.Err(); err != nil {
		t.Fatalf("Err() = %v", err)
	}

	want := `; ModuleID = 'prog.yaml'
source_filename = "prog.yaml"

; Point: size 16, align 8
%Point = type { i32, i64 }

; Empty: size 0, align 1
%Empty = type {}

@WIDTH = constant i16 640

@AREA = constant i32 43885

@RATIO = constant double 0x3FD0000000000000

@ON = constant i1 true

@NAME.str = private unnamed_addr constant [6 x i8] c"vela\0A\00"
@NAME = constant ptr @NAME.str

@BAD = constant i8 undef

declare i32 @add(i32 %a, %Point %p)

declare void @main()
`
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("module output mismatch (-want +got):\n%s", diff)
	}

	if v, ok := m.Value("AREA"); !ok || v.ExactString() != "43885" {
		t.Errorf("Value(AREA) = %v, %v", v, ok)
	}
}

type failWriter struct{ n int }

var errDiskFull = errors.New("disk full")

func (w *failWriter) Write(p []byte) (int, error) {
	if w.n == 0 {
		return 0, errDiskFull
	}
	w.n--
	return len(p), nil
}

func TestModuleFirstWriteError(t *testing.T) {
	w := &failWriter{n: 2}
	m := NewModule(w, "x")
	if m.Err() != nil {
		t.Fatalf("header failed: %v", m.Err())
	}

	fn := &syntax.FunctionStatement{Name: syntax.NewFunctionName("f", pos), ResultType: syntax.None}
	m.FunctionDeclaration(fn)
	m.FunctionDeclaration(fn)
	if !errors.Is(m.Err(), errDiskFull) {
		t.Errorf("Err() = %v, want %v", m.Err(), errDiskFull)
	}
}

func TestDiscard(t *testing.T) {
	// Discard accepts every declaration without side effects.
	Discard.SetStructType(&syntax.StructTypes{})
	Discard.SetConstant(&syntax.Constant{})
	Discard.FunctionDeclaration(&syntax.FunctionStatement{})
}

func TestModuleConstantWithoutValue(t *testing.T) {
	var buf bytes.Buffer
	m := NewModule(&buf, "x")
	m.SetConstant(&syntax.Constant{Name: syntax.NewConstantName("C", pos), Type: syntax.I32})

	if err := m.Err(); err != nil {
		t.Fatalf("Err() = %v", err)
	}
	want := "; ModuleID = 'x'\nsource_filename = \"x\"\n\n@C = constant i32 undef\n"
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("module output mismatch (-want +got):\n%s", diff)
	}
}
