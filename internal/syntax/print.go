package syntax

import (
	"fmt"
	"io"
	"strings"
)

// Fprint writes a textual representation of the program to w.
func Fprint(w io.Writer, prog Main) {
	p := &printer{w: w}
	for _, d := range prog {
		p.print(d)
	}
}

// FprintNode writes a textual representation of a single node to w.
func FprintNode(w io.Writer, n Node) {
	p := &printer{w: w}
	p.print(n)
}

type printer struct {
	w      io.Writer
	indent int
}

func (p *printer) printf(format string, args ...interface{}) {
	fmt.Fprintf(p.w, "%s%s", strings.Repeat("  ", p.indent), fmt.Sprintf(format, args...))
}

func (p *printer) block(label string, list []Stmt) {
	if list == nil {
		return
	}
	p.printf("%s:\n", label)
	p.indent++
	for _, s := range list {
		p.print(s)
	}
	p.indent--
}

func (p *printer) print(n Node) {
	switch n := n.(type) {
	case *ImportDecl:
		p.printf("Import %s %s\n", n.Path.Name(), n.pos)

	case *Constant:
		p.printf("Constant %s %s\n", n.Name.Name(), n.pos)
		p.indent++
		p.printf("Type: %s\n", n.Type.Name())
		p.printf("Value: %s\n", ConstantExprString(n.Value))
		p.indent--

	case *StructTypes:
		p.printf("Struct %s %s\n", n.Name.Name(), n.pos)
		p.indent++
		for _, a := range n.Attrs {
			p.printf("%s %s\n", a.Name.Name(), a.Type.Name())
		}
		p.indent--

	case *FunctionStatement:
		p.printf("Function %s %s\n", n.Name.Name(), n.pos)
		p.indent++
		if len(n.Parameters) > 0 {
			p.printf("Params:\n")
			p.indent++
			for _, param := range n.Parameters {
				p.printf("%s %s\n", param.Name.Name(), param.Type.Name())
			}
			p.indent--
		}
		p.printf("Result: %s\n", n.ResultType.Name())
		p.block("Body", stmts(n.Body))
		p.indent--

	case *LetBinding:
		typ := ""
		if n.Type != nil {
			typ = ": " + n.Type.Name()
		}
		p.printf("Let %s%s = %s\n", n.Name.Name(), typ, ExprString(n.Value))

	case *FunctionCall:
		p.printf("Call %s\n", callString(n))

	case *ExprStmt:
		p.printf("Expr %s\n", ExprString(n.X))

	case *ReturnStmt:
		p.printf("Return %s\n", ExprString(n.Result))

	case *BreakStmt:
		p.printf("Break\n")

	case *ContinueStmt:
		p.printf("Continue\n")

	case *LoopStmt:
		p.printf("Loop\n")
		p.indent++
		for _, s := range n.Body {
			p.print(s)
		}
		p.indent--

	case *IfStmt:
		p.printf("If %s\n", CondString(n.Condition))
		p.indent++
		p.block("Then", stmts(n.Body))
		for _, elif := range n.ElseIf {
			p.printf("ElseIf:\n")
			p.indent++
			p.print(elif)
			p.indent--
		}
		p.block("Else", stmts(n.Else))
		p.indent--

	case *IfLoopStmt:
		p.printf("IfLoop %s\n", CondString(n.Condition))
		p.indent++
		p.block("Then", stmts(n.Body))
		for _, elif := range n.ElseIf {
			p.printf("ElseIf:\n")
			p.indent++
			p.print(elif)
			p.indent--
		}
		p.block("Else", stmts(n.Else))
		p.indent--

	default:
		p.printf("%T\n", n)
	}
}

func stmts[S Stmt](list []S) []Stmt {
	if list == nil {
		return nil
	}
	out := make([]Stmt, len(list))
	for i, s := range list {
		out[i] = s
	}
	return out
}

// ExprString returns the source-like spelling of an expression chain.
func ExprString(e *Expression) string {
	if e == nil {
		return ""
	}
	var b strings.Builder
	b.WriteString(operandString(e.Value))
	for _, op := range e.Ops {
		fmt.Fprintf(&b, " %s %s", op.Op, operandString(op.Value))
	}
	return b.String()
}

// ConstantExprString returns the source-like spelling of a constant chain.
func ConstantExprString(e *ConstantExpression) string {
	if e == nil {
		return ""
	}
	var b strings.Builder
	b.WriteString(constOperandString(e.Value))
	for _, op := range e.Ops {
		fmt.Fprintf(&b, " %s %s", op.Op, constOperandString(op.Value))
	}
	return b.String()
}

// CondString returns the source-like spelling of an if condition.
func CondString(c IfCondition) string {
	switch c := c.(type) {
	case *Expression:
		return ExprString(c)
	case *ExpressionLogicCondition:
		var b strings.Builder
		b.WriteString(exprCondString(c.Left))
		for _, op := range c.Ops {
			fmt.Fprintf(&b, " %s %s", op.Logic, exprCondString(op.Cond))
		}
		return b.String()
	}
	return ""
}

func exprCondString(c *ExpressionCondition) string {
	return fmt.Sprintf("(%s %s %s)", ExprString(c.Left), c.Cond, ExprString(c.Right))
}

func operandString(v ExpressionValue) string {
	switch v := v.(type) {
	case ValueName:
		return v.Name()
	case *PrimitiveValue:
		return literalString(v)
	case *FunctionCall:
		return callString(v)
	}
	return "?"
}

func constOperandString(v ConstantValue) string {
	switch v := v.(type) {
	case ConstantName:
		return v.Name()
	case *PrimitiveValue:
		return literalString(v)
	}
	return "?"
}

func callString(c *FunctionCall) string {
	args := make([]string, len(c.Args))
	for i, a := range c.Args {
		args[i] = ExprString(a)
	}
	return fmt.Sprintf("%s(%s)", c.Name.Name(), strings.Join(args, ", "))
}

func literalString(v *PrimitiveValue) string {
	if v.Value == nil {
		return v.Kind.Name()
	}
	if v.Kind == Char {
		if r, ok := v.Char(); ok {
			return fmt.Sprintf("%q", r)
		}
	}
	return fmt.Sprintf("%s:%s", v.Value.ExactString(), v.Kind.Name())
}
