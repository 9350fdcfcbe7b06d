package syntax

import (
	"fmt"
	"go/constant"
	"go/token"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// DecodeError reports a malformed program document.
type DecodeError struct {
	Pos Pos
	Msg string
}

// Error implements the error interface.
func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s: %s", e.Pos, e.Msg)
}

// Decode reads a program tree from a YAML document.
//
// The document is a sequence of top-level statements, each a single-key
// mapping (import, constant, struct, function). Node positions are the
// YAML line and column of the corresponding document node. Only the first
// error is reported.
func Decode(filename string, r io.Reader) (Main, error) {
	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if err == io.EOF {
			return Main{}, nil
		}
		return nil, errors.Wrapf(err, "decode %s", filename)
	}

	d := &decoder{filename: filename, structs: make(map[string]*StructTypes)}
	root := &doc
	if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		root = root.Content[0]
	}
	prog := d.main(root)
	if d.err != nil {
		return nil, d.err
	}
	return prog, nil
}

// DecodeString is Decode over an in-memory document.
func DecodeString(filename, src string) (Main, error) {
	return Decode(filename, strings.NewReader(src))
}

// stmtContext is the nesting context a statement list is decoded in.
type stmtContext int

const (
	ctxBody stmtContext = iota
	ctxIf
	ctxLoop
	ctxIfLoop
)

func (c stmtContext) inLoop() bool { return c == ctxLoop || c == ctxIfLoop }

func (c stmtContext) String() string {
	switch c {
	case ctxIf:
		return "if body"
	case ctxLoop:
		return "loop body"
	case ctxIfLoop:
		return "if body inside a loop"
	}
	return "function body"
}

type decoder struct {
	filename string
	structs  map[string]*StructTypes // declared so far, for type references
	err      error                   // first error
}

func (d *decoder) pos(n *yaml.Node) Pos {
	return NewPos(d.filename, n.Line, n.Column)
}

func (d *decoder) errorf(n *yaml.Node, format string, args ...interface{}) {
	if d.err != nil {
		return
	}
	d.err = &DecodeError{Pos: d.pos(n), Msg: fmt.Sprintf(format, args...)}
}

func resolve(n *yaml.Node) *yaml.Node {
	for n != nil && n.Kind == yaml.AliasNode {
		n = n.Alias
	}
	return n
}

// single splits a single-key mapping into its key and value.
func (d *decoder) single(n *yaml.Node, what string) (string, *yaml.Node) {
	n = resolve(n)
	if n.Kind != yaml.MappingNode || len(n.Content) != 2 {
		d.errorf(n, "%s must be a mapping with exactly one key", what)
		return "", nil
	}
	return n.Content[0].Value, resolve(n.Content[1])
}

// fields returns the entries of a mapping, rejecting keys not in allowed.
func (d *decoder) fields(n *yaml.Node, what string, allowed ...string) map[string]*yaml.Node {
	n = resolve(n)
	if n.Kind != yaml.MappingNode {
		d.errorf(n, "%s must be a mapping", what)
		return nil
	}
	m := make(map[string]*yaml.Node, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		key := n.Content[i]
		ok := false
		for _, a := range allowed {
			if key.Value == a {
				ok = true
				break
			}
		}
		if !ok {
			d.errorf(key, "unknown %s field %q", what, key.Value)
			return nil
		}
		m[key.Value] = resolve(n.Content[i+1])
	}
	return m
}

func (d *decoder) require(m map[string]*yaml.Node, parent *yaml.Node, what, key string) *yaml.Node {
	v, ok := m[key]
	if !ok {
		d.errorf(parent, "%s is missing %q", what, key)
		return nil
	}
	return v
}

func (d *decoder) ident(n *yaml.Node, what string) Ident {
	if n == nil {
		return Ident{}
	}
	if n.Kind != yaml.ScalarNode || n.Value == "" {
		d.errorf(n, "%s must be a non-empty name", what)
		return Ident{}
	}
	return NewIdent(n.Value, d.pos(n))
}

func isNull(n *yaml.Node) bool {
	return n.Kind == yaml.ScalarNode && n.Tag == "!!null"
}

func (d *decoder) sequence(n *yaml.Node, what string) []*yaml.Node {
	n = resolve(n)
	if isNull(n) {
		return nil
	}
	if n.Kind != yaml.SequenceNode {
		d.errorf(n, "%s must be a sequence", what)
		return nil
	}
	return n.Content
}

// ----------------------------------------------------------------------------
// Top level

func (d *decoder) main(n *yaml.Node) Main {
	prog := Main{}
	for _, item := range d.sequence(n, "program") {
		key, v := d.single(item, "top-level statement")
		if d.err != nil {
			return nil
		}
		var decl Decl
		switch key {
		case "import":
			decl = d.importDecl(item, v)
		case "constant":
			decl = d.constant(item, v)
		case "struct":
			decl = d.structTypes(item, v)
		case "function":
			decl = d.function(item, v)
		default:
			d.errorf(item, "unknown top-level statement %q", key)
		}
		if d.err != nil {
			return nil
		}
		prog = append(prog, decl)
	}
	return prog
}

func (d *decoder) importDecl(item, v *yaml.Node) Decl {
	var path ImportPath
	if v.Kind == yaml.ScalarNode {
		for _, seg := range strings.Split(v.Value, ".") {
			if seg == "" {
				d.errorf(v, "malformed import path %q", v.Value)
				return nil
			}
			path = append(path, ImportName{NewIdent(seg, d.pos(v))})
		}
	} else {
		for _, seg := range d.sequence(v, "import path") {
			path = append(path, ImportName{d.ident(seg, "import path segment")})
		}
	}
	if len(path) == 0 && d.err == nil {
		d.errorf(v, "empty import path")
	}
	return &ImportDecl{decl: decl{node{d.pos(item)}}, Path: path}
}

func (d *decoder) constant(item, v *yaml.Node) Decl {
	m := d.fields(v, "constant", "name", "type", "value")
	if d.err != nil {
		return nil
	}
	name := d.ident(d.require(m, v, "constant", "name"), "constant name")
	typ := d.typ(d.require(m, v, "constant", "type"))
	value := d.constExpr(d.require(m, v, "constant", "value"))
	if d.err != nil {
		return nil
	}
	return &Constant{
		decl:  decl{node{d.pos(item)}},
		Name:  ConstantName{name},
		Type:  typ,
		Value: value,
	}
}

func (d *decoder) structTypes(item, v *yaml.Node) Decl {
	m := d.fields(v, "struct", "name", "attrs")
	if d.err != nil {
		return nil
	}
	st := &StructTypes{
		decl: decl{node{d.pos(item)}},
		Name: d.ident(d.require(m, v, "struct", "name"), "struct name"),
	}
	if attrs, ok := m["attrs"]; ok {
		st.Attrs = d.attrs(attrs)
	}
	if d.err != nil {
		return nil
	}
	if _, seen := d.structs[st.Name.Name()]; !seen {
		d.structs[st.Name.Name()] = st
	}
	return st
}

func (d *decoder) attrs(n *yaml.Node) []*StructAttr {
	var list []*StructAttr
	for _, a := range d.sequence(n, "struct attributes") {
		m := d.fields(a, "struct attribute", "name", "type")
		if d.err != nil {
			return nil
		}
		name := d.ident(d.require(m, a, "struct attribute", "name"), "attribute name")
		typ := d.typ(d.require(m, a, "struct attribute", "type"))
		list = append(list, &StructAttr{Name: name, Type: typ})
	}
	return list
}

func (d *decoder) function(item, v *yaml.Node) Decl {
	m := d.fields(v, "function", "name", "params", "result", "body")
	if d.err != nil {
		return nil
	}
	fn := &FunctionStatement{
		decl:       decl{node{d.pos(item)}},
		Name:       FunctionName{d.ident(d.require(m, v, "function", "name"), "function name")},
		ResultType: None,
	}
	if params, ok := m["params"]; ok {
		for _, p := range d.sequence(params, "parameters") {
			pm := d.fields(p, "parameter", "name", "type")
			if d.err != nil {
				return nil
			}
			name := d.ident(d.require(pm, p, "parameter", "name"), "parameter name")
			typ := d.typ(d.require(pm, p, "parameter", "type"))
			fn.Parameters = append(fn.Parameters, &FunctionParameter{
				node: node{d.pos(p)},
				Name: ParameterName{name},
				Type: typ,
			})
		}
	}
	if result, ok := m["result"]; ok {
		fn.ResultType = d.typ(result)
	}
	if body, ok := m["body"]; ok {
		fn.Body = stmtList[BodyStmt](d, body, ctxBody)
	}
	if d.err != nil {
		return nil
	}
	return fn
}

// ----------------------------------------------------------------------------
// Types

func (d *decoder) typ(n *yaml.Node) Type {
	if n == nil || d.err != nil {
		return nil
	}
	if n.Kind == yaml.ScalarNode {
		if p, ok := LookupPrimitive(n.Value); ok {
			return p
		}
		if st, ok := d.structs[n.Value]; ok {
			return st.Type()
		}
		return &StructType{TypeName: d.ident(n, "type name")}
	}

	key, v := d.single(n, "type")
	switch key {
	case "array":
		m := d.fields(v, "array type", "type", "size")
		if d.err != nil {
			return nil
		}
		elem := d.typ(d.require(m, v, "array type", "type"))
		sizeNode := d.require(m, v, "array type", "size")
		if d.err != nil {
			return nil
		}
		size, err := strconv.ParseUint(sizeNode.Value, 10, 32)
		if err != nil {
			d.errorf(sizeNode, "array size must be a non-negative integer, got %q", sizeNode.Value)
			return nil
		}
		return &ArrayType{Elem: elem, Size: uint32(size)}
	case "struct":
		m := d.fields(v, "struct type", "name", "attrs")
		if d.err != nil {
			return nil
		}
		st := &StructType{TypeName: d.ident(d.require(m, v, "struct type", "name"), "struct name")}
		if attrs, ok := m["attrs"]; ok {
			st.Attrs = d.attrs(attrs)
		}
		return st
	case "":
		return nil
	}
	d.errorf(n, "unknown type form %q", key)
	return nil
}

// ----------------------------------------------------------------------------
// Values and expressions

func (d *decoder) literal(kind PrimitiveType, n *yaml.Node) *PrimitiveValue {
	pos := d.pos(n)
	if n.Kind != yaml.ScalarNode {
		d.errorf(n, "%s literal must be a scalar", kind)
		return nil
	}
	var v constant.Value
	switch {
	case kind == None:
		// none carries no value
	case kind.IsInteger():
		v = signedLiteral(n.Value, token.INT)
		if v.Kind() != constant.Int {
			d.errorf(n, "invalid %s literal %q", kind, n.Value)
			return nil
		}
		if !Representable(v, kind) {
			d.errorf(n, "literal %s overflows %s", n.Value, kind)
			return nil
		}
	case kind.IsFloat():
		v = signedLiteral(n.Value, token.FLOAT)
		if v.Kind() != constant.Float && v.Kind() != constant.Int {
			d.errorf(n, "invalid %s literal %q", kind, n.Value)
			return nil
		}
	case kind == Bool:
		b, err := strconv.ParseBool(n.Value)
		if err != nil {
			d.errorf(n, "invalid bool literal %q", n.Value)
			return nil
		}
		v = constant.MakeBool(b)
	case kind == String:
		v = constant.MakeString(n.Value)
	case kind == Char:
		r, size := utf8.DecodeRuneInString(n.Value)
		if r == utf8.RuneError || size != len(n.Value) {
			d.errorf(n, "char literal must be exactly one character, got %q", n.Value)
			return nil
		}
		v = constant.MakeInt64(int64(r))
	}
	return NewPrimitiveValue(kind, v, pos)
}

// signedLiteral is constant.MakeFromLiteral accepting a leading sign.
func signedLiteral(lit string, tok token.Token) constant.Value {
	neg := false
	switch {
	case strings.HasPrefix(lit, "-"):
		neg, lit = true, lit[1:]
	case strings.HasPrefix(lit, "+"):
		lit = lit[1:]
	}
	v := constant.MakeFromLiteral(lit, tok, 0)
	if neg && v.Kind() != constant.Unknown {
		v = constant.UnaryOp(token.SUB, v, 0)
	}
	return v
}

func (d *decoder) operand(n *yaml.Node) ExpressionValue {
	n = resolve(n)
	if n.Kind == yaml.ScalarNode {
		return ValueName{d.ident(n, "value name")}
	}
	key, v := d.single(n, "operand")
	if d.err != nil {
		return nil
	}
	switch key {
	case "name":
		return ValueName{d.ident(v, "value name")}
	case "call":
		return d.call(n, v)
	}
	if kind, ok := LookupPrimitive(key); ok {
		if lit := d.literal(kind, v); lit != nil {
			return lit
		}
		return nil
	}
	d.errorf(n, "unknown operand %q", key)
	return nil
}

func (d *decoder) constOperand(n *yaml.Node) ConstantValue {
	n = resolve(n)
	if n.Kind == yaml.ScalarNode {
		return ConstantName{d.ident(n, "constant name")}
	}
	key, v := d.single(n, "constant operand")
	if d.err != nil {
		return nil
	}
	if key == "constant" || key == "name" {
		return ConstantName{d.ident(v, "constant name")}
	}
	if kind, ok := LookupPrimitive(key); ok {
		if lit := d.literal(kind, v); lit != nil {
			return lit
		}
		return nil
	}
	d.errorf(n, "unknown constant operand %q", key)
	return nil
}

func (d *decoder) operator(n *yaml.Node) Operator {
	op, ok := LookupOperator(n.Value)
	if !ok || n.Kind != yaml.ScalarNode {
		d.errorf(n, "unknown operator %q", n.Value)
	}
	return op
}

// chain splits an expression document into its first operand node and the
// (operator, operand) node pairs that follow it.
func (d *decoder) chain(n *yaml.Node, what string) (*yaml.Node, [][2]*yaml.Node) {
	n = resolve(n)
	if n.Kind != yaml.SequenceNode {
		return n, nil
	}
	if len(n.Content)%2 == 0 {
		d.errorf(n, "%s must alternate operands and operators", what)
		return nil, nil
	}
	var pairs [][2]*yaml.Node
	for i := 1; i+1 < len(n.Content); i += 2 {
		pairs = append(pairs, [2]*yaml.Node{n.Content[i], n.Content[i+1]})
	}
	return n.Content[0], pairs
}

func (d *decoder) expr(n *yaml.Node) *Expression {
	if n == nil || d.err != nil {
		return nil
	}
	first, pairs := d.chain(n, "expression")
	if d.err != nil {
		return nil
	}
	v := d.operand(first)
	if d.err != nil {
		return nil
	}
	e := &Expression{node: node{d.pos(resolve(n))}, Value: v}
	for _, p := range pairs {
		op := d.operator(p[0])
		val := d.operand(p[1])
		if d.err != nil {
			return nil
		}
		e.Ops = append(e.Ops, Operation{Op: op, Value: val})
	}
	return e
}

func (d *decoder) constExpr(n *yaml.Node) *ConstantExpression {
	if n == nil || d.err != nil {
		return nil
	}
	first, pairs := d.chain(n, "constant expression")
	if d.err != nil {
		return nil
	}
	v := d.constOperand(first)
	if d.err != nil {
		return nil
	}
	e := &ConstantExpression{node: node{d.pos(resolve(n))}, Value: v}
	for _, p := range pairs {
		op := d.operator(p[0])
		val := d.constOperand(p[1])
		if d.err != nil {
			return nil
		}
		e.Ops = append(e.Ops, ConstantOperation{Op: op, Value: val})
	}
	return e
}

func (d *decoder) call(item, v *yaml.Node) *FunctionCall {
	m := d.fields(v, "call", "name", "args")
	if d.err != nil {
		return nil
	}
	c := &FunctionCall{
		node: node{d.pos(item)},
		Name: FunctionName{d.ident(d.require(m, v, "call", "name"), "function name")},
	}
	if args, ok := m["args"]; ok {
		for _, a := range d.sequence(args, "call arguments") {
			c.Args = append(c.Args, d.expr(a))
		}
	}
	if d.err != nil {
		return nil
	}
	return c
}

func (d *decoder) condition(n *yaml.Node) IfCondition {
	if n == nil || d.err != nil {
		return nil
	}
	n = resolve(n)
	if n.Kind == yaml.MappingNode && len(n.Content) == 2 && n.Content[0].Value == "logic" {
		first, pairs := d.chain(n.Content[1], "logic condition")
		if d.err != nil {
			return nil
		}
		lc := &ExpressionLogicCondition{node: node{d.pos(n)}, Left: d.exprCond(first)}
		for _, p := range pairs {
			var logic LogicCondition
			switch p[0].Value {
			case "and":
				logic = LogicAnd
			case "or":
				logic = LogicOr
			default:
				d.errorf(p[0], "unknown logic operator %q", p[0].Value)
				return nil
			}
			lc.Ops = append(lc.Ops, LogicOperation{Logic: logic, Cond: d.exprCond(p[1])})
		}
		if d.err != nil {
			return nil
		}
		return lc
	}
	if e := d.expr(n); e != nil {
		return e
	}
	return nil
}

func (d *decoder) exprCond(n *yaml.Node) *ExpressionCondition {
	m := d.fields(n, "condition", "left", "op", "right")
	if d.err != nil {
		return nil
	}
	left := d.expr(d.require(m, n, "condition", "left"))
	opNode := d.require(m, n, "condition", "op")
	right := d.expr(d.require(m, n, "condition", "right"))
	if d.err != nil {
		return nil
	}
	cond, ok := LookupCondition(opNode.Value)
	if !ok {
		d.errorf(opNode, "unknown comparison %q", opNode.Value)
		return nil
	}
	return &ExpressionCondition{node: node{d.pos(n)}, Left: left, Cond: cond, Right: right}
}

// ----------------------------------------------------------------------------
// Statements

// stmtList decodes a statement list in ctx and keeps only statements that
// belong to the statement set S.
func stmtList[S Stmt](d *decoder, n *yaml.Node, ctx stmtContext) []S {
	items := d.sequence(n, ctx.String())
	list := make([]S, 0, len(items))
	for _, item := range items {
		s := d.stmt(item, ctx)
		if d.err != nil {
			return nil
		}
		ss, ok := s.(S)
		if !ok {
			key, _ := d.single(item, "statement")
			d.errorf(item, "%s is not allowed in %s", key, ctx)
			return nil
		}
		list = append(list, ss)
	}
	return list
}

func (d *decoder) stmt(item *yaml.Node, ctx stmtContext) Stmt {
	key, v := d.single(item, "statement")
	if d.err != nil {
		return nil
	}
	pos := d.pos(item)
	switch key {
	case "let":
		m := d.fields(v, "let", "name", "type", "value")
		if d.err != nil {
			return nil
		}
		let := &LetBinding{
			stmt: stmt{node{pos}},
			Name: ValueName{d.ident(d.require(m, v, "let", "name"), "value name")},
		}
		if t, ok := m["type"]; ok {
			let.Type = d.typ(t)
		}
		let.Value = d.expr(d.require(m, v, "let", "value"))
		if d.err != nil {
			return nil
		}
		return let

	case "call":
		if c := d.call(item, v); c != nil {
			return c
		}
		return nil

	case "if":
		if ctx.inLoop() {
			if s := d.ifLoopStmt(item, v); s != nil {
				return s
			}
			return nil
		}
		if s := d.ifStmt(item, v); s != nil {
			return s
		}
		return nil

	case "loop":
		body := stmtList[LoopBodyStmt](d, v, ctxLoop)
		if d.err != nil {
			return nil
		}
		return &LoopStmt{stmt: stmt{node{pos}}, Body: body}

	case "expr":
		x := d.expr(v)
		if d.err != nil {
			return nil
		}
		return &ExprStmt{stmt: stmt{node{pos}}, X: x}

	case "return":
		ret := &ReturnStmt{stmt: stmt{node{pos}}}
		if !isNull(resolve(v)) {
			ret.Result = d.expr(v)
		}
		if d.err != nil {
			return nil
		}
		return ret

	case "break":
		return &BreakStmt{stmt: stmt{node{pos}}}

	case "continue":
		return &ContinueStmt{stmt: stmt{node{pos}}}
	}
	d.errorf(item, "unknown statement %q", key)
	return nil
}

func (d *decoder) ifStmt(item, v *yaml.Node) *IfStmt {
	m := d.fields(v, "if", "cond", "then", "elif", "else")
	if d.err != nil {
		return nil
	}
	s := &IfStmt{
		stmt:      stmt{node{d.pos(item)}},
		Condition: d.condition(d.require(m, v, "if", "cond")),
	}
	if then, ok := m["then"]; ok {
		s.Body = stmtList[IfBodyStmt](d, then, ctxIf)
	}
	if elif, ok := m["elif"]; ok {
		for _, e := range d.sequence(elif, "else-if list") {
			s.ElseIf = append(s.ElseIf, d.ifStmt(e, e))
		}
	}
	if els, ok := m["else"]; ok {
		s.Else = stmtList[IfBodyStmt](d, els, ctxIf)
	}
	if d.err != nil {
		return nil
	}
	return s
}

func (d *decoder) ifLoopStmt(item, v *yaml.Node) *IfLoopStmt {
	m := d.fields(v, "if", "cond", "then", "elif", "else")
	if d.err != nil {
		return nil
	}
	s := &IfLoopStmt{
		stmt:      stmt{node{d.pos(item)}},
		Condition: d.condition(d.require(m, v, "if", "cond")),
	}
	if then, ok := m["then"]; ok {
		s.Body = stmtList[IfLoopBodyStmt](d, then, ctxIfLoop)
	}
	if elif, ok := m["elif"]; ok {
		for _, e := range d.sequence(elif, "else-if list") {
			s.ElseIf = append(s.ElseIf, d.ifLoopStmt(e, e))
		}
	}
	if els, ok := m["else"]; ok {
		s.Else = stmtList[IfLoopBodyStmt](d, els, ctxIfLoop)
	}
	if d.err != nil {
		return nil
	}
	return s
}
