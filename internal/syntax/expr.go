package syntax

import "go/constant"

// Operator is a binary operator joining two operands of an expression chain.
type Operator uint8

const (
	_ Operator = iota

	// Arithmetic
	Plus
	Minus
	Multiply
	Divide

	// Bitwise shifts
	ShiftLeft
	ShiftRight

	// Logical
	And
	Or
	Xor

	// Comparison
	Eq
	NotEq
	Great
	Less
	GreatEq
	LessEq

	operatorCount
)

var operatorNames = [...]string{
	Plus:       "+",
	Minus:      "-",
	Multiply:   "*",
	Divide:     "/",
	ShiftLeft:  "<<",
	ShiftRight: ">>",
	And:        "and",
	Or:         "or",
	Xor:        "xor",
	Eq:         "==",
	NotEq:      "!=",
	Great:      ">",
	Less:       "<",
	GreatEq:    ">=",
	LessEq:     "<=",
}

// String returns the operator spelling.
func (op Operator) String() string {
	if op > 0 && op < operatorCount {
		return operatorNames[op]
	}
	return "?"
}

// IsComparison reports whether op yields a bool.
func (op Operator) IsComparison() bool {
	return op >= Eq && op <= LessEq
}

// LookupOperator returns the operator spelled s.
func LookupOperator(s string) (Operator, bool) {
	for i, name := range operatorNames {
		if name != "" && name == s {
			return Operator(i), true
		}
	}
	return 0, false
}

// ----------------------------------------------------------------------------
// Operands

// ExpressionValue is a runtime expression operand:
// ValueName, *PrimitiveValue or *FunctionCall.
type ExpressionValue interface {
	Node
	aExprValue()
}

// ConstantValue is a constant expression operand:
// ConstantName or *PrimitiveValue.
type ConstantValue interface {
	Node
	aConstValue()
}

func (ValueName) aExprValue()     {}
func (ConstantName) aConstValue() {}

// PrimitiveValue is a literal of a primitive type.
// Integers, floats, bools and strings are stored as constant values;
// a char is stored as its code point. None carries a nil Value.
type PrimitiveValue struct {
	node
	Kind  PrimitiveType
	Value constant.Value
}

// NewPrimitiveValue returns a literal of kind with value v at pos.
func NewPrimitiveValue(kind PrimitiveType, v constant.Value, pos Pos) *PrimitiveValue {
	return &PrimitiveValue{node: node{pos}, Kind: kind, Value: v}
}

// Char returns the code point of a char literal.
func (v *PrimitiveValue) Char() (rune, bool) {
	if v.Kind != Char || v.Value == nil || v.Value.Kind() != constant.Int {
		return 0, false
	}
	i, ok := constant.Int64Val(v.Value)
	return rune(i), ok
}

func (*PrimitiveValue) aExprValue()  {}
func (*PrimitiveValue) aConstValue() {}

// FunctionCall represents a call: Name(Args...)
// It is both an expression operand and a statement.
type FunctionCall struct {
	node
	Name FunctionName
	Args []*Expression
}

// NewFunctionCall returns a call of name with args.
func NewFunctionCall(name FunctionName, args ...*Expression) *FunctionCall {
	return &FunctionCall{node: node{name.Pos()}, Name: name, Args: args}
}

func (*FunctionCall) aExprValue() {}

// ----------------------------------------------------------------------------
// Expression chains
//
// An expression is an initial operand followed by (operator, operand) pairs,
// evaluated strictly left to right: a + b * c is ((a + b) * c).

// Operation is one (operator, operand) link of an expression chain.
type Operation struct {
	Op    Operator
	Value ExpressionValue
}

// Expression is a runtime expression chain.
type Expression struct {
	node
	Value ExpressionValue
	Ops   []Operation
}

// NewExpression returns a chain starting at v.
func NewExpression(v ExpressionValue, ops ...Operation) *Expression {
	return &Expression{node: node{v.Pos()}, Value: v, Ops: ops}
}

// Operands returns all operands of the chain in evaluation order.
func (e *Expression) Operands() []ExpressionValue {
	list := make([]ExpressionValue, 0, len(e.Ops)+1)
	list = append(list, e.Value)
	for _, op := range e.Ops {
		list = append(list, op.Value)
	}
	return list
}

// HasComparison reports whether any operator of the chain is a comparison.
func (e *Expression) HasComparison() bool {
	for _, op := range e.Ops {
		if op.Op.IsComparison() {
			return true
		}
	}
	return false
}

// ConstantOperation is one (operator, operand) link of a constant chain.
type ConstantOperation struct {
	Op    Operator
	Value ConstantValue
}

// ConstantExpression is a compile-time expression chain.
type ConstantExpression struct {
	node
	Value ConstantValue
	Ops   []ConstantOperation
}

// NewConstantExpression returns a constant chain starting at v.
func NewConstantExpression(v ConstantValue, ops ...ConstantOperation) *ConstantExpression {
	return &ConstantExpression{node: node{v.Pos()}, Value: v, Ops: ops}
}

// Operands returns all operands of the chain in evaluation order.
func (e *ConstantExpression) Operands() []ConstantValue {
	list := make([]ConstantValue, 0, len(e.Ops)+1)
	list = append(list, e.Value)
	for _, op := range e.Ops {
		list = append(list, op.Value)
	}
	return list
}

// ----------------------------------------------------------------------------
// Conditions

// Condition is a comparison used by an ExpressionCondition.
type Condition uint8

const (
	CondGreat Condition = iota
	CondLess
	CondEq
	CondGreatEq
	CondLessEq
	CondNotEq
)

var conditionNames = [...]string{
	CondGreat:   ">",
	CondLess:    "<",
	CondEq:      "==",
	CondGreatEq: ">=",
	CondLessEq:  "<=",
	CondNotEq:   "!=",
}

func (c Condition) String() string {
	if int(c) < len(conditionNames) {
		return conditionNames[c]
	}
	return "?"
}

// LookupCondition returns the comparison spelled s.
func LookupCondition(s string) (Condition, bool) {
	for i, name := range conditionNames {
		if name == s {
			return Condition(i), true
		}
	}
	return 0, false
}

// LogicCondition joins two conditions of a logic chain.
type LogicCondition uint8

const (
	LogicAnd LogicCondition = iota
	LogicOr
)

func (l LogicCondition) String() string {
	if l == LogicOr {
		return "or"
	}
	return "and"
}

// IfCondition is the condition of an if statement:
// either a single *Expression or an *ExpressionLogicCondition.
type IfCondition interface {
	Node
	aIfCondition()
}

func (*Expression) aIfCondition() {}

// ExpressionCondition compares two expressions: Left Cond Right
type ExpressionCondition struct {
	node
	Left  *Expression
	Cond  Condition
	Right *Expression
}

// NewExpressionCondition returns left cond right.
func NewExpressionCondition(left *Expression, cond Condition, right *Expression) *ExpressionCondition {
	return &ExpressionCondition{node: node{left.Pos()}, Left: left, Cond: cond, Right: right}
}

// LogicOperation is one (and|or, condition) link of a logic chain.
type LogicOperation struct {
	Logic LogicCondition
	Cond  *ExpressionCondition
}

// ExpressionLogicCondition chains comparisons with and/or, left to right.
type ExpressionLogicCondition struct {
	node
	Left *ExpressionCondition
	Ops  []LogicOperation
}

// NewLogicCondition returns a logic chain starting at left.
func NewLogicCondition(left *ExpressionCondition, ops ...LogicOperation) *ExpressionLogicCondition {
	return &ExpressionLogicCondition{node: node{left.Pos()}, Left: left, Ops: ops}
}

// Conditions returns every comparison of the chain in evaluation order.
func (c *ExpressionLogicCondition) Conditions() []*ExpressionCondition {
	list := []*ExpressionCondition{c.Left}
	for _, op := range c.Ops {
		list = append(list, op.Cond)
	}
	return list
}

func (*ExpressionLogicCondition) aIfCondition() {}
