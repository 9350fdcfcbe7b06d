package syntax

// ----------------------------------------------------------------------------
// Statement sets
//
// Each nesting context has its own statement set. A statement type belongs
// to a set by implementing the set's marker method:
//
//	                 Body  IfBody  LoopBody  IfLoopBody
//	*LetBinding       x      x        x          x
//	*FunctionCall     x      x        x          x
//	*IfStmt           x      x
//	*IfLoopStmt                       x          x
//	*LoopStmt         x      x        x          x
//	*ExprStmt         x
//	*ReturnStmt       x      x        x          x
//	*BreakStmt                        x          x
//	*ContinueStmt                     x          x
//
// break and continue cannot be stored in a function body or a plain if body.

// Stmt is implemented by every statement.
type Stmt interface {
	Node
	aStmt()
}

// BodyStmt is a statement of a function body.
type BodyStmt interface {
	Stmt
	aBodyStmt()
}

// IfBodyStmt is a statement of a plain if body.
type IfBodyStmt interface {
	Stmt
	aIfBodyStmt()
}

// LoopBodyStmt is a statement of a loop body.
type LoopBodyStmt interface {
	Stmt
	aLoopBodyStmt()
}

// IfLoopBodyStmt is a statement of an if body nested in a loop.
type IfLoopBodyStmt interface {
	Stmt
	aIfLoopBodyStmt()
}

// stmt is embedded in all statement nodes.
type stmt struct{ node }

func (*stmt) aStmt() {}

// LetBinding declares a local value: let Name[: Type] = Value
type LetBinding struct {
	stmt
	Name  ValueName
	Type  Type // nil when not declared
	Value *Expression
}

// NewLetBinding returns let name[: typ] = value.
func NewLetBinding(name ValueName, typ Type, value *Expression) *LetBinding {
	return &LetBinding{stmt: stmt{node{name.Pos()}}, Name: name, Type: typ, Value: value}
}

func (*LetBinding) aBodyStmt()       {}
func (*LetBinding) aIfBodyStmt()     {}
func (*LetBinding) aLoopBodyStmt()   {}
func (*LetBinding) aIfLoopBodyStmt() {}

func (*FunctionCall) aStmt()           {}
func (*FunctionCall) aBodyStmt()       {}
func (*FunctionCall) aIfBodyStmt()     {}
func (*FunctionCall) aLoopBodyStmt()   {}
func (*FunctionCall) aIfLoopBodyStmt() {}

// IfStmt is an if statement outside of any loop.
// if Condition { Body } [else if ...]* [else { Else }]
type IfStmt struct {
	stmt
	Condition IfCondition
	Body      []IfBodyStmt
	Else      []IfBodyStmt // nil when there is no else branch
	ElseIf    []*IfStmt
}

func (*IfStmt) aBodyStmt()   {}
func (*IfStmt) aIfBodyStmt() {}

// IfLoopStmt is an if statement inside a loop. Its branches keep the
// loop privileges (break, continue).
type IfLoopStmt struct {
	stmt
	Condition IfCondition
	Body      []IfLoopBodyStmt
	Else      []IfLoopBodyStmt
	ElseIf    []*IfLoopStmt
}

func (*IfLoopStmt) aLoopBodyStmt()   {}
func (*IfLoopStmt) aIfLoopBodyStmt() {}

// LoopStmt is an unconditional loop: loop { Body }
// It is left with break or return.
type LoopStmt struct {
	stmt
	Body []LoopBodyStmt
}

func (*LoopStmt) aBodyStmt()       {}
func (*LoopStmt) aIfBodyStmt()     {}
func (*LoopStmt) aLoopBodyStmt()   {}
func (*LoopStmt) aIfLoopBodyStmt() {}

// ExprStmt is a bare expression in a function body.
type ExprStmt struct {
	stmt
	X *Expression
}

func (*ExprStmt) aBodyStmt() {}

// ReturnStmt returns Result from the enclosing function.
type ReturnStmt struct {
	stmt
	Result *Expression
}

func (*ReturnStmt) aBodyStmt()       {}
func (*ReturnStmt) aIfBodyStmt()     {}
func (*ReturnStmt) aLoopBodyStmt()   {}
func (*ReturnStmt) aIfLoopBodyStmt() {}

// BreakStmt leaves the innermost loop.
type BreakStmt struct {
	stmt
}

func (*BreakStmt) aLoopBodyStmt()   {}
func (*BreakStmt) aIfLoopBodyStmt() {}

// ContinueStmt starts the next iteration of the innermost loop.
type ContinueStmt struct {
	stmt
}

func (*ContinueStmt) aLoopBodyStmt()   {}
func (*ContinueStmt) aIfLoopBodyStmt() {}
