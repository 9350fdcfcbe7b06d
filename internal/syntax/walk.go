package syntax

// Visitor is called for each node during Walk.
// If it returns false, the children of the node are not visited.
type Visitor func(node Node) bool

// Walk traverses a tree in depth-first source order.
// If visitor returns false, children are not visited.
func Walk(node Node, v Visitor) {
	if node == nil || !v(node) {
		return
	}

	switch n := node.(type) {
	case *ImportDecl:
		for _, seg := range n.Path {
			Walk(seg.Ident, v)
		}

	case *Constant:
		Walk(n.Name, v)
		Walk(n.Value, v)

	case *StructTypes:
		Walk(n.Name, v)
		for _, a := range n.Attrs {
			Walk(a.Name, v)
		}

	case *FunctionStatement:
		Walk(n.Name, v)
		for _, p := range n.Parameters {
			Walk(p, v)
		}
		walkList(n.Body, v)

	case *FunctionParameter:
		Walk(n.Name, v)

	case *ConstantExpression:
		Walk(n.Value, v)
		for _, op := range n.Ops {
			Walk(op.Value, v)
		}

	case *Expression:
		Walk(n.Value, v)
		for _, op := range n.Ops {
			Walk(op.Value, v)
		}

	case *FunctionCall:
		Walk(n.Name, v)
		for _, a := range n.Args {
			Walk(a, v)
		}

	case *ExpressionCondition:
		Walk(n.Left, v)
		Walk(n.Right, v)

	case *ExpressionLogicCondition:
		for _, c := range n.Conditions() {
			Walk(c, v)
		}

	case *LetBinding:
		Walk(n.Name, v)
		Walk(n.Value, v)

	case *IfStmt:
		Walk(n.Condition, v)
		walkList(n.Body, v)
		for _, elif := range n.ElseIf {
			Walk(elif, v)
		}
		walkList(n.Else, v)

	case *IfLoopStmt:
		Walk(n.Condition, v)
		walkList(n.Body, v)
		for _, elif := range n.ElseIf {
			Walk(elif, v)
		}
		walkList(n.Else, v)

	case *LoopStmt:
		walkList(n.Body, v)

	case *ExprStmt:
		Walk(n.X, v)

	case *ReturnStmt:
		if n.Result != nil {
			Walk(n.Result, v)
		}

	// Leaf nodes: Ident, name wrappers, PrimitiveValue, BreakStmt, ContinueStmt
	}
}

func walkList[S Node](list []S, v Visitor) {
	for _, s := range list {
		Walk(s, v)
	}
}

// Inspect traverses a tree and calls f for each node.
// Convenience wrapper around Walk.
func Inspect(node Node, f func(Node) bool) {
	Walk(node, Visitor(f))
}

// InspectMain calls Inspect for every top-level statement of prog.
func InspectMain(prog Main, f func(Node) bool) {
	for _, d := range prog {
		Inspect(d, f)
	}
}
