package ast

// Visitor is called once per node during a walk.
type Visitor func(Node)

// Walk traverses the tree rooted at n in post-order: children are visited
// before their parent. The traversal is hand-rolled over the closed Kind
// set; a node kind missing from the switch below is a bug, and the walk
// panics rather than silently skipping its subtree.
func Walk(n Node, visit Visitor) {
	if n == nil {
		return
	}

	switch node := n.(type) {
	case *Unit:
		for _, d := range node.Decls {
			Walk(d, visit)
		}

	case *Ident, *StringLit, *NumberLit, *BoolLit, *NullLit, *TemplateLit,
		*Text, *BreakStmt, *ContinueStmt:
		// Leaves.

	case *ArrayLit:
		for _, e := range node.Elements {
			Walk(e, visit)
		}
	case *ObjectLit:
		for _, f := range node.Fields {
			Walk(f.Value, visit)
		}
	case *Spread:
		Walk(node.Arg, visit)
	case *UnaryExpr:
		Walk(node.Arg, visit)
	case *BinaryExpr:
		Walk(node.Left, visit)
		Walk(node.Right, visit)
	case *LogicalExpr:
		Walk(node.Left, visit)
		Walk(node.Right, visit)
	case *ConditionalExpr:
		Walk(node.Test, visit)
		Walk(node.Consequent, visit)
		Walk(node.Alternate, visit)
	case *AssignExpr:
		Walk(node.Target, visit)
		Walk(node.Value, visit)
	case *UpdateExpr:
		Walk(node.Target, visit)
	case *CallExpr:
		Walk(node.Callee, visit)
		for _, a := range node.Args {
			Walk(a, visit)
		}
	case *MemberExpr:
		Walk(node.Object, visit)
		if node.Computed {
			Walk(node.Index, visit)
		}
	case *ArrowFn:
		if node.ExprBody != nil {
			Walk(node.ExprBody, visit)
		}
		if node.BlockBody != nil {
			Walk(node.BlockBody, visit)
		}

	case *Element:
		for _, a := range node.Attrs {
			Walk(a, visit)
		}
		for _, c := range node.Children {
			Walk(c, visit)
		}
	case *Attribute:
		if node.Value != nil {
			Walk(node.Value, visit)
		}

	case *ExprStmt:
		Walk(node.Expr, visit)
	case *ReturnStmt:
		if node.Result != nil {
			Walk(node.Result, visit)
		}
	case *IfStmt:
		Walk(node.Cond, visit)
		Walk(node.Body, visit)
		if node.Else != nil {
			Walk(node.Else, visit)
		}
	case *WhileStmt:
		Walk(node.Cond, visit)
		Walk(node.Body, visit)
	case *ForStmt:
		if node.Init != nil {
			Walk(node.Init, visit)
		}
		if node.Cond != nil {
			Walk(node.Cond, visit)
		}
		if node.Post != nil {
			Walk(node.Post, visit)
		}
		Walk(node.Body, visit)
	case *BlockStmt:
		for _, s := range node.Stmts {
			Walk(s, visit)
		}
	case *VarDecl:
		if node.Init != nil {
			Walk(node.Init, visit)
		}
	case *TryStmt:
		Walk(node.Body, visit)
		if node.Catch != nil {
			Walk(node.Catch, visit)
		}
		if node.Finally != nil {
			Walk(node.Finally, visit)
		}

	case *FuncDecl:
		Walk(node.Body, visit)
	case *DefaultExport:
		Walk(node.Expr, visit)

	default:
		panic("ast: Walk called with unknown node kind " + n.Kind().String())
	}

	visit(n)
}
