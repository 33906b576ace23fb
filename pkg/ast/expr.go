package ast

import "github.com/leapstack-labs/leapview/pkg/token"

// ---------- Expression Types ----------

// Ident represents an identifier reference.
type Ident struct {
	Name     string
	NamePos  token.Position
}

func (*Ident) exprNode() {}

// Pos implements Node.
func (i *Ident) Pos() token.Position { return i.NamePos }

// Kind implements Node.
func (*Ident) Kind() Kind { return KindIdent }

// StringLit represents a string literal.
type StringLit struct {
	Value    string
	ValuePos token.Position
}

func (*StringLit) exprNode() {}

// Pos implements Node.
func (s *StringLit) Pos() token.Position { return s.ValuePos }

// Kind implements Node.
func (*StringLit) Kind() Kind { return KindStringLit }

// NumberLit represents a numeric literal. The raw source text is kept so
// integer and floating forms can be distinguished downstream.
type NumberLit struct {
	Raw      string
	Value    float64
	ValuePos token.Position
}

func (*NumberLit) exprNode() {}

// Pos implements Node.
func (n *NumberLit) Pos() token.Position { return n.ValuePos }

// Kind implements Node.
func (*NumberLit) Kind() Kind { return KindNumberLit }

// BoolLit represents true or false.
type BoolLit struct {
	Value    bool
	ValuePos token.Position
}

func (*BoolLit) exprNode() {}

// Pos implements Node.
func (b *BoolLit) Pos() token.Position { return b.ValuePos }

// Kind implements Node.
func (*BoolLit) Kind() Kind { return KindBoolLit }

// NullLit represents the null literal.
type NullLit struct {
	ValuePos token.Position
}

func (*NullLit) exprNode() {}

// Pos implements Node.
func (n *NullLit) Pos() token.Position { return n.ValuePos }

// Kind implements Node.
func (*NullLit) Kind() Kind { return KindNullLit }

// TemplateLit represents a backtick template literal. Parsed but not
// serializable; kept as raw text for error reporting.
type TemplateLit struct {
	Raw      string
	ValuePos token.Position
}

func (*TemplateLit) exprNode() {}

// Pos implements Node.
func (t *TemplateLit) Pos() token.Position { return t.ValuePos }

// Kind implements Node.
func (*TemplateLit) Kind() Kind { return KindTemplateLit }

// ArrayLit represents an array literal.
type ArrayLit struct {
	Elements []Expr
	Lbrack   token.Position
}

func (*ArrayLit) exprNode() {}

// Pos implements Node.
func (a *ArrayLit) Pos() token.Position { return a.Lbrack }

// Kind implements Node.
func (*ArrayLit) Kind() Kind { return KindArrayLit }

// ObjectLit represents an object literal.
type ObjectLit struct {
	Fields []*ObjectField
	Lbrace token.Position
}

func (*ObjectLit) exprNode() {}

// Pos implements Node.
func (o *ObjectLit) Pos() token.Position { return o.Lbrace }

// Kind implements Node.
func (*ObjectLit) Kind() Kind { return KindObjectLit }

// Field returns the value expression of the field with the given key,
// or nil if absent.
func (o *ObjectLit) Field(key string) Expr {
	for _, f := range o.Fields {
		if f.Key == key {
			return f.Value
		}
	}
	return nil
}

// ObjectField is a single key: value entry of an object literal.
type ObjectField struct {
	Key       string
	Value     Expr
	KeyPos    token.Position
	Shorthand bool // { x } shorthand for { x: x }
}

// Spread represents a ...expr spread element. Parsed so it can be
// rejected with a precise error downstream; never serialized.
type Spread struct {
	Arg      Expr
	Ellipsis token.Position
}

func (*Spread) exprNode() {}

// Pos implements Node.
func (s *Spread) Pos() token.Position { return s.Ellipsis }

// Kind implements Node.
func (*Spread) Kind() Kind { return KindSpread }

// UnaryExpr represents a prefix unary expression (!x, -x, +x, ~x).
type UnaryExpr struct {
	Op    token.Type
	Arg   Expr
	OpPos token.Position
}

func (*UnaryExpr) exprNode() {}

// Pos implements Node.
func (u *UnaryExpr) Pos() token.Position { return u.OpPos }

// Kind implements Node.
func (*UnaryExpr) Kind() Kind { return KindUnaryExpr }

// BinaryExpr represents an arithmetic or comparison expression.
type BinaryExpr struct {
	Left  Expr
	Op    token.Type
	Right Expr
}

func (*BinaryExpr) exprNode() {}

// Pos implements Node.
func (b *BinaryExpr) Pos() token.Position {
	if b.Left != nil {
		return b.Left.Pos()
	}
	return token.Position{}
}

// Kind implements Node.
func (*BinaryExpr) Kind() Kind { return KindBinaryExpr }

// LogicalExpr represents &&, || or ??.
type LogicalExpr struct {
	Left  Expr
	Op    token.Type
	Right Expr
}

func (*LogicalExpr) exprNode() {}

// Pos implements Node.
func (l *LogicalExpr) Pos() token.Position {
	if l.Left != nil {
		return l.Left.Pos()
	}
	return token.Position{}
}

// Kind implements Node.
func (*LogicalExpr) Kind() Kind { return KindLogicalExpr }

// ConditionalExpr represents test ? consequent : alternate.
type ConditionalExpr struct {
	Test       Expr
	Consequent Expr
	Alternate  Expr
}

func (*ConditionalExpr) exprNode() {}

// Pos implements Node.
func (c *ConditionalExpr) Pos() token.Position {
	if c.Test != nil {
		return c.Test.Pos()
	}
	return token.Position{}
}

// Kind implements Node.
func (*ConditionalExpr) Kind() Kind { return KindConditionalExpr }

// AssignExpr represents target = value (and += / -= compound forms).
type AssignExpr struct {
	Target Expr
	Op     token.Type
	Value  Expr
}

func (*AssignExpr) exprNode() {}

// Pos implements Node.
func (a *AssignExpr) Pos() token.Position {
	if a.Target != nil {
		return a.Target.Pos()
	}
	return token.Position{}
}

// Kind implements Node.
func (*AssignExpr) Kind() Kind { return KindAssignExpr }

// UpdateExpr represents x++ or x-- (postfix only).
type UpdateExpr struct {
	Target Expr
	Op     token.Type
}

func (*UpdateExpr) exprNode() {}

// Pos implements Node.
func (u *UpdateExpr) Pos() token.Position {
	if u.Target != nil {
		return u.Target.Pos()
	}
	return token.Position{}
}

// Kind implements Node.
func (*UpdateExpr) Kind() Kind { return KindUpdateExpr }

// CallExpr represents callee(args...).
type CallExpr struct {
	Callee Expr
	Args   []Expr
}

func (*CallExpr) exprNode() {}

// Pos implements Node.
func (c *CallExpr) Pos() token.Position {
	if c.Callee != nil {
		return c.Callee.Pos()
	}
	return token.Position{}
}

// Kind implements Node.
func (*CallExpr) Kind() Kind { return KindCallExpr }

// MemberExpr represents object.property or object[index].
type MemberExpr struct {
	Object   Expr
	Property string // set for dot access
	Index    Expr   // set for computed access
	Computed bool
}

func (*MemberExpr) exprNode() {}

// Pos implements Node.
func (m *MemberExpr) Pos() token.Position {
	if m.Object != nil {
		return m.Object.Pos()
	}
	return token.Position{}
}

// Kind implements Node.
func (*MemberExpr) Kind() Kind { return KindMemberExpr }

// ArrowFn represents an arrow function (params) => body.
// Exactly one of ExprBody and BlockBody is set.
type ArrowFn struct {
	Params    []Param
	ExprBody  Expr
	BlockBody *BlockStmt
	FnPos     token.Position
}

func (*ArrowFn) exprNode() {}

// Pos implements Node.
func (a *ArrowFn) Pos() token.Position { return a.FnPos }

// Kind implements Node.
func (*ArrowFn) Kind() Kind { return KindArrowFn }
