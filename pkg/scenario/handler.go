package scenario

// The serialized handler instruction set. This is the complete vocabulary
// the target runtime's interpreter understands; the serializer in
// pkg/compiler maps the source AST onto it and refuses anything that has
// no entry here. There is no partial or degraded output: a handler either
// serializes fully or fails with a ConversionError.

// HandlerExprKind tags a serialized expression.
type HandlerExprKind string

// Serialized expression kinds.
const (
	HExprIdentifier  HandlerExprKind = "identifier"
	HExprLiteral     HandlerExprKind = "literal"
	HExprUnary       HandlerExprKind = "unary"
	HExprBinary      HandlerExprKind = "binary"
	HExprLogical     HandlerExprKind = "logical"
	HExprConditional HandlerExprKind = "conditional"
	HExprCall        HandlerExprKind = "call"
	HExprMember      HandlerExprKind = "member"
	HExprAssign      HandlerExprKind = "assign"
	HExprUpdate      HandlerExprKind = "update"
	HExprArray       HandlerExprKind = "array"
	HExprObject      HandlerExprKind = "object"
)

// HandlerExpr is one serialized expression node. Exactly the fields
// relevant to Kind are populated; all others stay at their zero value and
// are omitted from JSON.
type HandlerExpr struct {
	Kind HandlerExprKind `json:"kind"`

	// identifier
	Name string `json:"name,omitempty"`

	// literal
	Value *TypedValue `json:"value,omitempty"`

	// unary, binary, logical, assign, update
	Op string `json:"op,omitempty"`

	Left  *HandlerExpr `json:"left,omitempty"`  // binary, logical, assign (target)
	Right *HandlerExpr `json:"right,omitempty"` // binary, logical, assign (value)
	Arg   *HandlerExpr `json:"arg,omitempty"`   // unary, update

	// conditional
	Test       *HandlerExpr `json:"test,omitempty"`
	Consequent *HandlerExpr `json:"consequent,omitempty"`
	Alternate  *HandlerExpr `json:"alternate,omitempty"`

	// call
	Callee *HandlerExpr   `json:"callee,omitempty"`
	Args   []*HandlerExpr `json:"args,omitempty"`

	// member
	Object   *HandlerExpr `json:"object,omitempty"`
	Property string       `json:"property,omitempty"`
	Index    *HandlerExpr `json:"index,omitempty"`

	// array / object construction
	Elements []*HandlerExpr          `json:"elements,omitempty"`
	Fields   map[string]*HandlerExpr `json:"fields,omitempty"`
}

// HandlerStmtKind tags a serialized statement.
type HandlerStmtKind string

// Serialized statement kinds.
const (
	HStmtExpr     HandlerStmtKind = "expression"
	HStmtReturn   HandlerStmtKind = "return"
	HStmtIf       HandlerStmtKind = "if"
	HStmtWhile    HandlerStmtKind = "while"
	HStmtFor      HandlerStmtKind = "for"
	HStmtBlock    HandlerStmtKind = "block"
	HStmtVarDecl  HandlerStmtKind = "declare"
	HStmtBreak    HandlerStmtKind = "break"
	HStmtContinue HandlerStmtKind = "continue"
)

// HandlerStmt is one serialized statement node.
type HandlerStmt struct {
	Kind HandlerStmtKind `json:"kind"`

	// expression, return (optional)
	Expr *HandlerExpr `json:"expr,omitempty"`

	// if, while, for
	Cond *HandlerExpr   `json:"cond,omitempty"`
	Body []*HandlerStmt `json:"body,omitempty"`
	Else []*HandlerStmt `json:"else,omitempty"` // if only

	// for
	Init *HandlerStmt `json:"init,omitempty"`
	Post *HandlerExpr `json:"post,omitempty"`

	// declare
	Name string       `json:"name,omitempty"`
	Val  *HandlerExpr `json:"value,omitempty"`
}

// SerializedHandler is a complete compiled event handler: the parameter
// names the runtime binds from the event payload, plus the body as a
// single block statement.
type SerializedHandler struct {
	Params []string     `json:"params"`
	Body   *HandlerStmt `json:"body"`
}
