// Package ast defines the abstract syntax tree for Leap Screen (.lsx)
// compilation units.
//
// Node kinds form a closed enum (Kind). Every consumer of the tree is
// expected to switch over Kind exhaustively and treat unknown kinds as a
// hard error, so that adding a new node kind forces every pass to take a
// position on it.
package ast

import "github.com/leapstack-labs/leapview/pkg/token"

// Kind identifies the concrete type of an AST node.
type Kind int

const (
	// Expressions
	KindIdent Kind = iota
	KindStringLit
	KindNumberLit
	KindBoolLit
	KindNullLit
	KindTemplateLit
	KindArrayLit
	KindObjectLit
	KindSpread
	KindUnaryExpr
	KindBinaryExpr
	KindLogicalExpr
	KindConditionalExpr
	KindAssignExpr
	KindUpdateExpr
	KindCallExpr
	KindMemberExpr
	KindArrowFn

	// Markup
	KindElement
	KindAttribute
	KindText

	// Statements
	KindExprStmt
	KindReturnStmt
	KindIfStmt
	KindWhileStmt
	KindForStmt
	KindBlockStmt
	KindVarDecl
	KindBreakStmt
	KindContinueStmt
	KindTryStmt

	// Declarations
	KindFuncDecl
	KindDefaultExport
	KindUnit
)

// kindNames maps kinds to their display names, used in error messages.
var kindNames = map[Kind]string{
	KindIdent:           "Identifier",
	KindStringLit:       "StringLiteral",
	KindNumberLit:       "NumberLiteral",
	KindBoolLit:         "BoolLiteral",
	KindNullLit:         "NullLiteral",
	KindTemplateLit:     "TemplateLiteral",
	KindArrayLit:        "ArrayLiteral",
	KindObjectLit:       "ObjectLiteral",
	KindSpread:          "SpreadElement",
	KindUnaryExpr:       "UnaryExpression",
	KindBinaryExpr:      "BinaryExpression",
	KindLogicalExpr:     "LogicalExpression",
	KindConditionalExpr: "ConditionalExpression",
	KindAssignExpr:      "AssignmentExpression",
	KindUpdateExpr:      "UpdateExpression",
	KindCallExpr:        "CallExpression",
	KindMemberExpr:      "MemberExpression",
	KindArrowFn:         "ArrowFunction",
	KindElement:         "Element",
	KindAttribute:       "Attribute",
	KindText:            "Text",
	KindExprStmt:        "ExpressionStatement",
	KindReturnStmt:      "ReturnStatement",
	KindIfStmt:          "IfStatement",
	KindWhileStmt:       "WhileStatement",
	KindForStmt:         "ForStatement",
	KindBlockStmt:       "BlockStatement",
	KindVarDecl:         "VariableDeclaration",
	KindBreakStmt:       "BreakStatement",
	KindContinueStmt:    "ContinueStatement",
	KindTryStmt:         "TryStatement",
	KindFuncDecl:        "FunctionDeclaration",
	KindDefaultExport:   "DefaultExport",
	KindUnit:            "Unit",
}

// String returns the display name of the kind.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "UnknownKind"
}

// Node is the base interface for all AST nodes.
type Node interface {
	// Pos returns the position of the first character of the node.
	Pos() token.Position
	// Kind returns the node's kind tag.
	Kind() Kind
}

// Expr is a marker interface for expression nodes.
type Expr interface {
	Node
	exprNode()
}

// Stmt is a marker interface for statement nodes.
type Stmt interface {
	Node
	stmtNode()
}

// Decl is a marker interface for top-level declaration nodes.
type Decl interface {
	Node
	declNode()
}

// Unit is a single compilation unit: one parsed .lsx file.
type Unit struct {
	Path  string // source path, may be empty for in-memory units
	Decls []Decl
}

// Pos implements Node.
func (u *Unit) Pos() token.Position {
	if len(u.Decls) > 0 {
		return u.Decls[0].Pos()
	}
	return token.Position{}
}

// Kind implements Node.
func (*Unit) Kind() Kind { return KindUnit }

// Param is a formal parameter of a function.
//
// Either Name is set (a plain identifier parameter), or Properties lists
// the keys of a one-level object destructuring pattern.
type Param struct {
	Name       string
	Properties []string
	ParamPos   token.Position
}

// Destructured returns true if the parameter is an object pattern.
func (p Param) Destructured() bool { return p.Name == "" }
