package ast

import "github.com/leapstack-labs/leapview/pkg/token"

// ---------- Statement Types ----------

// ExprStmt is an expression used in statement position.
type ExprStmt struct {
	Expr Expr
}

func (*ExprStmt) stmtNode() {}

// Pos implements Node.
func (s *ExprStmt) Pos() token.Position {
	if s.Expr != nil {
		return s.Expr.Pos()
	}
	return token.Position{}
}

// Kind implements Node.
func (*ExprStmt) Kind() Kind { return KindExprStmt }

// ReturnStmt represents return [expr].
type ReturnStmt struct {
	Result    Expr // nil for bare return
	ReturnPos token.Position
}

func (*ReturnStmt) stmtNode() {}

// Pos implements Node.
func (s *ReturnStmt) Pos() token.Position { return s.ReturnPos }

// Kind implements Node.
func (*ReturnStmt) Kind() Kind { return KindReturnStmt }

// IfStmt represents if (cond) body [else alt].
type IfStmt struct {
	Cond  Expr
	Body  *BlockStmt
	Else  Stmt // *BlockStmt or *IfStmt, nil if absent
	IfPos token.Position
}

func (*IfStmt) stmtNode() {}

// Pos implements Node.
func (s *IfStmt) Pos() token.Position { return s.IfPos }

// Kind implements Node.
func (*IfStmt) Kind() Kind { return KindIfStmt }

// WhileStmt represents while (cond) body.
type WhileStmt struct {
	Cond     Expr
	Body     *BlockStmt
	WhilePos token.Position
}

func (*WhileStmt) stmtNode() {}

// Pos implements Node.
func (s *WhileStmt) Pos() token.Position { return s.WhilePos }

// Kind implements Node.
func (*WhileStmt) Kind() Kind { return KindWhileStmt }

// ForStmt represents the classic for (init; cond; post) body.
// Any of Init, Cond, Post may be nil.
type ForStmt struct {
	Init   Stmt // *VarDecl or *ExprStmt
	Cond   Expr
	Post   Expr
	Body   *BlockStmt
	ForPos token.Position
}

func (*ForStmt) stmtNode() {}

// Pos implements Node.
func (s *ForStmt) Pos() token.Position { return s.ForPos }

// Kind implements Node.
func (*ForStmt) Kind() Kind { return KindForStmt }

// BlockStmt represents { stmts... }.
type BlockStmt struct {
	Stmts  []Stmt
	Lbrace token.Position
}

func (*BlockStmt) stmtNode() {}

// Pos implements Node.
func (s *BlockStmt) Pos() token.Position { return s.Lbrace }

// Kind implements Node.
func (*BlockStmt) Kind() Kind { return KindBlockStmt }

// VarDecl represents const/let/var name = init. At the top level of a
// unit it doubles as a declaration (a helper component, a store, or the
// scenario metadata block, depending on its initializer).
type VarDecl struct {
	Keyword  token.Type // CONST, LET or VAR
	Name     string
	Init     Expr // nil for bare let declarations
	Exported bool
	DeclPos  token.Position
}

func (*VarDecl) stmtNode() {}
func (*VarDecl) declNode() {}

// Pos implements Node.
func (s *VarDecl) Pos() token.Position { return s.DeclPos }

// Kind implements Node.
func (*VarDecl) Kind() Kind { return KindVarDecl }

// BreakStmt represents break.
type BreakStmt struct {
	BreakPos token.Position
}

func (*BreakStmt) stmtNode() {}

// Pos implements Node.
func (s *BreakStmt) Pos() token.Position { return s.BreakPos }

// Kind implements Node.
func (*BreakStmt) Kind() Kind { return KindBreakStmt }

// ContinueStmt represents continue.
type ContinueStmt struct {
	ContinuePos token.Position
}

func (*ContinueStmt) stmtNode() {}

// Pos implements Node.
func (s *ContinueStmt) Pos() token.Position { return s.ContinuePos }

// Kind implements Node.
func (*ContinueStmt) Kind() Kind { return KindContinueStmt }

// TryStmt represents try/catch/finally. Parsed so the handler serializer
// can reject it with a precise error instead of a parse failure.
type TryStmt struct {
	Body     *BlockStmt
	CatchVar string
	Catch    *BlockStmt
	Finally  *BlockStmt
	TryPos   token.Position
}

func (*TryStmt) stmtNode() {}

// Pos implements Node.
func (s *TryStmt) Pos() token.Position { return s.TryPos }

// Kind implements Node.
func (*TryStmt) Kind() Kind { return KindTryStmt }

// ---------- Declaration Types ----------

// FuncDecl represents function Name(params) { body }.
type FuncDecl struct {
	Name     string
	Params   []Param
	Body     *BlockStmt
	Exported bool
	Default  bool // export default function
	FuncPos  token.Position
}

func (*FuncDecl) declNode() {}

// Pos implements Node.
func (d *FuncDecl) Pos() token.Position { return d.FuncPos }

// Kind implements Node.
func (*FuncDecl) Kind() Kind { return KindFuncDecl }

// DefaultExport represents export default <expr> where the expression is
// not a named function declaration (typically an arrow function).
type DefaultExport struct {
	Expr      Expr
	ExportPos token.Position
}

func (*DefaultExport) declNode() {}

// Pos implements Node.
func (d *DefaultExport) Pos() token.Position { return d.ExportPos }

// Kind implements Node.
func (*DefaultExport) Kind() Kind { return KindDefaultExport }
