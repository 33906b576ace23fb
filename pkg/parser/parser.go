// Package parser parses Leap Screen (.lsx) source into pkg/ast trees.
//
// # Grammar Overview
//
//	unit        → declaration*
//	declaration → export_decl | var_decl | func_decl
//	export_decl → "export" ("default" (func_decl | expression)
//	              | var_decl | func_decl)
//	var_decl    → ("const"|"let"|"var") IDENT ["=" expression] [";"]
//	func_decl   → "function" IDENT "(" params ")" block
//	params      → [param ("," param)*]
//	param       → IDENT | "{" IDENT ("," IDENT)* "}"
//
// Statements and expressions follow the usual scripting-language shapes;
// see parser_expr.go. Markup elements are expressions and may appear
// anywhere an expression may; see parser_markup.go.
//
// The parser accepts a superset of what the downstream compiler can
// serialize (try/catch, spread, template literals all parse fine) so that
// unsupported constructs can be rejected with a ConversionError naming
// the construct rather than an opaque syntax error.
package parser

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/leapview/pkg/ast"
	"github.com/leapstack-labs/leapview/pkg/scenario"
	"github.com/leapstack-labs/leapview/pkg/token"
)

// Parser parses one .lsx compilation unit.
type Parser struct {
	lexer  *Lexer
	tok    token.Token // current token
	lines  []string    // source lines for error snippets
	errors []error
}

// NewParser creates a parser for the given source.
func NewParser(src string) *Parser {
	p := &Parser{
		lexer: NewLexer(src),
		lines: strings.Split(src, "\n"),
	}
	p.next()
	return p
}

// Parse parses the source into a compilation unit. path is recorded on
// the unit for error reporting and may be empty.
func Parse(src, path string) (*ast.Unit, error) {
	p := NewParser(src)
	unit := p.parseUnit()
	unit.Path = path
	if len(p.errors) > 0 {
		return nil, p.errors[0]
	}
	return unit, nil
}

// ParseExpr parses a single expression, used by the REPL.
func ParseExpr(src string) (ast.Expr, error) {
	p := NewParser(src)
	expr := p.parseAssign()
	if len(p.errors) > 0 {
		return nil, p.errors[0]
	}
	if p.tok.Type != token.EOF && p.tok.Type != token.SEMI {
		return nil, p.errorAt(p.tok.Pos, "unexpected trailing input after expression")
	}
	return expr, nil
}

// ---------- Token Helpers ----------

// next advances to the next script-mode token.
func (p *Parser) next() {
	p.tok = p.lexer.Next()
	if p.tok.Type == token.ILLEGAL {
		p.errorf("%s", p.tok.Literal)
	}
}

// nextText advances to the next markup-children token.
func (p *Parser) nextText() {
	p.tok = p.lexer.NextText()
}

// check returns true if the current token is of the given type.
func (p *Parser) check(t token.Type) bool {
	return p.tok.Type == t
}

// match consumes the current token if it matches and returns true.
func (p *Parser) match(t token.Type) bool {
	if p.check(t) {
		p.next()
		return true
	}
	return false
}

// expect consumes the current token if it matches; otherwise records an
// error. Returns true on match.
func (p *Parser) expect(t token.Type) bool {
	if p.check(t) {
		p.next()
		return true
	}
	p.errorf("unexpected token %s, expected %s", p.tok.Type, t)
	return false
}

// snapshot captures the full parser state for backtracking.
type snapshot struct {
	lexer Lexer
	tok   token.Token
	nerr  int
}

func (p *Parser) save() snapshot {
	return snapshot{lexer: *p.lexer, tok: p.tok, nerr: len(p.errors)}
}

func (p *Parser) restore(s snapshot) {
	*p.lexer = s.lexer
	p.tok = s.tok
	p.errors = p.errors[:s.nerr]
}

// errorf records a parse error at the current token.
func (p *Parser) errorf(format string, args ...any) {
	p.errors = append(p.errors, p.errorAtf(p.tok.Pos, format, args...))
}

func (p *Parser) errorAt(pos token.Position, msg string) error {
	return p.errorAtf(pos, "%s", msg)
}

func (p *Parser) errorAtf(pos token.Position, format string, args ...any) error {
	snippet := ""
	if pos.Line >= 1 && pos.Line <= len(p.lines) {
		snippet = p.lines[pos.Line-1]
	}
	return scenario.NewParseError(fmt.Sprintf(format, args...), pos.Line, pos.Column, snippet)
}

// Errors returns all errors recorded so far.
func (p *Parser) Errors() []error {
	return p.errors
}

// ---------- Declarations ----------

// parseUnit parses the whole compilation unit.
func (p *Parser) parseUnit() *ast.Unit {
	unit := &ast.Unit{}
	for !p.check(token.EOF) {
		before := p.tok
		decl := p.parseDecl()
		if decl != nil {
			unit.Decls = append(unit.Decls, decl)
		}
		// Guard against a wedged parser: if no progress was made and an
		// error is already recorded, skip the offending token.
		if p.tok == before && !p.check(token.EOF) {
			p.next()
		}
	}
	return unit
}

// parseDecl parses one top-level declaration.
func (p *Parser) parseDecl() ast.Decl {
	switch p.tok.Type {
	case token.EXPORT:
		return p.parseExportDecl()
	case token.CONST, token.LET, token.VAR:
		if decl := p.parseVarDecl(false); decl != nil {
			return decl
		}
		return nil
	case token.FUNCTION:
		if decl := p.parseFuncDecl(false, false); decl != nil {
			return decl
		}
		return nil
	case token.IMPORT:
		p.errorf("import declarations are not supported; components resolve through the catalogue")
		return nil
	case token.SEMI:
		p.next()
		return nil
	default:
		p.errorf("unexpected token %s at top level", p.tok.Type)
		return nil
	}
}

// parseExportDecl parses export / export default declarations.
func (p *Parser) parseExportDecl() ast.Decl {
	exportPos := p.tok.Pos
	p.next() // consume export

	switch p.tok.Type {
	case token.DEFAULT:
		p.next()
		if p.check(token.FUNCTION) {
			if decl := p.parseFuncDecl(true, true); decl != nil {
				return decl
			}
			return nil
		}
		expr := p.parseAssign()
		p.match(token.SEMI)
		if expr == nil {
			return nil
		}
		return &ast.DefaultExport{Expr: expr, ExportPos: exportPos}
	case token.CONST, token.LET, token.VAR:
		if decl := p.parseVarDecl(true); decl != nil {
			return decl
		}
		return nil
	case token.FUNCTION:
		if decl := p.parseFuncDecl(true, false); decl != nil {
			return decl
		}
		return nil
	default:
		p.errorf("unexpected token %s after export", p.tok.Type)
		return nil
	}
}

// parseVarDecl parses const/let/var name = init.
func (p *Parser) parseVarDecl(exported bool) *ast.VarDecl {
	decl := &ast.VarDecl{
		Keyword:  p.tok.Type,
		Exported: exported,
		DeclPos:  p.tok.Pos,
	}
	p.next()

	if !p.check(token.IDENT) {
		p.errorf("expected identifier after %s, got %s", decl.Keyword, p.tok.Type)
		return nil
	}
	decl.Name = p.tok.Literal
	p.next()

	if p.match(token.ASSIGN) {
		decl.Init = p.parseAssign()
	} else if decl.Keyword == token.CONST {
		p.errorf("const declaration of %q requires an initializer", decl.Name)
	}
	p.match(token.SEMI)
	return decl
}

// parseFuncDecl parses function Name(params) { body }.
func (p *Parser) parseFuncDecl(exported, deflt bool) *ast.FuncDecl {
	decl := &ast.FuncDecl{
		Exported: exported,
		Default:  deflt,
		FuncPos:  p.tok.Pos,
	}
	p.next() // consume function

	if !p.check(token.IDENT) {
		p.errorf("expected function name, got %s", p.tok.Type)
		return nil
	}
	decl.Name = p.tok.Literal
	p.next()

	decl.Params = p.parseParams()
	decl.Body = p.parseBlock()
	return decl
}

// parseParams parses a parenthesized formal parameter list.
func (p *Parser) parseParams() []ast.Param {
	if !p.expect(token.LPAREN) {
		return nil
	}
	var params []ast.Param
	for !p.check(token.RPAREN) && !p.check(token.EOF) {
		param, ok := p.parseParam()
		if !ok {
			return params
		}
		params = append(params, param)
		if !p.match(token.COMMA) {
			break
		}
	}
	p.expect(token.RPAREN)
	return params
}

// parseParam parses one formal parameter: a plain identifier or a
// one-level object destructuring pattern.
func (p *Parser) parseParam() (ast.Param, bool) {
	pos := p.tok.Pos
	switch p.tok.Type {
	case token.IDENT:
		name := p.tok.Literal
		p.next()
		return ast.Param{Name: name, ParamPos: pos}, true
	case token.LBRACE:
		p.next()
		var props []string
		for p.check(token.IDENT) {
			props = append(props, p.tok.Literal)
			p.next()
			if !p.match(token.COMMA) {
				break
			}
		}
		if !p.expect(token.RBRACE) {
			return ast.Param{}, false
		}
		return ast.Param{Properties: props, ParamPos: pos}, true
	default:
		p.errorf("expected parameter, got %s", p.tok.Type)
		return ast.Param{}, false
	}
}

// ---------- Statements ----------

// parseBlock parses { stmts... }.
func (p *Parser) parseBlock() *ast.BlockStmt {
	block := &ast.BlockStmt{Lbrace: p.tok.Pos}
	if !p.expect(token.LBRACE) {
		return block
	}
	for !p.check(token.RBRACE) && !p.check(token.EOF) {
		before := p.tok
		if stmt := p.parseStatement(); stmt != nil {
			block.Stmts = append(block.Stmts, stmt)
		}
		if p.tok == before && !p.check(token.RBRACE) && !p.check(token.EOF) {
			p.next()
		}
	}
	p.expect(token.RBRACE)
	return block
}

// parseStatement parses one statement.
func (p *Parser) parseStatement() ast.Stmt {
	switch p.tok.Type {
	case token.RETURN:
		return p.parseReturn()
	case token.IF:
		return p.parseIf()
	case token.WHILE:
		return p.parseWhile()
	case token.FOR:
		return p.parseFor()
	case token.LBRACE:
		return p.parseBlock()
	case token.CONST, token.LET, token.VAR:
		if decl := p.parseVarDecl(false); decl != nil {
			return decl
		}
		return nil
	case token.BREAK:
		pos := p.tok.Pos
		p.next()
		p.match(token.SEMI)
		return &ast.BreakStmt{BreakPos: pos}
	case token.CONTINUE:
		pos := p.tok.Pos
		p.next()
		p.match(token.SEMI)
		return &ast.ContinueStmt{ContinuePos: pos}
	case token.TRY:
		return p.parseTry()
	case token.SEMI:
		p.next()
		return nil
	default:
		expr := p.parseAssign()
		p.match(token.SEMI)
		if expr == nil {
			return nil
		}
		return &ast.ExprStmt{Expr: expr}
	}
}

// parseReturn parses return [expr].
func (p *Parser) parseReturn() ast.Stmt {
	stmt := &ast.ReturnStmt{ReturnPos: p.tok.Pos}
	p.next()
	if !p.check(token.SEMI) && !p.check(token.RBRACE) && !p.check(token.EOF) {
		stmt.Result = p.parseAssign()
	}
	p.match(token.SEMI)
	return stmt
}

// parseIf parses if (cond) { ... } [else ...].
func (p *Parser) parseIf() ast.Stmt {
	stmt := &ast.IfStmt{IfPos: p.tok.Pos}
	p.next()
	p.expect(token.LPAREN)
	stmt.Cond = p.parseAssign()
	p.expect(token.RPAREN)
	stmt.Body = p.parseBlock()
	if p.match(token.ELSE) {
		if p.check(token.IF) {
			stmt.Else = p.parseIf()
		} else {
			stmt.Else = p.parseBlock()
		}
	}
	return stmt
}

// parseWhile parses while (cond) { ... }.
func (p *Parser) parseWhile() ast.Stmt {
	stmt := &ast.WhileStmt{WhilePos: p.tok.Pos}
	p.next()
	p.expect(token.LPAREN)
	stmt.Cond = p.parseAssign()
	p.expect(token.RPAREN)
	stmt.Body = p.parseBlock()
	return stmt
}

// parseFor parses the classic three-clause for statement.
func (p *Parser) parseFor() ast.Stmt {
	stmt := &ast.ForStmt{ForPos: p.tok.Pos}
	p.next()
	p.expect(token.LPAREN)

	if !p.check(token.SEMI) {
		if p.check(token.CONST) || p.check(token.LET) || p.check(token.VAR) {
			// parseVarDecl consumes the ; after the declarator.
			if decl := p.parseVarDecl(false); decl != nil {
				stmt.Init = decl
			}
		} else {
			init := p.parseAssign()
			if init != nil {
				stmt.Init = &ast.ExprStmt{Expr: init}
			}
			p.expect(token.SEMI)
		}
	} else {
		p.next()
	}

	if !p.check(token.SEMI) {
		stmt.Cond = p.parseAssign()
	}
	p.expect(token.SEMI)

	if !p.check(token.RPAREN) {
		stmt.Post = p.parseAssign()
	}
	p.expect(token.RPAREN)

	stmt.Body = p.parseBlock()
	return stmt
}

// parseTry parses try { } catch (e) { } [finally { }].
func (p *Parser) parseTry() ast.Stmt {
	stmt := &ast.TryStmt{TryPos: p.tok.Pos}
	p.next()
	stmt.Body = p.parseBlock()

	if p.match(token.CATCH) {
		if p.match(token.LPAREN) {
			if p.check(token.IDENT) {
				stmt.CatchVar = p.tok.Literal
				p.next()
			}
			p.expect(token.RPAREN)
		}
		stmt.Catch = p.parseBlock()
	}
	if p.match(token.FINALLY) {
		stmt.Finally = p.parseBlock()
	}
	if stmt.Catch == nil && stmt.Finally == nil {
		p.errorf("try statement requires a catch or finally clause")
	}
	return stmt
}
