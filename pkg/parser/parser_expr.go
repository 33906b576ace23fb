package parser

import (
	"strconv"

	"github.com/leapstack-labs/leapview/pkg/ast"
	"github.com/leapstack-labs/leapview/pkg/token"
)

// Expression grammar, loosest binding first:
//
//	assignment  → conditional (("="|"+="|"-=") assignment)?
//	conditional → coalesce ("?" assignment ":" assignment)?
//	coalesce    → or ("??" or)*
//	or          → and ("||" and)*
//	and         → equality ("&&" equality)*
//	equality    → relational (("=="|"==="|"!="|"!==") relational)*
//	relational  → additive (("<"|">"|"<="|">=") additive)*
//	additive    → multiplicative (("+"|"-") multiplicative)*
//	multiplicative → unary (("*"|"/"|"%") unary)*
//	unary       → ("!"|"-"|"+"|"~") unary | postfix
//	postfix     → primary ("." IDENT | "[" expr "]" | "(" args ")" | "++" | "--")*
//
// Relational "<" only applies in infix position; "<" in prefix position
// always opens a markup element.

// parseAssign parses an assignment expression (the general entry point).
func (p *Parser) parseAssign() ast.Expr {
	left := p.parseConditional()
	if left == nil {
		return nil
	}

	switch p.tok.Type {
	case token.ASSIGN, token.PLUSEQ, token.MINUSEQ:
		op := p.tok.Type
		p.next()
		value := p.parseAssign()
		if value == nil {
			return nil
		}
		return &ast.AssignExpr{Target: left, Op: op, Value: value}
	}
	return left
}

// parseConditional parses test ? consequent : alternate.
func (p *Parser) parseConditional() ast.Expr {
	test := p.parseCoalesce()
	if test == nil || !p.check(token.QUESTION) {
		return test
	}
	p.next()
	consequent := p.parseAssign()
	if !p.expect(token.COLON) {
		return nil
	}
	alternate := p.parseAssign()
	if consequent == nil || alternate == nil {
		return nil
	}
	return &ast.ConditionalExpr{Test: test, Consequent: consequent, Alternate: alternate}
}

// parseCoalesce parses left ?? right chains.
func (p *Parser) parseCoalesce() ast.Expr {
	return p.parseLogical(token.COALESCE, func() ast.Expr {
		return p.parseLogical(token.OR, func() ast.Expr {
			return p.parseLogical(token.AND, p.parseEquality)
		})
	})
}

// parseLogical parses a left-associative logical chain at one level.
func (p *Parser) parseLogical(op token.Type, next func() ast.Expr) ast.Expr {
	left := next()
	for left != nil && p.check(op) {
		p.next()
		right := next()
		if right == nil {
			return nil
		}
		left = &ast.LogicalExpr{Left: left, Op: op, Right: right}
	}
	return left
}

// parseEquality parses ==, ===, !=, !== chains.
func (p *Parser) parseEquality() ast.Expr {
	left := p.parseRelational()
	for left != nil {
		switch p.tok.Type {
		case token.EQ, token.SEQ, token.NE, token.SNE:
			op := p.tok.Type
			p.next()
			right := p.parseRelational()
			if right == nil {
				return nil
			}
			left = &ast.BinaryExpr{Left: left, Op: op, Right: right}
		default:
			return left
		}
	}
	return left
}

// parseRelational parses <, >, <=, >= chains.
func (p *Parser) parseRelational() ast.Expr {
	left := p.parseAdditive()
	for left != nil {
		switch p.tok.Type {
		case token.LT, token.GT, token.LE, token.GE:
			op := p.tok.Type
			p.next()
			right := p.parseAdditive()
			if right == nil {
				return nil
			}
			left = &ast.BinaryExpr{Left: left, Op: op, Right: right}
		default:
			return left
		}
	}
	return left
}

// parseAdditive parses +, - chains.
func (p *Parser) parseAdditive() ast.Expr {
	left := p.parseMultiplicative()
	for left != nil && (p.check(token.PLUS) || p.check(token.MINUS)) {
		op := p.tok.Type
		p.next()
		right := p.parseMultiplicative()
		if right == nil {
			return nil
		}
		left = &ast.BinaryExpr{Left: left, Op: op, Right: right}
	}
	return left
}

// parseMultiplicative parses *, /, % chains.
func (p *Parser) parseMultiplicative() ast.Expr {
	left := p.parseUnary()
	for left != nil {
		switch p.tok.Type {
		case token.STAR, token.SLASH, token.PERCENT:
			op := p.tok.Type
			p.next()
			right := p.parseUnary()
			if right == nil {
				return nil
			}
			left = &ast.BinaryExpr{Left: left, Op: op, Right: right}
		default:
			return left
		}
	}
	return left
}

// parseUnary parses prefix unary operators.
func (p *Parser) parseUnary() ast.Expr {
	switch p.tok.Type {
	case token.BANG, token.MINUS, token.PLUS, token.TILDE:
		op := p.tok.Type
		pos := p.tok.Pos
		p.next()
		arg := p.parseUnary()
		if arg == nil {
			return nil
		}
		return &ast.UnaryExpr{Op: op, Arg: arg, OpPos: pos}
	}
	return p.parsePostfix()
}

// parsePostfix parses member access, calls and update operators.
func (p *Parser) parsePostfix() ast.Expr {
	expr := p.parsePrimary()
	for expr != nil {
		switch p.tok.Type {
		case token.DOT:
			p.next()
			if !p.check(token.IDENT) && !token.IsKeyword(p.tok.Type) {
				p.errorf("expected property name after '.', got %s", p.tok.Type)
				return nil
			}
			expr = &ast.MemberExpr{Object: expr, Property: p.tok.Literal}
			p.next()
		case token.LBRACKET:
			p.next()
			index := p.parseAssign()
			if index == nil || !p.expect(token.RBRACKET) {
				return nil
			}
			expr = &ast.MemberExpr{Object: expr, Index: index, Computed: true}
		case token.LPAREN:
			p.next()
			var args []ast.Expr
			for !p.check(token.RPAREN) && !p.check(token.EOF) {
				arg := p.parseCallArg()
				if arg == nil {
					return nil
				}
				args = append(args, arg)
				if !p.match(token.COMMA) {
					break
				}
			}
			if !p.expect(token.RPAREN) {
				return nil
			}
			expr = &ast.CallExpr{Callee: expr, Args: args}
		case token.INC, token.DEC:
			op := p.tok.Type
			p.next()
			expr = &ast.UpdateExpr{Target: expr, Op: op}
		default:
			return expr
		}
	}
	return expr
}

// parseCallArg parses one call argument, allowing spread.
func (p *Parser) parseCallArg() ast.Expr {
	if p.check(token.ELLIPSIS) {
		pos := p.tok.Pos
		p.next()
		arg := p.parseAssign()
		if arg == nil {
			return nil
		}
		return &ast.Spread{Arg: arg, Ellipsis: pos}
	}
	return p.parseAssign()
}

// parsePrimary parses literals, identifiers, arrow functions, grouping,
// array/object literals, and markup elements.
func (p *Parser) parsePrimary() ast.Expr {
	pos := p.tok.Pos

	switch p.tok.Type {
	case token.IDENT:
		name := p.tok.Literal
		p.next()
		// IDENT => body is a single-parameter arrow function.
		if p.check(token.ARROW) {
			return p.parseArrowBody([]ast.Param{{Name: name, ParamPos: pos}}, pos)
		}
		return &ast.Ident{Name: name, NamePos: pos}

	case token.STRING:
		lit := &ast.StringLit{Value: p.tok.Literal, ValuePos: pos}
		p.next()
		return lit

	case token.NUMBER:
		raw := p.tok.Literal
		p.next()
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			p.errors = append(p.errors, p.errorAtf(pos, "invalid number literal %q", raw))
			return nil
		}
		return &ast.NumberLit{Raw: raw, Value: value, ValuePos: pos}

	case token.TEMPLATE:
		lit := &ast.TemplateLit{Raw: p.tok.Literal, ValuePos: pos}
		p.next()
		return lit

	case token.TRUE, token.FALSE:
		value := p.tok.Type == token.TRUE
		p.next()
		return &ast.BoolLit{Value: value, ValuePos: pos}

	case token.NULL:
		p.next()
		return &ast.NullLit{ValuePos: pos}

	case token.LPAREN:
		return p.parseParenOrArrow(pos)

	case token.LBRACKET:
		return p.parseArrayLit(pos)

	case token.LBRACE:
		return p.parseObjectLit(pos)

	case token.LT:
		return p.parseElement(false)

	case token.FUNCTION:
		p.errorf("function expressions are not supported; use an arrow function")
		return nil

	default:
		p.errorf("unexpected token %s in expression", p.tok.Type)
		return nil
	}
}

// parseParenOrArrow disambiguates (params) => body from (expr) by
// attempting the arrow form first and backtracking on failure.
func (p *Parser) parseParenOrArrow(pos token.Position) ast.Expr {
	saved := p.save()

	params, ok := p.tryParseArrowParams()
	if ok && p.check(token.ARROW) {
		return p.parseArrowBody(params, pos)
	}
	p.restore(saved)

	p.next() // consume (
	expr := p.parseAssign()
	if expr == nil || !p.expect(token.RPAREN) {
		return nil
	}
	return expr
}

// tryParseArrowParams attempts to parse "(" params ")". Errors are not
// recorded; the caller restores on failure.
func (p *Parser) tryParseArrowParams() ([]ast.Param, bool) {
	if !p.check(token.LPAREN) {
		return nil, false
	}
	p.next()

	var params []ast.Param
	for !p.check(token.RPAREN) {
		switch p.tok.Type {
		case token.IDENT:
			params = append(params, ast.Param{Name: p.tok.Literal, ParamPos: p.tok.Pos})
			p.next()
		case token.LBRACE:
			pos := p.tok.Pos
			p.next()
			var props []string
			for p.check(token.IDENT) {
				props = append(props, p.tok.Literal)
				p.next()
				if !p.check(token.COMMA) {
					break
				}
				p.next()
			}
			if !p.check(token.RBRACE) {
				return nil, false
			}
			p.next()
			params = append(params, ast.Param{Properties: props, ParamPos: pos})
		default:
			return nil, false
		}
		if p.check(token.COMMA) {
			p.next()
			continue
		}
		break
	}
	if !p.check(token.RPAREN) {
		return nil, false
	}
	p.next()
	return params, true
}

// parseArrowBody parses the => body of an arrow function. The current
// token is ARROW.
func (p *Parser) parseArrowBody(params []ast.Param, pos token.Position) ast.Expr {
	p.next() // consume =>
	fn := &ast.ArrowFn{Params: params, FnPos: pos}
	if p.check(token.LBRACE) {
		fn.BlockBody = p.parseBlock()
	} else {
		fn.ExprBody = p.parseAssign()
		if fn.ExprBody == nil {
			return nil
		}
	}
	return fn
}

// parseArrayLit parses [elem, ...].
func (p *Parser) parseArrayLit(pos token.Position) ast.Expr {
	p.next() // consume [
	arr := &ast.ArrayLit{Lbrack: pos}
	for !p.check(token.RBRACKET) && !p.check(token.EOF) {
		elem := p.parseCallArg() // allows spread, rejected downstream
		if elem == nil {
			return nil
		}
		arr.Elements = append(arr.Elements, elem)
		if !p.match(token.COMMA) {
			break
		}
	}
	if !p.expect(token.RBRACKET) {
		return nil
	}
	return arr
}

// parseObjectLit parses { key: value, shorthand, "str": value, ... }.
func (p *Parser) parseObjectLit(pos token.Position) ast.Expr {
	p.next() // consume {
	obj := &ast.ObjectLit{Lbrace: pos}
	for !p.check(token.RBRACE) && !p.check(token.EOF) {
		field := &ast.ObjectField{KeyPos: p.tok.Pos}

		switch {
		case p.check(token.IDENT) || token.IsKeyword(p.tok.Type):
			field.Key = p.tok.Literal
			p.next()
		case p.check(token.STRING):
			field.Key = p.tok.Literal
			p.next()
		default:
			p.errorf("expected object key, got %s", p.tok.Type)
			return nil
		}

		if p.match(token.COLON) {
			field.Value = p.parseAssign()
			if field.Value == nil {
				return nil
			}
		} else {
			// { x } shorthand for { x: x }.
			field.Shorthand = true
			field.Value = &ast.Ident{Name: field.Key, NamePos: field.KeyPos}
		}

		obj.Fields = append(obj.Fields, field)
		if !p.match(token.COMMA) {
			break
		}
	}
	if !p.expect(token.RBRACE) {
		return nil
	}
	return obj
}
