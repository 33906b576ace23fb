package parser

import (
	"github.com/leapstack-labs/leapview/pkg/ast"
	"github.com/leapstack-labs/leapview/pkg/token"
)

// Markup grammar:
//
//	element   → "<" tag_name attribute* ("/>" | ">" child* "</" tag_name ">")
//	tag_name  → IDENT ("." IDENT | ":" IDENT)?
//	attribute → IDENT ["=" (STRING | "{" expression "}")]
//	child     → element | TEXT | "{" expression "}"
//
// The lexer has no markup mode of its own; inside element children the
// parser advances with nextText, which yields raw TEXT runs and the
// delimiters TAGLT, LTSLASH and LBRACE.

// parseElement parses one markup element. On entry the current token is
// LT (script context) or TAGLT (child context). inMarkup tells the parser
// which lexer mode to resume after the element closes: text mode when the
// element is a child of another element, script mode otherwise.
func (p *Parser) parseElement(inMarkup bool) ast.Expr {
	tagPos := p.tok.Pos
	p.next() // consume < ; tag name lexes in script mode

	tag, ok := p.parseTagName()
	if !ok {
		return nil
	}
	elem := &ast.Element{Tag: tag, TagPos: tagPos}

	// Attributes.
	for p.check(token.IDENT) {
		attr := p.parseAttribute()
		if attr == nil {
			return nil
		}
		elem.Attrs = append(elem.Attrs, attr)
	}

	// Self-closing: "/>".
	if p.check(token.SLASH) {
		p.next()
		if !p.check(token.GT) {
			p.errorf("expected '>' after '/' in <%s>, got %s", tag, p.tok.Type)
			return nil
		}
		p.closeTag(inMarkup)
		return elem
	}

	if !p.check(token.GT) {
		p.errorf("expected '>' or '/>' in <%s>, got %s", tag, p.tok.Type)
		return nil
	}
	p.nextText() // children lex in text mode

	// Children.
	for {
		switch p.tok.Type {
		case token.TEXT:
			elem.Children = append(elem.Children, &ast.Text{Value: p.tok.Literal, TextPos: p.tok.Pos})
			p.nextText()
		case token.TAGLT:
			child := p.parseElement(true)
			if child == nil {
				return nil
			}
			elem.Children = append(elem.Children, child)
		case token.LBRACE:
			p.next() // expression lexes in script mode
			expr := p.parseAssign()
			if expr == nil {
				return nil
			}
			if !p.check(token.RBRACE) {
				p.errorf("expected '}' after child expression in <%s>, got %s", tag, p.tok.Type)
				return nil
			}
			p.nextText()
			elem.Children = append(elem.Children, expr)
		case token.LTSLASH:
			p.next() // closing tag name lexes in script mode
			closing, ok := p.parseTagName()
			if !ok {
				return nil
			}
			if closing != tag {
				p.errorf("mismatched closing tag: expected </%s>, got </%s>", tag, closing)
				return nil
			}
			if !p.check(token.GT) {
				p.errorf("expected '>' to close </%s>, got %s", tag, p.tok.Type)
				return nil
			}
			p.closeTag(inMarkup)
			return elem
		case token.EOF:
			p.errors = append(p.errors, p.errorAtf(tagPos, "unterminated element <%s>", tag))
			return nil
		default:
			p.errorf("unexpected token %s inside <%s>", p.tok.Type, tag)
			return nil
		}
	}
}

// parseTagName parses a simple, dotted, or colon-namespaced tag name.
// The current token must be the first identifier.
func (p *Parser) parseTagName() (string, bool) {
	if !p.check(token.IDENT) {
		p.errorf("expected tag name, got %s", p.tok.Type)
		return "", false
	}
	name := p.tok.Literal
	p.next()

	switch p.tok.Type {
	case token.DOT, token.COLON:
		sep := p.tok.Literal
		p.next()
		if !p.check(token.IDENT) {
			p.errorf("expected identifier after %q in tag name, got %s", sep, p.tok.Type)
			return "", false
		}
		name += sep + p.tok.Literal
		p.next()
	}
	return name, true
}

// parseAttribute parses one attribute. The current token is the
// attribute name.
func (p *Parser) parseAttribute() *ast.Attribute {
	attr := &ast.Attribute{Name: p.tok.Literal, NamePos: p.tok.Pos}
	p.next()

	if !p.match(token.ASSIGN) {
		// Boolean shorthand: <Input disabled/>.
		return attr
	}

	switch p.tok.Type {
	case token.STRING:
		attr.Value = &ast.StringLit{Value: p.tok.Literal, ValuePos: p.tok.Pos}
		p.next()
	case token.LBRACE:
		p.next()
		attr.Value = p.parseAssign()
		if attr.Value == nil {
			return nil
		}
		if !p.expect(token.RBRACE) {
			return nil
		}
	default:
		p.errorf("attribute %q value must be a quoted string or {expression}, got %s",
			attr.Name, p.tok.Type)
		return nil
	}
	return attr
}

// closeTag consumes the final '>' of an element, resuming the lexer mode
// of the surrounding context.
func (p *Parser) closeTag(inMarkup bool) {
	if inMarkup {
		p.nextText()
	} else {
		p.next()
	}
}
