package ast

import "github.com/leapstack-labs/leapview/pkg/token"

// ---------- Markup Types ----------

// Element represents a markup element: <Tag attr=... >children</Tag>.
// Elements are expressions; they may appear anywhere an expression may.
type Element struct {
	// Tag is the fully qualified tag name as written: "Text",
	// "Chart.Line" or "ns:Badge".
	Tag      string
	Attrs    []*Attribute
	Children []Node // *Element, *Text, or any Expr inside {...}
	TagPos   token.Position
}

func (*Element) exprNode() {}

// Pos implements Node.
func (e *Element) Pos() token.Position { return e.TagPos }

// Kind implements Node.
func (*Element) Kind() Kind { return KindElement }

// Attr returns the attribute with the given name, or nil.
func (e *Element) Attr(name string) *Attribute {
	for _, a := range e.Attrs {
		if a.Name == name {
			return a
		}
	}
	return nil
}

// Attribute represents a single attribute of an element.
//
// Value is nil for boolean shorthand (<Input disabled/>), a *StringLit
// for quoted values, or an arbitrary expression for {expr} values.
type Attribute struct {
	Name    string
	Value   Expr
	NamePos token.Position
}

// Pos implements Node.
func (a *Attribute) Pos() token.Position { return a.NamePos }

// Kind implements Node.
func (*Attribute) Kind() Kind { return KindAttribute }

// Text represents raw text between tags. Value is whitespace-trimmed;
// elements whose text collapses to the empty string are not emitted by
// the parser.
type Text struct {
	Value   string
	TextPos token.Position
}

// Pos implements Node.
func (t *Text) Pos() token.Position { return t.TextPos }

// Kind implements Node.
func (*Text) Kind() Kind { return KindText }
