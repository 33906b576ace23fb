package compiler

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/leapstack-labs/leapview/pkg/ast"
	"github.com/leapstack-labs/leapview/pkg/scenario"
)

// Attributes whose value always routes to the properties bucket
// regardless of name, matching what rendering clients read them from.
var propertyOverrides = map[string]struct{}{
	"title":       {},
	"text":        {},
	"placeholder": {},
	"label":       {},
}

// Tags whose lone text child is hoisted into properties.text instead of
// becoming a child node.
var textEmittingTags = map[string]struct{}{
	"Text":   {},
	"Button": {},
	"Label":  {},
}

// Tags that render a collection and accept an inline per-item renderer.
var collectionTags = map[string]struct{}{
	"List": {},
	"Grid": {},
}

// itemTemplateKey is the data key the compiled per-item renderer is
// stored under. Clients instantiate it once per collection element at
// render time.
const itemTemplateKey = "itemTemplate"

// transformer converts markup element trees into scenario nodes. One
// transformer serves one compilation unit; it carries the unit's forked
// registry, its store set for resolving store-value references, and the
// scope stack tracking which identifiers are props.
type transformer struct {
	registry *Registry
	stores   StoreSet
	scope    scopeStack
	logger   *slog.Logger
}

func newTransformer(registry *Registry, stores StoreSet, logger *slog.Logger) *transformer {
	return &transformer{registry: registry, stores: stores, logger: logger}
}

// component transforms one component declaration's markup tree with the
// declaration's parameters in scope as props.
func (t *transformer) component(decl componentDecl) (*scenario.Node, error) {
	t.scope.push(decl.params)
	defer t.scope.pop()
	return t.element(decl.root)
}

// element converts a markup element and everything below it, post-order:
// children are fully converted before the parent node is finalized.
func (t *transformer) element(el *ast.Element) (*scenario.Node, error) {
	if !t.registry.IsValid(el.Tag) {
		return nil, t.registry.NotFound(el.Tag)
	}

	node := scenario.NewNode(el.Tag)

	// Implicit layout direction. Set before attribute processing so an
	// explicit style attribute can override it.
	switch el.Tag {
	case "Row":
		node.SetStyle("flexDirection", "row")
	case "Column":
		node.SetStyle("flexDirection", "column")
	}

	for _, attr := range el.Attrs {
		if err := t.applyAttribute(node, el, attr); err != nil {
			return nil, err
		}
	}

	if err := t.applyChildren(node, el); err != nil {
		return nil, err
	}

	node.Prune()
	return node, nil
}

// applyAttribute routes one attribute into the right bucket of node.
func (t *transformer) applyAttribute(node *scenario.Node, el *ast.Element, attr *ast.Attribute) error {
	// Boolean shorthand: <Input disabled>.
	if attr.Value == nil {
		t.route(node, attr.Name, true)
		return nil
	}

	if fn, ok := attr.Value.(*ast.ArrowFn); ok {
		if isCollectionTag(el.Tag) && attr.Name == "renderItem" {
			return t.applyItemTemplate(node, el, fn)
		}
		if isHandlerName(attr.Name) {
			handler, err := serializeHandler(fn)
			if err != nil {
				return err
			}
			node.SetData(attr.Name, handler)
			return nil
		}
		t.logger.Warn("function-valued attribute ignored",
			"tag", el.Tag, "attribute", attr.Name,
			"line", attr.NamePos.Line)
		return nil
	}

	switch attr.Name {
	case "style":
		return t.mergeBucket(node.SetStyle, el, attr)
	case "properties":
		return t.mergeBucket(node.SetProperty, el, attr)
	default:
		t.route(node, attr.Name, t.value(attr.Value))
		return nil
	}
}

// route places a converted value into properties or data depending on
// the attribute's name.
func (t *transformer) route(node *scenario.Node, name string, v any) {
	if _, ok := propertyOverrides[name]; ok {
		node.SetProperty(name, v)
		return
	}
	node.SetData(name, v)
}

// mergeBucket merges an object-literal style= or properties= attribute
// into the corresponding bucket entry by entry.
func (t *transformer) mergeBucket(set func(string, any), el *ast.Element, attr *ast.Attribute) error {
	obj, ok := attr.Value.(*ast.ObjectLit)
	if !ok {
		return scenario.NewConversionError(
			fmt.Sprintf("%s attribute on <%s> must be an object literal", attr.Name, el.Tag),
			map[string]any{"line": attr.NamePos.Line, "column": attr.NamePos.Column})
	}
	for _, field := range obj.Fields {
		set(field.Key, t.value(field.Value))
	}
	return nil
}

// applyItemTemplate compiles an inline collection renderer into a
// reusable template node stored in the data bucket. The renderer's
// parameters become props inside the template; expansion happens on the
// client per collection element, never at compile time.
func (t *transformer) applyItemTemplate(node *scenario.Node, el *ast.Element, fn *ast.ArrowFn) error {
	root := arrowElement(fn)
	if root == nil {
		return scenario.NewConversionError(
			fmt.Sprintf("renderItem on <%s> must return a markup element", el.Tag),
			map[string]any{"line": fn.Pos().Line, "column": fn.Pos().Column})
	}

	t.scope.push(fn.Params)
	template, err := t.element(root)
	t.scope.pop()
	if err != nil {
		return err
	}

	node.SetData(itemTemplateKey, template)
	return nil
}

// applyChildren converts the element's children. A lone non-empty text
// or expression child of a text-emitting tag hoists into
// properties.text; everything else becomes child nodes.
func (t *transformer) applyChildren(node *scenario.Node, el *ast.Element) error {
	if len(el.Children) == 1 && isTextEmittingTag(el.Tag) {
		switch child := el.Children[0].(type) {
		case *ast.Text:
			if child.Value != "" {
				node.SetProperty("text", child.Value)
				return nil
			}
		case *ast.Element:
			// falls through to the general loop
		case ast.Expr:
			node.SetProperty("text", t.value(child))
			return nil
		}
	}

	for _, child := range el.Children {
		switch c := child.(type) {
		case *ast.Element:
			converted, err := t.element(c)
			if err != nil {
				return err
			}
			node.AddChild(converted)

		case *ast.Text:
			if c.Value == "" {
				continue
			}
			text := scenario.NewNode("Text")
			text.SetProperty("text", c.Value)
			node.AddChild(text)

		case ast.Expr:
			return scenario.NewConversionError(
				fmt.Sprintf("expression children are only supported as the sole child of a text tag, not inside <%s>", el.Tag),
				map[string]any{"line": c.Pos().Line, "column": c.Pos().Column})

		default:
			return scenario.NewConversionError(
				fmt.Sprintf("unsupported child %s inside <%s>", child.Kind(), el.Tag),
				map[string]any{"line": child.Pos().Line, "column": child.Pos().Column})
		}
	}
	return nil
}

// value converts an attribute-position expression into a JSON-safe
// value. Conversion is best-effort: expressions outside the table
// produce null with a logged warning rather than aborting the unit,
// matching how much the compiler can know statically.
func (t *transformer) value(expr ast.Expr) any {
	if tv := literalValue(expr); tv != nil {
		return tv.Plain()
	}

	switch node := expr.(type) {
	case *ast.Ident:
		if t.scope.has(node.Name) {
			return propToken(node.Name)
		}
		t.logger.Warn("identifier is not a prop in the current scope, emitting null",
			"name", node.Name, "line", node.Pos().Line)
		return nil

	case *ast.ArrayLit:
		out := make([]any, 0, len(node.Elements))
		for _, el := range node.Elements {
			out = append(out, t.value(el))
		}
		return out

	case *ast.ObjectLit:
		out := make(map[string]any, len(node.Fields))
		for _, field := range node.Fields {
			out[field.Key] = t.value(field.Value)
		}
		return out

	case *ast.CallExpr:
		if token := t.storeToken(node); token != nil {
			return token
		}
		t.logger.Warn("call expression in attribute position is not a store read, emitting null",
			"line", node.Pos().Line)
		return nil

	case *ast.MemberExpr:
		if node.Computed {
			break
		}
		// member access on a prop reads a field of the prop value
		if obj, ok := node.Object.(*ast.Ident); ok && t.scope.has(obj.Name) {
			return propToken(obj.Name + "." + node.Property)
		}
	}

	t.logger.Warn("expression cannot be converted to a static value, emitting null",
		"kind", expr.Kind().String(), "line", expr.Pos().Line)
	return nil
}

// storeToken recognizes store.get("key") against a declared store and
// returns the store-value reference the runtime resolves at render time.
func (t *transformer) storeToken(call *ast.CallExpr) map[string]any {
	member, ok := call.Callee.(*ast.MemberExpr)
	if !ok || member.Computed || member.Property != "get" {
		return nil
	}
	obj, ok := member.Object.(*ast.Ident)
	if !ok {
		return nil
	}
	store, ok := t.stores[obj.Name]
	if !ok {
		return nil
	}
	if len(call.Args) != 1 {
		return nil
	}
	key, ok := call.Args[0].(*ast.StringLit)
	if !ok {
		return nil
	}
	return map[string]any{
		"type":    "store",
		"scope":   string(store.Scope),
		"storage": string(store.Storage),
		"key":     key.Value,
	}
}

// propToken is the runtime reference to a component prop by name.
func propToken(name string) map[string]any {
	return map[string]any{"type": "prop", "key": name}
}

// isHandlerName reports whether an attribute name follows the onEvent
// convention: "on" followed by an uppercase letter.
func isHandlerName(name string) bool {
	return len(name) > 2 && strings.HasPrefix(name, "on") &&
		name[2] >= 'A' && name[2] <= 'Z'
}

func isTextEmittingTag(tag string) bool {
	_, ok := textEmittingTags[tag]
	return ok
}

func isCollectionTag(tag string) bool {
	_, ok := collectionTags[tag]
	return ok
}
