// Package scenario defines the portable data model emitted by the
// compiler: the JSON node tree, typed values, store and action
// descriptors, serialized handlers, and the versioned scenario document
// that bundles them, plus the shared error taxonomy.
package scenario

import "fmt"

// SchemaVersion is the fixed version stamped on every scenario document.
// Rendering clients use it to select an interpreter; bump only with a
// coordinated client release.
const SchemaVersion = "1.0.0"

// Node is one element of the renderable JSON tree.
//
// The four optional buckets are nil when empty and must never be emitted
// as empty containers; builders delete a bucket rather than leave an
// empty map or slice behind.
type Node struct {
	Type       string         `json:"type"`
	Style      map[string]any `json:"style,omitempty"`
	Properties map[string]any `json:"properties,omitempty"`
	Data       map[string]any `json:"data,omitempty"`
	Children   []*Node        `json:"children,omitempty"`
}

// NewNode creates a node of the given type with no buckets allocated.
func NewNode(typ string) *Node {
	return &Node{Type: typ}
}

// SetStyle sets a style entry, allocating the bucket on first use.
func (n *Node) SetStyle(key string, v any) {
	if n.Style == nil {
		n.Style = make(map[string]any)
	}
	n.Style[key] = v
}

// SetProperty sets a properties entry, allocating the bucket on first use.
func (n *Node) SetProperty(key string, v any) {
	if n.Properties == nil {
		n.Properties = make(map[string]any)
	}
	n.Properties[key] = v
}

// SetData sets a data entry, allocating the bucket on first use.
func (n *Node) SetData(key string, v any) {
	if n.Data == nil {
		n.Data = make(map[string]any)
	}
	n.Data[key] = v
}

// AddChild appends a child node. Nil children are ignored.
func (n *Node) AddChild(child *Node) {
	if child != nil {
		n.Children = append(n.Children, child)
	}
}

// Prune drops any bucket that ended up empty. Safe to call repeatedly.
func (n *Node) Prune() {
	if len(n.Style) == 0 {
		n.Style = nil
	}
	if len(n.Properties) == 0 {
		n.Properties = nil
	}
	if len(n.Data) == 0 {
		n.Data = nil
	}
	if len(n.Children) == 0 {
		n.Children = nil
	}
}

// Depth returns the number of levels in the tree rooted at n.
// A leaf has depth 1.
func (n *Node) Depth() int {
	max := 0
	for _, c := range n.Children {
		if d := c.Depth(); d > max {
			max = d
		}
	}
	return max + 1
}

// Validate re-checks the node tree's structural invariants recursively:
// a non-empty type on every node and no empty buckets. This duplicates
// what the transformer guarantees on construction; the assembler runs it
// again as an independent check before the document leaves the compiler.
func (n *Node) Validate(path string) []Violation {
	var out []Violation
	if n == nil {
		return []Violation{{Field: path, Message: "node is nil", Severity: SeverityError}}
	}
	if n.Type == "" {
		out = append(out, Violation{Field: path + ".type", Message: "node type is empty", Severity: SeverityError})
	}
	if n.Style != nil && len(n.Style) == 0 {
		out = append(out, Violation{Field: path + ".style", Message: "empty style bucket present", Severity: SeverityError})
	}
	if n.Properties != nil && len(n.Properties) == 0 {
		out = append(out, Violation{Field: path + ".properties", Message: "empty properties bucket present", Severity: SeverityError})
	}
	if n.Data != nil && len(n.Data) == 0 {
		out = append(out, Violation{Field: path + ".data", Message: "empty data bucket present", Severity: SeverityError})
	}
	if n.Children != nil && len(n.Children) == 0 {
		out = append(out, Violation{Field: path + ".children", Message: "empty children array present", Severity: SeverityError})
	}
	for i, c := range n.Children {
		out = append(out, c.Validate(childPath(path, i))...)
	}
	return out
}

func childPath(path string, i int) string {
	return fmt.Sprintf("%s.children[%d]", path, i)
}
