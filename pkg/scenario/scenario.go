package scenario

import (
	"encoding/json"
	"regexp"
)

// KeyPattern constrains scenario keys: they travel in URLs and file
// names on every client platform.
var KeyPattern = regexp.MustCompile(`^[a-zA-Z0-9_-]{1,100}$`)

// Scenario is the versioned document describing one renderable screen:
// its main node tree, reusable sub-components, and the state stores and
// actions referenced by the tree. It is the sole externally visible
// artifact of a compilation.
//
// Components is always present in JSON, even when empty. Stores and
// Actions are omitted when empty.
type Scenario struct {
	Key        string                       `json:"key"`
	Version    string                       `json:"version"`
	Main       *Node                        `json:"main"`
	Components map[string]*Node             `json:"components"`
	Stores     map[string]*StoreDescriptor  `json:"stores,omitempty"`
	Actions    map[string]*ActionDescriptor `json:"actions,omitempty"`
}

// Marshal renders the document as deterministic JSON (map keys sort).
func (s *Scenario) Marshal() ([]byte, error) {
	return json.Marshal(s)
}

// MarshalIndent renders the document as indented deterministic JSON.
func (s *Scenario) MarshalIndent() ([]byte, error) {
	return json.MarshalIndent(s, "", "  ")
}

// Validate checks the document's structural invariants: a well-formed
// key, the fixed schema version, a present main tree, and recursively
// valid node trees. All violations are reported together.
func (s *Scenario) Validate() *ValidationError {
	var out []Violation

	if !KeyPattern.MatchString(s.Key) {
		out = append(out, Violation{
			Field:    "key",
			Message:  "must match ^[a-zA-Z0-9_-]{1,100}$",
			Severity: SeverityError,
		})
	}
	if s.Version != SchemaVersion {
		out = append(out, Violation{
			Field:    "version",
			Message:  "must be " + SchemaVersion,
			Severity: SeverityError,
		})
	}
	if s.Main == nil {
		out = append(out, Violation{
			Field:    "main",
			Message:  "main component is missing",
			Severity: SeverityError,
		})
	} else {
		out = append(out, s.Main.Validate("main")...)
	}
	if s.Components == nil {
		out = append(out, Violation{
			Field:    "components",
			Message:  "components map must be present (may be empty)",
			Severity: SeverityError,
		})
	}
	for name, node := range s.Components {
		out = append(out, node.Validate("components."+name)...)
	}

	if len(out) == 0 {
		return nil
	}
	return &ValidationError{Violations: out}
}
