package scenario

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestNodePrune(t *testing.T) {
	n := NewNode("Column")
	n.Style = map[string]any{}
	n.Properties = map[string]any{}
	n.Data = map[string]any{}
	n.Children = []*Node{}

	n.Prune()

	if n.Style != nil || n.Properties != nil || n.Data != nil || n.Children != nil {
		t.Errorf("Prune should nil out all empty buckets, got %+v", n)
	}
}

func TestNodeMarshalOmitsEmptyBuckets(t *testing.T) {
	n := NewNode("Text")
	n.SetProperty("text", "Hi")
	n.Prune()

	b, err := json.Marshal(n)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	got := string(b)

	want := `{"type":"Text","properties":{"text":"Hi"}}`
	if got != want {
		t.Errorf("marshal = %s, want %s", got, want)
	}
	for _, banned := range []string{"style", "data", "children"} {
		if strings.Contains(got, banned) {
			t.Errorf("empty bucket %q leaked into output: %s", banned, got)
		}
	}
}

func TestNodeDepth(t *testing.T) {
	leaf := NewNode("Text")
	mid := NewNode("Row")
	mid.AddChild(leaf)
	root := NewNode("Column")
	root.AddChild(mid)
	root.AddChild(NewNode("Divider"))

	if d := root.Depth(); d != 3 {
		t.Errorf("Depth = %d, want 3", d)
	}
	if d := leaf.Depth(); d != 1 {
		t.Errorf("leaf Depth = %d, want 1", d)
	}
}

func TestNodeValidateEmptyType(t *testing.T) {
	n := NewNode("Column")
	n.AddChild(NewNode(""))

	violations := n.Validate("main")
	if len(violations) != 1 {
		t.Fatalf("expected 1 violation, got %d: %v", len(violations), violations)
	}
	if violations[0].Field != "main.children[0].type" {
		t.Errorf("unexpected field %q", violations[0].Field)
	}
}

func TestNodeValidateEmptyBucket(t *testing.T) {
	n := NewNode("Row")
	n.Data = map[string]any{}

	violations := n.Validate("main")
	if len(violations) != 1 {
		t.Fatalf("expected 1 violation, got %d", len(violations))
	}
	if !strings.Contains(violations[0].Message, "empty data bucket") {
		t.Errorf("unexpected message %q", violations[0].Message)
	}
}

func TestTypedValueMarshal(t *testing.T) {
	tests := []struct {
		name string
		v    *TypedValue
		want string
	}{
		{"string", StringValue("hi"), `{"type":"string","value":"hi"}`},
		{"integer", IntegerValue(42), `{"type":"integer","value":42}`},
		{"number", NumberValue(1.5), `{"type":"number","value":1.5}`},
		{"bool", BoolValue(true), `{"type":"boolean","value":true}`},
		{"null", NullValue(), `{"type":"null","value":null}`},
		{
			"array",
			ArrayValue(IntegerValue(1), StringValue("a")),
			`{"type":"array","value":[{"type":"integer","value":1},{"type":"string","value":"a"}]}`,
		},
		{
			"object",
			ObjectValue(map[string]*TypedValue{"n": IntegerValue(0)}),
			`{"type":"object","value":{"n":{"type":"integer","value":0}}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := json.Marshal(tt.v)
			if err != nil {
				t.Fatalf("marshal failed: %v", err)
			}
			if string(b) != tt.want {
				t.Errorf("marshal = %s, want %s", b, tt.want)
			}
		})
	}
}

func TestTypedValuePlain(t *testing.T) {
	v := ObjectValue(map[string]*TypedValue{
		"items": ArrayValue(IntegerValue(1), IntegerValue(2)),
		"name":  StringValue("cart"),
		"open":  BoolValue(false),
		"none":  NullValue(),
	})

	got, ok := v.Plain().(map[string]any)
	if !ok {
		t.Fatalf("Plain() should return a map, got %T", v.Plain())
	}
	if got["name"] != "cart" || got["open"] != false || got["none"] != nil {
		t.Errorf("unexpected Plain() result: %v", got)
	}
	items, ok := got["items"].([]any)
	if !ok || len(items) != 2 {
		t.Errorf("items should be a 2-element slice, got %v", got["items"])
	}
}

func TestActionID(t *testing.T) {
	id := ActionID(ScopeGlobal, StorageMemory, ActionSet, "cart.items")
	if id != "global.memory.set.cart.items" {
		t.Errorf("ActionID = %q", id)
	}

	// Identical call-sites must collapse onto the same id.
	id2 := ActionID(ScopeGlobal, StorageMemory, ActionSet, "cart.items")
	if id != id2 {
		t.Errorf("ActionID not deterministic: %q != %q", id, id2)
	}
}

func TestScenarioValidate(t *testing.T) {
	valid := &Scenario{
		Key:        "demo",
		Version:    SchemaVersion,
		Main:       NewNode("Column"),
		Components: map[string]*Node{},
	}
	if err := valid.Validate(); err != nil {
		t.Errorf("valid scenario should pass, got %v", err)
	}
}

func TestScenarioValidateAggregatesViolations(t *testing.T) {
	s := &Scenario{
		Key:     "not a valid key!",
		Version: "2.0.0",
		Main:    nil,
	}

	err := s.Validate()
	if err == nil {
		t.Fatal("expected validation error")
	}
	// key + version + main + components: all reported in one pass.
	if len(err.Violations) != 4 {
		t.Errorf("expected 4 violations, got %d: %v", len(err.Violations), err.Violations)
	}
	if !err.HasErrors() {
		t.Error("HasErrors should be true")
	}
}

func TestScenarioKeyPattern(t *testing.T) {
	tests := []struct {
		key   string
		valid bool
	}{
		{"demo", true},
		{"my-screen_2", true},
		{"A", true},
		{strings.Repeat("k", 100), true},
		{strings.Repeat("k", 101), false},
		{"", false},
		{"has space", false},
		{"has/slash", false},
	}

	for _, tt := range tests {
		if got := KeyPattern.MatchString(tt.key); got != tt.valid {
			t.Errorf("KeyPattern(%q) = %v, want %v", tt.key, got, tt.valid)
		}
	}
}

func TestScenarioMarshalIncludesEmptyComponents(t *testing.T) {
	s := &Scenario{
		Key:        "demo",
		Version:    SchemaVersion,
		Main:       NewNode("Column"),
		Components: map[string]*Node{},
	}

	b, err := s.Marshal()
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if !strings.Contains(string(b), `"components":{}`) {
		t.Errorf("empty components map must still be emitted: %s", b)
	}
	if strings.Contains(string(b), `"stores"`) || strings.Contains(string(b), `"actions"`) {
		t.Errorf("empty stores/actions must be omitted: %s", b)
	}
}

func TestErrorShape(t *testing.T) {
	err := NewComponentNotFoundError("Bogus", []string{"Text", "Row", "Column"})
	if err.Code != CodeComponentNotFound {
		t.Errorf("code = %q", err.Code)
	}
	if err.Name != "ComponentNotFoundError" {
		t.Errorf("name = %q", err.Name)
	}
	for _, want := range []string{"Bogus", "Column", "Row", "Text"} {
		if !strings.Contains(err.Message, want) {
			t.Errorf("message should mention %q: %s", want, err.Message)
		}
	}
	if err.Meta("tag") != "Bogus" {
		t.Errorf("metadata tag = %v", err.Meta("tag"))
	}
}

func TestValidationErrorAsError(t *testing.T) {
	ve := &ValidationError{Violations: []Violation{
		{Field: "key", Message: "bad", Severity: SeverityError},
		{Field: "x", Message: "meh", Severity: SeverityWarning},
	}}

	base := ve.AsError()
	if base.Code != CodeValidation {
		t.Errorf("code = %q", base.Code)
	}
	if !strings.Contains(base.Message, "2 violation(s)") {
		t.Errorf("message = %q", base.Message)
	}
}
