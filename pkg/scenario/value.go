package scenario

import (
	"encoding/json"
	"fmt"
)

// ValueKind tags a TypedValue.
type ValueKind string

// TypedValue kinds.
const (
	ValueString  ValueKind = "string"
	ValueInteger ValueKind = "integer"
	ValueNumber  ValueKind = "number"
	ValueBool    ValueKind = "boolean"
	ValueNull    ValueKind = "null"
	ValueArray   ValueKind = "array"
	ValueObject  ValueKind = "object"
)

// TypedValue is the portable serialization of a literal expression found
// in store initializers and action arguments. It is a closed tagged
// union; exactly the field matching Kind is meaningful.
//
// Non-literal expressions have no TypedValue form: the target runtime
// cannot execute host-language code, so collectors substitute Null and
// log a warning when they meet one.
type TypedValue struct {
	Kind   ValueKind
	Str    string
	Int    int64
	Num    float64
	Bool   bool
	Items  []*TypedValue
	Fields map[string]*TypedValue
}

// Convenience constructors.

// StringValue returns a string TypedValue.
func StringValue(s string) *TypedValue { return &TypedValue{Kind: ValueString, Str: s} }

// IntegerValue returns an integer TypedValue.
func IntegerValue(i int64) *TypedValue { return &TypedValue{Kind: ValueInteger, Int: i} }

// NumberValue returns a floating-point TypedValue.
func NumberValue(f float64) *TypedValue { return &TypedValue{Kind: ValueNumber, Num: f} }

// BoolValue returns a boolean TypedValue.
func BoolValue(b bool) *TypedValue { return &TypedValue{Kind: ValueBool, Bool: b} }

// NullValue returns the null TypedValue.
func NullValue() *TypedValue { return &TypedValue{Kind: ValueNull} }

// ArrayValue returns an array TypedValue.
func ArrayValue(items ...*TypedValue) *TypedValue {
	return &TypedValue{Kind: ValueArray, Items: items}
}

// ObjectValue returns an object TypedValue.
func ObjectValue(fields map[string]*TypedValue) *TypedValue {
	return &TypedValue{Kind: ValueObject, Fields: fields}
}

// typedValueJSON is the wire form: {"type": kind, "value": ...}.
type typedValueJSON struct {
	Type  ValueKind `json:"type"`
	Value any       `json:"value"`
}

// MarshalJSON implements json.Marshaler.
func (v *TypedValue) MarshalJSON() ([]byte, error) {
	out := typedValueJSON{Type: v.Kind}
	switch v.Kind {
	case ValueString:
		out.Value = v.Str
	case ValueInteger:
		out.Value = v.Int
	case ValueNumber:
		out.Value = v.Num
	case ValueBool:
		out.Value = v.Bool
	case ValueNull:
		out.Value = nil
	case ValueArray:
		items := v.Items
		if items == nil {
			items = []*TypedValue{}
		}
		out.Value = items
	case ValueObject:
		fields := v.Fields
		if fields == nil {
			fields = map[string]*TypedValue{}
		}
		out.Value = fields
	default:
		return nil, fmt.Errorf("unknown TypedValue kind %q", v.Kind)
	}
	return json.Marshal(out)
}

// Plain converts the typed value into the untyped Go value it denotes,
// suitable for embedding directly into a node bucket.
func (v *TypedValue) Plain() any {
	switch v.Kind {
	case ValueString:
		return v.Str
	case ValueInteger:
		return v.Int
	case ValueNumber:
		return v.Num
	case ValueBool:
		return v.Bool
	case ValueNull:
		return nil
	case ValueArray:
		items := make([]any, len(v.Items))
		for i, it := range v.Items {
			items[i] = it.Plain()
		}
		return items
	case ValueObject:
		fields := make(map[string]any, len(v.Fields))
		for k, f := range v.Fields {
			fields[k] = f.Plain()
		}
		return fields
	}
	return nil
}
