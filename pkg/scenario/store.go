package scenario

import "fmt"

// StoreScope is the visibility of a declared store.
type StoreScope string

// Store scopes.
const (
	ScopeGlobal StoreScope = "global"
	ScopeScreen StoreScope = "screen"
)

// ParseStoreScope maps a Scope enum member name from source to its scope.
func ParseStoreScope(member string) (StoreScope, bool) {
	switch member {
	case "Global":
		return ScopeGlobal, true
	case "Screen":
		return ScopeScreen, true
	}
	return "", false
}

// StoreStorage is the persistence class of a declared store.
type StoreStorage string

// Store storage classes.
const (
	StorageMemory     StoreStorage = "memory"
	StoragePersistent StoreStorage = "persistent"
)

// ParseStoreStorage maps a Storage enum member name from source to its
// storage class.
func ParseStoreStorage(member string) (StoreStorage, bool) {
	switch member {
	case "Memory":
		return StorageMemory, true
	case "Persistent":
		return StoragePersistent, true
	}
	return "", false
}

// StoreDescriptor describes one declared store variable. Immutable after
// creation.
type StoreDescriptor struct {
	Scope        StoreScope   `json:"scope"`
	Storage      StoreStorage `json:"storage"`
	InitialValue *TypedValue  `json:"initialValue,omitempty"`
}

// ActionKind is the kind of a state mutation.
type ActionKind string

// Action kinds.
const (
	ActionSet         ActionKind = "set"
	ActionRemove      ActionKind = "remove"
	ActionMerge       ActionKind = "merge"
	ActionTransaction ActionKind = "transaction"
)

// ParseActionKind maps a store method name to its action kind.
func ParseActionKind(method string) (ActionKind, bool) {
	switch method {
	case "set":
		return ActionSet, true
	case "remove":
		return ActionRemove, true
	case "merge":
		return ActionMerge, true
	case "transaction":
		return ActionTransaction, true
	}
	return "", false
}

// ActionDescriptor is a normalized record of a single state mutation
// extracted statically from source.
type ActionDescriptor struct {
	ID            string              `json:"id"`
	Kind          ActionKind          `json:"kind"`
	Scope         StoreScope          `json:"scope"`
	Storage       StoreStorage        `json:"storage"`
	KeyPath       string              `json:"keyPath,omitempty"`
	Value         *TypedValue         `json:"value,omitempty"`
	NestedActions []*ActionDescriptor `json:"nestedActions,omitempty"`
}

// ActionID derives the deterministic identifier for a mutation. Two
// call-sites mutating the same key with the same verb collapse onto the
// same descriptor.
func ActionID(scope StoreScope, storage StoreStorage, kind ActionKind, keyPath string) string {
	return fmt.Sprintf("%s.%s.%s.%s", scope, storage, kind, keyPath)
}
