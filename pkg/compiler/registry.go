// Package compiler turns parsed .lsx compilation units into scenario
// documents.
//
// The pipeline runs as coordinated passes over one AST: metadata and
// store collection, export collection, markup transformation (with scope
// tracking and handler serialization), action collection, and final
// assembly. Each pass returns an immutable result consumed by the next;
// no state is shared across compilations except the read-only base
// component registry.
package compiler

import "github.com/leapstack-labs/leapview/pkg/scenario"

// Registry is the authoritative set of valid tag names: base components
// from the framework catalogue plus components declared in the current
// unit. Validation always happens on the fully qualified tag string
// ("Chart.Line", "ns:Badge"), never on the pieces.
type Registry struct {
	base  map[string]struct{}
	local map[string]struct{}
}

// NewRegistry creates a registry over the given base catalogue.
func NewRegistry(base []string) *Registry {
	r := &Registry{
		base:  make(map[string]struct{}, len(base)),
		local: make(map[string]struct{}),
	}
	for _, name := range base {
		r.base[name] = struct{}{}
	}
	return r
}

// Fork returns a registry sharing this registry's base set (read-only)
// with a fresh, empty local set. Each compilation unit works against its
// own fork, which is what makes parallel unit compilation safe.
func (r *Registry) Fork() *Registry {
	return &Registry{
		base:  r.base,
		local: make(map[string]struct{}),
	}
}

// RegisterLocal adds a locally declared component name.
func (r *Registry) RegisterLocal(name string) {
	r.local[name] = struct{}{}
}

// IsValid reports whether the tag resolves to a base or local component.
func (r *Registry) IsValid(name string) bool {
	if _, ok := r.base[name]; ok {
		return true
	}
	_, ok := r.local[name]
	return ok
}

// Valid returns every valid name, base and local, unordered.
func (r *Registry) Valid() []string {
	out := make([]string, 0, len(r.base)+len(r.local))
	for name := range r.base {
		out = append(out, name)
	}
	for name := range r.local {
		out = append(out, name)
	}
	return out
}

// NotFound builds the hard error for an unregistered tag. Unknown tags
// abort compilation: downstream renderers have a closed vocabulary, and
// emitting an unknown node type would only defer the failure to the
// client.
func (r *Registry) NotFound(tag string) *scenario.Error {
	return scenario.NewComponentNotFoundError(tag, r.Valid())
}
