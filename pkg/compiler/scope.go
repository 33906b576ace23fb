package compiler

import "github.com/leapstack-labs/leapview/pkg/ast"

// scopeStack tracks which identifiers are component props in the
// lexical scope the transformer is currently inside. One frame is pushed
// per function-like node and popped on exit.
//
// Lookup is deliberately restricted to the top frame: an inner closure
// does not see the props of the component that encloses it unless they
// are re-destructured into its own parameter list. Compilation is
// static, so a prop reference must be resolvable from the frame the
// markup lexically sits in.
type scopeStack struct {
	frames []map[string]struct{}
}

// push enters a function scope, extracting prop names from the formal
// parameters: plain identifiers directly, and each key of a one-level
// object destructuring pattern.
func (s *scopeStack) push(params []ast.Param) {
	frame := make(map[string]struct{})
	for _, p := range params {
		if p.Destructured() {
			for _, prop := range p.Properties {
				frame[prop] = struct{}{}
			}
			continue
		}
		frame[p.Name] = struct{}{}
	}
	s.frames = append(s.frames, frame)
}

// pop exits the current function scope.
func (s *scopeStack) pop() {
	if len(s.frames) == 0 {
		return
	}
	s.frames = s.frames[:len(s.frames)-1]
}

// has reports whether name is a prop in the current (top) frame only.
func (s *scopeStack) has(name string) bool {
	if len(s.frames) == 0 {
		return false
	}
	_, ok := s.frames[len(s.frames)-1][name]
	return ok
}
