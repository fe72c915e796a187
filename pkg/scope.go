package kaleido

import (
	"github.com/llir/llvm/ir/value"
)

// ValueScope maps the active function's parameter names to their lowered
// values. It is rebuilt at every function boundary; names never leak from
// one function into another, and there is no enclosing scope to fall back
// to.
type ValueScope struct {
	vals map[string]value.Value
}

func NewValueScope() *ValueScope {
	return &ValueScope{
		vals: make(map[string]value.Value),
	}
}

// Reset drops every binding, ready for the next function.
func (s *ValueScope) Reset() {
	s.vals = make(map[string]value.Value)
}

// Bind associates a name with a lowered value. Binding a name twice
// silently shadows the earlier value.
func (s *ValueScope) Bind(name string, val value.Value) {
	s.vals[name] = val
}

// Resolve looks a name up in the scope.
func (s *ValueScope) Resolve(name string) (value.Value, bool) {
	val, ok := s.vals[name]
	return val, ok
}
