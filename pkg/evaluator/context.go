package evaluator

import (
	"sort"

	"github.com/sandrolain/gorational/pkg/rational"
	"github.com/sandrolain/gorational/pkg/taylor"
)

// Scope holds variable bindings. Lookups fall back to the parent scope.
type Scope struct {
	parent   *Scope
	bindings map[string]rational.Number
}

// constants is the root scope shared by every evaluation.
var constants = &Scope{bindings: map[string]rational.Number{
	"pi": taylor.Pi,
	"e":  taylor.E,
}}

// NewScope creates a scope with bindings on top of the built-in constants
// pi and e. The map is copied.
func NewScope(bindings map[string]rational.Number) *Scope {
	return constants.NewChild(bindings)
}

// NewChild creates a scope whose bindings shadow those of s.
func (s *Scope) NewChild(bindings map[string]rational.Number) *Scope {
	c := &Scope{parent: s, bindings: make(map[string]rational.Number, len(bindings))}
	for k, v := range bindings {
		c.bindings[k] = v
	}
	return c
}

// Parent returns the enclosing scope, or nil.
func (s *Scope) Parent() *Scope {
	return s.parent
}

// Set binds name in s.
func (s *Scope) Set(name string, v rational.Number) {
	s.bindings[name] = v
}

// Get resolves name in s or its ancestors.
func (s *Scope) Get(name string) (rational.Number, bool) {
	for c := s; c != nil; c = c.parent {
		if v, ok := c.bindings[name]; ok {
			return v, true
		}
	}
	return rational.Number{}, false
}

// Names returns every name visible from s, sorted.
func (s *Scope) Names() []string {
	seen := make(map[string]bool)
	var out []string
	for c := s; c != nil; c = c.parent {
		for k := range c.bindings {
			if !seen[k] {
				seen[k] = true
				out = append(out, k)
			}
		}
	}
	sort.Strings(out)
	return out
}
