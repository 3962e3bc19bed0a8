// Package scope implements insertion-ordered, lexically chained variable
// bindings visible to an evaluation.
package scope

import "github.com/kodegenix/pqlgo/pkg/nodeset"

// Scope is an insertion-ordered mapping from variable name to node set,
// optionally chained to a parent for lexical lookup. Scopes are cheap to
// chain: a child extends a parent without copying its bindings.
type Scope struct {
	parent *Scope
	vars   map[string]nodeset.Set
	order  []string
}

// New creates a root scope with no parent.
func New() *Scope {
	return &Scope{vars: make(map[string]nodeset.Set)}
}

// Child creates a new scope chained to s, so lookups that miss locally
// fall through to s and its ancestors.
func (s *Scope) Child() *Scope {
	return &Scope{parent: s, vars: make(map[string]nodeset.Set)}
}

// Set binds name to value in this scope, shadowing any parent binding of
// the same name for lookups performed through this scope.
func (s *Scope) Set(name string, value nodeset.Set) {
	if _, exists := s.vars[name]; !exists {
		s.order = append(s.order, name)
	}

	s.vars[name] = value
}

// Remove unbinds name from this scope only; a parent binding of the same
// name, if any, becomes visible again.
func (s *Scope) Remove(name string) {
	if _, exists := s.vars[name]; !exists {
		return
	}

	delete(s.vars, name)

	for i, n := range s.order {
		if n == name {
			s.order = append(s.order[:i], s.order[i+1:]...)

			break
		}
	}
}

// Lookup resolves name against this scope, then its parent chain,
// returning (Empty, false) when the name is bound nowhere. Referencing an
// undefined variable is not itself an error — this mirrors spec.md §4.4's
// "failure modes" note that only a function requiring the value raises
// one.
func (s *Scope) Lookup(name string) (nodeset.Set, bool) {
	for cur := s; cur != nil; cur = cur.parent {
		if v, ok := cur.vars[name]; ok {
			return v, true
		}
	}

	return nodeset.Empty(), false
}

// Names returns the names bound directly in this scope, in insertion
// order (parent bindings are not included).
func (s *Scope) Names() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)

	return out
}

// Parent returns s's parent scope, or nil for a root scope.
func (s *Scope) Parent() *Scope { return s.parent }
