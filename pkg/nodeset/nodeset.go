// Package nodeset implements the evaluator's three-shape result type:
// Empty, One, or Many nodes, plus a Builder that accumulates results while
// tracking whether the eventual result is inherently multi-valued.
package nodeset

import "github.com/kodegenix/pqlgo/pkg/tree"

type kind uint8

const (
	kindEmpty kind = iota
	kindOne
	kindMany
)

// Set is the evaluator's result type: no node, exactly one node, or
// several.
type Set struct {
	kind kind
	one  *tree.Node
	many []*tree.Node
}

// Empty returns the empty node set.
func Empty() Set { return Set{kind: kindEmpty} }

// One returns a node set containing exactly n.
func One(n *tree.Node) Set { return Set{kind: kindOne, one: n} }

// Many returns a node set containing ns, even if ns has zero or one
// elements — callers that want automatic collapse should use a Builder
// instead.
func Many(ns []*tree.Node) Set { return Set{kind: kindMany, many: ns} }

// IsEmpty reports whether the set has no nodes.
func (s Set) IsEmpty() bool { return s.kind == kindEmpty }

// IsOne reports whether the set holds exactly one node.
func (s Set) IsOne() bool { return s.kind == kindOne }

// IsMany reports whether the set is the Many variant (regardless of its
// length, which may be 0 or 1 when built directly via Many).
func (s Set) IsMany() bool { return s.kind == kindMany }

// Len returns the number of nodes in the set.
func (s Set) Len() int {
	switch s.kind {
	case kindEmpty:
		return 0
	case kindOne:
		return 1
	default:
		return len(s.many)
	}
}

// Slice flattens the set into a node slice, in order.
func (s Set) Slice() []*tree.Node {
	switch s.kind {
	case kindEmpty:
		return nil
	case kindOne:
		return []*tree.Node{s.one}
	default:
		return s.many
	}
}

// First returns the set's first node, if any.
func (s Set) First() (*tree.Node, bool) {
	switch s.kind {
	case kindOne:
		return s.one, true
	case kindMany:
		if len(s.many) > 0 {
			return s.many[0], true
		}

		return nil, false
	default:
		return nil, false
	}
}

// Consumable returns a set in which every aliased node (one with a parent,
// or otherwise not uniquely owned) is replaced with a deep copy, so the
// result may be mutated in place without surprising a shared original.
func (s Set) Consumable() Set {
	switch s.kind {
	case kindEmpty:
		return s
	case kindOne:
		return One(consumable(s.one))
	default:
		out := make([]*tree.Node, len(s.many))
		for i, n := range s.many {
			out[i] = consumable(n)
		}

		return Many(out)
	}
}

func consumable(n *tree.Node) *tree.Node {
	if n.IsConsumable() {
		return n
	}

	return n.DeepCopy()
}

// Builder accumulates evaluation results and tracks whether the eventual
// set must finalize as Many even if it ends up with zero or one elements —
// e.g. the result of `.*` on a single-child array is still "multiple" by
// construction.
type Builder struct {
	nodes    []*tree.Node
	multiple bool
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder { return &Builder{} }

// Add appends a single node.
func (b *Builder) Add(n *tree.Node) { b.nodes = append(b.nodes, n) }

// AddSet appends every node in s, marking the builder multiple if s itself
// is Many.
func (b *Builder) AddSet(s Set) {
	if s.IsMany() {
		b.multiple = true
	}

	b.nodes = append(b.nodes, s.Slice()...)
}

// MarkMultiple forces the builder to finalize as Many regardless of the
// accumulated element count.
func (b *Builder) MarkMultiple() { b.multiple = true }

// Multiple reports whether the builder has been forced, or has already
// accumulated a Many result, to finalize as Many — distinct from Len() == 0,
// which only tells you whether anything has been pushed yet. A single
// plain Add never sets this; only AddSet(Many) and MarkMultiple do.
func (b *Builder) Multiple() bool { return b.multiple }

// Len returns the number of nodes accumulated so far.
func (b *Builder) Len() int { return len(b.nodes) }

// Merge combines another builder's nodes and multiple flag into b.
func (b *Builder) Merge(other *Builder) {
	b.nodes = append(b.nodes, other.nodes...)
	if other.multiple {
		b.multiple = true
	}
}

// Finalize collapses the builder into a Set: zero nodes and not forced
// multiple yields Empty; exactly one node and not forced multiple yields
// One; otherwise Many.
func (b *Builder) Finalize() Set {
	switch {
	case len(b.nodes) == 0 && !b.multiple:
		return Empty()
	case len(b.nodes) == 1 && !b.multiple:
		return One(b.nodes[0])
	default:
		return Many(b.nodes)
	}
}
