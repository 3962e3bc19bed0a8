package eval

import (
	"github.com/kodegenix/pqlgo/pkg/nodeset"
	"github.com/kodegenix/pqlgo/pkg/pqlerr"
	"github.com/kodegenix/pqlgo/pkg/tree"
)

// ApplyOne collapses a node set to the single node a scalar context
// (an index, a level bound, a method argument) requires: Empty resolves
// to a fresh null node rather than an error (an absent value is still a
// value), One resolves to its node, and Many is rejected outright since
// there is no sensible way to pick among several nodes implicitly.
func ApplyOne(s nodeset.Set) (*tree.Node, error) {
	switch {
	case s.IsEmpty():
		return tree.NewNull(), nil
	case s.IsOne():
		n, _ := s.First()

		return n, nil
	default:
		return nil, pqlerr.Newf(pqlerr.SingleNodeExpected, "expected a single node, got %d", s.Len())
	}
}
