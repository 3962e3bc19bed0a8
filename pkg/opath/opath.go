// Package opath renders a tree node's position as the canonical absolute
// path expression that would select it from the document root, the same
// textual form the @path attribute exposes to queries.
package opath

import (
	"github.com/kodegenix/pqlgo/pkg/expr"
	"github.com/kodegenix/pqlgo/pkg/tree"
	"github.com/kodegenix/pqlgo/pkg/value"
)

// Opath is a node's canonical path, expressed as the same Path expression
// the parser produces for an absolute path literal.
type Opath struct {
	Path expr.Path
}

// From walks n's parent chain to build its canonical Opath. The root
// itself has no segments and renders as "$".
func From(n *tree.Node) Opath {
	var segments []expr.PathSegment

	for cur := n; cur != nil; {
		parent := cur.Parent()
		if parent == nil {
			break
		}

		if parent.Kind() == value.Array {
			segments = append(segments, expr.PathSegment{IsIndex: true, Index: int64(cur.Index())})
		} else {
			segments = append(segments, expr.PathSegment{Key: cur.Key()})
		}

		cur = parent
	}

	for i, j := 0, len(segments)-1; i < j; i, j = i+1, j-1 {
		segments[i], segments[j] = segments[j], segments[i]
	}

	return Opath{Path: expr.Path{Segments: segments}}
}

// String renders the canonical `$.foo[0]` textual form.
func (o Opath) String() string { return o.Path.String() }

// ParentPath computes the canonical path of e's parent. Only a
// root-anchored chain of one or more literal Property/Index segments has
// a well-defined parent path: a current-anchored expression (`@...`), a
// bare `$`, or anything with a computed (non-literal) segment before the
// last one reports false, since dropping the trailing segment of something
// that isn't a flat literal chain isn't meaningful the way it is for
// `$.foo.bar`. The last segment is dropped without being inspected, so it
// may be computed.
func ParentPath(e expr.Expr) (Opath, bool) {
	seq, ok := e.(expr.Sequence)
	if !ok || len(seq.Stages) < 2 {
		return Opath{}, false
	}

	if _, ok := seq.Stages[0].(expr.RootRef); !ok {
		return Opath{}, false
	}

	segments := make([]expr.PathSegment, 0, len(seq.Stages)-2)

	for _, stage := range seq.Stages[1 : len(seq.Stages)-1] {
		seg, err := segmentFromExpr(stage)
		if err != nil {
			return Opath{}, false
		}

		segments = append(segments, seg)
	}

	return Opath{Path: expr.Path{Segments: segments}}, true
}
