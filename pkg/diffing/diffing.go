// Package diffing computes textual patches between two tree documents,
// rendered as their JSON text (tree.Node.MarshalJSON), so the
// diff(...) built-in exposed through pkg/funcs can report what changed
// between a document's old and new root.
package diffing

import (
	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/kodegenix/pqlgo/pkg/tree"
)

// TreePatch is the diff between two tree roots, computed over their JSON
// text forms. Ops preserves the raw diffmatchpatch operations for callers
// that want a structured view; Text is diffmatchpatch's DiffPrettyText
// rendering, with insertions and deletions marked by ANSI colors.
type TreePatch struct {
	Ops  []diffmatchpatch.Diff
	Text string
}

// Diff computes a TreePatch between old and new. Either side may be nil,
// treated as an empty document.
func Diff(old, next *tree.Node) (*TreePatch, error) {
	oldText, err := renderText(old)
	if err != nil {
		return nil, err
	}

	nextText, err := renderText(next)
	if err != nil {
		return nil, err
	}

	dmp := diffmatchpatch.New()

	diffs := dmp.DiffMain(oldText, nextText, true)
	diffs = dmp.DiffCleanupSemantic(diffs)

	return &TreePatch{
		Ops:  diffs,
		Text: dmp.DiffPrettyText(diffs),
	}, nil
}

func renderText(n *tree.Node) (string, error) {
	if n == nil {
		return "", nil
	}

	b, err := n.MarshalJSON()
	if err != nil {
		return "", err
	}

	return string(b), nil
}

// Changed reports whether p contains any insert or delete operation, a
// coarse "did anything change at all" check used by the diff(...)
// built-in to flag a node as touched.
func (p *TreePatch) Changed() bool {
	for _, d := range p.Ops {
		if d.Type != diffmatchpatch.DiffEqual {
			return true
		}
	}

	return false
}
