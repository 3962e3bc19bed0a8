package eval

import (
	"strings"

	"github.com/kodegenix/pqlgo/pkg/expr"
	"github.com/kodegenix/pqlgo/pkg/nodeset"
	"github.com/kodegenix/pqlgo/pkg/tree"
)

// applyGroup unions every element's result, marked multiple regardless of
// how many nodes the union ends up with.
func (ev *Evaluator) applyGroup(n expr.Group, env Environment, ctx Context, out *nodeset.Builder) error {
	out.MarkMultiple()

	for _, e := range n.Elems {
		if err := ev.applyTo(e, env, ctx, out); err != nil {
			return err
		}
	}

	return nil
}

// applySequence runs each stage in turn, rebinding current to every node
// the previous stage buffered before evaluating the next; only the final
// stage's result feeds the caller's builder.
//
// Each stage's builder is pre-seeded with the prior stage's multiple-ness
// before any of that stage's per-node evaluations run — mirroring the
// original evaluator's out2.merge_multiple(out1.multiple) — so a stage
// fed by a Many result (e.g. a Var bound to several nodes) already reads
// as "multiple" on the very first node it processes, not only once a
// second node has been pushed. This matters for a stage like a bracketed
// comparison: applyBoolBinary only broadcasts a comparison over current's
// own children when its builder isn't already multiple, and without this
// carry-forward the first of several fanned-out nodes would wrongly get
// that broadcast treatment while the rest would not.
func (ev *Evaluator) applySequence(n expr.Sequence, env Environment, ctx Context, out *nodeset.Builder) error {
	if len(n.Stages) == 0 {
		return nil
	}

	currents := []*tree.Node{env.Current}
	multiple := false

	for i, stage := range n.Stages {
		stageOut := nodeset.NewBuilder()
		if multiple {
			stageOut.MarkMultiple()
		}

		for _, c := range currents {
			if err := ev.applyTo(stage, env.WithCurrent(c), ctx, stageOut); err != nil {
				return err
			}
		}

		set := stageOut.Finalize()

		if i == len(n.Stages)-1 {
			out.AddSet(set)

			return nil
		}

		multiple = set.IsMany()
		currents = set.Slice()
		if len(currents) == 0 {
			return nil
		}
	}

	return nil
}

// applyConcat evaluates each element in Expr context and concatenates
// their string forms into a single string leaf.
func (ev *Evaluator) applyConcat(n expr.Concat, env Environment, out *nodeset.Builder) error {
	var b strings.Builder

	for _, e := range n.Elems {
		set, err := ev.Apply(e, env, CtxExpr)
		if err != nil {
			return err
		}

		for _, node := range set.Slice() {
			b.WriteString(node.AsString())
		}
	}

	out.Add(tree.NewString(b.String()))

	return nil
}
