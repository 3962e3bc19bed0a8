package funcs

import (
	"github.com/kodegenix/pqlgo/pkg/diffing"
	"github.com/kodegenix/pqlgo/pkg/eval"
	"github.com/kodegenix/pqlgo/pkg/expr"
	"github.com/kodegenix/pqlgo/pkg/nodeset"
	"github.com/kodegenix/pqlgo/pkg/pqlerr"
	"github.com/kodegenix/pqlgo/pkg/tree"
)

// diffFn renders the patch between env.Diff.OldRoot and env.Root as a
// string. With no DiffEnv bound there is nothing to compare against, so
// calling diff() outside a diff-aware evaluation is a FuncCallError
// rather than a silently empty string. The computed patch is cached on
// the shared DiffEnv so repeated diff() calls within one evaluation
// don't re-render and re-diff the whole document each time.
func diffFn(_ *eval.Evaluator, args []expr.Expr, env eval.Environment, _ eval.Context) (nodeset.Set, error) {
	if len(args) != 0 {
		return nodeset.Empty(), pqlerr.Newf(pqlerr.FuncCallError, "diff: expected 0 arguments, got %d", len(args))
	}

	if env.Diff == nil {
		return nodeset.Empty(), pqlerr.New(pqlerr.FuncCallError, "diff: no diff environment bound")
	}

	if env.Diff.Patch == nil {
		patch, err := diffing.Diff(env.Diff.OldRoot, env.Root)
		if err != nil {
			return nodeset.Empty(), pqlerr.Wrap(pqlerr.FuncCallError, "diff: failed to compute patch", err)
		}

		env.Diff.Patch = patch
	}

	return nodeset.One(tree.NewString(env.Diff.Patch.Text)), nil
}
