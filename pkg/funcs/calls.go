package funcs

import (
	"math"

	"github.com/kodegenix/pqlgo/pkg/eval"
	"github.com/kodegenix/pqlgo/pkg/expr"
	"github.com/kodegenix/pqlgo/pkg/nodeset"
	"github.com/kodegenix/pqlgo/pkg/pqlerr"
	"github.com/kodegenix/pqlgo/pkg/tree"
	"github.com/kodegenix/pqlgo/pkg/value"
)

// marshalNode renders n to a compact JSON string node, the shared tail
// of the json() function and the .json() method.
func marshalNode(n *tree.Node) (*tree.Node, error) {
	data, err := n.MarshalJSON()
	if err != nil {
		return nil, pqlerr.Wrap(pqlerr.FuncCallError, "json: failed to marshal node", err)
	}

	return tree.NewString(string(data)), nil
}

// argOrCurrent evaluates args[0] to a single node, falling back to
// env.Current when no argument was given, matching the receiver-less
// call form `json()`/`length()`/`type()` seen alongside their
// argument-taking form `json(@.foo)`.
func argOrCurrent(ev *eval.Evaluator, args []expr.Expr, env eval.Environment) (*tree.Node, error) {
	if len(args) == 0 {
		return env.Current, nil
	}

	set, err := ev.Apply(args[0], env, eval.CtxExpr)
	if err != nil {
		return nil, err
	}

	return eval.ApplyOne(set)
}

func jsonCallFn(ev *eval.Evaluator, args []expr.Expr, env eval.Environment, _ eval.Context) (nodeset.Set, error) {
	n, err := argOrCurrent(ev, args, env)
	if err != nil {
		return nodeset.Empty(), err
	}

	out, err := marshalNode(n)
	if err != nil {
		return nodeset.Empty(), err
	}

	return nodeset.One(out), nil
}

func lengthCallFn(ev *eval.Evaluator, args []expr.Expr, env eval.Environment, _ eval.Context) (nodeset.Set, error) {
	n, err := argOrCurrent(ev, args, env)
	if err != nil {
		return nodeset.Empty(), err
	}

	out, err := lenFn(n)
	if err != nil {
		return nodeset.Empty(), err
	}

	return nodeset.One(out), nil
}

func typeCallFn(ev *eval.Evaluator, args []expr.Expr, env eval.Environment, _ eval.Context) (nodeset.Set, error) {
	n, err := argOrCurrent(ev, args, env)
	if err != nil {
		return nodeset.Empty(), err
	}

	return nodeset.One(tree.NewString(n.Kind().String())), nil
}

func absCallFn(ev *eval.Evaluator, args []expr.Expr, env eval.Environment, _ eval.Context) (nodeset.Set, error) {
	if len(args) != 1 {
		return nodeset.Empty(), pqlerr.Newf(pqlerr.FuncCallError, "abs: expected 1 argument, got %d", len(args))
	}

	n, err := argOrCurrent(ev, args, env)
	if err != nil {
		return nodeset.Empty(), err
	}

	switch n.Kind() {
	case value.Int:
		i := n.AsInt()
		if i < 0 {
			i = -i
		}

		return nodeset.One(tree.NewInt(i)), nil
	case value.Float:
		return nodeset.One(tree.NewFloat(math.Abs(n.AsFloat()))), nil
	default:
		return nodeset.Empty(), pqlerr.Newf(pqlerr.FuncCallError, "abs: expected a number, got %s", n.Kind())
	}
}

// mathCallFn adapts a numeric reducer over two or more evaluated
// arguments into a variadic function call, used by min() and max().
func mathCallFn(reduce func(a, b float64) float64) eval.Func {
	return func(ev *eval.Evaluator, args []expr.Expr, env eval.Environment, _ eval.Context) (nodeset.Set, error) {
		if len(args) < 2 {
			return nodeset.Empty(), pqlerr.Newf(pqlerr.FuncCallError, "expected at least 2 arguments, got %d", len(args))
		}

		nodes := make([]*tree.Node, len(args))
		allInt := true

		for i, a := range args {
			set, err := ev.Apply(a, env, eval.CtxExpr)
			if err != nil {
				return nodeset.Empty(), err
			}

			n, err := eval.ApplyOne(set)
			if err != nil {
				return nodeset.Empty(), err
			}

			if n.Kind() != value.Int && n.Kind() != value.Float {
				return nodeset.Empty(), pqlerr.Newf(pqlerr.FuncCallError, "expected a number, got %s", n.Kind())
			}

			allInt = allInt && n.Kind() == value.Int
			nodes[i] = n
		}

		acc := asFloat(nodes[0])
		for _, n := range nodes[1:] {
			acc = reduce(acc, asFloat(n))
		}

		if allInt {
			return nodeset.One(tree.NewInt(int64(acc))), nil
		}

		return nodeset.One(tree.NewFloat(acc)), nil
	}
}

func asFloat(n *tree.Node) float64 {
	if n.Kind() == value.Int {
		return float64(n.AsInt())
	}

	return n.AsFloat()
}

func minFn(a, b float64) float64 {
	if a < b {
		return a
	}

	return b
}

func maxFn(a, b float64) float64 {
	if a > b {
		return a
	}

	return b
}
