package funcs

import (
	"strings"
	"unicode/utf8"

	"github.com/kodegenix/pqlgo/pkg/eval"
	"github.com/kodegenix/pqlgo/pkg/expr"
	"github.com/kodegenix/pqlgo/pkg/nodeset"
	"github.com/kodegenix/pqlgo/pkg/pqlerr"
	"github.com/kodegenix/pqlgo/pkg/tree"
	"github.com/kodegenix/pqlgo/pkg/value"
)

// nodeFn computes a single replacement node from a method's receiver.
type nodeFn func(n *tree.Node) (*tree.Node, error)

// method adapts a nodeFn into an eval.Func whose receiver is
// env.Current, matching every method call's `.id(args)` shape: the
// built-ins registered here take no arguments of their own.
func method(f nodeFn) eval.Func {
	return func(_ *eval.Evaluator, _ []expr.Expr, env eval.Environment, _ eval.Context) (nodeset.Set, error) {
		n, err := f(env.Current)
		if err != nil {
			return nodeset.Empty(), err
		}

		return nodeset.One(n), nil
	}
}

// stringMethod adapts a plain string transform into a nodeFn, rejecting
// non-string receivers rather than silently stringifying them.
func stringMethod(f func(string) string) nodeFn {
	return func(n *tree.Node) (*tree.Node, error) {
		if n.Kind() != value.String {
			return nil, pqlerr.Newf(pqlerr.FuncCallError, "expected a string, got %s", n.Kind())
		}

		return tree.NewString(f(n.AsString())), nil
	}
}

func upperFn(s string) string { return strings.ToUpper(s) }
func lowerFn(s string) string { return strings.ToLower(s) }
func trimFn(s string) string  { return strings.TrimSpace(s) }

// lenFn reports a string's rune count or a collection's child count.
func lenFn(n *tree.Node) (*tree.Node, error) {
	switch n.Kind() {
	case value.String:
		return tree.NewInt(int64(utf8.RuneCountInString(n.AsString()))), nil
	case value.Array, value.Object:
		return tree.NewInt(int64(n.Len())), nil
	default:
		return nil, pqlerr.Newf(pqlerr.FuncCallError, "len: unsupported kind %s", n.Kind())
	}
}

func keysFn(n *tree.Node) (*tree.Node, error) {
	if n.Kind() != value.Object {
		return nil, pqlerr.Newf(pqlerr.FuncCallError, "keys: expected an object, got %s", n.Kind())
	}

	keys := n.Keys()
	elems := make([]*tree.Node, len(keys))
	for i, k := range keys {
		elems[i] = tree.NewString(k)
	}

	return tree.NewArray(elems...), nil
}

func valuesFn(n *tree.Node) (*tree.Node, error) {
	if n.Kind() != value.Object {
		return nil, pqlerr.Newf(pqlerr.FuncCallError, "values: expected an object, got %s", n.Kind())
	}

	children := n.Children()
	copies := make([]*tree.Node, len(children))
	for i, c := range children {
		copies[i] = c.DeepCopy()
	}

	return tree.NewArray(copies...), nil
}

func jsonFn(n *tree.Node) (*tree.Node, error) {
	return marshalNode(n)
}
