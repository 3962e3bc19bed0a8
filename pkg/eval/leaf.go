package eval

import (
	"github.com/kodegenix/pqlgo/pkg/nodeset"
	"github.com/kodegenix/pqlgo/pkg/tree"
	"github.com/kodegenix/pqlgo/pkg/value"
)

// applyString emits a string literal: a property/key select against
// Environment.Current in a selector context, or a fresh string leaf
// otherwise.
func (ev *Evaluator) applyString(env Environment, ctx Context, s string, out *nodeset.Builder) error {
	if ctx == CtxProperty || ctx == CtxIndex {
		return ev.getProp(env, s, out)
	}

	out.Add(tree.NewString(s))

	return nil
}

// applyInteger emits an integer literal: a positional child select in a
// selector context, or a fresh integer leaf otherwise.
func (ev *Evaluator) applyInteger(env Environment, ctx Context, i int64, out *nodeset.Builder) error {
	if ctx == CtxProperty || ctx == CtxIndex {
		getChildIndexNode(env.Current, i, out)

		return nil
	}

	out.Add(tree.NewInt(i))

	return nil
}

// applyFloat emits a float literal. In a selector context it truncates to
// an integer index first, matching the original's as-i64 cast.
func (ev *Evaluator) applyFloat(env Environment, ctx Context, f float64, out *nodeset.Builder) error {
	if ctx == CtxProperty || ctx == CtxIndex {
		getChildIndexNode(env.Current, int64(f), out)

		return nil
	}

	out.Add(tree.NewFloat(f))

	return nil
}

// applyBoolean emits a boolean literal. In a selector context true
// includes Current and false is a no-op (the literal filters rather than
// selects); in CtxExpr it is a fresh boolean leaf.
func (ev *Evaluator) applyBoolean(env Environment, ctx Context, b bool, out *nodeset.Builder) error {
	if ctx == CtxProperty || ctx == CtxIndex {
		if b {
			out.Add(env.Current)
		}

		return nil
	}

	out.Add(tree.NewBool(b))

	return nil
}

// applyNull emits a null literal: a no-op selector (null never matches),
// or a fresh null leaf in CtxExpr.
func (ev *Evaluator) applyNull(env Environment, ctx Context, out *nodeset.Builder) error {
	if ctx == CtxProperty || ctx == CtxIndex {
		return nil
	}

	out.Add(tree.NewNull())

	return nil
}

// applyNodeResult re-dispatches a computed intermediate node (the result
// of a sub-evaluation re-applied in an outer context, e.g. inside
// arithmetic, Or's coalesce, or a Sequence stage): scalar kinds fall
// through to their matching leaf emitter; Binary/Array/Object have no
// scalar leaf counterpart, so in a selector context they filter on the
// node's own truthiness and otherwise pass the node through unchanged.
func (ev *Evaluator) applyNodeResult(env Environment, ctx Context, n *tree.Node, out *nodeset.Builder) error {
	switch n.Kind() {
	case value.Null:
		return ev.applyNull(env, ctx, out)
	case value.Bool:
		return ev.applyBoolean(env, ctx, n.AsBool(), out)
	case value.Int:
		return ev.applyInteger(env, ctx, n.AsInt(), out)
	case value.Float:
		return ev.applyFloat(env, ctx, n.AsFloat(), out)
	case value.String:
		return ev.applyString(env, ctx, n.AsString(), out)
	default: // Binary, Array, Object
		if ctx == CtxProperty || ctx == CtxIndex {
			if n.AsBool() {
				out.Add(env.Current)
			}

			return nil
		}

		out.Add(n)

		return nil
	}
}
