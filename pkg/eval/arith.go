package eval

import (
	"math"
	"strings"

	"github.com/kodegenix/pqlgo/pkg/expr"
	"github.com/kodegenix/pqlgo/pkg/nodeset"
	"github.com/kodegenix/pqlgo/pkg/tree"
	"github.com/kodegenix/pqlgo/pkg/value"
)

var (
	mathAdd = value.Add
	mathSub = value.Sub
	mathMul = value.Mul
	mathDiv = value.Div
)

// valueToNode wraps a computed scalar value.Value in a fresh, detached
// node so it can re-enter the dispatcher through applyNodeResult. Math
// operators only ever produce Int, Float or String; anything else
// degrades to null rather than panic.
func valueToNode(v *value.Value) *tree.Node {
	switch v.Kind() {
	case value.Int:
		return tree.NewInt(v.AsInt())
	case value.Float:
		return tree.NewFloat(v.AsFloat())
	case value.String:
		return tree.NewString(v.AsString())
	default:
		return tree.NewNull()
	}
}

// applyMathBinary evaluates x and y in Expr context, then combines them
// through op following the cross-product shape shared by every
// arithmetic operator: either side Empty yields NaN; One paired with One
// applies directly; One paired with Many broadcasts the One side; Many
// paired with Many zips pairwise, silently dropping any excess on the
// longer side.
func (ev *Evaluator) applyMathBinary(
	x, y expr.Expr, env Environment, ctx Context, op func(a, b *value.Value) *value.Value, out *nodeset.Builder,
) error {
	aSet, err := ev.Apply(x, env, CtxExpr)
	if err != nil {
		return err
	}

	bSet, err := ev.Apply(y, env, CtxExpr)
	if err != nil {
		return err
	}

	if aSet.IsEmpty() || bSet.IsEmpty() {
		return ev.applyFloat(env, ctx, math.NaN(), out)
	}

	switch {
	case !aSet.IsMany() && !bSet.IsMany():
		a, _ := aSet.First()
		b, _ := bSet.First()

		return ev.applyMathPair(env, ctx, a, b, op, out)
	case aSet.IsMany() && !bSet.IsMany():
		b, _ := bSet.First()

		for _, a := range aSet.Slice() {
			if err := ev.applyMathPair(env, ctx, a, b, op, out); err != nil {
				return err
			}
		}

		return nil
	case !aSet.IsMany() && bSet.IsMany():
		a, _ := aSet.First()

		for _, b := range bSet.Slice() {
			if err := ev.applyMathPair(env, ctx, a, b, op, out); err != nil {
				return err
			}
		}

		return nil
	default:
		as, bs := aSet.Slice(), bSet.Slice()

		n := len(as)
		if len(bs) < n {
			n = len(bs)
		}

		for i := 0; i < n; i++ {
			if err := ev.applyMathPair(env, ctx, as[i], bs[i], op, out); err != nil {
				return err
			}
		}

		return nil
	}
}

func (ev *Evaluator) applyMathPair(
	env Environment, ctx Context, a, b *tree.Node, op func(a, b *value.Value) *value.Value, out *nodeset.Builder,
) error {
	return ev.applyNodeResult(env, ctx, valueToNode(op(a.Value(), b.Value())), out)
}

// applyNeg negates every node in X's result set individually, following
// the original's per-node negation rather than routing through Sub.
func (ev *Evaluator) applyNeg(n expr.Neg, env Environment, ctx Context, out *nodeset.Builder) error {
	set, err := ev.Apply(n.X, env, CtxExpr)
	if err != nil {
		return err
	}

	if set.IsMany() {
		out.MarkMultiple()
	}

	for _, node := range set.Slice() {
		if err := ev.applyNodeResult(env, ctx, valueToNode(value.Neg(node.Value())), out); err != nil {
			return err
		}
	}

	return nil
}

// --- boolean cross-product -------------------------------------------------

func boolAnd(a, b *tree.Node) bool        { return a.AsBool() && b.AsBool() }
func boolEq(a, b *tree.Node) bool         { return a.Equal(b) }
func boolNe(a, b *tree.Node) bool         { return !a.Equal(b) }
func boolStartsWith(a, b *tree.Node) bool { return strings.HasPrefix(a.AsString(), b.AsString()) }
func boolEndsWith(a, b *tree.Node) bool   { return strings.HasSuffix(a.AsString(), b.AsString()) }
func boolContains(a, b *tree.Node) bool   { return strings.Contains(a.AsString(), b.AsString()) }

func boolLt(a, b *tree.Node) bool { c, ok := cmpNodes(a, b); return ok && c < 0 }
func boolLe(a, b *tree.Node) bool { c, ok := cmpNodes(a, b); return ok && c <= 0 }
func boolGt(a, b *tree.Node) bool { c, ok := cmpNodes(a, b); return ok && c > 0 }
func boolGe(a, b *tree.Node) bool { c, ok := cmpNodes(a, b); return ok && c >= 0 }

// cmpNodes orders a against b: Float on either side compares as floats
// (NaN makes the pair incomparable), Int-vs-Int compares as ints,
// String-vs-String compares lexicographically, and every other pairing
// falls back to a float comparison.
func cmpNodes(a, b *tree.Node) (int, bool) {
	ak, bk := a.Kind(), b.Kind()

	switch {
	case ak == value.Int && bk == value.Int:
		return compareInt(a.AsInt(), b.AsInt()), true
	case ak == value.String && bk == value.String:
		return compareString(a.AsString(), b.AsString()), true
	default:
		af, bf := a.AsFloat(), b.AsFloat()
		if math.IsNaN(af) || math.IsNaN(bf) {
			return 0, false
		}

		return compareFloat(af, bf), true
	}
}

func compareInt(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func compareString(a, b string) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// applyBoolBinary dispatches And/Eq/Ne/Lt/Le/Gt/Ge/StartsWith/EndsWith/
// Contains. In a selector context whose builder isn't already known to be
// multiple, a collection current broadcasts the comparison over its own
// children — the filter reading of e.g. `.items[@ > 5]` — rather than
// comparing against current itself. The check is on the builder's
// multiple flag rather than its length: a builder pre-seeded as multiple
// (e.g. one stage in a Sequence fed by several fanned-out nodes from the
// previous stage) must skip the broadcast for every node it processes,
// not just every node after the first one that happens to have pushed a
// result.
func (ev *Evaluator) applyBoolBinary(
	x, y expr.Expr, env Environment, ctx Context, op func(a, b *tree.Node) bool, out *nodeset.Builder,
) error {
	if (ctx == CtxProperty || ctx == CtxIndex) && !out.Multiple() {
		switch env.Current.Kind() {
		case value.Array, value.Object:
			for _, c := range env.Current.Children() {
				if err := ev.boolBinaryCore(x, y, env.WithCurrent(c), ctx, op, out); err != nil {
					return err
				}
			}
		}

		return nil
	}

	return ev.boolBinaryCore(x, y, env, ctx, op, out)
}

func (ev *Evaluator) boolBinaryCore(
	x, y expr.Expr, env Environment, ctx Context, op func(a, b *tree.Node) bool, out *nodeset.Builder,
) error {
	aSet, err := ev.Apply(x, env, CtxExpr)
	if err != nil {
		return err
	}

	bSet, err := ev.Apply(y, env, CtxExpr)
	if err != nil {
		return err
	}

	if aSet.IsEmpty() || bSet.IsEmpty() {
		return ev.applyBoolean(env, ctx, false, out)
	}

	switch {
	case !aSet.IsMany() && !bSet.IsMany():
		a, _ := aSet.First()
		b, _ := bSet.First()

		return ev.applyBoolean(env, ctx, op(a, b), out)
	case aSet.IsMany() && !bSet.IsMany():
		b, _ := bSet.First()

		for _, a := range aSet.Slice() {
			if err := ev.applyBoolean(env, ctx, op(a, b), out); err != nil {
				return err
			}
		}

		return nil
	case !aSet.IsMany() && bSet.IsMany():
		a, _ := aSet.First()

		for _, b := range bSet.Slice() {
			if err := ev.applyBoolean(env, ctx, op(a, b), out); err != nil {
				return err
			}
		}

		return nil
	default:
		as, bs := aSet.Slice(), bSet.Slice()

		n := len(as)
		if len(bs) < n {
			n = len(bs)
		}

		for i := 0; i < n; i++ {
			if err := ev.applyBoolean(env, ctx, op(as[i], bs[i]), out); err != nil {
				return err
			}
		}

		return nil
	}
}

// applyNot negates X, with the same selector-context broadcast-over-
// children wrapper as applyBoolBinary, applied unconditionally (Not has
// no "already multiple" fast path to skip it).
func (ev *Evaluator) applyNot(n expr.Not, env Environment, ctx Context, out *nodeset.Builder) error {
	if ctx == CtxProperty || ctx == CtxIndex {
		switch env.Current.Kind() {
		case value.Array, value.Object:
			for _, c := range env.Current.Children() {
				if err := ev.notCore(n.X, env.WithCurrent(c), ctx, out); err != nil {
					return err
				}
			}
		}

		return nil
	}

	return ev.notCore(n.X, env, ctx, out)
}

func (ev *Evaluator) notCore(x expr.Expr, env Environment, ctx Context, out *nodeset.Builder) error {
	aSet, err := ev.Apply(x, env, CtxExpr)
	if err != nil {
		return err
	}

	switch {
	case aSet.IsEmpty():
		return ev.applyBoolean(env, ctx, true, out)
	case aSet.IsOne():
		a, _ := aSet.First()

		return ev.applyBoolean(env, ctx, !a.AsBool(), out)
	default:
		for _, a := range aSet.Slice() {
			if err := ev.applyBoolean(env, ctx, !a.AsBool(), out); err != nil {
				return err
			}
		}

		return nil
	}
}

// applyOr implements Or's coalesce rule: an Empty left side falls
// straight through to the right; a truthy single left value short-
// circuits without ever evaluating the right side; a falsy single left
// value, or each falsy element of a Many left side, is replaced by the
// right side (broadcast if the left side is One, zipped if both are
// Many, passed through unchanged if the right side is Empty).
func (ev *Evaluator) applyOr(n expr.Or, env Environment, ctx Context, out *nodeset.Builder) error {
	aSet, err := ev.Apply(n.X, env, CtxExpr)
	if err != nil {
		return err
	}

	switch {
	case aSet.IsEmpty():
		return ev.emitOrFallback(n.Y, env, ctx, out)
	case aSet.IsOne():
		a, _ := aSet.First()
		if a.AsBool() {
			return ev.applyNodeResult(env, ctx, a, out)
		}

		return ev.emitOrFallback(n.Y, env, ctx, out)
	default:
		return ev.applyOrMany(n.Y, aSet.Slice(), env, ctx, out)
	}
}

func (ev *Evaluator) emitOrFallback(y expr.Expr, env Environment, ctx Context, out *nodeset.Builder) error {
	bSet, err := ev.Apply(y, env, CtxExpr)
	if err != nil {
		return err
	}

	for _, b := range bSet.Slice() {
		if err := ev.applyNodeResult(env, ctx, b, out); err != nil {
			return err
		}
	}

	return nil
}

func (ev *Evaluator) applyOrMany(y expr.Expr, as []*tree.Node, env Environment, ctx Context, out *nodeset.Builder) error {
	bSet, err := ev.Apply(y, env, CtxExpr)
	if err != nil {
		return err
	}

	switch {
	case bSet.IsEmpty():
		for _, a := range as {
			if err := ev.applyNodeResult(env, ctx, a, out); err != nil {
				return err
			}
		}

		return nil
	case bSet.IsOne():
		b, _ := bSet.First()

		for _, a := range as {
			result := a
			if !a.AsBool() {
				result = b
			}

			if err := ev.applyNodeResult(env, ctx, result, out); err != nil {
				return err
			}
		}

		return nil
	default:
		bs := bSet.Slice()

		n := len(as)
		if len(bs) < n {
			n = len(bs)
		}

		for i := 0; i < n; i++ {
			result := as[i]
			if !as[i].AsBool() {
				result = bs[i]
			}

			if err := ev.applyNodeResult(env, ctx, result, out); err != nil {
				return err
			}
		}

		return nil
	}
}
