package eval

import (
	"math"

	"github.com/kodegenix/pqlgo/pkg/expr"
	"github.com/kodegenix/pqlgo/pkg/nodeset"
	"github.com/kodegenix/pqlgo/pkg/tree"
	"github.com/kodegenix/pqlgo/pkg/value"
)

// applyAll selects every child of current. The result is marked multiple
// even when current has zero or one children, since `.*` is a collection
// select by construction.
func (ev *Evaluator) applyAll(env Environment, out *nodeset.Builder) error {
	out.MarkMultiple()

	for _, c := range env.Current.Children() {
		out.Add(c)
	}

	return nil
}

// applyAncestors walks current's parent chain, emitting each ancestor
// whose 1-based level (immediate parent = 1) falls within Range.
func (ev *Evaluator) applyAncestors(n expr.Ancestors, env Environment, out *nodeset.Builder) error {
	minLevel, maxLevel, err := ev.evalLevelRange(n.Range, env)
	if err != nil {
		return err
	}

	out.MarkMultiple()

	level := int64(0)

	for p := env.Current.Parent(); p != nil; p = p.Parent() {
		level++

		if level > maxLevel {
			break
		}

		if level >= minLevel {
			out.Add(p)
		}
	}

	return nil
}

// applyDescendants walks a depth-first descent from current (level 0),
// emitting every node whose level falls within Range.
func (ev *Evaluator) applyDescendants(n expr.Descendants, env Environment, out *nodeset.Builder) error {
	minLevel, maxLevel, err := ev.evalLevelRange(n.Range, env)
	if err != nil {
		return err
	}

	out.MarkMultiple()
	addDescendants(env.Current, 0, minLevel, maxLevel, out)

	return nil
}

func addDescendants(current *tree.Node, level, minLevel, maxLevel int64, out *nodeset.Builder) {
	if level >= minLevel && level <= maxLevel {
		out.Add(current)
	}

	if level >= maxLevel {
		return
	}

	switch current.Kind() {
	case value.Array, value.Object:
		for _, c := range current.Children() {
			addDescendants(c, level+1, minLevel, maxLevel, out)
		}
	}
}

// evalLevelRange resolves a LevelRange's (possibly nil) bounds to
// concrete levels, defaulting to [1, MaxInt64] — ancestors/descendants
// traversals exclude the starting node itself unless a range widens it.
func (ev *Evaluator) evalLevelRange(r expr.LevelRange, env Environment) (int64, int64, error) {
	minLevel, err := ev.evalIntExprOrDefault(r.Min, env, 1)
	if err != nil {
		return 0, 0, err
	}

	maxLevel, err := ev.evalIntExprOrDefault(r.Max, env, math.MaxInt64)
	if err != nil {
		return 0, 0, err
	}

	return minLevel, maxLevel, nil
}

// evalIntExprOrDefault evaluates e (in Expr context) to a single integer,
// returning def when e is nil.
func (ev *Evaluator) evalIntExprOrDefault(e expr.Expr, env Environment, def int64) (int64, error) {
	if e == nil {
		return def, nil
	}

	set, err := ev.Apply(e, env, CtxExpr)
	if err != nil {
		return 0, err
	}

	n, err := ApplyOne(set)
	if err != nil {
		return 0, err
	}

	return n.AsInt(), nil
}

// applyRange evaluates a..b / a:s:b. In a selector context (CtxIndex or
// CtxProperty — the bracket form parser.parseBracketContent always
// wraps in IndexExpr, e.g. `.items[0..2]`) it selects current's children
// at an inclusive, optionally stepped sequence of positional indices:
// start and stop each default to current's bounds (0 and length-1),
// normalize a negative value by counting from the end, and step
// defaults to +1 when start < stop and -1 otherwise (so a bare `:`
// walks every child and `5:2` walks backwards without an explicit
// step). As a bare operand (CtxExpr) it instead emits the sequence's
// own numbers as a value: start and stop default to 0 rather than
// current's bounds, and neither is clamped against current's children.
// Both modes route each computed position through applyInteger, which
// itself dispatches on ctx — the same leaf-emission split every other
// literal in this package uses.
func (ev *Evaluator) applyRange(n expr.Range, env Environment, ctx Context, out *nodeset.Builder) error {
	out.MarkMultiple()

	selecting := ctx == CtxProperty || ctx == CtxIndex

	length := env.Current.Len()
	if selecting && length == 0 {
		return nil
	}

	var defaultStart, defaultStop int64
	if selecting {
		defaultStop = int64(length - 1)
	}

	start, err := ev.evalIntExprOrDefault(n.NumberRange.Start, env, defaultStart)
	if err != nil {
		return err
	}

	stop, err := ev.evalIntExprOrDefault(n.NumberRange.Stop, env, defaultStop)
	if err != nil {
		return err
	}

	if selecting {
		start = normalizeRangeBound(start, length)
		stop = normalizeRangeBound(stop, length)
	}

	defaultStep := int64(1)
	if start >= stop {
		defaultStep = -1
	}

	step, err := ev.evalIntExprOrDefault(n.NumberRange.Step, env, defaultStep)
	if err != nil {
		return err
	}

	if step == 0 {
		return nil
	}

	if step > 0 {
		for i := start; i <= stop; i += step {
			if err := ev.applyInteger(env, ctx, i, out); err != nil {
				return err
			}
		}

		return nil
	}

	for i := start; i >= stop; i += step {
		if err := ev.applyInteger(env, ctx, i, out); err != nil {
			return err
		}
	}

	return nil
}

// normalizeRangeBound counts a negative bound from the end, then clamps
// into [0, length-1].
func normalizeRangeBound(i int64, length int) int64 {
	if i < 0 {
		i += int64(length)
	}

	switch {
	case i < 0:
		return 0
	case i > int64(length-1):
		return int64(length - 1)
	default:
		return i
	}
}
