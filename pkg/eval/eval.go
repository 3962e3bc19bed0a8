package eval

import (
	"github.com/kodegenix/pqlgo/pkg/expr"
	"github.com/kodegenix/pqlgo/pkg/nodeset"
	"github.com/kodegenix/pqlgo/pkg/pqlerr"
)

// Evaluator walks an expr.Expr against an Environment. It carries the
// method/function registries consulted by MethodCall/FuncCall; the zero
// value has empty registries and evaluates every call as unknown.
type Evaluator struct {
	Methods Registry
	Funcs   Registry
}

// NewEvaluator returns an Evaluator with the given registries, either of
// which may be nil (equivalent to an empty Registry).
func NewEvaluator(methods, funcs Registry) *Evaluator {
	return &Evaluator{Methods: methods, Funcs: funcs}
}

// Apply evaluates e against env in ctx, returning the resulting node set.
func (ev *Evaluator) Apply(e expr.Expr, env Environment, ctx Context) (nodeset.Set, error) {
	out := nodeset.NewBuilder()

	if err := ev.applyTo(e, env, ctx, out); err != nil {
		return nodeset.Empty(), err
	}

	return out.Finalize(), nil
}

// applyTo is the recursive dispatcher: it type-switches on every closed
// expr.Expr variant and accumulates results into out, mirroring the
// original evaluator's apply_to save that out is an explicit builder
// rather than a threaded mutable reference and failures return an error
// instead of unwinding a panic.
func (ev *Evaluator) applyTo(e expr.Expr, env Environment, ctx Context, out *nodeset.Builder) error {
	switch n := e.(type) {
	case expr.Null:
		return ev.applyNull(env, ctx, out)
	case expr.Bool:
		return ev.applyBoolean(env, ctx, n.Value, out)
	case expr.Int:
		return ev.applyInteger(env, ctx, n.Value, out)
	case expr.Float:
		return ev.applyFloat(env, ctx, n.Value, out)
	case expr.Str:
		return ev.applyString(env, ctx, n.Value, out)

	case expr.RootRef:
		out.Add(env.Root)

		return nil
	case expr.CurrentRef:
		out.Add(env.Current)

		return nil
	case expr.ParentRef:
		if p := env.Current.Parent(); p != nil {
			out.Add(p)
		}

		return nil

	case expr.Path:
		return ev.applyPath(n, env, out)

	case expr.All:
		return ev.applyAll(env, out)
	case expr.Ancestors:
		return ev.applyAncestors(n, env, out)
	case expr.Descendants:
		return ev.applyDescendants(n, env, out)

	case expr.Attribute:
		return ev.applyAttribute(n, env, out)
	case expr.Property:
		return ev.applyProperty(n, env, out)
	case expr.PropertyExpr:
		return ev.applyPropertyExpr(n, env, out)
	case expr.Index:
		return ev.applyIndex(n, env, out)
	case expr.IndexExpr:
		return ev.applyIndexExpr(n, env, out)
	case expr.Range:
		return ev.applyRange(n, env, ctx, out)

	case expr.Group:
		return ev.applyGroup(n, env, ctx, out)
	case expr.Sequence:
		return ev.applySequence(n, env, ctx, out)
	case expr.Concat:
		return ev.applyConcat(n, env, out)

	case expr.Neg:
		return ev.applyNeg(n, env, ctx, out)
	case expr.Add:
		return ev.applyMathBinary(n.X, n.Y, env, ctx, mathAdd, out)
	case expr.Sub:
		return ev.applyMathBinary(n.X, n.Y, env, ctx, mathSub, out)
	case expr.Mul:
		return ev.applyMathBinary(n.X, n.Y, env, ctx, mathMul, out)
	case expr.Div:
		return ev.applyMathBinary(n.X, n.Y, env, ctx, mathDiv, out)

	case expr.Not:
		return ev.applyNot(n, env, ctx, out)
	case expr.And:
		return ev.applyBoolBinary(n.X, n.Y, env, ctx, boolAnd, out)
	case expr.Or:
		return ev.applyOr(n, env, ctx, out)
	case expr.Eq:
		return ev.applyBoolBinary(n.X, n.Y, env, ctx, boolEq, out)
	case expr.Ne:
		return ev.applyBoolBinary(n.X, n.Y, env, ctx, boolNe, out)
	case expr.Lt:
		return ev.applyBoolBinary(n.X, n.Y, env, ctx, boolLt, out)
	case expr.Le:
		return ev.applyBoolBinary(n.X, n.Y, env, ctx, boolLe, out)
	case expr.Gt:
		return ev.applyBoolBinary(n.X, n.Y, env, ctx, boolGt, out)
	case expr.Ge:
		return ev.applyBoolBinary(n.X, n.Y, env, ctx, boolGe, out)
	case expr.StartsWith:
		return ev.applyBoolBinary(n.X, n.Y, env, ctx, boolStartsWith, out)
	case expr.EndsWith:
		return ev.applyBoolBinary(n.X, n.Y, env, ctx, boolEndsWith, out)
	case expr.Contains:
		return ev.applyBoolBinary(n.X, n.Y, env, ctx, boolContains, out)

	case expr.MethodCall:
		res, err := ev.applyMethodCall(n, env, ctx)
		if err != nil {
			return err
		}

		out.AddSet(res)

		return nil
	case expr.FuncCall:
		res, err := ev.applyFuncCall(n, env, ctx)
		if err != nil {
			return err
		}

		out.AddSet(res)

		return nil

	case expr.Var:
		return ev.applyVar(n.ID, env, ctx, out)
	case expr.VarExpr:
		return ev.applyVarExpr(n, env, ctx, out)
	case expr.Env:
		return ev.applyEnv(n.ID, env, ctx, out)
	case expr.EnvExpr:
		return ev.applyEnvExpr(n, env, ctx, out)

	default:
		return pqlerr.Newf(pqlerr.FuncCallError, "unhandled expression %T", e)
	}
}
