package eval

import (
	"os"

	"github.com/kodegenix/pqlgo/pkg/expr"
	"github.com/kodegenix/pqlgo/pkg/nodeset"
)

// applyVar resolves a `$name` scope binding. An unbound name is not an
// error: it simply contributes nothing, per the scope package's
// "referencing an undefined variable is not itself an error" rule.
func (ev *Evaluator) applyVar(id string, env Environment, ctx Context, out *nodeset.Builder) error {
	set, ok := env.Scope.Lookup(id)
	if !ok {
		return nil
	}

	if set.IsMany() {
		out.MarkMultiple()
	}

	for _, n := range set.Slice() {
		if err := ev.applyNodeResult(env, ctx, n, out); err != nil {
			return err
		}
	}

	return nil
}

// applyVarExpr resolves the computed-name form `${expr}`: expr must
// evaluate to a single node whose string form names the binding.
func (ev *Evaluator) applyVarExpr(n expr.VarExpr, env Environment, ctx Context, out *nodeset.Builder) error {
	set, err := ev.Apply(n.Expr, env, CtxExpr)
	if err != nil {
		return err
	}

	name, err := ApplyOne(set)
	if err != nil {
		return err
	}

	return ev.applyVar(name.AsString(), env, ctx, out)
}

// applyEnv resolves a process environment variable by literal name. An
// unset variable yields the empty string.
func (ev *Evaluator) applyEnv(id string, env Environment, ctx Context, out *nodeset.Builder) error {
	v, _ := os.LookupEnv(id)

	return ev.applyString(env, ctx, v, out)
}

// applyEnvExpr resolves the computed-name form `env:(expr)`.
func (ev *Evaluator) applyEnvExpr(n expr.EnvExpr, env Environment, ctx Context, out *nodeset.Builder) error {
	set, err := ev.Apply(n.Expr, env, CtxExpr)
	if err != nil {
		return err
	}

	name, err := ApplyOne(set)
	if err != nil {
		return err
	}

	return ev.applyEnv(name.AsString(), env, ctx, out)
}
