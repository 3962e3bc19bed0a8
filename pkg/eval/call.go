package eval

import (
	"github.com/kodegenix/pqlgo/pkg/expr"
	"github.com/kodegenix/pqlgo/pkg/nodeset"
	"github.com/kodegenix/pqlgo/pkg/pqlerr"
)

// Func is a registered method or function implementation: it receives its
// unevaluated argument expressions (so it can choose its own evaluation
// context per argument, e.g. a predicate argument evaluated lazily per
// element) plus the calling environment and context, and returns a node
// set precisely as any other Apply call would.
type Func func(ev *Evaluator, args []expr.Expr, env Environment, ctx Context) (nodeset.Set, error)

// Registry maps an identifier to its Func implementation.
type Registry map[string]Func

// applyMethodCall dispatches `.id(args)` through ev.Methods. Unknown
// identifiers are a FuncCallError, matching spec.md's note that intrinsics
// are an external collaborator the evaluator only forwards arguments to.
func (ev *Evaluator) applyMethodCall(c expr.MethodCall, env Environment, ctx Context) (nodeset.Set, error) {
	fn, ok := ev.Methods[c.ID]
	if !ok {
		return nodeset.Empty(), pqlerr.Newf(pqlerr.FuncCallError, "unknown method %q", c.ID)
	}

	return fn(ev, c.Args, env, ctx)
}

// applyFuncCall dispatches `id(args)` through ev.Funcs.
func (ev *Evaluator) applyFuncCall(c expr.FuncCall, env Environment, ctx Context) (nodeset.Set, error) {
	fn, ok := ev.Funcs[c.ID]
	if !ok {
		return nodeset.Empty(), pqlerr.Newf(pqlerr.FuncCallError, "unknown function %q", c.ID)
	}

	return fn(ev, c.Args, env, ctx)
}
