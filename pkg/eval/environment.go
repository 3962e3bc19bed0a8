// Package eval implements the PQL evaluator: the recursive apply_to
// dispatcher that walks an expr.Expr against an Environment, producing a
// nodeset.Set. Ported line-for-line in semantics (context-sensitive leaf
// emission, cross-product arithmetic/logic, Or's coalesce rule, Sequence's
// buffer rebinding) from the original evaluator, Go-ified: explicit error
// returns instead of panics, a nodeset.Builder instead of a mutable out
// parameter threaded by pointer.
package eval

import (
	"github.com/kodegenix/pqlgo/pkg/diffing"
	"github.com/kodegenix/pqlgo/pkg/scope"
	"github.com/kodegenix/pqlgo/pkg/tree"
)

// Context selects how a leaf value is interpreted: as a value in its own
// right, or as a selector against Environment.Current.
type Context byte

// The three evaluation contexts named in spec.md §4.4.
const (
	CtxExpr Context = iota
	CtxProperty
	CtxIndex
)

// DiffEnv carries the old root and computed patch for the diff(...)
// built-in. The evaluator never inspects it directly; it is plumbed
// through so pkg/funcs can consume it.
type DiffEnv struct {
	OldRoot *tree.Node
	Patch   *diffing.TreePatch
}

// Environment is the immutable evaluation context threaded through every
// Apply call. It holds only pointers, so WithXxx copies are cheap.
type Environment struct {
	Root    *tree.Node
	Current *tree.Node
	Scope   *scope.Scope
	Diff    *DiffEnv
}

// New builds a root Environment with current rebound to root and a fresh
// root scope.
func New(root *tree.Node) Environment {
	return Environment{Root: root, Current: root, Scope: scope.New()}
}

// WithCurrent returns a copy of e with Current rebound to n.
func (e Environment) WithCurrent(n *tree.Node) Environment {
	e.Current = n

	return e
}

// WithRoot returns a copy of e with Root rebound to n.
func (e Environment) WithRoot(n *tree.Node) Environment {
	e.Root = n

	return e
}

// WithScope returns a copy of e with Scope rebound to s.
func (e Environment) WithScope(s *scope.Scope) Environment {
	e.Scope = s

	return e
}

// WithDiff returns a copy of e with Diff rebound to d.
func (e Environment) WithDiff(d *DiffEnv) Environment {
	e.Diff = d

	return e
}
