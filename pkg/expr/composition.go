package expr

import "strings"

// Group is `(e1, e2, …)`: union of each subexpression's result, marked
// multiple.
type Group struct{ Elems []Expr }

func (Group) exprNode() {}

func (g Group) Equal(other Expr) bool {
	o, ok := other.(Group)

	return ok && exprsEqual(g.Elems, o.Elems)
}

func (g Group) Hash() uint64 { return hashExprs(hashCombine(fnvOffset, tagGroup), g.Elems) }

func (g Group) String() string { return "(" + joinExprs(g.Elems, ", ") + ")" }

// Sequence is a left-to-right pipeline: each stage re-evaluates with
// current rebound to every node buffered by the previous stage.
type Sequence struct{ Stages []Expr }

func (Sequence) exprNode() {}

func (s Sequence) Equal(other Expr) bool {
	o, ok := other.(Sequence)

	return ok && exprsEqual(s.Stages, o.Stages)
}

func (s Sequence) Hash() uint64 { return hashExprs(hashCombine(fnvOffset, tagSequence), s.Stages) }

func (s Sequence) String() string { return joinExprs(s.Stages, ".") }

// Concat evaluates each subexpression and concatenates their string forms.
type Concat struct{ Elems []Expr }

func (Concat) exprNode() {}

func (c Concat) Equal(other Expr) bool {
	o, ok := other.(Concat)

	return ok && exprsEqual(c.Elems, o.Elems)
}

func (c Concat) Hash() uint64 { return hashExprs(hashCombine(fnvOffset, tagConcat), c.Elems) }

func (c Concat) String() string { return joinExprs(c.Elems, " ") }

func joinExprs(es []Expr, sep string) string {
	parts := make([]string, len(es))
	for i, e := range es {
		parts[i] = e.String()
	}

	return strings.Join(parts, sep)
}
