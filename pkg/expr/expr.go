// Package expr defines the PQL expression AST: a typed algebraic
// representation of a parsed query, evaluated by pkg/eval.
package expr

// Expr is any PQL expression node. The marker method is unexported so the
// variant set is closed to this package.
type Expr interface {
	Equal(Expr) bool
	Hash() uint64
	String() string
	exprNode()
}

// LevelRange bounds an Ancestors/Descendants traversal: both ends are
// themselves expressions, evaluated to a single integer at apply time.
// Nil fields take the defaults [1, INT64_MAX].
type LevelRange struct {
	Min Expr
	Max Expr
}

// NumberRange is a Range expression's start/step/stop triple; any field
// may be nil.
type NumberRange struct {
	Start Expr
	Step  Expr
	Stop  Expr
}

// PathSegment is one element of an absolute Path: either an object key or
// an array index.
type PathSegment struct {
	Key     string
	Index   int64
	IsIndex bool
}
