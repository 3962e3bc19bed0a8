package expr

// Not negates its operand: in selector context it filters current's
// children, in value context it negates a boolean.
type Not struct{ X Expr }

func (Not) exprNode() {}

func (n Not) Equal(other Expr) bool { o, ok := other.(Not); return ok && exprEqual(n.X, o.X) }
func (n Not) Hash() uint64          { return hashExpr(hashCombine(fnvOffset, tagNot), n.X) }
func (n Not) String() string        { return "!(" + n.X.String() + ")" }

// And is the generalized boolean cross product.
type And struct{ X, Y Expr }

func (And) exprNode() {}

func (a And) Equal(other Expr) bool {
	o, ok := other.(And)

	return ok && binaryEqual(a.X, a.Y, o.X, o.Y)
}

func (a And) Hash() uint64   { return binaryHash(tagAnd, a.X, a.Y) }
func (a And) String() string { return binaryString(a.X, "and", a.Y) }

// Or is coalesce-like: yields X's truthy elements, substituting Y's
// elements where X is Empty or falsy.
type Or struct{ X, Y Expr }

func (Or) exprNode() {}

func (o Or) Equal(other Expr) bool {
	ot, ok := other.(Or)

	return ok && binaryEqual(o.X, o.Y, ot.X, ot.Y)
}

func (o Or) Hash() uint64   { return binaryHash(tagOr, o.X, o.Y) }
func (o Or) String() string { return binaryString(o.X, "or", o.Y) }

// Eq is equality comparison (node-level is_equal semantics).
type Eq struct{ X, Y Expr }

func (Eq) exprNode() {}

func (e Eq) Equal(other Expr) bool {
	o, ok := other.(Eq)

	return ok && binaryEqual(e.X, e.Y, o.X, o.Y)
}

func (e Eq) Hash() uint64   { return binaryHash(tagEq, e.X, e.Y) }
func (e Eq) String() string { return binaryString(e.X, "==", e.Y) }

// Ne is inequality comparison.
type Ne struct{ X, Y Expr }

func (Ne) exprNode() {}

func (n Ne) Equal(other Expr) bool {
	o, ok := other.(Ne)

	return ok && binaryEqual(n.X, n.Y, o.X, o.Y)
}

func (n Ne) Hash() uint64   { return binaryHash(tagNe, n.X, n.Y) }
func (n Ne) String() string { return binaryString(n.X, "!=", n.Y) }

// Lt is less-than comparison.
type Lt struct{ X, Y Expr }

func (Lt) exprNode() {}

func (l Lt) Equal(other Expr) bool {
	o, ok := other.(Lt)

	return ok && binaryEqual(l.X, l.Y, o.X, o.Y)
}

func (l Lt) Hash() uint64   { return binaryHash(tagLt, l.X, l.Y) }
func (l Lt) String() string { return binaryString(l.X, "<", l.Y) }

// Le is less-than-or-equal comparison.
type Le struct{ X, Y Expr }

func (Le) exprNode() {}

func (l Le) Equal(other Expr) bool {
	o, ok := other.(Le)

	return ok && binaryEqual(l.X, l.Y, o.X, o.Y)
}

func (l Le) Hash() uint64   { return binaryHash(tagLe, l.X, l.Y) }
func (l Le) String() string { return binaryString(l.X, "<=", l.Y) }

// Gt is greater-than comparison.
type Gt struct{ X, Y Expr }

func (Gt) exprNode() {}

func (g Gt) Equal(other Expr) bool {
	o, ok := other.(Gt)

	return ok && binaryEqual(g.X, g.Y, o.X, o.Y)
}

func (g Gt) Hash() uint64   { return binaryHash(tagGt, g.X, g.Y) }
func (g Gt) String() string { return binaryString(g.X, ">", g.Y) }

// Ge is greater-than-or-equal comparison.
type Ge struct{ X, Y Expr }

func (Ge) exprNode() {}

func (g Ge) Equal(other Expr) bool {
	o, ok := other.(Ge)

	return ok && binaryEqual(g.X, g.Y, o.X, o.Y)
}

func (g Ge) Hash() uint64   { return binaryHash(tagGe, g.X, g.Y) }
func (g Ge) String() string { return binaryString(g.X, ">=", g.Y) }

// StartsWith is the `^=` string predicate.
type StartsWith struct{ X, Y Expr }

func (StartsWith) exprNode() {}

func (s StartsWith) Equal(other Expr) bool {
	o, ok := other.(StartsWith)

	return ok && binaryEqual(s.X, s.Y, o.X, o.Y)
}

func (s StartsWith) Hash() uint64   { return binaryHash(tagStartsWith, s.X, s.Y) }
func (s StartsWith) String() string { return binaryString(s.X, "^=", s.Y) }

// EndsWith is the `$=` string predicate.
type EndsWith struct{ X, Y Expr }

func (EndsWith) exprNode() {}

func (e EndsWith) Equal(other Expr) bool {
	o, ok := other.(EndsWith)

	return ok && binaryEqual(e.X, e.Y, o.X, o.Y)
}

func (e EndsWith) Hash() uint64   { return binaryHash(tagEndsWith, e.X, e.Y) }
func (e EndsWith) String() string { return binaryString(e.X, "$=", e.Y) }

// Contains is the `*=` string predicate.
type Contains struct{ X, Y Expr }

func (Contains) exprNode() {}

func (c Contains) Equal(other Expr) bool {
	o, ok := other.(Contains)

	return ok && binaryEqual(c.X, c.Y, o.X, o.Y)
}

func (c Contains) Hash() uint64   { return binaryHash(tagContains, c.X, c.Y) }
func (c Contains) String() string { return binaryString(c.X, "*=", c.Y) }
