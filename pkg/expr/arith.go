package expr

// Neg is unary negation.
type Neg struct{ X Expr }

func (Neg) exprNode() {}

func (n Neg) Equal(other Expr) bool { o, ok := other.(Neg); return ok && exprEqual(n.X, o.X) }
func (n Neg) Hash() uint64          { return hashExpr(hashCombine(fnvOffset, tagNeg), n.X) }
func (n Neg) String() string        { return "-(" + n.X.String() + ")" }

func binaryEqual(a, b Expr, otherA, otherB Expr) bool {
	return exprEqual(a, otherA) && exprEqual(b, otherB)
}

func binaryHash(tag uint64, a, b Expr) uint64 {
	h := hashCombine(fnvOffset, tag)
	h = hashExpr(h, a)

	return hashExpr(h, b)
}

func binaryString(a Expr, op string, b Expr) string {
	return "(" + a.String() + " " + op + " " + b.String() + ")"
}

// Add is binary addition (also string/array/object concatenation; see the
// evaluator's coercion matrix).
type Add struct{ X, Y Expr }

func (Add) exprNode() {}

func (a Add) Equal(other Expr) bool {
	o, ok := other.(Add)

	return ok && binaryEqual(a.X, a.Y, o.X, o.Y)
}

func (a Add) Hash() uint64   { return binaryHash(tagAdd, a.X, a.Y) }
func (a Add) String() string { return binaryString(a.X, "+", a.Y) }

// Sub is binary subtraction.
type Sub struct{ X, Y Expr }

func (Sub) exprNode() {}

func (s Sub) Equal(other Expr) bool {
	o, ok := other.(Sub)

	return ok && binaryEqual(s.X, s.Y, o.X, o.Y)
}

func (s Sub) Hash() uint64   { return binaryHash(tagSub, s.X, s.Y) }
func (s Sub) String() string { return binaryString(s.X, "-", s.Y) }

// Mul is binary multiplication.
type Mul struct{ X, Y Expr }

func (Mul) exprNode() {}

func (m Mul) Equal(other Expr) bool {
	o, ok := other.(Mul)

	return ok && binaryEqual(m.X, m.Y, o.X, o.Y)
}

func (m Mul) Hash() uint64   { return binaryHash(tagMul, m.X, m.Y) }
func (m Mul) String() string { return binaryString(m.X, "*", m.Y) }

// Div is binary division (IEEE-754 semantics, including signed zero and
// infinities).
type Div struct{ X, Y Expr }

func (Div) exprNode() {}

func (d Div) Equal(other Expr) bool {
	o, ok := other.(Div)

	return ok && binaryEqual(d.X, d.Y, o.X, o.Y)
}

func (d Div) Hash() uint64   { return binaryHash(tagDiv, d.X, d.Y) }
func (d Div) String() string { return binaryString(d.X, "/", d.Y) }
