package expr

import "math"

// hashCombine folds a new value into a running FNV-1a-style hash, used by
// every variant's Hash() to combine its tag and children.
func hashCombine(h uint64, v uint64) uint64 {
	h ^= v
	h *= 1099511628211

	return h
}

func hashString(h uint64, s string) uint64 {
	for i := 0; i < len(s); i++ {
		h = hashCombine(h, uint64(s[i]))
	}

	return h
}

func hashFloat(h uint64, f float64) uint64 {
	return hashCombine(h, math.Float64bits(f))
}

func hashBool(h uint64, b bool) uint64 {
	if b {
		return hashCombine(h, 1)
	}

	return hashCombine(h, 0)
}

func hashExprs(h uint64, es []Expr) uint64 {
	h = hashCombine(h, uint64(len(es)))
	for _, e := range es {
		h = hashCombine(h, e.Hash())
	}

	return h
}

func hashExpr(h uint64, e Expr) uint64 {
	if e == nil {
		return hashCombine(h, 0)
	}

	return hashCombine(h, e.Hash())
}

func exprsEqual(a, b []Expr) bool {
	if len(a) != len(b) {
		return false
	}

	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}

	return true
}

func exprEqual(a, b Expr) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	return a.Equal(b)
}

const fnvOffset uint64 = 14695981039346656037
