package value

import (
	"math"
	"strconv"
	"strings"
)

// Add implements Add's left-operand-dispatched coercion table: String and
// Array always concatenate regardless of the right operand; Object
// concatenates against another Object, treats an Array on the right by the
// array's own emptiness (0 if empty, else NaN), and otherwise coerces
// itself to 0 unconditionally (its own content never makes it NaN) before
// adding the right operand's numeric coercion; every other left kind
// (Null, Bool, Int, Float, Binary) concatenates only when the right
// operand is a String/Array/Object, and otherwise adds numerically with
// integer+integer promoting to float on overflow.
func Add(a, b *Value) *Value {
	switch a.kind {
	case String, Array:
		return NewString(a.AsString() + b.AsString())
	case Object:
		switch b.kind {
		case Object:
			return NewString(a.AsString() + b.AsString())
		case Array:
			if b.Len() == 0 {
				return NewFloat(0)
			}

			return NewFloat(math.NaN())
		default:
			bn := coerceNumeric(b)
			if bn.isNaN {
				return NewFloat(math.NaN())
			}

			return NewFloat(0 + bn.asFloat())
		}
	default:
		if isConcatTrigger(b.kind) {
			return NewString(a.AsString() + b.AsString())
		}

		return numericOp(a, b, opAdd)
	}
}

func isConcatTrigger(k Kind) bool {
	switch k {
	case String, Array, Object:
		return true
	default:
		return false
	}
}

// Sub implements numeric-only subtraction; non-numeric operands (a
// non-empty array/object, or a string that parses as neither int nor
// float) produce NaN.
func Sub(a, b *Value) *Value {
	return numericOp(a, b, opSub)
}

// Mul implements numeric-only multiplication with the same coercion rules
// as Sub.
func Mul(a, b *Value) *Value {
	return numericOp(a, b, opMul)
}

// Div implements IEEE-754 division (signed zero, infinities, and NaN
// propagate naturally through float64 division). Division always
// produces a Float, never an Integer.
func Div(a, b *Value) *Value {
	return numericOp(a, b, opDiv)
}

type arithOp byte

const (
	opAdd arithOp = iota
	opSub
	opMul
	opDiv
)

type numeric struct {
	isInt bool
	i     int64
	f     float64
	isNaN bool
}

func coerceNumeric(v *Value) numeric {
	switch v.kind {
	case Null:
		return numeric{isInt: true, i: 0}
	case Bool:
		// Bool always coerces to a float magnitude, never the integer fast
		// path: true/false combined with a genuine Int still promotes the
		// result to Float, unlike Null or an int-parseable String.
		if v.b {
			return numeric{f: 1}
		}

		return numeric{f: 0}
	case Int:
		return numeric{isInt: true, i: v.i}
	case Float:
		return numeric{f: v.f}
	case String:
		trimmed := strings.TrimSpace(v.s)
		if i, err := strconv.ParseInt(trimmed, 10, 64); err == nil {
			return numeric{isInt: true, i: i}
		}

		if f, err := strconv.ParseFloat(trimmed, 64); err == nil {
			return numeric{f: f}
		}

		return numeric{isNaN: true}
	case Array:
		// An empty array coerces to 0, a non-empty one to NaN, on either
		// side and for every operator.
		if v.Len() == 0 {
			return numeric{isInt: true, i: 0}
		}

		return numeric{isNaN: true}
	default:
		// Object (and Binary) coerce to NaN unconditionally, regardless of
		// emptiness. Sub's left-operand Object carves a narrower exception,
		// applied in numericOp before coerceNumeric is consulted.
		return numeric{isNaN: true}
	}
}

func (n numeric) asFloat() float64 {
	if n.isInt {
		return float64(n.i)
	}

	return n.f
}

func numericOp(a, b *Value, op arithOp) *Value {
	// An Object right operand is always NaN-producing in numeric context,
	// independent of emptiness. Add never reaches here with an Object b:
	// every Add branch that sees b.kind == Object takes the string-concat
	// or dedicated Object-as-left path instead.
	if b.kind == Object {
		return NewFloat(math.NaN())
	}

	// Sub's left-operand Object is the one coercion exception that
	// survives to numericOp: empty coerces to 0 (negated), non-empty is
	// NaN. Mul and Div give Object no such exception on either side.
	if op == opSub && a.kind == Object {
		if a.Len() != 0 {
			return NewFloat(math.NaN())
		}

		bn := coerceNumeric(b)
		if bn.isNaN {
			return NewFloat(math.NaN())
		}

		return NewFloat(-bn.asFloat())
	}

	an := coerceNumeric(a)
	bn := coerceNumeric(b)

	if an.isNaN || bn.isNaN {
		return NewFloat(math.NaN())
	}

	if op != opDiv && an.isInt && bn.isInt {
		switch op {
		case opAdd:
			sum := an.i + bn.i
			if addOverflows(an.i, bn.i, sum) {
				return NewFloat(float64(an.i) + float64(bn.i))
			}

			return NewInt(sum)
		case opSub:
			diff := an.i - bn.i
			if subOverflows(an.i, bn.i, diff) {
				return NewFloat(float64(an.i) - float64(bn.i))
			}

			return NewInt(diff)
		case opMul:
			prod := an.i * bn.i
			if mulOverflows(an.i, bn.i, prod) {
				return NewFloat(float64(an.i) * float64(bn.i))
			}

			return NewInt(prod)
		case opDiv:
			// unreachable: guarded by op != opDiv above.
		}
	}

	af, bf := an.asFloat(), bn.asFloat()

	switch op {
	case opAdd:
		return NewFloat(af + bf)
	case opSub:
		return NewFloat(af - bf)
	case opMul:
		return NewFloat(af * bf)
	case opDiv:
		return NewFloat(af / bf)
	default:
		return NewFloat(math.NaN())
	}
}

func addOverflows(a, b, sum int64) bool {
	return ((a ^ sum) & (b ^ sum)) < 0
}

func subOverflows(a, b, diff int64) bool {
	return ((a ^ b) & (a ^ diff)) < 0
}

func mulOverflows(a, b, prod int64) bool {
	if a == 0 || b == 0 {
		return false
	}

	if (a == -1 && b == math.MinInt64) || (b == -1 && a == math.MinInt64) {
		return true
	}

	return prod/b != a
}

// Neg negates a numeric value, following the same coercion as Sub/Mul/Div.
func Neg(a *Value) *Value {
	n := coerceNumeric(a)
	if n.isNaN {
		return NewFloat(math.NaN())
	}

	if n.isInt {
		if n.i == math.MinInt64 {
			return NewFloat(-float64(n.i))
		}

		return NewInt(-n.i)
	}

	return NewFloat(-n.f)
}
