package tree

import (
	"math"

	"github.com/kodegenix/pqlgo/pkg/value"
)

// Equal is permissive structural equality with cross-type coercion for
// scalars. Array and Object nodes are equal only by identity: two distinct
// container nodes are never Equal even with identical contents, matching
// the original's node-level is_equal (as opposed to pkg/value.Value.Equal,
// which does compare containers structurally at the raw-value level).
func (n *Node) Equal(other *Node) bool {
	if n.IsRefEq(other) {
		return true
	}

	ak, bk := n.Kind(), other.Kind()

	switch {
	case ak == value.Null || bk == value.Null:
		return ak == value.Null && bk == value.Null
	case ak == value.Object && bk == value.Object, ak == value.Array && bk == value.Array:
		return false
	case ak == value.String || bk == value.String:
		return n.AsString() == other.AsString()
	case ak == value.Bool || bk == value.Bool:
		return n.AsBool() == other.AsBool()
	case ak == value.Float || bk == value.Float:
		return n.AsFloat() == other.AsFloat()
	case ak == value.Int && bk == value.Int:
		return n.AsInt() == other.AsInt()
	default:
		return false
	}
}

// IsIdentical is strict, tag-identical equality with no cross-type
// coercion: containers compare only by identity, Float compares by bit
// pattern so NaN is identical to itself.
func (n *Node) IsIdentical(other *Node) bool {
	if n.IsRefEq(other) {
		return true
	}

	ak, bk := n.Kind(), other.Kind()
	if ak != bk {
		return false
	}

	switch ak {
	case value.Null:
		return true
	case value.Object, value.Array:
		return false
	case value.String:
		return n.AsString() == other.AsString()
	case value.Bool:
		return n.AsBool() == other.AsBool()
	case value.Float:
		return math.Float64bits(n.AsFloat()) == math.Float64bits(other.AsFloat())
	case value.Int:
		return n.AsInt() == other.AsInt()
	default:
		return false
	}
}

// IsIdenticalDeep is IsIdentical applied recursively through containers:
// two distinct array/object nodes are identical-deep when they have the
// same shape and every element/value pair is identical-deep in turn.
func (n *Node) IsIdenticalDeep(other *Node) bool {
	if n.IsRefEq(other) {
		return true
	}

	ak, bk := n.Kind(), other.Kind()
	if ak != bk {
		return false
	}

	switch ak {
	case value.Array:
		ac, bc := n.Children(), other.Children()
		if len(ac) != len(bc) {
			return false
		}

		for i := range ac {
			if !ac[i].IsIdenticalDeep(bc[i]) {
				return false
			}
		}

		return true
	case value.Object:
		ak, bk := n.Keys(), other.Keys()
		if len(ak) != len(bk) {
			return false
		}

		for i := range ak {
			if ak[i] != bk[i] {
				return false
			}

			av, _ := n.GetChildKey(ak[i])
			bv, _ := other.GetChildKey(bk[i])

			if !av.IsIdenticalDeep(bv) {
				return false
			}
		}

		return true
	default:
		return n.IsIdentical(other)
	}
}

// DeepCopy duplicates the entire subtree rooted at n. The copy's root is
// detached (no parent, index 0, empty key); file and span provenance are
// preserved on every copied node, per invariant 4.
func (n *Node) DeepCopy() *Node {
	cp := n.deepCopyOne()
	cp.meta.parent = nil
	cp.meta.index = 0
	cp.meta.key = ""

	return cp
}

func (n *Node) deepCopyOne() *Node {
	n.mu.RLock()
	kind := n.val.Kind()
	file := n.meta.file
	span := n.meta.span
	n.mu.RUnlock()

	var cp *Node

	switch kind {
	case value.Array:
		children := n.Children()
		copies := make([]*Node, len(children))

		for i, c := range children {
			copies[i] = c.deepCopyOne()
		}

		cp = NewArray(copies...)
	case value.Object:
		cp = NewObject()

		for _, k := range n.Keys() {
			c, _ := n.GetChildKey(k)
			key := k
			_ = cp.AddChild(nil, &key, c.deepCopyOne())
		}
	default:
		n.mu.RLock()
		cp = newLeaf(cloneScalar(n.val))
		n.mu.RUnlock()
	}

	cp.meta.file = file
	cp.meta.span = span

	return cp
}

func cloneScalar(v *value.Value) *value.Value {
	switch v.Kind() {
	case value.Null:
		return value.NewNull()
	case value.Bool:
		return value.NewBool(v.AsBool())
	case value.Int:
		return value.NewInt(v.AsInt())
	case value.Float:
		return value.NewFloat(v.AsFloat())
	case value.String:
		return value.NewString(v.AsString())
	case value.Binary:
		raw := v.RawBinary()
		cp := make([]byte, len(raw))
		copy(cp, raw)

		return value.NewBinary(cp)
	default:
		return value.NewNull()
	}
}
