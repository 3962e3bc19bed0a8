package tree

import (
	"strconv"

	"github.com/kodegenix/pqlgo/pkg/pqlerr"
	"github.com/kodegenix/pqlgo/pkg/value"
)

// Children returns the node's children in order: array elements, or object
// values. Returns nil for a scalar node.
func (n *Node) Children() []*Node {
	n.mu.RLock()
	defer n.mu.RUnlock()

	return n.childrenLocked()
}

func (n *Node) childrenLocked() []*Node {
	switch n.val.Kind() {
	case value.Array:
		refs := n.val.Elements()
		out := make([]*Node, len(refs))

		for i, r := range refs {
			out[i] = r.(*Node) //nolint:forcetypeassert // only *Node is ever stored
		}

		return out
	case value.Object:
		keys := n.val.Keys()
		out := make([]*Node, len(keys))

		for i, k := range keys {
			r, _ := n.val.Get(k)
			out[i] = r.(*Node) //nolint:forcetypeassert
		}

		return out
	default:
		return nil
	}
}

// Keys returns the object's keys in insertion order, nil for non-objects.
func (n *Node) Keys() []string {
	n.mu.RLock()
	defer n.mu.RUnlock()

	return n.val.Keys()
}

// GetChildIndex returns the child at a positional index: the array element,
// or the object's index-th value in insertion order.
func (n *Node) GetChildIndex(index int) (*Node, bool) {
	n.mu.RLock()
	defer n.mu.RUnlock()

	switch n.val.Kind() {
	case value.Array:
		r, ok := n.val.At(index)
		if !ok {
			return nil, false
		}

		return r.(*Node), true //nolint:forcetypeassert
	case value.Object:
		keys := n.val.Keys()
		if index < 0 {
			index += len(keys)
		}

		if index < 0 || index >= len(keys) {
			return nil, false
		}

		r, _ := n.val.Get(keys[index])

		return r.(*Node), true //nolint:forcetypeassert
	default:
		return nil, false
	}
}

// GetChildKey returns the child under a string key: the object property of
// that name, or (for an array) the element at the key parsed as a decimal
// index.
func (n *Node) GetChildKey(key string) (*Node, bool) {
	n.mu.RLock()
	defer n.mu.RUnlock()

	switch n.val.Kind() {
	case value.Array:
		i, err := strconv.Atoi(key)
		if err != nil {
			return nil, false
		}

		r, ok := n.val.At(i)
		if !ok {
			return nil, false
		}

		return r.(*Node), true //nolint:forcetypeassert
	case value.Object:
		r, ok := n.val.Get(key)
		if !ok {
			return nil, false
		}

		return r.(*Node), true //nolint:forcetypeassert
	default:
		return nil, false
	}
}

// AddChild inserts child into an array (appending, or inserting at index if
// given; key is ignored) or an object (under key; index is ignored, and a
// nil key makes the call a silent no-op). Returns a TreeError of kind
// AddChildInvalidType if n is not an array or object.
func (n *Node) AddChild(index *int, key *string, child *Node) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	switch n.val.Kind() {
	case value.Array:
		if index != nil {
			n.val.InsertElementAt(*index, child)
		} else {
			n.val.AppendElement(child)
		}
	case value.Object:
		if key == nil {
			// Adding a keyless child to an object is a silent no-op,
			// mirroring the original's add_child.
			return nil
		}

		n.val.SetKey(*key, child)
	default:
		return pqlerr.Newf(pqlerr.AddChildInvalidType, "cannot add child to type %q", n.val.Kind())
	}

	child.detach()
	n.updateChildrenMetadataLocked()

	return nil
}

// SetChild replaces the child at index (array) or under key (object),
// inserting if absent, with the same positional semantics as AddChild.
func (n *Node) SetChild(index *int, key *string, child *Node) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	switch n.val.Kind() {
	case value.Array:
		if index != nil {
			if *index < n.val.Len() {
				n.val.RemoveElementAt(*index)
				n.val.InsertElementAt(*index, child)
			} else {
				n.val.AppendElement(child)
			}
		} else {
			n.val.AppendElement(child)
		}
	case value.Object:
		if key == nil {
			return nil
		}

		n.val.SetKey(*key, child)
	default:
		return pqlerr.Newf(pqlerr.SetChildInvalidType, "cannot set child on type %q", n.val.Kind())
	}

	child.detach()
	n.updateChildrenMetadataLocked()

	return nil
}

// RemoveChild removes and returns the child at index (array or object
// positional) or under key (object). Returns (nil, nil) when nothing
// matched the selector.
func (n *Node) RemoveChild(index *int, key *string) (*Node, error) {
	n.mu.Lock()
	defer n.mu.Unlock()

	var removed *Node

	switch n.val.Kind() {
	case value.Array:
		switch {
		case index != nil && *index < n.val.Len():
			removed = n.val.RemoveElementAt(*index).(*Node) //nolint:forcetypeassert
		case index == nil && n.val.Len() > 0:
			removed = n.val.RemoveElementAt(n.val.Len() - 1).(*Node) //nolint:forcetypeassert
		}
	case value.Object:
		switch {
		case key != nil:
			if r, ok := n.val.RemoveKey(*key); ok {
				removed = r.(*Node) //nolint:forcetypeassert
			}
		case index != nil:
			keys := n.val.Keys()
			if *index >= 0 && *index < len(keys) {
				if r, ok := n.val.RemoveKey(keys[*index]); ok {
					removed = r.(*Node) //nolint:forcetypeassert
				}
			}
		}
	default:
		return nil, pqlerr.Newf(pqlerr.RemoveChildInvalidType, "cannot remove child from type %q", n.val.Kind())
	}

	if removed != nil {
		removed.detach()
		n.updateChildrenMetadataLocked()
	}

	return removed, nil
}

// Extend appends (or inserts at index) all of o's children into n. Array
// extends Array, Object extends Object; any other pairing is
// ExtendIncompatibleTypes. Extending a node with itself is a no-op.
func (n *Node) Extend(o *Node, index *int) error {
	if n == o {
		return nil
	}

	n.mu.Lock()
	defer n.mu.Unlock()
	o.mu.Lock()
	defer o.mu.Unlock()

	switch {
	case n.val.Kind() == value.Array && o.val.Kind() == value.Array:
		children := o.childrenLocked()
		if index != nil && *index < n.val.Len() {
			at := *index
			for _, c := range children {
				n.val.InsertElementAt(at, c)
				at++
			}
		} else {
			for _, c := range children {
				n.val.AppendElement(c)
			}
		}

		o.val = value.NewArray()
	case n.val.Kind() == value.Object && o.val.Kind() == value.Object:
		keys := o.val.Keys()
		for _, k := range keys {
			r, _ := o.val.Get(k)
			n.val.SetKey(k, r)
		}

		o.val = value.NewObject()
	default:
		return pqlerr.Newf(pqlerr.ExtendIncompatibleTypes, "cannot extend %q with %q", n.val.Kind(), o.val.Kind())
	}

	n.updateChildrenMetadataLocked()

	return nil
}

// ExtendItem pairs a source node with an optional insertion index for
// ExtendMultiple.
type ExtendItem struct {
	Node  *Node
	Index *int
}

// ExtendMultiple applies Extend for each item in order, stopping at the
// first error.
func (n *Node) ExtendMultiple(extends []ExtendItem) error {
	for _, e := range extends {
		if err := n.Extend(e.Node, e.Index); err != nil {
			return err
		}
	}

	return nil
}

// detach clears a node's parent, index and key, preserving file/span
// provenance, per invariant 5.
func (n *Node) detach() {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.meta.parent = nil
	n.meta.index = 0
	n.meta.key = ""
}

// updateChildrenMetadataLocked re-establishes invariant 1 for n's direct
// children: parent, index and key match each child's current position. n's
// write lock is already held by the caller.
func (n *Node) updateChildrenMetadataLocked() {
	switch n.val.Kind() {
	case value.Array:
		refs := n.val.Elements()
		for i, r := range refs {
			c := r.(*Node) //nolint:forcetypeassert
			c.setPosition(n, i, strconv.Itoa(i))
		}
	case value.Object:
		keys := n.val.Keys()
		for i, k := range keys {
			r, _ := n.val.Get(k)
			c := r.(*Node) //nolint:forcetypeassert
			c.setPosition(n, i, k)
		}
	}
}

func (n *Node) updateChildrenMetadata() {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.updateChildrenMetadataLocked()
}

func (n *Node) setPosition(parent *Node, index int, key string) {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.meta.parent = parent
	n.meta.index = index
	n.meta.key = key
}
