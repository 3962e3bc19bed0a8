// Package tree implements PQL's mutable, navigable document tree: a
// (Value, Metadata) pair behind a shared handle with interior mutability.
// Dynamic dispatch over value shapes is avoided in favor of the same
// Kind-tagged switch convention as pkg/value.
package tree

import (
	"strconv"
	"sync"

	"github.com/kodegenix/pqlgo/pkg/fileinfo"
	"github.com/kodegenix/pqlgo/pkg/pqlerr"
	"github.com/kodegenix/pqlgo/pkg/value"
)

// Metadata records a node's position within its owning tree and its
// optional source-file provenance. The parent back-edge is a plain *Node:
// Go's tracing garbage collector reclaims the parent<->child cycle this
// creates, so there is no need for a weak reference here the way a
// reference-counted implementation would require.
type Metadata struct {
	parent *Node
	index  int
	key    string
	file   *fileinfo.Info
	span   *fileinfo.Span
}

// Node is a (Value, Metadata) pair accessed through a shared handle. A
// per-node sync.RWMutex provides the interior mutability with dynamic
// borrow checking spec.md's handle model calls for: traversal takes a read
// lock, mutation takes a write lock. Structuring traversal so read locks
// are released before nested mutation is a caller contract, not something
// this type enforces.
type Node struct {
	mu   sync.RWMutex
	val  *value.Value
	meta Metadata
}

// Value returns the node's underlying value, satisfying value.Ref so a
// *Node can sit directly inside another Value's Array/Object collections
// without pkg/value importing pkg/tree.
func (n *Node) Value() *value.Value {
	n.mu.RLock()
	defer n.mu.RUnlock()

	return n.val
}

// --- construction --------------------------------------------------------

func newLeaf(v *value.Value) *Node { return &Node{val: v} }

// NewNull returns a detached null node.
func NewNull() *Node { return newLeaf(value.NewNull()) }

// NewBool returns a detached boolean node.
func NewBool(b bool) *Node { return newLeaf(value.NewBool(b)) }

// NewInt returns a detached integer node.
func NewInt(i int64) *Node { return newLeaf(value.NewInt(i)) }

// NewFloat returns a detached float node.
func NewFloat(f float64) *Node { return newLeaf(value.NewFloat(f)) }

// NewString returns a detached string node.
func NewString(s string) *Node { return newLeaf(value.NewString(s)) }

// NewBinary returns a detached binary node.
func NewBinary(b []byte) *Node { return newLeaf(value.NewBinary(b)) }

// NewArray returns a detached array node containing elems, which are
// reparented to the new node in order.
func NewArray(elems ...*Node) *Node {
	n := &Node{val: value.NewArray()}
	for _, e := range elems {
		n.val.AppendElement(e)
	}

	n.updateChildrenMetadata()

	return n
}

// NewObject returns a detached, empty object node. Populate it with
// AddChild or SetChild.
func NewObject() *Node {
	return &Node{val: value.NewObject()}
}

// --- value queries ---------------------------------------------------------

// Kind returns the node's value kind.
func (n *Node) Kind() value.Kind {
	n.mu.RLock()
	defer n.mu.RUnlock()

	return n.val.Kind()
}

// AsString coerces the node's value to its string form.
func (n *Node) AsString() string {
	n.mu.RLock()
	defer n.mu.RUnlock()

	return n.val.AsString()
}

// AsInt coerces the node's value to an integer.
func (n *Node) AsInt() int64 {
	n.mu.RLock()
	defer n.mu.RUnlock()

	return n.val.AsInt()
}

// AsFloat coerces the node's value to a float.
func (n *Node) AsFloat() float64 {
	n.mu.RLock()
	defer n.mu.RUnlock()

	return n.val.AsFloat()
}

// AsBool coerces the node's value to a boolean.
func (n *Node) AsBool() bool {
	n.mu.RLock()
	defer n.mu.RUnlock()

	return n.val.AsBool()
}

// Len returns the number of children for an array/object node, 0 otherwise.
func (n *Node) Len() int {
	n.mu.RLock()
	defer n.mu.RUnlock()

	return n.val.Len()
}

// --- metadata --------------------------------------------------------------

// Parent returns the node's parent, or nil at the root.
func (n *Node) Parent() *Node {
	n.mu.RLock()
	defer n.mu.RUnlock()

	return n.meta.parent
}

// Index returns the node's position within its parent.
func (n *Node) Index() int {
	n.mu.RLock()
	defer n.mu.RUnlock()

	return n.meta.index
}

// Key returns the node's key: the object key for an object child, the
// decimal index for an array child, empty for the root.
func (n *Node) Key() string {
	n.mu.RLock()
	defer n.mu.RUnlock()

	return n.meta.key
}

// FileInfo returns the node's source-file provenance, if any.
func (n *Node) FileInfo() *fileinfo.Info {
	n.mu.RLock()
	defer n.mu.RUnlock()

	return n.meta.file
}

// SetFileInfo attaches source-file provenance to the node.
func (n *Node) SetFileInfo(fi *fileinfo.Info) {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.meta.file = fi
}

// Span returns the node's source span, if any.
func (n *Node) Span() *fileinfo.Span {
	n.mu.RLock()
	defer n.mu.RUnlock()

	return n.meta.span
}

// WithSpan attaches a source span to the node and returns it, for chaining
// after construction from a parser.
func (n *Node) WithSpan(span *fileinfo.Span) *Node {
	n.mu.Lock()
	n.meta.span = span
	n.mu.Unlock()

	return n
}

// Root walks the parent chain to the tree's root.
func (n *Node) Root() *Node {
	r := n
	for {
		p := r.Parent()
		if p == nil {
			return r
		}

		r = p
	}
}

// IsAncestor reports whether n is a (possibly indirect) ancestor of other.
func (n *Node) IsAncestor(other *Node) bool {
	if n.Kind() != value.Array && n.Kind() != value.Object {
		return false
	}

	for r := other.Parent(); r != nil; r = r.Parent() {
		if r == n {
			return true
		}
	}

	return false
}

// IsRefEq reports whether n and other are the same handle.
func (n *Node) IsRefEq(other *Node) bool { return n == other }

// IsConsumable reports whether n may be mutated in place: it has no
// parent, matching spec.md's "owner-exclusive, no parent" definition (Go's
// garbage collector makes multi-holder strong-count tracking unnecessary).
func (n *Node) IsConsumable() bool { return n.Parent() == nil }
