package tree_test

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kodegenix/pqlgo/pkg/tree"
	"github.com/kodegenix/pqlgo/pkg/value"
)

func buildDoc() *tree.Node {
	obj := tree.NewObject()
	key := "a"
	_ = obj.AddChild(nil, &key, tree.NewInt(1))
	key = "b"
	_ = obj.AddChild(nil, &key, tree.NewArray(tree.NewString("x"), tree.NewString("y")))

	return obj
}

// P1: every child's metadata matches its position in the parent.
func TestInvariantChildMetadataMatchesPosition(t *testing.T) {
	doc := buildDoc()

	a, ok := doc.GetChildKey("a")
	require.True(t, ok)
	assert.Equal(t, doc, a.Parent())
	assert.Equal(t, 0, a.Index())
	assert.Equal(t, "a", a.Key())

	b, ok := doc.GetChildKey("b")
	require.True(t, ok)
	assert.Equal(t, 1, b.Index())
	assert.Equal(t, "b", b.Key())

	arr := b.Children()
	require.Len(t, arr, 2)

	for i, c := range arr {
		assert.Equal(t, b, c.Parent())
		assert.Equal(t, i, c.Index())
		assert.Equal(t, strconv.Itoa(i), c.Key())
	}
}

func TestRemoveChildReestablishesInvariant(t *testing.T) {
	arr := tree.NewArray(tree.NewInt(1), tree.NewInt(2), tree.NewInt(3))

	zero := 0
	removed, err := arr.RemoveChild(&zero, nil)
	require.NoError(t, err)
	require.NotNil(t, removed)
	assert.Equal(t, int64(1), removed.AsInt())

	children := arr.Children()
	require.Len(t, children, 2)
	assert.Equal(t, int64(2), children[0].AsInt())
	assert.Equal(t, 0, children[0].Index())
	assert.Equal(t, int64(3), children[1].AsInt())
	assert.Equal(t, 1, children[1].Index())

	// invariant 5: a removed node is detached but keeps no dangling parent.
	assert.Nil(t, removed.Parent())
}

func TestAddChildInvalidType(t *testing.T) {
	leaf := tree.NewInt(5)
	err := leaf.AddChild(nil, nil, tree.NewInt(1))
	require.Error(t, err)
}

// P2: deep_copy produces a detached, identity-disjoint subtree that
// serializes identically.
func TestDeepCopy(t *testing.T) {
	doc := buildDoc()
	cp := doc.DeepCopy()

	assert.Nil(t, cp.Parent())
	assert.Equal(t, 0, cp.Index())
	assert.Equal(t, "", cp.Key())

	assert.True(t, doc.IsIdenticalDeep(cp))
	assert.False(t, doc.IsRefEq(cp))

	a, _ := doc.GetChildKey("a")
	aCopy, _ := cp.GetChildKey("a")
	assert.False(t, a.IsRefEq(aCopy))
}

func TestExtendArray(t *testing.T) {
	a := tree.NewArray(tree.NewInt(1), tree.NewInt(2))
	b := tree.NewArray(tree.NewInt(3), tree.NewInt(4))

	require.NoError(t, a.Extend(b, nil))

	children := a.Children()
	require.Len(t, children, 4)
	assert.Equal(t, int64(4), children[3].AsInt())
	assert.Equal(t, 0, b.Len())
}

func TestExtendIncompatibleTypes(t *testing.T) {
	a := tree.NewArray()
	o := tree.NewObject()

	err := a.Extend(o, nil)
	require.Error(t, err)
}

func TestEqualPermissive(t *testing.T) {
	assert.True(t, tree.NewInt(1).Equal(tree.NewFloat(1.0)))
	assert.True(t, tree.NewInt(1).Equal(tree.NewBool(true)))
	assert.False(t, tree.NewNull().Equal(tree.NewInt(0)))

	arrA := tree.NewArray(tree.NewInt(1))
	arrB := tree.NewArray(tree.NewInt(1))
	assert.False(t, arrA.Equal(arrB), "distinct array nodes are never Equal even with identical contents")
	assert.True(t, arrA.Equal(arrA))
}

func TestIsAncestor(t *testing.T) {
	doc := buildDoc()
	b, _ := doc.GetChildKey("b")
	x := b.Children()[0]

	assert.True(t, doc.IsAncestor(x))
	assert.True(t, b.IsAncestor(x))
	assert.False(t, x.IsAncestor(doc))
}

func TestRootWalksToTop(t *testing.T) {
	doc := buildDoc()
	b, _ := doc.GetChildKey("b")
	x := b.Children()[0]

	assert.Equal(t, doc, x.Root())
}

func TestIsConsumable(t *testing.T) {
	doc := buildDoc()
	assert.True(t, doc.IsConsumable())

	a, _ := doc.GetChildKey("a")
	assert.False(t, a.IsConsumable())
}

func TestValueRefInterface(t *testing.T) {
	var ref value.Ref = tree.NewInt(7)
	assert.Equal(t, int64(7), ref.Value().AsInt())
}
