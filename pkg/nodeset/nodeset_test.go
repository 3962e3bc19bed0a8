package nodeset_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kodegenix/pqlgo/pkg/nodeset"
	"github.com/kodegenix/pqlgo/pkg/tree"
)

func TestBuilderFinalizeEmpty(t *testing.T) {
	b := nodeset.NewBuilder()
	assert.True(t, b.Finalize().IsEmpty())
}

func TestBuilderFinalizeOne(t *testing.T) {
	b := nodeset.NewBuilder()
	b.Add(tree.NewInt(1))
	s := b.Finalize()
	assert.True(t, s.IsOne())
	assert.Equal(t, 1, s.Len())
}

func TestBuilderFinalizeManyByCount(t *testing.T) {
	b := nodeset.NewBuilder()
	b.Add(tree.NewInt(1))
	b.Add(tree.NewInt(2))
	assert.True(t, b.Finalize().IsMany())
}

func TestBuilderFinalizeForcedMultiple(t *testing.T) {
	b := nodeset.NewBuilder()
	b.Add(tree.NewInt(1))
	b.MarkMultiple()
	s := b.Finalize()
	assert.True(t, s.IsMany())
	assert.Equal(t, 1, s.Len())
}

func TestBuilderAddSetPropagatesMultiple(t *testing.T) {
	b := nodeset.NewBuilder()
	b.AddSet(nodeset.Many([]*tree.Node{tree.NewInt(1)}))
	assert.True(t, b.Finalize().IsMany())
}

func TestBuilderMerge(t *testing.T) {
	a := nodeset.NewBuilder()
	a.Add(tree.NewInt(1))

	b := nodeset.NewBuilder()
	b.Add(tree.NewInt(2))
	b.MarkMultiple()

	a.Merge(b)
	s := a.Finalize()
	assert.True(t, s.IsMany())
	assert.Equal(t, 2, s.Len())
}

func TestConsumableCopiesAttachedNodes(t *testing.T) {
	doc := tree.NewObject()
	key := "a"
	_ = doc.AddChild(nil, &key, tree.NewInt(1))

	a, _ := doc.GetChildKey("a")
	s := nodeset.One(a)

	cs := s.Consumable()
	cpy, _ := cs.First()
	assert.False(t, a.IsRefEq(cpy))
	assert.True(t, a.IsIdenticalDeep(cpy))
}

func TestConsumableLeavesRootsAlone(t *testing.T) {
	root := tree.NewInt(5)
	s := nodeset.One(root)

	cs := s.Consumable()
	same, _ := cs.First()
	assert.True(t, root.IsRefEq(same))
}

func TestJSONWireFormatEmpty(t *testing.T) {
	s := nodeset.Empty()
	data, err := json.Marshal(s)
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"empty"}`, string(data))

	var out nodeset.Set
	require.NoError(t, json.Unmarshal(data, &out))
	assert.True(t, out.IsEmpty())
}

func TestJSONWireFormatOne(t *testing.T) {
	s := nodeset.One(tree.NewString("test"))
	data, err := json.Marshal(s)
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"one","data":"test"}`, string(data))

	var out nodeset.Set
	require.NoError(t, json.Unmarshal(data, &out))
	require.True(t, out.IsOne())
	n, _ := out.First()
	assert.Equal(t, "test", n.AsString())
}

// Scenario 8: NodeSet::Many(["test", 123]).
func TestJSONWireFormatMany(t *testing.T) {
	s := nodeset.Many([]*tree.Node{tree.NewString("test"), tree.NewInt(123)})
	data, err := json.Marshal(s)
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"many","data":["test",123]}`, string(data))

	var out nodeset.Set
	require.NoError(t, json.Unmarshal(data, &out))
	require.True(t, out.IsMany())
	require.Equal(t, 2, out.Len())

	slice := out.Slice()
	assert.Equal(t, "test", slice[0].AsString())
	assert.Equal(t, int64(123), slice[1].AsInt())
}
