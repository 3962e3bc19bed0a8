package scope_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kodegenix/pqlgo/pkg/nodeset"
	"github.com/kodegenix/pqlgo/pkg/scope"
	"github.com/kodegenix/pqlgo/pkg/tree"
)

func TestLookupMissingIsNotAnError(t *testing.T) {
	s := scope.New()
	v, ok := s.Lookup("missing")
	assert.False(t, ok)
	assert.True(t, v.IsEmpty())
}

func TestSetThenLookup(t *testing.T) {
	s := scope.New()
	s.Set("x", nodeset.One(tree.NewInt(1)))

	v, ok := s.Lookup("x")
	require.True(t, ok)

	n, _ := v.First()
	assert.Equal(t, int64(1), n.AsInt())
}

func TestChildFallsThroughToParent(t *testing.T) {
	parent := scope.New()
	parent.Set("x", nodeset.One(tree.NewInt(1)))

	child := parent.Child()
	_, ok := child.Lookup("x")
	assert.True(t, ok)
}

func TestChildShadowsParent(t *testing.T) {
	parent := scope.New()
	parent.Set("x", nodeset.One(tree.NewInt(1)))

	child := parent.Child()
	child.Set("x", nodeset.One(tree.NewInt(2)))

	v, _ := child.Lookup("x")
	n, _ := v.First()
	assert.Equal(t, int64(2), n.AsInt())

	pv, _ := parent.Lookup("x")
	pn, _ := pv.First()
	assert.Equal(t, int64(1), pn.AsInt())
}

func TestRemoveUnshadowsParent(t *testing.T) {
	parent := scope.New()
	parent.Set("x", nodeset.One(tree.NewInt(1)))

	child := parent.Child()
	child.Set("x", nodeset.One(tree.NewInt(2)))
	child.Remove("x")

	v, ok := child.Lookup("x")
	require.True(t, ok)
	n, _ := v.First()
	assert.Equal(t, int64(1), n.AsInt())
}

func TestNamesPreservesInsertionOrder(t *testing.T) {
	s := scope.New()
	s.Set("b", nodeset.Empty())
	s.Set("a", nodeset.Empty())
	s.Set("b", nodeset.Empty())

	assert.Equal(t, []string{"b", "a"}, s.Names())
}
