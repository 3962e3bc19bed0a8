package opath_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kodegenix/pqlgo/pkg/nodeset"
	"github.com/kodegenix/pqlgo/pkg/opath"
	"github.com/kodegenix/pqlgo/pkg/tree"
)

func buildItems(t *testing.T) (*tree.Node, *tree.Node) {
	t.Helper()

	root := tree.NewObject()
	items := tree.NewArray(tree.NewInt(1), tree.NewInt(2))

	require.NoError(t, root.AddChild(nil, strPtr("items"), items))

	return root, items
}

func TestPathSetResolveAndMatches(t *testing.T) {
	root, items := buildItems(t)

	set := opath.NewPathSet()
	set.Resolve(nodeset.Many(items.Children()))

	assert.True(t, set.Matches("$.items[0]"))
	assert.True(t, set.Matches("$.items[1]"))
	assert.False(t, set.Matches("$.items[2]"))
	assert.Equal(t, 2, set.Len())

	_ = root
}

func TestCachedPathSetMatchesUncachedResult(t *testing.T) {
	_, items := buildItems(t)

	cached := opath.NewCachedPathSet(8)
	cached.Resolve(nodeset.Many(items.Children()))

	plain := opath.NewPathSet()
	plain.Resolve(nodeset.Many(items.Children()))

	assert.Equal(t, plain.Len(), cached.Len())
	assert.True(t, cached.Matches("$.items[0]"))

	// Repeated resolution of the same nodes must hit the cache without
	// changing the recorded path set.
	cached.Resolve(nodeset.Many(items.Children()))
	assert.Equal(t, 2, cached.Len())
}

func TestCachedPathSetPathDoesNotInflateLen(t *testing.T) {
	_, items := buildItems(t)
	cached := opath.NewCachedPathSet(8)

	for _, n := range items.Children() {
		assert.NotEmpty(t, cached.Path(n))
	}

	assert.Equal(t, 0, cached.Len())
}

func TestCachedPathSetCacheStatsTracksHitsAndMisses(t *testing.T) {
	_, items := buildItems(t)
	cached := opath.NewCachedPathSet(8)

	first := items.Children()[0]

	cached.Path(first) // miss, populates cache
	cached.Path(first) // hit

	stats := cached.CacheStats()
	assert.Equal(t, int64(1), stats.Misses)
	assert.Equal(t, int64(1), stats.Hits)
	assert.InDelta(t, 0.5, stats.HitRate(), 0.0001)
}
