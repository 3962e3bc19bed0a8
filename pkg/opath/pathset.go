package opath

import (
	"fmt"

	"github.com/kodegenix/pqlgo/pkg/alg/lru"
	"github.com/kodegenix/pqlgo/pkg/nodeset"
	"github.com/kodegenix/pqlgo/pkg/tree"
)

// PathSet is a set of canonical path strings, built from a query's
// matched nodes. Callers evaluate a query with pkg/eval and hand the
// resulting nodeset.Set to Resolve; pkg/opath can't import pkg/eval
// itself, since pkg/eval already imports pkg/opath for the @path
// attribute.
type PathSet struct {
	paths map[string]struct{}
}

// NewPathSet returns an empty PathSet.
func NewPathSet() *PathSet {
	return &PathSet{paths: make(map[string]struct{})}
}

// Insert records n's canonical path.
func (s *PathSet) Insert(n *tree.Node) {
	s.paths[From(n).String()] = struct{}{}
}

// Resolve inserts the canonical path of every node in set.
func (s *PathSet) Resolve(set nodeset.Set) {
	for _, n := range set.Slice() {
		s.Insert(n)
	}
}

// Matches reports whether path was recorded by a prior Insert/Resolve.
func (s *PathSet) Matches(path string) bool {
	_, ok := s.paths[path]

	return ok
}

// Len reports how many distinct paths the set holds.
func (s *PathSet) Len() int { return len(s.paths) }

// CachedPathSet is a PathSet whose Insert is backed by an LRU cache
// mapping node identity to its already-computed canonical path, so
// repeated Resolve calls over overlapping result sets don't re-walk a
// hot node's parent chain every time. Paths long enough to be worth it
// are stored LZ4-compressed (see compress.go).
type CachedPathSet struct {
	set   *PathSet
	cache *lru.Cache[*tree.Node, cachedPath]
}

// NewCachedPathSet returns a CachedPathSet whose path cache holds at
// most maxEntries node→path mappings. A Bloom filter sized for maxEntries
// short-circuits definite misses (a node never resolved before) without
// taking the cache's lock, which matters for the wide, shallow Get
// traffic a large `path --stats` run produces.
func NewCachedPathSet(maxEntries int) *CachedPathSet {
	return &CachedPathSet{
		set: NewPathSet(),
		cache: lru.New(
			lru.WithMaxEntries[*tree.Node, cachedPath](maxEntries),
			lru.WithBloomFilter[*tree.Node, cachedPath](nodeCacheKey, uint(maxEntries)),
		),
	}
}

// nodeCacheKey derives a Bloom filter key from a node's pointer identity,
// matching the identity semantics the cache itself keys on.
func nodeCacheKey(n *tree.Node) []byte {
	return []byte(fmt.Sprintf("%p", n))
}

// Insert records n's canonical path, consulting the LRU cache before
// walking n's parent chain.
func (c *CachedPathSet) Insert(n *tree.Node) {
	c.set.paths[c.Path(n)] = struct{}{}
}

// Path returns n's canonical path, computing and caching it on a miss.
// Unlike Insert, it does not record the path in the recorded set, so
// callers that only want a node's path string (not set membership, e.g.
// rendering a result table) don't inflate Len().
func (c *CachedPathSet) Path(n *tree.Node) string {
	cp, ok := c.cache.Get(n)
	if !ok {
		path := From(n).String()
		cp = compressPath(path)
		c.cache.Put(n, cp)

		return path
	}

	return cp.path()
}

// Resolve inserts the canonical path of every node in set, through the
// cached Insert.
func (c *CachedPathSet) Resolve(set nodeset.Set) {
	for _, n := range set.Slice() {
		c.Insert(n)
	}
}

// Matches reports whether path was recorded by a prior Insert/Resolve.
func (c *CachedPathSet) Matches(path string) bool { return c.set.Matches(path) }

// Len reports how many distinct paths the set holds.
func (c *CachedPathSet) Len() int { return c.set.Len() }

// CacheStats reports the underlying path cache's hit/miss performance.
func (c *CachedPathSet) CacheStats() lru.Stats { return c.cache.Stats() }
