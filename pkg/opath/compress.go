package opath

import "github.com/pierrec/lz4/v4"

// compressThreshold is the shortest encoded path worth spending an LZ4
// round trip on. Most PQL paths ($.items[0].name) are well under this, so
// the common case skips compression entirely and stores the path as-is.
const compressThreshold = 64

// cachedPath is what CachedPathSet's LRU actually stores: a path string,
// LZ4-compressed when it's long enough for compression to pay for itself.
type cachedPath struct {
	raw        string
	compressed []byte
	rawLen     int
}

// compressPath builds a cachedPath for s. Grounded on the teacher's
// uint32-slice compressor (internal/rbtree/lz4.go): the same
// CompressBlock/UncompressBlock pair, generalized here from a fixed-width
// numeric block to an arbitrary byte slice, since a canonical path is text
// rather than a sequence of indices.
func compressPath(s string) cachedPath {
	if len(s) < compressThreshold {
		return cachedPath{raw: s}
	}

	src := []byte(s)
	dst := make([]byte, lz4.CompressBlockBound(len(src)))

	written, err := lz4.CompressBlock(src, dst, nil)
	if err != nil || written == 0 || written >= len(src) {
		return cachedPath{raw: s}
	}

	return cachedPath{compressed: dst[:written], rawLen: len(src)}
}

// path decodes a cachedPath back into its string form.
func (c cachedPath) path() string {
	if c.compressed == nil {
		return c.raw
	}

	dst := make([]byte, c.rawLen)

	if _, err := lz4.UncompressBlock(c.compressed, dst); err != nil {
		return ""
	}

	return string(dst)
}
