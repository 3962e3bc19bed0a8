package opath

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompressPathRoundTripsLongPath(t *testing.T) {
	t.Parallel()

	path := "$." + strings.Repeat("nested.", 20) + "value"
	cp := compressPath(path)

	assert.NotNil(t, cp.compressed, "a long, repetitive path should compress")
	assert.Equal(t, path, cp.path())
}

func TestCompressPathLeavesShortPathRaw(t *testing.T) {
	t.Parallel()

	path := "$.items[0]"
	cp := compressPath(path)

	assert.Nil(t, cp.compressed)
	assert.Equal(t, path, cp.path())
}
