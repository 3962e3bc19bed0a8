package serde_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kodegenix/pqlgo/pkg/fileinfo"
	"github.com/kodegenix/pqlgo/pkg/serde"
)

func TestFromJSONBuildsTree(t *testing.T) {
	root, err := serde.FromJSON([]byte(`{"a":1,"b":[2,3],"c":"x"}`))
	require.NoError(t, err)

	a, ok := root.GetChildKey("a")
	require.True(t, ok)
	assert.Equal(t, int64(1), a.AsInt())

	b, ok := root.GetChildKey("b")
	require.True(t, ok)
	assert.Equal(t, 2, b.Len())
}

func TestFromYAMLBuildsTree(t *testing.T) {
	root, err := serde.FromYAML([]byte("a: 1\nb:\n  - 2\n  - 3\nc: x\n"))
	require.NoError(t, err)

	a, ok := root.GetChildKey("a")
	require.True(t, ok)
	assert.Equal(t, int64(1), a.AsInt())
}

func TestFromTOMLBuildsTree(t *testing.T) {
	root, err := serde.FromTOML([]byte("a = 1\nc = \"x\"\n\n[b]\nd = 2\n"))
	require.NoError(t, err)

	a, ok := root.GetChildKey("a")
	require.True(t, ok)
	assert.Equal(t, int64(1), a.AsInt())
}

func TestFromBytesDispatchesOnFormat(t *testing.T) {
	root, err := serde.FromBytes(fileinfo.JSON, []byte(`{"x":1}`))
	require.NoError(t, err)
	x, ok := root.GetChildKey("x")
	require.True(t, ok)
	assert.Equal(t, int64(1), x.AsInt())

	_, err = serde.FromBytes(fileinfo.Binary, []byte("anything"))
	require.Error(t, err)
}

func TestFromFileDetectsFormatFromExtension(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.yaml")
	require.NoError(t, os.WriteFile(path, []byte("a: 1\n"), 0o600))

	root, err := serde.FromFile(path, fileinfo.Binary)
	require.NoError(t, err)

	a, ok := root.GetChildKey("a")
	require.True(t, ok)
	assert.Equal(t, int64(1), a.AsInt())

	require.NotNil(t, root.FileInfo())
	assert.Equal(t, fileinfo.YAML, root.FileInfo().Format)
}

func TestJSONRoundTrips(t *testing.T) {
	root, err := serde.FromJSON([]byte(`{"a":1,"b":[2,3],"c":"x","d":true,"e":null}`))
	require.NoError(t, err)

	data, err := serde.ToJSON(root)
	require.NoError(t, err)

	back, err := serde.FromJSON(data)
	require.NoError(t, err)

	a, _ := back.GetChildKey("a")
	assert.Equal(t, int64(1), a.AsInt())
}

func TestYAMLRoundTripsPreservesIntKind(t *testing.T) {
	root, err := serde.FromJSON([]byte(`{"a":1,"b":1.5}`))
	require.NoError(t, err)

	data, err := serde.ToYAML(root)
	require.NoError(t, err)

	back, err := serde.FromYAML(data)
	require.NoError(t, err)

	a, _ := back.GetChildKey("a")
	assert.Equal(t, int64(1), a.AsInt())

	b, _ := back.GetChildKey("b")
	assert.InDelta(t, 1.5, b.AsFloat(), 0.0001)
}

func TestTOMLRoundTripRequiresObjectRoot(t *testing.T) {
	root, err := serde.FromJSON([]byte(`[1,2,3]`))
	require.NoError(t, err)

	_, err = serde.ToTOML(root)
	require.Error(t, err)

	obj, err := serde.FromJSON([]byte(`{"a":1}`))
	require.NoError(t, err)

	data, err := serde.ToTOML(obj)
	require.NoError(t, err)

	back, err := serde.FromTOML(data)
	require.NoError(t, err)
	a, _ := back.GetChildKey("a")
	assert.Equal(t, int64(1), a.AsInt())
}

func TestToFormatDispatchesAndHonorsPretty(t *testing.T) {
	root, err := serde.FromJSON([]byte(`{"a":1}`))
	require.NoError(t, err)

	compact, err := serde.ToFormat(root, fileinfo.JSON, false)
	require.NoError(t, err)
	assert.NotContains(t, string(compact), "\n")

	pretty, err := serde.ToFormat(root, fileinfo.JSON, true)
	require.NoError(t, err)
	assert.Contains(t, string(pretty), "\n")
}
