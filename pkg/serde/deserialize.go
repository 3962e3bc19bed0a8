// Package serde turns JSON, YAML and TOML text into pkg/tree documents
// and back. The node-set and opath wire formats (a serialized query
// result, a stored `${...}` reference) are not here: they live in
// pkg/nodeset and pkg/opath. Deserialization always routes through
// tree.FromAny so every format shares one value-building path.
package serde

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/kodegenix/pqlgo/pkg/fileinfo"
	"github.com/kodegenix/pqlgo/pkg/pqlerr"
	"github.com/kodegenix/pqlgo/pkg/tree"
)

// FromJSON parses JSON text into a tree rooted at the decoded value.
func FromJSON(data []byte) (*tree.Node, error) {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, deserializeErr(fileinfo.JSON, err)
	}

	return tree.FromAny(v), nil
}

// FromYAML parses YAML text via the teacher's existing yaml.v3 dependency.
func FromYAML(data []byte) (*tree.Node, error) {
	var v any
	if err := yaml.Unmarshal(data, &v); err != nil {
		return nil, deserializeErr(fileinfo.YAML, err)
	}

	return tree.FromAny(normalizeYAML(v)), nil
}

// FromTOML parses TOML text via go-toml/v2.
func FromTOML(data []byte) (*tree.Node, error) {
	var v any
	if err := toml.Unmarshal(data, &v); err != nil {
		return nil, deserializeErr(fileinfo.TOML, err)
	}

	return tree.FromAny(v), nil
}

// FromString parses data in the given format.
func FromString(format fileinfo.FileFormat, data string) (*tree.Node, error) {
	return FromBytes(format, []byte(data))
}

// FromBytes parses data in the given format.
func FromBytes(format fileinfo.FileFormat, data []byte) (*tree.Node, error) {
	switch format {
	case fileinfo.JSON:
		return FromJSON(data)
	case fileinfo.YAML:
		return FromYAML(data)
	case fileinfo.TOML:
		return FromTOML(data)
	default:
		return nil, pqlerr.Newf(pqlerr.DeserializationErr, "unsupported format %s", format)
	}
}

// FromFile reads and parses path, auto-detecting its format from the
// extension when format is fileinfo.Binary. The resulting root carries a
// fileinfo.Info built from the file's canonical absolute path.
func FromFile(path string, format fileinfo.FileFormat) (*tree.Node, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, pqlerr.Wrap(pqlerr.DeserializationErr, "failed to resolve path "+path, err)
	}

	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		abs = resolved
	}

	if format == fileinfo.Binary {
		format = fileinfo.ParseFileFormat(filepath.Ext(abs))
	}

	data, err := os.ReadFile(abs)
	if err != nil {
		return nil, pqlerr.Wrap(pqlerr.DeserializationErr, "failed to read "+abs, err)
	}

	root, err := FromBytes(format, data)
	if err != nil {
		return nil, err
	}

	root.SetFileInfo(fileinfo.NewInfo(abs, fileinfo.File, format))

	return root, nil
}

// normalizeYAML recursively converts yaml.v3's map[string]interface{} and
// any stray map[interface{}]interface{} (from non-string keys) into the
// map[string]any/[]any shapes tree.FromAny understands, and folds
// yaml.v3's int/uint64 scalar kinds down to int64 to match tree.FromAny's
// expectations (it otherwise only special-cases float64/int/int64).
func normalizeYAML(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[k] = normalizeYAML(e)
		}

		return out
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			if ks, ok := k.(string); ok {
				out[ks] = normalizeYAML(e)
			}
		}

		return out
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = normalizeYAML(e)
		}

		return out
	case int:
		return int64(t)
	case uint64:
		return int64(t)
	default:
		return v
	}
}

func deserializeErr(format fileinfo.FileFormat, cause error) error {
	return pqlerr.Wrap(pqlerr.DeserializationErr, "failed to parse "+format.String(), cause)
}
