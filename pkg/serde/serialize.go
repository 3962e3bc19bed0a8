package serde

import (
	"encoding/hex"
	"encoding/json"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/kodegenix/pqlgo/pkg/fileinfo"
	"github.com/kodegenix/pqlgo/pkg/pqlerr"
	"github.com/kodegenix/pqlgo/pkg/tree"
	"github.com/kodegenix/pqlgo/pkg/value"
)

// ToJSON renders n as compact JSON, delegating to tree.Node's own
// json.Marshaler implementation.
func ToJSON(n *tree.Node) ([]byte, error) {
	data, err := n.MarshalJSON()
	if err != nil {
		return nil, pqlerr.Wrap(pqlerr.DeserializationErr, "failed to serialize json", err)
	}

	return data, nil
}

// ToJSONPretty renders n as indented JSON.
func ToJSONPretty(n *tree.Node) ([]byte, error) {
	data, err := json.MarshalIndent(nodeToAny(n), "", "  ")
	if err != nil {
		return nil, pqlerr.Wrap(pqlerr.DeserializationErr, "failed to serialize json", err)
	}

	return data, nil
}

// ToYAML renders n as YAML, via the same value shape FromYAML consumes.
func ToYAML(n *tree.Node) ([]byte, error) {
	data, err := yaml.Marshal(nodeToAny(n))
	if err != nil {
		return nil, pqlerr.Wrap(pqlerr.DeserializationErr, "failed to serialize yaml", err)
	}

	return data, nil
}

// ToTOML renders n as TOML. go-toml/v2 requires a table at the document
// root, matching spec.md's implicit assumption that a PQL document's
// outermost node is an object when TOML is the chosen wire format.
func ToTOML(n *tree.Node) ([]byte, error) {
	if n.Kind() != value.Object {
		return nil, pqlerr.New(pqlerr.DeserializationErr, "toml output requires an object root")
	}

	data, err := toml.Marshal(nodeToAny(n))
	if err != nil {
		return nil, pqlerr.Wrap(pqlerr.DeserializationErr, "failed to serialize toml", err)
	}

	return data, nil
}

// ToFormat dispatches to the serializer matching format; pretty only
// affects the JSON backend, the others are always human-formatted.
func ToFormat(n *tree.Node, format fileinfo.FileFormat, pretty bool) ([]byte, error) {
	switch format {
	case fileinfo.JSON:
		if pretty {
			return ToJSONPretty(n)
		}

		return ToJSON(n)
	case fileinfo.YAML:
		return ToYAML(n)
	case fileinfo.TOML:
		return ToTOML(n)
	default:
		return nil, pqlerr.Newf(pqlerr.DeserializationErr, "unsupported format %s", format)
	}
}

// nodeToAny mirrors tree.Node's own (unexported) JSON conversion, built
// independently from exported accessors so pkg/serde can feed the same
// shape to yaml.v3 and go-toml/v2 without losing the Int/Float
// distinction a JSON-bytes round trip through float64 would collapse.
func nodeToAny(n *tree.Node) any {
	switch n.Kind() {
	case value.Null:
		return nil
	case value.Bool:
		return n.AsBool()
	case value.Int:
		return n.AsInt()
	case value.Float:
		return n.AsFloat()
	case value.String:
		return n.AsString()
	case value.Binary:
		return hex.EncodeToString(n.Value().RawBinary())
	case value.Array:
		children := n.Children()
		out := make([]any, len(children))

		for i, c := range children {
			out[i] = nodeToAny(c)
		}

		return out
	case value.Object:
		keys := n.Keys()
		out := make(map[string]any, len(keys))

		for _, k := range keys {
			c, _ := n.GetChildKey(k)
			out[k] = nodeToAny(c)
		}

		return out
	default:
		return nil
	}
}
