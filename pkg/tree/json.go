package tree

import (
	"encoding/hex"
	"encoding/json"

	"github.com/kodegenix/pqlgo/pkg/value"
)

// MarshalJSON renders the node's value as plain JSON: scalars map
// naturally, Binary is hex-encoded (spec.md §4.4's implementer's-choice
// stringification note extended to the JSON wire format).
func (n *Node) MarshalJSON() ([]byte, error) {
	return json.Marshal(n.toAny())
}

func (n *Node) toAny() any {
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
		n.mu.RLock()
		raw := n.val.RawBinary()
		n.mu.RUnlock()

		return hex.EncodeToString(raw)
	case value.Array:
		children := n.Children()
		out := make([]any, len(children))

		for i, c := range children {
			out[i] = c.toAny()
		}

		return out
	case value.Object:
		keys := n.Keys()
		out := make(map[string]any, len(keys))

		for _, k := range keys {
			c, _ := n.GetChildKey(k)
			out[k] = c.toAny()
		}

		return out
	default:
		return nil
	}
}

// UnmarshalJSON replaces n's value and children from JSON data, detaching
// n from any prior parent as a side effect of becoming a new root.
func (n *Node) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}

	built := FromAny(v)

	n.mu.Lock()
	n.val = built.val
	n.meta = Metadata{}
	n.mu.Unlock()

	n.updateChildrenMetadata()

	return nil
}

// FromAny builds a node tree from a decoded JSON/YAML value
// (map[string]any, []any, string, float64/int, bool, nil).
func FromAny(v any) *Node {
	switch t := v.(type) {
	case nil:
		return NewNull()
	case bool:
		return NewBool(t)
	case string:
		return NewString(t)
	case float64:
		if i := int64(t); float64(i) == t {
			return NewInt(i)
		}

		return NewFloat(t)
	case int:
		return NewInt(int64(t))
	case int64:
		return NewInt(t)
	case []any:
		elems := make([]*Node, len(t))
		for i, e := range t {
			elems[i] = FromAny(e)
		}

		return NewArray(elems...)
	case map[string]any:
		obj := NewObject()

		for k, e := range t {
			key := k
			_ = obj.AddChild(nil, &key, FromAny(e))
		}

		return obj
	case map[any]any:
		obj := NewObject()

		for k, e := range t {
			key, _ := k.(string)
			_ = obj.AddChild(nil, &key, FromAny(e))
		}

		return obj
	default:
		return NewNull()
	}
}
