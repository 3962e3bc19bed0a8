package nodeset

import (
	"encoding/json"
	"fmt"

	"github.com/kodegenix/pqlgo/pkg/tree"
)

type wireSet struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

// MarshalJSON renders the set per spec.md §6.4's wire format:
// {"type":"empty"}, {"type":"one","data":<value>}, or
// {"type":"many","data":[<value>…]}.
func (s Set) MarshalJSON() ([]byte, error) {
	switch s.kind {
	case kindEmpty:
		return json.Marshal(wireSet{Type: "empty"})
	case kindOne:
		data, err := json.Marshal(s.one)
		if err != nil {
			return nil, err
		}

		return json.Marshal(wireSet{Type: "one", Data: data})
	default:
		data, err := json.Marshal(s.many)
		if err != nil {
			return nil, err
		}

		return json.Marshal(wireSet{Type: "many", Data: data})
	}
}

// UnmarshalJSON parses the spec.md §6.4 wire format back into a Set.
func (s *Set) UnmarshalJSON(data []byte) error {
	var w wireSet
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}

	switch w.Type {
	case "empty":
		*s = Empty()
	case "one":
		var v any
		if err := json.Unmarshal(w.Data, &v); err != nil {
			return err
		}

		*s = One(tree.FromAny(v))
	case "many":
		var vs []any
		if err := json.Unmarshal(w.Data, &vs); err != nil {
			return err
		}

		nodes := make([]*tree.Node, len(vs))
		for i, v := range vs {
			nodes[i] = tree.FromAny(v)
		}

		*s = Many(nodes)
	default:
		return fmt.Errorf("nodeset: unknown wire type %q", w.Type)
	}

	return nil
}
