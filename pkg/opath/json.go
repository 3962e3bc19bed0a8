package opath

import (
	"encoding/json"
	"strings"

	"github.com/kodegenix/pqlgo/pkg/expr"
	"github.com/kodegenix/pqlgo/pkg/parser"
	"github.com/kodegenix/pqlgo/pkg/pqlerr"
)

// MarshalJSON renders o as the `"${<expression text>}"` wire form.
func (o Opath) MarshalJSON() ([]byte, error) {
	return json.Marshal("${" + o.String() + "}")
}

// UnmarshalJSON parses the `"${<expression text>}"` wire form back into
// an Opath, stripping the optional `${`/`}` delimiters before parsing.
func (o *Opath) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}

	inner := s
	if strings.HasPrefix(inner, "${") && strings.HasSuffix(inner, "}") {
		inner = inner[2 : len(inner)-1]
	}

	e, err := parser.Parse(inner)
	if err != nil {
		return err
	}

	path, err := fromExpr(e)
	if err != nil {
		return err
	}

	*o = path

	return nil
}

// fromExpr converts a parsed absolute-path expression back into an
// Opath: either a bare root reference, or a root followed by a chain of
// Property/Index stages — the shape the parser produces for `$.foo[0]`
// (a Sequence, since the grammar has no dedicated Path production of its
// own; see pkg/parser's design notes).
func fromExpr(e expr.Expr) (Opath, error) {
	switch v := e.(type) {
	case expr.RootRef:
		return Opath{}, nil
	case expr.Sequence:
		if len(v.Stages) == 0 {
			return Opath{}, nil
		}

		if _, ok := v.Stages[0].(expr.RootRef); !ok {
			return Opath{}, pqlerr.New(pqlerr.DeserializationErr, "opath must start with $")
		}

		segments := make([]expr.PathSegment, 0, len(v.Stages)-1)

		for _, stage := range v.Stages[1:] {
			seg, err := segmentFromExpr(stage)
			if err != nil {
				return Opath{}, err
			}

			segments = append(segments, seg)
		}

		return Opath{Path: expr.Path{Segments: segments}}, nil
	default:
		return Opath{}, pqlerr.New(pqlerr.DeserializationErr, "not a canonical opath expression")
	}
}

func segmentFromExpr(e expr.Expr) (expr.PathSegment, error) {
	switch v := e.(type) {
	case expr.Property:
		return expr.PathSegment{Key: v.ID}, nil
	case expr.Index:
		return expr.PathSegment{IsIndex: true, Index: v.Value}, nil
	default:
		return expr.PathSegment{}, pqlerr.New(pqlerr.DeserializationErr, "unsupported opath segment")
	}
}
