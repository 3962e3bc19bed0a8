package expr_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kodegenix/pqlgo/pkg/expr"
)

func TestFloatNaNEqualsItself(t *testing.T) {
	a := expr.Float{Value: math.NaN()}
	b := expr.Float{Value: math.NaN()}

	assert.True(t, a.Equal(b), "NaN literals must compare equal for use as hash-map keys")
	assert.Equal(t, a.Hash(), b.Hash())
}

func TestFloatDistinctValuesNotEqual(t *testing.T) {
	a := expr.Float{Value: 1.0}
	b := expr.Float{Value: 2.0}

	assert.False(t, a.Equal(b))
}

func TestStructuralEqualityAcrossVariants(t *testing.T) {
	a := expr.Add{X: expr.Int{Value: 1}, Y: expr.Property{ID: "x"}}
	b := expr.Add{X: expr.Int{Value: 1}, Y: expr.Property{ID: "x"}}
	c := expr.Add{X: expr.Int{Value: 1}, Y: expr.Property{ID: "y"}}

	assert.True(t, a.Equal(b))
	assert.Equal(t, a.Hash(), b.Hash())
	assert.False(t, a.Equal(c))
}

func TestAttributeRoundTrip(t *testing.T) {
	for name, want := range map[string]expr.Attr{
		"@key":  expr.AttrKey,
		"@path": expr.AttrPath,
		"@dir":  expr.AttrDir,
	} {
		got, ok := expr.ParseAttribute(name)
		assert.True(t, ok)
		assert.Equal(t, want, got)
		assert.Equal(t, name, got.String())
	}

	_, ok := expr.ParseAttribute("@nonexistent")
	assert.False(t, ok)
}

func TestPathStringRendersPlainAndQuotedKeys(t *testing.T) {
	p := expr.Path{Segments: []expr.PathSegment{
		{Key: "foo"},
		{IsIndex: true, Index: 3},
		{Key: "not-plain"},
	}}

	assert.Equal(t, `$.foo[3]["not-plain"]`, p.String())
}

func TestGroupSequenceConcatString(t *testing.T) {
	g := expr.Group{Elems: []expr.Expr{expr.Int{Value: 1}, expr.Int{Value: 2}}}
	assert.Equal(t, "(1, 2)", g.String())

	s := expr.Sequence{Stages: []expr.Expr{expr.Property{ID: "a"}, expr.Property{ID: "b"}}}
	assert.Equal(t, ".a..b", s.String())

	c := expr.Concat{Elems: []expr.Expr{expr.Str{Value: "x"}, expr.Str{Value: "y"}}}
	assert.Equal(t, `"x" "y"`, c.String())
}

func TestVarExprAndEnvString(t *testing.T) {
	v := expr.VarExpr{Expr: expr.Property{ID: "name"}}
	assert.Equal(t, "${.name}", v.String())

	e := expr.Env{ID: "HOME"}
	assert.Equal(t, "env:HOME", e.String())
}

func TestArithAndLogicStringFullyParenthesize(t *testing.T) {
	add := expr.Add{X: expr.Int{Value: 1}, Y: expr.Int{Value: 2}}
	assert.Equal(t, "(1 + 2)", add.String())

	neg := expr.Neg{X: expr.Int{Value: 1}}
	assert.Equal(t, "-(1)", neg.String())

	not := expr.Not{X: expr.Bool{Value: true}}
	assert.Equal(t, "!(true)", not.String())

	and := expr.And{X: expr.Bool{Value: true}, Y: expr.Bool{Value: false}}
	assert.Equal(t, "(true and false)", and.String())
}

func TestMethodCallAndFuncCallString(t *testing.T) {
	m := expr.MethodCall{ID: "upper", Args: nil}
	assert.Equal(t, ".upper()", m.String())

	f := expr.FuncCall{ID: "json", Args: []expr.Expr{expr.CurrentRef{}}}
	assert.Equal(t, "json(@)", f.String())
}
