package parser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kodegenix/pqlgo/pkg/expr"
	"github.com/kodegenix/pqlgo/pkg/parser"
	"github.com/kodegenix/pqlgo/pkg/pqlerr"
)

func TestParseLiterals(t *testing.T) {
	cases := map[string]expr.Expr{
		"1":        expr.Int{Value: 1},
		"-1":       expr.Neg{X: expr.Int{Value: 1}},
		"1.5":      expr.Float{Value: 1.5},
		`"a"`:      expr.Str{Value: "a"},
		"'a'":      expr.Str{Value: "a"},
		"true":     expr.Bool{Value: true},
		"false":    expr.Bool{Value: false},
		"null":     expr.Null{},
		"$":        expr.RootRef{},
		"@":        expr.CurrentRef{},
		"^":        expr.ParentRef{},
		"*":        expr.All{},
		"$name":    expr.Var{ID: "name"},
		"env:HOME": expr.Env{ID: "HOME"},
	}

	for src, want := range cases {
		got, err := parser.Parse(src)
		require.NoError(t, err, src)
		assert.True(t, want.Equal(got), "%s: got %s", src, got.String())
	}
}

func TestParsePropertyChainCollapsesToSequence(t *testing.T) {
	got, err := parser.Parse(".a.b")
	require.NoError(t, err)

	want := expr.Sequence{Stages: []expr.Expr{
		expr.Property{ID: "a"},
		expr.Property{ID: "b"},
	}}

	assert.True(t, want.Equal(got))
}

func TestParseSinglePropertyHasNoSequenceWrapper(t *testing.T) {
	got, err := parser.Parse(".a")
	require.NoError(t, err)
	assert.True(t, expr.Property{ID: "a"}.Equal(got))
}

func TestParseMethodCall(t *testing.T) {
	got, err := parser.Parse(".upper()")
	require.NoError(t, err)
	assert.True(t, expr.MethodCall{ID: "upper"}.Equal(got))
}

func TestParseFuncCall(t *testing.T) {
	got, err := parser.Parse(`json(@)`)
	require.NoError(t, err)
	assert.True(t, expr.FuncCall{ID: "json", Args: []expr.Expr{expr.CurrentRef{}}}.Equal(got))
}

func TestParseBracketIndexAndProperty(t *testing.T) {
	got, err := parser.Parse(`.items[0]`)
	require.NoError(t, err)

	seq, ok := got.(expr.Sequence)
	require.True(t, ok)
	require.Len(t, seq.Stages, 2)
	assert.True(t, expr.Property{ID: "items"}.Equal(seq.Stages[0]))
	assert.True(t, expr.Index{Value: 0}.Equal(seq.Stages[1]))

	got2, err := parser.Parse(`.items["name"]`)
	require.NoError(t, err)
	seq2, ok := got2.(expr.Sequence)
	require.True(t, ok)
	assert.True(t, expr.Property{ID: "name"}.Equal(seq2.Stages[1]))
}

func TestParseBracketFilterPredicate(t *testing.T) {
	// A comparison or boolean expression inside brackets reaches the full
	// expression grammar (not just additive precedence), so it reaches
	// PropertyExpr the same way a bare key or call already does.
	got, err := parser.Parse(`.items[@ > 5]`)
	require.NoError(t, err)

	seq, ok := got.(expr.Sequence)
	require.True(t, ok)
	require.Len(t, seq.Stages, 2)
	assert.True(t, expr.Property{ID: "items"}.Equal(seq.Stages[0]))

	want := expr.PropertyExpr{Expr: expr.Gt{X: expr.CurrentRef{}, Y: expr.Int{Value: 5}}}
	assert.True(t, want.Equal(seq.Stages[1]), "got %s", seq.Stages[1].String())

	got2, err := parser.Parse(`$hosts[@.hostname != 'zeus']`)
	require.NoError(t, err)

	seq2, ok := got2.(expr.Sequence)
	require.True(t, ok)
	require.Len(t, seq2.Stages, 2)
	assert.True(t, expr.Var{ID: "hosts"}.Equal(seq2.Stages[0]))

	want2 := expr.PropertyExpr{Expr: expr.Ne{
		X: expr.Sequence{Stages: []expr.Expr{expr.CurrentRef{}, expr.Property{ID: "hostname"}}},
		Y: expr.Str{Value: "zeus"},
	}}
	assert.True(t, want2.Equal(seq2.Stages[1]), "got %s", seq2.Stages[1].String())
}

func TestParseRangeDotDotAndColonForms(t *testing.T) {
	// A bracket-parsed range is wrapped in IndexExpr so it evaluates as a
	// selector (CtxIndex) no matter what ambient context a surrounding
	// Sequence forwards to it.
	got, err := parser.Parse(`[0..2]`)
	require.NoError(t, err)
	assert.True(t, expr.IndexExpr{Expr: expr.Range{NumberRange: expr.NumberRange{
		Start: expr.Int{Value: 0},
		Stop:  expr.Int{Value: 2},
	}}}.Equal(got))

	got2, err := parser.Parse(`[1:2:5]`)
	require.NoError(t, err)
	assert.True(t, expr.IndexExpr{Expr: expr.Range{NumberRange: expr.NumberRange{
		Start: expr.Int{Value: 1},
		Step:  expr.Int{Value: 2},
		Stop:  expr.Int{Value: 5},
	}}}.Equal(got2))

	got3, err := parser.Parse(`[:]`)
	require.NoError(t, err)
	assert.True(t, expr.IndexExpr{Expr: expr.Range{}}.Equal(got3))
}

func TestParseRangeOperandOutsideBrackets(t *testing.T) {
	// Reachable as a bare operand (no brackets), a range parses to the
	// same NumberRange shape but unwrapped, so it evaluates in whatever
	// context it's actually used in rather than being forced to select.
	got, err := parser.Parse(`0..5`)
	require.NoError(t, err)
	assert.True(t, expr.Range{NumberRange: expr.NumberRange{
		Start: expr.Int{Value: 0},
		Stop:  expr.Int{Value: 5},
	}}.Equal(got))
}

func TestParseArithmeticPrecedence(t *testing.T) {
	got, err := parser.Parse("1 + 2 * 3")
	require.NoError(t, err)

	want := expr.Add{X: expr.Int{Value: 1}, Y: expr.Mul{X: expr.Int{Value: 2}, Y: expr.Int{Value: 3}}}
	assert.True(t, want.Equal(got))
}

func TestParseComparisonAndBoolean(t *testing.T) {
	got, err := parser.Parse("@ > 1 and @ < 10")
	require.NoError(t, err)

	want := expr.And{
		X: expr.Gt{X: expr.CurrentRef{}, Y: expr.Int{Value: 1}},
		Y: expr.Lt{X: expr.CurrentRef{}, Y: expr.Int{Value: 10}},
	}
	assert.True(t, want.Equal(got))
}

func TestParseSymbolicBooleanOperators(t *testing.T) {
	got, err := parser.Parse("true || false")
	require.NoError(t, err)
	assert.True(t, expr.Or{X: expr.Bool{Value: true}, Y: expr.Bool{Value: false}}.Equal(got))

	got2, err := parser.Parse("true && false")
	require.NoError(t, err)
	assert.True(t, expr.And{X: expr.Bool{Value: true}, Y: expr.Bool{Value: false}}.Equal(got2))
}

func TestParseStringPredicates(t *testing.T) {
	got, err := parser.Parse(`@ ^= "foo"`)
	require.NoError(t, err)
	assert.True(t, expr.StartsWith{X: expr.CurrentRef{}, Y: expr.Str{Value: "foo"}}.Equal(got))

	got2, err := parser.Parse(`@ $= "bar"`)
	require.NoError(t, err)
	assert.True(t, expr.EndsWith{X: expr.CurrentRef{}, Y: expr.Str{Value: "bar"}}.Equal(got2))

	got3, err := parser.Parse(`@ *= "baz"`)
	require.NoError(t, err)
	assert.True(t, expr.Contains{X: expr.CurrentRef{}, Y: expr.Str{Value: "baz"}}.Equal(got3))
}

func TestParseGroupVsPrecedenceParens(t *testing.T) {
	got, err := parser.Parse("(1 + 2)")
	require.NoError(t, err)
	assert.True(t, expr.Add{X: expr.Int{Value: 1}, Y: expr.Int{Value: 2}}.Equal(got))

	got2, err := parser.Parse("(1, 2, 3)")
	require.NoError(t, err)
	want := expr.Group{Elems: []expr.Expr{
		expr.Int{Value: 1}, expr.Int{Value: 2}, expr.Int{Value: 3},
	}}
	assert.True(t, want.Equal(got2))
}

func TestParseAncestorsAndDescendantsWithLevelRange(t *testing.T) {
	got, err := parser.Parse("^**{1,2}")
	require.NoError(t, err)
	want := expr.Ancestors{Range: expr.LevelRange{Min: expr.Int{Value: 1}, Max: expr.Int{Value: 2}}}
	assert.True(t, want.Equal(got))

	got2, err := parser.Parse(".**")
	require.NoError(t, err)
	assert.True(t, expr.Descendants{}.Equal(got2))
}

func TestParseVarExprAndEnvExpr(t *testing.T) {
	got, err := parser.Parse("${.name}")
	require.NoError(t, err)
	assert.True(t, expr.VarExpr{Expr: expr.Property{ID: "name"}}.Equal(got))

	got2, err := parser.Parse("env:($name)")
	require.NoError(t, err)
	assert.True(t, expr.EnvExpr{Expr: expr.Var{ID: "name"}}.Equal(got2))
}

func TestParseAttribute(t *testing.T) {
	got, err := parser.Parse("@key")
	require.NoError(t, err)
	assert.True(t, expr.Attribute{Attr: expr.AttrKey}.Equal(got))
}

func TestParseConcatIsNotPartOfGrammarAtTopLevel(t *testing.T) {
	// Concat has no dedicated surface syntax; this parser never builds it
	// from source text, so adjacent string literals are a parse error.
	_, err := parser.Parse(`"a" "b"`)
	require.Error(t, err)
}

func TestParseInvalidCharacterReportsSpan(t *testing.T) {
	_, err := parser.Parse("1 = 2")
	require.Error(t, err)

	diag, ok := err.(*pqlerr.Diag)
	require.True(t, ok)
	assert.Equal(t, pqlerr.InvalidCharacter, diag.Kind)
	require.NotNil(t, diag.Span)
}

func TestParseUnterminatedStringReportsUnexpectedEOF(t *testing.T) {
	_, err := parser.Parse(`"abc`)
	require.Error(t, err)
}
