package funcs_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kodegenix/pqlgo/pkg/eval"
	"github.com/kodegenix/pqlgo/pkg/expr"
	"github.com/kodegenix/pqlgo/pkg/funcs"
	"github.com/kodegenix/pqlgo/pkg/tree"
)

func strPtr(s string) *string { return &s }

func newEvaluator() *eval.Evaluator {
	return eval.NewEvaluator(funcs.Methods(), funcs.Funcs())
}

func TestUpperLowerTrimMethods(t *testing.T) {
	ev := newEvaluator()
	env := eval.New(tree.NewString("  Hello  ")).WithCurrent(tree.NewString("  Hello  "))

	set, err := ev.Apply(expr.MethodCall{ID: "trim"}, env, eval.CtxExpr)
	require.NoError(t, err)
	node, _ := set.First()
	assert.Equal(t, "Hello", node.AsString())

	env = env.WithCurrent(tree.NewString("Hello"))
	set, err = ev.Apply(expr.MethodCall{ID: "upper"}, env, eval.CtxExpr)
	require.NoError(t, err)
	node, _ = set.First()
	assert.Equal(t, "HELLO", node.AsString())

	set, err = ev.Apply(expr.MethodCall{ID: "lower"}, env, eval.CtxExpr)
	require.NoError(t, err)
	node, _ = set.First()
	assert.Equal(t, "hello", node.AsString())
}

func TestUpperOnNonStringIsAnError(t *testing.T) {
	ev := newEvaluator()
	env := eval.New(tree.NewInt(1)).WithCurrent(tree.NewInt(1))

	_, err := ev.Apply(expr.MethodCall{ID: "upper"}, env, eval.CtxExpr)
	require.Error(t, err)
}

func buildObject(t *testing.T) *tree.Node {
	t.Helper()

	root := tree.NewObject()
	require.NoError(t, root.AddChild(nil, strPtr("a"), tree.NewInt(1)))
	require.NoError(t, root.AddChild(nil, strPtr("b"), tree.NewInt(2)))

	return root
}

func TestKeysAndValuesMethods(t *testing.T) {
	ev := newEvaluator()
	obj := buildObject(t)
	env := eval.New(obj).WithCurrent(obj)

	set, err := ev.Apply(expr.MethodCall{ID: "keys"}, env, eval.CtxExpr)
	require.NoError(t, err)
	keys, _ := set.First()
	require.Equal(t, 2, keys.Len())
	assert.Equal(t, "a", keys.Children()[0].AsString())
	assert.Equal(t, "b", keys.Children()[1].AsString())

	set, err = ev.Apply(expr.MethodCall{ID: "values"}, env, eval.CtxExpr)
	require.NoError(t, err)
	values, _ := set.First()
	require.Equal(t, 2, values.Len())
	assert.Equal(t, int64(1), values.Children()[0].AsInt())
}

func TestLenMethodOnStringAndArray(t *testing.T) {
	ev := newEvaluator()

	env := eval.New(tree.NewString("hello")).WithCurrent(tree.NewString("hello"))
	set, err := ev.Apply(expr.MethodCall{ID: "len"}, env, eval.CtxExpr)
	require.NoError(t, err)
	node, _ := set.First()
	assert.Equal(t, int64(5), node.AsInt())

	arr := tree.NewArray(tree.NewInt(1), tree.NewInt(2), tree.NewInt(3))
	env = eval.New(arr).WithCurrent(arr)
	set, err = ev.Apply(expr.FuncCall{ID: "length"}, env, eval.CtxExpr)
	require.NoError(t, err)
	node, _ = set.First()
	assert.Equal(t, int64(3), node.AsInt())
}

func TestJSONMethodAndFunction(t *testing.T) {
	ev := newEvaluator()
	obj := buildObject(t)
	env := eval.New(obj).WithCurrent(obj)

	set, err := ev.Apply(expr.MethodCall{ID: "json"}, env, eval.CtxExpr)
	require.NoError(t, err)
	node, _ := set.First()
	assert.JSONEq(t, `{"a":1,"b":2}`, node.AsString())

	set, err = ev.Apply(expr.FuncCall{ID: "json", Args: []expr.Expr{expr.CurrentRef{}}}, env, eval.CtxExpr)
	require.NoError(t, err)
	node, _ = set.First()
	assert.JSONEq(t, `{"a":1,"b":2}`, node.AsString())
}

func TestTypeFunction(t *testing.T) {
	ev := newEvaluator()
	env := eval.New(tree.NewBool(true)).WithCurrent(tree.NewBool(true))

	set, err := ev.Apply(expr.FuncCall{ID: "type"}, env, eval.CtxExpr)
	require.NoError(t, err)
	node, _ := set.First()
	assert.Equal(t, "boolean", node.AsString())
}

func TestMinMaxAndAbsFunctions(t *testing.T) {
	ev := newEvaluator()
	env := eval.New(tree.NewNull())

	set, err := ev.Apply(expr.FuncCall{ID: "min", Args: []expr.Expr{expr.Int{Value: 3}, expr.Int{Value: -1}}}, env, eval.CtxExpr)
	require.NoError(t, err)
	node, _ := set.First()
	assert.Equal(t, int64(-1), node.AsInt())

	set, err = ev.Apply(expr.FuncCall{ID: "max", Args: []expr.Expr{expr.Float{Value: 1.5}, expr.Int{Value: 2}}}, env, eval.CtxExpr)
	require.NoError(t, err)
	node, _ = set.First()
	assert.Equal(t, 2.0, node.AsFloat())

	set, err = ev.Apply(expr.FuncCall{ID: "abs", Args: []expr.Expr{expr.Neg{X: expr.Int{Value: 5}}}}, env, eval.CtxExpr)
	require.NoError(t, err)
	node, _ = set.First()
	assert.Equal(t, int64(5), node.AsInt())
}

func TestUnknownFunctionIsFuncCallError(t *testing.T) {
	ev := newEvaluator()
	env := eval.New(tree.NewNull())

	_, err := ev.Apply(expr.FuncCall{ID: "nope"}, env, eval.CtxExpr)
	require.Error(t, err)
}

func TestDiffFunctionRequiresDiffEnvironment(t *testing.T) {
	ev := newEvaluator()
	env := eval.New(tree.NewInt(1))

	_, err := ev.Apply(expr.FuncCall{ID: "diff"}, env, eval.CtxExpr)
	require.Error(t, err)
}

func TestDiffFunctionReportsChange(t *testing.T) {
	ev := newEvaluator()
	oldRoot := tree.NewInt(1)
	newRoot := tree.NewInt(2)

	env := eval.New(newRoot).WithDiff(&eval.DiffEnv{OldRoot: oldRoot})

	set, err := ev.Apply(expr.FuncCall{ID: "diff"}, env, eval.CtxExpr)
	require.NoError(t, err)
	node, _ := set.First()
	assert.Contains(t, node.AsString(), "2")
}
