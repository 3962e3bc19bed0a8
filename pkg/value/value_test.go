package value_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kodegenix/pqlgo/pkg/value"
)

func TestKindString(t *testing.T) {
	cases := map[value.Kind]string{
		value.Null:   "null",
		value.Bool:   "boolean",
		value.Int:    "integer",
		value.Float:  "float",
		value.String: "string",
		value.Binary: "binary",
		value.Array:  "array",
		value.Object: "object",
	}

	for kind, want := range cases {
		assert.Equal(t, want, kind.String())
	}
}

func TestArrayOperations(t *testing.T) {
	arr := value.NewArray(valueRef{value.NewInt(1)}, valueRef{value.NewInt(2)}, valueRef{value.NewInt(3)})

	assert.Equal(t, 3, arr.Len())

	v, ok := arr.At(0)
	assert.True(t, ok)
	assert.Equal(t, int64(1), v.Value().AsInt())

	v, ok = arr.At(-1)
	assert.True(t, ok)
	assert.Equal(t, int64(3), v.Value().AsInt())

	_, ok = arr.At(10)
	assert.False(t, ok)

	arr.AppendElement(valueRef{value.NewInt(4)})
	assert.Equal(t, 4, arr.Len())

	arr.InsertElementAt(0, valueRef{value.NewInt(0)})
	v, _ = arr.At(0)
	assert.Equal(t, int64(0), v.Value().AsInt())

	removed := arr.RemoveElementAt(0)
	assert.Equal(t, int64(0), removed.Value().AsInt())
	assert.Equal(t, 4, arr.Len())
}

func TestObjectOperations(t *testing.T) {
	obj := value.NewObject()
	obj.SetKey("a", valueRef{value.NewInt(1)})
	obj.SetKey("b", valueRef{value.NewInt(2)})

	assert.Equal(t, []string{"a", "b"}, obj.Keys())

	v, ok := obj.Get("a")
	assert.True(t, ok)
	assert.Equal(t, int64(1), v.Value().AsInt())

	// replacing a key preserves its original position.
	obj.SetKey("a", valueRef{value.NewInt(10)})
	assert.Equal(t, []string{"a", "b"}, obj.Keys())
	v, _ = obj.Get("a")
	assert.Equal(t, int64(10), v.Value().AsInt())

	removed, ok := obj.RemoveKey("a")
	assert.True(t, ok)
	assert.Equal(t, int64(10), removed.Value().AsInt())
	assert.Equal(t, []string{"b"}, obj.Keys())

	_, ok = obj.RemoveKey("missing")
	assert.False(t, ok)
}

func TestAsBool(t *testing.T) {
	assert.False(t, value.NewNull().AsBool())
	assert.False(t, value.NewBool(false).AsBool())
	assert.True(t, value.NewBool(true).AsBool())
	assert.False(t, value.NewInt(0).AsBool())
	assert.True(t, value.NewInt(1).AsBool())
	assert.False(t, value.NewString("").AsBool())
	assert.True(t, value.NewString("x").AsBool())
	assert.False(t, emptyArray().AsBool())
	assert.True(t, nonEmptyArray().AsBool())
	assert.False(t, emptyObject().AsBool())
	assert.True(t, nonEmptyObject().AsBool())
}

func TestAsString(t *testing.T) {
	assert.Equal(t, "", value.NewNull().AsString())
	assert.Equal(t, "true", value.NewBool(true).AsString())
	assert.Equal(t, "false", value.NewBool(false).AsString())
	assert.Equal(t, "42", value.NewInt(42).AsString())
	assert.Equal(t, "3.5", value.NewFloat(3.5).AsString())
	assert.Equal(t, "hi", value.NewString("hi").AsString())
	assert.Equal(t, "deadbeef", value.NewBinary([]byte{0xde, 0xad, 0xbe, 0xef}).AsString())
	assert.Equal(t, "1,2,3", nonEmptyArrayOfInts(1, 2, 3).AsString())
	assert.Equal(t, "[object]", emptyObject().AsString())
}

func nonEmptyArrayOfInts(ints ...int64) *value.Value {
	refs := make([]value.Ref, len(ints))
	for i, n := range ints {
		refs[i] = valueRef{value.NewInt(n)}
	}

	return value.NewArray(refs...)
}

func TestEqual(t *testing.T) {
	assert.True(t, value.NewInt(1).Equal(value.NewFloat(1.0)))
	assert.True(t, value.NewInt(1).Equal(value.NewBool(true)))
	assert.True(t, value.NewString("1").Equal(value.NewInt(1)))
	assert.False(t, value.NewString("x").Equal(value.NewInt(1)))
	assert.True(t, value.NewNull().Equal(value.NewNull()))

	left := nonEmptyArrayOfInts(1, 2)
	right := nonEmptyArrayOfInts(1, 2)
	assert.True(t, left.Equal(right))

	assert.False(t, left.Equal(nonEmptyArrayOfInts(1, 3)))
}

func TestIdenticalDeep(t *testing.T) {
	assert.False(t, value.NewInt(1).IdenticalDeep(value.NewFloat(1.0)))
	assert.True(t, value.NewInt(1).IdenticalDeep(value.NewInt(1)))
	assert.True(t, value.NewFloat(1.5).IdenticalDeep(value.NewFloat(1.5)))
}
