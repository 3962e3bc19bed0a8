package opath_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kodegenix/pqlgo/pkg/opath"
	"github.com/kodegenix/pqlgo/pkg/tree"
)

func TestFromRootIsDollar(t *testing.T) {
	root := tree.NewObject()

	assert.Equal(t, "$", opath.From(root).String())
}

func TestFromNestedObjectAndArray(t *testing.T) {
	inner := tree.NewArray(tree.NewInt(1), tree.NewInt(2))
	root := tree.NewObject()

	if err := root.AddChild(nil, strPtr("items"), inner); err != nil {
		t.Fatalf("AddChild: %v", err)
	}

	elem, ok := inner.GetChildIndex(1)
	if !ok {
		t.Fatal("expected element at index 1")
	}

	assert.Equal(t, "$.items[1]", opath.From(elem).String())
}

func strPtr(s string) *string { return &s }
