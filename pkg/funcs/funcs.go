// Package funcs implements the concrete method/function table that
// pkg/eval dispatches MethodCall and FuncCall nodes through. spec.md
// treats the registry's intrinsics as an external collaborator: the
// evaluator only guarantees correct argument forwarding, and leaves
// json, string helpers, math and diff to whoever builds the registry.
// This package is that collaborator.
package funcs

import (
	"github.com/kodegenix/pqlgo/pkg/eval"
)

// Methods returns the registry backing `.id(args)` method calls, where
// the receiver is env.Current.
func Methods() eval.Registry {
	return eval.Registry{
		"upper":  method(stringMethod(upperFn)),
		"lower":  method(stringMethod(lowerFn)),
		"trim":   method(stringMethod(trimFn)),
		"len":    method(lenFn),
		"keys":   method(keysFn),
		"values": method(valuesFn),
		"json":   method(jsonFn),
	}
}

// Funcs returns the registry backing `id(args)` free function calls.
func Funcs() eval.Registry {
	return eval.Registry{
		"json":   jsonCallFn,
		"length": lengthCallFn,
		"type":   typeCallFn,
		"diff":   diffFn,
		"min":    mathCallFn(minFn),
		"max":    mathCallFn(maxFn),
		"abs":    absCallFn,
	}
}
