package main

import (
	"errors"
	"io"
	"os"

	"github.com/kodegenix/pqlgo/pkg/eval"
	"github.com/kodegenix/pqlgo/pkg/fileinfo"
	"github.com/kodegenix/pqlgo/pkg/funcs"
	"github.com/kodegenix/pqlgo/pkg/serde"
	"github.com/kodegenix/pqlgo/pkg/tree"
)

// ErrStdinNotSupportedForFormat is returned when stdin input is read
// without an explicit --format, since there is no file extension to
// infer one from.
var ErrStdinNotSupportedForFormat = errors.New("reading from stdin requires --format")

// loadDocument reads path (or stdin, for "-") and parses it per format,
// auto-detecting from the file extension when format is unset.
func loadDocument(path string, format fileinfo.FileFormat) (*tree.Node, error) {
	root, _, err := loadDocumentWithSize(path, format)

	return root, err
}

// loadDocumentWithSize is loadDocument plus the input's raw byte size, used
// by callers that report document size in human-readable units.
func loadDocumentWithSize(path string, format fileinfo.FileFormat) (*tree.Node, int64, error) {
	if path == "-" {
		if format == fileinfo.Binary {
			return nil, 0, ErrStdinNotSupportedForFormat
		}

		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, 0, err
		}

		root, err := serde.FromBytes(format, data)

		return root, int64(len(data)), err
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, 0, err
	}

	root, err := serde.FromFile(path, format)

	return root, info.Size(), err
}

// newEvaluator returns an Evaluator wired with the built-in method and
// function registries.
func newEvaluator() *eval.Evaluator {
	return eval.NewEvaluator(funcs.Methods(), funcs.Funcs())
}
