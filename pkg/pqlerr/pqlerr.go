// Package pqlerr provides the shared diagnostic type and error kind
// taxonomy used across every pql package.
package pqlerr

import (
	"fmt"

	"github.com/kodegenix/pqlgo/pkg/fileinfo"
)

// Kind identifies a diagnostic's category and carries its numeric offset
// for external reporting.
type Kind int

// Parse error kinds (offset 400).
const (
	InvalidEscape Kind = 400 + iota
	InvalidCharacter
	InvalidToken
	UnexpectedEOF
	DuplicateObjectKey
	NumberLiteralError
)

// Expression error kinds (offset 600).
const (
	MultipleVarValues Kind = 600 + iota
	VariableNotFound
	SingleNodeExpected
	InterpolationDepthReached
	FuncCallError
)

// Tree error kinds (offset 700).
const (
	AddChildInvalidType Kind = 700 + iota
	SetChildInvalidType
	RemoveChildInvalidType
	ExtendIncompatibleTypes
	NonUTF8Node
	DeserializationErr
)

var kindNames = map[Kind]string{
	InvalidEscape:             "InvalidEscape",
	InvalidCharacter:          "InvalidCharacter",
	InvalidToken:              "InvalidToken",
	UnexpectedEOF:             "UnexpectedEOF",
	DuplicateObjectKey:        "DuplicateObjectKey",
	NumberLiteralError:        "NumberLiteralError",
	MultipleVarValues:         "MultipleVarValues",
	VariableNotFound:          "VariableNotFound",
	SingleNodeExpected:        "SingleNodeExpected",
	InterpolationDepthReached: "InterpolationDepthReached",
	FuncCallError:             "FuncCallError",
	AddChildInvalidType:       "AddChildInvalidType",
	SetChildInvalidType:       "SetChildInvalidType",
	RemoveChildInvalidType:    "RemoveChildInvalidType",
	ExtendIncompatibleTypes:   "ExtendIncompatibleTypes",
	NonUTF8Node:               "NonUTF8Node",
	DeserializationErr:        "DeserializationErr",
}

// Code returns the kind's numeric offset, as used for external reporting.
func (k Kind) Code() int { return int(k) }

// String returns the kind's symbolic name.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}

	return fmt.Sprintf("Kind(%d)", int(k))
}

// Diag is the single diagnostic type shared by the parser, evaluator, and
// tree mutation API.
type Diag struct {
	Kind    Kind
	Message string
	Span    *fileinfo.Span
	Cause   error
}

// New creates a Diag with no span or cause.
func New(kind Kind, message string) *Diag {
	return &Diag{Kind: kind, Message: message}
}

// Newf creates a Diag with a formatted message.
func Newf(kind Kind, format string, args ...any) *Diag {
	return &Diag{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap creates a Diag that wraps an underlying cause.
func Wrap(kind Kind, message string, cause error) *Diag {
	return &Diag{Kind: kind, Message: message, Cause: cause}
}

// WithSpan returns a copy of d with the given span attached.
func (d *Diag) WithSpan(span *fileinfo.Span) *Diag {
	cp := *d
	cp.Span = span

	return &cp
}

// Error implements the error interface.
func (d *Diag) Error() string {
	if d.Span != nil {
		return fmt.Sprintf("%s (%d): %s at %s", d.Kind, d.Kind.Code(), d.Message, d.Span)
	}

	return fmt.Sprintf("%s (%d): %s", d.Kind, d.Kind.Code(), d.Message)
}

// Unwrap exposes the nested cause to errors.Is/errors.As.
func (d *Diag) Unwrap() error { return d.Cause }
