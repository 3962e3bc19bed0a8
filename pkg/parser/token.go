// Package parser turns PQL source text into an pkg/expr.Expr tree: a
// hand-written lexer followed by a recursive-descent, precedence-climbing
// parser.
package parser

import "github.com/kodegenix/pqlgo/pkg/fileinfo"

// tokenKind enumerates every lexical category the lexer produces.
type tokenKind int

const (
	tokEOF tokenKind = iota

	tokInt
	tokFloat
	tokString
	tokTrue
	tokFalse
	tokNull
	tokIdent // env name, property name, or a call identifier

	tokDollar    // $
	tokVar       // $name
	tokVarExpr   // ${
	tokAt        // @
	tokAttr      // @word
	tokCaret     // ^
	tokAncestors // ^**
	tokDotStar   // .*
	tokDescendants
	tokDot
	tokDotDot

	tokLBracket
	tokRBracket
	tokLParen
	tokRParen
	tokLBrace
	tokRBrace
	tokComma
	tokColon

	tokPlus
	tokMinus
	tokStar
	tokSlash

	tokBang
	tokAnd
	tokOr

	tokEqEq
	tokNe
	tokLt
	tokLe
	tokGt
	tokGe
	tokStartsWith
	tokEndsWith
	tokContains
)

// token is one lexical unit, with its source span and any decoded value.
type token struct {
	kind tokenKind
	text string
	ival int64
	fval float64
	span fileinfo.Span
}
