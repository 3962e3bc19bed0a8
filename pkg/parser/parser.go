package parser

import (
	"github.com/kodegenix/pqlgo/pkg/expr"
	"github.com/kodegenix/pqlgo/pkg/pqlerr"
)

// Parse compiles src into an expr.Expr tree. The returned error, when
// non-nil, is always a *pqlerr.Diag carrying a source span.
func Parse(src string) (expr.Expr, error) {
	p := &parser{lex: newLexer(src)}

	if err := p.advance(); err != nil {
		return nil, err
	}

	e, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	if p.tok.kind != tokEOF {
		return nil, p.errHere(pqlerr.InvalidToken, "unexpected trailing input '"+p.tok.text+"'")
	}

	return e, nil
}

type parser struct {
	lex  *lexer
	tok  token
	prev token
}

func (p *parser) advance() error {
	p.prev = p.tok

	t, err := p.lex.next()
	if err != nil {
		return err
	}

	p.tok = t

	return nil
}

func (p *parser) errHere(kind pqlerr.Kind, msg string) error {
	span := p.tok.span

	return pqlerr.New(kind, msg).WithSpan(&span)
}

func (p *parser) expect(kind tokenKind, what string) (token, error) {
	if p.tok.kind != kind {
		if p.tok.kind == tokEOF {
			return token{}, p.errHere(pqlerr.UnexpectedEOF, "expected "+what+", found end of input")
		}

		return token{}, p.errHere(pqlerr.InvalidToken, "expected "+what+", found '"+p.tok.text+"'")
	}

	t := p.tok

	return t, p.advance()
}

// ---- precedence climbing: or > and > comparison > additive > multiplicative > unary > postfix ----

func (p *parser) parseExpr() (expr.Expr, error) {
	return p.parseOr()
}

func (p *parser) parseOr() (expr.Expr, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}

	for p.tok.kind == tokOr {
		if err := p.advance(); err != nil {
			return nil, err
		}

		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}

		left = expr.Or{X: left, Y: right}
	}

	return left, nil
}

func (p *parser) parseAnd() (expr.Expr, error) {
	left, err := p.parseComparison()
	if err != nil {
		return nil, err
	}

	for p.tok.kind == tokAnd {
		if err := p.advance(); err != nil {
			return nil, err
		}

		right, err := p.parseComparison()
		if err != nil {
			return nil, err
		}

		left = expr.And{X: left, Y: right}
	}

	return left, nil
}

func (p *parser) parseComparison() (expr.Expr, error) {
	left, err := p.parseRangeOperand()
	if err != nil {
		return nil, err
	}

	op, ok := comparisonOp(p.tok.kind)
	if !ok {
		return left, nil
	}

	if err := p.advance(); err != nil {
		return nil, err
	}

	right, err := p.parseRangeOperand()
	if err != nil {
		return nil, err
	}

	return op(left, right), nil
}

// parseRangeOperand parses an additive-precedence expression, then,
// when immediately followed by ':' or '..', completes it into a
// standalone Range (e.g. `0..5` used as a value rather than a bracket
// step) using the same NumberRange grammar parseBracketContent uses for
// `[...]`, just reachable as an ordinary operand. Unlike the bracket
// form, a leading ':' or '..' with no left operand isn't accepted here:
// an elided start only makes sense relative to a node's children, which
// a bracket step has and a bare operand doesn't.
func (p *parser) parseRangeOperand() (expr.Expr, error) {
	left, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}

	if p.tok.kind != tokColon && p.tok.kind != tokDotDot {
		return left, nil
	}

	return p.parseRangeFrom(left)
}

func comparisonOp(k tokenKind) (func(x, y expr.Expr) expr.Expr, bool) {
	switch k {
	case tokEqEq:
		return func(x, y expr.Expr) expr.Expr { return expr.Eq{X: x, Y: y} }, true
	case tokNe:
		return func(x, y expr.Expr) expr.Expr { return expr.Ne{X: x, Y: y} }, true
	case tokLt:
		return func(x, y expr.Expr) expr.Expr { return expr.Lt{X: x, Y: y} }, true
	case tokLe:
		return func(x, y expr.Expr) expr.Expr { return expr.Le{X: x, Y: y} }, true
	case tokGt:
		return func(x, y expr.Expr) expr.Expr { return expr.Gt{X: x, Y: y} }, true
	case tokGe:
		return func(x, y expr.Expr) expr.Expr { return expr.Ge{X: x, Y: y} }, true
	case tokStartsWith:
		return func(x, y expr.Expr) expr.Expr { return expr.StartsWith{X: x, Y: y} }, true
	case tokEndsWith:
		return func(x, y expr.Expr) expr.Expr { return expr.EndsWith{X: x, Y: y} }, true
	case tokContains:
		return func(x, y expr.Expr) expr.Expr { return expr.Contains{X: x, Y: y} }, true
	default:
		return nil, false
	}
}

func (p *parser) parseAdditive() (expr.Expr, error) {
	left, err := p.parseMultiplicative()
	if err != nil {
		return nil, err
	}

	for p.tok.kind == tokPlus || p.tok.kind == tokMinus {
		op := p.tok.kind

		if err := p.advance(); err != nil {
			return nil, err
		}

		right, err := p.parseMultiplicative()
		if err != nil {
			return nil, err
		}

		if op == tokPlus {
			left = expr.Add{X: left, Y: right}
		} else {
			left = expr.Sub{X: left, Y: right}
		}
	}

	return left, nil
}

func (p *parser) parseMultiplicative() (expr.Expr, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}

	for p.tok.kind == tokStar || p.tok.kind == tokSlash {
		op := p.tok.kind

		if err := p.advance(); err != nil {
			return nil, err
		}

		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}

		if op == tokStar {
			left = expr.Mul{X: left, Y: right}
		} else {
			left = expr.Div{X: left, Y: right}
		}
	}

	return left, nil
}

func (p *parser) parseUnary() (expr.Expr, error) {
	switch p.tok.kind {
	case tokMinus:
		if err := p.advance(); err != nil {
			return nil, err
		}

		x, err := p.parseUnary()
		if err != nil {
			return nil, err
		}

		return expr.Neg{X: x}, nil
	case tokBang:
		if err := p.advance(); err != nil {
			return nil, err
		}

		x, err := p.parseUnary()
		if err != nil {
			return nil, err
		}

		return expr.Not{X: x}, nil
	default:
		return p.parsePostfix()
	}
}

// parsePostfix parses a primary expression followed by zero or more
// traversal steps (.prop, .method(...), [idx], .*, .**{…}), collapsing
// more than one step into a Sequence; a single-stage chain returns the
// primary directly.
func (p *parser) parsePostfix() (expr.Expr, error) {
	primary, err := p.parseLeadingStage()
	if err != nil {
		return nil, err
	}

	var stages []expr.Expr

	for {
		stage, ok, err := p.tryParsePostfixStage()
		if err != nil {
			return nil, err
		}

		if !ok {
			break
		}

		stages = append(stages, stage)
	}

	if len(stages) == 0 {
		return primary, nil
	}

	return expr.Sequence{Stages: append([]expr.Expr{primary}, stages...)}, nil
}

// parseLeadingStage parses the chain's first element: a true primary
// (literal, $, @, ^, a call, …), or — when the source starts directly
// with a traversal token such as `.a`, `.*`, `.**`, or `[0]` — the
// corresponding step evaluated relative to the implicit current node.
func (p *parser) parseLeadingStage() (expr.Expr, error) {
	switch p.tok.kind {
	case tokDot, tokDotStar, tokDescendants, tokLBracket:
		stage, _, err := p.tryParsePostfixStage()

		return stage, err
	default:
		return p.parsePrimary()
	}
}

func (p *parser) tryParsePostfixStage() (expr.Expr, bool, error) {
	switch p.tok.kind {
	case tokDot:
		return p.parseDotStage()
	case tokDotStar:
		if err := p.advance(); err != nil {
			return nil, false, err
		}

		return expr.All{}, true, nil
	case tokDescendants:
		if err := p.advance(); err != nil {
			return nil, false, err
		}

		r, err := p.parseOptionalLevelRange()
		if err != nil {
			return nil, false, err
		}

		return expr.Descendants{Range: r}, true, nil
	case tokLBracket:
		return p.parseBracketStage()
	default:
		return nil, false, nil
	}
}

func (p *parser) parseDotStage() (expr.Expr, bool, error) {
	if err := p.advance(); err != nil { // consume '.'
		return nil, false, err
	}

	switch p.tok.kind {
	case tokIdent, tokTrue, tokFalse, tokNull, tokAnd, tokOr:
		id := p.tok.text
		if err := p.advance(); err != nil {
			return nil, false, err
		}

		if p.tok.kind == tokLParen {
			args, err := p.parseArgList()
			if err != nil {
				return nil, false, err
			}

			return expr.MethodCall{ID: id, Args: args}, true, nil
		}

		return expr.Property{ID: id}, true, nil
	default:
		return nil, false, p.errHere(pqlerr.InvalidToken, "expected a property name after '.'")
	}
}

func (p *parser) parseBracketStage() (expr.Expr, bool, error) {
	if err := p.advance(); err != nil { // consume '['
		return nil, false, err
	}

	inner, err := p.parseBracketContent()
	if err != nil {
		return nil, false, err
	}

	if _, err := p.expect(tokRBracket, "']'"); err != nil {
		return nil, false, err
	}

	return inner, true, nil
}

// parseBracketContent parses the inside of a `[...]` step: a Range with
// an elided start (a leading ':' or '..', only meaningful relative to
// current's children, so accepted here and nowhere else), or the full
// expression grammar otherwise — anything from a literal index/key
// through a filter predicate (`@.hostname != 'zeus'`, `@ > 1 and @ <
// 10`) down to a range with an explicit start (`0..2`, `1:2:5`), which
// parseRangeOperand already produces partway down that same grammar.
// The result is dispatched to Index, Property, IndexExpr, or
// PropertyExpr by bracketExprToStep.
func (p *parser) parseBracketContent() (expr.Expr, error) {
	if p.tok.kind == tokColon || p.tok.kind == tokDotDot {
		r, err := p.parseRangeFrom(nil)
		if err != nil {
			return nil, err
		}

		return bracketExprToStep(r), nil
	}

	if !p.startsExpr() {
		return nil, p.errHere(pqlerr.InvalidToken, "expected an expression inside '[...]'")
	}

	start, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	return bracketExprToStep(start), nil
}

// bracketExprToStep dispatches a bracket expression to the literal
// Index/Property form when possible, else to the computed
// IndexExpr/PropertyExpr form: an arithmetic-shaped computation or a
// Range selects by Index, anything else (strings, variables, calls,
// comparisons) selects by Property. Wrapping a Range in IndexExpr forces
// its evaluation into the selector context regardless of the ambient
// context a surrounding Sequence forwards to it — the same mechanism
// every other computed bracket step already relies on.
func bracketExprToStep(e expr.Expr) expr.Expr {
	switch v := e.(type) {
	case expr.Int:
		return expr.Index{Value: v.Value}
	case expr.Str:
		return expr.Property{ID: v.Value}
	case expr.Neg:
		if inner, ok := v.X.(expr.Int); ok {
			return expr.Index{Value: -inner.Value}
		}
	}

	if looksNumeric(e) {
		return expr.IndexExpr{Expr: e}
	}

	return expr.PropertyExpr{Expr: e}
}

func looksNumeric(e expr.Expr) bool {
	switch v := e.(type) {
	case expr.Int, expr.Float, expr.Neg, expr.Add, expr.Sub, expr.Mul, expr.Div, expr.Range:
		return true
	case expr.Attribute:
		switch v.Attr {
		case expr.AttrIndex, expr.AttrLevel:
			return true
		}

		return false
	default:
		return false
	}
}

func (p *parser) parseRangeFrom(start expr.Expr) (expr.Expr, error) {
	if p.tok.kind == tokDotDot {
		if err := p.advance(); err != nil {
			return nil, err
		}

		stop, err := p.parseOptionalAdditive()
		if err != nil {
			return nil, err
		}

		return expr.Range{NumberRange: expr.NumberRange{Start: start, Stop: stop}}, nil
	}

	if _, err := p.expect(tokColon, "':'"); err != nil {
		return nil, err
	}

	mid, err := p.parseOptionalAdditive()
	if err != nil {
		return nil, err
	}

	if p.tok.kind != tokColon {
		return expr.Range{NumberRange: expr.NumberRange{Start: start, Stop: mid}}, nil
	}

	if err := p.advance(); err != nil {
		return nil, err
	}

	stop, err := p.parseOptionalAdditive()
	if err != nil {
		return nil, err
	}

	return expr.Range{NumberRange: expr.NumberRange{Start: start, Step: mid, Stop: stop}}, nil
}

// parseOptionalAdditive parses an additive-precedence expression, or
// returns nil when the current token cannot start one (used for the
// elidable parts of a range, e.g. the `2` in `:2`).
func (p *parser) parseOptionalAdditive() (expr.Expr, error) {
	if !p.startsExpr() {
		return nil, nil
	}

	return p.parseAdditive()
}

func (p *parser) startsExpr() bool {
	switch p.tok.kind {
	case tokColon, tokDotDot, tokRBracket, tokRParen, tokRBrace, tokComma, tokEOF:
		return false
	default:
		return true
	}
}

func (p *parser) parseOptionalLevelRange() (expr.LevelRange, error) {
	if p.tok.kind != tokLBrace {
		return expr.LevelRange{}, nil
	}

	if err := p.advance(); err != nil {
		return expr.LevelRange{}, err
	}

	minExpr, err := p.parseOptionalAdditive()
	if err != nil {
		return expr.LevelRange{}, err
	}

	if _, err := p.expect(tokComma, "','"); err != nil {
		return expr.LevelRange{}, err
	}

	maxExpr, err := p.parseOptionalAdditive()
	if err != nil {
		return expr.LevelRange{}, err
	}

	if _, err := p.expect(tokRBrace, "'}'"); err != nil {
		return expr.LevelRange{}, err
	}

	return expr.LevelRange{Min: minExpr, Max: maxExpr}, nil
}

func (p *parser) parseArgList() ([]expr.Expr, error) {
	if err := p.advance(); err != nil { // consume '('
		return nil, err
	}

	var args []expr.Expr

	if p.tok.kind == tokRParen {
		if err := p.advance(); err != nil {
			return nil, err
		}

		return args, nil
	}

	for {
		a, err := p.parseExpr()
		if err != nil {
			return nil, err
		}

		args = append(args, a)

		if p.tok.kind == tokComma {
			if err := p.advance(); err != nil {
				return nil, err
			}

			continue
		}

		break
	}

	if _, err := p.expect(tokRParen, "')'"); err != nil {
		return nil, err
	}

	return args, nil
}

// parsePrimary parses a non-postfix leaf: literals, path roots, groups,
// calls, variables, and environment lookups.
func (p *parser) parsePrimary() (expr.Expr, error) {
	switch p.tok.kind {
	case tokInt:
		v := p.tok.ival

		return v2(expr.Int{Value: v}, p.advance())
	case tokFloat:
		v := p.tok.fval

		return v2(expr.Float{Value: v}, p.advance())
	case tokString:
		v := p.tok.text

		return v2(expr.Str{Value: v}, p.advance())
	case tokTrue:
		return v2(expr.Bool{Value: true}, p.advance())
	case tokFalse:
		return v2(expr.Bool{Value: false}, p.advance())
	case tokNull:
		return v2(expr.Null{}, p.advance())
	case tokDotStar:
		return v2(expr.All{}, p.advance())
	case tokStar:
		return v2(expr.All{}, p.advance())
	case tokDollar:
		return v2(expr.RootRef{}, p.advance())
	case tokVar:
		id := p.tok.text

		return v2(expr.Var{ID: id}, p.advance())
	case tokVarExpr:
		return p.parseVarExpr()
	case tokAt:
		return v2(expr.CurrentRef{}, p.advance())
	case tokAttr:
		return p.parseAttr()
	case tokCaret:
		return v2(expr.ParentRef{}, p.advance())
	case tokAncestors:
		return p.parseAncestors()
	case tokLParen:
		return p.parseGroup()
	case tokIdent:
		return p.parseIdentPrimary()
	default:
		if p.tok.kind == tokEOF {
			return nil, p.errHere(pqlerr.UnexpectedEOF, "unexpected end of input")
		}

		return nil, p.errHere(pqlerr.InvalidToken, "unexpected token '"+p.tok.text+"'")
	}
}

// v2 bundles a parsed value with the error from the token advance that
// consumed it, so one-line primary cases stay one line.
func v2(e expr.Expr, err error) (expr.Expr, error) {
	if err != nil {
		return nil, err
	}

	return e, nil
}

func (p *parser) parseVarExpr() (expr.Expr, error) {
	if err := p.advance(); err != nil { // consume '${'
		return nil, err
	}

	inner, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(tokRBrace, "'}'"); err != nil {
		return nil, err
	}

	return expr.VarExpr{Expr: inner}, nil
}

func (p *parser) parseAttr() (expr.Expr, error) {
	text := p.tok.text

	a, ok := expr.ParseAttribute(text)
	if !ok {
		return nil, p.errHere(pqlerr.InvalidToken, "unknown attribute '"+text+"'")
	}

	if err := p.advance(); err != nil {
		return nil, err
	}

	return expr.Attribute{Attr: a}, nil
}

func (p *parser) parseAncestors() (expr.Expr, error) {
	if err := p.advance(); err != nil { // consume '^**'
		return nil, err
	}

	r, err := p.parseOptionalLevelRange()
	if err != nil {
		return nil, err
	}

	return expr.Ancestors{Range: r}, nil
}

// parseGroup parses `(e1, e2, …)`: a single expression with no comma
// folds back into plain parenthesized precedence grouping, while two or
// more become a Group union.
func (p *parser) parseGroup() (expr.Expr, error) {
	if err := p.advance(); err != nil { // consume '('
		return nil, err
	}

	first, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	if p.tok.kind != tokComma {
		if _, err := p.expect(tokRParen, "')'"); err != nil {
			return nil, err
		}

		return first, nil
	}

	elems := []expr.Expr{first}

	for p.tok.kind == tokComma {
		if err := p.advance(); err != nil {
			return nil, err
		}

		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}

		elems = append(elems, e)
	}

	if _, err := p.expect(tokRParen, "')'"); err != nil {
		return nil, err
	}

	return expr.Group{Elems: elems}, nil
}

// parseIdentPrimary resolves a bare identifier: "env" starts an
// environment lookup, anything else must be a function call.
func (p *parser) parseIdentPrimary() (expr.Expr, error) {
	id := p.tok.text

	if id == "env" {
		return p.parseEnv()
	}

	if err := p.advance(); err != nil {
		return nil, err
	}

	if p.tok.kind != tokLParen {
		return nil, p.errHere(pqlerr.InvalidToken, "expected '(' after function name '"+id+"'")
	}

	args, err := p.parseArgList()
	if err != nil {
		return nil, err
	}

	return expr.FuncCall{ID: id, Args: args}, nil
}

func (p *parser) parseEnv() (expr.Expr, error) {
	if err := p.advance(); err != nil { // consume 'env'
		return nil, err
	}

	if _, err := p.expect(tokColon, "':'"); err != nil {
		return nil, err
	}

	if p.tok.kind == tokLParen {
		if err := p.advance(); err != nil {
			return nil, err
		}

		inner, err := p.parseExpr()
		if err != nil {
			return nil, err
		}

		if _, err := p.expect(tokRParen, "')'"); err != nil {
			return nil, err
		}

		return expr.EnvExpr{Expr: inner}, nil
	}

	if p.tok.kind != tokIdent {
		return nil, p.errHere(pqlerr.InvalidToken, "expected an identifier or '(' after 'env:'")
	}

	id := p.tok.text

	return expr.Env{ID: id}, p.advance()
}
