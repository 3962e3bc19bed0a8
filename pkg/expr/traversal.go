package expr

import "strings"

// All is `.*` / `*`: every child of current.
type All struct{}

func (All) exprNode() {}

func (All) Equal(other Expr) bool { _, ok := other.(All); return ok }
func (All) Hash() uint64          { return hashCombine(fnvOffset, tagAll) }
func (All) String() string        { return "*" }

// Ancestors is `^**{min,max}`: walk parents, emitting each level in range.
type Ancestors struct{ Range LevelRange }

func (Ancestors) exprNode() {}

func (a Ancestors) Equal(other Expr) bool {
	o, ok := other.(Ancestors)

	return ok && exprEqual(a.Range.Min, o.Range.Min) && exprEqual(a.Range.Max, o.Range.Max)
}

func (a Ancestors) Hash() uint64 {
	h := hashCombine(fnvOffset, tagAncestors)
	h = hashExpr(h, a.Range.Min)

	return hashExpr(h, a.Range.Max)
}

func (a Ancestors) String() string { return "^**" + levelRangeString(a.Range) }

// Descendants is `.**{min,max}`: DFS from current, emitting each level in
// range (level 0 = current).
type Descendants struct{ Range LevelRange }

func (Descendants) exprNode() {}

func (d Descendants) Equal(other Expr) bool {
	o, ok := other.(Descendants)

	return ok && exprEqual(d.Range.Min, o.Range.Min) && exprEqual(d.Range.Max, o.Range.Max)
}

func (d Descendants) Hash() uint64 {
	h := hashCombine(fnvOffset, tagDescendants)
	h = hashExpr(h, d.Range.Min)

	return hashExpr(h, d.Range.Max)
}

func (d Descendants) String() string { return ".**" + levelRangeString(d.Range) }

func levelRangeString(r LevelRange) string {
	if r.Min == nil && r.Max == nil {
		return ""
	}

	var b strings.Builder

	b.WriteByte('{')

	if r.Min != nil {
		b.WriteString(r.Min.String())
	}

	b.WriteByte(',')

	if r.Max != nil {
		b.WriteString(r.Max.String())
	}

	b.WriteByte('}')

	return b.String()
}

// Property selects the child under a literal key; if id names a known
// attribute (starts with `@`), the attribute is emitted instead.
type Property struct{ ID string }

func (Property) exprNode() {}

func (p Property) Equal(other Expr) bool {
	o, ok := other.(Property)

	return ok && o.ID == p.ID
}

func (p Property) Hash() uint64   { return hashString(hashCombine(fnvOffset, tagProperty), p.ID) }
func (p Property) String() string { return "." + p.ID }

// PropertyExpr selects a child under a computed key, evaluated in
// Property context.
type PropertyExpr struct{ Expr Expr }

func (PropertyExpr) exprNode() {}

func (p PropertyExpr) Equal(other Expr) bool {
	o, ok := other.(PropertyExpr)

	return ok && exprEqual(p.Expr, o.Expr)
}

func (p PropertyExpr) Hash() uint64 {
	return hashExpr(hashCombine(fnvOffset, tagPropertyExpr), p.Expr)
}

func (p PropertyExpr) String() string { return "[" + p.Expr.String() + "]" }

// Index selects the child at a literal array index (negative = from end).
type Index struct{ Value int64 }

func (Index) exprNode() {}

func (i Index) Equal(other Expr) bool {
	o, ok := other.(Index)

	return ok && o.Value == i.Value
}

func (i Index) Hash() uint64 {
	return hashCombine(hashCombine(fnvOffset, tagIndex), uint64(i.Value))
}

func (i Index) String() string { return "[" + Int{Value: i.Value}.String() + "]" }

// IndexExpr selects a child at a computed index, evaluated in Index
// context.
type IndexExpr struct{ Expr Expr }

func (IndexExpr) exprNode() {}

func (i IndexExpr) Equal(other Expr) bool {
	o, ok := other.(IndexExpr)

	return ok && exprEqual(i.Expr, o.Expr)
}

func (i IndexExpr) Hash() uint64 {
	return hashExpr(hashCombine(fnvOffset, tagIndexExpr), i.Expr)
}

func (i IndexExpr) String() string { return "[" + i.Expr.String() + "]" }

// Range is `a:s:b` / `a..b`: a bounded, optionally stepped index sequence.
type Range struct{ NumberRange NumberRange }

func (Range) exprNode() {}

func (r Range) Equal(other Expr) bool {
	o, ok := other.(Range)
	if !ok {
		return false
	}

	return exprEqual(r.NumberRange.Start, o.NumberRange.Start) &&
		exprEqual(r.NumberRange.Step, o.NumberRange.Step) &&
		exprEqual(r.NumberRange.Stop, o.NumberRange.Stop)
}

func (r Range) Hash() uint64 {
	h := hashCombine(fnvOffset, tagRange)
	h = hashExpr(h, r.NumberRange.Start)
	h = hashExpr(h, r.NumberRange.Step)

	return hashExpr(h, r.NumberRange.Stop)
}

func (r Range) String() string {
	var b strings.Builder

	if r.NumberRange.Start != nil {
		b.WriteString(r.NumberRange.Start.String())
	}

	b.WriteByte(':')

	if r.NumberRange.Step != nil {
		b.WriteString(r.NumberRange.Step.String())
		b.WriteByte(':')
	}

	if r.NumberRange.Stop != nil {
		b.WriteString(r.NumberRange.Stop.String())
	}

	return b.String()
}

// Path is an absolute path: a sequence of key/index segments walked from
// root.
type Path struct{ Segments []PathSegment }

func (Path) exprNode() {}

func (p Path) Equal(other Expr) bool {
	o, ok := other.(Path)
	if !ok || len(o.Segments) != len(p.Segments) {
		return false
	}

	for i, s := range p.Segments {
		if s != o.Segments[i] {
			return false
		}
	}

	return true
}

func (p Path) Hash() uint64 {
	h := hashCombine(fnvOffset, tagPath)
	h = hashCombine(h, uint64(len(p.Segments)))

	for _, s := range p.Segments {
		if s.IsIndex {
			h = hashCombine(h, uint64(s.Index))
		} else {
			h = hashString(h, s.Key)
		}
	}

	return h
}

func (p Path) String() string {
	var b strings.Builder

	b.WriteByte('$')

	for _, s := range p.Segments {
		if s.IsIndex {
			b.WriteByte('[')
			b.WriteString(Int{Value: s.Index}.String())
			b.WriteByte(']')

			continue
		}

		if isPlainKey(s.Key) {
			b.WriteByte('.')
			b.WriteString(s.Key)
		} else {
			b.WriteString("[\"")
			b.WriteString(s.Key)
			b.WriteString("\"]")
		}
	}

	return b.String()
}

// isPlainKey reports whether a key may be rendered as `.key` rather than
// `["key"]`: alphanumeric-with-underscore, not starting with a digit.
func isPlainKey(key string) bool {
	if key == "" {
		return false
	}

	for i, r := range key {
		switch {
		case r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z'):
			continue
		case r >= '0' && r <= '9':
			if i == 0 {
				return false
			}

			continue
		default:
			return false
		}
	}

	return true
}
