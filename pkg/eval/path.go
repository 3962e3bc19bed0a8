package eval

import (
	"strconv"
	"strings"

	"github.com/kodegenix/pqlgo/pkg/expr"
	"github.com/kodegenix/pqlgo/pkg/fileinfo"
	"github.com/kodegenix/pqlgo/pkg/nodeset"
	"github.com/kodegenix/pqlgo/pkg/opath"
	"github.com/kodegenix/pqlgo/pkg/tree"
	"github.com/kodegenix/pqlgo/pkg/value"
)

// toAbsIndex normalizes a possibly-negative index against length: a
// negative index counts from the end; if it is still negative afterward
// it is pinned to length, which is always out of range.
func toAbsIndex(index int64, length int) int {
	if index < 0 {
		abs := int64(length) + index
		if abs >= 0 {
			return int(abs)
		}

		return length
	}

	return int(index)
}

// getChildIndexNode selects current's positional child at index — the
// array element, or the object's index-th value in insertion order — and
// adds it to out if in range. Array and Object share the same abs-index
// normalization; any other kind has no children.
func getChildIndexNode(current *tree.Node, index int64, out *nodeset.Builder) {
	switch current.Kind() {
	case value.Array, value.Object:
		children := current.Children()
		abs := toAbsIndex(index, len(children))

		if abs >= 0 && abs < len(children) {
			out.Add(children[abs])
		}
	}
}

// getChildKeyNode selects current's child under a string key: the object
// property of that name, falling back to a positional index if key parses
// as a number and no property matched (or current is an Array, which has
// no named properties at all).
func getChildKeyNode(current *tree.Node, key string, out *nodeset.Builder) {
	switch current.Kind() {
	case value.Object:
		if c, ok := current.GetChildKey(key); ok {
			out.Add(c)

			return
		}
	case value.Array:
	default:
		return
	}

	if f, err := strconv.ParseFloat(strings.TrimSpace(key), 64); err == nil {
		getChildIndexNode(current, int64(f), out)
	}
}

// getProp resolves a string key against current: an `@`-prefixed
// recognized attribute name resolves to its derived leaf, everything else
// is a plain child-key select.
func (ev *Evaluator) getProp(env Environment, key string, out *nodeset.Builder) error {
	if attr, ok := expr.ParseAttribute(key); ok {
		return getAttr(env.Current, attr, out)
	}

	getChildKeyNode(env.Current, key, out)

	return nil
}

// getAttr computes the derived leaf named by attr from current's
// metadata and appends it to out.
func getAttr(current *tree.Node, attr expr.Attr, out *nodeset.Builder) error {
	switch attr {
	case expr.AttrKey:
		out.Add(tree.NewString(current.Key()))
	case expr.AttrIndex:
		out.Add(tree.NewInt(int64(current.Index())))
	case expr.AttrLevel:
		out.Add(tree.NewInt(int64(nodeLevel(current))))
	case expr.AttrType:
		out.Add(tree.NewString(current.Kind().String()))
	case expr.AttrKind:
		out.Add(tree.NewString(kindShortName(current.Kind())))
	case expr.AttrFile, expr.AttrFilePath:
		out.Add(tree.NewString(withFileInfo(current, func(fi *fileinfo.Info) string { return fi.RelPath() })))
	case expr.AttrFileAbs, expr.AttrFilePathAbs:
		out.Add(tree.NewString(withFileInfo(current, func(fi *fileinfo.Info) string { return fi.AbsPath })))
	case expr.AttrFileType:
		out.Add(tree.NewString(withFileInfo(current, func(fi *fileinfo.Info) string { return fi.Type.String() })))
	case expr.AttrFileFormat:
		out.Add(tree.NewString(withFileInfo(current, func(fi *fileinfo.Info) string { return fi.Format.String() })))
	case expr.AttrFileName:
		out.Add(tree.NewString(withFileInfo(current, func(fi *fileinfo.Info) string { return fi.Name() })))
	case expr.AttrFileStem:
		out.Add(tree.NewString(withFileInfo(current, func(fi *fileinfo.Info) string { return fi.Stem() })))
	case expr.AttrFileExt:
		out.Add(tree.NewString(withFileInfo(current, func(fi *fileinfo.Info) string { return fi.Ext() })))
	case expr.AttrFilePathComponents:
		arr := tree.NewArray()

		if fi := current.FileInfo(); fi != nil {
			for _, c := range fi.PathComponents() {
				_ = arr.AddChild(nil, nil, tree.NewString(c))
			}
		}

		out.Add(arr)
	case expr.AttrDir:
		out.Add(tree.NewString(withFileInfo(current, func(fi *fileinfo.Info) string { return fi.Dir() })))
	case expr.AttrDirAbs:
		out.Add(tree.NewString(withFileInfo(current, func(fi *fileinfo.Info) string { return fi.DirAbs() })))
	case expr.AttrPath:
		out.Add(tree.NewString(opath.From(current).String()))
	}

	return nil
}

func nodeLevel(n *tree.Node) int {
	level := 0
	for p := n.Parent(); p != nil; p = p.Parent() {
		level++
	}

	return level
}

func kindShortName(k value.Kind) string {
	switch k {
	case value.Array, value.Object:
		return "collection"
	default:
		return "scalar"
	}
}

// withFileInfo projects n's file provenance through get, returning "" for
// a node with no attached fileinfo.Info.
func withFileInfo(n *tree.Node, get func(*fileinfo.Info) string) string {
	fi := n.FileInfo()
	if fi == nil {
		return ""
	}

	return get(fi)
}

// applyAttribute emits the derived leaf named by n.Attr for the current
// node. Unlike a plain key, an attribute is always a computed value, not
// a positional selector, so it ignores the ambient context.
func (ev *Evaluator) applyAttribute(n expr.Attribute, env Environment, out *nodeset.Builder) error {
	return getAttr(env.Current, n.Attr, out)
}

// applyProperty selects current's child under a literal key, delegating
// to the same context-sensitive string leaf that a bare string literal
// would use in Property context (including the `@attr` shortcut).
func (ev *Evaluator) applyProperty(n expr.Property, env Environment, out *nodeset.Builder) error {
	return ev.applyString(env, CtxProperty, n.ID, out)
}

// applyPropertyExpr evaluates n.Expr in Property context, so its result
// leaves are interpreted as a computed key select.
func (ev *Evaluator) applyPropertyExpr(n expr.PropertyExpr, env Environment, out *nodeset.Builder) error {
	return ev.applyTo(n.Expr, env, CtxProperty, out)
}

// applyIndex selects current's child at a literal positional index.
func (ev *Evaluator) applyIndex(n expr.Index, env Environment, out *nodeset.Builder) error {
	return ev.applyInteger(env, CtxIndex, n.Value, out)
}

// applyIndexExpr evaluates n.Expr in Index context, so its result leaves
// are interpreted as a computed positional select.
func (ev *Evaluator) applyIndexExpr(n expr.IndexExpr, env Environment, out *nodeset.Builder) error {
	return ev.applyTo(n.Expr, env, CtxIndex, out)
}

// applyPath walks n's segments from the document root, selecting each
// key or index in turn. A segment that selects nothing short-circuits
// the walk with no result, matching an ordinary failed traversal.
func (ev *Evaluator) applyPath(n expr.Path, env Environment, out *nodeset.Builder) error {
	cur := env.Root

	for _, seg := range n.Segments {
		if cur == nil {
			return nil
		}

		step := nodeset.NewBuilder()

		if seg.IsIndex {
			getChildIndexNode(cur, seg.Index, step)
		} else {
			getChildKeyNode(cur, seg.Key, step)
		}

		next, ok := step.Finalize().First()
		if !ok {
			return nil
		}

		cur = next
	}

	if cur != nil {
		out.Add(cur)
	}

	return nil
}
