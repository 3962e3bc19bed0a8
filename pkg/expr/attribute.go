package expr

// Attr is the closed set of virtual fields addressable via `@name`, each
// resolving to a derived leaf computed from the current node's metadata.
type Attr byte

// The full attribute set named in spec.md §4.1.
const (
	AttrKey Attr = iota + 1
	AttrIndex
	AttrLevel
	AttrType
	AttrKind
	AttrFile
	AttrFileAbs
	AttrFileType
	AttrFileFormat
	AttrFilePath
	AttrFilePathAbs
	AttrFileName
	AttrFileStem
	AttrFileExt
	AttrFilePathComponents
	AttrDir
	AttrDirAbs
	AttrPath
)

var attrNames = map[Attr]string{
	AttrKey:                "@key",
	AttrIndex:              "@index",
	AttrLevel:              "@level",
	AttrType:               "@type",
	AttrKind:               "@kind",
	AttrFile:               "@file",
	AttrFileAbs:            "@file_abs",
	AttrFileType:           "@file_type",
	AttrFileFormat:         "@file_format",
	AttrFilePath:           "@file_path",
	AttrFilePathAbs:        "@file_path_abs",
	AttrFileName:           "@file_name",
	AttrFileStem:           "@file_stem",
	AttrFileExt:            "@file_ext",
	AttrFilePathComponents: "@file_path_components",
	AttrDir:                "@dir",
	AttrDirAbs:             "@dir_abs",
	AttrPath:               "@path",
}

var attrByName = func() map[string]Attr {
	m := make(map[string]Attr, len(attrNames))
	for a, name := range attrNames {
		m[name] = a
	}

	return m
}()

// String renders the attribute's `@name` spelling.
func (a Attr) String() string {
	if name, ok := attrNames[a]; ok {
		return name
	}

	return "@?"
}

// ParseAttribute resolves an `@name` spelling to its Attr, reporting
// whether s is a recognized attribute.
func ParseAttribute(s string) (Attr, bool) {
	a, ok := attrByName[s]

	return a, ok
}

// Attribute emits the derived leaf named by Attr for the current node.
type Attribute struct{ Attr Attr }

func (Attribute) exprNode() {}

func (a Attribute) Equal(other Expr) bool {
	o, ok := other.(Attribute)

	return ok && o.Attr == a.Attr
}

func (a Attribute) Hash() uint64 {
	return hashCombine(hashCombine(fnvOffset, tagAttribute), uint64(a.Attr))
}

func (a Attribute) String() string { return a.Attr.String() }
