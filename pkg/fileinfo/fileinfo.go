// Package fileinfo carries source-file provenance and span information
// attached to tree nodes parsed from text formats.
package fileinfo

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync/atomic"
)

// FileFormat identifies the serialization format a document was parsed
// from or will be serialized to.
type FileFormat int

// Recognized file formats. Unknown extensions resolve to Binary.
const (
	Binary FileFormat = iota
	Text
	JSON
	YAML
	TOML
)

func (f FileFormat) String() string {
	switch f {
	case Text:
		return "text"
	case JSON:
		return "json"
	case YAML:
		return "yaml"
	case TOML:
		return "toml"
	default:
		return "binary"
	}
}

// ParseFileFormat parses a format name case-insensitively. "yml" is
// accepted as an alias for yaml. Unknown input returns Binary.
func ParseFileFormat(s string) FileFormat {
	switch strings.ToLower(strings.TrimPrefix(s, ".")) {
	case "text", "txt":
		return Text
	case "json":
		return JSON
	case "yaml", "yml":
		return YAML
	case "toml":
		return TOML
	default:
		return Binary
	}
}

// FileType distinguishes a regular file from a directory.
type FileType int

// Recognized file types.
const (
	File FileType = iota
	Dir
)

func (t FileType) String() string {
	if t == Dir {
		return "dir"
	}

	return "file"
}

// globalBasePath is the process-wide setting used to relativize absolute
// file paths. It is an atomic.Pointer rather than a bare global so
// concurrent readers (the CLI server) never observe a torn value.
var globalBasePath atomic.Pointer[string]

// SetBasePath registers the process-wide base path, normally called once
// at startup by cmd/pql from its --base-path flag.
func SetBasePath(path string) {
	globalBasePath.Store(&path)
}

// BasePath returns the currently registered base path, or "" if none has
// been set.
func BasePath() string {
	p := globalBasePath.Load()
	if p == nil {
		return ""
	}

	return *p
}

// Info records the file a document was parsed from: its absolute path,
// type, and detected format. Relative-path attributes are computed
// against the process-wide base path.
type Info struct {
	AbsPath string
	Type    FileType
	Format  FileFormat
}

// NewInfo builds an Info from an absolute path, inferring format from the
// path's extension when format is Binary and the path has a recognized
// extension.
func NewInfo(absPath string, typ FileType, format FileFormat) *Info {
	if format == Binary {
		if inferred := ParseFileFormat(filepath.Ext(absPath)); inferred != Binary {
			format = inferred
		}
	}

	return &Info{AbsPath: absPath, Type: typ, Format: format}
}

// RelPath returns AbsPath relativized against the process-wide base path,
// falling back to AbsPath when no base path is set or relativization fails.
func (fi *Info) RelPath() string {
	base := BasePath()
	if base == "" {
		return fi.AbsPath
	}

	rel, err := filepath.Rel(base, fi.AbsPath)
	if err != nil {
		return fi.AbsPath
	}

	return rel
}

// Name returns the file's base name.
func (fi *Info) Name() string { return filepath.Base(fi.AbsPath) }

// Stem returns the file's base name without its extension.
func (fi *Info) Stem() string {
	name := fi.Name()

	return strings.TrimSuffix(name, filepath.Ext(name))
}

// Ext returns the file's extension, without the leading dot.
func (fi *Info) Ext() string {
	return strings.TrimPrefix(filepath.Ext(fi.Name()), ".")
}

// Dir returns the file's containing directory, relativized against the
// base path.
func (fi *Info) Dir() string {
	base := BasePath()
	if base == "" {
		return filepath.Dir(fi.AbsPath)
	}

	rel, err := filepath.Rel(base, filepath.Dir(fi.AbsPath))
	if err != nil {
		return filepath.Dir(fi.AbsPath)
	}

	return rel
}

// DirAbs returns the file's containing directory as an absolute path.
func (fi *Info) DirAbs() string { return filepath.Dir(fi.AbsPath) }

// PathComponents splits RelPath into its path segments.
func (fi *Info) PathComponents() []string {
	return splitPath(fi.RelPath())
}

// PathComponentsAbs splits AbsPath into its path segments.
func (fi *Info) PathComponentsAbs() []string {
	return splitPath(fi.AbsPath)
}

func splitPath(p string) []string {
	clean := filepath.Clean(p)

	var parts []string

	for clean != "." && clean != string(filepath.Separator) && clean != "" {
		dir, file := filepath.Split(clean)
		parts = append([]string{file}, parts...)
		clean = filepath.Clean(dir)

		if dir == "" {
			break
		}
	}

	return parts
}

// Position is a single point in source text: byte offset plus 1-based
// line and column.
type Position struct {
	Offset int
	Line   int
	Column int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Span is a half-open [Start, End) range of source positions, attached to
// nodes and expressions parsed from text.
type Span struct {
	Start Position
	End   Position
}

func (s Span) String() string {
	return fmt.Sprintf("%s-%s", s.Start, s.End)
}
