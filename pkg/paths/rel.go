package paths

import (
	"path/filepath"
	"strings"

	"github.com/arthur-debert/typedisk/pkg/errors"
)

// RelPath is a relative path. It is implemented only by RelFile and RelDir.
type RelPath interface {
	String() string
	Name() string
	isRel()
}

type rel struct {
	path string
}

func (r rel) String() string { return r.path }

func (r rel) isRel() {}

func (r rel) Name() string {
	if r.path == "" {
		return ""
	}
	return Name(r.path)
}

func (r rel) NameWithoutExtension() string { return NameWithoutExtension(r.Name()) }

func (r rel) Extension() string { return Extension(r.Name()) }

// Parent returns the containing relative directory, empty at the top.
func (r rel) Parent() RelDir {
	dir := filepath.Dir(r.path)
	if dir == "." || dir == string(separator) {
		return RelDir{}
	}
	return RelDir{rel{path: dir}}
}

// RelFile is a relative path intended to denote a file.
type RelFile struct{ rel }

// RelDir is a relative path intended to denote a directory. The empty RelDir
// denotes the base directory itself.
type RelDir struct{ rel }

func normalizeRel(s string) (string, error) {
	normalized := Normalize(s)
	if strings.HasPrefix(normalized, string(separator)) ||
		filepath.IsAbs(normalized) ||
		filepath.VolumeName(normalized) != "" {
		return "", errors.Newf(errors.ErrInvalidPath, "relative path %q is rooted", s).
			WithDetail("input", s)
	}
	if strings.ContainsRune(normalized, 0) {
		return "", errors.New(errors.ErrInvalidPath, "path contains null bytes").
			WithDetail("input", s)
	}
	return strings.TrimSuffix(normalized, string(separator)), nil
}

// NewRelFile constructs a RelFile. A rooted or empty input is INVALID_PATH.
func NewRelFile(s string) (RelFile, error) {
	normalized, err := normalizeRel(s)
	if err != nil {
		return RelFile{}, err
	}
	if normalized == "" {
		return RelFile{}, errors.New(errors.ErrInvalidPath, "relative file path is empty")
	}
	return RelFile{rel{path: normalized}}, nil
}

// MustRelFile panics on error.
func MustRelFile(s string) RelFile {
	f, err := NewRelFile(s)
	if err != nil {
		panic(err)
	}
	return f
}

// NewRelDir constructs a RelDir. A rooted input is INVALID_PATH.
func NewRelDir(s string) (RelDir, error) {
	normalized, err := normalizeRel(s)
	if err != nil {
		return RelDir{}, err
	}
	return RelDir{rel{path: normalized}}, nil
}

// MustRelDir panics on error.
func MustRelDir(s string) RelDir {
	d, err := NewRelDir(s)
	if err != nil {
		panic(err)
	}
	return d
}

func (f RelFile) Equal(other RelFile) bool { return f.path == other.path }

// AppendSuffix adds text to the end of the path without a separator.
func (f RelFile) AppendSuffix(text string) (RelFile, error) {
	if strings.ContainsAny(text, `/\`) {
		return RelFile{}, errors.Newf(errors.ErrInvalidPath, "suffix %q contains a separator", text)
	}
	return RelFile{rel{path: f.path + text}}, nil
}

func (d RelDir) Equal(other RelDir) bool { return d.path == other.path }

// IsEmpty reports whether d denotes the base directory itself.
func (d RelDir) IsEmpty() bool { return d.path == "" }

// File concatenates a relative file below d.
func (d RelDir) File(f RelFile) RelFile {
	return RelFile{rel{path: joinRel(d.path, f.path)}}
}

// Dir concatenates a relative directory below d.
func (d RelDir) Dir(other RelDir) RelDir {
	return RelDir{rel{path: joinRel(d.path, other.path)}}
}

// CombineFile joins string parts below d with the same rules as
// AbsDir.CombineFile.
func (d RelDir) CombineFile(parts ...string) (RelFile, error) {
	joined, err := d.combine(parts)
	if err != nil {
		return RelFile{}, err
	}
	if joined == "" {
		return RelFile{}, errors.New(errors.ErrInvalidPath, "relative file path is empty")
	}
	return RelFile{rel{path: joined}}, nil
}

// CombineDir joins string parts below d.
func (d RelDir) CombineDir(parts ...string) (RelDir, error) {
	joined, err := d.combine(parts)
	if err != nil {
		return RelDir{}, err
	}
	return RelDir{rel{path: joined}}, nil
}

func (d RelDir) combine(parts []string) (string, error) {
	joined := d.path
	for _, part := range parts {
		trimmed, ok := trimPart(part)
		if !ok {
			return "", errors.Newf(errors.ErrInvalidPath, "path part %q starts with a separator", part)
		}
		joined = joinRel(joined, trimmed)
	}
	return joined, nil
}

func joinRel(a, b string) string {
	switch {
	case a == "":
		return b
	case b == "":
		return a
	default:
		return a + string(separator) + b
	}
}
