package paths

import (
	"path/filepath"
	"strings"

	"github.com/arthur-debert/typedisk/pkg/errors"
)

// AbsPath is a canonical absolute path. It is implemented only by AbsFile and
// AbsDir.
type AbsPath interface {
	String() string
	Mode() CaseMode
	Name() string
	Parent() (AbsDir, bool)
	isAbs()
}

// abs is the shared core of AbsFile and AbsDir.
type abs struct {
	path string
	mode CaseMode
}

func (a abs) String() string { return a.path }

// Mode returns the comparison mode the value was constructed with.
func (a abs) Mode() CaseMode { return a.mode }

func (a abs) isAbs() {}

// IsZero reports whether the value was never constructed.
func (a abs) IsZero() bool { return a.path == "" }

// Name returns the last path element. The name of a root is its full path.
func (a abs) Name() string {
	if isRoot(a.path) {
		return a.path
	}
	return Name(a.path)
}

func (a abs) NameWithoutExtension() string {
	return NameWithoutExtension(a.Name())
}

func (a abs) Extension() string {
	return Extension(a.Name())
}

// EndsWith reports whether the last path element equals name.
func (a abs) EndsWith(name string) bool {
	return a.mode.equal(a.Name(), name)
}

// StartsWith reports whether dir is this path or one of its ancestors.
func (a abs) StartsWith(dir AbsDir) bool {
	return a.mode.hasPathPrefix(a.path, dir.path)
}

// Parent returns the containing directory. It returns false for a root.
func (a abs) Parent() (AbsDir, bool) {
	if isRoot(a.path) {
		return AbsDir{}, false
	}
	return AbsDir{abs{path: filepath.Dir(a.path), mode: a.mode}}, true
}

func (a abs) compare(b abs) int {
	return strings.Compare(a.mode.fold(a.path), a.mode.fold(b.path))
}

// AbsFile is an absolute path intended to denote a file.
type AbsFile struct{ abs }

// AbsDir is an absolute path intended to denote a directory.
type AbsDir struct{ abs }

// canonicalize runs the construction contract shared by both kinds and
// returns the canonical string.
func canonicalize(s string, mode CaseMode) (string, error) {
	if s == "" {
		return "", errors.New(errors.ErrInvalidPath, "path is empty")
	}
	if strings.ContainsRune(s, 0) {
		return "", errors.New(errors.ErrInvalidPath, "path contains null bytes").
			WithDetail("input", s)
	}

	normalized := trimTrailingSeparator(Normalize(s))
	canonical, err := filepath.Abs(normalized)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrInvalidPath, "cannot canonicalize %q", s).
			WithDetail("input", s)
	}
	if !mode.equal(canonical, normalized) {
		return "", errors.Newf(errors.ErrInvalidPath, "%q is not a canonical absolute path", s).
			WithDetail("input", s).
			WithDetail("canonical", canonical)
	}
	return canonical, nil
}

// NewAbsFile constructs an AbsFile using HostCaseMode.
func NewAbsFile(s string) (AbsFile, error) {
	return NewAbsFileMode(s, HostCaseMode)
}

// NewAbsFileMode constructs an AbsFile. The input must already be canonical:
// a relative path or one containing . or .. segments is rejected rather than
// repaired.
func NewAbsFileMode(s string, mode CaseMode) (AbsFile, error) {
	canonical, err := canonicalize(s, mode)
	if err != nil {
		return AbsFile{}, err
	}
	if isRoot(canonical) {
		return AbsFile{}, errors.Newf(errors.ErrInvalidPath, "%q is a root and cannot name a file", s).
			WithDetail("input", s)
	}
	return AbsFile{abs{path: canonical, mode: mode}}, nil
}

// MustAbsFile is NewAbsFile for constants. It panics on error.
func MustAbsFile(s string) AbsFile {
	f, err := NewAbsFile(s)
	if err != nil {
		panic(err)
	}
	return f
}

// NewAbsDir constructs an AbsDir using HostCaseMode.
func NewAbsDir(s string) (AbsDir, error) {
	return NewAbsDirMode(s, HostCaseMode)
}

// NewAbsDirMode constructs an AbsDir under the same rules as NewAbsFileMode.
func NewAbsDirMode(s string, mode CaseMode) (AbsDir, error) {
	canonical, err := canonicalize(s, mode)
	if err != nil {
		return AbsDir{}, err
	}
	return AbsDir{abs{path: canonical, mode: mode}}, nil
}

// MustAbsDir is NewAbsDir for constants. It panics on error.
func MustAbsDir(s string) AbsDir {
	d, err := NewAbsDir(s)
	if err != nil {
		panic(err)
	}
	return d
}

// Equal compares canonical strings using the receiver's CaseMode.
func (f AbsFile) Equal(other AbsFile) bool {
	return f.mode.equal(f.path, other.path)
}

// Compare orders files by canonical string, case-folded when insensitive.
func (f AbsFile) Compare(other AbsFile) int {
	return f.compare(other.abs)
}

// Dir returns the directory containing the file.
func (f AbsFile) Dir() AbsDir {
	return AbsDir{abs{path: filepath.Dir(f.path), mode: f.mode}}
}

// AppendSuffix adds text to the end of the path without a separator.
func (f AbsFile) AppendSuffix(text string) (AbsFile, error) {
	if strings.ContainsAny(text, `/\`) {
		return AbsFile{}, errors.Newf(errors.ErrInvalidPath, "suffix %q contains a separator", text)
	}
	return NewAbsFileMode(f.path+text, f.mode)
}

// WithExtension replaces the extension. The leading dot is optional and an
// empty extension removes it.
func (f AbsFile) WithExtension(ext string) (AbsFile, error) {
	if ext != "" {
		ext = "." + strings.TrimLeft(ext, ".")
	}
	return f.Dir().CombineFile(f.NameWithoutExtension() + ext)
}

// ReplaceEnd swaps a known trailing part of the path for another.
func (f AbsFile) ReplaceEnd(expectedEnd, newEnd string) (AbsFile, error) {
	if !f.mode.hasSuffix(f.path, expectedEnd) {
		return AbsFile{}, errors.Newf(errors.ErrInvalidInput, "path does not end in %q", expectedEnd).
			WithDetail("path", f.path)
	}
	return NewAbsFileMode(f.path[:len(f.path)-len(expectedEnd)]+newEnd, f.mode)
}

// Equal compares canonical strings using the receiver's CaseMode.
func (d AbsDir) Equal(other AbsDir) bool {
	return d.mode.equal(d.path, other.path)
}

// Compare orders directories by canonical string.
func (d AbsDir) Compare(other AbsDir) int {
	return d.compare(other.abs)
}

// CombineFile joins parts below the directory. Parts may use either
// separator; surrounding separators are trimmed but a leading one is an
// INVALID_PATH usage error.
func (d AbsDir) CombineFile(parts ...string) (AbsFile, error) {
	joined, err := d.combine(parts)
	if err != nil {
		return AbsFile{}, err
	}
	return NewAbsFileMode(joined, d.mode)
}

// CombineDir joins parts below the directory, see CombineFile.
func (d AbsDir) CombineDir(parts ...string) (AbsDir, error) {
	joined, err := d.combine(parts)
	if err != nil {
		return AbsDir{}, err
	}
	return NewAbsDirMode(joined, d.mode)
}

// CombineRelative accepts either an absolute path, which is constructed as
// is, or a relative one, which is combined below the directory.
func (d AbsDir) CombineRelative(relOrAbs string) (AbsDir, error) {
	normalized := Normalize(relOrAbs)
	if filepath.IsAbs(normalized) {
		return NewAbsDirMode(trimTrailingSeparator(normalized), d.mode)
	}
	return d.CombineDir(normalized)
}

func (d AbsDir) combine(parts []string) (string, error) {
	joined := d.path
	for _, part := range parts {
		trimmed, ok := trimPart(part)
		if !ok {
			return "", errors.Newf(errors.ErrInvalidPath, "path part %q starts with a separator", part).
				WithDetail("base", d.path)
		}
		if trimmed == "" {
			continue
		}
		joined = filepath.Join(joined, trimmed)
	}
	return joined, nil
}
