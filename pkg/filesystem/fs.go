package filesystem

import (
	"errors"
	"io/fs"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/afero"
)

// File is an open file handle.
type File = afero.File

// FS is the host filesystem boundary.
type FS interface {
	Stat(name string) (fs.FileInfo, error)
	Exists(name string) (bool, error)
	ReadDir(name string) ([]fs.FileInfo, error)
	Walk(root string, fn filepath.WalkFunc) error
	MkdirAll(path string, perm fs.FileMode) error

	Open(name string) (File, error)
	// CreateExclusive creates name and fails with an error matching
	// fs.ErrExist if anything already exists there.
	CreateExclusive(name string, perm fs.FileMode) (File, error)

	Remove(name string) error
	RemoveAll(path string) error
	// Rename moves oldpath to newpath, replacing an existing file.
	Rename(oldpath, newpath string) error
	// CopyFile copies content and permission bits, overwriting dst.
	CopyFile(src, dst string) error

	Attributes(name string) (Attributes, error)
	SetAttributes(name string, attrs Attributes) error
	Chmod(name string, mode fs.FileMode) error
	Chtimes(name string, atime, mtime time.Time) error
}

// ErrSameFile is returned when a copy's source and destination are the
// same file.
var ErrSameFile = errors.New("source and destination are the same file")

// Attributes is the portable subset of file attributes typedisk manages.
type Attributes uint32

const (
	AttrNormal   Attributes = 0
	AttrReadOnly Attributes = 1 << 0
	// AttrEncrypted is never reported by POSIX hosts.
	AttrEncrypted Attributes = 1 << 1
)

// Has reports whether every bit of flag is set.
func (a Attributes) Has(flag Attributes) bool {
	return flag != 0 && a&flag == flag
}

// IsNormal reports whether no attribute is set.
func (a Attributes) IsNormal() bool {
	return a == AttrNormal
}

func (a Attributes) String() string {
	if a == AttrNormal {
		return "normal"
	}
	var parts []string
	if a.Has(AttrReadOnly) {
		parts = append(parts, "readonly")
	}
	if a.Has(AttrEncrypted) {
		parts = append(parts, "encrypted")
	}
	return strings.Join(parts, "|")
}

// Permission bits used to map attributes onto POSIX modes.
const (
	ownerWrite   fs.FileMode = 0o200
	ownerAllDir  fs.FileMode = 0o700
	allWriteBits fs.FileMode = 0o222
)

// attributesFromMode maps permission bits to Attributes. A file is read-only
// when its owner cannot write it.
func attributesFromMode(mode fs.FileMode) Attributes {
	if mode.Perm()&ownerWrite == 0 {
		return AttrReadOnly
	}
	return AttrNormal
}

// modeForAttributes returns the permission bits that realise attrs on an
// entry currently holding mode.
func modeForAttributes(mode fs.FileMode, attrs Attributes) fs.FileMode {
	perm := mode.Perm()
	if attrs.Has(AttrReadOnly) {
		return perm &^ allWriteBits
	}
	if mode.IsDir() {
		return perm | ownerAllDir
	}
	return perm | ownerWrite
}
