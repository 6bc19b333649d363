package testutil

import (
	"io/fs"
	"path/filepath"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/arthur-debert/typedisk/pkg/filesystem"
)

// MockFS implements filesystem.FS with testify expectations.
type MockFS struct {
	mock.Mock
}

var _ filesystem.FS = (*MockFS)(nil)

func (m *MockFS) Stat(name string) (fs.FileInfo, error) {
	args := m.Called(name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(fs.FileInfo), args.Error(1)
}

func (m *MockFS) Exists(name string) (bool, error) {
	args := m.Called(name)
	return args.Bool(0), args.Error(1)
}

func (m *MockFS) ReadDir(name string) ([]fs.FileInfo, error) {
	args := m.Called(name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]fs.FileInfo), args.Error(1)
}

func (m *MockFS) Walk(root string, fn filepath.WalkFunc) error {
	args := m.Called(root, fn)
	return args.Error(0)
}

func (m *MockFS) MkdirAll(path string, perm fs.FileMode) error {
	args := m.Called(path, perm)
	return args.Error(0)
}

func (m *MockFS) Open(name string) (filesystem.File, error) {
	args := m.Called(name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(filesystem.File), args.Error(1)
}

func (m *MockFS) CreateExclusive(name string, perm fs.FileMode) (filesystem.File, error) {
	args := m.Called(name, perm)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(filesystem.File), args.Error(1)
}

func (m *MockFS) Remove(name string) error {
	args := m.Called(name)
	return args.Error(0)
}

func (m *MockFS) RemoveAll(path string) error {
	args := m.Called(path)
	return args.Error(0)
}

func (m *MockFS) Rename(oldpath, newpath string) error {
	args := m.Called(oldpath, newpath)
	return args.Error(0)
}

func (m *MockFS) CopyFile(src, dst string) error {
	args := m.Called(src, dst)
	return args.Error(0)
}

func (m *MockFS) Attributes(name string) (filesystem.Attributes, error) {
	args := m.Called(name)
	return args.Get(0).(filesystem.Attributes), args.Error(1)
}

func (m *MockFS) SetAttributes(name string, attrs filesystem.Attributes) error {
	args := m.Called(name, attrs)
	return args.Error(0)
}

func (m *MockFS) Chmod(name string, mode fs.FileMode) error {
	args := m.Called(name, mode)
	return args.Error(0)
}

func (m *MockFS) Chtimes(name string, atime, mtime time.Time) error {
	args := m.Called(name, atime, mtime)
	return args.Error(0)
}

// FileInfo is a minimal fs.FileInfo for mock returns.
type FileInfo struct {
	FileName    string
	FileMode    fs.FileMode
	FileSize    int64
	FileModTime time.Time
}

func (i FileInfo) Name() string       { return i.FileName }
func (i FileInfo) Size() int64        { return i.FileSize }
func (i FileInfo) Mode() fs.FileMode  { return i.FileMode }
func (i FileInfo) ModTime() time.Time { return i.FileModTime }
func (i FileInfo) IsDir() bool        { return i.FileMode.IsDir() }
func (i FileInfo) Sys() interface{}   { return nil }
