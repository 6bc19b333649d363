package filesystem

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/afero"
)

const maxAsideAttempts = 16

// aferoFS implements FS on top of an afero.Fs.
type aferoFS struct {
	fs afero.Fs
}

// NewAfero wraps any afero filesystem.
func NewAfero(fs afero.Fs) FS {
	return &aferoFS{fs: fs}
}

// NewOS returns the host filesystem.
func NewOS() FS {
	return NewAfero(afero.NewOsFs())
}

// NewMemory returns an empty in-memory filesystem.
func NewMemory() FS {
	return NewAfero(afero.NewMemMapFs())
}

func (a *aferoFS) Stat(name string) (fs.FileInfo, error) {
	return a.fs.Stat(name)
}

func (a *aferoFS) Exists(name string) (bool, error) {
	return afero.Exists(a.fs, name)
}

func (a *aferoFS) ReadDir(name string) ([]fs.FileInfo, error) {
	return afero.ReadDir(a.fs, name)
}

func (a *aferoFS) Walk(root string, fn filepath.WalkFunc) error {
	return afero.Walk(a.fs, root, fn)
}

func (a *aferoFS) MkdirAll(path string, perm fs.FileMode) error {
	return a.fs.MkdirAll(path, perm)
}

func (a *aferoFS) Open(name string) (File, error) {
	return a.fs.Open(name)
}

func (a *aferoFS) CreateExclusive(name string, perm fs.FileMode) (File, error) {
	return a.fs.OpenFile(name, os.O_RDWR|os.O_CREATE|os.O_EXCL, perm)
}

func (a *aferoFS) Remove(name string) error {
	return a.fs.Remove(name)
}

func (a *aferoFS) RemoveAll(path string) error {
	return a.fs.RemoveAll(path)
}

func (a *aferoFS) Rename(oldpath, newpath string) error {
	err := a.fs.Rename(oldpath, newpath)
	if err == nil || !errors.Is(err, fs.ErrExist) {
		return err
	}

	// The host refused to replace newpath. Park it next to itself and put
	// it back if the second rename fails too.
	info, statErr := a.fs.Stat(newpath)
	if statErr != nil || info.IsDir() {
		return err
	}
	aside, asideErr := a.asideName(newpath)
	if asideErr != nil {
		return err
	}
	if parkErr := a.fs.Rename(newpath, aside); parkErr != nil {
		return err
	}
	if err := a.fs.Rename(oldpath, newpath); err != nil {
		if restoreErr := a.fs.Rename(aside, newpath); restoreErr != nil {
			return errors.Join(err, restoreErr)
		}
		return err
	}
	_ = a.fs.Remove(aside)
	return nil
}

// asideName picks a free sibling name for a file being replaced.
func (a *aferoFS) asideName(path string) (string, error) {
	for i := 0; i < maxAsideAttempts; i++ {
		candidate := fmt.Sprintf("%s.%d.old", path, i)
		exists, err := afero.Exists(a.fs, candidate)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
	}
	return "", &fs.PathError{Op: "rename", Path: path, Err: fs.ErrExist}
}

func (a *aferoFS) CopyFile(src, dst string) (err error) {
	in, err := a.fs.Open(src)
	if err != nil {
		return err
	}
	defer func() { _ = in.Close() }()

	info, err := in.Stat()
	if err != nil {
		return err
	}
	if info.IsDir() {
		return &fs.PathError{Op: "copy", Path: src, Err: errors.New("is a directory")}
	}
	if dstInfo, statErr := a.fs.Stat(dst); statErr == nil && os.SameFile(info, dstInfo) {
		return &fs.PathError{Op: "copy", Path: dst, Err: ErrSameFile}
	}

	out, err := a.fs.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := out.Close(); err == nil {
			err = closeErr
		}
	}()

	if _, err = io.Copy(out, in); err != nil {
		return err
	}
	// An existing dst keeps its old bits through O_TRUNC.
	return a.fs.Chmod(dst, info.Mode().Perm())
}

func (a *aferoFS) Attributes(name string) (Attributes, error) {
	info, err := a.fs.Stat(name)
	if err != nil {
		return AttrNormal, err
	}
	return attributesFromMode(info.Mode()), nil
}

func (a *aferoFS) SetAttributes(name string, attrs Attributes) error {
	info, err := a.fs.Stat(name)
	if err != nil {
		return err
	}
	mode := modeForAttributes(info.Mode(), attrs)
	if mode == info.Mode().Perm() {
		return nil
	}
	return a.fs.Chmod(name, mode)
}

func (a *aferoFS) Chmod(name string, mode fs.FileMode) error {
	return a.fs.Chmod(name, mode)
}

func (a *aferoFS) Chtimes(name string, atime, mtime time.Time) error {
	return a.fs.Chtimes(name, atime, mtime)
}
