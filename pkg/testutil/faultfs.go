package testutil

import (
	"io/fs"
	"sync"
	"syscall"

	"github.com/arthur-debert/typedisk/pkg/filesystem"
)

// Operations FaultFS can fail.
const (
	OpRemove          = "Remove"
	OpRemoveAll       = "RemoveAll"
	OpRename          = "Rename"
	OpCreateExclusive = "CreateExclusive"
	OpCopyFile        = "CopyFile"
	OpReadDir         = "ReadDir"
)

// Always makes a fault permanent.
const Always = -1

// FaultFS wraps a filesystem.FS and makes selected operations fail. Calls
// that are not failed pass through to the wrapped filesystem.
type FaultFS struct {
	filesystem.FS

	mu     sync.Mutex
	faults map[string]*fault
	calls  map[string]int
}

type fault struct {
	err       error
	remaining int
}

// NewFaultFS wraps base.
func NewFaultFS(base filesystem.FS) *FaultFS {
	return &FaultFS{
		FS:     base,
		faults: make(map[string]*fault),
		calls:  make(map[string]int),
	}
}

// Fail makes the next times calls of op return err. Use Always to fail
// every call.
func (f *FaultFS) Fail(op string, err error, times int) *FaultFS {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.faults[op] = &fault{err: err, remaining: times}
	return f
}

// Calls returns how often op was called, failed or not.
func (f *FaultFS) Calls(op string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[op]
}

func (f *FaultFS) inject(op string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[op]++
	flt, ok := f.faults[op]
	if !ok || flt.remaining == 0 {
		return nil
	}
	if flt.remaining > 0 {
		flt.remaining--
	}
	return flt.err
}

// BusyError is the error a host returns for an entry held open elsewhere.
func BusyError(op, path string) error {
	return &fs.PathError{Op: op, Path: path, Err: syscall.EBUSY}
}

// PermanentError is an error the retry classifier does not retry.
func PermanentError(op, path string) error {
	return &fs.PathError{Op: op, Path: path, Err: syscall.EINVAL}
}

func (f *FaultFS) Remove(name string) error {
	if err := f.inject(OpRemove); err != nil {
		return err
	}
	return f.FS.Remove(name)
}

func (f *FaultFS) RemoveAll(path string) error {
	if err := f.inject(OpRemoveAll); err != nil {
		return err
	}
	return f.FS.RemoveAll(path)
}

func (f *FaultFS) Rename(oldpath, newpath string) error {
	if err := f.inject(OpRename); err != nil {
		return err
	}
	return f.FS.Rename(oldpath, newpath)
}

func (f *FaultFS) CreateExclusive(name string, perm fs.FileMode) (filesystem.File, error) {
	if err := f.inject(OpCreateExclusive); err != nil {
		return nil, err
	}
	return f.FS.CreateExclusive(name, perm)
}

func (f *FaultFS) CopyFile(src, dst string) error {
	if err := f.inject(OpCopyFile); err != nil {
		return err
	}
	return f.FS.CopyFile(src, dst)
}

func (f *FaultFS) ReadDir(name string) ([]fs.FileInfo, error) {
	if err := f.inject(OpReadDir); err != nil {
		return nil, err
	}
	return f.FS.ReadDir(name)
}
