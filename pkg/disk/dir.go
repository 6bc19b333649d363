package disk

import (
	"io/fs"
	"path/filepath"

	"github.com/arthur-debert/typedisk/pkg/errors"
	"github.com/arthur-debert/typedisk/pkg/paths"
)

// CreateDirectory creates dir and any missing parents. An existing
// directory is left alone.
func (d *Disk) CreateDirectory(dir paths.AbsDir) error {
	if err := d.fs.MkdirAll(dir.String(), defaultDirPerm); err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate, "failed to create directory %s", dir).
			WithDetail("path", dir.String())
	}
	return nil
}

// DirExists reports whether a directory exists at dir.
func (d *Disk) DirExists(dir paths.AbsDir) (bool, error) {
	info, exists, err := d.stat(dir.String())
	if err != nil {
		return false, errors.Wrapf(err, errors.ErrFileAttributes, "cannot stat %s", dir).
			WithDetail("path", dir.String())
	}
	return exists && info.IsDir(), nil
}

// EmptyDirectory deletes everything inside dir and keeps dir itself. A
// missing dir is created. With preserveVCS the configured metadata
// directory (".git" by default) and everything below it survive.
func (d *Disk) EmptyDirectory(dir paths.AbsDir, preserveVCS bool) error {
	if err := d.requireDirKind(dir); err != nil {
		return err
	}
	exists, err := d.DirExists(dir)
	if err != nil {
		return err
	}
	if !exists {
		return d.CreateDirectory(dir)
	}

	preserved := func(path string, info fs.FileInfo) bool {
		if !preserveVCS || !info.IsDir() {
			return false
		}
		sub, err := paths.NewAbsDirMode(path, dir.Mode())
		return err == nil && sub.EndsWith(d.preserveDir)
	}

	// Files first, so read-only files are cleared one by one.
	err = d.fs.Walk(dir.String(), func(path string, info fs.FileInfo, err error) error {
		if err != nil {
			if isNotExist(err) {
				return nil
			}
			return err
		}
		if path == dir.String() {
			return nil
		}
		if info.IsDir() {
			if preserved(path, info) {
				return filepath.SkipDir
			}
			return d.clearDirAttributes(path)
		}
		if info.Mode()&fs.ModeSymlink != 0 {
			if err := d.fs.Remove(path); err != nil && !isNotExist(err) {
				return err
			}
			return nil
		}
		file, err := paths.NewAbsFileMode(path, dir.Mode())
		if err != nil {
			return err
		}
		return d.DeleteFile(file)
	})
	if err != nil {
		return errors.Wrapf(err, errors.ErrDirDelete, "failed to empty %s", dir).
			WithDetail("path", dir.String())
	}

	entries, err := d.fs.ReadDir(dir.String())
	if err != nil {
		return errors.Wrapf(err, errors.ErrDirList, "cannot list %s", dir).
			WithDetail("path", dir.String())
	}
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		path := filepath.Join(dir.String(), entry.Name())
		if preserved(path, entry) {
			continue
		}
		if err := d.forceDelete(path); err != nil {
			return errors.Wrapf(err, errors.ErrDirDelete, "failed to delete %s", path).
				WithDetail("path", path)
		}
	}
	return nil
}

// DeleteEmptyDir removes dir, which must be empty. A missing dir is not an
// error.
func (d *Disk) DeleteEmptyDir(dir paths.AbsDir) error {
	if err := d.requireDirKind(dir); err != nil {
		return err
	}
	if err := d.fs.Remove(dir.String()); err != nil && !isNotExist(err) {
		return errors.Wrapf(err, errors.ErrDirDelete, "failed to delete %s", dir).
			WithDetail("path", dir.String())
	}
	return nil
}

// MoveDir renames src to dst. dst must not exist.
func (d *Disk) MoveDir(src, dst paths.AbsDir) error {
	exists, err := d.DirExists(src)
	if err != nil {
		return err
	}
	if !exists {
		if err := d.requireDirKind(src); err != nil {
			return err
		}
		return errors.Newf(errors.ErrNotFound, "%s does not exist", src).WithDetail("path", src.String())
	}
	if err := d.requireAbsent(dst); err != nil {
		return err
	}
	if parent, ok := dst.Parent(); ok {
		if err := d.CreateDirectory(parent); err != nil {
			return err
		}
	}
	if err := d.fs.Rename(src.String(), dst.String()); err != nil {
		return errors.Wrapf(err, errors.ErrFileMove, "failed to move %s to %s", src, dst).
			WithDetails(map[string]interface{}{"src": src.String(), "dst": dst.String()})
	}
	return nil
}
