package disk

import (
	"time"

	"github.com/arthur-debert/typedisk/pkg/errors"
	"github.com/arthur-debert/typedisk/pkg/filesystem"
	"github.com/arthur-debert/typedisk/pkg/paths"
	"github.com/arthur-debert/typedisk/pkg/retry"
)

// Exists reports whether anything exists at path.
func (d *Disk) Exists(path paths.AbsPath) (bool, error) {
	_, exists, err := d.stat(path.String())
	if err != nil {
		return false, errors.Wrapf(err, errors.ErrFileAttributes, "cannot stat %s", path.String()).
			WithDetail("path", path.String())
	}
	return exists, nil
}

// FileExists reports whether a regular file (not a directory) exists at file.
func (d *Disk) FileExists(file paths.AbsFile) (bool, error) {
	info, exists, err := d.stat(file.String())
	if err != nil {
		return false, errors.Wrapf(err, errors.ErrFileAttributes, "cannot stat %s", file).
			WithDetail("path", file.String())
	}
	return exists && !info.IsDir(), nil
}

// Attributes returns the attributes of path.
func (d *Disk) Attributes(path paths.AbsPath) (filesystem.Attributes, error) {
	attrs, err := d.fs.Attributes(path.String())
	if err != nil {
		code := errors.ErrFileAttributes
		if isNotExist(err) {
			code = errors.ErrNotFound
		}
		return filesystem.AttrNormal, errors.Wrapf(err, code, "cannot read attributes of %s", path.String()).
			WithDetail("path", path.String())
	}
	return attrs, nil
}

// SetAttributes replaces the attributes of path.
func (d *Disk) SetAttributes(path paths.AbsPath, attrs filesystem.Attributes) error {
	if err := d.fs.SetAttributes(path.String(), attrs); err != nil {
		code := errors.ErrFileAttributes
		if isNotExist(err) {
			code = errors.ErrNotFound
		}
		return errors.Wrapf(err, code, "cannot set attributes of %s", path.String()).
			WithDetail("path", path.String()).
			WithDetail("attributes", attrs.String())
	}
	return nil
}

// ClearReadOnly removes the read-only attribute from path if it is set.
func (d *Disk) ClearReadOnly(path paths.AbsPath) error {
	attrs, err := d.Attributes(path)
	if err != nil {
		return err
	}
	if !attrs.Has(filesystem.AttrReadOnly) {
		return nil
	}
	return d.SetAttributes(path, attrs&^filesystem.AttrReadOnly)
}

// DeleteFile removes file, clearing read-only first. A missing file is not
// an error. A transient failure is retried once after the policy's file
// delete delay; if that also fails the first error is returned.
func (d *Disk) DeleteFile(file paths.AbsFile) error {
	if err := d.requireFileKind(file); err != nil {
		return err
	}

	first := d.deleteFileOnce(file)
	if first == nil {
		return nil
	}
	if !retry.IsTransient(first) {
		return errors.Wrapf(first, errors.ErrFileDelete, "failed to delete %s", file).
			WithDetail("path", file.String())
	}

	d.log.Warn().
		Err(first).
		Str("path", file.String()).
		Dur("delay", d.policy.FileDeleteDelay).
		Msg("Delete failed, retrying once")
	time.Sleep(d.policy.FileDeleteDelay)

	if err := d.deleteFileOnce(file); err != nil {
		return errors.Wrapf(first, errors.ErrFileDelete, "failed to delete %s", file).
			WithDetail("path", file.String())
	}
	return nil
}

func (d *Disk) deleteFileOnce(file paths.AbsFile) error {
	attrs, err := d.fs.Attributes(file.String())
	if err != nil {
		if isNotExist(err) {
			return nil
		}
		return err
	}
	if attrs.Has(filesystem.AttrReadOnly) {
		if err := d.fs.SetAttributes(file.String(), attrs&^filesystem.AttrReadOnly); err != nil && !isNotExist(err) {
			return err
		}
	}
	if err := d.fs.Remove(file.String()); err != nil && !isNotExist(err) {
		return err
	}
	return nil
}

// MoveFile renames src to dst. dst must not exist; its parent directory is
// created when missing.
func (d *Disk) MoveFile(src, dst paths.AbsFile) error {
	info, exists, err := d.stat(src.String())
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileMove, "cannot stat %s", src).WithDetail("path", src.String())
	}
	if !exists {
		return errors.Newf(errors.ErrNotFound, "%s does not exist", src).WithDetail("path", src.String())
	}
	if info.IsDir() {
		return errors.Newf(errors.ErrNotAFile, "%s is a directory", src).WithDetail("path", src.String())
	}
	if err := d.requireAbsent(dst); err != nil {
		return err
	}
	if err := d.CreateDirectory(dst.Dir()); err != nil {
		return err
	}
	if err := d.fs.Rename(src.String(), dst.String()); err != nil {
		return errors.Wrapf(err, errors.ErrFileMove, "failed to move %s to %s", src, dst).
			WithDetails(map[string]interface{}{"src": src.String(), "dst": dst.String()})
	}
	return nil
}

// MoveToDir moves src into dir keeping its name and returns the new path.
func (d *Disk) MoveToDir(src paths.AbsFile, dir paths.AbsDir) (paths.AbsFile, error) {
	dst, err := dir.CombineFile(src.Name())
	if err != nil {
		return paths.AbsFile{}, err
	}
	if err := d.MoveFile(src, dst); err != nil {
		return paths.AbsFile{}, err
	}
	return dst, nil
}

func (d *Disk) requireAbsent(path paths.AbsPath) error {
	exists, err := d.Exists(path)
	if err != nil {
		return err
	}
	if exists {
		return errors.Newf(errors.ErrAlreadyExists, "%s already exists", path.String()).
			WithDetail("path", path.String())
	}
	return nil
}

// LastWriteTime returns the modification time of path.
func (d *Disk) LastWriteTime(path paths.AbsPath) (time.Time, error) {
	info, err := d.fs.Stat(path.String())
	if err != nil {
		code := errors.ErrFileAttributes
		if isNotExist(err) {
			code = errors.ErrNotFound
		}
		return time.Time{}, errors.Wrapf(err, code, "cannot stat %s", path.String()).
			WithDetail("path", path.String())
	}
	return info.ModTime(), nil
}

// SetLastWriteTime sets the modification time of file.
func (d *Disk) SetLastWriteTime(file paths.AbsFile, t time.Time) error {
	if err := d.fs.Chtimes(file.String(), t, t); err != nil {
		return errors.Wrapf(err, errors.ErrFileAttributes, "cannot set times of %s", file).
			WithDetail("path", file.String())
	}
	return nil
}

// CopyLastWriteTime gives file the modification time of from. Nothing is
// written when the times already match.
func (d *Disk) CopyLastWriteTime(file, from paths.AbsFile) error {
	want, err := d.LastWriteTime(from)
	if err != nil {
		return err
	}
	have, err := d.LastWriteTime(file)
	if err != nil {
		return err
	}
	if have.Equal(want) {
		return nil
	}
	return d.SetLastWriteTime(file, want)
}
