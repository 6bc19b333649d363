package disk

import (
	"io/fs"
	"os"
	"path/filepath"

	"github.com/arthur-debert/typedisk/pkg/errors"
	"github.com/arthur-debert/typedisk/pkg/filesystem"
	"github.com/arthur-debert/typedisk/pkg/paths"
)

// CopyFile copies src over dst, creating dst's parent when missing.
//
// The encrypted attribute is cleared on src first. A read-only dst is
// cleared so it can be overwritten, and a copy of a read-only src is left
// writable. The last write time of src is carried over. Copying a file
// onto itself, hard links included, fails with INVALID_INPUT.
func (d *Disk) CopyFile(src, dst paths.AbsFile) error {
	if src.Equal(dst) {
		return errors.Newf(errors.ErrInvalidInput, "cannot copy %s onto itself", src).
			WithDetail("path", src.String())
	}

	info, exists, err := d.stat(src.String())
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileCopy, "cannot stat %s", src).WithDetail("path", src.String())
	}
	if !exists {
		return errors.Newf(errors.ErrNotFound, "%s does not exist", src).WithDetail("path", src.String())
	}
	if info.IsDir() {
		return errors.Newf(errors.ErrNotAFile, "%s is a directory", src).WithDetail("path", src.String())
	}
	if dstInfo, dstExists, err := d.stat(dst.String()); err == nil && dstExists && os.SameFile(info, dstInfo) {
		return errors.Newf(errors.ErrInvalidInput, "%s and %s are the same file", src, dst).
			WithDetails(map[string]interface{}{"src": src.String(), "dst": dst.String()})
	}

	srcAttrs, err := d.Attributes(src)
	if err != nil {
		return err
	}
	if srcAttrs.Has(filesystem.AttrEncrypted) {
		if err := d.SetAttributes(src, srcAttrs&^filesystem.AttrEncrypted); err != nil {
			return err
		}
	}

	if err := d.requireFileKind(dst); err != nil {
		return err
	}
	dstExists, err := d.FileExists(dst)
	if err != nil {
		return err
	}
	if dstExists {
		if err := d.ClearReadOnly(dst); err != nil {
			return err
		}
	}

	if err := d.CreateDirectory(dst.Dir()); err != nil {
		return err
	}
	if err := d.fs.CopyFile(src.String(), dst.String()); err != nil {
		return errors.Wrapf(err, errors.ErrFileCopy, "failed to copy %s to %s", src, dst).
			WithDetails(map[string]interface{}{"src": src.String(), "dst": dst.String()})
	}

	if srcAttrs.Has(filesystem.AttrReadOnly) {
		if err := d.ClearReadOnly(dst); err != nil {
			return err
		}
	}
	// Creation time is not settable on this host family; only the last
	// write time is carried.
	return d.CopyLastWriteTime(dst, src)
}

// CopyToDir copies src into dir keeping its name and returns the copy.
func (d *Disk) CopyToDir(src paths.AbsFile, dir paths.AbsDir) (paths.AbsFile, error) {
	dst, err := dir.CombineFile(src.Name())
	if err != nil {
		return paths.AbsFile{}, err
	}
	if err := d.CopyFile(src, dst); err != nil {
		return paths.AbsFile{}, err
	}
	return dst, nil
}

// CopyDirectory copies the tree under src into dst and returns the number
// of files copied. dst may exist; files in it are overwritten.
func (d *Disk) CopyDirectory(src, dst paths.AbsDir) (int, error) {
	if err := d.requireDirKind(src); err != nil {
		return 0, err
	}
	exists, err := d.DirExists(src)
	if err != nil {
		return 0, err
	}
	if !exists {
		return 0, errors.Newf(errors.ErrNotFound, "%s does not exist", src).WithDetail("path", src.String())
	}
	if dst.StartsWith(src) {
		return 0, errors.Newf(errors.ErrInvalidInput, "cannot copy %s into itself", src).
			WithDetails(map[string]interface{}{"src": src.String(), "dst": dst.String()})
	}
	if err := d.requireDirKind(dst); err != nil {
		return 0, err
	}
	return d.copyTree(src, dst)
}

func (d *Disk) copyTree(src, dst paths.AbsDir) (int, error) {
	if err := d.CreateDirectory(dst); err != nil {
		return 0, err
	}
	entries, err := d.fs.ReadDir(src.String())
	if err != nil {
		return 0, errors.Wrapf(err, errors.ErrDirList, "cannot list %s", src).WithDetail("path", src.String())
	}

	count := 0
	for _, entry := range entries {
		if entry.Mode()&fs.ModeSymlink != 0 {
			// Links to files are copied as files. Dangling links and links
			// to directories are skipped so a cycle cannot recurse forever.
			link := filepath.Join(src.String(), entry.Name())
			target, err := d.fs.Stat(link)
			if err != nil || target.IsDir() {
				d.log.Debug().Str("path", link).Msg("Skipped link")
				continue
			}
		}

		if entry.IsDir() {
			from, err := src.CombineDir(entry.Name())
			if err != nil {
				return count, err
			}
			to, err := dst.CombineDir(entry.Name())
			if err != nil {
				return count, err
			}
			n, err := d.copyTree(from, to)
			count += n
			if err != nil {
				return count, err
			}
			continue
		}

		from, err := src.CombineFile(entry.Name())
		if err != nil {
			return count, err
		}
		to, err := dst.CombineFile(entry.Name())
		if err != nil {
			return count, err
		}
		if err := d.CopyFile(from, to); err != nil {
			return count, err
		}
		count++
	}
	return count, nil
}
