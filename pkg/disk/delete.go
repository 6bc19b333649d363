package disk

import (
	"context"
	"io/fs"
	"path/filepath"
	"syscall"
	"time"

	"github.com/arthur-debert/typedisk/pkg/errors"
	"github.com/arthur-debert/typedisk/pkg/filesystem"
	"github.com/arthur-debert/typedisk/pkg/logging"
	"github.com/arthur-debert/typedisk/pkg/paths"
	"github.com/arthur-debert/typedisk/pkg/retry"
)

// DeleteDir recursively deletes dir, retrying on transient failures such
// as a locked or busy entry. See DeleteDirContext.
func (d *Disk) DeleteDir(dir paths.AbsDir) error {
	return d.DeleteDirContext(context.Background(), dir)
}

// DeleteDirContext recursively deletes dir. Transient failures are retried
// with exponential backoff until dir is gone. With the default policy there
// is no bound; cancel ctx or configure max_attempts / max_elapsed to give
// up, in which case the error has code TRANSIENT_IO and wraps the last
// failure. A missing dir is not an error.
func (d *Disk) DeleteDirContext(ctx context.Context, dir paths.AbsDir) error {
	if err := d.requireDirKind(dir); err != nil {
		return err
	}

	done := logging.LogOperationStart(d.log, "delete_dir")
	defer done()

	executor := retry.NewExecutor(d.policy, retry.IOClassifier{}).
		WithOnRetry(func(attempt int, err error, delay time.Duration) {
			d.log.Warn().
				Err(err).
				Str("path", dir.String()).
				Int("attempt", attempt).
				Dur("delay", delay).
				Msg("Directory delete failed, retrying")
		})

	err := executor.Execute(ctx, func() error {
		if err := d.fs.RemoveAll(dir.String()); err != nil && !isNotExist(err) {
			return err
		}
		// A concurrent writer can repopulate dir after RemoveAll returns.
		_, exists, err := d.stat(dir.String())
		if err != nil {
			return err
		}
		if exists {
			return &fs.PathError{Op: "remove", Path: dir.String(), Err: syscall.ENOTEMPTY}
		}
		return nil
	})
	if err == nil {
		return nil
	}
	if ctx.Err() != nil || retry.IsTransient(err) {
		return errors.Wrapf(err, errors.ErrTransientIO, "gave up deleting %s", dir).
			WithDetail("path", dir.String())
	}
	return errors.Wrapf(err, errors.ErrDirDelete, "failed to delete %s", dir).
		WithDetail("path", dir.String())
}

// DeleteDirReadOnly recursively deletes dir even when entries in it are
// read-only. A plain recursive delete is tried first; if dir survives, the
// tree is walked depth first clearing attributes before each removal.
func (d *Disk) DeleteDirReadOnly(dir paths.AbsDir) error {
	if err := d.requireDirKind(dir); err != nil {
		return err
	}
	if err := d.forceDelete(dir.String()); err != nil {
		return errors.Wrapf(err, errors.ErrDirDelete, "failed to delete %s", dir).
			WithDetail("path", dir.String())
	}
	return nil
}

func (d *Disk) forceDelete(path string) error {
	if err := d.fs.RemoveAll(path); err != nil {
		d.log.Debug().Err(err).Str("path", path).Msg("Plain delete failed, clearing attributes")
	}
	_, exists, err := d.stat(path)
	if err != nil {
		return err
	}
	if !exists {
		return nil
	}
	return d.forceDeleteTree(path)
}

func (d *Disk) forceDeleteTree(path string) error {
	if err := d.clearDirAttributes(path); err != nil {
		return err
	}

	entries, err := d.fs.ReadDir(path)
	if err != nil {
		if isNotExist(err) {
			return nil
		}
		return err
	}

	for _, entry := range entries {
		child := filepath.Join(path, entry.Name())
		if entry.IsDir() {
			if err := d.forceDeleteTree(child); err != nil {
				return err
			}
			continue
		}
		// Attributes of a link would be those of its target.
		if entry.Mode()&fs.ModeSymlink == 0 {
			attrs, err := d.fs.Attributes(child)
			if err == nil && attrs.Has(filesystem.AttrReadOnly) {
				err = d.fs.SetAttributes(child, filesystem.AttrNormal)
			}
			if err != nil && !isNotExist(err) {
				return err
			}
		}
		if err := d.fs.Remove(child); err != nil && !isNotExist(err) {
			return err
		}
	}

	if err := d.fs.Remove(path); err != nil && !isNotExist(err) {
		return err
	}
	return nil
}

// clearDirAttributes resets a directory with non-normal attributes so its
// entries can be removed.
func (d *Disk) clearDirAttributes(path string) error {
	attrs, err := d.fs.Attributes(path)
	if err != nil {
		if isNotExist(err) {
			return nil
		}
		return err
	}
	if attrs.IsNormal() {
		return nil
	}
	if err := d.fs.SetAttributes(path, filesystem.AttrNormal); err != nil && !isNotExist(err) {
		return err
	}
	return nil
}
