package disk

import (
	stderrors "errors"
	"io/fs"
	"strings"

	"github.com/google/uuid"

	"github.com/arthur-debert/typedisk/pkg/errors"
	"github.com/arthur-debert/typedisk/pkg/filesystem"
	"github.com/arthur-debert/typedisk/pkg/paths"
)

const (
	suffixLength = 12
	// maxTmpAttempts bounds allocation when the random source keeps
	// producing names that are taken.
	maxTmpAttempts = 64
)

// TmpFile is a temporary file next to a target, named
// <name>-<random>-tmp. Close removes it if it still exists.
type TmpFile struct {
	paths.AbsFile
	disk *Disk
}

// Close deletes the temporary file. A file already renamed away is not
// an error.
func (t *TmpFile) Close() error {
	if err := t.disk.fs.Remove(t.String()); err != nil && !isNotExist(err) {
		return errors.Wrapf(err, errors.ErrFileDelete, "failed to remove temporary file %s", t).
			WithDetail("path", t.String())
	}
	return nil
}

func (d *Disk) randomSuffix() (string, error) {
	d.mu.Lock()
	id, err := uuid.NewRandomFromReader(d.rand)
	d.mu.Unlock()
	if err != nil {
		return "", errors.Wrap(err, errors.ErrInternal, "failed to draw temporary name suffix")
	}
	return strings.ReplaceAll(id.String(), "-", "")[:suffixLength], nil
}

func (d *Disk) tmpCandidate(target paths.AbsFile) (paths.AbsFile, error) {
	suffix, err := d.randomSuffix()
	if err != nil {
		return paths.AbsFile{}, err
	}
	return target.AppendSuffix("-" + suffix + d.tempSuffix)
}

// FindTmp returns a temporary file name for target that does not exist
// yet. Nothing is created.
func (d *Disk) FindTmp(target paths.AbsFile) (*TmpFile, error) {
	for i := 0; i < maxTmpAttempts; i++ {
		candidate, err := d.tmpCandidate(target)
		if err != nil {
			return nil, err
		}
		exists, err := d.fs.Exists(candidate.String())
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrFileAttributes, "cannot stat %s", candidate)
		}
		if !exists {
			return &TmpFile{AbsFile: candidate, disk: d}, nil
		}
	}
	return nil, errors.Newf(errors.ErrAlreadyExists, "no free temporary name next to %s", target).
		WithDetail("path", target.String())
}

// createTmp allocates and exclusively creates a temporary file for target.
// The caller owns both the handle and the TmpFile.
func (d *Disk) createTmp(target paths.AbsFile) (*TmpFile, filesystem.File, error) {
	for i := 0; i < maxTmpAttempts; i++ {
		tmp, err := d.FindTmp(target)
		if err != nil {
			return nil, nil, err
		}
		f, err := d.fs.CreateExclusive(tmp.String(), defaultFilePerm)
		if err == nil {
			d.log.Debug().
				Str("target", target.String()).
				Str("tmp", tmp.String()).
				Msg("Allocated temporary file")
			return tmp, f, nil
		}
		if !stderrors.Is(err, fs.ErrExist) {
			return nil, nil, errors.Wrapf(err, errors.ErrFileWrite, "failed to create temporary file %s", tmp).
				WithDetail("path", tmp.String())
		}
		// Lost the race for this name.
	}
	return nil, nil, errors.Newf(errors.ErrAlreadyExists, "no free temporary name next to %s", target).
		WithDetail("path", target.String())
}
