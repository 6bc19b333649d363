package disk

import (
	stderrors "errors"
	"io/fs"

	"github.com/arthur-debert/typedisk/pkg/errors"
	"github.com/arthur-debert/typedisk/pkg/paths"
)

// FindUnique returns the first name in the sequence file, "file (1)", ...
// that does not exist. It creates nothing, so another writer may take the
// name before the caller does; use CreateUnique to claim it.
func (d *Disk) FindUnique(file paths.AbsFile) (paths.AbsFile, error) {
	candidate := file
	for {
		exists, err := d.fs.Exists(candidate.String())
		if err != nil {
			return paths.AbsFile{}, errors.Wrapf(err, errors.ErrFileAttributes, "cannot stat %s", candidate).
				WithDetail("path", candidate.String())
		}
		if !exists {
			return candidate, nil
		}
		candidate = candidate.NextUnique()
	}
}

// CreateUnique claims the first free name in the sequence file,
// "file (1)", ... by creating it exclusively. The returned file exists and
// is empty. Concurrent callers never receive the same name.
func (d *Disk) CreateUnique(file paths.AbsFile) (paths.AbsFile, error) {
	if err := d.CreateDirectory(file.Dir()); err != nil {
		return paths.AbsFile{}, err
	}

	candidate := file
	for {
		f, err := d.fs.CreateExclusive(candidate.String(), defaultFilePerm)
		if err == nil {
			if err := f.Close(); err != nil {
				return paths.AbsFile{}, errors.Wrapf(err, errors.ErrFileWrite, "failed to close %s", candidate).
					WithDetail("path", candidate.String())
			}
			d.log.Debug().Str("path", candidate.String()).Msg("Created unique file")
			return candidate, nil
		}
		if !stderrors.Is(err, fs.ErrExist) {
			return paths.AbsFile{}, errors.Wrapf(err, errors.ErrFileWrite, "failed to create %s", candidate).
				WithDetail("path", candidate.String())
		}
		candidate = candidate.NextUnique()
	}
}
