package disk

import (
	"bytes"
	"io"

	"github.com/arthur-debert/typedisk/pkg/errors"
	"github.com/arthur-debert/typedisk/pkg/filesystem"
	"github.com/arthur-debert/typedisk/pkg/paths"
)

// WriteStream atomically replaces file with whatever write produces. The
// parent directory is created when missing. If write fails, file keeps its
// previous content and no temporary file is left behind.
func (d *Disk) WriteStream(file paths.AbsFile, write func(io.Writer) error) error {
	if err := d.requireFileKind(file); err != nil {
		return err
	}
	if err := d.CreateDirectory(file.Dir()); err != nil {
		return err
	}

	tmp, f, err := d.createTmp(file)
	if err != nil {
		return err
	}
	defer func() { _ = tmp.Close() }()

	if err := write(f); err != nil {
		_ = f.Close()
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to write %s", file).
			WithDetail("path", file.String())
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to flush %s", tmp).
			WithDetail("path", file.String())
	}
	if err := f.Close(); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to close %s", tmp).
			WithDetail("path", file.String())
	}

	return d.replace(tmp.AbsFile, file)
}

// WriteAllBytes atomically replaces file with data.
func (d *Disk) WriteAllBytes(file paths.AbsFile, data []byte) error {
	return d.WriteStream(file, func(w io.Writer) error {
		_, err := io.Copy(w, bytes.NewReader(data))
		return err
	})
}

// WriteAllText atomically replaces file with text.
func (d *Disk) WriteAllText(file paths.AbsFile, text string) error {
	return d.WriteStream(file, func(w io.Writer) error {
		_, err := io.WriteString(w, text)
		return err
	})
}

// WriteAllBytesRO writes data atomically and marks the result read-only.
func (d *Disk) WriteAllBytesRO(file paths.AbsFile, data []byte) error {
	if err := d.WriteAllBytes(file, data); err != nil {
		return err
	}
	return d.SetAttributes(file, filesystem.AttrReadOnly)
}

// WriteAllTextRO writes text atomically and marks the result read-only.
func (d *Disk) WriteAllTextRO(file paths.AbsFile, text string) error {
	return d.WriteAllBytesRO(file, []byte(text))
}

// replace renames tmp over target. An existing target's permission bits
// are carried over to the new file, read-only included.
func (d *Disk) replace(tmp, target paths.AbsFile) error {
	info, exists, err := d.stat(target.String())
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileAttributes, "cannot stat %s", target).
			WithDetail("path", target.String())
	}

	if exists {
		perm := info.Mode().Perm()
		attrs, err := d.fs.Attributes(target.String())
		if err != nil {
			return errors.Wrapf(err, errors.ErrFileAttributes, "cannot read attributes of %s", target).
				WithDetail("path", target.String())
		}
		if !attrs.IsNormal() {
			if err := d.fs.SetAttributes(target.String(), filesystem.AttrNormal); err != nil {
				return errors.Wrapf(err, errors.ErrFileAttributes, "cannot clear attributes of %s", target).
					WithDetail("path", target.String())
			}
		}
		defer func() {
			if err := d.fs.Chmod(target.String(), perm); err != nil {
				d.log.Warn().Err(err).Str("path", target.String()).Msg("Failed to restore attributes")
				return
			}
			if !attrs.IsNormal() {
				d.log.Debug().
					Str("path", target.String()).
					Stringer("attributes", attrs).
					Msg("Restored attributes")
			}
		}()
	}

	if err := d.fs.Rename(tmp.String(), target.String()); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to replace %s", target).
			WithDetail("path", target.String())
	}
	d.log.Debug().Str("path", target.String()).Msg("Replaced file")
	return nil
}

// ReadAllBytes returns the content of file.
func (d *Disk) ReadAllBytes(file paths.AbsFile) ([]byte, error) {
	f, err := d.fs.Open(file.String())
	if err != nil {
		code := errors.ErrFileRead
		if isNotExist(err) {
			code = errors.ErrNotFound
		}
		return nil, errors.Wrapf(err, code, "cannot open %s", file).
			WithDetail("path", file.String())
	}
	defer func() { _ = f.Close() }()

	if info, err := f.Stat(); err == nil && info.IsDir() {
		return nil, errors.Newf(errors.ErrNotAFile, "%s is a directory", file).
			WithDetail("path", file.String())
	}

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileRead, "failed to read %s", file).
			WithDetail("path", file.String())
	}
	return data, nil
}

// ReadAllText returns the content of file as a string.
func (d *Disk) ReadAllText(file paths.AbsFile) (string, error) {
	data, err := d.ReadAllBytes(file)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
