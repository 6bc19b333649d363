package disk

import (
	stderrors "errors"
	"io/fs"
	"iter"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/typedisk/pkg/errors"
	"github.com/arthur-debert/typedisk/pkg/paths"
)

// ListOption configures ListFiles and ListDirectories.
type ListOption func(*listOptions)

type listOptions struct {
	pattern   string
	recursive bool
}

// WithPattern keeps only entries whose name matches the glob pattern
// (filepath.Match syntax). The default is "*".
func WithPattern(pattern string) ListOption {
	return func(o *listOptions) {
		o.pattern = pattern
	}
}

// Recursive descends into subdirectories.
func Recursive() ListOption {
	return func(o *listOptions) {
		o.recursive = true
	}
}

func newListOptions(opts []ListOption) listOptions {
	o := listOptions{pattern: "*"}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// ListFiles lazily enumerates the files in dir. The directory is read again
// each time the sequence is ranged over. A missing dir yields nothing. Order
// is unspecified.
func (d *Disk) ListFiles(dir paths.AbsDir, opts ...ListOption) iter.Seq2[paths.AbsFile, error] {
	return list(d, dir, newListOptions(opts), false, func(path string) (paths.AbsFile, error) {
		return paths.NewAbsFileMode(path, dir.Mode())
	})
}

// ListDirectories lazily enumerates the directories in dir, excluding dir
// itself. It behaves like ListFiles otherwise.
func (d *Disk) ListDirectories(dir paths.AbsDir, opts ...ListOption) iter.Seq2[paths.AbsDir, error] {
	return list(d, dir, newListOptions(opts), true, func(path string) (paths.AbsDir, error) {
		return paths.NewAbsDirMode(path, dir.Mode())
	})
}

func list[T any](d *Disk, dir paths.AbsDir, o listOptions, dirs bool, build func(string) (T, error)) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		var zero T

		pattern := o.pattern
		if dir.Mode() == paths.CaseInsensitive {
			pattern = strings.ToLower(pattern)
		}
		if _, err := filepath.Match(pattern, ""); err != nil {
			yield(zero, errors.Wrapf(err, errors.ErrInvalidInput, "bad pattern %q", o.pattern).
				WithDetail("pattern", o.pattern))
			return
		}

		// emit reports whether enumeration should go on.
		emit := func(path string, info fs.FileInfo) bool {
			if info.IsDir() != dirs {
				return true
			}
			name := info.Name()
			if dir.Mode() == paths.CaseInsensitive {
				name = strings.ToLower(name)
			}
			if ok, _ := filepath.Match(pattern, name); !ok {
				return true
			}
			return yield(build(path))
		}
		fail := func(err error) bool {
			return yield(zero, errors.Wrapf(err, errors.ErrDirList, "cannot list %s", dir).
				WithDetail("path", dir.String()))
		}

		if !o.recursive {
			entries, err := d.fs.ReadDir(dir.String())
			if err != nil {
				if !isNotExist(err) {
					fail(err)
				}
				return
			}
			for _, entry := range entries {
				if !emit(filepath.Join(dir.String(), entry.Name()), entry) {
					return
				}
			}
			return
		}

		root := dir.String()
		err := d.fs.Walk(root, func(path string, info fs.FileInfo, err error) error {
			if err != nil {
				// Entries removed mid-walk are skipped.
				if isNotExist(err) {
					return nil
				}
				if !fail(err) {
					return filepath.SkipAll
				}
				return nil
			}
			if path == root {
				return nil
			}
			if !emit(path, info) {
				return filepath.SkipAll
			}
			return nil
		})
		if err != nil && !stderrors.Is(err, filepath.SkipAll) {
			fail(err)
		}
	}
}
