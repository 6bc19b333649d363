package disk

import (
	"crypto/rand"
	stderrors "errors"
	"io"
	"io/fs"
	"sync"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/typedisk/pkg/config"
	"github.com/arthur-debert/typedisk/pkg/errors"
	"github.com/arthur-debert/typedisk/pkg/filesystem"
	"github.com/arthur-debert/typedisk/pkg/logging"
	"github.com/arthur-debert/typedisk/pkg/paths"
	"github.com/arthur-debert/typedisk/pkg/retry"
)

const (
	// DefaultPreserveDir is the VCS metadata directory EmptyDirectory can keep.
	DefaultPreserveDir = ".git"
	// DefaultTempSuffix ends every temporary file name.
	DefaultTempSuffix = "-tmp"

	defaultFilePerm fs.FileMode = 0o644
	defaultDirPerm  fs.FileMode = 0o755
)

// Disk performs file operations on typed paths.
type Disk struct {
	fs          filesystem.FS
	log         zerolog.Logger
	policy      retry.Policy
	preserveDir string
	tempSuffix  string

	// mu guards rand.
	mu   sync.Mutex
	rand io.Reader
}

// Option configures a Disk.
type Option func(*Disk)

// WithFS replaces the host filesystem.
func WithFS(fsys filesystem.FS) Option {
	return func(d *Disk) {
		d.fs = fsys
	}
}

// WithLogger replaces the logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(d *Disk) {
		d.log = logger
	}
}

// WithRetryPolicy sets the delete retry policy.
func WithRetryPolicy(policy retry.Policy) Option {
	return func(d *Disk) {
		d.policy = policy
	}
}

// WithRandom sets the source for temporary name suffixes. Tests pass a
// seeded source to get deterministic names.
func WithRandom(r io.Reader) Option {
	return func(d *Disk) {
		d.rand = r
	}
}

// WithPreserveDir sets the directory name EmptyDirectory keeps when asked
// to preserve VCS metadata.
func WithPreserveDir(name string) Option {
	return func(d *Disk) {
		d.preserveDir = name
	}
}

// WithTempSuffix sets the suffix of temporary file names.
func WithTempSuffix(suffix string) Option {
	return func(d *Disk) {
		d.tempSuffix = suffix
	}
}

// New creates a Disk on the host filesystem.
func New(opts ...Option) *Disk {
	d := &Disk{
		fs:          filesystem.NewOS(),
		log:         logging.GetLogger("disk"),
		policy:      retry.DefaultPolicy(),
		preserveDir: DefaultPreserveDir,
		tempSuffix:  DefaultTempSuffix,
		rand:        rand.Reader,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// NewFromConfig creates a Disk using the retry and disk sections of cfg.
// opts are applied after the configuration.
func NewFromConfig(cfg *config.Config, opts ...Option) *Disk {
	base := []Option{
		WithRetryPolicy(cfg.RetryPolicy()),
		WithPreserveDir(cfg.Disk.PreserveDir),
		WithTempSuffix(cfg.Disk.TempSuffix),
	}
	return New(append(base, opts...)...)
}

// FS returns the host filesystem the Disk operates on.
func (d *Disk) FS() filesystem.FS {
	return d.fs
}

// Policy returns the delete retry policy.
func (d *Disk) Policy() retry.Policy {
	return d.policy
}

func isNotExist(err error) bool {
	return stderrors.Is(err, fs.ErrNotExist)
}

// stat returns the entry info and whether it exists. Errors other than
// not-exist are returned.
func (d *Disk) stat(path string) (fs.FileInfo, bool, error) {
	info, err := d.fs.Stat(path)
	if err != nil {
		if isNotExist(err) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return info, true, nil
}

// requireFileKind fails with NOT_A_FILE when a directory sits at file.
func (d *Disk) requireFileKind(file paths.AbsFile) error {
	info, exists, err := d.stat(file.String())
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileAttributes, "cannot stat %s", file).
			WithDetail("path", file.String())
	}
	if exists && info.IsDir() {
		return errors.Newf(errors.ErrNotAFile, "%s is a directory", file).
			WithDetail("path", file.String())
	}
	return nil
}

// requireDirKind fails with NOT_A_DIRECTORY when a file sits at dir.
func (d *Disk) requireDirKind(dir paths.AbsDir) error {
	info, exists, err := d.stat(dir.String())
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileAttributes, "cannot stat %s", dir).
			WithDetail("path", dir.String())
	}
	if exists && !info.IsDir() {
		return errors.Newf(errors.ErrNotADirectory, "%s is a file", dir).
			WithDetail("path", dir.String())
	}
	return nil
}
