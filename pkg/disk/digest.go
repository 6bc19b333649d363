package disk

import (
	"crypto/sha1"
	"crypto/sha256"
	"hash"

	"github.com/arthur-debert/typedisk/pkg/errors"
	"github.com/arthur-debert/typedisk/internal/hashutil"
	"github.com/arthur-debert/typedisk/pkg/paths"
)

// ContentDigest streams file through a hash from newHash and returns the
// digest as uppercase hex.
func (d *Disk) ContentDigest(file paths.AbsFile, newHash func() hash.Hash) (string, error) {
	f, err := d.fs.Open(file.String())
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrDigestSourceUnavailable, "cannot open %s", file).
			WithDetail("path", file.String())
	}
	defer func() { _ = f.Close() }()

	if info, err := f.Stat(); err == nil && info.IsDir() {
		return "", errors.Newf(errors.ErrNotAFile, "%s is a directory", file).
			WithDetail("path", file.String())
	}

	sum, err := hashutil.Sum(f, newHash)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrDigestSourceUnavailable, "failed to read %s", file).
			WithDetail("path", file.String())
	}
	return sum, nil
}

// ContentSHA1 returns the SHA-1 digest of file.
func (d *Disk) ContentSHA1(file paths.AbsFile) (string, error) {
	return d.ContentDigest(file, sha1.New)
}

// ContentSHA256 returns the SHA-256 digest of file.
func (d *Disk) ContentSHA256(file paths.AbsFile) (string, error) {
	return d.ContentDigest(file, sha256.New)
}
