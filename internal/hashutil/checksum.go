package hashutil

import (
	"crypto/sha1"
	"crypto/sha256"
	"encoding/hex"
	"hash"
	"io"
	"sort"
	"strings"

	"github.com/arthur-debert/typedisk/pkg/errors"
)

var algorithms = map[string]func() hash.Hash{
	"sha1":   sha1.New,
	"sha256": sha256.New,
}

// CanonicalName is the registry spelling of an algorithm name.
func CanonicalName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Lookup returns the hash constructor registered under name.
func Lookup(name string) (func() hash.Hash, error) {
	newHash, ok := algorithms[CanonicalName(name)]
	if !ok {
		return nil, errors.Newf(errors.ErrInvalidInput,
			"unknown digest algorithm %q (want %s)", name, strings.Join(Names(), ", "))
	}
	return newHash, nil
}

// Names lists the registered algorithms.
func Names() []string {
	names := make([]string, 0, len(algorithms))
	for name := range algorithms {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Sum streams r through a fresh hash and returns the digest as uppercase
// hex without separators.
func Sum(r io.Reader, newHash func() hash.Hash) (string, error) {
	h := newHash()
	if _, err := io.Copy(h, r); err != nil {
		return "", err
	}
	return strings.ToUpper(hex.EncodeToString(h.Sum(nil))), nil
}
