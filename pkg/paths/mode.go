package paths

import (
	"runtime"
	"strings"

	"github.com/arthur-debert/typedisk/pkg/errors"
)

// CaseMode selects how path strings are compared.
type CaseMode int

const (
	CaseSensitive CaseMode = iota
	CaseInsensitive
)

// HostCaseMode is the comparison mode of the host filesystem, computed once.
var HostCaseMode = caseModeFor(runtime.GOOS)

func caseModeFor(goos string) CaseMode {
	switch goos {
	case "windows", "darwin", "ios":
		return CaseInsensitive
	default:
		return CaseSensitive
	}
}

func (m CaseMode) String() string {
	if m == CaseInsensitive {
		return "insensitive"
	}
	return "sensitive"
}

// ParseCaseMode maps a configuration value to a CaseMode. "host" and the
// empty string select HostCaseMode.
func ParseCaseMode(s string) (CaseMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "host":
		return HostCaseMode, nil
	case "sensitive":
		return CaseSensitive, nil
	case "insensitive":
		return CaseInsensitive, nil
	default:
		return HostCaseMode, errors.Newf(errors.ErrInvalidInput,
			"unknown case mode %q (want host, sensitive or insensitive)", s)
	}
}

func (m CaseMode) equal(a, b string) bool {
	if m == CaseInsensitive {
		return strings.EqualFold(a, b)
	}
	return a == b
}

func (m CaseMode) hasPrefix(s, prefix string) bool {
	if len(s) < len(prefix) {
		return false
	}
	return m.equal(s[:len(prefix)], prefix)
}

func (m CaseMode) hasSuffix(s, suffix string) bool {
	if len(s) < len(suffix) {
		return false
	}
	return m.equal(s[len(s)-len(suffix):], suffix)
}

func (m CaseMode) fold(s string) string {
	if m == CaseInsensitive {
		return strings.ToLower(s)
	}
	return s
}

// hasPathPrefix is the boundary-safe prefix test: prefix must match exactly
// or be followed by a separator, so /a/b never prefixes /a/bc.
func (m CaseMode) hasPathPrefix(s, prefix string) bool {
	if !m.hasPrefix(s, prefix) {
		return false
	}
	if len(s) == len(prefix) {
		return true
	}
	if prefix != "" && prefix[len(prefix)-1] == separator {
		return true
	}
	return s[len(prefix)] == separator
}
