package paths

import (
	"path/filepath"
	"strings"
)

const separator = filepath.Separator

// Normalize replaces both '/' and '\' with the platform separator.
func Normalize(s string) string {
	if filepath.Separator == '/' {
		return strings.ReplaceAll(s, `\`, "/")
	}
	return strings.ReplaceAll(s, "/", string(filepath.Separator))
}

// Name returns the last element of the path.
func Name(s string) string {
	return filepath.Base(s)
}

// Extension returns the extension of the last element, including the dot.
func Extension(s string) string {
	return filepath.Ext(Name(s))
}

// NameWithoutExtension returns the last element with its extension removed.
func NameWithoutExtension(s string) string {
	name := Name(s)
	return strings.TrimSuffix(name, filepath.Ext(name))
}

// isRoot reports whether s is a filesystem or volume root.
func isRoot(s string) bool {
	return filepath.Dir(s) == s
}

// trimTrailingSeparator strips a single trailing separator unless s is a bare
// volume root.
func trimTrailingSeparator(s string) string {
	if len(s) <= 1 || s[len(s)-1] != filepath.Separator {
		return s
	}
	if s == filepath.VolumeName(s)+string(filepath.Separator) {
		return s
	}
	return s[:len(s)-1]
}

// trimPart prepares one component handed to a Combine method. Surrounding
// separators are trimmed, a leading one is rejected by the caller.
func trimPart(part string) (string, bool) {
	part = Normalize(part)
	if strings.HasPrefix(part, string(filepath.Separator)) {
		return "", false
	}
	return strings.Trim(part, string(filepath.Separator)), true
}
