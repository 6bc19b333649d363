package paths

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"
)

var uniqueSuffix = regexp.MustCompile(`^(.*) \(([0-9]+)\)$`)

// NextUnique returns the next candidate in the unique-name sequence:
// "a.txt" -> "a (1).txt" -> "a (2).txt". The file's directory is unchanged.
func (f AbsFile) NextUnique() AbsFile {
	stem := f.NameWithoutExtension()
	ext := f.Extension()

	name := stem + " (1)" + ext
	if m := uniqueSuffix.FindStringSubmatch(stem); m != nil {
		if n, err := strconv.Atoi(m[2]); err == nil {
			name = fmt.Sprintf("%s (%d)%s", m[1], n+1, ext)
		}
	}
	return AbsFile{abs{path: filepath.Join(f.Dir().path, name), mode: f.mode}}
}
