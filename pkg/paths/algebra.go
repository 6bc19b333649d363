package paths

import (
	"path/filepath"
	"strings"

	"github.com/arthur-debert/typedisk/pkg/errors"
)

// Relativize returns the part of file beyond root. It fails with
// NOT_UNDER_ROOT unless root is a proper ancestor of file.
func Relativize(file AbsFile, root AbsDir) (RelFile, error) {
	suffix, err := relativize(file.abs, root)
	if err != nil {
		return RelFile{}, err
	}
	return RelFile{rel{path: suffix}}, nil
}

// RelativizeDir is Relativize for directories.
func RelativizeDir(dir AbsDir, root AbsDir) (RelDir, error) {
	suffix, err := relativize(dir.abs, root)
	if err != nil {
		return RelDir{}, err
	}
	return RelDir{rel{path: suffix}}, nil
}

func relativize(p abs, root AbsDir) (string, error) {
	if root.IsZero() || !root.mode.hasPathPrefix(p.path, root.path) {
		return "", errors.Newf(errors.ErrNotUnderRoot, "%s is not under %s", p.path, root.path).
			WithDetail("path", p.path).
			WithDetail("root", root.path)
	}
	suffix := strings.TrimLeft(p.path[len(root.path):], string(separator))
	if suffix == "" {
		return "", errors.Newf(errors.ErrNotUnderRoot, "%s is the root itself", p.path).
			WithDetail("path", p.path).
			WithDetail("root", root.path)
	}
	return suffix, nil
}

// Resolve joins rel onto root. It never touches the disk and always
// succeeds; .. segments in rel are folded lexically.
func Resolve(root AbsDir, rel RelFile) AbsFile {
	return AbsFile{abs{path: filepath.Join(root.path, rel.path), mode: root.mode}}
}

// ResolveDir is Resolve for directories. An empty rel yields root.
func ResolveDir(root AbsDir, rel RelDir) AbsDir {
	return AbsDir{abs{path: filepath.Join(root.path, rel.path), mode: root.mode}}
}
