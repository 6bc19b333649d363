package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/typedisk/pkg/errors"
)

// AppDirName is the directory name typedisk uses below the XDG base dirs.
const AppDirName = "typedisk"

// CurrentDirectory returns the process working directory.
func CurrentDirectory() (AbsDir, error) {
	wd, err := os.Getwd()
	if err != nil {
		return AbsDir{}, errors.Wrap(err, errors.ErrNotFound, "cannot determine current directory")
	}
	return specialDir(wd)
}

// ProfileDir returns the user's home directory.
func ProfileDir() (AbsDir, error) {
	return specialDir(xdg.Home)
}

// ConfigHome returns $XDG_CONFIG_HOME or its platform default.
func ConfigHome() (AbsDir, error) {
	return specialDir(xdg.ConfigHome)
}

// StateHome returns $XDG_STATE_HOME or its platform default.
func StateHome() (AbsDir, error) {
	return specialDir(xdg.StateHome)
}

// CacheHome returns $XDG_CACHE_HOME or its platform default.
func CacheHome() (AbsDir, error) {
	return specialDir(xdg.CacheHome)
}

// Environment supplied locations are cleaned before construction; they are
// not caller input.
func specialDir(s string) (AbsDir, error) {
	if s == "" {
		return AbsDir{}, errors.New(errors.ErrNotFound, "special folder is not set")
	}
	return NewAbsDir(filepath.Clean(s))
}
