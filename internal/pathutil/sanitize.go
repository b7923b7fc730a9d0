package pathutil

import (
	"os"
	"path/filepath"

	"github.com/oasdocs/oasdocs/oaserrors"
)

// SanitizeOutputPath returns the absolute form of an export target. The
// target must not be a symlink or a directory, and its parent directory
// must already exist. Failures are *oaserrors.ConfigError for the
// "output" option.
func SanitizeOutputPath(path string) (string, error) {
	abs, err := filepath.Abs(filepath.Clean(path))
	if err != nil {
		return "", outputError(path, "cannot resolve absolute path", err)
	}

	parent, err := os.Stat(filepath.Dir(abs))
	if err != nil {
		return "", outputError(abs, "parent directory does not exist", err)
	}
	if !parent.IsDir() {
		return "", outputError(abs, "parent is not a directory", nil)
	}

	if info, err := os.Lstat(abs); err == nil {
		switch {
		case info.Mode()&os.ModeSymlink != 0:
			return "", outputError(abs, "refusing to write to symlink", nil)
		case info.IsDir():
			return "", outputError(abs, "is a directory", nil)
		}
	} else if !os.IsNotExist(err) {
		return "", outputError(abs, "cannot stat path", err)
	}
	return abs, nil
}

func outputError(path, msg string, cause error) error {
	return &oaserrors.ConfigError{Option: "output", Value: path, Message: msg, Cause: cause}
}
