// Package fileutil holds file-writing helpers shared by the CLI and export.
package fileutil

import (
	"fmt"
	"os"

	"github.com/oasdocs/oasdocs/internal/pathutil"
)

// OwnerReadWrite is the file permission mode for exported documents,
// which may contain internal API details.
const OwnerReadWrite os.FileMode = 0o600

// WriteFile sanitizes path and writes data to it with OwnerReadWrite
// permissions. It returns the absolute path written.
func WriteFile(path string, data []byte) (string, error) {
	abs, err := pathutil.SanitizeOutputPath(path)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(abs, data, OwnerReadWrite); err != nil {
		return "", fmt.Errorf("fileutil: write %s: %w", abs, err)
	}
	return abs, nil
}
