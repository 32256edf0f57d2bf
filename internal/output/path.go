package output

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// maxVersions bounds the search for a free file name.
const maxVersions = 10000

// NextAvailablePath returns path if nothing exists there, otherwise the
// first free version with N = 1, 2, ... inserted before the extension
// ("minTimes.png" becomes "minTimes.1.png"). Previous results are never
// overwritten.
func NextAvailablePath(path string) (string, error) {
	ext := filepath.Ext(path)
	if ext == filepath.Base(path) {
		ext = ""
	}
	stem := strings.TrimSuffix(path, ext)
	candidate := path
	for i := 1; i <= maxVersions; i++ {
		_, err := os.Stat(candidate)
		if errors.Is(err, fs.ErrNotExist) {
			return candidate, nil
		}
		if err != nil {
			return "", fmt.Errorf("failed to check %s: %w", candidate, err)
		}
		candidate = fmt.Sprintf("%s.%d%s", stem, i, ext)
	}
	return "", fmt.Errorf("no free file name for %s after %d versions", path, maxVersions)
}

// CreateVersioned creates the file returned by NextAvailablePath.
func CreateVersioned(path string) (*os.File, error) {
	p, err := NextAvailablePath(path)
	if err != nil {
		return nil, err
	}
	return os.OpenFile(p, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
}
