package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	kerrors "github.com/PolarWolf314/ksdecrypt/internal/errors"
)

// FindKeystoreFiles returns the regular files in dir whose names start with
// pattern, sorted by name. Keystore file names start with a UTC timestamp, so
// this is oldest first.
func FindKeystoreFiles(dir, pattern string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%s: %w", dir, kerrors.ErrKeystoreDirNotFound)
		}
		return nil, fmt.Errorf("failed to read keystore directory %s: %w", dir, err)
	}

	var files []string
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		if !strings.HasPrefix(entry.Name(), pattern) {
			continue
		}
		files = append(files, filepath.Join(dir, entry.Name()))
	}

	if len(files) == 0 {
		return nil, fmt.Errorf("no %s* files in %s: %w", pattern, dir, kerrors.ErrNoKeystoreFiles)
	}

	sort.Strings(files)
	return files, nil
}

// FileExists reports whether path exists. Errors other than not-exist count
// as existing, so callers never overwrite something they could not stat.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}
