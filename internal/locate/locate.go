// Package locate finds configuration files by walking up the directory tree.
package locate

import (
	"fmt"
	"os"
	"path/filepath"
)

// DefaultFileName is the config file searched for when none is configured.
const DefaultFileName = ".env.json"

// FindUp looks for fileName in startDir and each of its ancestors, up to and
// including the filesystem root. The nearest match wins. Only regular files
// (or symlinks to them) count; a directory with that name is skipped.
func FindUp(startDir, fileName string) (string, bool, error) {
	var found string
	err := walkUp(startDir, fileName, func(path string) bool {
		found = path
		return false
	})
	if err != nil {
		return "", false, err
	}
	return found, found != "", nil
}

// FindAllUp returns every match from startDir to the root, nearest first.
func FindAllUp(startDir, fileName string) ([]string, error) {
	var matches []string
	err := walkUp(startDir, fileName, func(path string) bool {
		matches = append(matches, path)
		return true
	})
	return matches, err
}

// walkUp calls visit for each match until visit returns false.
func walkUp(startDir, fileName string, visit func(path string) bool) error {
	if fileName == "" || filepath.Base(fileName) != fileName {
		return fmt.Errorf("invalid config file name %q", fileName)
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return fmt.Errorf("resolve %s: %w", startDir, err)
	}

	for {
		candidate := filepath.Join(dir, fileName)
		if info, err := os.Stat(candidate); err == nil && info.Mode().IsRegular() {
			if !visit(candidate) {
				return nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return nil
		}
		dir = parent
	}
}
