package precommit

import (
	"os"
	"path/filepath"

	"github.com/grovetools/hookcheck/errors"
)

// FindDocument searches from startDir upward for a pre-commit document.
// The search stops at the first directory containing .git, since the hook
// runner only ever reads the document at the repository root.
func FindDocument(startDir string, names ...string) (string, error) {
	if len(names) == 0 {
		names = DocumentNames
	}

	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", errors.Wrap(err, errors.ErrCodeInvalidInput, "failed to resolve search directory").
			WithDetail("path", startDir)
	}

	for {
		for _, name := range names {
			path := filepath.Join(dir, name)
			if info, err := os.Stat(path); err == nil && !info.IsDir() {
				return path, nil
			}
		}

		if _, err := os.Stat(filepath.Join(dir, ".git")); err == nil {
			break
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return "", errors.DocumentNotFound(startDir)
}
