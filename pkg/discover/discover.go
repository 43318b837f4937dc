// Package discover locates pre-commit documents below a directory.
package discover

import (
	"context"
	"io/fs"
	"path/filepath"

	"github.com/grovetools/hookcheck/errors"
	"github.com/grovetools/hookcheck/logging"
	"github.com/grovetools/hookcheck/pkg/precommit"
	"github.com/moby/patternmatcher"
)

// DefaultIgnore are directories never descended into.
var DefaultIgnore = []string{
	"**/.git",
	"**/node_modules",
	"**/.venv",
	"**/vendor",
}

var logger = logging.NewLogger("discover")

// Find walks root and returns every pre-commit document below it, in lexical
// order. ignore holds dockerignore-style patterns relative to root and is
// applied in addition to DefaultIgnore; a leading "!" re-includes a path.
func Find(ctx context.Context, root string, ignore []string) ([]string, error) {
	patterns := append(append([]string{}, DefaultIgnore...), ignore...)
	pm, err := patternmatcher.New(patterns)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDiscoverFailed, "invalid ignore pattern").
			WithDetail("patterns", ignore)
	}

	names := make(map[string]bool, len(precommit.DocumentNames))
	for _, n := range precommit.DocumentNames {
		names[n] = true
	}

	var found []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if walkErr != nil {
			if path == root {
				return walkErr
			}
			logger.WithError(walkErr).WithField("path", path).Debug("Skipping unreadable path")
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil || rel == "." {
			return nil
		}
		ignored, err := pm.MatchesOrParentMatches(filepath.ToSlash(rel))
		if err != nil {
			return err
		}

		if d.IsDir() {
			// With exclusions a child of an ignored directory may be
			// re-included, so the directory has to be walked.
			if ignored && !pm.Exclusions() {
				logger.WithField("dir", rel).Debug("Ignoring directory")
				return filepath.SkipDir
			}
			return nil
		}
		if !ignored && names[d.Name()] {
			found = append(found, path)
		}
		return nil
	})
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, errors.Wrap(err, errors.ErrCodeDiscoverFailed, "failed to search for pre-commit configurations").
			WithDetail("root", root)
	}

	logger.WithField("root", root).WithField("documents", len(found)).Debug("Discovery finished")
	return found, nil
}
