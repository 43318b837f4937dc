package cmd

import (
	"os"
	"path/filepath"

	"github.com/grovetools/hookcheck/config"
	"github.com/grovetools/hookcheck/errors"
	"github.com/grovetools/hookcheck/logging"
	"github.com/grovetools/hookcheck/pkg/lint"
	"github.com/grovetools/hookcheck/pkg/precommit"
)

// resolveDocument turns a command argument into a document path. A directory
// argument is joined with the configured document name; no argument searches
// upward from the working directory.
func resolveDocument(arg string, settings *config.Config) (string, error) {
	names := precommit.DocumentNames
	if settings.Document != "" && settings.Document != config.DefaultDocument {
		names = []string{settings.Document}
	}

	if arg == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", err
		}
		return precommit.FindDocument(cwd, names...)
	}

	info, err := os.Stat(arg)
	if err != nil {
		if os.IsNotExist(err) {
			return "", errors.Wrap(err, errors.ErrCodeDocumentNotFound, "pre-commit configuration not found").
				WithDetail("path", arg)
		}
		return "", err
	}
	if !info.IsDir() {
		return arg, nil
	}
	for _, name := range names {
		path := filepath.Join(arg, name)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return "", errors.DocumentNotFound(arg)
}

// newLinter builds a linter from the rule settings.
func newLinter(settings *config.Config) (*lint.Linter, error) {
	severity := make(map[string]lint.Severity, len(settings.Rules.Severity))
	for id, s := range settings.Rules.Severity {
		severity[id] = lint.Severity(s)
	}
	return lint.New(lint.Options{
		Disabled: settings.Rules.Disable,
		Severity: severity,
		Logger:   logging.NewLogger("lint"),
	})
}
