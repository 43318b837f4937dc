package errors

import (
	"fmt"
)

// ConfigNotFound creates a settings file not found error
func ConfigNotFound(path string) *Error {
	return New(ErrCodeConfigNotFound, fmt.Sprintf("configuration file not found: %s", path)).
		WithDetail("path", path)
}

// ConfigInvalid creates an invalid settings error
func ConfigInvalid(reason string) *Error {
	return New(ErrCodeConfigInvalid, fmt.Sprintf("invalid configuration: %s", reason))
}

// DocumentNotFound creates a pre-commit document not found error
func DocumentNotFound(searchPath string) *Error {
	return New(ErrCodeDocumentNotFound, fmt.Sprintf("no pre-commit configuration found from %s", searchPath)).
		WithDetail("searchPath", searchPath)
}

// DocumentParse wraps a YAML decoding failure
func DocumentParse(path string, err error) *Error {
	e := Wrap(err, ErrCodeDocumentParse, "failed to parse pre-commit configuration")
	if path != "" {
		e = e.WithDetail("path", path)
	}
	return e
}

// DocumentInvalid reports a document that failed validation
func DocumentInvalid(path string, errorCount, warningCount int) *Error {
	return New(ErrCodeDocumentInvalid,
		fmt.Sprintf("%s: %d error(s), %d warning(s)", path, errorCount, warningCount)).
		WithDetail("path", path).
		WithDetail("errors", errorCount).
		WithDetail("warnings", warningCount)
}

// PatternInvalid reports a regular expression that does not compile
func PatternInvalid(field, pattern string, err error) *Error {
	return Wrap(err, ErrCodePatternInvalid, fmt.Sprintf("invalid %s pattern %q", field, pattern)).
		WithDetail("field", field).
		WithDetail("pattern", pattern)
}
