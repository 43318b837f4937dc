package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/grovetools/hookcheck/errors"
)

// ErrorHandler provides user-friendly error messages
type ErrorHandler struct {
	Verbose bool
	Out     io.Writer
}

// NewErrorHandler creates a new error handler writing to stderr
func NewErrorHandler(verbose bool) *ErrorHandler {
	return &ErrorHandler{
		Verbose: verbose,
		Out:     os.Stderr,
	}
}

// Handle prints a message suited to the error's code and returns err unchanged.
func (h *ErrorHandler) Handle(err error) error {
	if err == nil {
		return nil
	}
	e, _ := errors.As(err)

	switch errors.GetCode(err) {
	case errors.ErrCodeDocumentNotFound:
		fmt.Fprintf(h.Out, "❌ No pre-commit configuration found.\n")
		fmt.Fprintf(h.Out, "Pass a path, or run from a repository containing .pre-commit-config.yaml.\n")

	case errors.ErrCodeDocumentInvalid:
		if e != nil {
			fmt.Fprintf(h.Out, "❌ %v has %v error(s) and %v warning(s)\n",
				e.Details["path"], e.Details["errors"], e.Details["warnings"])
		}

	case errors.ErrCodeConfigNotFound:
		path := ""
		if e != nil {
			path = fmt.Sprint(e.Details["path"])
		}
		fmt.Fprintf(h.Out, "❌ Settings file %s not found.\n", path)

	case errors.ErrCodeConfigInvalid, errors.ErrCodeConfigValidation:
		fmt.Fprintf(h.Out, "❌ Invalid hookcheck settings: %s\n", message(err))
		fmt.Fprintf(h.Out, "Run 'hookcheck settings' to see the effective settings, or 'hookcheck rules' for valid rule ids.\n")

	case errors.ErrCodePatternInvalid:
		if e != nil {
			fmt.Fprintf(h.Out, "❌ The %v pattern %q does not compile\n", e.Details["field"], e.Details["pattern"])
		}

	case errors.ErrCodeWatchFailed:
		fmt.Fprintf(h.Out, "❌ Cannot watch file: %s\n", message(err))

	default:
		fmt.Fprintf(h.Out, "❌ Error: %v\n", err)
	}

	if h.Verbose && e != nil {
		fmt.Fprintf(h.Out, "\nError details:\n%s\n", e.ToJSON())
	}
	return err
}

func message(err error) string {
	if e, ok := errors.As(err); ok {
		if e.Cause != nil {
			return fmt.Sprintf("%s: %v", e.Message, e.Cause)
		}
		return e.Message
	}
	return err.Error()
}
