package errors

import (
	"fmt"
	"testing"
)

func TestError(t *testing.T) {
	// Test basic error creation
	err := New(ErrCodeDocumentNotFound, "document not found")
	if err.Code != ErrCodeDocumentNotFound {
		t.Errorf("expected code %s, got %s", ErrCodeDocumentNotFound, err.Code)
	}

	// Test error wrapping
	cause := fmt.Errorf("underlying error")
	wrapped := Wrap(cause, ErrCodeDocumentParse, "parse failed")

	if wrapped.Unwrap() != cause {
		t.Error("Unwrap should return the cause")
	}

	if !Is(wrapped, ErrCodeDocumentParse) {
		t.Error("Is should return true for matching code")
	}

	if Is(wrapped, ErrCodeDocumentNotFound) {
		t.Error("Is should return false for non-matching code")
	}

	detailed := err.WithDetail("path", "a.yaml").WithDetail("line", 3)
	if detailed.Details["path"] != "a.yaml" {
		t.Error("WithDetail should add details")
	}
}

func TestIsWalksNestedCodes(t *testing.T) {
	inner := New(ErrCodePatternInvalid, "bad regex")
	outer := Wrap(inner, ErrCodeConfigInvalid, "settings rejected")
	stdWrapped := fmt.Errorf("loading: %w", outer)

	if !Is(stdWrapped, ErrCodeConfigInvalid) {
		t.Error("Is should find the outer code through fmt wrapping")
	}
	if !Is(stdWrapped, ErrCodePatternInvalid) {
		t.Error("Is should find the inner code through the cause chain")
	}
	if GetCode(stdWrapped) != ErrCodeConfigInvalid {
		t.Errorf("GetCode should return the outermost code, got %s", GetCode(stdWrapped))
	}

	got, ok := As(stdWrapped)
	if !ok || got != outer {
		t.Error("As should return the outermost *Error")
	}
}

func TestErrorConstructors(t *testing.T) {
	err := DocumentInvalid(".pre-commit-config.yaml", 2, 1)
	if err.Code != ErrCodeDocumentInvalid {
		t.Errorf("expected code %s, got %s", ErrCodeDocumentInvalid, err.Code)
	}
	if err.Details["errors"] != 2 {
		t.Error("DocumentInvalid should include the error count")
	}

	err = PatternInvalid("exclude", "(", fmt.Errorf("missing )"))
	if err.Details["pattern"] != "(" {
		t.Error("PatternInvalid should include the pattern")
	}

	err = DocumentParse("", fmt.Errorf("boom"))
	if _, ok := err.Details["path"]; ok {
		t.Error("DocumentParse should omit an empty path")
	}
}
