package cli

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/grovetools/hookcheck/errors"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorHandler(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "document not found",
			err:  errors.DocumentNotFound("/repo"),
			want: "No pre-commit configuration found",
		},
		{
			name: "document invalid",
			err:  errors.DocumentInvalid(".pre-commit-config.yaml", 2, 1),
			want: ".pre-commit-config.yaml has 2 error(s) and 1 warning(s)",
		},
		{
			name: "settings not found",
			err:  errors.ConfigNotFound("ci.yml"),
			want: "Settings file ci.yml not found",
		},
		{
			name: "settings invalid",
			err:  errors.ConfigInvalid("bad severity"),
			want: "Invalid hookcheck settings",
		},
		{
			name: "pattern",
			err:  errors.PatternInvalid("exclude", "(x", fmt.Errorf("boom")),
			want: `The exclude pattern "(x" does not compile`,
		},
		{
			name: "plain error",
			err:  fmt.Errorf("something broke"),
			want: "Error: something broke",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			h := &ErrorHandler{Out: &buf}
			assert.Equal(t, tt.err, h.Handle(tt.err))
			assert.Contains(t, buf.String(), tt.want)
			assert.NotContains(t, buf.String(), "Error details")
		})
	}
}

func TestErrorHandler_Verbose(t *testing.T) {
	var buf bytes.Buffer
	h := &ErrorHandler{Verbose: true, Out: &buf}
	_ = h.Handle(errors.DocumentNotFound("/repo"))
	assert.Contains(t, buf.String(), "Error details")
	assert.Contains(t, buf.String(), `"code": "DOCUMENT_NOT_FOUND"`)
}

func TestErrorHandler_Nil(t *testing.T) {
	var buf bytes.Buffer
	assert.NoError(t, (&ErrorHandler{Out: &buf}).Handle(nil))
	assert.Empty(t, buf.String())
}

func TestGetOptions(t *testing.T) {
	cmd := NewStandardCommand("hookcheck", "test")
	require.NoError(t, cmd.ParseFlags([]string{"--json", "-v", "-c", "settings.yml"}))

	opts := GetOptions(cmd)
	assert.True(t, opts.JSONOutput)
	assert.True(t, opts.Verbose)
	assert.Equal(t, "settings.yml", opts.ConfigFile)
}

func TestWrapText(t *testing.T) {
	wrapped := wrapText("one two three four five six", 10)
	for _, line := range strings.Split(wrapped, "\n") {
		assert.LessOrEqual(t, len(line), 10)
	}
	assert.Equal(t, "short\nkept", wrapText("short\nkept", 10))
}

func TestParseDescription(t *testing.T) {
	desc, examples := parseDescription("Validate documents.\n\nExamples:\n  hookcheck validate\n")
	assert.Equal(t, "Validate documents.", desc)
	assert.Equal(t, "hookcheck validate", examples)

	desc, examples = parseDescription("No examples here.")
	assert.Equal(t, "No examples here.", desc)
	assert.Empty(t, examples)
}

func TestStyledHelp(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	root := NewStandardCommand("hookcheck", "Validate pre-commit configuration")
	root.AddCommand(&cobra.Command{
		Use:     "validate",
		Short:   "Validate documents",
		Example: "hookcheck validate --strict",
		RunE:    func(*cobra.Command, []string) error { return nil },
	})

	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetArgs([]string{"validate", "--help"})
	require.NoError(t, root.Execute())

	out := buf.String()
	assert.Contains(t, out, "HOOKCHECK VALIDATE")
	assert.Contains(t, out, "USAGE")
	assert.Contains(t, out, "--json")
	assert.Contains(t, out, "hookcheck validate --strict")
}
