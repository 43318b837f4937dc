package precommit

import (
	"testing"

	"github.com/grovetools/hookcheck/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranslatePattern(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		want    string
	}{
		{name: "plain", pattern: `^docs/.*\.md$`, want: `^docs/.*\.md$`},
		{name: "named group", pattern: `^(?P<dir>docs)/`, want: `^(?<dir>docs)/`},
		{name: "backreference", pattern: `^(?P<d>docs)/(?P=d)$`, want: `^(?<d>docs)/\k<d>$`},
		{name: "escaped paren", pattern: `\(?P<x>`, want: `\(?P<x>`},
		{name: "inside class", pattern: `[(?P<]x(?P<n>y)`, want: `[(?P<]x(?<n>y)`},
		{name: "class with leading bracket", pattern: `[^](?P<]+(?P<n>y)`, want: `[^](?P<]+(?<n>y)`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, translatePattern(tt.pattern))
		})
	}
}

func TestCompilePattern_PythonSyntax(t *testing.T) {
	tests := []struct {
		pattern string
		input   string
		want    bool
	}{
		{pattern: `^(?P<d>docs)/(?P=d)`, input: "docs/docs/index.md", want: true},
		{pattern: `^(?P<d>docs)/(?P=d)`, input: "docs/src/index.md", want: false},
		{pattern: `^(?!src/).*`, input: "tests/a.py", want: true},
		{pattern: `\.py$`, input: "src/pkg/mod.py", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.pattern+" "+tt.input, func(t *testing.T) {
			re, err := CompilePattern("exclude", tt.pattern)
			require.NoError(t, err)
			got, err := Search(re, tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCompilePattern_Invalid(t *testing.T) {
	_, err := CompilePattern("files", `^(unclosed`)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodePatternInvalid))
}
