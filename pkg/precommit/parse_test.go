package precommit

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/grovetools/hookcheck/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

const streamMLDocument = "testdata/stream-ml.pre-commit-config.yaml"

func TestParseFile_StreamML(t *testing.T) {
	doc, err := ParseFile(streamMLDocument)
	require.NoError(t, err)

	assert.Equal(t, streamMLDocument, doc.Path)
	require.Len(t, doc.Repos, 7)

	first := doc.Repos[0]
	assert.Equal(t, "https://github.com/pre-commit/pre-commit-hooks", first.Repo)
	assert.Equal(t, "pre-commit-hooks", first.Name())
	assert.Equal(t, "v4.5.0", first.Rev)
	require.Len(t, first.Hooks, 15)
	for _, hook := range first.Hooks {
		assert.NotEmpty(t, hook.ID)
		assert.Empty(t, hook.Args, "hook %s", hook.ID)
		assert.Empty(t, hook.AdditionalDependencies, "hook %s", hook.ID)
	}

	assert.Equal(t, Position{Line: 5, Column: 5}, first.Position)
	assert.Equal(t, 8, first.Hooks[0].Position.Line)
	assert.Equal(t, 6, first.Pos("rev").Line)

	assert.Equal(t, "quarterly", doc.CI.Settings.AutoupdateSchedule)
	require.Len(t, doc.CI.Options, 1)
	assert.Equal(t, "autoupdate_schedule", doc.CI.Options[0].Name)
}

func TestParse_HookFields(t *testing.T) {
	doc, err := ParseFile(streamMLDocument)
	require.NoError(t, err)

	mypy, ok := doc.Source("mirrors-mypy")
	require.True(t, ok)
	require.Len(t, mypy.Hooks, 1)
	hook := mypy.Hooks[0]
	assert.Equal(t, "mypy", hook.ID)
	assert.Equal(t, "src", hook.Files)
	assert.Equal(t, "^(docs|tests|libs)/", hook.Exclude)
	assert.Equal(t, []string{"numpy", "types-tqdm"}, hook.AdditionalDependencies)
	assert.True(t, hook.Has("exclude"))
	assert.False(t, hook.Has("args"))

	ruff, ok := doc.Source("https://github.com/astral-sh/ruff-pre-commit")
	require.True(t, ok)
	assert.Equal(t, []string{"--fix", "--show-fixes"}, ruff.Hooks[0].Args)
}

func TestParse_CISettings(t *testing.T) {
	doc, err := Parse([]byte(`
ci:
  autofix_prs: false
  autoupdate_schedule: weekly
  skip: [mypy, pylint]
  custom_thing: 3
repos: []
`))
	require.NoError(t, err)

	settings := doc.CI.Settings
	require.NotNil(t, settings.AutofixPRs)
	assert.False(t, *settings.AutofixPRs)
	assert.Equal(t, "weekly", settings.AutoupdateSchedule)
	assert.Equal(t, []string{"mypy", "pylint"}, settings.Skip)
	assert.Equal(t, 3, settings.Extra["custom_thing"])
	assert.Len(t, doc.CI.Options, 4)
}

func TestParse_RepeatedKeysKeepAllOptions(t *testing.T) {
	doc, err := Parse([]byte(`
ci:
  autoupdate_schedule: weekly
  autoupdate_schedule: monthly
repos: []
`))
	require.NoError(t, err)

	require.Len(t, doc.CI.Options, 2)
	assert.Equal(t, "monthly", doc.CI.Settings.AutoupdateSchedule)
	assert.Equal(t, 3, doc.CI.Options[0].Position.Line)
	assert.Equal(t, 4, doc.CI.Options[1].Position.Line)
}

func TestParse_LenientShapes(t *testing.T) {
	doc, err := Parse([]byte(`
repos:
  - repo: https://example.com/hooks
    rev: v1
    hooks:
      - id: a
        args: "--not-a-list"
      - not-a-mapping
`))
	require.NoError(t, err)

	require.Len(t, doc.Repos, 1)
	require.Len(t, doc.Repos[0].Hooks, 1)
	assert.Nil(t, doc.Repos[0].Hooks[0].Args)
	assert.True(t, doc.Repos[0].Hooks[0].Has("args"))
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "malformed yaml", input: "repos: [\n"},
		{name: "empty document", input: ""},
		{name: "root is a list", input: "- repo: local\n"},
		{name: "root is a scalar", input: "hello\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.input))
			require.Error(t, err)
			assert.True(t, errors.Is(err, errors.ErrCodeDocumentParse))
		})
	}
}

func TestParseFile_Missing(t *testing.T) {
	_, err := ParseFile(filepath.Join(t.TempDir(), ".pre-commit-config.yaml"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeDocumentNotFound))
}

func TestParseFile_ParseErrorCarriesPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".pre-commit-config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("repos: [\n"), 0644))

	_, err := ParseFile(path)
	require.Error(t, err)
	e, ok := errors.As(err)
	require.True(t, ok)
	assert.Equal(t, path, e.Details["path"])
}

func TestParse_Anchors(t *testing.T) {
	doc, err := Parse([]byte(`
x-args: &args ["--strict"]
repos:
  - repo: https://example.com/hooks
    rev: v1
    hooks:
      - id: a
        args: *args
`))
	require.NoError(t, err)
	assert.Equal(t, []string{"--strict"}, doc.Repos[0].Hooks[0].Args)
}

func TestParse_AliasCycle(t *testing.T) {
	_, err := Parse([]byte("repos: &r\n  - repo: local\n    hooks: *r\n"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeDocumentParse))
	assert.Contains(t, err.Error(), "line 3")
	assert.Contains(t, err.Error(), "*r")
}

func TestParse_AliasExpansionLimit(t *testing.T) {
	var b strings.Builder
	b.WriteString("l0: &l0 [x, x, x, x, x, x, x, x, x, x]\n")
	for i := 1; i <= 6; i++ {
		fmt.Fprintf(&b, "l%d: &l%d [", i, i)
		for j := 0; j < 10; j++ {
			if j > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(&b, "*l%d", i-1)
		}
		b.WriteString("]\n")
	}
	b.WriteString("repos: []\n")

	_, err := Parse([]byte(b.String()))
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeDocumentParse))
	assert.Contains(t, err.Error(), "expand")
}

func TestToValue_CycleYieldsNil(t *testing.T) {
	var root yaml.Node
	require.NoError(t, yaml.Unmarshal([]byte("a: &a\n  b: *a\n"), &root))

	v := ToValue(&root)
	assert.Equal(t, map[string]interface{}{"a": map[string]interface{}{"b": nil}}, v)
}
