package precommit

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/grovetools/hookcheck/errors"
	"github.com/grovetools/hookcheck/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTuples(t *testing.T) {
	doc, err := ParseFile(streamMLDocument)
	require.NoError(t, err)

	tuples := doc.Tuples()
	assert.Len(t, tuples, doc.HookCount())
	assert.Equal(t, 27, doc.HookCount())

	assert.Equal(t, Tuple{
		Source: "https://github.com/pre-commit/pre-commit-hooks",
		Rev:    "v4.5.0",
		HookID: "check-added-large-files",
		Args:   []string{},
	}, tuples[0])

	last := tuples[len(tuples)-1]
	assert.Equal(t, "codespell", last.HookID)
	assert.Equal(t, "v2.2.6", last.Rev)
	assert.Equal(t, []string{"--ignore-words-list", "nd,ot"}, last.Args)
	assert.Equal(t, `\.ipynb$`, last.Exclude)
}

func TestHookIDs(t *testing.T) {
	doc, err := Parse([]byte(`
repos:
  - repo: local
    hooks:
      - id: b
        alias: b-strict
      - id: a
      - id: b
`))
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "b-strict"}, doc.HookIDs())
}

func TestSourceName(t *testing.T) {
	tests := map[string]string{
		"https://github.com/psf/black":        "black",
		"https://github.com/psf/black/":       "black",
		"git@github.com:psf/black.git":        "black",
		"https://gitlab.com/pycqa/flake8.git": "flake8",
		"local":                               "local",
		"file:///tmp/hooks":                   "hooks",
	}
	for repo, want := range tests {
		assert.Equal(t, want, HookSource{Repo: repo}.Name(), repo)
	}
}

func TestFindDocument(t *testing.T) {
	root := t.TempDir()
	testutil.MarkRepoRoot(t, root)
	nested := filepath.Join(root, "src", "pkg")
	require.NoError(t, os.MkdirAll(nested, 0755))

	_, err := FindDocument(nested)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeDocumentNotFound))

	docPath := filepath.Join(root, ".pre-commit-config.yaml")
	require.NoError(t, os.WriteFile(docPath, []byte("repos: []\n"), 0644))

	found, err := FindDocument(nested)
	require.NoError(t, err)
	assert.Equal(t, docPath, found)
}

func TestFindDocument_StopsAtGitRoot(t *testing.T) {
	outer := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(outer, ".pre-commit-config.yaml"), []byte("repos: []\n"), 0644))

	repo := filepath.Join(outer, "repo")
	require.NoError(t, os.MkdirAll(repo, 0755))
	testutil.InitGitRepo(t, repo)

	_, err := FindDocument(repo)
	assert.Error(t, err, "search must not escape the repository")
}

func TestFindDocument_YmlVariant(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, ".pre-commit-config.yml")
	require.NoError(t, os.WriteFile(path, []byte("repos: []\n"), 0644))

	found, err := FindDocument(root)
	require.NoError(t, err)
	assert.Equal(t, path, found)
}
