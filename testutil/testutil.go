package testutil

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// DocumentName is the file name the pre-commit runner reads by default.
const DocumentName = ".pre-commit-config.yaml"

// Isolate points the global settings lookup at an empty directory and turns
// off colour so that output can be compared verbatim. It returns the
// settings directory.
func Isolate(t *testing.T) string {
	t.Helper()
	xdg := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)
	t.Setenv("NO_COLOR", "1")
	return xdg
}

// WriteFile writes content to path, creating parent directories.
func WriteFile(t *testing.T, path, content string) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// WriteDocument writes a pre-commit document into dir and returns its path.
func WriteDocument(t *testing.T, dir, content string) string {
	t.Helper()
	return WriteFile(t, filepath.Join(dir, DocumentName), content)
}

// MarkRepoRoot makes dir look like the root of a git checkout.
func MarkRepoRoot(t *testing.T, dir string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, ".git"), 0755))
}

// InitGitRepo initializes a real git repository in dir, skipping the test
// when git is not installed.
func InitGitRepo(t *testing.T, dir string) {
	t.Helper()

	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available")
	}
	cmd := exec.Command("git", "init", "--quiet")
	cmd.Dir = dir
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("Failed to init git repo: %v\n%s", err, out)
	}
}
