package discover

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/grovetools/hookcheck/errors"
	"github.com/grovetools/hookcheck/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, root string, rel string) string {
	t.Helper()
	return testutil.WriteFile(t, filepath.Join(root, filepath.FromSlash(rel)), "repos: []\n")
}

func TestFind(t *testing.T) {
	root := t.TempDir()
	top := touch(t, root, ".pre-commit-config.yaml")
	lib := touch(t, root, "libs/core/.pre-commit-config.yml")
	build := touch(t, root, "build/.pre-commit-config.yaml")
	touch(t, root, "node_modules/pkg/.pre-commit-config.yaml")
	touch(t, root, "services/api/vendor/x/.pre-commit-config.yaml")
	touch(t, root, ".venv/lib/.pre-commit-config.yaml")
	touch(t, root, "docs/pre-commit-config.yaml")

	tests := []struct {
		name   string
		ignore []string
		want   []string
	}{
		{name: "defaults", want: []string{top, build, lib}},
		{name: "extra ignore", ignore: []string{"build"}, want: []string{top, lib}},
		{name: "glob ignore", ignore: []string{"libs/*"}, want: []string{top, build}},
		{name: "re-include", ignore: []string{"build", "!build/.pre-commit-config.yaml"}, want: []string{top, build, lib}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Find(context.Background(), root, tt.ignore)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFind_Cancelled(t *testing.T) {
	root := t.TempDir()
	touch(t, root, "a/.pre-commit-config.yaml")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Find(ctx, root, nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFind_MissingRoot(t *testing.T) {
	_, err := Find(context.Background(), filepath.Join(t.TempDir(), "absent"), nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeDiscoverFailed))
}

func TestFind_Empty(t *testing.T) {
	got, err := Find(context.Background(), t.TempDir(), nil)
	require.NoError(t, err)
	assert.Empty(t, got)
}
