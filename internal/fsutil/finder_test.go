package fsutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, path string) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, nil, 0o644))
	return path
}

func TestFindFilesByExtension(t *testing.T) {
	dir := t.TempDir()
	a := touch(t, filepath.Join(dir, "a.yaml"))
	b := touch(t, filepath.Join(dir, "deep", "b.YML"))
	touch(t, filepath.Join(dir, "c.hcl"))
	other := touch(t, filepath.Join(t.TempDir(), "d.yml"))

	files, err := FindFilesByExtension([]string{dir, other, a}, ".yaml", ".yml")
	require.NoError(t, err)
	assert.Equal(t, []string{a, b, other}, files)

	files, err = FindFilesByExtension([]string{filepath.Join(dir, "c.hcl")}, ".yaml")
	require.NoError(t, err)
	assert.Empty(t, files, "a named file with another extension is skipped")
}

func TestFindFilesByExtension_MissingPath(t *testing.T) {
	_, err := FindFilesByExtension([]string{filepath.Join(t.TempDir(), "absent")}, ".hcl")
	assert.ErrorContains(t, err, "error accessing preset path")
}

func TestFindFilesByExtension_NoExtensionPanics(t *testing.T) {
	assert.Panics(t, func() { _, _ = FindFilesByExtension([]string{"."}) })
}
