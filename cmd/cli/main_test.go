package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRun_Report(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	presetPath := filepath.Join(dir, "preset.yaml")
	require.NoError(t, os.WriteFile(presetPath, []byte(`
items:
  - name: ore
`), 0o600))
	savePath := filepath.Join(dir, "factory.hcl")
	require.NoError(t, os.WriteFile(savePath, []byte(`
format_version = "1.1.0"
graph_id       = "0b6f2a56-4f3a-4b53-9d0f-1d8f0f3b1a77"

node "supplier" {
  id   = 1
  item = "ore"
}
`), 0o600))

	out, logs := &bytes.Buffer{}, &bytes.Buffer{}
	err := run(out, logs, []string{"-preset", presetPath, "-log-level", "debug", savePath})

	require.NoError(t, err)
	require.Contains(t, out.String(), "supply ore")
	require.Contains(t, out.String(), "1 nodes, 0 links")
	require.Contains(t, logs.String(), `"msg":"Graph loaded."`)
}

func TestRun_StartupError(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	presetPath := filepath.Join(dir, "main.hcl")
	require.NoError(t, os.WriteFile(presetPath, []byte(`
		item "ore" {
	`), 0o600))

	err := run(&bytes.Buffer{}, &bytes.Buffer{}, []string{"-p", presetPath, "save.hcl"})

	require.Error(t, err)
	require.Contains(t, err.Error(), "startup failed")
	require.Contains(t, err.Error(), "failed to parse")
}

func TestRun_ShouldExit(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}
	err := run(out, &bytes.Buffer{}, []string{"-h"})

	require.NoError(t, err, "run() should return a nil error when shouldExit is true")
	require.Contains(t, out.String(), "Usage:", "Expected help text to be printed to the output buffer")
}

func TestRun_ParseError(t *testing.T) {
	t.Parallel()

	err := run(&bytes.Buffer{}, &bytes.Buffer{}, []string{"--this-is-not-a-valid-flag"})

	require.Error(t, err)
	require.Contains(t, err.Error(), "flag provided but not defined: -this-is-not-a-valid-flag")
}
