package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunDeliversProgramOutput(t *testing.T) {
	manifest := `
workshop "greeter" {
  floorplan = "e> Ch Oa Ci Oa Hm"
}

santa {
  elf "Jingle" { workshop = "greeter" }
  monitor "Jingle.a" {
    receive "x" {}
    deliver "x" {}
  }
}
`
	path := filepath.Join(t.TempDir(), "main.hcl")
	require.NoError(t, os.WriteFile(path, []byte(manifest), 0o600))

	out := &bytes.Buffer{}
	errW := &bytes.Buffer{}
	require.NoError(t, run(out, errW, []string{path}))
	assert.Equal(t, "hi", out.String())
}

func TestRunHelpExitsCleanly(t *testing.T) {
	out := &bytes.Buffer{}
	errW := &bytes.Buffer{}
	require.NoError(t, run(out, errW, []string{"-h"}))
	assert.Contains(t, errW.String(), "Usage:")
	assert.Empty(t, out.String())
}

func TestRunMissingManifest(t *testing.T) {
	out := &bytes.Buffer{}
	err := run(out, &bytes.Buffer{}, []string{filepath.Join(t.TempDir(), "absent.hcl")})
	require.Error(t, err)
}

func TestRunUsageError(t *testing.T) {
	err := run(&bytes.Buffer{}, &bytes.Buffer{}, []string{"--buffer", "none", "grid.hcl"})
	require.Error(t, err)
	assert.ErrorContains(t, err, "invalid buffer")
}
