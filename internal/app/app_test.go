package app

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setup writes the given manifests into a temp dir and returns an app
// running against it with logs captured.
func setup(t *testing.T, cfg Config, files map[string]string) (*App, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	dir := t.TempDir()
	var single string
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
		single = path
	}
	if cfg.InputPath == "" {
		if len(files) == 1 {
			cfg.InputPath = single
		} else {
			cfg.InputPath = dir
		}
	}
	cfg.LogLevel = "debug"
	validated, err := NewConfig(cfg)
	require.NoError(t, err)

	out := &bytes.Buffer{}
	logs := &bytes.Buffer{}
	return New(out, logs, validated), out, logs
}

const greeterHCL = `
workshop "greeter" {
  floorplan = "e> Ch Oa Ci Oa Hm"
}

santa {
  elf "Jingle" {
    workshop = "greeter"
  }
  monitor "Jingle.a" {
    receive "x" {}
    deliver "x" {}
  }
}
`

func TestRunDeliversToOutput(t *testing.T) {
	a, out, _ := setup(t, Config{}, map[string]string{"main.hcl": greeterHCL})
	require.NoError(t, a.Run(context.Background()))
	assert.Equal(t, "hi", out.String())
}

func TestRunYAMLManifest(t *testing.T) {
	manifest := `
workshops:
  greeter: "e> Ch Oa Ci Oa Hm"
santa:
  - elf: { workshop: greeter, name: Jingle }
  - monitor:
      port: Jingle.a
      body:
        - receive: { var: x }
        - deliver: { var: x }
`
	a, out, _ := setup(t, Config{}, map[string]string{"main.yaml": manifest})
	require.NoError(t, a.Run(context.Background()))
	assert.Equal(t, "hi", out.String())
}

func TestRunMergesManifestDirectory(t *testing.T) {
	workshops := `
workshop "greeter" {
  floorplan = "e> Ch Oa Ci Oa Hm"
}
`
	program := `
santa:
  - elf: { workshop: greeter, name: Jingle }
  - monitor:
      port: Jingle.a
      body:
        - receive: { var: x }
        - deliver: { var: x }
`
	a, out, _ := setup(t, Config{}, map[string]string{
		"a_workshops.hcl": workshops,
		"b_program.yaml":  program,
	})
	require.NoError(t, a.Run(context.Background()))
	assert.Equal(t, "hi", out.String())
}

func TestRunFileEndpoints(t *testing.T) {
	dir := t.TempDir()
	inPath := filepath.Join(dir, "in.txt")
	outPath := filepath.Join(dir, "out.txt")
	require.NoError(t, os.WriteFile(inPath, []byte("ho!"), 0o644))

	manifest := `
workshops:
  echo: |
    e> I1 Oa mv
    m^ .. .. m<
santa:
  - elf: { workshop: echo, name: Jingle }
  - source: { path: ` + inPath + `, to: "Jingle.1" }
  - sink: { path: ` + outPath + `, from: Jingle.a }
`
	a, _, _ := setup(t, Config{}, map[string]string{"main.yaml": manifest})
	require.NoError(t, a.Run(context.Background()))

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Equal(t, "ho!", string(data))
}

func TestRunReportsDeadlock(t *testing.T) {
	manifest := `
workshop "waiter" {
  floorplan = "e> I1 Oa Hm"
}

santa {
  elf "Jingle" { workshop = "waiter" }
  elf "Tinsel" { workshop = "waiter" }
  pipe {
    from = "Jingle.a"
    to   = "Tinsel.1"
  }
  pipe {
    from = "Tinsel.a"
    to   = "Jingle.1"
  }
}
`
	a, _, _ := setup(t, Config{}, map[string]string{"main.hcl": manifest})
	err := a.Run(context.Background())
	require.Error(t, err)
	assert.ErrorContains(t, err, "deadlock")
	assert.ErrorContains(t, err, "Jingle")
	assert.ErrorContains(t, err, "Tinsel")
}

func TestRunEmitsTrace(t *testing.T) {
	a, _, logs := setup(t, Config{Trace: true}, map[string]string{"main.hcl": greeterHCL})
	require.NoError(t, a.Run(context.Background()))
	assert.Contains(t, logs.String(), "trace")
	assert.Contains(t, logs.String(), "Jingle")
}

func TestTraceForcesDebugLogging(t *testing.T) {
	// trace records are emitted at debug level; asking for a trace at the
	// default info level must still produce them
	path := filepath.Join(t.TempDir(), "main.hcl")
	require.NoError(t, os.WriteFile(path, []byte(greeterHCL), 0o644))
	cfg, err := NewConfig(Config{InputPath: path, Trace: true, LogLevel: "info"})
	require.NoError(t, err)

	out := &bytes.Buffer{}
	logs := &bytes.Buffer{}
	a := New(out, logs, cfg)
	require.NoError(t, a.Run(context.Background()))
	assert.Contains(t, logs.String(), "trace")
}

func TestRunErrors(t *testing.T) {
	t.Run("missing manifest", func(t *testing.T) {
		cfg, err := NewConfig(Config{InputPath: filepath.Join(t.TempDir(), "absent.hcl")})
		require.NoError(t, err)
		a := New(&bytes.Buffer{}, &bytes.Buffer{}, cfg)
		require.Error(t, a.Run(context.Background()))
	})

	t.Run("empty manifest directory", func(t *testing.T) {
		cfg, err := NewConfig(Config{InputPath: t.TempDir()})
		require.NoError(t, err)
		a := New(&bytes.Buffer{}, &bytes.Buffer{}, cfg)
		err = a.Run(context.Background())
		require.Error(t, err)
		assert.ErrorContains(t, err, "no manifest files found")
	})

	t.Run("elf fault surfaces with position", func(t *testing.T) {
		manifest := `
workshop "crash" {
  floorplan = "e> /0 Hm"
}

santa {
  elf "Jingle" {
    workshop = "crash"
    stack    = [7]
  }
}
`
		a, _, _ := setup(t, Config{}, map[string]string{"main.hcl": manifest})
		err := a.Run(context.Background())
		require.Error(t, err)
		assert.ErrorContains(t, err, "Jingle")
		assert.ErrorContains(t, err, "division by zero")
	})
}
