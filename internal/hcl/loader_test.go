package hcl

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/workshopnet/internal/config"
	"github.com/vk/workshopnet/internal/yaml"
)

const manifestHCL = `
workshop "doubler" {
  floorplan = <<-PLAN
    e> I1 D0 +_ Oa Hm
  PLAN
}

santa {
  elf "Jingle" {
    workshop = "doubler"
    stack    = [3, 4]
  }
  pipe {
    from = "Jingle.a"
    to   = "Jingle.1"
  }
  monitor "Jingle.a" {
    receive "x" {}
    send {
      var = "x"
      to  = "Jingle.1"
    }
    send {
      value = 9
      to    = "Jingle.1"
    }
    deliver "x" {}
  }
  source {
    path = "in.txt"
    to   = "Jingle.1"
  }
  sink {
    path = "out.txt"
    from = "Jingle.a"
  }
}
`

const manifestYAML = `
workshops:
  doubler: |
    e> I1 D0 +_ Oa Hm
santa:
  - elf: { workshop: doubler, name: Jingle, stack: [3, 4] }
  - pipe: { from: Jingle.a, to: "Jingle.1" }
  - monitor:
      port: Jingle.a
      body:
        - receive: { var: x }
        - send: { var: x, to: "Jingle.1" }
        - send: { value: 9, to: "Jingle.1" }
        - deliver: { var: x }
  - source: { path: in.txt, to: "Jingle.1" }
  - sink: { path: out.txt, from: Jingle.a }
`

func write(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	m, err := NewLoader().Load(context.Background(), write(t, "grid.hcl", manifestHCL))
	require.NoError(t, err)

	assert.Equal(t, "e> I1 D0 +_ Oa Hm", strings.TrimSpace(m.Workshops["doubler"]))
	require.Len(t, m.Todos, 5)

	setup, ok := m.Todos[0].(config.SetupElf)
	require.True(t, ok)
	assert.Equal(t, config.SetupElf{Shop: "doubler", Name: "Jingle", Stack: []int64{3, 4}}, setup)

	pipe, ok := m.Todos[1].(config.Connect)
	require.True(t, ok)
	assert.Equal(t, config.PortRef{Elf: "Jingle", Port: 'a'}, pipe.Src)
	assert.Equal(t, config.PortRef{Elf: "Jingle", Port: '1'}, pipe.Dst)

	mon, ok := m.Todos[2].(config.Monitor)
	require.True(t, ok)
	require.Len(t, mon.Body, 4)
	assert.IsType(t, config.Receive{}, mon.Body[0])
	assert.IsType(t, config.Send{}, mon.Body[1])
	assert.IsType(t, config.Deliver{}, mon.Body[3])
	lit, ok := mon.Body[2].(config.Send)
	require.True(t, ok)
	require.NotNil(t, lit.Value)
	assert.Equal(t, int64(9), *lit.Value)

	src, ok := m.Todos[3].(config.Source)
	require.True(t, ok)
	assert.Equal(t, "in.txt", src.Path)
	sink, ok := m.Todos[4].(config.Sink)
	require.True(t, ok)
	assert.Equal(t, "out.txt", sink.Path)
}

func TestLoadErrors(t *testing.T) {
	t.Run("syntax error", func(t *testing.T) {
		_, err := NewLoader().Load(context.Background(), write(t, "bad.hcl", "workshop {"))
		require.Error(t, err)
	})

	t.Run("duplicate workshop", func(t *testing.T) {
		src := `
workshop "w" { floorplan = "e> Hm" }
workshop "w" { floorplan = "e> Hm" }
`
		_, err := NewLoader().Load(context.Background(), write(t, "dup.hcl", src))
		require.Error(t, err)
		assert.ErrorContains(t, err, "declared more than once")
	})

	t.Run("malformed port reference", func(t *testing.T) {
		src := `
santa {
  pipe {
    from = "noport"
    to   = "Jingle.1"
  }
}
`
		_, err := NewLoader().Load(context.Background(), write(t, "ref.hcl", src))
		require.Error(t, err)
		assert.ErrorContains(t, err, "not of the form")
	})
}

// The two manifest formats must translate to the same ToDo list.
func TestYAMLEquivalence(t *testing.T) {
	fromHCL, err := NewLoader().Load(context.Background(), write(t, "grid.hcl", manifestHCL))
	require.NoError(t, err)
	fromYAML, err := yaml.NewLoader().Load(context.Background(), write(t, "grid.yaml", manifestYAML))
	require.NoError(t, err)

	if diff := cmp.Diff(fromHCL.Todos, fromYAML.Todos); diff != "" {
		t.Errorf("todo lists differ between formats (-hcl +yaml):\n%s", diff)
	}
}
