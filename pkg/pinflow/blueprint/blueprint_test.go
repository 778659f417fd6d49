package blueprint_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gzp-crey/pinflow/pkg/pinflow"
	"github.com/gzp-crey/pinflow/pkg/pinflow/behaviors"
	"github.com/gzp-crey/pinflow/pkg/pinflow/blueprint"
	"github.com/gzp-crey/pinflow/pkg/pinflow/config"
)

// capture is a test registry whose "capture" kind hands the inspector
// instance back to the test for assertions.
func captureRegistry(t *testing.T, probe **behaviors.Inspector[float64]) *blueprint.Registry {
	t.Helper()
	r := blueprint.NewRegistry()
	r.MustRegister("scale", func(cfg config.Config) (pinflow.Behavior, error) {
		factor := cfg.Float64("factor", 1)
		return behaviors.NewMapper(func(v float64) float64 { return v * factor }), nil
	})
	r.MustRegister("capture", func(config.Config) (pinflow.Behavior, error) {
		insp := behaviors.NewInspector[float64](nil)
		*probe = insp
		return insp, nil
	})
	return r
}

func TestBuildAssemblesRunnableSystem(t *testing.T) {
	var probe *behaviors.Inspector[float64]
	r := captureRegistry(t, &probe)

	g, err := r.Build([]byte(`
name: doubler
inputs:
  - name: value
    type: float
nodes:
  - name: scale
    kind: scale
    config:
      factor: 2
  - name: sink
    kind: capture
connections:
  - from: value
    to: scale.in
  - from: scale.out
    to: sink.in
`))
	require.NoError(t, err)
	require.NotNil(t, probe)

	assert.Equal(t, "doubler", g.System.Name())
	assert.Len(t, g.Nodes, 2)
	assert.Len(t, g.System.Edges(), 2)

	require.NoError(t, g.System.RunOnAny(g.Inputs["value"], 21.0))
	got, ok := probe.Last()
	require.True(t, ok)
	assert.Equal(t, 42.0, got)
}

func TestBuildInputTypes(t *testing.T) {
	g, err := blueprint.NewRegistry().Build([]byte(`
inputs:
  - name: s
    type: string
  - name: i
    type: int
  - name: f
    type: float64
  - name: b
    type: bool
`))
	require.NoError(t, err)
	assert.Len(t, g.Inputs, 4)
	assert.Equal(t, 4, g.System.InputCount())

	_, err = blueprint.NewRegistry().Build([]byte(`
inputs:
  - name: x
    type: complex128
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported input type")
}

func TestBuildRejectsInvalidDocuments(t *testing.T) {
	r := blueprint.NewRegistry()
	r.MustRegister("add", func(config.Config) (pinflow.Behavior, error) { return behaviors.Add(), nil })

	tests := []struct {
		name    string
		doc     string
		wantSub string
	}{
		{"malformed yaml", ":\n - [", "parse blueprint"},
		{"input without name", "inputs:\n  - type: float\n", "missing name"},
		{"duplicate input", "inputs:\n  - name: x\n    type: float\n  - name: x\n    type: float\n", `duplicate input "x"`},
		{"node without name", "nodes:\n  - kind: add\n", "missing name"},
		{"duplicate node", "nodes:\n  - name: n\n    kind: add\n  - name: n\n    kind: add\n", `duplicate node "n"`},
		{"unknown kind", "nodes:\n  - name: n\n    kind: bogus\n", `unknown kind "bogus"`},
		{"unknown source input", "nodes:\n  - name: n\n    kind: add\nconnections:\n  - from: ghost\n    to: n.a\n", `unknown input "ghost"`},
		{"unknown source node", "nodes:\n  - name: n\n    kind: add\nconnections:\n  - from: ghost.out\n    to: n.a\n", `unknown node "ghost"`},
		{"unknown source pin", "nodes:\n  - name: n\n    kind: add\nconnections:\n  - from: n.bogus\n    to: n.a\n", `no output pin "bogus"`},
		{"bare target", "inputs:\n  - name: x\n    type: float\nnodes:\n  - name: n\n    kind: add\nconnections:\n  - from: x\n    to: n\n", "not a node.pin path"},
		{"unknown target node", "inputs:\n  - name: x\n    type: float\nconnections:\n  - from: x\n    to: ghost.a\n", `unknown node "ghost"`},
		{"unknown target pin", "inputs:\n  - name: x\n    type: float\nnodes:\n  - name: n\n    kind: add\nconnections:\n  - from: x\n    to: n.bogus\n", `no input pin "bogus"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := r.Build([]byte(tt.doc))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantSub)
		})
	}
}

func TestBuildRejectsTypeMismatchConnection(t *testing.T) {
	r := blueprint.NewRegistry()
	r.MustRegister("add", func(config.Config) (pinflow.Behavior, error) { return behaviors.Add(), nil })

	_, err := r.Build([]byte(`
inputs:
  - name: text
    type: string
nodes:
  - name: sum
    kind: add
connections:
  - from: text
    to: sum.a
`))
	require.Error(t, err)
	assert.ErrorIs(t, err, pinflow.ErrIncompatiblePinTypes)
}

func TestBuildRejectsCycle(t *testing.T) {
	r := blueprint.NewRegistry()
	r.MustRegister("add", func(config.Config) (pinflow.Behavior, error) { return behaviors.Add(), nil })

	_, err := r.Build([]byte(`
nodes:
  - name: a
    kind: add
  - name: b
    kind: add
connections:
  - from: a.out
    to: b.a
  - from: b.out
    to: a.a
`))
	require.Error(t, err)
	assert.ErrorIs(t, err, pinflow.ErrCycle)
}

func TestBuildPropagatesFactoryError(t *testing.T) {
	r := blueprint.NewRegistry()
	r.MustRegister("broken", func(config.Config) (pinflow.Behavior, error) {
		return nil, assert.AnError
	})

	_, err := r.Build([]byte("nodes:\n  - name: n\n    kind: broken\n"))
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
}

func TestBuildFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bp.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
name: from-file
inputs:
  - name: value
    type: float
nodes:
  - name: display
    kind: inspect-float
connections:
  - from: value
    to: display.in
`), 0o644))

	g, err := blueprint.BuildFile(path)
	require.NoError(t, err)
	assert.Equal(t, "from-file", g.System.Name())
	require.NoError(t, g.System.RunOnAny(g.Inputs["value"], 1.0))

	_, err = blueprint.BuildFile(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestDefaultRegistryBuiltins(t *testing.T) {
	kinds := blueprint.Default.Kinds()
	for _, kind := range []string{"add", "sub", "mul", "min", "max", "avg", "scale", "offset", "suffix", "inspect-string", "inspect-float"} {
		assert.Contains(t, kinds, kind)
	}
}

func TestBuiltinPipeline(t *testing.T) {
	g, err := blueprint.Build([]byte(`
name: thermostat
inputs:
  - name: celsius
    type: float
nodes:
  - name: to-f
    kind: scale
    config:
      factor: 1.8
  - name: shift
    kind: offset
    config:
      delta: 32
  - name: display
    kind: inspect-float
connections:
  - from: celsius
    to: to-f.in
  - from: to-f.out
    to: shift.in
  - from: shift.out
    to: display.in
`))
	require.NoError(t, err)

	require.NoError(t, g.System.RunOnAny(g.Inputs["celsius"], 100.0))

	// The builtin inspector is reachable only through its node; check the
	// observable topology instead.
	assert.Len(t, g.System.Edges(), 3)
	nodes := g.System.Nodes()
	require.Len(t, nodes, 3)
	names := []string{nodes[0].Name, nodes[1].Name, nodes[2].Name}
	assert.Equal(t, []string{"to-f", "shift", "display"}, names)
}

func TestRegistryValidation(t *testing.T) {
	r := blueprint.NewRegistry()

	assert.Error(t, r.Register("", func(config.Config) (pinflow.Behavior, error) { return nil, nil }))
	assert.Error(t, r.Register("k", nil))

	require.NoError(t, r.Register("k", func(config.Config) (pinflow.Behavior, error) { return nil, nil }))
	assert.Error(t, r.Register("k", func(config.Config) (pinflow.Behavior, error) { return nil, nil }), "duplicate kind")
	assert.Panics(t, func() {
		r.MustRegister("k", func(config.Config) (pinflow.Behavior, error) { return nil, nil })
	})

	_, ok := r.Lookup("k")
	assert.True(t, ok)
	_, ok = r.Lookup("absent")
	assert.False(t, ok)
	assert.Equal(t, []string{"k"}, r.Kinds())
}
