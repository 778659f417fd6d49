package viz_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gzp-crey/pinflow/pkg/pinflow"
	"github.com/gzp-crey/pinflow/pkg/pinflow/behaviors"
	"github.com/gzp-crey/pinflow/pkg/pinflow/viz"
)

func TestDOTEmptySystem(t *testing.T) {
	sys := pinflow.NewSystem(pinflow.WithName("empty"))

	out := viz.DOT(sys)
	assert.True(t, strings.HasPrefix(out, "digraph \"empty\" {"))
	assert.True(t, strings.HasSuffix(out, "}\n"))
	assert.NotContains(t, out, "__input__", "no entry node without inputs")
	assert.NotContains(t, out, "->")
}

func TestDOTRendersNodesAndEdges(t *testing.T) {
	sys := pinflow.NewSystem(pinflow.WithName("pipeline"))

	double := behaviors.NewMapper(func(v float64) float64 { return v * 2 })
	pins, err := sys.AddNode(double, pinflow.WithNodeName("double"))
	require.NoError(t, err)

	sink := behaviors.NewInspector[float64](nil)
	sinkPins, err := sys.AddNode(sink, pinflow.WithNodeName("display"))
	require.NoError(t, err)

	input := pinflow.CreateInput[float64](sys)
	in, err := pinflow.InputPin[float64](pins, "in")
	require.NoError(t, err)
	out, err := pinflow.OutputPin[float64](pins, "out")
	require.NoError(t, err)
	sinkIn, err := pinflow.InputPin[float64](sinkPins, "in")
	require.NoError(t, err)

	require.NoError(t, pinflow.Connect(sys, input, in))
	require.NoError(t, pinflow.Connect(sys, out, sinkIn))

	dot := viz.DOT(sys)

	assert.Contains(t, dot, `digraph "pipeline" {`)
	assert.Contains(t, dot, "rankdir=LR;")
	assert.Contains(t, dot, `"__input__" [label="input" shape=ellipse];`)
	assert.Contains(t, dot, `[label="double"];`)
	assert.Contains(t, dot, `[label="display"];`)

	nodes := sys.Nodes()
	require.Len(t, nodes, 2)
	assert.Contains(t, dot, fmt.Sprintf(`"__input__" -> %q [label="float64 [0->0]" fontsize=8];`, nodes[0].ID))
	assert.Contains(t, dot, fmt.Sprintf(`%q -> %q [label="float64 [0->0]" fontsize=8];`, nodes[0].ID, nodes[1].ID))
}

func TestWriteDOTMatchesDOT(t *testing.T) {
	sys := pinflow.NewSystem()
	pinflow.CreateInput[int](sys)

	var b strings.Builder
	viz.WriteDOT(&b, sys)
	assert.Equal(t, viz.DOT(sys), b.String())
	assert.Contains(t, b.String(), "__input__", "an unconnected input still shows the entry node")
}
