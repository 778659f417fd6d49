// Package viz exports pinflow graph topology as Graphviz DOT text.
// It only reads node and edge metadata; rendering a system can never
// influence propagation.
package viz

import (
	"fmt"
	"io"
	"strings"

	"github.com/gzp-crey/pinflow/pkg/pinflow"
)

// DOT renders the system's current topology as a Graphviz digraph.
// System inputs appear as a single entry node; every edge is labeled
// with its event type.
func DOT(sys *pinflow.System) string {
	var b strings.Builder
	WriteDOT(&b, sys)
	return b.String()
}

// WriteDOT writes the DOT rendering of sys to w.
func WriteDOT(w io.Writer, sys *pinflow.System) {
	fmt.Fprintf(w, "digraph %q {\n", sys.Name())
	fmt.Fprintf(w, "  rankdir=LR;\n")
	fmt.Fprintf(w, "  node [shape=box];\n")

	hasInputEdge := false
	for _, e := range sys.Edges() {
		if e.FromNode == "" {
			hasInputEdge = true
			break
		}
	}
	if hasInputEdge || sys.InputCount() > 0 {
		fmt.Fprintf(w, "  %q [label=\"input\" shape=ellipse];\n", inputNodeID)
	}

	for _, n := range sys.Nodes() {
		fmt.Fprintf(w, "  %q [label=%q];\n", n.ID, n.Name)
	}

	for _, e := range sys.Edges() {
		from := e.FromNode
		if from == "" {
			from = inputNodeID
		}
		fmt.Fprintf(w, "  %q -> %q [label=%q fontsize=8];\n", from, e.ToNode, edgeLabel(e))
	}

	fmt.Fprintf(w, "}\n")
}

// inputNodeID is the DOT identifier of the synthetic entry node that
// stands for all system inputs.
const inputNodeID = "__input__"

func edgeLabel(e pinflow.EdgeInfo) string {
	return fmt.Sprintf("%s [%d->%d]", e.Event, e.FromPin, e.ToPin)
}
