package pinflow

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/google/uuid"
)

// Behavior is the computation bound to one node.
//
// Setup is called exactly once, by System.AddNode, with the node's
// freshly allocated sets. The behavior registers its slot policies and
// outputs there (keeping the pointers for later reads and sends) and
// returns the named pin layout used for wiring.
//
// Behave is invoked only when the node's input set is dirty. It must
// read whatever is currently buffered in its inputs (a slot may be empty
// if it was never pushed; policies define a sensible empty read), compute
// zero or more output events, and send them through the outputs
// registered in Setup. Sending is synchronous and may deliver directly
// into downstream input sets within the same round.
type Behavior interface {
	Setup(inputs *InputSet, outputs *OutputSet) (Pins, error)
	Behave()
}

// node binds a behavior to its owned input and output sets. Only the
// System holds a strong reference to a node; every cross-node reference
// goes through non-owning handles.
type node struct {
	id       string
	name     string
	behavior Behavior
	inputs   *InputSet
	outputs  *OutputSet
	pins     Pins
}

func newNode(b Behavior, inputs *InputSet, outputs *OutputSet, pins Pins) *node {
	return &node{
		id:       fmt.Sprintf("node-%s", uuid.New().String()[:8]),
		name:     behaviorName(b),
		behavior: b,
		inputs:   inputs,
		outputs:  outputs,
		pins:     pins,
	}
}

// process fires the behavior if the input set is dirty and reports
// whether it fired. The input set is held exclusively for the duration
// of Behave, and the dirty flag is reset only after Behave returns so
// the invocation observes its own pending state. Events sent back into
// this node by downstream siblings cannot occur within the round; the
// graph is acyclic by construction.
func (n *node) process() bool {
	if !n.inputs.Dirty() {
		return false
	}
	n.inputs.locked = true
	n.behavior.Behave()
	n.inputs.locked = false
	n.inputs.ResetDirty()
	return true
}

// behaviorName derives a default node name from the behavior's type.
func behaviorName(b Behavior) string {
	t := reflect.TypeOf(b)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	name := t.Name()
	if i := strings.Index(name, "["); i >= 0 {
		name = name[:i]
	}
	if name == "" {
		name = "behavior"
	}
	return name
}
