package pinflow

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"

	"github.com/gzp-crey/pinflow/pkg/pinflow/journal"
	"github.com/gzp-crey/pinflow/pkg/pinflow/observability"
)

// System owns every node of one dataflow graph and drives propagation
// rounds. The host builds the graph by registering nodes and connecting
// pins, then injects events through system inputs; each injection runs
// exactly one synchronous propagation round on the caller's goroutine.
//
// A System is not safe for concurrent use. Graph mutation from within a
// running round is rejected with ErrMutationDuringRun.
type System struct {
	cfg systemConfig

	// inputs is the system-level dynamic output set whose pins are the
	// externally triggerable injection points.
	inputs *OutputSet

	// Set registries for handle resolution. Entries are dropped when the
	// owning node is removed, so a stale handle resolves to "not found"
	// rather than dangling access.
	inputSets  map[InputSetID]*InputSet
	outputSets map[OutputSetID]*OutputSet
	ownerOfIn  map[InputSetID]*node
	ownerOfOut map[OutputSetID]*node

	nodes []*node
	byID  map[string]*node

	// Connection topology at node granularity. adj counts parallel pin
	// edges between two nodes; order is a topological order over nodes,
	// recomputed on every successful connect rather than per event.
	adj   map[string]map[string]int
	edges []EdgeInfo
	order []*node

	running bool
}

// NodeInfo describes one registered node for diagnostics. Read-only:
// inspecting a System never influences propagation.
type NodeInfo struct {
	ID        string
	Name      string
	InputSet  InputSetID
	OutputSet OutputSetID
	Inputs    []string
	Outputs   []string
}

// EdgeInfo describes one committed pin connection.
type EdgeInfo struct {
	// FromNode is empty when the source is a system input.
	FromNode string
	FromPin  int
	ToNode   string
	ToPin    int
	// Event is the name of the event type flowing on the edge.
	Event string
}

// NewSystem creates an empty system.
func NewSystem(opts ...Option) *System {
	cfg := defaultSystemConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &System{
		cfg:        cfg,
		inputs:     NewOutputSet(),
		inputSets:  make(map[InputSetID]*InputSet),
		outputSets: make(map[OutputSetID]*OutputSet),
		ownerOfIn:  make(map[InputSetID]*node),
		ownerOfOut: make(map[OutputSetID]*node),
		byID:       make(map[string]*node),
		adj:        make(map[string]map[string]int),
	}
}

// CreateInput allocates a new externally triggerable pin on the
// system-level input set and returns the handle host code injects
// events through.
//
// Panics if called from within a propagation round.
func CreateInput[T any](s *System) TypedOutHandle[T] {
	if s.running {
		panic("pinflow: " + ErrMutationDuringRun.Error())
	}
	pin := AddOut(s.inputs, &Out[T]{})
	return TypedOut[T](NewOutHandle[T](s.inputs, pin))
}

// AddNode constructs the node for behavior, registers its sets for
// handle resolution, and returns the pin layout produced by the
// behavior's Setup. The System takes ownership of the node.
func (s *System) AddNode(behavior Behavior, opts ...NodeOption) (Pins, error) {
	if s.running {
		return Pins{}, ErrMutationDuringRun
	}
	if behavior == nil {
		return Pins{}, fmt.Errorf("behavior cannot be nil")
	}

	inputs := NewInputSet()
	outputs := NewOutputSet()
	pins, err := behavior.Setup(inputs, outputs)
	if err != nil {
		return Pins{}, fmt.Errorf("setup behavior: %w", err)
	}

	n := newNode(behavior, inputs, outputs, pins)
	for _, opt := range opts {
		opt(n)
	}
	if _, exists := s.byID[n.id]; exists {
		// uuid collision; practically unreachable
		return Pins{}, fmt.Errorf("duplicate node ID %s", n.id)
	}

	s.inputSets[inputs.ID()] = inputs
	s.outputSets[outputs.ID()] = outputs
	s.ownerOfIn[inputs.ID()] = n
	s.ownerOfOut[outputs.ID()] = n
	s.nodes = append(s.nodes, n)
	s.byID[n.id] = n
	// A fresh node has no edges, so appending keeps the order valid.
	s.order = append(s.order, n)

	observability.LogNodeAdded(s.cfg.logger, n.id, n.name)
	return pins, nil
}

// RemoveNode drops a node from the system. Stale handles held by
// upstream fan-out lists keep resolving, to a silent no-op, so no
// coordinated cleanup of the surrounding graph is needed.
func (s *System) RemoveNode(nodeID string) error {
	if s.running {
		return ErrMutationDuringRun
	}
	n, ok := s.byID[nodeID]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNodeNotFound, nodeID)
	}

	n.inputs.detach()
	delete(s.inputSets, n.inputs.ID())
	delete(s.outputSets, n.outputs.ID())
	delete(s.ownerOfIn, n.inputs.ID())
	delete(s.ownerOfOut, n.outputs.ID())
	delete(s.byID, nodeID)

	s.nodes = removeNodeFrom(s.nodes, n)
	s.order = removeNodeFrom(s.order, n)

	delete(s.adj, nodeID)
	for _, targets := range s.adj {
		delete(targets, nodeID)
	}
	kept := s.edges[:0]
	for _, e := range s.edges {
		if e.FromNode != nodeID && e.ToNode != nodeID {
			kept = append(kept, e)
		}
	}
	s.edges = kept
	return nil
}

func removeNodeFrom(nodes []*node, n *node) []*node {
	for i, cur := range nodes {
		if cur == n {
			return append(nodes[:i], nodes[i+1:]...)
		}
	}
	return nodes
}

// Connect wires a typed output pin to a typed input pin. The shared type
// parameter makes mismatched connections unrepresentable; validation of
// set liveness and acyclicity still happens at run time.
func Connect[T any](s *System, out TypedOutHandle[T], in TypedInHandle[T]) error {
	return s.ConnectAny(out.Handle(), in.Handle())
}

// ConnectAny wires an output pin to an input pin from erased handles.
//
// The connection is rejected, with no state change, when the event types
// differ (ErrIncompatiblePinTypes), when either set is unknown to this
// system (ErrOutputNotFound, ErrInputNotFound), or when the edge would
// close a cycle (ErrCycle). On success the node-level topological order
// is recomputed so propagation stays correct.
func (s *System) ConnectAny(out OutHandle, in InHandle) error {
	if s.running {
		return ErrMutationDuringRun
	}
	if out.EventType() != in.EventType() {
		return &PinTypeError{Out: out.EventType(), In: in.EventType()}
	}

	outSet, fromNode, ok := s.resolveOutputSet(out.SetID())
	if !ok {
		return fmt.Errorf("%w: output set %d", ErrOutputNotFound, out.SetID())
	}
	toNode, ok := s.ownerOfIn[in.SetID()]
	if !ok {
		return fmt.Errorf("%w: input set %d", ErrInputNotFound, in.SetID())
	}

	// System inputs have no upstream, so they can never close a cycle.
	if fromNode != nil && s.reachable(toNode.id, fromNode.id) {
		return &CycleError{FromNode: fromNode.id, ToNode: toNode.id}
	}

	if err := outSet.Connect(out.Pin(), in); err != nil {
		return err
	}

	fromID := ""
	if fromNode != nil {
		fromID = fromNode.id
	}
	s.addEdge(fromID, toNode.id)
	s.edges = append(s.edges, EdgeInfo{
		FromNode: fromID,
		FromPin:  out.Pin(),
		ToNode:   toNode.id,
		ToPin:    in.Pin(),
		Event:    out.EventType().String(),
	})
	s.reorder()

	observability.LogConnect(s.cfg.logger, fromID, toNode.id, out.EventType().String())
	return nil
}

// resolveOutputSet maps a set ID to the set and its owning node.
// The owning node is nil for the system input set.
func (s *System) resolveOutputSet(id OutputSetID) (*OutputSet, *node, bool) {
	if id == s.inputs.ID() {
		return s.inputs, nil, true
	}
	set, ok := s.outputSets[id]
	if !ok {
		return nil, nil, false
	}
	return set, s.ownerOfOut[id], true
}

// RunOn delivers event into the named system input and executes one
// full propagation round before returning.
func RunOn[T any](s *System, input TypedOutHandle[T], event T) error {
	return RunOnContext(context.Background(), s, input, event)
}

// RunOnContext is RunOn with a caller-supplied context for tracing and
// metrics. The context is never used for cancellation: a round always
// runs to completion.
func RunOnContext[T any](ctx context.Context, s *System, input TypedOutHandle[T], event T) error {
	if s.running {
		return ErrMutationDuringRun
	}
	o, err := s.resolveInput(input.Handle())
	if err != nil {
		return err
	}
	// The concrete type is guaranteed by the typed handle constructors.
	o.(*Out[T]).Send(event)
	s.run(ctx, input.Handle().Pin())
	return nil
}

// RunOnAny is the erased counterpart of RunOn for dynamic wiring.
// An event that does not match the input's declared type is rejected
// with ErrUnexpectedEventType before any delivery.
func (s *System) RunOnAny(input OutHandle, event any) error {
	return s.RunOnAnyContext(context.Background(), input, event)
}

// RunOnAnyContext is RunOnAny with a caller-supplied context.
func (s *System) RunOnAnyContext(ctx context.Context, input OutHandle, event any) error {
	if s.running {
		return ErrMutationDuringRun
	}
	o, err := s.resolveInput(input)
	if err != nil {
		return err
	}
	if err := o.sendAny(event); err != nil {
		return err
	}
	s.run(ctx, input.Pin())
	return nil
}

// resolveInput maps a handle to a pin of the system input set.
func (s *System) resolveInput(input OutHandle) (out, error) {
	if input.SetID() != s.inputs.ID() {
		return nil, fmt.Errorf("%w: handle does not name a system input", ErrInputNotFound)
	}
	o, ok := s.inputs.at(input.Pin())
	if !ok {
		return nil, fmt.Errorf("%w: system input %d", ErrInputNotFound, input.Pin())
	}
	return o, nil
}

// run executes one propagation round: visit nodes in topological order,
// firing each node that is dirty at the moment of its visit. A node is
// never revisited within a round; an event sent to an already-processed
// node is latched for the next round. Dirtiness is checked at visit time
// because a node downstream of several producers may only become dirty
// partway through the round.
func (s *System) run(ctx context.Context, inputPin int) {
	s.running = true
	defer func() { s.running = false }()

	roundID := fmt.Sprintf("round-%s", uuid.New().String()[:8])
	start := time.Now()
	observability.LogRoundStart(s.cfg.logger, s.cfg.name, roundID)

	runCtx := ctx
	var roundSpan trace.Span
	if s.cfg.tracing {
		runCtx, roundSpan = s.cfg.spans.StartRoundSpan(ctx, s.cfg.name, roundID)
		defer func() { s.cfg.spans.EndSpanWithError(roundSpan, nil) }()
	}

	var fires []journal.NodeFire
	for _, n := range s.order {
		if !n.inputs.Dirty() {
			continue
		}

		nodeCtx := runCtx
		var nodeSpan trace.Span
		if s.cfg.tracing {
			nodeCtx, nodeSpan = s.cfg.spans.StartNodeSpan(runCtx, n.id)
		}
		nodeStart := time.Now()
		n.process()
		nodeDuration := time.Since(nodeStart)
		if s.cfg.tracing {
			s.cfg.spans.EndSpanWithError(nodeSpan, nil)
		}

		s.cfg.metrics.RecordNodeFire(nodeCtx, n.id, nodeDuration)
		observability.LogNodeFired(s.cfg.logger, n.id, n.name, float64(nodeDuration.Milliseconds()))
		fires = append(fires, journal.NodeFire{
			NodeID:     n.id,
			Name:       n.name,
			DurationMS: float64(nodeDuration.Milliseconds()),
		})
	}

	duration := time.Since(start)
	s.cfg.metrics.RecordRound(ctx, duration, len(fires))
	observability.LogRoundComplete(s.cfg.logger, roundID, float64(duration.Milliseconds()), len(fires))

	if s.cfg.journal != nil {
		rec := journal.NewRecord(roundID, inputPin, start, duration, fires)
		if err := s.cfg.journal.Append(rec); err != nil {
			observability.LogJournalError(s.cfg.logger, roundID, err)
		}
	}
}

// Name returns the configured system name.
func (s *System) Name() string {
	return s.cfg.name
}

// InputCount returns the number of system-level input pins.
func (s *System) InputCount() int {
	return s.inputs.Len()
}

// Nodes returns a snapshot of the registered nodes in registration order.
func (s *System) Nodes() []NodeInfo {
	infos := make([]NodeInfo, len(s.nodes))
	for i, n := range s.nodes {
		infos[i] = NodeInfo{
			ID:        n.id,
			Name:      n.name,
			InputSet:  n.inputs.ID(),
			OutputSet: n.outputs.ID(),
			Inputs:    n.pins.InNames(),
			Outputs:   n.pins.OutNames(),
		}
	}
	return infos
}

// Edges returns a snapshot of the committed connections in connection order.
func (s *System) Edges() []EdgeInfo {
	edges := make([]EdgeInfo, len(s.edges))
	copy(edges, s.edges)
	return edges
}
