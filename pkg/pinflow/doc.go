/*
Package pinflow provides a reactive dataflow runtime: independent
computation units (nodes) wired into a directed acyclic graph at run
time, with synchronous propagation of typed events driven by external
stimuli.

# Overview

A node binds a Behavior to its own input and output sets. Input
positions are Slot policies that decide how events buffer between
rounds (latch the last value, queue everything, ...). Output positions
are typed fan-out lists. Nodes never know each other's concrete types:
connections are established through opaque, type-checked handles, and a
type-erasure layer validates every erased operation against the
declared event type.

The System owns all nodes, validates connections (type compatibility
and acyclicity), and drives one propagation round per injected event:
nodes are visited in topological order and fired only if their input
set is dirty at visit time, exactly once per round.

# Basic Usage

	type Doubler struct {
	    in  *slots.StoreLast[int]
	    out *pinflow.Out[int]
	}

	func (d *Doubler) Setup(in *pinflow.InputSet, out *pinflow.OutputSet) (pinflow.Pins, error) {
	    d.in = &slots.StoreLast[int]{}
	    d.out = &pinflow.Out[int]{}
	    return pinflow.NewPins().
	        DefineIn("in", pinflow.NewInHandle[int](in, pinflow.AddSlot[int](in, d.in))).
	        DefineOut("out", pinflow.NewOutHandle[int](out, pinflow.AddOut(out, d.out))), nil
	}

	func (d *Doubler) Behave() {
	    if v, ok := d.in.Get(); ok {
	        d.out.Send(v * 2)
	    }
	}

	func main() {
	    sys := pinflow.NewSystem()
	    input := pinflow.CreateInput[int](sys)

	    pins, err := sys.AddNode(&Doubler{})
	    if err != nil {
	        log.Fatal(err)
	    }
	    in, _ := pinflow.InputPin[int](pins, "in")
	    if err := pinflow.Connect(sys, input, in); err != nil {
	        log.Fatal(err)
	    }
	    if err := pinflow.RunOn(sys, input, 21); err != nil {
	        log.Fatal(err)
	    }
	}

# Execution Model

Everything is single-threaded and non-preemptive: graph construction
and every propagation round run to completion on the caller's
goroutine. A node holds its input set exclusively while its Behave
runs; re-entering it is impossible because the graph is acyclic by
construction, and the runtime enforces the exclusivity with a guard
that panics on violation. Graph mutation from within a round is
rejected with ErrMutationDuringRun.

# Error Handling

Host-facing operations return errors the caller must inspect; a failed
operation never partially mutates graph state. Contract violations
(out-of-range pin indexes, erased-to-typed conversions with the wrong
type) panic instead: they signal defects in pin-layout or
handle-construction code, not runtime conditions.

# Subpackages

  - slots: ready-made slot policies (StoreLast, Unbounded, Distinct)
  - behaviors: ready-made behaviors (Inspector, Mapper, Binary, Collector)
  - blueprint: declarative YAML graph assembly
  - journal: propagation round recording (memory and SQLite stores)
  - observability: structured logging, OTel metrics and tracing
  - viz: Graphviz DOT export
*/
package pinflow
