// Package behaviors provides ready-made node behaviors built on the
// public pinflow surface: an inspector for diagnostics, a generic
// mapping node, binary float operators, and a fan-in collector.
package behaviors

import (
	"log/slog"

	"github.com/gzp-crey/pinflow/pkg/pinflow"
	"github.com/gzp-crey/pinflow/pkg/pinflow/slots"
)

// Inspector is a sink node that remembers the last event it saw and
// optionally logs each one. Useful as a probe at any point of a graph.
//
// Pins: input "in".
type Inspector[T any] struct {
	logger *slog.Logger
	in     *slots.StoreLast[T]
	last   T
	seen   bool
}

// NewInspector creates an inspector. logger may be nil to disable
// logging.
func NewInspector[T any](logger *slog.Logger) *Inspector[T] {
	return &Inspector[T]{logger: logger}
}

// Setup implements pinflow.Behavior.
func (i *Inspector[T]) Setup(in *pinflow.InputSet, _ *pinflow.OutputSet) (pinflow.Pins, error) {
	i.in = &slots.StoreLast[T]{}
	pin := pinflow.AddSlot[T](in, i.in)
	return pinflow.NewPins().
		DefineIn("in", pinflow.NewInHandle[T](in, pin)), nil
}

// Behave implements pinflow.Behavior.
func (i *Inspector[T]) Behave() {
	v, ok := i.in.Take()
	if !ok {
		return
	}
	i.last = v
	i.seen = true
	if i.logger != nil {
		i.logger.Debug("event observed", slog.Any("event", v))
	}
}

// Last returns the last observed event and whether any has been seen.
func (i *Inspector[T]) Last() (T, bool) {
	return i.last, i.seen
}
