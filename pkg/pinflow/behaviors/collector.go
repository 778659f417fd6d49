package behaviors

import (
	"github.com/gzp-crey/pinflow/pkg/pinflow"
	"github.com/gzp-crey/pinflow/pkg/pinflow/slots"
)

// Collector is a sink node that accumulates every event pushed into it,
// in arrival order, across rounds. Its unbounded slot preserves fan-in
// ordering within a round.
//
// Pins: input "in".
type Collector[T any] struct {
	in   *slots.Unbounded[T]
	seen []T
}

// NewCollector creates an empty collector.
func NewCollector[T any]() *Collector[T] {
	return &Collector[T]{}
}

// Setup implements pinflow.Behavior.
func (c *Collector[T]) Setup(in *pinflow.InputSet, _ *pinflow.OutputSet) (pinflow.Pins, error) {
	c.in = &slots.Unbounded[T]{}
	pin := pinflow.AddSlot[T](in, c.in)
	return pinflow.NewPins().
		DefineIn("in", pinflow.NewInHandle[T](in, pin)), nil
}

// Behave implements pinflow.Behavior.
func (c *Collector[T]) Behave() {
	c.seen = append(c.seen, c.in.Drain()...)
}

// Seen returns the accumulated events in arrival order.
func (c *Collector[T]) Seen() []T {
	return c.seen
}

// Reset clears the accumulated events.
func (c *Collector[T]) Reset() {
	c.seen = nil
}
