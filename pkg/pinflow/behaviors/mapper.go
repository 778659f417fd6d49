package behaviors

import (
	"github.com/gzp-crey/pinflow/pkg/pinflow"
	"github.com/gzp-crey/pinflow/pkg/pinflow/slots"
)

// Mapper applies a pure function to the latest input event and sends
// the result.
//
// Pins: input "in", output "out".
type Mapper[T, U any] struct {
	fn  func(T) U
	in  *slots.StoreLast[T]
	out *pinflow.Out[U]
}

// NewMapper creates a mapping node. Panics if fn is nil.
func NewMapper[T, U any](fn func(T) U) *Mapper[T, U] {
	if fn == nil {
		panic("behaviors: mapper function cannot be nil")
	}
	return &Mapper[T, U]{fn: fn}
}

// Setup implements pinflow.Behavior.
func (m *Mapper[T, U]) Setup(in *pinflow.InputSet, out *pinflow.OutputSet) (pinflow.Pins, error) {
	m.in = &slots.StoreLast[T]{}
	m.out = &pinflow.Out[U]{}
	inPin := pinflow.AddSlot[T](in, m.in)
	outPin := pinflow.AddOut(out, m.out)
	return pinflow.NewPins().
		DefineIn("in", pinflow.NewInHandle[T](in, inPin)).
		DefineOut("out", pinflow.NewOutHandle[U](out, outPin)), nil
}

// Behave implements pinflow.Behavior.
func (m *Mapper[T, U]) Behave() {
	if v, ok := m.in.Get(); ok {
		m.out.Send(m.fn(v))
	}
}
