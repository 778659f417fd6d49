package pinflow

import (
	"fmt"
	"sort"
)

// Pins is the named pin layout of a node: the host-facing map of where
// each input and output lives. A Behavior builds it during Setup and the
// System hands it back to the caller of AddNode for wiring.
//
// Pins is a pure description. Looking pins up has no side effects and is
// valid before the node has ever executed.
type Pins struct {
	ins  map[string]InHandle
	outs map[string]OutHandle
}

// NewPins creates an empty pin layout.
func NewPins() Pins {
	return Pins{
		ins:  make(map[string]InHandle),
		outs: make(map[string]OutHandle),
	}
}

// DefineIn names an input handle. Returns the layout for chaining.
// Panics on a duplicate name: pin layouts are built by behavior code,
// so a clash is a defect.
func (p Pins) DefineIn(name string, h InHandle) Pins {
	if _, exists := p.ins[name]; exists {
		panic(fmt.Sprintf("pinflow: duplicate input pin %q", name))
	}
	p.ins[name] = h
	return p
}

// DefineOut names an output handle. Returns the layout for chaining.
// Panics on a duplicate name.
func (p Pins) DefineOut(name string, h OutHandle) Pins {
	if _, exists := p.outs[name]; exists {
		panic(fmt.Sprintf("pinflow: duplicate output pin %q", name))
	}
	p.outs[name] = h
	return p
}

// In returns the erased input handle with the given name.
func (p Pins) In(name string) (InHandle, bool) {
	h, ok := p.ins[name]
	return h, ok
}

// Out returns the erased output handle with the given name.
func (p Pins) Out(name string) (OutHandle, bool) {
	h, ok := p.outs[name]
	return h, ok
}

// InNames returns the input pin names in sorted order.
func (p Pins) InNames() []string {
	names := make([]string, 0, len(p.ins))
	for name := range p.ins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// OutNames returns the output pin names in sorted order.
func (p Pins) OutNames() []string {
	names := make([]string, 0, len(p.outs))
	for name := range p.outs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// InputPin returns the typed input handle with the given name.
// Returns ErrPinNotFound if the layout has no such input; panics if the
// pin exists but holds a different event type (see TypedIn).
func InputPin[T any](p Pins, name string) (TypedInHandle[T], error) {
	h, ok := p.ins[name]
	if !ok {
		return TypedInHandle[T]{}, fmt.Errorf("%w: input %q", ErrPinNotFound, name)
	}
	return TypedIn[T](h), nil
}

// OutputPin returns the typed output handle with the given name.
// Returns ErrPinNotFound if the layout has no such output; panics if the
// pin exists but holds a different event type (see TypedOut).
func OutputPin[T any](p Pins, name string) (TypedOutHandle[T], error) {
	h, ok := p.outs[name]
	if !ok {
		return TypedOutHandle[T]{}, fmt.Errorf("%w: output %q", ErrPinNotFound, name)
	}
	return TypedOut[T](h), nil
}
