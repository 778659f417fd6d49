package pinflow

import (
	"fmt"
	"reflect"
)

// Out is one output position of a node: a fan-out list of downstream
// input targets for a single event type. Sending pushes the event to
// every registered listener in registration order.
//
// A Behavior allocates its Outs during Setup, registers them on its
// OutputSet, and keeps the pointers so Behave can send through them.
type Out[T any] struct {
	listeners []TypedInHandle[T]
}

// Send delivers event to every connected listener. A listener whose
// target node has been removed is skipped silently.
func (o *Out[T]) Send(event T) {
	for _, l := range o.listeners {
		l.push(event)
	}
}

// out is the type-erased view of an Out used by OutputSet.
type out interface {
	eventType() reflect.Type
	sendAny(event any) error
	connectAny(h InHandle) error
	fanout() []InHandle
}

func (o *Out[T]) eventType() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// sendAny delivers an erased event, rejecting events of the wrong type.
// Unlike the typed path this is reachable from host code via the erased
// API, so the mismatch surfaces as an error rather than a panic.
func (o *Out[T]) sendAny(event any) error {
	ev, ok := event.(T)
	if !ok {
		return fmt.Errorf("%w: %s output cannot send %T", ErrUnexpectedEventType, reflect.TypeOf((*T)(nil)).Elem(), event)
	}
	o.Send(ev)
	return nil
}

// connectAny registers a listener after validating its event type.
// On mismatch nothing is registered.
func (o *Out[T]) connectAny(h InHandle) error {
	if h.EventType() != reflect.TypeOf((*T)(nil)).Elem() {
		return &PinTypeError{Out: reflect.TypeOf((*T)(nil)).Elem(), In: h.EventType()}
	}
	o.listeners = append(o.listeners, TypedIn[T](h))
	return nil
}

func (o *Out[T]) fanout() []InHandle {
	handles := make([]InHandle, len(o.listeners))
	for i, l := range o.listeners {
		handles[i] = l.Handle()
	}
	return handles
}

// OutputSet holds all output positions of one node. Outs are registered
// during Behavior.Setup and addressed by index afterwards.
//
// An OutputSet is owned exclusively by its node; everything else refers
// to it by ID through non-owning handles.
type OutputSet struct {
	id   OutputSetID
	outs []out
}

// NewOutputSet creates an empty output set with a fresh process-unique ID.
func NewOutputSet() *OutputSet {
	return &OutputSet{id: nextOutputSetID()}
}

// ID returns the process-unique identity of the set.
func (s *OutputSet) ID() OutputSetID {
	return s.id
}

// Len returns the number of registered outputs.
func (s *OutputSet) Len() int {
	return len(s.outs)
}

// AddOut registers o as the next output position of the set and returns
// its index. Called from Behavior.Setup.
func AddOut[T any](s *OutputSet, o *Out[T]) int {
	if o == nil {
		panic("pinflow: output cannot be nil")
	}
	s.outs = append(s.outs, o)
	return len(s.outs) - 1
}

// Connect validates the handle's event type against the output at index
// and registers it as a listener. Returns ErrIncompatiblePinTypes
// (wrapped in a PinTypeError) on mismatch, leaving the fan-out list
// untouched.
//
// Panics on an out-of-range index: the output pin of a connection comes
// from a pin layout, so a bad index is a defect in layout code.
func (s *OutputSet) Connect(index int, h InHandle) error {
	if index < 0 || index >= len(s.outs) {
		panic(fmt.Sprintf("pinflow: output index %d out of range (set has %d outputs)", index, len(s.outs)))
	}
	return s.outs[index].connectAny(h)
}

// at returns the erased output at index.
func (s *OutputSet) at(index int) (out, bool) {
	if index < 0 || index >= len(s.outs) {
		return nil, false
	}
	return s.outs[index], true
}

// outType returns the declared event type of the output at index.
func (s *OutputSet) outType(index int) (reflect.Type, bool) {
	if index < 0 || index >= len(s.outs) {
		return nil, false
	}
	return s.outs[index].eventType(), true
}
