package pinflow

import (
	"fmt"
	"reflect"
)

// InHandle is a type-erased, non-owning reference to one input slot.
// Besides the (set ID, pin index, event type) triple it carries a direct
// reference to the target set so delivery does not need a System lookup.
// The reference never keeps a removed node alive in any observable way:
// delivery to a detached set is a silent no-op.
type InHandle struct {
	target *InputSet
	set    InputSetID
	pin    int
	event  reflect.Type
}

// NewInHandle creates a handle to slot pin of set, validating that the
// slot's declared event type is T. Typed constructors are the only
// sanctioned way to produce a well-typed handle, so a mismatch panics.
func NewInHandle[T any](set *InputSet, pin int) InHandle {
	declared, ok := set.slotType(pin)
	if !ok {
		panic(fmt.Sprintf("pinflow: input pin %d out of range (set has %d slots)", pin, set.Len()))
	}
	want := reflect.TypeOf((*T)(nil)).Elem()
	if declared != want {
		panic(fmt.Sprintf("pinflow: input pin %d holds %s events, not %s", pin, declared, want))
	}
	return InHandle{target: set, set: set.ID(), pin: pin, event: want}
}

// SetID returns the identity of the referenced input set.
func (h InHandle) SetID() InputSetID {
	return h.set
}

// Pin returns the slot index within the referenced set.
func (h InHandle) Pin() int {
	return h.pin
}

// EventType returns the event type tag recorded at construction.
func (h InHandle) EventType() reflect.Type {
	return h.event
}

// push delivers an erased event to the referenced slot. A vanished
// target resolves to a no-op, never to dangling access.
func (h InHandle) push(event any) {
	if h.target == nil || h.target.detached {
		return
	}
	h.target.Push(h.pin, event)
}

// TypedInHandle is the statically typed counterpart of InHandle.
type TypedInHandle[T any] struct {
	h InHandle
}

// TypedIn converts an erased handle to a typed one.
// Panics if the handle's event type tag is not T: erased handles are
// produced only by typed constructors, so a mismatch is a defect.
func TypedIn[T any](h InHandle) TypedInHandle[T] {
	if h.event != reflect.TypeOf((*T)(nil)).Elem() {
		panic(fmt.Sprintf("pinflow: handle carries %s events, not %s", h.event, reflect.TypeOf((*T)(nil)).Elem()))
	}
	return TypedInHandle[T]{h: h}
}

// Handle returns the erased form for dynamic wiring.
func (h TypedInHandle[T]) Handle() InHandle {
	return h.h
}

func (h TypedInHandle[T]) push(event T) {
	h.h.push(event)
}

// OutHandle is a type-erased, non-owning reference to one output slot.
// It names the slot by (set ID, pin index, event type) only; resolution
// goes through the System registry.
type OutHandle struct {
	set   OutputSetID
	pin   int
	event reflect.Type
}

// NewOutHandle creates a handle to output pin of set, validating that
// the output's declared event type is T. Panics on mismatch, like
// NewInHandle.
func NewOutHandle[T any](set *OutputSet, pin int) OutHandle {
	declared, ok := set.outType(pin)
	if !ok {
		panic(fmt.Sprintf("pinflow: output pin %d out of range (set has %d outputs)", pin, set.Len()))
	}
	want := reflect.TypeOf((*T)(nil)).Elem()
	if declared != want {
		panic(fmt.Sprintf("pinflow: output pin %d holds %s events, not %s", pin, declared, want))
	}
	return OutHandle{set: set.ID(), pin: pin, event: want}
}

// SetID returns the identity of the referenced output set.
func (h OutHandle) SetID() OutputSetID {
	return h.set
}

// Pin returns the output index within the referenced set.
func (h OutHandle) Pin() int {
	return h.pin
}

// EventType returns the event type tag recorded at construction.
func (h OutHandle) EventType() reflect.Type {
	return h.event
}

// TypedOutHandle is the statically typed counterpart of OutHandle.
type TypedOutHandle[T any] struct {
	h OutHandle
}

// TypedOut converts an erased handle to a typed one.
// Panics if the handle's event type tag is not T.
func TypedOut[T any](h OutHandle) TypedOutHandle[T] {
	if h.event != reflect.TypeOf((*T)(nil)).Elem() {
		panic(fmt.Sprintf("pinflow: handle carries %s events, not %s", h.event, reflect.TypeOf((*T)(nil)).Elem()))
	}
	return TypedOutHandle[T]{h: h}
}

// Handle returns the erased form for dynamic wiring.
func (h TypedOutHandle[T]) Handle() OutHandle {
	return h.h
}
