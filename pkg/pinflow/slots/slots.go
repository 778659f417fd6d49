// Package slots provides ready-made input slot policies.
//
// A slot policy owns the buffering behavior of one input position: what
// happens to events that arrive between two propagation rounds. The
// policies here cover the common cases; hosts can implement
// pinflow.Slot directly for anything else (debouncing, sampling, ...).
package slots

import "github.com/gzp-crey/pinflow/pkg/pinflow"

// Compile-time interface checks.
var (
	_ pinflow.Slot[int] = (*StoreLast[int])(nil)
	_ pinflow.Slot[int] = (*Unbounded[int])(nil)
	_ pinflow.Slot[int] = (*Distinct[int])(nil)
)

// StoreLast latches the most recent event. Each push overwrites the
// previous value, so at most one pending event is visible to Behave.
type StoreLast[T any] struct {
	value T
	set   bool
}

// Push implements pinflow.Slot.
func (s *StoreLast[T]) Push(event T) bool {
	s.value = event
	s.set = true
	return true
}

// Get returns the latched value and whether one has ever been pushed.
func (s *StoreLast[T]) Get() (T, bool) {
	return s.value, s.set
}

// Take returns the latched value and clears the latch.
func (s *StoreLast[T]) Take() (T, bool) {
	v, ok := s.value, s.set
	var zero T
	s.value, s.set = zero, false
	return v, ok
}

// MustGet returns the latched value.
// Panics if nothing has been pushed; call it only from a Behave that is
// guaranteed dirty through this slot.
func (s *StoreLast[T]) MustGet() T {
	if !s.set {
		panic("slots: StoreLast is empty")
	}
	return s.value
}

// GetOr returns the latched value, or def if nothing has been pushed.
func (s *StoreLast[T]) GetOr(def T) T {
	if !s.set {
		return def
	}
	return s.value
}

// Unbounded queues every event in arrival order with no capacity limit.
type Unbounded[T any] struct {
	events []T
}

// Push implements pinflow.Slot.
func (u *Unbounded[T]) Push(event T) bool {
	u.events = append(u.events, event)
	return true
}

// Len returns the number of queued events.
func (u *Unbounded[T]) Len() int {
	return len(u.events)
}

// Drain returns the queued events in arrival order and empties the queue.
func (u *Unbounded[T]) Drain() []T {
	events := u.events
	u.events = nil
	return events
}

// Distinct latches the most recent event but only marks the input set
// dirty when the value actually changes, suppressing rounds for
// repeated identical events.
type Distinct[T comparable] struct {
	value T
	set   bool
}

// Push implements pinflow.Slot.
func (d *Distinct[T]) Push(event T) bool {
	if d.set && d.value == event {
		return false
	}
	d.value = event
	d.set = true
	return true
}

// Get returns the latched value and whether one has ever been pushed.
func (d *Distinct[T]) Get() (T, bool) {
	return d.value, d.set
}
