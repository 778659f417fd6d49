package pinflow

import (
	"fmt"
	"reflect"
)

// Slot is the buffering policy of one input position. Implementations
// decide what happens to events that arrive between two propagation
// rounds: latch the last one, queue all of them, debounce, and so on.
//
// Push buffers the event and reports whether the owning input set should
// be marked dirty. Most policies return true unconditionally; a policy
// like deduplication may return false to suppress a round.
//
// Push never fails: type checking happens earlier, at connect time and
// at the type-erasure boundary, so a mismatched event can never reach
// the policy.
type Slot[T any] interface {
	Push(event T) bool
}

// slot is the type-erased view of a Slot used by InputSet.
type slot interface {
	eventType() reflect.Type
	push(event any) bool
}

// slotOf adapts a typed Slot to the erased slot interface.
type slotOf[T any] struct {
	policy Slot[T]
}

func (s slotOf[T]) eventType() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

func (s slotOf[T]) push(event any) bool {
	ev, ok := event.(T)
	if !ok {
		// A mismatch here means a handle was constructed outside the
		// sanctioned typed constructors. That is a defect, not a
		// runtime condition.
		panic(fmt.Sprintf("pinflow: slot expects %s, got %T", reflect.TypeOf((*T)(nil)).Elem(), event))
	}
	return s.policy.Push(ev)
}

// InputSet holds all input positions of one node. Slots are registered
// during Behavior.Setup and addressed by index afterwards. The set keeps
// an aggregate dirty flag that is ORed with the result of every push.
//
// An InputSet is owned exclusively by its node; everything else refers
// to it through non-owning handles.
type InputSet struct {
	id    InputSetID
	slots []slot
	dirty bool

	// locked is set while the owning node's Behave runs. A push into a
	// locked set is a re-entry into the running node, which the
	// acyclicity invariant makes impossible for well-formed graphs.
	locked bool

	// detached marks the set as belonging to a removed node. Deliveries
	// through stale handles become silent no-ops.
	detached bool
}

// NewInputSet creates an empty input set with a fresh process-unique ID.
func NewInputSet() *InputSet {
	return &InputSet{id: nextInputSetID()}
}

// ID returns the process-unique identity of the set.
func (s *InputSet) ID() InputSetID {
	return s.id
}

// Len returns the number of registered slots.
func (s *InputSet) Len() int {
	return len(s.slots)
}

// Dirty reports whether any push marked the set dirty since the last reset.
func (s *InputSet) Dirty() bool {
	return s.dirty
}

// ResetDirty clears the aggregate dirty flag.
func (s *InputSet) ResetDirty() {
	s.dirty = false
}

// AddSlot registers policy as the next input position of the set and
// returns its index. Called from Behavior.Setup.
func AddSlot[T any](s *InputSet, policy Slot[T]) int {
	if policy == nil {
		panic("pinflow: slot policy cannot be nil")
	}
	s.slots = append(s.slots, slotOf[T]{policy: policy})
	return len(s.slots) - 1
}

// Push delivers an erased event to the slot at index and folds the
// policy's result into the dirty flag.
//
// Panics on an out-of-range index or a mismatched event type: both
// indicate broken pin-layout or handle-construction code that the handle
// system was supposed to have prevented.
func (s *InputSet) Push(index int, event any) {
	if s.locked {
		panic("pinflow: input set re-entered during Behave")
	}
	if index < 0 || index >= len(s.slots) {
		panic(fmt.Sprintf("pinflow: input index %d out of range (set has %d slots)", index, len(s.slots)))
	}
	if s.slots[index].push(event) {
		s.dirty = true
	}
}

// slotType returns the declared event type of the slot at index.
func (s *InputSet) slotType(index int) (reflect.Type, bool) {
	if index < 0 || index >= len(s.slots) {
		return nil, false
	}
	return s.slots[index].eventType(), true
}

// detach marks the set as owned by a removed node.
func (s *InputSet) detach() {
	s.detached = true
}
