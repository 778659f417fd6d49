package pinflow

import (
	"errors"
	"fmt"
	"reflect"
)

// Sentinel errors for graph wiring.
var (
	// ErrCycle indicates a connection would make the graph non-acyclic.
	ErrCycle = errors.New("connection would create a cycle")

	// ErrInputNotFound indicates an input handle references a set unknown
	// to this System (foreign handle, or the owning node is gone).
	ErrInputNotFound = errors.New("input not found")

	// ErrOutputNotFound indicates an output handle references a set unknown
	// to this System (foreign handle, or the owning node is gone).
	ErrOutputNotFound = errors.New("output not found")

	// ErrIncompatiblePinTypes indicates the two handles of a connection
	// carry different event types.
	ErrIncompatiblePinTypes = errors.New("pin event types do not match")

	// ErrPinNotFound indicates a pin layout has no pin with the given name.
	ErrPinNotFound = errors.New("pin not found")
)

// Sentinel errors for propagation.
var (
	// ErrUnexpectedEventType indicates an erased event failed to match an
	// output's declared event type. Reachable only through the erased API.
	ErrUnexpectedEventType = errors.New("unexpected event type")

	// ErrMutationDuringRun indicates an attempt to mutate graph structure
	// (or start a nested round) from within a propagation round.
	ErrMutationDuringRun = errors.New("graph mutation during propagation round")

	// ErrNodeNotFound indicates a node ID is unknown to this System.
	ErrNodeNotFound = errors.New("node not found")
)

// PinTypeError reports the mismatched event types of a rejected connection.
type PinTypeError struct {
	// Out is the event type declared by the output pin.
	Out reflect.Type
	// In is the event type declared by the input pin.
	In reflect.Type
}

// Error implements the error interface.
func (e *PinTypeError) Error() string {
	return fmt.Sprintf("cannot connect %s output to %s input", e.Out, e.In)
}

// Unwrap returns ErrIncompatiblePinTypes for errors.Is support.
func (e *PinTypeError) Unwrap() error {
	return ErrIncompatiblePinTypes
}

// CycleError reports the edge that would have closed a cycle.
type CycleError struct {
	// FromNode is the node owning the output pin.
	FromNode string
	// ToNode is the node owning the input pin.
	ToNode string
}

// Error implements the error interface.
func (e *CycleError) Error() string {
	return fmt.Sprintf("edge %s -> %s would close a cycle", e.FromNode, e.ToNode)
}

// Unwrap returns ErrCycle for errors.Is support.
func (e *CycleError) Unwrap() error {
	return ErrCycle
}
