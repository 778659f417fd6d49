package behaviors

import (
	"math"

	"github.com/gzp-crey/pinflow/pkg/pinflow"
	"github.com/gzp-crey/pinflow/pkg/pinflow/slots"
)

// Binary combines its two latched float64 inputs with an operator and
// sends the result. An input that has never been pushed reads as zero,
// so the node is usable as soon as either side fires.
//
// Pins: inputs "a" and "b", output "out".
type Binary struct {
	op  func(a, b float64) float64
	a   *slots.StoreLast[float64]
	b   *slots.StoreLast[float64]
	out *pinflow.Out[float64]
}

// NewBinary creates a binary operator node. Panics if op is nil.
func NewBinary(op func(a, b float64) float64) *Binary {
	if op == nil {
		panic("behaviors: binary operator cannot be nil")
	}
	return &Binary{op: op}
}

// Add returns a node computing a + b.
func Add() *Binary { return NewBinary(func(a, b float64) float64 { return a + b }) }

// Sub returns a node computing a - b.
func Sub() *Binary { return NewBinary(func(a, b float64) float64 { return a - b }) }

// Mul returns a node computing a * b.
func Mul() *Binary { return NewBinary(func(a, b float64) float64 { return a * b }) }

// Min returns a node computing min(a, b).
func Min() *Binary { return NewBinary(math.Min) }

// Max returns a node computing max(a, b).
func Max() *Binary { return NewBinary(math.Max) }

// Avg returns a node computing (a + b) / 2.
func Avg() *Binary { return NewBinary(func(a, b float64) float64 { return (a + b) / 2 }) }

// Setup implements pinflow.Behavior.
func (n *Binary) Setup(in *pinflow.InputSet, out *pinflow.OutputSet) (pinflow.Pins, error) {
	n.a = &slots.StoreLast[float64]{}
	n.b = &slots.StoreLast[float64]{}
	n.out = &pinflow.Out[float64]{}
	aPin := pinflow.AddSlot[float64](in, n.a)
	bPin := pinflow.AddSlot[float64](in, n.b)
	outPin := pinflow.AddOut(out, n.out)
	return pinflow.NewPins().
		DefineIn("a", pinflow.NewInHandle[float64](in, aPin)).
		DefineIn("b", pinflow.NewInHandle[float64](in, bPin)).
		DefineOut("out", pinflow.NewOutHandle[float64](out, outPin)), nil
}

// Behave implements pinflow.Behavior.
func (n *Binary) Behave() {
	n.out.Send(n.op(n.a.GetOr(0), n.b.GetOr(0)))
}
