package pinflow_test

import (
	"github.com/gzp-crey/pinflow/pkg/pinflow"
	"github.com/gzp-crey/pinflow/pkg/pinflow/slots"
)

// passthrough forwards its float input, applying fn. Counts firings.
type passthrough struct {
	fn    func(float64) float64
	in    *slots.StoreLast[float64]
	out   *pinflow.Out[float64]
	fired int
}

func newPassthrough(fn func(float64) float64) *passthrough {
	if fn == nil {
		fn = func(v float64) float64 { return v }
	}
	return &passthrough{fn: fn}
}

func (p *passthrough) Setup(in *pinflow.InputSet, out *pinflow.OutputSet) (pinflow.Pins, error) {
	p.in = &slots.StoreLast[float64]{}
	p.out = &pinflow.Out[float64]{}
	inPin := pinflow.AddSlot[float64](in, p.in)
	outPin := pinflow.AddOut(out, p.out)
	return pinflow.NewPins().
		DefineIn("in", pinflow.NewInHandle[float64](in, inPin)).
		DefineOut("out", pinflow.NewOutHandle[float64](out, outPin)), nil
}

func (p *passthrough) Behave() {
	p.fired++
	if v, ok := p.in.Get(); ok {
		p.out.Send(p.fn(v))
	}
}

// sum2 adds its two latched float inputs. Counts firings and remembers
// the values it observed on each one.
type sum2 struct {
	a, b     *slots.StoreLast[float64]
	out      *pinflow.Out[float64]
	fired    int
	observed [][2]float64
}

func (s *sum2) Setup(in *pinflow.InputSet, out *pinflow.OutputSet) (pinflow.Pins, error) {
	s.a = &slots.StoreLast[float64]{}
	s.b = &slots.StoreLast[float64]{}
	s.out = &pinflow.Out[float64]{}
	aPin := pinflow.AddSlot[float64](in, s.a)
	bPin := pinflow.AddSlot[float64](in, s.b)
	outPin := pinflow.AddOut(out, s.out)
	return pinflow.NewPins().
		DefineIn("a", pinflow.NewInHandle[float64](in, aPin)).
		DefineIn("b", pinflow.NewInHandle[float64](in, bPin)).
		DefineOut("out", pinflow.NewOutHandle[float64](out, outPin)), nil
}

func (s *sum2) Behave() {
	s.fired++
	a := s.a.GetOr(0)
	b := s.b.GetOr(0)
	s.observed = append(s.observed, [2]float64{a, b})
	s.out.Send(a + b)
}

// hook runs an arbitrary function when fired. Used to probe behavior
// of the system from inside a propagation round.
type hook struct {
	fn func()
	in *slots.StoreLast[int]
}

func newHook(fn func()) *hook {
	return &hook{fn: fn}
}

func (h *hook) Setup(in *pinflow.InputSet, _ *pinflow.OutputSet) (pinflow.Pins, error) {
	h.in = &slots.StoreLast[int]{}
	pin := pinflow.AddSlot[int](in, h.in)
	return pinflow.NewPins().
		DefineIn("in", pinflow.NewInHandle[int](in, pin)), nil
}

func (h *hook) Behave() {
	if h.fn != nil {
		h.fn()
	}
}

// brokenSetup always fails Setup.
type brokenSetup struct{}

func (brokenSetup) Setup(*pinflow.InputSet, *pinflow.OutputSet) (pinflow.Pins, error) {
	return pinflow.Pins{}, errAlwaysBroken
}

func (brokenSetup) Behave() {}

type constError string

func (e constError) Error() string { return string(e) }

const errAlwaysBroken = constError("broken setup")
