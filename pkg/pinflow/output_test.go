package pinflow_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gzp-crey/pinflow/pkg/pinflow"
)

// recorder is a slot that appends every pushed event, tagged with the
// slot's name, to a shared log. Used to observe fan-out order.
type recorder struct {
	name string
	log  *[]string
}

func (r *recorder) Push(event string) bool {
	*r.log = append(*r.log, r.name+":"+event)
	return true
}

func TestOutFansOutInConnectionOrder(t *testing.T) {
	var log []string

	set := pinflow.NewOutputSet()
	out := &pinflow.Out[string]{}
	pin := pinflow.AddOut(set, out)

	for _, name := range []string{"first", "second", "third"} {
		target := pinflow.NewInputSet()
		slot := pinflow.AddSlot[string](target, &recorder{name: name, log: &log})
		require.NoError(t, set.Connect(pin, pinflow.NewInHandle[string](target, slot)))
	}

	out.Send("ev")
	assert.Equal(t, []string{"first:ev", "second:ev", "third:ev"}, log)
}

func TestOutputSetConnectRejectsTypeMismatch(t *testing.T) {
	var log []string

	set := pinflow.NewOutputSet()
	out := &pinflow.Out[string]{}
	pin := pinflow.AddOut(set, out)

	target := pinflow.NewInputSet()
	intSlot := pinflow.AddSlot[int](target, intRecorder{})

	err := set.Connect(pin, pinflow.NewInHandle[int](target, intSlot))
	require.Error(t, err)
	assert.ErrorIs(t, err, pinflow.ErrIncompatiblePinTypes)

	// The failed connect registered nothing.
	strTarget := pinflow.NewInputSet()
	strSlot := pinflow.AddSlot[string](strTarget, &recorder{name: "ok", log: &log})
	require.NoError(t, set.Connect(pin, pinflow.NewInHandle[string](strTarget, strSlot)))
	out.Send("ev")
	assert.Equal(t, []string{"ok:ev"}, log)
}

type intRecorder struct{}

func (intRecorder) Push(int) bool { return true }

func TestOutputSetConnectPanicsOnBadIndex(t *testing.T) {
	set := pinflow.NewOutputSet()
	pinflow.AddOut(set, &pinflow.Out[string]{})

	target := pinflow.NewInputSet()
	slot := pinflow.AddSlot[string](target, &recorder{log: new([]string)})
	h := pinflow.NewInHandle[string](target, slot)

	assert.Panics(t, func() { _ = set.Connect(5, h) })
	assert.Panics(t, func() { _ = set.Connect(-1, h) })
}

func TestAddOutRejectsNil(t *testing.T) {
	set := pinflow.NewOutputSet()
	assert.Panics(t, func() { pinflow.AddOut[int](set, nil) })
}

func TestOutputSetIDsAreUnique(t *testing.T) {
	a := pinflow.NewOutputSet()
	b := pinflow.NewOutputSet()
	assert.NotEqual(t, a.ID(), b.ID())
}
