package slots_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gzp-crey/pinflow/pkg/pinflow/slots"
)

func TestStoreLastLatchesMostRecent(t *testing.T) {
	var s slots.StoreLast[int]

	_, ok := s.Get()
	assert.False(t, ok)

	assert.True(t, s.Push(1))
	assert.True(t, s.Push(2))
	assert.True(t, s.Push(3))

	v, ok := s.Get()
	require.True(t, ok)
	assert.Equal(t, 3, v, "only the last push survives")

	// Get does not consume.
	v, ok = s.Get()
	require.True(t, ok)
	assert.Equal(t, 3, v)
}

func TestStoreLastTakeClears(t *testing.T) {
	var s slots.StoreLast[string]
	s.Push("hello")

	v, ok := s.Take()
	require.True(t, ok)
	assert.Equal(t, "hello", v)

	_, ok = s.Take()
	assert.False(t, ok)
	_, ok = s.Get()
	assert.False(t, ok)
}

func TestStoreLastMustGet(t *testing.T) {
	var s slots.StoreLast[int]
	assert.Panics(t, func() { s.MustGet() })

	s.Push(7)
	assert.Equal(t, 7, s.MustGet())
}

func TestStoreLastGetOr(t *testing.T) {
	var s slots.StoreLast[float64]
	assert.Equal(t, 1.5, s.GetOr(1.5))

	s.Push(2.5)
	assert.Equal(t, 2.5, s.GetOr(1.5))
}

func TestUnboundedQueuesInArrivalOrder(t *testing.T) {
	var u slots.Unbounded[int]
	assert.Equal(t, 0, u.Len())

	for i := 1; i <= 4; i++ {
		assert.True(t, u.Push(i))
	}
	assert.Equal(t, 4, u.Len())

	assert.Equal(t, []int{1, 2, 3, 4}, u.Drain())
	assert.Equal(t, 0, u.Len())
	assert.Empty(t, u.Drain())
}

func TestDistinctSuppressesRepeats(t *testing.T) {
	var d slots.Distinct[string]

	assert.True(t, d.Push("a"), "first push always dirties")
	assert.False(t, d.Push("a"), "repeated value is suppressed")
	assert.True(t, d.Push("b"))
	assert.False(t, d.Push("b"))
	assert.True(t, d.Push("a"), "a change back counts as a change")

	v, ok := d.Get()
	require.True(t, ok)
	assert.Equal(t, "a", v)
}
