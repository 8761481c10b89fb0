package intvar

import (
	"testing"

	"github.com/katalvlaran/corecp/event"
	"github.com/katalvlaran/corecp/trail"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeNotifier records every Enqueue call for assertions without needing a
// real propagation.Engine.
type fakeNotifier struct {
	calls []struct {
		propID, varIndex int
		mask              event.Kind
	}
}

func (f *fakeNotifier) Enqueue(propID, varIndex int, mask event.Kind) {
	f.calls = append(f.calls, struct {
		propID, varIndex int
		mask              event.Kind
	}{propID, varIndex, mask})
}

func TestBoundedUpdateLBNarrowsAndNotifies(t *testing.T) {
	env := trail.NewEnv()
	n := &fakeNotifier{}
	v := NewBounded(env, n, 0, "x", 0, 10)
	v.Subscribe(7, event.Bound)

	require.NoError(t, v.UpdateLB(3, trail.CauseNull))
	assert.EqualValues(t, 3, v.Min())
	require.Len(t, n.calls, 1)
	assert.Equal(t, event.IncLow, n.calls[0].mask)
}

func TestInstantiateUpgradesEvent(t *testing.T) {
	env := trail.NewEnv()
	n := &fakeNotifier{}
	v := NewBounded(env, n, 0, "x", 0, 10)
	v.Subscribe(1, event.Instantiate)

	require.NoError(t, v.UpdateLB(10, trail.CauseNull))
	assert.True(t, v.IsInstantiated())
	assert.Equal(t, event.Instantiate, n.calls[len(n.calls)-1].mask)
}

func TestUpdateLBBeyondUBFails(t *testing.T) {
	env := trail.NewEnv()
	n := &fakeNotifier{}
	v := NewBounded(env, n, 0, "x", 0, 10)

	err := v.UpdateLB(11, trail.CauseNull)
	require.Error(t, err)
	assert.IsType(t, &trail.Contradiction{}, err)
}

func TestEnumeratedRemoveValueShrinksDomain(t *testing.T) {
	env := trail.NewEnv()
	n := &fakeNotifier{}
	v := NewEnumerated(env, n, 0, "y", []int64{1, 3, 5, 7})

	require.NoError(t, v.RemoveValue(3, trail.CauseNull))
	assert.False(t, v.Contains(3))
	assert.EqualValues(t, 3, v.Size())
	assert.EqualValues(t, 1, v.Min())
	assert.EqualValues(t, 7, v.Max())
}

func TestEnumeratedRemoveBoundaryAdvancesLB(t *testing.T) {
	env := trail.NewEnv()
	n := &fakeNotifier{}
	v := NewEnumerated(env, n, 0, "y", []int64{1, 3, 5, 7})

	require.NoError(t, v.RemoveValue(1, trail.CauseNull))
	assert.EqualValues(t, 3, v.Min())
}

func TestRemoveLastValueContradicts(t *testing.T) {
	env := trail.NewEnv()
	n := &fakeNotifier{}
	v := NewBounded(env, n, 0, "x", 5, 5)

	assert.Error(t, v.RemoveValue(5, trail.CauseNull))
}

func TestInstantiateToRejectsValueOutsideDomain(t *testing.T) {
	env := trail.NewEnv()
	n := &fakeNotifier{}
	v := NewEnumerated(env, n, 0, "y", []int64{1, 3, 5})

	assert.Error(t, v.InstantiateTo(4, trail.CauseNull))
	require.NoError(t, v.InstantiateTo(3, trail.CauseNull))
	assert.True(t, v.IsInstantiated())
	assert.EqualValues(t, 3, v.Min())
}

func TestTrailRestoresDomainAfterPop(t *testing.T) {
	env := trail.NewEnv()
	n := &fakeNotifier{}
	v := NewBounded(env, n, 0, "x", 0, 10)

	env.PushWorld()
	require.NoError(t, v.UpdateLB(5, trail.CauseNull))
	require.NoError(t, v.UpdateUB(7, trail.CauseNull))
	env.PopWorld()

	assert.EqualValues(t, 0, v.Min())
	assert.EqualValues(t, 10, v.Max())
}

func TestSumViewTightenBackPropagates(t *testing.T) {
	env := trail.NewEnv()
	n := &fakeNotifier{}
	a := NewBounded(env, n, 0, "a", 0, 10)
	b := NewBounded(env, n, 1, "b", 0, 10)
	sum := NewSumView(a, b)

	require.NoError(t, sum.TightenLE(5, trail.CauseNull))
	assert.LessOrEqual(t, a.Max(), int64(5))
	assert.LessOrEqual(t, b.Max(), int64(5))
}
