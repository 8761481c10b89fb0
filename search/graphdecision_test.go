package search

import (
	"testing"

	"github.com/katalvlaran/corecp/event"
	"github.com/katalvlaran/corecp/graphvar"
	"github.com/katalvlaran/corecp/trail"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeNotifier struct{}

func (fakeNotifier) Enqueue(int, int, event.Kind) {}

func TestArcDecisionInstantiateToEnforcesAndRemoves(t *testing.T) {
	env := trail.NewEnv()
	g := graphvar.NewGraph(env, fakeNotifier{}, 3)
	d := NewArcDecision(g, 0, 1)

	assert.False(t, d.IsInstantiated(), "arc should start undecided")
	assert.EqualValues(t, 0, d.Min())
	require.NoError(t, d.InstantiateTo(1, trail.CauseNull))
	assert.True(t, g.KernelHasArc(0, 1), "expected InstantiateTo(1) to enforce the arc")
	assert.True(t, d.IsInstantiated())
}

func TestArcDecisionRemoveValueAppliesComplementaryBranch(t *testing.T) {
	env := trail.NewEnv()
	g := graphvar.NewGraph(env, fakeNotifier{}, 3)
	d := NewArcDecision(g, 0, 1)

	require.NoError(t, d.RemoveValue(0, trail.CauseNull))
	assert.True(t, g.KernelHasArc(0, 1), "excluding value 0 should force the arc into the kernel")
}

func TestArcDecisionsSkipsAlreadyDecidedArcs(t *testing.T) {
	env := trail.NewEnv()
	g := graphvar.NewGraph(env, fakeNotifier{}, 3)
	require.NoError(t, g.RemoveArc(1, 2, trail.CauseNull))
	decisions := ArcDecisions(g)
	for _, d := range decisions {
		ad := d.(*ArcDecision)
		assert.Falsef(t, ad.u == 1 && ad.v == 2, "expected the already-excluded arc 1-2 to be skipped")
	}
}
