package graphgen

import (
	"math/rand"
	"testing"

	"github.com/katalvlaran/corecp/event"
	"github.com/katalvlaran/corecp/graphvar"
	"github.com/katalvlaran/corecp/trail"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeNotifier struct{}

func (fakeNotifier) Enqueue(int, int, event.Kind) {}

func TestCompleteRejectsTooFewVertices(t *testing.T) {
	_, err := Complete(0)
	assert.Error(t, err)
}

func TestCompleteProducesAllPairs(t *testing.T) {
	edges, err := Complete(4)
	require.NoError(t, err)
	assert.Len(t, edges, 6)
}

func TestCycleRejectsTooFewVertices(t *testing.T) {
	_, err := Cycle(2)
	assert.Error(t, err)
}

func TestCycleProducesRing(t *testing.T) {
	edges, err := Cycle(4)
	require.NoError(t, err)
	want := []Edge{{0, 1}, {1, 2}, {2, 3}, {3, 0}}
	assert.Equal(t, want, edges)
}

func TestRandomSparseRejectsInvalidProbability(t *testing.T) {
	_, err := RandomSparse(4, 1.5, rand.New(rand.NewSource(1)))
	assert.Error(t, err)
}

func TestRandomSparseRequiresRngForFractionalP(t *testing.T) {
	_, err := RandomSparse(4, 0.5, nil)
	assert.Error(t, err)
}

func TestRandomSparseDeterministicForFixedSeed(t *testing.T) {
	a, err := RandomSparse(6, 0.5, rand.New(rand.NewSource(42)))
	require.NoError(t, err)
	b, err := RandomSparse(6, 0.5, rand.New(rand.NewSource(42)))
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestRandomSparseAtProbabilityOneIsComplete(t *testing.T) {
	sparse, err := RandomSparse(5, 1.0, nil)
	require.NoError(t, err)
	complete, err := Complete(5)
	require.NoError(t, err)
	assert.Len(t, sparse, len(complete))
}

func TestApplyEdgesRestrictsEnvelopeToRing(t *testing.T) {
	env := trail.NewEnv()
	g := graphvar.NewGraph(env, fakeNotifier{}, 4)
	ring, err := Cycle(4)
	require.NoError(t, err)
	require.NoError(t, ApplyEdges(g, ring))

	assert.False(t, g.EnvelopeHasArc(0, 2), "diagonal 0-2 is not a ring edge")
	assert.True(t, g.EnvelopeHasArc(0, 1), "ring edge 0-1 must remain in the envelope")
}

func TestRandomWeightsSymmetric(t *testing.T) {
	w := RandomWeights(5, 1, 10, rand.New(rand.NewSource(7)))
	for i := 0; i < 5; i++ {
		for j := 0; j < 5; j++ {
			assert.Equal(t, w[i][j], w[j][i])
		}
	}
}
