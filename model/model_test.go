package model

import (
	"testing"

	"github.com/katalvlaran/corecp/config"
	"github.com/katalvlaran/corecp/graphgen"
	"github.com/katalvlaran/corecp/graphvar"
	"github.com/katalvlaran/corecp/search"
	"github.com/katalvlaran/corecp/trail"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func completeWeights4() [][]int64 {
	// 0-1-2-3-0 square, side 1, diagonal 2; the optimal tour is the
	// 4-cycle of side edges, cost 4.
	return [][]int64{
		{0, 1, 2, 1},
		{1, 0, 1, 2},
		{2, 1, 0, 1},
		{1, 2, 1, 0},
	}
}

func TestTSPFindsOptimalFourCycle(t *testing.T) {
	cfg := config.Default()
	cfg.HKMode = config.HKOff
	m := New(WithConfig(cfg))
	g := m.GraphVar(4)
	weights := completeWeights4()

	c, cost, err := m.TSP(g, weights, 0)
	require.NoError(t, err)
	require.NoError(t, m.Post(c))

	decisions := search.ArcDecisions(g)
	solver, found, limits, err := m.FindOptimal(decisions, cost, true)
	require.NoError(t, err)
	assert.False(t, limits.Any())
	require.True(t, found, "expected a feasible tour")
	assert.EqualValues(t, 4, solver.BestObjective(), "expected optimal tour cost 4")
}

func pathWeights5() [][]int64 {
	w := make([][]int64, 5)
	for i := range w {
		w[i] = make([]int64, 5)
		for j := range w[i] {
			if i != j {
				w[i][j] = 1
			}
		}
	}
	return w
}

func TestATSPPathFindsFeasibleAssignment(t *testing.T) {
	m := New()
	g := m.GraphVar(5, graphvar.Directed())

	origin, dst := 0, 4
	c, cost, err := m.ATSP(g, origin, dst, pathWeights5())
	require.NoError(t, err)
	require.NoError(t, m.Post(c))

	decisions := search.ArcDecisions(g)
	found, limits, err := m.FindSolution(decisions)
	require.NoError(t, err)
	assert.False(t, limits.Any())
	require.True(t, found, "expected a feasible Hamiltonian path")
	assert.EqualValues(t, 4, cost.Min(), "expected path cost 4")
}

func TestNCliquesPartitionsSixNodesIntoTwoTriangles(t *testing.T) {
	m := New()
	g := m.GraphVar(6)

	edges, err := graphgen.Complete(6)
	require.NoError(t, err)
	// restrict to two disjoint triangles {0,1,2} and {3,4,5}, and mandate
	// every triangle edge.
	var triangleEdges []graphgen.Edge
	for _, e := range edges {
		inFirst := e.U < 3 && e.V < 3
		inSecond := e.U >= 3 && e.V >= 3
		if inFirst || inSecond {
			triangleEdges = append(triangleEdges, e)
		}
	}
	require.NoError(t, graphgen.ApplyEdges(g, triangleEdges))
	for _, e := range triangleEdges {
		require.NoError(t, g.EnforceArc(e.U, e.V, trail.CauseNull))
	}

	nb := m.IntVar("nb-cliques", 1, 6)
	c := m.NCliques(g, nb)
	require.NoError(t, m.Post(c))

	decisions := append(search.ArcDecisions(g), search.IntVars(nb)...)
	found, limits, err := m.FindSolution(decisions)
	require.NoError(t, err)
	assert.False(t, limits.Any())
	require.True(t, found, "expected a feasible clique partition")
	assert.True(t, nb.IsInstantiated())
	assert.EqualValues(t, 2, nb.Min(), "expected nb-cliques instantiated to 2")
}

func TestNTreesPartitionsFourNodesIntoTwoTrees(t *testing.T) {
	m := New()
	g := m.GraphVar(4, graphvar.Directed())

	// two rooted trees: 1 -> 0 -> 0 (root 0) and 3 -> 2 -> 2 (root 2).
	require.NoError(t, graphgen.ApplyEdges(g, []graphgen.Edge{
		{U: 0, V: 0}, {U: 1, V: 0}, {U: 2, V: 2}, {U: 3, V: 2},
	}))

	nb := m.IntVar("nb-trees", 1, 4)
	c := m.NTrees(g, nb)
	require.NoError(t, m.Post(c))

	decisions := append(search.ArcDecisions(g), search.IntVars(nb)...)
	found, limits, err := m.FindSolution(decisions)
	require.NoError(t, err)
	assert.False(t, limits.Any())
	require.True(t, found, "expected a feasible tree partition")
	assert.True(t, nb.IsInstantiated())
	assert.EqualValues(t, 2, nb.Min(), "expected nb-trees instantiated to 2")
}
