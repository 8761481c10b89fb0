package model

import (
	"errors"

	"github.com/katalvlaran/corecp/config"
	"github.com/katalvlaran/corecp/constraint"
	"github.com/katalvlaran/corecp/graphvar"
	"github.com/katalvlaran/corecp/intvar"
	"github.com/katalvlaran/corecp/propagators"
	"github.com/katalvlaran/corecp/trail"
)

// ErrWeightsWrongSize indicates a weight matrix does not match the graph
// variable's node universe.
var ErrWeightsWrongSize = errors.New("model: weights matrix size does not match graph size")

// excludeSelfLoops removes every (u,u) arc from g's envelope: a
// self-loop never belongs to a simple cycle or path (self-loops are
// meaningful only to the directed tree-partitioning constraint, which
// marks a root by looping it to itself). Safe to call before any other
// arc has been decided, since a self-loop can never already be mandatory.
func excludeSelfLoops(g *graphvar.Graph) error {
	for u := 0; u < g.N(); u++ {
		if g.EnvelopeHasArc(u, u) {
			if err := g.RemoveArc(u, u, trail.CauseNull); err != nil {
				return err
			}
		}
	}
	return nil
}

// HamiltonianCycle constrains g to be a single simple cycle visiting every
// node: degree exactly 2 everywhere plus subtour elimination.
func (m *Model) HamiltonianCycle(g *graphvar.Graph) *constraint.Constraint {
	_ = excludeSelfLoops(g)
	n := g.N()
	deg := make([]int, n)
	for i := range deg {
		deg[i] = 2
	}
	return constraint.New("hamiltonian-cycle",
		m.wire(
			propagators.NewDegreeAtLeast(g, deg),
			propagators.NewDegreeAtMost(g, deg),
			propagators.NewNoSubtour(g, m.env),
		)...,
	)
}

// HamiltonianPath constrains g to be a single simple path from origin to
// dst: every node has successor/predecessor degree 1 except dst (no
// successor) and origin (no predecessor), plus path-specific cycle
// elimination.
func (m *Model) HamiltonianPath(g *graphvar.Graph, origin, dst int) *constraint.Constraint {
	_ = excludeSelfLoops(g)
	n := g.N()
	succMin := make([]int, n)
	succMax := make([]int, n)
	predMin := make([]int, n)
	predMax := make([]int, n)
	for u := 0; u < n; u++ {
		succMin[u], succMax[u] = 1, 1
		predMin[u], predMax[u] = 1, 1
	}
	succMin[dst], succMax[dst] = 0, 0
	predMin[origin], predMax[origin] = 0, 0

	return constraint.New("hamiltonian-path",
		m.wire(
			propagators.NewDegreeAtLeast(g, succMin),
			propagators.NewDegreeAtMost(g, succMax),
			propagators.NewPredDegreeAtLeast(g, predMin),
			propagators.NewPredDegreeAtMost(g, predMax),
			propagators.NewPathNoCycle(g, origin, dst),
		)...,
	)
}

func maxWeight(weights [][]int64) int64 {
	var maxCost int64
	for _, row := range weights {
		for _, w := range row {
			if w > maxCost {
				maxCost = w
			}
		}
	}
	return maxCost
}

// TSP builds a Hamiltonian cycle extended with cost evaluation and,
// depending on the model's Held-Karp mode, a one-tree lower bound.
func (m *Model) TSP(g *graphvar.Graph, weights [][]int64, root int) (*constraint.Constraint, *intvar.Var, error) {
	n := g.N()
	if len(weights) != n {
		return nil, nil, ErrWeightsWrongSize
	}
	c := m.HamiltonianCycle(g)
	cost := m.IntVar("tour-cost", 0, maxWeight(weights)*int64(n))

	if err := c.Extend(m.wire(propagators.NewCycleEval(g, cost, weights))...); err != nil {
		return nil, nil, err
	}
	if m.cfg.HKMode != config.HKOff {
		if err := c.Extend(m.wire(propagators.NewOneTree(g, cost, weights, root, m.cfg.HKMode))...); err != nil {
			return nil, nil, err
		}
	}
	return c, cost, nil
}

// ATSP builds a Hamiltonian path extended with cost evaluation, for the
// asymmetric (directed) traveling-salesman variant.
func (m *Model) ATSP(g *graphvar.Graph, origin, dst int, weights [][]int64) (*constraint.Constraint, *intvar.Var, error) {
	n := g.N()
	if len(weights) != n {
		return nil, nil, ErrWeightsWrongSize
	}
	c := m.HamiltonianPath(g, origin, dst)
	cost := m.IntVar("path-cost", 0, maxWeight(weights)*int64(n))

	if err := c.Extend(m.wire(propagators.NewCycleEval(g, cost, weights))...); err != nil {
		return nil, nil, err
	}
	return c, cost, nil
}

// NCliques constrains g to decompose into exactly nb disjoint cliques:
// transitivity of the neighbor relation plus a clique-count propagator.
func (m *Model) NCliques(g *graphvar.Graph, nb *intvar.Var) *constraint.Constraint {
	return constraint.New("n-cliques",
		m.wire(
			propagators.NewTransitivity(g),
			propagators.NewNCliques(g, nb),
		)...,
	)
}

// NTrees constrains g to decompose into exactly nb disjoint trees.
func (m *Model) NTrees(g *graphvar.Graph, nb *intvar.Var) *constraint.Constraint {
	return constraint.New("n-trees", m.wire(propagators.NewNTrees(g, nb))...)
}
