// Package graphgen builds graph-variable topologies and companion weight
// matrices for testing and CLI fixtures: complete graphs, simple cycles,
// and an Erdős–Rényi-style sparse random graph. Each generator returns a
// stable, deterministic edge list for a fixed input (and a fixed rng for
// the stochastic one); callers apply the edge list to a *graphvar.Graph by
// restricting its envelope to exactly those edges via ApplyEdges.
package graphgen

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/katalvlaran/corecp/graphvar"
	"github.com/katalvlaran/corecp/trail"
)

// Sentinel errors, returned rather than panicking on invalid input.
var (
	ErrTooFewVertices     = errors.New("graphgen: too few vertices")
	ErrInvalidProbability = errors.New("graphgen: probability must be in [0,1]")
	ErrNeedRandSource     = errors.New("graphgen: a non-nil rng is required for 0 < p < 1")
)

// Edge is an unordered (or, for a directed topology, ordered) pair of node
// indices produced by a generator.
type Edge struct {
	U, V int
}

const minCompleteVertices = 1

// Complete returns every unordered pair {i,j}, i<j, over n vertices — the
// edge set of the complete graph K_n.
func Complete(n int) ([]Edge, error) {
	if n < minCompleteVertices {
		return nil, fmt.Errorf("Complete: n=%d < min=%d: %w", n, minCompleteVertices, ErrTooFewVertices)
	}
	edges := make([]Edge, 0, n*(n-1)/2)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			edges = append(edges, Edge{U: i, V: j})
		}
	}
	return edges, nil
}

const minCycleVertices = 3

// Cycle returns the n ring edges i -> (i+1)%n, in ascending i order — the
// edge set of the simple cycle C_n.
func Cycle(n int) ([]Edge, error) {
	if n < minCycleVertices {
		return nil, fmt.Errorf("Cycle: n=%d < min=%d: %w", n, minCycleVertices, ErrTooFewVertices)
	}
	edges := make([]Edge, n)
	for i := 0; i < n; i++ {
		edges[i] = Edge{U: i, V: (i + 1) % n}
	}
	return edges, nil
}

const minRandomSparseVertices = 1

// RandomSparse samples an Erdős–Rényi-like undirected edge set over n
// vertices, including each unordered pair {i,j}, i<j, independently with
// probability p. Edge-trial order is i ascending then j ascending, so the
// result is fully determined by n, p and rng's state.
func RandomSparse(n int, p float64, rng *rand.Rand) ([]Edge, error) {
	if n < minRandomSparseVertices {
		return nil, fmt.Errorf("RandomSparse: n=%d < min=%d: %w", n, minRandomSparseVertices, ErrTooFewVertices)
	}
	if p < 0.0 || p > 1.0 {
		return nil, fmt.Errorf("RandomSparse: p=%.6f not in [0,1]: %w", p, ErrInvalidProbability)
	}
	if rng == nil && p > 0.0 && p < 1.0 {
		return nil, fmt.Errorf("RandomSparse: %w", ErrNeedRandSource)
	}
	var edges []Edge
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			switch {
			case p == 1.0:
				edges = append(edges, Edge{U: i, V: j})
			case p == 0.0:
				continue
			case rng.Float64() <= p:
				edges = append(edges, Edge{U: i, V: j})
			}
		}
	}
	return edges, nil
}

// RandomWeights samples a symmetric integer weight for every unordered pair
// {i,j}, i<j, uniformly in [lo,hi], in stable (i,j) trial order. The
// diagonal is left at zero.
func RandomWeights(n int, lo, hi int64, rng *rand.Rand) [][]int64 {
	w := make([][]int64, n)
	for i := range w {
		w[i] = make([]int64, n)
	}
	span := hi - lo + 1
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			v := lo
			if span > 1 {
				v += rng.Int63n(span)
			}
			w[i][j] = v
			w[j][i] = v
		}
	}
	return w
}

// ApplyEdges restricts g's envelope to exactly the given edge set: every
// arc not listed is removed from the envelope (mirrored for an undirected
// graph). Nodes are left untouched. Used to seed a graph variable's
// starting shape from a generated topology before propagators run.
func ApplyEdges(g *graphvar.Graph, edges []Edge) error {
	keep := make(map[[2]int]bool, len(edges))
	for _, e := range edges {
		keep[[2]int{e.U, e.V}] = true
		if !g.Directed() {
			keep[[2]int{e.V, e.U}] = true
		}
	}
	n := g.N()
	for u := 0; u < n; u++ {
		if !g.EnvelopeHasNode(u) {
			continue
		}
		var toRemove []int
		g.EnvelopeNeighbors(u, func(v int) {
			if !keep[[2]int{u, v}] {
				toRemove = append(toRemove, v)
			}
		})
		for _, v := range toRemove {
			if err := g.RemoveArc(u, v, trail.CauseNull); err != nil {
				return err
			}
		}
	}
	return nil
}
