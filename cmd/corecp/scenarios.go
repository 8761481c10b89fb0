package main

import (
	"fmt"
	"math"

	"github.com/katalvlaran/corecp/matrixutil"
)

// ringHopMatrix gives every adjacent pair on an n-node ring unit cost and
// leaves every other pair unset, then completes the matrix through
// matrixutil.MetricClosure so non-adjacent pairs carry their shortest
// along-the-ring hop count. The unique cheapest Hamiltonian cycle is then
// the ring itself, total cost n.
func ringHopMatrix(n int) (*matrixutil.Dense, error) {
	m, err := matrixutil.FromAdjacency(n, n, func(i, j int) float64 {
		d := i - j
		if d < 0 {
			d = -d
		}
		if d == 1 || d == n-1 {
			return 1
		}
		return 0 // FromAdjacency turns off-diagonal zero into +Inf
	})
	if err != nil {
		return nil, err
	}
	if err := matrixutil.MetricClosure(m); err != nil {
		return nil, err
	}
	return m, nil
}

// lineChainMatrix builds an asymmetric chain: advancing from node i to i+1
// costs 1, any other forward arc costs its hop count, and every backward
// arc costs 10 per hop — the archetypal ATSP instance where the cheap tour
// runs forward and a cycle can only be avoided by eventually paying the
// expensive return.
func lineChainMatrix(n int) [][]int64 {
	w := make([][]int64, n)
	for i := range w {
		w[i] = make([]int64, n)
		for j := range w[i] {
			switch {
			case i == j:
				w[i][j] = 0
			case j > i:
				w[i][j] = int64(j - i)
			default:
				w[i][j] = int64(10 * (i - j))
			}
		}
	}
	return w
}

// toInt64Weights rounds a dense float64 matrix to an integer weight matrix,
// scaling by factor first so sub-unit distances don't collapse to zero.
func toInt64Weights(m *matrixutil.Dense, factor float64) ([][]int64, error) {
	n := m.Rows()
	w := make([][]int64, n)
	for i := 0; i < n; i++ {
		w[i] = make([]int64, n)
		for j := 0; j < n; j++ {
			v, err := m.At(i, j)
			if err != nil {
				return nil, fmt.Errorf("toInt64Weights(%d,%d): %w", i, j, err)
			}
			w[i][j] = int64(math.Round(v * factor))
		}
	}
	return w, nil
}
