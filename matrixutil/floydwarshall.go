package matrixutil

import "math"

// MetricClosure runs Floyd-Warshall in place over dist, turning a raw
// adjacency/weight matrix into all-pairs shortest distances. +Inf entries
// stay +Inf when no path connects the pair. Deterministic triple loop
// order (k outermost) so the same input always produces bit-identical
// output. Complexity: O(n^3) time, O(1) extra space beyond dist itself.
func MetricClosure(dist *Dense) error {
	n := dist.Rows()
	if n != dist.Cols() {
		return ErrDimensionMismatch
	}
	for k := 0; k < n; k++ {
		for i := 0; i < n; i++ {
			dik, err := dist.At(i, k)
			if err != nil {
				return err
			}
			if math.IsInf(dik, 1) {
				continue
			}
			for j := 0; j < n; j++ {
				dkj, err := dist.At(k, j)
				if err != nil {
					return err
				}
				if math.IsInf(dkj, 1) {
					continue
				}
				dij, err := dist.At(i, j)
				if err != nil {
					return err
				}
				if cand := dik + dkj; cand < dij {
					if err := dist.Set(i, j, cand); err != nil {
						return err
					}
				}
			}
		}
	}
	return nil
}

// IsMetric reports whether dist already satisfies the triangle inequality
// for every triple, within an absolute tolerance eps — used to gate
// stronger geometric propagation the way the teacher's validation gates
// precompute-dependent algorithms on a shape check first.
func IsMetric(dist *Dense, eps float64) (bool, error) {
	n := dist.Rows()
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			dij, err := dist.At(i, j)
			if err != nil {
				return false, err
			}
			for k := 0; k < n; k++ {
				dik, err := dist.At(i, k)
				if err != nil {
					return false, err
				}
				dkj, err := dist.At(k, j)
				if err != nil {
					return false, err
				}
				if dik+dkj+eps < dij {
					return false, nil
				}
			}
		}
	}
	return true, nil
}
