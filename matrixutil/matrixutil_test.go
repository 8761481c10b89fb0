package matrixutil

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDenseRejectsNonPositive(t *testing.T) {
	_, err := NewDense(0, 3)
	assert.ErrorIs(t, err, ErrInvalidDimensions)
}

func TestSetAtRoundTrip(t *testing.T) {
	m, err := NewDense(3, 3)
	require.NoError(t, err)
	require.NoError(t, m.Set(1, 2, 4.5))
	got, err := m.At(1, 2)
	require.NoError(t, err)
	assert.Equal(t, 4.5, got)
}

func TestMetricClosureOnPath(t *testing.T) {
	// 0 -1- 1 -1- 2 -1- 3, with no direct 0-3 edge: closure must find 3.
	weights := [][]float64{
		{0, 1, 0, 0},
		{1, 0, 1, 0},
		{0, 1, 0, 1},
		{0, 0, 1, 0},
	}
	m, err := FromAdjacency(4, 4, func(i, j int) float64 { return weights[i][j] })
	require.NoError(t, err)
	require.NoError(t, MetricClosure(m))
	got, err := m.At(0, 3)
	require.NoError(t, err)
	assert.Equal(t, 3.0, got)
}

func TestMetricClosureLeavesUnreachablePairsAtInf(t *testing.T) {
	weights := [][]float64{
		{0, 1},
		{1, 0},
	}
	m, err := FromAdjacency(2, 2, func(i, j int) float64 { return weights[i][j] })
	require.NoError(t, err)

	// A third, disconnected node added manually via a bigger matrix.
	m3, err := NewDense(3, 3)
	require.NoError(t, err)
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			v, _ := m.At(i, j)
			_ = m3.Set(i, j, v)
		}
	}
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			if i == 2 && j != 2 || j == 2 && i != 2 {
				_ = m3.Set(i, j, math.Inf(1))
			}
		}
	}
	require.NoError(t, MetricClosure(m3))
	got, err := m3.At(0, 2)
	require.NoError(t, err)
	assert.True(t, math.IsInf(got, 1))
}

func TestIsMetricDetectsViolation(t *testing.T) {
	m, err := NewDense(3, 3)
	require.NoError(t, err)
	_ = m.Set(0, 1, 1)
	_ = m.Set(1, 0, 1)
	_ = m.Set(1, 2, 1)
	_ = m.Set(2, 1, 1)
	_ = m.Set(2, 0, 1)
	_ = m.Set(0, 2, 100) // 0->2 direct is far worse than 0->1->2==2
	_ = m.Set(2, 0, 100)

	ok, err := IsMetric(m, 1e-9)
	require.NoError(t, err)
	assert.False(t, ok, "expected IsMetric to detect the triangle-inequality violation")
}
