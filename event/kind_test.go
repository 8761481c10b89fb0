package event

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInstantiateSubsumesBound(t *testing.T) {
	assert.True(t, Instantiate.Has(Bound))
	assert.True(t, Instantiate.Has(IncLow))
	assert.True(t, Instantiate.Has(DecUpp))
	assert.True(t, Instantiate.Has(Remove))
}

func TestBoundSubsumesEitherSide(t *testing.T) {
	assert.True(t, Bound.Has(IncLow))
	assert.True(t, Bound.Has(DecUpp))
	assert.False(t, Bound.Has(Remove))
}

func TestAnyVsHas(t *testing.T) {
	mask := IncLow
	assert.False(t, mask.Has(Bound))
	assert.True(t, mask.Any(Bound))
}

func TestStringNamesCombinations(t *testing.T) {
	assert.Equal(t, "INSTANTIATE", Instantiate.String())
	assert.Equal(t, "BOUND", Bound.String())
	assert.Equal(t, "NONE", None.String())
	assert.Equal(t, "ADD_ARC", AddArc.String())
}

func TestDistinctBits(t *testing.T) {
	kinds := []Kind{Remove, IncLow, DecUpp, AddArc, RemoveArc, ActivateNode, RemoveNode}
	seen := Kind(0)
	for _, k := range kinds {
		assert.Falsef(t, seen.Any(k), "kind %s overlaps a previously seen bit", k)
		seen |= k
	}
}
