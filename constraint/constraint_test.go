package constraint

import (
	"testing"

	"github.com/katalvlaran/corecp/propagation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stub struct{}

func (stub) Priority() propagation.Priority      { return propagation.Unary }
func (stub) Init() error                         { return nil }
func (stub) Propagate(*propagation.Events) error { return nil }
func (stub) IsEntailed() bool                    { return false }

func TestPostRegistersEachPropagatorOnce(t *testing.T) {
	engine := propagation.NewEngine()
	c := New("degree-bounds", stub{}, stub{})

	require.NoError(t, c.Post(engine))
	assert.True(t, c.IsPosted())
	assert.Len(t, c.Propagators(), 2)
}

func TestDoublePostReturnsSentinel(t *testing.T) {
	engine := propagation.NewEngine()
	c := New("degree-bounds", stub{})
	require.NoError(t, c.Post(engine))
	assert.ErrorIs(t, c.Post(engine), ErrAlreadyPosted)
}

func TestExtendAppendsBeforePost(t *testing.T) {
	engine := propagation.NewEngine()
	c := New("hamiltonian-cycle", stub{})
	require.NoError(t, c.Extend(stub{}, stub{}))
	assert.Len(t, c.Propagators(), 3)
	assert.NoError(t, c.Post(engine))
}

func TestExtendAfterPostReturnsSentinel(t *testing.T) {
	engine := propagation.NewEngine()
	c := New("hamiltonian-cycle", stub{})
	require.NoError(t, c.Post(engine))
	assert.ErrorIs(t, c.Extend(stub{}), ErrAlreadyPostedExtend)
}
