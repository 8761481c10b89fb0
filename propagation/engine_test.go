package propagation

import (
	"testing"

	"github.com/katalvlaran/corecp/event"
	"github.com/katalvlaran/corecp/trail"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recorder is a minimal Propagator used to assert scheduling order and
// touched-event coalescing without pulling in intvar/graphvar.
type recorder struct {
	prio     Priority
	initErr  error
	propErr  error
	entailed bool
	inits    int
	calls    []*Events
	order    *[]Priority
}

func (r *recorder) Priority() Priority { return r.prio }
func (r *recorder) Init() error        { r.inits++; return r.initErr }
func (r *recorder) Propagate(ev *Events) error {
	r.calls = append(r.calls, ev)
	if r.order != nil {
		*r.order = append(*r.order, r.prio)
	}
	return r.propErr
}
func (r *recorder) IsEntailed() bool { return r.entailed }

func TestEnginePriorityOrder(t *testing.T) {
	e := NewEngine()
	var order []Priority
	slow := &recorder{prio: Cubic, order: &order}
	fast := &recorder{prio: Unary, order: &order}
	slowID := e.Register(slow)
	fastID := e.Register(fast)

	// Enqueue the slow one first; the fast tier must still run first.
	e.Enqueue(slowID, 0, event.Remove)
	e.Enqueue(fastID, 0, event.Remove)

	require.NoError(t, e.Run())
	assert.Len(t, fast.calls, 1)
	assert.Len(t, slow.calls, 1)
	assert.Equal(t, []Priority{Unary, Cubic}, order)
}

func TestEngineCoalescesTouchedVars(t *testing.T) {
	e := NewEngine()
	r := &recorder{prio: Unary}
	id := e.Register(r)

	e.Enqueue(id, 3, event.IncLow)
	e.Enqueue(id, 5, event.DecUpp)
	e.Enqueue(id, 3, event.Remove) // same var again before running; must merge

	require.NoError(t, e.Run())
	require.Len(t, r.calls, 1, "expected a single coalesced call")
	ev := r.calls[0]
	assert.Equal(t, 2, ev.Len(), "expected 2 distinct touched vars")
	assert.Equal(t, event.IncLow|event.Remove, ev.For(3))
}

func TestEngineContradictionAbortsRun(t *testing.T) {
	e := NewEngine()
	bad := &recorder{prio: Unary, propErr: trail.Fail("x", trail.MsgEmpty, nil)}
	id := e.Register(bad)
	e.Enqueue(id, 0, event.Remove)

	err := e.Run()
	require.Error(t, err)
	assert.IsType(t, &trail.Contradiction{}, err)
}

func TestEntailedPropagatorGoesPassive(t *testing.T) {
	e := NewEngine()
	r := &recorder{prio: Unary, entailed: true}
	id := e.Register(r)
	e.Enqueue(id, 0, event.Remove)

	require.NoError(t, e.Run())
	assert.Equal(t, Passive, e.State(id))

	// Re-enqueuing a passive propagator must not schedule it again.
	e.Enqueue(id, 1, event.Remove)
	assert.Equal(t, Passive, e.State(id))
	assert.Len(t, r.calls, 1, "passive propagator must not be called again")
}

func TestPopWorldRestoresPassivatedPropagatorToIdle(t *testing.T) {
	e := NewEngine()
	r := &recorder{prio: Unary, entailed: true}
	id := e.Register(r)

	e.PushWorld()
	e.Enqueue(id, 0, event.Remove)
	require.NoError(t, e.Run())
	assert.Equal(t, Passive, e.State(id))

	e.PopWorld()
	assert.Equal(t, Idle, e.State(id))

	// Now that it is reset, the engine must schedule it again.
	e.Enqueue(id, 0, event.Remove)
	require.NoError(t, e.Run())
	assert.Len(t, r.calls, 2, "expected the propagator to run again after PopWorld")
}

func TestPopWorldAtRootPanics(t *testing.T) {
	e := NewEngine()
	defer func() {
		if recover() == nil {
			t.Fatal("expected PopWorld at world 0 to panic")
		}
	}()
	e.PopWorld()
}

func TestInitialPropagateRunsInitThenDrains(t *testing.T) {
	e := NewEngine()
	r := &recorder{prio: Unary}
	e.Register(r)

	require.NoError(t, e.InitialPropagate())
	assert.Equal(t, 1, r.inits)
}
