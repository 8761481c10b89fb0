package search

import (
	"testing"

	"github.com/katalvlaran/corecp/config"
	"github.com/katalvlaran/corecp/event"
	"github.com/katalvlaran/corecp/intvar"
	"github.com/katalvlaran/corecp/propagation"
	"github.com/katalvlaran/corecp/trail"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// equalProp ties y to x+1: whenever x is instantiated, it instantiates y to
// match; whenever y is instantiated, it tightens x. A minimal propagator
// used only to exercise the search loop against a real constraint.
type equalProp struct {
	x, y *intvar.Var
}

func (p *equalProp) Priority() propagation.Priority      { return propagation.BinaryPrio }
func (p *equalProp) Init() error                         { return p.scan() }
func (p *equalProp) Propagate(*propagation.Events) error { return p.scan() }
func (p *equalProp) IsEntailed() bool                     { return p.x.IsInstantiated() && p.y.IsInstantiated() }

func (p *equalProp) scan() error {
	if err := p.y.UpdateLB(p.x.Min()+1, trail.CauseNull); err != nil {
		return err
	}
	if err := p.y.UpdateUB(p.x.Max()+1, trail.CauseNull); err != nil {
		return err
	}
	if err := p.x.UpdateLB(p.y.Min()-1, trail.CauseNull); err != nil {
		return err
	}
	if err := p.x.UpdateUB(p.y.Max()-1, trail.CauseNull); err != nil {
		return err
	}
	return nil
}

func newEqualFixture(t *testing.T) (*trail.Env, *propagation.Engine, *intvar.Var, *intvar.Var) {
	t.Helper()
	env := trail.NewEnv()
	engine := propagation.NewEngine()
	x := intvar.NewBounded(env, engine, 0, "x", 0, 5)
	y := intvar.NewBounded(env, engine, 1, "y", 0, 10)
	p := &equalProp{x: x, y: y}
	id := engine.Register(p)
	x.Subscribe(id, event.Bound|event.Remove)
	y.Subscribe(id, event.Bound|event.Remove)
	return env, engine, x, y
}

func TestFindSolutionSatisfiesEqualityConstraint(t *testing.T) {
	env, engine, x, y := newEqualFixture(t)
	s := NewSolver(env, engine, IntVars(x, y))

	found, limits, err := s.FindSolution()
	require.NoError(t, err)
	assert.False(t, limits.Any())
	require.True(t, found, "expected a solution to exist for y = x + 1 over x in [0,5]")
	vals := s.BestValues()
	assert.Equal(t, vals[0]+1, vals[1], "expected y = x+1")
}

func TestFindAllSolutionsEnumeratesExactCount(t *testing.T) {
	env, engine, x, y := newEqualFixture(t)
	s := NewSolver(env, engine, IntVars(x, y))

	var seen [][2]int64
	count, limits, err := s.FindAllSolutions(func() {
		vals := s.BestValues()
		seen = append(seen, [2]int64{vals[0], vals[1]})
	})
	require.NoError(t, err)
	assert.False(t, limits.Any())
	// x ranges over [0,5], each value pairs with exactly one y.
	assert.EqualValues(t, 6, count)
	for _, pair := range seen {
		assert.Equalf(t, pair[0]+1, pair[1], "solution violates y=x+1: %v", pair)
	}
}

func TestFindOptimalMinimizesObjective(t *testing.T) {
	env, engine, x, y := newEqualFixture(t)
	s := NewSolver(env, engine, IntVars(x, y), WithObjective(y, true))

	found, limits, err := s.FindOptimal()
	require.NoError(t, err)
	assert.False(t, limits.Any())
	require.True(t, found, "expected a feasible solution")
	assert.EqualValues(t, 1, s.BestObjective(), "expected minimal y=1 (x=0)")
}

func TestFindSolutionFailsWhenDomainsDisjoint(t *testing.T) {
	env := trail.NewEnv()
	engine := propagation.NewEngine()
	x := intvar.NewBounded(env, engine, 0, "x", 10, 20)
	y := intvar.NewBounded(env, engine, 1, "y", 0, 3)
	p := &equalProp{x: x, y: y}
	id := engine.Register(p)
	x.Subscribe(id, event.Bound|event.Remove)
	y.Subscribe(id, event.Bound|event.Remove)

	s := NewSolver(env, engine, IntVars(x, y))
	found, _, err := s.FindSolution()
	require.NoError(t, err)
	assert.False(t, found, "expected no solution: x and y ranges cannot satisfy y=x+1")
}

func TestRestartOnSolutionRewindsToRootInsteadOfSiblingBranch(t *testing.T) {
	env, engine, x, y := newEqualFixture(t)
	cfg := config.Default()
	cfg.RestartOnSolution = true
	cfg.SolutionLimit = 3
	s := NewSolver(env, engine, IntVars(x, y), WithConfig(cfg))

	var seen [][2]int64
	count, limits, err := s.FindAllSolutions(func() {
		vals := s.BestValues()
		seen = append(seen, [2]int64{vals[0], vals[1]})
	})
	require.NoError(t, err)
	assert.True(t, limits.SolutionExceeded, "expected the solution limit, not exhaustion, to stop the run")
	assert.EqualValues(t, 3, count)
	// Deterministic branching always re-derives x=0 first from a fully
	// rewound decision stack, unlike plain backtracking (which would
	// explore x=1,2,... next, as TestFindAllSolutionsEnumeratesExactCount
	// checks for a non-restarting run).
	for _, pair := range seen {
		assert.Equal(t, [2]int64{0, 1}, pair, "expected every restart to re-derive the same first solution")
	}
}

func TestFindAllSolutionsRespectsSolutionLimit(t *testing.T) {
	env, engine, x, y := newEqualFixture(t)
	cfg := config.Default()
	cfg.SolutionLimit = 2
	s := NewSolver(env, engine, IntVars(x, y), WithConfig(cfg))

	count, limits, err := s.FindAllSolutions(func() {})
	require.NoError(t, err)
	assert.True(t, limits.SolutionExceeded)
	assert.GreaterOrEqual(t, count, int64(2))
}
