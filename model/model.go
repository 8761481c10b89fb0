// Package model is the user-facing surface: a Model owns the trail
// environment and propagation engine, mints decision variables, and bundles
// propagators into named constraints the way the rest of this module's
// graph-variable factories are conventionally composed — a Hamiltonian
// cycle is degree bounds plus subtour elimination, a TSP is a Hamiltonian
// cycle plus cost evaluation plus an optional Held-Karp bound, and so on.
package model

import (
	"github.com/katalvlaran/corecp/config"
	"github.com/katalvlaran/corecp/constraint"
	"github.com/katalvlaran/corecp/explain"
	"github.com/katalvlaran/corecp/graphvar"
	"github.com/katalvlaran/corecp/intvar"
	"github.com/katalvlaran/corecp/propagation"
	"github.com/katalvlaran/corecp/search"
	"github.com/katalvlaran/corecp/trail"
)

// Model owns one trail environment, one propagation engine, and every
// variable minted against them.
type Model struct {
	env    *trail.Env
	engine *propagation.Engine
	cfg    config.Config
	rec    explain.Recorder

	intVars   []*intvar.Var
	graphVars []*graphvar.Graph
}

// Option configures a Model at construction.
type Option func(*Model)

// WithConfig attaches solver-wide policy limits.
func WithConfig(cfg config.Config) Option { return func(m *Model) { m.cfg = cfg } }

// WithRecorder installs an explanation recorder every constraint factory's
// propagators will report filtering decisions to.
func WithRecorder(r explain.Recorder) Option { return func(m *Model) { m.rec = r } }

// New creates an empty model: a fresh trail environment and propagation
// engine, ready for variables and constraints.
func New(opts ...Option) *Model {
	m := &Model{env: trail.NewEnv(), engine: propagation.NewEngine(), cfg: config.Default()}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Env exposes the underlying trail environment, mainly for tests and for
// wiring a custom search loop directly.
func (m *Model) Env() *trail.Env { return m.env }

// Engine exposes the underlying propagation engine.
func (m *Model) Engine() *propagation.Engine { return m.engine }

// Config returns the model's policy limits.
func (m *Model) Config() config.Config { return m.cfg }

// IntVars returns every scalar variable minted so far, in creation order.
func (m *Model) IntVars() []*intvar.Var { return m.intVars }

// IntVar creates a bounded integer variable over [lo,hi].
func (m *Model) IntVar(name string, lo, hi int64) *intvar.Var {
	v := intvar.NewBounded(m.env, m.engine, len(m.intVars), name, lo, hi)
	m.intVars = append(m.intVars, v)
	return v
}

// BoolVar creates a 0/1 variable.
func (m *Model) BoolVar(name string) *intvar.Var {
	v := intvar.NewBool(m.env, m.engine, len(m.intVars), name)
	m.intVars = append(m.intVars, v)
	return v
}

// IntVarEnum creates a variable whose domain is exactly the given values.
func (m *Model) IntVarEnum(name string, values []int64) *intvar.Var {
	v := intvar.NewEnumerated(m.env, m.engine, len(m.intVars), name, values)
	m.intVars = append(m.intVars, v)
	return v
}

// GraphVar creates a graph variable over n nodes.
func (m *Model) GraphVar(n int, opts ...graphvar.GraphOption) *graphvar.Graph {
	g := graphvar.NewGraph(m.env, m.engine, n, opts...)
	m.graphVars = append(m.graphVars, g)
	return g
}

// explainable is implemented by every propagator in package propagators;
// matched structurally so model never imports propagators just for this.
type explainable interface {
	SetRecorder(explain.Recorder)
}

func (m *Model) wire(props ...propagation.Propagator) []propagation.Propagator {
	if m.rec != nil {
		for _, p := range props {
			if e, ok := p.(explainable); ok {
				e.SetRecorder(m.rec)
			}
		}
	}
	return props
}

// Post registers c's propagators with the model's engine.
func (m *Model) Post(c *constraint.Constraint) error { return c.Post(m.engine) }

// FindSolution runs the search loop over decision vars until the first
// feasible assignment is found.
func (m *Model) FindSolution(decisionVars []search.DecisionVar) (bool, search.Limits, error) {
	s := search.NewSolver(m.env, m.engine, decisionVars, search.WithConfig(m.cfg))
	return s.FindSolution()
}

// FindAllSolutions runs the search loop to exhaustion, calling onSolution
// after each feasible assignment.
func (m *Model) FindAllSolutions(decisionVars []search.DecisionVar, onSolution func()) (int64, search.Limits, error) {
	s := search.NewSolver(m.env, m.engine, decisionVars, search.WithConfig(m.cfg))
	return s.FindAllSolutions(onSolution)
}

// FindOptimal runs branch-and-bound against obj, returning the Solver used
// so BestValues/BestObjective remain queryable.
func (m *Model) FindOptimal(decisionVars []search.DecisionVar, obj *intvar.Var, minimize bool) (*search.Solver, bool, search.Limits, error) {
	s := search.NewSolver(m.env, m.engine, decisionVars, search.WithConfig(m.cfg), search.WithObjective(obj, minimize))
	found, limits, err := s.FindOptimal()
	return s, found, limits, err
}
