// Package search implements the backtracking decision loop: a DOWN_BRANCH/
// UP_BRANCH state machine over an explicit decision stack, trailed through
// package trail so every branch point can be undone in O(Δ), with
// deterministic branching order and sparse time/fail-limit checks.
package search

import (
	"time"

	"github.com/katalvlaran/corecp/config"
	"github.com/katalvlaran/corecp/intvar"
	"github.com/katalvlaran/corecp/propagation"
	"github.com/katalvlaran/corecp/trail"
	"github.com/rs/zerolog"
)

// state names the search loop's current phase.
type state int

const (
	ready state = iota
	downBranch
	upBranch
	stop
)

// decisionFrame is one entry on the decision stack: the variable branched
// on, the value tried, and whether the complementary branch has already
// been attempted.
type decisionFrame struct {
	varIdx    int
	value     int64
	triedBoth bool
}

// DecisionVar is anything the search loop can branch on: an undecided
// point with a "preferred" value, an instantiate operation, and a
// complementary remove operation for the other branch. *intvar.Var
// satisfies this directly; ArcDecision adapts a graph variable's arcs to
// the same shape so the loop never needs to know which kind it is
// branching over.
type DecisionVar interface {
	IsInstantiated() bool
	Min() int64
	InstantiateTo(val int64, cause trail.Cause) error
	RemoveValue(val int64, cause trail.Cause) error
}

// IntVars adapts a list of scalar variables to []DecisionVar.
func IntVars(vs ...*intvar.Var) []DecisionVar {
	out := make([]DecisionVar, len(vs))
	for i, v := range vs {
		out[i] = v
	}
	return out
}

// Limits reports why a search run stopped short of exhausting the space.
type Limits struct {
	TimeExceeded     bool
	FailExceeded     bool
	SolutionExceeded bool
}

// Any reports whether any limit was hit.
func (l Limits) Any() bool { return l.TimeExceeded || l.FailExceeded || l.SolutionExceeded }

// Solver drives the backtracking search loop over a fixed set of decision
// variables, propagating to a fixed point after every branch via engine.
type Solver struct {
	env    *trail.Env
	engine *propagation.Engine
	cfg    config.Config
	logger *zerolog.Logger

	vars      []DecisionVar
	objective *intvar.Var
	minimize  bool

	stack []decisionFrame

	steps     int64
	fails     int64
	solutions int64

	useDeadline bool
	deadline    time.Time

	bestValues    []int64
	bestObjective int64
	foundAny      bool
}

// SolverOption configures a Solver at construction.
type SolverOption func(*Solver)

// WithConfig attaches policy limits.
func WithConfig(cfg config.Config) SolverOption { return func(s *Solver) { s.cfg = cfg } }

// WithObjective marks obj as the variable FindOptimal tightens after every
// solution; minimize selects search direction. Once a solution is recorded,
// every later branch of the Solver's search requires obj to beat it.
func WithObjective(obj *intvar.Var, minimize bool) SolverOption {
	return func(s *Solver) { s.objective = obj; s.minimize = minimize }
}

// WithSolverLogger attaches a structured logger.
func WithSolverLogger(l *zerolog.Logger) SolverOption {
	return func(s *Solver) { s.logger = l }
}

// NewSolver creates a Solver branching over vars, in the given order, using
// engine to propagate after every decision.
func NewSolver(env *trail.Env, engine *propagation.Engine, vars []DecisionVar, opts ...SolverOption) *Solver {
	s := &Solver{env: env, engine: engine, vars: vars, cfg: config.Default()}
	for _, opt := range opts {
		opt(s)
	}
	if s.cfg.HasTimeLimit() {
		s.useDeadline = true
		s.deadline = deadlineAt(s.cfg.TimeLimit)
	}
	return s
}

// deadlineAt is split out so tests can avoid depending on wall-clock time.
func deadlineAt(d time.Duration) time.Time { return time.Now().Add(d) }

func (s *Solver) checkDeadline() bool {
	s.steps++
	if !s.useDeadline || (s.steps&4095) != 0 {
		return false
	}
	return time.Now().After(s.deadline)
}

// nextUnassigned returns the index into s.vars of the first variable that
// is not yet instantiated, or -1 if every variable is.
func (s *Solver) nextUnassigned() int {
	for i, v := range s.vars {
		if !v.IsInstantiated() {
			return i
		}
	}
	return -1
}

// snapshotValues captures the current value of every decision variable.
func (s *Solver) snapshotValues() []int64 {
	out := make([]int64, len(s.vars))
	for i, v := range s.vars {
		out[i] = v.Min()
	}
	return out
}

// FindSolution runs the search loop until the first feasible, fully
// instantiated assignment is found, or the search space (or a limit) is
// exhausted. It returns whether a solution was found.
func (s *Solver) FindSolution() (bool, Limits, error) {
	if err := s.engine.InitialPropagate(); err != nil {
		if _, ok := err.(*trail.Contradiction); ok {
			return false, Limits{}, nil
		}
		return false, Limits{}, err
	}
	return s.run(func() bool { return true }) // stop at the first solution
}

// FindAllSolutions runs the search loop to exhaustion (or a limit),
// calling onSolution after each feasible assignment is found. It returns
// the number of solutions found.
func (s *Solver) FindAllSolutions(onSolution func()) (int64, Limits, error) {
	if err := s.engine.InitialPropagate(); err != nil {
		if _, ok := err.(*trail.Contradiction); ok {
			return 0, Limits{}, nil
		}
		return 0, Limits{}, err
	}
	_, limits, err := s.run(func() bool {
		onSolution()
		return false // keep searching
	})
	return s.solutions, limits, err
}

// FindOptimal runs branch-and-bound: after every feasible solution, the
// objective's bound is tightened to exclude equally-good or worse
// solutions, forcing the search to either find something strictly better
// or exhaust the space. Returns whether any solution was found (the best
// one found is then the proven optimum, unless a Limit was hit).
func (s *Solver) FindOptimal() (bool, Limits, error) {
	if s.objective == nil {
		trail.Violate("FindOptimal requires WithObjective")
	}
	if err := s.engine.InitialPropagate(); err != nil {
		if _, ok := err.(*trail.Contradiction); ok {
			return false, Limits{}, nil
		}
		return false, Limits{}, err
	}
	_, limits, err := s.run(func() bool {
		s.tightenObjectiveAfterSolution()
		return false // keep searching for something strictly better
	})
	return s.foundAny, limits, err
}

// tightenObjectiveAfterSolution cuts the objective in the current world.
// That write is trailed, so a backtrack undoes it; run therefore re-imposes
// the same cut against bestObjective after every later branch decision,
// which keeps each later solution strictly better than the one before.
func (s *Solver) tightenObjectiveAfterSolution() {
	val := s.objective.Min()
	if s.minimize {
		_ = s.objective.UpdateUB(val-1, trail.CauseNull)
	} else {
		_ = s.objective.UpdateLB(val+1, trail.CauseNull)
	}
}

// BestValues returns the decision-variable values of the best (or only,
// for FindSolution) solution found, in the same order as the Solver's
// variable list.
func (s *Solver) BestValues() []int64 { return s.bestValues }

// BestObjective returns the objective value of the best solution found.
func (s *Solver) BestObjective() int64 { return s.bestObjective }

// Solutions returns the total number of solutions found so far.
func (s *Solver) Solutions() int64 { return s.solutions }

// Fails returns the total number of contradictions encountered so far.
func (s *Solver) Fails() int64 { return s.fails }

// run drives the DOWN_BRANCH/UP_BRANCH state machine. onSolution is called
// with every fully instantiated, feasible assignment; it returns true to
// stop the search immediately (first-solution mode) or false to keep
// exploring (all-solutions / optimization modes).
func (s *Solver) run(onSolution func() bool) (bool, Limits, error) {
	st := ready
	for {
		switch st {
		case ready:
			if s.checkDeadline() {
				return s.foundAny, Limits{TimeExceeded: true}, nil
			}
			if s.cfg.HasFailLimit() && s.fails >= s.cfg.FailLimit {
				return s.foundAny, Limits{FailExceeded: true}, nil
			}
			if s.cfg.HasSolutionLimit() && s.solutions >= s.cfg.SolutionLimit {
				return s.foundAny, Limits{SolutionExceeded: true}, nil
			}
			idx := s.nextUnassigned()
			if idx == -1 {
				s.recordSolution()
				if onSolution() {
					return true, Limits{}, nil
				}
				if s.cfg.RestartOnSolution {
					s.restartToRoot()
					st = ready
					continue
				}
				st = upBranch
				continue
			}
			st = downBranch
			s.stack = append(s.stack, decisionFrame{varIdx: idx, value: s.vars[idx].Min()})
			continue

		case downBranch:
			frame := &s.stack[len(s.stack)-1]
			s.env.PushWorld()
			s.engine.PushWorld()
			v := s.vars[frame.varIdx]
			var err error
			if !frame.triedBoth {
				err = v.InstantiateTo(frame.value, trail.CauseNull)
			} else {
				err = v.RemoveValue(frame.value, trail.CauseNull)
			}
			if err == nil && s.foundAny && s.objective != nil {
				if s.minimize {
					err = s.objective.UpdateUB(s.bestObjective-1, trail.CauseNull)
				} else {
					err = s.objective.UpdateLB(s.bestObjective+1, trail.CauseNull)
				}
			}
			if err == nil {
				err = s.engine.Run()
			}
			if err != nil {
				if _, ok := err.(*trail.Contradiction); !ok {
					return s.foundAny, Limits{}, err
				}
				// World stays pushed: upBranch pops it exactly once,
				// whether retrying the complementary value or
				// abandoning the frame entirely.
				s.fails++
				st = upBranch
				continue
			}
			st = ready
			continue

		case upBranch:
			if len(s.stack) == 0 {
				return s.foundAny, Limits{}, nil
			}
			frame := &s.stack[len(s.stack)-1]
			if frame.triedBoth {
				s.stack = s.stack[:len(s.stack)-1]
				s.env.PopWorld()
				s.engine.PopWorld()
				continue // stay in upBranch, unwinding further
			}
			frame.triedBoth = true
			s.env.PopWorld()
			s.engine.PopWorld()
			st = downBranch
			continue

		case stop:
			return s.foundAny, Limits{}, nil
		}
	}
}

func (s *Solver) recordSolution() {
	wasFirst := !s.foundAny
	s.solutions++
	s.foundAny = true
	s.bestValues = s.snapshotValues()
	if s.objective != nil {
		s.bestObjective = s.objective.Min()
	}
	if s.logger != nil {
		s.logger.Debug().Int64("solution", s.solutions).Msg("solution found")
	}
	if wasFirst {
		s.engine.NotifySolutionFound()
	}
}

// restartToRoot unwinds the decision stack all the way to world 0, exactly
// as if the search had just begun: every frame is popped without being
// retried, matching RestartOnSolution's "resume from ready with nothing
// replayed" contract. Branching heuristics that have since learned
// something (e.g. OneTree's deferred activation) keep that knowledge —
// only the decision stack and the trail/engine worlds are rewound.
func (s *Solver) restartToRoot() {
	for range s.stack {
		s.env.PopWorld()
		s.engine.PopWorld()
	}
	s.stack = s.stack[:0]
}
