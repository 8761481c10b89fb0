package propagation

import (
	"fmt"

	"github.com/katalvlaran/corecp/event"
	"github.com/katalvlaran/corecp/trail"
	"github.com/rs/zerolog"
)

// Engine drives a fixed set of propagators to a fixed point: a multi-level
// priority queue (cheapest tier first), FIFO within a tier, single-threaded
// cooperative execution. A raised *trail.Contradiction aborts the run
// immediately and is returned to the caller (spec.md §3).
//
// We keep a dedicated engine struct rather than a closure-based scheduler —
// the same choice the teacher's branch-and-bound search makes — so every
// field is inspectable in a debugger and the hot path never allocates a
// closure per wake.
type Engine struct {
	props  []Propagator
	states []State
	pend   []*Events

	queue [numPriorities][]int
	head  [numPriorities]int

	logger *zerolog.Logger
	runs   int64 // number of Propagate calls made, for diagnostics

	// passivated and marks give Passive the same reversible-on-backtrack
	// behavior as the trail's reversible cells, without the engine needing
	// a *trail.Env reference: PushWorld/PopWorld bracket a search branch
	// exactly as trail.Env's do, and popping restores every propagator
	// that went Passive inside the closed branch back to Idle.
	passivated []int
	marks      []int
}

// EngineOption configures an Engine at construction.
type EngineOption func(*Engine)

// WithLogger attaches a structured logger; nil disables logging.
func WithLogger(l *zerolog.Logger) EngineOption {
	return func(e *Engine) { e.logger = l }
}

// NewEngine creates an empty engine. Propagators are added with Register.
func NewEngine(opts ...EngineOption) *Engine {
	e := &Engine{}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Register adds p to the engine and returns its propagator id, used by
// variables to target Enqueue calls at it.
func (e *Engine) Register(p Propagator) int {
	id := len(e.props)
	e.props = append(e.props, p)
	e.states = append(e.states, Idle)
	e.pend = append(e.pend, nil)
	return id
}

// Enqueue records that varIndex changed with the given mask and schedules
// propID to run if it is not already scheduled or active. Passive
// propagators are never rescheduled. This is the method variables call
// through the Notifier interface on every mutation.
func (e *Engine) Enqueue(propID int, varIndex int, mask event.Kind) {
	if e.states[propID] == Passive {
		return
	}
	if e.pend[propID] == nil {
		e.pend[propID] = newEvents()
	}
	e.pend[propID].add(varIndex, mask)
	if e.states[propID] == Scheduled || e.states[propID] == Active {
		return
	}
	e.states[propID] = Scheduled
	tier := e.props[propID].Priority()
	e.queue[tier] = append(e.queue[tier], propID)
}

// dequeue pops the next propagator id in priority order, or (-1, false) if
// every queue is empty.
func (e *Engine) dequeue() (int, bool) {
	for tier := Priority(0); tier < numPriorities; tier++ {
		if e.head[tier] < len(e.queue[tier]) {
			id := e.queue[tier][e.head[tier]]
			e.head[tier]++
			return id, true
		}
	}
	return -1, false
}

// Run drains the queue, calling Propagate on each scheduled propagator in
// priority order until every queue is empty or a propagator raises a
// *trail.Contradiction, which is returned immediately.
func (e *Engine) Run() error {
	for {
		id, ok := e.dequeue()
		if !ok {
			e.compact()
			return nil
		}
		if e.states[id] != Scheduled {
			// Retired (e.g. became Passive) while queued; skip.
			continue
		}
		ev := e.pend[id]
		e.pend[id] = nil
		e.states[id] = Active
		e.runs++
		if e.logger != nil {
			e.logger.Debug().Int("propagator", id).Int("touched", ev.Len()).Msg("propagate")
		}
		if err := e.props[id].Propagate(ev); err != nil {
			if _, isContradiction := err.(*trail.Contradiction); isContradiction {
				e.compact()
				return err
			}
			return fmt.Errorf("propagator %d: %w", id, err)
		}
		if e.props[id].IsEntailed() {
			e.passivate(id)
		} else {
			e.states[id] = Idle
		}
	}
}

// InitialPropagate runs Init on every registered propagator, in
// registration order, then drains the queue exactly as Run does — a
// propagator's Init may itself enqueue others via the variables it filters.
func (e *Engine) InitialPropagate() error {
	for id, p := range e.props {
		if e.states[id] == Passive {
			continue
		}
		if err := p.Init(); err != nil {
			if _, isContradiction := err.(*trail.Contradiction); isContradiction {
				return err
			}
			return fmt.Errorf("propagator %d init: %w", id, err)
		}
		if p.IsEntailed() {
			e.passivate(id)
		}
	}
	return e.Run()
}

// compact resets queue slices once fully drained, so a long search doesn't
// grow the backing arrays without bound across thousands of wake cycles.
func (e *Engine) compact() {
	for tier := Priority(0); tier < numPriorities; tier++ {
		e.queue[tier] = e.queue[tier][:0]
		e.head[tier] = 0
	}
}

// Runs returns the number of Propagate calls made so far, for diagnostics
// and tests.
func (e *Engine) Runs() int64 { return e.runs }

func (e *Engine) passivate(id int) {
	e.states[id] = Passive
	e.passivated = append(e.passivated, id)
}

// PushWorld opens a new nesting level for propagator scheduling state,
// mirroring trail.Env.PushWorld. Call it alongside the trail's own
// PushWorld whenever the search loop descends a branch.
func (e *Engine) PushWorld() {
	e.marks = append(e.marks, len(e.passivated))
}

// PopWorld restores every propagator that went Passive since the matching
// PushWorld back to Idle, undoing entailment exactly the way a backtrack
// undoes any other reversible write. Complexity: O(Δ), Δ = number of
// propagators passivated since the matching PushWorld.
func (e *Engine) PopWorld() {
	if len(e.marks) == 0 {
		trail.Violate("engine.PopWorld called at world 0")
	}
	mark := e.marks[len(e.marks)-1]
	e.marks = e.marks[:len(e.marks)-1]
	for i := len(e.passivated) - 1; i >= mark; i-- {
		e.states[e.passivated[i]] = Idle
	}
	e.passivated = e.passivated[:mark]
}

// State returns the current scheduling state of propagator id.
func (e *Engine) State(id int) State { return e.states[id] }

// NotifySolutionFound tells every registered propagator implementing
// SolutionAware that the search has recorded a feasible solution. Called
// once, the first time a search loop finds a solution.
func (e *Engine) NotifySolutionFound() {
	for _, p := range e.props {
		if sa, ok := p.(SolutionAware); ok {
			sa.OnSolutionFound()
		}
	}
}
