package trail

// World is a nesting level of the trail. World 0 is the root (pre-search)
// state; PushWorld strictly increases it, PopWorld strictly decreases it.
type World int

// undo is one delta record: applying it restores exactly one reversible
// cell to the value it held before the write that produced this record.
// Closures keep the record type-erased without reflection, mirroring the
// teacher's preference for small, explicit, allocation-conscious helpers
// over generic containers.
type undo func()

// Env is the shared, single-threaded trail substrate. It owns the undo
// log and the current world counter; reversible cells (RevInt, RevBool,
// RevBitSet, RevSparseSet) are constructed from an *Env and write into its
// log on demand.
//
// Env is not safe for concurrent use: spec.md §5 mandates a single
// cooperative mutator (the current propagator or the search loop) at any
// instant, so no locking is carried here — unlike the teacher's
// core.Graph, which is a general-purpose concurrent data structure and
// therefore pays for sync.RWMutex on every access.
type Env struct {
	world World
	log   []undo
	marks []int // log length recorded at each PushWorld, one entry per open world
}

// EnvOption configures an Env at construction time, following the
// teacher's functional-options idiom (core.GraphOption).
type EnvOption func(*Env)

// WithCapacityHint preallocates the undo log to reduce reallocation during
// the first few search levels. Purely an optimisation; no behavioral effect.
func WithCapacityHint(n int) EnvOption {
	return func(e *Env) {
		e.log = make([]undo, 0, n)
	}
}

// NewEnv creates a fresh environment at world 0.
func NewEnv(opts ...EnvOption) *Env {
	e := &Env{}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// CurrentWorld reports the trail nesting level currently in effect.
func (e *Env) CurrentWorld() World { return e.world }

// PushWorld opens a new nesting level. Complexity: O(1).
func (e *Env) PushWorld() {
	e.marks = append(e.marks, len(e.log))
	e.world++
}

// PopWorld restores every reversible cell written since the most recent
// PushWorld and closes that nesting level. Complexity: O(Δ), Δ = number of
// undo records pushed since the matching PushWorld.
//
// Popping past world 0 is an invariant violation (fatal per spec.md §7) —
// it indicates a caller unwound further than it pushed, not a contradiction.
func (e *Env) PopWorld() {
	if len(e.marks) == 0 {
		panic(&InvariantViolation{Msg: "PopWorld called at world 0"})
	}
	mark := e.marks[len(e.marks)-1]
	e.marks = e.marks[:len(e.marks)-1]
	for i := len(e.log) - 1; i >= mark; i-- {
		e.log[i]()
	}
	e.log = e.log[:mark]
	e.world--
}

// record appends an undo closure to the log. Internal use only — reversible
// cell types call this from their Set/mutation methods.
func (e *Env) record(u undo) {
	e.log = append(e.log, u)
}
