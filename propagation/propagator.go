package propagation

// Propagator is the contract every filtering algorithm implements. The
// engine calls Init once before search begins, then Propagate whenever a
// subscribed variable changes, until IsEntailed reports the propagator can
// never filter anything further (spec.md §3.1).
//
// A Propagator must never retain state outside the reversible environment:
// backtracking restores variable domains without calling into the
// propagator at all, so anything it needs to survive a PopWorld has to live
// in a trail.RevInt/RevBool/RevBitSet/RevSparseSet.
type Propagator interface {
	// Priority reports this propagator's cost tier, fixed for its
	// lifetime.
	Priority() Priority

	// Init performs the initial, from-scratch filtering pass. Called once
	// per propagator, before the first decision is taken.
	Init() error

	// Propagate performs incremental filtering in response to ev, the
	// coalesced notifications queued since the propagator's last run.
	// Returning a *trail.Contradiction aborts propagation; any other
	// error is treated as a model-construction defect and is not caught
	// by the search loop.
	Propagate(ev *Events) error

	// IsEntailed reports whether this propagator's constraint is already
	// satisfied by the current domains and can never be violated by any
	// further filtering — once true, the engine retires it to Passive.
	IsEntailed() bool
}

// Named is an optional extension a Propagator may implement to give itself
// a stable, human-readable identity for logging and explanation output.
type Named interface {
	Name() string
}

// Wirer is an optional extension a Propagator may implement to learn the
// id Register assigned it, so it can Subscribe the variables or graphs it
// watches for re-invocation. Register itself has no event-routing side
// effect: a propagator that never subscribes with its own id only ever
// runs once, from InitialPropagate.
type Wirer interface {
	Wire(propID int)
}

// SolutionAware is an optional extension a Propagator may implement to
// learn when the search loop records its first feasible solution — used
// by bounds that only pay off once an incumbent exists to prune against.
type SolutionAware interface {
	OnSolutionFound()
}
