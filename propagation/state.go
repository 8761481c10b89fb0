package propagation

// State is a propagator's scheduling state within the engine.
type State int

const (
	// Idle: not queued, not running.
	Idle State = iota
	// Scheduled: queued, waiting for its priority tier's turn.
	Scheduled
	// Active: currently executing Propagate.
	Active
	// Passive: entailed — the engine will never schedule it again this
	// subtree, though a backtrack un-entails it: Engine.PopWorld resets it
	// to Idle.
	Passive
)

func (s State) String() string {
	switch s {
	case Idle:
		return "IDLE"
	case Scheduled:
		return "SCHEDULED"
	case Active:
		return "ACTIVE"
	case Passive:
		return "PASSIVE"
	default:
		return "UNKNOWN"
	}
}
