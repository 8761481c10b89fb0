package trail

import "fmt"

// Cause identifies the agent responsible for a domain change — the
// propagator (or the search loop, via CauseNull) that requested it.
// Mutators accept a Cause so the explanation recorder can attribute
// events, and so a propagator can suppress redundant re-notification of
// its own writes (spec.md §3.1, §6.2).
type Cause interface {
	CauseID() string
}

// causeNull is the decision-level cause used when search itself mutates a
// domain (as opposed to a propagator).
type causeNull struct{}

func (causeNull) CauseID() string { return "search" }

// CauseNull is the Cause used by the search loop for decision application.
var CauseNull Cause = causeNull{}

// Reason is the closed set of short tags naming why a contradiction was
// raised (spec.md §7).
type Reason int

const (
	MsgEmpty Reason = iota
	MsgLow
	MsgUpp
	MsgInst
	MsgUnknown
	MsgRemove
)

func (r Reason) String() string {
	switch r {
	case MsgEmpty:
		return "MSG_EMPTY"
	case MsgLow:
		return "MSG_LOW"
	case MsgUpp:
		return "MSG_UPP"
	case MsgInst:
		return "MSG_INST"
	case MsgUnknown:
		return "MSG_UNKNOWN"
	case MsgRemove:
		return "MSG_REMOVE"
	default:
		return "MSG_UNSPECIFIED"
	}
}

// Contradiction is the expected failure raised by a propagator or domain
// mutator when the current partial assignment is inconsistent. It carries
// the failing variable's name and a reason tag; the search loop is the
// sole catcher (spec.md §7) — it is never surfaced to a model-facing
// caller.
type Contradiction struct {
	Var    string
	Reason Reason
	Cause  Cause
}

func (c *Contradiction) Error() string {
	if c.Cause != nil {
		return fmt.Sprintf("contradiction: %s on %s (cause=%s)", c.Reason, c.Var, c.Cause.CauseID())
	}
	return fmt.Sprintf("contradiction: %s on %s", c.Reason, c.Var)
}

// Fail constructs a *Contradiction. Mutators call this rather than
// allocating the struct inline, keeping call sites terse.
func Fail(varName string, reason Reason, cause Cause) *Contradiction {
	return &Contradiction{Var: varName, Reason: reason, Cause: cause}
}

// InvariantViolation is the fatal, non-recoverable error kind of
// spec.md §7: a reversible cell trailed in an unknown world, a propagator
// mutating a variable it never subscribed to, or a kernel/envelope
// divergence. It is always raised via panic — there is no well-defined
// recovery, unlike a Contradiction, which the search loop always catches.
type InvariantViolation struct{ Msg string }

func (e *InvariantViolation) Error() string { return "corecp: invariant violation: " + e.Msg }

// Violate panics with an *InvariantViolation. Centralised so every
// fatal-path call site reads the same way.
func Violate(msg string) { panic(&InvariantViolation{Msg: msg}) }
