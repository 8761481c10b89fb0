// Package explain implements the why-hook contract: propagators record
// which upstream facts justified a filtering decision, and a Recorder
// either discards that information (the default, zero-cost sink) or
// accumulates it into a queryable explanation for a later contradiction
// or solution.
package explain

import "github.com/katalvlaran/corecp/trail"

// Fact is one atomic justification: "var took reason because of cause".
type Fact struct {
	Var    string
	Reason trail.Reason
	Cause  trail.Cause
}

// Recorder receives justifications as propagators produce them. A
// propagator calls Record every time it performs a filtering step it may
// later need to explain; most recorders (NullRecorder) throw the fact away
// immediately, so the call is effectively free unless a caller has opted
// into full explanation.
type Recorder interface {
	Record(f Fact)
}

// NullRecorder discards every fact. It is the default recorder: explaining
// contradictions is an opt-in feature, not an ambient cost (spec.md §10).
type NullRecorder struct{}

// Record implements Recorder by doing nothing.
func (NullRecorder) Record(Fact) {}

// Log is a Recorder that accumulates every fact it sees, in arrival order,
// for later inspection — the search loop's choice when the caller asked
// for an explained contradiction or a proof trace.
type Log struct {
	facts []Fact
}

// NewLog creates an empty explanation log.
func NewLog() *Log { return &Log{} }

// Record appends f to the log.
func (l *Log) Record(f Fact) { l.facts = append(l.facts, f) }

// Facts returns every recorded fact, in arrival order.
func (l *Log) Facts() []Fact { return l.facts }

// Len returns the number of recorded facts.
func (l *Log) Len() int { return len(l.facts) }

// Reset discards every recorded fact, reusing the log's backing storage.
func (l *Log) Reset() { l.facts = l.facts[:0] }
