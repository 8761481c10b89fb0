package search

import (
	"github.com/katalvlaran/corecp/graphvar"
	"github.com/katalvlaran/corecp/trail"
)

// ArcDecision adapts a single candidate arc of a graph variable to the
// DecisionVar shape the search loop branches over: value 1 means the arc
// is mandatory (EnforceArc), value 0 means it is excluded (RemoveArc).
type ArcDecision struct {
	g    *graphvar.Graph
	u, v int
}

// NewArcDecision wraps arc (u,v) of g as a branchable decision point.
func NewArcDecision(g *graphvar.Graph, u, v int) *ArcDecision {
	return &ArcDecision{g: g, u: u, v: v}
}

// IsInstantiated reports whether the arc is already mandatory or already
// excluded from the envelope.
func (d *ArcDecision) IsInstantiated() bool {
	return d.g.KernelHasArc(d.u, d.v) || !d.g.EnvelopeHasArc(d.u, d.v)
}

// Min reports 1 if the arc is mandatory, 0 otherwise (possible-but-undecided
// or already excluded) — the search loop tries excluding the arc first.
func (d *ArcDecision) Min() int64 {
	if d.g.KernelHasArc(d.u, d.v) {
		return 1
	}
	return 0
}

// InstantiateTo enforces the arc for val==1, removes it for val==0.
func (d *ArcDecision) InstantiateTo(val int64, cause trail.Cause) error {
	if val == 1 {
		return d.g.EnforceArc(d.u, d.v, cause)
	}
	return d.g.RemoveArc(d.u, d.v, cause)
}

// RemoveValue applies the complementary branch: excluding val==1 means the
// arc must be removed, excluding val==0 means it must be enforced.
func (d *ArcDecision) RemoveValue(val int64, cause trail.Cause) error {
	if val == 1 {
		return d.g.RemoveArc(d.u, d.v, cause)
	}
	return d.g.EnforceArc(d.u, d.v, cause)
}

// ArcDecisions builds one ArcDecision per still-possible, not-yet-decided
// arc of g, in deterministic (u,v) order with u<v for undirected graphs to
// avoid branching on the same edge twice.
func ArcDecisions(g *graphvar.Graph) []DecisionVar {
	n := g.N()
	var out []DecisionVar
	for u := 0; u < n; u++ {
		if !g.EnvelopeHasNode(u) {
			continue
		}
		g.EnvelopeNeighbors(u, func(v int) {
			if !g.Directed() && v < u {
				return
			}
			d := NewArcDecision(g, u, v)
			if !d.IsInstantiated() {
				out = append(out, d)
			}
		})
	}
	return out
}
