// Package propagators implements the graph-variable filtering algorithms:
// degree bounds, subtour/cycle elimination, K-cliques/K-connected-
// components, anti-arborescence partitioning, cycle/path cost evaluation
// and the Held-Karp one-tree bound.
package propagators

import (
	"github.com/katalvlaran/corecp/graphvar"
	"github.com/katalvlaran/corecp/propagation"
	"github.com/katalvlaran/corecp/trail"
)

// DegreeAtLeast enforces, for every node still in the envelope, that its
// kernel degree can reach at least min[u] — pruning arcs is not attempted
// here (this propagator only detects infeasibility and forces arcs when a
// node's envelope degree drops to exactly min[u]); the companion
// DegreeAtMost prunes from the other side.
type DegreeAtLeast struct {
	recorder
	g    *graphvar.Graph
	min  []int
	node []int // node universe to check; nil means every node
}

// NewDegreeAtLeast creates a propagator requiring every node u to end with
// kernel degree >= min[u].
func NewDegreeAtLeast(g *graphvar.Graph, min []int) *DegreeAtLeast {
	return &DegreeAtLeast{g: g, min: min}
}

// Wire subscribes to every arc/node mutation on g so the engine wakes this
// propagator again after Init instead of leaving it dormant.
func (p *DegreeAtLeast) Wire(propID int) { p.g.Subscribe(propID, graphMutation) }

// Priority reports the linear cost tier: one scan over the node universe.
func (p *DegreeAtLeast) Priority() propagation.Priority { return propagation.Linear }

// Init runs the initial feasibility + forcing pass.
func (p *DegreeAtLeast) Init() error { return p.scan() }

// Propagate re-scans on any arc/node event; degree bounds have no useful
// incremental shortcut cheaper than an O(n) scan, since a single arc
// removal can force an entire node.
func (p *DegreeAtLeast) Propagate(*propagation.Events) error { return p.scan() }

// IsEntailed reports true once every node's kernel degree already meets
// its minimum.
func (p *DegreeAtLeast) IsEntailed() bool {
	for u := 0; u < p.g.N(); u++ {
		if !p.g.EnvelopeHasNode(u) {
			continue
		}
		if p.g.KernelDegree(u) < p.min[u] {
			return false
		}
	}
	return true
}

func (p *DegreeAtLeast) scan() error {
	for u := 0; u < p.g.N(); u++ {
		if !p.g.EnvelopeHasNode(u) {
			continue
		}
		envDeg := p.g.EnvelopeDegree(u)
		if envDeg < p.min[u] {
			return p.fail("graph", trail.MsgLow, nil)
		}
		if envDeg == p.min[u] && p.g.KernelDegree(u) < p.min[u] {
			var arcErr error
			p.g.EnvelopeNeighbors(u, func(v int) {
				if arcErr == nil && !p.g.KernelHasArc(u, v) {
					arcErr = p.g.EnforceArc(u, v, nil)
				}
			})
			if arcErr != nil {
				return arcErr
			}
		}
	}
	return nil
}

// DegreeAtMost enforces, for every node, that its kernel degree never
// exceeds max[u], removing the remaining envelope arcs once the cap is
// reached.
type DegreeAtMost struct {
	recorder
	g   *graphvar.Graph
	max []int
}

// NewDegreeAtMost creates a propagator requiring every node u to end with
// kernel degree <= max[u].
func NewDegreeAtMost(g *graphvar.Graph, max []int) *DegreeAtMost {
	return &DegreeAtMost{g: g, max: max}
}

// Wire subscribes to every arc/node mutation on g so the engine wakes this
// propagator again after Init instead of leaving it dormant.
func (p *DegreeAtMost) Wire(propID int) { p.g.Subscribe(propID, graphMutation) }

// Priority reports the linear cost tier.
func (p *DegreeAtMost) Priority() propagation.Priority { return propagation.Linear }

// Init runs the initial pruning pass.
func (p *DegreeAtMost) Init() error { return p.scan() }

// Propagate re-scans on any arc/node event.
func (p *DegreeAtMost) Propagate(*propagation.Events) error { return p.scan() }

// IsEntailed reports true once every node's envelope degree already sits
// at or below its maximum, so no further removal can ever be needed.
func (p *DegreeAtMost) IsEntailed() bool {
	for u := 0; u < p.g.N(); u++ {
		if !p.g.EnvelopeHasNode(u) {
			continue
		}
		if p.g.EnvelopeDegree(u) > p.max[u] {
			return false
		}
	}
	return true
}

func (p *DegreeAtMost) scan() error {
	for u := 0; u < p.g.N(); u++ {
		if !p.g.EnvelopeHasNode(u) {
			continue
		}
		kernelDeg := p.g.KernelDegree(u)
		if kernelDeg > p.max[u] {
			return p.fail("graph", trail.MsgUpp, nil)
		}
		if kernelDeg == p.max[u] && p.g.EnvelopeDegree(u) > kernelDeg {
			var toRemove []int
			p.g.EnvelopeNeighbors(u, func(v int) {
				if !p.g.KernelHasArc(u, v) {
					toRemove = append(toRemove, v)
				}
			})
			for _, v := range toRemove {
				if err := p.g.RemoveArc(u, v, nil); err != nil {
					return err
				}
			}
		}
	}
	return nil
}
