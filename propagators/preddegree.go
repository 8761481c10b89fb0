package propagators

import (
	"github.com/katalvlaran/corecp/graphvar"
	"github.com/katalvlaran/corecp/propagation"
	"github.com/katalvlaran/corecp/trail"
)

// PredDegreeAtLeast is the in-degree analogue of DegreeAtLeast, used by the
// directed Hamiltonian-path factory to bound predecessor counts (every
// node but the origin must have exactly one predecessor).
type PredDegreeAtLeast struct {
	recorder
	g   *graphvar.Graph
	min []int
}

// NewPredDegreeAtLeast creates a propagator requiring every node u to end
// with kernel in-degree >= min[u].
func NewPredDegreeAtLeast(g *graphvar.Graph, min []int) *PredDegreeAtLeast {
	return &PredDegreeAtLeast{g: g, min: min}
}

// Wire subscribes to every arc/node mutation on g so the engine wakes this
// propagator again after Init instead of leaving it dormant.
func (p *PredDegreeAtLeast) Wire(propID int) { p.g.Subscribe(propID, graphMutation) }

// Priority reports the linear cost tier (an O(n) predecessor scan per node
// makes this effectively quadratic, but it shares the tier with the
// out-degree propagators it always runs alongside).
func (p *PredDegreeAtLeast) Priority() propagation.Priority { return propagation.Linear }

// Init runs the initial feasibility + forcing pass.
func (p *PredDegreeAtLeast) Init() error { return p.scan() }

// Propagate rescans on any arc/node event.
func (p *PredDegreeAtLeast) Propagate(*propagation.Events) error { return p.scan() }

// IsEntailed reports true once every node's kernel in-degree already meets
// its minimum.
func (p *PredDegreeAtLeast) IsEntailed() bool {
	for u := 0; u < p.g.N(); u++ {
		if !p.g.EnvelopeHasNode(u) {
			continue
		}
		if p.g.KernelInDegree(u) < p.min[u] {
			return false
		}
	}
	return true
}

func (p *PredDegreeAtLeast) scan() error {
	for u := 0; u < p.g.N(); u++ {
		if !p.g.EnvelopeHasNode(u) {
			continue
		}
		envDeg := p.g.EnvelopeInDegree(u)
		if envDeg < p.min[u] {
			return p.fail("graph", trail.MsgLow, nil)
		}
		if envDeg == p.min[u] && p.g.KernelInDegree(u) < p.min[u] {
			var arcErr error
			p.g.EnvelopePredecessors(u, func(v int) {
				if arcErr == nil && !p.g.KernelHasArc(v, u) {
					arcErr = p.g.EnforceArc(v, u, nil)
				}
			})
			if arcErr != nil {
				return arcErr
			}
		}
	}
	return nil
}

// PredDegreeAtMost is the in-degree analogue of DegreeAtMost.
type PredDegreeAtMost struct {
	recorder
	g   *graphvar.Graph
	max []int
}

// NewPredDegreeAtMost creates a propagator requiring every node u to end
// with kernel in-degree <= max[u].
func NewPredDegreeAtMost(g *graphvar.Graph, max []int) *PredDegreeAtMost {
	return &PredDegreeAtMost{g: g, max: max}
}

// Wire subscribes to every arc/node mutation on g so the engine wakes this
// propagator again after Init instead of leaving it dormant.
func (p *PredDegreeAtMost) Wire(propID int) { p.g.Subscribe(propID, graphMutation) }

// Priority reports the linear cost tier.
func (p *PredDegreeAtMost) Priority() propagation.Priority { return propagation.Linear }

// Init runs the initial pruning pass.
func (p *PredDegreeAtMost) Init() error { return p.scan() }

// Propagate rescans on any arc/node event.
func (p *PredDegreeAtMost) Propagate(*propagation.Events) error { return p.scan() }

// IsEntailed reports true once every node's envelope in-degree already
// sits at or below its maximum.
func (p *PredDegreeAtMost) IsEntailed() bool {
	for u := 0; u < p.g.N(); u++ {
		if !p.g.EnvelopeHasNode(u) {
			continue
		}
		if p.g.EnvelopeInDegree(u) > p.max[u] {
			return false
		}
	}
	return true
}

func (p *PredDegreeAtMost) scan() error {
	for u := 0; u < p.g.N(); u++ {
		if !p.g.EnvelopeHasNode(u) {
			continue
		}
		kernelDeg := p.g.KernelInDegree(u)
		if kernelDeg > p.max[u] {
			return p.fail("graph", trail.MsgUpp, nil)
		}
		if kernelDeg == p.max[u] && p.g.EnvelopeInDegree(u) > kernelDeg {
			var toRemove []int
			p.g.EnvelopePredecessors(u, func(v int) {
				if !p.g.KernelHasArc(v, u) {
					toRemove = append(toRemove, v)
				}
			})
			for _, v := range toRemove {
				if err := p.g.RemoveArc(v, u, nil); err != nil {
					return err
				}
			}
		}
	}
	return nil
}
