package propagators

import (
	"github.com/katalvlaran/corecp/event"
	"github.com/katalvlaran/corecp/graphvar"
	"github.com/katalvlaran/corecp/intvar"
	"github.com/katalvlaran/corecp/propagation"
	"github.com/katalvlaran/corecp/trail"
)

// CycleEval binds COST to the total weight of the graph variable's kernel
// arcs, tightening COST's lower bound as arcs become mandatory and its
// upper bound as the envelope shrinks. Works for both the undirected
// cycle-cost objective (PropCycleEvalObj) and the directed path/circuit
// objective (PropPathOrCircuitEvalObj) — the accumulation is identical,
// only the graph variable's directedness differs, and for an undirected
// graph each mandatory edge is only counted once via the u<v convention.
type CycleEval struct {
	recorder
	g       *graphvar.Graph
	cost    *intvar.Var
	weights [][]int64
}

// NewCycleEval creates a cost-evaluation propagator tying cost to the
// total weight of g's kernel arcs under weights.
func NewCycleEval(g *graphvar.Graph, cost *intvar.Var, weights [][]int64) *CycleEval {
	return &CycleEval{g: g, cost: cost, weights: weights}
}

// Wire subscribes to every arc mutation on g and every bound change on
// cost, matching the two wake sources scan reads from.
func (p *CycleEval) Wire(propID int) {
	p.g.Subscribe(propID, graphMutation)
	p.cost.Subscribe(propID, event.Bound)
}

// Priority reports the linear cost tier: one scan over the node universe.
func (p *CycleEval) Priority() propagation.Priority { return propagation.Linear }

// Init runs the first bound-tightening pass.
func (p *CycleEval) Init() error { return p.scan() }

// Propagate rescans on any arc event or COST bound event.
func (p *CycleEval) Propagate(*propagation.Events) error { return p.scan() }

// IsEntailed reports true once mandatory and possible kernel weight
// already coincide, i.e. no further arc in the envelope remains
// undecided.
func (p *CycleEval) IsEntailed() bool {
	lo, err := p.kernelWeight()
	if err != nil {
		return false
	}
	hi, err := p.envelopeMaxWeight()
	if err != nil {
		return false
	}
	return lo == hi
}

func (p *CycleEval) scan() error {
	lo, err := p.kernelWeight()
	if err != nil {
		return err
	}
	hi, err := p.envelopeMaxWeight()
	if err != nil {
		return err
	}
	if lo > p.cost.Max() {
		return p.fail(p.cost.Name(), trail.MsgUpp, nil)
	}
	if hi < p.cost.Min() {
		return p.fail(p.cost.Name(), trail.MsgLow, nil)
	}
	if err := p.cost.UpdateLB(lo, nil); err != nil {
		return err
	}
	if err := p.cost.UpdateUB(hi, nil); err != nil {
		return err
	}
	return nil
}

// kernelWeight sums every mandatory arc's weight. Undirected graphs count
// each kernel edge once via the u<v convention; directed graphs count
// every kernel arc exactly once.
func (p *CycleEval) kernelWeight() (int64, error) {
	var sum int64
	n := p.g.N()
	for u := 0; u < n; u++ {
		if !p.g.EnvelopeHasNode(u) {
			continue
		}
		var errOut error
		p.g.KernelNeighbors(u, func(v int) {
			if !p.g.Directed() && v < u {
				return
			}
			sum += p.weights[u][v]
		})
		if errOut != nil {
			return 0, errOut
		}
	}
	return sum, nil
}

// envelopeMaxWeight sums the weight of every still-possible arc (each
// undirected edge counted once) — an admissible (never too tight) upper
// bound on the final kernel weight, cheap enough to recompute every wake.
func (p *CycleEval) envelopeMaxWeight() (int64, error) {
	var sum int64
	n := p.g.N()
	for u := 0; u < n; u++ {
		if !p.g.EnvelopeHasNode(u) {
			continue
		}
		var errOut error
		p.g.EnvelopeNeighbors(u, func(v int) {
			if !p.g.Directed() && v < u {
				return
			}
			sum += p.weights[u][v]
		})
		if errOut != nil {
			return 0, errOut
		}
	}
	return sum, nil
}
