package propagators

import (
	"github.com/katalvlaran/corecp/event"
	"github.com/katalvlaran/corecp/graphvar"
	"github.com/katalvlaran/corecp/intvar"
	"github.com/katalvlaran/corecp/propagation"
	"github.com/katalvlaran/corecp/trail"
)

// Transitivity enforces that the kernel's connected components are always
// cliques: if u-v and v-w are both mandatory, u-w must be mandatory too —
// the basic closure rule a clique partition relies on everywhere else in
// this package.
type Transitivity struct {
	recorder
	g *graphvar.Graph
}

// NewTransitivity creates a clique-closure propagator over g.
func NewTransitivity(g *graphvar.Graph) *Transitivity { return &Transitivity{g: g} }

// Wire subscribes to every arc/node mutation on g so the engine wakes this
// propagator again after Init instead of leaving it dormant.
func (p *Transitivity) Wire(propID int) { p.g.Subscribe(propID, graphMutation) }

// Priority reports the quadratic cost tier: closure can touch O(n^2) pairs.
func (p *Transitivity) Priority() propagation.Priority { return propagation.Quadratic }

// Init runs the first closure pass.
func (p *Transitivity) Init() error { return p.scan() }

// Propagate rescans on any arc event.
func (p *Transitivity) Propagate(*propagation.Events) error { return p.scan() }

// IsEntailed is conservatively false: closure may always have more work to
// do as the kernel keeps growing, so this propagator never retires itself.
func (p *Transitivity) IsEntailed() bool { return false }

func (p *Transitivity) scan() error {
	n := p.g.N()
	for u := 0; u < n; u++ {
		if !p.g.EnvelopeHasNode(u) {
			continue
		}
		var neighbors []int
		p.g.KernelNeighbors(u, func(v int) { neighbors = append(neighbors, v) })
		for i := 0; i < len(neighbors); i++ {
			for j := i + 1; j < len(neighbors); j++ {
				v, w := neighbors[i], neighbors[j]
				if !p.g.KernelHasArc(v, w) {
					if !p.g.EnvelopeHasArc(v, w) {
						return p.fail("graph", trail.MsgInst, nil)
					}
					if err := p.g.EnforceArc(v, w, nil); err != nil {
						return err
					}
				}
			}
		}
	}
	return nil
}

// NCliques ties NB_CLIQUES to the kernel and envelope connected-component
// counts: the envelope's component count is a lower bound (arcs already
// excluded can never be un-excluded, so the final graph cannot merge more
// than the envelope does), and the kernel's component count is an upper
// bound (mandatory arcs can only gain company, and every added arc merges
// or keeps components, never splits them). Grounded on PropKCliques/PropKCC acting together
// via the same bound-filtering idea.
type NCliques struct {
	recorder
	g  *graphvar.Graph
	nb *intvar.Var
}

// NewNCliques creates the component-counting propagator binding g's
// partition to nb.
func NewNCliques(g *graphvar.Graph, nb *intvar.Var) *NCliques { return &NCliques{g: g, nb: nb} }

// Wire subscribes to every arc/node mutation on g and every bound change
// on nb, matching the two wake sources scan reads from.
func (p *NCliques) Wire(propID int) {
	p.g.Subscribe(propID, graphMutation)
	p.nb.Subscribe(propID, event.Bound)
}

// Priority reports the linear cost tier: one BFS sweep each over kernel
// and envelope.
func (p *NCliques) Priority() propagation.Priority { return propagation.Linear }

// Init runs the first bound-tightening pass.
func (p *NCliques) Init() error { return p.scan() }

// Propagate rescans on any arc/node or NB_CLIQUES bound event.
func (p *NCliques) Propagate(*propagation.Events) error { return p.scan() }

// IsEntailed reports true once the kernel and envelope already agree on
// the exact component count.
func (p *NCliques) IsEntailed() bool {
	return componentCount(p.g, kernelAdjacency) == componentCount(p.g, envelopeAdjacency)
}

func (p *NCliques) scan() error {
	lo := componentCount(p.g, envelopeAdjacency)
	hi := componentCount(p.g, kernelAdjacency)
	if int64(hi) < p.nb.Min() {
		return p.fail(p.nb.Name(), trail.MsgUpp, nil)
	}
	if int64(lo) > p.nb.Max() {
		return p.fail(p.nb.Name(), trail.MsgLow, nil)
	}
	if err := p.nb.UpdateLB(int64(lo), nil); err != nil {
		return err
	}
	if err := p.nb.UpdateUB(int64(hi), nil); err != nil {
		return err
	}
	return nil
}

// adjacencyMode selects which of a graph variable's two adjacency
// relations componentCount walks.
type adjacencyMode int

const (
	kernelAdjacency   adjacencyMode = iota
	envelopeAdjacency
)

// componentCount counts connected components of g's node envelope under
// either the kernel or the envelope adjacency relation, via a plain BFS
// sweep — the same adjacency-iteration idiom used throughout this module,
// generalized from walking a concrete graph to walking a graph variable.
func componentCount(g *graphvar.Graph, mode adjacencyMode) int {
	n := g.N()
	visited := make([]bool, n)
	count := 0
	queue := make([]int, 0, n)
	for s := 0; s < n; s++ {
		if !g.EnvelopeHasNode(s) || visited[s] {
			continue
		}
		count++
		visited[s] = true
		queue = queue[:0]
		queue = append(queue, s)
		for len(queue) > 0 {
			u := queue[0]
			queue = queue[1:]
			neigh := func(v int) {
				if !visited[v] {
					visited[v] = true
					queue = append(queue, v)
				}
			}
			if mode == kernelAdjacency {
				g.KernelNeighbors(u, neigh)
			} else {
				g.EnvelopeNeighbors(u, neigh)
			}
		}
	}
	return count
}
