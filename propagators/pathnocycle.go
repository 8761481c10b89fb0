package propagators

import (
	"github.com/katalvlaran/corecp/graphvar"
	"github.com/katalvlaran/corecp/propagation"
	"github.com/katalvlaran/corecp/trail"
)

// PathNoCycle is the directed analogue of NoSubtour: a directed graph
// variable heading towards a Hamiltonian path from origin to destination
// may only ever contain directed chains, never a closed directed cycle.
// Unlike the cycle case there is no final "force the closing arc" step —
// a path never closes — so every chain's tail-to-head arc is forbidden
// outright, regardless of the chain's length.
//
// Assumes out-degree and in-degree are each already bounded to at most 1
// per node by the companion degree propagators, as the hamiltonian-path
// factory always arranges.
type PathNoCycle struct {
	recorder
	g           *graphvar.Graph
	origin, dst int
}

// NewPathNoCycle creates a cycle-elimination propagator for a directed
// Hamiltonian path from origin to dst.
func NewPathNoCycle(g *graphvar.Graph, origin, dst int) *PathNoCycle {
	return &PathNoCycle{g: g, origin: origin, dst: dst}
}

// Wire subscribes to every arc mutation on g so the engine wakes this
// propagator again after Init instead of leaving it dormant.
func (p *PathNoCycle) Wire(propID int) { p.g.Subscribe(propID, graphMutation) }

// Priority reports the linear cost tier.
func (p *PathNoCycle) Priority() propagation.Priority { return propagation.Linear }

// Init runs the first filtering pass.
func (p *PathNoCycle) Init() error { return p.scan() }

// Propagate rescans on any arc event.
func (p *PathNoCycle) Propagate(*propagation.Events) error { return p.scan() }

// IsEntailed reports true once the kernel already forms a single directed
// path spanning every node from origin to dst.
func (p *PathNoCycle) IsEntailed() bool {
	n := p.g.N()
	for u := 0; u < n; u++ {
		if !p.g.EnvelopeHasNode(u) {
			continue
		}
		want := 1
		if u == p.dst {
			want = 0
		}
		if p.g.KernelDegree(u) != want {
			return false
		}
	}
	return true
}

func (p *PathNoCycle) scan() error {
	n := p.g.N()
	visited := make([]bool, n)
	indeg := make([]int, n)
	for u := 0; u < n; u++ {
		if !p.g.EnvelopeHasNode(u) {
			continue
		}
		p.g.KernelNeighbors(u, func(v int) { indeg[v]++ })
	}

	for u := 0; u < n; u++ {
		if !p.g.EnvelopeHasNode(u) || visited[u] || indeg[u] != 0 {
			continue
		}
		head, tail, size := p.walkChain(u, visited)
		if size > 1 {
			if p.g.KernelHasArc(tail, head) {
				return p.fail("graph", trail.MsgInst, nil)
			}
			if p.g.EnvelopeHasArc(tail, head) {
				if err := p.g.RemoveArc(tail, head, nil); err != nil {
					return err
				}
			}
		}
	}

	for u := 0; u < n; u++ {
		if p.g.EnvelopeHasNode(u) && !visited[u] {
			// Every head (in-degree 0) has already been walked; a node
			// still unvisited here sits on a closed directed cycle with
			// no entry point, which a Hamiltonian path can never contain.
			return p.fail("graph", trail.MsgInst, nil)
		}
	}
	return nil
}

// walkChain follows kernel successor arcs forward from head until it
// reaches a node with no outgoing kernel arc, marking every node visited.
func (p *PathNoCycle) walkChain(head int, visited []bool) (h, tail, size int) {
	cur := head
	visited[cur] = true
	size = 1
	for {
		next := -1
		p.g.KernelNeighbors(cur, func(v int) { next = v })
		if next == -1 {
			break
		}
		cur = next
		visited[cur] = true
		size++
	}
	return head, cur, size
}
