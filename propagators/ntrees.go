package propagators

import (
	"github.com/katalvlaran/corecp/event"
	"github.com/katalvlaran/corecp/graphvar"
	"github.com/katalvlaran/corecp/intvar"
	"github.com/katalvlaran/corecp/propagation"
	"github.com/katalvlaran/corecp/trail"
)

// NTrees is the anti-arborescence partitioning constraint ("tree
// constraint"): every node has exactly one outgoing kernel arc, a root is
// identified by a self-loop, and following successor arcs from any node
// must eventually reach a root without revisiting a non-root node first —
// any cycle that excludes a root is forbidden. NB_TREE is bound to the
// number of roots, the same way NCliques binds NB_CLIQUES to a component
// count.
//
// Assumes every node belongs to the solution (the factory this propagator
// backs never partially activates the node set — only arcs vary).
type NTrees struct {
	recorder
	g  *graphvar.Graph
	nb *intvar.Var
}

// NewNTrees creates an anti-arborescence propagator binding g's root count
// to nb.
func NewNTrees(g *graphvar.Graph, nb *intvar.Var) *NTrees { return &NTrees{g: g, nb: nb} }

// Wire subscribes to every arc/node mutation on g and every bound change
// on nb, matching the two wake sources scan reads from.
func (p *NTrees) Wire(propID int) {
	p.g.Subscribe(propID, graphMutation)
	p.nb.Subscribe(propID, event.Bound)
}

// Priority reports the linear cost tier: one successor-chain walk per node.
func (p *NTrees) Priority() propagation.Priority { return propagation.Linear }

// Init runs the first filtering pass.
func (p *NTrees) Init() error { return p.scan() }

// Propagate rescans on any arc event.
func (p *NTrees) Propagate(*propagation.Events) error { return p.scan() }

// IsEntailed reports true once every node has exactly one kernel successor
// and the root count already matches NB_TREE exactly.
func (p *NTrees) IsEntailed() bool {
	n := p.g.N()
	for u := 0; u < n; u++ {
		if p.g.EnvelopeHasNode(u) && p.g.KernelDegree(u) != 1 {
			return false
		}
	}
	return p.countKernelRoots() == p.countEnvelopeRoots()
}

func (p *NTrees) scan() error {
	n := p.g.N()

	// No non-root cycle may exist among kernel successor arcs.
	visited := make([]bool, n)
	for u := 0; u < n; u++ {
		if !p.g.EnvelopeHasNode(u) || visited[u] || p.g.KernelDegree(u) != 1 {
			continue
		}
		if p.g.KernelHasArc(u, u) {
			visited[u] = true
			continue
		}
		path := []int{u}
		onPath := map[int]bool{u: true}
		cur := u
		for {
			visited[cur] = true
			next := -1
			p.g.KernelNeighbors(cur, func(v int) { next = v })
			if next == -1 || p.g.KernelDegree(next) != 1 {
				break
			}
			if next == cur {
				break // reached a self-loop root
			}
			if onPath[next] {
				return p.fail("graph", trail.MsgInst, nil) // cycle excluding any root
			}
			path = append(path, next)
			onPath[next] = true
			cur = next
			if visited[cur] {
				break
			}
		}
	}

	// Force the lone remaining candidate successor once a node's envelope
	// has shrunk to exactly one.
	for u := 0; u < n; u++ {
		if !p.g.EnvelopeHasNode(u) || p.g.KernelDegree(u) == 1 {
			continue
		}
		if p.g.EnvelopeDegree(u) == 0 {
			return p.fail("graph", trail.MsgEmpty, nil)
		}
		if p.g.EnvelopeDegree(u) == 1 {
			var only int
			p.g.EnvelopeNeighbors(u, func(v int) { only = v })
			if err := p.g.EnforceArc(u, only, nil); err != nil {
				return err
			}
		}
	}

	lo, hi := p.countKernelRoots(), p.countEnvelopeRoots()
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

func (p *NTrees) countKernelRoots() int {
	n, count := p.g.N(), 0
	for u := 0; u < n; u++ {
		if p.g.EnvelopeHasNode(u) && p.g.KernelHasArc(u, u) {
			count++
		}
	}
	return count
}

func (p *NTrees) countEnvelopeRoots() int {
	n, count := p.g.N(), 0
	for u := 0; u < n; u++ {
		if p.g.EnvelopeHasNode(u) && p.g.EnvelopeHasArc(u, u) {
			count++
		}
	}
	return count
}
