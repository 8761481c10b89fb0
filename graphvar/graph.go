// Package graphvar implements the graph variable: a kernel/envelope pair of
// node and arc sets over a fixed node universe {0,...,n-1}, trailed through
// package trail so backtracking restores every filtering decision a graph
// propagator has made.
//
// Unlike a general-purpose graph type built for concurrent traversal, a
// graph variable is mutated by exactly one propagator at a time inside a
// single-threaded engine, so it carries no mutex: correctness here comes
// from the trail's delta discipline, not from locking.
package graphvar

import (
	"github.com/katalvlaran/corecp/event"
	"github.com/katalvlaran/corecp/propagation"
	"github.com/katalvlaran/corecp/trail"
)

type subscription struct {
	propID int
	mask   event.Kind
}

// Graph is a graph variable: kernel ⊆ envelope, both evaluated over the
// same node universe {0,...,n-1}. Kernel sets only ever grow (enforce);
// envelope sets only ever shrink (remove) — the same monotonic discipline
// trail.RevSparseSet was built for.
type Graph struct {
	n        int
	directed bool
	notifier propagation.Notifier

	nodeEnvelope *trail.RevSparseSet
	nodeKernel   *trail.RevSparseSet

	// kernelAdj[u]/envelopeAdj[u] hold the out-neighbors (or, for an
	// undirected graph, the neighbors) of u mandated/still possible.
	kernelAdj   []*trail.RevSparseSet
	envelopeAdj []*trail.RevSparseSet

	subs []subscription

	arcDelta  map[int]*arcDeltaBuf
	nodeDelta map[int]*nodeDeltaBuf
}

// GraphOption configures a Graph at construction.
type GraphOption func(*Graph)

// Directed marks the graph variable as directed; the default is
// undirected.
func Directed() GraphOption { return func(g *Graph) { g.directed = true } }

// NewGraph creates a graph variable over n nodes, with every node and arc
// initially in the envelope and nothing yet in the kernel.
func NewGraph(env *trail.Env, notifier propagation.Notifier, n int, opts ...GraphOption) *Graph {
	g := &Graph{
		n:         n,
		notifier:  notifier,
		arcDelta:  make(map[int]*arcDeltaBuf),
		nodeDelta: make(map[int]*nodeDeltaBuf),
	}
	for _, opt := range opts {
		opt(g)
	}
	g.nodeEnvelope = env.NewRevSparseSet(n)
	g.nodeKernel = env.NewEmptyRevSparseSet(n)
	g.kernelAdj = make([]*trail.RevSparseSet, n)
	g.envelopeAdj = make([]*trail.RevSparseSet, n)
	for u := 0; u < n; u++ {
		g.kernelAdj[u] = env.NewEmptyRevSparseSet(n)
		g.envelopeAdj[u] = env.NewRevSparseSet(n)
	}
	return g
}

// N returns the size of the node universe.
func (g *Graph) N() int { return g.n }

// Directed reports whether arcs are directed.
func (g *Graph) Directed() bool { return g.directed }

// Subscribe registers propID to be woken on any event in mask.
func (g *Graph) Subscribe(propID int, mask event.Kind) {
	g.subs = append(g.subs, subscription{propID: propID, mask: mask})
}

func (g *Graph) notify(mask event.Kind) {
	for _, s := range g.subs {
		if s.mask.Any(mask) {
			g.notifier.Enqueue(s.propID, -1, mask)
		}
	}
}

// KernelHasNode reports whether u is mandatory.
func (g *Graph) KernelHasNode(u int) bool { return g.nodeKernel.Contains(u) }

// EnvelopeHasNode reports whether u is still possible.
func (g *Graph) EnvelopeHasNode(u int) bool { return g.nodeEnvelope.Contains(u) }

// KernelHasArc reports whether arc (u,v) is mandatory.
func (g *Graph) KernelHasArc(u, v int) bool { return g.kernelAdj[u].Contains(v) }

// EnvelopeHasArc reports whether arc (u,v) is still possible.
func (g *Graph) EnvelopeHasArc(u, v int) bool { return g.envelopeAdj[u].Contains(v) }

// KernelNeighbors calls f for every mandatory out-neighbor of u.
func (g *Graph) KernelNeighbors(u int, f func(v int)) { g.kernelAdj[u].Each(f) }

// EnvelopeNeighbors calls f for every possible out-neighbor of u.
func (g *Graph) EnvelopeNeighbors(u int, f func(v int)) { g.envelopeAdj[u].Each(f) }

// KernelDegree returns the number of mandatory out-arcs of u.
func (g *Graph) KernelDegree(u int) int { return g.kernelAdj[u].Size() }

// EnvelopeDegree returns the number of possible out-arcs of u.
func (g *Graph) EnvelopeDegree(u int) int { return g.envelopeAdj[u].Size() }

// KernelPredecessors calls f for every node v whose mandatory out-arcs
// include u — the in-neighbors of u under the kernel relation. Graph
// variables only store out-adjacency, so this is an O(n) scan rather than
// an O(deg) lookup; used only by the directed predecessor-degree
// propagators, never on the undirected hot path.
func (g *Graph) KernelPredecessors(u int, f func(v int)) {
	for v := 0; v < g.n; v++ {
		if v != u && g.kernelAdj[v].Contains(u) {
			f(v)
		}
	}
}

// EnvelopePredecessors mirrors KernelPredecessors over the envelope
// relation.
func (g *Graph) EnvelopePredecessors(u int, f func(v int)) {
	for v := 0; v < g.n; v++ {
		if v != u && g.envelopeAdj[v].Contains(u) {
			f(v)
		}
	}
}

// KernelInDegree returns the number of mandatory arcs ending at u.
func (g *Graph) KernelInDegree(u int) int {
	count := 0
	g.KernelPredecessors(u, func(int) { count++ })
	return count
}

// EnvelopeInDegree returns the number of possible arcs ending at u.
func (g *Graph) EnvelopeInDegree(u int) int {
	count := 0
	g.EnvelopePredecessors(u, func(int) { count++ })
	return count
}

// KernelNodeCount returns the number of mandatory nodes.
func (g *Graph) KernelNodeCount() int { return g.nodeKernel.Size() }

// EnvelopeNodeCount returns the number of possible nodes.
func (g *Graph) EnvelopeNodeCount() int { return g.nodeEnvelope.Size() }

// EnforceNode mandates u. u must already be in the envelope; if not, this
// raises a *trail.Contradiction (spec.md §5's node/arc mutator contract).
func (g *Graph) EnforceNode(u int, cause trail.Cause) error {
	if !g.nodeEnvelope.Contains(u) {
		return trail.Fail("graph", trail.MsgEmpty, cause)
	}
	if g.nodeKernel.Add(u) {
		g.recordNodeDelta(nodeDelta{Node: u, Activated: true})
		g.notify(event.ActivateNode)
	}
	return nil
}

// RemoveNode excludes u from the envelope. If u is mandatory this raises a
// *trail.Contradiction. Removing u also removes every arc touching it, in
// either direction, from the envelope.
func (g *Graph) RemoveNode(u int, cause trail.Cause) error {
	if g.nodeKernel.Contains(u) {
		return trail.Fail("graph", trail.MsgRemove, cause)
	}
	if !g.nodeEnvelope.Remove(u) {
		return nil
	}
	g.recordNodeDelta(nodeDelta{Node: u, Activated: false})
	var out []int
	g.envelopeAdj[u].Each(func(v int) { out = append(out, v) })
	for _, v := range out {
		g.envelopeAdj[u].Remove(v)
	}
	for v := 0; v < g.n; v++ {
		if v != u {
			g.envelopeAdj[v].Remove(u)
		}
	}
	g.notify(event.RemoveNode)
	return nil
}

// EnforceArc mandates arc (u,v). Both endpoints are enforced into the
// kernel as a side effect, since a mandatory arc implies mandatory
// endpoints. Raises a *trail.Contradiction if the arc is not in the
// envelope.
func (g *Graph) EnforceArc(u, v int, cause trail.Cause) error {
	if !g.envelopeAdj[u].Contains(v) {
		return trail.Fail("graph", trail.MsgEmpty, cause)
	}
	if err := g.EnforceNode(u, cause); err != nil {
		return err
	}
	if err := g.EnforceNode(v, cause); err != nil {
		return err
	}
	if g.kernelAdj[u].Add(v) {
		g.recordArcDelta(arcDelta{U: u, V: v, Added: true})
		if !g.directed {
			g.kernelAdj[v].Add(u)
		}
		g.notify(event.AddArc)
	}
	return nil
}

// RemoveArc excludes arc (u,v) from the envelope. Raises a
// *trail.Contradiction if the arc is mandatory.
func (g *Graph) RemoveArc(u, v int, cause trail.Cause) error {
	if g.kernelAdj[u].Contains(v) {
		return trail.Fail("graph", trail.MsgRemove, cause)
	}
	if !g.envelopeAdj[u].Remove(v) {
		return nil
	}
	if !g.directed {
		g.envelopeAdj[v].Remove(u)
	}
	g.recordArcDelta(arcDelta{U: u, V: v, Added: false})
	g.notify(event.RemoveArc)
	return nil
}
