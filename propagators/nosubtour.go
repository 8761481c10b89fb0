package propagators

import (
	"github.com/katalvlaran/corecp/event"
	"github.com/katalvlaran/corecp/graphvar"
	"github.com/katalvlaran/corecp/propagation"
	"github.com/katalvlaran/corecp/trail"
)

// NoSubtour is the undirected adaptation of the Caseau & Laburthe "nocycle"
// constraint: the kernel of an undirected graph variable heading towards a
// Hamiltonian cycle may only ever look like a disjoint set of simple
// paths, never a cycle shorter than the full node count. Every chain's two
// endpoints are forbidden from connecting directly unless the chain
// already spans every node, in which case connecting them is forced.
//
// Assumes it runs alongside DegreeAtMost(2): no node's kernel degree ever
// exceeds 2, the shape the factory that builds a Hamiltonian-cycle
// constraint always guarantees, which in turn guarantees that a node
// gaining a new kernel arc is always a current chain endpoint (or a
// singleton, trivially its own endpoint).
//
// Unlike the other propagators in this package, NoSubtour never rescans.
// It tracks each chain's two endpoints and size in a reversible union-find
// (parent/rank/endA/endB/size, one trail.RevRef slot per node, mirroring
// the map-based DSU prim_kruskal.Kruskal builds for its MST) and consumes
// only the arc deltas recorded since its last wake, merging the two
// chains an added arc joins in O(1) amortised instead of re-walking the
// whole kernel. Arc removals never change which chains exist, so they are
// drained and ignored.
type NoSubtour struct {
	recorder
	g      *graphvar.Graph
	env    *trail.Env
	propID int

	parent []*trail.RevRef
	rank   []*trail.RevRef
	endA   []*trail.RevRef
	endB   []*trail.RevRef
	size   []*trail.RevRef
}

// NewNoSubtour creates a subtour-elimination propagator over g. env must
// be the same trail environment g was built against.
func NewNoSubtour(g *graphvar.Graph, env *trail.Env) *NoSubtour {
	n := g.N()
	p := &NoSubtour{
		g: g, env: env,
		parent: make([]*trail.RevRef, n),
		rank:   make([]*trail.RevRef, n),
		endA:   make([]*trail.RevRef, n),
		endB:   make([]*trail.RevRef, n),
		size:   make([]*trail.RevRef, n),
	}
	for u := 0; u < n; u++ {
		p.parent[u] = env.NewRevRef(u)
		p.rank[u] = env.NewRevRef(0)
		p.endA[u] = env.NewRevRef(u)
		p.endB[u] = env.NewRevRef(u)
		p.size[u] = env.NewRevRef(1)
	}
	return p
}

// Wire subscribes to kernel arc additions and enables delta tracking under
// propID; arc removals never affect which chains exist, so they are not
// subscribed.
func (p *NoSubtour) Wire(propID int) {
	p.propID = propID
	p.g.Subscribe(propID, event.AddArc)
	p.g.WatchArcDeltas(p.env, propID)
}

// Priority reports the linear cost tier.
func (p *NoSubtour) Priority() propagation.Priority { return propagation.Linear }

// Init seeds the union-find from whatever kernel arcs already exist, then
// discards the deltas that seeding itself just generated interest in:
// Wire runs before Init, so any arc enforced between the two is both
// walked here and logged in the delta buffer, and double-applying it in
// the first Propagate would merge the same pair of chains twice.
func (p *NoSubtour) Init() error {
	n := p.g.N()
	type pair struct{ u, v int }
	var arcs []pair
	for u := 0; u < n; u++ {
		if !p.g.EnvelopeHasNode(u) {
			continue
		}
		p.g.KernelNeighbors(u, func(v int) {
			if v > u {
				arcs = append(arcs, pair{u, v})
			}
		})
	}
	for _, a := range arcs {
		if err := p.applyArcAdded(a.u, a.v); err != nil {
			return err
		}
	}
	p.g.DrainArcDeltas(p.propID)
	return nil
}

// Propagate merges the chains joined by each newly mandated arc since the
// last wake. Complexity: O(k * alpha(n)), k = number of arc deltas, not
// O(n) in the graph size.
func (p *NoSubtour) Propagate(*propagation.Events) error {
	for _, d := range p.g.DrainArcDeltas(p.propID) {
		if !d.Added {
			continue
		}
		if err := p.applyArcAdded(d.U, d.V); err != nil {
			return err
		}
	}
	return nil
}

// IsEntailed reports true once the kernel already forms a single
// Hamiltonian cycle spanning every node.
func (p *NoSubtour) IsEntailed() bool {
	n := p.g.N()
	for u := 0; u < n; u++ {
		if p.g.EnvelopeHasNode(u) && p.g.KernelDegree(u) != 2 {
			return false
		}
	}
	return true
}

// find returns u's component root, compressing the path traversed.
func (p *NoSubtour) find(u int) int {
	for p.parent[u].Get() != u {
		gp := p.parent[p.parent[u].Get()].Get()
		p.parent[u].Set(gp)
		u = p.parent[u].Get()
	}
	return u
}

// union merges the two components rooted at ru and rv by rank and returns
// the surviving root. Callers must already know ru != rv.
func (p *NoSubtour) union(ru, rv int) int {
	if p.rank[ru].Get() < p.rank[rv].Get() {
		p.parent[ru].Set(rv)
		return rv
	}
	p.parent[rv].Set(ru)
	if p.rank[ru].Get() == p.rank[rv].Get() {
		p.rank[ru].Set(p.rank[ru].Get() + 1)
	}
	return ru
}

// otherEnd returns the chain endpoint at root r other than u (u itself,
// for a singleton chain where both endpoints coincide).
func (p *NoSubtour) otherEnd(r, u int) int {
	if p.endA[r].Get() == u {
		return p.endB[r].Get()
	}
	return p.endA[r].Get()
}

// applyArcAdded folds the newly mandated arc (u,v) into the union-find: it
// either closes an existing chain into a ring (legal only once that
// chain already spans every node) or merges two distinct chains and
// forbids their new endpoints from directly closing the result early.
func (p *NoSubtour) applyArcAdded(u, v int) error {
	ru, rv := p.find(u), p.find(v)
	if ru == rv {
		if p.size[ru].Get() != p.g.N() {
			return p.fail("graph", trail.MsgInst, nil)
		}
		return nil
	}

	otherU, otherV := p.otherEnd(ru, u), p.otherEnd(rv, v)
	newSize := p.size[ru].Get() + p.size[rv].Get()
	newRoot := p.union(ru, rv)
	p.endA[newRoot].Set(otherU)
	p.endB[newRoot].Set(otherV)
	p.size[newRoot].Set(newSize)

	if otherU == otherV {
		return nil // n == 1, the whole graph is a single self-loop root
	}
	if newSize == p.g.N() {
		return p.g.EnforceArc(otherU, otherV, nil)
	}
	if !p.g.KernelHasArc(otherU, otherV) && p.g.EnvelopeHasArc(otherU, otherV) {
		return p.g.RemoveArc(otherU, otherV, nil)
	}
	return nil
}
