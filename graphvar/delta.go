package graphvar

import "github.com/katalvlaran/corecp/trail"

// arcDelta and nodeDelta record a single mandate/exclusion so an
// incremental graph propagator can react to exactly what changed since its
// last wake instead of rescanning the whole envelope — spec.md names the
// requirement (O(1)/O(log n) incremental filtering) without prescribing a
// mechanism; this delta log is that mechanism, generalised from the
// write-once-per-world discipline trail.RevInt uses for scalars.
type arcDelta struct {
	U, V  int
	Added bool // true: arc entered the kernel. false: arc left the envelope.
}

type nodeDelta struct {
	Node      int
	Activated bool // true: node entered the kernel. false: node left the envelope.
}

// arcDeltaBuf is an append-only log whose valid length is trailed: popping
// a world shrinks length back without needing to touch the entries slice
// itself, the same relationship RevSparseSet has between size and values.
type arcDeltaBuf struct {
	entries []arcDelta
	length  *trail.RevInt
}

type nodeDeltaBuf struct {
	entries []nodeDelta
	length  *trail.RevInt
}

// WatchArcDeltas enables arc delta tracking for propID. Call once, when the
// propagator is constructed; DrainArcDeltas before that point returns
// nothing.
func (g *Graph) WatchArcDeltas(env *trail.Env, propID int) {
	g.arcDelta[propID] = &arcDeltaBuf{length: env.NewRevInt(0)}
}

// WatchNodeDeltas enables node delta tracking for propID.
func (g *Graph) WatchNodeDeltas(env *trail.Env, propID int) {
	g.nodeDelta[propID] = &nodeDeltaBuf{length: env.NewRevInt(0)}
}

func (g *Graph) recordArcDelta(d arcDelta) {
	for _, buf := range g.arcDelta {
		buf.entries = buf.entries[:buf.length.Get()]
		buf.entries = append(buf.entries, d)
		buf.length.Set(int64(len(buf.entries)))
	}
}

func (g *Graph) recordNodeDelta(d nodeDelta) {
	for _, buf := range g.nodeDelta {
		buf.entries = buf.entries[:buf.length.Get()]
		buf.entries = append(buf.entries, d)
		buf.length.Set(int64(len(buf.entries)))
	}
}

// ArcDeltaEntry is the public view of an arc change: the arc and whether it
// was mandated (true) or excluded (false).
type ArcDeltaEntry struct {
	U, V  int
	Added bool
}

// NodeDeltaEntry is the public view of a node change.
type NodeDeltaEntry struct {
	Node      int
	Activated bool
}

// DrainArcDeltas returns every arc change recorded for propID since its
// last drain, then resets the buffer. Complexity: O(k) in the number of
// changes, never O(n) in the graph size.
func (g *Graph) DrainArcDeltas(propID int) []ArcDeltaEntry {
	buf, ok := g.arcDelta[propID]
	if !ok {
		return nil
	}
	n := int(buf.length.Get())
	out := make([]ArcDeltaEntry, n)
	for i := 0; i < n; i++ {
		out[i] = ArcDeltaEntry{U: buf.entries[i].U, V: buf.entries[i].V, Added: buf.entries[i].Added}
	}
	buf.entries = buf.entries[:0]
	buf.length.Set(0)
	return out
}

// DrainNodeDeltas returns every node change recorded for propID since its
// last drain, then resets the buffer.
func (g *Graph) DrainNodeDeltas(propID int) []NodeDeltaEntry {
	buf, ok := g.nodeDelta[propID]
	if !ok {
		return nil
	}
	n := int(buf.length.Get())
	out := make([]NodeDeltaEntry, n)
	for i := 0; i < n; i++ {
		out[i] = NodeDeltaEntry{Node: buf.entries[i].Node, Activated: buf.entries[i].Activated}
	}
	buf.entries = buf.entries[:0]
	buf.length.Set(0)
	return out
}
