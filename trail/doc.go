// Package trail implements the reversible environment underlying every
// variable and propagator data structure in corecp.
//
// A trail is a LIFO log of old-value records keyed by "world" — a
// monotonically increasing nesting level that corresponds to a search-tree
// depth. PushWorld opens a new nesting level; PopWorld restores every
// reversible cell written since the matching PushWorld, in O(Δ) time where
// Δ is the number of cells actually touched (not the size of the state).
//
// Reversible cells (RevInt, RevBool, RevBitSet, RevSparseSet) only ever
// log a delta — the previous scalar, the previous bit, or an increment of
// a sparse-set size counter — never a clone of a whole structure. A scalar
// cell (RevInt, RevBool, and the size counter inside RevSparseSet) written
// more than once within the same world logs its pre-world value exactly
// once: writes are O(1) amortised in the common case of an unchanged
// world. RevBitSet logs every flip it makes.
package trail
