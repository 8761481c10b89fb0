package trail

// RevSparseSet is a reversible sparse set over the dense range [0,n).
// It supports O(1) Contains/Remove and O(1) amortised undo, following
// spec.md §4.1: "A sparse-set adds an element by swap-to-tail and
// decrement-of-size; undo is increment-of-size (swap is self-inverse)."
//
// Only the reversible size counter is trailed. Restoring size without
// undoing the swap is correct because the region beyond size is untouched
// by any other mutation while hidden: revealing it again exposes exactly
// the one value that was removed, merely at a (possibly) different slot.
// RevSparseSet never promises a stable iteration order, only O(1)
// membership and O(Δ) restore.
type RevSparseSet struct {
	env    *Env
	values []int // values[0:size) are the present elements
	pos    []int // pos[v] = index of v within values
	size   *RevInt
}

// NewRevSparseSet creates a sparse set initially containing every element
// of [0,n), i.e. the full envelope before any filtering.
func (e *Env) NewRevSparseSet(n int) *RevSparseSet {
	values := make([]int, n)
	pos := make([]int, n)
	for i := 0; i < n; i++ {
		values[i] = i
		pos[i] = i
	}
	return &RevSparseSet{env: e, values: values, pos: pos, size: e.NewRevInt(int64(n))}
}

// NewEmptyRevSparseSet creates a sparse set over the universe [0,n) that
// starts out empty (used for kernels, which grow monotonically from
// nothing rather than shrink from everything).
func (e *Env) NewEmptyRevSparseSet(n int) *RevSparseSet {
	s := e.NewRevSparseSet(n)
	s.size.Set(0)
	for i := 0; i < n; i++ {
		s.pos[i] = i
	}
	return s
}

// Size returns the number of elements currently present. Complexity: O(1).
func (s *RevSparseSet) Size() int { return int(s.size.Get()) }

// Contains reports whether v is currently present. Complexity: O(1).
func (s *RevSparseSet) Contains(v int) bool {
	return v >= 0 && v < len(s.pos) && s.pos[v] < s.Size()
}

// Remove removes v if present, returning whether it was present.
// Complexity: O(1) amortised.
func (s *RevSparseSet) Remove(v int) bool {
	if !s.Contains(v) {
		return false
	}
	last := s.Size() - 1
	pv := s.pos[v]
	other := s.values[last]
	s.values[pv], s.values[last] = s.values[last], s.values[pv]
	s.pos[v], s.pos[other] = last, pv
	s.size.Set(int64(last))
	return true
}

// Add adds v if not already present (used to grow a kernel set towards
// the envelope). Complexity: O(1) amortised.
//
// Add only ever reinstates an element previously removed from this exact
// universe (kernels/envelopes never introduce values outside [0,n)), so
// the same swap-is-self-inverse argument as Remove applies: Add moves the
// element at the first "hidden" slot into v's historical position and
// grows size by one.
func (s *RevSparseSet) Add(v int) bool {
	if s.Contains(v) {
		return false
	}
	n := s.Size()
	pv := s.pos[v]
	other := s.values[n]
	s.values[pv], s.values[n] = s.values[n], s.values[pv]
	s.pos[v], s.pos[other] = n, pv
	s.size.Set(int64(n + 1))
	return true
}

// Each calls f for every element currently present, in unspecified order.
func (s *RevSparseSet) Each(f func(v int)) {
	n := s.Size()
	for i := 0; i < n; i++ {
		f(s.values[i])
	}
}

// Slice returns a freshly allocated snapshot of the present elements.
// Prefer Each in hot paths; Slice is for tests and diagnostics.
func (s *RevSparseSet) Slice() []int {
	out := make([]int, s.Size())
	copy(out, s.values[:s.Size()])
	return out
}
