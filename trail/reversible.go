package trail

// RevInt is a reversible 64-bit integer cell. It logs its previous value
// exactly once per world: the first Set within a new world records
// (oldValue, lastWriteWorld); subsequent Sets within the same world are
// free, matching the write discipline of spec.md §4.1.
type RevInt struct {
	env        *Env
	val        int64
	lastWriteW World
}

// NewRevInt creates a reversible integer cell initialized to v at the
// environment's current world.
func (e *Env) NewRevInt(v int64) *RevInt {
	return &RevInt{env: e, val: v, lastWriteW: e.world}
}

// Get returns the current value. Complexity: O(1).
func (r *RevInt) Get() int64 { return r.val }

// Set writes a new value, trailing the previous one iff this is the first
// write to the cell within the current world. Complexity: O(1) amortised.
func (r *RevInt) Set(v int64) {
	if v == r.val {
		return
	}
	if r.lastWriteW < r.env.world {
		old, oldW := r.val, r.lastWriteW
		r.env.record(func() {
			r.val = old
			r.lastWriteW = oldW
		})
		r.lastWriteW = r.env.world
	}
	r.val = v
}

// Add is shorthand for Set(Get()+delta).
func (r *RevInt) Add(delta int64) { r.Set(r.val + delta) }

// RevBool is a reversible boolean cell, implemented as a thin projection
// over RevInt to avoid duplicating the write-once-per-world logic.
type RevBool struct{ i *RevInt }

// NewRevBool creates a reversible boolean cell initialized to v.
func (e *Env) NewRevBool(v bool) *RevBool {
	return &RevBool{i: e.NewRevInt(b2i(v))}
}

// Get returns the current value.
func (r *RevBool) Get() bool { return r.i.Get() != 0 }

// Set writes a new value.
func (r *RevBool) Set(v bool) { r.i.Set(b2i(v)) }

func b2i(v bool) int64 {
	if v {
		return 1
	}
	return 0
}

// RevRef is a reversible reference cell storing a small integer (an index,
// a node id, a propagator id — never an object pointer, per spec.md §5's
// cache-friendliness requirement that hot structures store ids, not
// pointers).
type RevRef struct{ i *RevInt }

// NewRevRef creates a reversible reference cell initialized to v.
func (e *Env) NewRevRef(v int) *RevRef { return &RevRef{i: e.NewRevInt(int64(v))} }

// Get returns the current value.
func (r *RevRef) Get() int { return int(r.i.Get()) }

// Set writes a new value.
func (r *RevRef) Set(v int) { r.i.Set(int64(v)) }
