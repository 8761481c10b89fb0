package trail

import "github.com/bits-and-blooms/bitset"

// RevBitSet is a reversible bit vector backed by
// github.com/bits-and-blooms/bitset. Every flip logs only the single bit
// that changed — never a clone of the vector — matching spec.md §4.1's
// "specialised reversible containers ... must store only deltas."
//
// Used for enumerated integer domains (intvar): a membership set over a
// small dense integer range where a third-party bitset materially beats a
// Go map. Graph variables keep their node and arc sets in RevSparseSet.
type RevBitSet struct {
	env  *Env
	bits *bitset.BitSet
}

// NewRevBitSet creates a reversible bit vector of length n, all bits clear.
func (e *Env) NewRevBitSet(n uint) *RevBitSet {
	return &RevBitSet{env: e, bits: bitset.New(n)}
}

// Test reports whether bit i is set. Complexity: O(1).
func (b *RevBitSet) Test(i uint) bool { return b.bits.Test(i) }

// Count returns the number of set bits. Complexity: O(words).
func (b *RevBitSet) Count() uint { return b.bits.Count() }

// Len returns the bit vector's length.
func (b *RevBitSet) Len() uint { return b.bits.Len() }

// SetTo sets bit i to v, trailing the flip if it actually changes the bit.
// Complexity: O(1).
func (b *RevBitSet) SetTo(i uint, v bool) {
	if b.bits.Test(i) == v {
		return
	}
	bits := b.bits
	prev := !v
	b.env.record(func() { bits.SetTo(i, prev) })
	b.bits.SetTo(i, v)
}

// Set sets bit i. Complexity: O(1).
func (b *RevBitSet) Set(i uint) { b.SetTo(i, true) }

// Clear clears bit i. Complexity: O(1).
func (b *RevBitSet) Clear(i uint) { b.SetTo(i, false) }

// NextSet returns the index of the first set bit at or after i, and a
// presence flag — the cursor-style iteration spec.md §9 requires instead
// of iterators/generators (first_element/next_element with a sentinel).
func (b *RevBitSet) NextSet(i uint) (uint, bool) { return b.bits.NextSet(i) }
