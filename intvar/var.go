// Package intvar implements scalar finite-domain variables: bounded
// (interval) domains and enumerated (bitset-backed) domains, each trailed
// through package trail and each capable of waking subscribed propagators
// through a propagation.Notifier.
//
// The bound-tightening discipline — update the bound, decide whether the
// resulting event is INC_LOW/DEC_UPP or upgrades to INSTANTIATE once the
// domain collapses to a single value — follows the bounds-consistency
// pattern of a sum-of-two-variables interval view: always check for
// instantiation after narrowing either side, and let the stronger event
// subsume the weaker one rather than emitting both.
package intvar

import (
	"fmt"

	"github.com/katalvlaran/corecp/event"
	"github.com/katalvlaran/corecp/propagation"
	"github.com/katalvlaran/corecp/trail"
)

type subscription struct {
	propID int
	mask   event.Kind
}

// Var is a finite-domain integer variable. Enumerated domains additionally
// maintain a bitset of currently-possible values over [min,max]; bounded
// domains only track the interval endpoints.
type Var struct {
	id       int
	name     string
	notifier propagation.Notifier

	lb, ub *trail.RevInt

	enumerated bool
	base       int64 // enumerated domains only: value represented by bit 0
	bits       *trail.RevBitSet
	size       *trail.RevInt

	subs []subscription
}

// NewBounded creates an interval-domain variable over [lo,hi].
func NewBounded(env *trail.Env, notifier propagation.Notifier, id int, name string, lo, hi int64) *Var {
	return &Var{
		id:       id,
		name:     name,
		notifier: notifier,
		lb:       env.NewRevInt(lo),
		ub:       env.NewRevInt(hi),
	}
}

// NewBool creates a 0/1 bounded variable.
func NewBool(env *trail.Env, notifier propagation.Notifier, id int, name string) *Var {
	return NewBounded(env, notifier, id, name, 0, 1)
}

// NewEnumerated creates a variable whose domain is exactly the given sorted,
// deduplicated set of values.
func NewEnumerated(env *trail.Env, notifier propagation.Notifier, id int, name string, values []int64) *Var {
	if len(values) == 0 {
		trail.Violate("NewEnumerated requires a non-empty value set")
	}
	lo, hi := values[0], values[0]
	for _, v := range values {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	span := uint(hi-lo) + 1
	bits := env.NewRevBitSet(span)
	for _, v := range values {
		bits.Set(uint(v - lo))
	}
	return &Var{
		id:         id,
		name:       name,
		notifier:   notifier,
		lb:         env.NewRevInt(lo),
		ub:         env.NewRevInt(hi),
		enumerated: true,
		base:       lo,
		bits:       bits,
		size:       env.NewRevInt(int64(len(values))),
	}
}

// ID returns this variable's index within its model, used as the key for
// propagator subscriptions and event delivery.
func (v *Var) ID() int { return v.id }

// Name returns the variable's display name.
func (v *Var) Name() string { return v.name }

// Subscribe registers propID to be woken whenever an event in mask fires on
// this variable.
func (v *Var) Subscribe(propID int, mask event.Kind) {
	v.subs = append(v.subs, subscription{propID: propID, mask: mask})
}

// Min returns the current lower bound.
func (v *Var) Min() int64 { return v.lb.Get() }

// Max returns the current upper bound.
func (v *Var) Max() int64 { return v.ub.Get() }

// IsInstantiated reports whether the domain has collapsed to one value.
func (v *Var) IsInstantiated() bool { return v.lb.Get() == v.ub.Get() }

// Size reports the number of values still possible. For a bounded domain
// this is the interval width; for an enumerated domain it is the exact
// remaining count.
func (v *Var) Size() int64 {
	if v.enumerated {
		var count int64
		for val := v.lb.Get(); val <= v.ub.Get(); val++ {
			if v.bits.Test(uint(val - v.base)) {
				count++
			}
		}
		return count
	}
	return v.ub.Get() - v.lb.Get() + 1
}

// Contains reports whether val is still a possible value.
func (v *Var) Contains(val int64) bool {
	if val < v.lb.Get() || val > v.ub.Get() {
		return false
	}
	if !v.enumerated {
		return true
	}
	return v.bits.Test(uint(val - v.base))
}

func (v *Var) notify(mask event.Kind) {
	for _, s := range v.subs {
		if s.mask.Any(mask) {
			v.notifier.Enqueue(s.propID, v.id, mask)
		}
	}
}

// UpdateLB tightens the lower bound to at least val, raising a
// *trail.Contradiction if the domain becomes empty. Complexity: O(1) for a
// bounded domain, O(span) worst case for an enumerated one (bit scan to the
// next present value).
func (v *Var) UpdateLB(val int64, cause trail.Cause) error {
	if val <= v.lb.Get() {
		return nil
	}
	if val > v.ub.Get() {
		return trail.Fail(v.name, trail.MsgLow, cause)
	}
	if v.enumerated {
		next, err := v.nextPresentAtOrAfter(val)
		if err != nil {
			return err
		}
		val = next
	}
	v.lb.Set(val)
	if v.lb.Get() == v.ub.Get() {
		v.notify(event.Instantiate)
	} else {
		v.notify(event.IncLow)
	}
	return nil
}

// UpdateUB tightens the upper bound to at most val. Mirrors UpdateLB.
func (v *Var) UpdateUB(val int64, cause trail.Cause) error {
	if val >= v.ub.Get() {
		return nil
	}
	if val < v.lb.Get() {
		return trail.Fail(v.name, trail.MsgUpp, cause)
	}
	if v.enumerated {
		prev, err := v.prevPresentAtOrBefore(val)
		if err != nil {
			return err
		}
		val = prev
	}
	v.ub.Set(val)
	if v.lb.Get() == v.ub.Get() {
		v.notify(event.Instantiate)
	} else {
		v.notify(event.DecUpp)
	}
	return nil
}

// RemoveValue excludes val from the domain. For a bounded domain this only
// has an effect when val is one of the current bounds (bounds-consistency
// only, per spec.md §4.1's bounded-domain semantics); for an enumerated
// domain it removes val outright.
func (v *Var) RemoveValue(val int64, cause trail.Cause) error {
	if val < v.lb.Get() || val > v.ub.Get() || !v.Contains(val) {
		return nil
	}
	if val == v.lb.Get() && val == v.ub.Get() {
		return trail.Fail(v.name, trail.MsgEmpty, cause)
	}
	if !v.enumerated {
		if val == v.lb.Get() {
			return v.UpdateLB(val+1, cause)
		}
		if val == v.ub.Get() {
			return v.UpdateUB(val-1, cause)
		}
		return nil
	}
	v.bits.Clear(uint(val - v.base))
	v.size.Add(-1)
	switch {
	case val == v.lb.Get():
		next, err := v.nextPresentAtOrAfter(val + 1)
		if err != nil {
			return err
		}
		v.lb.Set(next)
	case val == v.ub.Get():
		prev, err := v.prevPresentAtOrBefore(val - 1)
		if err != nil {
			return err
		}
		v.ub.Set(prev)
	}
	if v.lb.Get() == v.ub.Get() {
		v.notify(event.Instantiate)
	} else {
		v.notify(event.Remove)
	}
	return nil
}

// RemoveInterval excludes every value in [lo,hi] from the domain.
func (v *Var) RemoveInterval(lo, hi int64, cause trail.Cause) error {
	if hi < lo {
		return nil
	}
	if lo <= v.lb.Get() && v.ub.Get() <= hi {
		return trail.Fail(v.name, trail.MsgEmpty, cause)
	}
	if lo <= v.lb.Get() && hi >= v.lb.Get() {
		if err := v.UpdateLB(hi+1, cause); err != nil {
			return err
		}
	}
	if hi >= v.ub.Get() && lo <= v.ub.Get() {
		if err := v.UpdateUB(lo-1, cause); err != nil {
			return err
		}
	}
	if !v.enumerated {
		return nil
	}
	for val := max64(lo, v.lb.Get()); val <= min64(hi, v.ub.Get()); val++ {
		if err := v.RemoveValue(val, cause); err != nil {
			return err
		}
	}
	return nil
}

// InstantiateTo pins the domain to exactly val.
func (v *Var) InstantiateTo(val int64, cause trail.Cause) error {
	if v.IsInstantiated() {
		if v.lb.Get() != val {
			return trail.Fail(v.name, trail.MsgInst, cause)
		}
		return nil
	}
	if !v.Contains(val) {
		return trail.Fail(v.name, trail.MsgInst, cause)
	}
	v.lb.Set(val)
	v.ub.Set(val)
	v.notify(event.Instantiate)
	return nil
}

func (v *Var) nextPresentAtOrAfter(val int64) (int64, error) {
	if !v.enumerated {
		return val, nil
	}
	if val < v.base {
		val = v.base
	}
	idx, ok := v.bits.NextSet(uint(val - v.base))
	if !ok {
		return 0, trail.Fail(v.name, trail.MsgEmpty, nil)
	}
	return v.base + int64(idx), nil
}

func (v *Var) prevPresentAtOrBefore(val int64) (int64, error) {
	if !v.enumerated {
		return val, nil
	}
	for cursor := val; cursor >= v.base; cursor-- {
		if v.bits.Test(uint(cursor - v.base)) {
			return cursor, nil
		}
	}
	return 0, trail.Fail(v.name, trail.MsgEmpty, nil)
}

// IsEnumerated reports whether this variable tracks individual domain
// values (NewEnumerated) rather than only an interval's endpoints
// (NewBounded/NewBool); NextValue/PreviousValue only ever skip a held-out
// value when this is true.
func (v *Var) IsEnumerated() bool { return v.enumerated }

// NextValue returns the smallest domain value >= val and true, or (0,
// false) if no domain value is >= val. For a bounded domain every
// integer in [Min,Max] is present; for an enumerated domain this skips
// values already removed.
func (v *Var) NextValue(val int64) (int64, bool) {
	if val > v.ub.Get() {
		return 0, false
	}
	if val < v.lb.Get() {
		val = v.lb.Get()
	}
	if !v.enumerated {
		return val, true
	}
	idx, ok := v.bits.NextSet(uint(val - v.base))
	if !ok {
		return 0, false
	}
	return v.base + int64(idx), true
}

// PreviousValue returns the largest domain value <= val and true, or (0,
// false) if no domain value is <= val. Mirrors NextValue.
func (v *Var) PreviousValue(val int64) (int64, bool) {
	if val < v.lb.Get() {
		return 0, false
	}
	if val > v.ub.Get() {
		val = v.ub.Get()
	}
	if !v.enumerated {
		return val, true
	}
	for cursor := val; cursor >= v.lb.Get(); cursor-- {
		if v.bits.Test(uint(cursor - v.base)) {
			return cursor, true
		}
	}
	return 0, false
}

func max64(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}

func min64(a, b int64) int64 {
	if a < b {
		return a
	}
	return b
}

// String renders the variable's current domain for diagnostics.
func (v *Var) String() string {
	if v.IsInstantiated() {
		return fmt.Sprintf("%s=%d", v.name, v.lb.Get())
	}
	return fmt.Sprintf("%s∈[%d,%d]", v.name, v.lb.Get(), v.ub.Get())
}
