package propagation

import "github.com/katalvlaran/corecp/event"

// Events is the coalesced set of notifications a propagator receives on one
// wake-up. The engine merges every notification queued for a propagator
// since its last run into a single Events value instead of calling
// Propagate once per raw event, trading spec.md §3's literal
// propagate(var_index, event_mask) signature for a batched call — the
// propagator still sees every touched variable and the union of masks that
// hit it, but pays one call per wake instead of one per event.
//
// Order preserves first-touch order, which is what makes engine scheduling
// deterministic: two runs over the same model visit variables in the same
// sequence.
type Events struct {
	Order []int
	mask  map[int]event.Kind
}

// newEvents allocates an empty Events value.
func newEvents() *Events {
	return &Events{mask: make(map[int]event.Kind)}
}

// add merges mask into the event recorded for varIndex, appending it to
// Order the first time varIndex is touched.
func (ev *Events) add(varIndex int, mask event.Kind) {
	if _, seen := ev.mask[varIndex]; !seen {
		ev.Order = append(ev.Order, varIndex)
	}
	ev.mask[varIndex] |= mask
}

// For returns the union of event kinds recorded for varIndex.
func (ev *Events) For(varIndex int) event.Kind { return ev.mask[varIndex] }

// Len returns the number of distinct variables touched.
func (ev *Events) Len() int { return len(ev.Order) }
