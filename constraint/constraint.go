// Package constraint groups one or more propagators under a single
// user-facing handle with a posted/unposted lifecycle, mirroring how a
// model-level factory hands back an opaque constraint object that Post
// wires into the engine exactly once.
package constraint

import (
	"errors"

	"github.com/katalvlaran/corecp/propagation"
)

// ErrAlreadyPosted is returned by Post when called more than once on the
// same constraint.
var ErrAlreadyPosted = errors.New("corecp: constraint already posted")

// ErrAlreadyPostedExtend is returned by Extend when called on an
// already-posted constraint: appending propagators after registration
// would leave them unregistered with the engine.
var ErrAlreadyPostedExtend = errors.New("corecp: cannot extend a posted constraint")

// Constraint bundles the propagators that jointly enforce one semantic
// constraint (e.g. "this graph variable is a Hamiltonian cycle" might be
// degree bounds + no-subtour together).
type Constraint struct {
	name        string
	propagators []propagation.Propagator
	posted      bool
}

// New creates an unposted constraint backed by props.
func New(name string, props ...propagation.Propagator) *Constraint {
	return &Constraint{name: name, propagators: props}
}

// Name returns the constraint's display name.
func (c *Constraint) Name() string { return c.name }

// IsPosted reports whether Post has already succeeded on this constraint.
func (c *Constraint) IsPosted() bool { return c.posted }

// Post registers every propagator in the constraint with engine. Posting
// the same constraint twice returns ErrAlreadyPosted rather than
// double-registering its propagators.
func (c *Constraint) Post(engine *propagation.Engine) error {
	if c.posted {
		return ErrAlreadyPosted
	}
	for _, p := range c.propagators {
		id := engine.Register(p)
		if w, ok := p.(propagation.Wirer); ok {
			w.Wire(id)
		}
	}
	c.posted = true
	return nil
}

// Extend appends more propagators to an unposted constraint — the same
// layering a model-level factory uses to build a composite constraint
// (e.g. a Hamiltonian-cycle constraint plus a cost-evaluation propagator
// becomes a TSP constraint) without re-registering what came before.
func (c *Constraint) Extend(props ...propagation.Propagator) error {
	if c.posted {
		return ErrAlreadyPostedExtend
	}
	c.propagators = append(c.propagators, props...)
	return nil
}

// Propagators returns the constraint's underlying propagators, in
// registration order.
func (c *Constraint) Propagators() []propagation.Propagator { return c.propagators }
