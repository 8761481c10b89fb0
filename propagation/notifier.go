package propagation

import "github.com/katalvlaran/corecp/event"

// Notifier is the narrow interface variables depend on to wake the
// propagators watching them. *Engine implements it; tests can supply a
// fake to assert exactly which propagators a mutation wakes without
// constructing a full engine.
type Notifier interface {
	Enqueue(propID int, varIndex int, mask event.Kind)
}
