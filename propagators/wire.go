package propagators

import "github.com/katalvlaran/corecp/event"

// graphMutation is the event mask most graph-variable propagators in this
// package subscribe to: any arc or node change forces a rescan, since
// their filtering rules depend on global degree/component shape rather
// than a single changed arc. NoSubtour is the exception — it subscribes
// only to event.AddArc, since it consumes the arc delta log directly
// instead of rescanning.
const graphMutation = event.AddArc | event.RemoveArc | event.ActivateNode | event.RemoveNode
