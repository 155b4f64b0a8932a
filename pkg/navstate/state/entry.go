package state

import "github.com/tuicore/navstate/pkg/navstate/graph"

// GuidedFlowRef is the guided-flow context a NavigationEntry carries when
// it was pushed as a step of an active flow (spec §3's NavigationEntry row).
type GuidedFlowRef struct {
	FlowID     string
	StepIndex  int
	TotalSteps int
}

// Entry is an immutable NavigationEntry: a Destination reference, its
// merged params, the graph it was reached through, its position in the
// back-stack, and an optional guided-flow context.
//
// EffectiveGraphID is deliberately not always DestinationToGraph[Destination]:
// an entry reached via a graph-alias chain records the graph it was reached
// THROUGH, not the graph that declares the destination (spec §3's
// NavigationEntry invariant).
type Entry struct {
	ID               string
	Destination      *graph.Destination
	Params           Params
	EffectiveGraphID string
	StackPosition    int
	GuidedFlow       *GuidedFlowRef
}

// NewEntry mints a fresh NavigationEntry for dest with the given merged
// params, reached through effectiveGraphID. StackPosition is left at zero;
// callers renumber entries after assembling the final back-stack.
func NewEntry(dest *graph.Destination, params Params, effectiveGraphID string) *Entry {
	return &Entry{
		ID:               newEntryID(),
		Destination:      dest,
		Params:           params,
		EffectiveGraphID: effectiveGraphID,
	}
}

// IsModal reports whether this entry renders on the GLOBAL_OVERLAY layer.
func (e *Entry) IsModal() bool {
	return e.Destination != nil && e.Destination.Layer == graph.LayerGlobalOverlay
}

// WithStackPosition returns a copy of e at the given stack position. Entry
// values are otherwise treated as immutable once constructed, per state
// ownership rules (spec §3 "Ownership").
func (e *Entry) WithStackPosition(pos int) *Entry {
	clone := *e
	clone.StackPosition = pos
	return &clone
}
