package state

import "github.com/tuicore/navstate/pkg/navstate/graph"

// TransitionState gates the middleware's admission policy (spec §4.4's
// state diagram: IDLE ──navigate──▶ ANIMATING ──elapsed/timeout──▶ IDLE).
type TransitionState int

const (
	TransitionIdle TransitionState = iota
	TransitionAnimating
)

func (t TransitionState) String() string {
	if t == TransitionAnimating {
		return "ANIMATING"
	}
	return "IDLE"
}

// State is the navigation engine's entire observable snapshot: an ordered
// back-stack, the transition-state flag, any pending navigation, the
// modal-context side table, active guided-flow state, and the
// guided-flow modification map. It is produced by Reduce and otherwise
// immutable — every field here is either a value type or defensively
// copied before being attached to a new State (spec §3 "Ownership").
type State struct {
	BackStack            []*Entry
	TransitionState      TransitionState
	PendingNavigation    *PendingNavigation
	ModalContexts        []*ModalContext
	ActiveGuidedFlow     *GuidedFlowState
	// GuidedFlowModifications maps flow id to an opaque modification value
	// owned and interpreted by package flow — State only stores and clears
	// it, never inspects its shape, which keeps this package free of a
	// dependency on flow's batch/callback types.
	GuidedFlowModifications map[string]interface{}
	Tables                   *graph.Table
}

// Current returns the back-stack's top entry. A State invariant guarantees
// the back-stack is never empty after initialization (spec §8 invariant 1),
// so Current never returns nil for a State produced by Reduce.
func (s *State) Current() *Entry {
	if len(s.BackStack) == 0 {
		return nil
	}
	return s.BackStack[len(s.BackStack)-1]
}

// NavigationDepth is the back-stack's length, exposed per spec §6's
// observable-state-fields list.
func (s *State) NavigationDepth() int {
	return len(s.BackStack)
}

// CurrentFullPath resolves the current entry's destination to its
// canonical path via the shared routing table (spec §6).
func (s *State) CurrentFullPath() string {
	cur := s.Current()
	if cur == nil || s.Tables == nil {
		return ""
	}
	return s.Tables.DestinationToFullPath[cur.Destination]
}

// CurrentPathSegments splits CurrentFullPath on "/".
func (s *State) CurrentPathSegments() []string {
	full := s.CurrentFullPath()
	if full == "" {
		return nil
	}
	segs := []string{}
	start := 0
	for i := 0; i < len(full); i++ {
		if full[i] == '/' {
			if i > start {
				segs = append(segs, full[start:i])
			}
			start = i + 1
		}
	}
	if start < len(full) {
		segs = append(segs, full[start:])
	}
	return segs
}

// Clone returns a defensive, independent copy of s, sharing only the
// immutable Tables pointer.
func (s *State) Clone() *State {
	backStack := make([]*Entry, len(s.BackStack))
	copy(backStack, s.BackStack)

	mods := make(map[string]interface{}, len(s.GuidedFlowModifications))
	for k, v := range s.GuidedFlowModifications {
		mods[k] = v
	}

	return &State{
		BackStack:                backStack,
		TransitionState:          s.TransitionState,
		PendingNavigation:        s.PendingNavigation.Clone(),
		ModalContexts:            CloneModalContexts(s.ModalContexts),
		ActiveGuidedFlow:         s.ActiveGuidedFlow.Clone(),
		GuidedFlowModifications:  mods,
		Tables:                   s.Tables,
	}
}

// New builds the initial State seeded with the root graph's (possibly
// alias-resolved) entry destination, per spec §3's Lifecycle note.
func New(tables *graph.Table) (*State, error) {
	graphID := tables.Root.ID
	var dest *graph.Destination

	if alias, ok := tables.GraphAliasResolution[tables.Root.ID]; ok {
		graphID = alias.TerminalGraphID
		dest = alias.TerminalDestination
	} else {
		dest = tables.Root.Destinations[tables.Root.Entry.DestinationName]
	}

	entry := &Entry{
		ID:               newEntryID(),
		Destination:      dest,
		Params:           Params{},
		EffectiveGraphID: graphID,
		StackPosition:    0,
	}

	return &State{
		BackStack:                []*Entry{entry},
		TransitionState:          TransitionIdle,
		GuidedFlowModifications:  make(map[string]interface{}),
		Tables:                   tables,
	}, nil
}
