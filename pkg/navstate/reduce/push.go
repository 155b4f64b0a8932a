package reduce

import (
	"github.com/tuicore/navstate/pkg/navstate/graph"
	"github.com/tuicore/navstate/pkg/navstate/intent"
	"github.com/tuicore/navstate/pkg/navstate/resolve"
	"github.com/tuicore/navstate/pkg/navstate/state"
)

func applyNavigateTo(s *state.State, r *resolve.Resolver, tables *graph.Table, it intent.Intent) error {
	target, err := r.Resolve(it.Route, "")
	if err != nil {
		return err
	}

	var inherited state.Params
	if it.ForwardParams && s.Current() != nil {
		inherited = s.Current().Params
	}
	merged := state.MergeAll(inherited, paramsFromTarget(target.Params), it.Params)

	pushTarget(s, target, merged, it.ReplaceCurrent)
	return nil
}

// applyNavigateDeepLink resolves path as given and pushes it, synthesizing
// the declaring graph's entry as an intermediate entry first if the resolved
// destination sits below that graph's own declared entry (spec §4.4).
// No deep-link alias rewriting happens here or anywhere else in navstate:
// path must already be a route the resolver knows.
func applyNavigateDeepLink(s *state.State, r *resolve.Resolver, tables *graph.Table, it intent.Intent) (*graph.Target, error) {
	target, err := r.Resolve(it.Route, "")
	if err != nil {
		return nil, err
	}

	merged := state.MergeAll(state.Params{}, paramsFromTarget(target.Params), it.Params)

	if g, ok := tables.Graphs[target.EffectiveGraphID]; ok && !g.Entry.IsAlias() {
		entryDest := g.Destinations[g.Entry.DestinationName]
		if entryDest != nil && entryDest != target.Destination {
			pushTarget(s, &graph.Target{Destination: entryDest, EffectiveGraphID: g.ID}, state.Params{}, false)
		}
	}

	pushTarget(s, target, merged, false)
	return nil, nil
}

// pushTarget is the single place that appends a new NavigationEntry and
// maintains the modal-context side table, per spec §4.4's navigateTo rules:
// a modal stacks with its underlying pointer inherited from whatever modal
// (if any) is currently on top; a screen pushed over a modal closes that
// modal (popping its entry, retaining its context for later restoration).
func pushTarget(s *state.State, target *graph.Target, params state.Params, replaceCurrent bool) {
	if replaceCurrent && len(s.BackStack) > 0 {
		s.BackStack = s.BackStack[:len(s.BackStack)-1]
	}

	priorTop := s.Current()

	if target.Destination.Layer != graph.LayerGlobalOverlay && priorTop != nil && priorTop.IsModal() {
		closeModalAndRetainContext(s, priorTop)
		s.BackStack = s.BackStack[:len(s.BackStack)-1]
		priorTop = s.Current()
	}

	entry := state.NewEntry(target.Destination, params, target.EffectiveGraphID)
	s.BackStack = append(s.BackStack, entry)

	if target.Destination.Layer == graph.LayerGlobalOverlay {
		underlyingID := ""
		if priorTop != nil {
			underlyingID = priorTop.ID
			if priorTop.IsModal() {
				if ctx := findModalContext(s, priorTop.ID); ctx != nil {
					underlyingID = ctx.UnderlyingEntryID
				}
			}
		}
		mc := &state.ModalContext{
			ModalEntryID:       entry.ID,
			UnderlyingEntryID:  underlyingID,
			Elevation:          target.Destination.Elevation,
			PendingRestoration: true,
		}
		// Insert keeping the table sorted by ascending Elevation; equal
		// elevations stay in push order.
		pos := len(s.ModalContexts)
		for pos > 0 && s.ModalContexts[pos-1].Elevation > mc.Elevation {
			pos--
		}
		s.ModalContexts = append(s.ModalContexts, nil)
		copy(s.ModalContexts[pos+1:], s.ModalContexts[pos:])
		s.ModalContexts[pos] = mc
	}
}

// closeModalAndRetainContext records the full Entry being popped on its
// ModalContext, so navigateBack can later restore the identical entry.
func closeModalAndRetainContext(s *state.State, modalEntry *state.Entry) {
	if ctx := findModalContext(s, modalEntry.ID); ctx != nil {
		ctx.ModalEntry = modalEntry
	}
}

func findModalContext(s *state.State, modalEntryID string) *state.ModalContext {
	for _, ctx := range s.ModalContexts {
		if ctx.ModalEntryID == modalEntryID {
			return ctx
		}
	}
	return nil
}

// applyNavigateBack pops the top entry, restoring a pending modal context
// if the new top has one, and reports whether the visible route changed.
func applyNavigateBack(s *state.State) (bool, error) {
	if len(s.BackStack) <= 1 {
		return false, nil
	}

	s.BackStack = s.BackStack[:len(s.BackStack)-1]

	if af := s.ActiveGuidedFlow; af != nil {
		if top := s.Current(); top != nil && top.GuidedFlow != nil && top.GuidedFlow.FlowID == af.FlowID {
			af.CurrentStep--
		}
	}

	top := s.Current()
	if top == nil {
		return true, nil
	}
	if ctx := findModalContextByUnderlying(s, top.ID); ctx != nil && ctx.PendingRestoration && ctx.ModalEntry != nil {
		s.BackStack = append(s.BackStack, ctx.ModalEntry)
	}

	return true, nil
}

func findModalContextByUnderlying(s *state.State, underlyingEntryID string) *state.ModalContext {
	for i := len(s.ModalContexts) - 1; i >= 0; i-- {
		if s.ModalContexts[i].UnderlyingEntryID == underlyingEntryID {
			return s.ModalContexts[i]
		}
	}
	return nil
}

// applyPopUpTo locates the newest entry whose route matches pattern,
// removes everything above it (and the match itself if inclusive), per
// spec §4.4. Plain names match any graph; "graph/route" matches a specific
// graph+destination pair.
func applyPopUpTo(s *state.State, it intent.Intent) error {
	idx := -1
	for i := len(s.BackStack) - 1; i >= 0; i-- {
		if matchesPopUpToPattern(s.BackStack[i], it.Route) {
			idx = i
			break
		}
	}
	if idx == -1 {
		return graph.NewRouteNotFoundError(it.Route, nil)
	}

	if it.Inclusive {
		s.BackStack = s.BackStack[:idx]
	} else {
		s.BackStack = s.BackStack[:idx+1]
	}
	return nil
}

func matchesPopUpToPattern(e *state.Entry, pattern string) bool {
	if e.Destination == nil {
		return false
	}
	if graphID, name, ok := splitGraphRoute(pattern); ok {
		return e.EffectiveGraphID == graphID && e.Destination.Name == name
	}
	return e.Destination.Name == pattern
}

func splitGraphRoute(pattern string) (graphID, name string, ok bool) {
	for i := 0; i < len(pattern); i++ {
		if pattern[i] == '/' {
			return pattern[:i], pattern[i+1:], true
		}
	}
	return "", "", false
}
