// Package reduce implements the navigation engine's pure reducer: given a
// State, a validated intent.Batch, and the immutable routing Table, it
// produces the successor State and the caller-facing Outcome.
//
// Grounded on router/guard_flow.go's pushWithTracking/replaceWithTracking
// and router/history.go's stack manipulation, generalized from a single
// push/pop primitive to the full batch of mutations spec §4.4 names.
package reduce

import (
	"github.com/tuicore/navstate/pkg/navstate/graph"
	"github.com/tuicore/navstate/pkg/navstate/intent"
	"github.com/tuicore/navstate/pkg/navstate/resolve"
	"github.com/tuicore/navstate/pkg/navstate/state"
)

// Reduce applies batch to s and returns the successor state. No field of s
// is mutated in place — every successor is a fresh struct built on top of
// s.Clone(), the same discipline route.go's NewRoute applies to a single
// Route. On any failure the original s is returned unchanged alongside the
// error, so a rejected batch never partially commits (spec §7's
// "propagation policy").
func Reduce(s *state.State, batch *intent.Batch, tables *graph.Table) (*state.State, state.Outcome, error) {
	if err := batch.Validate(); err != nil {
		return s, state.Outcome{}, err
	}

	work := s.Clone()
	resolver := resolve.New(tables)
	routeChanged := false
	var redirected *graph.Target

	// Phase 1: clearBackStack / popUpTo mutations apply first (spec §4.4
	// ordering rule).
	for _, it := range batch.Intents {
		switch it.Kind {
		case intent.KindClearBackStack:
			work.BackStack = nil
			routeChanged = true
		case intent.KindPopUpTo:
			if err := applyPopUpTo(work, it); err != nil {
				return s, state.Outcome{}, err
			}
			routeChanged = true
		}
	}

	// Phase 2: pushes.
	for _, it := range batch.Intents {
		switch it.Kind {
		case intent.KindNavigateTo:
			if err := applyNavigateTo(work, resolver, tables, it); err != nil {
				return s, state.Outcome{}, err
			}
			routeChanged = true
		case intent.KindNavigateDeepLink:
			target, err := applyNavigateDeepLink(work, resolver, tables, it)
			if err != nil {
				return s, state.Outcome{}, err
			}
			redirected = target
			routeChanged = true
		case intent.KindNavigateBack:
			changed, err := applyNavigateBack(work)
			if err != nil {
				return s, state.Outcome{}, err
			}
			routeChanged = routeChanged || changed
		}
	}

	// Phase 3: guided-flow state updates.
	for _, it := range batch.Intents {
		switch it.Kind {
		case intent.KindStartGuidedFlow:
			if err := applyStartGuidedFlow(work, tables, it); err != nil {
				return s, state.Outcome{}, err
			}
			routeChanged = true
		case intent.KindNextStep:
			if err := applyNextStep(work, tables, it); err != nil {
				return s, state.Outcome{}, err
			}
			routeChanged = true
		case intent.KindPreviousStep:
			if err := applyPreviousStep(work, tables, it); err != nil {
				return s, state.Outcome{}, err
			}
			routeChanged = true
		case intent.KindUpdateStepParams, intent.KindReplaceStep, intent.KindAddSteps,
			intent.KindRemoveSteps, intent.KindUpdateOnComplete:
			// package flow has already computed the new opaque per-flow
			// modification value (spec's ModifyGuidedFlow action); Reduce
			// just commits it to the map it owns.
			if work.GuidedFlowModifications == nil {
				work.GuidedFlowModifications = make(map[string]interface{})
			}
			work.GuidedFlowModifications[it.FlowID] = it.ModificationValue
			adjustActiveFlowIndex(work, it)
		}
	}

	// Phase 4: modal-context bookkeeping (dismissModals).
	for _, it := range batch.Intents {
		if it.Kind == intent.KindDismissModals {
			work.ModalContexts = nil
		}
	}

	if len(work.BackStack) == 0 {
		return s, state.Outcome{}, graph.NewInvalidConfigurationError(
			"reduce: resulting back-stack is empty", nil)
	}
	renumber(work)

	// Phase 5: transition-state flag.
	if routeChanged {
		work.TransitionState = state.TransitionAnimating
	}

	if redirected != nil {
		return work, state.Redirected(redirected), nil
	}
	return work, state.Success(), nil
}

func renumber(s *state.State) {
	for i, e := range s.BackStack {
		s.BackStack[i] = e.WithStackPosition(i)
	}
}

// adjustActiveFlowIndex applies AddSteps/RemoveSteps's index-shift rule to
// the active flow's current step, if the modification being committed
// belongs to it.
func adjustActiveFlowIndex(s *state.State, it intent.Intent) {
	af := s.ActiveGuidedFlow
	if af == nil || af.FlowID != it.FlowID {
		return
	}
	if it.NewTotalSteps > 0 {
		af.TotalSteps = it.NewTotalSteps
	}
	if it.StepIndexDelta != 0 {
		af.CurrentStep += it.StepIndexDelta
		if af.CurrentStep < 0 {
			af.CurrentStep = 0
		}
		if af.CurrentStep > af.TotalSteps-1 {
			af.CurrentStep = af.TotalSteps - 1
		}
	}
}

// paramsFromTarget converts a resolver-extracted path-param map (string
// keys and values only) into state.Params.
func paramsFromTarget(m map[string]string) state.Params {
	p := state.Params{}
	for k, v := range m {
		p.Set(k, v)
	}
	return p
}
