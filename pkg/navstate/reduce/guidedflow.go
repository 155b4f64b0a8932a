package reduce

import (
	"time"

	"github.com/tuicore/navstate/pkg/navstate/graph"
	"github.com/tuicore/navstate/pkg/navstate/intent"
	"github.com/tuicore/navstate/pkg/navstate/state"
)

// applyStartGuidedFlow pushes step 0 and creates flow state. Starting a
// second flow while one is active is a no-op (spec §3's GuidedFlowState
// invariant: "at most one active at a time").
func applyStartGuidedFlow(s *state.State, tables *graph.Table, it intent.Intent) error {
	if s.ActiveGuidedFlow != nil {
		return nil
	}

	target, err := lookupResolvedTarget(tables, it.ResolvedRoute)
	if err != nil {
		return err
	}

	pushTarget(s, target, it.ResolvedParams, false)
	if entry := s.Current(); entry != nil {
		entry.GuidedFlow = &state.GuidedFlowRef{FlowID: it.FlowID, StepIndex: 0, TotalSteps: it.TotalSteps}
	}

	s.ActiveGuidedFlow = &state.GuidedFlowState{
		FlowID:      it.FlowID,
		CurrentStep: 0,
		TotalSteps:  it.TotalSteps,
		StartedAt:   time.Now(),
	}
	return nil
}

// applyNextStep either pushes the next resolved step, or — when
// IsFinalStep is set (package flow already ran the on-complete callback) —
// tears down flow state and applies ClearPolicy.
func applyNextStep(s *state.State, tables *graph.Table, it intent.Intent) error {
	if it.IsFinalStep {
		completed := time.Now()
		if s.ActiveGuidedFlow != nil {
			s.ActiveGuidedFlow.CompletedAt = &completed
		}
		s.ActiveGuidedFlow = nil
		applyClearPolicy(s, it)
		return nil
	}

	target, err := lookupResolvedTarget(tables, it.ResolvedRoute)
	if err != nil {
		return err
	}

	pushTarget(s, target, it.ResolvedParams, false)
	if entry := s.Current(); entry != nil {
		entry.GuidedFlow = &state.GuidedFlowRef{FlowID: it.FlowID, StepIndex: 0, TotalSteps: it.TotalSteps}
		if s.ActiveGuidedFlow != nil {
			s.ActiveGuidedFlow.CurrentStep++
			entry.GuidedFlow.StepIndex = s.ActiveGuidedFlow.CurrentStep
		}
	}
	return nil
}

// applyPreviousStep either navigates back to the resolved previous step, or
// — when IsExitFlow is set — exits the flow entirely via a plain back-pop
// (spec §4.4's "equivalent to previousStep ... if already on step 0, exit
// the flow and return to the pre-flow entry").
func applyPreviousStep(s *state.State, tables *graph.Table, it intent.Intent) error {
	if it.IsExitFlow {
		s.ActiveGuidedFlow = nil
		_, err := applyNavigateBack(s)
		return err
	}

	target, err := lookupResolvedTarget(tables, it.ResolvedRoute)
	if err != nil {
		return err
	}

	if len(s.BackStack) > 1 {
		s.BackStack = s.BackStack[:len(s.BackStack)-1]
	}
	pushTarget(s, target, it.ResolvedParams, false)
	if s.ActiveGuidedFlow != nil {
		s.ActiveGuidedFlow.CurrentStep--
		if entry := s.Current(); entry != nil {
			entry.GuidedFlow = &state.GuidedFlowRef{
				FlowID:     it.FlowID,
				StepIndex:  s.ActiveGuidedFlow.CurrentStep,
				TotalSteps: s.ActiveGuidedFlow.TotalSteps,
			}
		}
	}
	return nil
}

func applyClearPolicy(s *state.State, it intent.Intent) {
	switch it.ClearPolicy {
	case intent.ClearAll:
		s.GuidedFlowModifications = map[string]interface{}{}
	case intent.ClearSpecific:
		delete(s.GuidedFlowModifications, it.FlowID)
	case intent.ClearNone:
		// leave modifications intact for subsequent runs.
	}
}

// lookupResolvedTarget resolves a route already computed by package flow
// back into a graph.Target. Guided-flow steps always carry a canonical
// route (no graph-hint disambiguation needed), so a direct routing-table
// lookup suffices without re-running the full resolver algorithm.
func lookupResolvedTarget(tables *graph.Table, route string) (*graph.Target, error) {
	dest, ok := tables.RouteIndex[route]
	if !ok {
		return nil, graph.NewRouteNotFoundError(route, nil)
	}
	return &graph.Target{Destination: dest, EffectiveGraphID: tables.DestinationToGraph[dest]}, nil
}
