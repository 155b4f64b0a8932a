// Package intent is the transaction builder: a closed tagged-union DSL for
// describing a batch of navigation mutations before they ever reach the
// reducer.
//
// Grounded on router/navigation.go's NavigationTarget and
// router/guard_flow.go's validateTarget "fail before committing" posture,
// generalized from a single push target to the full batch of intents
// spec §4.4 and §4.6 name.
package intent

import (
	"context"

	"github.com/tuicore/navstate/pkg/navstate/state"
)

// Kind tags which mutation an Intent describes.
type Kind int

const (
	KindNavigateTo Kind = iota
	KindPopUpTo
	KindNavigateBack
	KindClearBackStack
	KindDismissModals
	KindNavigateDeepLink
	KindStartGuidedFlow
	KindNextStep
	KindPreviousStep
	KindUpdateStepParams
	KindReplaceStep
	KindAddSteps
	KindRemoveSteps
	KindUpdateOnComplete
)

// ClearModificationsPolicy selects what happens to a flow's modification-map
// entry once its on-complete batch has committed (spec §4.6).
type ClearModificationsPolicy int

const (
	ClearSpecific ClearModificationsPolicy = iota
	ClearAll
	ClearNone
)

func (k Kind) String() string {
	switch k {
	case KindNavigateTo:
		return "NavigateTo"
	case KindPopUpTo:
		return "PopUpTo"
	case KindNavigateBack:
		return "NavigateBack"
	case KindClearBackStack:
		return "ClearBackStack"
	case KindDismissModals:
		return "DismissModals"
	case KindNavigateDeepLink:
		return "NavigateDeepLink"
	case KindStartGuidedFlow:
		return "StartGuidedFlow"
	case KindNextStep:
		return "NextStep"
	case KindPreviousStep:
		return "PreviousStep"
	case KindUpdateStepParams:
		return "UpdateStepParams"
	case KindReplaceStep:
		return "ReplaceStep"
	case KindAddSteps:
		return "AddSteps"
	case KindRemoveSteps:
		return "RemoveSteps"
	case KindUpdateOnComplete:
		return "UpdateOnComplete"
	default:
		return "Unknown"
	}
}

// FlowStep is one step of a guided flow: a route to navigate to and the
// params it contributes, before modification-map patches and call-time
// params are merged on top (spec §4.6's merge chain).
type FlowStep struct {
	Route  string
	Params state.Params
}

// StoreAccessor is the narrow read-only view an on-complete callback gets
// into the store, enough to decide what follow-up batch to emit without
// letting the callback re-enter the reducer directly (design note §9
// "callback that emits a batch").
type StoreAccessor interface {
	CurrentState() *state.State
}

// OnCompleteFunc is a guided flow's completion callback: it observes the
// store and returns the follow-up batch to apply once flow state has been
// torn down, rather than mutating anything itself. It takes a context
// because evaluating it is a suspension point (spec §5): it may await
// further state before deciding the follow-up batch, the same posture
// GuardFunc takes toward cancellation.
type OnCompleteFunc func(ctx context.Context, accessor StoreAccessor) *Batch

// Intent is one tagged mutation within a Batch. Only the fields relevant to
// Kind are meaningful; the rest are zero values.
type Intent struct {
	Kind Kind

	// NavigateTo / NavigateDeepLink / StartGuidedFlow's initial step
	Route          string
	Params         state.Params
	ReplaceCurrent bool
	ForwardParams  bool

	// PopUpTo
	Inclusive bool

	// StartGuidedFlow / guided-flow step intents
	FlowID string
	// ResolvedRoute/ResolvedParams/TotalSteps are filled in by package flow
	// before the intent reaches Reduce: flow.Engine owns the Definition and
	// the modification map's interpretation, so by the time a
	// StartGuidedFlow/NextStep/PreviousStep intent is built, the step to
	// navigate to is already a concrete route+params pair. This keeps Reduce
	// mechanical and free of any dependency on flow's Definition/callback
	// types.
	ResolvedRoute  string
	ResolvedParams state.Params
	TotalSteps     int
	// IsFinalStep marks a NextStep intent whose on-complete callback has
	// already run (in package flow, which may suspend); Reduce only needs
	// to tear down flow state and apply ClearPolicy, not push anything.
	IsFinalStep bool
	ClearPolicy ClearModificationsPolicy
	// IsExitFlow marks a PreviousStep intent issued from step 0: Reduce
	// exits the flow and navigates back to the pre-flow entry instead of
	// pushing ResolvedRoute.
	IsExitFlow bool

	// UpdateStepParams
	StepIndex *int
	StepType  string
	Patch     map[string]interface{}

	// ReplaceStep
	NewStep *FlowStep

	// AddSteps
	Steps       []FlowStep
	InsertIndex int

	// RemoveSteps
	Indices []int

	// UpdateOnComplete
	OnComplete OnCompleteFunc

	// ModificationValue is the opaque, flow-package-owned replacement value
	// for state.GuidedFlowModifications[FlowID], computed by flow.Engine
	// before the intent reaches Reduce. Reduce never interprets its shape —
	// it only assigns it, keeping State free of a dependency on flow's
	// modification-map layout (spec §3's State row: "guided-flow
	// modification map").
	ModificationValue interface{}
	// StepIndexDelta/NewTotalSteps adjust an active flow's current step
	// index and step count when AddSteps/RemoveSteps changes the effective
	// step list out from under it (spec §4.6: "shift the index down by the
	// count removed before it; clamp to [0, size-1]"). NewTotalSteps<=0
	// means "unchanged" — no real flow has zero steps.
	StepIndexDelta int
	NewTotalSteps  int
}

// NavigateTo builds a navigateTo intent.
func NavigateTo(route string, params state.Params, replaceCurrent bool) Intent {
	return Intent{Kind: KindNavigateTo, Route: route, Params: params, ReplaceCurrent: replaceCurrent}
}

// NavigateToForwarding is NavigateTo with inherited forward params enabled
// (spec §4.4's parameter merge priority's lowest tier).
func NavigateToForwarding(route string, params state.Params, replaceCurrent bool) Intent {
	i := NavigateTo(route, params, replaceCurrent)
	i.ForwardParams = true
	return i
}

// PopUpTo builds a popUpTo intent.
func PopUpTo(route string, inclusive bool) Intent {
	return Intent{Kind: KindPopUpTo, Route: route, Inclusive: inclusive}
}

// NavigateBack builds a navigateBack intent.
func NavigateBack() Intent { return Intent{Kind: KindNavigateBack} }

// ClearBackStack builds a clearBackStack intent.
func ClearBackStack() Intent { return Intent{Kind: KindClearBackStack} }

// DismissModals builds a dismissModals intent.
func DismissModals() Intent { return Intent{Kind: KindDismissModals} }

// NavigateDeepLink builds a navigateDeepLink intent.
func NavigateDeepLink(path string) Intent {
	return Intent{Kind: KindNavigateDeepLink, Route: path}
}

// StartGuidedFlowResolved builds a startGuidedFlow intent once package flow
// has resolved step 0's route+params against the flow's Definition.
func StartGuidedFlowResolved(flowID, route string, params state.Params, totalSteps int) Intent {
	return Intent{Kind: KindStartGuidedFlow, FlowID: flowID, ResolvedRoute: route, ResolvedParams: params, TotalSteps: totalSteps}
}

// NextStepResolved builds a nextStep intent that advances to the given
// resolved step.
func NextStepResolved(flowID, route string, params state.Params, totalSteps int) Intent {
	return Intent{Kind: KindNextStep, FlowID: flowID, ResolvedRoute: route, ResolvedParams: params, TotalSteps: totalSteps}
}

// NextStepFinal builds a nextStep intent for a flow whose on-complete
// callback has already run; Reduce only tears down flow state.
func NextStepFinal(flowID string, policy ClearModificationsPolicy) Intent {
	return Intent{Kind: KindNextStep, FlowID: flowID, IsFinalStep: true, ClearPolicy: policy}
}

// PreviousStepResolved builds a previousStep intent that rewinds to the
// given resolved step.
func PreviousStepResolved(flowID, route string, params state.Params) Intent {
	return Intent{Kind: KindPreviousStep, FlowID: flowID, ResolvedRoute: route, ResolvedParams: params}
}

// PreviousStepExit builds a previousStep intent issued from step 0: Reduce
// exits the flow and navigates back to the pre-flow entry.
func PreviousStepExit(flowID string) Intent {
	return Intent{Kind: KindPreviousStep, FlowID: flowID, IsExitFlow: true}
}

// UpdateStepParamsByIndex builds an updateStepParams intent keyed by index.
func UpdateStepParamsByIndex(flowID string, index int, patch map[string]interface{}) Intent {
	return Intent{Kind: KindUpdateStepParams, FlowID: flowID, StepIndex: &index, Patch: patch}
}

// UpdateStepParamsByType builds an updateStepParams intent keyed by
// destination route.
func UpdateStepParamsByType(flowID, stepType string, patch map[string]interface{}) Intent {
	return Intent{Kind: KindUpdateStepParams, FlowID: flowID, StepType: stepType, Patch: patch}
}

// ReplaceStep builds a replaceStep intent.
func ReplaceStep(flowID string, index int, newStep FlowStep) Intent {
	return Intent{Kind: KindReplaceStep, FlowID: flowID, StepIndex: &index, NewStep: &newStep}
}

// AddSteps builds an addSteps intent.
func AddSteps(flowID string, steps []FlowStep, insertIndex int) Intent {
	return Intent{Kind: KindAddSteps, FlowID: flowID, Steps: steps, InsertIndex: insertIndex}
}

// RemoveSteps builds a removeSteps intent.
func RemoveSteps(flowID string, indices []int) Intent {
	return Intent{Kind: KindRemoveSteps, FlowID: flowID, Indices: indices}
}

// UpdateOnComplete builds an updateOnComplete intent.
func UpdateOnComplete(flowID string, callback OnCompleteFunc) Intent {
	return Intent{Kind: KindUpdateOnComplete, FlowID: flowID, OnComplete: callback}
}

// SetModification builds the Reduce-facing counterpart of one of the five
// modification-map intents above: flow.Engine reads the raw intent's
// StepIndex/Patch/NewStep/etc, computes the new per-flow modification
// value, and rebuilds the intent with that value attached so Reduce can
// commit it without understanding its shape.
func SetModification(kind Kind, flowID string, value interface{}) Intent {
	return Intent{Kind: kind, FlowID: flowID, ModificationValue: value}
}
