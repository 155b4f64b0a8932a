package flow

import (
	"context"
	"fmt"

	"github.com/tuicore/navstate/pkg/navstate/intent"
	"github.com/tuicore/navstate/pkg/navstate/state"
)

// Engine turns guided-flow operations into concrete, Reduce-ready
// intent.Batches: it owns Definitions and interprets each flow's opaque
// modification-map entry, so package reduce never needs to know about
// either.
type Engine struct {
	registry *Registry
}

// NewEngine builds an Engine over registry.
func NewEngine(registry *Registry) *Engine {
	return &Engine{registry: registry}
}

func (e *Engine) effectiveSteps(def *Definition, mod *Modification) []intent.FlowStep {
	if mod != nil && mod.Steps != nil {
		return mod.Steps
	}
	return def.Steps
}

func (e *Engine) effectiveOnComplete(def *Definition, mod *Modification) intent.OnCompleteFunc {
	if mod != nil && mod.OnComplete != nil {
		return mod.OnComplete
	}
	return def.OnComplete
}

// paramsForStep merges a step's own params, any runtime patch recorded for
// its index, and call-time params — lowest to highest priority, per spec
// §4.6.
func (e *Engine) paramsForStep(mod *Modification, steps []intent.FlowStep, idx int, callParams state.Params) state.Params {
	base := steps[idx].Params
	var patch state.Params
	if mod != nil {
		if p, ok := mod.ParamPatches[idx]; ok {
			patch = state.Params{}
			for k, v := range p {
				patch.Set(k, v)
			}
		}
	}
	return state.MergeAll(base, patch, callParams)
}

// StartGuidedFlow resolves step 0 and returns the batch to Reduce.
// Starting a second flow while one is active is a no-op (spec §3).
func (e *Engine) StartGuidedFlow(s *state.State, flowID string, params state.Params) (*intent.Batch, error) {
	if s.ActiveGuidedFlow != nil {
		return intent.NewBatch(), nil
	}

	def := e.registry.Lookup(flowID)
	if def == nil {
		return nil, fmt.Errorf("flow: unknown flow id %q", flowID)
	}
	mod := asModification(s.GuidedFlowModifications[flowID])
	steps := e.effectiveSteps(def, mod)
	if len(steps) == 0 {
		return nil, fmt.Errorf("flow: flow %q has no steps", flowID)
	}

	stepParams := e.paramsForStep(mod, steps, 0, params)
	return intent.NewBatch(intent.StartGuidedFlowResolved(flowID, steps[0].Route, stepParams, len(steps))), nil
}

// NextStep advances the active flow, or — on its final step — invokes the
// effective on-complete callback and folds its follow-up batch into the
// same transaction as the flow-state teardown (spec §4.6, design note §9's
// "callback that emits a batch").
func (e *Engine) NextStep(ctx context.Context, accessor intent.StoreAccessor, s *state.State, flowID string, params state.Params) (*intent.Batch, error) {
	af := s.ActiveGuidedFlow
	if af == nil || af.FlowID != flowID {
		return nil, fmt.Errorf("flow: %q is not the active flow", flowID)
	}
	def := e.registry.Lookup(flowID)
	if def == nil {
		return nil, fmt.Errorf("flow: unknown flow id %q", flowID)
	}
	mod := asModification(s.GuidedFlowModifications[flowID])
	steps := e.effectiveSteps(def, mod)

	if af.CurrentStep >= len(steps)-1 {
		onComplete := e.effectiveOnComplete(def, mod)
		intents := []intent.Intent{intent.NextStepFinal(flowID, def.ClearPolicy)}
		if onComplete != nil {
			if follow := onComplete(ctx, accessor); follow != nil {
				intents = append(intents, follow.Intents...)
			}
		}
		return &intent.Batch{Intents: intents}, nil
	}

	nextIdx := af.CurrentStep + 1
	stepParams := e.paramsForStep(mod, steps, nextIdx, params)
	return intent.NewBatch(intent.NextStepResolved(flowID, steps[nextIdx].Route, stepParams, len(steps))), nil
}

// PreviousStep rewinds the active flow by one step, or exits it entirely
// from step 0 (spec §4.4/§4.6, design note §9's normative choice for the
// step-0 case).
func (e *Engine) PreviousStep(s *state.State, flowID string) (*intent.Batch, error) {
	af := s.ActiveGuidedFlow
	if af == nil || af.FlowID != flowID {
		return nil, fmt.Errorf("flow: %q is not the active flow", flowID)
	}
	if af.CurrentStep <= 0 {
		return intent.NewBatch(intent.PreviousStepExit(flowID)), nil
	}

	def := e.registry.Lookup(flowID)
	if def == nil {
		return nil, fmt.Errorf("flow: unknown flow id %q", flowID)
	}
	mod := asModification(s.GuidedFlowModifications[flowID])
	steps := e.effectiveSteps(def, mod)
	prevIdx := af.CurrentStep - 1
	stepParams := e.paramsForStep(mod, steps, prevIdx, state.Params{})
	return intent.NewBatch(intent.PreviousStepResolved(flowID, steps[prevIdx].Route, stepParams)), nil
}

// UpdateStepParamsByIndex patches step index's params.
func (e *Engine) UpdateStepParamsByIndex(s *state.State, flowID string, index int, patch map[string]interface{}) *intent.Batch {
	mod := asModification(s.GuidedFlowModifications[flowID]).clone()
	existing := mod.ParamPatches[index]
	if existing == nil {
		existing = map[string]interface{}{}
	}
	for k, v := range patch {
		existing[k] = v
	}
	mod.ParamPatches[index] = existing
	return intent.NewBatch(intent.SetModification(intent.KindUpdateStepParams, flowID, mod))
}

// UpdateStepParamsByType patches every step whose route matches stepType.
func (e *Engine) UpdateStepParamsByType(s *state.State, flowID string, stepType string, patch map[string]interface{}) *intent.Batch {
	def := e.registry.Lookup(flowID)
	mod := asModification(s.GuidedFlowModifications[flowID]).clone()
	if def != nil {
		for idx, step := range e.effectiveSteps(def, mod) {
			if step.Route != stepType {
				continue
			}
			existing := mod.ParamPatches[idx]
			if existing == nil {
				existing = map[string]interface{}{}
			}
			for k, v := range patch {
				existing[k] = v
			}
			mod.ParamPatches[idx] = existing
		}
	}
	return intent.NewBatch(intent.SetModification(intent.KindUpdateStepParams, flowID, mod))
}

// ReplaceStep swaps step index for newStep in the effective step list.
func (e *Engine) ReplaceStep(s *state.State, flowID string, index int, newStep intent.FlowStep) *intent.Batch {
	def := e.registry.Lookup(flowID)
	mod := asModification(s.GuidedFlowModifications[flowID]).clone()
	effective := append([]intent.FlowStep{}, e.effectiveStepsOrEmpty(def, mod)...)
	if index >= 0 && index < len(effective) {
		effective[index] = newStep
	}
	mod.Steps = effective
	return intent.NewBatch(intent.SetModification(intent.KindReplaceStep, flowID, mod))
}

// AddSteps inserts newSteps at insertIndex in the effective step list,
// shifting the active flow's current index forward if the insertion point
// precedes it.
func (e *Engine) AddSteps(s *state.State, flowID string, newSteps []intent.FlowStep, insertIndex int) *intent.Batch {
	def := e.registry.Lookup(flowID)
	mod := asModification(s.GuidedFlowModifications[flowID]).clone()
	effective := e.effectiveStepsOrEmpty(def, mod)
	if insertIndex < 0 {
		insertIndex = 0
	}
	if insertIndex > len(effective) {
		insertIndex = len(effective)
	}
	merged := make([]intent.FlowStep, 0, len(effective)+len(newSteps))
	merged = append(merged, effective[:insertIndex]...)
	merged = append(merged, newSteps...)
	merged = append(merged, effective[insertIndex:]...)
	mod.Steps = merged

	i := intent.SetModification(intent.KindAddSteps, flowID, mod)
	i.NewTotalSteps = len(merged)
	if af := s.ActiveGuidedFlow; af != nil && af.FlowID == flowID && insertIndex <= af.CurrentStep {
		i.StepIndexDelta = len(newSteps)
	}
	return intent.NewBatch(i)
}

// RemoveSteps removes the steps at indices from the effective step list,
// shifting the active flow's current index down by however many removed
// indices preceded it (spec §4.6).
func (e *Engine) RemoveSteps(s *state.State, flowID string, indices []int) *intent.Batch {
	def := e.registry.Lookup(flowID)
	mod := asModification(s.GuidedFlowModifications[flowID]).clone()
	effective := e.effectiveStepsOrEmpty(def, mod)

	toRemove := make(map[int]bool, len(indices))
	for _, idx := range indices {
		toRemove[idx] = true
	}
	merged := make([]intent.FlowStep, 0, len(effective))
	for idx, step := range effective {
		if !toRemove[idx] {
			merged = append(merged, step)
		}
	}
	mod.Steps = merged

	i := intent.SetModification(intent.KindRemoveSteps, flowID, mod)
	i.NewTotalSteps = len(merged)
	if af := s.ActiveGuidedFlow; af != nil && af.FlowID == flowID {
		removedBefore := 0
		for idx := range toRemove {
			if idx < af.CurrentStep {
				removedBefore++
			}
		}
		i.StepIndexDelta = -removedBefore
	}
	return intent.NewBatch(i)
}

// UpdateOnComplete replaces flowID's on-complete callback.
func (e *Engine) UpdateOnComplete(s *state.State, flowID string, callback intent.OnCompleteFunc) *intent.Batch {
	mod := asModification(s.GuidedFlowModifications[flowID]).clone()
	mod.OnComplete = callback
	return intent.NewBatch(intent.SetModification(intent.KindUpdateOnComplete, flowID, mod))
}

func (e *Engine) effectiveStepsOrEmpty(def *Definition, mod *Modification) []intent.FlowStep {
	if mod != nil && mod.Steps != nil {
		return mod.Steps
	}
	if def != nil {
		return def.Steps
	}
	return nil
}
