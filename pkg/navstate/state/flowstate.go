package state

import "time"

// GuidedFlowState is the active-flow half of spec §3's GuidedFlowState row
// (flow id, current step, timestamps, derived progress). The flow's
// definition — its steps, on-complete callback, and clear-modifications
// policy — lives in package flow, not here, so that state never needs to
// know about batches or callbacks: State only remembers which flow is
// running and where it is in it.
type GuidedFlowState struct {
	FlowID        string
	CurrentStep   int
	TotalSteps    int
	StartedAt     time.Time
	CompletedAt   *time.Time
}

// IsOnFinalStep reports whether the flow has no further forward steps.
func (f *GuidedFlowState) IsOnFinalStep() bool {
	return f != nil && f.CurrentStep >= f.TotalSteps-1
}

// Progress returns (currentStep+1)/total, clamped to [0, 1] (spec §4.6).
func (f *GuidedFlowState) Progress() float64 {
	if f == nil || f.TotalSteps <= 0 {
		return 0
	}
	p := float64(f.CurrentStep+1) / float64(f.TotalSteps)
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}

// Clone returns a defensive copy, or nil if f is nil.
func (f *GuidedFlowState) Clone() *GuidedFlowState {
	if f == nil {
		return nil
	}
	clone := *f
	if f.CompletedAt != nil {
		t := *f.CompletedAt
		clone.CompletedAt = &t
	}
	return &clone
}
