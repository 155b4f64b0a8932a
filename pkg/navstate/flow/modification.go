package flow

import "github.com/tuicore/navstate/pkg/navstate/intent"

// Modification is the opaque value flow.Engine stores at
// state.GuidedFlowModifications[flowID]. It overlays a Definition's steps
// without mutating the Definition itself, so a flow can be re-run with its
// original shape after CLEAR_ALL/CLEAR_SPECIFIC wipes accumulated runtime
// edits (spec §4.6).
type Modification struct {
	// Steps, once non-nil, entirely replaces Definition.Steps as the
	// effective step list (set by ReplaceStep/AddSteps/RemoveSteps).
	Steps []intent.FlowStep
	// ParamPatches overlays per-step params by index, applied after the
	// effective step's own params and before call-time params (spec §4.6's
	// "definition step params ⊕ modification patches ⊕ params").
	ParamPatches map[int]map[string]interface{}
	// OnComplete, once non-nil, replaces Definition.OnComplete.
	OnComplete intent.OnCompleteFunc
}

func (m *Modification) clone() *Modification {
	if m == nil {
		return &Modification{ParamPatches: map[int]map[string]interface{}{}}
	}
	out := &Modification{OnComplete: m.OnComplete}
	if m.Steps != nil {
		out.Steps = append([]intent.FlowStep{}, m.Steps...)
	}
	out.ParamPatches = make(map[int]map[string]interface{}, len(m.ParamPatches))
	for idx, patch := range m.ParamPatches {
		p := make(map[string]interface{}, len(patch))
		for k, v := range patch {
			p[k] = v
		}
		out.ParamPatches[idx] = p
	}
	return out
}

func asModification(v interface{}) *Modification {
	if v == nil {
		return nil
	}
	m, _ := v.(*Modification)
	return m
}
