// Package flow implements the guided-flow sub-engine: starting, advancing,
// rewinding, and completing linear multi-step flows, with runtime
// modification of steps and per-step parameter merging.
//
// Grounded on router/guard_flow.go's redirect-tracking bookkeeping (a
// side table keyed by an id, mutated across a sequence of navigations) and
// router/nested.go's step composition, generalized from "a chain of
// redirects" to "a chain of user-authored steps with a completion
// callback".
package flow

import (
	"github.com/tuicore/navstate/pkg/navstate/intent"
)

// Definition is the immutable, author-declared shape of one guided flow:
// its steps, the callback invoked on completion, and what happens to its
// modification-map entry once that callback's batch commits (spec §3's
// GuidedFlowDefinition row).
type Definition struct {
	FlowID      string
	Steps       []intent.FlowStep
	OnComplete  intent.OnCompleteFunc
	ClearPolicy intent.ClearModificationsPolicy
}

// Registry indexes Definitions by flow id.
type Registry struct {
	definitions map[string]*Definition
}

// NewRegistry builds an empty Registry.
func NewRegistry() *Registry {
	return &Registry{definitions: make(map[string]*Definition)}
}

// Register adds or replaces def. Flow ids are unique per module (spec
// §3's GuidedFlowDefinition invariant).
func (r *Registry) Register(def *Definition) {
	r.definitions[def.FlowID] = def
}

// Lookup returns the Definition for id, or nil if none is registered.
func (r *Registry) Lookup(id string) *Definition {
	return r.definitions[id]
}
