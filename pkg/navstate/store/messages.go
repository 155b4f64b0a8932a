package store

import "github.com/tuicore/navstate/pkg/navstate/state"

// TransactionMsg is the tea.Msg a Store's dispatch Cmd resolves to: the
// Bubble Tea model's Update loop type-switches on this to react to a
// committed (or rejected) navigation transaction.
//
// Grounded on router/navigation.go's RouteChangedMsg/NavigationErrorMsg
// pair, collapsed into one message carrying the tagged Outcome instead of
// two distinct success/failure message types.
type TransactionMsg struct {
	Outcome state.Outcome
	Err     error
}

// TransitionElapsedMsg fires once a navigation's ANIMATING window has
// elapsed (spec §4.4's transition state diagram); EndTransitionAfter emits
// it after the store has already flipped TransitionState back to IDLE.
type TransitionElapsedMsg struct{}
