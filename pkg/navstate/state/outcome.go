package state

import "github.com/tuicore/navstate/pkg/navstate/graph"

// OutcomeKind tags the result returned to the caller of a navigation
// transaction (spec §3's NavigationOutcome row).
type OutcomeKind int

const (
	OutcomeSuccess OutcomeKind = iota
	OutcomeDropped
	OutcomeRejected
	OutcomeRedirected
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeSuccess:
		return "Success"
	case OutcomeDropped:
		return "Dropped"
	case OutcomeRejected:
		return "Rejected"
	case OutcomeRedirected:
		return "Redirected"
	default:
		return "Unknown"
	}
}

// Outcome is the tagged NavigationOutcome variant.
type Outcome struct {
	Kind       OutcomeKind
	Redirected *graph.Target
}

func Success() Outcome                      { return Outcome{Kind: OutcomeSuccess} }
func Dropped() Outcome                      { return Outcome{Kind: OutcomeDropped} }
func Rejected() Outcome                     { return Outcome{Kind: OutcomeRejected} }
func Redirected(target *graph.Target) Outcome {
	return Outcome{Kind: OutcomeRedirected, Redirected: target}
}
