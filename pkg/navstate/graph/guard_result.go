package graph

import "context"

// Target is a fully resolved navigation target: a Destination reached
// through a specific graph with its extracted/merged path params. It is
// what a Resolver produces and what a GuardFunc inspects and may redirect
// to — grounded on router/navigation.go's NavigationTarget, generalized to
// carry the effective graph id the spec's resolver algorithm (§4.3)
// requires.
type Target struct {
	Destination     *Destination
	EffectiveGraphID string
	Params          map[string]string
}

// GuardResultKind tags the outcome of a guard evaluation (spec §3: GuardResult).
type GuardResultKind int

const (
	GuardAllow GuardResultKind = iota
	GuardReject
	GuardRedirectTo
	GuardPendAndRedirectTo
)

func (k GuardResultKind) String() string {
	switch k {
	case GuardAllow:
		return "Allow"
	case GuardReject:
		return "Reject"
	case GuardRedirectTo:
		return "RedirectTo"
	case GuardPendAndRedirectTo:
		return "PendAndRedirectTo"
	default:
		return "Unknown"
	}
}

// GuardResult is the tagged variant a guard closure returns.
type GuardResult struct {
	Kind GuardResultKind
	// RedirectRoute is populated for RedirectTo / PendAndRedirectTo.
	RedirectRoute string
	// Metadata is carried into the stored PendingNavigation for
	// PendAndRedirectTo (e.g. why the user was redirected).
	Metadata map[string]interface{}
	// DisplayHint is an optional human-readable hint surfaced alongside a
	// pending navigation (spec E3's "Sign in" hint).
	DisplayHint string
}

// Allow is the zero-friction GuardResult constructor for the common case.
func Allow() GuardResult { return GuardResult{Kind: GuardAllow} }

// Reject rejects the navigation outright.
func Reject() GuardResult { return GuardResult{Kind: GuardReject} }

// RedirectTo redirects navigation to route instead of the original target.
func RedirectTo(route string) GuardResult {
	return GuardResult{Kind: GuardRedirectTo, RedirectRoute: route}
}

// PendAndRedirectTo redirects to route while asking the store to stash
// the original navigation as a PendingNavigation for later resumption.
func PendAndRedirectTo(route string, metadata map[string]interface{}, displayHint string) GuardResult {
	return GuardResult{
		Kind:          GuardPendAndRedirectTo,
		RedirectRoute: route,
		Metadata:      metadata,
		DisplayHint:   displayHint,
	}
}

// GuardFunc intercepts navigation into the subtree it is attached to. It is
// modeled as a suspending function (design note §9): it takes a context so
// the host's guard runner can enforce the loading-modal threshold and the
// 2s safety timeout by racing it against timers, the same posture
// router/guards.go's executeGuardSafe takes toward panic recovery.
type GuardFunc func(ctx context.Context, to Target, from *Target) GuardResult
