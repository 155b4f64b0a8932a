// Package middleware implements the spam/debounce admission policy that
// sits between the intent DSL and the guard runner: it rejects redundant
// or too-rapid navigation actions and blocks new navigations while the
// store is mid-transition.
//
// Grounded on composables/use_debounce.go's timer-reset debounce idiom,
// generalized from a single reactive value to a per-flow action stream,
// with golang.org/x/time/rate standing in as the real-clock backstop layered
// underneath the deterministic, TimeSource-driven window counter spec §4.7
// and scenario E5 require for testability.
package middleware

import (
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/tuicore/navstate/pkg/navstate/intent"
	"github.com/tuicore/navstate/pkg/navstate/state"
)

// TimeSource abstracts the clock so tests can advance time deterministically
// (spec E5) instead of racing real timers.
type TimeSource interface {
	Now() time.Time
}

// RealTimeSource is the production TimeSource.
type RealTimeSource struct{}

// Now returns the wall-clock time.
func (RealTimeSource) Now() time.Time { return time.Now() }

type windowState struct {
	start time.Time
	count int
}

// SpamGuard is the admission policy: constructed once per store and
// consulted before every dispatched batch.
type SpamGuard struct {
	debounceMs          int64
	maxActionsPerWindow int
	windowSizeMs        int64
	clock               TimeSource

	mu           sync.Mutex
	lastAccepted map[string]time.Time
	windows      map[string]*windowState
	realLimiters map[string]*rate.Limiter
}

// New builds a SpamGuard parameterized per spec §4.7.
func New(debounceMs, maxActionsPerWindow, windowSizeMs int, clock TimeSource) *SpamGuard {
	if clock == nil {
		clock = RealTimeSource{}
	}
	return &SpamGuard{
		debounceMs:          int64(debounceMs),
		maxActionsPerWindow: maxActionsPerWindow,
		windowSizeMs:        int64(windowSizeMs),
		clock:               clock,
		lastAccepted:        make(map[string]time.Time),
		windows:             make(map[string]*windowState),
		realLimiters:        make(map[string]*rate.Limiter),
	}
}

// Admit decides whether batch may proceed to the guard runner. A batch is
// one atomic unit — every intent inside it is admitted or rejected
// together, so a batch's own sub-actions never block each other (spec
// §4.7's last rule).
func (g *SpamGuard) Admit(batch *intent.Batch, transitionState state.TransitionState) bool {
	if transitionState == state.TransitionAnimating {
		return false
	}

	flowID, isNextStep := nextStepFlowID(batch)
	if !isNextStep {
		return true
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.clock.Now()

	w, startingFreshWindow := g.windows[flowID]
	windowExpired := !startingFreshWindow || now.Sub(w.start) >= time.Duration(g.windowSizeMs)*time.Millisecond

	if windowExpired {
		// A fresh window's first admission still has to respect the
		// debounce floor against whatever the flow last accepted, so a
		// cadence slower than the window but faster than debounceMs can't
		// bypass throttling entirely by always landing in a brand-new,
		// empty window.
		if last, ok := g.lastAccepted[flowID]; ok {
			if now.Sub(last) < time.Duration(g.debounceMs)*time.Millisecond {
				return false
			}
		}
		w = &windowState{start: now, count: 0}
		g.windows[flowID] = w
	}
	if w.count >= g.maxActionsPerWindow {
		return false
	}

	limiter, ok := g.realLimiters[flowID]
	if !ok {
		limiter = rate.NewLimiter(
			rate.Limit(float64(g.maxActionsPerWindow))/rate.Limit(float64(g.windowSizeMs)/1000.0),
			g.maxActionsPerWindow*4,
		)
		g.realLimiters[flowID] = limiter
	}
	if !limiter.Allow() {
		return false
	}

	w.count++
	g.lastAccepted[flowID] = now
	return true
}

func nextStepFlowID(batch *intent.Batch) (string, bool) {
	for _, it := range batch.Intents {
		if it.Kind == intent.KindNextStep && !it.IsFinalStep {
			return it.FlowID, true
		}
	}
	return "", false
}
