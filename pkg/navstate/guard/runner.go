// Package guard runs the graph.GuardFunc chain attached to a navigation
// target: it enforces the loading-modal threshold and a safety timeout,
// recovers from guard panics, and serializes evaluation through a single
// goroutine so two in-flight navigations never race each other's guard
// side effects.
//
// Grounded on router/guards.go's executeGuardSafe panic-recovery posture,
// generalized from a before-guard chain to a single closure per spec §4.5,
// and on composables/use_debounce.go's timer-reset idiom for the loading
// threshold.
package guard

import (
	"context"
	"errors"
	"runtime/debug"
	"time"

	"github.com/tuicore/navstate/pkg/navstate/graph"
	"github.com/tuicore/navstate/pkg/navstate/state"
	"github.com/tuicore/navstate/pkg/navstate/telemetry"
)

// DefaultLoadingThreshold is how long a guard may run before the runner
// signals the host to show a loading indicator (spec §4.5).
const DefaultLoadingThreshold = 150 * time.Millisecond

// DefaultSafetyTimeout is the hard ceiling on a single guard evaluation;
// past it, the navigation is rejected rather than hanging forever.
const DefaultSafetyTimeout = 2 * time.Second

// ErrGuardTimeout is returned when a guard exceeds its safety timeout.
var ErrGuardTimeout = errors.New("navstate: guard evaluation timed out")

// LoadingHook is notified when a guard evaluation crosses the loading
// threshold, and again when it resolves, so a host UI can show and hide a
// blocking spinner around slow guards (e.g. a network auth check).
type LoadingHook func(active bool)

// Runner evaluates GuardFuncs one at a time through a single background
// goroutine — the "async mutex" — built once per store.
type Runner struct {
	loadingThreshold time.Duration
	safetyTimeout    time.Duration
	reporter         telemetry.ErrorReporter
	metrics          telemetry.Metrics
	loading          LoadingHook

	requests chan *request
}

type request struct {
	ctx     context.Context
	guard   graph.GuardFunc
	to      graph.Target
	from    *graph.Target
	graphID string
	reply   chan evalResult
}

type evalResult struct {
	result graph.GuardResult
	err    error
}

// New builds a Runner with the spec's default thresholds.
func New(reporter telemetry.ErrorReporter, metrics telemetry.Metrics, loading LoadingHook) *Runner {
	return NewWithTimings(DefaultLoadingThreshold, DefaultSafetyTimeout, reporter, metrics, loading)
}

// NewWithTimings builds a Runner with explicit thresholds, for hosts (and
// tests) that need a tighter or looser window than the spec defaults.
func NewWithTimings(loadingThreshold, safetyTimeout time.Duration, reporter telemetry.ErrorReporter, metrics telemetry.Metrics, loading LoadingHook) *Runner {
	if metrics == nil {
		metrics = telemetry.NopMetrics{}
	}
	r := &Runner{
		loadingThreshold: loadingThreshold,
		safetyTimeout:    safetyTimeout,
		reporter:         reporter,
		metrics:          metrics,
		loading:          loading,
		requests:         make(chan *request, 32),
	}
	go r.loop()
	return r
}

func (r *Runner) loop() {
	for req := range r.requests {
		res, err := r.evaluate(req.ctx, req.guard, req.to, req.from, req.graphID)
		req.reply <- evalResult{result: res, err: err}
	}
}

// Evaluate runs guardFn against to/from, or allows immediately if guardFn is
// nil (an unguarded graph). Every call is serialized through the runner's
// single writer goroutine.
func (r *Runner) Evaluate(ctx context.Context, guardFn graph.GuardFunc, to graph.Target, from *graph.Target, graphID string) (graph.GuardResult, error) {
	if guardFn == nil {
		return graph.Allow(), nil
	}
	reply := make(chan evalResult, 1)
	r.requests <- &request{ctx: ctx, guard: guardFn, to: to, from: from, graphID: graphID, reply: reply}
	res := <-reply
	return res.result, res.err
}

func (r *Runner) evaluate(ctx context.Context, guardFn graph.GuardFunc, to graph.Target, from *graph.Target, graphID string) (graph.GuardResult, error) {
	start := time.Now()
	ctx, cancel := context.WithTimeout(ctx, r.safetyTimeout)
	defer cancel()

	done := make(chan graph.GuardResult, 1)
	panicked := make(chan interface{}, 1)
	go func() {
		defer func() {
			if p := recover(); p != nil {
				panicked <- p
			}
		}()
		done <- guardFn(ctx, to, from)
	}()

	loadingTimer := time.NewTimer(r.loadingThreshold)
	defer loadingTimer.Stop()
	loadingActive := false
	endLoading := func() {
		if loadingActive && r.loading != nil {
			r.loading(false)
		}
	}

	for {
		select {
		case res := <-done:
			endLoading()
			r.metrics.ObserveGuardEvaluation(graphID, time.Since(start), false)
			return res, nil
		case p := <-panicked:
			endLoading()
			r.reportPanic(p, graphID, to)
			r.metrics.ObserveGuardEvaluation(graphID, time.Since(start), false)
			return graph.Reject(), nil
		case <-loadingTimer.C:
			loadingActive = true
			if r.loading != nil {
				r.loading(true)
			}
		case <-ctx.Done():
			endLoading()
			r.reportTimeout(graphID, to)
			r.metrics.ObserveGuardEvaluation(graphID, time.Since(start), true)
			return graph.Reject(), ErrGuardTimeout
		}
	}
}

func (r *Runner) reportPanic(panicValue interface{}, graphID string, to graph.Target) {
	if r.reporter == nil {
		return
	}
	route := ""
	if to.Destination != nil {
		route = to.Destination.Name
	}
	r.reporter.ReportPanic(
		&telemetry.GuardPanicError{GraphID: graphID, Route: route, PanicValue: panicValue},
		&telemetry.ErrorContext{
			GraphID:    graphID,
			Route:      route,
			EventName:  "guard_evaluation",
			Timestamp:  time.Now(),
			StackTrace: debug.Stack(),
			Extra:      map[string]interface{}{"panic_value": panicValue},
		},
	)
}

func (r *Runner) reportTimeout(graphID string, to graph.Target) {
	if r.reporter == nil {
		return
	}
	route := ""
	if to.Destination != nil {
		route = to.Destination.Name
	}
	r.reporter.ReportError(ErrGuardTimeout, &telemetry.ErrorContext{
		GraphID:   graphID,
		Route:     route,
		EventName: "guard_evaluation",
		Timestamp: time.Now(),
	})
}

// BuildPendingNavigation converts a PendAndRedirectTo GuardResult and the
// originally requested route/params into the PendingNavigation the store
// stashes on state (spec §4.5) — Route is what the user originally asked
// for, so ResumePendingNavigation can retry it once unblocked, not the
// redirect target itself.
func BuildPendingNavigation(originalRoute string, originalParams state.Params, result graph.GuardResult) *state.PendingNavigation {
	if result.Kind != graph.GuardPendAndRedirectTo {
		return nil
	}
	return &state.PendingNavigation{
		Route:       originalRoute,
		Params:      originalParams,
		Metadata:    result.Metadata,
		DisplayHint: result.DisplayHint,
	}
}
