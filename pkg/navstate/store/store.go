// Package store is navstate's public facade: it wires the resolver,
// reducer, guard runner, guided-flow engine, spam middleware and lifecycle
// tracker into a single-writer transaction loop, and exposes both a
// synchronous Dispatch and a Bubble Tea tea.Cmd-returning surface for host
// programs built on bubbletea.
//
// Grounded on router/router.go's mutex-guarded facade and
// router/navigation.go's Push/Replace tea.Cmd wrapping, generalized from a
// single route-matching step to the full resolve→guard→reduce pipeline
// spec §4 and §5 describe.
package store

import (
	"context"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tuicore/navstate/pkg/navstate/flow"
	"github.com/tuicore/navstate/pkg/navstate/graph"
	"github.com/tuicore/navstate/pkg/navstate/guard"
	"github.com/tuicore/navstate/pkg/navstate/intent"
	"github.com/tuicore/navstate/pkg/navstate/lifecycle"
	"github.com/tuicore/navstate/pkg/navstate/middleware"
	"github.com/tuicore/navstate/pkg/navstate/reduce"
	"github.com/tuicore/navstate/pkg/navstate/resolve"
	"github.com/tuicore/navstate/pkg/navstate/state"
	"github.com/tuicore/navstate/pkg/navstate/telemetry"
)

// Listener is notified with the new State every time a transaction
// commits. Dropped and Rejected outcomes, and transactions that fail with
// an error, commit nothing and notify no listener.
type Listener func(s *state.State)

// Store is the engine's single writer: every Dispatch call is serialized
// by writeMu, so two concurrent navigations can never interleave their Reduce
// calls.
type Store struct {
	// writeMu serializes the entire dispatch pipeline (admission, guard
	// evaluation, reduce) so two in-flight transactions never interleave —
	// the "single writer" the reducer's purity assumes.
	writeMu sync.Mutex
	// mu guards only the current pointer swap, so CurrentState reads never
	// block behind a guard that's mid-evaluation.
	mu       sync.RWMutex
	current  *state.State
	tables   *graph.Table
	resolver *resolve.Resolver

	guards   *guard.Runner
	spam     *middleware.SpamGuard
	flows    *flow.Engine
	tracker  *lifecycle.Tracker
	reporter telemetry.ErrorReporter
	metrics  telemetry.Metrics

	listenersMu sync.Mutex
	listeners   []Listener
}

// Option configures a Store at construction time.
type Option func(*Store)

// WithGuardRunner overrides the default guard.Runner (e.g. to inject a
// custom loading hook or tighter timings).
func WithGuardRunner(r *guard.Runner) Option {
	return func(st *Store) { st.guards = r }
}

// WithSpamGuard overrides the default middleware.SpamGuard.
func WithSpamGuard(g *middleware.SpamGuard) Option {
	return func(st *Store) { st.spam = g }
}

// WithFlowRegistry wires flow.Definitions for guided-flow operations.
func WithFlowRegistry(reg *flow.Registry) Option {
	return func(st *Store) { st.flows = flow.NewEngine(reg) }
}

// WithLifecycleTracker overrides the default, hook-less lifecycle.Tracker.
func WithLifecycleTracker(t *lifecycle.Tracker) Option {
	return func(st *Store) { st.tracker = t }
}

// WithErrorReporter wires guard-panic/timeout reporting.
func WithErrorReporter(r telemetry.ErrorReporter) Option {
	return func(st *Store) { st.reporter = r }
}

// WithMetrics wires transaction/guard metrics. Defaults to telemetry.NopMetrics.
func WithMetrics(m telemetry.Metrics) Option {
	return func(st *Store) { st.metrics = m }
}

// New builds a Store seeded at tables' root entry.
func New(tables *graph.Table, opts ...Option) (*Store, error) {
	initial, err := state.New(tables)
	if err != nil {
		return nil, err
	}
	st := &Store{
		current:  initial,
		tables:   tables,
		resolver: resolve.New(tables),
		spam:     middleware.New(300, 3, 1000, middleware.RealTimeSource{}),
		flows:    flow.NewEngine(flow.NewRegistry()),
		tracker:  lifecycle.NewTracker(),
		metrics:  telemetry.NopMetrics{},
	}
	for _, opt := range opts {
		opt(st)
	}
	if st.guards == nil {
		st.guards = guard.New(st.reporter, st.metrics, nil)
	}
	return st, nil
}

// CurrentState returns the store's current snapshot. Satisfies
// intent.StoreAccessor so guided-flow on-complete callbacks can read it.
func (st *Store) CurrentState() *state.State {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return st.current
}

// Subscribe registers listener to run after every committed transaction and
// returns an unsubscribe function.
func (st *Store) Subscribe(listener Listener) (unsubscribe func()) {
	st.listenersMu.Lock()
	defer st.listenersMu.Unlock()
	st.listeners = append(st.listeners, listener)
	idx := len(st.listeners) - 1
	return func() {
		st.listenersMu.Lock()
		defer st.listenersMu.Unlock()
		st.listeners[idx] = nil
	}
}

func (st *Store) notify(s *state.State) {
	st.listenersMu.Lock()
	listeners := make([]Listener, len(st.listeners))
	copy(listeners, st.listeners)
	st.listenersMu.Unlock()
	for _, l := range listeners {
		if l != nil {
			l(s)
		}
	}
}

// Dispatch is the single writer entry point: it runs the spam/debounce
// admission check, the target's guard chain, the reducer, and the
// lifecycle diff, all under writeMu. A Dispatch that arrives while another
// one holds writeMu returns Dropped at once without waiting.
func (st *Store) Dispatch(ctx context.Context, batch *intent.Batch) (state.Outcome, error) {
	started := time.Now()

	if !st.writeMu.TryLock() {
		outcome := state.Dropped()
		st.metrics.ObserveTransaction(outcome.Kind.String(), time.Since(started))
		return outcome, nil
	}
	defer st.writeMu.Unlock()

	prev := st.CurrentState()
	if !st.spam.Admit(batch, prev.TransitionState) {
		outcome := state.Dropped()
		st.metrics.ObserveTransaction(outcome.Kind.String(), time.Since(started))
		return outcome, nil
	}

	effective, err := st.runGuards(ctx, prev, batch)
	if err != nil {
		return state.Outcome{}, err
	}
	if effective == nil {
		outcome := state.Rejected()
		st.metrics.ObserveTransaction(outcome.Kind.String(), time.Since(started))
		return outcome, nil
	}

	// runGuards may have stashed a PendingNavigation on the current state
	// (PendAndRedirectTo); base the reduce on that, not the pre-guard prev.
	base := st.CurrentState()
	next, outcome, err := reduce.Reduce(base, effective, st.tables)
	if err != nil {
		return state.Outcome{}, err
	}
	st.setCurrent(next)

	st.tracker.Diff(base, next)
	st.notify(next)
	st.metrics.ObserveTransaction(outcome.Kind.String(), time.Since(started))
	return outcome, nil
}

func (st *Store) setCurrent(s *state.State) {
	st.mu.Lock()
	st.current = s
	st.mu.Unlock()
}

// runGuards evaluates the guard chain for every navigateTo/navigateDeepLink
// intent in batch. A Reject collapses the whole batch (nil, nil); a
// RedirectTo/PendAndRedirectTo replaces it with a single navigateTo intent
// to the redirect route, per spec §4.5's "a guard's verdict governs the
// transaction it intercepts, not just its own intent".
func (st *Store) runGuards(ctx context.Context, s *state.State, batch *intent.Batch) (*intent.Batch, error) {
	var from *graph.Target
	if cur := s.Current(); cur != nil {
		from = &graph.Target{Destination: cur.Destination, EffectiveGraphID: cur.EffectiveGraphID}
	}

	for _, it := range batch.Intents {
		if it.Kind != intent.KindNavigateTo && it.Kind != intent.KindNavigateDeepLink {
			continue
		}
		target, err := st.resolver.Resolve(it.Route, "")
		if err != nil {
			return nil, err
		}
		guardFn := st.tables.EffectiveGuard(target.EffectiveGraphID)
		result, err := st.guards.Evaluate(ctx, guardFn, *target, from, target.EffectiveGraphID)
		if err != nil && err != guard.ErrGuardTimeout {
			return nil, err
		}

		switch result.Kind {
		case graph.GuardAllow:
			continue
		case graph.GuardReject:
			return nil, nil
		case graph.GuardRedirectTo:
			return intent.NewBatch(intent.NavigateTo(result.RedirectRoute, state.Params{}, it.ReplaceCurrent)), nil
		case graph.GuardPendAndRedirectTo:
			pending := guard.BuildPendingNavigation(it.Route, it.Params, result)
			withPending := st.CurrentState().Clone()
			hadPending := withPending.PendingNavigation != nil
			withPending.PendingNavigation = pending
			st.setCurrent(withPending)
			if !hadPending {
				st.metrics.IncPendingNavigations()
			}
			return intent.NewBatch(intent.NavigateTo(result.RedirectRoute, state.Params{}, it.ReplaceCurrent)), nil
		}
	}
	return batch, nil
}

// ResumePendingNavigation re-dispatches a stashed PendingNavigation (spec
// §4.5's resume step) and clears it regardless of the retry's outcome —
// a second guard rejection shouldn't leave a stale pending entry around.
func (st *Store) ResumePendingNavigation(ctx context.Context) (state.Outcome, error) {
	pending := st.clearPending()
	if pending == nil {
		return state.Dropped(), nil
	}
	return st.Dispatch(ctx, intent.NewBatch(intent.NavigateTo(pending.Route, pending.Params, false)))
}

// ClearPendingNavigation discards a stashed PendingNavigation without
// resuming it.
func (st *Store) ClearPendingNavigation() {
	st.clearPending()
}

func (st *Store) clearPending() *state.PendingNavigation {
	current := st.CurrentState()
	if current.PendingNavigation == nil {
		return nil
	}
	pending := current.PendingNavigation
	next := current.Clone()
	next.PendingNavigation = nil
	st.setCurrent(next)
	st.metrics.DecPendingNavigations()
	return pending
}

// EndTransition flips TransitionState back to IDLE once the host's
// navigation animation has finished (spec §4.4's ANIMATING→IDLE edge).
func (st *Store) EndTransition() {
	current := st.CurrentState()
	if current.TransitionState != state.TransitionAnimating {
		return
	}
	next := current.Clone()
	next.TransitionState = state.TransitionIdle
	st.setCurrent(next)
}

// Cmd wraps a Dispatch call in a tea.Cmd, for host programs driven by a
// Bubble Tea Update loop.
func (st *Store) Cmd(ctx context.Context, batch *intent.Batch) tea.Cmd {
	return func() tea.Msg {
		outcome, err := st.Dispatch(ctx, batch)
		return TransactionMsg{Outcome: outcome, Err: err}
	}
}

// EndTransitionAfter returns a tea.Cmd that calls EndTransition once d has
// elapsed, for hosts that drive the ANIMATING window off a fixed-duration
// transition animation rather than an explicit completion signal.
func (st *Store) EndTransitionAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		st.EndTransition()
		return TransitionElapsedMsg{}
	})
}

// NavigateTo dispatches a single navigateTo intent — the common case
// convenience wrapper around Dispatch(ctx, intent.NewBatch(...)).
func (st *Store) NavigateTo(ctx context.Context, route string, params state.Params, replaceCurrent bool) (state.Outcome, error) {
	return st.Dispatch(ctx, intent.NewBatch(intent.NavigateTo(route, params, replaceCurrent)))
}

// NavigateBack dispatches a single navigateBack intent.
func (st *Store) NavigateBack(ctx context.Context) (state.Outcome, error) {
	return st.Dispatch(ctx, intent.NewBatch(intent.NavigateBack()))
}

// PopUpTo dispatches a single popUpTo intent.
func (st *Store) PopUpTo(ctx context.Context, route string, inclusive bool) (state.Outcome, error) {
	return st.Dispatch(ctx, intent.NewBatch(intent.PopUpTo(route, inclusive)))
}

// DismissModals dispatches a single dismissModals intent.
func (st *Store) DismissModals(ctx context.Context) (state.Outcome, error) {
	return st.Dispatch(ctx, intent.NewBatch(intent.DismissModals()))
}

// StartGuidedFlow resolves flowID's first step via the flow engine and
// dispatches the resulting batch.
func (st *Store) StartGuidedFlow(ctx context.Context, flowID string, params state.Params) (state.Outcome, error) {
	batch, err := st.flows.StartGuidedFlow(st.CurrentState(), flowID, params)
	if err != nil {
		return state.Outcome{}, err
	}
	return st.Dispatch(ctx, batch)
}

// NextStep advances flowID's active guided flow by one step, or invokes its
// on-complete callback and tears the flow down on its final step.
func (st *Store) NextStep(ctx context.Context, flowID string, params state.Params) (state.Outcome, error) {
	current := st.CurrentState()
	batch, err := st.flows.NextStep(ctx, st, current, flowID, params)
	if err != nil {
		return state.Outcome{}, err
	}
	wasFinal := current.ActiveGuidedFlow != nil && current.ActiveGuidedFlow.CurrentStep >= current.ActiveGuidedFlow.TotalSteps-1
	outcome, err := st.Dispatch(ctx, batch)
	if err == nil && wasFinal {
		st.metrics.ObserveGuidedFlowCompletion(flowID)
	}
	return outcome, err
}

// PreviousStep rewinds flowID's active guided flow by one step, or exits it
// from step 0.
func (st *Store) PreviousStep(ctx context.Context, flowID string) (state.Outcome, error) {
	batch, err := st.flows.PreviousStep(st.CurrentState(), flowID)
	if err != nil {
		return state.Outcome{}, err
	}
	return st.Dispatch(ctx, batch)
}

// Flows exposes the guided-flow engine so callers can build
// StartGuidedFlow/NextStep/etc batches against the store's current state
// before dispatching them.
func (st *Store) Flows() *flow.Engine {
	return st.flows
}

// Tracker exposes the lifecycle tracker so hosts can register
// onCreated/onRemoved hooks before the first Dispatch.
func (st *Store) Tracker() *lifecycle.Tracker {
	return st.tracker
}
