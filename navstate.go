// Package navstate provides a declarative, state-machine-based navigation
// engine for terminal front-ends built on Bubble Tea.
//
// It models navigation as a single-writer transaction pipeline: a
// declarative graph.Table resolves route strings to destinations, a guard
// chain may allow, reject, or redirect a navigation before it ever reaches
// the reducer, and a pure reduce.Reduce function folds an intent.Batch
// onto a state.State snapshot to produce the next one.
//
// # Quick Start
//
//	import "github.com/tuicore/navstate"
//
//	tables, _ := navstate.Build(&navstate.Spec{
//	    ID:    "root",
//	    Entry: navstate.EntrySpec{DestinationName: "home"},
//	    Destinations: []*navstate.Destination{
//	        {Name: "home", Route: "home"},
//	        {Name: "profile", Route: "profile"},
//	    },
//	})
//	st, _ := navstate.New(tables)
//	outcome, _ := st.NavigateTo(context.Background(), "profile", navstate.Params{}, false)
//
// # Subpackages
//
// For the guided-flow sub-engine, telemetry wiring, and spam middleware,
// import the subpackages directly:
//
//	import "github.com/tuicore/navstate/pkg/navstate/flow"
//	import "github.com/tuicore/navstate/pkg/navstate/telemetry"
//	import "github.com/tuicore/navstate/pkg/navstate/middleware"
package navstate

import (
	"github.com/tuicore/navstate/pkg/navstate/graph"
	"github.com/tuicore/navstate/pkg/navstate/intent"
	"github.com/tuicore/navstate/pkg/navstate/state"
	"github.com/tuicore/navstate/pkg/navstate/store"
)

// =============================================================================
// Graph model - re-exported for convenient access
// =============================================================================

// Spec is the declarative, pre-build description of one graph.
type Spec = graph.Spec

// EntrySpec names what a graph's entry resolves to.
type EntrySpec = graph.EntrySpec

// Destination is a screen or modal: the atomic target of navigation.
type Destination = graph.Destination

// Table is the immutable, precomputed routing table produced by Build.
type Table = graph.Table

// Layer is the z-order tier a Destination renders in.
type Layer = graph.Layer

const (
	LayerContent       = graph.LayerContent
	LayerGlobalOverlay = graph.LayerGlobalOverlay
	LayerSystem        = graph.LayerSystem
)

// Build walks a Spec tree and precomputes the routing Table it describes.
func Build(root *Spec) (*Table, error) {
	return graph.Build(root)
}

// =============================================================================
// State model - re-exported for convenient access
// =============================================================================

// State is the navigation engine's entire observable snapshot.
type State = state.State

// Entry is one back-stack entry.
type Entry = state.Entry

// Params is an ordered, immutable map of navigation parameters.
type Params = state.Params

// Outcome is the tagged result returned from a dispatched transaction.
type Outcome = state.Outcome

// PendingNavigation is a stored route+params awaiting resumption.
type PendingNavigation = state.PendingNavigation

// =============================================================================
// Intent DSL - re-exported for convenient access
// =============================================================================

// Batch is a closed set of intents committed to the reducer atomically.
type Batch = intent.Batch

// Intent is one tagged navigation mutation.
type Intent = intent.Intent

// =============================================================================
// Store - the engine's single writer
// =============================================================================

// Store is the engine's facade: resolver, reducer, guard runner,
// guided-flow engine, spam middleware and lifecycle tracker wired into one
// single-writer transaction loop.
type Store = store.Store

// Option configures a Store at construction time.
type Option = store.Option

// New builds a Store seeded at tables' root entry.
func New(tables *Table, opts ...Option) (*Store, error) {
	return store.New(tables, opts...)
}

// Re-export Store's functional options for convenient access without a
// separate subpackage import.
var (
	WithGuardRunner      = store.WithGuardRunner
	WithSpamGuard        = store.WithSpamGuard
	WithFlowRegistry     = store.WithFlowRegistry
	WithLifecycleTracker = store.WithLifecycleTracker
	WithErrorReporter    = store.WithErrorReporter
	WithMetrics          = store.WithMetrics
)
