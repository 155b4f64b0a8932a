// Package graph implements the immutable graph model and precomputed
// routing table described by the navigation engine's spec §4.2: a tree of
// named graphs, each with an entry, a set of destinations, optional child
// graphs, and an optional guard interceptor.
//
// Grounded on router/registry.go's RouteRegistry (byName/byPath indexes
// built once at startup) and router/nested.go's Child/RouteOption tree
// builder, generalized from a single flat route tree to a forest of named
// graphs connected by alias chains.
package graph

import "fmt"

// Layer is the z-order tier a Destination renders in. The ordering itself
// (CONTENT < GLOBAL_OVERLAY < SYSTEM) is a decision the rendering layer
// consumes; navstate only hands out the tier and, within GLOBAL_OVERLAY,
// the elevation to break ties.
type Layer int

const (
	// LayerContent is the default tier for ordinary screens.
	LayerContent Layer = iota
	// LayerGlobalOverlay is the tier for modals; sorted by ascending Elevation.
	LayerGlobalOverlay
	// LayerSystem is reserved for host-injected system surfaces (always on top).
	LayerSystem
)

// TransitionRef is an opaque reference to a transition spec the rendering
// layer owns the meaning of (e.g. "SlideInRight"). navstate never
// interprets it beyond presence/absence.
type TransitionRef string

// OnCreatedHook fires when a NavigationEntry for this Destination is first
// pushed onto the back-stack. entryID is the entry's stable identity and
// params is the entry's merged, immutable parameter set.
type OnCreatedHook func(entryID string, params map[string]interface{})

// Destination is a screen or modal: the atomic target of navigation.
//
// Route may contain "{name}" path-param markers (e.g. "user/{id}"). Two
// Destinations may share a Route as long as they are declared in different
// graphs — disambiguation happens by graph, never by Route alone.
type Destination struct {
	// Name is the destination's local identifier within its declaring
	// graph. It never stands in for Route: Build rejects a Destination
	// whose Route is empty.
	Name string
	// Route is the route template, relative to the declaring graph.
	Route string
	Layer Layer
	Enter TransitionRef
	Exit  TransitionRef
	// Elevation breaks ties between simultaneously open GLOBAL_OVERLAY
	// entries; within that layer, modals sort ascending by Elevation.
	Elevation    float64
	RequiresAuth bool
	OnCreated    OnCreatedHook
}

// ShouldExitBeOnTop derives the z-index policy from design note §9: a
// destination with no enter transition but a defined exit transition keeps
// its exiting predecessor visually on top while it animates out.
func (d *Destination) ShouldExitBeOnTop() bool {
	return d.Enter == "" && d.Exit != ""
}

func (d *Destination) validate() error {
	if d.Name == "" {
		return fmt.Errorf("navstate/graph: destination has empty name")
	}
	if d.Route == "" {
		return fmt.Errorf("navstate/graph: destination %q has empty route", d.Name)
	}
	return nil
}
