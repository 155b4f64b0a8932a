package graph

// EntrySpec names what a graph's entry resolves to: either a destination
// declared directly in this graph's Destinations (by Name), or an alias to
// another graph id entirely — which may itself be an alias, forming a
// chain that must terminate at a concrete Destination (data model
// invariant, spec §3's Graph row).
type EntrySpec struct {
	// DestinationName, when set, names an entry in this graph's
	// Destinations slice.
	DestinationName string
	// GraphAlias, when set, names another graph id whose own entry (after
	// resolving its alias chain, if any) becomes this graph's effective
	// entry.
	GraphAlias string
}

// IsAlias reports whether this entry points at another graph rather than a
// destination declared locally.
func (e EntrySpec) IsAlias() bool { return e.GraphAlias != "" }

// Spec is the declarative, pre-build description of one graph: its id,
// entry, destinations, child graphs and optional interceptor. Callers build
// a tree of Specs and hand the root to Build.
//
// Grounded on router/nested.go's Child(path, opts...)-built RouteRecord
// tree, generalized from "nested routes under one root" to "a forest of
// named graphs connected by entries and aliases".
type Spec struct {
	ID           string
	Entry        EntrySpec
	Destinations []*Destination
	Graphs       []*Spec
	// Guard, if set, intercepts every navigation into this graph's
	// subtree (its own destinations and all descendant graphs) unless a
	// more specific interceptor further down overrides it.
	Guard GuardFunc
}

// Graph is the built, immutable counterpart of Spec: destinations and
// child graphs are indexed by name/id for O(1) lookup, mirroring
// router/registry.go's byName/byPath maps.
type Graph struct {
	ID           string
	ParentID     string
	Entry        EntrySpec
	Destinations map[string]*Destination
	// DestinationOrder preserves declaration order for deterministic
	// diagnostics (available-routes listings, etc).
	DestinationOrder []*Destination
	Graphs           map[string]*Graph
	GraphOrder       []*Graph
	Guard            GuardFunc
}

// AliasResolution is the precomputed terminal of a graph-alias chain: the
// graph id that declares the chain's terminal entry, and the Destination
// that entry ultimately is.
type AliasResolution struct {
	TerminalGraphID string
	TerminalDestination *Destination
}
