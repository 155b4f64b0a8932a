package graph

import (
	"fmt"
	"strings"
)

// Table is the immutable, precomputed routing table produced once at
// module build time and shared by reference thereafter (spec §3
// "Ownership": "routing data is immutable after module construction").
//
// Grounded on router/registry.go's RouteRegistry byName/byPath indexes,
// generalized to the five precomputed indexes spec §4.2 names.
type Table struct {
	Root   *Graph
	Graphs map[string]*Graph

	// RouteIndex maps a canonical full path (graph/.../destRoute, template
	// markers included verbatim) to the Destination it names.
	RouteIndex map[string]*Destination
	// DestinationToFullPath is RouteIndex's reverse index, used by
	// object-based navigation to recover a canonical path.
	DestinationToFullPath map[*Destination]string
	// DestinationToGraph names the graph each Destination was declared in.
	DestinationToGraph map[*Destination]string
	// GraphHierarchies lists, for each graph id, its ancestor chain
	// root-first (GraphHierarchies["news"] == []string{"root", "news"}).
	GraphHierarchies map[string][]string
	// GraphAliasResolution holds the precomputed terminal for every graph
	// whose Entry is itself a graph alias.
	GraphAliasResolution map[string]AliasResolution
}

// EffectiveGuard returns the guard that intercepts navigation into
// graphID, inherited from the nearest ancestor (including graphID itself)
// that declares one, or nil if none of them do.
func (t *Table) EffectiveGuard(graphID string) GuardFunc {
	chain := t.GraphHierarchies[graphID]
	for i := len(chain) - 1; i >= 0; i-- {
		if g, ok := t.Graphs[chain[i]]; ok && g.Guard != nil {
			return g.Guard
		}
	}
	return nil
}

// Build walks root and its descendants, validating structure and
// precomputing every index Table exposes. Alias-chain cycles are detected
// by DFS over a recursion stack and fail the build with
// InvalidConfiguration, per spec §4.2.
func Build(root *Spec) (*Table, error) {
	if root == nil {
		return nil, NewInvalidConfigurationError("graph: root spec is nil", nil)
	}

	t := &Table{
		Graphs:                make(map[string]*Graph),
		RouteIndex:            make(map[string]*Destination),
		DestinationToFullPath: make(map[*Destination]string),
		DestinationToGraph:    make(map[*Destination]string),
		GraphHierarchies:      make(map[string][]string),
		GraphAliasResolution:  make(map[string]AliasResolution),
	}

	built, err := buildGraph(root, "", nil, t)
	if err != nil {
		return nil, err
	}
	t.Root = built

	for id, spec := range specIndex(root) {
		if !spec.Entry.IsAlias() {
			continue
		}
		resolution, err := resolveAlias(id, t, make(map[string]bool))
		if err != nil {
			return nil, err
		}
		t.GraphAliasResolution[id] = resolution
	}

	return t, nil
}

// buildGraph recursively converts a Spec tree into a Graph tree, indexing
// every destination and child graph as it goes.
func buildGraph(spec *Spec, parentID string, ancestors []string, t *Table) (*Graph, error) {
	if spec.ID == "" {
		return nil, NewInvalidConfigurationError("graph: graph has empty id", nil)
	}
	if _, dup := t.Graphs[spec.ID]; dup {
		return nil, NewInvalidConfigurationError(fmt.Sprintf("graph: duplicate graph id %q", spec.ID), nil)
	}

	chain := append(append([]string{}, ancestors...), spec.ID)
	t.GraphHierarchies[spec.ID] = chain

	g := &Graph{
		ID:           spec.ID,
		ParentID:     parentID,
		Entry:        spec.Entry,
		Destinations: make(map[string]*Destination),
		Graphs:       make(map[string]*Graph),
		Guard:        spec.Guard,
	}
	t.Graphs[spec.ID] = g

	for _, d := range spec.Destinations {
		if err := d.validate(); err != nil {
			return nil, NewInvalidConfigurationError(err.Error(), err)
		}
		if _, dup := g.Destinations[d.Name]; dup {
			return nil, NewInvalidConfigurationError(
				fmt.Sprintf("graph: duplicate destination name %q in graph %q", d.Name, spec.ID), nil)
		}
		g.Destinations[d.Name] = d
		g.DestinationOrder = append(g.DestinationOrder, d)

		fullPath := joinPath(chain, d.Route)
		t.RouteIndex[fullPath] = d
		t.DestinationToFullPath[d] = fullPath
		t.DestinationToGraph[d] = spec.ID
	}

	if !spec.Entry.IsAlias() {
		if spec.Entry.DestinationName == "" {
			return nil, NewInvalidConfigurationError(
				fmt.Sprintf("graph: graph %q has no entry destination or alias", spec.ID), nil)
		}
		if _, ok := g.Destinations[spec.Entry.DestinationName]; !ok {
			return nil, NewInvalidConfigurationError(
				fmt.Sprintf("graph: graph %q entry destination %q not declared", spec.ID, spec.Entry.DestinationName), nil)
		}
	}

	for _, childSpec := range spec.Graphs {
		child, err := buildGraph(childSpec, spec.ID, chain, t)
		if err != nil {
			return nil, err
		}
		g.Graphs[child.ID] = child
		g.GraphOrder = append(g.GraphOrder, child)
	}

	return g, nil
}

// joinPath builds the canonical "graph/.../destRoute" path from a graph's
// ancestor chain and a destination's route template.
func joinPath(chain []string, route string) string {
	return strings.Join(chain, "/") + "/" + route
}

// specIndex flattens a Spec tree into a flat id→spec map for the alias
// resolution pass, which needs random access across the whole forest (an
// alias may point at any graph id, not just a sibling).
func specIndex(root *Spec) map[string]*Spec {
	out := make(map[string]*Spec)
	var walk func(s *Spec)
	walk = func(s *Spec) {
		out[s.ID] = s
		for _, c := range s.Graphs {
			walk(c)
		}
	}
	walk(root)
	return out
}

// resolveAlias walks a graph-alias chain to its terminal Destination,
// detecting cycles with a recursion-stack set (design note §9).
func resolveAlias(graphID string, t *Table, visiting map[string]bool) (AliasResolution, error) {
	if cached, ok := t.GraphAliasResolution[graphID]; ok {
		return cached, nil
	}
	if visiting[graphID] {
		return AliasResolution{}, NewInvalidConfigurationError(
			fmt.Sprintf("graph: cycle detected in graph-alias chain at %q", graphID), nil)
	}
	visiting[graphID] = true

	g, ok := t.Graphs[graphID]
	if !ok {
		return AliasResolution{}, NewInvalidConfigurationError(
			fmt.Sprintf("graph: alias references unknown graph %q", graphID), nil)
	}

	if !g.Entry.IsAlias() {
		dest, ok := g.Destinations[g.Entry.DestinationName]
		if !ok {
			return AliasResolution{}, NewInvalidConfigurationError(
				fmt.Sprintf("graph: graph %q entry destination %q not declared", graphID, g.Entry.DestinationName), nil)
		}
		return AliasResolution{TerminalGraphID: graphID, TerminalDestination: dest}, nil
	}

	resolution, err := resolveAlias(g.Entry.GraphAlias, t, visiting)
	if err != nil {
		return AliasResolution{}, err
	}
	return resolution, nil
}
