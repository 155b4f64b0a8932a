// Package resolve turns a route string into a fully resolved
// graph.Target: the Destination it names, the graph id it was effectively
// reached through, and any path params its "{name}" segments extracted.
//
// Grounded on router/matcher.go's RouteMatcher (tokenize, try children,
// extract params), generalized to the multi-graph, alias-aware algorithm
// spec §4.3 describes.
package resolve

import (
	"strings"

	"github.com/tuicore/navstate/pkg/navstate/graph"
)

// Resolver resolves route strings against a single, immutable graph.Table.
// It holds no mutable state and is safe for concurrent use.
type Resolver struct {
	table *graph.Table
}

// New builds a Resolver over table.
func New(table *graph.Table) *Resolver {
	return &Resolver{table: table}
}

func splitRoute(route string) []string {
	route = strings.Trim(route, "/")
	if route == "" {
		return nil
	}
	return strings.Split(route, "/")
}

// Resolve implements spec §4.3's four-step algorithm.
func (r *Resolver) Resolve(route string, preferredGraph string) (*graph.Target, error) {
	tokens := splitRoute(route)
	if len(tokens) == 0 {
		return nil, graph.NewRouteNotFoundError(route, r.availableRoutes())
	}

	var (
		dest      *graph.Destination
		effGraph  string
		params    map[string]string
		found     bool
	)

	if g, isGraph := r.table.Graphs[tokens[0]]; isGraph {
		rest := tokens[1:]
		if len(rest) == 0 {
			// Step 1: pure "graphId" form walks the alias chain (if any) to
			// its terminal entry — this is the "home → news/overview" case.
			resolution := r.terminalEntryOf(g)
			dest, effGraph, params, found = resolution.TerminalDestination, resolution.TerminalGraphID, map[string]string{}, resolution.TerminalDestination != nil
		} else {
			dest, effGraph, params, found = resolveTokens(g, rest)
		}
	} else {
		dest, effGraph, params, found = resolveTokens(r.table.Root, tokens)
	}

	if !found {
		return nil, graph.NewRouteNotFoundError(route, r.availableRoutes())
	}

	target := &graph.Target{Destination: dest, EffectiveGraphID: effGraph, Params: params}

	if preferredGraph != "" && !r.withinHierarchy(effGraph, preferredGraph) {
		err := graph.NewRouteNotFoundError(route, r.availableRoutes())
		err.Message = "route resolves outside preferred graph hierarchy: " + preferredGraph
		return nil, err
	}

	return target, nil
}

// terminalEntryOf follows g's alias chain (if any) to its concrete entry
// destination, using the table's precomputed resolution when g itself is
// an alias, or g's own entry destination otherwise.
func (r *Resolver) terminalEntryOf(g *graph.Graph) graph.AliasResolution {
	if resolution, ok := r.table.GraphAliasResolution[g.ID]; ok {
		return resolution
	}
	return graph.AliasResolution{
		TerminalGraphID:     g.ID,
		TerminalDestination: g.Destinations[g.Entry.DestinationName],
	}
}

// resolveTokens matches tokens against g's child graphs first, then its
// destinations (spec §4.3 step 2), recursing into a child graph when the
// leading token names one.
func resolveTokens(g *graph.Graph, tokens []string) (*graph.Destination, string, map[string]string, bool) {
	if len(tokens) == 0 {
		return nil, "", nil, false
	}

	if child, ok := g.Graphs[tokens[0]]; ok {
		if len(tokens) == 1 {
			return nil, "", nil, false
		}
		return resolveTokens(child, tokens[1:])
	}

	for _, d := range g.DestinationOrder {
		templateTokens := strings.Split(d.Route, "/")
		if len(templateTokens) != len(tokens) {
			continue
		}
		if params, ok := matchTemplate(templateTokens, tokens); ok {
			return d, g.ID, params, true
		}
	}

	return nil, "", nil, false
}

// matchTemplate compares a destination's route template tokens against a
// resolved path's literal tokens. A "{name}" template token consumes
// exactly one literal token and contributes name→token to the result.
func matchTemplate(templateTokens, tokens []string) (map[string]string, bool) {
	params := make(map[string]string)
	for i, tt := range templateTokens {
		if strings.HasPrefix(tt, "{") && strings.HasSuffix(tt, "}") {
			name := tt[1 : len(tt)-1]
			params[name] = tokens[i]
			continue
		}
		if tt != tokens[i] {
			return nil, false
		}
	}
	return params, true
}

// withinHierarchy reports whether graphID's ancestor chain contains
// preferred (spec §4.3 step 4's disambiguation-by-hierarchy rule).
func (r *Resolver) withinHierarchy(graphID, preferred string) bool {
	for _, ancestor := range r.table.GraphHierarchies[graphID] {
		if ancestor == preferred {
			return true
		}
	}
	return false
}

// availableRoutes lists every destination's canonical full path, for
// RouteNotFound diagnostics.
func (r *Resolver) availableRoutes() []string {
	out := make([]string, 0, len(r.table.RouteIndex))
	for path := range r.table.RouteIndex {
		out = append(out, path)
	}
	return out
}
