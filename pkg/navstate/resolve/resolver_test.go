package resolve

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuicore/navstate/pkg/navstate/graph"
)

func buildSampleTable(t *testing.T) *graph.Table {
	t.Helper()

	splash := &graph.Destination{Name: "splash", Route: "splash"}
	profile := &graph.Destination{Name: "profile", Route: "profile"}
	overview := &graph.Destination{Name: "overview", Route: "overview"}
	invite := &graph.Destination{Name: "invite", Route: "invite/{token}"}

	root := &graph.Spec{
		ID:           "root",
		Entry:        graph.EntrySpec{DestinationName: "splash"},
		Destinations: []*graph.Destination{splash, profile},
		Graphs: []*graph.Spec{
			{ID: "home", Entry: graph.EntrySpec{GraphAlias: "news"}},
			{
				ID:           "news",
				Entry:        graph.EntrySpec{DestinationName: "overview"},
				Destinations: []*graph.Destination{overview},
			},
			{
				ID:           "workspace",
				Entry:        graph.EntrySpec{DestinationName: "invite"},
				Destinations: []*graph.Destination{invite},
			},
		},
	}

	table, err := graph.Build(root)
	require.NoError(t, err)
	return table
}

// E1: a bare destination name resolves within the root graph.
func TestResolveBareRouteInRootGraph(t *testing.T) {
	r := New(buildSampleTable(t))
	target, err := r.Resolve("profile", "")
	require.NoError(t, err)
	assert.Equal(t, "profile", target.Destination.Name)
	assert.Equal(t, "root", target.EffectiveGraphID)
}

// E2: a pure "graphId" route walks the alias chain to its terminal entry.
func TestResolveGraphAliasForm(t *testing.T) {
	r := New(buildSampleTable(t))
	target, err := r.Resolve("home", "")
	require.NoError(t, err)
	assert.Equal(t, "overview", target.Destination.Name)
	assert.Equal(t, "news", target.EffectiveGraphID)
}

// E4: "graph/route/{param}" extracts the param value from its token.
func TestResolveGraphSubRouteWithParam(t *testing.T) {
	r := New(buildSampleTable(t))
	target, err := r.Resolve("workspace/invite/XYZ789", "")
	require.NoError(t, err)
	assert.Equal(t, "invite", target.Destination.Name)
	assert.Equal(t, "XYZ789", target.Params["token"])
}

func TestResolveUnknownRouteFails(t *testing.T) {
	r := New(buildSampleTable(t))
	_, err := r.Resolve("nowhere", "")
	require.Error(t, err)
	var gerr *graph.Error
	require.ErrorAs(t, err, &gerr)
	assert.Equal(t, graph.ErrCodeRouteNotFound, gerr.Code)
}

func TestResolveRejectsRouteOutsidePreferredHierarchy(t *testing.T) {
	r := New(buildSampleTable(t))
	_, err := r.Resolve("profile", "news")
	require.Error(t, err)
}

func TestResolveAllowsRouteWithinPreferredHierarchy(t *testing.T) {
	r := New(buildSampleTable(t))
	target, err := r.Resolve("news/overview", "news")
	require.NoError(t, err)
	assert.Equal(t, "overview", target.Destination.Name)
}
