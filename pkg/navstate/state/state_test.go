package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuicore/navstate/pkg/navstate/graph"
)

func buildTable(t *testing.T) *graph.Table {
	t.Helper()
	splash := &graph.Destination{Name: "splash", Route: "splash"}
	overview := &graph.Destination{Name: "overview", Route: "overview"}

	root := &graph.Spec{
		ID:           "root",
		Entry:        graph.EntrySpec{GraphAlias: "news"},
		Destinations: []*graph.Destination{splash},
		Graphs: []*graph.Spec{
			{
				ID:           "news",
				Entry:        graph.EntrySpec{DestinationName: "overview"},
				Destinations: []*graph.Destination{overview},
			},
		},
	}

	table, err := graph.Build(root)
	require.NoError(t, err)
	return table
}

func TestNewSeedsStateFromAliasResolvedRootEntry(t *testing.T) {
	table := buildTable(t)
	s, err := New(table)
	require.NoError(t, err)

	require.Len(t, s.BackStack, 1)
	cur := s.Current()
	require.NotNil(t, cur)
	assert.Equal(t, "overview", cur.Destination.Name)
	assert.Equal(t, "news", cur.EffectiveGraphID)
	assert.Equal(t, TransitionIdle, s.TransitionState)
	assert.Equal(t, "root/news/overview", s.CurrentFullPath())
	assert.Equal(t, []string{"root", "news", "overview"}, s.CurrentPathSegments())
}

func TestCloneIsIndependentOfOriginal(t *testing.T) {
	table := buildTable(t)
	s, err := New(table)
	require.NoError(t, err)

	s.GuidedFlowModifications["flow-1"] = "marker"
	clone := s.Clone()

	clone.BackStack = append(clone.BackStack, &Entry{ID: "extra"})
	clone.GuidedFlowModifications["flow-2"] = "only-on-clone"

	assert.Len(t, s.BackStack, 1, "mutating the clone's back-stack must not affect the original")
	_, onOriginal := s.GuidedFlowModifications["flow-2"]
	assert.False(t, onOriginal)

	assert.Same(t, s.Tables, clone.Tables, "Tables is shared by reference, not cloned")
}

func TestNavigationDepthTracksBackStackLength(t *testing.T) {
	table := buildTable(t)
	s, err := New(table)
	require.NoError(t, err)
	assert.Equal(t, 1, s.NavigationDepth())

	s.BackStack = append(s.BackStack, &Entry{ID: "second", Destination: s.Current().Destination})
	assert.Equal(t, 2, s.NavigationDepth())
}

func TestGuidedFlowStateProgressAndFinalStep(t *testing.T) {
	f := &GuidedFlowState{CurrentStep: 0, TotalSteps: 3}
	assert.InDelta(t, 1.0/3.0, f.Progress(), 0.0001)
	assert.False(t, f.IsOnFinalStep())

	f.CurrentStep = 2
	assert.Equal(t, 1.0, f.Progress())
	assert.True(t, f.IsOnFinalStep())

	var nilFlow *GuidedFlowState
	assert.Equal(t, 0.0, nilFlow.Progress())
	assert.False(t, nilFlow.IsOnFinalStep())
}

func TestParamsMergePriorityLatestWriterWins(t *testing.T) {
	inherited := Params{}
	inherited.Set("workspaceId", "w1")
	inherited.Set("theme", "dark")

	pathParams := Params{}
	pathParams.Set("userId", "u42")

	explicit := Params{}
	explicit.Set("theme", "light")

	merged := MergeAll(inherited, pathParams, explicit)

	assert.Equal(t, "w1", merged.GetString("workspaceId"))
	assert.Equal(t, "u42", merged.GetString("userId"))
	assert.Equal(t, "light", merged.GetString("theme"), "explicit params win over inherited on collision")
	assert.Equal(t, []string{"workspaceId", "theme", "userId"}, merged.Keys())
}

func TestParamsCloneIsIndependent(t *testing.T) {
	p := Params{}
	p.Set("a", 1)
	clone := p.Clone()
	clone.Set("b", 2)

	assert.Equal(t, 1, p.Len())
	assert.Equal(t, 2, clone.Len())
	_, ok := p.Get("b")
	assert.False(t, ok)
}
