package reduce

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuicore/navstate/pkg/navstate/graph"
	"github.com/tuicore/navstate/pkg/navstate/intent"
	"github.com/tuicore/navstate/pkg/navstate/state"
)

func buildE1Table(t *testing.T) *graph.Table {
	t.Helper()
	home := &graph.Destination{Name: "home", Route: "home"}
	profile := &graph.Destination{Name: "profile", Route: "profile", Enter: "SlideInRight", Exit: "SlideOutLeft"}

	root := &graph.Spec{
		ID:           "root",
		Entry:        graph.EntrySpec{DestinationName: "home"},
		Destinations: []*graph.Destination{home, profile},
	}
	table, err := graph.Build(root)
	require.NoError(t, err)
	return table
}

// E1: Navigate(home→profile). Success, current=profile.
func TestReduceNavigateToPushesNewEntry(t *testing.T) {
	tables := buildE1Table(t)
	s, err := state.New(tables)
	require.NoError(t, err)
	require.Equal(t, "home", s.Current().Destination.Name)

	next, outcome, err := Reduce(s, intent.NewBatch(intent.NavigateTo("profile", state.Params{}, false)), tables)
	require.NoError(t, err)
	assert.Equal(t, state.OutcomeSuccess, outcome.Kind)
	assert.Equal(t, "profile", next.Current().Destination.Name)
	assert.Equal(t, 2, next.NavigationDepth())
	assert.Equal(t, state.TransitionAnimating, next.TransitionState)

	// original state untouched (pure function).
	assert.Equal(t, "home", s.Current().Destination.Name)
	assert.Equal(t, 1, s.NavigationDepth())
}

func buildE2Table(t *testing.T) *graph.Table {
	t.Helper()
	splash := &graph.Destination{Name: "splash", Route: "splash"}
	overview := &graph.Destination{Name: "overview", Route: "overview"}

	root := &graph.Spec{
		ID:           "root",
		Entry:        graph.EntrySpec{DestinationName: "splash"},
		Destinations: []*graph.Destination{splash},
		Graphs: []*graph.Spec{
			{ID: "home", Entry: graph.EntrySpec{GraphAlias: "news"}},
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

// E2: Navigate("home") resolves through the graph-alias chain to
// news/overview.
func TestReduceNavigateToGraphAliasChain(t *testing.T) {
	tables := buildE2Table(t)
	s, err := state.New(tables)
	require.NoError(t, err)

	next, _, err := Reduce(s, intent.NewBatch(intent.NavigateTo("home", state.Params{}, false)), tables)
	require.NoError(t, err)
	assert.Equal(t, "overview", next.Current().Destination.Name)
	assert.Equal(t, "news", next.Current().EffectiveGraphID)
	assert.Equal(t, 2, next.NavigationDepth())
}

func buildE6Table(t *testing.T) *graph.Table {
	t.Helper()
	home := &graph.Destination{Name: "home", Route: "home"}
	videos := &graph.Destination{Name: "videos", Route: "videos"}
	notification := &graph.Destination{Name: "notification", Route: "notification", Layer: graph.LayerGlobalOverlay}

	root := &graph.Spec{
		ID:           "root",
		Entry:        graph.EntrySpec{DestinationName: "home"},
		Destinations: []*graph.Destination{home, videos, notification},
	}
	table, err := graph.Build(root)
	require.NoError(t, err)
	return table
}

// E6: modal over "home", navigate to "videos" (closing the modal),
// navigateBack restores the modal with underlyingScreen="home".
func TestReduceModalCloseAndRestoreOnBack(t *testing.T) {
	tables := buildE6Table(t)
	s, err := state.New(tables)
	require.NoError(t, err)

	afterModal, _, err := Reduce(s, intent.NewBatch(intent.NavigateTo("notification", state.Params{}, false)), tables)
	require.NoError(t, err)
	require.True(t, afterModal.Current().IsModal())
	require.Len(t, afterModal.ModalContexts, 1)
	homeEntryID := afterModal.ModalContexts[0].UnderlyingEntryID
	assert.Equal(t, afterModal.BackStack[0].ID, homeEntryID)

	afterVideos, _, err := Reduce(afterModal, intent.NewBatch(intent.NavigateTo("videos", state.Params{}, false)), tables)
	require.NoError(t, err)
	assert.Equal(t, "videos", afterVideos.Current().Destination.Name)
	assert.Equal(t, 2, afterVideos.NavigationDepth(), "modal entry is popped, not stacked under videos")

	afterBack, _, err := Reduce(afterVideos, intent.NewBatch(intent.NavigateBack()), tables)
	require.NoError(t, err)
	assert.Equal(t, "notification", afterBack.Current().Destination.Name)
	assert.True(t, afterBack.Current().IsModal())
}

// E6 variant: dismissModals issued alongside the navigate-to-videos batch
// means navigateBack does not restore the modal.
func TestReduceDismissModalsPreventsRestoration(t *testing.T) {
	tables := buildE6Table(t)
	s, err := state.New(tables)
	require.NoError(t, err)

	afterModal, _, err := Reduce(s, intent.NewBatch(intent.NavigateTo("notification", state.Params{}, false)), tables)
	require.NoError(t, err)

	afterVideos, _, err := Reduce(afterModal, intent.NewBatch(
		intent.NavigateTo("videos", state.Params{}, false),
		intent.DismissModals(),
	), tables)
	require.NoError(t, err)
	assert.Empty(t, afterVideos.ModalContexts)

	afterBack, _, err := Reduce(afterVideos, intent.NewBatch(intent.NavigateBack()), tables)
	require.NoError(t, err)
	assert.Equal(t, "home", afterBack.Current().Destination.Name)
	assert.False(t, afterBack.Current().IsModal())
	assert.Empty(t, afterBack.ModalContexts)
}

func TestReducePopUpToRemovesEntriesAboveMatch(t *testing.T) {
	tables := buildE6Table(t)
	s, err := state.New(tables)
	require.NoError(t, err)

	s2, _, err := Reduce(s, intent.NewBatch(intent.NavigateTo("videos", state.Params{}, false)), tables)
	require.NoError(t, err)
	s3, _, err := Reduce(s2, intent.NewBatch(intent.NavigateTo("notification", state.Params{}, false)), tables)
	require.NoError(t, err)
	require.Equal(t, 3, s3.NavigationDepth())

	popped, _, err := Reduce(s3, intent.NewBatch(intent.PopUpTo("home", false)), tables)
	require.NoError(t, err)
	assert.Equal(t, 1, popped.NavigationDepth())
	assert.Equal(t, "home", popped.Current().Destination.Name)
}

func TestReducePopUpToUnknownRouteFails(t *testing.T) {
	tables := buildE6Table(t)
	s, err := state.New(tables)
	require.NoError(t, err)

	_, _, err = Reduce(s, intent.NewBatch(intent.PopUpTo("nowhere", false)), tables)
	require.Error(t, err)
}

func TestReduceClearBackStackRequiresExactlyOnePush(t *testing.T) {
	tables := buildE6Table(t)
	s, err := state.New(tables)
	require.NoError(t, err)

	_, _, err = Reduce(s, intent.NewBatch(intent.ClearBackStack()), tables)
	require.Error(t, err)

	cleared, _, err := Reduce(s, intent.NewBatch(intent.ClearBackStack(), intent.NavigateTo("videos", state.Params{}, false)), tables)
	require.NoError(t, err)
	assert.Equal(t, 1, cleared.NavigationDepth())
	assert.Equal(t, "videos", cleared.Current().Destination.Name)
}
