package graph

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRoot() *Spec {
	home := &Destination{Name: "home", Route: "home"}
	profile := &Destination{Name: "profile", Route: "profile", Enter: "SlideInRight", Exit: "SlideOutLeft"}
	overview := &Destination{Name: "overview", Route: "overview"}
	splash := &Destination{Name: "splash", Route: "splash"}

	return &Spec{
		ID:           "root",
		Entry:        EntrySpec{DestinationName: "splash"},
		Destinations: []*Destination{splash, home, profile},
		Graphs: []*Spec{
			{
				ID:           "news",
				Entry:        EntrySpec{DestinationName: "overview"},
				Destinations: []*Destination{overview},
			},
		},
	}
}

func TestBuildBasicTable(t *testing.T) {
	table, err := Build(sampleRoot())
	require.NoError(t, err)

	assert.Equal(t, "root", table.Root.ID)
	assert.Len(t, table.Graphs, 2)

	home := table.Graphs["root"].Destinations["home"]
	require.NotNil(t, home)
	assert.Equal(t, "root/home", table.DestinationToFullPath[home])
	assert.Equal(t, "root", table.DestinationToGraph[home])

	overview := table.Graphs["news"].Destinations["overview"]
	require.NotNil(t, overview)
	assert.Equal(t, "root/news/overview", table.DestinationToFullPath[overview])
	assert.Equal(t, []string{"root", "news"}, table.GraphHierarchies["news"])
}

// E2: a graph whose entry is an alias to another graph resolves through
// the chain to that graph's own entry destination.
func TestBuildResolvesGraphAliasChain(t *testing.T) {
	splash := &Destination{Name: "splash", Route: "splash"}
	overview := &Destination{Name: "overview", Route: "overview"}

	root := &Spec{
		ID:           "root",
		Entry:        EntrySpec{GraphAlias: "home"},
		Destinations: []*Destination{splash},
		Graphs: []*Spec{
			{ID: "home", Entry: EntrySpec{GraphAlias: "news"}},
			{
				ID:           "news",
				Entry:        EntrySpec{DestinationName: "overview"},
				Destinations: []*Destination{overview},
			},
		},
	}

	table, err := Build(root)
	require.NoError(t, err)

	resolution, ok := table.GraphAliasResolution["root"]
	require.True(t, ok)
	assert.Equal(t, "news", resolution.TerminalGraphID)
	assert.Same(t, overview, resolution.TerminalDestination)

	resolution, ok = table.GraphAliasResolution["home"]
	require.True(t, ok)
	assert.Equal(t, "news", resolution.TerminalGraphID)
}

func TestBuildDetectsAliasCycle(t *testing.T) {
	root := &Spec{
		ID:    "root",
		Entry: EntrySpec{GraphAlias: "a"},
		Graphs: []*Spec{
			{ID: "a", Entry: EntrySpec{GraphAlias: "b"}},
			{ID: "b", Entry: EntrySpec{GraphAlias: "a"}},
		},
	}

	_, err := Build(root)
	require.Error(t, err)

	var gerr *Error
	require.ErrorAs(t, err, &gerr)
	assert.Equal(t, ErrCodeInvalidConfiguration, gerr.Code)
}

func TestBuildRejectsDuplicateDestinationName(t *testing.T) {
	root := &Spec{
		ID:    "root",
		Entry: EntrySpec{DestinationName: "home"},
		Destinations: []*Destination{
			{Name: "home", Route: "home"},
			{Name: "home", Route: "home2"},
		},
	}

	_, err := Build(root)
	require.Error(t, err)
}

func TestBuildRejectsMissingEntryDestination(t *testing.T) {
	root := &Spec{
		ID:    "root",
		Entry: EntrySpec{DestinationName: "ghost"},
	}

	_, err := Build(root)
	require.Error(t, err)
}

func TestEffectiveGuardInheritedFromAncestor(t *testing.T) {
	table, err := Build(sampleRootWithGuard())
	require.NoError(t, err)
	assert.NotNil(t, table.EffectiveGuard("news"))
	assert.NotNil(t, table.EffectiveGuard("root"))
}

func sampleRootWithGuard() *Spec {
	root := sampleRoot()
	root.Guard = func(ctx context.Context, to Target, from *Target) GuardResult {
		return Allow()
	}
	return root
}
