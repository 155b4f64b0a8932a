package lifecycle

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tuicore/navstate/pkg/navstate/graph"
	"github.com/tuicore/navstate/pkg/navstate/state"
)

func entryWithID(id string) *state.Entry {
	e := state.NewEntry(&graph.Destination{Name: id}, state.Params{}, "root")
	e.ID = id
	return e
}

func stateWithEntries(ids ...string) *state.State {
	entries := make([]*state.Entry, len(ids))
	for i, id := range ids {
		entries[i] = entryWithID(id)
	}
	return &state.State{BackStack: entries}
}

func TestDiffFiresCreatedForNewPush(t *testing.T) {
	tr := NewTracker()
	var created []string
	tr.OnCreated(func(e *state.Entry) { created = append(created, e.ID) })

	tr.Diff(stateWithEntries("home"), stateWithEntries("home", "profile"))
	assert.Equal(t, []string{"profile"}, created)
}

func TestDiffFiresRemovedForPop(t *testing.T) {
	tr := NewTracker()
	var removed []string
	tr.OnRemoved(func(e *state.Entry) { removed = append(removed, e.ID) })

	tr.Diff(stateWithEntries("home", "profile"), stateWithEntries("home"))
	assert.Equal(t, []string{"profile"}, removed)
}

func TestDiffIgnoresEntriesThatMerelyMovedPosition(t *testing.T) {
	tr := NewTracker()
	var events []string
	tr.OnCreated(func(e *state.Entry) { events = append(events, "created:"+e.ID) })
	tr.OnRemoved(func(e *state.Entry) { events = append(events, "removed:"+e.ID) })

	same := stateWithEntries("home", "profile")
	tr.Diff(same, same)
	assert.Empty(t, events)
}

func TestDiffInvokesDestinationOwnOnCreatedHook(t *testing.T) {
	var seenID string
	var seenParams map[string]interface{}
	dest := &graph.Destination{Name: "profile", OnCreated: func(entryID string, params map[string]interface{}) {
		seenID = entryID
		seenParams = params
	}}
	entry := state.NewEntry(dest, state.Params{}, "root")
	entry.Params.Set("userID", "42")

	prev := &state.State{BackStack: []*state.Entry{entryWithID("home")}}
	next := &state.State{BackStack: []*state.Entry{entryWithID("home"), entry}}

	NewTracker().Diff(prev, next)
	assert.Equal(t, entry.ID, seenID)
	assert.Equal(t, "42", seenParams["userID"])
}

func TestDiffOnFullResetFiresAllRemovedThenAllCreated(t *testing.T) {
	tr := NewTracker()
	var order []string
	tr.OnRemoved(func(e *state.Entry) { order = append(order, "removed:"+e.ID) })
	tr.OnCreated(func(e *state.Entry) { order = append(order, "created:"+e.ID) })

	prev := stateWithEntries("home", "profile", "settings")
	next := stateWithEntries("onboarding")
	tr.Diff(prev, next)

	require := func(cond bool) {
		if !cond {
			t.Fatalf("unexpected order: %v", order)
		}
	}
	require(len(order) == 4)
	createdIdx := -1
	for i, ev := range order {
		if ev == "created:onboarding" {
			createdIdx = i
		}
	}
	require(createdIdx == 3)
}
