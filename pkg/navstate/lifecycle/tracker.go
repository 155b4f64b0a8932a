// Package lifecycle diffs consecutive State snapshots by NavigationEntry
// identity and fires onCreated/onRemoved hooks for the entries that
// appeared or disappeared — the navigation-engine counterpart of a
// component's mount/unmount hooks.
//
// Grounded on pkg/core's component mount/unmount bookkeeping and
// lifecycle.go's ordered, registration-order hook execution, generalized
// from a single component tree to a back-stack of NavigationEntries
// compared by ID across two State snapshots.
package lifecycle

import "github.com/tuicore/navstate/pkg/navstate/state"

// CreatedHook fires once per NavigationEntry that exists in the new
// snapshot but not the old one.
type CreatedHook func(entry *state.Entry)

// RemovedHook fires once per NavigationEntry that existed in the old
// snapshot but not the new one.
type RemovedHook func(entry *state.Entry)

// Tracker owns the registered hooks and runs Diff after every committed
// transaction.
type Tracker struct {
	onCreated []CreatedHook
	onRemoved []RemovedHook
}

// NewTracker builds an empty Tracker.
func NewTracker() *Tracker {
	return &Tracker{}
}

// OnCreated registers hook to run, in registration order, for every entry
// created by a transaction.
func (t *Tracker) OnCreated(hook CreatedHook) {
	t.onCreated = append(t.onCreated, hook)
}

// OnRemoved registers hook to run, in registration order, for every entry
// removed by a transaction.
func (t *Tracker) OnRemoved(hook RemovedHook) {
	t.onRemoved = append(t.onRemoved, hook)
}

// Diff compares prev and next by NavigationEntry ID and fires onRemoved for
// every entry present in prev but absent from next, then onCreated for
// every entry present in next but absent from prev — removals always fire
// before creations, so a full back-stack reset (clearBackStack) looks like
// "every old entry removed, then the one new entry created" rather than an
// interleaved sequence (spec §4.8's lifecycle-hook ordering).
//
// Entries are compared by ID, not pointer or position: an entry that
// merely changed StackPosition (a push/pop elsewhere in the stack) is
// neither created nor removed.
func (t *Tracker) Diff(prev, next *state.State) {
	prevByID := indexEntries(prev)
	nextByID := indexEntries(next)

	for id, entry := range prevByID {
		if _, ok := nextByID[id]; !ok {
			t.fireRemoved(entry)
		}
	}
	for _, entry := range allEntries(next) {
		if _, ok := prevByID[entry.ID]; !ok {
			t.fireCreated(entry)
		}
	}
}

func (t *Tracker) fireRemoved(entry *state.Entry) {
	for _, hook := range t.onRemoved {
		hook(entry)
	}
}

func (t *Tracker) fireCreated(entry *state.Entry) {
	for _, hook := range t.onCreated {
		hook(entry)
	}
	if entry.Destination != nil && entry.Destination.OnCreated != nil {
		entry.Destination.OnCreated(entry.ID, paramsToMap(entry.Params))
	}
}

func paramsToMap(p state.Params) map[string]interface{} {
	out := make(map[string]interface{}, p.Len())
	for _, k := range p.Keys() {
		v, _ := p.Get(k)
		out[k] = v
	}
	return out
}

func allEntries(s *state.State) []*state.Entry {
	if s == nil {
		return nil
	}
	return s.BackStack
}

func indexEntries(s *state.State) map[string]*state.Entry {
	entries := allEntries(s)
	out := make(map[string]*state.Entry, len(entries))
	for _, e := range entries {
		out[e.ID] = e
	}
	return out
}
