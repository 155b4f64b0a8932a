package state

import "github.com/google/uuid"

// newEntryID mints a stable identity for a NavigationEntry. Lifecycle
// diffing (spec §4.8) keys on this identity, not on Destination+Params
// equality, so two pushes of the same destination with the same params are
// still distinct entries.
func newEntryID() string {
	return uuid.NewString()
}
