package state

// ModalContext pairs an open modal entry with the screen entry to restore
// beneath it once the modal closes (spec §3's NavigationEntry row; design
// note §9 "Modal context restoration"). The side table of ModalContexts is
// ordered by ascending Elevation, the same tie-break the GLOBAL_OVERLAY
// layer uses for rendering (design note §9 "z-index policy").
type ModalContext struct {
	ModalEntryID      string
	UnderlyingEntryID string
	Elevation         float64
	// PendingRestoration is set when the modal is pushed; navigateBack
	// only restores contexts that are still pending. Nothing in the reducer
	// clears it: dismissModals drops every context from the table instead.
	PendingRestoration bool
	// ModalEntry is the actual entry a screen-over-modal navigation popped
	// off the back-stack, retained so a later navigateBack can restore the
	// identical entry rather than minting a new one (spec §4.4's "the modal
	// is closed ... its context retained unless dismissModals is issued").
	ModalEntry *Entry
}

// CloneModalContexts returns an independent copy of the modal-context slice, preserving
// order.
func CloneModalContexts(in []*ModalContext) []*ModalContext {
	out := make([]*ModalContext, len(in))
	for i, c := range in {
		clone := *c
		out[i] = &clone
	}
	return out
}
