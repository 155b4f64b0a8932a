package intent

import "github.com/tuicore/navstate/pkg/navstate/graph"

// Batch is an ordered collection of intents applied atomically by the
// reducer. Validate runs before a Batch ever reaches Reduce, the same
// "fail before committing" posture router/guard_flow.go's validateTarget
// takes toward a single NavigationTarget.
type Batch struct {
	Intents []Intent
}

// NewBatch builds a Batch from a sequence of intents.
func NewBatch(intents ...Intent) *Batch {
	return &Batch{Intents: intents}
}

// Has reports whether the batch contains an intent of the given kind.
func (b *Batch) Has(k Kind) bool {
	for _, i := range b.Intents {
		if i.Kind == k {
			return true
		}
	}
	return false
}

// Validate rejects the mutually exclusive intent combinations spec §4.4
// and §7 name: clearBackStack with popUpTo or replaceCurrent in the same
// batch, and clearBackStack not followed by exactly one push.
func (b *Batch) Validate() error {
	hasClear := b.Has(KindClearBackStack)
	hasPopUpTo := b.Has(KindPopUpTo)

	if hasClear && hasPopUpTo {
		return graph.NewInvalidConfigurationError(
			"intent: clearBackStack is mutually exclusive with popUpTo in the same batch", nil)
	}

	if hasClear {
		pushes := 0
		for _, i := range b.Intents {
			if i.Kind == KindNavigateTo && i.ReplaceCurrent {
				return graph.NewInvalidConfigurationError(
					"intent: clearBackStack is mutually exclusive with replaceCurrent in the same batch", nil)
			}
			if i.Kind == KindNavigateTo || i.Kind == KindNavigateDeepLink {
				pushes++
			}
		}
		if pushes != 1 {
			return graph.NewInvalidConfigurationError(
				"intent: clearBackStack must be followed by exactly one push in the same batch", nil)
		}
	}

	return nil
}
