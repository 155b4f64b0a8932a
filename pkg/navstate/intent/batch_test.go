package intent

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuicore/navstate/pkg/navstate/graph"
	"github.com/tuicore/navstate/pkg/navstate/state"
)

func TestBatchValidateAcceptsSimpleNavigate(t *testing.T) {
	b := NewBatch(NavigateTo("profile", state.Params{}, false))
	assert.NoError(t, b.Validate())
}

func TestBatchValidateRejectsClearWithPopUpTo(t *testing.T) {
	b := NewBatch(ClearBackStack(), PopUpTo("home", false), NavigateTo("profile", state.Params{}, false))
	err := b.Validate()
	require.Error(t, err)
	var gerr *graph.Error
	require.ErrorAs(t, err, &gerr)
	assert.Equal(t, graph.ErrCodeInvalidConfiguration, gerr.Code)
}

func TestBatchValidateRejectsClearWithReplaceCurrent(t *testing.T) {
	b := NewBatch(ClearBackStack(), NavigateTo("profile", state.Params{}, true))
	require.Error(t, b.Validate())
}

func TestBatchValidateRejectsClearWithoutExactlyOnePush(t *testing.T) {
	require.Error(t, NewBatch(ClearBackStack()).Validate())
	require.Error(t, NewBatch(
		ClearBackStack(),
		NavigateTo("profile", state.Params{}, false),
		NavigateTo("home", state.Params{}, false),
	).Validate())
}

func TestBatchValidateAcceptsClearFollowedByExactlyOnePush(t *testing.T) {
	b := NewBatch(ClearBackStack(), NavigateTo("profile", state.Params{}, false))
	assert.NoError(t, b.Validate())
}

func TestBatchHas(t *testing.T) {
	b := NewBatch(NavigateBack(), DismissModals())
	assert.True(t, b.Has(KindNavigateBack))
	assert.True(t, b.Has(KindDismissModals))
	assert.False(t, b.Has(KindPopUpTo))
}
