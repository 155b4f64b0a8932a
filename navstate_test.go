package navstate_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuicore/navstate"
)

// TestRootPackageTypes verifies that all core types are accessible from the
// root package.
func TestRootPackageTypes(t *testing.T) {
	var _ navstate.Spec
	var _ navstate.EntrySpec
	var _ navstate.Destination
	var _ navstate.Table
	var _ navstate.State
	var _ navstate.Entry
	var _ navstate.Params
	var _ navstate.Outcome
	var _ navstate.PendingNavigation
	var _ navstate.Batch
	var _ navstate.Intent
	var _ navstate.Store
	var _ navstate.Option
}

// TestRootPackageFunctions verifies the root package's constructors are
// accessible and wired through to their subpackage implementations.
func TestRootPackageFunctions(t *testing.T) {
	assert.NotNil(t, navstate.Build)
	assert.NotNil(t, navstate.New)
	assert.NotNil(t, navstate.WithGuardRunner)
	assert.NotNil(t, navstate.WithSpamGuard)
	assert.NotNil(t, navstate.WithFlowRegistry)
	assert.NotNil(t, navstate.WithLifecycleTracker)
	assert.NotNil(t, navstate.WithErrorReporter)
	assert.NotNil(t, navstate.WithMetrics)
}

// TestBuildAndNavigateEndToEnd exercises the root facade against a minimal
// two-destination graph, the same smoke test a consumer's first run would be.
func TestBuildAndNavigateEndToEnd(t *testing.T) {
	tables, err := navstate.Build(&navstate.Spec{
		ID:    "root",
		Entry: navstate.EntrySpec{DestinationName: "home"},
		Destinations: []*navstate.Destination{
			{Name: "home", Route: "home"},
			{Name: "profile", Route: "profile"},
		},
	})
	require.NoError(t, err)

	st, err := navstate.New(tables)
	require.NoError(t, err)
	assert.Equal(t, "home", st.CurrentState().Current().Destination.Name)

	outcome, err := st.NavigateTo(context.Background(), "profile", navstate.Params{}, false)
	require.NoError(t, err)
	assert.Equal(t, "profile", st.CurrentState().Current().Destination.Name)
	_ = outcome
}
