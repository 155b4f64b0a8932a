package guard

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuicore/navstate/pkg/navstate/graph"
	"github.com/tuicore/navstate/pkg/navstate/state"
)

func TestEvaluateAllowsWhenGuardIsNil(t *testing.T) {
	runner := New(nil, nil, nil)
	result, err := runner.Evaluate(context.Background(), nil, graph.Target{}, nil, "root")
	require.NoError(t, err)
	assert.Equal(t, graph.GuardAllow, result.Kind)
}

func TestEvaluatePassesThroughGuardResult(t *testing.T) {
	runner := New(nil, nil, nil)
	guardFn := func(ctx context.Context, to graph.Target, from *graph.Target) graph.GuardResult {
		return graph.RedirectTo("login")
	}
	result, err := runner.Evaluate(context.Background(), guardFn, graph.Target{}, nil, "root")
	require.NoError(t, err)
	assert.Equal(t, graph.GuardRedirectTo, result.Kind)
	assert.Equal(t, "login", result.RedirectRoute)
}

func TestEvaluateRecoversFromPanicAsReject(t *testing.T) {
	runner := New(nil, nil, nil)
	guardFn := func(ctx context.Context, to graph.Target, from *graph.Target) graph.GuardResult {
		panic("boom")
	}
	result, err := runner.Evaluate(context.Background(), guardFn, graph.Target{}, nil, "root")
	require.NoError(t, err)
	assert.Equal(t, graph.GuardReject, result.Kind)
}

func TestEvaluateTimesOutPastSafetyWindow(t *testing.T) {
	runner := NewWithTimings(5*time.Millisecond, 20*time.Millisecond, nil, nil, nil)
	guardFn := func(ctx context.Context, to graph.Target, from *graph.Target) graph.GuardResult {
		<-ctx.Done()
		return graph.Allow()
	}
	result, err := runner.Evaluate(context.Background(), guardFn, graph.Target{}, nil, "root")
	assert.ErrorIs(t, err, ErrGuardTimeout)
	assert.Equal(t, graph.GuardReject, result.Kind)
}

func TestEvaluateFiresLoadingHookAfterThreshold(t *testing.T) {
	var active int32
	hook := func(isActive bool) {
		if isActive {
			atomic.StoreInt32(&active, 1)
		} else {
			atomic.StoreInt32(&active, 0)
		}
	}
	runner := NewWithTimings(5*time.Millisecond, time.Second, nil, nil, hook)
	release := make(chan struct{})
	guardFn := func(ctx context.Context, to graph.Target, from *graph.Target) graph.GuardResult {
		<-release
		return graph.Allow()
	}

	done := make(chan graph.GuardResult, 1)
	go func() {
		res, _ := runner.Evaluate(context.Background(), guardFn, graph.Target{}, nil, "root")
		done <- res
	}()

	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, int32(1), atomic.LoadInt32(&active), "loading hook should fire once the guard outlasts the threshold")

	close(release)
	<-done
	assert.Equal(t, int32(0), atomic.LoadInt32(&active), "loading hook should clear once the guard resolves")
}

func TestBuildPendingNavigationOnlyForPendAndRedirect(t *testing.T) {
	allow := graph.Allow()
	assert.Nil(t, BuildPendingNavigation("profile", state.Params{}, allow))

	pend := graph.PendAndRedirectTo("login", map[string]interface{}{"reason": "auth"}, "Sign in")
	pn := BuildPendingNavigation("profile", state.Params{}, pend)
	require.NotNil(t, pn)
	assert.Equal(t, "profile", pn.Route)
	assert.Equal(t, "Sign in", pn.DisplayHint)
	assert.Equal(t, "auth", pn.Metadata["reason"])
}
