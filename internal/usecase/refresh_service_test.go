package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/cricket-widget/internal/cricket"
	"github.com/riskibarqy/cricket-widget/internal/platform/cache"
	"github.com/riskibarqy/cricket-widget/internal/platform/logging"
)

func newRefreshService(fetcher *fakeFetcher, cfg RefreshConfig) *RefreshService {
	matches := NewMatchService(fetcher, cache.NewStore(time.Minute), logging.NewNop())
	return NewRefreshService(matches, cfg, logging.NewNop())
}

func TestRefreshService_RefreshOnce(t *testing.T) {
	t.Parallel()

	fetcher := newListFetcher()
	fetcher.setPage(cricket.BaseURL+"/live-cricket-scorecard/42/alpha-vs-beta-final", fakeScorecardHTML)
	service := newRefreshService(fetcher, RefreshConfig{Enabled: true, MaxWorkers: 2})

	result, err := service.RefreshOnce(context.Background())
	require.NoError(t, err)

	require.True(t, result.ListRefreshed)
	require.Equal(t, 1, result.LiveCount)
	require.Equal(t, 1, result.SuccessCount)
	require.Equal(t, 0, result.FailedCount)
}

func TestRefreshService_RefreshOnce_DetailFailureIsCounted(t *testing.T) {
	t.Parallel()

	// List pages resolve but no scorecard page does.
	service := newRefreshService(newListFetcher(), RefreshConfig{Enabled: true})

	result, err := service.RefreshOnce(context.Background())
	require.NoError(t, err)

	require.True(t, result.ListRefreshed)
	require.Equal(t, 1, result.LiveCount)
	require.Equal(t, 0, result.SuccessCount)
	require.Equal(t, 1, result.FailedCount)
}

func TestRefreshService_RefreshOnce_ListFailure(t *testing.T) {
	t.Parallel()

	service := newRefreshService(newFakeFetcher(), RefreshConfig{Enabled: true})

	result, err := service.RefreshOnce(context.Background())
	require.ErrorIs(t, err, ErrDependencyUnavailable)
	require.False(t, result.ListRefreshed)
}

func TestRefreshService_RunDisabled(t *testing.T) {
	t.Parallel()

	service := newRefreshService(newFakeFetcher(), RefreshConfig{Enabled: false})

	done := make(chan struct{})
	go func() {
		defer close(done)
		service.Run(context.Background())
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("disabled service should return immediately")
	}
}

func TestNormalizeRefreshWorkerCount(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		value     int
		taskCount int
		want      int
	}{
		{name: "defaults to two", value: 0, taskCount: 8, want: 2},
		{name: "capped at four", value: 10, taskCount: 8, want: 4},
		{name: "never exceeds tasks", value: 4, taskCount: 1, want: 1},
		{name: "no tasks", value: 4, taskCount: 0, want: 1},
		{name: "passes through", value: 3, taskCount: 8, want: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, normalizeRefreshWorkerCount(tt.value, tt.taskCount))
		})
	}
}
