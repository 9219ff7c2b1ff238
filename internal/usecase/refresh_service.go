package usecase

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/riskibarqy/cricket-widget/internal/platform/logging"
)

type RefreshConfig struct {
	Enabled    bool
	Interval   time.Duration
	MaxWorkers int
}

// RefreshService keeps the match caches warm: on every tick it rebuilds
// the lists and re-fetches details for the matches currently live.
type RefreshService struct {
	matches *MatchService
	cfg     RefreshConfig
	logger  *logging.Logger
}

type RefreshResult struct {
	ListRefreshed bool  `json:"list_refreshed"`
	LiveCount     int   `json:"live_count"`
	SuccessCount  int   `json:"success_count"`
	FailedCount   int   `json:"failed_count"`
	DurationMs    int64 `json:"duration_ms"`
}

func NewRefreshService(matches *MatchService, cfg RefreshConfig, logger *logging.Logger) *RefreshService {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.Interval <= 0 {
		cfg.Interval = 30 * time.Second
	}
	return &RefreshService{
		matches: matches,
		cfg:     cfg,
		logger:  logger,
	}
}

// Run blocks until ctx is cancelled, refreshing on the configured
// interval. The first refresh happens immediately.
func (s *RefreshService) Run(ctx context.Context) {
	if !s.cfg.Enabled {
		s.logger.InfoContext(ctx, "background refresh disabled")
		return
	}

	ticker := time.NewTicker(s.cfg.Interval)
	defer ticker.Stop()

	for {
		result, err := s.RefreshOnce(ctx)
		if err != nil {
			s.logger.WarnContext(ctx, "background refresh failed", "error", err)
		} else {
			s.logger.DebugContext(ctx, "background refresh completed",
				"live_count", result.LiveCount,
				"success_count", result.SuccessCount,
				"failed_count", result.FailedCount,
				"duration_ms", result.DurationMs,
			)
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// RefreshOnce rebuilds the list cache and the details of every live match.
func (s *RefreshService) RefreshOnce(ctx context.Context) (RefreshResult, error) {
	start := time.Now()

	data, err := s.matches.RefreshMatchesData(ctx)
	if err != nil {
		return RefreshResult{DurationMs: time.Since(start).Milliseconds()}, fmt.Errorf("refresh match lists: %w", err)
	}

	result := RefreshResult{
		ListRefreshed: true,
		LiveCount:     len(data.Live),
	}
	if len(data.Live) == 0 {
		result.DurationMs = time.Since(start).Milliseconds()
		return result, nil
	}

	workerCount := normalizeRefreshWorkerCount(s.cfg.MaxWorkers, len(data.Live))
	pool, err := ants.NewPool(workerCount)
	if err != nil {
		return result, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var successCount atomic.Int32
	var failedCount atomic.Int32

	var workers sync.WaitGroup
	for _, item := range data.Live {
		item := item
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			if _, detailErr := s.matches.RefreshMatchDetail(ctx, item.ID); detailErr != nil {
				failedCount.Add(1)
				s.logger.WarnContext(ctx, "refresh match detail failed", "match_id", item.ID, "error", detailErr)
				return
			}
			successCount.Add(1)
		}); err != nil {
			workers.Done()
			return result, fmt.Errorf("submit refresh task: %w", err)
		}
	}
	workers.Wait()

	result.SuccessCount = int(successCount.Load())
	result.FailedCount = int(failedCount.Load())
	result.DurationMs = time.Since(start).Milliseconds()
	return result, nil
}

func normalizeRefreshWorkerCount(value int, taskCount int) int {
	if taskCount <= 0 {
		return 1
	}
	if value <= 0 {
		value = 2
	}
	if value > 4 {
		value = 4
	}
	if value > taskCount {
		value = taskCount
	}
	return value
}
