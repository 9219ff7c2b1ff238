package usecase

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/sourcegraph/conc"

	"github.com/riskibarqy/cricket-widget/internal/cricket"
	"github.com/riskibarqy/cricket-widget/internal/domain/match"
	"github.com/riskibarqy/cricket-widget/internal/platform/cache"
	"github.com/riskibarqy/cricket-widget/internal/platform/logging"
)

const (
	matchesCacheKey     = "matches"
	matchDetailCacheKey = "match:"
)

// MatchFetcher is the upstream page source. Implemented by the cricbuzz
// client.
type MatchFetcher interface {
	FetchPage(ctx context.Context, pageURL string) (string, error)
	FetchCommentary(ctx context.Context, matchID string, full bool) ([]byte, error)
}

type MatchService struct {
	fetcher MatchFetcher
	store   *cache.Store
	logger  *logging.Logger
}

func NewMatchService(fetcher MatchFetcher, store *cache.Store, logger *logging.Logger) *MatchService {
	if logger == nil {
		logger = logging.Default()
	}
	return &MatchService{
		fetcher: fetcher,
		store:   store,
		logger:  logger,
	}
}

// listPages holds both list fetches; either may have failed.
type listPages struct {
	liveHTML     string
	upcomingHTML string
	liveErr      error
	upcomingErr  error
}

func (p listPages) ok() int {
	count := 0
	if p.liveErr == nil {
		count++
	}
	if p.upcomingErr == nil {
		count++
	}
	return count
}

func (s *MatchService) fetchListPages(ctx context.Context) listPages {
	var pages listPages

	var wg conc.WaitGroup
	wg.Go(func() {
		pages.liveHTML, pages.liveErr = s.fetcher.FetchPage(ctx, cricket.LiveListPath)
	})
	wg.Go(func() {
		pages.upcomingHTML, pages.upcomingErr = s.fetcher.FetchPage(ctx, cricket.UpcomingListPath)
	})
	wg.Wait()

	if pages.liveErr != nil {
		s.logger.WarnContext(ctx, "fetch live list page failed", "error", pages.liveErr)
		pages.liveHTML = ""
	}
	if pages.upcomingErr != nil {
		s.logger.WarnContext(ctx, "fetch upcoming list page failed", "error", pages.upcomingErr)
		pages.upcomingHTML = ""
	}

	return pages
}

// GetMatchesData returns the partitioned match lists, served from cache
// when fresh.
func (s *MatchService) GetMatchesData(ctx context.Context) (match.ListData, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.GetMatchesData")
	defer span.End()

	if s.store == nil {
		return s.loadMatchesData(ctx)
	}

	value, err := s.store.GetOrLoad(ctx, matchesCacheKey, func(ctx context.Context) (any, error) {
		return s.loadMatchesData(ctx)
	})
	if err != nil {
		return match.ListData{}, err
	}

	data, ok := value.(match.ListData)
	if !ok {
		return match.ListData{}, fmt.Errorf("unexpected cache payload type %T", value)
	}
	return data, nil
}

// RefreshMatchesData rebuilds the match lists, replacing the cached copy.
func (s *MatchService) RefreshMatchesData(ctx context.Context) (match.ListData, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.RefreshMatchesData")
	defer span.End()

	data, err := s.loadMatchesData(ctx)
	if err != nil {
		return match.ListData{}, err
	}
	if s.store != nil {
		s.store.Set(ctx, matchesCacheKey, data)
	}
	return data, nil
}

func (s *MatchService) loadMatchesData(ctx context.Context) (match.ListData, error) {
	pages := s.fetchListPages(ctx)
	if pages.ok() == 0 {
		return match.ListData{}, fmt.Errorf(
			"%w: unable to fetch match lists: live: %v, upcoming: %v",
			ErrDependencyUnavailable, pages.liveErr, pages.upcomingErr,
		)
	}

	data, err := cricket.BuildMatchesData(pages.liveHTML, pages.upcomingHTML)
	if err != nil {
		return match.ListData{}, fmt.Errorf("%w: %v", ErrDependencyUnavailable, err)
	}
	return data, nil
}

// GetMatchDetail returns the full detail view for one match, served from
// cache when fresh.
func (s *MatchService) GetMatchDetail(ctx context.Context, matchID string) (match.DetailData, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.GetMatchDetail")
	defer span.End()

	matchID = strings.TrimSpace(matchID)
	id, err := strconv.Atoi(matchID)
	if err != nil || id <= 0 {
		return match.DetailData{}, fmt.Errorf("%w: match id must be a positive number", ErrInvalidInput)
	}

	if s.store == nil {
		return s.loadMatchDetail(ctx, id)
	}

	value, err := s.store.GetOrLoad(ctx, matchDetailCacheKey+matchID, func(ctx context.Context) (any, error) {
		return s.loadMatchDetail(ctx, id)
	})
	if err != nil {
		return match.DetailData{}, err
	}

	detail, ok := value.(match.DetailData)
	if !ok {
		return match.DetailData{}, fmt.Errorf("unexpected cache payload type %T", value)
	}
	return detail, nil
}

// RefreshMatchDetail rebuilds one match detail, replacing the cached copy.
func (s *MatchService) RefreshMatchDetail(ctx context.Context, matchID string) (match.DetailData, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.RefreshMatchDetail")
	defer span.End()

	id, err := strconv.Atoi(strings.TrimSpace(matchID))
	if err != nil || id <= 0 {
		return match.DetailData{}, fmt.Errorf("%w: match id must be a positive number", ErrInvalidInput)
	}

	detail, err := s.loadMatchDetail(ctx, id)
	if err != nil {
		return match.DetailData{}, err
	}
	if s.store != nil {
		s.store.SetTTL(ctx, matchDetailCacheKey+strconv.Itoa(id), detail, s.detailTTL(detail))
	}
	return detail, nil
}

// detailTTL halves the cache lifetime for in-play matches, whose payload
// changes every ball.
func (s *MatchService) detailTTL(detail match.DetailData) time.Duration {
	ttl := s.store.TTL()
	if detail.LiveState != nil && ttl > 2*time.Second {
		ttl /= 2
	}
	return ttl
}

func (s *MatchService) loadMatchDetail(ctx context.Context, id int) (match.DetailData, error) {
	pages := s.fetchListPages(ctx)
	detailCtx := cricket.NewDetailContext(id, pages.liveHTML, pages.upcomingHTML)

	scorecardHTML, err := s.fetchFirst(ctx, detailCtx.ScorecardURLs())
	if err != nil {
		return match.DetailData{}, fmt.Errorf("fetch scorecard match=%d: %w", id, err)
	}

	var livePageHTML string
	var commentaryPayloads [][]byte

	var wg conc.WaitGroup
	wg.Go(func() {
		html, liveErr := s.fetchFirst(ctx, detailCtx.LivePageURLs())
		if liveErr != nil {
			s.logger.WarnContext(ctx, "fetch live page failed", "match_id", id, "error", liveErr)
			return
		}
		livePageHTML = html
	})

	payloads := make([][]byte, 2)
	for i, full := range []bool{false, true} {
		i, full := i, full
		wg.Go(func() {
			raw, commErr := s.fetcher.FetchCommentary(ctx, strconv.Itoa(id), full)
			if commErr != nil {
				s.logger.DebugContext(ctx, "fetch commentary failed", "match_id", id, "full", full, "error", commErr)
				return
			}
			payloads[i] = raw
		})
	}
	wg.Wait()

	for _, payload := range payloads {
		if len(payload) > 0 {
			commentaryPayloads = append(commentaryPayloads, payload)
		}
	}

	return cricket.AssembleMatchDetail(detailCtx, scorecardHTML, livePageHTML, commentaryPayloads), nil
}

// fetchFirst tries candidate URLs in order and returns the first page that
// loads.
func (s *MatchService) fetchFirst(ctx context.Context, urls []string) (string, error) {
	var lastErr error
	for _, pageURL := range urls {
		html, err := s.fetcher.FetchPage(ctx, pageURL)
		if err == nil {
			return html, nil
		}
		lastErr = err
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
	}
	if lastErr == nil {
		lastErr = fmt.Errorf("%w: no candidate url", ErrNotFound)
	}
	return "", lastErr
}
