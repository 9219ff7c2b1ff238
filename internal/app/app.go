package app

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/riskibarqy/cricket-widget/external/cricbuzz"
	"github.com/riskibarqy/cricket-widget/internal/config"
	"github.com/riskibarqy/cricket-widget/internal/interfaces/httpapi"
	"github.com/riskibarqy/cricket-widget/internal/platform/cache"
	"github.com/riskibarqy/cricket-widget/internal/platform/logging"
	"github.com/riskibarqy/cricket-widget/internal/platform/resilience"
	"github.com/riskibarqy/cricket-widget/internal/usecase"
)

// Services groups the long-lived application components built from config.
type Services struct {
	Matches *usecase.MatchService
	Refresh *usecase.RefreshService
}

func NewServices(cfg config.Config, logger *logging.Logger) *Services {
	client := cricbuzz.NewClient(cricbuzz.ClientConfig{
		BaseURL:    cfg.CricbuzzBaseURL,
		UserAgent:  cfg.CricbuzzUserAgent,
		Timeout:    cfg.CricbuzzTimeout,
		MaxRetries: cfg.CricbuzzMaxRetries,
		Logger:     logger,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.CricbuzzCircuitEnabled,
			FailureThreshold: cfg.CricbuzzCircuitFailureCount,
			OpenTimeout:      cfg.CricbuzzCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.CricbuzzCircuitHalfOpenMaxReq,
		},
	})

	var store *cache.Store
	if cfg.CacheEnabled {
		store = cache.NewStore(cfg.CacheTTL)
	}

	matches := usecase.NewMatchService(client, store, logger)
	refresh := usecase.NewRefreshService(matches, usecase.RefreshConfig{
		Enabled:    cfg.RefreshEnabled,
		Interval:   cfg.RefreshInterval,
		MaxWorkers: cfg.RefreshMaxWorkers,
	}, logger)

	return &Services{
		Matches: matches,
		Refresh: refresh,
	}
}

func NewHTTPServer(cfg config.Config, services *Services, logger *slog.Logger) (*http.Server, error) {
	handler := httpapi.NewHandler(services.Matches, services.Refresh, logger)
	router := httpapi.NewRouter(handler, logger, cfg.SwaggerEnabled, cfg.CORSAllowedOrigins, cfg.InternalJobToken)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	return server, nil
}
