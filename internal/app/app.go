package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/redis/go-redis/v9"

	"github.com/machekepfukudzai-ui/SOCCER-ORACLE/external/gemini"
	"github.com/machekepfukudzai-ui/SOCCER-ORACLE/internal/config"
	"github.com/machekepfukudzai-ui/SOCCER-ORACLE/internal/domain/sport"
	"github.com/machekepfukudzai-ui/SOCCER-ORACLE/internal/infrastructure/connectivity"
	"github.com/machekepfukudzai-ui/SOCCER-ORACLE/internal/interfaces/httpapi"
	"github.com/machekepfukudzai-ui/SOCCER-ORACLE/internal/platform/cache"
	"github.com/machekepfukudzai-ui/SOCCER-ORACLE/internal/platform/logging"
	"github.com/machekepfukudzai-ui/SOCCER-ORACLE/internal/platform/resilience"
	"github.com/machekepfukudzai-ui/SOCCER-ORACLE/internal/platform/sched"
	"github.com/machekepfukudzai-ui/SOCCER-ORACLE/internal/usecase"
)

// App holds the wired service graph and the HTTP server in front of it.
type App struct {
	Server   *http.Server
	Analysis *usecase.AnalysisService
	Fixtures *usecase.FixtureService

	cfg    config.Config
	logger *logging.Logger
}

func New(cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.HTTPAddr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	blobs, err := newBlobStore(cfg)
	if err != nil {
		return nil, err
	}
	store := cache.NewStore(blobs, logger)

	client := gemini.NewClient(gemini.ClientConfig{
		BaseURL:    cfg.GeminiBaseURL,
		APIKey:     cfg.GeminiAPIKey,
		Model:      cfg.GeminiModel,
		Timeout:    cfg.GeminiTimeout,
		MaxRetries: cfg.GeminiMaxRetries,
		Logger:     logger,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.GeminiCircuitEnabled,
			FailureThreshold: cfg.GeminiCircuitFailureCount,
			OpenTimeout:      cfg.GeminiCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.GeminiCircuitHalfOpenMaxReq,
		},
	})

	probe := connectivity.NewProbe(connectivity.ProbeConfig{
		URL:         cfg.ProbeURL,
		Timeout:     cfg.ProbeTimeout,
		CacheWindow: cfg.ProbeCacheWindow,
		Logger:      logger,
	})

	oddsSvc := usecase.NewOddsService(client, probe, store, logger, cfg.OddsTTL, cfg.ComparisonTTL)
	analysisSvc := usecase.NewAnalysisService(client, probe, store, oddsSvc, logger, cfg.AnalysisTTL, cfg.WarmWorkers)
	fixtureSvc := usecase.NewFixtureService(client, probe, store, logger, cfg.FixturesTTL)

	handler := httpapi.NewHandler(analysisSvc, fixtureSvc, oddsSvc, logger)
	router := httpapi.NewRouter(handler, logger, cfg.CORSAllowedOrigins)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	return &App{
		Server:   server,
		Analysis: analysisSvc,
		Fixtures: fixtureSvc,
		cfg:      cfg,
		logger:   logger,
	}, nil
}

// StartOddsPoller begins the background refresh that keeps the odds cache
// warm for the configured slate. Returns nil when polling is disabled.
func (a *App) StartOddsPoller(ctx context.Context) *sched.Task {
	if !a.cfg.OddsPollEnabled {
		a.logger.Info("odds poller disabled", "reason", "ODDS_POLL_ENABLED=false")
		return nil
	}

	a.logger.Info("odds poller starting", "interval", a.cfg.OddsPollInterval.String(), "league", a.cfg.OddsPollLeague)
	return sched.Start(ctx, a.cfg.OddsPollInterval, nil, func(ctx context.Context) {
		slate, err := a.Fixtures.ListFixtures(ctx, a.cfg.OddsPollLeague, "", sport.Soccer)
		if err != nil {
			a.logger.WarnContext(ctx, "odds poll skipped: fixture list failed", "error", err)
			return
		}
		if err := a.Analysis.WarmFixtureOdds(ctx, slate); err != nil {
			a.logger.WarnContext(ctx, "odds warm failed", "error", err)
		}
	})
}

func newBlobStore(cfg config.Config) (cache.BlobStore, error) {
	switch cfg.CacheBackend {
	case config.CacheBackendRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		return cache.NewRedisStore(client, cfg.CacheHardTTL), nil
	case config.CacheBackendMemory, "":
		return cache.NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown cache backend %q", cfg.CacheBackend)
	}
}
