package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	ants "github.com/panjf2000/ants/v2"
	"github.com/sourcegraph/conc"

	"github.com/machekepfukudzai-ui/SOCCER-ORACLE/internal/domain/analysis"
	"github.com/machekepfukudzai-ui/SOCCER-ORACLE/internal/domain/fixture"
	"github.com/machekepfukudzai-ui/SOCCER-ORACLE/internal/domain/prompt"
	"github.com/machekepfukudzai-ui/SOCCER-ORACLE/internal/domain/sport"
	"github.com/machekepfukudzai-ui/SOCCER-ORACLE/internal/domain/synthetic"
	"github.com/machekepfukudzai-ui/SOCCER-ORACLE/internal/platform/cache"
	"github.com/machekepfukudzai-ui/SOCCER-ORACLE/internal/platform/logging"
)

// MatchRequest identifies one matchup to analyze. Live is non-nil when the
// match is in play and the current score should anchor the prediction.
type MatchRequest struct {
	Home   string
	Away   string
	League string
	Sport  sport.Sport
	Live   *analysis.LiveState
}

// DetailedAnalysis bundles the main analysis with the supplementary market
// data fetched alongside it. Odds and Comparison are nil when their lookups
// came back absent; that never fails the whole request.
type DetailedAnalysis struct {
	Analysis   analysis.Response
	Odds       *analysis.Outcome
	Comparison *analysis.Comparison
}

type AnalysisService struct {
	client      CompletionClient
	probe       Probe
	cache       *cache.Store
	odds        *OddsService
	logger      *logging.Logger
	ttl         time.Duration
	warmWorkers int
}

func NewAnalysisService(
	client CompletionClient,
	probe Probe,
	cacheStore *cache.Store,
	odds *OddsService,
	logger *logging.Logger,
	ttl time.Duration,
	warmWorkers int,
) *AnalysisService {
	if logger == nil {
		logger = logging.Default()
	}
	if ttl <= 0 {
		ttl = time.Hour
	}
	if warmWorkers < 1 {
		warmWorkers = 4
	}
	return &AnalysisService{
		client:      client,
		probe:       probe,
		cache:       cacheStore,
		odds:        odds,
		logger:      logger,
		ttl:         ttl,
		warmWorkers: warmWorkers,
	}
}

// AnalyzeMatch produces a full match analysis. The caller always gets a
// usable Response for degraded-mode conditions (offline, provider quota):
// those return a locally generated result marked Synthetic. Hard failures
// such as transport errors on a reachable network still propagate.
func (s *AnalysisService) AnalyzeMatch(ctx context.Context, req MatchRequest) (analysis.Response, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AnalysisService.AnalyzeMatch")
	defer span.End()

	req, err := normalizeMatchRequest(req)
	if err != nil {
		return analysis.Response{}, err
	}

	// Live requests are never served from cache: the score context they
	// embed goes stale faster than any sane TTL.
	cacheable := req.Live == nil
	key := analysisCacheKey(req)

	if cacheable {
		var cached analysis.Response
		if s.cache.Get(ctx, key, s.ttl, &cached) {
			return cached, nil
		}
	}

	if !s.probe.Online(ctx) {
		s.logger.InfoContext(ctx, "analysis served synthetically: provider offline", "home", req.Home, "away", req.Away)
		return s.fallback(req), nil
	}

	completion, err := s.client.Generate(ctx, prompt.Match(req.Home, req.Away, req.League, req.Sport, req.Live), true)
	if err != nil {
		if isDegradedModeError(err) {
			s.logger.WarnContext(ctx, "analysis served synthetically", "home", req.Home, "away", req.Away, "error", err)
			return s.fallback(req), nil
		}
		return analysis.Response{}, fmt.Errorf("generate analysis: %w", err)
	}

	result := analysis.Parse(completion.Text)
	result.Live = req.Live
	for _, c := range completion.Citations {
		result.Citations = append(result.Citations, analysis.Citation{URI: c.URI, Title: c.Title})
	}

	if cacheable {
		s.cache.Set(ctx, key, result)
	}
	return result, nil
}

// AnalyzeMatchDetailed runs the main analysis and the supplementary odds and
// comparison lookups concurrently. Supplementary failures degrade to absence.
func (s *AnalysisService) AnalyzeMatchDetailed(ctx context.Context, req MatchRequest) (DetailedAnalysis, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AnalysisService.AnalyzeMatchDetailed")
	defer span.End()

	req, err := normalizeMatchRequest(req)
	if err != nil {
		return DetailedAnalysis{}, err
	}

	var (
		detail  DetailedAnalysis
		mainErr error
	)

	var wg conc.WaitGroup
	wg.Go(func() {
		detail.Analysis, mainErr = s.AnalyzeMatch(ctx, req)
	})
	wg.Go(func() {
		if odds, ok := s.odds.FetchOdds(ctx, req.Home, req.Away, req.League, req.Sport); ok {
			detail.Odds = &odds
		}
	})
	wg.Go(func() {
		if comparison, ok := s.odds.FetchComparison(ctx, req.Home, req.Away, req.Sport); ok {
			detail.Comparison = &comparison
		}
	})
	wg.Wait()

	if mainErr != nil {
		return DetailedAnalysis{}, mainErr
	}
	return detail, nil
}

// WarmFixtureOdds prefetches odds for a fixture slate on a bounded worker
// pool so the first dashboard render hits warm cache entries. Individual
// misses are ignored.
func (s *AnalysisService) WarmFixtureOdds(ctx context.Context, fixtures []fixture.Summary) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.AnalysisService.WarmFixtureOdds")
	defer span.End()

	if len(fixtures) == 0 {
		return nil
	}

	pool, err := ants.NewPool(minInt(s.warmWorkers, len(fixtures)))
	if err != nil {
		return fmt.Errorf("create warm pool: %w", err)
	}
	defer pool.Release()

	var workers sync.WaitGroup
	for _, row := range fixtures {
		row := row
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()
			if ctx.Err() != nil {
				return
			}
			s.odds.FetchOdds(ctx, row.HomeTeam, row.AwayTeam, row.League, row.Sport)
		}); err != nil {
			workers.Done()
			return fmt.Errorf("submit warm task: %w", err)
		}
	}
	workers.Wait()
	return nil
}

func (s *AnalysisService) fallback(req MatchRequest) analysis.Response {
	return synthetic.Predict(synthetic.Input{
		Home:  req.Home,
		Away:  req.Away,
		Sport: req.Sport,
		Live:  req.Live,
	})
}

func normalizeMatchRequest(req MatchRequest) (MatchRequest, error) {
	req.Home = strings.TrimSpace(req.Home)
	req.Away = strings.TrimSpace(req.Away)
	req.League = strings.TrimSpace(req.League)
	if req.Home == "" || req.Away == "" {
		return MatchRequest{}, fmt.Errorf("%w: both team names are required", ErrInvalidInput)
	}
	if req.Sport == "" {
		req.Sport = sport.Soccer
	}
	return req, nil
}

func analysisCacheKey(req MatchRequest) string {
	return fmt.Sprintf("analysis:%s:%s:%s", req.Sport, strings.ToLower(req.Home), strings.ToLower(req.Away))
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
