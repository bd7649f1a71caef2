package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/machekepfukudzai-ui/SOCCER-ORACLE/internal/domain/analysis"
	"github.com/machekepfukudzai-ui/SOCCER-ORACLE/internal/domain/prompt"
	"github.com/machekepfukudzai-ui/SOCCER-ORACLE/internal/domain/sport"
	"github.com/machekepfukudzai-ui/SOCCER-ORACLE/internal/platform/cache"
	"github.com/machekepfukudzai-ui/SOCCER-ORACLE/internal/platform/logging"
)

// OddsService serves the supplementary market lookups. Unlike the analysis
// path these never substitute synthetic data and never fail the caller: any
// problem reads as "absent" and the UI renders without the extra panel.
type OddsService struct {
	client        CompletionClient
	probe         Probe
	cache         *cache.Store
	logger        *logging.Logger
	oddsTTL       time.Duration
	comparisonTTL time.Duration
}

func NewOddsService(
	client CompletionClient,
	probe Probe,
	cacheStore *cache.Store,
	logger *logging.Logger,
	oddsTTL, comparisonTTL time.Duration,
) *OddsService {
	if logger == nil {
		logger = logging.Default()
	}
	if oddsTTL <= 0 {
		oddsTTL = 90 * time.Second
	}
	if comparisonTTL <= 0 {
		comparisonTTL = 24 * time.Hour
	}
	return &OddsService{
		client:        client,
		probe:         probe,
		cache:         cacheStore,
		logger:        logger,
		oddsTTL:       oddsTTL,
		comparisonTTL: comparisonTTL,
	}
}

// FetchOdds returns current decimal odds for the matchup, or absent.
func (s *OddsService) FetchOdds(ctx context.Context, home, away, league string, sportTag sport.Sport) (analysis.Outcome, bool) {
	ctx, span := startUsecaseSpan(ctx, "usecase.OddsService.FetchOdds")
	defer span.End()

	home, away, sportTag, ok := normalizeSupplementaryInput(home, away, sportTag)
	if !ok {
		return analysis.Outcome{}, false
	}

	key := fmt.Sprintf("odds:%s:%s:%s", sportTag, strings.ToLower(home), strings.ToLower(away))
	var cached analysis.Outcome
	if s.cache.Get(ctx, key, s.oddsTTL, &cached) {
		return cached, true
	}

	if !s.probe.Online(ctx) {
		return analysis.Outcome{}, false
	}

	completion, err := s.client.Generate(ctx, prompt.Odds(home, away, league, sportTag), true)
	if err != nil {
		s.logger.DebugContext(ctx, "odds lookup absent", "home", home, "away", away, "error", err)
		return analysis.Outcome{}, false
	}

	parsed := analysis.Parse(completion.Text)
	if parsed.Stats == nil || parsed.Stats.Odds == nil {
		return analysis.Outcome{}, false
	}

	s.cache.Set(ctx, key, *parsed.Stats.Odds)
	return *parsed.Stats.Odds, true
}

// FetchComparison returns the side-by-side team comparison, or absent.
func (s *OddsService) FetchComparison(ctx context.Context, home, away string, sportTag sport.Sport) (analysis.Comparison, bool) {
	ctx, span := startUsecaseSpan(ctx, "usecase.OddsService.FetchComparison")
	defer span.End()

	home, away, sportTag, ok := normalizeSupplementaryInput(home, away, sportTag)
	if !ok {
		return analysis.Comparison{}, false
	}

	key := fmt.Sprintf("comparison:%s:%s:%s", sportTag, strings.ToLower(home), strings.ToLower(away))
	var cached analysis.Comparison
	if s.cache.Get(ctx, key, s.comparisonTTL, &cached) {
		return cached, true
	}

	if !s.probe.Online(ctx) {
		return analysis.Comparison{}, false
	}

	completion, err := s.client.Generate(ctx, prompt.Comparison(home, away, sportTag), false)
	if err != nil {
		s.logger.DebugContext(ctx, "comparison lookup absent", "home", home, "away", away, "error", err)
		return analysis.Comparison{}, false
	}

	parsed := analysis.Parse(completion.Text)
	if parsed.Stats == nil || parsed.Stats.Comparison == nil {
		return analysis.Comparison{}, false
	}

	s.cache.Set(ctx, key, *parsed.Stats.Comparison)
	return *parsed.Stats.Comparison, true
}

func normalizeSupplementaryInput(home, away string, sportTag sport.Sport) (string, string, sport.Sport, bool) {
	home = strings.TrimSpace(home)
	away = strings.TrimSpace(away)
	if home == "" || away == "" {
		return "", "", sportTag, false
	}
	if sportTag == "" {
		sportTag = sport.Soccer
	}
	return home, away, sportTag, true
}
