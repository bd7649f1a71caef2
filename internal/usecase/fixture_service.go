package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/machekepfukudzai-ui/SOCCER-ORACLE/internal/domain/fixture"
	"github.com/machekepfukudzai-ui/SOCCER-ORACLE/internal/domain/prompt"
	"github.com/machekepfukudzai-ui/SOCCER-ORACLE/internal/domain/sport"
	"github.com/machekepfukudzai-ui/SOCCER-ORACLE/internal/platform/cache"
	"github.com/machekepfukudzai-ui/SOCCER-ORACLE/internal/platform/logging"
)

type FixtureService struct {
	client CompletionClient
	probe  Probe
	cache  *cache.Store
	logger *logging.Logger
	ttl    time.Duration
}

func NewFixtureService(
	client CompletionClient,
	probe Probe,
	cacheStore *cache.Store,
	logger *logging.Logger,
	ttl time.Duration,
) *FixtureService {
	if logger == nil {
		logger = logging.Default()
	}
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &FixtureService{
		client: client,
		probe:  probe,
		cache:  cacheStore,
		logger: logger,
		ttl:    ttl,
	}
}

// ListFixtures returns the slate for a sport, optionally narrowed by league
// and date. Degraded-mode conditions substitute the static backup slate and
// never cache it; transport failures on a live network still propagate.
func (s *FixtureService) ListFixtures(ctx context.Context, league, date string, sportTag sport.Sport) ([]fixture.Summary, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FixtureService.ListFixtures")
	defer span.End()

	league = strings.TrimSpace(league)
	date = strings.TrimSpace(date)
	if sportTag == "" {
		sportTag = sport.Soccer
	}

	key := fmt.Sprintf("fixtures:%s:%s:%s", sportTag, strings.ToLower(league), date)
	var cached []fixture.Summary
	if s.cache.Get(ctx, key, s.ttl, &cached) {
		return cached, nil
	}

	if !s.probe.Online(ctx) {
		s.logger.InfoContext(ctx, "fixtures served from backup slate: provider offline", "sport", sportTag)
		return fixture.BackupList(sportTag), nil
	}

	completion, err := s.client.Generate(ctx, prompt.Fixtures(league, date, sportTag), true)
	if err != nil {
		if isDegradedModeError(err) {
			s.logger.WarnContext(ctx, "fixtures served from backup slate", "sport", sportTag, "error", err)
			return fixture.BackupList(sportTag), nil
		}
		return nil, fmt.Errorf("generate fixtures: %w", err)
	}

	rows, err := fixture.ParseList(completion.Text, league, sportTag)
	if err != nil {
		// The provider answered but did not honor the payload contract.
		// Treat it like an outage rather than surfacing a parse error.
		s.logger.WarnContext(ctx, "fixtures served from backup slate: unparseable payload", "sport", sportTag, "error", err)
		return fixture.BackupList(sportTag), nil
	}

	s.cache.Set(ctx, key, rows)
	return rows, nil
}
