package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/machekepfukudzai-ui/SOCCER-ORACLE/internal/domain/analysis"
	"github.com/machekepfukudzai-ui/SOCCER-ORACLE/internal/domain/fixture"
	"github.com/machekepfukudzai-ui/SOCCER-ORACLE/internal/domain/sport"
	"github.com/machekepfukudzai-ui/SOCCER-ORACLE/internal/platform/logging"
)

func newAnalysisService(client *fakeClient, probe Probe) (*AnalysisService, *OddsService) {
	store, _ := newTestCache()
	odds := NewOddsService(client, probe, store, logging.NewNop(), time.Minute, time.Hour)
	svc := NewAnalysisService(client, probe, store, odds, logging.NewNop(), time.Hour, 2)
	return svc, odds
}

func soccerRequest() MatchRequest {
	return MatchRequest{Home: "Arsenal", Away: "Chelsea", League: "Premier League", Sport: sport.Soccer}
}

func TestAnalyzeMatch_EmptyTeamRejectedBeforeNetwork(t *testing.T) {
	t.Parallel()

	client := &fakeClient{}
	svc, _ := newAnalysisService(client, fakeProbe{online: true})

	_, err := svc.AnalyzeMatch(context.Background(), MatchRequest{Home: "  ", Away: "Chelsea"})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("error=%v, want ErrInvalidInput", err)
	}
	if client.calls.Load() != 0 {
		t.Fatal("invalid input must be rejected before any provider call")
	}
}

func TestAnalyzeMatch_OfflineReturnsSyntheticUncached(t *testing.T) {
	t.Parallel()

	client := &fakeClient{}
	store, blobs := newTestCache()
	odds := NewOddsService(client, fakeProbe{}, store, logging.NewNop(), 0, 0)
	svc := NewAnalysisService(client, fakeProbe{}, store, odds, logging.NewNop(), 0, 0)

	result, err := svc.AnalyzeMatch(context.Background(), soccerRequest())
	if err != nil {
		t.Fatalf("offline analysis must not error: %v", err)
	}
	if !result.Synthetic {
		t.Fatal("offline result must be marked synthetic")
	}
	if client.calls.Load() != 0 {
		t.Fatal("offline mode must not call the provider")
	}
	if blobs.Len() != 0 {
		t.Fatal("synthetic results must never be cached")
	}
}

func TestAnalyzeMatch_RateLimitFallsBackUncached(t *testing.T) {
	t.Parallel()

	client := &fakeClient{generate: func(context.Context, string, bool) (Completion, error) {
		return Completion{}, fmt.Errorf("%w: provider status=429", ErrRateLimited)
	}}
	store, blobs := newTestCache()
	odds := NewOddsService(client, fakeProbe{online: true}, store, logging.NewNop(), 0, 0)
	svc := NewAnalysisService(client, fakeProbe{online: true}, store, odds, logging.NewNop(), 0, 0)

	result, err := svc.AnalyzeMatch(context.Background(), soccerRequest())
	if err != nil {
		t.Fatalf("rate limit must degrade, not fail: %v", err)
	}
	if !result.Synthetic {
		t.Fatal("rate-limited result must be synthetic")
	}
	if blobs.Len() != 0 {
		t.Fatal("fallback result leaked into the cache")
	}
}

func TestAnalyzeMatch_TransportErrorPropagates(t *testing.T) {
	t.Parallel()

	boom := errors.New("connection reset")
	client := &fakeClient{generate: func(context.Context, string, bool) (Completion, error) {
		return Completion{}, boom
	}}
	svc, _ := newAnalysisService(client, fakeProbe{online: true})

	_, err := svc.AnalyzeMatch(context.Background(), soccerRequest())
	if !errors.Is(err, boom) {
		t.Fatalf("error=%v, want wrapped transport error", err)
	}
}

func TestAnalyzeMatch_SuccessIsCached(t *testing.T) {
	t.Parallel()

	client := &fakeClient{generate: staticCompletion(analysisCompletionText)}
	svc, _ := newAnalysisService(client, fakeProbe{online: true})
	ctx := context.Background()

	first, err := svc.AnalyzeMatch(ctx, soccerRequest())
	if err != nil {
		t.Fatalf("first call failed: %v", err)
	}
	if first.Sections[analysis.SectionScorePrediction] != "2-1" {
		t.Fatalf("unexpected score section: %q", first.Sections[analysis.SectionScorePrediction])
	}
	if first.Stats == nil || first.Stats.WinProbability == nil || first.Stats.WinProbability.Home != 55 {
		t.Fatalf("stats not parsed: %+v", first.Stats)
	}

	second, err := svc.AnalyzeMatch(ctx, soccerRequest())
	if err != nil {
		t.Fatalf("second call failed: %v", err)
	}
	if client.calls.Load() != 1 {
		t.Fatalf("provider called %d times, want 1 (cache hit)", client.calls.Load())
	}
	if second.Sections[analysis.SectionSummary] != first.Sections[analysis.SectionSummary] {
		t.Fatal("cached result diverged from original")
	}
}

func TestAnalyzeMatch_LiveRequestBypassesCache(t *testing.T) {
	t.Parallel()

	client := &fakeClient{generate: staticCompletion(analysisCompletionText)}
	svc, _ := newAnalysisService(client, fakeProbe{online: true})
	ctx := context.Background()

	req := soccerRequest()
	req.Live = &analysis.LiveState{CurrentScore: "1-0", MatchTime: "37'"}

	if _, err := svc.AnalyzeMatch(ctx, req); err != nil {
		t.Fatalf("live call failed: %v", err)
	}
	if _, err := svc.AnalyzeMatch(ctx, req); err != nil {
		t.Fatalf("second live call failed: %v", err)
	}
	if client.calls.Load() != 2 {
		t.Fatalf("provider called %d times, want 2 (no caching for live)", client.calls.Load())
	}
}

func TestAnalyzeMatchDetailed_SupplementaryAbsenceDoesNotFail(t *testing.T) {
	t.Parallel()

	// The provider serves the analysis but nothing parseable for odds or
	// comparison, so both supplementary panels must read as absent.
	client := &fakeClient{generate: staticCompletion(analysisCompletionText)}
	svc, _ := newAnalysisService(client, fakeProbe{online: true})

	detail, err := svc.AnalyzeMatchDetailed(context.Background(), soccerRequest())
	if err != nil {
		t.Fatalf("detailed analysis failed: %v", err)
	}
	if detail.Analysis.RawText == "" {
		t.Fatal("main analysis missing")
	}
	if detail.Odds != nil || detail.Comparison != nil {
		t.Fatal("unparseable supplementary data must be absent, not fabricated")
	}
}

func TestAnalyzeMatchDetailed_AttachesOddsAndComparison(t *testing.T) {
	t.Parallel()

	client := &fakeClient{generate: func(_ context.Context, p string, _ bool) (Completion, error) {
		switch {
		case strings.Contains(p, "decimal betting odds"):
			return Completion{Text: oddsCompletionText}, nil
		case strings.Contains(p, "Compare the"):
			return Completion{Text: comparisonCompletionText}, nil
		default:
			return Completion{Text: analysisCompletionText}, nil
		}
	}}
	svc, _ := newAnalysisService(client, fakeProbe{online: true})

	detail, err := svc.AnalyzeMatchDetailed(context.Background(), soccerRequest())
	if err != nil {
		t.Fatalf("detailed analysis failed: %v", err)
	}
	if detail.Odds == nil || detail.Odds.Home != 1.85 {
		t.Fatalf("odds not attached: %+v", detail.Odds)
	}
	if detail.Comparison == nil || detail.Comparison.Home.Position != "2nd" {
		t.Fatalf("comparison not attached: %+v", detail.Comparison)
	}
}

func TestWarmFixtureOdds_PrimesTheCache(t *testing.T) {
	t.Parallel()

	client := &fakeClient{generate: staticCompletion(oddsCompletionText)}
	svc, odds := newAnalysisService(client, fakeProbe{online: true})
	ctx := context.Background()

	slate := []fixture.Summary{
		{HomeTeam: "Arsenal", AwayTeam: "Chelsea", Sport: sport.Soccer},
		{HomeTeam: "Liverpool", AwayTeam: "Everton", Sport: sport.Soccer},
	}
	if err := svc.WarmFixtureOdds(ctx, slate); err != nil {
		t.Fatalf("warm failed: %v", err)
	}

	warmed := client.calls.Load()
	if warmed != 2 {
		t.Fatalf("warm made %d provider calls, want 2", warmed)
	}

	if _, ok := odds.FetchOdds(ctx, "Arsenal", "Chelsea", "", sport.Soccer); !ok {
		t.Fatal("warmed odds entry missing")
	}
	if client.calls.Load() != warmed {
		t.Fatal("post-warm fetch hit the provider instead of the cache")
	}
}
