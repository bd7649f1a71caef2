package httpapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	sonic "github.com/bytedance/sonic"

	"github.com/machekepfukudzai-ui/SOCCER-ORACLE/internal/platform/cache"
	"github.com/machekepfukudzai-ui/SOCCER-ORACLE/internal/platform/logging"
	"github.com/machekepfukudzai-ui/SOCCER-ORACLE/internal/usecase"
)

type stubClient struct {
	generate func(ctx context.Context, prompt string, grounding bool) (usecase.Completion, error)
}

func (s stubClient) Generate(ctx context.Context, prompt string, grounding bool) (usecase.Completion, error) {
	if s.generate == nil {
		return usecase.Completion{Text: "## Summary\nok"}, nil
	}
	return s.generate(ctx, prompt, grounding)
}

type stubProbe struct{ online bool }

func (s stubProbe) Online(context.Context) bool { return s.online }

func newTestRouter(t *testing.T, client usecase.CompletionClient, online bool) http.Handler {
	t.Helper()

	logger := logging.NewNop()
	store := cache.NewStore(cache.NewMemoryStore(), logger)
	probe := stubProbe{online: online}
	odds := usecase.NewOddsService(client, probe, store, logger, time.Minute, time.Hour)
	analysisSvc := usecase.NewAnalysisService(client, probe, store, odds, logger, time.Hour, 2)
	fixtures := usecase.NewFixtureService(client, probe, store, logger, 30*time.Minute)

	handler := NewHandler(analysisSvc, fixtures, odds, logger)
	return NewRouter(handler, logger, []string{"*"})
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) googleResponseEnvelope {
	t.Helper()
	var envelope googleResponseEnvelope
	if err := sonic.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode envelope: %v (body=%s)", err, rec.Body.String())
	}
	return envelope
}

func TestHealthz(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t, stubClient{}, true)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status=%d, want 200", rec.Code)
	}
	envelope := decodeEnvelope(t, rec)
	if envelope.APIVersion != googleAPIVersion {
		t.Fatalf("apiVersion=%q", envelope.APIVersion)
	}
}

func TestAnalyzeMatch_MissingTeamRejected(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t, stubClient{}, true)
	rec := httptest.NewRecorder()
	body := strings.NewReader(`{"awayTeam": "Chelsea"}`)
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/matches/analyze", body))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status=%d, want 400", rec.Code)
	}
	envelope := decodeEnvelope(t, rec)
	if envelope.Error == nil || envelope.Error.Status != "INVALID_ARGUMENT" {
		t.Fatalf("unexpected error body: %+v", envelope.Error)
	}
}

func TestAnalyzeMatch_UnknownSportRejected(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t, stubClient{}, true)
	rec := httptest.NewRecorder()
	body := strings.NewReader(`{"homeTeam": "Arsenal", "awayTeam": "Chelsea", "sport": "cricket"}`)
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/matches/analyze", body))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status=%d, want 400", rec.Code)
	}
}

func TestAnalyzeMatch_ReturnsParsedSections(t *testing.T) {
	t.Parallel()

	client := stubClient{generate: func(context.Context, string, bool) (usecase.Completion, error) {
		return usecase.Completion{Text: "## Score Prediction\n2-1\n\n## Summary\nHome edge."}, nil
	}}
	router := newTestRouter(t, client, true)
	rec := httptest.NewRecorder()
	body := strings.NewReader(`{"homeTeam": "Arsenal", "awayTeam": "Chelsea", "league": "Premier League"}`)
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/matches/analyze", body))

	if rec.Code != http.StatusOK {
		t.Fatalf("status=%d, want 200 (body=%s)", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"scorePrediction":"2-1"`) {
		t.Fatalf("parsed sections missing from response: %s", rec.Body.String())
	}
}

func TestAnalyzeMatch_OfflineStillServes(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t, stubClient{}, false)
	rec := httptest.NewRecorder()
	body := strings.NewReader(`{"homeTeam": "Arsenal", "awayTeam": "Chelsea"}`)
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/matches/analyze", body))

	if rec.Code != http.StatusOK {
		t.Fatalf("status=%d, want 200 for degraded mode", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"synthetic":true`) {
		t.Fatalf("offline response not marked synthetic: %s", rec.Body.String())
	}
}

func TestGetOdds_AbsentMapsToNotFound(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t, stubClient{}, false)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/matches/odds?home=Arsenal&away=Chelsea", nil))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status=%d, want 404", rec.Code)
	}
	envelope := decodeEnvelope(t, rec)
	if envelope.Error == nil || envelope.Error.Status != "NOT_FOUND" {
		t.Fatalf("unexpected error body: %+v", envelope.Error)
	}
}

func TestGetOdds_MissingQueryRejected(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t, stubClient{}, true)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/matches/odds?home=Arsenal", nil))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status=%d, want 400", rec.Code)
	}
}

func TestListFixtures_ServesBackupWhenOffline(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t, stubClient{}, false)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/fixtures?sport=basketball", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status=%d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"status":"SCHEDULED"`) {
		t.Fatalf("backup slate missing: %s", rec.Body.String())
	}
}

func TestCORS_PreflightAllowed(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t, stubClient{}, true)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodOptions, "/v1/fixtures", nil)
	req.Header.Set("Origin", "https://dashboard.example.com")
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("status=%d, want 204", rec.Code)
	}
	if rec.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Fatal("missing CORS allow-origin header")
	}
}
