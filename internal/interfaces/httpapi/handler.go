package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"

	"github.com/machekepfukudzai-ui/SOCCER-ORACLE/internal/domain/analysis"
	"github.com/machekepfukudzai-ui/SOCCER-ORACLE/internal/domain/sport"
	"github.com/machekepfukudzai-ui/SOCCER-ORACLE/internal/platform/logging"
	"github.com/machekepfukudzai-ui/SOCCER-ORACLE/internal/usecase"
)

type Handler struct {
	analysisService *usecase.AnalysisService
	fixtureService  *usecase.FixtureService
	oddsService     *usecase.OddsService
	logger          *logging.Logger
	validator       *validator.Validate
}

func NewHandler(
	analysisService *usecase.AnalysisService,
	fixtureService *usecase.FixtureService,
	oddsService *usecase.OddsService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		analysisService: analysisService,
		fixtureService:  fixtureService,
		oddsService:     oddsService,
		logger:          logger,
		validator:       validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) ListFixtures(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListFixtures")
	defer span.End()

	sportTag, err := sportFromQuery(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	league := strings.TrimSpace(r.URL.Query().Get("league"))
	date := strings.TrimSpace(r.URL.Query().Get("date"))

	rows, err := h.fixtureService.ListFixtures(ctx, league, date, sportTag)
	if err != nil {
		h.logger.ErrorContext(ctx, "list fixtures failed", "sport", sportTag, "league", league, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, rows)
}

type analyzeRequest struct {
	HomeTeam string `json:"homeTeam" validate:"required,max=80"`
	AwayTeam string `json:"awayTeam" validate:"required,max=80"`
	League   string `json:"league" validate:"max=80"`
	Sport    string `json:"sport" validate:"max=20"`
	Detailed bool   `json:"detailed"`
	Live     *struct {
		CurrentScore string `json:"currentScore" validate:"required,max=12"`
		MatchTime    string `json:"matchTime" validate:"max=12"`
	} `json:"live"`
}

func (h *Handler) AnalyzeMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AnalyzeMatch")
	defer span.End()

	var payload analyzeRequest
	if err := sonic.ConfigDefault.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: decode request body: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, payload); err != nil {
		writeError(ctx, w, err)
		return
	}

	sportTag, err := normalizeSportParam(payload.Sport)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	req := usecase.MatchRequest{
		Home:   payload.HomeTeam,
		Away:   payload.AwayTeam,
		League: payload.League,
		Sport:  sportTag,
	}
	if payload.Live != nil {
		req.Live = &analysis.LiveState{
			CurrentScore: payload.Live.CurrentScore,
			MatchTime:    payload.Live.MatchTime,
		}
	}

	if payload.Detailed {
		detail, err := h.analysisService.AnalyzeMatchDetailed(ctx, req)
		if err != nil {
			h.logger.ErrorContext(ctx, "detailed analysis failed", "home", req.Home, "away", req.Away, "error", err)
			writeError(ctx, w, err)
			return
		}
		writeSuccess(ctx, w, http.StatusOK, detailedAnalysisDTO{
			Analysis:   detail.Analysis,
			Odds:       detail.Odds,
			Comparison: detail.Comparison,
		})
		return
	}

	result, err := h.analysisService.AnalyzeMatch(ctx, req)
	if err != nil {
		h.logger.ErrorContext(ctx, "analysis failed", "home", req.Home, "away", req.Away, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, result)
}

func (h *Handler) GetOdds(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetOdds")
	defer span.End()

	home, away, sportTag, err := matchupFromQuery(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	league := strings.TrimSpace(r.URL.Query().Get("league"))

	odds, ok := h.oddsService.FetchOdds(ctx, home, away, league, sportTag)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: odds are not available for this matchup right now", usecase.ErrNotFound))
		return
	}

	writeSuccess(ctx, w, http.StatusOK, odds)
}

func (h *Handler) GetComparison(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetComparison")
	defer span.End()

	home, away, sportTag, err := matchupFromQuery(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	comparison, ok := h.oddsService.FetchComparison(ctx, home, away, sportTag)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: comparison is not available for this matchup right now", usecase.ErrNotFound))
		return
	}

	writeSuccess(ctx, w, http.StatusOK, comparison)
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}
	return nil
}

type detailedAnalysisDTO struct {
	Analysis   analysis.Response    `json:"analysis"`
	Odds       *analysis.Outcome    `json:"odds,omitempty"`
	Comparison *analysis.Comparison `json:"comparison,omitempty"`
}

func matchupFromQuery(r *http.Request) (home, away string, sportTag sport.Sport, err error) {
	home = strings.TrimSpace(r.URL.Query().Get("home"))
	away = strings.TrimSpace(r.URL.Query().Get("away"))
	if home == "" || away == "" {
		return "", "", "", fmt.Errorf("%w: home and away query parameters are required", usecase.ErrInvalidInput)
	}
	sportTag, err = sportFromQuery(r)
	return home, away, sportTag, err
}

func sportFromQuery(r *http.Request) (sport.Sport, error) {
	return normalizeSportParam(r.URL.Query().Get("sport"))
}

func normalizeSportParam(value string) (sport.Sport, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return sport.Soccer, nil
	}
	sportTag, ok := sport.Normalize(value)
	if !ok {
		return "", fmt.Errorf("%w: unknown sport %q", usecase.ErrInvalidInput, value)
	}
	return sportTag, nil
}
