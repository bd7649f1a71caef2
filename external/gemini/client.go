// Package gemini calls the Google Generative Language API to produce match
// analysis text. The client is resilient by construction: retries with
// backoff for transient failures, a circuit breaker for sustained outages,
// and request collapsing for identical prompts in flight.
package gemini

import (
	"context"
	stderrors "errors"
	"fmt"
	"hash/fnv"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/valyala/bytebufferpool"

	"github.com/machekepfukudzai-ui/SOCCER-ORACLE/internal/platform/logging"
	"github.com/machekepfukudzai-ui/SOCCER-ORACLE/internal/platform/resilience"
	"github.com/machekepfukudzai-ui/SOCCER-ORACLE/internal/usecase"
)

const (
	defaultBaseURL = "https://generativelanguage.googleapis.com"
	defaultModel   = "gemini-2.0-flash"
	maxBodyBytes   = 4 << 20
)

var errGeminiTransient = crerr.New("gemini transient failure")

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	APIKey         string
	Model          string
	Timeout        time.Duration
	MaxRetries     int
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

type Client struct {
	httpClient     *http.Client
	baseURL        string
	apiKey         string
	model          string
	maxRetries     int
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
	flight         resilience.SingleFlight
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 45 * time.Second
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = defaultModel
	}

	return &Client{
		httpClient:     httpClient,
		baseURL:        baseURL,
		apiKey:         strings.TrimSpace(cfg.APIKey),
		model:          model,
		maxRetries:     maxInt(cfg.MaxRetries, 0),
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(cfg.CircuitBreaker),
		circuitEnabled: cfg.CircuitBreaker.Enabled,
	}
}

type generateRequest struct {
	Contents []content `json:"contents"`
	Tools    []tool    `json:"tools,omitempty"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type tool struct {
	GoogleSearch struct{} `json:"google_search"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []part `json:"parts"`
		} `json:"content"`
		GroundingMetadata struct {
			GroundingChunks []struct {
				Web struct {
					URI   string `json:"uri"`
					Title string `json:"title"`
				} `json:"web"`
			} `json:"groundingChunks"`
		} `json:"groundingMetadata"`
	} `json:"candidates"`
}

// Generate sends prompt to the configured model and returns the raw text
// plus any grounding citations. Identical prompts already in flight share a
// single upstream request.
func (c *Client) Generate(ctx context.Context, prompt string, grounding bool) (usecase.Completion, error) {
	if strings.TrimSpace(prompt) == "" {
		return usecase.Completion{}, fmt.Errorf("%w: prompt must not be empty", usecase.ErrInvalidInput)
	}
	if c.apiKey == "" {
		return usecase.Completion{}, fmt.Errorf("%w: gemini api key is not configured", usecase.ErrDependencyUnavailable)
	}

	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "gemini circuit breaker rejected request", "state", c.breaker.State())
			return usecase.Completion{}, fmt.Errorf("%w: completion provider is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
	}

	out, err, _ := c.flight.Do(requestKey(c.model, prompt, grounding), func() (any, error) {
		raw, reqErr := c.executeRequest(ctx, prompt, grounding)
		if c.circuitEnabled {
			if reqErr != nil && isGeminiCircuitFailure(reqErr) {
				c.breaker.RecordFailure()
			} else {
				c.breaker.RecordSuccess()
			}
		}
		return raw, reqErr
	})
	if err != nil {
		return usecase.Completion{}, err
	}

	raw, ok := out.([]byte)
	if !ok {
		return usecase.Completion{}, fmt.Errorf("unexpected response payload type %T", out)
	}

	var decoded generateResponse
	if err := sonic.Unmarshal(raw, &decoded); err != nil {
		return usecase.Completion{}, fmt.Errorf("decode provider payload: %w", err)
	}
	if len(decoded.Candidates) == 0 {
		return usecase.Completion{}, fmt.Errorf("%w: provider returned no candidates", usecase.ErrDependencyUnavailable)
	}

	candidate := decoded.Candidates[0]
	texts := make([]string, 0, len(candidate.Content.Parts))
	for _, p := range candidate.Content.Parts {
		if p.Text != "" {
			texts = append(texts, p.Text)
		}
	}

	completion := usecase.Completion{Text: strings.Join(texts, "\n")}
	for _, chunk := range candidate.GroundingMetadata.GroundingChunks {
		if chunk.Web.URI == "" {
			continue
		}
		completion.Citations = append(completion.Citations, usecase.CompletionCitation{
			URI:   chunk.Web.URI,
			Title: chunk.Web.Title,
		})
	}
	return completion, nil
}

func (c *Client) executeRequest(ctx context.Context, prompt string, grounding bool) ([]byte, error) {
	body := generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	}
	if grounding {
		body.Tools = []tool{{}}
	}

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)
	encoded, err := sonic.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encode request body: %w", err)
	}
	_, _ = buf.Write(encoded)

	fullURL := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", c.baseURL, c.model, url.QueryEscape(c.apiKey))

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, fullURL, strings.NewReader(buf.String()))
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("content-type", "application/json")
		req.Header.Set("accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("%w: send request: %s", errGeminiTransient, sanitizeSensitiveText(err.Error(), c.apiKey))
		} else {
			raw, readErr := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
			_ = resp.Body.Close()
			switch {
			case readErr != nil:
				lastErr = fmt.Errorf("%w: read response body: %v", errGeminiTransient, readErr)
			case resp.StatusCode >= 200 && resp.StatusCode < 300:
				return raw, nil
			case isRateLimited(resp.StatusCode, raw):
				// Quota exhaustion will not clear within the retry window,
				// so surface it immediately for the caller to branch on.
				return nil, fmt.Errorf("%w: provider status=%d", usecase.ErrRateLimited, resp.StatusCode)
			case isRetryableStatus(resp.StatusCode):
				lastErr = fmt.Errorf("%w: provider status=%d body=%s", errGeminiTransient, resp.StatusCode, abbreviateBody(raw))
			default:
				return nil, fmt.Errorf("provider status=%d body=%s", resp.StatusCode, abbreviateBody(raw))
			}
		}

		if attempt == c.maxRetries {
			break
		}
		backoff := time.Duration(attempt+1) * time.Second
		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("provider request failed")
	}
	c.logger.WarnContext(ctx, "gemini request failed", "url", redactAPIURL(fullURL), "error", lastErr)
	return nil, lastErr
}

func requestKey(model, prompt string, grounding bool) string {
	h := fnv.New64a()
	_, _ = h.Write([]byte(model))
	_, _ = h.Write([]byte{0})
	_, _ = h.Write([]byte(prompt))
	_, _ = h.Write([]byte{0})
	_, _ = h.Write([]byte(strconv.FormatBool(grounding)))
	return strconv.FormatUint(h.Sum64(), 16)
}

func isRateLimited(status int, body []byte) bool {
	if status == http.StatusTooManyRequests {
		return true
	}
	return strings.Contains(string(body), "RESOURCE_EXHAUSTED")
}

func isRetryableStatus(code int) bool {
	return code >= http.StatusInternalServerError
}

func isGeminiCircuitFailure(err error) bool {
	if err == nil {
		return false
	}
	return stderrors.Is(err, errGeminiTransient)
}

func sanitizeSensitiveText(value, apiKey string) string {
	value = strings.TrimSpace(value)
	if value == "" || apiKey == "" {
		return value
	}
	return strings.ReplaceAll(value, apiKey, "REDACTED")
}

func redactAPIURL(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	query := parsed.Query()
	if query.Has("key") {
		query.Set("key", "REDACTED")
		parsed.RawQuery = query.Encode()
	}
	return parsed.String()
}

func abbreviateBody(body []byte) string {
	text := strings.TrimSpace(string(body))
	if len(text) <= 240 {
		return text
	}
	return text[:240] + "..."
}

func maxInt(left, right int) int {
	if left > right {
		return left
	}
	return right
}
