// Package connectivity answers one question cheaply: does the process have a
// usable network path to the completion provider right now. The answer is
// cached briefly so hot request paths never stack probe calls.
package connectivity

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/machekepfukudzai-ui/SOCCER-ORACLE/internal/platform/logging"
)

const (
	defaultProbeTimeout = 3 * time.Second
	defaultCacheWindow  = 15 * time.Second
)

type ProbeConfig struct {
	// URL to probe with a HEAD request. Empty disables probing and the
	// checker always reports online.
	URL         string
	Timeout     time.Duration
	CacheWindow time.Duration
	HTTPClient  *http.Client
	Logger      *logging.Logger
}

type Probe struct {
	url         string
	cacheWindow time.Duration
	httpClient  *http.Client
	logger      *logging.Logger
	now         func() time.Time

	mu        sync.Mutex
	checkedAt time.Time
	online    bool
}

func NewProbe(cfg ProbeConfig) *Probe {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultProbeTimeout
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: timeout}
	}

	cacheWindow := cfg.CacheWindow
	if cacheWindow <= 0 {
		cacheWindow = defaultCacheWindow
	}

	return &Probe{
		url:         strings.TrimSpace(cfg.URL),
		cacheWindow: cacheWindow,
		httpClient:  httpClient,
		logger:      logger,
		now:         time.Now,
	}
}

// Online reports whether the provider endpoint answered a HEAD request
// recently. Results are cached for the configured window, so callers can
// check on every request without fanning out probes.
func (p *Probe) Online(ctx context.Context) bool {
	if p.url == "" {
		return true
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.checkedAt.IsZero() && p.now().Sub(p.checkedAt) < p.cacheWindow {
		return p.online
	}

	p.online = p.check(ctx)
	p.checkedAt = p.now()
	return p.online
}

func (p *Probe) check(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, p.url, nil)
	if err != nil {
		return false
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		p.logger.DebugContext(ctx, "connectivity probe failed", "url", p.url, "error", err)
		return false
	}
	_ = resp.Body.Close()

	// Any HTTP response proves the network path; even a 4xx means we
	// reached the provider edge.
	return true
}
