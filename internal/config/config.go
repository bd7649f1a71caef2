package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/machekepfukudzai-ui/SOCCER-ORACLE/internal/platform/logging"
)

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

const (
	CacheBackendMemory = "memory"
	CacheBackendRedis  = "redis"
)

// Config stores runtime configuration for the service.
type Config struct {
	AppEnv             string
	ServiceName        string
	ServiceVersion     string
	HTTPAddr           string
	ReadTimeout        time.Duration
	WriteTimeout       time.Duration
	CORSAllowedOrigins []string
	LogLevel           logging.Level

	CacheBackend  string
	CacheHardTTL  time.Duration
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	AnalysisTTL   time.Duration
	FixturesTTL   time.Duration
	OddsTTL       time.Duration
	ComparisonTTL time.Duration

	GeminiAPIKey                string
	GeminiBaseURL               string
	GeminiModel                 string
	GeminiTimeout               time.Duration
	GeminiMaxRetries            int
	GeminiCircuitEnabled        bool
	GeminiCircuitFailureCount   int
	GeminiCircuitOpenTimeout    time.Duration
	GeminiCircuitHalfOpenMaxReq int

	ProbeURL         string
	ProbeTimeout     time.Duration
	ProbeCacheWindow time.Duration

	OddsPollEnabled  bool
	OddsPollInterval time.Duration
	OddsPollLeague   string
	WarmWorkers      int

	UptraceEnabled   bool
	UptraceDSN       string
	PyroscopeEnabled bool
	PyroscopeServer  string
	PyroscopeAppName string
	PyroscopeToken   string
	PyroscopeRate    time.Duration
	PprofEnabled     bool
	PprofAddr        string
}

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	readTimeout, err := time.ParseDuration(getEnv("HTTP_READ_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse HTTP_READ_TIMEOUT: %w", err)
	}
	writeTimeout, err := time.ParseDuration(getEnv("HTTP_WRITE_TIMEOUT", "90s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse HTTP_WRITE_TIMEOUT: %w", err)
	}

	cacheBackend := strings.ToLower(strings.TrimSpace(getEnv("CACHE_BACKEND", CacheBackendMemory)))
	switch cacheBackend {
	case CacheBackendMemory, CacheBackendRedis:
	default:
		return Config{}, fmt.Errorf("invalid CACHE_BACKEND %q: valid values are %s, %s", cacheBackend, CacheBackendMemory, CacheBackendRedis)
	}
	cacheHardTTL, err := time.ParseDuration(getEnv("CACHE_HARD_TTL", "24h"))
	if err != nil {
		return Config{}, fmt.Errorf("parse CACHE_HARD_TTL: %w", err)
	}
	redisAddr := strings.TrimSpace(getEnv("REDIS_ADDR", ""))
	if cacheBackend == CacheBackendRedis && redisAddr == "" {
		return Config{}, fmt.Errorf("REDIS_ADDR is required when CACHE_BACKEND=redis")
	}
	redisDB, err := getEnvAsInt("REDIS_DB", 0)
	if err != nil {
		return Config{}, fmt.Errorf("parse REDIS_DB: %w", err)
	}

	analysisTTL, err := time.ParseDuration(getEnv("ANALYSIS_CACHE_TTL", "1h"))
	if err != nil {
		return Config{}, fmt.Errorf("parse ANALYSIS_CACHE_TTL: %w", err)
	}
	fixturesTTL, err := time.ParseDuration(getEnv("FIXTURES_CACHE_TTL", "30m"))
	if err != nil {
		return Config{}, fmt.Errorf("parse FIXTURES_CACHE_TTL: %w", err)
	}
	oddsTTL, err := time.ParseDuration(getEnv("ODDS_CACHE_TTL", "90s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse ODDS_CACHE_TTL: %w", err)
	}
	comparisonTTL, err := time.ParseDuration(getEnv("COMPARISON_CACHE_TTL", "24h"))
	if err != nil {
		return Config{}, fmt.Errorf("parse COMPARISON_CACHE_TTL: %w", err)
	}

	geminiAPIKey := strings.TrimSpace(getEnv("GEMINI_API_KEY", ""))
	if geminiAPIKey == "" {
		return Config{}, fmt.Errorf("GEMINI_API_KEY is required")
	}
	geminiTimeout, err := time.ParseDuration(getEnv("GEMINI_TIMEOUT", "45s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse GEMINI_TIMEOUT: %w", err)
	}
	geminiMaxRetries, err := getEnvAsInt("GEMINI_MAX_RETRIES", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse GEMINI_MAX_RETRIES: %w", err)
	}
	if geminiMaxRetries < 0 {
		return Config{}, fmt.Errorf("GEMINI_MAX_RETRIES must be >= 0")
	}
	geminiCircuitEnabled, err := strconv.ParseBool(getEnv("GEMINI_CIRCUIT_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse GEMINI_CIRCUIT_ENABLED: %w", err)
	}
	geminiCircuitFailureCount, err := getEnvAsInt("GEMINI_CIRCUIT_FAILURE_COUNT", 5)
	if err != nil {
		return Config{}, fmt.Errorf("parse GEMINI_CIRCUIT_FAILURE_COUNT: %w", err)
	}
	geminiCircuitOpenTimeout, err := time.ParseDuration(getEnv("GEMINI_CIRCUIT_OPEN_TIMEOUT", "30s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse GEMINI_CIRCUIT_OPEN_TIMEOUT: %w", err)
	}
	geminiCircuitHalfOpenMaxReq, err := getEnvAsInt("GEMINI_CIRCUIT_HALF_OPEN_MAX_REQ", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse GEMINI_CIRCUIT_HALF_OPEN_MAX_REQ: %w", err)
	}

	probeTimeout, err := time.ParseDuration(getEnv("CONNECTIVITY_PROBE_TIMEOUT", "3s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse CONNECTIVITY_PROBE_TIMEOUT: %w", err)
	}
	probeCacheWindow, err := time.ParseDuration(getEnv("CONNECTIVITY_PROBE_CACHE_WINDOW", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse CONNECTIVITY_PROBE_CACHE_WINDOW: %w", err)
	}

	oddsPollEnabled, err := strconv.ParseBool(getEnv("ODDS_POLL_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse ODDS_POLL_ENABLED: %w", err)
	}
	oddsPollInterval, err := time.ParseDuration(getEnv("ODDS_POLL_INTERVAL", "90s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse ODDS_POLL_INTERVAL: %w", err)
	}
	if oddsPollEnabled && oddsPollInterval <= 0 {
		return Config{}, fmt.Errorf("ODDS_POLL_INTERVAL must be > 0 when ODDS_POLL_ENABLED=true")
	}
	warmWorkers, err := getEnvAsInt("WARM_WORKERS", 4)
	if err != nil {
		return Config{}, fmt.Errorf("parse WARM_WORKERS: %w", err)
	}
	if warmWorkers < 1 {
		return Config{}, fmt.Errorf("WARM_WORKERS must be >= 1")
	}

	uptraceEnabled, err := strconv.ParseBool(getEnv("UPTRACE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_ENABLED: %w", err)
	}
	uptraceDSN := strings.TrimSpace(getEnv("UPTRACE_DSN", ""))
	if uptraceEnabled && uptraceDSN == "" {
		return Config{}, fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}

	pyroscopeEnabled, err := strconv.ParseBool(getEnv("PYROSCOPE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_ENABLED: %w", err)
	}
	pyroscopeServer := strings.TrimSpace(getEnv("PYROSCOPE_SERVER_ADDRESS", ""))
	if pyroscopeEnabled && pyroscopeServer == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_SERVER_ADDRESS is required when PYROSCOPE_ENABLED=true")
	}
	pyroscopeRate, err := time.ParseDuration(getEnv("PYROSCOPE_UPLOAD_RATE", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_UPLOAD_RATE: %w", err)
	}

	pprofEnabled, err := strconv.ParseBool(getEnv("PPROF_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PPROF_ENABLED: %w", err)
	}
	pprofAddr := strings.TrimSpace(getEnv("PPROF_ADDR", ":6060"))
	if pprofEnabled && pprofAddr == "" {
		return Config{}, fmt.Errorf("PPROF_ADDR is required when PPROF_ENABLED=true")
	}

	serviceName := strings.TrimSpace(getEnv("SERVICE_NAME", "soccer-oracle"))

	return Config{
		AppEnv:             appEnv,
		ServiceName:        serviceName,
		ServiceVersion:     strings.TrimSpace(getEnv("SERVICE_VERSION", "dev")),
		HTTPAddr:           strings.TrimSpace(getEnv("HTTP_ADDR", ":8080")),
		ReadTimeout:        readTimeout,
		WriteTimeout:       writeTimeout,
		CORSAllowedOrigins: splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		LogLevel:           parseLogLevel(getEnv("APP_LOG_LEVEL", "info")),

		CacheBackend:  cacheBackend,
		CacheHardTTL:  cacheHardTTL,
		RedisAddr:     redisAddr,
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       redisDB,

		AnalysisTTL:   analysisTTL,
		FixturesTTL:   fixturesTTL,
		OddsTTL:       oddsTTL,
		ComparisonTTL: comparisonTTL,

		GeminiAPIKey:                geminiAPIKey,
		GeminiBaseURL:               strings.TrimSpace(getEnv("GEMINI_BASE_URL", "")),
		GeminiModel:                 strings.TrimSpace(getEnv("GEMINI_MODEL", "gemini-2.0-flash")),
		GeminiTimeout:               geminiTimeout,
		GeminiMaxRetries:            geminiMaxRetries,
		GeminiCircuitEnabled:        geminiCircuitEnabled,
		GeminiCircuitFailureCount:   geminiCircuitFailureCount,
		GeminiCircuitOpenTimeout:    geminiCircuitOpenTimeout,
		GeminiCircuitHalfOpenMaxReq: geminiCircuitHalfOpenMaxReq,

		ProbeURL:         strings.TrimSpace(getEnv("CONNECTIVITY_PROBE_URL", "https://generativelanguage.googleapis.com")),
		ProbeTimeout:     probeTimeout,
		ProbeCacheWindow: probeCacheWindow,

		OddsPollEnabled:  oddsPollEnabled,
		OddsPollInterval: oddsPollInterval,
		OddsPollLeague:   strings.TrimSpace(getEnv("ODDS_POLL_LEAGUE", "")),
		WarmWorkers:      warmWorkers,

		UptraceEnabled:   uptraceEnabled,
		UptraceDSN:       uptraceDSN,
		PyroscopeEnabled: pyroscopeEnabled,
		PyroscopeServer:  pyroscopeServer,
		PyroscopeAppName: strings.TrimSpace(getEnv("PYROSCOPE_APP_NAME", serviceName)),
		PyroscopeToken:   getEnv("PYROSCOPE_AUTH_TOKEN", ""),
		PyroscopeRate:    pyroscopeRate,
		PprofEnabled:     pprofEnabled,
		PprofAddr:        pprofAddr,
	}, nil
}

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}

func parseLogLevel(v string) logging.Level {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "debug":
		return logging.LevelDebug
	case "warn", "warning":
		return logging.LevelWarn
	case "error":
		return logging.LevelError
	default:
		return logging.LevelInfo
	}
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	return value
}

func getEnvAsInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}

	return out, nil
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}
		out = append(out, item)
	}

	return out
}
