package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// RateLimitConfig indicates how many requests are allowed within a given interval.
type RateLimitConfig struct {
	Requests int
	Interval time.Duration
}

// BrowserConfig drives the headless Chrome session used for scraping.
type BrowserConfig struct {
	Headless          bool
	ChromePath        string
	UserAgent         string
	NavigationTimeout time.Duration
	ResultsTimeout    time.Duration
	DetailTimeout     time.Duration
	DebugDir          string
}

// Config aggregates application-wide configuration values.
type Config struct {
	Port                 string
	DatabaseURL          string
	JWTSecret            string
	TokenTTL             time.Duration
	AuthRequired         bool
	OperatorEmail        string
	OperatorPasswordHash string
	RateLimitScrape      RateLimitConfig
	MaxConcurrentRuns    int
	RunTTL               time.Duration
	VerifyWebsites       bool
	NotifyURL            string
	LogLevel             string
	LogFormat            string
	Browser              BrowserConfig
}

const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// Load reads configuration from environment variables and applies sane defaults.
func Load() (*Config, error) {
	cfg := &Config{
		Port:                 getEnv("PORT", "8501"),
		DatabaseURL:          os.Getenv("DATABASE_URL"),
		JWTSecret:            getEnv("JWT_SECRET", "dev-secret"),
		TokenTTL:             parseDuration(getEnv("JWT_TTL", "24h"), 24*time.Hour),
		OperatorEmail:        strings.ToLower(strings.TrimSpace(os.Getenv("OPERATOR_EMAIL"))),
		OperatorPasswordHash: os.Getenv("OPERATOR_PASSWORD_HASH"),
		RunTTL:               parseDuration(getEnv("RUN_TTL", "2h"), 2*time.Hour),
		NotifyURL:            strings.TrimSpace(os.Getenv("NOTIFY_URL")),
		LogLevel:             getEnv("LOG_LEVEL", "info"),
		LogFormat:            getEnv("LOG_FORMAT", "text"),
		Browser: BrowserConfig{
			ChromePath:        os.Getenv("CHROME_PATH"),
			UserAgent:         getEnv("USER_AGENT", defaultUserAgent),
			NavigationTimeout: parseDuration(getEnv("NAVIGATION_TIMEOUT", "60s"), 60*time.Second),
			ResultsTimeout:    parseDuration(getEnv("RESULTS_TIMEOUT", "30s"), 30*time.Second),
			DetailTimeout:     parseDuration(getEnv("DETAIL_TIMEOUT", "5s"), 5*time.Second),
			DebugDir:          getEnv("DEBUG_DIR", "debug"),
		},
	}

	var err error
	if cfg.AuthRequired, err = parseBool(getEnv("AUTH_REQUIRED", "false")); err != nil {
		return nil, fmt.Errorf("invalid AUTH_REQUIRED value: %w", err)
	}
	if cfg.VerifyWebsites, err = parseBool(getEnv("VERIFY_WEBSITES", "false")); err != nil {
		return nil, fmt.Errorf("invalid VERIFY_WEBSITES value: %w", err)
	}
	if cfg.Browser.Headless, err = parseBool(getEnv("HEADLESS", "true")); err != nil {
		return nil, fmt.Errorf("invalid HEADLESS value: %w", err)
	}

	cfg.MaxConcurrentRuns, err = strconv.Atoi(getEnv("MAX_CONCURRENT_RUNS", "1"))
	if err != nil || cfg.MaxConcurrentRuns <= 0 {
		return nil, fmt.Errorf("invalid MAX_CONCURRENT_RUNS value: %q", os.Getenv("MAX_CONCURRENT_RUNS"))
	}

	rl, err := parseRateLimit(getEnv("RATE_LIMIT_SCRAPE", "5/min"))
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_SCRAPE value: %w", err)
	}
	cfg.RateLimitScrape = rl

	if cfg.AuthRequired && (cfg.OperatorEmail == "" || cfg.OperatorPasswordHash == "") {
		return nil, fmt.Errorf("AUTH_REQUIRED needs OPERATOR_EMAIL and OPERATOR_PASSWORD_HASH")
	}

	return cfg, nil
}

func parseRateLimit(value string) (RateLimitConfig, error) {
	parts := strings.Split(value, "/")
	if len(parts) != 2 {
		return RateLimitConfig{}, fmt.Errorf("expected format <requests>/<interval>, got %q", value)
	}

	requests, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil || requests <= 0 {
		return RateLimitConfig{}, fmt.Errorf("invalid request count: %v", parts[0])
	}

	unit := strings.ToLower(strings.TrimSpace(parts[1]))
	var interval time.Duration
	switch unit {
	case "s", "sec", "second", "seconds":
		interval = time.Second
	case "m", "min", "minute", "minutes":
		interval = time.Minute
	case "h", "hr", "hour", "hours":
		interval = time.Hour
	default:
		return RateLimitConfig{}, fmt.Errorf("unsupported interval unit: %s", unit)
	}

	return RateLimitConfig{Requests: requests, Interval: interval}, nil
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok && val != "" {
		return val
	}
	return fallback
}

func parseDuration(input string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(input)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

func parseBool(input string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "1", "true", "yes", "on":
		return true, nil
	case "0", "false", "no", "off", "":
		return false, nil
	}
	return false, fmt.Errorf("not a boolean: %q", input)
}
