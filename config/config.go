package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	Browser   BrowserConfig
	Nav       NavConfig
	Crawl     CrawlConfig
	Auth      AuthConfig
	RateLimit RateLimitConfig
	Log       LogConfig
}

// ServerConfig controls the HTTP server.
type ServerConfig struct {
	Host string // default: "0.0.0.0"
	Port int    // default: 8080
	Mode string // "debug", "release", "test"; default: "release"
}

// BrowserConfig controls the Rod browser sessions.
type BrowserConfig struct {
	// Headless controls whether the browser runs headless.
	Headless bool // default: true

	// NoSandbox disables Chrome's sandbox (needed in Docker).
	NoSandbox bool // default: false

	// BrowserBin overrides the Chromium binary path.
	BrowserBin string

	// UserAgent is the fixed user-agent applied to every tab.
	UserAgent string

	// ViewportWidth/Height form the fixed realistic viewport.
	ViewportWidth  int // default: 1366
	ViewportHeight int // default: 900

	// IdleTimeout force-closes a session with no tab activity, reclaiming
	// the browser process under sustained load. Zero disables the watchdog.
	IdleTimeout time.Duration // default: 10m
}

// NavConfig controls the multi-strategy navigation controller.
type NavConfig struct {
	// RetryBackoff is slept between exhausted load strategies.
	RetryBackoff time.Duration // default: 5s

	// MarkerTimeout bounds the best-effort wait for the expected marker
	// element after a strategy's wait condition resolves.
	MarkerTimeout time.Duration // default: 5s
}

// CrawlConfig controls the search and detail crawlers.
type CrawlConfig struct {
	// BaseURL is the marketplace origin. The only wire-level dependency.
	BaseURL string // default: "https://www.airbnb.com"

	// SearchMaxPages bounds the total search pages visited per job.
	SearchMaxPages int // default: 25

	// SearchScrollPasses is the fixed number of scroll passes per results page.
	SearchScrollPasses int // default: 4

	// DetailConcurrency is the detail crawler's worker ceiling.
	DetailConcurrency int // default: 2

	// RequestsPerMinute throttles detail-page navigations.
	RequestsPerMinute int // default: 20

	// RequestTimeout is the per-listing deadline.
	RequestTimeout time.Duration // default: 3m

	// MaxRetries bounds per-request retries for both crawlers.
	MaxRetries int // default: 3
}

// AuthConfig controls API key authentication.
type AuthConfig struct {
	// Enabled toggles API key authentication.
	Enabled bool // default: false

	// APIKeys is the list of valid API keys.
	APIKeys []string
}

// RateLimitConfig controls per-key rate limiting.
type RateLimitConfig struct {
	// RequestsPerSecond is the sustained rate per API key.
	RequestsPerSecond float64 // default: 5

	// Burst is the maximum burst size per API key.
	Burst int // default: 10
}

// LogConfig controls structured logging.
type LogConfig struct {
	Level  string // default: "info"
	Format string // "json" or "text"; default: "json"
}

// Load reads configuration from environment variables with sane defaults.
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Host: envOr("STAYHARVEST_HOST", "0.0.0.0"),
			Port: envIntOr("STAYHARVEST_PORT", 8080),
			Mode: envOr("STAYHARVEST_MODE", "release"),
		},
		Browser: BrowserConfig{
			Headless:   envBoolOr("STAYHARVEST_HEADLESS", true),
			NoSandbox:  envBoolOr("STAYHARVEST_NO_SANDBOX", false),
			BrowserBin: os.Getenv("STAYHARVEST_BROWSER_BIN"),
			UserAgent: envOr("STAYHARVEST_USER_AGENT",
				"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36"),
			ViewportWidth:  envIntOr("STAYHARVEST_VIEWPORT_WIDTH", 1366),
			ViewportHeight: envIntOr("STAYHARVEST_VIEWPORT_HEIGHT", 900),
			IdleTimeout:    envDurationOr("STAYHARVEST_IDLE_TIMEOUT", 10*time.Minute),
		},
		Nav: NavConfig{
			RetryBackoff:  envDurationOr("STAYHARVEST_NAV_BACKOFF", 5*time.Second),
			MarkerTimeout: envDurationOr("STAYHARVEST_NAV_MARKER_TIMEOUT", 5*time.Second),
		},
		Crawl: CrawlConfig{
			BaseURL:            envOr("STAYHARVEST_BASE_URL", "https://www.airbnb.com"),
			SearchMaxPages:     envIntOr("STAYHARVEST_SEARCH_MAX_PAGES", 25),
			SearchScrollPasses: envIntOr("STAYHARVEST_SEARCH_SCROLLS", 4),
			DetailConcurrency:  envIntOr("STAYHARVEST_DETAIL_CONCURRENCY", 2),
			RequestsPerMinute:  envIntOr("STAYHARVEST_REQUESTS_PER_MINUTE", 20),
			RequestTimeout:     envDurationOr("STAYHARVEST_REQUEST_TIMEOUT", 3*time.Minute),
			MaxRetries:         envIntOr("STAYHARVEST_MAX_RETRIES", 3),
		},
		Auth: AuthConfig{
			Enabled: envBoolOr("STAYHARVEST_AUTH_ENABLED", false),
			APIKeys: envSliceOr("STAYHARVEST_API_KEYS", nil),
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: envFloatOr("STAYHARVEST_RATE_RPS", 5.0),
			Burst:             envIntOr("STAYHARVEST_RATE_BURST", 10),
		},
		Log: LogConfig{
			Level:  envOr("STAYHARVEST_LOG_LEVEL", "info"),
			Format: envOr("STAYHARVEST_LOG_FORMAT", "json"),
		},
	}
}

// --- helper functions ---

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func envBoolOr(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envFloatOr(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envDurationOr(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func envSliceOr(key string, fallback []string) []string {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		result := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		return result
	}
	return fallback
}
