package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Site      SiteConfig
	Browser   BrowserConfig
	Server    ServerConfig
	Auth      AuthConfig
	RateLimit RateLimitConfig
	Cache     CacheConfig
	Export    ExportConfig
	Log       LogConfig
}

// SiteConfig describes the target registry site and the timing bounds for
// driving it.
type SiteConfig struct {
	// BaseURL is the registry's search page.
	BaseURL string // default: "https://shorthorn.digitalbeef.com"

	// NavTimeout bounds the initial page navigation and form readiness.
	NavTimeout time.Duration // default: 30s

	// ResultsTimeout bounds the wait for the results table after submit.
	ResultsTimeout time.Duration // default: 60s

	// HTTPTimeout is the deadline for the plain-HTTP fast path.
	HTTPTimeout time.Duration // default: 10s

	// MaxResultPages caps pagination so a broken "next" control can't loop.
	MaxResultPages int // default: 20
}

// BrowserConfig controls the Rod browser instance.
type BrowserConfig struct {
	// Headless controls whether the browser runs headless.
	Headless bool // default: true

	// NoSandbox disables Chrome's sandbox (needed in Docker).
	NoSandbox bool // default: false

	// Bin overrides the Chromium binary path.
	Bin string

	// Proxy is an optional proxy URL for all traffic.
	Proxy string

	// Stealth enables navigator.webdriver masking before navigation.
	Stealth bool // default: true
}

// ServerConfig controls the HTTP server used by `herdscout serve`.
type ServerConfig struct {
	Host string // default: "0.0.0.0"
	Port int    // default: 8080
	Mode string // "debug", "release", "test"; default: "release"
}

// AuthConfig controls API key authentication for serve mode.
type AuthConfig struct {
	Enabled bool     // default: false
	APIKeys []string // valid keys; empty list means open access
}

// RateLimitConfig controls per-key rate limiting for serve mode.
type RateLimitConfig struct {
	RequestsPerSecond float64 // default: 2
	Burst             int     // default: 5
}

// CacheConfig controls the serve-mode form schema cache. CLI invocations
// never cache; the schema is rediscovered on every run.
type CacheConfig struct {
	// SchemaTTL is how long a discovered form schema stays valid.
	SchemaTTL time.Duration // default: 10m
}

// ExportConfig controls default export behavior.
type ExportConfig struct {
	// Dir is the directory auto-generated export files land in.
	Dir string // default: "."

	// FilePrefix prefixes auto-generated export filenames.
	FilePrefix string // default: "herdscout"
}

// LogConfig controls structured logging.
type LogConfig struct {
	Level  string // default: "info"
	Format string // "json" or "text"; default: "text"
}

// Load reads configuration from environment variables with sane defaults.
func Load() *Config {
	return &Config{
		Site: SiteConfig{
			BaseURL:        envOr("HERDSCOUT_BASE_URL", "https://shorthorn.digitalbeef.com"),
			NavTimeout:     envDurationOr("HERDSCOUT_NAV_TIMEOUT", 30*time.Second),
			ResultsTimeout: envDurationOr("HERDSCOUT_RESULTS_TIMEOUT", 60*time.Second),
			HTTPTimeout:    envDurationOr("HERDSCOUT_HTTP_TIMEOUT", 10*time.Second),
			MaxResultPages: envIntOr("HERDSCOUT_MAX_RESULT_PAGES", 20),
		},
		Browser: BrowserConfig{
			Headless:  envBoolOr("HERDSCOUT_HEADLESS", true),
			NoSandbox: envBoolOr("HERDSCOUT_NO_SANDBOX", false),
			Bin:       os.Getenv("HERDSCOUT_BROWSER_BIN"),
			Proxy:     os.Getenv("HERDSCOUT_PROXY"),
			Stealth:   envBoolOr("HERDSCOUT_STEALTH", true),
		},
		Server: ServerConfig{
			Host: envOr("HERDSCOUT_HOST", "0.0.0.0"),
			Port: envIntOr("HERDSCOUT_PORT", 8080),
			Mode: envOr("HERDSCOUT_MODE", "release"),
		},
		Auth: AuthConfig{
			Enabled: envBoolOr("HERDSCOUT_AUTH_ENABLED", false),
			APIKeys: envSliceOr("HERDSCOUT_API_KEYS", nil),
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: envFloatOr("HERDSCOUT_RATE_RPS", 2.0),
			Burst:             envIntOr("HERDSCOUT_RATE_BURST", 5),
		},
		Cache: CacheConfig{
			SchemaTTL: envDurationOr("HERDSCOUT_SCHEMA_TTL", 10*time.Minute),
		},
		Export: ExportConfig{
			Dir:        envOr("HERDSCOUT_EXPORT_DIR", "."),
			FilePrefix: envOr("HERDSCOUT_EXPORT_PREFIX", "herdscout"),
		},
		Log: LogConfig{
			Level:  envOr("HERDSCOUT_LOG_LEVEL", "info"),
			Format: envOr("HERDSCOUT_LOG_FORMAT", "text"),
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
