package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration. It is constructed once at
// process start and treated as immutable afterwards; core packages receive
// it (or the slice of it they need) through their constructors and never
// read ambient process state.
type Config struct {
	Server   ServerConfig
	Proxy    ProxyConfig
	Fetch    FetchConfig
	Upstream UpstreamConfig
	SEO      SEOConfig
	Log      LogConfig
}

// ServerConfig controls the HTTP server.
type ServerConfig struct {
	Host string // default: "0.0.0.0"
	Port int    // default: 8080
	Mode string // "debug", "release", "test"; default: "release"
}

// ProxyConfig controls the optional rewriting proxy (ZenRows-style).
// A non-empty Base is the sole switch enabling all proxy-routing behavior.
type ProxyConfig struct {
	// Base is the proxy URL prefix ending in "...&url=".
	Base string

	// Extra is a raw query-string fragment appended after the encoded
	// target URL, e.g. "&js_render=false&premium_proxy=true".
	Extra string
}

// Enabled reports whether proxy routing is active.
func (p ProxyConfig) Enabled() bool { return p.Base != "" }

// FetchConfig controls outbound HTTP behavior.
type FetchConfig struct {
	// Timeout is the per-attempt HTTP deadline.
	Timeout time.Duration // default: 60s

	// OutboundRPS throttles requests toward the marketplace across the
	// whole process. 0 disables the limiter (each request stands alone).
	OutboundRPS float64 // default: 0

	// LocalRender enables the headless-browser fallback for the public
	// HTML page when no proxy is configured.
	LocalRender bool // default: false
}

// UpstreamConfig holds the marketplace endpoints. Overridable so tests can
// point the strategies at stub servers.
type UpstreamConfig struct {
	// SearchAPIBase is the official search API origin.
	SearchAPIBase string // default: "https://api.mercadolibre.com"

	// ListBase is the public search-results page origin.
	ListBase string // default: "https://lista.mercadolivre.com.br"

	// Site is the marketplace site identifier used by the search API.
	Site string // default: "MLB"
}

// SEOConfig controls the generative SEO copy call.
type SEOConfig struct {
	// APIKey is the Google generative-language credential.
	// Empty disables generation (responses carry a placeholder).
	APIKey string

	// Model is the Gemini model identifier.
	Model string // default: "gemini-1.5-flash"
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
			Host: envOr("ECOM_HOST", "0.0.0.0"),
			Port: envIntOr("ECOM_PORT", 8080),
			Mode: envOr("ECOM_MODE", "release"),
		},
		Proxy: ProxyConfig{
			Base:  strings.TrimSpace(os.Getenv("ML_PROXY_URL")),
			Extra: strings.TrimSpace(os.Getenv("ML_PROXY_EXTRA")),
		},
		Fetch: FetchConfig{
			Timeout:     envDurationOr("ECOM_FETCH_TIMEOUT", 60*time.Second),
			OutboundRPS: envFloatOr("ECOM_OUTBOUND_RPS", 0),
			LocalRender: envBoolOr("ECOM_LOCAL_RENDER", false),
		},
		Upstream: UpstreamConfig{
			SearchAPIBase: envOr("ECOM_SEARCH_API_BASE", "https://api.mercadolibre.com"),
			ListBase:      envOr("ECOM_LIST_BASE", "https://lista.mercadolivre.com.br"),
			Site:          envOr("ECOM_SITE", "MLB"),
		},
		SEO: SEOConfig{
			APIKey: strings.TrimSpace(os.Getenv("GOOGLE_API_KEY")),
			Model:  envOr("GEMINI_MODEL", "gemini-1.5-flash"),
		},
		Log: LogConfig{
			Level:  envOr("ECOM_LOG_LEVEL", "info"),
			Format: envOr("ECOM_LOG_FORMAT", "json"),
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
