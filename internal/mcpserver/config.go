package mcpserver

import (
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/erraggy/oasdocs/document"
)

// serverConfig holds all configurable MCP server defaults.
// Loaded once at startup from environment variables via loadConfig().
type serverConfig struct {
	// Document loading.
	MaxInlineSize   int64
	MaxFileSize     int64
	MaxRefDepth     int
	FetchTimeout    time.Duration
	AllowPrivateIPs bool

	// Document cache.
	CacheEnabled bool
	CacheMaxSize int
	CacheTTL     time.Duration

	// Listing defaults.
	OperationsLimit int
	MaxLimit        int
}

// cfg is the active server configuration, initialized at package load time.
var cfg = loadConfig()

// loadConfig reads configuration from OASDOCS_* environment variables.
// Invalid values log a warning and fall back to the hardcoded default.
func loadConfig() *serverConfig {
	return &serverConfig{
		MaxInlineSize:   envInt64("OASDOCS_MAX_INLINE_SIZE", 10*1024*1024),
		MaxFileSize:     envInt64("OASDOCS_MAX_FILE_SIZE", document.DefaultMaxFileSize),
		MaxRefDepth:     envInt("OASDOCS_MAX_REF_DEPTH", document.DefaultMaxRefDepth),
		FetchTimeout:    envDuration("OASDOCS_FETCH_TIMEOUT", 30*time.Second),
		AllowPrivateIPs: envBool("OASDOCS_ALLOW_PRIVATE_IPS", false),
		CacheEnabled:    envBool("OASDOCS_CACHE_ENABLED", true),
		CacheMaxSize:    envInt("OASDOCS_CACHE_MAX_SIZE", 10),
		CacheTTL:        envDuration("OASDOCS_CACHE_TTL", 15*time.Minute),
		OperationsLimit: envInt("OASDOCS_OPERATIONS_LIMIT", 100),
		MaxLimit:        envInt("OASDOCS_MAX_LIMIT", 1000),
	}
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		slog.Warn("invalid bool env var, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return b
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		slog.Warn("invalid int env var, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return n
}

func envInt64(key string, fallback int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil || n <= 0 {
		slog.Warn("invalid int env var, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return n
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		slog.Warn("invalid duration env var, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return d
}
