package mcpserver

import (
	"errors"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/erraggy/oasparams/loader"
)

// serverConfig holds the MCP server settings read from OASPARAMS_*
// environment variables.
type serverConfig struct {
	// Document cache.
	CacheEnabled       bool
	CacheMaxSize       int
	CacheTTL           time.Duration
	CacheSweepInterval time.Duration

	// MaxInlineSize limits inline document content in bytes.
	MaxInlineSize int64

	// RouteLimit is the default page size of list_routes.
	RouteLimit int
}

var cfg = loadConfig()

func loadConfig() *serverConfig {
	return &serverConfig{
		CacheEnabled:       env("OASPARAMS_CACHE_ENABLED", true, strconv.ParseBool),
		CacheMaxSize:       env("OASPARAMS_CACHE_MAX_SIZE", 10, positiveInt),
		CacheTTL:           env("OASPARAMS_CACHE_TTL", 15*time.Minute, positiveDuration),
		CacheSweepInterval: env("OASPARAMS_CACHE_SWEEP_INTERVAL", 60*time.Second, positiveDuration),
		MaxInlineSize:      env("OASPARAMS_MAX_INLINE_SIZE", loader.MaxFileSize, positiveInt64),
		RouteLimit:         env("OASPARAMS_ROUTE_LIMIT", 100, positiveInt),
	}
}

// env parses the variable key, keeping fallback when it is unset. A value
// parse rejects is logged and ignored.
func env[T any](key string, fallback T, parse func(string) (T, error)) T {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parsed, err := parse(v)
	if err != nil {
		slog.Warn("invalid env var, using default", "key", key, "value", v, "default", fallback, "error", err) //nolint:gosec // G706: values are structured log fields, not format strings
		return fallback
	}
	return parsed
}

var errNotPositive = errors.New("must be positive")

func positiveInt(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err == nil && n <= 0 {
		err = errNotPositive
	}
	return n, err
}

func positiveInt64(s string) (int64, error) {
	n, err := strconv.ParseInt(s, 10, 64)
	if err == nil && n <= 0 {
		err = errNotPositive
	}
	return n, err
}

func positiveDuration(s string) (time.Duration, error) {
	d, err := time.ParseDuration(s)
	if err == nil && d <= 0 {
		err = errNotPositive
	}
	return d, err
}
