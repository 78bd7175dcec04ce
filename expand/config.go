package expand

import (
	"io"
	"log/slog"
	"time"
)

// Config holds engine tuning options.
type Config struct {
	// CacheEnabled turns result caching on.
	CacheEnabled bool
	CacheConfig  CacheConfig

	// MaxOccurrences caps the length of a single expansion walk, keeping
	// runaway rules (a huge range with a one-day step) bounded.
	MaxOccurrences int

	// Logger receives debug output. Nil discards everything.
	Logger *slog.Logger
}

// DefaultConfig provides sensible defaults for production use.
var DefaultConfig = Config{
	CacheEnabled:   true,
	CacheConfig:    DefaultCacheConfig,
	MaxOccurrences: 1000,
}

// LowMemoryConfig is tuned for memory-constrained environments: a small,
// short-lived cache and a tighter expansion cap.
var LowMemoryConfig = Config{
	CacheEnabled: true,
	CacheConfig: CacheConfig{
		TTL:             5 * time.Minute,
		MaxEntries:      100,
		CleanupInterval: 2 * time.Minute,
	},
	MaxOccurrences: 500,
}

// DisabledCacheConfig turns off caching entirely; every query walks the
// series from scratch.
var DisabledCacheConfig = Config{
	CacheEnabled:   false,
	MaxOccurrences: 1000,
}

// NewWithConfig creates an engine with custom configuration.
func NewWithConfig(config Config) *Engine {
	if config.Logger == nil {
		config.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if config.MaxOccurrences <= 0 {
		config.MaxOccurrences = DefaultConfig.MaxOccurrences
	}

	var cache *Cache
	if config.CacheEnabled {
		cache = NewCache(config.CacheConfig)
	}

	return &Engine{
		cache:  cache,
		config: config,
	}
}
