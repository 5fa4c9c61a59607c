// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Keep fields unexported where possible and use functional options.
// - Provide New(...Option) initializer to build a Config with defaults.
// - All future functions must accept context.Context as the first parameter.
// - External errors must be wrapped via this package's error helpers.
package config

import (
	"context"
	"runtime"
)

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// CatalogPath points at the YAML item catalog.
	CatalogPath string `koanf:"catalog_path"`

	// CatalogWatch enables hot reload when the catalog file changes.
	CatalogWatch bool `koanf:"catalog_watch"`

	// ShareQueueSize bounds the in-memory share submission queue.
	ShareQueueSize int `koanf:"queue_size"`

	// WorkerCount sets the number of share evaluation workers.
	WorkerCount int `koanf:"worker_count"`

	// DedupeSize sets the size of the submission deduplication cache.
	DedupeSize int `koanf:"dedupe_size"`

	// MaxCommunityLimit caps GET /v1/community/top?limit.
	MaxCommunityLimit int `koanf:"max_community_limit"`

	// AlternativeCount sets how many alternative builds a recommendation
	// carries.
	AlternativeCount int `koanf:"alternative_count"`

	// CategoryWeights maps score category names to their weights. Values
	// are normalized before use, so they need not sum to one.
	CategoryWeights map[string]float64 `koanf:"category_weights"`

	// StatTargetBase, StatTargetFavored and StatTargetFocus steer the
	// composer's per-stat investment targets.
	StatTargetBase    int `koanf:"stat_target_base"`
	StatTargetFavored int `koanf:"stat_target_favored"`
	StatTargetFocus   int `koanf:"stat_target_focus"`
}

// New creates a Config using provided options. Context is accepted first to
// satisfy the project-wide convention; it is reserved for future use (e.g.,
// loading from env/files) and is currently unused.
func New(_ context.Context) *Config {
	c := &Config{
		LogLevel:          "info",
		Addr:              ":9080",
		CatalogPath:       "catalog.yaml",
		CatalogWatch:      true,
		ShareQueueSize:    10_000,
		WorkerCount:       runtime.NumCPU() * 2,
		DedupeSize:        50_000,
		MaxCommunityLimit: 100,
		AlternativeCount:  3,
		CategoryWeights:   map[string]float64{},
		StatTargetBase:    40,
		StatTargetFavored: 100,
		StatTargetFocus:   140,
	}
	return c
}
