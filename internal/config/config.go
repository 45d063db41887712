// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults; Load(ctx) layers file/env.
// - External errors must be wrapped via this package's error helpers.
package config

import (
	"runtime"

	"github.com/gridrate/gridrate/internal/engine"
)

// Default qualification thresholds, in pass attempts per season.
const (
	defaultQualifyAttempts    = 300
	defaultInProgressAttempts = 120
)

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// DBPath locates the SQLite database file.
	DBPath string `koanf:"db_path"`

	// Preset selects the default weighting preset for ratings.
	Preset string `koanf:"preset"`

	// ArchetypeTable selects the default archetype decision table.
	ArchetypeTable string `koanf:"archetype_table"`

	// Thresholds sets qualification-pool attempt minimums.
	Thresholds engine.Thresholds `koanf:"thresholds"`

	// ShardCount sets the number of parallel scoring shards.
	ShardCount int `koanf:"shard_count"`

	// CacheCapacity bounds the batch result cache.
	CacheCapacity int `koanf:"cache_capacity"`

	// MaxRankingsLimit caps GET /rankings?limit.
	MaxRankingsLimit int `koanf:"max_rankings_limit"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:       "info",
		Addr:           ":9080",
		DBPath:         "gridrate.db",
		Preset:         "balanced",
		ArchetypeTable: "six-trait",
		Thresholds: engine.Thresholds{
			Default:    defaultQualifyAttempts,
			InProgress: defaultInProgressAttempts,
		},
		ShardCount:       runtime.NumCPU(),
		CacheCapacity:    32,
		MaxRankingsLimit: 100,
	}
}
