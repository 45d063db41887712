package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/gridrate/gridrate/internal/domain/archetype"
	"github.com/gridrate/gridrate/internal/domain/rating"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):.
//  1. defaults (New())
//  2. file (YAML) if GRIDRATE_CONFIG is set
//  3. env (prefix GRIDRATE_)
func Load(ctx context.Context) (*Config, error) {
	_ = ctx

	base := New()

	k := koanf.New(".")

	// Load from file if provided
	if path := os.Getenv("GRIDRATE_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
		}
	}

	// Environment variables: GRIDRATE_ADDR, GRIDRATE_DB_PATH, ...
	// Map env keys like GRIDRATE_DB_PATH -> db_path (flat keys)
	// Preserve underscores to match koanf tags on the struct.
	envProvider := env.Provider("GRIDRATE_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "gridrate_")
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	// Unmarshal into a copy
	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func validate(cfg *Config) error {
	if cfg.Addr == "" {
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	}
	if cfg.DBPath == "" {
		return fmt.Errorf("%w: db_path must not be empty", ErrInvalidConfig)
	}
	if _, err := rating.Preset(cfg.Preset); err != nil {
		return fmt.Errorf("%w: unknown preset %q", ErrInvalidConfig, cfg.Preset)
	}
	if _, ok := archetype.TableByName(cfg.ArchetypeTable); !ok {
		return fmt.Errorf("%w: unknown archetype table %q", ErrInvalidConfig, cfg.ArchetypeTable)
	}
	if cfg.Thresholds.Default <= 0 || cfg.Thresholds.InProgress <= 0 {
		return fmt.Errorf("%w: qualification thresholds must be positive", ErrInvalidConfig)
	}
	if cfg.ShardCount <= 0 {
		return fmt.Errorf("%w: shard_count must be positive", ErrInvalidConfig)
	}
	if cfg.MaxRankingsLimit <= 0 {
		return fmt.Errorf("%w: max_rankings_limit must be positive", ErrInvalidConfig)
	}
	return nil
}
