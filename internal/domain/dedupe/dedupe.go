// Package dedupe resolves duplicate (player, season) rows in an input
// snapshot. Upstream aggregation can emit the same player-season twice
// (mid-season team changes, re-runs of the loader); scoring requires
// exactly one row per key.
package dedupe

import (
	"github.com/gridrate/gridrate/internal/domain/stats"
)

// key identifies one player-season row.
type key struct {
	playerID string
	season   int
}

// Resolver collapses duplicate player-season rows.
type Resolver struct {
	keepFn func(existing, candidate stats.PlayerSeason) bool
}

// Option applies a configuration option to the Resolver.
type Option func(*Resolver)

// WithKeepRule overrides which of two duplicate rows survives. keep returns
// true when candidate should replace existing.
func WithKeepRule(keep func(existing, candidate stats.PlayerSeason) bool) Option {
	return func(r *Resolver) {
		if keep != nil {
			r.keepFn = keep
		}
	}
}

// NewResolver creates a Resolver. By default the row with more pass
// attempts wins; ties keep the first-seen row so input order stays stable.
func NewResolver(opts ...Option) *Resolver {
	r := &Resolver{
		keepFn: func(existing, candidate stats.PlayerSeason) bool {
			return candidate.Attempts > existing.Attempts
		},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve returns rows with duplicates collapsed, preserving first-seen
// order, plus the number of rows dropped.
func (r *Resolver) Resolve(rows []stats.PlayerSeason) ([]stats.PlayerSeason, int) {
	index := make(map[key]int, len(rows))
	out := make([]stats.PlayerSeason, 0, len(rows))
	dropped := 0

	for _, row := range rows {
		k := key{playerID: row.PlayerID, season: row.Season}
		at, seen := index[k]
		if !seen {
			index[k] = len(out)
			out = append(out, row)
			continue
		}
		dropped++
		if r.keepFn(out[at], row) {
			out[at] = row
		}
	}
	return out, dropped
}
