// Package engine runs the batch scoring pipeline: qualification pool,
// feature normalization, composite scoring, ranking and archetype
// classification. Every stage is a pure function over the input snapshot;
// the engine only adds sharding, diagnostics and memoization on top.
package engine

import (
	"context"
	"fmt"
	"math"
	"runtime"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/gridrate/gridrate/internal/domain/archetype"
	"github.com/gridrate/gridrate/internal/domain/dedupe"
	"github.com/gridrate/gridrate/internal/domain/normalize"
	"github.com/gridrate/gridrate/internal/domain/rating"
	"github.com/gridrate/gridrate/internal/domain/stats"
	"github.com/gridrate/gridrate/pkg/logger"
	"github.com/gridrate/gridrate/pkg/metrics"
)

// Params selects the formula variant and pool scope for one batch.
type Params struct {
	// Season scopes the pool and scored rows to one season; 0 scores the
	// whole snapshot against a cross-season pool.
	Season int
	// Preset names the composite weight variant ("balanced", "classic").
	Preset string
	// Table names the archetype decision list ("six-trait", "five-trait").
	Table string
	// Thresholds sets qualification-pool membership.
	Thresholds Thresholds
}

// PlayerRating is one fully scored row.
type PlayerRating struct {
	Row        stats.PlayerSeason
	Features   map[string]float64 // normalized feature scores, rating scale
	Components map[string]float64
	Overall    float64
	Traits     map[string]float64 // playstyle scores, trait scale
	Archetype  string
	Rank       int
}

// Diagnostics summarizes recoverable per-row conditions for one batch.
// Counts, not exceptions: a row is either scored by the documented rules
// or excluded and counted here.
type Diagnostics struct {
	RunID              string        `json:"run_id"`
	PoolSize           int           `json:"pool_size"`
	RowsScored         int           `json:"rows_scored"`
	RowsDropped        int           `json:"rows_dropped"`
	DuplicatesDropped  int           `json:"duplicates_dropped"`
	FeatureFallbacks   int           `json:"feature_fallbacks"`
	DegenerateFeatures []string      `json:"degenerate_features"`
	Elapsed            time.Duration `json:"elapsed"`
}

// BatchResult is the output of one scoring run.
type BatchResult struct {
	Entries     []PlayerRating
	Diagnostics Diagnostics
}

// Engine executes scoring batches. Safe for concurrent use; all state is
// configuration plus the explicit result cache.
type Engine struct {
	shards   int
	resolver *dedupe.Resolver
	cache    *Cache
	log      logger.Logger
}

// Option applies a configuration option to the Engine.
type Option func(*Engine)

// WithShards sets how many goroutines score rows in parallel.
func WithShards(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.shards = n
		}
	}
}

// WithCache attaches an explicit result cache. Without one every call
// recomputes, which is always correct.
func WithCache(c *Cache) Option {
	return func(e *Engine) {
		e.cache = c
	}
}

// WithLogger sets a custom logger for the engine.
func WithLogger(log logger.Logger) Option {
	return func(e *Engine) {
		if log != nil {
			e.log = log
		}
	}
}

// New constructs an Engine with default configuration.
func New(opts ...Option) *Engine {
	e := &Engine{
		shards:   runtime.NumCPU(),
		resolver: dedupe.NewResolver(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Score runs the full pipeline over the snapshot. The snapshot itself is
// never mutated; identical (snapshot, params) pairs are served from the
// cache when one is attached.
func (e *Engine) Score(ctx context.Context, snapshot []stats.PlayerSeason, p Params) (*BatchResult, error) {
	start := time.Now()

	weights, err := rating.Preset(p.Preset)
	if err != nil {
		return nil, err
	}
	scorer, err := rating.NewScorer(weights)
	if err != nil {
		return nil, err
	}
	table, ok := archetype.TableByName(p.Table)
	if !ok {
		return nil, fmt.Errorf("%w: unknown archetype table %q", ErrBadParams, p.Table)
	}
	traitScale := traitScaleFor(table)

	var key uint64
	if e.cache != nil {
		key = CacheKey(snapshot, p)
		if res, hit := e.cache.Get(key); hit {
			metrics.RecordCacheHit()
			return res, nil
		}
		metrics.RecordCacheMiss()
	}

	// Drop rows without identity before anything else; they cannot be
	// keyed, deduplicated or ranked.
	rows := make([]stats.PlayerSeason, 0, len(snapshot))
	droppedIdentity := 0
	for _, row := range snapshot {
		if !row.HasIdentity() {
			droppedIdentity++
			continue
		}
		rows = append(rows, row)
	}
	rows, duplicates := e.resolver.Resolve(rows)

	pool, err := BuildPool(rows, p.Season, p.Thresholds)
	if err != nil {
		return nil, err
	}

	entries, fallbacks, err := e.scoreShards(ctx, pool, scorer, table, traitScale)
	if err != nil {
		return nil, err
	}
	rank(entries)

	res := &BatchResult{
		Entries: entries,
		Diagnostics: Diagnostics{
			RunID:              uuid.NewString(),
			PoolSize:           pool.Size(),
			RowsScored:         len(entries),
			RowsDropped:        droppedIdentity,
			DuplicatesDropped:  duplicates,
			FeatureFallbacks:   fallbacks,
			DegenerateFeatures: pool.DegenerateFeatures(),
			Elapsed:            time.Since(start),
		},
	}

	metrics.RecordBatchScored(len(entries), time.Since(start))
	metrics.RecordRowsDropped(droppedIdentity + duplicates)
	if e.log != nil {
		e.log.Debug(ctx, "batch scored",
			logger.String("runID", res.Diagnostics.RunID),
			logger.Int("rows", len(entries)),
			logger.Int("dropped", droppedIdentity),
			logger.Int("duplicates", duplicates),
			logger.Int("fallbacks", fallbacks),
		)
	}

	if e.cache != nil {
		e.cache.Put(key, res)
	}
	return res, nil
}

// scoreShards maps rows to ratings across a bounded set of goroutines.
// Pool bounds are computed once and read by every shard; no shard ever
// recomputes population statistics.
func (e *Engine) scoreShards(
	ctx context.Context,
	pool *Pool,
	scorer *rating.Scorer,
	table *archetype.Table,
	traitScale normalize.Scale,
) ([]PlayerRating, int, error) {
	members := pool.Members()
	entries := make([]PlayerRating, len(members))
	fallbackCounts := make([]int, e.shards)

	chunk := (len(members) + e.shards - 1) / e.shards
	if chunk == 0 {
		chunk = 1
	}

	var wg sync.WaitGroup
	for shard := 0; shard*chunk < len(members); shard++ {
		lo := shard * chunk
		hi := lo + chunk
		if hi > len(members) {
			hi = len(members)
		}
		wg.Add(1)
		go func(shard, lo, hi int) {
			defer wg.Done()
			for i := lo; i < hi; i++ {
				if ctx.Err() != nil {
					return
				}
				entry, n := scoreRow(members[i], pool, scorer, table, traitScale)
				entries[i] = entry
				fallbackCounts[shard] += n
			}
		}(shard, lo, hi)
	}
	wg.Wait()
	if err := ctx.Err(); err != nil {
		return nil, 0, fmt.Errorf("scoring cancelled: %w", err)
	}

	total := 0
	for _, n := range fallbackCounts {
		total += n
	}
	return entries, total, nil
}

// scoreRow normalizes one row's features against the pool, applies the
// composite scorer and classifies the archetype.
func scoreRow(
	row stats.PlayerSeason,
	pool *Pool,
	scorer *rating.Scorer,
	table *archetype.Table,
	traitScale normalize.Scale,
) (PlayerRating, int) {
	inverted := rating.InvertedFeatures()

	features := make(map[string]float64, len(featureExtractors))
	traitFeatures := make(map[string]float64, len(featureExtractors))
	for name, extract := range featureExtractors {
		raw := extract(row)
		if math.IsNaN(raw) {
			features[name] = math.NaN()
			traitFeatures[name] = math.NaN()
			continue
		}
		b, _ := pool.Bounds(name)
		features[name] = b.Score(raw, inverted[name], scorer.Scale())
		traitFeatures[name] = b.Score(raw, inverted[name], traitScale)
	}

	result, fallbacks := scorer.Score(features)

	traits := make(map[string]float64, len(rating.TraitFormulas()))
	for trait, formula := range rating.TraitFormulas() {
		score := 0.0
		for feat, w := range formula {
			v := traitFeatures[feat]
			if math.IsNaN(v) {
				v = traitScale.Midpoint()
				fallbacks++
			}
			score += w * v
		}
		traits[trait] = score
	}

	return PlayerRating{
		Row:        row,
		Features:   features,
		Components: result.Components,
		Overall:    result.Overall,
		Traits:     traits,
		Archetype:  table.Classify(traits),
	}, fallbacks
}

// rank orders entries by overall rating descending, ties broken by stable
// input order, and assigns dense 1-based ranks.
func rank(entries []PlayerRating) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Overall > entries[j].Overall
	})
	for i := range entries {
		entries[i].Rank = i + 1
	}
}

// traitScaleFor pairs each archetype table with the scale its thresholds
// were calibrated on.
func traitScaleFor(table *archetype.Table) normalize.Scale {
	if table.Name() == "five-trait" {
		return normalize.ZeroToHundred
	}
	return normalize.FiftyToHundred
}
