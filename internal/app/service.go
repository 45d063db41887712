// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"fmt"
	"runtime"
	"sort"
	"sync"

	"github.com/gridrate/gridrate/internal/adapters/repository"
	"github.com/gridrate/gridrate/internal/domain/career"
	"github.com/gridrate/gridrate/internal/domain/types"
	"github.com/gridrate/gridrate/internal/engine"
	"github.com/gridrate/gridrate/pkg/logger"
	"github.com/gridrate/gridrate/pkg/metrics"
)

// Service implements the API dependencies for the rating system.
type Service struct {
	mu sync.RWMutex

	// Core components
	store  repository.Store
	engine *engine.Engine
	cache  *engine.Cache

	// Configuration
	dbPath        string
	preset        string
	table         string
	thresholds    engine.Thresholds
	shardCount    int
	cacheCapacity int
	maxLimit      int

	// State
	started bool

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithDBPath sets the SQLite database path.
func WithDBPath(path string) Option {
	return func(s *Service) {
		if path != "" {
			s.dbPath = path
		}
	}
}

// WithStore injects a pre-built store, bypassing the database path.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithPreset sets the default weighting preset.
func WithPreset(preset string) Option {
	return func(s *Service) {
		if preset != "" {
			s.preset = preset
		}
	}
}

// WithArchetypeTable sets the default archetype decision table.
func WithArchetypeTable(table string) Option {
	return func(s *Service) {
		if table != "" {
			s.table = table
		}
	}
}

// WithThresholds sets the qualification-pool attempt minimums.
func WithThresholds(t engine.Thresholds) Option {
	return func(s *Service) {
		if t.Default > 0 {
			s.thresholds = t
		}
	}
}

// WithShardCount sets the number of parallel scoring shards.
func WithShardCount(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.shardCount = n
		}
	}
}

// WithCacheCapacity bounds the batch result cache.
func WithCacheCapacity(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.cacheCapacity = n
		}
	}
}

// WithMaxRankingsLimit caps ranking query limits.
func WithMaxRankingsLimit(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxLimit = n
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(log logger.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.logger = log
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		dbPath:        "gridrate.db",
		preset:        "balanced",
		table:         "six-trait",
		thresholds:    engine.Thresholds{Default: 300, InProgress: 120},
		shardCount:    runtime.NumCPU(),
		cacheCapacity: 32,
		maxLimit:      100,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start initializes the store and scoring engine.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting rating service...")

	if s.store == nil {
		store, err := repository.OpenSQLite(s.dbPath)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		s.store = store
		s.logger.Info(ctx, "using sqlite store", logger.String("path", s.dbPath))
	}

	s.cache = engine.NewCache(engine.WithCapacity(s.cacheCapacity))
	s.engine = engine.New(
		engine.WithShards(s.shardCount),
		engine.WithCache(s.cache),
		engine.WithLogger(s.logger.Named("engine")),
	)

	s.started = true
	s.logger.Info(ctx, "rating service started",
		logger.Int("shards", s.shardCount),
		logger.String("preset", s.preset),
		logger.String("archetypeTable", s.table),
	)

	return nil
}

// Stop gracefully shuts down the service.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	ctx := context.Background()
	s.logger.Info(ctx, "stopping rating service...")

	if s.store != nil {
		if err := s.store.Close(); err != nil {
			s.logger.Warn(ctx, "store close failed", logger.Error(err))
		}
	}

	s.started = false
	s.logger.Info(ctx, "rating service stopped")
}

// params builds engine parameters, falling back to service defaults for
// empty preset/table selectors.
func (s *Service) params(season int, preset, table string) engine.Params {
	if preset == "" {
		preset = s.preset
	}
	if table == "" {
		table = s.table
	}
	return engine.Params{
		Season:     season,
		Preset:     preset,
		Table:      table,
		Thresholds: s.thresholds,
	}
}

// clampLimit applies the configured ceiling; non-positive means "all".
func (s *Service) clampLimit(limit, available int) int {
	if limit <= 0 || limit > s.maxLimit {
		limit = s.maxLimit
	}
	if limit > available {
		limit = available
	}
	return limit
}

// score loads the season snapshot and runs one engine batch.
func (s *Service) score(ctx context.Context, season int, preset, table string) (*engine.BatchResult, error) {
	rows, err := s.store.SeasonRows(ctx, season)
	if err != nil {
		return nil, err
	}
	res, err := s.engine.Score(ctx, rows, s.params(season, preset, table))
	if err != nil {
		metrics.RecordScoringError()
		return nil, err
	}
	return res, nil
}

// Rankings returns the top rated seasons for one season scope.
func (s *Service) Rankings(ctx context.Context, season int, preset, table string, limit int) ([]types.RatingEntry, engine.Diagnostics, error) {
	res, err := s.score(ctx, season, preset, table)
	if err != nil {
		return nil, engine.Diagnostics{}, err
	}

	limit = s.clampLimit(limit, len(res.Entries))
	entries := make([]types.RatingEntry, 0, limit)
	for _, pr := range res.Entries[:limit] {
		entries = append(entries, toRatingEntry(pr))
	}
	return entries, res.Diagnostics, nil
}

// CurrentRankings returns career-weighted ratings across stored seasons.
// Each season is scored against its own pool, then per-player season
// ratings are folded by the time-decay career aggregation. asOf scopes the
// window; 0 means the latest stored season. Only active players rank: a
// player must have qualified in asOf or the season before it.
func (s *Service) CurrentRankings(ctx context.Context, asOf, limit int) ([]types.CareerEntry, error) {
	perPlayer, err := s.careerInputs(ctx)
	if err != nil {
		return nil, err
	}

	if asOf <= 0 {
		for _, in := range perPlayer {
			for _, sr := range in.seasons {
				if sr.Season > asOf {
					asOf = sr.Season
				}
			}
		}
	}

	entries := make([]types.CareerEntry, 0, len(perPlayer))
	for _, in := range perPlayer {
		scoped := in.through(asOf)
		if len(scoped.seasons) == 0 || scoped.lastSeason() < asOf-1 {
			continue
		}
		entries = append(entries, toCareerEntry(scoped, career.Aggregate(scoped.seasons, asOf)))
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].WeightedRating > entries[j].WeightedRating
	})
	limit = s.clampLimit(limit, len(entries))
	entries = entries[:limit]
	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries, nil
}

// Career returns one player's career rating and the season ratings it was
// folded from. asOf scopes the window; 0 means the player's latest
// qualified season. Returns repository.ErrNotFound for unknown players.
func (s *Service) Career(ctx context.Context, playerID string, asOf int) (types.CareerEntry, []types.RatingEntry, error) {
	if _, err := s.store.PlayerSeasons(ctx, playerID); err != nil {
		return types.CareerEntry{}, nil, err
	}

	perPlayer, err := s.careerInputs(ctx)
	if err != nil {
		return types.CareerEntry{}, nil, err
	}

	in, ok := perPlayer[playerID]
	if !ok {
		// Stored but never qualified for any pool.
		return types.CareerEntry{}, nil, fmt.Errorf("%w: %s never qualified", repository.ErrNotFound, playerID)
	}

	if asOf <= 0 {
		asOf = in.lastSeason()
	}
	in = in.through(asOf)
	if len(in.seasons) == 0 {
		return types.CareerEntry{}, nil, fmt.Errorf("%w: %s has no qualified season by %d", repository.ErrNotFound, playerID, asOf)
	}

	seasonEntries := make([]types.RatingEntry, len(in.ratings))
	for i, pr := range in.ratings {
		seasonEntries[i] = toRatingEntry(pr)
	}
	sort.Slice(seasonEntries, func(i, j int) bool {
		return seasonEntries[i].Season < seasonEntries[j].Season
	})

	return toCareerEntry(in, career.Aggregate(in.seasons, asOf)), seasonEntries, nil
}

// Archetypes returns the archetype distribution for one season scope.
func (s *Service) Archetypes(ctx context.Context, season int, preset, table string) (map[string]int, error) {
	res, err := s.score(ctx, season, preset, table)
	if err != nil {
		return nil, err
	}

	dist := make(map[string]int)
	for _, pr := range res.Entries {
		dist[pr.Archetype]++
	}
	return dist, nil
}

// Seasons lists the stored seasons, ascending.
func (s *Service) Seasons(ctx context.Context) ([]int, error) {
	return s.store.Seasons(ctx)
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started":        s.started,
		"shardCount":     s.shardCount,
		"preset":         s.preset,
		"archetypeTable": s.table,
	}

	if s.started {
		ctx := context.Background()
		if n, err := s.store.Count(ctx); err == nil {
			stats["storedRows"] = n
			metrics.UpdateStoreRows(n)
		}
		if seasons, err := s.store.Seasons(ctx); err == nil {
			stats["seasons"] = seasons
			metrics.UpdateStoreSeasons(len(seasons))
		}
		hits, misses := s.cache.Stats()
		stats["cacheHits"] = hits
		stats["cacheMisses"] = misses
		stats["cachedBatches"] = s.cache.Len()
		metrics.UpdateCacheSize(s.cache.Len())
	}

	return stats
}

// careerInput collects one player's scored seasons across batches.
type careerInput struct {
	playerID string
	name     string
	seasons  []career.SeasonRating
	ratings  []engine.PlayerRating
}

// through returns the input restricted to seasons at or before asOf.
func (in *careerInput) through(asOf int) *careerInput {
	scoped := &careerInput{playerID: in.playerID, name: in.name}
	for i, sr := range in.seasons {
		if sr.Season > asOf {
			continue
		}
		scoped.seasons = append(scoped.seasons, sr)
		scoped.ratings = append(scoped.ratings, in.ratings[i])
	}
	return scoped
}

// lastSeason returns the latest qualified season, 0 when empty.
func (in *careerInput) lastSeason() int {
	last := 0
	for _, sr := range in.seasons {
		if sr.Season > last {
			last = sr.Season
		}
	}
	return last
}

// careerInputs scores every stored season against its own pool and groups
// the results per player.
func (s *Service) careerInputs(ctx context.Context) (map[string]*careerInput, error) {
	seasons, err := s.store.Seasons(ctx)
	if err != nil {
		return nil, err
	}

	perPlayer := make(map[string]*careerInput)
	for _, season := range seasons {
		res, err := s.score(ctx, season, "", "")
		if err != nil {
			// A season whose pool is empty contributes nothing.
			continue
		}
		for _, pr := range res.Entries {
			in := perPlayer[pr.Row.PlayerID]
			if in == nil {
				in = &careerInput{playerID: pr.Row.PlayerID}
				perPlayer[pr.Row.PlayerID] = in
			}
			in.name = pr.Row.PlayerName
			in.seasons = append(in.seasons, career.SeasonRating{Season: pr.Row.Season, Rating: pr.Overall})
			in.ratings = append(in.ratings, pr)
		}
	}
	return perPlayer, nil
}

func toRatingEntry(pr engine.PlayerRating) types.RatingEntry {
	return types.RatingEntry{
		Rank:       pr.Rank,
		PlayerID:   pr.Row.PlayerID,
		PlayerName: pr.Row.PlayerName,
		Season:     pr.Row.Season,
		Overall:    pr.Overall,
		Archetype:  pr.Archetype,
		Components: pr.Components,
		Traits:     pr.Traits,
	}
}

func toCareerEntry(in *careerInput, agg career.Rating) types.CareerEntry {
	first, last := 0, 0
	archetype := ""
	for i, sr := range in.seasons {
		if first == 0 || sr.Season < first {
			first = sr.Season
		}
		if sr.Season > last {
			last = sr.Season
			archetype = in.ratings[i].Archetype
		}
	}
	return types.CareerEntry{
		PlayerID:       in.playerID,
		PlayerName:     in.name,
		WeightedRating: agg.Weighted,
		RecentRating:   agg.Recent,
		CareerMean:     agg.Mean,
		Seasons:        agg.Seasons,
		FirstSeason:    first,
		LastSeason:     last,
		Archetype:      archetype,
	}
}
