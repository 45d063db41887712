package engine

import (
	"encoding/binary"
	"math"
	"sync"
	"sync/atomic"

	"github.com/cespare/xxhash/v2"

	"github.com/gridrate/gridrate/internal/domain/stats"
)

// defaultCacheCapacity bounds the number of memoized batches.
const defaultCacheCapacity = 32

// Cache memoizes batch results keyed on (snapshot, params). It is owned by
// the caller and fully inspectable; there is no hidden global state.
// Eviction is FIFO, which is enough for a handful of dashboard views
// cycling over the same snapshot.
type Cache struct {
	mu      sync.RWMutex
	entries map[uint64]*BatchResult
	order   []uint64
	cap     int

	hits   atomic.Int64
	misses atomic.Int64
}

// CacheOption applies a configuration option to the Cache.
type CacheOption func(*Cache)

// WithCapacity bounds how many batch results are retained.
func WithCapacity(n int) CacheOption {
	return func(c *Cache) {
		if n > 0 {
			c.cap = n
		}
	}
}

// NewCache creates an empty result cache.
func NewCache(opts ...CacheOption) *Cache {
	c := &Cache{
		entries: make(map[uint64]*BatchResult),
		cap:     defaultCacheCapacity,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get returns the memoized result for key, if present.
func (c *Cache) Get(key uint64) (*BatchResult, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	res, ok := c.entries[key]
	if ok {
		c.hits.Add(1)
	} else {
		c.misses.Add(1)
	}
	return res, ok
}

// Put stores a result, evicting the oldest entry when full.
func (c *Cache) Put(key uint64, res *BatchResult) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.entries[key]; exists {
		return
	}
	if len(c.order) >= c.cap {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.entries, oldest)
	}
	c.entries[key] = res
	c.order = append(c.order, key)
}

// Len returns the number of memoized batches.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Stats returns hit/miss counters.
func (c *Cache) Stats() (hits, misses int64) {
	return c.hits.Load(), c.misses.Load()
}

// CacheKey hashes the input snapshot and parameters. Two calls with the
// same rows (in the same order) and the same params produce the same key;
// any change to either produces a new one.
func CacheKey(snapshot []stats.PlayerSeason, p Params) uint64 {
	d := xxhash.New()
	var buf [8]byte

	writeInt := func(v int) {
		binary.LittleEndian.PutUint64(buf[:], uint64(v))
		_, _ = d.Write(buf[:])
	}
	writeFloat := func(v float64) {
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(v))
		_, _ = d.Write(buf[:])
	}

	_, _ = d.WriteString(p.Preset)
	_, _ = d.WriteString(p.Table)
	writeInt(p.Season)
	writeInt(p.Thresholds.Default)
	writeInt(p.Thresholds.InProgress)
	writeInt(p.Thresholds.InProgressSeason)

	for _, row := range snapshot {
		_, _ = d.WriteString(row.PlayerID)
		writeInt(row.Season)
		writeInt(row.Attempts)
		writeInt(row.RushAttempts)
		writeInt(row.TotalGames)
		writeInt(row.TotalPlays)
		writeInt(row.Interceptions)
		writeInt(row.FumblesLost)
		for _, v := range []float64{
			row.TotalPassEPA, row.PassSuccessRate, row.CPOE, row.CompletionPct,
			row.TDRate, row.TurnoverRate, row.SackRate, row.YardsPerAttempt,
			row.TotalWPA, row.HighLeverageEPA, row.ThirdDownSuccess, row.RedZoneEPA,
			row.PassYardsPerGame, row.RushYardsPerGame, row.TotalTDsPerGame,
			row.EPAUnderPressure, row.RushingYards,
		} {
			writeFloat(v)
		}
	}
	return d.Sum64()
}
