package engine

import (
	"math"
	"sort"

	"github.com/gridrate/gridrate/internal/domain/normalize"
	"github.com/gridrate/gridrate/internal/domain/rating"
	"github.com/gridrate/gridrate/internal/domain/stats"
)

// minRushPoolAttempts filters pure pocket passers out of the mobility
// reference population so rush yards per game is normalized against
// quarterbacks who actually run.
const minRushPoolAttempts = 20

// Thresholds configures qualification-pool membership: the minimum pass
// attempts per season, with a lower bar for a season still in progress.
type Thresholds struct {
	// Default applies to completed seasons.
	Default int `koanf:"default"`
	// InProgress applies to InProgressSeason only.
	InProgress int `koanf:"in_progress"`
	// InProgressSeason marks the season considered incomplete, 0 for none.
	InProgressSeason int `koanf:"in_progress_season"`
}

// ForSeason returns the attempts threshold for the given season.
func (t Thresholds) ForSeason(season int) int {
	if t.InProgressSeason != 0 && season == t.InProgressSeason {
		return t.InProgress
	}
	return t.Default
}

// Pool is the immutable reference population for one scoring batch.
// Bounds are computed once and shared read-only across scoring shards.
type Pool struct {
	members []stats.PlayerSeason
	bounds  map[string]normalize.Bounds
	seasons []int

	degenerate []string
}

// Members returns the qualified rows, in stable input order.
func (p *Pool) Members() []stats.PlayerSeason { return p.members }

// Size returns the number of qualified rows.
func (p *Pool) Size() int { return len(p.members) }

// Seasons returns the distinct seasons present in the pool, ascending.
func (p *Pool) Seasons() []int { return p.seasons }

// Bounds returns the population bounds for a feature.
func (p *Pool) Bounds(feature string) (normalize.Bounds, bool) {
	b, ok := p.bounds[feature]
	return b, ok
}

// DegenerateFeatures lists features whose population had zero variance,
// sorted for stable diagnostics output.
func (p *Pool) DegenerateFeatures() []string { return p.degenerate }

// BuildPool filters rows to the qualification pool for the given season
// scope (0 scopes across all seasons) and computes per-feature bounds.
// NaN raw values are excluded from bounds so a single unguardable row
// cannot poison the population statistics.
func BuildPool(rows []stats.PlayerSeason, season int, t Thresholds) (*Pool, error) {
	p := &Pool{bounds: make(map[string]normalize.Bounds, len(featureExtractors))}

	seasonSet := map[int]bool{}
	for _, row := range rows {
		if season != 0 && row.Season != season {
			continue
		}
		if row.Attempts < t.ForSeason(row.Season) {
			continue
		}
		p.members = append(p.members, row)
		seasonSet[row.Season] = true
	}
	if len(p.members) == 0 {
		return nil, normalize.ErrInsufficientPopulation
	}
	for s := range seasonSet {
		p.seasons = append(p.seasons, s)
	}
	sort.Ints(p.seasons)

	for name, extract := range featureExtractors {
		members := p.members
		if name == rating.FeatRushYardsPerGame {
			members = rushQualified(p.members)
		}
		values := make([]float64, 0, len(members))
		for _, row := range members {
			if v := extract(row); !math.IsNaN(v) {
				values = append(values, v)
			}
		}
		if len(values) == 0 {
			// Every member lacked the feature; mark degenerate so scoring
			// falls back to the midpoint for the whole batch.
			p.bounds[name] = normalize.Bounds{Degenerate: true}
			p.degenerate = append(p.degenerate, name)
			continue
		}
		b, err := normalize.NewBounds(values)
		if err != nil {
			return nil, err
		}
		p.bounds[name] = b
		if b.Degenerate {
			p.degenerate = append(p.degenerate, name)
		}
	}
	sort.Strings(p.degenerate)
	return p, nil
}

// rushQualified narrows the mobility population; when no member qualifies
// the full pool is used rather than an empty one.
func rushQualified(members []stats.PlayerSeason) []stats.PlayerSeason {
	qualified := make([]stats.PlayerSeason, 0, len(members))
	for _, row := range members {
		if row.RushAttempts >= minRushPoolAttempts {
			qualified = append(qualified, row)
		}
	}
	if len(qualified) == 0 {
		return members
	}
	return qualified
}
