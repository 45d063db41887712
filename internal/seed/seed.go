// Package seed generates synthetic quarterback season rows for demos, local
// development and load testing. Output is deterministic for a given seed so
// a seeded database can be rebuilt byte-for-byte.
package seed

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/gridrate/gridrate/internal/domain/stats"
)

// Default generation parameters.
const (
	defaultPlayers = 24
	defaultSeed    = 1

	gamesPerSeason = 17
)

// Performance tiers. Each synthetic player is assigned one tier that fixes
// the center of its quality distribution; individual seasons jitter around
// it so careers trend rather than repeat.
const (
	tierElite = iota
	tierProBowl
	tierStarter
	tierJourneyman
	tierBackup
	tierCount
)

// quality centers and jitter per tier, on a 0..1 scale.
var tierQuality = [tierCount]struct {
	center float64
	jitter float64
}{
	tierElite:      {0.90, 0.08},
	tierProBowl:    {0.72, 0.10},
	tierStarter:    {0.52, 0.12},
	tierJourneyman: {0.35, 0.12},
	tierBackup:     {0.30, 0.15},
}

var firstNames = []string{
	"Jake", "Marcus", "Tyler", "Dak", "Jordan", "Trey", "Caleb", "Desmond",
	"Malik", "Brock", "Gardner", "Sam", "Will", "Anthony", "Bryce", "Kenny",
}

var lastNames = []string{
	"Harmon", "Fields", "Calloway", "Briggs", "Mercer", "Stokes", "Whitaker",
	"Lattimore", "Donovan", "Pryor", "Kessler", "Ramsey", "Holloway", "Bates",
}

// Generator produces synthetic season rows.
type Generator struct {
	rng     *rand.Rand
	seasons []int
	players int
}

// Option applies a configuration option to the Generator.
type Option func(*Generator)

// WithSeed fixes the random source; equal seeds produce equal rows.
func WithSeed(seed int64) Option {
	return func(g *Generator) {
		g.rng = rand.New(rand.NewSource(seed))
	}
}

// WithSeasons sets which seasons rows are generated for.
func WithSeasons(seasons []int) Option {
	return func(g *Generator) {
		if len(seasons) > 0 {
			g.seasons = seasons
		}
	}
}

// WithPlayerCount sets how many synthetic players are generated.
func WithPlayerCount(n int) Option {
	return func(g *Generator) {
		if n > 0 {
			g.players = n
		}
	}
}

// New constructs a Generator with default configuration.
func New(opts ...Option) *Generator {
	g := &Generator{
		rng:     rand.New(rand.NewSource(defaultSeed)),
		seasons: []int{2022, 2023, 2024},
		players: defaultPlayers,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Rows generates one row per player per season. Backups draw low attempt
// counts so seeded data exercises qualification filtering.
func (g *Generator) Rows() []stats.PlayerSeason {
	rows := make([]stats.PlayerSeason, 0, g.players*len(g.seasons))
	for i := 0; i < g.players; i++ {
		tier := i % tierCount
		name := fmt.Sprintf("%s %s",
			firstNames[g.rng.Intn(len(firstNames))],
			lastNames[g.rng.Intn(len(lastNames))],
		)
		id := fmt.Sprintf("qb-%04d", i+1)
		mobility := g.rng.Float64()

		for _, season := range g.seasons {
			rows = append(rows, g.seasonRow(id, name, season, tier, mobility))
		}
	}
	return rows
}

// seasonRow synthesizes one season from the player's tier, with per-season
// jitter so multi-season careers show form swings.
func (g *Generator) seasonRow(id, name string, season, tier int, mobility float64) stats.PlayerSeason {
	tq := tierQuality[tier]
	q := clamp01(tq.center + (g.rng.Float64()*2-1)*tq.jitter)

	games := 14 + g.rng.Intn(4)
	attempts := 320 + g.rng.Intn(300)
	if tier == tierBackup {
		games = 2 + g.rng.Intn(6)
		attempts = 40 + g.rng.Intn(140)
	}
	rushAttempts := 10 + int(mobility*110)
	sacks := int(float64(attempts) * (0.09 - 0.05*q))
	plays := attempts + rushAttempts + sacks

	rushYPG := 2 + 45*mobility
	interceptions := int(math.Round(18 - 12*q))
	fumbles := g.rng.Intn(5)

	return stats.PlayerSeason{
		PlayerID:         id,
		PlayerName:       name,
		Season:           season,
		Attempts:         attempts,
		RushAttempts:     rushAttempts,
		TotalGames:       games,
		TotalPlays:       plays,
		TotalPassEPA:     -60 + 180*q,
		PassSuccessRate:  0.38 + 0.12*q,
		CPOE:             -3 + 7*q,
		CompletionPct:    58 + 12*q,
		TDRate:           0.03 + 0.04*q,
		TurnoverRate:     3.4 - 2.2*q,
		SackRate:         9 - 5*q,
		YardsPerAttempt:  6 + 2.5*q,
		TotalWPA:         -1 + 5*q,
		HighLeverageEPA:  -10 + 35*q,
		ThirdDownSuccess: 0.32 + 0.14*q,
		RedZoneEPA:       -5 + 20*q,
		PassYardsPerGame: 180 + 110*q,
		RushYardsPerGame: rushYPG,
		TotalTDsPerGame:  0.8 + 1.4*q,
		EPAUnderPressure: -0.45 + 0.5*q,
		RushingYards:     rushYPG * float64(games),
		Interceptions:    interceptions,
		FumblesLost:      fumbles,
	}
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
