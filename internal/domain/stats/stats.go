// Package stats contains the season-level quarterback statistics passed
// between layers. One PlayerSeason row corresponds to one (player, season)
// pair as produced by the play-by-play aggregation upstream.
package stats

import "fmt"

// PlayerSeason represents one quarterback's aggregated statistics for a
// single season. Rate fields are pre-computed by the stats provider; the
// Derive* helpers recompute them when a provider omits them.
type PlayerSeason struct {
	PlayerID   string `json:"player_id"`
	PlayerName string `json:"player_name"`
	Season     int    `json:"season"`

	// Volume.
	Attempts     int `json:"attempts"`
	RushAttempts int `json:"rush_attempts"`
	TotalGames   int `json:"total_games"`
	TotalPlays   int `json:"total_plays"`

	// Efficiency metrics.
	TotalPassEPA     float64 `json:"total_pass_epa"`
	PassSuccessRate  float64 `json:"pass_success_rate"`
	CPOE             float64 `json:"cpoe"`
	CompletionPct    float64 `json:"completion_pct"`
	TDRate           float64 `json:"td_rate"`
	TurnoverRate     float64 `json:"turnover_rate"`
	SackRate         float64 `json:"sack_rate"`
	YardsPerAttempt  float64 `json:"yards_per_attempt"`
	TotalWPA         float64 `json:"total_wpa"`
	HighLeverageEPA  float64 `json:"high_leverage_epa"`
	ThirdDownSuccess float64 `json:"third_down_success"`
	RedZoneEPA       float64 `json:"red_zone_epa"`
	PassYardsPerGame float64 `json:"pass_yards_per_game"`
	RushYardsPerGame float64 `json:"rush_yards_per_game"`
	TotalTDsPerGame  float64 `json:"total_tds_per_game"`
	EPAUnderPressure float64 `json:"epa_under_pressure"`

	// Counting stats used to re-derive rates.
	RushingYards  float64 `json:"rushing_yards"`
	Interceptions int     `json:"interceptions"`
	FumblesLost   int     `json:"fumbles_lost"`
}

// HasIdentity reports whether the row carries the identity columns required
// for scoring. Rows without identity are dropped and counted, never scored.
func (p PlayerSeason) HasIdentity() bool {
	return p.PlayerID != "" && p.Season > 0
}

// Validate reports whether the row can be keyed and persisted.
func (p PlayerSeason) Validate() error {
	if !p.HasIdentity() {
		return fmt.Errorf("%w: %q/%d", ErrMissingIdentity, p.PlayerID, p.Season)
	}
	return nil
}

// DeriveTurnoverRate recomputes turnovers per 100 plays. Returns 0 when the
// row has no plays; a zero-play row carries no rate information.
func (p PlayerSeason) DeriveTurnoverRate() float64 {
	if p.TotalPlays <= 0 {
		return 0
	}
	return float64(p.Interceptions+p.FumblesLost) / float64(p.TotalPlays) * 100
}

// DeriveRushYardsPerGame recomputes rushing yards per game, guarding
// TotalGames == 0.
func (p PlayerSeason) DeriveRushYardsPerGame() float64 {
	if p.TotalGames <= 0 {
		return 0
	}
	return p.RushingYards / float64(p.TotalGames)
}

// DeriveYardsPerAttempt recomputes passing yards per attempt from the
// per-game figure and the games actually played, guarding Attempts == 0
// and TotalGames == 0.
func (p PlayerSeason) DeriveYardsPerAttempt() float64 {
	if p.Attempts <= 0 || p.TotalGames <= 0 {
		return 0
	}
	return p.PassYardsPerGame * float64(p.TotalGames) / float64(p.Attempts)
}

// EPAPerPlay returns total pass EPA spread over all plays, 0 when the row
// has no plays.
func (p PlayerSeason) EPAPerPlay() float64 {
	if p.TotalPlays <= 0 {
		return 0
	}
	return p.TotalPassEPA / float64(p.TotalPlays)
}
