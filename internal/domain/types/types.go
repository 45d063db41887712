// Package types contains common read-model types used across the application.
package types

// RatingEntry represents one ranked quarterback season as returned by
// ranking queries.
type RatingEntry struct {
	Rank       int     `json:"rank"`
	PlayerID   string  `json:"player_id"`
	PlayerName string  `json:"player_name"`
	Season     int     `json:"season"`
	Overall    float64 `json:"overall"`
	Archetype  string  `json:"archetype"`

	// Component scores on the rating scale.
	Components map[string]float64 `json:"components"`

	// Playstyle trait scores on the playstyle scale.
	Traits map[string]float64 `json:"traits"`
}

// CareerEntry represents a player's career-weighted rating.
type CareerEntry struct {
	Rank           int     `json:"rank"`
	PlayerID       string  `json:"player_id"`
	PlayerName     string  `json:"player_name"`
	WeightedRating float64 `json:"weighted_rating"`
	RecentRating   float64 `json:"recent_rating"`
	CareerMean     float64 `json:"career_mean"`
	Seasons        int     `json:"seasons"`
	FirstSeason    int     `json:"first_season"`
	LastSeason     int     `json:"last_season"`
	Archetype      string  `json:"archetype"`
}
