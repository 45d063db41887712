// Package repository defines the season-row store interface and errors.
package repository

import (
	"context"

	"github.com/gridrate/gridrate/internal/domain/stats"
)

// Store provides read/write access to the player-season rows that feed the
// rating engine.
type Store interface {
	// UpsertSeasons inserts rows, replacing any existing (player, season,
	// attempts) entry. Returns the number of rows written.
	UpsertSeasons(ctx context.Context, rows []stats.PlayerSeason) (int, error)

	// SeasonRows returns all rows for one season. season == 0 returns every
	// stored row, which is the input the career aggregation needs.
	SeasonRows(ctx context.Context, season int) ([]stats.PlayerSeason, error)

	// PlayerSeasons returns all rows for one player across seasons,
	// ascending by season. Returns ErrNotFound when the player is unknown.
	PlayerSeasons(ctx context.Context, playerID string) ([]stats.PlayerSeason, error)

	// Seasons returns the distinct seasons present, ascending.
	Seasons(ctx context.Context) ([]int, error)

	// Count returns the number of stored rows.
	Count(ctx context.Context) (int, error)

	// Close releases the underlying storage.
	Close() error
}
