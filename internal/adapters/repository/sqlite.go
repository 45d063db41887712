package repository

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/gridrate/gridrate/internal/domain/stats"
	"github.com/gridrate/gridrate/pkg/metrics"
)

//go:embed schema.sql
var schemaSQL string

const columnList = `player_id, player_name, season,
attempts, rush_attempts, total_games, total_plays,
total_pass_epa, pass_success_rate, cpoe, completion_pct,
td_rate, turnover_rate, sack_rate, yards_per_attempt,
total_wpa, high_leverage_epa, third_down_success, red_zone_epa,
pass_yards_per_game, rush_yards_per_game, total_tds_per_game, epa_under_pressure,
rushing_yards, interceptions, fumbles_lost`

// On conflict the row with more attempts wins and a tie keeps the stored
// row, matching the duplicate resolution rule the engine applies in memory.
const upsertSQL = `INSERT INTO player_seasons (` + columnList + `)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT (player_id, season) DO UPDATE SET
    player_name = excluded.player_name,
    attempts = excluded.attempts,
    rush_attempts = excluded.rush_attempts,
    total_games = excluded.total_games,
    total_plays = excluded.total_plays,
    total_pass_epa = excluded.total_pass_epa,
    pass_success_rate = excluded.pass_success_rate,
    cpoe = excluded.cpoe,
    completion_pct = excluded.completion_pct,
    td_rate = excluded.td_rate,
    turnover_rate = excluded.turnover_rate,
    sack_rate = excluded.sack_rate,
    yards_per_attempt = excluded.yards_per_attempt,
    total_wpa = excluded.total_wpa,
    high_leverage_epa = excluded.high_leverage_epa,
    third_down_success = excluded.third_down_success,
    red_zone_epa = excluded.red_zone_epa,
    pass_yards_per_game = excluded.pass_yards_per_game,
    rush_yards_per_game = excluded.rush_yards_per_game,
    total_tds_per_game = excluded.total_tds_per_game,
    epa_under_pressure = excluded.epa_under_pressure,
    rushing_yards = excluded.rushing_yards,
    interceptions = excluded.interceptions,
    fumbles_lost = excluded.fumbles_lost
WHERE excluded.attempts > player_seasons.attempts`

// SQLiteStore persists player-season rows in a SQLite database file.
type SQLiteStore struct {
	conn *sql.DB
}

// OpenSQLite opens (or creates) the database at path and applies the schema.
func OpenSQLite(path string, opts ...SQLiteOption) (*SQLiteStore, error) {
	settings := sqliteSettings{busyTimeout: 5 * time.Second}
	for _, opt := range opts {
		opt(&settings)
	}

	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(%d)",
		path, settings.busyTimeout.Milliseconds())
	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if _, err := conn.Exec(schemaSQL); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &SQLiteStore{conn: conn}, nil
}

// Close closes the underlying connection.
func (s *SQLiteStore) Close() error {
	if err := s.conn.Close(); err != nil {
		return fmt.Errorf("%w: %w", ErrStoreClose, err)
	}
	return nil
}

// UpsertSeasons writes rows in one transaction. Rows without identity are
// skipped, not errored, so a partially dirty import still loads.
func (s *SQLiteStore) UpsertSeasons(ctx context.Context, rows []stats.PlayerSeason) (int, error) {
	tx, err := s.conn.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin upsert: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, upsertSQL)
	if err != nil {
		return 0, fmt.Errorf("prepare upsert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	written := 0
	for _, row := range rows {
		if err := row.Validate(); err != nil {
			continue
		}
		if _, err := stmt.ExecContext(ctx,
			row.PlayerID, row.PlayerName, row.Season,
			row.Attempts, row.RushAttempts, row.TotalGames, row.TotalPlays,
			row.TotalPassEPA, row.PassSuccessRate, row.CPOE, row.CompletionPct,
			row.TDRate, row.TurnoverRate, row.SackRate, row.YardsPerAttempt,
			row.TotalWPA, row.HighLeverageEPA, row.ThirdDownSuccess, row.RedZoneEPA,
			row.PassYardsPerGame, row.RushYardsPerGame, row.TotalTDsPerGame, row.EPAUnderPressure,
			row.RushingYards, row.Interceptions, row.FumblesLost,
		); err != nil {
			return 0, fmt.Errorf("upsert row %s/%d: %w", row.PlayerID, row.Season, err)
		}
		written++
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit upsert: %w", err)
	}

	s.refreshGauges(ctx)
	return written, nil
}

// SeasonRows returns all rows for one season, or every row when season == 0.
func (s *SQLiteStore) SeasonRows(ctx context.Context, season int) ([]stats.PlayerSeason, error) {
	started := time.Now()
	query := `SELECT ` + columnList + ` FROM player_seasons`
	args := []any{}
	if season != 0 {
		query += ` WHERE season = ?`
		args = append(args, season)
	}
	query += ` ORDER BY season, player_id`

	rows, err := s.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query season rows: %w", err)
	}
	defer func() { _ = rows.Close() }()

	out, err := scanSeasons(rows)
	if err != nil {
		return nil, err
	}
	metrics.RecordStoreQueryLatency(float64(time.Since(started).Milliseconds()))
	return out, nil
}

// PlayerSeasons returns one player's rows ascending by season.
func (s *SQLiteStore) PlayerSeasons(ctx context.Context, playerID string) ([]stats.PlayerSeason, error) {
	started := time.Now()
	rows, err := s.conn.QueryContext(ctx,
		`SELECT `+columnList+` FROM player_seasons WHERE player_id = ? ORDER BY season`, playerID)
	if err != nil {
		return nil, fmt.Errorf("query player seasons: %w", err)
	}
	defer func() { _ = rows.Close() }()

	out, err := scanSeasons(rows)
	if err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, playerID)
	}
	metrics.RecordStoreQueryLatency(float64(time.Since(started).Milliseconds()))
	return out, nil
}

// Seasons returns the distinct seasons present, ascending.
func (s *SQLiteStore) Seasons(ctx context.Context) ([]int, error) {
	rows, err := s.conn.QueryContext(ctx,
		`SELECT DISTINCT season FROM player_seasons ORDER BY season`)
	if err != nil {
		return nil, fmt.Errorf("query seasons: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []int
	for rows.Next() {
		var season int
		if err := rows.Scan(&season); err != nil {
			return nil, fmt.Errorf("scan season: %w", err)
		}
		out = append(out, season)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate seasons: %w", err)
	}
	return out, nil
}

// Count returns the number of stored rows.
func (s *SQLiteStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.conn.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM player_seasons`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count rows: %w", err)
	}
	return n, nil
}

func (s *SQLiteStore) refreshGauges(ctx context.Context) {
	if n, err := s.Count(ctx); err == nil {
		metrics.UpdateStoreRows(n)
	}
	if seasons, err := s.Seasons(ctx); err == nil {
		metrics.UpdateStoreSeasons(len(seasons))
	}
}

func scanSeasons(rows *sql.Rows) ([]stats.PlayerSeason, error) {
	var out []stats.PlayerSeason
	for rows.Next() {
		var r stats.PlayerSeason
		if err := rows.Scan(
			&r.PlayerID, &r.PlayerName, &r.Season,
			&r.Attempts, &r.RushAttempts, &r.TotalGames, &r.TotalPlays,
			&r.TotalPassEPA, &r.PassSuccessRate, &r.CPOE, &r.CompletionPct,
			&r.TDRate, &r.TurnoverRate, &r.SackRate, &r.YardsPerAttempt,
			&r.TotalWPA, &r.HighLeverageEPA, &r.ThirdDownSuccess, &r.RedZoneEPA,
			&r.PassYardsPerGame, &r.RushYardsPerGame, &r.TotalTDsPerGame, &r.EPAUnderPressure,
			&r.RushingYards, &r.Interceptions, &r.FumblesLost,
		); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}
	return out, nil
}
