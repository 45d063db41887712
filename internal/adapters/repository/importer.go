package repository

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/gridrate/gridrate/internal/domain/stats"
	"github.com/gridrate/gridrate/pkg/metrics"
)

// ImportResult reports the outcome of a CSV import.
type ImportResult struct {
	Loaded  int `json:"loaded"`
	Skipped int `json:"skipped"`
}

// ImportCSV reads season rows from a headered CSV and upserts them into the
// store. Unknown columns are ignored; a row that fails to parse or lacks
// identity is skipped and counted, never fatal. Column names follow the
// wire names of the row fields (player_id, season, total_pass_epa, ...).
func ImportCSV(ctx context.Context, store Store, r io.Reader) (ImportResult, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return ImportResult{}, fmt.Errorf("read csv header: %w", err)
	}
	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.ToLower(strings.TrimSpace(name))] = i
	}
	if _, ok := index["player_id"]; !ok {
		return ImportResult{}, fmt.Errorf("%w: header missing player_id", ErrBadCSVRow)
	}

	var rows []stats.PlayerSeason
	skipped := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			skipped++
			continue
		}
		row, ok := parseRow(index, record)
		if !ok || row.Validate() != nil {
			skipped++
			continue
		}
		rows = append(rows, row)
	}

	loaded, err := store.UpsertSeasons(ctx, rows)
	if err != nil {
		return ImportResult{}, fmt.Errorf("store import: %w", err)
	}

	metrics.RecordImportRows(loaded, skipped)
	return ImportResult{Loaded: loaded, Skipped: skipped}, nil
}

func parseRow(index map[string]int, record []string) (stats.PlayerSeason, bool) {
	field := func(name string) string {
		i, ok := index[name]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	ok := true
	asInt := func(name string) int {
		s := field(name)
		if s == "" {
			return 0
		}
		v, err := strconv.Atoi(s)
		if err != nil {
			ok = false
		}
		return v
	}
	asFloat := func(name string) float64 {
		s := field(name)
		if s == "" {
			return 0
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			ok = false
		}
		return v
	}

	row := stats.PlayerSeason{
		PlayerID:   field("player_id"),
		PlayerName: field("player_name"),
		Season:     asInt("season"),

		Attempts:     asInt("attempts"),
		RushAttempts: asInt("rush_attempts"),
		TotalGames:   asInt("total_games"),
		TotalPlays:   asInt("total_plays"),

		TotalPassEPA:     asFloat("total_pass_epa"),
		PassSuccessRate:  asFloat("pass_success_rate"),
		CPOE:             asFloat("cpoe"),
		CompletionPct:    asFloat("completion_pct"),
		TDRate:           asFloat("td_rate"),
		TurnoverRate:     asFloat("turnover_rate"),
		SackRate:         asFloat("sack_rate"),
		YardsPerAttempt:  asFloat("yards_per_attempt"),
		TotalWPA:         asFloat("total_wpa"),
		HighLeverageEPA:  asFloat("high_leverage_epa"),
		ThirdDownSuccess: asFloat("third_down_success"),
		RedZoneEPA:       asFloat("red_zone_epa"),
		PassYardsPerGame: asFloat("pass_yards_per_game"),
		RushYardsPerGame: asFloat("rush_yards_per_game"),
		TotalTDsPerGame:  asFloat("total_tds_per_game"),
		EPAUnderPressure: asFloat("epa_under_pressure"),

		RushingYards:  asFloat("rushing_yards"),
		Interceptions: asInt("interceptions"),
		FumblesLost:   asInt("fumbles_lost"),
	}
	return row, ok
}
