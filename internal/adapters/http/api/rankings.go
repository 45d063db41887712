// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"
	"strconv"

	"github.com/gridrate/gridrate/internal/engine"
)

// RankingsHandler handles ranking requests.
type RankingsHandler struct {
	deps Dependencies
}

// NewRankingsHandler creates a new rankings handler.
func NewRankingsHandler(deps Dependencies) *RankingsHandler {
	return &RankingsHandler{deps: deps}
}

// rankingsResponse is the body for GET /rankings.
type rankingsResponse struct {
	Season      int                `json:"season"`
	Entries     []RatingEntry      `json:"entries"`
	Diagnostics engine.Diagnostics `json:"diagnostics"`
}

// currentResponse is the body for GET /rankings/current.
type currentResponse struct {
	Entries []CareerEntry `json:"entries"`
}

// HandleGetRankings handles GET /rankings?season=N&preset=&table=&limit=N.
// season is required; limit defaults to the configured maximum.
func (h *RankingsHandler) HandleGetRankings(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	q := r.URL.Query()
	season, err := strconv.Atoi(q.Get("season"))
	if err != nil || season <= 0 {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadSeason)
		return
	}
	limit := parseLimit(q.Get("limit"))

	entries, diag, err := h.deps.Rankings(r.Context(), season, q.Get("preset"), q.Get("table"), limit)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rankingsResponse{
		Season:      season,
		Entries:     entries,
		Diagnostics: diag,
	})
}

// HandleGetCurrent handles GET /rankings/current?as_of=N&limit=N.
// as_of is optional and defaults to the latest stored season.
func (h *RankingsHandler) HandleGetCurrent(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	q := r.URL.Query()
	asOf, ok := parseAsOf(q.Get("as_of"))
	if !ok {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadSeason)
		return
	}
	limit := parseLimit(q.Get("limit"))
	entries, err := h.deps.CurrentRankings(r.Context(), asOf, limit)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, currentResponse{Entries: entries})
}

// parseAsOf turns an optional as_of query value into a reference season.
// An empty value yields 0, which asks the service for the latest season.
func parseAsOf(raw string) (int, bool) {
	if raw == "" {
		return 0, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

// parseLimit turns an optional query value into a limit; 0 requests the
// handler default.
func parseLimit(raw string) int {
	if raw == "" {
		return 0
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0
	}
	return n
}
