// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"
	"strings"
)

// CareerHandler handles career rating requests.
type CareerHandler struct {
	deps Dependencies
}

// NewCareerHandler creates a new career handler.
func NewCareerHandler(deps Dependencies) *CareerHandler {
	return &CareerHandler{deps: deps}
}

// careerResponse is the body for GET /players/{id}/career.
type careerResponse struct {
	Career        CareerEntry   `json:"career"`
	SeasonRatings []RatingEntry `json:"season_ratings"`
}

// HandleGetCareer handles GET /players/{player_id}/career?as_of=N requests.
// as_of is optional and defaults to the player's latest qualified season.
func (h *CareerHandler) HandleGetCareer(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	// Extract path parameters after /players/
	rest := strings.TrimPrefix(r.URL.Path, "/players/")
	parts := strings.Split(rest, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] != "career" {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadPlayerPath)
		return
	}

	asOf, ok := parseAsOf(r.URL.Query().Get("as_of"))
	if !ok {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadSeason)
		return
	}

	entry, seasons, err := h.deps.Career(r.Context(), parts[0], asOf)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, careerResponse{Career: entry, SeasonRatings: seasons})
}
