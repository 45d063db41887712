// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"
)

// SeasonsHandler handles season listing requests.
type SeasonsHandler struct {
	deps Dependencies
}

// NewSeasonsHandler creates a new seasons handler.
func NewSeasonsHandler(deps Dependencies) *SeasonsHandler {
	return &SeasonsHandler{deps: deps}
}

// seasonsResponse is the body for GET /seasons.
type seasonsResponse struct {
	Seasons []int `json:"seasons"`
}

// HandleGetSeasons handles GET /seasons requests.
func (h *SeasonsHandler) HandleGetSeasons(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	seasons, err := h.deps.Seasons(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, seasonsResponse{Seasons: seasons})
}
