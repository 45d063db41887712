// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"
	"strconv"
)

// ArchetypesHandler handles archetype distribution requests.
type ArchetypesHandler struct {
	deps Dependencies
}

// NewArchetypesHandler creates a new archetypes handler.
func NewArchetypesHandler(deps Dependencies) *ArchetypesHandler {
	return &ArchetypesHandler{deps: deps}
}

// archetypesResponse is the body for GET /archetypes.
type archetypesResponse struct {
	Season       int            `json:"season"`
	Distribution map[string]int `json:"distribution"`
}

// HandleGetArchetypes handles GET /archetypes?season=N&preset=&table= requests.
func (h *ArchetypesHandler) HandleGetArchetypes(w http.ResponseWriter, r *http.Request) {
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

	dist, err := h.deps.Archetypes(r.Context(), season, q.Get("preset"), q.Get("table"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, archetypesResponse{Season: season, Distribution: dist})
}
