// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gridrate/gridrate/internal/adapters/repository"
	"github.com/gridrate/gridrate/internal/domain/normalize"
	"github.com/gridrate/gridrate/internal/domain/rating"
	"github.com/gridrate/gridrate/internal/domain/types"
	"github.com/gridrate/gridrate/internal/engine"
)

// RatingEntry mirrors the read shape returned by ranking queries.
type RatingEntry = types.RatingEntry

// CareerEntry mirrors the read shape returned by career queries.
type CareerEntry = types.CareerEntry

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// Rankings returns the top rated seasons for one season scope.
	Rankings(ctx context.Context, season int, preset, table string, limit int) ([]RatingEntry, engine.Diagnostics, error)

	// CurrentRankings returns career-weighted ratings for players active
	// through the asOf season. asOf <= 0 means the latest stored season.
	CurrentRankings(ctx context.Context, asOf, limit int) ([]CareerEntry, error)

	// Career returns one player's career rating and its season ratings,
	// scoped to seasons up to and including asOf.
	Career(ctx context.Context, playerID string, asOf int) (CareerEntry, []RatingEntry, error)

	// Archetypes returns the archetype distribution for one season scope.
	Archetypes(ctx context.Context, season int, preset, table string) (map[string]int, error)

	// Seasons lists the stored seasons, ascending.
	Seasons(ctx context.Context) ([]int, error)
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler     *HealthHandler
	statsHandler      *StatsHandler
	rankingsHandler   *RankingsHandler
	careerHandler     *CareerHandler
	archetypesHandler *ArchetypesHandler
	seasonsHandler    *SeasonsHandler
	dashboardHandler  *dashboardHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		healthHandler:     NewHealthHandler(),
		statsHandler:      NewStatsHandler(statsProvider),
		rankingsHandler:   NewRankingsHandler(deps),
		careerHandler:     NewCareerHandler(deps),
		archetypesHandler: NewArchetypesHandler(deps),
		seasonsHandler:    NewSeasonsHandler(deps),
		dashboardHandler:  newDashboardHandler(),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	// Specific paths first (most specific to least specific)
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/dashboard", s.dashboardHandler.HandleDashboard)
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/rankings/current", MetricsMiddleware(s.rankingsHandler.HandleGetCurrent, "rankings_current"))
	mux.HandleFunc("/rankings", MetricsMiddleware(s.rankingsHandler.HandleGetRankings, "rankings"))
	mux.HandleFunc("/archetypes", MetricsMiddleware(s.archetypesHandler.HandleGetArchetypes, "archetypes"))
	mux.HandleFunc("/seasons", MetricsMiddleware(s.seasonsHandler.HandleGetSeasons, "seasons"))
	mux.HandleFunc("/players/", MetricsMiddleware(s.careerHandler.HandleGetCareer, "career"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeDomainError maps domain error kinds onto HTTP statuses.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found", err)
	case errors.Is(err, normalize.ErrInsufficientPopulation):
		writeError(w, http.StatusUnprocessableEntity, "empty_pool", err)
	case errors.Is(err, rating.ErrInvalidWeights), errors.Is(err, engine.ErrBadParams):
		writeError(w, http.StatusBadRequest, "bad_request", err)
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", err)
	}
}
