package api

import "errors"

// Sentinel kinds for API errors.
var (
	ErrServe         = errors.New("http serve failed")
	ErrBadSeason     = errors.New("season query parameter must be a positive integer")
	ErrBadPlayerPath = errors.New("path must be /players/{player_id}/career")
)
