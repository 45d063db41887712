package stats

import "errors"

// Sentinel kinds for stats-row errors.
var (
	ErrMissingIdentity = errors.New("row missing player_id or season")
)
