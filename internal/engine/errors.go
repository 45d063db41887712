package engine

import "errors"

// Sentinel kinds for engine errors.
var (
	ErrBadParams = errors.New("bad scoring params")
)
