package rating

import "errors"

// Sentinel kinds for rating configuration errors.
var (
	ErrInvalidWeights = errors.New("invalid weights")
)
