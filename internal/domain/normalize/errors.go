package normalize

import "errors"

// Sentinel kinds for normalization errors.
var (
	ErrInsufficientPopulation = errors.New("empty normalization population")
)
