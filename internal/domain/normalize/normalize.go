// Package normalize maps raw feature values onto bounded score scales using
// min-max scaling against a reference population.
//
// Conventions:
// - Population statistics are computed once per pool and treated as immutable.
// - A degenerate population (zero variance) yields the scale midpoint for
//   every member; it is a diagnosed condition, not an error.
package normalize

import "math"

// Scale identifies the bounded score range a feature is mapped onto.
type Scale int

const (
	// ZeroToHundred maps values onto [0, 100] with midpoint 50.
	ZeroToHundred Scale = iota
	// FiftyToHundred maps values onto [50, 100] with midpoint 75.
	FiftyToHundred
)

// Floor returns the lower bound of the scale.
func (s Scale) Floor() float64 {
	if s == FiftyToHundred {
		return 50
	}
	return 0
}

// Span returns the width of the scale.
func (s Scale) Span() float64 {
	if s == FiftyToHundred {
		return 50
	}
	return 100
}

// Midpoint returns the degenerate-population fallback score.
func (s Scale) Midpoint() float64 {
	return s.Floor() + s.Span()/2
}

// Bounds holds the min/max of one feature over a reference population.
// Degenerate is set when the population has zero variance.
type Bounds struct {
	Min        float64
	Max        float64
	Degenerate bool
}

// NewBounds computes population bounds for a feature. The population must be
// non-empty; an empty population is a caller error surfaced as
// ErrInsufficientPopulation.
func NewBounds(population []float64) (Bounds, error) {
	if len(population) == 0 {
		return Bounds{}, ErrInsufficientPopulation
	}
	b := Bounds{Min: population[0], Max: population[0]}
	for _, v := range population[1:] {
		if v < b.Min {
			b.Min = v
		}
		if v > b.Max {
			b.Max = v
		}
	}
	b.Degenerate = b.Max <= b.Min
	return b, nil
}

// Score maps a single value onto the scale using the population bounds.
// invert flips polarity so that smaller raw values score higher (turnover
// rate, sack rate). The result is clamped to the scale; out-of-pool values
// scored against in-pool bounds must not drift past the declared range.
func (b Bounds) Score(value float64, invert bool, scale Scale) float64 {
	if b.Degenerate {
		return scale.Midpoint()
	}
	num := value - b.Min
	if invert {
		num = b.Max - value
	}
	raw := scale.Floor() + scale.Span()*num/(b.Max-b.Min)
	return Clamp(raw, scale.Floor(), scale.Floor()+scale.Span())
}

// Normalize maps every value in values onto the scale, computing bounds over
// population. Passing the same slice for both arguments normalizes a
// population against itself; a wider population may also be supplied.
func Normalize(values, population []float64, invert bool, scale Scale) ([]float64, error) {
	b, err := NewBounds(population)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = b.Score(v, invert, scale)
	}
	return out, nil
}

// Clamp bounds v to [lo, hi]. NaN collapses to lo so that a bad upstream
// value can never escape the scale.
func Clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	return math.Max(lo, math.Min(hi, v))
}
