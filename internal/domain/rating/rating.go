// Package rating combines normalized feature scores into named component
// scores and one overall rating using configurable weight tables.
package rating

import (
	"fmt"
	"math"

	"github.com/gridrate/gridrate/internal/domain/normalize"
)

// weightTolerance is how far a weight map may stray from summing to 1.0.
const weightTolerance = 1e-6

// Weights configures a Scorer: per-component feature weights plus the
// overall component weights. Every map must sum to 1.0 within tolerance.
type Weights struct {
	// Components maps component name -> feature name -> weight.
	Components map[string]map[string]float64 `koanf:"components"`

	// Overall maps component name -> weight in the final rating.
	Overall map[string]float64 `koanf:"overall"`
}

// Validate checks every weight map sums to 1.0 and contains no negative
// weights. Called once at construction; scoring never re-validates.
func (w Weights) Validate() error {
	if len(w.Overall) == 0 {
		return fmt.Errorf("%w: empty overall weights", ErrInvalidWeights)
	}
	if err := validateMap("overall", w.Overall); err != nil {
		return err
	}
	for name, features := range w.Components {
		if _, ok := w.Overall[name]; !ok {
			return fmt.Errorf("%w: component %q has no overall weight", ErrInvalidWeights, name)
		}
		if err := validateMap(name, features); err != nil {
			return err
		}
	}
	for name := range w.Overall {
		if _, ok := w.Components[name]; !ok {
			return fmt.Errorf("%w: overall weight for unknown component %q", ErrInvalidWeights, name)
		}
	}
	return nil
}

func validateMap(name string, m map[string]float64) error {
	if len(m) == 0 {
		return fmt.Errorf("%w: %s has no weights", ErrInvalidWeights, name)
	}
	sum := 0.0
	for feat, v := range m {
		if v < 0 {
			return fmt.Errorf("%w: %s.%s is negative", ErrInvalidWeights, name, feat)
		}
		sum += v
	}
	if math.Abs(sum-1.0) > weightTolerance {
		return fmt.Errorf("%w: %s weights sum to %.6f, want 1.0", ErrInvalidWeights, name, sum)
	}
	return nil
}

// Result holds the component scores and overall rating for one row.
type Result struct {
	Components map[string]float64
	Overall    float64
}

// Scorer computes composite ratings from normalized feature scores. It is a
// pure function of its weight tables; construct once, reuse across rows.
type Scorer struct {
	weights  Weights
	scale    normalize.Scale
	fallback float64
}

// Option applies a configuration option to the Scorer.
type Option func(*Scorer)

// WithScale sets the scale component scores live on. The overall rating is
// clamped to this scale. Default is FiftyToHundred.
func WithScale(scale normalize.Scale) Option {
	return func(s *Scorer) {
		s.scale = scale
		s.fallback = scale.Midpoint()
	}
}

// NewScorer validates the weight tables and returns a Scorer.
// Invalid weights fail here, before any row is processed.
func NewScorer(weights Weights, opts ...Option) (*Scorer, error) {
	if err := weights.Validate(); err != nil {
		return nil, err
	}
	s := &Scorer{
		weights:  weights,
		scale:    normalize.FiftyToHundred,
		fallback: normalize.FiftyToHundred.Midpoint(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Scale returns the scale the scorer clamps to.
func (s *Scorer) Scale() normalize.Scale { return s.scale }

// Score combines the row's normalized feature scores into component scores
// and an overall rating. Missing or NaN features fall back to the scale
// midpoint rather than propagating; the returned count reports how many
// fallbacks were applied so callers can record it in batch diagnostics.
func (s *Scorer) Score(features map[string]float64) (Result, int) {
	fallbacks := 0
	components := make(map[string]float64, len(s.weights.Components))
	for name, featWeights := range s.weights.Components {
		score := 0.0
		for feat, w := range featWeights {
			v, ok := features[feat]
			if !ok || math.IsNaN(v) {
				v = s.fallback
				fallbacks++
			}
			score += w * v
		}
		components[name] = score
	}

	overall := 0.0
	for name, w := range s.weights.Overall {
		overall += w * components[name]
	}
	overall = normalize.Clamp(overall, s.scale.Floor(), s.scale.Floor()+s.scale.Span())

	return Result{Components: components, Overall: overall}, fallbacks
}
