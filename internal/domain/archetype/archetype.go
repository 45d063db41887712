// Package archetype assigns a categorical playstyle label to a quarterback
// season from its normalized trait scores.
//
// Classification is a decision list: an ordered slice of rules evaluated in
// a fixed sequence where the first match wins. There is no scoring or
// voting, and every table ends in an unconditional fallback so Classify is
// total for any well-formed input.
package archetype

import "sort"

// Trait keys accepted by the classifier.
const (
	Mobility       = "mobility"
	Aggression     = "aggression"
	Accuracy       = "accuracy"
	BallSecurity   = "ball_security"
	PocketPresence = "pocket_presence"
	Playmaking     = "playmaking"
)

// Style names used inside rule predicates. These mirror how the labels read:
// ball security presents as "Protective", pocket presence as "Poise".
const (
	styleMobility   = "Mobility"
	styleAggression = "Aggression"
	styleAccuracy   = "Accuracy"
	styleProtective = "Protective"
	stylePoise      = "Poise"
	stylePlaymaking = "Playmaking"
)

var styleByTrait = map[string]string{
	Mobility:       styleMobility,
	Aggression:     styleAggression,
	Accuracy:       styleAccuracy,
	BallSecurity:   styleProtective,
	PocketPresence: stylePoise,
	Playmaking:     stylePlaymaking,
}

// traitOrder fixes tie-breaking when ranking traits so classification is
// deterministic for equal scores.
var traitOrder = []string{Mobility, Aggression, Accuracy, BallSecurity, PocketPresence, Playmaking}

// TraitScore is one (trait, score) pair after ranking.
type TraitScore struct {
	Trait string
	Style string
	Score float64
}

// view is the pre-computed ranking a rule predicate evaluates against.
type view struct {
	ranked []TraitScore // descending by score
	scores map[string]float64
}

func (v view) top(i int) TraitScore { return v.ranked[i] }

// countAtLeast returns how many traits score at or above the threshold.
func (v view) countAtLeast(threshold float64) int {
	n := 0
	for _, t := range v.ranked {
		if t.Score >= threshold {
			n++
		}
	}
	return n
}

// countAbove returns how many traits score strictly above the threshold.
func (v view) countAbove(threshold float64) int {
	n := 0
	for _, t := range v.ranked {
		if t.Score > threshold {
			n++
		}
	}
	return n
}

// countBelow returns how many traits score strictly below the threshold.
func (v view) countBelow(threshold float64) int {
	n := 0
	for _, t := range v.ranked {
		if t.Score < threshold {
			n++
		}
	}
	return n
}

// Rule is one (predicate, label) pair in a decision list. Apply returns the
// label and true when the rule fires. Name documents the rule for audits
// and per-rule tests.
type Rule struct {
	Name  string
	Apply func(v view) (string, bool)
}

// Table is an ordered decision list over trait scores.
type Table struct {
	name   string
	traits []string
	rules  []Rule
}

// Name returns the table's identifier.
func (t *Table) Name() string { return t.name }

// Rules exposes the ordered rule list for auditing.
func (t *Table) Rules() []Rule { return t.rules }

// Classify ranks the traits and walks the decision list. The final rule of
// every table is unconditional, so a label is always returned.
func (t *Table) Classify(scores map[string]float64) string {
	v := newView(scores, t.traits)
	for _, r := range t.rules {
		if label, ok := r.Apply(v); ok {
			return label
		}
	}
	// Tables always terminate with an unconditional rule; this is the
	// last-resort label if a table was constructed without one.
	return "Balanced Passer"
}

func newView(scores map[string]float64, traits []string) view {
	ranked := make([]TraitScore, 0, len(traits))
	byName := make(map[string]float64, len(traits))
	for _, trait := range traits {
		score := scores[trait] // absent trait scores as 0, never panics
		ranked = append(ranked, TraitScore{Trait: trait, Style: styleByTrait[trait], Score: score})
		byName[trait] = score
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Score > ranked[j].Score })
	return view{ranked: ranked, scores: byName}
}
