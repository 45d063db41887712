package archetype

// Thresholds used by the six-trait table. The aggregate-count rules run
// first so the rare well-rounded labels are not masked by single-trait
// rules further down the list.
const (
	goodThreshold   = 77
	strongThreshold = 85
	eliteThreshold  = 93
	dominantCutoff  = 82
	comboCutoff     = 73
	lockdownCutoff  = 95
	steadyProtect   = 92
)

// SixTrait returns the canonical decision list over all six traits.
func SixTrait() *Table {
	return &Table{
		name:   "six-trait",
		traits: traitOrder,
		rules: []Rule{
			{
				Name: "all-around threat: every trait good, none elite",
				Apply: func(v view) (string, bool) {
					if v.countAtLeast(goodThreshold) == 6 && v.countAtLeast(eliteThreshold) == 0 {
						return "All-Around Threat", true
					}
					return "", false
				},
			},
			{
				Name: "complete all-around: every trait strong",
				Apply: func(v view) (string, bool) {
					if v.countAtLeast(strongThreshold) == 6 {
						return "Complete All-Around", true
					}
					return "", false
				},
			},
			{
				Name: "elite ball security gate: branch on second trait",
				Apply: func(v view) (string, bool) {
					t1, t2 := v.top(0), v.top(1)
					if t1.Style != styleProtective || t1.Score < eliteThreshold {
						return "", false
					}
					switch {
					case t2.Style == styleAccuracy && t2.Score >= dominantCutoff:
						return "Efficient Ball Protector", true
					case t2.Style == styleMobility && t2.Score >= dominantCutoff:
						return "Safe Ball Handler", true
					case t2.Style == styleAggression && t2.Score >= dominantCutoff:
						return "Aggressive Ball Protector", true
					default:
						return "Ball Protector", true
					}
				},
			},
			{
				Name: "dominant mobility",
				Apply: func(v view) (string, bool) {
					if t := v.top(0); t.Style == styleMobility && t.Score >= dominantCutoff {
						return "Dynamic Rusher", true
					}
					return "", false
				},
			},
			{
				Name: "dominant accuracy",
				Apply: func(v view) (string, bool) {
					if t := v.top(0); t.Style == styleAccuracy && t.Score >= dominantCutoff {
						return "Precision Passer", true
					}
					return "", false
				},
			},
			{
				Name: "dominant aggression",
				Apply: func(v view) (string, bool) {
					if t := v.top(0); t.Style == styleAggression && t.Score >= dominantCutoff {
						return "Gunslinger", true
					}
					return "", false
				},
			},
			{
				Name: "mobile plus elite protection",
				Apply: func(v view) (string, bool) {
					t1, t2 := v.top(0), v.top(1)
					if t1.Style == styleMobility && t2.Style == styleProtective &&
						t1.Score >= dominantCutoff && t2.Score >= eliteThreshold {
						return "Safe Ball Handler", true
					}
					return "", false
				},
			},
			{
				Name: "dominant poise",
				Apply: func(v view) (string, bool) {
					if t := v.top(0); t.Style == stylePoise && t.Score >= dominantCutoff {
						return "Pressure Resistant", true
					}
					return "", false
				},
			},
			{
				Name: "playmaking defers to second trait",
				Apply: func(v view) (string, bool) {
					if v.top(0).Style != stylePlaymaking {
						return "", false
					}
					t2 := v.top(1)
					switch {
					case t2.Style == styleAggression && t2.Score >= dominantCutoff:
						return "Gunslinger", true
					case t2.Style == styleAccuracy && t2.Score >= dominantCutoff:
						return "Precision Passer", true
					case t2.Style == styleMobility && t2.Score >= dominantCutoff:
						return "Dynamic Rusher", true
					default:
						return "Efficient Passer", true
					}
				},
			},
			{
				Name: "steady accurate combo",
				Apply: func(v view) (string, bool) {
					t1, t2 := v.top(0), v.top(1)
					if t1.Style == styleAccuracy && t2.Style == styleProtective &&
						t1.Score >= comboCutoff && t2.Score >= steadyProtect {
						return "Steady Accurate Passer", true
					}
					return "", false
				},
			},
			{
				Name: "aggressive precision combo",
				Apply: func(v view) (string, bool) {
					t1, t2 := v.top(0), v.top(1)
					if t1.Style == styleAggression && t2.Style == styleAccuracy &&
						t1.Score >= comboCutoff && t2.Score >= comboCutoff {
						return "Aggressive Precision Passer", true
					}
					return "", false
				},
			},
			{
				Name: "protective redirect: never emit a bare protective label",
				Apply: func(v view) (string, bool) {
					t1, t2 := v.top(0), v.top(1)
					if t1.Style != styleProtective {
						return "", false
					}
					if t1.Score >= lockdownCutoff {
						switch t2.Style {
						case styleMobility:
							return "Safe Ball Handler", true
						case styleAccuracy:
							return "Efficient Ball Protector", true
						}
					}
					switch t2.Style {
					case styleAccuracy:
						return "Accurate Passer", true
					case styleMobility:
						return "Mobile Passer", true
					case styleAggression:
						return "Aggressive Passer", true
					default:
						return "Poised Passer", true
					}
				},
			},
			{
				Name: "generic top-trait labels",
				Apply: func(v view) (string, bool) {
					switch v.top(0).Style {
					case styleAggression:
						return "Aggressive Passer", true
					case styleAccuracy:
						return "Accurate Passer", true
					case styleMobility:
						return "Mobile Passer", true
					case stylePoise:
						return "Poised Passer", true
					}
					return "", false
				},
			},
			{
				Name: "fallback",
				Apply: func(view) (string, bool) {
					return "Efficient Passer", true
				},
			},
		},
	}
}

// Thresholds used by the five-trait table, which counts traits per tier
// instead of ranking combinations.
const (
	fiveEliteCut = 75
	fiveGoodCut  = 40
)

// FiveTrait returns the alternate decision list that omits playmaking and
// classifies by tier counts and pairwise elite combinations.
func FiveTrait() *Table {
	fiveOrder := []string{Mobility, Aggression, Accuracy, BallSecurity, PocketPresence}

	pair := func(a, b string, label string) Rule {
		return Rule{
			Name: "elite pair: " + label,
			Apply: func(v view) (string, bool) {
				if v.scores[a] > fiveEliteCut && v.scores[b] > fiveEliteCut {
					return label, true
				}
				return "", false
			},
		}
	}
	single := func(trait, label string) Rule {
		return Rule{
			Name: "lone elite trait: " + label,
			Apply: func(v view) (string, bool) {
				if v.scores[trait] > fiveEliteCut && v.countAbove(fiveGoodCut) < 4 {
					return label, true
				}
				return "", false
			},
		}
	}

	return &Table{
		name:   "five-trait",
		traits: fiveOrder,
		rules: []Rule{
			{
				Name: "all-around superstar: four or more elite",
				Apply: func(v view) (string, bool) {
					if v.countAbove(fiveEliteCut) >= 4 {
						return "All-Around Superstar", true
					}
					return "", false
				},
			},
			{
				Name: "triple-threat elite: exactly three elite",
				Apply: func(v view) (string, bool) {
					if v.countAbove(fiveEliteCut) == 3 {
						return "Triple-Threat Elite", true
					}
					return "", false
				},
			},
			{
				Name: "complete all-around: every trait good",
				Apply: func(v view) (string, bool) {
					if v.countAbove(fiveGoodCut) == 5 {
						return "Complete All-Around QB", true
					}
					return "", false
				},
			},
			{
				Name: "all-around threat: four good, at most one poor",
				Apply: func(v view) (string, bool) {
					if v.countAbove(fiveGoodCut) == 4 && v.countBelow(fiveGoodCut) <= 1 {
						return "All-Around Threat", true
					}
					return "", false
				},
			},
			pair(Mobility, Aggression, "Mobile Downfield Attacker"),
			pair(Mobility, Accuracy, "Mobile Precision Passer"),
			pair(Aggression, Accuracy, "Elite Gunslinger"),
			pair(Accuracy, BallSecurity, "Efficient Ball Protector"),
			pair(Aggression, PocketPresence, "Fearless Deep Shooter"),
			pair(Mobility, PocketPresence, "Dual-Threat Scrambler"),
			pair(BallSecurity, PocketPresence, "Poised Protector"),
			pair(Aggression, BallSecurity, "Aggressive Ball Protector"),
			pair(Mobility, BallSecurity, "Mobile Ball Protector"),
			pair(Accuracy, PocketPresence, "Accurate Pocket Commander"),
			single(Mobility, "Dynamic Rusher"),
			single(Aggression, "Deep Ball Specialist"),
			single(Accuracy, "Precision Passer"),
			single(BallSecurity, "Safe Ball Handler"),
			single(PocketPresence, "Pressure Resistant"),
			{
				Name: "well-rounded starter: three good",
				Apply: func(v view) (string, bool) {
					if v.countAbove(fiveGoodCut) >= 3 {
						return "Well-Rounded Starter", true
					}
					return "", false
				},
			},
			{
				Name: "game manager: four or more poor",
				Apply: func(v view) (string, bool) {
					if v.countBelow(fiveGoodCut) >= 4 {
						return "Game Manager", true
					}
					return "", false
				},
			},
			{
				Name: "fallback",
				Apply: func(view) (string, bool) {
					return "Solid Starter", true
				},
			},
		},
	}
}

// TableByName resolves a configured table name; empty selects the canonical
// six-trait table.
func TableByName(name string) (*Table, bool) {
	switch name {
	case "", "six-trait":
		return SixTrait(), true
	case "five-trait":
		return FiveTrait(), true
	default:
		return nil, false
	}
}
