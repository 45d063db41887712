package rating

import "fmt"

// Feature names produced by the normalization stage and consumed by the
// weight tables. Keeping these as constants ties the presets, the engine
// and the tests to one vocabulary.
const (
	FeatPassEPA          = "total_pass_epa"
	FeatSuccessRate      = "pass_success_rate"
	FeatCPOE             = "cpoe"
	FeatWPA              = "total_wpa"
	FeatHighLeverageEPA  = "high_leverage_epa"
	FeatTDRate           = "td_rate"
	FeatThirdDownSuccess = "third_down_success"
	FeatRedZoneEPA       = "red_zone_epa"
	FeatCompletionPct    = "completion_pct"
	FeatTurnoverRateInv  = "turnover_rate_inv"
	FeatSackRateInv      = "sack_rate_inv"
	FeatPassYardsPerGame = "pass_yards_per_game"
	FeatRushYardsPerGame = "rush_yards_per_game"
	FeatTDsPerGame       = "total_tds_per_game"
	FeatEPAUnderPressure = "epa_under_pressure"
	FeatYardsPerAttempt  = "yards_per_attempt"
	FeatEPAPerPlay       = "epa_per_play"
)

// Component names shared by the presets.
const (
	CompEfficiency   = "efficiency"
	CompImpact       = "impact"
	CompConsistency  = "consistency"
	CompVolume       = "volume"
	CompBallSecurity = "ball_security"
	CompPressure     = "pressure"
)

// Playstyle trait names.
const (
	TraitMobility       = "mobility"
	TraitAggression     = "aggression"
	TraitAccuracy       = "accuracy"
	TraitBallSecurity   = "ball_security"
	TraitPocketPresence = "pocket_presence"
	TraitPlaymaking     = "playmaking"
)

// componentFormulas are shared by every preset; the presets only differ in
// how the components are weighted against each other.
func componentFormulas() map[string]map[string]float64 {
	return map[string]map[string]float64{
		CompEfficiency: {
			FeatPassEPA:     0.50,
			FeatSuccessRate: 0.30,
			FeatCPOE:        0.20,
		},
		CompImpact: {
			FeatWPA:             0.50,
			FeatHighLeverageEPA: 0.30,
			FeatTDRate:          0.20,
		},
		CompConsistency: {
			FeatThirdDownSuccess: 0.40,
			FeatRedZoneEPA:       0.35,
			FeatCompletionPct:    0.25,
		},
		CompVolume: {
			FeatPassYardsPerGame: 0.40,
			FeatRushYardsPerGame: 0.40,
			FeatTDsPerGame:       0.20,
		},
		CompBallSecurity: {
			FeatTurnoverRateInv: 0.40,
			FeatSackRateInv:     0.60,
		},
		CompPressure: {
			FeatEPAUnderPressure: 1.0,
		},
	}
}

// BalancedWeights is the default preset: efficiency-led with situational
// components carrying meaningful weight.
func BalancedWeights() Weights {
	return Weights{
		Components: componentFormulas(),
		Overall: map[string]float64{
			CompEfficiency:   0.30,
			CompImpact:       0.175,
			CompConsistency:  0.225,
			CompVolume:       0.10,
			CompBallSecurity: 0.10,
			CompPressure:     0.10,
		},
	}
}

// ClassicWeights is the earlier efficiency-heavy preset.
func ClassicWeights() Weights {
	return Weights{
		Components: componentFormulas(),
		Overall: map[string]float64{
			CompEfficiency:   0.40,
			CompImpact:       0.20,
			CompConsistency:  0.20,
			CompBallSecurity: 0.10,
			CompVolume:       0.05,
			CompPressure:     0.05,
		},
	}
}

// TraitFormulas maps each playstyle trait to its feature weights. Traits
// feed the archetype classifier; they live on the playstyle scale, not the
// rating scale.
func TraitFormulas() map[string]map[string]float64 {
	return map[string]map[string]float64{
		TraitMobility:     {FeatRushYardsPerGame: 1.0},
		TraitAggression:   {FeatYardsPerAttempt: 1.0},
		TraitAccuracy:     {FeatCPOE: 1.0},
		TraitBallSecurity: {FeatTurnoverRateInv: 1.0},
		TraitPocketPresence: {
			FeatSackRateInv:      0.60,
			FeatEPAUnderPressure: 0.40,
		},
		TraitPlaymaking: {FeatEPAPerPlay: 1.0},
	}
}

// Preset resolves a preset name to its weight tables.
func Preset(name string) (Weights, error) {
	switch name {
	case "", "balanced":
		return BalancedWeights(), nil
	case "classic":
		return ClassicWeights(), nil
	default:
		return Weights{}, fmt.Errorf("%w: unknown preset %q", ErrInvalidWeights, name)
	}
}

// PresetNames lists the recognized preset names.
func PresetNames() []string {
	return []string{"balanced", "classic"}
}

// InvertedFeatures is the set of features where a lower raw value is better.
func InvertedFeatures() map[string]bool {
	return map[string]bool{
		FeatTurnoverRateInv: true,
		FeatSackRateInv:     true,
	}
}
