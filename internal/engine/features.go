package engine

import (
	"math"

	"github.com/gridrate/gridrate/internal/domain/rating"
	"github.com/gridrate/gridrate/internal/domain/stats"
)

// extractor pulls one raw feature value out of a season row. NaN marks a
// feature the row cannot support (zero attempts, zero games); the scoring
// stage converts NaN into the documented neutral fallback and counts it.
type extractor func(stats.PlayerSeason) float64

// featureExtractors maps every feature the weight tables reference to its
// raw value. Inverted features (turnover rate, sack rate) extract the raw
// rate; inversion happens during normalization.
var featureExtractors = map[string]extractor{
	rating.FeatPassEPA:          func(p stats.PlayerSeason) float64 { return p.TotalPassEPA },
	rating.FeatSuccessRate:      func(p stats.PlayerSeason) float64 { return p.PassSuccessRate },
	rating.FeatCPOE:             func(p stats.PlayerSeason) float64 { return p.CPOE },
	rating.FeatWPA:              func(p stats.PlayerSeason) float64 { return p.TotalWPA },
	rating.FeatHighLeverageEPA:  func(p stats.PlayerSeason) float64 { return p.HighLeverageEPA },
	rating.FeatTDRate:           func(p stats.PlayerSeason) float64 { return p.TDRate },
	rating.FeatThirdDownSuccess: func(p stats.PlayerSeason) float64 { return p.ThirdDownSuccess },
	rating.FeatRedZoneEPA:       func(p stats.PlayerSeason) float64 { return p.RedZoneEPA },
	rating.FeatCompletionPct:    func(p stats.PlayerSeason) float64 { return p.CompletionPct },
	rating.FeatTDsPerGame:       func(p stats.PlayerSeason) float64 { return p.TotalTDsPerGame },
	rating.FeatEPAUnderPressure: func(p stats.PlayerSeason) float64 { return p.EPAUnderPressure },
	rating.FeatPassYardsPerGame: func(p stats.PlayerSeason) float64 {
		if p.TotalGames <= 0 {
			return math.NaN()
		}
		return p.PassYardsPerGame
	},
	rating.FeatRushYardsPerGame: func(p stats.PlayerSeason) float64 {
		if p.RushYardsPerGame != 0 {
			return p.RushYardsPerGame
		}
		if p.TotalGames <= 0 {
			return math.NaN()
		}
		return p.DeriveRushYardsPerGame()
	},
	rating.FeatTurnoverRateInv: func(p stats.PlayerSeason) float64 {
		if p.TurnoverRate != 0 {
			return p.TurnoverRate
		}
		if p.TotalPlays <= 0 {
			return math.NaN()
		}
		return p.DeriveTurnoverRate()
	},
	rating.FeatSackRateInv: func(p stats.PlayerSeason) float64 {
		if p.TotalPlays <= 0 && p.SackRate == 0 {
			return math.NaN()
		}
		return p.SackRate
	},
	rating.FeatYardsPerAttempt: func(p stats.PlayerSeason) float64 {
		if p.YardsPerAttempt != 0 {
			return p.YardsPerAttempt
		}
		if p.Attempts <= 0 {
			return math.NaN()
		}
		return p.DeriveYardsPerAttempt()
	},
	rating.FeatEPAPerPlay: func(p stats.PlayerSeason) float64 {
		if p.TotalPlays <= 0 {
			return math.NaN()
		}
		return p.EPAPerPlay()
	},
}

// featureNames returns the fixed feature vocabulary in no particular order.
func featureNames() []string {
	names := make([]string, 0, len(featureExtractors))
	for name := range featureExtractors {
		names = append(names, name)
	}
	return names
}
