package engine_test

import (
	"errors"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/gridrate/gridrate/internal/domain/normalize"
	"github.com/gridrate/gridrate/internal/domain/rating"
	"github.com/gridrate/gridrate/internal/domain/stats"
	"github.com/gridrate/gridrate/internal/engine"
)

// qbRow builds a fully populated season row. q is a quality knob: every
// positive feature grows with it and every inverted rate shrinks, so rows
// with higher q must rate higher under any non-negative weight table.
func qbRow(id string, season, attempts int, q float64) stats.PlayerSeason {
	return stats.PlayerSeason{
		PlayerID:         id,
		PlayerName:       "QB " + id,
		Season:           season,
		Attempts:         attempts,
		RushAttempts:     40,
		TotalGames:       17,
		TotalPlays:       attempts + 60,
		TotalPassEPA:     40 * q,
		PassSuccessRate:  0.40 + 0.05*q,
		CPOE:             2 * q,
		CompletionPct:    60 + 5*q,
		TDRate:           0.04 + 0.01*q,
		TurnoverRate:     3 - q,
		SackRate:         8 - 2*q,
		YardsPerAttempt:  6.5 + 0.5*q,
		TotalWPA:         2 * q,
		HighLeverageEPA:  8 * q,
		ThirdDownSuccess: 0.35 + 0.03*q,
		RedZoneEPA:       4 * q,
		PassYardsPerGame: 200 + 30*q,
		RushYardsPerGame: 10 + 5*q,
		TotalTDsPerGame:  1 + 0.5*q,
		EPAUnderPressure: -0.3 + 0.2*q,
		RushingYards:     150 + 100*q,
		Interceptions:    10,
		FumblesLost:      3,
	}
}

func TestBuildPool(t *testing.T) {
	Convey("Given thresholds requiring 300 attempts", t, func() {
		thresholds := engine.Thresholds{Default: 300}

		Convey("When a snapshot mixes qualified and part-time rows", func() {
			rows := []stats.PlayerSeason{
				qbRow("starter", 2024, 520, 2),
				qbRow("backup", 2024, 250, 1),
			}
			pool, err := engine.BuildPool(rows, 2024, thresholds)

			Convey("Then only rows at or above the threshold join the pool", func() {
				So(err, ShouldBeNil)
				So(pool.Size(), ShouldEqual, 1)
				So(pool.Members()[0].PlayerID, ShouldEqual, "starter")
			})
		})

		Convey("When an in-progress season relaxes the bar", func() {
			relaxed := engine.Thresholds{Default: 300, InProgress: 120, InProgressSeason: 2024}
			rows := []stats.PlayerSeason{
				qbRow("midseason", 2024, 150, 2),
				qbRow("veteran", 2023, 500, 1.5),
			}
			pool, err := engine.BuildPool(rows, 0, relaxed)

			Convey("Then the partial season qualifies under the lower bar", func() {
				So(err, ShouldBeNil)
				So(pool.Size(), ShouldEqual, 2)
				So(pool.Seasons(), ShouldResemble, []int{2023, 2024})
			})

			Convey("And the relaxed bar never leaks into completed seasons", func() {
				short := qbRow("short", 2023, 150, 1)
				p, perr := engine.BuildPool([]stats.PlayerSeason{short, qbRow("veteran", 2023, 500, 1.5)}, 2023, relaxed)
				So(perr, ShouldBeNil)
				So(p.Size(), ShouldEqual, 1)
			})
		})

		Convey("When a season scope is given", func() {
			rows := []stats.PlayerSeason{
				qbRow("a", 2023, 500, 1),
				qbRow("b", 2024, 500, 2),
			}
			pool, err := engine.BuildPool(rows, 2023, thresholds)

			Convey("Then rows from other seasons are excluded", func() {
				So(err, ShouldBeNil)
				So(pool.Size(), ShouldEqual, 1)
				So(pool.Members()[0].PlayerID, ShouldEqual, "a")
				So(pool.Seasons(), ShouldResemble, []int{2023})
			})
		})

		Convey("When no row qualifies", func() {
			rows := []stats.PlayerSeason{qbRow("backup", 2024, 50, 1)}
			_, err := engine.BuildPool(rows, 2024, thresholds)

			Convey("Then the empty pool is an error", func() {
				So(err, ShouldNotBeNil)
				So(errors.Is(err, normalize.ErrInsufficientPopulation), ShouldBeTrue)
			})
		})

		Convey("When one member cannot support a derived feature", func() {
			broken := qbRow("broken", 2024, 400, 1)
			broken.TotalPlays = 0
			broken.TurnoverRate = 0
			rows := []stats.PlayerSeason{
				qbRow("a", 2024, 500, 1),
				qbRow("b", 2024, 500, 2),
				broken,
			}
			pool, err := engine.BuildPool(rows, 2024, thresholds)

			Convey("Then the feature bounds come from the supporting members only", func() {
				So(err, ShouldBeNil)
				b, ok := pool.Bounds(rating.FeatTurnoverRateInv)
				So(ok, ShouldBeTrue)
				So(b.Degenerate, ShouldBeFalse)
				So(b.Min, ShouldAlmostEqual, 1.0)
				So(b.Max, ShouldAlmostEqual, 2.0)
			})
		})

		Convey("When every member shares the same value for a feature", func() {
			rows := []stats.PlayerSeason{
				qbRow("a", 2024, 500, 1.5),
				qbRow("b", 2024, 400, 1.5),
			}
			pool, err := engine.BuildPool(rows, 2024, thresholds)

			Convey("Then the feature is diagnosed as degenerate", func() {
				So(err, ShouldBeNil)
				So(pool.DegenerateFeatures(), ShouldContain, rating.FeatCPOE)
				b, _ := pool.Bounds(rating.FeatCPOE)
				So(b.Degenerate, ShouldBeTrue)
			})
		})

		Convey("When the snapshot mixes runners and pocket passers", func() {
			runnerA := qbRow("runnerA", 2024, 500, 2)
			runnerA.RushAttempts = 100
			runnerA.RushYardsPerGame = 40
			runnerB := qbRow("runnerB", 2024, 500, 1)
			runnerB.RushAttempts = 90
			runnerB.RushYardsPerGame = 20
			statue := qbRow("statue", 2024, 500, 1.5)
			statue.RushAttempts = 2
			statue.RushYardsPerGame = 1

			pool, err := engine.BuildPool([]stats.PlayerSeason{runnerA, runnerB, statue}, 2024, thresholds)

			Convey("Then rushing bounds ignore non-runners", func() {
				So(err, ShouldBeNil)
				b, ok := pool.Bounds(rating.FeatRushYardsPerGame)
				So(ok, ShouldBeTrue)
				So(b.Min, ShouldAlmostEqual, 20.0)
				So(b.Max, ShouldAlmostEqual, 40.0)
			})
		})

		Convey("When no member rushes at all", func() {
			a := qbRow("a", 2024, 500, 2)
			a.RushAttempts = 5
			a.RushYardsPerGame = 10
			b := qbRow("b", 2024, 500, 1)
			b.RushAttempts = 3
			b.RushYardsPerGame = 5

			pool, err := engine.BuildPool([]stats.PlayerSeason{a, b}, 2024, thresholds)

			Convey("Then rushing bounds fall back to the full pool", func() {
				So(err, ShouldBeNil)
				bounds, _ := pool.Bounds(rating.FeatRushYardsPerGame)
				So(bounds.Min, ShouldAlmostEqual, 5.0)
				So(bounds.Max, ShouldAlmostEqual, 10.0)
			})
		})
	})
}

func TestThresholdsForSeason(t *testing.T) {
	Convey("Given thresholds with an in-progress season", t, func() {
		th := engine.Thresholds{Default: 300, InProgress: 120, InProgressSeason: 2025}

		Convey("Then completed seasons use the default bar", func() {
			So(th.ForSeason(2024), ShouldEqual, 300)
		})

		Convey("And the in-progress season uses the lower bar", func() {
			So(th.ForSeason(2025), ShouldEqual, 120)
		})

		Convey("And a zero in-progress season disables the override", func() {
			none := engine.Thresholds{Default: 300, InProgress: 120}
			So(none.ForSeason(2025), ShouldEqual, 300)
		})
	})
}
