package seed_test

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/gridrate/gridrate/internal/seed"
)

func TestGenerator(t *testing.T) {
	Convey("Given a generator with a fixed seed", t, func() {
		gen := seed.New(
			seed.WithSeed(42),
			seed.WithSeasons([]int{2023, 2024}),
			seed.WithPlayerCount(10),
		)

		Convey("When rows are generated", func() {
			rows := gen.Rows()

			Convey("Then one row exists per player per season", func() {
				So(rows, ShouldHaveLength, 20)
			})

			Convey("And every row carries an identity and sane values", func() {
				for _, row := range rows {
					So(row.HasIdentity(), ShouldBeTrue)
					So(row.Season, ShouldBeIn, []int{2023, 2024})
					So(row.Attempts, ShouldBeGreaterThan, 0)
					So(row.TotalGames, ShouldBeGreaterThan, 0)
					So(row.TotalPlays, ShouldBeGreaterThanOrEqualTo, row.Attempts)
					So(row.TurnoverRate, ShouldBeGreaterThan, 0)
					So(row.SackRate, ShouldBeGreaterThan, 0)
				}
			})

			Convey("And a player keeps its identity across seasons", func() {
				byID := map[string][]string{}
				for _, row := range rows {
					byID[row.PlayerID] = append(byID[row.PlayerID], row.PlayerName)
				}
				So(byID, ShouldHaveLength, 10)
				for _, names := range byID {
					So(names, ShouldHaveLength, 2)
					So(names[0], ShouldEqual, names[1])
				}
			})

			Convey("And the same seed reproduces the same rows", func() {
				other := seed.New(
					seed.WithSeed(42),
					seed.WithSeasons([]int{2023, 2024}),
					seed.WithPlayerCount(10),
				)
				So(other.Rows(), ShouldResemble, rows)
			})

			Convey("And a different seed diverges", func() {
				other := seed.New(
					seed.WithSeed(7),
					seed.WithSeasons([]int{2023, 2024}),
					seed.WithPlayerCount(10),
				)
				So(other.Rows(), ShouldNotResemble, rows)
			})
		})

		Convey("When the roster spans every tier", func() {
			rows := gen.Rows()

			Convey("Then part-time backups appear alongside full-time starters", func() {
				low, high := 0, 0
				for _, row := range rows {
					if row.Attempts < 200 {
						low++
					}
					if row.Attempts >= 320 {
						high++
					}
				}
				So(low, ShouldBeGreaterThan, 0)
				So(high, ShouldBeGreaterThan, 0)
			})
		})
	})
}
