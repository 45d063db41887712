package service_test

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	service "github.com/gridrate/gridrate/internal/app"
	"github.com/gridrate/gridrate/internal/adapters/repository"
	"github.com/gridrate/gridrate/internal/domain/normalize"
	"github.com/gridrate/gridrate/internal/domain/rating"
	"github.com/gridrate/gridrate/internal/domain/stats"
	"github.com/gridrate/gridrate/internal/engine"
	"github.com/gridrate/gridrate/pkg/logger"
)

func TestMain(m *testing.M) {
	if err := logger.Init(logger.WithWriter(io.Discard)); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

// qbRow builds a fully populated season row whose quality scales with q.
func qbRow(id, name string, season, attempts int, q float64) stats.PlayerSeason {
	return stats.PlayerSeason{
		PlayerID:         id,
		PlayerName:       name,
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

func seedRows() []stats.PlayerSeason {
	return []stats.PlayerSeason{
		qbRow("p1", "Alpha", 2023, 500, 2),
		qbRow("p1", "Alpha", 2024, 520, 3),
		qbRow("p2", "Bravo", 2023, 480, 1),
		qbRow("p2", "Bravo", 2024, 490, 1.5),
		qbRow("p3", "Charlie", 2024, 510, 2),
		qbRow("p4", "Dusty", 2024, 100, 2.5),
	}
}

func startTestService(t *testing.T, rows []stats.PlayerSeason) *service.Service {
	t.Helper()

	path := filepath.Join(t.TempDir(), "gridrate-test.db")
	store, err := repository.OpenSQLite(path)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	if _, err := store.UpsertSeasons(context.Background(), rows); err != nil {
		t.Fatalf("seed store: %v", err)
	}

	svc := service.New(
		service.WithStore(store),
		service.WithThresholds(engine.Thresholds{Default: 300, InProgress: 120}),
		service.WithMaxRankingsLimit(10),
	)
	if err := svc.Start(context.Background()); err != nil {
		t.Fatalf("start service: %v", err)
	}
	t.Cleanup(svc.Stop)
	return svc
}

func TestServiceRankings(t *testing.T) {
	ctx := context.Background()
	svc := startTestService(t, seedRows())

	Convey("Given a seeded service", t, func() {
		Convey("When season rankings are requested", func() {
			entries, diag, err := svc.Rankings(ctx, 2024, "", "", 0)

			Convey("Then qualified players come back ranked by rating", func() {
				So(err, ShouldBeNil)
				So(entries, ShouldHaveLength, 3)
				So(entries[0].PlayerID, ShouldEqual, "p1")
				So(entries[0].Rank, ShouldEqual, 1)
				So(entries[2].PlayerID, ShouldEqual, "p2")
				So(diag.PoolSize, ShouldEqual, 3)
			})

			Convey("And part-time players never reach the pool", func() {
				for _, e := range entries {
					So(e.PlayerID, ShouldNotEqual, "p4")
				}
			})
		})

		Convey("When a limit is supplied", func() {
			entries, _, err := svc.Rankings(ctx, 2024, "", "", 2)

			Convey("Then only the top entries come back", func() {
				So(err, ShouldBeNil)
				So(entries, ShouldHaveLength, 2)
			})
		})

		Convey("When the limit exceeds the configured ceiling", func() {
			entries, _, err := svc.Rankings(ctx, 2024, "", "", 5000)

			Convey("Then the ceiling applies instead", func() {
				So(err, ShouldBeNil)
				So(len(entries), ShouldBeLessThanOrEqualTo, 10)
			})
		})

		Convey("When the preset is unknown", func() {
			_, _, err := svc.Rankings(ctx, 2024, "moneyball", "", 0)

			Convey("Then the weights error surfaces", func() {
				So(errors.Is(err, rating.ErrInvalidWeights), ShouldBeTrue)
			})
		})

		Convey("When the season has no qualified rows", func() {
			_, _, err := svc.Rankings(ctx, 1999, "", "", 0)

			Convey("Then the empty pool is reported", func() {
				So(errors.Is(err, normalize.ErrInsufficientPopulation), ShouldBeTrue)
			})
		})
	})
}

func TestServiceCurrentRankings(t *testing.T) {
	ctx := context.Background()
	svc := startTestService(t, seedRows())

	Convey("Given a seeded service", t, func() {
		Convey("When career rankings are requested", func() {
			entries, err := svc.CurrentRankings(ctx, 0, 0)

			Convey("Then every qualified player gets a career entry", func() {
				So(err, ShouldBeNil)
				So(entries, ShouldHaveLength, 3)
			})

			Convey("And the perennial leader ranks first", func() {
				So(entries[0].PlayerID, ShouldEqual, "p1")
				So(entries[0].Rank, ShouldEqual, 1)
				So(entries[0].Seasons, ShouldEqual, 2)
				So(entries[0].FirstSeason, ShouldEqual, 2023)
				So(entries[0].LastSeason, ShouldEqual, 2024)
			})

			Convey("And the perennial trailer ranks last", func() {
				So(entries[2].PlayerID, ShouldEqual, "p2")
			})

			Convey("And single-season players are folded too", func() {
				for _, e := range entries {
					if e.PlayerID == "p3" {
						So(e.Seasons, ShouldEqual, 1)
						So(e.FirstSeason, ShouldEqual, 2024)
					}
				}
			})
		})

		Convey("When a limit is supplied", func() {
			entries, err := svc.CurrentRankings(ctx, 0, 1)

			Convey("Then only the leader comes back", func() {
				So(err, ShouldBeNil)
				So(entries, ShouldHaveLength, 1)
				So(entries[0].PlayerID, ShouldEqual, "p1")
			})
		})

		Convey("When the reference season is pinned to the past", func() {
			entries, err := svc.CurrentRankings(ctx, 2023, 0)

			Convey("Then players without a season by then drop out", func() {
				So(err, ShouldBeNil)
				So(entries, ShouldHaveLength, 2)
				for _, e := range entries {
					So(e.PlayerID, ShouldNotEqual, "p3")
					So(e.LastSeason, ShouldEqual, 2023)
				}
			})
		})
	})
}

func TestServiceCareer(t *testing.T) {
	ctx := context.Background()
	svc := startTestService(t, seedRows())

	Convey("Given a seeded service", t, func() {
		Convey("When a two-season career is requested", func() {
			entry, seasonRatings, err := svc.Career(ctx, "p1", 0)

			Convey("Then the career entry folds both seasons", func() {
				So(err, ShouldBeNil)
				So(entry.PlayerID, ShouldEqual, "p1")
				So(entry.PlayerName, ShouldEqual, "Alpha")
				So(entry.Seasons, ShouldEqual, 2)
				So(entry.WeightedRating, ShouldBeGreaterThan, 0)
				So(entry.Archetype, ShouldNotBeBlank)
			})

			Convey("And season ratings come back in season order", func() {
				So(seasonRatings, ShouldHaveLength, 2)
				So(seasonRatings[0].Season, ShouldEqual, 2023)
				So(seasonRatings[1].Season, ShouldEqual, 2024)
			})
		})

		Convey("When the career is scoped to an earlier season", func() {
			entry, seasonRatings, err := svc.Career(ctx, "p1", 2023)

			Convey("Then later seasons stay out of the fold", func() {
				So(err, ShouldBeNil)
				So(entry.Seasons, ShouldEqual, 1)
				So(entry.LastSeason, ShouldEqual, 2023)
				So(seasonRatings, ShouldHaveLength, 1)
				So(seasonRatings[0].Season, ShouldEqual, 2023)
			})
		})

		Convey("When the player is unknown", func() {
			_, _, err := svc.Career(ctx, "nobody", 0)

			Convey("Then a not-found error surfaces", func() {
				So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)
			})
		})

		Convey("When the player is stored but never qualified", func() {
			_, _, err := svc.Career(ctx, "p4", 0)

			Convey("Then a not-found error surfaces as well", func() {
				So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)
			})
		})
	})
}

func TestServiceArchetypesAndStats(t *testing.T) {
	ctx := context.Background()
	svc := startTestService(t, seedRows())

	Convey("Given a seeded service", t, func() {
		Convey("When the archetype distribution is requested", func() {
			dist, err := svc.Archetypes(ctx, 2024, "", "")

			Convey("Then the counts cover every scored player", func() {
				So(err, ShouldBeNil)
				total := 0
				for label, n := range dist {
					So(label, ShouldNotBeBlank)
					total += n
				}
				So(total, ShouldEqual, 3)
			})
		})

		Convey("When stored seasons are listed", func() {
			seasons, err := svc.Seasons(ctx)

			Convey("Then they come back ascending", func() {
				So(err, ShouldBeNil)
				So(seasons, ShouldResemble, []int{2023, 2024})
			})
		})

		Convey("When service stats are gathered", func() {
			stats := svc.GetStats()

			Convey("Then the snapshot covers store and cache state", func() {
				So(stats["started"], ShouldEqual, true)
				So(stats["storedRows"], ShouldEqual, 6)
				So(stats["seasons"], ShouldResemble, []int{2023, 2024})
				So(stats, ShouldContainKey, "cacheHits")
				So(stats, ShouldContainKey, "cachedBatches")
			})
		})
	})
}
