package config_test

import (
	"runtime"
	"testing"

	"github.com/gridrate/gridrate/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New()

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
			convey.So(cfg.DBPath, convey.ShouldEqual, "gridrate.db")
			convey.So(cfg.Preset, convey.ShouldEqual, "balanced")
			convey.So(cfg.ArchetypeTable, convey.ShouldEqual, "six-trait")
			convey.So(cfg.Thresholds.Default, convey.ShouldEqual, 300)
			convey.So(cfg.Thresholds.InProgress, convey.ShouldEqual, 120)
			convey.So(cfg.Thresholds.InProgressSeason, convey.ShouldEqual, 0)
			convey.So(cfg.ShardCount, convey.ShouldEqual, runtime.NumCPU())
			convey.So(cfg.CacheCapacity, convey.ShouldEqual, 32)
			convey.So(cfg.MaxRankingsLimit, convey.ShouldEqual, 100)
		})
	})
}
