package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMetricsOptions(t *testing.T) {
	Convey("Given metrics options", t, func() {
		Convey("When creating options", func() {
			namespaceOpt := WithNamespace("test-namespace")
			subsystemOpt := WithSubsystem("test-subsystem")
			histogramBucketsOpt := WithHistogramBuckets([]float64{0.1, 0.5, 1.0})

			Convey("Then they should be valid functions", func() {
				So(namespaceOpt, ShouldNotBeNil)
				So(subsystemOpt, ShouldNotBeNil)
				So(histogramBucketsOpt, ShouldNotBeNil)
			})
		})
	})
}

func TestMetricsManagerCreation(t *testing.T) {
	Convey("Given metrics manager creation", t, func() {
		Convey("When creating with default options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(WithPrometheusRegistry(registry))

			Convey("Then it should be created successfully", func() {
				So(manager, ShouldNotBeNil)
			})
		})

		Convey("When creating with custom options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace("test-namespace"),
				WithSubsystem("test-subsystem"),
				WithHistogramBuckets([]float64{0.1, 0.5, 1.0}),
				WithPrometheusRegistry(registry),
			)

			Convey("Then it should be created successfully", func() {
				So(manager, ShouldNotBeNil)
			})
		})
	})
}

func TestMetricsRecording(t *testing.T) {
	Convey("Given metrics recording", t, func() {
		Convey("When recording scoring metrics", func() {
			Convey("Then it should record scored batches", func() {
				So(func() {
					RecordBatchScored(32, 15*time.Millisecond)
					RecordBatchScored(40, 22*time.Millisecond)
				}, ShouldNotPanic)
			})

			Convey("And it should record dropped rows", func() {
				So(func() {
					RecordRowsDropped(3)
					RecordRowsDropped(0)
				}, ShouldNotPanic)
			})

			Convey("And it should record resolved duplicates", func() {
				So(func() {
					RecordDuplicatesDropped(2)
					RecordDuplicatesDropped(0)
				}, ShouldNotPanic)
			})

			Convey("And it should record feature fallbacks", func() {
				So(func() {
					RecordFeatureFallbacks(5)
					RecordFeatureFallbacks(0)
				}, ShouldNotPanic)
			})

			Convey("And it should update the pool size", func() {
				So(func() {
					UpdatePoolSize(32)
					UpdatePoolSize(28)
				}, ShouldNotPanic)
			})
		})

		Convey("When recording cache metrics", func() {
			Convey("Then it should record hits and misses", func() {
				So(func() {
					RecordCacheHit()
					RecordCacheMiss()
					UpdateCacheSize(4)
				}, ShouldNotPanic)
			})
		})

		Convey("When recording store metrics", func() {
			Convey("Then it should update store gauges", func() {
				So(func() {
					UpdateStoreRows(1200)
					UpdateStoreSeasons(10)
				}, ShouldNotPanic)
			})

			Convey("And it should record query latency", func() {
				So(func() {
					RecordStoreQueryLatency(2.5)
					RecordStoreQueryLatency(8.0)
				}, ShouldNotPanic)
			})

			Convey("And it should record import outcomes", func() {
				So(func() {
					RecordImportRows(100, 3)
					RecordImportRows(0, 0)
				}, ShouldNotPanic)
			})
		})

		Convey("When recording HTTP metrics", func() {
			Convey("Then it should record HTTP requests", func() {
				So(func() {
					RecordHTTPRequest("/healthz", "GET", "200")
					RecordHTTPRequest("/rankings", "GET", "200")
				}, ShouldNotPanic)
			})

			Convey("And it should record HTTP request duration", func() {
				So(func() {
					RecordHTTPRequestDuration("/healthz", "GET", "200", 5.0)
					RecordHTTPRequestDuration("/rankings", "GET", "200", 15.0)
				}, ShouldNotPanic)
			})
		})

		Convey("When recording error metrics", func() {
			Convey("Then it should record scoring errors", func() {
				So(func() {
					RecordScoringError()
				}, ShouldNotPanic)
			})

			Convey("And it should record errors by component", func() {
				So(func() {
					RecordErrorByComponent("engine", "empty_pool")
					RecordErrorByComponent("store", "query_failed")
				}, ShouldNotPanic)
			})
		})

		Convey("When recording system metrics", func() {
			Convey("Then it should update runtime gauges", func() {
				So(func() {
					UpdateSystemMemoryUsage(1024 * 1024)
					UpdateSystemGoroutineCount(42)
					RecordSystemGCPauseTime(0.25)
				}, ShouldNotPanic)
			})
		})
	})
}

func TestGetRegistry(t *testing.T) {
	Convey("Given the package registry", t, func() {
		Convey("When fetching it", func() {
			registry := GetRegistry()

			Convey("Then it should be non-nil and gatherable", func() {
				So(registry, ShouldNotBeNil)
				families, err := registry.Gather()
				So(err, ShouldBeNil)
				So(families, ShouldNotBeNil)
			})
		})
	})
}
