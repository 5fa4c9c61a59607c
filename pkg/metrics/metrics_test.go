package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	. "github.com/smartystreets/goconvey/convey"
)

func TestManagerCreation(t *testing.T) {
	Convey("Given manager creation", t, func() {
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
		Convey("When recording recommendation metrics", func() {
			Convey("Then it should record recommendations by tier", func() {
				So(func() {
					RecordRecommendation("S")
					RecordRecommendation("A")
					RecordRecommendation("F")
				}, ShouldNotPanic)
			})

			Convey("And it should record recommendation latency", func() {
				So(func() {
					RecordRecommendationLatency(10.0)
					RecordRecommendationLatency(25.0)
					RecordRecommendationLatency(100.0)
				}, ShouldNotPanic)
			})

			Convey("And it should record compose errors by reason", func() {
				So(func() {
					RecordComposeError("exotic_conflict")
					RecordComposeError("locked_item_not_found")
					RecordComposeError("other")
				}, ShouldNotPanic)
			})
		})

		Convey("When recording share metrics", func() {
			Convey("Then it should record accepted and duplicate shares", func() {
				So(func() {
					RecordShareAccepted()
					RecordShareAccepted()
					RecordShareDuplicate()
				}, ShouldNotPanic)
			})
		})

		Convey("When recording catalog metrics", func() {
			Convey("Then it should update catalog items", func() {
				So(func() {
					UpdateCatalogItems(100)
					UpdateCatalogItems(250)
				}, ShouldNotPanic)
			})

			Convey("And it should record catalog reloads by status", func() {
				So(func() {
					RecordCatalogReload("ok")
					RecordCatalogReload("error")
				}, ShouldNotPanic)
			})
		})

		Convey("When recording operational metrics", func() {
			Convey("Then it should update queue size", func() {
				So(func() {
					UpdateQueueSize(1000)
					UpdateQueueSize(2000)
					UpdateQueueSize(500)
				}, ShouldNotPanic)
			})

			Convey("And it should update worker count", func() {
				So(func() {
					UpdateWorkerCount(8)
					UpdateWorkerCount(16)
					UpdateWorkerCount(4)
				}, ShouldNotPanic)
			})

			Convey("And it should update queue capacity", func() {
				So(func() {
					UpdateQueueCapacity(10000)
					UpdateQueueCapacity(50000)
				}, ShouldNotPanic)
			})

			Convey("And it should record queue enqueue errors", func() {
				So(func() {
					RecordQueueEnqueueError("queue_full")
					RecordQueueEnqueueError("queue_closed")
				}, ShouldNotPanic)
			})

			Convey("And it should record queue processing latency", func() {
				So(func() {
					RecordQueueLatency(20.0)
					RecordQueueLatency(30.0)
				}, ShouldNotPanic)
			})
		})

		Convey("When recording HTTP metrics", func() {
			Convey("Then it should record HTTP requests", func() {
				So(func() {
					RecordHTTPRequest("/healthz", "GET", "200")
					RecordHTTPRequest("/v1/recommendations", "POST", "200")
					RecordHTTPRequest("/v1/builds/share", "POST", "202")
				}, ShouldNotPanic)
			})

			Convey("And it should record HTTP request duration", func() {
				So(func() {
					RecordHTTPRequestDuration("/healthz", "GET", "200", 5.0)
					RecordHTTPRequestDuration("/v1/recommendations", "POST", "200", 10.0)
					RecordHTTPRequestDuration("/v1/community/top", "GET", "200", 15.0)
				}, ShouldNotPanic)
			})
		})

		Convey("When recording vault metrics", func() {
			Convey("Then it should update the vault build total", func() {
				So(func() {
					UpdateVaultBuildsTotal(100000)
					UpdateVaultBuildsTotal(200000)
				}, ShouldNotPanic)
			})

			Convey("And it should record vault updates and latencies", func() {
				So(func() {
					RecordVaultUpdate()
					RecordVaultUpdateLatency(5.0)
					RecordVaultQueryLatency(2.0)
				}, ShouldNotPanic)
			})

			Convey("And it should record snapshot metrics", func() {
				So(func() {
					RecordVaultSnapshotRebuildDuration(12.0)
					IncrementVaultSnapshotCount()
				}, ShouldNotPanic)
			})
		})

		Convey("When recording worker metrics", func() {
			Convey("Then it should record worker processing latency", func() {
				So(func() {
					RecordWorkerLatency(50.0)
					RecordWorkerLatency(75.0)
				}, ShouldNotPanic)
			})

			Convey("And it should record worker errors by stage", func() {
				So(func() {
					RecordWorkerError("evaluate")
					RecordWorkerError("rank")
				}, ShouldNotPanic)
			})
		})

		Convey("When recording error metrics", func() {
			Convey("Then it should record errors by component", func() {
				So(func() {
					RecordErrorByComponent("http", "bad_request")
					RecordErrorByComponent("repository", "not_found")
					RecordErrorByComponent("queue", "full")
				}, ShouldNotPanic)
			})
		})

		Convey("When recording system metrics", func() {
			Convey("Then it should update system memory usage", func() {
				So(func() {
					UpdateSystemMemoryUsage(1024 * 1024 * 100)
					UpdateSystemMemoryUsage(1024 * 1024 * 200)
				}, ShouldNotPanic)
			})

			Convey("And it should update system goroutine count", func() {
				So(func() {
					UpdateSystemGoroutineCount(100)
					UpdateSystemGoroutineCount(200)
				}, ShouldNotPanic)
			})

			Convey("And it should record system GC pause time", func() {
				So(func() {
					RecordSystemGCPauseTime(1.0)
					RecordSystemGCPauseTime(2.0)
				}, ShouldNotPanic)
			})
		})
	})
}

func TestMetricsEdgeCases(t *testing.T) {
	Convey("Given metrics edge cases", t, func() {
		Convey("When recording metrics with edge values", func() {
			Convey("And using zero values", func() {
				So(func() {
					UpdateQueueSize(0)
					UpdateWorkerCount(0)
					UpdateVaultBuildsTotal(0)
					RecordRecommendationLatency(0.0)
					RecordHTTPRequestDuration("/test", "GET", "200", 0.0)
				}, ShouldNotPanic)
			})

			Convey("And using negative values", func() {
				So(func() {
					UpdateQueueSize(-100)
					UpdateWorkerCount(-10)
					UpdateVaultBuildsTotal(-1000)
				}, ShouldNotPanic)
			})

			Convey("And using very large values", func() {
				So(func() {
					UpdateQueueSize(1000000)
					UpdateWorkerCount(10000)
					UpdateVaultBuildsTotal(10000000)
					RecordRecommendationLatency(10000.0)
					RecordHTTPRequestDuration("/test", "GET", "200", 30000.0)
				}, ShouldNotPanic)
			})

			Convey("And using empty strings", func() {
				So(func() {
					RecordHTTPRequest("", "", "200")
					RecordHTTPRequestDuration("", "", "200", 10.0)
					RecordErrorByComponent("", "")
					RecordComposeError("")
					RecordRecommendation("")
				}, ShouldNotPanic)
			})

			Convey("And using special characters in labels", func() {
				So(func() {
					RecordHTTPRequest("/test?param=value&other=123", "GET", "200")
					RecordErrorByComponent("component-with-dash", "error_with_underscore")
					RecordCatalogReload("status.with.dots")
				}, ShouldNotPanic)
			})
		})
	})
}

func TestMetricsConcurrency(t *testing.T) {
	Convey("Given metrics concurrency", t, func() {
		Convey("When recording metrics concurrently", func() {
			done := make(chan bool, 10)

			// Start multiple goroutines recording metrics
			for i := 0; i < 10; i++ {
				go func(id int) {
					for j := 0; j < 100; j++ {
						RecordShareAccepted()
						UpdateQueueSize(1000 + j)
						RecordRecommendationLatency(float64(j))
						RecordHTTPRequest("/test", "GET", "200")
					}
					done <- true
				}(i)
			}

			// Wait for all goroutines to complete
			for i := 0; i < 10; i++ {
				<-done
			}

			Convey("Then it should handle concurrent access without panics", func() {
				So(true, ShouldBeTrue) // If we get here, no panics occurred
			})
		})
	})
}

func TestMetricsOptionsValidation(t *testing.T) {
	Convey("Given metrics options validation", t, func() {
		Convey("When creating with empty namespace", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(WithNamespace(""), WithPrometheusRegistry(registry))

			Convey("Then it should be created successfully", func() {
				So(manager, ShouldNotBeNil)
			})
		})

		Convey("When creating with empty subsystem", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(WithSubsystem(""), WithPrometheusRegistry(registry))

			Convey("Then it should be created successfully", func() {
				So(manager, ShouldNotBeNil)
			})
		})

		Convey("When creating with nil histogram buckets", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(WithHistogramBuckets(nil), WithPrometheusRegistry(registry))

			Convey("Then it should be created successfully", func() {
				So(manager, ShouldNotBeNil)
			})
		})

		Convey("When creating with nil custom labels", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(WithCustomLabels(nil), WithPrometheusRegistry(registry))

			Convey("Then it should be created successfully", func() {
				So(manager, ShouldNotBeNil)
			})
		})

		Convey("When creating with zero refresh interval", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(WithRefreshInterval(0), WithPrometheusRegistry(registry))

			Convey("Then it should be created successfully", func() {
				So(manager, ShouldNotBeNil)
			})
		})
	})
}
