package config

import (
	"context"
	"runtime"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestNew(t *testing.T) {
	Convey("Given a fresh configuration", t, func() {
		cfg := New(context.Background())

		Convey("Then the defaults should be sensible", func() {
			So(cfg.LogLevel, ShouldEqual, "info")
			So(cfg.Addr, ShouldEqual, ":9080")
			So(cfg.CatalogPath, ShouldEqual, "catalog.yaml")
			So(cfg.CatalogWatch, ShouldBeTrue)
			So(cfg.ShareQueueSize, ShouldEqual, 10_000)
			So(cfg.WorkerCount, ShouldEqual, runtime.NumCPU()*2)
			So(cfg.DedupeSize, ShouldEqual, 50_000)
			So(cfg.MaxCommunityLimit, ShouldEqual, 100)
			So(cfg.AlternativeCount, ShouldEqual, 3)
		})

		Convey("And the stat targets should be ordered", func() {
			So(cfg.StatTargetBase, ShouldEqual, 40)
			So(cfg.StatTargetFavored, ShouldEqual, 100)
			So(cfg.StatTargetFocus, ShouldEqual, 140)
			So(cfg.validate(), ShouldBeNil)
		})
	})
}

func TestValidate(t *testing.T) {
	Convey("Given configuration validation", t, func() {
		Convey("When the address is empty", func() {
			cfg := New(context.Background())
			cfg.Addr = ""

			Convey("Then validation should fail", func() {
				err := cfg.validate()
				So(err, ShouldNotBeNil)
				So(err, ShouldWrap, ErrInvalidConfig)
			})
		})

		Convey("When the catalog path is empty", func() {
			cfg := New(context.Background())
			cfg.CatalogPath = ""

			Convey("Then validation should fail", func() {
				So(cfg.validate(), ShouldWrap, ErrInvalidConfig)
			})
		})

		Convey("When the stat targets are out of order", func() {
			cfg := New(context.Background())
			cfg.StatTargetFavored = 30

			Convey("Then validation should fail", func() {
				So(cfg.validate(), ShouldWrap, ErrInvalidConfig)
			})
		})

		Convey("When a category weight is negative", func() {
			cfg := New(context.Background())
			cfg.CategoryWeights = map[string]float64{"synergy": -0.5}

			Convey("Then validation should fail", func() {
				So(cfg.validate(), ShouldWrap, ErrInvalidConfig)
			})
		})
	})
}
