package config_test

import (
	"context"
	"testing"

	"github.com/okian/audible/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New(context.Background())

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.LogLevel, convey.ShouldEqual, "info")
			convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
			convey.So(cfg.MaxSuggestions, convey.ShouldEqual, 40)
			convey.So(cfg.RunWindow, convey.ShouldEqual, 10)
			convey.So(cfg.DedupeSize, convey.ShouldEqual, 4096)
			convey.So(cfg.PoolCapacity, convey.ShouldEqual, 512)
			convey.So(cfg.CallerTeam, convey.ShouldEqual, "ME")
			convey.So(cfg.ShutdownTimeoutMS, convey.ShouldEqual, 5000)
			convey.So(len(cfg.CORSOrigins), convey.ShouldBeGreaterThan, 0)
		})
	})
}
