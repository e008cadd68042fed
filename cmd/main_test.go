package main

import (
	"context"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/okian/audible/internal/adapters/http/api"
	app "github.com/okian/audible/internal/app"
	"github.com/okian/audible/internal/config"
	"github.com/okian/audible/pkg/logger"
	"github.com/smartystreets/goconvey/convey"
)

func init() {
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

func TestMainWiring(t *testing.T) {
	convey.Convey("Given the main application", t, func() {
		convey.Convey("When testing configuration loading", func() {
			_ = os.Setenv("AUDIBLE_ADDR", ":8080")
			_ = os.Setenv("AUDIBLE_RUN_WINDOW", "8")
			defer func() {
				_ = os.Unsetenv("AUDIBLE_ADDR")
				_ = os.Unsetenv("AUDIBLE_RUN_WINDOW")
			}()

			convey.Convey("Then configuration should be loadable", func() {
				ctx := context.Background()
				cfg, err := config.Load(ctx)
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.RunWindow, convey.ShouldEqual, 8)
			})
		})

		convey.Convey("When wiring the service into the API server", func() {
			svc := app.New(
				app.WithDedupeSize(128),
				app.WithRunWindow(5),
			)
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			convey.So(svc.Start(ctx), convey.ShouldBeNil)
			defer svc.Stop()

			convey.Convey("Then routes should register without panicking", func() {
				mux := http.NewServeMux()
				apiServer := api.NewServer(svc, svc)
				convey.So(func() { apiServer.Register(ctx, mux) }, convey.ShouldNotPanic)
			})
		})
	})
}
