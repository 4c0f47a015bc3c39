package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	service "github.com/okian/diarium/internal/app"
	"github.com/okian/diarium/internal/config"
	"github.com/okian/diarium/pkg/logger"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfigFromEnvironment(t *testing.T) {
	convey.Convey("Given environment overrides", t, func() {
		t.Setenv(config.EnvEnvFile, filepath.Join(t.TempDir(), "absent.env"))
		t.Setenv("DIARIUM_ADDR", ":8081")
		t.Setenv("DIARIUM_QUEUE_SIZE", "1000")
		t.Setenv("DIARIUM_WORKER_COUNT", "4")
		t.Setenv("DIARIUM_PRIMARY_TIER", "none")

		convey.Convey("Then configuration should be loadable", func() {
			cfg, err := config.Load()
			convey.So(err, convey.ShouldBeNil)
			convey.So(cfg.Addr, convey.ShouldEqual, ":8081")
			convey.So(cfg.EntryQueueSize, convey.ShouldEqual, 1000)
			convey.So(cfg.WorkerCount, convey.ShouldEqual, 4)
		})
	})

	convey.Convey("Given an invalid primary tier", t, func() {
		t.Setenv(config.EnvEnvFile, filepath.Join(t.TempDir(), "absent.env"))
		t.Setenv("DIARIUM_PRIMARY_TIER", "cloud")

		convey.Convey("Then run fails before serving", func() {
			convey.So(run(context.Background()), convey.ShouldNotBeNil)
		})
	})
}

func TestHandler(t *testing.T) {
	convey.Convey("Given a started service behind the handler", t, func() {
		cfg := config.New()
		cfg.StatisticalModelPath = filepath.Join(t.TempDir(), "absent.bayes")
		log := logger.NewNop()
		ctx := context.Background()

		svc := service.New(service.FromConfig(cfg, log)...)
		convey.So(svc.Start(ctx), convey.ShouldBeNil)
		defer func() { _ = svc.Stop(ctx) }()

		srv := httptest.NewServer(newHandler(ctx, svc, cfg, log))
		defer srv.Close()

		convey.Convey("When analyzing mood over HTTP", func() {
			resp, err := http.Post(srv.URL+"/api/analyze-mood", "application/json",
				strings.NewReader(`{"text":"I'm really worried about tomorrow's deadline"}`))
			convey.So(err, convey.ShouldBeNil)
			defer resp.Body.Close()
			convey.So(resp.StatusCode, convey.ShouldEqual, http.StatusOK)
		})

		convey.Convey("When reading stats", func() {
			resp, err := http.Get(srv.URL + "/stats")
			convey.So(err, convey.ShouldBeNil)
			defer resp.Body.Close()
			convey.So(resp.StatusCode, convey.ShouldEqual, http.StatusOK)
		})

		convey.Convey("Then the metrics updater runs until cancelled", func() {
			cctx, cancel := context.WithTimeout(ctx, 50*time.Millisecond)
			defer cancel()
			convey.So(func() { startServiceMetricsUpdater(cctx, svc) }, convey.ShouldNotPanic)
			convey.So(func() { updateServiceMetrics(svc) }, convey.ShouldNotPanic)
		})
	})
}
