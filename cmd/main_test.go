package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	app "github.com/okian/asana/internal/app"
	"github.com/okian/asana/internal/config"
	"github.com/okian/asana/internal/domain/analysis"
	"github.com/okian/asana/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfigFromEnv(t *testing.T) {
	convey.Convey("Given ASANA_ environment variables", t, func() {
		t.Setenv("ASANA_ADDR", ":8081")
		t.Setenv("ASANA_QUEUE_SIZE", "1000")
		t.Setenv("ASANA_WORKER_COUNT", "4")
		t.Setenv("ASANA_HISTORY_PATH", "")

		convey.Convey("Then configuration picks them up", func() {
			cfg, err := config.Load(context.Background())
			convey.So(err, convey.ShouldBeNil)
			convey.So(cfg.Addr, convey.ShouldEqual, ":8081")
			convey.So(cfg.QueueSize, convey.ShouldEqual, 1000)
			convey.So(cfg.WorkerCount, convey.ShouldEqual, 4)
			convey.So(cfg.HistoryPath, convey.ShouldEqual, "")
		})
	})
}

func TestMetricsOptions(t *testing.T) {
	convey.Convey("Given metrics settings in the config", t, func() {
		cfg := config.New()
		cfg.MetricsNamespace = "studio"
		cfg.MetricsConstLabels = map[string]string{"region": "eu"}
		cfg.MetricsLatencyBuckets = []float64{1, 5}

		convey.Convey("When a manager is built from them", func() {
			registry := prometheus.NewRegistry()
			metrics.NewManager(append(metricsOptions(cfg), metrics.WithPrometheusRegistry(registry))...)
			families, err := registry.Gather()
			convey.So(err, convey.ShouldBeNil)

			convey.Convey("Then metric names and labels follow the config", func() {
				var found bool
				for _, f := range families {
					if f.GetName() != "studio_pose_queue_capacity" {
						continue
					}
					found = true
					labels := f.GetMetric()[0].GetLabel()
					convey.So(labels, convey.ShouldHaveLength, 1)
					convey.So(labels[0].GetName(), convey.ShouldEqual, "region")
					convey.So(labels[0].GetValue(), convey.ShouldEqual, "eu")
				}
				convey.So(found, convey.ShouldBeTrue)
			})
		})
	})
}

func TestNewMux(t *testing.T) {
	convey.Convey("Given a mux wired to a started service", t, func() {
		cfg := config.New()
		cfg.HistoryPath = ""

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		svc := app.New(app.WithWorkerCount(1), app.WithQueueSize(10))
		convey.So(svc.Start(ctx), convey.ShouldBeNil)
		defer svc.Stop()

		mux := newMux(cfg, svc)

		convey.Convey("When the health endpoint is requested", func() {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", http.NoBody))

			convey.Convey("Then it answers with metrics", func() {
				convey.So(rec.Code, convey.ShouldEqual, http.StatusOK)
			})
		})

		convey.Convey("When the API docs are requested", func() {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/openapi.yaml", http.NoBody))

			convey.Convey("Then the OpenAPI document is served", func() {
				convey.So(rec.Code, convey.ShouldEqual, http.StatusOK)
				convey.So(rec.Body.String(), convey.ShouldContainSubstring, "openapi")
			})
		})

		convey.Convey("When a reference pose is analyzed", func() {
			lm, _ := analysis.ReferenceLandmarks(analysis.Tree)
			body, _ := json.Marshal(map[string]any{"pose": "tree", "landmarks": lm.Rows()})
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/analyze", bytes.NewReader(body)))

			convey.Convey("Then the analysis succeeds", func() {
				convey.So(rec.Code, convey.ShouldEqual, http.StatusOK)
				var res analysis.Result
				convey.So(json.Unmarshal(rec.Body.Bytes(), &res), convey.ShouldBeNil)
				convey.So(res.Pose, convey.ShouldEqual, "tree")
				convey.So(res.GlobalScore, convey.ShouldNotBeNil)
			})
		})
	})
}

func TestServiceMetricsUpdater(t *testing.T) {
	convey.Convey("Given a service", t, func() {
		svc := app.New()

		convey.Convey("Then a metrics refresh does not panic before start", func() {
			convey.So(func() { updateServiceMetrics(svc) }, convey.ShouldNotPanic)
		})

		convey.Convey("Then the updater returns once ctx is done", func() {
			ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
			defer cancel()

			done := make(chan struct{})
			go func() {
				startServiceMetricsUpdater(ctx, svc)
				close(done)
			}()

			select {
			case <-done:
			case <-time.After(time.Second):
				t.Fatal("updater did not stop")
			}
		})
	})
}
