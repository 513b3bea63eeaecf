package config_test

import (
	"errors"
	"runtime"
	"testing"

	"github.com/okian/asana/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New()

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
			convey.So(cfg.LogFormat, convey.ShouldEqual, "text")
			convey.So(cfg.QueueSize, convey.ShouldEqual, 10_000)
			convey.So(cfg.WorkerCount, convey.ShouldEqual, runtime.NumCPU())
			convey.So(cfg.DedupeSize, convey.ShouldEqual, 100_000)
			convey.So(cfg.MinConfidence, convey.ShouldEqual, 0.5)
			convey.So(cfg.RecommendationTopN, convey.ShouldEqual, 3)
			convey.So(cfg.Validate(), convey.ShouldBeNil)
		})
	})
}

func TestConfig_Validate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*config.Config)
		ok     bool
	}{
		{"defaults", func(*config.Config) {}, true},
		{"empty addr", func(c *config.Config) { c.Addr = "" }, false},
		{"confidence below zero", func(c *config.Config) { c.MinConfidence = -0.1 }, false},
		{"confidence above one", func(c *config.Config) { c.MinConfidence = 1.01 }, false},
		{"confidence bounds", func(c *config.Config) { c.MinConfidence = 1 }, true},
		{"json logs", func(c *config.Config) { c.LogFormat = "json" }, true},
		{"xml logs", func(c *config.Config) { c.LogFormat = "xml" }, false},
		{"empty metrics namespace", func(c *config.Config) { c.MetricsNamespace = "" }, false},
		{"sorted buckets", func(c *config.Config) { c.MetricsLatencyBuckets = []float64{1, 2, 4} }, true},
		{"unsorted score buckets", func(c *config.Config) { c.MetricsScoreBuckets = []float64{50, 10} }, false},
		{"repeated latency buckets", func(c *config.Config) { c.MetricsLatencyBuckets = []float64{1, 1} }, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := config.New()
			tc.mutate(cfg)
			err := cfg.Validate()
			if tc.ok && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !tc.ok && !errors.Is(err, config.ErrInvalidConfig) {
				t.Fatalf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}
