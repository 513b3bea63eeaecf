// Package config defines service configuration and its loading.
//
// Values are layered: defaults from New, then an optional YAML file named by
// ASANA_CONFIG, then ASANA_* environment variables.
package config

import (
	"fmt"
	"runtime"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log handler: text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// QueueSize bounds the in-memory session queue.
	QueueSize int `koanf:"queue_size"`

	// WorkerCount sets the number of analysis workers.
	WorkerCount int `koanf:"worker_count"`

	// DedupeSize caps how many session IDs are remembered for idempotency.
	DedupeSize int `koanf:"dedupe_size"`

	// MaxLeaderboardLimit caps GET /leaderboard?limit.
	MaxLeaderboardLimit int `koanf:"max_leaderboard_limit"`

	// HistoryPath is the SQLite database for session history. Empty disables history.
	HistoryPath string `koanf:"history_path"`

	// HistoryLimit is the default and maximum page size of GET /history.
	HistoryLimit int `koanf:"history_limit"`

	// MinConfidence rejects sessions whose classifier confidence is lower.
	MinConfidence float64 `koanf:"min_confidence"`

	// RecommendationTopN is the default number of recommended exercises.
	RecommendationTopN int `koanf:"recommendation_top_n"`

	// MetricsNamespace and MetricsSubsystem prefix every metric name.
	MetricsNamespace string `koanf:"metrics_namespace"`
	MetricsSubsystem string `koanf:"metrics_subsystem"`

	// MetricsConstLabels are attached to every metric, e.g. {"region": "eu"}.
	MetricsConstLabels map[string]string `koanf:"metrics_const_labels"`

	// MetricsScoreBuckets and MetricsLatencyBuckets override the histogram
	// buckets. Empty keeps the built-in ones.
	MetricsScoreBuckets   []float64 `koanf:"metrics_score_buckets"`
	MetricsLatencyBuckets []float64 `koanf:"metrics_latency_buckets"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:            "info",
		LogFormat:           "text",
		Addr:                ":9080",
		QueueSize:           10_000,
		WorkerCount:         runtime.NumCPU(),
		DedupeSize:          100_000,
		MaxLeaderboardLimit: 100,
		HistoryPath:         "asana.db",
		HistoryLimit:        50,
		MinConfidence:       0.5,
		RecommendationTopN:  3,
		MetricsNamespace:    "asana",
		MetricsSubsystem:    "pose",
	}
}

// Validate reports the first invalid field, wrapped in ErrInvalidConfig.
func (c *Config) Validate() error {
	switch {
	case c.Addr == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.MinConfidence < 0 || c.MinConfidence > 1:
		return fmt.Errorf("%w: min_confidence must be within [0, 1], got %v", ErrInvalidConfig, c.MinConfidence)
	case c.LogFormat != "text" && c.LogFormat != "json":
		return fmt.Errorf("%w: log_format must be text or json, got %q", ErrInvalidConfig, c.LogFormat)
	case c.MetricsNamespace == "":
		return fmt.Errorf("%w: metrics_namespace must not be empty", ErrInvalidConfig)
	case !increasing(c.MetricsScoreBuckets):
		return fmt.Errorf("%w: metrics_score_buckets must be strictly increasing", ErrInvalidConfig)
	case !increasing(c.MetricsLatencyBuckets):
		return fmt.Errorf("%w: metrics_latency_buckets must be strictly increasing", ErrInvalidConfig)
	}
	return nil
}

func increasing(buckets []float64) bool {
	for i := 1; i < len(buckets); i++ {
		if buckets[i] <= buckets[i-1] {
			return false
		}
	}
	return true
}
