// Command pose-load submits synthetic pose sessions to a running service and
// checks the resulting leaderboard.
package main

import (
	"context"
	"flag"
	"os"
	"runtime"
	"time"

	"github.com/okian/asana/internal/loadgen"
	"github.com/okian/asana/pkg/logger"
)

// Default configuration constants.
const (
	defaultSessions = 10000
	defaultUsers    = 1000
	defaultTopN     = 50
	defaultWorkers  = 2 // multiplier for runtime.NumCPU()
	defaultTimeout  = 30 * time.Second
	defaultSettle   = 5 * time.Second
	runTimeout      = 10 * time.Minute
)

func main() {
	var (
		baseURL    = flag.String("url", "http://localhost:9080", "Base URL of the service")
		sessions   = flag.Int("sessions", defaultSessions, "Number of sessions to submit")
		users      = flag.Int("users", defaultUsers, "Number of distinct users")
		duplicates = flag.Float64("duplicates", 0.05, "Fraction of sessions re-sent with the same id")
		frames     = flag.Int("frames", 0, "Frames per session for stability scoring")
		topN       = flag.Int("top", defaultTopN, "Number of top entries to fetch from leaderboard")
		workers    = flag.Int("workers", runtime.NumCPU()*defaultWorkers, "Number of concurrent workers")
		timeout    = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		settle     = flag.Duration("settle", defaultSettle, "Wait before reading the leaderboard back")
		output     = flag.String("output", "", "Write generated sessions to this JSON file")
		seed       = flag.Uint64("seed", 0, "Generator seed (0 = random)")
		logFormat  = flag.String("log-format", logger.FormatText, "Log format: text or json")
		verbose    = flag.Bool("verbose", false, "Log every failed request")
	)
	flag.Parse()

	if err := logger.Init(logger.WithFormat(*logFormat)); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	if *verbose {
		_ = logger.SetLevelString("debug")
	}

	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()

	stats, err := loadgen.Run(ctx, &loadgen.Config{
		BaseURL:       *baseURL,
		NumSessions:   *sessions,
		NumUsers:      *users,
		DuplicateRate: *duplicates,
		Frames:        *frames,
		TopN:          *topN,
		Workers:       *workers,
		Timeout:       *timeout,
		Settle:        *settle,
		OutputFile:    *output,
		Seed:          *seed,
		Verbose:       *verbose,
	})
	if err != nil {
		os.Stderr.WriteString("load run failed: " + err.Error() + "\n")
		os.Exit(1)
	}
	if stats.Mismatches > 0 {
		os.Exit(2)
	}
}
