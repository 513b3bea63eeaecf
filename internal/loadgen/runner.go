package loadgen

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/okian/asana/pkg/logger"
)

const (
	directoryPermission = 0o750
	filePermission      = 0o600
	progressInterval    = time.Second
)

// Run submits generated sessions, waits for them to be processed, then
// checks the leaderboard against per-user ranks.
func Run(ctx context.Context, cfg *Config) (*Stats, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	log := logger.Named("loadgen")
	start := time.Now()
	stats := &Stats{}

	log.Info(ctx, "starting load run",
		logger.String("baseURL", cfg.BaseURL),
		logger.Int("sessions", cfg.NumSessions),
		logger.Int("users", cfg.NumUsers),
		logger.Int("workers", cfg.Workers),
		logger.Float64("duplicateRate", cfg.DuplicateRate),
	)

	client := NewClient(cfg.BaseURL, cfg.Timeout)
	if err := client.Health(ctx); err != nil {
		return nil, fmt.Errorf("service health check failed: %w", err)
	}

	gen := NewGenerator(cfg.NumUsers, cfg.Seed)
	sessions := gen.Generate(cfg.NumSessions, cfg.Frames, cfg.DuplicateRate)
	stats.Generated = len(sessions)

	if cfg.OutputFile != "" {
		if err := saveSessions(cfg.OutputFile, sessions); err != nil {
			log.Warn(ctx, "failed to save sessions", logger.Error(err))
		}
	}

	if err := submit(ctx, cfg, client, sessions, stats); err != nil {
		return stats, fmt.Errorf("session submission failed: %w", err)
	}

	if cfg.Settle > 0 {
		log.Info(ctx, "waiting for sessions to be processed", logger.String("settle", cfg.Settle.String()))
		select {
		case <-ctx.Done():
			return stats, ctx.Err()
		case <-time.After(cfg.Settle):
		}
	}

	ranks := retrieveRanks(ctx, cfg, client, gen.Users(), stats)
	board, err := client.Leaderboard(ctx, cfg.TopN)
	if err != nil {
		return stats, fmt.Errorf("leaderboard retrieval failed: %w", err)
	}
	stats.LeaderboardEntries = len(board)

	problems := Verify(board, ranks)
	stats.Mismatches = len(problems)
	for _, p := range problems {
		log.Warn(ctx, "leaderboard inconsistency", logger.String("detail", p))
	}

	stats.Duration = time.Since(start)
	logStats(ctx, log, stats)
	return stats, nil
}

func submit(ctx context.Context, cfg *Config, client *Client, sessions []Session, stats *Stats) error {
	var accepted, duplicate, rejected, failed, done atomic.Int64
	log := logger.Named("loadgen")

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Workers)

	stop := make(chan struct{})
	go func() {
		ticker := time.NewTicker(progressInterval)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				log.Info(ctx, "progress",
					logger.Int("submitted", int(done.Load())),
					logger.Int("total", len(sessions)))
			}
		}
	}()

	for i := range sessions {
		s := &sessions[i]
		g.Go(func() error {
			outcome, err := client.Submit(gctx, s)
			done.Add(1)
			switch outcome {
			case outcomeAccepted:
				accepted.Add(1)
			case outcomeDuplicate:
				duplicate.Add(1)
			case outcomeRejected:
				rejected.Add(1)
			default:
				failed.Add(1)
			}
			if err != nil && cfg.Verbose {
				log.Warn(gctx, "submit failed", logger.String("session_id", s.SessionID), logger.Error(err))
			}
			return gctx.Err()
		})
	}
	err := g.Wait()
	close(stop)

	stats.Submitted = int(done.Load())
	stats.Accepted = int(accepted.Load())
	stats.Duplicate = int(duplicate.Load())
	stats.Rejected = int(rejected.Load())
	stats.Failed = int(failed.Load())
	return err
}

func retrieveRanks(ctx context.Context, cfg *Config, client *Client, users []string, stats *Stats) map[string]Entry {
	var (
		mu    sync.Mutex
		ranks = make(map[string]Entry, len(users))
	)
	log := logger.Named("loadgen")

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Workers)
	for _, user := range users {
		g.Go(func() error {
			e, err := client.Rank(gctx, user)
			if err != nil {
				// users whose sessions all failed are legitimately unranked
				if cfg.Verbose {
					log.Debug(gctx, "no rank", logger.String("user_id", user), logger.Error(err))
				}
				return nil
			}
			mu.Lock()
			ranks[user] = e
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	stats.RanksRetrieved = len(ranks)
	return ranks
}

// Verify checks that board is ordered with competition ranks and that every
// user on it reports the same rank and score individually. It returns one
// message per inconsistency.
func Verify(board []Entry, ranks map[string]Entry) []string {
	var problems []string
	for i, e := range board {
		if i == 0 {
			if e.Rank != 1 {
				problems = append(problems, fmt.Sprintf("first entry %s has rank %d", e.UserID, e.Rank))
			}
		} else {
			prev := board[i-1]
			switch {
			case e.Score > prev.Score:
				problems = append(problems, fmt.Sprintf("entry %d (%s) outscores entry %d", i, e.UserID, i-1))
			case e.Score == prev.Score && e.Rank != prev.Rank:
				problems = append(problems, fmt.Sprintf("tied entries %s and %s have ranks %d and %d", prev.UserID, e.UserID, prev.Rank, e.Rank))
			case e.Score < prev.Score && e.Rank != i+1:
				problems = append(problems, fmt.Sprintf("entry %d (%s) has rank %d", i, e.UserID, e.Rank))
			}
		}

		r, ok := ranks[e.UserID]
		if !ok {
			continue
		}
		if r.Rank != e.Rank || r.Score != e.Score {
			problems = append(problems, fmt.Sprintf("user %s: leaderboard rank %d score %.1f, rank endpoint %d score %.1f",
				e.UserID, e.Rank, e.Score, r.Rank, r.Score))
		}
	}

	// the best individually ranked user must lead the board
	if len(board) > 0 && len(ranks) > 0 {
		best := make([]Entry, 0, len(ranks))
		for _, r := range ranks {
			best = append(best, r)
		}
		sort.Slice(best, func(i, j int) bool { return best[i].Score > best[j].Score })
		if best[0].Score != board[0].Score {
			problems = append(problems, fmt.Sprintf("top score %.1f but user %s has %.1f", board[0].Score, best[0].UserID, best[0].Score))
		}
	}
	return problems
}

func saveSessions(path string, sessions []Session) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, directoryPermission); err != nil {
			return fmt.Errorf("create directory: %w", err)
		}
	}
	b, err := json.Marshal(sessions)
	if err != nil {
		return fmt.Errorf("marshal sessions: %w", err)
	}
	return os.WriteFile(path, b, filePermission)
}

func logStats(ctx context.Context, log logger.Logger, stats *Stats) {
	var perSecond float64
	if stats.Duration > 0 {
		perSecond = float64(stats.Submitted) / stats.Duration.Seconds()
	}
	log.Info(ctx, "final statistics",
		logger.Int("generated", stats.Generated),
		logger.Int("submitted", stats.Submitted),
		logger.Int("accepted", stats.Accepted),
		logger.Int("duplicate", stats.Duplicate),
		logger.Int("rejected", stats.Rejected),
		logger.Int("failed", stats.Failed),
		logger.Int("ranksRetrieved", stats.RanksRetrieved),
		logger.Int("leaderboardEntries", stats.LeaderboardEntries),
		logger.Int("mismatches", stats.Mismatches),
		logger.String("duration", stats.Duration.String()),
		logger.Float64("sessionsPerSecond", perSecond),
	)
}
