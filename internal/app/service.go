// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/okian/asana/internal/adapters/history"
	"github.com/okian/asana/internal/adapters/mq/queue"
	"github.com/okian/asana/internal/adapters/mq/worker"
	"github.com/okian/asana/internal/adapters/repository"
	"github.com/okian/asana/internal/domain/analysis"
	"github.com/okian/asana/internal/domain/dedupe"
	"github.com/okian/asana/internal/domain/landmark"
	"github.com/okian/asana/internal/domain/model"
	"github.com/okian/asana/internal/domain/recommend"
	"github.com/okian/asana/internal/domain/scoring"
	"github.com/okian/asana/internal/domain/types"
	"github.com/okian/asana/pkg/logger"
	"github.com/okian/asana/pkg/metrics"
)

const stopTimeout = 10 * time.Second

// Service implements the API dependencies for the pose analysis system.
type Service struct {
	mu sync.RWMutex

	// Stateless components, usable before Start
	engine      instrumentedEngine
	recommender *recommend.Recommender
	deduper     dedupe.Deduper

	// Components created by Start
	leaderboard *repository.TreapStore
	queue       *queue.InMemoryQueue
	pool        *worker.Pool
	history     *history.Store

	// cancelRun stops the pool's context once the queue is drained.
	cancelRun context.CancelFunc

	// Configuration
	workerCount int
	queueSize   int
	dedupeSize  int
	historyPath string

	// State
	started   bool
	startedAt time.Time

	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithWorkerCount sets the number of analysis workers.
func WithWorkerCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.workerCount = count
		}
	}
}

// WithQueueSize sets the maximum size of the session queue.
func WithQueueSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.queueSize = size
		}
	}
}

// WithDedupeSize sets how many session IDs are remembered.
func WithDedupeSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.dedupeSize = size
		}
	}
}

// WithHistoryPath enables the SQLite session history at path.
func WithHistoryPath(path string) Option {
	return func(s *Service) {
		s.historyPath = path
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(logger logger.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New constructs a new Service. History is disabled unless WithHistoryPath
// is given.
func New(opts ...Option) *Service {
	s := &Service{
		engine:      instrumentedEngine{engine: analysis.NewEngine()},
		recommender: recommend.New(),
		workerCount: runtime.NumCPU(),
		queueSize:   10_000,
		dedupeSize:  100_000,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.deduper = dedupe.NewInMemoryDeduper(dedupe.WithMaxSize(s.dedupeSize))
	return s
}

// Start initializes and starts the service components.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Named("service")
	}
	s.logger.Info(ctx, "starting pose analysis service...")

	var store *history.Store
	if s.historyPath != "" {
		var err error
		if store, err = history.New(ctx, s.historyPath); err != nil {
			return fmt.Errorf("open history %s: %w", s.historyPath, err)
		}
	}

	// Workers outlive ctx so Stop can drain the queue.
	runCtx, cancelRun := context.WithCancel(context.WithoutCancel(ctx))
	s.cancelRun = cancelRun

	s.history = store
	s.leaderboard = repository.NewTreapStore(runCtx)
	s.queue = queue.NewInMemoryQueue(queue.WithCapacity(s.queueSize))

	var workerOpts []worker.Option
	if store != nil {
		workerOpts = append(workerOpts, worker.WithRecorder(store))
	}
	s.pool = worker.NewPool(s.workerCount, s.queue, s.engine, s.leaderboard, workerOpts...)
	s.pool.Start(runCtx)

	s.started = true
	s.startedAt = time.Now()
	s.logger.Info(ctx, "pose analysis service started",
		logger.Int("workers", s.pool.Size()),
		logger.Int("queueSize", s.queueSize),
		logger.Int("dedupeSize", s.dedupeSize),
		logger.String("history", s.historyPath),
	)
	return nil
}

// Stop drains the queue and releases all components.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), stopTimeout)
	defer cancel()
	s.logger.Info(ctx, "stopping pose analysis service...")

	if err := s.pool.Shutdown(ctx); err != nil {
		s.logger.Warn(ctx, "worker pool did not drain", logger.Error(err))
	}
	s.cancelRun()
	_ = s.leaderboard.Close()
	if s.history != nil {
		if err := s.history.Close(); err != nil {
			s.logger.Error(ctx, "closing history", logger.Error(err))
		}
	}

	s.started = false
	s.logger.Info(ctx, "pose analysis service stopped")
}

// Analyze runs the engine synchronously.
func (s *Service) Analyze(_ context.Context, pose string, lm landmark.Set, opts ...analysis.Option) analysis.Result {
	return s.engine.Analyze(pose, lm, opts...)
}

// Poses lists the supported poses.
func (s *Service) Poses() []analysis.Pose {
	return analysis.Poses()
}

// SeenAndRecord atomically checks if a session id was seen and records it if not.
func (s *Service) SeenAndRecord(ctx context.Context, id string) bool {
	return s.deduper.SeenAndRecord(ctx, id)
}

// Unrecord removes a session ID from the seen list, allowing it to be retried.
func (s *Service) Unrecord(ctx context.Context, id string) {
	s.deduper.Unrecord(ctx, id)
}

// Size returns the current number of entries in the deduper.
func (s *Service) Size() int64 {
	return s.deduper.Size()
}

// Enqueue submits a session for asynchronous analysis.
func (s *Service) Enqueue(ctx context.Context, sess model.Session) error { //nolint:gocritic // hugeParam: sessions travel by value
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.started {
		return queue.ErrClosed
	}
	if err := s.queue.Submit(ctx, sess); err != nil {
		return err
	}
	s.logger.Debug(ctx, "session enqueued",
		logger.String("session_id", sess.SessionID),
		logger.String("user_id", sess.UserID),
		logger.String("pose", sess.Pose),
	)
	return nil
}

// Recommend returns exercises for the topN weakest indicators.
func (s *Service) Recommend(_ context.Context, pose string, indicators map[string]float64, topN int, skill scoring.SkillLevel) []recommend.Recommendation {
	return s.recommender.RecommendMany(pose, indicators, topN, skill)
}

// TopN returns the top N leaderboard entries.
func (s *Service) TopN(ctx context.Context, n int) ([]types.Entry, error) {
	store, err := s.store()
	if err != nil {
		return nil, err
	}
	entries, err := store.TopN(ctx, n)
	if err != nil {
		return nil, err
	}
	out := make([]types.Entry, len(entries))
	for i, e := range entries {
		out[i] = toEntry(e)
	}
	return out, nil
}

// Rank returns the rank and best score of a user.
func (s *Service) Rank(ctx context.Context, userID string) (types.Entry, error) {
	store, err := s.store()
	if err != nil {
		return types.Entry{}, err
	}
	e, err := store.Rank(ctx, userID)
	if err != nil {
		return types.Entry{}, err
	}
	return toEntry(e), nil
}

// History returns the latest sessions of a user and a summary of all of them.
func (s *Service) History(ctx context.Context, userID string, limit int) ([]history.Record, history.Summary, error) {
	store, err := s.historyStore()
	if err != nil {
		return nil, history.Summary{}, err
	}
	summary, err := store.Summary(ctx, userID)
	if err != nil {
		return nil, history.Summary{}, err
	}
	records, err := store.ListByUser(ctx, userID, limit)
	if err != nil {
		return nil, history.Summary{}, err
	}
	return records, summary, nil
}

// DeleteHistory removes every stored session of a user. The leaderboard
// keeps the user's best score.
func (s *Service) DeleteHistory(ctx context.Context, userID string) (int64, error) {
	store, err := s.historyStore()
	if err != nil {
		return 0, err
	}
	return store.Delete(ctx, userID)
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started":        s.started,
		"workerCount":    s.workerCount,
		"queueSize":      s.queueSize,
		"dedupeSize":     s.dedupeSize,
		"dedupeEntries":  s.deduper.Size(),
		"historyEnabled": s.historyPath != "",
		"poses":          analysis.Poses(),
	}

	if s.started {
		ctx := context.Background()
		queueLen := s.queue.Len(ctx)
		totalUsers := s.leaderboard.Count(ctx)

		stats["queueLength"] = queueLen
		stats["activeWorkers"] = s.pool.Active()
		stats["totalUsers"] = totalUsers
		stats["uptimeSeconds"] = int64(time.Since(s.startedAt).Seconds())

		metrics.UpdateTotalUsers(totalUsers)
	}
	return stats
}

func (s *Service) store() (*repository.TreapStore, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.started {
		return nil, ErrNotStarted
	}
	return s.leaderboard, nil
}

func (s *Service) historyStore() (*history.Store, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.historyPath == "" {
		return nil, history.ErrDisabled
	}
	if !s.started {
		return nil, ErrNotStarted
	}
	return s.history, nil
}

func toEntry(e repository.Entry) types.Entry {
	return types.Entry{
		Rank:       e.Rank,
		UserID:     e.UserID,
		Score:      e.Score,
		Pose:       e.Pose,
		SessionID:  e.SessionID,
		SkillLevel: e.SkillLevel,
	}
}
