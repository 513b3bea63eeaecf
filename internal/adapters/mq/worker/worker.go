// Package worker analyzes queued sessions and publishes their scores.
package worker

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/okian/asana/internal/adapters/history"
	"github.com/okian/asana/internal/adapters/repository"
	"github.com/okian/asana/internal/domain/analysis"
	"github.com/okian/asana/internal/domain/landmark"
	"github.com/okian/asana/internal/domain/model"
	"github.com/okian/asana/pkg/logger"
	"github.com/okian/asana/pkg/metrics"
)

const (
	metricsUpdateInterval = 5 * time.Second
	poolShutdownTimeout   = 30 * time.Second
)

// Session is what workers read off the queue.
type Session = model.Session

// Analyzer scores a pose snapshot.
type Analyzer interface {
	Analyze(pose string, lm landmark.Set, opts ...analysis.Option) analysis.Result
}

// Updater keeps the best score per user.
type Updater interface {
	UpdateBestWithMeta(ctx context.Context, userID string, score float64, meta repository.Meta) (bool, error)
}

// Recorder persists analyzed sessions.
type Recorder interface {
	Save(ctx context.Context, rec history.Record) error
}

// Queue defines how workers receive sessions.
type Queue interface {
	Dequeue(ctx context.Context) <-chan Session
}

// Worker processes sessions until stopped.
type Worker interface {
	// Run starts the worker loop until ctx is canceled or the queue is drained.
	Run(ctx context.Context)

	// Shutdown stops the worker without waiting for the queue to drain.
	Shutdown(ctx context.Context) error
}

// InMemoryWorker implements Worker.
type InMemoryWorker struct {
	queue    Queue
	analyzer Analyzer
	updater  Updater
	recorder Recorder
	name     string

	active *atomic.Int64

	shutdown     chan struct{}
	shutdownOnce sync.Once
	done         chan struct{}

	logger logger.Logger
}

// NewInMemoryWorker creates a worker with configuration options.
func NewInMemoryWorker(queue Queue, analyzer Analyzer, updater Updater, opts ...Option) *InMemoryWorker {
	w := &InMemoryWorker{
		queue:    queue,
		analyzer: analyzer,
		updater:  updater,
		name:     "worker",
		active:   new(atomic.Int64),
		shutdown: make(chan struct{}),
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.logger == nil {
		w.logger = logger.Named(w.name)
	}
	return w
}

// Run starts the worker loop.
func (w *InMemoryWorker) Run(ctx context.Context) {
	defer close(w.done)

	sessions := w.queue.Dequeue(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.shutdown:
			return
		case s, ok := <-sessions:
			if !ok {
				return
			}
			if err := w.process(ctx, s); err != nil {
				w.logger.Warn(ctx, "session not scored",
					logger.String("session_id", s.SessionID),
					logger.Error(err),
				)
			}
		}
	}
}

// Shutdown stops the worker and waits for the current session to finish.
func (w *InMemoryWorker) Shutdown(ctx context.Context) error {
	w.shutdownOnce.Do(func() { close(w.shutdown) })

	select {
	case <-w.done:
		return nil
	case <-ctx.Done():
		w.logger.Warn(ctx, "shutdown timed out")
		return fmt.Errorf("shutdown timed out: %w", ctx.Err())
	}
}

// process analyzes one session. The leaderboard only sees successful
// analyses; history records failures too.
func (w *InMemoryWorker) process(ctx context.Context, s Session) error { //nolint:gocritic // hugeParam: sessions travel by value
	w.active.Add(1)
	defer w.active.Add(-1)

	start := time.Now()
	defer func() {
		metrics.RecordWorkerProcessingLatency(float64(time.Since(start).Microseconds()) / 1000)
	}()

	res := w.analyzer.Analyze(s.Pose, s.Landmarks, analysis.WithFrames(s.Frames))
	metrics.RecordSessionProcessed()

	var errs []error
	if !res.OK() {
		metrics.RecordErrorByComponent("worker", "analysis_failed")
		errs = append(errs, errors.New(res.Error))
	} else if res.GlobalScore != nil {
		meta := repository.Meta{SessionID: s.SessionID, Pose: res.Pose, SkillLevel: string(res.SkillLevel)}
		if _, err := w.updater.UpdateBestWithMeta(ctx, s.UserID, *res.GlobalScore, meta); err != nil {
			metrics.RecordWorkerError()
			metrics.RecordErrorByComponent("worker", "leaderboard_error")
			errs = append(errs, fmt.Errorf("leaderboard update: %w", err))
		}
	}

	if w.recorder != nil {
		if err := w.recorder.Save(ctx, toRecord(s, res)); err != nil {
			metrics.RecordWorkerError()
			metrics.RecordErrorByComponent("worker", "history_error")
			errs = append(errs, fmt.Errorf("history: %w", err))
		}
	}
	return errors.Join(errs...)
}

func toRecord(s Session, res analysis.Result) history.Record { //nolint:gocritic // hugeParam: sessions travel by value
	rec := history.Record{
		SessionID:  s.SessionID,
		UserID:     s.UserID,
		Pose:       s.Pose,
		SkillLevel: string(res.SkillLevel),
		Error:      res.Error,
		CapturedAt: s.TS,
	}
	if res.OK() {
		rec.Pose = res.Pose
		rec.Indicators = res.Scores()
		rec.GlobalScore = res.GlobalScore
	}
	if res.Priority != nil {
		rec.PriorityIndicator = res.Priority.Name
	}
	return rec
}

// Pool manages multiple workers.
type Pool struct {
	workers []*InMemoryWorker
	queue   Queue

	active atomic.Int64

	shutdown     chan struct{}
	shutdownOnce sync.Once

	logger logger.Logger
}

// NewPool creates a pool of workerCount workers; values below 1 mean one per CPU.
// opts apply to every worker.
func NewPool(workerCount int, queue Queue, analyzer Analyzer, updater Updater, opts ...Option) *Pool {
	if workerCount < 1 {
		workerCount = runtime.NumCPU()
	}

	pool := &Pool{
		workers:  make([]*InMemoryWorker, workerCount),
		queue:    queue,
		shutdown: make(chan struct{}),
		logger:   logger.Named("worker-pool"),
	}

	for i := 0; i < workerCount; i++ {
		workerOpts := append([]Option{WithName("worker-" + strconv.Itoa(i))}, opts...)
		w := NewInMemoryWorker(queue, analyzer, updater, workerOpts...)
		w.active = &pool.active
		pool.workers[i] = w
	}

	metrics.UpdateWorkerCount(workerCount)
	metrics.UpdateWorkerActivity(0, workerCount)
	return pool
}

// Size returns the number of workers.
func (p *Pool) Size() int {
	return len(p.workers)
}

// Active returns the number of workers currently processing a session.
func (p *Pool) Active() int {
	return int(p.active.Load())
}

// Start starts all workers in the pool.
func (p *Pool) Start(ctx context.Context) {
	for _, w := range p.workers {
		go w.Run(ctx)
	}
	go p.startMetricsUpdater(ctx)
}

func (p *Pool) startMetricsUpdater(ctx context.Context) {
	ticker := time.NewTicker(metricsUpdateInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-p.shutdown:
			return
		case <-ticker.C:
			active := p.Active()
			metrics.UpdateWorkerActivity(active, len(p.workers)-active)
		}
	}
}

// Shutdown closes the queue and waits for workers to drain it. Workers
// still busy when ctx (or the pool timeout) expires are told to stop.
func (p *Pool) Shutdown(ctx context.Context) error {
	if closer, ok := p.queue.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			p.logger.Error(ctx, "error closing queue", logger.Error(err))
		}
	}
	p.shutdownOnce.Do(func() { close(p.shutdown) })

	shutdownCtx, cancel := context.WithTimeout(ctx, poolShutdownTimeout)
	defer cancel()

	var timedOut bool
	for i, w := range p.workers {
		select {
		case <-w.done:
		case <-shutdownCtx.Done():
			timedOut = true
			p.logger.Warn(ctx, "worker shutdown timed out", logger.Int("worker_id", i))
			w.shutdownOnce.Do(func() { close(w.shutdown) })
		}
	}
	if timedOut {
		return fmt.Errorf("worker pool shutdown: %w", shutdownCtx.Err())
	}
	return nil
}
