// Package queue buffers submitted sessions between the API and the workers.
package queue

import (
	"context"
	"sync"
	"time"

	"github.com/okian/asana/internal/domain/model"
	"github.com/okian/asana/pkg/metrics"
)

const defaultQueueCapacity = 10000

// Item is the payload flowing through the queue.
type Item = model.Session

// Queue provides non-blocking enqueue and channel-based dequeue semantics.
type Queue interface {
	// Enqueue adds a session. It returns false when the queue is full or closed.
	Enqueue(ctx context.Context, s Item) bool

	// Submit is Enqueue reporting why a session was refused: ErrFull,
	// ErrClosed or the context error.
	Submit(ctx context.Context, s Item) error

	// Dequeue returns a channel of sessions, closed once the queue is closed and drained.
	Dequeue(ctx context.Context) <-chan Item

	Len(ctx context.Context) int
	Capacity() int

	// Close stops accepting sessions. Already queued sessions are still delivered.
	Close() error
	IsClosed() bool
}

// InMemoryQueue implements Queue using a buffered channel.
type InMemoryQueue struct {
	items    chan Item
	capacity int
	mu       sync.RWMutex
	closed   bool
}

// NewInMemoryQueue creates a bounded in-memory queue.
func NewInMemoryQueue(opts ...Option) *InMemoryQueue {
	q := &InMemoryQueue{capacity: defaultQueueCapacity}
	for _, opt := range opts {
		opt(q)
	}
	q.items = make(chan Item, q.capacity)

	metrics.UpdateQueueCapacity(q.capacity)
	metrics.UpdateQueue(0, q.capacity)
	return q
}

// Enqueue adds a session without blocking.
func (q *InMemoryQueue) Enqueue(ctx context.Context, s Item) bool { //nolint:gocritic // hugeParam: sessions travel by value
	return q.Submit(ctx, s) == nil
}

// Submit adds a session without blocking.
func (q *InMemoryQueue) Submit(ctx context.Context, s Item) error { //nolint:gocritic // hugeParam: sessions travel by value
	start := time.Now()
	defer func() {
		metrics.RecordQueueProcessingLatency(float64(time.Since(start).Microseconds()) / 1000)
	}()

	q.mu.RLock()
	defer q.mu.RUnlock()

	if q.closed {
		q.reject("closed")
		return ErrClosed
	}
	if err := ctx.Err(); err != nil {
		q.reject("context_cancelled")
		return err
	}

	select {
	case q.items <- s:
		metrics.RecordQueueEnqueue()
		metrics.UpdateQueue(len(q.items), q.capacity)
		return nil
	default:
		q.reject("queue_full")
		return ErrFull
	}
}

func (q *InMemoryQueue) reject(reason string) {
	metrics.RecordQueueEnqueueError()
	metrics.RecordErrorByComponent("queue", reason)
}

// Dequeue returns a channel that receives sessions as they become available.
// Each call starts a forwarding goroutine that stops when ctx is done.
func (q *InMemoryQueue) Dequeue(ctx context.Context) <-chan Item {
	out := make(chan Item)
	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case s, ok := <-q.items:
				if !ok {
					return
				}
				select {
				case out <- s:
					metrics.RecordQueueDequeue()
					metrics.UpdateQueue(len(q.items), q.capacity)
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out
}

// Len returns the number of queued sessions.
func (q *InMemoryQueue) Len(ctx context.Context) int {
	size := len(q.items)
	metrics.UpdateQueue(size, q.capacity)
	return size
}

// Capacity returns the maximum number of queued sessions.
func (q *InMemoryQueue) Capacity() int {
	return q.capacity
}

// Close stops accepting sessions. Calling it twice is a no-op.
func (q *InMemoryQueue) Close() error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return nil
	}
	close(q.items)
	q.closed = true
	return nil
}

// IsClosed reports whether Close was called.
func (q *InMemoryQueue) IsClosed() bool {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return q.closed
}
