// Package queue defines the contract for buffering audit attempts between
// the submission pipeline and the audit writers.
//
// Implementations may use channels or more advanced structures. The MVP
// starts with an in-memory bounded queue.
package queue

import (
	"context"
	"sync"

	"github.com/okian/scribe/internal/domain/model"
	"github.com/okian/scribe/pkg/metrics"
)

// Default queue configuration constants.
const (
	defaultQueueCapacity = 4096
)

// Attempt represents the payload type flowing through the queue.
// Using the model.Attempt type for type safety.
type Attempt = model.Attempt

// Queue provides non-blocking enqueue and channel-based dequeue semantics.
type Queue interface {
	// Enqueue adds an attempt record to the queue.
	// Returns false if the queue is full and the record was not enqueued.
	Enqueue(ctx context.Context, a Attempt) bool

	// Dequeue returns a channel that will receive attempts as they become
	// available. The channel will be closed when the queue is closed.
	Dequeue(ctx context.Context) <-chan Attempt

	// Len returns the current number of queued attempts.
	Len(ctx context.Context) int

	// Close gracefully shuts down the queue.
	// After closing, no new attempts can be enqueued and the dequeue
	// channel will be closed.
	Close() error

	// IsClosed returns true if the queue has been closed.
	IsClosed() bool
}

// InMemoryQueue implements Queue using a buffered channel.
type InMemoryQueue struct {
	attempts chan Attempt
	capacity int
	mu       sync.RWMutex
	closed   bool
}

// NewInMemoryQueue creates a new in-memory queue with configuration options.
func NewInMemoryQueue(opts ...Option) *InMemoryQueue {
	q := &InMemoryQueue{
		capacity: defaultQueueCapacity,
	}

	for _, opt := range opts {
		opt(q)
	}

	q.attempts = make(chan Attempt, q.capacity)

	metrics.UpdateAuditQueueCapacity(q.capacity)
	metrics.UpdateAuditQueueSize(0)

	return q
}

// Enqueue adds an attempt record to the queue.
func (q *InMemoryQueue) Enqueue(ctx context.Context, a Attempt) bool {
	q.mu.RLock()
	defer q.mu.RUnlock()

	if q.closed {
		metrics.RecordAuditEnqueueError()
		return false
	}

	select {
	case q.attempts <- a:
		metrics.UpdateAuditQueueSize(len(q.attempts))
		return true
	case <-ctx.Done():
		metrics.RecordAuditEnqueueError()
		return false
	default:
		metrics.RecordAuditEnqueueError()
		return false // queue is full
	}
}

// Dequeue returns a channel that will receive attempts as they become available.
func (q *InMemoryQueue) Dequeue(ctx context.Context) <-chan Attempt {
	out := make(chan Attempt)
	go func() {
		defer close(out)
		for a := range q.attempts {
			select {
			case out <- a:
				metrics.UpdateAuditQueueSize(len(q.attempts))
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}

// Len returns the current number of queued attempts.
func (q *InMemoryQueue) Len(_ context.Context) int {
	size := len(q.attempts)
	metrics.UpdateAuditQueueSize(size)
	return size
}

// Close gracefully shuts down the queue.
func (q *InMemoryQueue) Close() error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return nil // already closed
	}

	close(q.attempts)
	q.closed = true

	return nil
}

// IsClosed returns true if the queue has been closed.
func (q *InMemoryQueue) IsClosed() bool {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return q.closed
}
