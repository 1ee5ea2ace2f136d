// Package worker defines the audit writers that persist attempt records
// asynchronously so the submission pipeline never blocks on bookkeeping.
package worker

import (
	"context"
	"fmt"
	"runtime"
	"strconv"
	"time"

	"github.com/okian/scribe/internal/domain/model"
	"github.com/okian/scribe/pkg/logger"
	"github.com/okian/scribe/pkg/metrics"
)

// Default worker configuration constants.
const (
	poolShutdownTimeout = 30 * time.Second
)

// Attempt abstracts what writers read off the queue.
// Using the model.Attempt type for consistency.
type Attempt = model.Attempt

// Sink persists finished attempt records for the audit trail.
type Sink interface {
	RecordAttempt(ctx context.Context, a Attempt) error
}

// Queue defines how writers receive attempts.
type Queue interface {
	Dequeue(ctx context.Context) <-chan Attempt
}

// Writer drains attempts from the queue into the sink.
type Writer interface {
	// Run starts the writer loop until ctx is canceled.
	Run(ctx context.Context)

	// Shutdown gracefully stops the writer.
	// It will process any remaining attempts before stopping.
	Shutdown(ctx context.Context) error
}

// AuditWriter implements Writer for persisting attempt records.
type AuditWriter struct {
	queue Queue
	sink  Sink
	name  string

	// Shutdown control
	shutdown chan struct{}
	done     chan struct{}

	// Logging
	logger logger.Logger
}

// NewAuditWriter creates a new writer with configuration options.
func NewAuditWriter(queue Queue, sink Sink, opts ...Option) *AuditWriter {
	w := &AuditWriter{
		queue:    queue,
		sink:     sink,
		name:     "audit-writer",
		shutdown: make(chan struct{}),
		done:     make(chan struct{}),
		logger:   logger.Get().Named("audit-writer"),
	}

	for _, opt := range opts {
		opt(w)
	}

	if w.name != "audit-writer" {
		w.logger = w.logger.Named(w.name)
	}

	return w
}

// Run starts the writer loop.
func (w *AuditWriter) Run(ctx context.Context) {
	defer func() {
		close(w.done)
	}()

	attemptChan := w.queue.Dequeue(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.shutdown:
			return
		case a, ok := <-attemptChan:
			if !ok {
				// Channel closed, writer should stop
				return
			}

			if err := w.write(ctx, a); err != nil {
				w.logger.Error(ctx, "error writing attempt record", logger.Error(err))
			}
		}
	}
}

// Shutdown gracefully stops the writer.
func (w *AuditWriter) Shutdown(ctx context.Context) error {
	close(w.shutdown)

	select {
	case <-w.done:
		return nil
	case <-ctx.Done():
		w.logger.Warn(ctx, "shutdown timed out")
		return fmt.Errorf("shutdown timed out: %w", ctx.Err())
	}
}

// write persists a single attempt record.
func (w *AuditWriter) write(ctx context.Context, a Attempt) error {
	if err := w.sink.RecordAttempt(ctx, a); err != nil {
		metrics.RecordAuditWriteError()
		w.logger.Error(ctx, "attempt record write failed",
			logger.String("attemptID", a.ID),
			logger.Error(err),
		)
		return fmt.Errorf("failed to record attempt %s: %w", a.ID, err)
	}

	metrics.RecordAuditWrite()
	return nil
}

// Pool manages multiple audit writers.
type Pool struct {
	writers []*AuditWriter
	queue   Queue
	sink    Sink

	// Logging
	logger logger.Logger
}

// NewPool creates a new writer pool.
func NewPool(writerCount int, queue Queue, sink Sink) *Pool {
	if writerCount < 1 {
		writerCount = runtime.NumCPU()
	}

	pool := &Pool{
		writers: make([]*AuditWriter, writerCount),
		queue:   queue,
		sink:    sink,
		logger:  logger.Get().Named("audit-pool"),
	}

	for i := 0; i < writerCount; i++ {
		pool.writers[i] = NewAuditWriter(
			queue,
			sink,
			WithName("audit-writer-"+strconv.Itoa(i)),
		)
	}

	metrics.UpdateAuditWriterCount(writerCount)

	return pool
}

// Start starts all writers in the pool.
func (p *Pool) Start(ctx context.Context) {
	for _, w := range p.writers {
		go w.Run(ctx)
	}
}

// Shutdown gracefully shuts down the entire writer pool.
func (p *Pool) Shutdown(ctx context.Context) error {
	// First close the queue so the remaining attempts drain.
	if closer, ok := p.queue.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			p.logger.Error(ctx, "error closing queue", logger.Error(err))
		}
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, poolShutdownTimeout)
	defer cancel()

	for i, w := range p.writers {
		select {
		case <-w.done:
		case <-shutdownCtx.Done():
			p.logger.Warn(ctx, "writer shutdown timed out", logger.Int("writer_id", i))
		}
	}

	metrics.UpdateAuditWriterCount(0)

	return nil
}
