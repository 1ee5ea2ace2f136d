// Package service provides the core business service that wires the
// originality pipeline together for callers.
package service

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"strings"
	"sync"
	"time"

	auditqueue "github.com/okian/scribe/internal/adapters/mq/queue"
	auditpool "github.com/okian/scribe/internal/adapters/mq/worker"
	repository "github.com/okian/scribe/internal/adapters/repository"
	"github.com/okian/scribe/internal/domain/gate"
	"github.com/okian/scribe/internal/domain/model"
	"github.com/okian/scribe/internal/domain/policy"
	"github.com/okian/scribe/internal/domain/semantic"
	"github.com/okian/scribe/internal/domain/textract"
	"github.com/okian/scribe/pkg/logger"
	"github.com/okian/scribe/pkg/metrics"
)

// Default service configuration constants.
const (
	defaultAuditQueueSize = 4096
)

// Service implements the submission pipeline for the originality system.
type Service struct {
	mu sync.RWMutex

	// Core components
	store      repository.Store
	encoder    semantic.Encoder
	engine     *policy.Engine
	extractor  *textract.Extractor
	gate       *gate.Gate
	auditQueue auditqueue.Queue
	auditPool  *auditpool.Pool

	// Configuration
	threshold        float64
	auditQueueSize   int
	auditWriterCount int

	// State
	started bool

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithStore sets the backing store. Defaults to an in-memory store.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithEncoder sets the semantic encoder. Defaults to the local encoder.
func WithEncoder(encoder semantic.Encoder) Option {
	return func(s *Service) {
		if encoder != nil {
			s.encoder = encoder
		}
	}
}

// WithThreshold sets the lexical rejection threshold.
func WithThreshold(threshold float64) Option {
	return func(s *Service) {
		if threshold > 0 && threshold <= 1 {
			s.threshold = threshold
		}
	}
}

// WithAuditQueueSize sets the capacity of the audit queue.
func WithAuditQueueSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.auditQueueSize = size
		}
	}
}

// WithAuditWriterCount sets the number of audit writer goroutines.
func WithAuditWriterCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.auditWriterCount = count
		}
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

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		threshold:        policy.DefaultThreshold,
		auditQueueSize:   defaultAuditQueueSize,
		auditWriterCount: runtime.NumCPU(),
	}

	for _, opt := range opts {
		opt(s)
	}

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
		s.logger = logger.Get().Named("service")
	}

	s.logger.Info(ctx, "starting originality service...")

	if s.store == nil {
		s.store = repository.NewMemoryStore()
		s.logger.Info(ctx, "using in-memory store")
	}
	if s.encoder == nil {
		s.encoder = semantic.NewLocalEncoder()
	}

	s.gate = gate.New()
	s.extractor = textract.New(textract.WithLogger(s.logger.Named("textract")))
	s.engine = policy.New(
		s.store,
		semantic.NewScorer(s.encoder),
		policy.WithThreshold(s.threshold),
		policy.WithLogger(s.logger.Named("policy")),
	)
	s.auditQueue = auditqueue.NewInMemoryQueue(
		auditqueue.WithCapacity(s.auditQueueSize),
	)
	s.auditPool = auditpool.NewPool(s.auditWriterCount, s.auditQueue, s.store)
	s.auditPool.Start(ctx)

	s.started = true
	s.logger.Info(ctx, "originality service started",
		logger.String("encoder", s.encoder.Name()),
		logger.Float64("threshold", s.threshold),
		logger.Int("auditWriters", s.auditWriterCount),
	)

	return nil
}

// Stop gracefully shuts down the service. Queued audit records are
// drained before the writers exit.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	ctx := context.Background()
	s.logger.Info(ctx, "stopping originality service...")

	if s.auditPool != nil {
		_ = s.auditPool.Shutdown(ctx)
	}
	if s.store != nil {
		_ = s.store.Close()
	}

	s.started = false
	s.logger.Info(ctx, "originality service stopped")
}

// Submit runs one submission attempt through the pipeline. Attempts for
// the same assignment are serialized so each one sees every previously
// accepted submission.
func (s *Service) Submit(ctx context.Context, req policy.SubmitRequest) (model.Result, error) {
	metrics.RecordSubmissionReceived()
	start := time.Now()

	release, err := s.gate.Acquire(ctx, req.AssignmentID)
	if err != nil {
		return model.Result{}, err
	}
	defer release()

	result, err := s.engine.Evaluate(ctx, req)
	if err != nil {
		return result, err
	}

	s.audit(ctx, req, result)

	if result.Accepted() {
		metrics.RecordSubmissionAccepted()
		if count, cerr := s.store.AcceptedCount(ctx, req.AssignmentID); cerr == nil {
			metrics.UpdateCorpusDocuments(count)
		}
	} else {
		metrics.RecordSubmissionRejected(result.Reason)
	}
	metrics.RecordPipelineLatency(float64(time.Since(start).Milliseconds()))

	return result, nil
}

// audit enqueues the attempt record for asynchronous persistence. A full
// queue drops the record rather than delaying the caller.
func (s *Service) audit(ctx context.Context, req policy.SubmitRequest, result model.Result) {
	attempt := model.Attempt{
		ID:            result.AttemptID,
		AssignmentID:  req.AssignmentID,
		StudentID:     req.StudentID,
		Status:        result.Status,
		Reason:        result.Reason,
		LexicalMax:    result.LexicalMax,
		SemanticScore: result.SemanticScore,
		TS:            time.Now().UTC(),
	}
	if !s.auditQueue.Enqueue(ctx, attempt) {
		s.logger.Warn(ctx, "audit queue full, dropping attempt record",
			logger.String("attemptID", attempt.ID),
		)
	}
}

// SetReference installs or replaces an assignment's reference text.
func (s *Service) SetReference(ctx context.Context, assignmentID, text string) error {
	return s.store.SetReference(ctx, assignmentID, text)
}

// SetReferenceUpload installs a reference from an uploaded document,
// running it through the same extraction as submissions. An unreadable
// or unsupported file falls back to the inline text.
func (s *Service) SetReferenceUpload(ctx context.Context, assignmentID string, data []byte, filename, inline string) error {
	text := strings.TrimSpace(inline)
	if len(data) > 0 {
		extracted, err := s.extractor.Extract(ctx, data, filename)
		switch {
		case err == nil:
			text = extracted
		case errors.Is(err, textract.ErrUnsupportedType), errors.Is(err, textract.ErrNoText):
			s.logger.Warn(ctx, "reference upload yielded no text, falling back to inline",
				logger.String("filename", filename), logger.Error(err))
		default:
			return fmt.Errorf("extract reference upload: %w", err)
		}
	}
	if text == "" {
		return fmt.Errorf("reference %q: %w", assignmentID, textract.ErrNoText)
	}
	return s.store.SetReference(ctx, assignmentID, text)
}

// Attempts returns the audit trail for an assignment, oldest first.
func (s *Service) Attempts(ctx context.Context, assignmentID string) ([]model.Attempt, error) {
	return s.store.ListAttempts(ctx, assignmentID)
}

// CorpusTexts returns the accepted texts for an assignment, oldest first.
func (s *Service) CorpusTexts(ctx context.Context, assignmentID string) ([]string, error) {
	return s.store.AcceptedTexts(ctx, assignmentID)
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	stats := map[string]interface{}{
		"started":          s.started,
		"threshold":        s.threshold,
		"auditWriterCount": s.auditWriterCount,
	}

	if s.started {
		stats["encoder"] = s.encoder.Name()
		stats["auditQueueLength"] = s.auditQueue.Len(ctx)
		stats["activeAssignments"] = s.gate.Size()
	}

	return stats
}
