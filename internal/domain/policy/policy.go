// Package policy implements the originality decision core.
//
// One submission attempt runs extract -> lexical check -> semantic score
// -> accept/reject as a single synchronous unit of work. The lexical
// batch is always refit jointly over the prior corpus plus the new text;
// vectors from different batches are never compared. The caller is
// responsible for serializing attempts per assignment (see the gate
// package) so no two attempts screen against a stale corpus.
package policy

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/okian/scribe/internal/domain/lexical"
	"github.com/okian/scribe/internal/domain/model"
	"github.com/okian/scribe/internal/domain/semantic"
	"github.com/okian/scribe/internal/domain/textract"
	"github.com/okian/scribe/pkg/logger"
	"github.com/okian/scribe/pkg/metrics"
)

// DefaultThreshold rejects a submission whose max lexical similarity vs
// the prior corpus reaches it. The comparison is inclusive: a tie at the
// threshold rejects.
const DefaultThreshold = 0.75

// Store bundles the persistence collaborators the decision core consumes.
// Implementations are owned by the external persistence layer; the
// reference implementations live in internal/adapters/repository.
type Store interface {
	// AcceptedTexts returns the ordered texts of previously accepted
	// submissions for the assignment.
	AcceptedTexts(ctx context.Context, assignmentID string) ([]string, error)

	// ReferenceText returns the instructor-provided sample text for the
	// assignment, or "" when none exists.
	ReferenceText(ctx context.Context, assignmentID string) (string, error)

	// CommitAccepted persists the submission and appends its text to the
	// corpus as one atomic commit.
	CommitAccepted(ctx context.Context, sub model.Submission) error
}

// SubmitRequest carries one submission attempt into the engine. At least
// one of FileData or Content must yield non-empty text.
type SubmitRequest struct {
	AssignmentID string
	StudentID    string
	FileData     []byte // optional uploaded file
	Filename     string // required when FileData is set
	FilePath     string // caller-side storage location, recorded verbatim
	Content      string // optional inline text
}

// Engine is the originality decision core.
type Engine struct {
	store      Store
	scorer     *semantic.Scorer
	extractor  *textract.Extractor
	vectorizer *lexical.Vectorizer
	threshold  float64
	logger     logger.Logger
}

// New constructs an Engine with default configuration.
func New(store Store, scorer *semantic.Scorer, opts ...Option) *Engine {
	e := &Engine{
		store:     store,
		scorer:    scorer,
		threshold: DefaultThreshold,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.extractor == nil {
		e.extractor = textract.New(textract.WithLogger(e.logger))
	}
	if e.vectorizer == nil {
		e.vectorizer = lexical.New()
	}
	return e
}

// Evaluate runs one submission attempt to a terminal state. Rejections
// are normal outcomes returned as values; only provider or encoder
// failures surface as errors, and a failed attempt commits nothing.
func (e *Engine) Evaluate(ctx context.Context, req SubmitRequest) (model.Result, error) {
	result := model.Result{
		AttemptID: uuid.NewString(),
	}

	// Extraction. File text takes priority over inline content; both
	// extraction sentinels mean "fall back to inline".
	text, err := e.extractText(ctx, req)
	if err != nil {
		return result, err
	}
	if text == "" {
		result.Status = model.StatusRejected
		result.Reason = model.ReasonNoContent
		return result, nil
	}

	// Lexical screening over the joint batch.
	priors, err := e.store.AcceptedTexts(ctx, req.AssignmentID)
	if err != nil {
		return result, fmt.Errorf("%w: fetch corpus: %w", ErrStoreFailure, err)
	}

	fingerprint, maxSim, err := e.screen(priors, text)
	if err != nil {
		return result, fmt.Errorf("lexical screening: %w", err)
	}
	result.LexicalMax = maxSim
	result.Fingerprint = fingerprint.String()
	metrics.RecordLexicalMaxScore(maxSim)

	if len(priors) > 0 && maxSim >= e.threshold {
		e.debug(ctx, "attempt rejected on lexical grounds",
			logger.String("assignment_id", req.AssignmentID),
			logger.Float64("max_similarity", maxSim))
		result.Status = model.StatusRejected
		result.Reason = model.ReasonPlagiarism
		return result, nil
	}

	// Semantic scoring vs the reference text, when one exists.
	reference, err := e.store.ReferenceText(ctx, req.AssignmentID)
	if err != nil {
		return result, fmt.Errorf("%w: fetch reference: %w", ErrStoreFailure, err)
	}

	semStart := time.Now()
	score, err := e.scorer.Similarity(ctx, text, reference)
	if err != nil {
		return result, fmt.Errorf("semantic scoring: %w", err)
	}
	metrics.RecordSemanticLatency(float64(time.Since(semStart).Milliseconds()))
	result.SemanticScore = score

	// Commit. The accepted text joins the corpus for future attempts.
	sub := model.Submission{
		ID:            result.AttemptID,
		AssignmentID:  req.AssignmentID,
		StudentID:     req.StudentID,
		Text:          text,
		FilePath:      req.FilePath,
		Fingerprint:   result.Fingerprint,
		SemanticScore: score,
		SubmittedAt:   time.Now().UTC(),
	}
	if err := e.store.CommitAccepted(ctx, sub); err != nil {
		return result, fmt.Errorf("%w: commit accepted submission: %w", ErrStoreFailure, err)
	}

	result.Status = model.StatusAccepted
	return result, nil
}

// extractText resolves the attempt's normalized text. An unreadable or
// unsupported file falls back to inline content.
func (e *Engine) extractText(ctx context.Context, req SubmitRequest) (string, error) {
	if len(req.FileData) > 0 {
		text, err := e.extractor.Extract(ctx, req.FileData, req.Filename)
		switch {
		case err == nil:
			return text, nil
		case errors.Is(err, textract.ErrUnsupportedType), errors.Is(err, textract.ErrNoText):
			metrics.RecordExtractionFailure()
			e.debug(ctx, "falling back to inline content",
				logger.String("filename", req.Filename), logger.Error(err))
		default:
			return "", fmt.Errorf("extract upload: %w", err)
		}
	}
	return strings.TrimSpace(req.Content), nil
}

// screen refits the lexical space over priors plus text and returns the
// new row's fingerprint and its max similarity against the priors.
func (e *Engine) screen(priors []string, text string) (lexical.Fingerprint, float64, error) {
	start := time.Now()
	defer func() {
		metrics.RecordLexicalLatency(float64(time.Since(start).Milliseconds()))
	}()

	batch := make([]string, 0, len(priors)+1)
	batch = append(batch, priors...)
	batch = append(batch, text)

	rows, err := e.vectorizer.FitTransform(batch)
	if err != nil {
		return lexical.Fingerprint{}, 0, err
	}
	metrics.RecordVocabularySize(len(rows[len(rows)-1]))

	newRow := rows[len(rows)-1]
	maxSim := lexical.MaxSimilarity(newRow, rows[:len(rows)-1])
	return lexical.NewFingerprint(newRow), maxSim, nil
}

// Threshold reports the active rejection threshold.
func (e *Engine) Threshold() float64 {
	return e.threshold
}

func (e *Engine) debug(ctx context.Context, msg string, fields ...logger.Field) {
	if e.logger != nil {
		e.logger.Debug(ctx, msg, fields...)
	}
}
