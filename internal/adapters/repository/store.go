// Package repository defines the submission store interface and errors.
package repository

import (
	"context"

	"github.com/okian/scribe/internal/domain/model"
)

// Store provides read/write access to accepted submissions, reference
// texts and the attempt audit trail, partitioned by assignment.
type Store interface {
	// AcceptedTexts returns the normalized texts of every accepted
	// submission for an assignment, oldest first.
	AcceptedTexts(ctx context.Context, assignmentID string) ([]string, error)

	// ReferenceText returns the assignment's reference text, or the
	// empty string when none has been configured.
	ReferenceText(ctx context.Context, assignmentID string) (string, error)

	// CommitAccepted appends an accepted submission to the assignment's
	// corpus.
	CommitAccepted(ctx context.Context, sub model.Submission) error

	// SetReference installs or replaces the assignment's reference text.
	SetReference(ctx context.Context, assignmentID, text string) error

	// RecordAttempt appends a finished attempt to the audit trail.
	RecordAttempt(ctx context.Context, a model.Attempt) error

	// ListAttempts returns the audit trail for an assignment, oldest first.
	ListAttempts(ctx context.Context, assignmentID string) ([]model.Attempt, error)

	// AcceptedCount returns the number of accepted submissions for an
	// assignment.
	AcceptedCount(ctx context.Context, assignmentID string) (int, error)

	// Close releases any resources held by the store.
	Close() error
}
