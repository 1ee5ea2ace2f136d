package repository

import (
	"context"
	"sync"

	"github.com/okian/scribe/internal/domain/model"
)

// In-memory Store implementation.
//
// All state is partitioned by assignment ID. Slices preserve insertion
// order so corpus texts and the audit trail read back oldest first.
type MemoryStore struct {
	mu         sync.RWMutex
	accepted   map[string][]model.Submission
	references map[string]string
	attempts   map[string][]model.Attempt
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		accepted:   make(map[string][]model.Submission),
		references: make(map[string]string),
		attempts:   make(map[string][]model.Attempt),
	}
}

// AcceptedTexts returns the accepted texts for an assignment, oldest first.
func (s *MemoryStore) AcceptedTexts(_ context.Context, assignmentID string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	subs := s.accepted[assignmentID]
	texts := make([]string, len(subs))
	for i, sub := range subs {
		texts[i] = sub.Text
	}
	return texts, nil
}

// ReferenceText returns the assignment's reference text, if any.
func (s *MemoryStore) ReferenceText(_ context.Context, assignmentID string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.references[assignmentID], nil
}

// CommitAccepted appends an accepted submission to the corpus.
func (s *MemoryStore) CommitAccepted(_ context.Context, sub model.Submission) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accepted[sub.AssignmentID] = append(s.accepted[sub.AssignmentID], sub)
	return nil
}

// SetReference installs or replaces the assignment's reference text.
func (s *MemoryStore) SetReference(_ context.Context, assignmentID, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.references[assignmentID] = text
	return nil
}

// RecordAttempt appends a finished attempt to the audit trail.
func (s *MemoryStore) RecordAttempt(_ context.Context, a model.Attempt) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.attempts[a.AssignmentID] = append(s.attempts[a.AssignmentID], a)
	return nil
}

// ListAttempts returns the audit trail for an assignment, oldest first.
func (s *MemoryStore) ListAttempts(_ context.Context, assignmentID string) ([]model.Attempt, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.Attempt(nil), s.attempts[assignmentID]...), nil
}

// AcceptedCount returns the number of accepted submissions.
func (s *MemoryStore) AcceptedCount(_ context.Context, assignmentID string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.accepted[assignmentID]), nil
}

// Close is a no-op for the in-memory store.
func (s *MemoryStore) Close() error {
	return nil
}
