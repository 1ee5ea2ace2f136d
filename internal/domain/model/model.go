// Package model contains domain models passed between layers.
package model

import "time"

// Status is the terminal outcome of a submission attempt.
type Status string

// Terminal attempt statuses.
const (
	StatusAccepted Status = "accepted"
	StatusRejected Status = "rejected"
)

// Rejection reasons surfaced to callers.
const (
	ReasonPlagiarism = "potential plagiarism detected"
	ReasonNoContent  = "no content provided"
)

// Document is an immutable piece of extracted text with its source identity.
// SourceID is a submission id, or "reference" for the instructor sample.
type Document struct {
	SourceID string
	Text     string
}

// Submission is an accepted submission as persisted in the corpus.
type Submission struct {
	ID            string    // attempt uuid
	AssignmentID  string    // assignment this submission belongs to
	StudentID     string    // submitting student
	Text          string    // normalized text used for scoring
	FilePath      string    // original upload path, if any
	Fingerprint   string    // serialized lexical fingerprint (JSON)
	SemanticScore float64   // similarity vs the reference text
	SubmittedAt   time.Time // commit time
}

// Attempt is the audit record of one submission attempt, terminal or not
// committed. Rejected attempts never join the corpus but are still recorded.
type Attempt struct {
	ID            string
	AssignmentID  string
	StudentID     string
	Status        Status
	Reason        string  // rejection reason, empty when accepted
	LexicalMax    float64 // max cosine similarity vs the prior corpus
	SemanticScore float64
	TS            time.Time
}

// Result is what a submit call returns to the caller.
type Result struct {
	AttemptID     string  `json:"attempt_id"`
	Status        Status  `json:"status"`
	Reason        string  `json:"reason,omitempty"`
	LexicalMax    float64 `json:"lexical_max_similarity"`
	SemanticScore float64 `json:"semantic_score"`
	Fingerprint   string  `json:"fingerprint,omitempty"`
}

// Accepted reports whether the attempt ended in the accepted state.
func (r Result) Accepted() bool {
	return r.Status == StatusAccepted
}
