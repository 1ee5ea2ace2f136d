package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/okian/scribe/internal/domain/model"
	_ "modernc.org/sqlite"
)

// SQLiteStore implements Store on a SQLite database file.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens or creates a SQLite store at the given path.
func OpenSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrOpenStore, err)
	}

	// SQLite doesn't support concurrent writes
	db.SetMaxOpenConns(1)

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: creating schema: %w", ErrOpenStore, err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// createSchema creates the database schema if it doesn't exist.
func createSchema(db *sql.DB) error {
	schema := `
		-- Accepted submissions, one row per accepted attempt
		CREATE TABLE IF NOT EXISTS submissions (
			id TEXT PRIMARY KEY,
			assignment_id TEXT NOT NULL,
			student_id TEXT NOT NULL,
			text TEXT NOT NULL,
			file_path TEXT,
			fingerprint TEXT,
			semantic_score REAL NOT NULL,
			submitted_at INTEGER NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_submissions_assignment
			ON submissions(assignment_id);

		-- One reference text per assignment
		CREATE TABLE IF NOT EXISTS assignment_references (
			assignment_id TEXT PRIMARY KEY,
			text TEXT NOT NULL
		);

		-- Audit trail of every finished attempt, accepted or rejected
		CREATE TABLE IF NOT EXISTS attempts (
			id TEXT PRIMARY KEY,
			assignment_id TEXT NOT NULL,
			student_id TEXT NOT NULL,
			status TEXT NOT NULL,
			reason TEXT,
			lexical_max REAL NOT NULL,
			semantic_score REAL NOT NULL,
			ts INTEGER NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_attempts_assignment
			ON attempts(assignment_id, ts);
	`

	_, err := db.Exec(schema)
	return err
}

// AcceptedTexts returns the accepted texts for an assignment, oldest first.
func (s *SQLiteStore) AcceptedTexts(ctx context.Context, assignmentID string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT text FROM submissions
		WHERE assignment_id = ?
		ORDER BY submitted_at, id`, assignmentID)
	if err != nil {
		return nil, fmt.Errorf("%w: listing accepted texts: %w", ErrQuery, err)
	}
	defer rows.Close()

	var texts []string
	for rows.Next() {
		var text string
		if err := rows.Scan(&text); err != nil {
			return nil, fmt.Errorf("%w: scanning accepted text: %w", ErrQuery, err)
		}
		texts = append(texts, text)
	}
	return texts, rows.Err()
}

// ReferenceText returns the assignment's reference text, if any.
func (s *SQLiteStore) ReferenceText(ctx context.Context, assignmentID string) (string, error) {
	var text string
	err := s.db.QueryRowContext(ctx, `
		SELECT text FROM assignment_references
		WHERE assignment_id = ?`, assignmentID).Scan(&text)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", nil
		}
		return "", fmt.Errorf("%w: fetching reference: %w", ErrQuery, err)
	}
	return text, nil
}

// CommitAccepted appends an accepted submission to the corpus.
func (s *SQLiteStore) CommitAccepted(ctx context.Context, sub model.Submission) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO submissions (
			id, assignment_id, student_id, text,
			file_path, fingerprint, semantic_score, submitted_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		sub.ID, sub.AssignmentID, sub.StudentID, sub.Text,
		sub.FilePath, sub.Fingerprint, sub.SemanticScore, sub.SubmittedAt.UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("%w: inserting submission %s: %w", ErrQuery, sub.ID, err)
	}
	return nil
}

// SetReference installs or replaces the assignment's reference text.
func (s *SQLiteStore) SetReference(ctx context.Context, assignmentID, text string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO assignment_references (assignment_id, text)
		VALUES (?, ?)`, assignmentID, text)
	if err != nil {
		return fmt.Errorf("%w: setting reference for %s: %w", ErrQuery, assignmentID, err)
	}
	return nil
}

// RecordAttempt appends a finished attempt to the audit trail.
func (s *SQLiteStore) RecordAttempt(ctx context.Context, a model.Attempt) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO attempts (
			id, assignment_id, student_id, status,
			reason, lexical_max, semantic_score, ts
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.AssignmentID, a.StudentID, string(a.Status),
		a.Reason, a.LexicalMax, a.SemanticScore, a.TS.UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("%w: inserting attempt %s: %w", ErrQuery, a.ID, err)
	}
	return nil
}

// ListAttempts returns the audit trail for an assignment, oldest first.
func (s *SQLiteStore) ListAttempts(ctx context.Context, assignmentID string) ([]model.Attempt, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, assignment_id, student_id, status,
			reason, lexical_max, semantic_score, ts
		FROM attempts
		WHERE assignment_id = ?
		ORDER BY ts, id`, assignmentID)
	if err != nil {
		return nil, fmt.Errorf("%w: listing attempts: %w", ErrQuery, err)
	}
	defer rows.Close()

	var attempts []model.Attempt
	for rows.Next() {
		a, err := scanAttempt(rows)
		if err != nil {
			return nil, err
		}
		attempts = append(attempts, a)
	}
	return attempts, rows.Err()
}

// AcceptedCount returns the number of accepted submissions.
func (s *SQLiteStore) AcceptedCount(ctx context.Context, assignmentID string) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM submissions
		WHERE assignment_id = ?`, assignmentID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("%w: counting submissions: %w", ErrQuery, err)
	}
	return count, nil
}

func scanAttempt(rows *sql.Rows) (model.Attempt, error) {
	var a model.Attempt
	var status string
	var reason sql.NullString
	var ts int64

	err := rows.Scan(
		&a.ID, &a.AssignmentID, &a.StudentID, &status,
		&reason, &a.LexicalMax, &a.SemanticScore, &ts,
	)
	if err != nil {
		return model.Attempt{}, fmt.Errorf("%w: scanning attempt: %w", ErrQuery, err)
	}

	a.Status = model.Status(status)
	a.Reason = reason.String
	a.TS = time.UnixMilli(ts).UTC()
	return a, nil
}
