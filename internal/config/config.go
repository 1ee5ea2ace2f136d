// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults; Load(ctx) layers file/env.
// - Policy thresholds live here as named, overridable values. Call sites
//   never hardcode them.
// - External errors must be wrapped via this package's error helpers.
package config

import "runtime"

// Default policy values. The plagiarism threshold and pass mark are
// provisional policy constants pending stakeholder confirmation.
const (
	DefaultPlagiarismThreshold = 0.75
	DefaultPassMark            = 40
)

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// DBPath locates the sqlite submission store.
	DBPath string `koanf:"db_path"`

	// PlagiarismThreshold rejects a submission when its max lexical
	// similarity vs the prior corpus is >= this value.
	PlagiarismThreshold float64 `koanf:"plagiarism_threshold"`

	// PassMark is the minimum grade treated as a pass. Grading itself is
	// owned by the caller; the value is carried here so every consumer
	// reads the same constant.
	PassMark int `koanf:"pass_mark"`

	// Encoder selects the semantic encoder: "local" or "ollama".
	Encoder string `koanf:"encoder"`

	// OllamaURL and OllamaModel configure the remote encoder.
	OllamaURL   string `koanf:"ollama_url"`
	OllamaModel string `koanf:"ollama_model"`

	// EmbedDimensions sets the local encoder output dimensionality.
	EmbedDimensions int `koanf:"embed_dimensions"`

	// MaxTokens bounds embedding input; trailing tokens are dropped.
	MaxTokens int `koanf:"max_tokens"`

	// AuditQueueSize bounds the in-memory audit attempt queue.
	AuditQueueSize int `koanf:"audit_queue_size"`

	// AuditWriterCount sets the number of audit writer goroutines.
	AuditWriterCount int `koanf:"audit_writer_count"`

	// MaxUploadBytes caps uploaded file size before extraction.
	MaxUploadBytes int64 `koanf:"max_upload_bytes"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:            "info",
		DBPath:              "scribe.db",
		PlagiarismThreshold: DefaultPlagiarismThreshold,
		PassMark:            DefaultPassMark,
		Encoder:             "local",
		OllamaURL:           "http://localhost:11434",
		OllamaModel:         "all-minilm:l6-v2",
		EmbedDimensions:     384,
		MaxTokens:           512,
		AuditQueueSize:      4096,
		AuditWriterCount:    runtime.NumCPU(),
		MaxUploadBytes:      16 << 20,
	}
}
