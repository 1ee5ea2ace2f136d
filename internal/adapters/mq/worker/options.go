// Package worker defines the audit writers that persist attempt records
// asynchronously so the submission pipeline never blocks on bookkeeping.
package worker

import (
	"github.com/okian/scribe/pkg/logger"
)

// Option applies a configuration option to the AuditWriter.
type Option func(*AuditWriter)

// WithName sets the writer name for identification and logging.
func WithName(name string) Option {
	return func(w *AuditWriter) {
		if name != "" {
			w.name = name
		}
	}
}

// WithLogger sets a custom logger for the writer.
func WithLogger(logger logger.Logger) Option {
	return func(w *AuditWriter) {
		if logger != nil {
			w.logger = logger
		}
	}
}
