package policy

import (
	"github.com/okian/scribe/internal/domain/lexical"
	"github.com/okian/scribe/internal/domain/textract"
	"github.com/okian/scribe/pkg/logger"
)

// Option applies a configuration option to the Engine.
type Option func(*Engine)

// WithThreshold sets the lexical rejection threshold. The comparison
// stays inclusive: max similarity equal to the threshold rejects.
func WithThreshold(threshold float64) Option {
	return func(e *Engine) {
		if threshold > 0 && threshold <= 1 {
			e.threshold = threshold
		}
	}
}

// WithLogger sets a custom logger for the engine.
func WithLogger(l logger.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithExtractor sets a custom text extractor.
func WithExtractor(ex *textract.Extractor) Option {
	return func(e *Engine) {
		if ex != nil {
			e.extractor = ex
		}
	}
}

// WithVectorizer sets a custom lexical vectorizer.
func WithVectorizer(v *lexical.Vectorizer) Option {
	return func(e *Engine) {
		if v != nil {
			e.vectorizer = v
		}
	}
}
