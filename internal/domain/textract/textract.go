// Package textract turns uploaded documents into normalized plain text.
//
// Extraction is best-effort: a recognized but unreadable file yields the
// ErrNoText sentinel rather than a hard failure, so the caller can fall
// back to inline content. Only the dispatch itself distinguishes an
// unsupported extension from a failed extraction.
package textract

import (
	"context"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/okian/scribe/pkg/logger"
)

// Extractor dispatches uploads to a format-specific extraction routine.
type Extractor struct {
	maxPDFPages int // 0 means all pages
	logger      logger.Logger
}

// Option applies a configuration option to the Extractor.
type Option func(*Extractor)

// WithMaxPDFPages bounds how many PDF pages are read. Zero reads all.
func WithMaxPDFPages(n int) Option {
	return func(e *Extractor) {
		if n >= 0 {
			e.maxPDFPages = n
		}
	}
}

// WithLogger sets a custom logger for the extractor.
func WithLogger(l logger.Logger) Option {
	return func(e *Extractor) {
		if l != nil {
			e.logger = l
		}
	}
}

// New constructs an Extractor with default configuration.
func New(opts ...Option) *Extractor {
	e := &Extractor{}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract returns the normalized text content of data, dispatching on the
// lowercased extension of filename. It returns ErrUnsupportedType when no
// handler exists for the extension and ErrNoText when a recognized file
// yields no usable text.
func (e *Extractor) Extract(ctx context.Context, data []byte, filename string) (string, error) {
	var (
		text string
		err  error
	)

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		text, err = e.extractPDF(ctx, data)
	case ".docx":
		text, err = e.extractDOCX(ctx, data)
	case ".txt":
		text, err = e.extractTXT(ctx, data)
	default:
		return "", ErrUnsupportedType
	}

	if err != nil {
		e.warn(ctx, "text extraction failed", logger.String("filename", filename), logger.Error(err))
		return "", ErrNoText
	}

	if strings.TrimSpace(text) == "" {
		return "", ErrNoText
	}
	return text, nil
}

// extractTXT decodes data as UTF-8 text.
func (e *Extractor) extractTXT(_ context.Context, data []byte) (string, error) {
	if !utf8.Valid(data) {
		return "", ErrInvalidEncoding
	}
	return string(data), nil
}

func (e *Extractor) warn(ctx context.Context, msg string, fields ...logger.Field) {
	if e.logger != nil {
		e.logger.Warn(ctx, msg, fields...)
	}
}
