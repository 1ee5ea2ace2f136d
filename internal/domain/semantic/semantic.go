// Package semantic scores how closely a submission matches the reference
// text using fixed-dimension sentence embeddings.
//
// Unlike the lexical space, the embedding space is fixed per encoder, so
// vectors from any two calls are comparable. Encoders must be
// deterministic: the same text always yields the same vector.
package semantic

import (
	"context"
	"fmt"
	"math"
	"strings"
	"unicode"
)

// defaultMaxTokens bounds embedding input. Trailing tokens beyond the
// bound are dropped silently; this is accepted lossy behavior, not an
// error.
const defaultMaxTokens = 512

// Encoder maps a text to a fixed-length dense unit vector.
type Encoder interface {
	// Encode returns the embedding of text. Output is repeatable for a
	// fixed encoder and fixed text.
	Encode(ctx context.Context, text string) ([]float64, error)

	// Dimensions returns the embedding dimensionality.
	Dimensions() int

	// Name identifies the encoder implementation.
	Name() string
}

// Scorer computes reference similarity through an Encoder.
type Scorer struct {
	encoder Encoder
}

// NewScorer creates a Scorer backed by the given encoder.
func NewScorer(encoder Encoder) *Scorer {
	return &Scorer{encoder: encoder}
}

// Similarity returns the cosine similarity between text and reference,
// clamped to [0, 1]. A missing reference is not an error: with no sample
// to compare against the semantic signal is simply zero.
func (s *Scorer) Similarity(ctx context.Context, text, reference string) (float64, error) {
	if strings.TrimSpace(reference) == "" {
		return 0, nil
	}

	a, err := s.encoder.Encode(ctx, text)
	if err != nil {
		return 0, fmt.Errorf("encode submission: %w", err)
	}
	b, err := s.encoder.Encode(ctx, reference)
	if err != nil {
		return 0, fmt.Errorf("encode reference: %w", err)
	}
	return CosineSimilarity(a, b), nil
}

// EncoderName reports the underlying encoder identity.
func (s *Scorer) EncoderName() string {
	return s.encoder.Name()
}

// CosineSimilarity computes the cosine between two embeddings, clamped to
// [0, 1]. Embeddings are near unit-norm so this approximates their dot
// product; negative values are floored at zero per the scoring contract.
func CosineSimilarity(a, b []float64) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}

	sim := dot / (math.Sqrt(normA) * math.Sqrt(normB))
	switch {
	case sim < 0:
		return 0
	case sim > 1:
		return 1
	}
	return sim
}

// tokenize lowercases text and splits on non-alphanumeric runes, keeping
// at most max tokens.
func tokenize(text string, max int) []string {
	if max <= 0 {
		max = defaultMaxTokens
	}
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	if len(fields) > max {
		fields = fields[:max]
	}
	return fields
}
