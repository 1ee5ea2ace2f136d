package semantic

import (
	"context"
	"hash/fnv"
	"math"
)

// defaultLocalDimensions matches the all-minilm embedding size so local
// and remote encoders are interchangeable at the scorer level.
const defaultLocalDimensions = 384

// LocalEncoder is a deterministic, non-neural sentence encoder. Each token
// maps to a fixed pseudo-random unit-variance representation derived from
// its hash; a sentence embedding is the mean pooling of its token
// representations, L2-normalized. Output derives entirely from the token
// hashes, so the same text always yields the same vector.
//
// It captures token overlap rather than learned semantics. Deployments
// that need true semantic similarity should configure the Ollama encoder.
type LocalEncoder struct {
	dimensions int
	maxTokens  int
}

// LocalOption applies a configuration option to the LocalEncoder.
type LocalOption func(*LocalEncoder)

// WithDimensions sets the embedding dimensionality.
func WithDimensions(dims int) LocalOption {
	return func(e *LocalEncoder) {
		if dims > 0 {
			e.dimensions = dims
		}
	}
}

// WithMaxTokens sets how many leading tokens are embedded.
func WithMaxTokens(n int) LocalOption {
	return func(e *LocalEncoder) {
		if n > 0 {
			e.maxTokens = n
		}
	}
}

// NewLocalEncoder creates a LocalEncoder with default configuration.
func NewLocalEncoder(opts ...LocalOption) *LocalEncoder {
	e := &LocalEncoder{
		dimensions: defaultLocalDimensions,
		maxTokens:  defaultMaxTokens,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Name returns the identifier of this encoder implementation.
func (e *LocalEncoder) Name() string { return "local" }

// Dimensions returns the embedding dimensionality.
func (e *LocalEncoder) Dimensions() int { return e.dimensions }

// Encode mean-pools the token representations of text, truncated at the
// token bound, and L2-normalizes the result. A text with no tokens yields
// a zero vector.
func (e *LocalEncoder) Encode(_ context.Context, text string) ([]float64, error) {
	vec := make([]float64, e.dimensions)

	tokens := tokenize(text, e.maxTokens)
	if len(tokens) == 0 {
		return vec, nil
	}

	for _, tok := range tokens {
		accumulateToken(vec, tok)
	}
	for i := range vec {
		vec[i] /= float64(len(tokens))
	}

	// L2 normalize
	var norm float64
	for _, val := range vec {
		norm += val * val
	}
	if norm > 0 {
		norm = math.Sqrt(norm)
		for i := range vec {
			vec[i] /= norm
		}
	}
	return vec, nil
}

// accumulateToken adds the token's pseudo-random representation into vec.
// Components come from a splitmix64 stream seeded by the token's FNV-1a
// hash, shifted to zero mean.
func accumulateToken(vec []float64, token string) {
	h := fnv.New64a()
	_, _ = h.Write([]byte(token))
	state := h.Sum64()

	for i := range vec {
		state = splitmix64(&state)
		// Map the top 53 bits to [-1, 1).
		vec[i] += float64(state>>11)/float64(1<<52) - 1.0
	}
}

// splitmix64 advances the generator state and returns the next value.
func splitmix64(state *uint64) uint64 {
	*state += 0x9e3779b97f4a7c15
	z := *state
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}
