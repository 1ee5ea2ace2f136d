package semantic

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"strings"
	"time"
)

// Ollama encoder defaults.
const (
	// DefaultOllamaURL is the default Ollama API endpoint.
	DefaultOllamaURL = "http://localhost:11434"

	// DefaultOllamaModel is the default sentence-embedding model.
	DefaultOllamaModel = "all-minilm:l6-v2"

	// defaultOllamaDimensions is the output size of all-minilm.
	defaultOllamaDimensions = 384

	// defaultOllamaTimeout bounds a single embedding request.
	defaultOllamaTimeout = 30 * time.Second

	// apiPathEmbeddings is the Ollama API endpoint for generating embeddings.
	apiPathEmbeddings = "/api/embeddings"

	// apiPathTags is the Ollama API endpoint for listing models.
	apiPathTags = "/api/tags"
)

// OllamaEncoder generates embeddings through a locally hosted pre-trained
// model served by the Ollama API. The model itself is a black box; the
// encoder applies the token-bound truncation before sending and
// L2-normalizes whatever comes back.
type OllamaEncoder struct {
	baseURL    string
	model      string
	dimensions int
	maxTokens  int
	client     *http.Client
}

// OllamaOption configures an OllamaEncoder.
type OllamaOption func(*OllamaEncoder)

// WithBaseURL sets the Ollama API base URL.
func WithBaseURL(url string) OllamaOption {
	return func(e *OllamaEncoder) {
		if url != "" {
			e.baseURL = strings.TrimRight(url, "/")
		}
	}
}

// WithModel sets the embedding model.
func WithModel(model string) OllamaOption {
	return func(e *OllamaEncoder) {
		if model != "" {
			e.model = model
		}
	}
}

// WithOllamaDimensions sets the expected vector dimensions.
func WithOllamaDimensions(dims int) OllamaOption {
	return func(e *OllamaEncoder) {
		if dims > 0 {
			e.dimensions = dims
		}
	}
}

// WithOllamaMaxTokens sets how many leading tokens are sent for embedding.
func WithOllamaMaxTokens(n int) OllamaOption {
	return func(e *OllamaEncoder) {
		if n > 0 {
			e.maxTokens = n
		}
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) OllamaOption {
	return func(e *OllamaEncoder) {
		if client != nil {
			e.client = client
		}
	}
}

// NewOllamaEncoder creates an OllamaEncoder with default configuration.
func NewOllamaEncoder(opts ...OllamaOption) *OllamaEncoder {
	e := &OllamaEncoder{
		baseURL:    DefaultOllamaURL,
		model:      DefaultOllamaModel,
		dimensions: defaultOllamaDimensions,
		maxTokens:  defaultMaxTokens,
		client:     &http.Client{Timeout: defaultOllamaTimeout},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Name returns the identifier of this encoder implementation.
func (e *OllamaEncoder) Name() string { return "ollama/" + e.model }

// Dimensions returns the embedding dimensionality.
func (e *OllamaEncoder) Dimensions() int { return e.dimensions }

// Encode embeds text through the Ollama embeddings API. The input is
// truncated to the token bound before sending so request cost stays
// bounded regardless of upload size.
func (e *OllamaEncoder) Encode(ctx context.Context, text string) ([]float64, error) {
	prompt := strings.Join(tokenize(text, e.maxTokens), " ")

	body, err := json.Marshal(ollamaEmbedRequest{Model: e.model, Prompt: prompt})
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.baseURL+apiPathEmbeddings, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEncoderUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: ollama returned status %d", ErrEncoderUnavailable, resp.StatusCode)
	}

	var result ollamaEmbedResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	if len(result.Embedding) != e.dimensions {
		return nil, fmt.Errorf("unexpected embedding dimensions: got %d, want %d", len(result.Embedding), e.dimensions)
	}

	return normalize(result.Embedding), nil
}

// IsAvailable checks if Ollama is running and accessible.
func (e *OllamaEncoder) IsAvailable(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, e.baseURL+apiPathTags, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	resp, err := e.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrEncoderUnavailable, err)
	}
	resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: ollama returned status %d", ErrEncoderUnavailable, resp.StatusCode)
	}
	return nil
}

// normalize converts the raw model output to a unit-norm float64 vector.
func normalize(raw []float32) []float64 {
	vec := make([]float64, len(raw))
	var norm float64
	for i, val := range raw {
		vec[i] = float64(val)
		norm += vec[i] * vec[i]
	}
	if norm > 0 {
		norm = math.Sqrt(norm)
		for i := range vec {
			vec[i] /= norm
		}
	}
	return vec
}

// ollamaEmbedRequest is the request body for the Ollama embeddings API.
type ollamaEmbedRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
}

// ollamaEmbedResponse is the response from the Ollama embeddings API.
type ollamaEmbedResponse struct {
	Embedding []float32 `json:"embedding"`
}
