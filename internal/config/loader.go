package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):.
//  1. defaults (New())
//  2. file (YAML) if SCRIBE_CONFIG is set
//  3. env (prefix SCRIBE_)
func Load(ctx context.Context) (*Config, error) {
	// Start with defaults
	base := New()

	k := koanf.New(".")

	// Load from file if provided
	if path := os.Getenv("SCRIBE_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
		}
	}

	// Environment variables: SCRIBE_DB_PATH, SCRIBE_PLAGIARISM_THRESHOLD, ...
	// Map env keys like SCRIBE_MAX_TOKENS -> max_tokens (flat keys).
	// Preserve underscores to match koanf tags on the struct.
	envProvider := env.Provider("SCRIBE_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "scribe_")
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	// Unmarshal into a copy
	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch {
	case c.PlagiarismThreshold <= 0 || c.PlagiarismThreshold > 1:
		return fmt.Errorf("%w: plagiarism_threshold must be in (0,1]", ErrInvalidConfig)
	case c.MaxTokens <= 0:
		return fmt.Errorf("%w: max_tokens must be positive", ErrInvalidConfig)
	case c.EmbedDimensions <= 0:
		return fmt.Errorf("%w: embed_dimensions must be positive", ErrInvalidConfig)
	case c.Encoder != "local" && c.Encoder != "ollama":
		return fmt.Errorf("%w: encoder must be \"local\" or \"ollama\"", ErrInvalidConfig)
	case c.AuditQueueSize <= 0:
		return fmt.Errorf("%w: audit_queue_size must be positive", ErrInvalidConfig)
	case c.AuditWriterCount <= 0:
		return fmt.Errorf("%w: audit_writer_count must be positive", ErrInvalidConfig)
	}
	return nil
}
