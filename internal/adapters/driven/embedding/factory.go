// Package embedding selects and constructs an embedding service adapter.
package embedding

import (
	"time"

	"github.com/custodia-labs/pdfvector/internal/adapters/driven/embedding/ollama"
	"github.com/custodia-labs/pdfvector/internal/adapters/driven/embedding/openai"
	"github.com/custodia-labs/pdfvector/internal/core/domain"
	"github.com/custodia-labs/pdfvector/internal/core/ports/driven"
)

// Provider names accepted in configuration.
const (
	ProviderOllama = "ollama"
	ProviderOpenAI = "openai"
)

// Config holds provider-independent embedding configuration.
type Config struct {
	// Provider selects the backend: "ollama" (default) or "openai".
	Provider string

	// BaseURL overrides the provider's default API base URL.
	BaseURL string

	// Model overrides the provider's default model.
	Model string

	// APIKey authenticates against the backend (openai only).
	APIKey string

	// Dimensions overrides the model's default vector size.
	Dimensions int

	// Timeout is the per-request timeout.
	Timeout time.Duration

	// RequestsPerSecond caps the request rate.
	RequestsPerSecond float64
}

// New constructs the embedding service for the configured provider.
// Both ingestion and query must be built from the same configuration;
// mixing models across the two silently produces meaningless scores.
func New(cfg Config) (driven.EmbeddingService, error) {
	switch cfg.Provider {
	case "", ProviderOllama:
		return ollama.NewEmbeddingService(ollama.Config{
			BaseURL:           cfg.BaseURL,
			Model:             cfg.Model,
			Timeout:           cfg.Timeout,
			Dimensions:        cfg.Dimensions,
			RequestsPerSecond: cfg.RequestsPerSecond,
		}), nil

	case ProviderOpenAI:
		return openai.NewEmbeddingService(openai.Config{
			APIKey:            cfg.APIKey,
			BaseURL:           cfg.BaseURL,
			Model:             cfg.Model,
			Timeout:           cfg.Timeout,
			Dimensions:        cfg.Dimensions,
			RequestsPerSecond: cfg.RequestsPerSecond,
		})

	default:
		return nil, &domain.ConfigurationError{
			Field:  "embedding.provider",
			Reason: "unknown provider " + cfg.Provider,
		}
	}
}
