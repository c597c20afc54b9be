package driven

import "context"

// EmbeddingService generates vector embeddings from text.
//
// Ingestion and query MUST use the same implementation and model:
// querying with a different embedding model than was used to index
// silently produces meaningless scores. This is a documented
// precondition, not something the service can detect.
//
// Implementations may include:
//   - Ollama (nomic-embed-text, all-minilm)
//   - OpenAI-compatible HTTP APIs (text-embedding-3-small, ...)
type EmbeddingService interface {
	// Embed generates a vector embedding for the given text.
	// Failures are returned as *domain.EmbeddingError.
	Embed(ctx context.Context, text string) ([]float32, error)

	// Dimensions returns the embedding vector size (e.g. 384, 768, 1536).
	// This is determined by the model and must match the stored records.
	Dimensions() int

	// ModelName returns the name of the embedding model being used.
	ModelName() string

	// Ping validates the service is reachable with a lightweight request.
	// Used at startup to fail before the watcher begins accepting files.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}
