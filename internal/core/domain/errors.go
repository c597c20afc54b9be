package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyProcessed indicates the (path, fingerprint) identity has a
	// durable success entry and must not be processed again.
	ErrAlreadyProcessed = errors.New("already processed")

	// ErrInProgress indicates another worker is processing the same path.
	ErrInProgress = errors.New("processing in progress")

	// ErrUnsupportedType indicates no extractor is registered for the
	// file's extension.
	ErrUnsupportedType = errors.New("unsupported file type")

	// ErrPipelineClosed indicates the pipeline is shutting down and no
	// longer accepts file events.
	ErrPipelineClosed = errors.New("pipeline closed")

	// ErrEmbeddingUnavailable indicates the embedding service is not
	// configured. Ingestion and query are both disabled without it.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")
)

// ConfigurationError indicates invalid startup configuration.
// It is fatal: the process refuses to start rather than degrade.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration: %s: %s", e.Field, e.Reason)
}

// TransientIOError indicates a file could not be read, typically because
// it is still being written. The pipeline retries these with backoff.
type TransientIOError struct {
	Path  string
	Cause error
}

func (e *TransientIOError) Error() string {
	return fmt.Sprintf("transient I/O on %s: %v", e.Path, e.Cause)
}

func (e *TransientIOError) Unwrap() error { return e.Cause }

// ExtractionError indicates text extraction failed. Extraction failures
// are treated as a property of the file and are not retried automatically.
type ExtractionError struct {
	Path  string
	Cause error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extract %s: %v", e.Path, e.Cause)
}

func (e *ExtractionError) Unwrap() error { return e.Cause }

// EmbeddingError indicates the embedding backend failed. These may
// reflect a transient outage and are retryable on a later trigger.
type EmbeddingError struct {
	Cause error
}

func (e *EmbeddingError) Error() string {
	return fmt.Sprintf("embedding: %v", e.Cause)
}

func (e *EmbeddingError) Unwrap() error { return e.Cause }

// StoreError indicates the vector store or ledger rejected a write.
type StoreError struct {
	Op    string
	Cause error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store %s: %v", e.Op, e.Cause)
}

func (e *StoreError) Unwrap() error { return e.Cause }
