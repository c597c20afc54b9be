package driven

import (
	"context"

	"github.com/custodia-labs/pdfvector/internal/core/domain"
)

// VectorStore persists (vector, metadata, text) records and supports
// nearest-neighbour query over them.
//
// Upsert is keyed by the record ID, which the pipeline derives from
// (path, fingerprint, sequence). Reprocessing a file after a crash
// therefore overwrites partial state instead of duplicating it.
type VectorStore interface {
	// Upsert inserts or replaces a record by its ID.
	Upsert(ctx context.Context, record domain.VectorRecord) error

	// Query returns up to k records nearest to the query vector,
	// ordered by descending similarity score.
	Query(ctx context.Context, embedding []float32, k int) ([]domain.QueryMatch, error)

	// Count returns the number of stored records for a (path, fingerprint)
	// identity. Used by tests and the status surface.
	Count(ctx context.Context, path, fingerprint string) (int, error)

	// Persist flushes pending writes to durable storage.
	Persist(ctx context.Context) error

	// Close releases resources.
	Close() error
}
