package driven

import (
	"context"

	"github.com/custodia-labs/pdfvector/internal/core/domain"
)

// Ledger tracks which source files have been processed, keyed by
// (path, content fingerprint). It is backed by durable storage and
// survives process restart; this is what makes re-runs idempotent.
//
// IsProcessed must return true only if a prior MarkSuccess for the exact
// (path, fingerprint) pair completed and was durably flushed. A partial
// write must never be observable as success.
type Ledger interface {
	// IsProcessed reports whether the identity has a durable success entry.
	// Only the path's active entry counts: a changed fingerprint under a
	// known path returns false, and so does content reverting to an older,
	// superseded fingerprint. Both permit reprocessing.
	IsProcessed(ctx context.Context, path, fingerprint string) (bool, error)

	// MarkSuccess records a completed processing run. Any previous active
	// entry for the path is superseded, not deleted.
	MarkSuccess(ctx context.Context, path, fingerprint string, chunkCount int) error

	// MarkFailed records a terminal processing failure with its reason.
	// Any previous active entry for the path is superseded, not deleted.
	MarkFailed(ctx context.Context, path, fingerprint, reason string) error

	// Get returns the active entry for a path, or domain.ErrNotFound.
	Get(ctx context.Context, path string) (*domain.LedgerEntry, error)

	// List returns all entries, active first, newest first within a path.
	List(ctx context.Context) ([]domain.LedgerEntry, error)
}
