package domain

import "time"

// ProcessingStatus is the terminal outcome of a processing attempt.
type ProcessingStatus string

const (
	// StatusSuccess means every chunk of the file was embedded and stored.
	StatusSuccess ProcessingStatus = "success"

	// StatusFailed means processing stopped before all chunks were stored.
	// Failed files stay eligible for reprocessing on the next observation.
	StatusFailed ProcessingStatus = "failed"
)

// LedgerEntry records the outcome of processing one (path, fingerprint)
// identity. At most one entry per path is active; older entries are
// superseded when the file content changes, never deleted.
type LedgerEntry struct {
	// ID is the unique identifier for the entry.
	ID string

	// Path is the source file path.
	Path string

	// Fingerprint is the content fingerprint the attempt was made against.
	Fingerprint string

	// Status is the terminal outcome.
	Status ProcessingStatus

	// ChunkCount is the number of chunks stored (success only).
	ChunkCount int

	// Reason holds the failure cause (failed only).
	Reason string

	// ProcessedAt is when the attempt completed.
	ProcessedAt time.Time

	// SupersededAt is set when a newer fingerprint replaced this entry.
	// Superseded entries are retained for audit.
	SupersededAt *time.Time
}

// Active reports whether this entry is the current one for its path.
func (e *LedgerEntry) Active() bool {
	return e.SupersededAt == nil
}
