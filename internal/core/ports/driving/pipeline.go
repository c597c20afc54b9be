package driving

import (
	"context"

	"github.com/custodia-labs/pdfvector/internal/core/domain"
)

// Pipeline is the ingestion pipeline: it accepts file events, drives
// extraction, chunking, embedding and storage, and records outcomes in
// the ledger.
type Pipeline interface {
	// Start launches the worker pool. It returns once workers are running.
	Start(ctx context.Context) error

	// OnFileEvent enqueues a file for processing. Duplicate and
	// out-of-order delivery is tolerated; the ledger makes redelivery a
	// no-op. Returns domain.ErrPipelineClosed after Stop.
	OnFileEvent(path string) error

	// ProcessFile processes one file synchronously, end-to-end.
	// Used by the one-shot CLI path and by workers internally.
	ProcessFile(ctx context.Context, path string) error

	// Events returns the channel of processing outcomes. The front end
	// consumes this; the pipeline never blocks the watcher on the UI.
	Events() <-chan Event

	// Stop drains the queue cooperatively: in-flight files finish, no new
	// events are accepted. Safe to call more than once.
	Stop()
}

// EventKind classifies a pipeline outcome event.
type EventKind string

const (
	// EventProcessed means the file was fully processed and marked success.
	EventProcessed EventKind = "processed"

	// EventSkipped means the ledger already had a success entry.
	EventSkipped EventKind = "skipped"

	// EventFailed means processing failed; see Err.
	EventFailed EventKind = "failed"
)

// Event is a processing outcome delivered to the front end.
type Event struct {
	// Kind classifies the outcome.
	Kind EventKind

	// Path is the source file.
	Path string

	// Fingerprint is the content fingerprint, when it was determined.
	Fingerprint string

	// ChunkCount is the number of chunks stored (processed only).
	ChunkCount int

	// Err is the failure cause (failed only).
	Err error
}

// QueryService answers questions over the stored chunks.
type QueryService interface {
	// Query embeds the question and returns up to k of the most similar
	// stored chunks, ordered by descending score.
	Query(ctx context.Context, question string, k int) ([]domain.QueryMatch, error)
}
