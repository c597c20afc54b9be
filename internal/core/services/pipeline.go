package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/custodia-labs/pdfvector/internal/chunker"
	"github.com/custodia-labs/pdfvector/internal/core/domain"
	"github.com/custodia-labs/pdfvector/internal/core/ports/driven"
	"github.com/custodia-labs/pdfvector/internal/core/ports/driving"
	"github.com/custodia-labs/pdfvector/internal/logger"
)

// Ensure Pipeline implements the interface.
var _ driving.Pipeline = (*Pipeline)(nil)

// Default pipeline parameters.
const (
	// DefaultWorkers bounds parallelism. Extraction and embedding are
	// CPU/IO heavy; a small pool keeps memory use predictable on large
	// PDFs and avoids overwhelming the embedding backend.
	DefaultWorkers = 2

	// DefaultQueueSize bounds the event queue between watcher and workers.
	DefaultQueueSize = 64

	// eventBuffer sizes the outcome channel to the front end. Outcomes
	// beyond the buffer are logged and dropped rather than blocking a
	// worker on a slow consumer.
	eventBuffer = 128
)

// PipelineConfig holds pipeline tuning parameters.
type PipelineConfig struct {
	// Workers is the worker pool size (default 2).
	Workers int

	// QueueSize bounds the pending-file queue (default 64).
	QueueSize int

	// Retry is the policy for transient read failures while fingerprinting.
	Retry RetryPolicy
}

// Pipeline orchestrates ingestion: it consumes file events, fingerprints
// each file, consults the ledger, and drives extraction, chunking,
// embedding and storage. One worker owns a file end-to-end; the same
// path is never processed by two workers at once.
type Pipeline struct {
	cfg      PipelineConfig
	registry driven.ExtractorRegistry
	chunker  *chunker.Chunker
	embedder driven.EmbeddingService
	store    driven.VectorStore
	ledger   driven.Ledger

	queue  chan string
	events chan driving.Event
	stopCh chan struct{}
	wg     sync.WaitGroup

	mu      sync.Mutex
	pending map[string]struct{}
	started bool
	closed  bool
}

// NewPipeline creates a pipeline. The chunker is constructed by the
// caller so that invalid chunk configuration fails at startup, before
// any file is touched.
func NewPipeline(
	cfg PipelineConfig,
	registry driven.ExtractorRegistry,
	chk *chunker.Chunker,
	embedder driven.EmbeddingService,
	store driven.VectorStore,
	ledger driven.Ledger,
) (*Pipeline, error) {
	if embedder == nil {
		return nil, domain.ErrEmbeddingUnavailable
	}
	if cfg.Workers <= 0 {
		cfg.Workers = DefaultWorkers
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = DefaultQueueSize
	}
	if cfg.Retry.MaxAttempts == 0 {
		cfg.Retry = DefaultRetryPolicy()
	}

	return &Pipeline{
		cfg:      cfg,
		registry: registry,
		chunker:  chk,
		embedder: embedder,
		store:    store,
		ledger:   ledger,
		queue:    make(chan string, cfg.QueueSize),
		events:   make(chan driving.Event, eventBuffer),
		stopCh:   make(chan struct{}),
		pending:  make(map[string]struct{}),
	}, nil
}

// Start launches the worker pool. It returns once workers are running.
func (p *Pipeline) Start(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.started {
		return nil
	}
	p.started = true

	logger.Info("Pipeline starting: %d workers, queue %d", p.cfg.Workers, p.cfg.QueueSize)
	for i := 0; i < p.cfg.Workers; i++ {
		p.wg.Add(1)
		go p.worker(ctx)
	}
	return nil
}

// OnFileEvent enqueues a file for processing. A path already queued or
// being processed is skipped; the watch mechanism redelivers events and
// the ledger makes redelivery harmless.
func (p *Pipeline) OnFileEvent(path string) error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return domain.ErrPipelineClosed
	}
	if _, ok := p.pending[path]; ok {
		p.mu.Unlock()
		logger.Debug("Duplicate event for %s, already pending", path)
		return nil
	}
	p.pending[path] = struct{}{}
	p.mu.Unlock()

	select {
	case p.queue <- path:
		return nil
	case <-p.stopCh:
		p.clearPending(path)
		return domain.ErrPipelineClosed
	}
}

// Events returns the channel of processing outcomes.
func (p *Pipeline) Events() <-chan driving.Event {
	return p.events
}

// Stop shuts the pipeline down cooperatively: workers finish the file
// they are on, queued-but-unstarted files are abandoned, and the events
// channel is closed. Safe to call more than once.
func (p *Pipeline) Stop() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	p.mu.Unlock()

	close(p.stopCh)
	p.wg.Wait()
	close(p.events)
	logger.Info("Pipeline stopped")
}

// worker drains the queue until stopped. Each file is processed to
// completion before the next is taken, so a shutdown mid-file never
// leaves a half-stored file without a ledger entry.
func (p *Pipeline) worker(ctx context.Context) {
	defer p.wg.Done()
	for {
		select {
		case <-p.stopCh:
			return
		case <-ctx.Done():
			return
		case path := <-p.queue:
			err := p.ProcessFile(ctx, path)
			p.clearPending(path)
			if err != nil {
				logger.Warn("Processing failed for %s: %v", path, err)
			}
		}
	}
}

// ProcessFile processes one file end-to-end. Every terminal outcome is
// either recorded in the ledger or surfaced as a failed event with no
// ledger write (when the fingerprint could not be determined).
func (p *Pipeline) ProcessFile(ctx context.Context, path string) error {
	// 1. Fingerprint, retrying while the file may still be mid-write.
	var source *domain.SourceFile
	err := p.cfg.Retry.Do(ctx, func() error {
		var ferr error
		source, ferr = domain.FingerprintFile(path)
		return ferr
	})
	if err != nil {
		// No fingerprint was determined, so the ledger is not touched.
		p.emit(driving.Event{Kind: driving.EventFailed, Path: path, Err: err})
		return fmt.Errorf("fingerprint %s: %w", path, err)
	}

	logger.Debug("Fingerprinted %s: %s (%d bytes)", path, source.Fingerprint, source.Size)

	// 2. Idempotent skip.
	processed, err := p.ledger.IsProcessed(ctx, path, source.Fingerprint)
	if err != nil {
		p.emit(driving.Event{Kind: driving.EventFailed, Path: path, Fingerprint: source.Fingerprint, Err: err})
		return fmt.Errorf("check ledger: %w", err)
	}
	if processed {
		logger.Debug("Skipping %s: fingerprint %s already processed", path, source.Fingerprint)
		p.emit(driving.Event{Kind: driving.EventSkipped, Path: path, Fingerprint: source.Fingerprint})
		return nil
	}

	// 3. Extract. Extraction failures are a property of the file: mark
	// failed, surface, and keep watching other files. No automatic retry.
	text, err := p.extract(ctx, path)
	if err != nil {
		return p.fail(ctx, path, source.Fingerprint, err)
	}

	// 4. Chunk.
	chunks := p.chunker.Chunk(path, source.Fingerprint, chunker.Clean(text))
	logger.Debug("Chunked %s into %d chunks", path, len(chunks))

	// 5. Embed and store each chunk. A partial failure leaves stored
	// chunks in place: record IDs are stable, so a retry overwrites them.
	for _, chunk := range chunks {
		embedding, err := p.embedder.Embed(ctx, chunk.Content)
		if err != nil {
			return p.fail(ctx, path, source.Fingerprint, fmt.Errorf("embed chunk %d: %w", chunk.Sequence, err))
		}

		record := domain.VectorRecord{
			ID:          domain.RecordID(chunk.Path, chunk.Fingerprint, chunk.Sequence),
			Path:        chunk.Path,
			Fingerprint: chunk.Fingerprint,
			Sequence:    chunk.Sequence,
			Content:     chunk.Content,
			Embedding:   embedding,
		}
		if err := p.store.Upsert(ctx, record); err != nil {
			return p.fail(ctx, path, source.Fingerprint, fmt.Errorf("store chunk %d: %w", chunk.Sequence, err))
		}
	}

	// 6. Flush chunks before recording success: the ledger must never
	// claim success for records that are not durable yet.
	if err := p.store.Persist(ctx); err != nil {
		return p.fail(ctx, path, source.Fingerprint, err)
	}
	if err := p.ledger.MarkSuccess(ctx, path, source.Fingerprint, len(chunks)); err != nil {
		// Ledger write failure is fatal for this file; it stays eligible
		// for retry on the next observation.
		p.emit(driving.Event{Kind: driving.EventFailed, Path: path, Fingerprint: source.Fingerprint, Err: err})
		return fmt.Errorf("mark success: %w", err)
	}

	logger.Info("Processed %s: %d chunks", path, len(chunks))
	p.emit(driving.Event{
		Kind:        driving.EventProcessed,
		Path:        path,
		Fingerprint: source.Fingerprint,
		ChunkCount:  len(chunks),
	})
	return nil
}

// extract selects an extractor and runs it.
func (p *Pipeline) extract(ctx context.Context, path string) (string, error) {
	extractor, err := p.registry.ForPath(path)
	if err != nil {
		return "", err
	}
	return extractor.Extract(ctx, path)
}

// fail records a terminal failure in the ledger and surfaces it.
func (p *Pipeline) fail(ctx context.Context, path, fingerprint string, cause error) error {
	if err := p.ledger.MarkFailed(ctx, path, fingerprint, cause.Error()); err != nil {
		logger.Warn("Failed to record failure for %s: %v", path, err)
	}
	p.emit(driving.Event{Kind: driving.EventFailed, Path: path, Fingerprint: fingerprint, Err: cause})
	return cause
}

// emit delivers an outcome without ever blocking a worker. If the front
// end is not draining the channel, the outcome is logged instead; the
// ledger remains the durable record.
func (p *Pipeline) emit(event driving.Event) {
	select {
	case p.events <- event:
	default:
		logger.Warn("Event buffer full, dropping %s event for %s", event.Kind, event.Path)
	}
}

// clearPending releases the per-path guard.
func (p *Pipeline) clearPending(path string) {
	p.mu.Lock()
	delete(p.pending, path)
	p.mu.Unlock()
}
