package cli

import (
	"context"

	"github.com/custodia-labs/pdfvector/internal/core/domain"
	"github.com/custodia-labs/pdfvector/internal/core/ports/driving"
)

// stubPipeline is a minimal pipeline for command tests.
type stubPipeline struct {
	processed []string
	processFn func(path string) error
	events    chan driving.Event
}

func newStubPipeline() *stubPipeline {
	return &stubPipeline{events: make(chan driving.Event)}
}

func (s *stubPipeline) Start(context.Context) error { return nil }
func (s *stubPipeline) OnFileEvent(string) error    { return nil }

func (s *stubPipeline) ProcessFile(_ context.Context, path string) error {
	s.processed = append(s.processed, path)
	if s.processFn != nil {
		return s.processFn(path)
	}
	return nil
}

func (s *stubPipeline) Events() <-chan driving.Event { return s.events }
func (s *stubPipeline) Stop()                        { close(s.events) }

// stubQuery returns canned matches.
type stubQuery struct {
	matches []domain.QueryMatch
	err     error
	lastK   int
	calls   int
}

func (s *stubQuery) Query(_ context.Context, _ string, k int) ([]domain.QueryMatch, error) {
	s.calls++
	s.lastK = k
	return s.matches, s.err
}

// stubEmbedder reports configurable backend health.
type stubEmbedder struct {
	pingErr error
}

func (s *stubEmbedder) Embed(context.Context, string) ([]float32, error) { return []float32{1}, nil }
func (s *stubEmbedder) Dimensions() int                                  { return 1 }
func (s *stubEmbedder) ModelName() string                                { return "stub-model" }
func (s *stubEmbedder) Ping(context.Context) error                       { return s.pingErr }
func (s *stubEmbedder) Close() error                                     { return nil }

// stubLedger serves canned entries.
type stubLedger struct {
	entries []domain.LedgerEntry
	err     error
}

func (s *stubLedger) IsProcessed(context.Context, string, string) (bool, error) { return false, nil }
func (s *stubLedger) MarkSuccess(context.Context, string, string, int) error    { return nil }
func (s *stubLedger) MarkFailed(context.Context, string, string, string) error  { return nil }

func (s *stubLedger) Get(_ context.Context, path string) (*domain.LedgerEntry, error) {
	for i := range s.entries {
		if s.entries[i].Path == path && s.entries[i].Active() {
			return &s.entries[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (s *stubLedger) List(context.Context) ([]domain.LedgerEntry, error) {
	return s.entries, s.err
}

// setupTestServices wires stub services and returns a cleanup restoring
// the previous wiring.
func setupTestServices() func() {
	oldPipeline := pipelineService
	oldQuery := queryService
	oldLedger := ledgerService
	oldEmbedder := embeddingService

	pipelineService = newStubPipeline()
	queryService = &stubQuery{matches: []domain.QueryMatch{
		{Path: "/docs/report.pdf", Sequence: 0, Content: "quarterly revenue grew", Score: 0.92},
	}}
	ledgerService = &stubLedger{}
	embeddingService = &stubEmbedder{}

	return func() {
		pipelineService = oldPipeline
		queryService = oldQuery
		ledgerService = oldLedger
		embeddingService = oldEmbedder
	}
}
