package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/pdfvector/internal/core/domain"
	"github.com/custodia-labs/pdfvector/internal/core/ports/driven"
	"github.com/custodia-labs/pdfvector/internal/core/ports/driving"
	"github.com/custodia-labs/pdfvector/internal/logger"
)

// Ensure QueryService implements the interface.
var _ driving.QueryService = (*QueryService)(nil)

// DefaultTopK is the number of matches returned when k is not positive.
const DefaultTopK = 5

// QueryService answers questions by similarity search over stored chunks.
//
// It must share its EmbeddingService with the pipeline that indexed the
// store: embedding-space consistency is a precondition, not something
// this service can detect.
type QueryService struct {
	embedder driven.EmbeddingService
	store    driven.VectorStore
}

// NewQueryService creates a query service.
func NewQueryService(embedder driven.EmbeddingService, store driven.VectorStore) (*QueryService, error) {
	if embedder == nil {
		return nil, domain.ErrEmbeddingUnavailable
	}
	return &QueryService{embedder: embedder, store: store}, nil
}

// Query embeds the question and returns up to k of the most similar
// stored chunks, ordered by descending score. An empty question yields
// no matches.
func (s *QueryService) Query(ctx context.Context, question string, k int) ([]domain.QueryMatch, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return []domain.QueryMatch{}, nil
	}
	if k <= 0 {
		k = DefaultTopK
	}

	logger.Debug("Query: %q (k=%d, model=%s)", question, k, s.embedder.ModelName())

	embedding, err := s.embedder.Embed(ctx, question)
	if err != nil {
		return nil, fmt.Errorf("embed question: %w", err)
	}

	matches, err := s.store.Query(ctx, embedding, k)
	if err != nil {
		return nil, fmt.Errorf("query store: %w", err)
	}

	logger.Debug("Query returned %d matches", len(matches))
	return matches, nil
}
