package sqlite

import (
	"context"
	"math"
	"sort"
	"time"

	"github.com/custodia-labs/pdfvector/internal/core/domain"
	"github.com/custodia-labs/pdfvector/internal/core/ports/driven"
)

// vectorStore implements driven.VectorStore.
type vectorStore struct {
	store *Store
}

var _ driven.VectorStore = (*vectorStore)(nil)

// Upsert inserts or replaces a record by its ID.
func (v *vectorStore) Upsert(ctx context.Context, record domain.VectorRecord) error {
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now().UTC()
	}

	_, err := v.store.db.ExecContext(ctx, `
		INSERT INTO vector_records (id, path, fingerprint, sequence, content, embedding, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			path = excluded.path,
			fingerprint = excluded.fingerprint,
			sequence = excluded.sequence,
			content = excluded.content,
			embedding = excluded.embedding,
			created_at = excluded.created_at
	`, record.ID, record.Path, record.Fingerprint, record.Sequence,
		record.Content, float32SliceToBytes(record.Embedding), record.CreatedAt)

	if err != nil {
		return &domain.StoreError{Op: "upsert", Cause: err}
	}
	return nil
}

// Query returns up to k records nearest to the query vector, ordered by
// descending cosine similarity. Superseded fingerprints are filtered out
// by joining against the active ledger entries, so stale records from an
// older version of a file never surface in results.
func (v *vectorStore) Query(ctx context.Context, embedding []float32, k int) ([]domain.QueryMatch, error) {
	if k <= 0 {
		return []domain.QueryMatch{}, nil
	}

	rows, err := v.store.db.QueryContext(ctx, `
		SELECT r.path, r.sequence, r.content, r.embedding
		FROM vector_records r
		JOIN ledger_entries l
			ON l.path = r.path AND l.fingerprint = r.fingerprint
		WHERE l.superseded_at IS NULL AND l.status = ?
	`, string(domain.StatusSuccess))
	if err != nil {
		return nil, &domain.StoreError{Op: "query", Cause: err}
	}
	defer rows.Close()

	var matches []domain.QueryMatch //nolint:prealloc // size unknown from query
	for rows.Next() {
		var match domain.QueryMatch
		var blob []byte
		if err := rows.Scan(&match.Path, &match.Sequence, &match.Content, &blob); err != nil {
			return nil, &domain.StoreError{Op: "query", Cause: err}
		}

		match.Score = cosineSimilarity(embedding, bytesToFloat32Slice(blob))
		matches = append(matches, match)
	}
	if err := rows.Err(); err != nil {
		return nil, &domain.StoreError{Op: "query", Cause: err}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})
	if len(matches) > k {
		matches = matches[:k]
	}
	return matches, nil
}

// Count returns the number of stored records for a (path, fingerprint) identity.
func (v *vectorStore) Count(ctx context.Context, path, fingerprint string) (int, error) {
	var count int
	err := v.store.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM vector_records WHERE path = ? AND fingerprint = ?
	`, path, fingerprint).Scan(&count)
	if err != nil {
		return 0, &domain.StoreError{Op: "count", Cause: err}
	}
	return count, nil
}

// Persist flushes the WAL into the main database file.
func (v *vectorStore) Persist(ctx context.Context) error {
	if _, err := v.store.db.ExecContext(ctx, "PRAGMA wal_checkpoint(TRUNCATE)"); err != nil {
		return &domain.StoreError{Op: "persist", Cause: err}
	}
	return nil
}

// Close is a no-op; the shared Store owns the connection.
func (v *vectorStore) Close() error {
	return nil
}

// cosineSimilarity computes the cosine of the angle between two vectors.
// Mismatched dimensions or zero vectors score 0.
func cosineSimilarity(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
