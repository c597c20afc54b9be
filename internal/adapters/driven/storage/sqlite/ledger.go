package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/pdfvector/internal/core/domain"
	"github.com/custodia-labs/pdfvector/internal/core/ports/driven"
)

// ledger implements driven.Ledger.
type ledger struct {
	store *Store
}

var _ driven.Ledger = (*ledger)(nil)

// IsProcessed reports whether the (path, fingerprint) identity has a
// durable success entry. Only the path's active entry counts: a file
// whose content reverts to an older fingerprint must be reprocessed,
// because the query path only serves records behind the active entry.
// Entries are written inside a committed transaction, so a crash
// mid-write can never surface as success.
func (l *ledger) IsProcessed(ctx context.Context, path, fingerprint string) (bool, error) {
	var count int
	err := l.store.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM ledger_entries
		WHERE path = ? AND fingerprint = ? AND status = ? AND superseded_at IS NULL
	`, path, fingerprint, string(domain.StatusSuccess)).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("checking ledger: %w", err)
	}
	return count > 0, nil
}

// MarkSuccess records a completed processing run.
func (l *ledger) MarkSuccess(ctx context.Context, path, fingerprint string, chunkCount int) error {
	return l.record(ctx, domain.LedgerEntry{
		Path:        path,
		Fingerprint: fingerprint,
		Status:      domain.StatusSuccess,
		ChunkCount:  chunkCount,
	})
}

// MarkFailed records a terminal processing failure.
func (l *ledger) MarkFailed(ctx context.Context, path, fingerprint, reason string) error {
	return l.record(ctx, domain.LedgerEntry{
		Path:        path,
		Fingerprint: fingerprint,
		Status:      domain.StatusFailed,
		Reason:      reason,
	})
}

// record supersedes the previous active entry for the path and inserts
// the new one in a single transaction. Old entries are kept for audit.
func (l *ledger) record(ctx context.Context, entry domain.LedgerEntry) error {
	tx, err := l.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	now := time.Now().UTC()

	if _, err := tx.ExecContext(ctx, `
		UPDATE ledger_entries SET superseded_at = ?
		WHERE path = ? AND superseded_at IS NULL
	`, now, entry.Path); err != nil {
		return fmt.Errorf("superseding previous entry: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO ledger_entries (id, path, fingerprint, status, chunk_count, reason, processed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, uuid.New().String(), entry.Path, entry.Fingerprint, string(entry.Status),
		entry.ChunkCount, entry.Reason, now); err != nil {
		return fmt.Errorf("inserting ledger entry: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing ledger entry: %w", err)
	}
	return nil
}

// Get returns the active entry for a path.
func (l *ledger) Get(ctx context.Context, path string) (*domain.LedgerEntry, error) {
	row := l.store.db.QueryRowContext(ctx, `
		SELECT id, path, fingerprint, status, chunk_count, reason, processed_at, superseded_at
		FROM ledger_entries
		WHERE path = ? AND superseded_at IS NULL
	`, path)

	entry, err := scanLedgerEntry(row.Scan)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scanning ledger entry: %w", err)
	}
	return entry, nil
}

// List returns all entries, active first, newest first within a path.
func (l *ledger) List(ctx context.Context) ([]domain.LedgerEntry, error) {
	rows, err := l.store.db.QueryContext(ctx, `
		SELECT id, path, fingerprint, status, chunk_count, reason, processed_at, superseded_at
		FROM ledger_entries
		ORDER BY path, superseded_at IS NOT NULL, processed_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("querying ledger: %w", err)
	}
	defer rows.Close()

	var entries []domain.LedgerEntry //nolint:prealloc // size unknown from query
	for rows.Next() {
		entry, err := scanLedgerEntry(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scanning ledger entry: %w", err)
		}
		entries = append(entries, *entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating ledger: %w", err)
	}
	return entries, nil
}

// scanLedgerEntry scans one row using the provided scan function.
func scanLedgerEntry(scan func(...any) error) (*domain.LedgerEntry, error) {
	var entry domain.LedgerEntry
	var status string
	var supersededAt sql.NullTime

	if err := scan(&entry.ID, &entry.Path, &entry.Fingerprint, &status,
		&entry.ChunkCount, &entry.Reason, &entry.ProcessedAt, &supersededAt); err != nil {
		return nil, err
	}

	entry.Status = domain.ProcessingStatus(status)
	if supersededAt.Valid {
		t := supersededAt.Time
		entry.SupersededAt = &t
	}
	return &entry, nil
}
