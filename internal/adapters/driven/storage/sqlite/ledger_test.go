package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/pdfvector/internal/core/domain"
)

func TestLedger_IsProcessed_Unknown(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	processed, err := store.Ledger().IsProcessed(context.Background(), "/docs/a.pdf", "abc")
	require.NoError(t, err)
	assert.False(t, processed)
}

func TestLedger_MarkSuccessThenIsProcessed(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()
	ledger := store.Ledger()

	require.NoError(t, ledger.MarkSuccess(ctx, "/docs/report.pdf", "abc123", 3))

	processed, err := ledger.IsProcessed(ctx, "/docs/report.pdf", "abc123")
	require.NoError(t, err)
	assert.True(t, processed)

	entry, err := ledger.Get(ctx, "/docs/report.pdf")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusSuccess, entry.Status)
	assert.Equal(t, 3, entry.ChunkCount)
	assert.Equal(t, "abc123", entry.Fingerprint)
	assert.True(t, entry.Active())
}

func TestLedger_FingerprintMismatchPermitsReprocessing(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()
	ledger := store.Ledger()

	require.NoError(t, ledger.MarkSuccess(ctx, "/docs/report.pdf", "abc123", 3))

	// Changed content means a new fingerprint: not processed
	processed, err := ledger.IsProcessed(ctx, "/docs/report.pdf", "def456")
	require.NoError(t, err)
	assert.False(t, processed)

	// Reprocess under the new fingerprint
	require.NoError(t, ledger.MarkSuccess(ctx, "/docs/report.pdf", "def456", 5))

	// The old entry is superseded, not deleted
	entries, err := ledger.List(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	var active, superseded int
	for _, e := range entries {
		if e.Active() {
			active++
			assert.Equal(t, "def456", e.Fingerprint)
		} else {
			superseded++
			assert.Equal(t, "abc123", e.Fingerprint)
		}
	}
	assert.Equal(t, 1, active, "at most one active entry per path")
	assert.Equal(t, 1, superseded)
}

func TestLedger_RevertedFingerprintPermitsReprocessing(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()
	ledger := store.Ledger()

	// File content goes A -> B -> back to A
	require.NoError(t, ledger.MarkSuccess(ctx, "/docs/report.pdf", "fpA", 3))
	require.NoError(t, ledger.MarkSuccess(ctx, "/docs/report.pdf", "fpB", 4))

	// The old success entry for fpA is superseded; only the active entry
	// counts, so the reverted content must be processed again.
	processed, err := ledger.IsProcessed(ctx, "/docs/report.pdf", "fpA")
	require.NoError(t, err)
	assert.False(t, processed, "reverted fingerprint must not read as processed")

	processed, err = ledger.IsProcessed(ctx, "/docs/report.pdf", "fpB")
	require.NoError(t, err)
	assert.True(t, processed)

	// After reprocessing, fpA is active again and fpB superseded
	require.NoError(t, ledger.MarkSuccess(ctx, "/docs/report.pdf", "fpA", 3))

	processed, err = ledger.IsProcessed(ctx, "/docs/report.pdf", "fpA")
	require.NoError(t, err)
	assert.True(t, processed)

	processed, err = ledger.IsProcessed(ctx, "/docs/report.pdf", "fpB")
	require.NoError(t, err)
	assert.False(t, processed)
}

func TestLedger_MarkFailed(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()
	ledger := store.Ledger()

	require.NoError(t, ledger.MarkFailed(ctx, "/docs/broken.pdf", "abc", "open pdf: encrypted"))

	processed, err := ledger.IsProcessed(ctx, "/docs/broken.pdf", "abc")
	require.NoError(t, err)
	assert.False(t, processed, "failed entries must not read as processed")

	entry, err := ledger.Get(ctx, "/docs/broken.pdf")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusFailed, entry.Status)
	assert.Equal(t, "open pdf: encrypted", entry.Reason)
}

func TestLedger_FailedThenSuccessSameFingerprint(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()
	ledger := store.Ledger()

	require.NoError(t, ledger.MarkFailed(ctx, "/docs/a.pdf", "abc", "backend outage"))
	require.NoError(t, ledger.MarkSuccess(ctx, "/docs/a.pdf", "abc", 2))

	processed, err := ledger.IsProcessed(ctx, "/docs/a.pdf", "abc")
	require.NoError(t, err)
	assert.True(t, processed)

	entry, err := ledger.Get(ctx, "/docs/a.pdf")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusSuccess, entry.Status)
}

func TestLedger_Get_NotFound(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	_, err := store.Ledger().Get(context.Background(), "/docs/nope.pdf")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestLedger_SurvivesReopen(t *testing.T) {
	tempDir := t.TempDir()
	ctx := context.Background()

	store, err := NewStore(tempDir)
	require.NoError(t, err)
	require.NoError(t, store.Ledger().MarkSuccess(ctx, "/docs/report.pdf", "abc123", 3))
	require.NoError(t, store.Close())

	reopened, err := NewStore(tempDir)
	require.NoError(t, err)
	defer reopened.Close()

	processed, err := reopened.Ledger().IsProcessed(ctx, "/docs/report.pdf", "abc123")
	require.NoError(t, err)
	assert.True(t, processed, "ledger must survive process restart")
}
