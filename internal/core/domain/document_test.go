package domain

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestRecordID(t *testing.T) {
	id := RecordID("/docs/report.pdf", "abc123", 2)
	if id != "/docs/report.pdf#abc123#2" {
		t.Errorf("unexpected record ID: %s", id)
	}

	// Same inputs must always yield the same ID (upsert key stability)
	if RecordID("/docs/report.pdf", "abc123", 2) != id {
		t.Error("record ID is not deterministic")
	}

	if RecordID("/docs/report.pdf", "abc123", 0) == RecordID("/docs/report.pdf", "abc123", 1) {
		t.Error("different sequences must yield different IDs")
	}
	if RecordID("/docs/report.pdf", "abc123", 0) == RecordID("/docs/report.pdf", "def456", 0) {
		t.Error("different fingerprints must yield different IDs")
	}
}

func TestFingerprintFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sample.txt")
	if err := os.WriteFile(path, []byte("hello world"), 0600); err != nil {
		t.Fatalf("write file: %v", err)
	}

	sf, err := FingerprintFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// sha256("hello world")
	want := "b94d27b9934d3e08a52e52d7da7dabfac484efe37a5380ee9088f7ace2efcde9"
	if sf.Fingerprint != want {
		t.Errorf("expected fingerprint %s, got %s", want, sf.Fingerprint)
	}
	if sf.Size != 11 {
		t.Errorf("expected size 11, got %d", sf.Size)
	}
	if sf.Path != path {
		t.Errorf("expected path %s, got %s", path, sf.Path)
	}
}

func TestFingerprintFile_ChangesWithContent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sample.txt")
	if err := os.WriteFile(path, []byte("version one"), 0600); err != nil {
		t.Fatalf("write file: %v", err)
	}

	first, err := FingerprintFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := os.WriteFile(path, []byte("version two"), 0600); err != nil {
		t.Fatalf("rewrite file: %v", err)
	}

	second, err := FingerprintFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if first.Fingerprint == second.Fingerprint {
		t.Error("fingerprint should change when content changes")
	}
}

func TestFingerprintFile_Unreadable(t *testing.T) {
	_, err := FingerprintFile(filepath.Join(t.TempDir(), "missing.pdf"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}

	var tioErr *TransientIOError
	if !errors.As(err, &tioErr) {
		t.Errorf("expected TransientIOError, got %T", err)
	}
}

func TestLedgerEntry_Active(t *testing.T) {
	e := LedgerEntry{Status: StatusSuccess}
	if !e.Active() {
		t.Error("entry without SupersededAt should be active")
	}

	now := e.ProcessedAt
	e.SupersededAt = &now
	if e.Active() {
		t.Error("superseded entry should not be active")
	}
}
