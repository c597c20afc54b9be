package watcher

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/pdfvector/internal/core/domain"
	"github.com/custodia-labs/pdfvector/internal/core/ports/driving"
)

// recordingPipeline captures paths forwarded by the watcher.
type recordingPipeline struct {
	mu    sync.Mutex
	paths []string
	err   error
}

func (p *recordingPipeline) Start(context.Context) error { return nil }
func (p *recordingPipeline) Stop()                       {}

func (p *recordingPipeline) OnFileEvent(path string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.paths = append(p.paths, path)
	return nil
}

func (p *recordingPipeline) ProcessFile(context.Context, string) error { return nil }

func (p *recordingPipeline) Events() <-chan driving.Event { return nil }

func (p *recordingPipeline) seen() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.paths))
	copy(out, p.paths)
	return out
}

func TestNew_MissingDirectory(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "nope"), []string{".pdf"}, &recordingPipeline{})
	require.Error(t, err)

	var cfgErr *domain.ConfigurationError
	assert.True(t, errors.As(err, &cfgErr))
}

func TestNew_FileNotDirectory(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "file.pdf")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))

	_, err := New(file, []string{".pdf"}, &recordingPipeline{})
	require.Error(t, err)

	var cfgErr *domain.ConfigurationError
	assert.True(t, errors.As(err, &cfgErr))
}

func TestWatcher_InitialScan(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.pdf"), []byte("a"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.txt"), []byte("b"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "skip.png"), []byte("p"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0o755))

	pipeline := &recordingPipeline{}
	w, err := New(dir, []string{".pdf", ".txt"}, pipeline)
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, w.scan())

	seen := pipeline.seen()
	assert.ElementsMatch(t, []string{
		filepath.Join(dir, "a.pdf"),
		filepath.Join(dir, "b.txt"),
	}, seen)
}

func TestWatcher_ForwardsCreatedFile(t *testing.T) {
	dir := t.TempDir()
	pipeline := &recordingPipeline{}
	w, err := New(dir, []string{".pdf"}, pipeline)
	require.NoError(t, err)
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	path := filepath.Join(dir, "new.pdf")
	require.NoError(t, os.WriteFile(path, []byte("content"), 0o644))

	require.Eventually(t, func() bool {
		for _, p := range pipeline.seen() {
			if p == path {
				return true
			}
		}
		return false
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
}

func TestWatcher_IgnoresUnsupportedExtension(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.docx"), []byte("x"), 0o644))

	pipeline := &recordingPipeline{}
	w, err := New(dir, []string{".pdf"}, pipeline)
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, w.scan())
	assert.Empty(t, pipeline.seen())
}

func TestWatcher_ClosedPipelineSilenced(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.pdf"), []byte("a"), 0o644))

	pipeline := &recordingPipeline{err: domain.ErrPipelineClosed}
	w, err := New(dir, []string{".pdf"}, pipeline)
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, w.scan())
	assert.Empty(t, pipeline.seen())
}
