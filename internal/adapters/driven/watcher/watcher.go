// Package watcher observes a directory for new and changed files and
// feeds them to the ingestion pipeline.
//
// It wraps fsnotify and adds an initial scan, so files already present
// when the process starts are picked up as well. Duplicate and partial
// events from the OS are passed through as-is: the pipeline's ledger and
// per-path guard make redelivery harmless, and its retry policy covers
// files that are still being written when the event fires.
package watcher

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/pdfvector/internal/core/domain"
	"github.com/custodia-labs/pdfvector/internal/core/ports/driving"
	"github.com/custodia-labs/pdfvector/internal/logger"
)

// Watcher watches one directory, non-recursively, like the drop-folder
// it models: users copy PDFs into the folder, the watcher picks them up.
type Watcher struct {
	dir        string
	extensions map[string]bool
	pipeline   driving.Pipeline
	fsw        *fsnotify.Watcher
}

// New creates a watcher for dir. The directory must already exist;
// creating it is a configuration responsibility, not the watcher's.
// Only files whose extension appears in extensions are forwarded.
func New(dir string, extensions []string, pipeline driving.Pipeline) (*Watcher, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, &domain.ConfigurationError{Field: "input_dir", Reason: err.Error()}
	}
	if !info.IsDir() {
		return nil, &domain.ConfigurationError{Field: "input_dir", Reason: dir + " is not a directory"}
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := fsw.Add(dir); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watch %s: %w", dir, err)
	}

	exts := make(map[string]bool, len(extensions))
	for _, ext := range extensions {
		exts[strings.ToLower(ext)] = true
	}

	return &Watcher{
		dir:        dir,
		extensions: exts,
		pipeline:   pipeline,
		fsw:        fsw,
	}, nil
}

// Run scans the directory once, then forwards filesystem events until
// the context is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	if err := w.scan(); err != nil {
		return err
	}

	logger.Info("Watching %s", w.dir)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if event.Op.Has(fsnotify.Create) || event.Op.Has(fsnotify.Write) {
				w.forward(event.Name)
			}

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Watcher error: %v", err)
		}
	}
}

// Close releases the underlying filesystem watcher.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}

// scan forwards files already present in the directory.
func (w *Watcher) scan() error {
	entries, err := os.ReadDir(w.dir)
	if err != nil {
		return fmt.Errorf("scan %s: %w", w.dir, err)
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		w.forward(filepath.Join(w.dir, entry.Name()))
	}
	return nil
}

// forward hands a path to the pipeline if its extension is supported.
func (w *Watcher) forward(path string) {
	ext := strings.ToLower(filepath.Ext(path))
	if !w.extensions[ext] {
		return
	}

	if err := w.pipeline.OnFileEvent(path); err != nil {
		if errors.Is(err, domain.ErrPipelineClosed) {
			return
		}
		logger.Warn("Enqueue %s: %v", path, err)
	}
}
