// Package watcher feeds filesystem events into the ingestion pipeline.
// Dropping a file into the watched directory ingests it; deleting one
// removes its chunks.
package watcher

import (
	"context"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/askitty/askitty/internal/core/domain"
	"github.com/askitty/askitty/internal/core/ports/driving"
	"github.com/askitty/askitty/internal/logger"
)

// DefaultDebounce is how long a path must stay quiet before it is ingested.
// Editors and download managers emit bursts of writes for a single save.
const DefaultDebounce = 500 * time.Millisecond

// DefaultExtensions are the file types picked up from the watched directory.
var DefaultExtensions = []string{".pdf", ".docx", ".txt", ".md", ".log"}

// Deleter removes a document's chunks. driven.ChunkStore satisfies it.
type Deleter interface {
	DeleteDocument(ctx context.Context, documentID string) error
}

// KeyFunc converts a filesystem path into the storage key it is ingested
// under.
type KeyFunc func(path string) (string, error)

// Config holds watcher configuration.
type Config struct {
	// Dir is the directory to watch (required).
	Dir string

	// KeyFor maps watched paths to storage keys (required).
	KeyFor KeyFunc

	// Extensions filters which files are picked up (default: DefaultExtensions).
	Extensions []string

	// Debounce is the quiet period before ingesting (default: DefaultDebounce).
	Debounce time.Duration
}

// Watcher monitors a drop directory and drives ingestion.
type Watcher struct {
	ingest     driving.IngestService
	deleter    Deleter
	dir        string
	keyFor     KeyFunc
	extensions []string
	debounce   time.Duration

	fs *fsnotify.Watcher

	mu      sync.Mutex
	pending map[string]*time.Timer
}

// New creates a watcher. deleter may be nil to leave chunks of removed
// files in place.
func New(ingest driving.IngestService, deleter Deleter, cfg Config) (*Watcher, error) {
	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	exts := cfg.Extensions
	if len(exts) == 0 {
		exts = DefaultExtensions
	}
	debounce := cfg.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	return &Watcher{
		ingest:     ingest,
		deleter:    deleter,
		dir:        cfg.Dir,
		keyFor:     cfg.KeyFor,
		extensions: exts,
		debounce:   debounce,
		fs:         fs,
		pending:    make(map[string]*time.Timer),
	}, nil
}

// Run watches the directory until the context is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	if err := w.fs.Add(w.dir); err != nil {
		return err
	}
	logger.Info("Watching %s", w.dir)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			w.handleEvent(ctx, event)
		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Watch error: %v", err)
		}
	}
}

// Close stops the underlying watcher and cancels pending ingestions.
func (w *Watcher) Close() error {
	w.mu.Lock()
	for path, timer := range w.pending {
		timer.Stop()
		delete(w.pending, path)
	}
	w.mu.Unlock()
	return w.fs.Close()
}

func (w *Watcher) handleEvent(ctx context.Context, event fsnotify.Event) {
	if !w.watched(event.Name) {
		return
	}

	switch {
	case event.Op&(fsnotify.Create|fsnotify.Write) != 0:
		w.scheduleIngest(ctx, event.Name)
	case event.Op&(fsnotify.Remove|fsnotify.Rename) != 0:
		w.cancelPending(event.Name)
		w.remove(ctx, event.Name)
	}
}

// scheduleIngest (re)arms the debounce timer for the path.
func (w *Watcher) scheduleIngest(ctx context.Context, path string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if timer, ok := w.pending[path]; ok {
		timer.Stop()
	}
	w.pending[path] = time.AfterFunc(w.debounce, func() {
		w.mu.Lock()
		delete(w.pending, path)
		w.mu.Unlock()

		key, err := w.keyFor(path)
		if err != nil {
			logger.Warn("Skipping %s: %v", path, err)
			return
		}
		if _, err := w.ingest.IngestObject(ctx, key); err != nil {
			logger.Warn("Ingest %s failed: %v", key, err)
		}
	})
}

func (w *Watcher) cancelPending(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if timer, ok := w.pending[path]; ok {
		timer.Stop()
		delete(w.pending, path)
	}
}

func (w *Watcher) remove(ctx context.Context, path string) {
	if w.deleter == nil {
		return
	}
	key, err := w.keyFor(path)
	if err != nil {
		return
	}
	docID := domain.DocumentID(key)
	if err := w.deleter.DeleteDocument(ctx, docID); err != nil {
		logger.Warn("Remove chunks for %s failed: %v", docID, err)
		return
	}
	logger.Info("Removed chunks for %s", docID)
}

func (w *Watcher) watched(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range w.extensions {
		if ext == e {
			return true
		}
	}
	return false
}
