// Package watch re-parses translation catalogs as they change on
// disk, debouncing editor save bursts into single events.
package watch

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"

	"github.com/c360studio/docloc/catalog"
	"github.com/c360studio/docloc/format"
)

// Config configures the catalog watcher.
type Config struct {
	// Root is the directory to watch recursively.
	Root string

	// Globs are doublestar patterns (relative to Root) selecting the
	// catalog files of interest. Empty means all .po files.
	Globs []string

	// DebounceDelay is how long to wait for more changes before
	// processing.
	DebounceDelay time.Duration

	// Logger for logging events.
	Logger *slog.Logger
}

// Operation indicates the type of file operation.
type Operation string

const (
	OpCreate Operation = "create"
	OpModify Operation = "modify"
	OpDelete Operation = "delete"
)

// Event represents one catalog change.
type Event struct {
	// Path is the catalog path relative to the watch root.
	Path string

	// Operation is the type of change.
	Operation Operation

	// File is the re-parsed catalog (nil for delete operations and
	// parse failures).
	File *catalog.File

	// Err holds the parse error, if parsing failed.
	Err error
}

// Watcher watches catalog files and emits re-parsed catalogs.
type Watcher struct {
	config  Config
	watcher *fsnotify.Watcher
	logger  *slog.Logger

	// Debouncing: collect changes before processing.
	pendingMu sync.Mutex
	pending   map[string]fsnotify.Op

	// Content hashes suppress events for no-op rewrites.
	hashMu sync.RWMutex
	hashes map[string]string

	events chan Event
}

// New creates a catalog watcher.
func New(config Config) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if config.DebounceDelay == 0 {
		config.DebounceDelay = 100 * time.Millisecond
	}
	if len(config.Globs) == 0 {
		config.Globs = []string{"**/*.po"}
	}

	return &Watcher{
		config:  config,
		watcher: fsw,
		logger:  logger,
		pending: make(map[string]fsnotify.Op),
		hashes:  make(map[string]string),
		events:  make(chan Event, 100),
	}, nil
}

// Events returns the channel of catalog events.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Start begins watching the root for catalog changes.
func (w *Watcher) Start(ctx context.Context) error {
	if err := w.addWatchesRecursive(w.config.Root); err != nil {
		return err
	}

	// The processing goroutine owns the event channel: closing it
	// from the sending side cannot race an in-flight emit.
	go func() {
		defer close(w.events)
		w.processEvents(ctx)
	}()

	w.logger.Info("Catalog watcher started",
		"root", w.config.Root,
		"globs", strings.Join(w.config.Globs, ","),
		"debounce", w.config.DebounceDelay)
	return nil
}

// Stop stops the watcher. The event channel is closed by the
// processing goroutine once it observes the shutdown, so pending
// receives drain rather than panic.
func (w *Watcher) Stop() error {
	return w.watcher.Close()
}

// matches reports whether a path (relative to the root) selects a
// watched catalog.
func (w *Watcher) matches(relPath string) bool {
	relPath = filepath.ToSlash(relPath)
	for _, glob := range w.config.Globs {
		if ok, err := doublestar.Match(glob, relPath); err == nil && ok {
			return true
		}
	}
	return false
}

// addWatchesRecursive adds watches to all directories under root.
func (w *Watcher) addWatchesRecursive(root string) error {
	return filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			return nil
		}
		base := filepath.Base(path)
		if path != root && strings.HasPrefix(base, ".") {
			return filepath.SkipDir
		}
		if err := w.watcher.Add(path); err != nil {
			w.logger.Warn("Failed to watch directory", "path", path, "error", err)
		} else {
			w.logger.Debug("Watching directory", "path", path)
		}
		return nil
	})
}

// processEvents handles fsnotify events with debouncing.
func (w *Watcher) processEvents(ctx context.Context) {
	ticker := time.NewTicker(w.config.DebounceDelay)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleFSEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("Watcher error", "error", err)

		case <-ticker.C:
			w.flushPending(ctx)
		}
	}
}

// handleFSEvent processes a single fsnotify event.
func (w *Watcher) handleFSEvent(event fsnotify.Event) {
	path := event.Name

	relPath, err := filepath.Rel(w.config.Root, path)
	if err != nil || !w.matches(relPath) {
		// Directory creation needs a new watch even when the path
		// itself is not a catalog.
		if event.Has(fsnotify.Create) {
			if info, err := os.Stat(path); err == nil && info.IsDir() {
				w.handleNewDirectory(path)
			}
		}
		return
	}

	// Ops accumulate so a create followed by a write within one
	// debounce window still classifies as a create.
	w.pendingMu.Lock()
	w.pending[path] |= event.Op
	w.pendingMu.Unlock()

	w.logger.Debug("Catalog change detected",
		"path", relPath,
		"op", event.Op.String())
}

// handleNewDirectory adds a watch to a newly created directory.
func (w *Watcher) handleNewDirectory(path string) {
	if strings.HasPrefix(filepath.Base(path), ".") {
		return
	}
	if err := w.watcher.Add(path); err != nil {
		w.logger.Warn("Failed to watch new directory", "path", path, "error", err)
	} else {
		w.logger.Debug("Added watch for new directory", "path", path)
	}
}

// flushPending processes accumulated changes.
func (w *Watcher) flushPending(ctx context.Context) {
	w.pendingMu.Lock()
	if len(w.pending) == 0 {
		w.pendingMu.Unlock()
		return
	}
	batch := w.pending
	w.pending = make(map[string]fsnotify.Op)
	w.pendingMu.Unlock()

	for path, op := range batch {
		select {
		case <-ctx.Done():
			return
		default:
		}
		w.processChange(path, op)
	}
}

// processChange re-parses one changed catalog and emits an event.
func (w *Watcher) processChange(path string, op fsnotify.Op) {
	relPath, err := filepath.Rel(w.config.Root, path)
	if err != nil {
		relPath = path
	}

	if op.Has(fsnotify.Remove) || op.Has(fsnotify.Rename) {
		if _, statErr := os.Stat(path); os.IsNotExist(statErr) {
			w.hashMu.Lock()
			delete(w.hashes, path)
			w.hashMu.Unlock()
			w.emit(Event{Path: relPath, Operation: OpDelete})
			return
		}
	}

	codec, err := format.DefaultRegistry.ByPath(path)
	if err != nil {
		w.logger.Warn("No codec for catalog", "path", relPath, "error", err)
		return
	}

	content, err := os.ReadFile(path)
	if err != nil {
		w.logger.Warn("Failed to read catalog", "path", relPath, "error", err)
		return
	}

	hash := contentHash(content)
	w.hashMu.RLock()
	prev, seen := w.hashes[path]
	w.hashMu.RUnlock()
	if seen && prev == hash {
		return
	}
	w.hashMu.Lock()
	w.hashes[path] = hash
	w.hashMu.Unlock()

	operation := OpModify
	if !seen && op.Has(fsnotify.Create) {
		operation = OpCreate
	}

	file, parseErr := codec.Decode(bytes.NewReader(content))
	if parseErr != nil {
		w.logger.Warn("Catalog parse failed", "path", relPath, "error", parseErr)
	}
	w.emit(Event{Path: relPath, Operation: operation, File: file, Err: parseErr})
}

func (w *Watcher) emit(event Event) {
	select {
	case w.events <- event:
	default:
		w.logger.Warn("Event channel full, dropping event", "path", event.Path)
	}
}

func contentHash(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])
}
