// Package watcher reports changes to a single JSON document on disk.
//
// The directory holding the document is watched rather than the file
// itself, so a document replaced through a rename (as the store writes it)
// keeps being observed. Bursts of events are debounced into one
// notification.
package watcher

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	cfgerrors "github.com/conneroisu/jsonconf/internal/errors"
	"github.com/conneroisu/jsonconf/internal/logging"
)

// DefaultDelay is the debounce delay used when none is configured.
const DefaultDelay = 100 * time.Millisecond

// DocumentWatcher watches one document for changes.
type DocumentWatcher struct {
	path      string
	watcher   *fsnotify.Watcher
	debouncer *Debouncer
	handlers  []ChangeHandler
	logger    logging.Logger
	mutex     sync.RWMutex
	done      chan struct{}
	stopOnce  sync.Once
}

// ChangeEvent represents a change of the document
type ChangeEvent struct {
	Type    EventType
	Path    string
	ModTime time.Time
	Size    int64
}

// EventType represents the type of file change
type EventType int

const (
	EventTypeCreated EventType = iota
	EventTypeModified
	EventTypeDeleted
	EventTypeRenamed
)

// String returns the string representation of the EventType
func (e EventType) String() string {
	switch e {
	case EventTypeCreated:
		return "created"
	case EventTypeModified:
		return "modified"
	case EventTypeDeleted:
		return "deleted"
	case EventTypeRenamed:
		return "renamed"
	default:
		return "unknown"
	}
}

// ChangeHandler handles a debounced change
type ChangeHandler func(ctx context.Context, event ChangeEvent) error

// Option configures a DocumentWatcher.
type Option func(*DocumentWatcher)

// WithDelay sets the debounce delay.
func WithDelay(d time.Duration) Option {
	return func(w *DocumentWatcher) {
		w.debouncer.delay = d
	}
}

// WithLogger sets the logger.
func WithLogger(logger logging.Logger) Option {
	return func(w *DocumentWatcher) {
		w.logger = logger
	}
}

// New creates a watcher for the document at path. Watching begins with
// Start.
func New(path string, opts ...Option) (*DocumentWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, cfgerrors.WrapIO(err, cfgerrors.ErrCodeWatchFailed, "cannot resolve document path", path)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, cfgerrors.WrapIO(err, cfgerrors.ErrCodeWatchFailed, "cannot create watcher", path)
	}

	w := &DocumentWatcher{
		path:      abs,
		watcher:   fsw,
		debouncer: NewDebouncer(DefaultDelay),
		logger:    logging.Nop(),
		done:      make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	w.logger = w.logger.WithComponent("watcher")

	return w, nil
}

// Path returns the absolute path of the watched document.
func (w *DocumentWatcher) Path() string {
	return w.path
}

// AddHandler adds a change handler
func (w *DocumentWatcher) AddHandler(handler ChangeHandler) {
	w.mutex.Lock()
	defer w.mutex.Unlock()
	w.handlers = append(w.handlers, handler)
}

// Start begins watching. The watcher runs until ctx is done or Stop is
// called. The document's directory must exist.
func (w *DocumentWatcher) Start(ctx context.Context) error {
	dir := filepath.Dir(w.path)
	if err := w.watcher.Add(dir); err != nil {
		return cfgerrors.WrapIO(err, cfgerrors.ErrCodeWatchFailed, "cannot watch directory", dir)
	}

	go w.debouncer.start(ctx, w.done)
	go w.processEvents(ctx)
	go w.watchLoop(ctx)

	w.logger.Debug(ctx, "Watching document", "path", w.path, "delay", w.debouncer.delay.String())
	return nil
}

// Stop stops the watcher and cleans up resources
func (w *DocumentWatcher) Stop() error {
	var err error
	w.stopOnce.Do(func() {
		close(w.done)
		w.debouncer.stop()
		err = w.watcher.Close()
	})
	return err
}

func (w *DocumentWatcher) watchLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.done:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleFsnotifyEvent(event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn(ctx, err, "File watcher error", "path", w.path)
		}
	}
}

func (w *DocumentWatcher) handleFsnotifyEvent(event fsnotify.Event) {
	if filepath.Clean(event.Name) != w.path {
		return
	}

	changeEvent := ChangeEvent{
		Type: classify(event.Op),
		Path: w.path,
	}
	if info, err := os.Stat(w.path); err == nil {
		changeEvent.ModTime = info.ModTime()
		changeEvent.Size = info.Size()
	}

	w.debouncer.push(changeEvent)
}

func classify(op fsnotify.Op) EventType {
	switch {
	case op.Has(fsnotify.Create):
		return EventTypeCreated
	case op.Has(fsnotify.Write):
		return EventTypeModified
	case op.Has(fsnotify.Remove):
		return EventTypeDeleted
	case op.Has(fsnotify.Rename):
		return EventTypeRenamed
	default:
		return EventTypeModified
	}
}

func (w *DocumentWatcher) processEvents(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.done:
			return
		case event := <-w.debouncer.output:
			w.mutex.RLock()
			handlers := w.handlers
			w.mutex.RUnlock()

			for _, handler := range handlers {
				if err := handler(ctx, event); err != nil {
					w.logger.Error(ctx, err, "Change handler failed", "path", event.Path, "event", event.Type.String())
				}
			}
		}
	}
}
