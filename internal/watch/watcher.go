package watch

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher watches individual files for changes.
type Watcher struct {
	fsw    *fsnotify.Watcher
	deb    *debouncer
	logger *slog.Logger

	delay      time.Duration
	bufferSize int

	mu     sync.RWMutex
	files  map[string]bool
	dirs   map[string]int // directory -> watched files in it
	events chan Event
	closed bool

	closeCh  chan struct{}
	closedWg sync.WaitGroup

	dropped atomic.Uint64
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDelay sets the debounce delay.
func WithDelay(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.delay = d
		}
	}
}

// WithBufferSize sets the event channel capacity.
func WithBufferSize(n int) Option {
	return func(w *Watcher) {
		if n > 0 {
			w.bufferSize = n
		}
	}
}

// WithLogger sets the logger for watcher errors.
func WithLogger(l *slog.Logger) Option {
	return func(w *Watcher) {
		if l != nil {
			w.logger = l
		}
	}
}

// New creates a watcher with no files.
func New(opts ...Option) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch: %w", err)
	}

	w := &Watcher{
		fsw:        fsw,
		logger:     slog.New(slog.DiscardHandler),
		delay:      100 * time.Millisecond,
		bufferSize: 16,
		files:      make(map[string]bool),
		dirs:       make(map[string]int),
		closeCh:    make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	w.events = make(chan Event, w.bufferSize)
	w.deb = newDebouncer(w.delay, w.emit)

	w.closedWg.Add(1)
	go w.processLoop()
	return w, nil
}

// Add starts watching a file. The file's directory must exist; the file
// itself may be created later.
func (w *Watcher) Add(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return ErrWatcherClosed
	}
	if w.files[abs] {
		return fmt.Errorf("%w: %s", ErrAlreadyWatching, abs)
	}

	dir := filepath.Dir(abs)
	if w.dirs[dir] == 0 {
		if err := w.fsw.Add(dir); err != nil {
			return fmt.Errorf("watch: %s: %w", dir, err)
		}
	}
	w.dirs[dir]++
	w.files[abs] = true
	return nil
}

// Remove stops watching a file. It returns false if it was not watched.
func (w *Watcher) Remove(path string) bool {
	abs, err := filepath.Abs(path)
	if err != nil {
		return false
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed || !w.files[abs] {
		return false
	}
	delete(w.files, abs)

	dir := filepath.Dir(abs)
	w.dirs[dir]--
	if w.dirs[dir] == 0 {
		delete(w.dirs, dir)
		if err := w.fsw.Remove(dir); err != nil {
			w.logger.Debug("watch remove failed", "dir", dir, "error", err)
		}
	}
	return true
}

// Files returns the watched files, sorted.
func (w *Watcher) Files() []string {
	w.mu.RLock()
	defer w.mu.RUnlock()

	files := make([]string, 0, len(w.files))
	for f := range w.files {
		files = append(files, f)
	}
	slices.Sort(files)
	return files
}

// Events returns the debounced event channel. It is closed by Close.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Dropped returns the number of events lost to a full channel.
func (w *Watcher) Dropped() uint64 {
	return w.dropped.Load()
}

// Run calls fn for every event until ctx is done or the watcher closes.
func (w *Watcher) Run(ctx context.Context, fn func(Event)) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case e, ok := <-w.events:
			if !ok {
				return ErrWatcherClosed
			}
			fn(e)
		}
	}
}

// Close stops the watcher and closes the event channel.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	close(w.closeCh)
	w.mu.Unlock()

	w.closedWg.Wait()
	w.deb.stop()

	w.mu.Lock()
	close(w.events)
	w.mu.Unlock()

	return w.fsw.Close()
}

func (w *Watcher) processLoop() {
	defer w.closedWg.Done()

	for {
		select {
		case <-w.closeCh:
			return

		case fsEvent, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			w.handle(fsEvent)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.logger.Warn("watch error", "error", err)
		}
	}
}

func (w *Watcher) handle(fsEvent fsnotify.Event) {
	op := convertOp(fsEvent.Op)
	if op == 0 {
		return
	}
	name, err := filepath.Abs(fsEvent.Name)
	if err != nil {
		return
	}

	w.mu.RLock()
	watched := w.files[name]
	w.mu.RUnlock()

	if watched {
		w.deb.add(Event{Path: name, Op: op, Time: time.Now()})
	}
}

// emit delivers a debounced event without blocking.
func (w *Watcher) emit(e Event) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	if w.closed {
		return
	}
	select {
	case w.events <- e:
	default:
		w.dropped.Add(1)
		w.logger.Warn("watch event dropped", "path", e.Path)
	}
}
