package watch

import "errors"

// Watcher errors.
var (
	// ErrWatcherClosed is returned when using a closed watcher.
	ErrWatcherClosed = errors.New("watch: watcher is closed")

	// ErrAlreadyWatching is returned when a file is added twice.
	ErrAlreadyWatching = errors.New("watch: already watching")
)
