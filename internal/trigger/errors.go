package trigger

import "errors"

// Sentinel errors for the trigger package.
var (
	// ErrAlreadyRunning is returned when Start is called on a running pool.
	ErrAlreadyRunning = errors.New("trigger: pool is already running")

	// ErrNotRunning is returned when a stopped pool is used.
	ErrNotRunning = errors.New("trigger: pool is not running")

	// ErrQueueFull is returned when the queue cannot accept a notification.
	ErrQueueFull = errors.New("trigger: queue is full")

	// ErrNoHandler is returned by a Router without a matching handler.
	ErrNoHandler = errors.New("trigger: no handler")

	// ErrScriptClosed is returned by a closed LuaHandler.
	ErrScriptClosed = errors.New("trigger: script is closed")
)
