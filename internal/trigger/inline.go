package trigger

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// Inline runs the handler on the notifying goroutine. It is meant for
// replays and tests, where delivery order must match dispatch order.
type Inline struct {
	handler  Handler
	executor *Executor
	timeout  time.Duration
	logger   *slog.Logger
}

// NewInline creates an inline notifier. The handler runs while the
// dispatcher holds its dispatch lock: it may register or unregister
// containers, but must not call Dispatch.
func NewInline(h Handler, timeout time.Duration, logger *slog.Logger) *Inline {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	in := &Inline{handler: h, timeout: timeout, logger: logger}
	in.executor = NewExecutor(WithExecutorPanicHandler(func(n Notification, v any, _ []byte) {
		in.logger.Error("trigger handler panicked", "container", n.Name, "panic", v)
	}))
	return in
}

// Notify runs the handler and returns its error. A panic is reported as
// an error.
func (in *Inline) Notify(n Notification) error {
	result := in.executor.ExecuteWithTimeout(context.Background(), n, in.handler, in.timeout)
	switch {
	case result.Panicked:
		return &PanicError{Value: result.PanicValue}
	case result.Error != nil:
		return result.Error
	}
	return nil
}

// PanicError reports a handler panic.
type PanicError struct {
	Value any
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("trigger: handler panicked: %v", e.Value)
}
