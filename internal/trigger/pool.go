package trigger

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
)

// Pool runs a handler for queued notifications on a fixed set of workers.
type Pool struct {
	handler Handler

	queueSize   int
	workerCount int
	timeout     time.Duration

	logger       *slog.Logger
	panicHandler PanicHandler

	// mu guards queue creation and closing against Notify.
	mu      sync.RWMutex
	queue   chan Notification
	running atomic.Bool
	wg      sync.WaitGroup

	enqueued    atomic.Uint64
	processed   atomic.Uint64
	succeeded   atomic.Uint64
	failed      atomic.Uint64
	panicked    atomic.Uint64
	dropped     atomic.Uint64
	timedOut    atomic.Uint64
	totalTimeNs atomic.Int64
}

// PoolOption configures a Pool.
type PoolOption func(*Pool)

// WithQueueSize sets the queue capacity.
func WithQueueSize(size int) PoolOption {
	return func(p *Pool) {
		if size > 0 {
			p.queueSize = size
		}
	}
}

// WithWorkerCount sets the number of worker goroutines.
func WithWorkerCount(count int) PoolOption {
	return func(p *Pool) {
		if count > 0 {
			p.workerCount = count
		}
	}
}

// WithTimeout sets the handler timeout. Zero disables it.
func WithTimeout(timeout time.Duration) PoolOption {
	return func(p *Pool) {
		p.timeout = timeout
	}
}

// WithPanicHandler sets a callback for handler panics.
func WithPanicHandler(h PanicHandler) PoolOption {
	return func(p *Pool) {
		p.panicHandler = h
	}
}

// WithLogger sets the logger used to report failed handlers.
func WithLogger(l *slog.Logger) PoolOption {
	return func(p *Pool) {
		if l != nil {
			p.logger = l
		}
	}
}

// NewPool creates a pool that runs h for every notification.
func NewPool(h Handler, opts ...PoolOption) *Pool {
	p := &Pool{
		handler:     h,
		queueSize:   256,
		workerCount: 4,
		timeout:     5 * time.Second,
		logger:      slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Start starts the workers.
func (p *Pool) Start() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.running.Load() {
		return ErrAlreadyRunning
	}

	p.queue = make(chan Notification, p.queueSize)
	p.running.Store(true)

	for range p.workerCount {
		p.wg.Add(1)
		go p.worker(p.queue)
	}
	return nil
}

// Stop stops accepting notifications and waits for queued ones to finish
// or for ctx to be done.
func (p *Pool) Stop(ctx context.Context) error {
	p.mu.Lock()
	if !p.running.Load() {
		p.mu.Unlock()
		return ErrNotRunning
	}
	p.running.Store(false)
	close(p.queue)
	p.mu.Unlock()

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Notify queues a notification. It never blocks.
func (p *Pool) Notify(n Notification) error {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if !p.running.Load() {
		return ErrNotRunning
	}

	select {
	case p.queue <- n:
		p.enqueued.Add(1)
		return nil
	default:
		p.dropped.Add(1)
		return ErrQueueFull
	}
}

func (p *Pool) worker(queue <-chan Notification) {
	defer p.wg.Done()

	executor := NewExecutor(WithExecutorPanicHandler(p.onPanic))
	for n := range queue {
		p.run(executor, n)
	}
}

func (p *Pool) run(executor *Executor, n Notification) {
	p.processed.Add(1)

	result := executor.ExecuteWithTimeout(context.Background(), n, p.handler, p.timeout)
	p.totalTimeNs.Add(result.Duration.Nanoseconds())

	switch {
	case result.Panicked:
		p.panicked.Add(1)
	case result.Error != nil:
		if errors.Is(result.Error, context.DeadlineExceeded) {
			p.timedOut.Add(1)
		}
		p.failed.Add(1)
		p.logger.Warn("trigger handler failed", "container", n.Name, "error", result.Error)
	default:
		p.succeeded.Add(1)
	}
}

func (p *Pool) onPanic(n Notification, v any, stack []byte) {
	p.logger.Error("trigger handler panicked", "container", n.Name, "panic", v)
	if p.panicHandler != nil {
		p.panicHandler(n, v, stack)
	}
}

// IsRunning returns true if the pool accepts notifications.
func (p *Pool) IsRunning() bool {
	return p.running.Load()
}

// QueueDepth returns the number of queued notifications.
func (p *Pool) QueueDepth() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if !p.running.Load() {
		return 0
	}
	return len(p.queue)
}

// PoolStats contains statistics for a pool.
type PoolStats struct {
	// Enqueued is the number of accepted notifications.
	Enqueued uint64

	// Processed is the number of notifications handled so far.
	Processed uint64

	// Succeeded is the number of successful handler runs.
	Succeeded uint64

	// Failed is the number of handler runs that returned errors.
	Failed uint64

	// Panicked is the number of handler runs that panicked.
	Panicked uint64

	// Dropped is the number of notifications refused on a full queue.
	Dropped uint64

	// TimedOut is the number of handler runs that hit the timeout.
	TimedOut uint64

	// QueueDepth is the number of notifications waiting.
	QueueDepth int

	// AvgDuration is the average handler run time.
	AvgDuration time.Duration
}

// Stats returns pool statistics.
func (p *Pool) Stats() PoolStats {
	processed := p.processed.Load()
	var avg time.Duration
	if processed > 0 {
		avg = time.Duration(p.totalTimeNs.Load() / int64(processed))
	}
	return PoolStats{
		Enqueued:    p.enqueued.Load(),
		Processed:   processed,
		Succeeded:   p.succeeded.Load(),
		Failed:      p.failed.Load(),
		Panicked:    p.panicked.Load(),
		Dropped:     p.dropped.Load(),
		TimedOut:    p.timedOut.Load(),
		QueueDepth:  p.QueueDepth(),
		AvgDuration: avg,
	}
}
