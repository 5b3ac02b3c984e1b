package dispatcher

import (
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dshills/stagehook/internal/input/key"
	"github.com/dshills/stagehook/internal/signal"
	"github.com/dshills/stagehook/internal/trigger"
)

// Notifier receives completion notifications. Notify must not block the
// dispatching goroutine; an error means the notification was dropped.
type Notifier interface {
	Notify(n trigger.Notification) error
}

// Dispatcher routes signals to registered containers.
type Dispatcher struct {
	config   Config
	logger   *slog.Logger
	notifier Notifier
	metrics  *Metrics
	now      func() time.Time

	// writeMu serializes writers of routes.
	writeMu sync.Mutex
	routes  atomic.Pointer[table]

	// dispatchMu guarantees one in-flight dispatch.
	dispatchMu sync.Mutex

	// detached holds unregistered containers waiting for the dispatch
	// lock to be reset. Every holder of dispatchMu drains it on release.
	detachedMu sync.Mutex
	detached   []Container
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithNotifier sets where completions are reported.
func WithNotifier(n Notifier) Option {
	return func(d *Dispatcher) {
		d.notifier = n
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(d *Dispatcher) {
		if l != nil {
			d.logger = l
		}
	}
}

// WithClock sets the time source used to stamp notifications.
func WithClock(now func() time.Time) Option {
	return func(d *Dispatcher) {
		if now != nil {
			d.now = now
		}
	}
}

// New creates a dispatcher.
func New(config Config, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		config: config,
		logger: slog.New(slog.DiscardHandler),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(d)
	}
	if config.EnableMetrics {
		d.metrics = NewMetrics()
	}
	d.routes.Store(newTable(config.DisabledKinds))
	return d
}

// NewWithDefaults creates a dispatcher with the default configuration.
func NewWithDefaults(opts ...Option) *Dispatcher {
	return New(DefaultConfig(), opts...)
}

// Config returns the dispatcher configuration.
func (d *Dispatcher) Config() Config {
	return d.config
}

// Metrics returns the metrics collector, or nil if metrics are disabled.
func (d *Dispatcher) Metrics() *Metrics {
	return d.metrics
}

// Register adds a container to the dispatch set of one kind. Registering
// the same container twice for a kind is a no-op.
func (d *Dispatcher) Register(kind signal.Kind, c Container) error {
	if err := d.validate(c); err != nil {
		return err
	}
	if !kind.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidKind, kind)
	}

	d.writeMu.Lock()
	defer d.writeMu.Unlock()

	t := d.routes.Load().clone()
	if t.add(kind, c) {
		d.routes.Store(t)
		d.logger.Debug("container registered", "container", c.Name(), "id", c.ID(), "kind", kind)
	}
	return nil
}

// RegisterContainer adds a container to every kind it can match.
func (d *Dispatcher) RegisterContainer(c Container) error {
	if err := d.validate(c); err != nil {
		return err
	}
	kinds := c.Kinds()

	d.writeMu.Lock()
	defer d.writeMu.Unlock()

	t := d.routes.Load().clone()
	changed := false
	for _, kind := range kinds {
		if t.add(kind, c) {
			changed = true
		}
	}
	if changed {
		d.routes.Store(t)
		d.logger.Debug("container registered", "container", c.Name(), "id", c.ID(), "kinds", kinds)
	}
	return nil
}

func (d *Dispatcher) validate(c Container) error {
	if c == nil {
		d.logger.Error("container rejected", "error", ErrNilContainer)
		return ErrNilContainer
	}
	if err := c.Validate(); err != nil {
		d.logger.Error("container rejected", "container", c.Name(), "error", err)
		return err
	}
	return nil
}

// Unregister removes a container from one kind. It returns false if the
// container was not registered for that kind.
func (d *Dispatcher) Unregister(kind signal.Kind, c Container) bool {
	if c == nil || !kind.Valid() {
		return false
	}

	d.writeMu.Lock()
	t := d.routes.Load().clone()
	removed := t.remove(kind, c.ID())
	if removed {
		d.routes.Store(t)
	}
	orphaned := removed && !t.contains(c.ID())
	d.writeMu.Unlock()

	if orphaned {
		d.resetDetached(c)
	}
	return removed
}

// UnregisterContainer removes a container from every kind. It returns false
// if the container was not registered at all.
func (d *Dispatcher) UnregisterContainer(c Container) bool {
	if c == nil {
		return false
	}

	d.writeMu.Lock()
	t := d.routes.Load().clone()
	removed := false
	for _, kind := range signal.Kinds() {
		if t.remove(kind, c.ID()) {
			removed = true
		}
	}
	if removed {
		d.routes.Store(t)
	}
	d.writeMu.Unlock()

	if removed {
		d.resetDetached(c)
	}
	return removed
}

// resetDetached clears the progress of a container no longer routed, after
// any dispatch that might still hold it has finished. When a dispatch is in
// flight the reset is left to it, so a handler run inside Dispatch can
// unregister without waiting on itself.
func (d *Dispatcher) resetDetached(c Container) {
	d.detachedMu.Lock()
	d.detached = append(d.detached, c)
	d.detachedMu.Unlock()

	if d.dispatchMu.TryLock() {
		d.unlockDispatch()
	}
}

// unlockDispatch resets pending detached containers and releases
// dispatchMu. A container queued after the release is picked up here
// unless another holder already took the lock.
func (d *Dispatcher) unlockDispatch() {
	for {
		d.drainDetached()
		d.dispatchMu.Unlock()
		if !d.hasDetached() || !d.dispatchMu.TryLock() {
			return
		}
	}
}

func (d *Dispatcher) drainDetached() {
	d.detachedMu.Lock()
	pending := d.detached
	d.detached = nil
	d.detachedMu.Unlock()

	for _, c := range pending {
		d.resetQuietly(c)
		d.logger.Debug("container unregistered", "container", c.Name(), "id", c.ID())
	}
}

func (d *Dispatcher) hasDetached() bool {
	d.detachedMu.Lock()
	defer d.detachedMu.Unlock()
	return len(d.detached) > 0
}

// SetEnabled enables or disables dispatch for a kind.
func (d *Dispatcher) SetEnabled(kind signal.Kind, enabled bool) {
	if !kind.Valid() {
		return
	}

	d.writeMu.Lock()
	defer d.writeMu.Unlock()

	cur := d.routes.Load()
	if cur.routes[kind].disabled == !enabled {
		return
	}
	t := cur.clone()
	t.routes[kind].disabled = !enabled
	d.routes.Store(t)
}

// Enabled returns true if signals of kind are dispatched.
func (d *Dispatcher) Enabled(kind signal.Kind) bool {
	r := d.routes.Load().routes[kind]
	return r != nil && !r.disabled
}

// Containers returns the containers registered for kind, in dispatch order.
func (d *Dispatcher) Containers(kind signal.Kind) []Container {
	r := d.routes.Load().routes[kind]
	if r == nil {
		return nil
	}
	return slices.Clone(r.containers)
}

// Dispatch advances every container registered for the signal's kind and
// reports whether the originating event should be swallowed. A nil signal
// is routed as generic.
func (d *Dispatcher) Dispatch(sig signal.Signal, mods key.Modifier) bool {
	kind := signal.KindOf(sig)

	d.dispatchMu.Lock()
	defer d.unlockDispatch()

	r := d.routes.Load().routes[kind]
	if r == nil || r.disabled {
		if d.metrics != nil {
			d.metrics.RecordSuppressed(kind)
		}
		return false
	}

	var blocking bool
	for _, c := range r.containers {
		if d.step(c, kind, sig, mods) {
			blocking = true
		}
	}

	if d.metrics != nil {
		d.metrics.RecordDispatch(kind, blocking)
	}
	return blocking
}

// step advances one container, reporting completion and isolating panics.
func (d *Dispatcher) step(c Container, kind signal.Kind, sig signal.Signal, mods key.Modifier) (blocking bool) {
	if d.config.RecoverPanics {
		defer func() {
			if r := recover(); r != nil {
				blocking = false
				d.logger.Error("container panicked",
					"container", c.Name(), "id", c.ID(), "kind", kind, "panic", r)
				if d.metrics != nil {
					d.metrics.RecordPanic(kind)
				}
				d.resetQuietly(c)
			}
		}()
	}

	completed, blocking := c.Activate(sig, mods)
	if completed {
		d.complete(c, kind, sig, mods)
	}
	return blocking
}

// complete reports a completed container and resets it.
func (d *Dispatcher) complete(c Container, kind signal.Kind, sig signal.Signal, mods key.Modifier) {
	if d.metrics != nil {
		d.metrics.RecordCompletion(kind)
	}
	if d.notifier != nil {
		n := trigger.Notification{
			ContainerID: c.ID(),
			Name:        c.Name(),
			Signal:      sig,
			Mods:        mods,
			At:          d.now(),
		}
		if err := d.notifier.Notify(n); err != nil {
			d.logger.Warn("completion dropped", "container", c.Name(), "error", err)
			if d.metrics != nil {
				d.metrics.RecordDropped(kind)
			}
		}
	}
	c.Reset()
}

// resetQuietly resets a container that just panicked; a second panic is
// swallowed so the dispatch can continue.
func (d *Dispatcher) resetQuietly(c Container) {
	defer func() {
		if r := recover(); r != nil {
			d.logger.Error("container reset panicked", "container", c.Name(), "panic", r)
		}
	}()
	c.Reset()
}
