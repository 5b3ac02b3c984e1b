package watch

import (
	"sync"
	"time"
)

// debouncer coalesces events per path and emits them after delay of
// quiet.
type debouncer struct {
	delay time.Duration
	emit  func(Event)

	mu      sync.Mutex
	pending map[string]*pendingEvent
	stopped bool
}

type pendingEvent struct {
	event Event
	timer *time.Timer
}

func newDebouncer(delay time.Duration, emit func(Event)) *debouncer {
	return &debouncer{
		delay:   delay,
		emit:    emit,
		pending: make(map[string]*pendingEvent),
	}
}

// add merges e into the pending event for its path and restarts the
// path's timer.
func (d *debouncer) add(e Event) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}

	if p, ok := d.pending[e.Path]; ok {
		p.event.Op |= e.Op
		p.event.Time = e.Time
		p.timer.Reset(d.delay)
		return
	}

	p := &pendingEvent{event: e}
	p.timer = time.AfterFunc(d.delay, func() { d.fire(e.Path) })
	d.pending[e.Path] = p
}

func (d *debouncer) fire(path string) {
	d.mu.Lock()
	p, ok := d.pending[path]
	if ok {
		delete(d.pending, path)
	}
	stopped := d.stopped
	d.mu.Unlock()

	if ok && !stopped {
		d.emit(p.event)
	}
}

// len returns the number of pending paths.
func (d *debouncer) len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.pending)
}

// stop cancels every pending event.
func (d *debouncer) stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopped = true
	for path, p := range d.pending {
		p.timer.Stop()
		delete(d.pending, path)
	}
}
