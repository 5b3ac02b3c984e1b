package dispatcher

import (
	"sync"

	"github.com/dshills/stagehook/internal/signal"
)

// Metrics collects dispatch statistics per signal kind.
type Metrics struct {
	mu    sync.RWMutex
	kinds map[signal.Kind]*KindMetrics
}

// KindMetrics holds counters for one signal kind.
type KindMetrics struct {
	Kind signal.Kind

	// Dispatches counts signals matched against containers.
	Dispatches uint64

	// Suppressed counts signals dropped because the kind was disabled.
	Suppressed uint64

	// Blocked counts dispatches that returned true.
	Blocked uint64

	// Completions counts containers that completed.
	Completions uint64

	// Panics counts recovered container panics.
	Panics uint64

	// Dropped counts completions the notifier refused.
	Dropped uint64
}

// NewMetrics creates a new metrics collector.
func NewMetrics() *Metrics {
	return &Metrics{
		kinds: make(map[signal.Kind]*KindMetrics),
	}
}

func (m *Metrics) get(kind signal.Kind) *KindMetrics {
	km := m.kinds[kind]
	if km == nil {
		km = &KindMetrics{Kind: kind}
		m.kinds[kind] = km
	}
	return km
}

// RecordDispatch records one dispatch and its blocking decision.
func (m *Metrics) RecordDispatch(kind signal.Kind, blocked bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	km := m.get(kind)
	km.Dispatches++
	if blocked {
		km.Blocked++
	}
}

// RecordSuppressed records a signal of a disabled kind.
func (m *Metrics) RecordSuppressed(kind signal.Kind) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.get(kind).Suppressed++
}

// RecordCompletion records a completed container.
func (m *Metrics) RecordCompletion(kind signal.Kind) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.get(kind).Completions++
}

// RecordPanic records a recovered container panic.
func (m *Metrics) RecordPanic(kind signal.Kind) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.get(kind).Panics++
}

// RecordDropped records a notification the notifier refused.
func (m *Metrics) RecordDropped(kind signal.Kind) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.get(kind).Dropped++
}

// KindStats returns a copy of the counters for a kind.
func (m *Metrics) KindStats(kind signal.Kind) KindMetrics {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if km := m.kinds[kind]; km != nil {
		return *km
	}
	return KindMetrics{Kind: kind}
}

// All returns a copy of the counters for every kind seen, in kind order.
func (m *Metrics) All() []KindMetrics {
	m.mu.RLock()
	defer m.mu.RUnlock()

	all := make([]KindMetrics, 0, len(m.kinds))
	for _, kind := range signal.Kinds() {
		if km := m.kinds[kind]; km != nil {
			all = append(all, *km)
		}
	}
	return all
}

// TotalDispatches returns the number of dispatches across all kinds.
func (m *Metrics) TotalDispatches() uint64 {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var n uint64
	for _, km := range m.kinds {
		n += km.Dispatches
	}
	return n
}

// TotalPanics returns the number of recovered panics across all kinds.
func (m *Metrics) TotalPanics() uint64 {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var n uint64
	for _, km := range m.kinds {
		n += km.Panics
	}
	return n
}

// Reset clears all metrics.
func (m *Metrics) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.kinds = make(map[signal.Kind]*KindMetrics)
}
