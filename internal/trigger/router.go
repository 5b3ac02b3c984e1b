package trigger

import (
	"context"
	"fmt"
	"sync"
)

// Router dispatches notifications to handlers by container name.
type Router struct {
	mu       sync.RWMutex
	handlers map[string]Handler
	fallback Handler
}

// NewRouter creates an empty router.
func NewRouter() *Router {
	return &Router{handlers: make(map[string]Handler)}
}

// Route registers h for the named container, replacing any previous one.
func (r *Router) Route(name string, h Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers[name] = h
}

// RouteFunc registers a function for the named container.
func (r *Router) RouteFunc(name string, fn func(ctx context.Context, n Notification) error) {
	r.Route(name, HandlerFunc(fn))
}

// SetFallback sets the handler for names without a registration.
func (r *Router) SetFallback(h Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fallback = h
}

// Remove unregisters the handler for name.
func (r *Router) Remove(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.handlers, name)
}

// Lookup returns the handler for name, falling back if none is registered.
func (r *Router) Lookup(name string) Handler {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if h, ok := r.handlers[name]; ok {
		return h
	}
	return r.fallback
}

// Handle implements Handler.
func (r *Router) Handle(ctx context.Context, n Notification) error {
	h := r.Lookup(n.Name)
	if h == nil {
		return fmt.Errorf("%w for %q", ErrNoHandler, n.Name)
	}
	return h.Handle(ctx, n)
}
