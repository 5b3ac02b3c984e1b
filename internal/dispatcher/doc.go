// Package dispatcher routes intercepted signals to the stage containers
// registered for their kind and decides whether the originating hardware
// event is swallowed.
//
// # Routing
//
// Containers are registered per signal kind. RegisterContainer registers a
// container for every kind its stages can match. Within a kind, containers
// are evaluated in registration order.
//
// # Dispatch
//
// Dispatch is called by the hook thread once per event:
//
//  1. If the signal's kind is disabled, it returns false without matching.
//  2. Every container registered for the kind is advanced with the signal.
//  3. A container that completes is reported to the Notifier and reset.
//  4. The result is true if any container asked for blocking.
//
// A container that panics is logged, reset and skipped; the remaining
// containers are still evaluated.
//
// # Concurrency
//
// The route table is an immutable snapshot behind an atomic pointer.
// Register, Unregister and SetEnabled serialize on a mutex and publish a new
// snapshot. Dispatch holds its own mutex, so containers are never advanced
// concurrently even if more than one goroutine dispatches. A container
// unregistered while a dispatch is in flight is reset when that dispatch
// returns, so a notifier may unregister from inside Dispatch. Calling
// Dispatch from inside Dispatch still deadlocks.
//
// Completion delivery is asynchronous: the Notifier is expected to queue
// the notification and return immediately (see trigger.Pool).
//
// # Usage
//
//	d := dispatcher.New(dispatcher.DefaultConfig(), dispatcher.WithNotifier(pool))
//	if err := d.RegisterContainer(c); err != nil {
//	    return err
//	}
//	block := d.Dispatch(sig, mods)
package dispatcher
