// Package trigger delivers completion notifications from the dispatcher to
// the code that runs macros.
//
// The dispatcher runs on the hook thread and must never wait for a macro.
// Pool queues notifications on a bounded channel and runs a Handler on a
// fixed set of worker goroutines; Notify returns ErrQueueFull instead of
// blocking when the queue is at capacity.
//
// Handlers run through an Executor, which recovers panics, applies the
// configured timeout and reports a Result. Inline runs handlers on the
// caller's goroutine, which is what deterministic replays want.
//
// Router selects a handler by container name, and LuaHandler calls the
// on_trigger function of a sandboxed Lua script.
//
//	pool := trigger.NewPool(router, trigger.WithWorkerCount(2))
//	if err := pool.Start(); err != nil {
//	    return err
//	}
//	defer pool.Stop(ctx)
//	d := dispatcher.NewWithDefaults(dispatcher.WithNotifier(pool))
package trigger
