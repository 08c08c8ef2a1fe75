// Package shutdown ties command lifetimes to process signals.
//
// A Handler hands out contexts cancelled on SIGINT or SIGTERM and runs
// registered cleanup hooks, newest first, when the command finishes:
//
//	h := shutdown.NewHandler(5 * time.Second)
//	ctx := h.NotifyContext(context.Background())
//	h.OnShutdown(watcher.Close)
//	defer h.Shutdown()
package shutdown
