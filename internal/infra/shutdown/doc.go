// Package shutdown stops long-running commands on SIGINT or SIGTERM.
//
// Usage:
//
//	h := shutdown.NewHandler(5 * time.Second)
//	h.OnShutdown(func(ctx context.Context) error { return srv.Shutdown(ctx) })
//	err := h.Wait(ctx) // returns after a signal or ctx cancellation
package shutdown
