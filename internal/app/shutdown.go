package app

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"ekantipur-scraper/internal/observability"
)

// GracefulShutdown returns a context canceled on SIGINT/SIGTERM. Canceling it
// aborts the current browser call; the session is still closed by its owner.
func GracefulShutdown(parent context.Context, logger *observability.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		defer signal.Stop(sigChan)
		select {
		case sig := <-sigChan:
			logger.Warn("Shutdown signal received", "signal", sig.String())
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx, cancel
}
