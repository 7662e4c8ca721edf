// Package shutdown installs the process-wide signal handler and
// normal-exit hook that together guarantee every supervised engine is
// reaped on any plausible exit path (spec.md §4.5). Go has no direct
// equivalent of Python's atexit; the combination of signal.Notify and a
// deferred call in main() reproduces the same guarantee.
package shutdown

import (
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/wilson-urdaneta/dylangames-mcp-chess-engine/internal/engine"
	"github.com/wilson-urdaneta/dylangames-mcp-chess-engine/internal/logging"
)

// Coordinator installs the signal handler exactly once and exposes a
// Shutdown method idempotent against repeated delivery, wired to both
// the signal handler and main()'s deferred normal-exit hook.
type Coordinator struct {
	registry *engine.Registry

	once  sync.Once
	sigCh chan os.Signal
	done  chan struct{}
}

// New returns a Coordinator that shuts down registry's instances.
func New(registry *engine.Registry) *Coordinator {
	return &Coordinator{
		registry: registry,
		sigCh:    make(chan os.Signal, 1),
		done:     make(chan struct{}),
	}
}

// Install starts the signal-handling goroutine. It must be called
// exactly once per process.
func (c *Coordinator) Install() {
	signal.Notify(c.sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig, ok := <-c.sigCh
		if !ok {
			return
		}
		logging.Logger.Infof("received signal %v, shutting down", sig)
		c.Shutdown()
		os.Exit(0)
	}()
}

// Shutdown runs the registry's shutdown_all exactly once, regardless of
// how many times or from how many call sites (signal handler, deferred
// main() hook) it is invoked.
func (c *Coordinator) Shutdown() {
	c.once.Do(func() {
		c.registry.ShutdownAll()
		close(c.done)
	})
}
