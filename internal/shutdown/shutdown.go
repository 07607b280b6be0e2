// Package shutdown turns interrupt signals into context cancellation.
package shutdown

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"sync"
	"syscall"
)

// Handler cancels its context when one of its signals arrives.
type Handler struct {
	ctx    context.Context
	cancel context.CancelFunc

	once     sync.Once
	sigChan  chan os.Signal
	signaled chan struct{}
}

// Config holds shutdown configuration.
type Config struct {
	Signals []os.Signal
}

// DefaultConfig listens for SIGINT and SIGTERM.
func DefaultConfig() Config {
	return Config{
		Signals: []os.Signal{syscall.SIGINT, syscall.SIGTERM},
	}
}

// New starts listening for cfg.Signals. The returned handler's context is
// derived from parent.
func New(parent context.Context, cfg Config) *Handler {
	if len(cfg.Signals) == 0 {
		cfg = DefaultConfig()
	}

	ctx, cancel := context.WithCancel(parent)
	h := &Handler{
		ctx:      ctx,
		cancel:   cancel,
		sigChan:  make(chan os.Signal, 1),
		signaled: make(chan struct{}),
	}

	signal.Notify(h.sigChan, cfg.Signals...)
	go h.listen()

	return h
}

func (h *Handler) listen() {
	select {
	case <-h.sigChan:
		h.trigger()
	case <-h.ctx.Done():
	}
}

// Context returns the context cancelled on interrupt.
func (h *Handler) Context() context.Context {
	return h.ctx
}

// trigger cancels the context and marks the handler interrupted.
func (h *Handler) trigger() {
	h.once.Do(func() {
		close(h.signaled)
		h.cancel()
	})
}

// Interrupted reports whether a signal cancelled the context.
func (h *Handler) Interrupted() bool {
	select {
	case <-h.signaled:
		return true
	default:
		return false
	}
}

// Stop stops listening for signals and releases the context.
func (h *Handler) Stop() {
	signal.Stop(h.sigChan)
	h.cancel()
}

// IsInterrupt reports whether err stems from a cancelled run.
func IsInterrupt(err error) bool {
	return errors.Is(err, context.Canceled)
}
