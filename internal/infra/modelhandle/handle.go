// Package modelhandle keeps one loaded model client per process.
package modelhandle

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
)

// Loader constructs a model client. It is called at most once per successful load.
type Loader[T any] func(ctx context.Context) (T, error)

// Handle lazily runs its loader on first use and reuses the value afterwards.
// Failed loads are not cached, so a later Get tries again.
type Handle[T any] struct {
	name   string
	load   Loader[T]
	logger *slog.Logger

	mu     sync.Mutex
	value  T
	loaded bool
}

// New builds a handle for the named model.
func New[T any](name string, load Loader[T], logger *slog.Logger) *Handle[T] {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handle[T]{name: name, load: load, logger: logger.With("component", "modelhandle", "model", name)}
}

// Ready wraps an already constructed value.
func Ready[T any](name string, value T) *Handle[T] {
	return &Handle[T]{name: name, value: value, loaded: true, logger: slog.Default()}
}

// Get returns the loaded value, loading it if needed. Concurrent callers share one load.
func (h *Handle[T]) Get(ctx context.Context) (T, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.loaded {
		return h.value, nil
	}
	var zero T
	if h.load == nil {
		return zero, fmt.Errorf("model %s has no loader", h.name)
	}
	if err := ctx.Err(); err != nil {
		return zero, err
	}
	h.logger.Info("loading model")
	value, err := h.load(ctx)
	if err != nil {
		h.logger.Error("model load failed", "error", err)
		return zero, fmt.Errorf("load model %s: %w", h.name, err)
	}
	h.value = value
	h.loaded = true
	h.logger.Info("model loaded")
	return value, nil
}

// Loaded reports whether the value is available without triggering a load.
func (h *Handle[T]) Loaded() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.loaded
}

// Name is the model name given at construction.
func (h *Handle[T]) Name() string {
	return h.name
}
