// Package ratelimit provides a keyed fixed-window request limiter. Counters
// live behind the CounterStore interface so a multi-process deployment can
// swap the in-memory store for a shared Redis store.
package ratelimit

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Result reports the outcome of a single Check call.
type Result struct {
	Allowed   bool
	Remaining int
	ResetAt   time.Time
}

// CounterStore persists one counter per key inside a fixed window.
type CounterStore interface {
	// Incr advances the counter for key, opening a fresh window of the given
	// length if none is live, and returns the resulting count and the
	// window's reset time.
	Incr(ctx context.Context, key string, window time.Duration) (int, time.Time, error)
}

// Limiter applies a cap of limit requests per window to each key.
type Limiter struct {
	store  CounterStore
	limit  int
	window time.Duration
	logger *zap.Logger
}

// New creates a limiter over the given store.
func New(limit int, window time.Duration, store CounterStore, logger *zap.Logger) *Limiter {
	return &Limiter{
		store:  store,
		limit:  limit,
		window: window,
		logger: logger,
	}
}

// Check counts a request for key and reports whether it is allowed. A store
// failure is logged and the request admitted; the limiter protects against
// abuse, it must not take the service down with it.
func (l *Limiter) Check(ctx context.Context, key string) Result {
	count, resetAt, err := l.store.Incr(ctx, key, l.window)
	if err != nil {
		l.logger.Error("rate limiter store failure", zap.String("key", key), zap.Error(err))
		return Result{Allowed: true, Remaining: l.limit - 1, ResetAt: time.Now().Add(l.window)}
	}

	if count > l.limit {
		return Result{Allowed: false, Remaining: 0, ResetAt: resetAt}
	}
	return Result{Allowed: true, Remaining: l.limit - count, ResetAt: resetAt}
}

// Limit returns the configured cap, for response headers.
func (l *Limiter) Limit() int {
	return l.limit
}
