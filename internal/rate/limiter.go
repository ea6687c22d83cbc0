package rate

import (
	"context"
	"time"
)

// Config holds limiter tuning parameters.
type Config struct {
	MaxAttempts int
	Window      time.Duration
}

// Store records attempt counts per identifier. Implementations must make the
// read-decide-write sequence in CheckAndConsume atomic per identifier so two
// concurrent callers cannot both observe count < maxAttempts and both be
// admitted.
type Store interface {
	// CheckAndConsume admits or denies one attempt for identifier.
	// Denials must not consume budget or refresh the window.
	CheckAndConsume(ctx context.Context, identifier string, maxAttempts int, window time.Duration) (bool, error)

	// Clear removes the entry outright, re-arming the identifier immediately.
	Clear(ctx context.Context, identifier string) error
}

// Limiter enforces a per-identifier sliding-window attempt budget on top of a [Store].
type Limiter struct {
	store  Store
	config Config
}

// New creates a [Limiter] backed by the given store.
func New(store Store, cfg Config) *Limiter {
	return &Limiter{
		store:  store,
		config: cfg,
	}
}

// Allow consumes one attempt for identifier. It returns (true, nil) when the
// attempt is admitted, (false, nil) when the budget is exhausted, and a non-nil
// error only when the backing store is unavailable.
func (l *Limiter) Allow(ctx context.Context, identifier string) (bool, error) {
	return l.store.CheckAndConsume(ctx, identifier, l.config.MaxAttempts, l.config.Window)
}

// AllowN is Allow with per-call overrides for callers that throttle operations
// with budgets different from the gate default. maxAttempts <= 0 or window <= 0
// fall back to the configured values.
func (l *Limiter) AllowN(ctx context.Context, identifier string, maxAttempts int, window time.Duration) (bool, error) {
	if maxAttempts <= 0 {
		maxAttempts = l.config.MaxAttempts
	}
	if window <= 0 {
		window = l.config.Window
	}
	return l.store.CheckAndConsume(ctx, identifier, maxAttempts, window)
}

// Clear re-arms the identifier. Called after a successful gate pass so a
// guardian is not penalized for the child's prior failed attempts.
func (l *Limiter) Clear(ctx context.Context, identifier string) error {
	return l.store.Clear(ctx, identifier)
}
