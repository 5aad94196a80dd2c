package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/sethvargo/go-retry"
	"github.com/sony/gobreaker"
)

// ResilienceConfig configures retry and circuit breaking around a backend.
type ResilienceConfig struct {
	// Name labels the circuit breaker in logs.
	Name string

	// MaxRetries is the number of retries after the first attempt.
	MaxRetries uint64
	// BaseDelay is the first backoff delay; it doubles on each retry up to MaxDelay.
	BaseDelay time.Duration
	MaxDelay  time.Duration

	// ConsecutiveFailures trips the breaker. While open, calls fail fast with
	// gobreaker.ErrOpenState until OpenTimeout elapses.
	ConsecutiveFailures uint32
	OpenTimeout         time.Duration

	// OnRetry, if set, is called before every retry.
	OnRetry func(op string, attempt int, err error)
}

// DefaultResilienceConfig returns the settings used by the server.
func DefaultResilienceConfig(name string) ResilienceConfig {
	return ResilienceConfig{
		Name:                name,
		MaxRetries:          3,
		BaseDelay:           100 * time.Millisecond,
		MaxDelay:            2 * time.Second,
		ConsecutiveFailures: 5,
		OpenTimeout:         30 * time.Second,
	}
}

// Resilient retries transient backend failures with capped exponential
// backoff and stops hammering a backend that keeps failing.
// ErrKeyNotFound and ErrSealed are answers, not failures: they are never
// retried and never count against the breaker.
type Resilient struct {
	inner Storage
	cfg   ResilienceConfig
	cb    *gobreaker.CircuitBreaker
	log   *slog.Logger
}

// NewResilient wraps inner with cfg.
func NewResilient(inner Storage, cfg ResilienceConfig, log *slog.Logger) *Resilient {
	r := &Resilient{inner: inner, cfg: cfg, log: log}
	r.cb = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: 1,
		Timeout:     cfg.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.ConsecutiveFailures
		},
		IsSuccessful: func(err error) bool {
			return err == nil || isAnswer(err) || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn("storage circuit breaker state changed",
				"breaker", name, "from", from.String(), "to", to.String())
		},
	})
	return r
}

func (r *Resilient) Get(ctx context.Context, key string) ([]byte, error) {
	var out []byte
	err := r.do(ctx, "get", func(ctx context.Context) error {
		b, err := r.inner.Get(ctx, key)
		out = b
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *Resilient) Set(ctx context.Context, key string, value []byte) error {
	return r.do(ctx, "set", func(ctx context.Context) error {
		return r.inner.Set(ctx, key, value)
	})
}

func (r *Resilient) Close() error { return r.inner.Close() }

// State reports the breaker state ("closed", "half-open", "open").
func (r *Resilient) State() string {
	return r.cb.State().String()
}

func (r *Resilient) do(ctx context.Context, op string, fn func(context.Context) error) error {
	b := retry.NewExponential(r.cfg.BaseDelay)
	b = retry.WithCappedDuration(r.cfg.MaxDelay, b)
	b = retry.WithJitterPercent(10, b)
	b = retry.WithMaxRetries(r.cfg.MaxRetries, b)

	var (
		attempt int
		lastErr error
	)
	err := retry.Do(ctx, b, func(ctx context.Context) error {
		attempt++
		if attempt > 1 && r.cfg.OnRetry != nil {
			r.cfg.OnRetry(op, attempt, lastErr)
		}
		_, err := r.cb.Execute(func() (interface{}, error) {
			return nil, fn(ctx)
		})
		switch {
		case err == nil:
			return nil
		case isAnswer(err),
			errors.Is(err, gobreaker.ErrOpenState),
			errors.Is(err, gobreaker.ErrTooManyRequests),
			errors.Is(err, context.Canceled),
			errors.Is(err, context.DeadlineExceeded):
			return err
		}
		r.log.WarnContext(ctx, "storage operation failed",
			"op", op, "attempt", attempt, "error", err)
		lastErr = err
		return retry.RetryableError(err)
	})
	if err != nil && !isAnswer(err) {
		return fmt.Errorf("storage.Resilient.%s: %w", op, err)
	}
	return err
}

func isAnswer(err error) bool {
	return errors.Is(err, ErrKeyNotFound) || errors.Is(err, ErrSealed)
}
