package rimloc

import (
	"context"
	"errors"
	"time"
)

// RetryConfig shapes the backoff curve for flaky provider calls.
type RetryConfig struct {
	MaxRetries int // attempts after the first failure
	BaseDelay  time.Duration
	MaxDelay   time.Duration // backoff cap; doubling stops here
}

// DefaultRetryConfig is tuned for MT endpoints: three retries, one second
// base, capped at thirty.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxRetries: 3,
		BaseDelay:  1 * time.Second,
		MaxDelay:   30 * time.Second,
	}
}

// RetryFunc is the unit of work WithRetry repeats.
type RetryFunc[T any] func() (T, error)

// WithRetry runs fn until it succeeds, fails permanently, or exhausts the
// attempt budget. Delay doubles per attempt up to cfg.MaxDelay.
func WithRetry[T any](ctx context.Context, cfg RetryConfig, fn RetryFunc[T]) (T, error) {
	var lastErr error
	var zero T

	for attempt := 0; attempt <= cfg.MaxRetries; attempt++ {
		select {
		case <-ctx.Done():
			return zero, ctx.Err()
		default:
		}

		result, err := fn()
		if err == nil {
			return result, nil
		}

		lastErr = err

		if !IsRetryable(err) {
			return zero, err
		}

		// No sleep after the final attempt.
		if attempt < cfg.MaxRetries {
			delay := cfg.BaseDelay * time.Duration(1<<attempt)
			if delay > cfg.MaxDelay {
				delay = cfg.MaxDelay
			}

			select {
			case <-ctx.Done():
				return zero, ctx.Err()
			case <-time.After(delay):
			}
		}
	}

	return zero, lastErr
}

// IsRetryable reports whether an error is worth another attempt. Only a
// ProviderError that says so qualifies; cancellation and unknown errors
// fail immediately.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}

	var providerErr *ProviderError
	if errors.As(err, &providerErr) {
		return providerErr.Retryable
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	return false
}

// RetryableProvider retries a wrapped Provider on transient failures.
type RetryableProvider struct {
	provider Provider
	config   RetryConfig
}

// NewRetryableProvider wraps provider with the given backoff policy.
func NewRetryableProvider(provider Provider, cfg RetryConfig) *RetryableProvider {
	return &RetryableProvider{
		provider: provider,
		config:   cfg,
	}
}

// Translate retries the wrapped call per the configured backoff.
func (p *RetryableProvider) Translate(ctx context.Context, req TranslateRequest) ([]string, error) {
	return WithRetry(ctx, p.config, func() ([]string, error) {
		return p.provider.Translate(ctx, req)
	})
}
