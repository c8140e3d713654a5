// Package retry runs an operation with a per-attempt timeout and backoff
// between attempts.
package retry

import (
	"context"
	"errors"
	"fmt"
	"time"
)

var (
	// ErrExhausted is returned when every attempt failed.
	ErrExhausted = errors.New("retry: attempts exhausted")
	// ErrInvalidPolicy is returned for a Policy with no attempts.
	ErrInvalidPolicy = errors.New("retry: policy needs at least one attempt")
)

// Policy bounds how an operation is retried.
type Policy struct {
	// Attempts is the total number of tries, including the first.
	Attempts int
	// Timeout bounds a single attempt. Zero means no per-attempt timeout.
	Timeout time.Duration
	// Backoff spaces attempts out. Nil retries immediately.
	Backoff Backoff
	// OnRetry, when set, is called before sleeping ahead of attempt n+1.
	OnRetry func(ctx context.Context, attempt int, err error, wait time.Duration)
}

// DefaultPolicy tries three times with a 10s budget each and exponential backoff.
func DefaultPolicy() Policy {
	return Policy{
		Attempts: 3,
		Timeout:  10 * time.Second,
		Backoff: Exponential{
			InitialInterval: 500 * time.Millisecond,
			MaxInterval:     5 * time.Second,
			Multiplier:      2,
			JitterFactor:    0.1,
		},
	}
}

type permanentError struct{ err error }

func (p permanentError) Error() string { return p.err.Error() }
func (p permanentError) Unwrap() error { return p.err }

// Permanent marks err as not worth retrying. Do returns it immediately, unwrapped.
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return permanentError{err: err}
}

// IsPermanent reports whether err or anything it wraps was marked Permanent.
func IsPermanent(err error) bool {
	var perm permanentError
	return errors.As(err, &perm)
}

// Do calls fn until it succeeds, returns a Permanent error, the attempts run
// out or ctx is done. attempt passed to fn is 1-based.
func Do(ctx context.Context, p Policy, fn func(ctx context.Context, attempt int) error) error {
	if p.Attempts < 1 {
		return ErrInvalidPolicy
	}

	var lastErr error
	for attempt := 1; attempt <= p.Attempts; attempt++ {
		if attempt > 1 {
			var wait time.Duration
			if p.Backoff != nil {
				wait = p.Backoff.NextInterval(attempt - 1)
			}
			if p.OnRetry != nil {
				p.OnRetry(ctx, attempt-1, lastErr, wait)
			}
			if err := sleep(ctx, wait); err != nil {
				return errors.Join(err, lastErr)
			}
		}

		err := runAttempt(ctx, p.Timeout, attempt, fn)
		if err == nil {
			return nil
		}

		var perm permanentError
		if errors.As(err, &perm) {
			return perm.err
		}
		if ctx.Err() != nil {
			return errors.Join(ctx.Err(), err)
		}
		lastErr = err
	}

	return fmt.Errorf("%w after %d attempts: %w", ErrExhausted, p.Attempts, lastErr)
}

func runAttempt(ctx context.Context, timeout time.Duration, attempt int, fn func(context.Context, int) error) error {
	if timeout <= 0 {
		return fn(ctx, attempt)
	}
	actx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return fn(actx, attempt)
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
