// Package retry holds the single backoff policy used for outbound calls to the storefront backend.
package retry

import (
	"context"
	"net/http"
	"time"
)

const (
	DefaultMaxRetries = 3
	DefaultBaseDelay  = time.Second
	DefaultMultiplier = 2
)

// SleepFunc waits for d or until ctx is done.
type SleepFunc func(ctx context.Context, d time.Duration) error

// Policy describes how many times a call is retried and how long to wait between attempts.
// Delays are deterministic: BaseDelay, BaseDelay*Multiplier, BaseDelay*Multiplier^2, ...
type Policy struct {
	MaxRetries int
	BaseDelay  time.Duration
	Multiplier int
	// Retryable reports whether a completed response with the given status should be retried.
	Retryable func(status int) bool
	// Sleep is replaced in tests; nil means a real timer.
	Sleep SleepFunc
	// OnRetry is called before each wait with the 1-based retry number.
	OnRetry func(retry int, delay time.Duration, status int, err error)
}

// DefaultPolicy retries server errors and transport failures 3 times (1s, 2s, 4s).
func DefaultPolicy() Policy {
	return Policy{
		MaxRetries: DefaultMaxRetries,
		BaseDelay:  DefaultBaseDelay,
		Multiplier: DefaultMultiplier,
		Retryable:  IsServerError,
	}
}

// IsServerError matches any 5xx status.
func IsServerError(status int) bool {
	return status >= http.StatusInternalServerError
}

// Delay returns the wait before the given 1-based retry.
func (p Policy) Delay(retry int) time.Duration {
	mult := p.Multiplier
	if mult < 1 {
		mult = 1
	}
	d := p.BaseDelay
	for i := 1; i < retry; i++ {
		d *= time.Duration(mult)
	}
	return d
}

// Do runs call until it yields a non-retryable result or retries are exhausted.
// Transport errors are always retried. The last result (value or error) is returned unchanged.
// statusOf extracts the HTTP status from a successful call.
func Do[T any](ctx context.Context, p Policy, call func(ctx context.Context) (T, error), statusOf func(T) int) (T, error) {
	retryable := p.Retryable
	if retryable == nil {
		retryable = IsServerError
	}
	sleep := p.Sleep
	if sleep == nil {
		sleep = timerSleep
	}

	var (
		result T
		err    error
	)
	for attempt := 0; ; attempt++ {
		result, err = call(ctx)

		status := 0
		if err == nil {
			status = statusOf(result)
			if !retryable(status) {
				return result, nil
			}
		}
		if attempt >= p.MaxRetries {
			return result, err
		}

		delay := p.Delay(attempt + 1)
		if p.OnRetry != nil {
			p.OnRetry(attempt+1, delay, status, err)
		}
		if serr := sleep(ctx, delay); serr != nil {
			// Context done: the last outcome is returned as-is.
			return result, err
		}
	}
}

func timerSleep(ctx context.Context, d time.Duration) error {
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
