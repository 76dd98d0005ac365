// Package retry runs fallible operations under a backoff policy. Policies are
// plain data, the loop holds no shared state, so concurrent calls are safe.
package retry

import (
	"context"
	"errors"
	"net"
	"time"
)

// Policy describes how many attempts to make and how long to wait between
// them. The delay before attempt n (n >= 2) is
// min(BaseDelay * Multiplier^(n-2), MaxDelay).
type Policy struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
	Multiplier  float64
}

var (
	// Default is the policy used for provider calls.
	Default = Policy{MaxAttempts: 3, BaseDelay: 1 * time.Second, MaxDelay: 10 * time.Second, Multiplier: 2}

	// None makes a single attempt.
	None = Policy{MaxAttempts: 1}
)

// Retryable marks an error as worth retrying. Error types that represent
// transient provider failures implement it; everything else fails fast.
type Retryable interface {
	Retryable() bool
}

// IsRetryable reports whether an error is transient: a typed error that says
// so itself, or a transport-level failure (timeout, DNS, connection loss).
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}

	var r Retryable
	if errors.As(err, &r) {
		return r.Retryable()
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	var opErr *net.OpError
	return errors.As(err, &opErr)
}

// Do executes fn under the policy. Retryable failures are re-attempted until
// the attempt budget runs out; the last error is returned unchanged.
// Non-retryable failures return immediately. If ctx is cancelled while
// waiting, no further attempts are made and ctx.Err() is returned.
func Do[T any](ctx context.Context, p Policy, fn func(ctx context.Context) (T, error)) (T, error) {
	var zero T
	if p.MaxAttempts < 1 {
		p.MaxAttempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= p.MaxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return zero, err
		}

		v, err := fn(ctx)
		if err == nil {
			return v, nil
		}
		lastErr = err

		if !IsRetryable(err) || attempt == p.MaxAttempts {
			break
		}

		timer := time.NewTimer(p.delay(attempt))
		select {
		case <-ctx.Done():
			timer.Stop()
			return zero, ctx.Err()
		case <-timer.C:
		}
	}

	return zero, lastErr
}

// delay returns the wait before the attempt following attempt n.
func (p Policy) delay(attempt int) time.Duration {
	d := p.BaseDelay
	for i := 1; i < attempt; i++ {
		d = time.Duration(float64(d) * p.Multiplier)
		if p.MaxDelay > 0 && d >= p.MaxDelay {
			return p.MaxDelay
		}
	}
	if p.MaxDelay > 0 && d > p.MaxDelay {
		return p.MaxDelay
	}
	return d
}
