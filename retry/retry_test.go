package retry

import (
	"context"
	"errors"
	"testing"
	"time"
)

type transientErr struct{}

func (transientErr) Error() string   { return "transient" }
func (transientErr) Retryable() bool { return true }

type fatalErr struct{}

func (fatalErr) Error() string   { return "fatal" }
func (fatalErr) Retryable() bool { return false }

// A fast policy so tests don't sleep for real seconds.
var testPolicy = Policy{MaxAttempts: 3, BaseDelay: time.Millisecond, MaxDelay: 5 * time.Millisecond, Multiplier: 2}

func TestDoSucceedsAfterRetries(t *testing.T) {
	calls := 0
	v, err := Do(context.Background(), testPolicy, func(ctx context.Context) (string, error) {
		calls++
		if calls < 3 {
			return "", transientErr{}
		}
		return "ok", nil
	})
	if err != nil {
		t.Fatalf("error should have been nil, was: %v", err)
	}
	if v != "ok" {
		t.Errorf("expected ok, got %s", v)
	}
	if calls != 3 {
		t.Errorf("expected 3 calls, got %d", calls)
	}
}

func TestDoExhaustsAttempts(t *testing.T) {
	calls := 0
	sentinel := transientErr{}
	_, err := Do(context.Background(), testPolicy, func(ctx context.Context) (int, error) {
		calls++
		return 0, sentinel
	})
	if !errors.Is(err, sentinel) {
		t.Errorf("final error should be the operation's error unchanged, got %v", err)
	}
	if calls != testPolicy.MaxAttempts {
		t.Errorf("expected %d calls, got %d", testPolicy.MaxAttempts, calls)
	}
}

func TestDoFatalErrorDoesNotRetry(t *testing.T) {
	calls := 0
	_, err := Do(context.Background(), testPolicy, func(ctx context.Context) (int, error) {
		calls++
		return 0, fatalErr{}
	})
	if !errors.Is(err, fatalErr{}) {
		t.Errorf("expected fatal error, got %v", err)
	}
	if calls != 1 {
		t.Errorf("fatal error should not be retried, got %d calls", calls)
	}
}

func TestDoNonePolicy(t *testing.T) {
	calls := 0
	_, err := Do(context.Background(), None, func(ctx context.Context) (int, error) {
		calls++
		return 0, transientErr{}
	})
	if err == nil {
		t.Fatalf("expected an error")
	}
	if calls != 1 {
		t.Errorf("None policy should make exactly one attempt, got %d", calls)
	}
}

func TestDoCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	calls := 0
	_, err := Do(ctx, Policy{MaxAttempts: 5, BaseDelay: time.Minute, Multiplier: 2}, func(ctx context.Context) (int, error) {
		calls++
		cancel() // cancel while the loop is waiting to retry
		return 0, transientErr{}
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if calls != 1 {
		t.Errorf("no further attempts should run after cancellation, got %d calls", calls)
	}
}

func TestDelayGrowsAndCaps(t *testing.T) {
	p := Policy{MaxAttempts: 6, BaseDelay: time.Second, MaxDelay: 10 * time.Second, Multiplier: 2}

	expected := []time.Duration{
		1 * time.Second,  // after attempt 1
		2 * time.Second,  // after attempt 2
		4 * time.Second,  // after attempt 3
		8 * time.Second,  // after attempt 4
		10 * time.Second, // capped
	}
	for i, want := range expected {
		if got := p.delay(i + 1); got != want {
			t.Errorf("delay after attempt %d = %v, expected %v", i+1, got, want)
		}
	}
}

func TestIsRetryable(t *testing.T) {
	if IsRetryable(nil) {
		t.Errorf("nil is not retryable")
	}
	if IsRetryable(errors.New("some random failure")) {
		t.Errorf("unclassified errors are not retryable")
	}
	if !IsRetryable(transientErr{}) {
		t.Errorf("transient typed errors are retryable")
	}
	wrapped := errors.Join(errors.New("outer"), transientErr{})
	if !IsRetryable(wrapped) {
		t.Errorf("wrapped transient errors are retryable")
	}
}
