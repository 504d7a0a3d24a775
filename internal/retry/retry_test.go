package retry

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestDoWithRetryEventualSuccess(t *testing.T) {
	calls := 0
	err := DoWithRetry(context.Background(), 3, time.Millisecond, func() error {
		calls++
		if calls < 3 {
			return errors.New("transient")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 3 {
		t.Fatalf("calls = %d, want 3", calls)
	}
}

func TestDoWithRetryExhaustsAttempts(t *testing.T) {
	boom := errors.New("boom")
	calls := 0
	err := DoWithRetry(context.Background(), 2, time.Millisecond, func() error {
		calls++
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want %v", err, boom)
	}
	if calls != 2 {
		t.Fatalf("calls = %d, want 2", calls)
	}
}

func TestDoWithRetryPermanentStopsEarly(t *testing.T) {
	rejected := errors.New("rejected")
	calls := 0
	err := DoWithRetry(context.Background(), 5, time.Millisecond, func() error {
		calls++
		return Permanent(rejected)
	})
	if !errors.Is(err, rejected) {
		t.Fatalf("err = %v, want %v", err, rejected)
	}
	if calls != 1 {
		t.Fatalf("calls = %d, want 1", calls)
	}
}

func TestDoWithRetryCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := DoWithRetry(ctx, 3, time.Millisecond, func() error {
		t.Fatal("fn should not run")
		return nil
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}
