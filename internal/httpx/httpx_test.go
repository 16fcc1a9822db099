package httpx_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/chess-variants/tournament-calendar/internal/httpx"
)

func TestRetrySucceedsAfterFailures(t *testing.T) {
	calls := 0
	err := httpx.Retry(context.Background(), 3, time.Millisecond, 4*time.Millisecond, func() error {
		calls++
		if calls < 3 {
			return errors.New("flaky")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Retry: %v", err)
	}
	if calls != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}
}

func TestRetryExhausts(t *testing.T) {
	want := errors.New("still broken")
	calls := 0
	err := httpx.Retry(context.Background(), 3, time.Millisecond, 2*time.Millisecond, func() error {
		calls++
		return want
	})
	if !errors.Is(err, want) {
		t.Fatalf("err = %v, want %v", err, want)
	}
	if calls != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}
}

func TestRetryStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	calls := 0
	err := httpx.Retry(ctx, 5, time.Hour, time.Hour, func() error {
		calls++
		return errors.New("nope")
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1 (no retries after cancel)", calls)
	}
}

func TestRetrySingleAttemptRunsOnce(t *testing.T) {
	calls := 0
	if err := httpx.Retry(context.Background(), 1, time.Millisecond, time.Millisecond, func() error {
		calls++
		return nil
	}); err != nil {
		t.Fatal(err)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}
