package retry

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestIsRetryable(t *testing.T) {
	if IsRetryable(nil) {
		t.Fatal("nil error must not be retryable")
	}
	if IsRetryable(errors.New("plain")) {
		t.Fatal("plain error must not be retryable")
	}
	if !IsRetryable(&HTTPError{StatusCode: 503}) {
		t.Fatal("503 must be retryable")
	}
	if IsRetryable(&HTTPError{StatusCode: 404}) {
		t.Fatal("404 must not be retryable")
	}
}

func TestParseRetryAfterSeconds(t *testing.T) {
	if got := ParseRetryAfter("5"); got != 5*time.Second {
		t.Fatalf("expected 5s, got %v", got)
	}
	if got := ParseRetryAfter(""); got != 0 {
		t.Fatalf("expected 0, got %v", got)
	}
	if got := ParseRetryAfter("garbage"); got != 0 {
		t.Fatalf("expected 0 for unparseable value, got %v", got)
	}
}

func TestDoStopsOnNonRetryable(t *testing.T) {
	calls := 0
	err := Do(context.Background(), Options{MaxRetries: 3, BaseDelay: time.Millisecond}, func() error {
		calls++
		return &HTTPError{StatusCode: 404}
	})
	if err == nil {
		t.Fatal("expected error")
	}
	if calls != 1 {
		t.Fatalf("expected 1 call, got %d", calls)
	}
}

func TestDoRetriesUntilSuccess(t *testing.T) {
	calls := 0
	err := Do(context.Background(), Options{MaxRetries: 3, BaseDelay: time.Millisecond}, func() error {
		calls++
		if calls < 3 {
			return &HTTPError{StatusCode: 503}
		}
		return nil
	})
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if calls != 3 {
		t.Fatalf("expected 3 calls, got %d", calls)
	}
}

func TestDoRespectsContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := Do(ctx, Options{MaxRetries: 1, BaseDelay: time.Millisecond}, func() error {
		return &HTTPError{StatusCode: 500}
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
