package retry

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"syscall"
	"testing"
	"time"
)

// fastConfig keeps test runs quick.
func fastConfig(attempts int) Config {
	return Config{
		MaxAttempts:  attempts,
		InitialDelay: time.Millisecond,
		MaxDelay:     5 * time.Millisecond,
		Multiplier:   2.0,
	}
}

func TestWithBackoff_SucceedsFirstTry(t *testing.T) {
	calls := 0
	err := WithBackoff(context.Background(), fastConfig(3), func() error {
		calls++
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestWithBackoff_RecoversAfterTransientFailures(t *testing.T) {
	calls := 0
	err := WithBackoff(context.Background(), fastConfig(3), func() error {
		calls++
		if calls < 3 {
			return syscall.ECONNREFUSED
		}
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}
}

func TestWithBackoff_ExhaustsAttempts(t *testing.T) {
	calls := 0
	transient := &HTTPError{StatusCode: http.StatusBadGateway, Message: "upstream down"}
	err := WithBackoff(context.Background(), fastConfig(3), func() error {
		calls++
		return transient
	})
	if err == nil {
		t.Fatal("expected error after exhausting attempts")
	}
	if !errors.Is(err, transient) {
		t.Errorf("final error should wrap the last attempt error, got %v", err)
	}
	if calls != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}
}

func TestWithBackoff_StopsOnPermanentError(t *testing.T) {
	calls := 0
	permanent := fmt.Errorf("recipe payload rejected")
	err := WithBackoff(context.Background(), fastConfig(5), func() error {
		calls++
		return permanent
	})
	if !errors.Is(err, permanent) {
		t.Errorf("error = %v, want the permanent error unwrapped", err)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1 (no retries for permanent errors)", calls)
	}
}

func TestWithBackoff_AbortsOnContextCancel(t *testing.T) {
	cfg := Config{
		MaxAttempts:  5,
		InitialDelay: time.Hour, // never elapses; cancel must win
		MaxDelay:     time.Hour,
		Multiplier:   2.0,
	}
	ctx, cancel := context.WithCancel(context.Background())

	calls := 0
	done := make(chan error, 1)
	go func() {
		done <- WithBackoff(ctx, cfg, func() error {
			calls++
			return syscall.ECONNRESET
		})
	}()

	time.Sleep(10 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("error = %v, want context.Canceled", err)
		}
		if calls != 1 {
			t.Errorf("calls = %d, want 1", calls)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("WithBackoff did not return after cancel")
	}
}

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "nil", err: nil, want: false},
		{name: "context canceled", err: context.Canceled, want: false},
		{name: "deadline exceeded", err: context.DeadlineExceeded, want: false},
		{name: "connection refused", err: syscall.ECONNREFUSED, want: true},
		{name: "connection reset", err: syscall.ECONNRESET, want: true},
		{name: "wrapped syscall error", err: fmt.Errorf("notify: %w", syscall.ETIMEDOUT), want: true},
		{name: "http 500", err: &HTTPError{StatusCode: 500}, want: true},
		{name: "http 503", err: &HTTPError{StatusCode: 503}, want: true},
		{name: "http 429", err: &HTTPError{StatusCode: 429}, want: true},
		{name: "http 408", err: &HTTPError{StatusCode: 408}, want: true},
		{name: "http 400", err: &HTTPError{StatusCode: 400}, want: false},
		{name: "http 404", err: &HTTPError{StatusCode: 404}, want: false},
		{name: "plain error", err: errors.New("invalid cursor"), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsRetryable(tt.err); got != tt.want {
				t.Errorf("IsRetryable(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestHTTPError_Error(t *testing.T) {
	err := &HTTPError{StatusCode: 502, Message: "image pipeline unavailable"}
	if got := err.Error(); got != "HTTP 502: image pipeline unavailable" {
		t.Errorf("Error() = %q", got)
	}
}

func TestWithJitter(t *testing.T) {
	base := 100 * time.Millisecond

	if got := withJitter(base, 0); got != base {
		t.Errorf("zero fraction should not change the delay, got %v", got)
	}

	for i := 0; i < 50; i++ {
		got := withJitter(base, 0.5)
		if got < base || got > base+base/2 {
			t.Fatalf("jittered delay %v outside [%v, %v]", got, base, base+base/2)
		}
	}
}

func TestConfigDefaults(t *testing.T) {
	def := DefaultConfig()
	if def.MaxAttempts != 3 || def.InitialDelay != time.Second {
		t.Errorf("DefaultConfig = %+v", def)
	}

	collab := CollaboratorConfig()
	if collab.MaxAttempts != 2 {
		t.Errorf("CollaboratorConfig.MaxAttempts = %d, want 2 (side effects must not block)", collab.MaxAttempts)
	}
}
