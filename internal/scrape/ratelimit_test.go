package scrape

import (
	"context"
	"testing"
	"time"
)

func TestHostLimiterDelaysSameHost(t *testing.T) {
	delay := 50 * time.Millisecond
	limiter := NewHostLimiter(delay)
	ctx := context.Background()

	start := time.Now()
	if err := limiter.Wait(ctx, "https://example.com/a"); err != nil {
		t.Fatalf("Wait() error = %v", err)
	}
	if err := limiter.Wait(ctx, "https://example.com/b"); err != nil {
		t.Fatalf("Wait() error = %v", err)
	}

	if elapsed := time.Since(start); elapsed < delay {
		t.Errorf("Second request to the same host after %v, want at least %v", elapsed, delay)
	}
}

func TestHostLimiterHostsAreIndependent(t *testing.T) {
	limiter := NewHostLimiter(time.Minute)
	ctx := context.Background()

	start := time.Now()
	if err := limiter.Wait(ctx, "https://one.example.com/"); err != nil {
		t.Fatalf("Wait() error = %v", err)
	}
	if err := limiter.Wait(ctx, "https://two.example.com/"); err != nil {
		t.Fatalf("Wait() error = %v", err)
	}

	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("Different hosts must not share a delay, waited %v", elapsed)
	}
}

func TestHostLimiterCancelledContext(t *testing.T) {
	limiter := NewHostLimiter(time.Minute)

	ctx := context.Background()
	if err := limiter.Wait(ctx, "https://example.com/"); err != nil {
		t.Fatalf("Wait() error = %v", err)
	}

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	if err := limiter.Wait(cancelled, "https://example.com/"); err == nil {
		t.Error("Expected error when waiting with a cancelled context")
	}
}
