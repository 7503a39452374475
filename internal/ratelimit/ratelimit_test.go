package ratelimit

import (
	"context"
	"testing"
	"time"
)

func TestMemoryLimiterBlocksAfterMaxAttempts(t *testing.T) {
	l := NewMemoryLimiter(3, time.Minute)
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		ok, err := l.Allow(ctx, "1.2.3.4")
		if err != nil || !ok {
			t.Fatalf("attempt %d: expected allowed, got %v %v", i+1, ok, err)
		}
	}
	if ok, _ := l.Allow(ctx, "1.2.3.4"); ok {
		t.Fatal("expected fourth attempt to be blocked")
	}
	if ok, _ := l.Allow(ctx, "5.6.7.8"); !ok {
		t.Fatal("other keys have their own budget")
	}
}

func TestMemoryLimiterWindowExpires(t *testing.T) {
	now := time.Date(2024, 1, 1, 20, 0, 0, 0, time.UTC)
	l := NewMemoryLimiter(1, time.Minute)
	l.now = func() time.Time { return now }
	ctx := context.Background()

	if ok, _ := l.Allow(ctx, "k"); !ok {
		t.Fatal("first attempt should pass")
	}
	if ok, _ := l.Allow(ctx, "k"); ok {
		t.Fatal("second attempt should be blocked")
	}
	now = now.Add(time.Minute)
	if ok, _ := l.Allow(ctx, "k"); !ok {
		t.Fatal("window should have expired")
	}
}

func TestMemoryLimiterReset(t *testing.T) {
	l := NewMemoryLimiter(1, time.Hour)
	ctx := context.Background()
	_, _ = l.Allow(ctx, "k")
	if ok, _ := l.Allow(ctx, "k"); ok {
		t.Fatal("expected block before reset")
	}
	if err := l.Reset(ctx, "k"); err != nil {
		t.Fatalf("reset: %v", err)
	}
	if ok, _ := l.Allow(ctx, "k"); !ok {
		t.Fatal("expected fresh budget after reset")
	}
}
