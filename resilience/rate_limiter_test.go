package resilience

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestRateLimiterStartsFull(t *testing.T) {
	rl := NewRateLimiter(RateLimiterConfig{Name: "client-1", Rate: 1, Burst: 3})
	for i := 0; i < 3; i++ {
		if !rl.Allow() {
			t.Fatalf("Allow() call %d = false, want full initial burst", i+1)
		}
	}
	if rl.Allow() {
		t.Error("Allow() beyond burst = true, want false")
	}
}

func TestRateLimiterDefaults(t *testing.T) {
	rl := NewRateLimiter(RateLimiterConfig{Name: "client-1"})
	if got := rl.Rate(); got != 10 {
		t.Errorf("Rate() = %v, want 10", got)
	}
	if got := rl.Burst(); got != 10 {
		t.Errorf("Burst() = %d, want 10", got)
	}
}

func TestRateLimiterRefills(t *testing.T) {
	rl := NewRateLimiter(RateLimiterConfig{Name: "client-1", Rate: 100, Burst: 1})
	if !rl.Allow() {
		t.Fatal("initial token unavailable")
	}
	if rl.Allow() {
		t.Fatal("burst of 1 allowed a second immediate call")
	}

	time.Sleep(30 * time.Millisecond)
	if !rl.Allow() {
		t.Error("token not refilled after waiting past the refill interval")
	}
}

func TestRateLimiterAllowN(t *testing.T) {
	rl := NewRateLimiter(RateLimiterConfig{Name: "client-1", Rate: 1, Burst: 5})
	if !rl.AllowN(5) {
		t.Fatal("AllowN(5) = false with a full bucket of 5")
	}
	if rl.AllowN(1) {
		t.Error("AllowN(1) = true on an empty bucket")
	}
}

func TestRateLimiterWait(t *testing.T) {
	rl := NewRateLimiter(RateLimiterConfig{Name: "client-1", Rate: 100, Burst: 1})
	if !rl.Allow() {
		t.Fatal("initial token unavailable")
	}

	start := time.Now()
	if err := rl.Wait(context.Background()); err != nil {
		t.Fatalf("Wait() error = %v", err)
	}
	if elapsed := time.Since(start); elapsed > 200*time.Millisecond {
		t.Errorf("Wait() took %v, want roughly one refill interval", elapsed)
	}
}

func TestRateLimiterWaitCancelled(t *testing.T) {
	rl := NewRateLimiter(RateLimiterConfig{Name: "client-1", Rate: 0.1, Burst: 1})
	if !rl.Allow() {
		t.Fatal("initial token unavailable")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if err := rl.Wait(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Wait() error = %v, want %v", err, context.DeadlineExceeded)
	}
}

func TestRateLimiterWaitNBeyondBurst(t *testing.T) {
	rl := NewRateLimiter(RateLimiterConfig{Name: "client-1", Rate: 1, Burst: 2})
	if err := rl.WaitN(context.Background(), 3); !errors.Is(err, ErrRateLimited) {
		t.Errorf("WaitN(3) with burst 2 = %v, want %v", err, ErrRateLimited)
	}
}

func TestRateLimiterExecute(t *testing.T) {
	rl := NewRateLimiter(RateLimiterConfig{Name: "client-1", Rate: 1, Burst: 1})

	calls := 0
	if err := rl.Execute(func() error { calls++; return nil }); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	err := rl.Execute(func() error { calls++; return nil })
	if !errors.Is(err, ErrRateLimited) {
		t.Fatalf("Execute() on empty bucket = %v, want %v", err, ErrRateLimited)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestRateLimiterExecuteWait(t *testing.T) {
	rl := NewRateLimiter(RateLimiterConfig{Name: "client-1", Rate: 100, Burst: 1})
	if !rl.Allow() {
		t.Fatal("initial token unavailable")
	}

	calls := 0
	if err := rl.ExecuteWait(context.Background(), func() error { calls++; return nil }); err != nil {
		t.Fatalf("ExecuteWait() error = %v", err)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestRateLimiterTokensCapAtBurst(t *testing.T) {
	rl := NewRateLimiter(RateLimiterConfig{Name: "client-1", Rate: 1000, Burst: 2})
	time.Sleep(20 * time.Millisecond)
	if got := rl.Tokens(); got > 2 {
		t.Errorf("Tokens() = %v, want at most the burst of 2", got)
	}
}

func TestRateLimiterConcurrentAllow(t *testing.T) {
	rl := NewRateLimiter(RateLimiterConfig{Name: "client-1", Rate: 0.001, Burst: 50})

	granted := make(chan bool, 100)
	for i := 0; i < 100; i++ {
		go func() { granted <- rl.Allow() }()
	}

	allowed := 0
	for i := 0; i < 100; i++ {
		if <-granted {
			allowed++
		}
	}
	if allowed != 50 {
		t.Errorf("allowed = %d, want exactly the burst of 50", allowed)
	}
}
