package rate

import (
	"context"
	"fmt"
	"testing"
	"time"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}

func newMemoryLimiter(t *testing.T, maxAttempts int, window time.Duration) (*Limiter, *MemoryStore, *fakeClock) {
	t.Helper()

	clock := &fakeClock{now: time.Unix(1_700_000_000, 0)}
	store := NewMemoryStore(clock.Now, 0)
	limiter := New(store, Config{MaxAttempts: maxAttempts, Window: window})
	return limiter, store, clock
}

func TestMemoryAllowsUpToBudgetThenDenies(t *testing.T) {
	limiter, _, _ := newMemoryLimiter(t, 5, 5*time.Minute)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		ok, err := limiter.Allow(ctx, "x")
		if err != nil {
			t.Fatalf("Allow %d error: %v", i+1, err)
		}
		if !ok {
			t.Fatalf("attempt %d: expected allowed", i+1)
		}
	}

	ok, err := limiter.Allow(ctx, "x")
	if err != nil {
		t.Fatalf("Allow error: %v", err)
	}
	if ok {
		t.Fatal("sixth attempt: expected denied")
	}
}

func TestMemoryClearRearmsImmediately(t *testing.T) {
	limiter, _, _ := newMemoryLimiter(t, 2, time.Minute)
	ctx := context.Background()

	limiter.Allow(ctx, "x")
	limiter.Allow(ctx, "x")

	if ok, _ := limiter.Allow(ctx, "x"); ok {
		t.Fatal("expected denial after budget exhausted")
	}

	if err := limiter.Clear(ctx, "x"); err != nil {
		t.Fatalf("Clear error: %v", err)
	}

	if ok, _ := limiter.Allow(ctx, "x"); !ok {
		t.Fatal("expected allowance after Clear")
	}
}

func TestMemoryWindowExpiryRearms(t *testing.T) {
	limiter, _, clock := newMemoryLimiter(t, 2, time.Minute)
	ctx := context.Background()

	limiter.Allow(ctx, "x")
	limiter.Allow(ctx, "x")

	if ok, _ := limiter.Allow(ctx, "x"); ok {
		t.Fatal("expected denial inside window")
	}

	clock.Advance(time.Minute + time.Second)

	if ok, _ := limiter.Allow(ctx, "x"); !ok {
		t.Fatal("expected allowance after window elapsed")
	}
}

func TestMemoryDenialDoesNotRefreshWindow(t *testing.T) {
	limiter, _, clock := newMemoryLimiter(t, 1, time.Minute)
	ctx := context.Background()

	limiter.Allow(ctx, "x")

	// Hammer denials right up to the deadline; none of them may slide it.
	for i := 0; i < 3; i++ {
		clock.Advance(15 * time.Second)
		if ok, _ := limiter.Allow(ctx, "x"); ok {
			t.Fatalf("denial %d: expected denied inside window", i+1)
		}
	}

	clock.Advance(16 * time.Second)

	if ok, _ := limiter.Allow(ctx, "x"); !ok {
		t.Fatal("expected allowance once original window elapsed")
	}
}

func TestMemoryAllowedAttemptSlidesWindow(t *testing.T) {
	limiter, _, clock := newMemoryLimiter(t, 5, time.Minute)
	ctx := context.Background()

	limiter.Allow(ctx, "x")
	clock.Advance(50 * time.Second)

	// Second allowed attempt refreshes the deadline, so 50s later the entry
	// is still live and holds both attempts.
	limiter.Allow(ctx, "x")
	clock.Advance(50 * time.Second)

	for i := 0; i < 3; i++ {
		if ok, _ := limiter.Allow(ctx, "x"); !ok {
			t.Fatalf("attempt %d: expected allowed", i+3)
		}
	}
	if ok, _ := limiter.Allow(ctx, "x"); ok {
		t.Fatal("expected denial: slid window retains prior attempts")
	}
}

func TestMemoryIdentifiersAreIsolated(t *testing.T) {
	limiter, _, _ := newMemoryLimiter(t, 1, time.Minute)
	ctx := context.Background()

	limiter.Allow(ctx, "a")

	if ok, _ := limiter.Allow(ctx, "b"); !ok {
		t.Fatal("identifier b must not share a's budget")
	}
	if ok, _ := limiter.Allow(ctx, "a"); ok {
		t.Fatal("identifier a should be exhausted")
	}
}

func TestMemorySweepBoundsEntries(t *testing.T) {
	clock := &fakeClock{now: time.Unix(1_700_000_000, 0)}
	store := NewMemoryStore(clock.Now, 8)
	limiter := New(store, Config{MaxAttempts: 5, Window: time.Minute})
	ctx := context.Background()

	for i := 0; i < 16; i++ {
		limiter.Allow(ctx, fmt.Sprintf("stale-%d", i))
	}

	clock.Advance(2 * time.Minute)
	limiter.Allow(ctx, "fresh")

	if got := store.Len(); got > 9 {
		t.Fatalf("expected stale entries swept, %d live", got)
	}
	if ok, _ := limiter.Allow(ctx, "fresh"); !ok {
		t.Fatal("fresh entry must survive the sweep")
	}
}

func TestMemoryAllowNOverrides(t *testing.T) {
	limiter, _, _ := newMemoryLimiter(t, 5, time.Minute)
	ctx := context.Background()

	limiter.AllowN(ctx, "x", 1, time.Minute)

	if ok, _ := limiter.AllowN(ctx, "x", 1, time.Minute); ok {
		t.Fatal("expected denial with per-call budget of 1")
	}
	if ok, _ := limiter.AllowN(ctx, "x", 0, 0); !ok {
		t.Fatal("zero overrides must fall back to configured budget")
	}
}
