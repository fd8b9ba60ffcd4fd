package ratelimit

import (
	"context"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"
)

func newTestLimiter(limit int, window time.Duration) (*Limiter, *MemoryStore) {
	store := NewMemoryStore()
	return New(limit, window, store, zap.NewNop()), store
}

func TestLimiter_CapWithinWindow(t *testing.T) {
	tests := []struct {
		name      string
		limit     int
		calls     int
		wantAllow int
	}{
		{"under the cap", 5, 3, 3},
		{"exactly the cap", 5, 5, 5},
		{"one over the cap", 5, 6, 5},
		{"far over the cap", 2, 10, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			limiter, store := newTestLimiter(tt.limit, time.Minute)
			defer store.Stop()

			allowed := 0
			for i := 0; i < tt.calls; i++ {
				if limiter.Check(context.Background(), "key").Allowed {
					allowed++
				}
			}

			if allowed != tt.wantAllow {
				t.Errorf("allowed %d calls, want %d", allowed, tt.wantAllow)
			}
		})
	}
}

func TestLimiter_RemainingCountsDown(t *testing.T) {
	limiter, store := newTestLimiter(3, time.Minute)
	defer store.Stop()

	want := []int{2, 1, 0}
	for i, expected := range want {
		res := limiter.Check(context.Background(), "key")
		if !res.Allowed {
			t.Fatalf("call %d unexpectedly denied", i+1)
		}
		if res.Remaining != expected {
			t.Errorf("call %d: Remaining = %d, want %d", i+1, res.Remaining, expected)
		}
	}

	res := limiter.Check(context.Background(), "key")
	if res.Allowed {
		t.Error("call over the cap was allowed")
	}
	if res.Remaining != 0 {
		t.Errorf("denied call: Remaining = %d, want 0", res.Remaining)
	}
	if res.ResetAt.Before(time.Now()) {
		t.Error("denied call: ResetAt is in the past")
	}
}

func TestLimiter_WindowReset(t *testing.T) {
	limiter, store := newTestLimiter(1, 50*time.Millisecond)
	defer store.Stop()

	if !limiter.Check(context.Background(), "key").Allowed {
		t.Fatal("first call denied")
	}
	if limiter.Check(context.Background(), "key").Allowed {
		t.Fatal("second call within window allowed")
	}

	time.Sleep(60 * time.Millisecond)

	res := limiter.Check(context.Background(), "key")
	if !res.Allowed {
		t.Error("call after window expiry denied")
	}
	if res.Remaining != 0 {
		t.Errorf("fresh window Remaining = %d, want 0", res.Remaining)
	}
}

func TestLimiter_IndependentKeys(t *testing.T) {
	limiter, store := newTestLimiter(1, time.Minute)
	defer store.Stop()

	if !limiter.Check(context.Background(), "alpha").Allowed {
		t.Fatal("first call for alpha denied")
	}
	if limiter.Check(context.Background(), "alpha").Allowed {
		t.Fatal("second call for alpha allowed")
	}
	if !limiter.Check(context.Background(), "beta").Allowed {
		t.Error("exhausting alpha starved beta")
	}
}

func TestLimiter_ConcurrentCallersShareOneCounter(t *testing.T) {
	const limit = 50
	const callers = 200

	limiter, store := newTestLimiter(limit, time.Minute)
	defer store.Stop()

	var wg sync.WaitGroup
	var mu sync.Mutex
	allowed := 0

	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if limiter.Check(context.Background(), "shared").Allowed {
				mu.Lock()
				allowed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if allowed != limit {
		t.Errorf("allowed %d concurrent calls, want exactly %d", allowed, limit)
	}
}

func TestMemoryStore_PurgeDropsExpiredWindows(t *testing.T) {
	store := NewMemoryStore()
	defer store.Stop()

	store.Incr(context.Background(), "stale", 10*time.Millisecond)
	store.Incr(context.Background(), "fresh", time.Minute)

	store.purge(time.Now().Add(20 * time.Millisecond))

	store.mu.Lock()
	defer store.mu.Unlock()
	if _, ok := store.windows["stale"]; ok {
		t.Error("expired window survived purge")
	}
	if _, ok := store.windows["fresh"]; !ok {
		t.Error("live window was purged")
	}
}

func TestMemoryStore_PurgeDoesNotAffectCounting(t *testing.T) {
	limiter, store := newTestLimiter(2, time.Minute)
	defer store.Stop()

	limiter.Check(context.Background(), "key")
	store.purge(time.Now())
	limiter.Check(context.Background(), "key")

	if limiter.Check(context.Background(), "key").Allowed {
		t.Error("purge of live windows changed counting behavior")
	}
}
