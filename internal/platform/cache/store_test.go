package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestStore_GetOrLoad_CoalescesConcurrentLoads(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	var calls atomic.Int32

	loader := func(context.Context) (any, error) {
		calls.Add(1)
		time.Sleep(20 * time.Millisecond)
		return "matches-page", nil
	}

	const workers = 32
	start := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(workers)
	errCh := make(chan error, workers)

	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			<-start
			v, err := store.GetOrLoad(context.Background(), "matches", loader)
			if err != nil {
				errCh <- err
				return
			}
			if got, _ := v.(string); got != "matches-page" {
				errCh <- errUnexpectedValue
			}
		}()
	}

	close(start)
	wg.Wait()
	close(errCh)
	for err := range errCh {
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if got := calls.Load(); got != 1 {
		t.Fatalf("loader called %d times, want 1", got)
	}
}

func TestStore_GetOrLoad_UsesCachedValueAfterFirstLoad(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	var calls atomic.Int32

	loader := func(context.Context) (any, error) {
		calls.Add(1)
		return "cached", nil
	}

	if _, err := store.GetOrLoad(context.Background(), "k", loader); err != nil {
		t.Fatalf("first GetOrLoad error: %v", err)
	}
	if _, err := store.GetOrLoad(context.Background(), "k", loader); err != nil {
		t.Fatalf("second GetOrLoad error: %v", err)
	}

	if got := calls.Load(); got != 1 {
		t.Fatalf("loader called %d times, want 1", got)
	}
}

func TestStore_SetTTL_OverridesDefaultLifetime(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	now := time.Date(2026, 6, 20, 15, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	ctx := context.Background()
	store.Set(ctx, "match:41", "recent-detail")
	store.SetTTL(ctx, "match:42", "live-detail", 10*time.Second)

	now = now.Add(11 * time.Second)
	if _, ok := store.Get(ctx, "match:42"); ok {
		t.Fatalf("expected short-lived entry to expire")
	}
	if v, ok := store.Get(ctx, "match:41"); !ok || v != "recent-detail" {
		t.Fatalf("expected default-lifetime entry to survive, got %v ok=%v", v, ok)
	}

	now = now.Add(time.Minute)
	if _, ok := store.Get(ctx, "match:41"); ok {
		t.Fatalf("expected default-lifetime entry to expire after its TTL")
	}
}

func TestStore_SetTTL_ZeroKeepsEntry(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Second)
	now := time.Date(2026, 6, 20, 15, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	ctx := context.Background()
	store.SetTTL(ctx, "flags", "asset-table", 0)

	now = now.Add(24 * time.Hour)
	if v, ok := store.Get(ctx, "flags"); !ok || v != "asset-table" {
		t.Fatalf("expected pinned entry to survive, got %v ok=%v", v, ok)
	}
}

var errUnexpectedValue = errors.New("unexpected loaded value")
