package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestStore_GetOrLoad_UsesSingleFlight(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	var calls atomic.Int32

	loader := func(context.Context) (any, error) {
		calls.Add(1)
		time.Sleep(20 * time.Millisecond)
		return "value", nil
	}

	const workers = 32
	start := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(workers)

	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			<-start
			v, err := store.GetOrLoad(context.Background(), "same-key", loader)
			if err != nil {
				t.Errorf("load failed: %v", err)
				return
			}
			if got, _ := v.(string); got != "value" {
				t.Errorf("unexpected value %q", got)
			}
		}()
	}

	close(start)
	wg.Wait()

	if got := calls.Load(); got != 1 {
		t.Fatalf("expected a single loader run, got %d", got)
	}
}

func TestStore_GetOrLoad_ErrorsAreNotCached(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	var calls atomic.Int32
	boom := errors.New("boom")

	loader := func(context.Context) (any, error) {
		if calls.Add(1) == 1 {
			return nil, boom
		}
		return "ok", nil
	}

	if _, err := store.GetOrLoad(context.Background(), "k", loader); !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	v, err := store.GetOrLoad(context.Background(), "k", loader)
	if err != nil {
		t.Fatalf("second load failed: %v", err)
	}
	if v.(string) != "ok" {
		t.Fatalf("unexpected value %v", v)
	}
}

func TestStore_TTLExpiry(t *testing.T) {
	t.Parallel()

	store := NewStore(10 * time.Millisecond)
	ctx := context.Background()

	store.Set(ctx, "k", 1)
	if _, ok := store.Get(ctx, "k"); !ok {
		t.Fatal("expected hit before expiry")
	}

	time.Sleep(25 * time.Millisecond)
	if _, ok := store.Get(ctx, "k"); ok {
		t.Fatal("expected miss after expiry")
	}
}

func TestStore_DeletePrefix(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	ctx := context.Background()

	store.Set(ctx, "games:epl-2025:1", 1)
	store.Set(ctx, "games:epl-2025:2", 2)
	store.Set(ctx, "games:nfl-2025:1", 3)

	store.DeletePrefix(ctx, "games:epl-2025:")

	if _, ok := store.Get(ctx, "games:epl-2025:1"); ok {
		t.Fatal("expected epl week 1 to be evicted")
	}
	if _, ok := store.Get(ctx, "games:nfl-2025:1"); !ok {
		t.Fatal("expected nfl entry to survive")
	}
}
