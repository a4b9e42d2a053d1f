package redis

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

// mapKV is an in-memory KV for tests; fail switches every call to an error.
type mapKV struct {
	mu   sync.Mutex
	m    map[string]string
	fail bool
}

func newMapKV() *mapKV {
	return &mapKV{m: make(map[string]string)}
}

func (kv *mapKV) Get(_ context.Context, key string) (string, bool, error) {
	kv.mu.Lock()
	defer kv.mu.Unlock()
	if kv.fail {
		return "", false, errors.New("kv down")
	}
	v, ok := kv.m[key]
	return v, ok, nil
}

func (kv *mapKV) Set(_ context.Context, key, val string, _ time.Duration) error {
	kv.mu.Lock()
	defer kv.mu.Unlock()
	if kv.fail {
		return errors.New("kv down")
	}
	kv.m[key] = val
	return nil
}

func (kv *mapKV) Clear(_ context.Context) error {
	kv.mu.Lock()
	defer kv.mu.Unlock()
	if kv.fail {
		return errors.New("kv down")
	}
	kv.m = make(map[string]string)
	return nil
}

func TestGetOrSetJSON_PopulatesAndServesFromCache(t *testing.T) {
	ctx := context.Background()
	kv := newMapKV()
	c := New(kv)

	calls := 0
	loader := func(ctx context.Context) ([]int, error) {
		calls++
		return []int{1, 2, 3}, nil
	}

	for i := 0; i < 3; i++ {
		got, err := GetOrSetJSON(ctx, c, "k", time.Minute, loader)
		if err != nil {
			t.Fatalf("get or set: %v", err)
		}
		if len(got) != 3 {
			t.Fatalf("expected 3 elements, got %v", got)
		}
	}
	if calls != 1 {
		t.Errorf("loader should run once, ran %d times", calls)
	}
}

func TestGetOrSetJSON_KVFailureDegradesToLoader(t *testing.T) {
	ctx := context.Background()
	kv := newMapKV()
	kv.fail = true
	c := New(kv)

	got, err := GetOrSetJSON(ctx, c, "k", time.Minute, func(ctx context.Context) (string, error) {
		return "fresh", nil
	})
	if err != nil {
		t.Fatalf("kv failure must not fail the read: %v", err)
	}
	if got != "fresh" {
		t.Errorf("expected loader result, got %q", got)
	}
}

func TestGetOrSetJSON_LoaderErrorPropagates(t *testing.T) {
	ctx := context.Background()
	c := New(newMapKV())

	boom := errors.New("boom")
	_, err := GetOrSetJSON(ctx, c, "k", time.Minute, func(ctx context.Context) (int, error) {
		return 0, boom
	})
	if !errors.Is(err, boom) {
		t.Errorf("expected loader error, got %v", err)
	}
}

func TestInvalidateAll_ForcesReload(t *testing.T) {
	ctx := context.Background()
	kv := newMapKV()
	c := New(kv)

	calls := 0
	loader := func(ctx context.Context) (int, error) {
		calls++
		return calls, nil
	}

	if _, err := GetOrSetJSON(ctx, c, "k", time.Minute, loader); err != nil {
		t.Fatalf("first read: %v", err)
	}
	if err := c.InvalidateAll(ctx); err != nil {
		t.Fatalf("invalidate: %v", err)
	}

	got, err := GetOrSetJSON(ctx, c, "k", time.Minute, loader)
	if err != nil {
		t.Fatalf("second read: %v", err)
	}
	if got != 2 {
		t.Errorf("expected reload after invalidation, got %d", got)
	}
}
