package cache

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestStore_SetGet(t *testing.T) {
	ctx := context.Background()
	s := NewStore(time.Minute)

	s.Set(ctx, "heatmap:p1:320:10", []byte{1, 2, 3})

	got, ok := s.Get(ctx, "heatmap:p1:320:10")
	if !ok {
		t.Fatalf("expected hit")
	}
	if b, _ := got.([]byte); len(b) != 3 {
		t.Fatalf("unexpected value: %v", got)
	}

	if _, ok := s.Get(ctx, "heatmap:p2:320:10"); ok {
		t.Fatalf("unexpected hit for missing key")
	}
}

func TestStore_ExpiresEntries(t *testing.T) {
	ctx := context.Background()
	s := NewStore(time.Minute)

	current := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return current }

	s.Set(ctx, "k", "v")
	if _, ok := s.Get(ctx, "k"); !ok {
		t.Fatalf("fresh entry must be readable")
	}

	current = current.Add(2 * time.Minute)
	if _, ok := s.Get(ctx, "k"); ok {
		t.Fatalf("expired entry must be evicted")
	}
}

func TestStore_ZeroTTLNeverExpires(t *testing.T) {
	ctx := context.Background()
	s := NewStore(0)

	current := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return current }

	s.Set(ctx, "k", "v")
	current = current.Add(24 * time.Hour)
	if _, ok := s.Get(ctx, "k"); !ok {
		t.Fatalf("zero-ttl entry must survive")
	}
}

func TestStore_DeletePrefix(t *testing.T) {
	ctx := context.Background()
	s := NewStore(time.Minute)

	s.Set(ctx, "heatmap:p1:320:10", "a")
	s.Set(ctx, "heatmap:p1:96:10", "b")
	s.Set(ctx, "heatmap:p2:320:10", "c")

	s.DeletePrefix(ctx, "heatmap:p1:")

	if _, ok := s.Get(ctx, "heatmap:p1:320:10"); ok {
		t.Fatalf("prefix delete missed a key")
	}
	if _, ok := s.Get(ctx, "heatmap:p1:96:10"); ok {
		t.Fatalf("prefix delete missed a key")
	}
	if _, ok := s.Get(ctx, "heatmap:p2:320:10"); !ok {
		t.Fatalf("prefix delete removed an unrelated key")
	}
}

func TestStore_GetOrLoad(t *testing.T) {
	ctx := context.Background()
	s := NewStore(time.Minute)

	loads := 0
	loader := func(context.Context) (any, error) {
		loads++
		return "rendered", nil
	}

	for i := 0; i < 3; i++ {
		got, err := s.GetOrLoad(ctx, "k", loader)
		if err != nil {
			t.Fatalf("GetOrLoad: %v", err)
		}
		if got != "rendered" {
			t.Fatalf("unexpected value: %v", got)
		}
	}
	if loads != 1 {
		t.Fatalf("loader ran %d times, want 1", loads)
	}
}

func TestStore_GetOrLoad_ErrorNotCached(t *testing.T) {
	ctx := context.Background()
	s := NewStore(time.Minute)

	wantErr := errors.New("load failed")
	calls := 0

	for i := 0; i < 2; i++ {
		_, err := s.GetOrLoad(ctx, "k", func(context.Context) (any, error) {
			calls++
			return nil, wantErr
		})
		if !errors.Is(err, wantErr) {
			t.Fatalf("err = %v", err)
		}
	}
	if calls != 2 {
		t.Fatalf("failed loads must not be cached, loader ran %d times", calls)
	}
}
