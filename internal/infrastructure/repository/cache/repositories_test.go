package cache

import (
	"context"
	"testing"
	"time"

	"github.com/moundworks/pitchlab/internal/domain/outing"
	"github.com/moundworks/pitchlab/internal/domain/pitch"
	"github.com/moundworks/pitchlab/internal/infrastructure/repository/memory"
	basecache "github.com/moundworks/pitchlab/internal/platform/cache"
)

func TestOutingRepository_CreateInvalidatesListings(t *testing.T) {
	ctx := context.Background()
	repo := NewOutingRepository(memory.NewOutingRepository(memory.SeedOutings()), basecache.NewStore(time.Minute))

	before, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}

	item := outing.Outing{
		ID:        "out-cache-001",
		PitcherID: "pitcher-maddux",
		Date:      time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC),
		EventType: outing.EventBullpen,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
	if err := repo.Create(ctx, item); err != nil {
		t.Fatalf("create: %v", err)
	}

	after, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list after create: %v", err)
	}
	if len(after) != len(before)+1 {
		t.Fatalf("expected %d outings after create, got %d", len(before)+1, len(after))
	}

	got, exists, err := repo.Get(ctx, "out-cache-001")
	if err != nil || !exists {
		t.Fatalf("get created outing: exists=%t err=%v", exists, err)
	}
	if got.PitcherID != "pitcher-maddux" {
		t.Fatalf("unexpected pitcher id: %q", got.PitcherID)
	}
}

func TestOutingRepository_ReturnsClones(t *testing.T) {
	ctx := context.Background()
	repo := NewOutingRepository(memory.NewOutingRepository(memory.SeedOutings()), basecache.NewStore(time.Minute))

	first, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(first) == 0 {
		t.Fatal("expected seeded outings")
	}
	first[0].Notes = "mutated by caller"
	if first[0].Strikes != nil {
		*first[0].Strikes = -99
	}

	second, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list again: %v", err)
	}
	if second[0].Notes == "mutated by caller" {
		t.Fatal("cached outing shares memory with caller")
	}
	if second[0].Strikes != nil && *second[0].Strikes == -99 {
		t.Fatal("cached strikes pointer shared with caller")
	}
}

func TestPitchRepository_AppendInvalidates(t *testing.T) {
	ctx := context.Background()
	repo := NewPitchRepository(memory.NewPitchRepository(nil), basecache.NewStore(time.Minute))

	empty, err := repo.ListByOuting(ctx, "out-cache-001")
	if err != nil {
		t.Fatalf("list by outing: %v", err)
	}
	if len(empty) != 0 {
		t.Fatalf("expected no events, got %d", len(empty))
	}

	events := []pitch.Event{{
		OutingID:    "out-cache-001",
		PitcherID:   "pitcher-maddux",
		PitchNumber: 1,
		PitchType:   pitch.TypeFastball,
		X:           0,
		Y:           0,
		IsStrike:    true,
		CreatedAt:   time.Now().UTC(),
	}}
	if err := repo.Append(ctx, events); err != nil {
		t.Fatalf("append: %v", err)
	}

	got, err := repo.ListByOuting(ctx, "out-cache-001")
	if err != nil {
		t.Fatalf("list after append: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 event after append, got %d", len(got))
	}
}

func TestLabelRepository_SetOverrideInvalidates(t *testing.T) {
	ctx := context.Background()
	repo := NewLabelRepository(memory.NewLabelRepository(), basecache.NewStore(time.Minute))

	initial, err := repo.ListOverrides(ctx, "pitcher-maddux")
	if err != nil {
		t.Fatalf("list overrides: %v", err)
	}
	if len(initial) != 0 {
		t.Fatalf("expected no overrides, got %d", len(initial))
	}

	if err := repo.SetOverride(ctx, "pitcher-maddux", pitch.TypeCurve, "Yakker"); err != nil {
		t.Fatalf("set override: %v", err)
	}

	got, err := repo.ListOverrides(ctx, "pitcher-maddux")
	if err != nil {
		t.Fatalf("list overrides after set: %v", err)
	}
	if got[pitch.TypeCurve] != "Yakker" {
		t.Fatalf("expected override to be visible, got %v", got)
	}
}
