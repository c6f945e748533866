package usecase

import (
	"errors"
	"testing"
	"time"

	"github.com/moundworks/pitchlab/internal/domain/outing"
	"github.com/moundworks/pitchlab/internal/infrastructure/repository/memory"
)

func TestTrendService_ComparePitcher(t *testing.T) {
	asOf := time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC)

	outingRepo := memory.NewOutingRepository([]outing.Outing{
		// Current window: [Aug 8, Aug 15).
		{ID: "c1", PitcherID: "p1", Date: day(2026, 8, 10), EventType: outing.EventGame, PitchCount: 40, Strikes: intPtr(30), MaxVelo: floatPtr(72)},
		{ID: "c2", PitcherID: "p1", Date: day(2026, 8, 12), EventType: outing.EventBullpen, PitchCount: 20, Strikes: nil, MaxVelo: floatPtr(70)},
		// Previous window: [Aug 1, Aug 8).
		{ID: "v1", PitcherID: "p1", Date: day(2026, 8, 3), EventType: outing.EventGame, PitchCount: 30, Strikes: intPtr(18), MaxVelo: floatPtr(69)},
		// Outside both windows.
		{ID: "x1", PitcherID: "p1", Date: day(2026, 7, 20), EventType: outing.EventGame, PitchCount: 50, Strikes: intPtr(40)},
		// Another pitcher, must be ignored.
		{ID: "z1", PitcherID: "p2", Date: day(2026, 8, 10), EventType: outing.EventGame, PitchCount: 60, Strikes: intPtr(50)},
	})

	service := NewTrendService(outingRepo, discardLogger())

	comparison, err := service.ComparePitcher(t.Context(), "p1", asOf)
	if err != nil {
		t.Fatalf("compare pitcher: %v", err)
	}

	current := comparison.Current
	if current.TotalPitches != 60 || current.OutingCount != 2 {
		t.Fatalf("unexpected current window totals: %+v", current)
	}
	if current.StrikePct == nil || *current.StrikePct != 75 {
		t.Fatalf("strike%% must exclude the untracked outing: %+v", current.StrikePct)
	}
	if current.MinVelo == nil || *current.MinVelo != 70 || current.MaxVelo == nil || *current.MaxVelo != 72 {
		t.Fatalf("unexpected velo extremes: min=%v max=%v", current.MinVelo, current.MaxVelo)
	}
	if current.AvgVelo == nil || *current.AvgVelo != 71 {
		t.Fatalf("unexpected avg velo: %v", current.AvgVelo)
	}
	if current.CountByEventType[outing.EventGame] != 1 || current.CountByEventType[outing.EventBullpen] != 1 {
		t.Fatalf("unexpected event type breakdown: %+v", current.CountByEventType)
	}

	previous := comparison.Previous
	if previous.TotalPitches != 30 || previous.OutingCount != 1 {
		t.Fatalf("unexpected previous window totals: %+v", previous)
	}
	if previous.StrikePct == nil || *previous.StrikePct != 60 {
		t.Fatalf("unexpected previous strike%%: %v", previous.StrikePct)
	}

	if comparison.Directions["total_pitches"] != TrendUp {
		t.Fatalf("60 vs 30 pitches must trend up: %+v", comparison.Directions)
	}
	if comparison.Directions["strike_pct"] != TrendUp {
		t.Fatalf("75%% vs 60%% must trend up: %+v", comparison.Directions)
	}
	if comparison.Directions["max_velo"] != TrendUp {
		t.Fatalf("72 vs 69 must trend up: %+v", comparison.Directions)
	}
}

func TestTrendService_ComparePitcher_EmptyPreviousWindowIsNeutral(t *testing.T) {
	asOf := time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC)

	outingRepo := memory.NewOutingRepository([]outing.Outing{
		{ID: "c1", PitcherID: "p1", Date: day(2026, 8, 10), EventType: outing.EventGame, PitchCount: 40, Strikes: intPtr(30)},
	})
	service := NewTrendService(outingRepo, discardLogger())

	comparison, err := service.ComparePitcher(t.Context(), "p1", asOf)
	if err != nil {
		t.Fatalf("compare pitcher: %v", err)
	}

	for metric, direction := range comparison.Directions {
		if direction != TrendNeutral {
			t.Fatalf("metric %s must be neutral against an empty prior window, got %s", metric, direction)
		}
	}
}

func TestTrendService_WindowBoundsAreHalfOpen(t *testing.T) {
	asOf := time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC)

	outingRepo := memory.NewOutingRepository([]outing.Outing{
		// Exactly at the window start: included.
		{ID: "s1", PitcherID: "p1", Date: day(2026, 8, 8), EventType: outing.EventGame, PitchCount: 10},
		// Exactly at asOf: excluded from the current window.
		{ID: "e1", PitcherID: "p1", Date: day(2026, 8, 15), EventType: outing.EventGame, PitchCount: 99},
	})
	service := NewTrendService(outingRepo, discardLogger())

	comparison, err := service.ComparePitcher(t.Context(), "p1", asOf)
	if err != nil {
		t.Fatalf("compare pitcher: %v", err)
	}
	if comparison.Current.TotalPitches != 10 {
		t.Fatalf("half-open window broken: %+v", comparison.Current)
	}
	// The boundary outing must not leak into the previous window either.
	if comparison.Previous.OutingCount != 0 {
		t.Fatalf("previous window must be empty: %+v", comparison.Previous)
	}
}

func TestTrendService_CompareTeam_UniquePitchers(t *testing.T) {
	asOf := time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC)

	outingRepo := memory.NewOutingRepository([]outing.Outing{
		{ID: "a1", PitcherID: "p1", Date: day(2026, 8, 9), EventType: outing.EventGame, PitchCount: 30},
		{ID: "a2", PitcherID: "p1", Date: day(2026, 8, 11), EventType: outing.EventBullpen, PitchCount: 20},
		{ID: "b1", PitcherID: "p2", Date: day(2026, 8, 12), EventType: outing.EventGame, PitchCount: 25},
	})
	service := NewTrendService(outingRepo, discardLogger())

	comparison, err := service.CompareTeam(t.Context(), asOf)
	if err != nil {
		t.Fatalf("compare team: %v", err)
	}
	if comparison.Current.UniquePitchers != 2 {
		t.Fatalf("expected 2 unique pitchers, got %d", comparison.Current.UniquePitchers)
	}
	if comparison.Current.TotalPitches != 75 {
		t.Fatalf("unexpected team totals: %+v", comparison.Current)
	}
}

func TestTrendService_RequiresAsOf(t *testing.T) {
	service := NewTrendService(memory.NewOutingRepository(nil), discardLogger())

	if _, err := service.ComparePitcher(t.Context(), "p1", time.Time{}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for zero as-of, got %v", err)
	}
	if _, err := service.CompareTeam(t.Context(), time.Time{}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for zero as-of, got %v", err)
	}
}
