package usecase

import (
	"testing"
	"time"

	"github.com/moundworks/pitchlab/internal/domain/badge"
	"github.com/moundworks/pitchlab/internal/domain/outing"
	"github.com/moundworks/pitchlab/internal/domain/pitch"
	"github.com/moundworks/pitchlab/internal/infrastructure/repository/memory"
)

func newBadgeService(t *testing.T, outingRepo outing.Repository, pitchRepo pitch.Repository) *BadgeService {
	t.Helper()

	service, err := NewBadgeService(outingRepo, pitchRepo, 4, discardLogger())
	if err != nil {
		t.Fatalf("new badge service: %v", err)
	}
	t.Cleanup(service.Close)
	return service
}

func emptyBadgeService(t *testing.T) *BadgeService {
	return newBadgeService(t, memory.NewOutingRepository(nil), memory.NewPitchRepository(nil))
}

func resultByID(t *testing.T, results []badge.Result, id string) badge.Result {
	t.Helper()
	for _, result := range results {
		if result.BadgeID == id {
			return result
		}
	}
	t.Fatalf("no result for badge %s", id)
	return badge.Result{}
}

func trackedOuting(id string, year, month, dayOfMonth, pitchCount, strikes int) outing.Outing {
	return outing.Outing{
		ID:         id,
		PitcherID:  "pitcher-1",
		Date:       day(year, time.Month(month), dayOfMonth),
		EventType:  outing.EventGame,
		PitchCount: pitchCount,
		Strikes:    intPtr(strikes),
	}
}

func TestBadgeService_Evaluate_EmptyInput(t *testing.T) {
	service := emptyBadgeService(t)

	results := service.Evaluate(t.Context(), EvaluationInput{})

	definitions := badge.Definitions()
	if len(results) != len(definitions) {
		t.Fatalf("expected %d results, got %d", len(definitions), len(results))
	}
	for i, result := range results {
		if result.BadgeID != definitions[i].ID {
			t.Fatalf("result %d out of catalog order: %s vs %s", i, result.BadgeID, definitions[i].ID)
		}
		if result.Earned {
			t.Fatalf("badge %s earned with no data", result.BadgeID)
		}
		if result.Progress != 0 {
			t.Fatalf("badge %s progress %f with no data", result.BadgeID, result.Progress)
		}
		if result.Detail == "" {
			t.Fatalf("badge %s missing shortfall detail", result.BadgeID)
		}
	}
}

func TestBadgeService_ZoneMaster(t *testing.T) {
	service := emptyBadgeService(t)

	// (27+20)/(35+35) = 67.14%, above the 65% bar.
	results := service.Evaluate(t.Context(), EvaluationInput{Outings: []outing.Outing{
		trackedOuting("o1", 2026, 7, 1, 35, 27),
		trackedOuting("o2", 2026, 7, 8, 35, 20),
	}})

	zone := resultByID(t, results, badge.IDZoneMaster)
	if !zone.Earned {
		t.Fatalf("expected Zone Master earned at 67.14%%: %+v", zone)
	}
	if zone.Progress != 100 {
		t.Fatalf("progress above threshold must clamp to 100, got %f", zone.Progress)
	}
}

func TestBadgeService_ZoneMaster_NullStrikesExcluded(t *testing.T) {
	service := emptyBadgeService(t)

	untracked := outing.Outing{
		ID:         "o1",
		PitcherID:  "pitcher-1",
		Date:       day(2026, 7, 1),
		EventType:  outing.EventPractice,
		PitchCount: 50,
		Strikes:    nil,
	}
	results := service.Evaluate(t.Context(), EvaluationInput{Outings: []outing.Outing{
		untracked,
		trackedOuting("o2", 2026, 7, 8, 50, 40),
	}})

	zone := resultByID(t, results, badge.IDZoneMaster)
	if !zone.Earned {
		t.Fatalf("null-strikes outing must not dilute the percentage: %+v", zone)
	}
	if zone.Detail != "80.0% strikes across tracked outings" {
		t.Fatalf("expected 80%% overall, got detail %q", zone.Detail)
	}
}

func TestBadgeService_SniperStatus_CenterPitchesDoNotCount(t *testing.T) {
	service := emptyBadgeService(t)

	center := make([]pitch.Event, 0, 5)
	for i := 0; i < 5; i++ {
		center = append(center, pitch.Event{
			OutingID:    "o1",
			PitcherID:   "pitcher-1",
			PitchNumber: i + 1,
			PitchType:   pitch.TypeFastball,
			X:           0,
			Y:           0,
			IsStrike:    true,
		})
	}

	results := service.Evaluate(t.Context(), EvaluationInput{Events: center})
	sniper := resultByID(t, results, badge.IDSniperStatus)
	if sniper.Earned {
		t.Fatalf("center pitches are not shadow-zone pitches: %+v", sniper)
	}
	if sniper.Progress != 0 {
		t.Fatalf("no shadow-zone pitches means zero progress, got %f", sniper.Progress)
	}
}

func TestBadgeService_SniperStatus_EarnedInSingleOuting(t *testing.T) {
	service := emptyBadgeService(t)

	shadow := make([]pitch.Event, 0, 5)
	for i := 0; i < 5; i++ {
		shadow = append(shadow, pitch.Event{
			OutingID:    "o1",
			PitcherID:   "pitcher-1",
			PitchNumber: i + 1,
			PitchType:   pitch.TypeFastball,
			X:           0.35,
			Y:           0,
			IsStrike:    true,
		})
	}
	// A second outing with fewer shadow pitches must not matter: the rule is
	// max over outings, not a sum.
	shadow = append(shadow, pitch.Event{
		OutingID:    "o2",
		PitcherID:   "pitcher-1",
		PitchNumber: 1,
		PitchType:   pitch.TypeFastball,
		X:           0.35,
		Y:           0,
		IsStrike:    true,
	})

	results := service.Evaluate(t.Context(), EvaluationInput{Events: shadow})
	sniper := resultByID(t, results, badge.IDSniperStatus)
	if !sniper.Earned || sniper.Progress != 100 {
		t.Fatalf("expected Sniper Status earned: %+v", sniper)
	}
}

func TestBadgeService_BridgeBuilder(t *testing.T) {
	service := emptyBadgeService(t)

	events := []pitch.Event{
		{OutingID: "o1", PitcherID: "p", PitchNumber: 1, PitchType: pitch.TypeCurve, IsStrike: true},
		{OutingID: "o1", PitcherID: "p", PitchNumber: 2, PitchType: pitch.TypeSlider, IsStrike: true},
		{OutingID: "o1", PitcherID: "p", PitchNumber: 3, PitchType: pitch.TypeChangeup, IsStrike: false},
		{OutingID: "o1", PitcherID: "p", PitchNumber: 4, PitchType: pitch.TypeCurve, IsStrike: false},
		// Fastballs never enter the off-speed pool, strikes or not.
		{OutingID: "o1", PitcherID: "p", PitchNumber: 5, PitchType: pitch.TypeFastball, IsStrike: true},
	}

	results := service.Evaluate(t.Context(), EvaluationInput{Events: events})
	bridge := resultByID(t, results, badge.IDBridgeBuilder)
	if !bridge.Earned {
		t.Fatalf("50%% off-speed strikes must earn Bridge Builder: %+v", bridge)
	}
	if bridge.Progress != 100 {
		t.Fatalf("expected progress 100 at exactly 50%%, got %f", bridge.Progress)
	}
}

func TestBadgeService_VelocityJump(t *testing.T) {
	service := emptyBadgeService(t)

	older := outing.Outing{
		ID: "o1", PitcherID: "pitcher-1", Date: day(2026, 7, 1),
		EventType: outing.EventGame, PitchCount: 30, MaxVelo: floatPtr(50),
	}
	newer := outing.Outing{
		ID: "o2", PitcherID: "pitcher-1", Date: day(2026, 8, 5),
		EventType: outing.EventGame, PitchCount: 30, MaxVelo: floatPtr(53),
	}

	results := service.Evaluate(t.Context(), EvaluationInput{Outings: []outing.Outing{older, newer}})
	jump := resultByID(t, results, badge.IDVelocityJump)
	if !jump.Earned {
		t.Fatalf("3 mph jump over a 35-day-old baseline must earn: %+v", jump)
	}
	if jump.Progress != 100 {
		t.Fatalf("expected progress 100, got %f", jump.Progress)
	}
}

func TestBadgeService_VelocityJump_NeedsBaseline(t *testing.T) {
	service := emptyBadgeService(t)

	// Two readings ten days apart: no outing is older than the 30-day window.
	results := service.Evaluate(t.Context(), EvaluationInput{Outings: []outing.Outing{
		{ID: "o1", PitcherID: "p", Date: day(2026, 8, 1), EventType: outing.EventGame, MaxVelo: floatPtr(60)},
		{ID: "o2", PitcherID: "p", Date: day(2026, 8, 11), EventType: outing.EventGame, MaxVelo: floatPtr(63)},
	}})

	jump := resultByID(t, results, badge.IDVelocityJump)
	if jump.Earned || jump.Progress != 0 {
		t.Fatalf("expected unearned with zero progress: %+v", jump)
	}
	if jump.Detail != "Need 30+ days of velocity history" {
		t.Fatalf("unexpected detail: %q", jump.Detail)
	}
}

func TestBadgeService_Terminator(t *testing.T) {
	service := emptyBadgeService(t)

	results := service.Evaluate(t.Context(), EvaluationInput{Outings: []outing.Outing{
		trackedOuting("o1", 2026, 7, 1, 30, 22),  // 73.3%, qualifies
		trackedOuting("o2", 2026, 7, 8, 25, 25),  // 100% but under 30 pitches
		trackedOuting("o3", 2026, 7, 15, 40, 20), // 50%
	}})

	term := resultByID(t, results, badge.IDTerminator)
	if !term.Earned {
		t.Fatalf("73.3%% in a 30-pitch outing must earn Terminator: %+v", term)
	}
}

func TestBadgeService_PowerPrecision(t *testing.T) {
	service := emptyBadgeService(t)

	own := []outing.Outing{{
		ID: "o1", PitcherID: "pitcher-1", Date: day(2026, 8, 1), EventType: outing.EventGame,
		PitchCount: 40, Strikes: intPtr(26), MaxVelo: floatPtr(75),
	}}
	team := []outing.Outing{
		own[0],
		{ID: "t1", PitcherID: "pitcher-2", Date: day(2026, 8, 1), EventType: outing.EventGame, MaxVelo: floatPtr(70)},
		{ID: "t2", PitcherID: "pitcher-3", Date: day(2026, 8, 1), EventType: outing.EventGame, MaxVelo: floatPtr(68)},
		{ID: "t3", PitcherID: "pitcher-4", Date: day(2026, 8, 1), EventType: outing.EventGame, MaxVelo: floatPtr(66)},
	}

	results := service.Evaluate(t.Context(), EvaluationInput{Outings: own, TeamOutings: team})
	power := resultByID(t, results, badge.IDPowerPrecision)
	if !power.Earned {
		t.Fatalf("hardest thrower at 65%% strikes must earn: %+v", power)
	}

	// Slowest arm on the roster misses the velocity leg even with strikes.
	slow := []outing.Outing{{
		ID: "o2", PitcherID: "pitcher-4", Date: day(2026, 8, 1), EventType: outing.EventGame,
		PitchCount: 40, Strikes: intPtr(28), MaxVelo: floatPtr(66),
	}}
	results = service.Evaluate(t.Context(), EvaluationInput{Outings: slow, TeamOutings: team})
	power = resultByID(t, results, badge.IDPowerPrecision)
	if power.Earned {
		t.Fatalf("bottom-quartile velocity must not earn: %+v", power)
	}
	if power.Progress <= 0 || power.Progress >= 100 {
		t.Fatalf("expected partial progress, got %f", power.Progress)
	}
}

func TestBadgeService_Stratosphere(t *testing.T) {
	service := emptyBadgeService(t)

	events := make([]pitch.Event, 0, 5)
	for i := 0; i < 4; i++ {
		events = append(events, pitch.Event{
			OutingID: "o1", PitcherID: "p", PitchNumber: i + 1,
			PitchType: pitch.TypeFastball, X: 0, Y: 0.3, IsStrike: true,
		})
	}
	// A high curveball is not a fastball; it must not count.
	events = append(events, pitch.Event{
		OutingID: "o1", PitcherID: "p", PitchNumber: 5,
		PitchType: pitch.TypeCurve, X: 0, Y: 0.3, IsStrike: true,
	})

	results := service.Evaluate(t.Context(), EvaluationInput{Events: events})
	strat := resultByID(t, results, badge.IDStratosphere)
	if !strat.Earned || strat.Progress != 100 {
		t.Fatalf("four top-third fastballs must earn Stratosphere: %+v", strat)
	}
}

func TestBadgeService_RepeatableMotion(t *testing.T) {
	service := emptyBadgeService(t)

	results := service.Evaluate(t.Context(), EvaluationInput{Outings: []outing.Outing{
		trackedOuting("o1", 2026, 7, 1, 100, 60),  // 60%
		trackedOuting("o2", 2026, 7, 8, 100, 62),  // +2
		trackedOuting("o3", 2026, 7, 15, 100, 58), // -4
	}})

	motion := resultByID(t, results, badge.IDRepeatableMotion)
	if !motion.Earned {
		t.Fatalf("three outings within 5 points must earn: %+v", motion)
	}

	// A wild swing breaks the streak.
	results = service.Evaluate(t.Context(), EvaluationInput{Outings: []outing.Outing{
		trackedOuting("o1", 2026, 7, 1, 100, 60),
		trackedOuting("o2", 2026, 7, 8, 100, 75),
		trackedOuting("o3", 2026, 7, 15, 100, 58),
	}})
	motion = resultByID(t, results, badge.IDRepeatableMotion)
	if motion.Earned {
		t.Fatalf("broken streak must not earn: %+v", motion)
	}
}

func TestBadgeService_EarlyCountKiller(t *testing.T) {
	service := emptyBadgeService(t)

	events := make([]pitch.Event, 0, 9)
	for i := 0; i < 5; i++ {
		events = append(events, pitch.Event{
			OutingID: "o1", PitcherID: "p", PitchNumber: i + 1,
			PitchType: pitch.TypeFastball, IsStrike: i < 3, // 3 of 5 = 60%
		})
	}
	// Four charted pitches never qualify, even at 100%.
	for i := 0; i < 4; i++ {
		events = append(events, pitch.Event{
			OutingID: "o2", PitcherID: "p", PitchNumber: i + 1,
			PitchType: pitch.TypeFastball, IsStrike: true,
		})
	}

	results := service.Evaluate(t.Context(), EvaluationInput{Events: events})
	early := resultByID(t, results, badge.IDEarlyCountKiller)
	if !early.Earned {
		t.Fatalf("60%% zone rate over 5 pitches must earn: %+v", early)
	}
}

func TestBadgeService_EvaluateForPitcher(t *testing.T) {
	outingRepo := memory.NewOutingRepository(memory.SeedOutings())
	pitchRepo := memory.NewPitchRepository(memory.SeedPitchEvents())
	service := newBadgeService(t, outingRepo, pitchRepo)

	results, err := service.EvaluateForPitcher(t.Context(), memory.PitcherIDMaddux)
	if err != nil {
		t.Fatalf("evaluate for pitcher: %v", err)
	}
	if len(results) != len(badge.Definitions()) {
		t.Fatalf("expected a result per definition, got %d", len(results))
	}

	if _, err := service.EvaluateForPitcher(t.Context(), ""); err == nil {
		t.Fatalf("expected error for empty pitcher id")
	}
}
