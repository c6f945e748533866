package memory

import (
	"time"

	"github.com/moundworks/pitchlab/internal/domain/outing"
	"github.com/moundworks/pitchlab/internal/domain/pitch"
)

const (
	PitcherIDMaddux = "pitcher-maddux"
	PitcherIDRyan   = "pitcher-ryan"
	PitcherIDUehara = "pitcher-uehara"
)

func seedDay(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func intPtr(v int) *int {
	return &v
}

func floatPtr(v float64) *float64 {
	return &v
}

func SeedOutings() []outing.Outing {
	created := time.Date(2026, 8, 15, 9, 0, 0, 0, time.UTC)

	return []outing.Outing{
		{
			ID:          "out-maddux-001",
			PitcherID:   PitcherIDMaddux,
			PitcherName: "Greg M.",
			Date:        seedDay(2026, 7, 5),
			EventType:   outing.EventBullpen,
			PitchCount:  35,
			Strikes:     intPtr(27),
			MaxVelo:     floatPtr(68.5),
			Focus:       "Glove-side command",
			CreatedAt:   created,
			UpdatedAt:   created,
		},
		{
			ID:          "out-maddux-002",
			PitcherID:   PitcherIDMaddux,
			PitcherName: "Greg M.",
			Date:        seedDay(2026, 7, 19),
			EventType:   outing.EventGame,
			PitchCount:  48,
			Strikes:     intPtr(33),
			MaxVelo:     floatPtr(69.0),
			Notes:       "4 innings, 1 walk",
			CreatedAt:   created,
			UpdatedAt:   created,
		},
		{
			ID:          "out-maddux-003",
			PitcherID:   PitcherIDMaddux,
			PitcherName: "Greg M.",
			Date:        seedDay(2026, 8, 9),
			EventType:   outing.EventGame,
			PitchCount:  52,
			Strikes:     intPtr(38),
			MaxVelo:     floatPtr(71.5),
			CoachNotes:  "Velo ticking up, keep the long toss program",
			CreatedAt:   created,
			UpdatedAt:   created,
		},
		{
			ID:          "out-maddux-004",
			PitcherID:   PitcherIDMaddux,
			PitcherName: "Greg M.",
			Date:        seedDay(2026, 8, 14),
			EventType:   outing.EventPractice,
			PitchCount:  20,
			Strikes:     nil,
			MaxVelo:     nil,
			Notes:       "Flat-ground work, strikes not tracked",
			CreatedAt:   created,
			UpdatedAt:   created,
		},
		{
			ID:          "out-ryan-001",
			PitcherID:   PitcherIDRyan,
			PitcherName: "Nolan R.",
			Date:        seedDay(2026, 7, 26),
			EventType:   outing.EventGame,
			PitchCount:  40,
			Strikes:     intPtr(22),
			MaxVelo:     floatPtr(74.0),
			CreatedAt:   created,
			UpdatedAt:   created,
		},
		{
			ID:          "out-ryan-002",
			PitcherID:   PitcherIDRyan,
			PitcherName: "Nolan R.",
			Date:        seedDay(2026, 8, 12),
			EventType:   outing.EventBullpen,
			PitchCount:  30,
			Strikes:     intPtr(18),
			MaxVelo:     floatPtr(75.5),
			Focus:       "Slowing down the curveball arm speed",
			CreatedAt:   created,
			UpdatedAt:   created,
		},
		{
			ID:          "out-uehara-001",
			PitcherID:   PitcherIDUehara,
			PitcherName: "Koji U.",
			Date:        seedDay(2026, 8, 2),
			EventType:   outing.EventExternal,
			PitchCount:  25,
			Strikes:     intPtr(19),
			MaxVelo:     floatPtr(65.0),
			Notes:       "Showcase outing",
			CreatedAt:   created,
			UpdatedAt:   created,
		},
	}
}

// SeedPitchEvents charts part of the seed outings. Locations run through the
// live classifier so the stored flags always match the zone constants the
// build ships with.
func SeedPitchEvents() []pitch.Event {
	created := time.Date(2026, 8, 15, 9, 0, 0, 0, time.UTC)

	chart := func(outingID, pitcherID string, pitchType pitch.Type, locations [][2]float64) []pitch.Event {
		out := make([]pitch.Event, 0, len(locations))
		for i, loc := range locations {
			out = append(out, pitch.Event{
				OutingID:    outingID,
				PitcherID:   pitcherID,
				PitchNumber: i + 1,
				PitchType:   pitchType,
				X:           loc[0],
				Y:           loc[1],
				IsStrike:    pitch.IsStrike(loc[0], loc[1]),
				CreatedAt:   created,
			})
		}
		return out
	}

	events := chart("out-maddux-002", PitcherIDMaddux, pitch.TypeFastball, [][2]float64{
		{0.05, 0.38}, {-0.12, 0.40}, {0.10, 0.42}, {-0.02, 0.35}, {0.30, 0.10},
		{-0.35, -0.05}, {0.02, -0.40}, {-0.10, -0.42}, {0.55, 0.20}, {0.00, 0.00},
	})
	events = append(events, chart("out-maddux-003", PitcherIDMaddux, pitch.TypeCurve, [][2]float64{
		{-0.05, -0.38}, {0.08, -0.41}, {-0.15, -0.35}, {0.02, -0.44}, {0.12, -0.39},
		{-0.30, -0.60}, {0.25, 0.05}, {-0.02, 0.10},
	})...)
	events = append(events, chart("out-ryan-001", PitcherIDRyan, pitch.TypeFastball, [][2]float64{
		{0.20, 0.55}, {-0.25, 0.48}, {0.10, 0.60}, {0.00, 0.30}, {0.45, -0.20},
		{-0.50, 0.15},
	})...)

	return events
}
