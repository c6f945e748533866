package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/sourcegraph/conc"

	"github.com/moundworks/pitchlab/internal/domain/outing"
)

// TrendService rolls up outings into windowed statistics. All windows are
// anchored on an explicit as-of time supplied by the caller; this layer never
// reads the wall clock, so identical inputs always produce identical rollups.
type TrendService struct {
	outingRepo outing.Repository
	logger     *slog.Logger
}

func NewTrendService(outingRepo outing.Repository, logger *slog.Logger) *TrendService {
	return &TrendService{
		outingRepo: outingRepo,
		logger:     logger,
	}
}

const trendWindow = 7 * 24 * time.Hour

// WindowBounds is a half-open interval [Start, End).
type WindowBounds struct {
	Start time.Time
	End   time.Time
}

func (b WindowBounds) contains(t time.Time) bool {
	return !t.Before(b.Start) && t.Before(b.End)
}

// WindowStats aggregates the outings falling inside one window. Pointer
// fields are nil when the window holds no data for that metric, never zero.
type WindowStats struct {
	TotalPitches     int
	StrikePct        *float64
	MinVelo          *float64
	MaxVelo          *float64
	AvgVelo          *float64
	OutingCount      int
	CountByEventType map[outing.EventType]int
	UniquePitchers   int
}

const (
	TrendUp      = "up"
	TrendDown    = "down"
	TrendNeutral = "neutral"
)

// Comparison holds the trailing window against the one before it plus a
// per-metric direction verdict.
type Comparison struct {
	CurrentWindow  WindowBounds
	PreviousWindow WindowBounds
	Current        WindowStats
	Previous       WindowStats
	Directions     map[string]string
}

// ComparePitcher computes trailing-7-day vs prior-7-day stats for one
// pitcher, anchored at asOf.
func (s *TrendService) ComparePitcher(ctx context.Context, pitcherID string, asOf time.Time) (Comparison, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TrendService.ComparePitcher")
	defer span.End()

	if pitcherID == "" {
		return Comparison{}, fmt.Errorf("%w: pitcher id is required", ErrInvalidInput)
	}
	if asOf.IsZero() {
		return Comparison{}, fmt.Errorf("%w: as-of time is required", ErrInvalidInput)
	}

	outings, err := s.outingRepo.ListByPitcher(ctx, pitcherID)
	if err != nil {
		return Comparison{}, fmt.Errorf("list outings for trends: %w", err)
	}

	comparison := compareWindows(outings, asOf)
	s.logger.DebugContext(ctx, "pitcher trend computed",
		"pitcher_id", pitcherID,
		"window_outings", comparison.Current.OutingCount,
	)
	return comparison, nil
}

// CompareTeam computes the same rollup across the whole roster; the
// unique-pitcher count is only meaningful here.
func (s *TrendService) CompareTeam(ctx context.Context, asOf time.Time) (Comparison, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TrendService.CompareTeam")
	defer span.End()

	if asOf.IsZero() {
		return Comparison{}, fmt.Errorf("%w: as-of time is required", ErrInvalidInput)
	}

	outings, err := s.outingRepo.List(ctx)
	if err != nil {
		return Comparison{}, fmt.Errorf("list roster outings for trends: %w", err)
	}

	return compareWindows(outings, asOf), nil
}

func compareWindows(outings []outing.Outing, asOf time.Time) Comparison {
	asOf = asOf.UTC()
	currentBounds := WindowBounds{Start: asOf.Add(-trendWindow), End: asOf}
	previousBounds := WindowBounds{Start: asOf.Add(-2 * trendWindow), End: asOf.Add(-trendWindow)}

	var current, previous WindowStats
	var wg conc.WaitGroup
	wg.Go(func() { current = ComputeWindowStats(outings, currentBounds) })
	wg.Go(func() { previous = ComputeWindowStats(outings, previousBounds) })
	wg.Wait()

	return Comparison{
		CurrentWindow:  currentBounds,
		PreviousWindow: previousBounds,
		Current:        current,
		Previous:       previous,
		Directions:     directions(current, previous),
	}
}

// ComputeWindowStats aggregates the outings inside bounds. Untracked strike
// outings are excluded from the strike percentage entirely.
func ComputeWindowStats(outings []outing.Outing, bounds WindowBounds) WindowStats {
	stats := WindowStats{CountByEventType: make(map[outing.EventType]int)}

	strikes, trackedPitches := 0, 0
	veloSum, veloCount := 0.0, 0
	pitchers := make(map[string]struct{})

	for _, item := range outings {
		if !bounds.contains(item.Date) {
			continue
		}

		stats.OutingCount++
		stats.TotalPitches += item.PitchCount
		stats.CountByEventType[item.EventType]++
		pitchers[item.PitcherID] = struct{}{}

		if item.TracksStrikes() {
			strikes += *item.Strikes
			trackedPitches += item.PitchCount
		}
		if item.MaxVelo != nil && *item.MaxVelo > 0 {
			velo := *item.MaxVelo
			if stats.MinVelo == nil || velo < *stats.MinVelo {
				stats.MinVelo = &velo
			}
			if stats.MaxVelo == nil || velo > *stats.MaxVelo {
				maxVelo := velo
				stats.MaxVelo = &maxVelo
			}
			veloSum += velo
			veloCount++
		}
	}

	if trackedPitches > 0 {
		pct := float64(strikes) / float64(trackedPitches) * 100
		stats.StrikePct = &pct
	}
	if veloCount > 0 {
		avg := veloSum / float64(veloCount)
		stats.AvgVelo = &avg
	}
	stats.UniquePitchers = len(pitchers)

	return stats
}

// directions compares each metric by sign. Neutral whenever either side is
// missing or the previous window logged no pitches at all, which avoids
// division artifacts on empty history.
func directions(current, previous WindowStats) map[string]string {
	out := map[string]string{
		"total_pitches": TrendNeutral,
		"strike_pct":    TrendNeutral,
		"max_velo":      TrendNeutral,
		"avg_velo":      TrendNeutral,
		"outing_count":  TrendNeutral,
	}
	if previous.TotalPitches == 0 {
		return out
	}

	out["total_pitches"] = signDirection(float64(current.TotalPitches), float64(previous.TotalPitches))
	out["outing_count"] = signDirection(float64(current.OutingCount), float64(previous.OutingCount))
	out["strike_pct"] = floatDirection(current.StrikePct, previous.StrikePct)
	out["max_velo"] = floatDirection(current.MaxVelo, previous.MaxVelo)
	out["avg_velo"] = floatDirection(current.AvgVelo, previous.AvgVelo)

	return out
}

func floatDirection(current, previous *float64) string {
	if current == nil || previous == nil {
		return TrendNeutral
	}
	return signDirection(*current, *previous)
}

func signDirection(current, previous float64) string {
	switch {
	case current > previous:
		return TrendUp
	case current < previous:
		return TrendDown
	default:
		return TrendNeutral
	}
}
