package httpapi

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/moundworks/pitchlab/internal/domain/badge"
	"github.com/moundworks/pitchlab/internal/domain/outing"
	"github.com/moundworks/pitchlab/internal/domain/pitch"
	"github.com/moundworks/pitchlab/internal/usecase"
)

type createOutingRequest struct {
	PitcherID   string         `json:"pitcherId" validate:"required"`
	PitcherName string         `json:"pitcherName" validate:"omitempty,max=120"`
	Date        string         `json:"date" validate:"required"`
	EventType   string         `json:"eventType" validate:"required"`
	PitchCount  int            `json:"pitchCount" validate:"gte=0"`
	Strikes     *int           `json:"strikes,omitempty" validate:"omitempty,gte=0"`
	MaxVelo     *float64       `json:"maxVelo,omitempty" validate:"omitempty,gt=0"`
	Notes       string         `json:"notes" validate:"omitempty,max=2000"`
	Focus       string         `json:"focus" validate:"omitempty,max=2000"`
	CoachNotes  string         `json:"coachNotes" validate:"omitempty,max=2000"`
	Metadata    map[string]any `json:"metadata,omitempty"`
}

type chartPitchesRequest struct {
	Pitches []chartPitchRecord `json:"pitches" validate:"required,min=1,dive"`
}

type chartPitchRecord struct {
	PitchType int     `json:"pitchType" validate:"required,gte=1,lte=5"`
	X         float64 `json:"x" validate:"gte=-1,lte=1"`
	Y         float64 `json:"y" validate:"gte=-1,lte=1"`
}

type setPitchTypeLabelRequest struct {
	PitchType int    `json:"pitchType" validate:"required,gte=1,lte=5"`
	Label     string `json:"label" validate:"required,max=40"`
}

type outingDTO struct {
	ID          string         `json:"id"`
	PitcherID   string         `json:"pitcherId"`
	PitcherName string         `json:"pitcherName,omitempty"`
	Date        string         `json:"date"`
	EventType   string         `json:"eventType"`
	PitchCount  int            `json:"pitchCount"`
	Strikes     *int           `json:"strikes,omitempty"`
	StrikePct   *float64       `json:"strikePct,omitempty"`
	MaxVelo     *float64       `json:"maxVelo,omitempty"`
	Notes       string         `json:"notes,omitempty"`
	Focus       string         `json:"focus,omitempty"`
	CoachNotes  string         `json:"coachNotes,omitempty"`
	Metadata    map[string]any `json:"metadata,omitempty"`
	CreatedAt   string         `json:"createdAt"`
	UpdatedAt   string         `json:"updatedAt"`
}

type pitchEventDTO struct {
	OutingID    string  `json:"outingId"`
	PitcherID   string  `json:"pitcherId"`
	PitchNumber int     `json:"pitchNumber"`
	PitchType   int     `json:"pitchType"`
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
	IsStrike    bool    `json:"isStrike"`
	CreatedAt   string  `json:"createdAt"`
}

type badgeResultDTO struct {
	BadgeID  string  `json:"badgeId"`
	Name     string  `json:"name"`
	Earned   bool    `json:"earned"`
	Progress float64 `json:"progress"`
	Detail   string  `json:"detail,omitempty"`
}

type windowBoundsDTO struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type windowStatsDTO struct {
	TotalPitches     int            `json:"totalPitches"`
	StrikePct        *float64       `json:"strikePct,omitempty"`
	MinVelo          *float64       `json:"minVelo,omitempty"`
	MaxVelo          *float64       `json:"maxVelo,omitempty"`
	AvgVelo          *float64       `json:"avgVelo,omitempty"`
	OutingCount      int            `json:"outingCount"`
	CountByEventType map[string]int `json:"countByEventType,omitempty"`
	UniquePitchers   int            `json:"uniquePitchers"`
}

type trendComparisonDTO struct {
	CurrentWindow  windowBoundsDTO   `json:"currentWindow"`
	PreviousWindow windowBoundsDTO   `json:"previousWindow"`
	Current        windowStatsDTO    `json:"current"`
	Previous       windowStatsDTO    `json:"previous"`
	Directions     map[string]string `json:"directions"`
}

type pitchTypeLabelDTO struct {
	PitchType int    `json:"pitchType"`
	Label     string `json:"label"`
}

const outingDateLayout = "2006-01-02"

func outingToDTO(ctx context.Context, v outing.Outing) outingDTO {
	ctx, span := startSpan(ctx, "httpapi.outingToDTO")
	defer span.End()

	dto := outingDTO{
		ID:          v.ID,
		PitcherID:   v.PitcherID,
		PitcherName: v.PitcherName,
		Date:        v.Date.UTC().Format(outingDateLayout),
		EventType:   string(v.EventType),
		PitchCount:  v.PitchCount,
		Strikes:     v.Strikes,
		MaxVelo:     v.MaxVelo,
		Notes:       v.Notes,
		Focus:       v.Focus,
		CoachNotes:  v.CoachNotes,
		Metadata:    v.Metadata,
		CreatedAt:   v.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:   v.UpdatedAt.UTC().Format(time.RFC3339),
	}
	if pct, ok := v.StrikePercent(); ok {
		dto.StrikePct = &pct
	}
	return dto
}

func outingsToDTO(ctx context.Context, items []outing.Outing) []outingDTO {
	out := make([]outingDTO, 0, len(items))
	for _, item := range items {
		out = append(out, outingToDTO(ctx, item))
	}
	return out
}

func pitchEventToDTO(v pitch.Event) pitchEventDTO {
	return pitchEventDTO{
		OutingID:    v.OutingID,
		PitcherID:   v.PitcherID,
		PitchNumber: v.PitchNumber,
		PitchType:   int(v.PitchType),
		X:           v.X,
		Y:           v.Y,
		IsStrike:    v.IsStrike,
		CreatedAt:   v.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func pitchEventsToDTO(events []pitch.Event) []pitchEventDTO {
	out := make([]pitchEventDTO, 0, len(events))
	for _, event := range events {
		out = append(out, pitchEventToDTO(event))
	}
	return out
}

func badgeResultsToDTO(results []badge.Result) []badgeResultDTO {
	out := make([]badgeResultDTO, 0, len(results))
	for _, result := range results {
		out = append(out, badgeResultDTO{
			BadgeID:  result.BadgeID,
			Name:     result.Name,
			Earned:   result.Earned,
			Progress: result.Progress,
			Detail:   result.Detail,
		})
	}
	return out
}

func trendComparisonToDTO(ctx context.Context, v usecase.Comparison) trendComparisonDTO {
	ctx, span := startSpan(ctx, "httpapi.trendComparisonToDTO")
	defer span.End()

	return trendComparisonDTO{
		CurrentWindow:  windowBoundsToDTO(v.CurrentWindow),
		PreviousWindow: windowBoundsToDTO(v.PreviousWindow),
		Current:        windowStatsToDTO(v.Current),
		Previous:       windowStatsToDTO(v.Previous),
		Directions:     v.Directions,
	}
}

func windowBoundsToDTO(v usecase.WindowBounds) windowBoundsDTO {
	return windowBoundsDTO{
		Start: v.Start.UTC().Format(time.RFC3339),
		End:   v.End.UTC().Format(time.RFC3339),
	}
}

func windowStatsToDTO(v usecase.WindowStats) windowStatsDTO {
	dto := windowStatsDTO{
		TotalPitches:   v.TotalPitches,
		StrikePct:      v.StrikePct,
		MinVelo:        v.MinVelo,
		MaxVelo:        v.MaxVelo,
		AvgVelo:        v.AvgVelo,
		OutingCount:    v.OutingCount,
		UniquePitchers: v.UniquePitchers,
	}
	if len(v.CountByEventType) > 0 {
		dto.CountByEventType = make(map[string]int, len(v.CountByEventType))
		for eventType, count := range v.CountByEventType {
			dto.CountByEventType[string(eventType)] = count
		}
	}
	return dto
}

func typeLabelsToDTO(labels map[pitch.Type]string) []pitchTypeLabelDTO {
	out := make([]pitchTypeLabelDTO, 0, len(labels))
	for pitchType, label := range labels {
		out = append(out, pitchTypeLabelDTO{PitchType: int(pitchType), Label: label})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PitchType < out[j].PitchType })
	return out
}

// parseOutingDate accepts a plain calendar date or a full RFC 3339 timestamp.
func parseOutingDate(raw string) (time.Time, error) {
	if t, err := time.Parse(outingDateLayout, raw); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("%w: invalid date %q, want YYYY-MM-DD or RFC 3339", usecase.ErrInvalidInput, raw)
}

// parseAsOf reads an optional as_of query value; empty means "now".
func parseAsOf(raw string) (time.Time, error) {
	if raw == "" {
		return time.Now().UTC(), nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	if t, err := time.Parse(outingDateLayout, raw); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("%w: invalid as_of %q, want YYYY-MM-DD or RFC 3339", usecase.ErrInvalidInput, raw)
}
