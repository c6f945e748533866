package outing

import (
	"fmt"
	"time"
)

// EventType categorizes a pitching session.
type EventType string

const (
	EventBullpen  EventType = "Bullpen"
	EventGame     EventType = "Game"
	EventExternal EventType = "External"
	EventPractice EventType = "Practice"
)

var AllEventTypes = map[EventType]struct{}{
	EventBullpen:  {},
	EventGame:     {},
	EventExternal: {},
	EventPractice: {},
}

// Outing is a single practice/game pitching session. Strikes is nil when the
// session did not track strikes; nil must be excluded from strike-percentage
// aggregates rather than treated as zero. An outing may carry zero charted
// pitch events (coarse logging) or many (fine-grained charting).
type Outing struct {
	ID          string
	PitcherID   string
	PitcherName string
	Date        time.Time
	EventType   EventType
	PitchCount  int
	Strikes     *int
	MaxVelo     *float64
	Notes       string
	Focus       string
	CoachNotes  string
	Metadata    map[string]any
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (o Outing) Validate() error {
	if o.ID == "" {
		return fmt.Errorf("outing id is required")
	}
	if o.PitcherID == "" {
		return fmt.Errorf("outing pitcher id is required")
	}
	if o.Date.IsZero() {
		return fmt.Errorf("outing date is required")
	}
	if _, ok := AllEventTypes[o.EventType]; !ok {
		return fmt.Errorf("invalid outing event type: %s", o.EventType)
	}
	if o.PitchCount < 0 {
		return fmt.Errorf("outing pitch count must be >= 0")
	}
	if o.Strikes != nil {
		if *o.Strikes < 0 {
			return fmt.Errorf("outing strikes must be >= 0")
		}
		if *o.Strikes > o.PitchCount {
			return fmt.Errorf("outing strikes cannot exceed pitch count")
		}
	}
	if o.MaxVelo != nil && *o.MaxVelo <= 0 {
		return fmt.Errorf("outing max velo must be > 0")
	}

	return nil
}

// TracksStrikes reports whether this outing contributes to strike-percentage
// aggregates.
func (o Outing) TracksStrikes() bool {
	return o.Strikes != nil && o.PitchCount > 0
}

// StrikePercent returns the session strike percentage, false when untracked.
func (o Outing) StrikePercent() (float64, bool) {
	if !o.TracksStrikes() {
		return 0, false
	}

	return float64(*o.Strikes) / float64(o.PitchCount) * 100, true
}
