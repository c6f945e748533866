package pitch

import (
	"fmt"
	"time"
)

// Type is the pitcher-defined pitch category. Type 1 is always treated as the
// primary pitch (fastball) by scoring; everything else is off-speed.
type Type int

const (
	TypeFastball Type = 1
	TypeCurve    Type = 2
	TypeSlider   Type = 3
	TypeChangeup Type = 4
	TypeOther    Type = 5
)

const (
	MinType = TypeFastball
	MaxType = TypeOther
)

// Event is one individually charted pitch. IsStrike is derived from the
// location once at creation and stored; it is never recomputed from X/Y, so a
// later change to zone constants leaves historical classifications untouched.
type Event struct {
	OutingID    string
	PitcherID   string
	PitchNumber int
	PitchType   Type
	X           float64
	Y           float64
	IsStrike    bool
	CreatedAt   time.Time
}

func (e Event) Validate() error {
	if e.OutingID == "" {
		return fmt.Errorf("pitch outing id is required")
	}
	if e.PitcherID == "" {
		return fmt.Errorf("pitch pitcher id is required")
	}
	if e.PitchNumber < 1 {
		return fmt.Errorf("pitch number must be >= 1")
	}
	if e.PitchType < MinType || e.PitchType > MaxType {
		return fmt.Errorf("invalid pitch type: %d", e.PitchType)
	}
	if e.X < -1 || e.X > 1 || e.Y < -1 || e.Y > 1 {
		return fmt.Errorf("pitch location out of range: x=%.3f y=%.3f", e.X, e.Y)
	}

	return nil
}

// DefaultTypeLabels returns the five-entry display table. Labels are
// presentation only; scoring never reads them.
func DefaultTypeLabels() map[Type]string {
	return map[Type]string{
		TypeFastball: "Fastball",
		TypeCurve:    "Curveball",
		TypeSlider:   "Slider",
		TypeChangeup: "Changeup",
		TypeOther:    "Other",
	}
}

// MergeTypeLabels overlays pitcher-specific overrides on the default table.
func MergeTypeLabels(overrides map[Type]string) map[Type]string {
	out := DefaultTypeLabels()
	for pitchType, label := range overrides {
		if pitchType < MinType || pitchType > MaxType || label == "" {
			continue
		}
		out[pitchType] = label
	}

	return out
}
