package postgres

import (
	"time"

	"github.com/moundworks/pitchlab/internal/domain/pitch"
)

type pitchEventTableModel struct {
	ID          int64     `db:"id"`
	OutingID    string    `db:"outing_id"`
	PitcherID   string    `db:"pitcher_id"`
	PitchNumber int       `db:"pitch_number"`
	PitchType   int       `db:"pitch_type"`
	XLocation   float64   `db:"x_location"`
	YLocation   float64   `db:"y_location"`
	IsStrike    bool      `db:"is_strike"`
	CreatedAt   time.Time `db:"created_at"`
}

func pitchEventFromRow(row pitchEventTableModel) pitch.Event {
	return pitch.Event{
		OutingID:    row.OutingID,
		PitcherID:   row.PitcherID,
		PitchNumber: row.PitchNumber,
		PitchType:   pitch.Type(row.PitchType),
		X:           row.XLocation,
		Y:           row.YLocation,
		IsStrike:    row.IsStrike,
		CreatedAt:   row.CreatedAt.UTC(),
	}
}
