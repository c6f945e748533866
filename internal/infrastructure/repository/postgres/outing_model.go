package postgres

import (
	"time"

	jsoniter "github.com/json-iterator/go"

	"github.com/moundworks/pitchlab/internal/domain/outing"
)

type outingTableModel struct {
	ID          string     `db:"id"`
	PitcherID   string     `db:"pitcher_id"`
	PitcherName string     `db:"pitcher_name"`
	Date        time.Time  `db:"date"`
	EventType   string     `db:"event_type"`
	PitchCount  int        `db:"pitch_count"`
	Strikes     *int       `db:"strikes"`
	MaxVelo     *float64   `db:"max_velo"`
	Notes       string     `db:"notes"`
	Focus       string     `db:"focus"`
	CoachNotes  string     `db:"coach_notes"`
	Metadata    []byte     `db:"metadata"`
	CreatedAt   time.Time  `db:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at"`
	DeletedAt   *time.Time `db:"deleted_at"`
}

// marshalOutingMetadata normalizes empty metadata to the empty JSON object so
// the column is never NULL.
func marshalOutingMetadata(metadata map[string]any) (string, error) {
	if len(metadata) == 0 {
		return "{}", nil
	}

	raw, err := jsoniter.Marshal(metadata)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

func unmarshalOutingMetadata(raw []byte) map[string]any {
	if len(raw) == 0 {
		return nil
	}

	var metadata map[string]any
	if err := jsoniter.Unmarshal(raw, &metadata); err != nil {
		return nil
	}
	if len(metadata) == 0 {
		return nil
	}
	return metadata
}

func outingFromRow(row outingTableModel) outing.Outing {
	return outing.Outing{
		ID:          row.ID,
		PitcherID:   row.PitcherID,
		PitcherName: row.PitcherName,
		Date:        row.Date.UTC(),
		EventType:   outing.EventType(row.EventType),
		PitchCount:  row.PitchCount,
		Strikes:     row.Strikes,
		MaxVelo:     row.MaxVelo,
		Notes:       row.Notes,
		Focus:       row.Focus,
		CoachNotes:  row.CoachNotes,
		Metadata:    unmarshalOutingMetadata(row.Metadata),
		CreatedAt:   row.CreatedAt.UTC(),
		UpdatedAt:   row.UpdatedAt.UTC(),
	}
}
