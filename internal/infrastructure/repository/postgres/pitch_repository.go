package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/moundworks/pitchlab/internal/domain/pitch"
	qb "github.com/moundworks/pitchlab/internal/platform/querybuilder"
)

type PitchRepository struct {
	db *sqlx.DB
}

func NewPitchRepository(db *sqlx.DB) *PitchRepository {
	return &PitchRepository{db: db}
}

func pitchBaseSelectBuilder() *qb.SelectBuilder {
	return qb.Select(
		"id", "outing_id", "pitcher_id", "pitch_number", "pitch_type",
		"x_location", "y_location", "is_strike", "created_at",
	).From("pitch_events")
}

func (r *PitchRepository) ListByPitcher(ctx context.Context, pitcherID string) ([]pitch.Event, error) {
	query, args, err := pitchBaseSelectBuilder().
		Where(qb.Eq("pitcher_id", pitcherID)).
		OrderBy("outing_id", "pitch_number").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list pitches by pitcher query: %w", err)
	}

	var rows []pitchEventTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list pitches by pitcher: %w", err)
	}

	out := make([]pitch.Event, 0, len(rows))
	for _, row := range rows {
		out = append(out, pitchEventFromRow(row))
	}
	return out, nil
}

func (r *PitchRepository) ListByOuting(ctx context.Context, outingID string) ([]pitch.Event, error) {
	query, args, err := pitchBaseSelectBuilder().
		Where(qb.Eq("outing_id", outingID)).
		OrderBy("pitch_number").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list pitches by outing query: %w", err)
	}

	var rows []pitchEventTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list pitches by outing: %w", err)
	}

	out := make([]pitch.Event, 0, len(rows))
	for _, row := range rows {
		out = append(out, pitchEventFromRow(row))
	}
	return out, nil
}

func (r *PitchRepository) Append(ctx context.Context, events []pitch.Event) error {
	if len(events) == 0 {
		return nil
	}

	builder := qb.InsertInto("pitch_events").
		Columns(
			"outing_id", "pitcher_id", "pitch_number", "pitch_type",
			"x_location", "y_location", "is_strike", "created_at",
		)
	for _, event := range events {
		builder = builder.Values(
			event.OutingID, event.PitcherID, event.PitchNumber, int(event.PitchType),
			event.X, event.Y, event.IsStrike, event.CreatedAt,
		)
	}

	query, args, err := builder.ToSQL()
	if err != nil {
		return fmt.Errorf("build append pitches query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("append pitches: %w", err)
	}
	return nil
}

// DeleteByOuting removes rows for good. Pitch events have no soft-delete:
// they only die with their parent outing.
func (r *PitchRepository) DeleteByOuting(ctx context.Context, outingID string) error {
	query, args, err := qb.DeleteFrom("pitch_events").
		Where(qb.Eq("outing_id", outingID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete pitches query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete pitches by outing: %w", err)
	}
	return nil
}
