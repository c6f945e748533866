package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/moundworks/pitchlab/internal/domain/pitch"
	qb "github.com/moundworks/pitchlab/internal/platform/querybuilder"
)

type LabelRepository struct {
	db *sqlx.DB
}

func NewLabelRepository(db *sqlx.DB) *LabelRepository {
	return &LabelRepository{db: db}
}

type labelTableModel struct {
	PitcherID string `db:"pitcher_id"`
	PitchType int    `db:"pitch_type"`
	Label     string `db:"label"`
}

func (r *LabelRepository) ListOverrides(ctx context.Context, pitcherID string) (map[pitch.Type]string, error) {
	query, args, err := qb.Select("pitcher_id", "pitch_type", "label").
		From("pitch_type_labels").
		Where(qb.Eq("pitcher_id", pitcherID)).
		OrderBy("pitch_type").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list label overrides query: %w", err)
	}

	var rows []labelTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list label overrides: %w", err)
	}

	out := make(map[pitch.Type]string, len(rows))
	for _, row := range rows {
		out[pitch.Type(row.PitchType)] = row.Label
	}
	return out, nil
}

func (r *LabelRepository) SetOverride(ctx context.Context, pitcherID string, pitchType pitch.Type, label string) error {
	query, args, err := qb.InsertInto("pitch_type_labels").
		Columns("pitcher_id", "pitch_type", "label").
		Values(pitcherID, int(pitchType), label).
		Suffix("ON CONFLICT (pitcher_id, pitch_type) DO UPDATE SET label = EXCLUDED.label").
		ToSQL()
	if err != nil {
		return fmt.Errorf("build set label override query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("set label override: %w", err)
	}
	return nil
}
