package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/moundworks/pitchlab/internal/domain/outing"
	qb "github.com/moundworks/pitchlab/internal/platform/querybuilder"
)

type OutingRepository struct {
	db *sqlx.DB
}

func NewOutingRepository(db *sqlx.DB) *OutingRepository {
	return &OutingRepository{db: db}
}

func outingBaseSelectBuilder() *qb.SelectBuilder {
	return qb.Select(
		"id", "pitcher_id", "pitcher_name", "date", "event_type",
		"pitch_count", "strikes", "max_velo", "notes", "focus", "coach_notes",
		"metadata", "created_at", "updated_at", "deleted_at",
	).From("outings")
}

func (r *OutingRepository) List(ctx context.Context) ([]outing.Outing, error) {
	query, args, err := outingBaseSelectBuilder().
		Where(qb.IsNull("deleted_at")).
		OrderBy("date DESC", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list outings query: %w", err)
	}

	var rows []outingTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list outings: %w", err)
	}

	out := make([]outing.Outing, 0, len(rows))
	for _, row := range rows {
		out = append(out, outingFromRow(row))
	}
	return out, nil
}

func (r *OutingRepository) ListByPitcher(ctx context.Context, pitcherID string) ([]outing.Outing, error) {
	query, args, err := outingBaseSelectBuilder().
		Where(
			qb.Eq("pitcher_id", pitcherID),
			qb.IsNull("deleted_at"),
		).
		OrderBy("date DESC", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list outings by pitcher query: %w", err)
	}

	var rows []outingTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list outings by pitcher: %w", err)
	}

	out := make([]outing.Outing, 0, len(rows))
	for _, row := range rows {
		out = append(out, outingFromRow(row))
	}
	return out, nil
}

func (r *OutingRepository) Get(ctx context.Context, id string) (outing.Outing, bool, error) {
	query, args, err := outingBaseSelectBuilder().
		Where(
			qb.Eq("id", id),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return outing.Outing{}, false, fmt.Errorf("build get outing query: %w", err)
	}

	var row outingTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return outing.Outing{}, false, nil
		}
		return outing.Outing{}, false, fmt.Errorf("get outing: %w", err)
	}

	return outingFromRow(row), true, nil
}

func (r *OutingRepository) Create(ctx context.Context, item outing.Outing) error {
	metadata, err := marshalOutingMetadata(item.Metadata)
	if err != nil {
		return fmt.Errorf("marshal outing metadata: %w", err)
	}

	query, args, err := qb.InsertInto("outings").
		Columns(
			"id", "pitcher_id", "pitcher_name", "date", "event_type",
			"pitch_count", "strikes", "max_velo", "notes", "focus", "coach_notes",
			"metadata", "created_at", "updated_at",
		).
		Values(
			item.ID, item.PitcherID, item.PitcherName, item.Date, string(item.EventType),
			item.PitchCount, item.Strikes, item.MaxVelo, item.Notes, item.Focus, item.CoachNotes,
			metadata, item.CreatedAt, item.UpdatedAt,
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build create outing query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("create outing: %w", err)
	}
	return nil
}

// Delete soft-deletes; listings filter on deleted_at so the row disappears
// from every read path while staying recoverable.
func (r *OutingRepository) Delete(ctx context.Context, id string) error {
	query, args, err := qb.Update("outings").
		Set("deleted_at", time.Now().UTC()).
		Where(
			qb.Eq("id", id),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete outing query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete outing: %w", err)
	}
	return nil
}
