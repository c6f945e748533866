package querybuilder

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSelectBuilder(t *testing.T) {
	sql, args, err := Select("id", "pitcher_id", "pitch_count").
		From("outings").
		Where(Eq("pitcher_id", "p1"), IsNull("deleted_at")).
		OrderBy("date DESC").
		Limit(20).
		ToSQL()
	require.NoError(t, err)
	require.Equal(t, "SELECT id, pitcher_id, pitch_count FROM outings WHERE pitcher_id = $1 AND deleted_at IS NULL ORDER BY date DESC LIMIT 20", sql)
	require.Equal(t, []any{"p1"}, args)
}

func TestSelectBuilder_RequiresTable(t *testing.T) {
	_, _, err := Select("id").ToSQL()
	require.Error(t, err)
}

func TestExprCondition(t *testing.T) {
	sql, args, err := Select("id").
		From("outings").
		Where(Expr("date >= ? AND date < ?", "2026-08-01", "2026-08-08")).
		ToSQL()
	require.NoError(t, err)
	require.Equal(t, "SELECT id FROM outings WHERE date >= $1 AND date < $2", sql)
	require.Len(t, args, 2)
}

func TestInsertBuilder(t *testing.T) {
	sql, args, err := InsertInto("pitch_events").
		Columns("outing_id", "pitch_number").
		Values("o1", 1).
		Values("o1", 2).
		ToSQL()
	require.NoError(t, err)
	require.Equal(t, "INSERT INTO pitch_events (outing_id, pitch_number) VALUES ($1, $2), ($3, $4)", sql)
	require.Equal(t, []any{"o1", 1, "o1", 2}, args)
}

func TestInsertBuilder_RowArityMismatch(t *testing.T) {
	_, _, err := InsertInto("pitch_events").
		Columns("outing_id", "pitch_number").
		Values("o1").
		ToSQL()
	require.Error(t, err)
}

func TestInsertBuilder_Suffix(t *testing.T) {
	sql, _, err := InsertInto("pitch_type_labels").
		Columns("pitcher_id", "pitch_type", "label").
		Values("p1", 2, "Slider").
		Suffix("ON CONFLICT (pitcher_id, pitch_type) DO UPDATE SET label = EXCLUDED.label").
		ToSQL()
	require.NoError(t, err)
	require.Equal(t, "INSERT INTO pitch_type_labels (pitcher_id, pitch_type, label) VALUES ($1, $2, $3) ON CONFLICT (pitcher_id, pitch_type) DO UPDATE SET label = EXCLUDED.label", sql)
}

func TestUpdateBuilder(t *testing.T) {
	sql, args, err := Update("outings").
		Set("deleted_at", "now").
		Where(Eq("id", "o1"), IsNull("deleted_at")).
		ToSQL()
	require.NoError(t, err)
	require.Equal(t, "UPDATE outings SET deleted_at = $1 WHERE id = $2 AND deleted_at IS NULL", sql)
	require.Equal(t, []any{"now", "o1"}, args)
}

func TestDeleteBuilder(t *testing.T) {
	sql, args, err := DeleteFrom("pitch_events").
		Where(Eq("outing_id", "o1")).
		ToSQL()
	require.NoError(t, err)
	require.Equal(t, "DELETE FROM pitch_events WHERE outing_id = $1", sql)
	require.Equal(t, []any{"o1"}, args)
}

func TestDeleteBuilder_RequiresWhere(t *testing.T) {
	_, _, err := DeleteFrom("pitch_events").ToSQL()
	require.Error(t, err)
}
