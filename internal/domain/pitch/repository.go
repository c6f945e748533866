package pitch

import "context"

// Repository describes pitch event persistence needs from use cases.
type Repository interface {
	ListByPitcher(ctx context.Context, pitcherID string) ([]Event, error)
	ListByOuting(ctx context.Context, outingID string) ([]Event, error)
	Append(ctx context.Context, events []Event) error
	DeleteByOuting(ctx context.Context, outingID string) error
}

// LabelRepository stores per-pitcher display label overrides for pitch types.
type LabelRepository interface {
	ListOverrides(ctx context.Context, pitcherID string) (map[Type]string, error)
	SetOverride(ctx context.Context, pitcherID string, pitchType Type, label string) error
}
