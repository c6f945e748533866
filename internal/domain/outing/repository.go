package outing

import "context"

// Repository describes outing persistence needs from use cases. List returns
// every roster outing and backs cross-pitcher badge comparisons.
type Repository interface {
	List(ctx context.Context) ([]Outing, error)
	ListByPitcher(ctx context.Context, pitcherID string) ([]Outing, error)
	Get(ctx context.Context, id string) (Outing, bool, error)
	Create(ctx context.Context, item Outing) error
	Delete(ctx context.Context, id string) error
}
