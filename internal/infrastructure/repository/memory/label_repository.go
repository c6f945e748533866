package memory

import (
	"context"
	"sync"

	"github.com/moundworks/pitchlab/internal/domain/pitch"
)

type LabelRepository struct {
	mu    sync.RWMutex
	items map[string]map[pitch.Type]string
}

func NewLabelRepository() *LabelRepository {
	return &LabelRepository{items: make(map[string]map[pitch.Type]string)}
}

func (r *LabelRepository) ListOverrides(_ context.Context, pitcherID string) (map[pitch.Type]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[pitch.Type]string, len(r.items[pitcherID]))
	for pitchType, label := range r.items[pitcherID] {
		out[pitchType] = label
	}
	return out, nil
}

func (r *LabelRepository) SetOverride(_ context.Context, pitcherID string, pitchType pitch.Type, label string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.items[pitcherID] == nil {
		r.items[pitcherID] = make(map[pitch.Type]string)
	}
	r.items[pitcherID][pitchType] = label
	return nil
}
