package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/moundworks/pitchlab/internal/domain/outing"
)

type OutingRepository struct {
	mu    sync.RWMutex
	items map[string]outing.Outing
}

func NewOutingRepository(seed []outing.Outing) *OutingRepository {
	r := &OutingRepository{items: make(map[string]outing.Outing, len(seed))}
	for _, item := range seed {
		r.items[item.ID] = item
	}
	return r
}

func (r *OutingRepository) List(_ context.Context) ([]outing.Outing, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]outing.Outing, 0, len(r.items))
	for _, item := range r.items {
		out = append(out, item)
	}
	sortOutings(out)
	return out, nil
}

func (r *OutingRepository) ListByPitcher(_ context.Context, pitcherID string) ([]outing.Outing, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]outing.Outing, 0)
	for _, item := range r.items {
		if item.PitcherID == pitcherID {
			out = append(out, item)
		}
	}
	sortOutings(out)
	return out, nil
}

func (r *OutingRepository) Get(_ context.Context, id string) (outing.Outing, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[id]
	if !ok {
		return outing.Outing{}, false, nil
	}
	return item, true, nil
}

func (r *OutingRepository) Create(_ context.Context, item outing.Outing) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[item.ID] = item
	return nil
}

func (r *OutingRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.items, id)
	return nil
}

// sortOutings orders newest first, with the ID as tiebreaker so listings are
// stable across calls.
func sortOutings(items []outing.Outing) {
	sort.SliceStable(items, func(i, j int) bool {
		if !items[i].Date.Equal(items[j].Date) {
			return items[i].Date.After(items[j].Date)
		}
		return items[i].ID < items[j].ID
	})
}
