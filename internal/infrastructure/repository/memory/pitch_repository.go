package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/moundworks/pitchlab/internal/domain/pitch"
)

type PitchRepository struct {
	mu    sync.RWMutex
	items []pitch.Event
}

func NewPitchRepository(seed []pitch.Event) *PitchRepository {
	return &PitchRepository{items: append([]pitch.Event(nil), seed...)}
}

func (r *PitchRepository) ListByPitcher(_ context.Context, pitcherID string) ([]pitch.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]pitch.Event, 0)
	for _, item := range r.items {
		if item.PitcherID == pitcherID {
			out = append(out, item)
		}
	}
	sortPitches(out)
	return out, nil
}

func (r *PitchRepository) ListByOuting(_ context.Context, outingID string) ([]pitch.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]pitch.Event, 0)
	for _, item := range r.items {
		if item.OutingID == outingID {
			out = append(out, item)
		}
	}
	sortPitches(out)
	return out, nil
}

func (r *PitchRepository) Append(_ context.Context, events []pitch.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items = append(r.items, events...)
	return nil
}

func (r *PitchRepository) DeleteByOuting(_ context.Context, outingID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	kept := r.items[:0]
	for _, item := range r.items {
		if item.OutingID != outingID {
			kept = append(kept, item)
		}
	}
	r.items = kept
	return nil
}

func sortPitches(items []pitch.Event) {
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].OutingID != items[j].OutingID {
			return items[i].OutingID < items[j].OutingID
		}
		return items[i].PitchNumber < items[j].PitchNumber
	})
}
