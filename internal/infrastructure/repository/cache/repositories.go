// Package cache wraps repositories with read-through TTL caching. Writes
// invalidate the affected keys; coarse invalidation uses key prefixes.
package cache

import (
	"context"

	"github.com/moundworks/pitchlab/internal/domain/outing"
	"github.com/moundworks/pitchlab/internal/domain/pitch"
	basecache "github.com/moundworks/pitchlab/internal/platform/cache"
)

type OutingRepository struct {
	next  outing.Repository
	cache *basecache.Store
}

func NewOutingRepository(next outing.Repository, cache *basecache.Store) *OutingRepository {
	return &OutingRepository{next: next, cache: cache}
}

func (r *OutingRepository) List(ctx context.Context) ([]outing.Outing, error) {
	v, err := r.cache.GetOrLoad(ctx, "outing:list", func(ctx context.Context) (any, error) {
		items, err := r.next.List(ctx)
		if err != nil {
			return nil, err
		}
		return cloneOutings(items), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]outing.Outing)
	return cloneOutings(items), nil
}

func (r *OutingRepository) ListByPitcher(ctx context.Context, pitcherID string) ([]outing.Outing, error) {
	key := "outing:list:pitcher:" + pitcherID
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		items, err := r.next.ListByPitcher(ctx, pitcherID)
		if err != nil {
			return nil, err
		}
		return cloneOutings(items), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]outing.Outing)
	return cloneOutings(items), nil
}

func (r *OutingRepository) Get(ctx context.Context, id string) (outing.Outing, bool, error) {
	key := "outing:id:" + id
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		return cachedOutingByID{value: cloneOuting(item), exists: exists}, nil
	})
	if err != nil {
		return outing.Outing{}, false, err
	}

	cached, _ := v.(cachedOutingByID)
	return cloneOuting(cached.value), cached.exists, nil
}

func (r *OutingRepository) Create(ctx context.Context, item outing.Outing) error {
	if err := r.next.Create(ctx, item); err != nil {
		return err
	}
	r.cache.Delete(ctx, "outing:list")
	r.cache.Delete(ctx, "outing:list:pitcher:"+item.PitcherID)
	r.cache.Delete(ctx, "outing:id:"+item.ID)
	return nil
}

// Delete invalidates every outing key. The pitcher is unknown from the id
// alone, so the per-pitcher listings go too.
func (r *OutingRepository) Delete(ctx context.Context, id string) error {
	if err := r.next.Delete(ctx, id); err != nil {
		return err
	}
	r.cache.DeletePrefix(ctx, "outing:")
	return nil
}

type cachedOutingByID struct {
	value  outing.Outing
	exists bool
}

func cloneOuting(item outing.Outing) outing.Outing {
	out := item
	if item.Strikes != nil {
		strikes := *item.Strikes
		out.Strikes = &strikes
	}
	if item.MaxVelo != nil {
		velo := *item.MaxVelo
		out.MaxVelo = &velo
	}
	if len(item.Metadata) > 0 {
		metadata := make(map[string]any, len(item.Metadata))
		for k, v := range item.Metadata {
			metadata[k] = v
		}
		out.Metadata = metadata
	}
	return out
}

func cloneOutings(items []outing.Outing) []outing.Outing {
	out := make([]outing.Outing, 0, len(items))
	for _, item := range items {
		out = append(out, cloneOuting(item))
	}
	return out
}

type PitchRepository struct {
	next  pitch.Repository
	cache *basecache.Store
}

func NewPitchRepository(next pitch.Repository, cache *basecache.Store) *PitchRepository {
	return &PitchRepository{next: next, cache: cache}
}

func (r *PitchRepository) ListByPitcher(ctx context.Context, pitcherID string) ([]pitch.Event, error) {
	key := "pitch:pitcher:" + pitcherID
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		items, err := r.next.ListByPitcher(ctx, pitcherID)
		if err != nil {
			return nil, err
		}
		return append([]pitch.Event(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]pitch.Event)
	return append([]pitch.Event(nil), items...), nil
}

func (r *PitchRepository) ListByOuting(ctx context.Context, outingID string) ([]pitch.Event, error) {
	key := "pitch:outing:" + outingID
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		items, err := r.next.ListByOuting(ctx, outingID)
		if err != nil {
			return nil, err
		}
		return append([]pitch.Event(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]pitch.Event)
	return append([]pitch.Event(nil), items...), nil
}

func (r *PitchRepository) Append(ctx context.Context, events []pitch.Event) error {
	if err := r.next.Append(ctx, events); err != nil {
		return err
	}
	for _, event := range events {
		r.cache.Delete(ctx, "pitch:outing:"+event.OutingID)
		r.cache.Delete(ctx, "pitch:pitcher:"+event.PitcherID)
	}
	return nil
}

// DeleteByOuting invalidates every pitch key. The pitcher is unknown from the
// outing id alone.
func (r *PitchRepository) DeleteByOuting(ctx context.Context, outingID string) error {
	if err := r.next.DeleteByOuting(ctx, outingID); err != nil {
		return err
	}
	r.cache.DeletePrefix(ctx, "pitch:")
	return nil
}

type LabelRepository struct {
	next  pitch.LabelRepository
	cache *basecache.Store
}

func NewLabelRepository(next pitch.LabelRepository, cache *basecache.Store) *LabelRepository {
	return &LabelRepository{next: next, cache: cache}
}

func (r *LabelRepository) ListOverrides(ctx context.Context, pitcherID string) (map[pitch.Type]string, error) {
	key := "label:pitcher:" + pitcherID
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		overrides, err := r.next.ListOverrides(ctx, pitcherID)
		if err != nil {
			return nil, err
		}
		return cloneOverrides(overrides), nil
	})
	if err != nil {
		return nil, err
	}

	overrides, _ := v.(map[pitch.Type]string)
	return cloneOverrides(overrides), nil
}

func (r *LabelRepository) SetOverride(ctx context.Context, pitcherID string, pitchType pitch.Type, label string) error {
	if err := r.next.SetOverride(ctx, pitcherID, pitchType, label); err != nil {
		return err
	}
	r.cache.Delete(ctx, "label:pitcher:"+pitcherID)
	return nil
}

func cloneOverrides(overrides map[pitch.Type]string) map[pitch.Type]string {
	out := make(map[pitch.Type]string, len(overrides))
	for k, v := range overrides {
		out[k] = v
	}
	return out
}
