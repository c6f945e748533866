package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/valyala/bytebufferpool"

	"github.com/moundworks/pitchlab/internal/domain/heatmap"
	"github.com/moundworks/pitchlab/internal/domain/pitch"
	"github.com/moundworks/pitchlab/internal/platform/cache"
)

// HeatmapOptions bundle the estimator and renderer tunables plus the output
// size bounds enforced on requests.
type HeatmapOptions struct {
	Params    heatmap.Params
	Render    heatmap.RenderOptions
	MinSizePx int
	MaxSizePx int
}

func DefaultHeatmapOptions() HeatmapOptions {
	return HeatmapOptions{
		Params:    heatmap.DefaultParams(),
		Render:    heatmap.DefaultRenderOptions(),
		MinSizePx: 96,
		MaxSizePx: 640,
	}
}

// HeatmapService renders pitch location rasters. Rendering always happens at
// the configured base resolution and is resampled to the requested size, so
// thumbnails and full-size views share one quality setting. Rendered PNGs are
// cached per pitcher/size/pitch-count; a nil store disables caching.
type HeatmapService struct {
	pitchRepo pitch.Repository
	store     *cache.Store
	opts      HeatmapOptions
	logger    *slog.Logger
}

func NewHeatmapService(
	pitchRepo pitch.Repository,
	store *cache.Store,
	opts HeatmapOptions,
	logger *slog.Logger,
) *HeatmapService {
	def := DefaultHeatmapOptions()
	if opts.MinSizePx <= 0 {
		opts.MinSizePx = def.MinSizePx
	}
	if opts.MaxSizePx < opts.MinSizePx {
		opts.MaxSizePx = def.MaxSizePx
	}
	if opts.Render.SizePx <= 0 {
		opts.Render = def.Render
	}

	return &HeatmapService{
		pitchRepo: pitchRepo,
		store:     store,
		opts:      opts,
		logger:    logger,
	}
}

// RenderForPitcher returns a PNG of the pitcher's charted pitch density with
// the zone overlay. sizePx is clamped to the configured bounds; zero selects
// the base resolution.
func (s *HeatmapService) RenderForPitcher(ctx context.Context, pitcherID string, sizePx int) ([]byte, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.HeatmapService.RenderForPitcher")
	defer span.End()

	if pitcherID == "" {
		return nil, fmt.Errorf("%w: pitcher id is required", ErrInvalidInput)
	}
	sizePx = s.clampSize(sizePx)

	events, err := s.pitchRepo.ListByPitcher(ctx, pitcherID)
	if err != nil {
		return nil, fmt.Errorf("list pitches for heatmap: %w", err)
	}

	// Pitch count in the key makes stale rasters unreachable as soon as new
	// pitches are charted.
	key := fmt.Sprintf("heatmap:%s:%d:%d", pitcherID, sizePx, len(events))

	if s.store == nil {
		return s.render(ctx, pitcherID, sizePx, events)
	}

	value, err := s.store.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		return s.render(ctx, pitcherID, sizePx, events)
	})
	if err != nil {
		return nil, err
	}

	png, ok := value.([]byte)
	if !ok {
		return nil, fmt.Errorf("%w: unexpected cached heatmap payload", ErrDependencyUnavailable)
	}
	return png, nil
}

// InvalidatePitcher drops every cached raster for a pitcher. Called after
// outing deletion, where the pitch count may collide with an older state.
func (s *HeatmapService) InvalidatePitcher(ctx context.Context, pitcherID string) {
	if s.store == nil || pitcherID == "" {
		return
	}
	s.store.DeletePrefix(ctx, "heatmap:"+pitcherID+":")
}

func (s *HeatmapService) render(ctx context.Context, pitcherID string, sizePx int, events []pitch.Event) ([]byte, error) {
	points := make([]heatmap.Point, 0, len(events))
	for _, event := range events {
		points = append(points, heatmap.Point{X: event.X, Y: event.Y})
	}

	grid := heatmap.BuildDensity(points, s.opts.Params)
	img, err := heatmap.Render(grid, s.opts.Render)
	if err != nil {
		return nil, fmt.Errorf("render heatmap: %w", err)
	}

	out := heatmap.ScaleTo(img, sizePx)

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)
	if err := heatmap.EncodePNG(out, buf); err != nil {
		return nil, fmt.Errorf("encode heatmap: %w", err)
	}

	png := append([]byte(nil), buf.Bytes()...)
	s.logger.DebugContext(ctx, "heatmap rendered",
		"pitcher_id", pitcherID,
		"size_px", sizePx,
		"pitches", len(events),
		"bytes", len(png),
	)
	return png, nil
}

func (s *HeatmapService) clampSize(sizePx int) int {
	if sizePx <= 0 {
		sizePx = s.opts.Render.SizePx
	}
	if sizePx < s.opts.MinSizePx {
		return s.opts.MinSizePx
	}
	if sizePx > s.opts.MaxSizePx {
		return s.opts.MaxSizePx
	}
	return sizePx
}
