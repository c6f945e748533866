package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/moundworks/pitchlab/internal/domain/outing"
	"github.com/moundworks/pitchlab/internal/domain/pitch"
	"github.com/moundworks/pitchlab/internal/platform/id"
)

// OutingService owns session logging and pitch charting. Deleting an outing
// cascades to its charted pitches.
type OutingService struct {
	outingRepo outing.Repository
	pitchRepo  pitch.Repository
	labelRepo  pitch.LabelRepository
	idGen      id.Generator
	logger     *slog.Logger
	now        func() time.Time
}

func NewOutingService(
	outingRepo outing.Repository,
	pitchRepo pitch.Repository,
	labelRepo pitch.LabelRepository,
	idGen id.Generator,
	logger *slog.Logger,
) *OutingService {
	return &OutingService{
		outingRepo: outingRepo,
		pitchRepo:  pitchRepo,
		labelRepo:  labelRepo,
		idGen:      idGen,
		logger:     logger,
		now:        time.Now,
	}
}

type CreateOutingInput struct {
	PitcherID   string
	PitcherName string
	Date        time.Time
	EventType   outing.EventType
	PitchCount  int
	Strikes     *int
	MaxVelo     *float64
	Notes       string
	Focus       string
	CoachNotes  string
	Metadata    map[string]any
}

// ChartedPitch is one raw pitch location as submitted by the charting client.
// Strike classification happens here, once, and is stored with the event.
type ChartedPitch struct {
	PitchType pitch.Type
	X         float64
	Y         float64
}

func (s *OutingService) ListOutings(ctx context.Context) ([]outing.Outing, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.OutingService.ListOutings")
	defer span.End()

	items, err := s.outingRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list outings: %w", err)
	}
	return items, nil
}

func (s *OutingService) ListOutingsByPitcher(ctx context.Context, pitcherID string) ([]outing.Outing, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.OutingService.ListOutingsByPitcher")
	defer span.End()

	if pitcherID == "" {
		return nil, fmt.Errorf("%w: pitcher id is required", ErrInvalidInput)
	}

	items, err := s.outingRepo.ListByPitcher(ctx, pitcherID)
	if err != nil {
		return nil, fmt.Errorf("list outings by pitcher: %w", err)
	}
	return items, nil
}

func (s *OutingService) GetOuting(ctx context.Context, outingID string) (outing.Outing, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.OutingService.GetOuting")
	defer span.End()

	item, exists, err := s.outingRepo.Get(ctx, outingID)
	if err != nil {
		return outing.Outing{}, fmt.Errorf("get outing: %w", err)
	}
	if !exists {
		return outing.Outing{}, fmt.Errorf("%w: outing %s", ErrNotFound, outingID)
	}
	return item, nil
}

func (s *OutingService) CreateOuting(ctx context.Context, input CreateOutingInput) (outing.Outing, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.OutingService.CreateOuting")
	defer span.End()

	newID, err := s.idGen.NewID()
	if err != nil {
		return outing.Outing{}, fmt.Errorf("generate outing id: %w", err)
	}

	now := s.now().UTC()
	item := outing.Outing{
		ID:          newID,
		PitcherID:   input.PitcherID,
		PitcherName: input.PitcherName,
		Date:        input.Date.UTC().Truncate(24 * time.Hour),
		EventType:   input.EventType,
		PitchCount:  input.PitchCount,
		Strikes:     input.Strikes,
		MaxVelo:     input.MaxVelo,
		Notes:       input.Notes,
		Focus:       input.Focus,
		CoachNotes:  input.CoachNotes,
		Metadata:    input.Metadata,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := item.Validate(); err != nil {
		return outing.Outing{}, fmt.Errorf("%w: %s", ErrInvalidInput, err)
	}

	if err := s.outingRepo.Create(ctx, item); err != nil {
		return outing.Outing{}, fmt.Errorf("create outing: %w", err)
	}

	s.logger.InfoContext(ctx, "outing created",
		"outing_id", item.ID,
		"pitcher_id", item.PitcherID,
		"event_type", string(item.EventType),
		"pitch_count", item.PitchCount,
	)
	return item, nil
}

// DeleteOuting removes a session and every pitch charted against it.
func (s *OutingService) DeleteOuting(ctx context.Context, outingID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.OutingService.DeleteOuting")
	defer span.End()

	_, exists, err := s.outingRepo.Get(ctx, outingID)
	if err != nil {
		return fmt.Errorf("get outing for delete: %w", err)
	}
	if !exists {
		return fmt.Errorf("%w: outing %s", ErrNotFound, outingID)
	}

	if err := s.pitchRepo.DeleteByOuting(ctx, outingID); err != nil {
		return fmt.Errorf("delete pitches for outing: %w", err)
	}
	if err := s.outingRepo.Delete(ctx, outingID); err != nil {
		return fmt.Errorf("delete outing: %w", err)
	}

	s.logger.InfoContext(ctx, "outing deleted", "outing_id", outingID)
	return nil
}

func (s *OutingService) ListPitches(ctx context.Context, outingID string) ([]pitch.Event, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.OutingService.ListPitches")
	defer span.End()

	if _, err := s.GetOuting(ctx, outingID); err != nil {
		return nil, err
	}

	events, err := s.pitchRepo.ListByOuting(ctx, outingID)
	if err != nil {
		return nil, fmt.Errorf("list pitches by outing: %w", err)
	}
	return events, nil
}

// ChartPitches appends raw pitch locations to an outing. Pitch numbers
// continue from the highest already stored, and the strike flag is frozen at
// creation time.
func (s *OutingService) ChartPitches(ctx context.Context, outingID string, pitches []ChartedPitch) ([]pitch.Event, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.OutingService.ChartPitches")
	defer span.End()

	if len(pitches) == 0 {
		return nil, fmt.Errorf("%w: at least one pitch is required", ErrInvalidInput)
	}

	parent, err := s.GetOuting(ctx, outingID)
	if err != nil {
		return nil, err
	}

	existing, err := s.pitchRepo.ListByOuting(ctx, outingID)
	if err != nil {
		return nil, fmt.Errorf("list existing pitches: %w", err)
	}
	nextNumber := 1
	for _, item := range existing {
		if item.PitchNumber >= nextNumber {
			nextNumber = item.PitchNumber + 1
		}
	}

	now := s.now().UTC()
	events := make([]pitch.Event, 0, len(pitches))
	for _, raw := range pitches {
		event := pitch.Event{
			OutingID:    outingID,
			PitcherID:   parent.PitcherID,
			PitchNumber: nextNumber,
			PitchType:   raw.PitchType,
			X:           raw.X,
			Y:           raw.Y,
			IsStrike:    pitch.IsStrike(raw.X, raw.Y),
			CreatedAt:   now,
		}
		if err := event.Validate(); err != nil {
			return nil, fmt.Errorf("%w: %s", ErrInvalidInput, err)
		}
		events = append(events, event)
		nextNumber++
	}

	if err := s.pitchRepo.Append(ctx, events); err != nil {
		return nil, fmt.Errorf("append pitches: %w", err)
	}

	s.logger.InfoContext(ctx, "pitches charted",
		"outing_id", outingID,
		"pitcher_id", parent.PitcherID,
		"count", len(events),
	)
	return events, nil
}

// TypeLabels returns the display label table for a pitcher, defaults overlaid
// with any stored overrides.
func (s *OutingService) TypeLabels(ctx context.Context, pitcherID string) (map[pitch.Type]string, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.OutingService.TypeLabels")
	defer span.End()

	if pitcherID == "" {
		return nil, fmt.Errorf("%w: pitcher id is required", ErrInvalidInput)
	}

	overrides, err := s.labelRepo.ListOverrides(ctx, pitcherID)
	if err != nil {
		return nil, fmt.Errorf("list label overrides: %w", err)
	}
	return pitch.MergeTypeLabels(overrides), nil
}

func (s *OutingService) SetTypeLabel(ctx context.Context, pitcherID string, pitchType pitch.Type, label string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.OutingService.SetTypeLabel")
	defer span.End()

	if pitcherID == "" {
		return fmt.Errorf("%w: pitcher id is required", ErrInvalidInput)
	}
	if pitchType < pitch.MinType || pitchType > pitch.MaxType {
		return fmt.Errorf("%w: invalid pitch type %d", ErrInvalidInput, pitchType)
	}
	if label == "" {
		return fmt.Errorf("%w: label is required", ErrInvalidInput)
	}

	if err := s.labelRepo.SetOverride(ctx, pitcherID, pitchType, label); err != nil {
		return fmt.Errorf("set label override: %w", err)
	}
	return nil
}
