package httpapi

import (
	"fmt"
	"net/http"
	"strings"

	sonic "github.com/bytedance/sonic"

	"github.com/moundworks/pitchlab/internal/domain/pitch"
	"github.com/moundworks/pitchlab/internal/usecase"
)

func (h *Handler) ListPitches(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListPitches")
	defer span.End()

	outingID := strings.TrimSpace(r.PathValue("outingID"))
	events, err := h.outingService.ListPitches(ctx, outingID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, pitchEventsToDTO(events))
}

func (h *Handler) ChartPitches(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ChartPitches")
	defer span.End()

	outingID := strings.TrimSpace(r.PathValue("outingID"))

	var req chartPitchesRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	pitches := make([]usecase.ChartedPitch, 0, len(req.Pitches))
	for _, record := range req.Pitches {
		pitches = append(pitches, usecase.ChartedPitch{
			PitchType: pitch.Type(record.PitchType),
			X:         record.X,
			Y:         record.Y,
		})
	}

	events, err := h.outingService.ChartPitches(ctx, outingID, pitches)
	if err != nil {
		h.logger.WarnContext(ctx, "chart pitches failed", "outing_id", outingID, "error", err)
		writeError(ctx, w, err)
		return
	}
	if len(events) > 0 {
		h.heatmapService.InvalidatePitcher(ctx, events[0].PitcherID)
	}

	writeSuccess(ctx, w, http.StatusCreated, pitchEventsToDTO(events))
}
