package httpapi

import (
	"fmt"
	"net/http"
	"strings"

	sonic "github.com/bytedance/sonic"

	"github.com/moundworks/pitchlab/internal/domain/outing"
	"github.com/moundworks/pitchlab/internal/usecase"
)

func (h *Handler) ListOutings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListOutings")
	defer span.End()

	items, err := h.outingService.ListOutings(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "list outings failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, outingsToDTO(ctx, items))
}

func (h *Handler) ListPitcherOutings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListPitcherOutings")
	defer span.End()

	pitcherID := strings.TrimSpace(r.PathValue("pitcherID"))
	items, err := h.outingService.ListOutingsByPitcher(ctx, pitcherID)
	if err != nil {
		h.logger.WarnContext(ctx, "list pitcher outings failed", "pitcher_id", pitcherID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, outingsToDTO(ctx, items))
}

func (h *Handler) GetOuting(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetOuting")
	defer span.End()

	outingID := strings.TrimSpace(r.PathValue("outingID"))
	item, err := h.outingService.GetOuting(ctx, outingID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, outingToDTO(ctx, item))
}

func (h *Handler) CreateOuting(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateOuting")
	defer span.End()

	var req createOutingRequest
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

	date, err := parseOutingDate(req.Date)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	created, err := h.outingService.CreateOuting(ctx, usecase.CreateOutingInput{
		PitcherID:   req.PitcherID,
		PitcherName: req.PitcherName,
		Date:        date,
		EventType:   outing.EventType(req.EventType),
		PitchCount:  req.PitchCount,
		Strikes:     req.Strikes,
		MaxVelo:     req.MaxVelo,
		Notes:       req.Notes,
		Focus:       req.Focus,
		CoachNotes:  req.CoachNotes,
		Metadata:    req.Metadata,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "create outing failed", "pitcher_id", req.PitcherID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, outingToDTO(ctx, created))
}

func (h *Handler) DeleteOuting(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteOuting")
	defer span.End()

	outingID := strings.TrimSpace(r.PathValue("outingID"))
	item, err := h.outingService.GetOuting(ctx, outingID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	if err := h.outingService.DeleteOuting(ctx, outingID); err != nil {
		h.logger.WarnContext(ctx, "delete outing failed", "outing_id", outingID, "error", err)
		writeError(ctx, w, err)
		return
	}
	h.heatmapService.InvalidatePitcher(ctx, item.PitcherID)

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "deleted"})
}
