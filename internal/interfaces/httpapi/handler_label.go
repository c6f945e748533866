package httpapi

import (
	"fmt"
	"net/http"
	"strings"

	sonic "github.com/bytedance/sonic"

	"github.com/moundworks/pitchlab/internal/domain/pitch"
	"github.com/moundworks/pitchlab/internal/usecase"
)

func (h *Handler) ListPitchTypeLabels(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListPitchTypeLabels")
	defer span.End()

	pitcherID := strings.TrimSpace(r.PathValue("pitcherID"))
	labels, err := h.outingService.TypeLabels(ctx, pitcherID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, typeLabelsToDTO(labels))
}

func (h *Handler) SetPitchTypeLabel(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SetPitchTypeLabel")
	defer span.End()

	pitcherID := strings.TrimSpace(r.PathValue("pitcherID"))

	var req setPitchTypeLabelRequest
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

	if err := h.outingService.SetTypeLabel(ctx, pitcherID, pitch.Type(req.PitchType), req.Label); err != nil {
		h.logger.WarnContext(ctx, "set pitch type label failed", "pitcher_id", pitcherID, "error", err)
		writeError(ctx, w, err)
		return
	}

	labels, err := h.outingService.TypeLabels(ctx, pitcherID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, typeLabelsToDTO(labels))
}
