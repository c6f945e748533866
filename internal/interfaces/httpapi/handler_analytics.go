package httpapi

import (
	"net/http"
	"strconv"
	"strings"
)

func (h *Handler) ListPitcherBadges(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListPitcherBadges")
	defer span.End()

	pitcherID := strings.TrimSpace(r.PathValue("pitcherID"))
	results, err := h.badgeService.EvaluateForPitcher(ctx, pitcherID)
	if err != nil {
		h.logger.WarnContext(ctx, "badge evaluation failed", "pitcher_id", pitcherID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, badgeResultsToDTO(results))
}

func (h *Handler) GetPitcherHeatmap(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetPitcherHeatmap")
	defer span.End()

	pitcherID := strings.TrimSpace(r.PathValue("pitcherID"))
	sizePx := 0
	if raw := strings.TrimSpace(r.URL.Query().Get("size")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err == nil {
			sizePx = parsed
		}
	}

	png, err := h.heatmapService.RenderForPitcher(ctx, pitcherID, sizePx)
	if err != nil {
		h.logger.WarnContext(ctx, "heatmap render failed", "pitcher_id", pitcherID, "error", err)
		writeError(ctx, w, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(len(png)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(png)
}

func (h *Handler) GetPitcherTrends(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetPitcherTrends")
	defer span.End()

	pitcherID := strings.TrimSpace(r.PathValue("pitcherID"))
	asOf, err := parseAsOf(strings.TrimSpace(r.URL.Query().Get("as_of")))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	comparison, err := h.trendService.ComparePitcher(ctx, pitcherID, asOf)
	if err != nil {
		h.logger.WarnContext(ctx, "pitcher trend comparison failed", "pitcher_id", pitcherID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, trendComparisonToDTO(ctx, comparison))
}

func (h *Handler) GetTeamTrends(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTeamTrends")
	defer span.End()

	asOf, err := parseAsOf(strings.TrimSpace(r.URL.Query().Get("as_of")))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	comparison, err := h.trendService.CompareTeam(ctx, asOf)
	if err != nil {
		h.logger.WarnContext(ctx, "team trend comparison failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, trendComparisonToDTO(ctx, comparison))
}
