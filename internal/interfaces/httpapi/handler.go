package httpapi

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/moundworks/pitchlab/internal/platform/logging"
	"github.com/moundworks/pitchlab/internal/usecase"
)

type Handler struct {
	outingService  *usecase.OutingService
	badgeService   *usecase.BadgeService
	trendService   *usecase.TrendService
	heatmapService *usecase.HeatmapService
	logger         *logging.Logger
	validator      *validator.Validate
}

func NewHandler(
	outingService *usecase.OutingService,
	badgeService *usecase.BadgeService,
	trendService *usecase.TrendService,
	heatmapService *usecase.HeatmapService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		outingService:  outingService,
		badgeService:   badgeService,
		trendService:   trendService,
		heatmapService: heatmapService,
		logger:         logger,
		validator:      validator.New(),
	}
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}
