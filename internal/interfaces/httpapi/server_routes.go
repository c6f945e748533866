package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerOutingRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/outings", handler.ListOutings)
	mux.HandleFunc("POST /v1/outings", handler.CreateOuting)
	mux.HandleFunc("GET /v1/outings/{outingID}", handler.GetOuting)
	mux.HandleFunc("DELETE /v1/outings/{outingID}", handler.DeleteOuting)
	mux.HandleFunc("GET /v1/outings/{outingID}/pitches", handler.ListPitches)
	mux.HandleFunc("POST /v1/outings/{outingID}/pitches", handler.ChartPitches)
}

func registerPitcherRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/pitchers/{pitcherID}/outings", handler.ListPitcherOutings)
	mux.HandleFunc("GET /v1/pitchers/{pitcherID}/badges", handler.ListPitcherBadges)
	mux.HandleFunc("GET /v1/pitchers/{pitcherID}/heatmap", handler.GetPitcherHeatmap)
	mux.HandleFunc("GET /v1/pitchers/{pitcherID}/trends", handler.GetPitcherTrends)
	mux.HandleFunc("GET /v1/pitchers/{pitcherID}/pitch-types", handler.ListPitchTypeLabels)
	mux.HandleFunc("PUT /v1/pitchers/{pitcherID}/pitch-types", handler.SetPitchTypeLabel)
	mux.HandleFunc("GET /v1/trends/team", handler.GetTeamTrends)
}
