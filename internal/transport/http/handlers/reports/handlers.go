package reportshandler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"sitewatch/internal/domain/dashboard"
	"sitewatch/internal/domain/reports"
	"sitewatch/internal/requestctx"
	"sitewatch/internal/transport/http/api"
	"sitewatch/internal/transport/http/middleware"
)

type Handler struct {
	Store dashboard.StoreAPI
}

func NewHandler(store dashboard.StoreAPI) *Handler {
	return &Handler{Store: store}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/reports/summary", h.handleSummary)
	r.Get("/sites/{siteID}/report.pdf", h.handleSiteReport)
}

func (h *Handler) handleSummary(w http.ResponseWriter, r *http.Request) {
	api.Success(w, reports.BuildSummary(h.Store.State()), middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleSiteReport(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	siteID := chi.URLParam(r, "siteID")
	pdf, err := reports.SiteSafetyReport(h.Store.State(), siteID)
	if err != nil {
		if errors.Is(err, reports.ErrSiteNotFound) {
			api.Fail(w, http.StatusNotFound, "not_found", "site not found", requestID)
			return
		}
		requestctx.Logger(r.Context()).Warn("site report failed", "siteId", siteID, "err", err)
		api.Fail(w, http.StatusInternalServerError, "report_failed", "failed to render site report", requestID)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `inline; filename="site-report.pdf"`)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(pdf); err != nil {
		requestctx.Logger(r.Context()).Warn("site report write failed", "err", err)
	}
}
