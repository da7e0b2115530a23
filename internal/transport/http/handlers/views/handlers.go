package viewshandler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"sitewatch/internal/domain/dashboard"
	"sitewatch/internal/domain/views"
	"sitewatch/internal/transport/http/api"
	"sitewatch/internal/transport/http/middleware"
	"sitewatch/internal/transport/http/shared"
)

const (
	defaultPageSize = 50
	maxPageSize     = 500
)

type Handler struct {
	Store dashboard.StoreAPI
}

func NewHandler(store dashboard.StoreAPI) *Handler {
	return &Handler{Store: store}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/views", func(r chi.Router) {
		r.Get("/navigation", h.handleNavigation)
		r.Get("/live-feed", h.handleLiveFeed)
		r.Get("/workers", h.handleWorkers)
		r.Get("/workers/{workerID}/violations", h.handleWorkerViolations)
		r.Get("/sites", h.handleSites)
		r.Get("/sites/selected", h.handleSelectedSite)
	})
}

func (h *Handler) handleNavigation(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Query().Get("path")
	api.Success(w, views.BuildNavigation(path), middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleLiveFeed(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	q := r.URL.Query()
	v := shared.NewValidator()
	filter := views.FeedFilter{
		Severity: shared.Enum(v, "severity", q.Get("severity"), dashboard.Severities),
		Since:    v.TimeBound("since", q.Get("since"), false),
		Until:    v.TimeBound("until", q.Get("until"), true),
	}
	v.TimeOrder("since", filter.Since, "until", filter.Until)
	if v.Reject(w, requestID) {
		return
	}

	state := h.Store.State()
	feed := views.LiveFeed(state, filter)
	page := shared.ParsePagination(r, defaultPageSize, maxPageSize)
	api.Paged(w, map[string]any{
		"entries":  shared.Page(feed, page),
		"counts":   views.SeverityCounts(state.SafetyViolations),
		"selected": views.SelectedSite(state),
	}, api.Meta{Total: len(feed), Limit: page.Limit, Offset: page.Offset}, requestID)
}

func (h *Handler) handleWorkers(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	workers := views.Workers(h.Store.State(), views.WorkerFilter{
		Department: q.Get("department"),
		Query:      q.Get("q"),
	})
	page := shared.ParsePagination(r, defaultPageSize, maxPageSize)
	api.Paged(w, shared.Page(workers, page),
		api.Meta{Total: len(workers), Limit: page.Limit, Offset: page.Offset},
		middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleWorkerViolations(w http.ResponseWriter, r *http.Request) {
	workerID := chi.URLParam(r, "workerID")
	violations := views.ViolationsForWorker(h.Store.State(), workerID)
	if violations == nil {
		violations = []dashboard.SafetyViolation{}
	}
	api.Success(w, violations, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleSites(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	v := shared.NewValidator()
	status := shared.Enum(v, "status", r.URL.Query().Get("status"), dashboard.SiteStatuses)
	if v.Reject(w, requestID) {
		return
	}
	api.Success(w, views.Sites(h.Store.State(), views.SiteFilter{Status: status}), requestID)
}

func (h *Handler) handleSelectedSite(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	site := views.SelectedSite(h.Store.State())
	if site == nil {
		api.Fail(w, http.StatusNotFound, "not_found", "no site selected", requestID)
		return
	}
	api.Success(w, site, requestID)
}
