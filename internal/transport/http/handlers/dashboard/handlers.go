package dashboardhandler

import (
	"embed"
	"encoding/json"
	"errors"
	"io"
	"io/fs"
	"net/http"

	"github.com/go-chi/chi/v5"

	"sitewatch/internal/domain/dashboard"
	"sitewatch/internal/requestctx"
	"sitewatch/internal/transport/http/api"
	"sitewatch/internal/transport/http/middleware"
	"sitewatch/internal/transport/http/shared"
)

const (
	schemaWorker    = "worker"
	schemaSite      = "site"
	schemaViolation = "violation"
	schemaSelection = "selection"
)

//go:embed schemas/*.schema.json
var schemaFiles embed.FS

type Handler struct {
	Service *dashboard.Service
	schemas *shared.SchemaSet
}

func NewHandler(svc *dashboard.Service) (*Handler, error) {
	sub, err := fs.Sub(schemaFiles, "schemas")
	if err != nil {
		return nil, err
	}
	schemas, err := shared.CompileSchemas(sub, schemaWorker, schemaSite, schemaViolation, schemaSelection)
	if err != nil {
		return nil, err
	}
	return &Handler{Service: svc, schemas: schemas}, nil
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/state", h.handleState)

	r.Post("/workers", h.handleAddWorker)
	r.Put("/workers/{workerID}", h.handleUpdateWorker)
	r.Delete("/workers/{workerID}", h.handleRemoveWorker)

	r.Post("/sites", h.handleAddSite)
	r.Put("/sites/{siteID}", h.handleUpdateSite)
	r.Delete("/sites/{siteID}", h.handleRemoveSite)

	r.Post("/violations", h.handleAddViolation)

	r.Put("/selection", h.handleSetSelection)
}

type selectionRequest struct {
	SiteID *string `json:"siteId"`
}

func (h *Handler) handleState(w http.ResponseWriter, r *http.Request) {
	api.Success(w, h.Service.State(), middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleAddWorker(w http.ResponseWriter, r *http.Request) {
	var worker dashboard.Worker
	if !h.decode(w, r, schemaWorker, &worker, nil) {
		return
	}
	if err := h.Service.AddWorker(worker); err != nil {
		writeServiceError(w, r, err, "worker")
		return
	}
	api.Created(w, worker, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleUpdateWorker(w http.ResponseWriter, r *http.Request) {
	workerID := chi.URLParam(r, "workerID")
	var worker dashboard.Worker
	if !h.decode(w, r, schemaWorker, &worker, func(v *shared.Validator) {
		if worker.ID != workerID {
			v.Add("id", "must match the worker id in the path")
		}
	}) {
		return
	}
	if err := h.Service.UpdateWorker(worker); err != nil {
		writeServiceError(w, r, err, "worker")
		return
	}
	api.Success(w, worker, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleRemoveWorker(w http.ResponseWriter, r *http.Request) {
	workerID := chi.URLParam(r, "workerID")
	if err := h.Service.RemoveWorker(workerID); err != nil {
		writeServiceError(w, r, err, "worker")
		return
	}
	api.Success(w, map[string]string{"id": workerID}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleAddSite(w http.ResponseWriter, r *http.Request) {
	var site dashboard.SiteInfo
	if !h.decode(w, r, schemaSite, &site, nil) {
		return
	}
	if err := h.Service.AddSite(site); err != nil {
		writeServiceError(w, r, err, "site")
		return
	}
	api.Created(w, site, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleUpdateSite(w http.ResponseWriter, r *http.Request) {
	siteID := chi.URLParam(r, "siteID")
	var site dashboard.SiteInfo
	if !h.decode(w, r, schemaSite, &site, func(v *shared.Validator) {
		if site.ID != siteID {
			v.Add("id", "must match the site id in the path")
		}
	}) {
		return
	}
	if err := h.Service.UpdateSite(site); err != nil {
		writeServiceError(w, r, err, "site")
		return
	}
	api.Success(w, site, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleRemoveSite(w http.ResponseWriter, r *http.Request) {
	siteID := chi.URLParam(r, "siteID")
	if err := h.Service.RemoveSite(siteID); err != nil {
		writeServiceError(w, r, err, "site")
		return
	}
	api.Success(w, map[string]string{"id": siteID}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleAddViolation(w http.ResponseWriter, r *http.Request) {
	var violation dashboard.SafetyViolation
	if !h.decode(w, r, schemaViolation, &violation, nil) {
		return
	}
	if err := h.Service.AddSafetyViolation(violation); err != nil {
		writeServiceError(w, r, err, "violation")
		return
	}
	api.Created(w, violation, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleSetSelection(w http.ResponseWriter, r *http.Request) {
	var req selectionRequest
	if !h.decode(w, r, schemaSelection, &req, nil) {
		return
	}
	h.Service.SetSelectedSite(req.SiteID)
	api.Success(w, req, middleware.GetRequestID(r.Context()))
}

// decode reads the body, checks it against the named schema, unmarshals it
// into dst and then runs extra checks. It writes the failure response
// itself and reports whether the handler may continue.
func (h *Handler) decode(w http.ResponseWriter, r *http.Request, schema string, dst any, extra func(v *shared.Validator)) bool {
	requestID := middleware.GetRequestID(r.Context())
	raw, err := io.ReadAll(r.Body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			api.Fail(w, http.StatusRequestEntityTooLarge, "body_too_large", "request body too large", requestID)
			return false
		}
		api.Fail(w, http.StatusBadRequest, "invalid_body", "failed to read request body", requestID)
		return false
	}

	v := shared.NewValidator()
	h.schemas.Check(schema, raw, v)
	if v.Reject(w, requestID) {
		return false
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_body", "request body does not match the expected shape", requestID)
		return false
	}
	if extra != nil {
		extra(v)
		if v.Reject(w, requestID) {
			return false
		}
	}
	return true
}

func writeServiceError(w http.ResponseWriter, r *http.Request, err error, entity string) {
	requestID := middleware.GetRequestID(r.Context())
	switch {
	case errors.Is(err, dashboard.ErrInvalidID):
		shared.FailValidation(w, requestID, []shared.ValidationIssue{{Field: "id", Reason: "is required"}})
	case errors.Is(err, dashboard.ErrDuplicateID):
		api.Fail(w, http.StatusConflict, "conflict", entity+" id already exists", requestID)
	case errors.Is(err, dashboard.ErrNotFound):
		api.Fail(w, http.StatusNotFound, "not_found", entity+" not found", requestID)
	default:
		requestctx.Logger(r.Context()).Warn("dashboard operation failed", "entity", entity, "err", err)
		api.Fail(w, http.StatusInternalServerError, "internal_error", "operation failed", requestID)
	}
}
