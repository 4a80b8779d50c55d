package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/fwojciec/docserve"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Handler serves documents over HTTP:
//
//	GET /docs/{type}?section=...&page=...&pageSize=...
//
// The response body is the JSON encoding of docserve.Result.
type Handler struct {
	router  chi.Router
	Service docserve.DocumentService
	Logger  *slog.Logger
}

// NewHandler returns a Handler backed by svc.
func NewHandler(svc docserve.DocumentService, logger *slog.Logger) *Handler {
	h := &Handler{
		router:  chi.NewRouter(),
		Service: svc,
		Logger:  logger,
	}

	h.router.Use(middleware.Recoverer)
	h.router.Get("/docs/{type}", h.handleGetDocument)
	h.router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	return h
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.router.ServeHTTP(w, r)
}

func (h *Handler) handleGetDocument(w http.ResponseWriter, r *http.Request) {
	kind, err := docserve.ParseKind(chi.URLParam(r, "type"))
	if err != nil {
		h.writeError(w, err)
		return
	}

	req := docserve.Request{Kind: kind}
	q := r.URL.Query()
	if q.Has("section") {
		section := q.Get("section")
		req.Section = &section
	}
	if q.Has("page") {
		page, err := strconv.Atoi(q.Get("page"))
		if err != nil {
			h.writeError(w, docserve.Errorf(docserve.EINVALID, "page must be an integer"))
			return
		}
		req.Page = &page
	}
	if q.Has("pageSize") {
		size, err := strconv.Atoi(q.Get("pageSize"))
		if err != nil {
			h.writeError(w, docserve.Errorf(docserve.EINVALID, "pageSize must be an integer"))
			return
		}
		req.PageSize = size
	}

	result, err := h.Service.Serve(r.Context(), req)
	if err != nil {
		h.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(result); err != nil {
		h.Logger.Error("encode response", "err", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	code := docserve.ErrorCode(err)

	status := http.StatusInternalServerError
	switch code {
	case docserve.EINVALID:
		status = http.StatusBadRequest
	case docserve.ENOTFOUND:
		status = http.StatusNotFound
	}

	if status == http.StatusInternalServerError {
		h.Logger.Error("serve document", "err", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"code":  code,
		"error": docserve.ErrorMessage(err),
	})
}
