// Package httpapi exposes the model's visible views and the command layer
// over HTTP.
package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"propertybook/internal/command"
	"propertybook/internal/core"
	"propertybook/internal/view"
	"propertybook/pkg/domain"
)

const maxCommandBytes = 1 << 20

// Options configures optional routes.
type Options struct {
	Logger *slog.Logger
	// Metrics is mounted at /metrics when non-nil.
	Metrics http.Handler
}

// Handler serves the API for one model.
type Handler struct {
	model    *core.Model
	executor *command.Executor
	logger   *slog.Logger
	views    map[string]func(*core.Model) viewPayload
}

type viewPayload struct {
	Kind  domain.EntityType `json:"kind"`
	State view.State        `json:"state"`
	Count int               `json:"count"`
	Items any               `json:"items"`
}

// NewRouter builds the chi router serving m.
func NewRouter(m *core.Model, opts Options) http.Handler {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	h := &Handler{
		model:    m,
		executor: command.NewExecutor(m, logger),
		logger:   logger,
		views:    make(map[string]func(*core.Model) viewPayload),
	}
	register(h, command.Persons)
	register(h, command.Bidders)
	register(h, command.Sellers)
	register(h, command.Properties)
	register(h, command.Bids)
	register(h, command.Meetings)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(h.logRequests)
	r.Get("/healthz", h.handleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Get("/state", h.handleState)
		r.Get("/{kind}", h.handleView)
		r.Post("/commands", h.handleCommand)
	})
	if opts.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", opts.Metrics)
	}
	return r
}

// register exposes a kind under both its entity name and its plural.
func register[E any](h *Handler, kind command.Kind[E]) {
	render := func(m *core.Model) viewPayload {
		seq := kind.Book(m).Filtered()
		items := seq.Items()
		if items == nil {
			items = []E{}
		}
		return viewPayload{Kind: kind.Entity, State: seq.State(), Count: len(items), Items: items}
	}
	h.views[string(kind.Entity)] = render
	h.views[kind.Plural] = render
}

func (h *Handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "revision": h.model.Revision()})
}

func (h *Handler) handleState(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.model.ExportState())
}

func (h *Handler) handleView(w http.ResponseWriter, r *http.Request) {
	render, ok := h.views[strings.ToLower(chi.URLParam(r, "kind"))]
	if !ok {
		writeError(w, http.StatusNotFound, "unknown kind")
		return
	}
	writeJSON(w, http.StatusOK, render(h.model))
}

type commandResponse struct {
	Feedback string   `json:"feedback"`
	Warnings []string `json:"warnings,omitempty"`
	Error    string   `json:"error,omitempty"`
}

func (h *Handler) handleCommand(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxCommandBytes+1))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid command payload")
		return
	}
	if len(body) > maxCommandBytes {
		writeError(w, http.StatusRequestEntityTooLarge, "command payload too large")
		return
	}
	res, err := h.executor.Run(r.Context(), body)
	if err != nil {
		writeJSON(w, statusFor(err), commandResponse{Feedback: res.Feedback, Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, commandResponse{Feedback: res.Feedback, Warnings: res.Warnings})
}

func statusFor(err error) int {
	var (
		dup     domain.DuplicateEntityError
		missing domain.EntityNotFoundError
		ref     domain.ReferenceNotFoundError
		invalid domain.InvalidArgumentError
		blocked domain.RuleViolationError
	)
	switch {
	case errors.As(err, &invalid):
		return http.StatusBadRequest
	case errors.As(err, &dup):
		return http.StatusConflict
	case errors.As(err, &missing):
		return http.StatusNotFound
	case errors.As(err, &ref), errors.As(err, &blocked):
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

func (h *Handler) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		h.logger.Debug("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{"error": message})
}
